package ledger

import (
	"time"

	"github.com/google/uuid"
)

// EntryType classifies a ledger entry.
type EntryType string

const (
	// EntryInitial is the financed contract amount, posted once at signing.
	EntryInitial EntryType = "initial"
	// EntryPayment is a payment received against an installment.
	EntryPayment EntryType = "payment"
	// EntryAdjustment is a manual correction.
	EntryAdjustment EntryType = "adjustment"
)

// Entry is one line in a contract's ledger. Amounts are in cents:
// positive entries are charges against the client, negative entries are
// payments received. The running sum is the outstanding balance.
type Entry struct {
	ID            uuid.UUID
	ContractID    uuid.UUID
	InstallmentID *uuid.UUID
	Type          EntryType
	Amount        int64
	Description   string
	CreatedAt     time.Time
}
