package bankimport

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

var ErrNotFound = errors.New("bank entry not found")

// Direction is the side of a bank statement line.
type Direction string

const (
	DirectionDebit  Direction = "debit"
	DirectionCredit Direction = "credit"
)

// Entry is one bank statement line, entered manually or parsed from a CSV
// statement export. Once the reconciliation matcher posts an entry, its
// installment link is final: there is no unmatch operation.
type Entry struct {
	ID                   uuid.UUID
	Date                 time.Time
	Amount               int64 // cents
	Direction            Direction
	Reference            string
	Bank                 string
	Posted               bool
	MatchedInstallmentID *uuid.UUID
	CreatedAt            time.Time
	UpdatedAt            *time.Time
}
