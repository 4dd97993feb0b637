package report

import (
	"time"

	"github.com/google/uuid"
)

// OutstandingInstallment is one unpaid (or partially paid) installment with
// its contract and client context, as loaded for reporting.
type OutstandingInstallment struct {
	ContractID     uuid.UUID
	ContractNumber string
	ClientName     string
	Sequence       int
	DueDate        time.Time
	Amount         int64
	PaidAmount     int64
}

// Remainder is what is still owed on the installment.
func (o *OutstandingInstallment) Remainder() int64 {
	return o.Amount - o.PaidAmount
}

// DebtorRow aggregates a contract's outstanding debt into aging buckets
// relative to the report date.
type DebtorRow struct {
	ContractID     uuid.UUID
	ContractNumber string
	ClientName     string
	Outstanding    int64
	Current        int64 // not yet due
	Overdue30      int64 // 1-30 days past due
	Overdue60      int64 // 31-60 days past due
	Overdue90      int64 // 61-90 days past due
	Overdue90Plus  int64
}
