package contract

import (
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/rjcosta/brickerp/internal/client"
)

var (
	ErrNotFound            = errors.New("contract not found")
	ErrAlreadyGenerated    = errors.New("installments already generated")
	ErrInstallmentNotFound = errors.New("installment not found")
	ErrInstallmentPaid     = errors.New("installment already paid")
)

// PlanType is the payment cadence of a contract.
type PlanType string

const (
	PlanMonthly   PlanType = "monthly"
	PlanQuarterly PlanType = "quarterly"
	PlanYearly    PlanType = "yearly"
)

// Contract binds a client to a unit with agreed totals and a payment plan.
// All amounts are in cents. A contract becomes immutable with respect to its
// financial terms once installments have been generated.
type Contract struct {
	ID          uuid.UUID
	Number      string
	ClientID    uuid.UUID
	UnitID      uuid.UUID
	TotalAmount int64
	DownPayment int64
	Discount    int64
	MonthCount  int
	Plan        PlanType
	StartDate   time.Time
	Client      *client.Client // Loaded via JOIN
	CreatedAt   time.Time
	UpdatedAt   *time.Time
	DeletedAt   *time.Time
}

// Remaining is the financed balance the installment schedule must cover.
func (c *Contract) Remaining() int64 {
	return c.TotalAmount - c.DownPayment - c.Discount
}

// InstallmentStatus is the payment lifecycle state of an installment.
type InstallmentStatus string

const (
	StatusPending InstallmentStatus = "pending"
	StatusPartial InstallmentStatus = "partial"
	StatusPaid    InstallmentStatus = "paid"
)

// Installment is one scheduled payment of a contract.
type Installment struct {
	ID         uuid.UUID
	ContractID uuid.UUID
	Sequence   int
	DueDate    time.Time
	Amount     int64
	PaidAmount int64
	Status     InstallmentStatus
	PaidAt     *time.Time
	Contract   *Contract // Loaded via JOIN where needed
	CreatedAt  time.Time
	UpdatedAt  *time.Time
}
