package contract

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/rjcosta/brickerp/internal/audit"
	"github.com/rjcosta/brickerp/internal/ledger"
)

//go:generate mockgen -source=service.go -destination=repository_mock.go -package=contract
type Repository interface {
	CreateContract(ctx context.Context, c *Contract) error
	GetContract(ctx context.Context, id uuid.UUID) (*Contract, error)
	ListContracts(ctx context.Context, filter ListFilter) ([]*Contract, error)
	UpdateContract(ctx context.Context, c *Contract) error
	DeleteContract(ctx context.Context, id uuid.UUID) error

	ListInstallments(ctx context.Context, contractID uuid.UUID) ([]*Installment, error)

	BeginSchedule(ctx context.Context, contractID uuid.UUID) (ScheduleTx, error)
	BeginPayment(ctx context.Context, installmentID uuid.UUID) (PaymentTx, error)
}

// ScheduleTx scopes installment generation to one database transaction so
// the contract read, the batch insert and the audit entry land atomically.
type ScheduleTx interface {
	Contract(ctx context.Context) (*Contract, error)
	InstallmentCount(ctx context.Context) (int, error)
	CreateInstallments(ctx context.Context, installments []*Installment) error
	RecordAudit(ctx context.Context, e *audit.Entry) error
	Commit() error
	Rollback() error
}

// PaymentTx scopes a manual payment: installment update, ledger entry and
// audit entry are all-or-nothing.
type PaymentTx interface {
	Installment(ctx context.Context) (*Installment, error)
	UpdateInstallment(ctx context.Context, in *Installment) error
	CreateLedgerEntry(ctx context.Context, e *ledger.Entry) error
	RecordAudit(ctx context.Context, e *audit.Entry) error
	Commit() error
	Rollback() error
}

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

type CreateParams struct {
	Number      string
	ClientID    uuid.UUID
	UnitID      uuid.UUID
	TotalAmount int64
	DownPayment int64
	Discount    int64
	MonthCount  int
	Plan        PlanType
	StartDate   time.Time
}

type ListFilter struct {
	ClientID *uuid.UUID
	UnitID   *uuid.UUID
}

func (s *Service) Create(ctx context.Context, params CreateParams) (*Contract, error) {
	if params.TotalAmount <= 0 {
		return nil, fmt.Errorf("total amount must be positive")
	}

	if params.DownPayment < 0 || params.Discount < 0 {
		return nil, fmt.Errorf("down payment and discount must not be negative")
	}

	if params.TotalAmount-params.DownPayment-params.Discount < 0 {
		return nil, fmt.Errorf("down payment and discount exceed total amount")
	}

	if params.MonthCount <= 0 {
		return nil, fmt.Errorf("month count must be positive")
	}

	switch params.Plan {
	case PlanMonthly, PlanQuarterly, PlanYearly:
	default:
		return nil, fmt.Errorf("unknown plan type: %s", params.Plan)
	}

	c := &Contract{
		Number:      params.Number,
		ClientID:    params.ClientID,
		UnitID:      params.UnitID,
		TotalAmount: params.TotalAmount,
		DownPayment: params.DownPayment,
		Discount:    params.Discount,
		MonthCount:  params.MonthCount,
		Plan:        params.Plan,
		StartDate:   params.StartDate,
	}
	if err := s.repo.CreateContract(ctx, c); err != nil {
		return nil, err
	}

	return c, nil
}

func (s *Service) Get(ctx context.Context, id uuid.UUID) (*Contract, error) {
	return s.repo.GetContract(ctx, id)
}

func (s *Service) List(ctx context.Context, filter ListFilter) ([]*Contract, error) {
	return s.repo.ListContracts(ctx, filter)
}

func (s *Service) Update(ctx context.Context, c *Contract) error {
	return s.repo.UpdateContract(ctx, c)
}

func (s *Service) Delete(ctx context.Context, id uuid.UUID) error {
	return s.repo.DeleteContract(ctx, id)
}

func (s *Service) ListInstallments(ctx context.Context, contractID uuid.UUID) ([]*Installment, error) {
	return s.repo.ListInstallments(ctx, contractID)
}

// GenerateInstallments creates the full installment schedule for a contract.
// It fails with ErrAlreadyGenerated when any installments exist, which makes
// double generation safe to attempt.
func (s *Service) GenerateInstallments(ctx context.Context, contractID uuid.UUID) ([]*Installment, error) {
	tx, err := s.repo.BeginSchedule(ctx, contractID)
	if err != nil {
		return nil, fmt.Errorf("begin schedule: %w", err)
	}
	defer tx.Rollback()

	c, err := tx.Contract(ctx)
	if err != nil {
		return nil, err
	}

	count, err := tx.InstallmentCount(ctx)
	if err != nil {
		return nil, fmt.Errorf("counting installments: %w", err)
	}

	if count > 0 {
		return nil, ErrAlreadyGenerated
	}

	installments, err := BuildSchedule(c)
	if err != nil {
		return nil, err
	}

	if err := tx.CreateInstallments(ctx, installments); err != nil {
		return nil, fmt.Errorf("creating installments: %w", err)
	}

	err = tx.RecordAudit(ctx, &audit.Entry{
		Entity:   "contract",
		EntityID: c.ID,
		Action:   audit.ActionUpdated,
		Metadata: map[string]any{
			"event":     "installments_generated",
			"count":     len(installments),
			"remaining": c.Remaining(),
		},
	})
	if err != nil {
		return nil, fmt.Errorf("recording audit entry: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("commit schedule: %w", err)
	}

	return installments, nil
}

type PaymentParams struct {
	ContractID    uuid.UUID
	InstallmentID uuid.UUID
	Amount        int64
	PaidAt        time.Time
}

// RecordPayment applies a manual payment to an installment, moving it
// pending -> partial -> paid, and posts the matching ledger entry.
func (s *Service) RecordPayment(ctx context.Context, params PaymentParams) (*Installment, error) {
	if params.Amount <= 0 {
		return nil, fmt.Errorf("payment amount must be positive")
	}

	tx, err := s.repo.BeginPayment(ctx, params.InstallmentID)
	if err != nil {
		return nil, fmt.Errorf("begin payment: %w", err)
	}
	defer tx.Rollback()

	in, err := tx.Installment(ctx)
	if err != nil {
		return nil, err
	}

	if in.ContractID != params.ContractID {
		return nil, ErrInstallmentNotFound
	}

	if in.Status == StatusPaid {
		return nil, ErrInstallmentPaid
	}

	in.PaidAmount += params.Amount

	if in.PaidAmount >= in.Amount {
		in.Status = StatusPaid
		paidAt := params.PaidAt
		in.PaidAt = &paidAt
	} else {
		in.Status = StatusPartial
	}

	if err := tx.UpdateInstallment(ctx, in); err != nil {
		return nil, fmt.Errorf("updating installment: %w", err)
	}

	installmentID := in.ID

	err = tx.CreateLedgerEntry(ctx, &ledger.Entry{
		ContractID:    in.ContractID,
		InstallmentID: &installmentID,
		Type:          ledger.EntryPayment,
		Amount:        -params.Amount,
		Description:   fmt.Sprintf("payment for installment %d", in.Sequence),
	})
	if err != nil {
		return nil, fmt.Errorf("creating ledger entry: %w", err)
	}

	err = tx.RecordAudit(ctx, &audit.Entry{
		Entity:   "installment",
		EntityID: in.ID,
		Action:   audit.ActionUpdated,
		Metadata: map[string]any{
			"event":  "payment_recorded",
			"amount": params.Amount,
			"status": string(in.Status),
		},
	})
	if err != nil {
		return nil, fmt.Errorf("recording audit entry: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("commit payment: %w", err)
	}

	return in, nil
}
