package reconcile

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/rjcosta/brickerp/internal/audit"
	"github.com/rjcosta/brickerp/internal/bankimport"
	"github.com/rjcosta/brickerp/internal/contract"
)

const (
	// DefaultToleranceAmount is the widest accepted gap between a bank
	// credit and an installment amount, in cents (5 currency units).
	DefaultToleranceAmount int64 = 500
	// DefaultToleranceDays is the widest accepted gap between the credit
	// date and the installment due date.
	DefaultToleranceDays = 7
)

// Options configures one reconciliation run. Zero values fall back to the
// defaults.
type Options struct {
	ToleranceAmount int64
	ToleranceDays   int
}

func (o Options) withDefaults() Options {
	if o.ToleranceAmount <= 0 {
		o.ToleranceAmount = DefaultToleranceAmount
	}

	if o.ToleranceDays <= 0 {
		o.ToleranceDays = DefaultToleranceDays
	}

	return o
}

// Result reports how many of the considered credits were matched.
type Result struct {
	Matched int
	Total   int
}

//go:generate mockgen -source=service.go -destination=repository_mock.go -package=reconcile
type Repository interface {
	Begin(ctx context.Context) (Tx, error)
}

// Tx scopes a full reconciliation pass to one database transaction: every
// settle/post pair and its audit entry commit together or not at all. The
// store serializes concurrent passes with an advisory lock.
type Tx interface {
	UnpostedCredits(ctx context.Context) ([]*bankimport.Entry, error)
	PendingInstallments(ctx context.Context) ([]*contract.Installment, error)
	SettleInstallment(ctx context.Context, installmentID uuid.UUID, paidAt time.Time) error
	PostEntry(ctx context.Context, entryID, installmentID uuid.UUID) error
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

// Run pairs unposted bank credits with pending installments. Credits are
// walked in date order; each takes the first pending installment (in due
// date order) within both tolerances. First match wins; the run does not
// search for the smallest discrepancy. An installment settled in this run
// leaves the pool, so no installment is matched twice.
//
// Entries posted by an earlier run are never reconsidered, which makes
// re-running with no new data a no-op.
func (s *Service) Run(ctx context.Context, opts Options) (*Result, error) {
	opts = opts.withDefaults()

	tx, err := s.repo.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("begin reconcile: %w", err)
	}
	defer tx.Rollback()

	credits, err := tx.UnpostedCredits(ctx)
	if err != nil {
		return nil, fmt.Errorf("loading credits: %w", err)
	}

	pending, err := tx.PendingInstallments(ctx)
	if err != nil {
		return nil, fmt.Errorf("loading installments: %w", err)
	}

	result := &Result{Total: len(credits)}

	settled := make(map[uuid.UUID]struct{})

	for _, credit := range credits {
		in := firstEligible(credit, pending, settled, opts)
		if in == nil {
			continue
		}

		if err := tx.SettleInstallment(ctx, in.ID, credit.Date); err != nil {
			return nil, fmt.Errorf("settling installment: %w", err)
		}

		if err := tx.PostEntry(ctx, credit.ID, in.ID); err != nil {
			return nil, fmt.Errorf("posting bank entry: %w", err)
		}

		err := tx.RecordAudit(ctx, &audit.Entry{
			Entity:   "bank_entry",
			EntityID: credit.ID,
			Action:   audit.ActionUpdated,
			Metadata: map[string]any{
				"event":          "reconciled",
				"installment_id": in.ID.String(),
				"contract_id":    in.ContractID.String(),
				"amount_diff":    abs64(credit.Amount - in.Amount),
			},
		})
		if err != nil {
			return nil, fmt.Errorf("recording audit entry: %w", err)
		}

		settled[in.ID] = struct{}{}
		result.Matched++
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("commit reconcile: %w", err)
	}

	return result, nil
}

// firstEligible returns the earliest-due pending installment within both
// tolerances, or nil. pending must be ordered by due date ascending.
func firstEligible(credit *bankimport.Entry, pending []*contract.Installment, settled map[uuid.UUID]struct{}, opts Options) *contract.Installment {
	for _, in := range pending {
		if _, done := settled[in.ID]; done {
			continue
		}

		if abs64(credit.Amount-in.Amount) > opts.ToleranceAmount {
			continue
		}

		if daysApart(credit.Date, in.DueDate) > opts.ToleranceDays {
			continue
		}

		return in
	}

	return nil
}

// daysApart is the absolute calendar-day distance between two timestamps.
func daysApart(a, b time.Time) int {
	ad := time.Date(a.Year(), a.Month(), a.Day(), 0, 0, 0, 0, time.UTC)
	bd := time.Date(b.Year(), b.Month(), b.Day(), 0, 0, 0, 0, time.UTC)

	days := int(ad.Sub(bd).Hours() / 24)
	if days < 0 {
		days = -days
	}

	return days
}

func abs64(n int64) int64 {
	if n < 0 {
		return -n
	}

	return n
}
