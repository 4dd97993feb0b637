package bankimport

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
)

//go:generate mockgen -source=service.go -destination=repository_mock.go -package=bankimport
type Repository interface {
	CreateEntry(ctx context.Context, e *Entry) error
	GetEntry(ctx context.Context, id uuid.UUID) (*Entry, error)
	ListEntries(ctx context.Context, filter ListFilter) ([]*Entry, error)

	BeginImport(ctx context.Context, minDate, maxDate time.Time) (ImportTx, error)
}

// ImportTx scopes a statement import to one transaction. The advisory lock
// taken by the store keeps two imports of the same statement from racing.
type ImportTx interface {
	FindDuplicates(ctx context.Context, params []CreateParams) ([]*Entry, error)
	CreateEntries(ctx context.Context, entries []*Entry) error
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
	Date      time.Time
	Amount    int64
	Direction Direction
	Reference string
	Bank      string
}

type ListFilter struct {
	Posted    *bool
	Direction *Direction
	StartDate *time.Time
	EndDate   *time.Time
}

func (s *Service) Create(ctx context.Context, params CreateParams) (*Entry, error) {
	if params.Amount <= 0 {
		return nil, fmt.Errorf("amount must be positive")
	}

	switch params.Direction {
	case DirectionDebit, DirectionCredit:
	default:
		return nil, fmt.Errorf("unknown direction: %s", params.Direction)
	}

	e := &Entry{
		Date:      params.Date,
		Amount:    params.Amount,
		Direction: params.Direction,
		Reference: params.Reference,
		Bank:      params.Bank,
	}
	if err := s.repo.CreateEntry(ctx, e); err != nil {
		return nil, err
	}

	return e, nil
}

func (s *Service) Get(ctx context.Context, id uuid.UUID) (*Entry, error) {
	return s.repo.GetEntry(ctx, id)
}

func (s *Service) List(ctx context.Context, filter ListFilter) ([]*Entry, error) {
	return s.repo.ListEntries(ctx, filter)
}

type ImportResult struct {
	Imported   []*Entry
	Duplicates []CreateParams
}

// ImportBatch persists statement lines in one transaction, skipping lines
// that already exist with the same date, amount, direction and reference.
// Re-importing the same statement file is therefore harmless.
func (s *Service) ImportBatch(ctx context.Context, params []CreateParams) (*ImportResult, error) {
	if len(params) == 0 {
		return &ImportResult{}, nil
	}

	minDate, maxDate := dateRange(params)

	itx, err := s.repo.BeginImport(ctx, minDate, maxDate)
	if err != nil {
		return nil, fmt.Errorf("begin import: %w", err)
	}
	defer itx.Rollback()

	existing, err := itx.FindDuplicates(ctx, params)
	if err != nil {
		return nil, fmt.Errorf("find duplicates: %w", err)
	}

	type dupKey struct {
		Date      string
		Amount    int64
		Direction Direction
		Reference string
	}

	lookup := make(map[dupKey]struct{}, len(existing))

	for _, e := range existing {
		lookup[dupKey{
			Date:      e.Date.Format(time.DateOnly),
			Amount:    e.Amount,
			Direction: e.Direction,
			Reference: e.Reference,
		}] = struct{}{}
	}

	var entries []*Entry

	var duplicates []CreateParams

	for _, p := range params {
		k := dupKey{
			Date:      p.Date.Format(time.DateOnly),
			Amount:    p.Amount,
			Direction: p.Direction,
			Reference: p.Reference,
		}

		if _, found := lookup[k]; found {
			duplicates = append(duplicates, p)
			continue
		}

		entries = append(entries, &Entry{
			Date:      p.Date,
			Amount:    p.Amount,
			Direction: p.Direction,
			Reference: p.Reference,
			Bank:      p.Bank,
		})
	}

	if len(entries) > 0 {
		if err := itx.CreateEntries(ctx, entries); err != nil {
			return nil, fmt.Errorf("create entries: %w", err)
		}
	}

	if err := itx.Commit(); err != nil {
		return nil, fmt.Errorf("commit import: %w", err)
	}

	return &ImportResult{Imported: entries, Duplicates: duplicates}, nil
}

func dateRange(params []CreateParams) (time.Time, time.Time) {
	minDate := params[0].Date
	maxDate := params[0].Date

	for _, p := range params[1:] {
		if p.Date.Before(minDate) {
			minDate = p.Date
		}

		if p.Date.After(maxDate) {
			maxDate = p.Date
		}
	}

	return minDate, maxDate
}
