package ledger

import (
	"context"
	"fmt"

	"github.com/google/uuid"
)

//go:generate mockgen -source=service.go -destination=repository_mock.go -package=ledger
type Repository interface {
	CreateEntry(ctx context.Context, e *Entry) error
	ListEntries(ctx context.Context, contractID uuid.UUID) ([]*Entry, error)
}

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

type CreateParams struct {
	ContractID    uuid.UUID
	InstallmentID *uuid.UUID
	Type          EntryType
	Amount        int64
	Description   string
}

func (s *Service) Post(ctx context.Context, params CreateParams) (*Entry, error) {
	if params.Amount == 0 {
		return nil, fmt.Errorf("ledger entry amount must be non-zero")
	}

	e := &Entry{
		ContractID:    params.ContractID,
		InstallmentID: params.InstallmentID,
		Type:          params.Type,
		Amount:        params.Amount,
		Description:   params.Description,
	}
	if err := s.repo.CreateEntry(ctx, e); err != nil {
		return nil, err
	}

	return e, nil
}

func (s *Service) List(ctx context.Context, contractID uuid.UUID) ([]*Entry, error) {
	return s.repo.ListEntries(ctx, contractID)
}

// Balance sums a contract's ledger. A positive result is the amount the
// client still owes.
func (s *Service) Balance(ctx context.Context, contractID uuid.UUID) (int64, error) {
	entries, err := s.repo.ListEntries(ctx, contractID)
	if err != nil {
		return 0, err
	}

	var balance int64
	for _, e := range entries {
		balance += e.Amount
	}

	return balance, nil
}
