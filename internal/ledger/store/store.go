package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"

	"github.com/rjcosta/brickerp/internal/ledger"
)

type Store struct {
	db *sql.DB
}

func New(db *sql.DB) *Store {
	return &Store{db: db}
}

func (s *Store) CreateEntry(ctx context.Context, e *ledger.Entry) error {
	query := `
		INSERT INTO ledger_entries (contract_id, installment_id, type, amount, description, created_at)
		VALUES ($1, $2, $3, $4, $5, NOW())
		RETURNING id, created_at
	`

	err := s.db.QueryRowContext(ctx, query,
		e.ContractID, e.InstallmentID, e.Type, e.Amount, e.Description,
	).Scan(&e.ID, &e.CreatedAt)
	if err != nil {
		return fmt.Errorf("creating ledger entry: %w", err)
	}

	return nil
}

func (s *Store) ListEntries(ctx context.Context, contractID uuid.UUID) ([]*ledger.Entry, error) {
	query := `
		SELECT id, contract_id, installment_id, type, amount, description, created_at
		FROM ledger_entries
		WHERE contract_id = $1
		ORDER BY created_at ASC
	`

	rows, err := s.db.QueryContext(ctx, query, contractID)
	if err != nil {
		return nil, fmt.Errorf("listing ledger entries: %w", err)
	}
	defer rows.Close()

	var entries []*ledger.Entry

	for rows.Next() {
		var e ledger.Entry

		var entryType string

		var installmentID *uuid.UUID

		if err := rows.Scan(&e.ID, &e.ContractID, &installmentID, &entryType, &e.Amount, &e.Description, &e.CreatedAt); err != nil {
			return nil, fmt.Errorf("scanning ledger entry: %w", err)
		}

		e.Type = ledger.EntryType(entryType)
		e.InstallmentID = installmentID

		entries = append(entries, &e)
	}

	return entries, nil
}
