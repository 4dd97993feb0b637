package store

import (
	"context"
	"database/sql"
	"fmt"
	"hash/fnv"
	"time"

	"github.com/google/uuid"

	"github.com/rjcosta/brickerp/internal/bankimport"
)

type Store struct {
	db *sql.DB
}

func New(db *sql.DB) *Store {
	return &Store{db: db}
}

// scanner is satisfied by both *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

const selectEntryColumns = `
	b.id, b.date, b.amount, b.direction, b.reference, b.bank, b.posted,
	b.matched_installment_id, b.created_at, b.updated_at
`

func scanEntry(s scanner) (*bankimport.Entry, error) {
	var e bankimport.Entry

	var direction string

	var reference, bank sql.NullString

	var matchedID *uuid.UUID

	if err := s.Scan(
		&e.ID, &e.Date, &e.Amount, &direction, &reference, &bank, &e.Posted,
		&matchedID, &e.CreatedAt, &e.UpdatedAt,
	); err != nil {
		return nil, err
	}

	e.Direction = bankimport.Direction(direction)
	e.Reference = reference.String
	e.Bank = bank.String
	e.MatchedInstallmentID = matchedID

	return &e, nil
}

func (s *Store) CreateEntry(ctx context.Context, e *bankimport.Entry) error {
	query := `
		INSERT INTO bank_entries (date, amount, direction, reference, bank, posted, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, FALSE, NOW(), NOW())
		RETURNING id, created_at, updated_at
	`

	err := s.db.QueryRowContext(ctx, query,
		e.Date, e.Amount, e.Direction, e.Reference, e.Bank,
	).Scan(&e.ID, &e.CreatedAt, &e.UpdatedAt)
	if err != nil {
		return fmt.Errorf("creating bank entry: %w", err)
	}

	return nil
}

func (s *Store) GetEntry(ctx context.Context, id uuid.UUID) (*bankimport.Entry, error) {
	query := `SELECT ` + selectEntryColumns + `
		FROM bank_entries b
		WHERE b.id = $1`

	e, err := scanEntry(s.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, bankimport.ErrNotFound
		}

		return nil, fmt.Errorf("getting bank entry: %w", err)
	}

	return e, nil
}

func (s *Store) ListEntries(ctx context.Context, filter bankimport.ListFilter) ([]*bankimport.Entry, error) {
	query := `SELECT ` + selectEntryColumns + `
		FROM bank_entries b
		WHERE 1=1`

	var args []any

	argIdx := 1

	if filter.Posted != nil {
		query += fmt.Sprintf(" AND b.posted = $%d", argIdx)

		args = append(args, *filter.Posted)
		argIdx++
	}

	if filter.Direction != nil {
		query += fmt.Sprintf(" AND b.direction = $%d", argIdx)

		args = append(args, *filter.Direction)
		argIdx++
	}

	if filter.StartDate != nil {
		query += fmt.Sprintf(" AND b.date >= $%d", argIdx)

		args = append(args, *filter.StartDate)
		argIdx++
	}

	if filter.EndDate != nil {
		query += fmt.Sprintf(" AND b.date <= $%d", argIdx)

		args = append(args, *filter.EndDate)
		argIdx++
	}

	query += " ORDER BY b.date ASC"

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing bank entries: %w", err)
	}
	defer rows.Close()

	var entries []*bankimport.Entry

	for rows.Next() {
		e, err := scanEntry(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning bank entry: %w", err)
		}

		entries = append(entries, e)
	}

	return entries, nil
}

func importLockKey(minDate, maxDate time.Time) int64 {
	h := fnv.New64a()
	h.Write([]byte(minDate.Format("2006-01-02")))
	h.Write([]byte{0})
	h.Write([]byte(maxDate.Format("2006-01-02")))

	return int64(h.Sum64())
}

type importTx struct {
	tx *sql.Tx
}

func (s *Store) BeginImport(ctx context.Context, minDate, maxDate time.Time) (bankimport.ImportTx, error) {
	dbTx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("beginning import tx: %w", err)
	}

	lockKey := importLockKey(minDate, maxDate)
	if _, err := dbTx.ExecContext(ctx, "SELECT pg_advisory_xact_lock($1)", lockKey); err != nil {
		dbTx.Rollback()
		return nil, fmt.Errorf("acquiring import lock: %w", err)
	}

	return &importTx{tx: dbTx}, nil
}

func (itx *importTx) Commit() error   { return itx.tx.Commit() }
func (itx *importTx) Rollback() error { return itx.tx.Rollback() }

func (itx *importTx) FindDuplicates(ctx context.Context, params []bankimport.CreateParams) ([]*bankimport.Entry, error) {
	if len(params) == 0 {
		return nil, nil
	}

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

	query := `SELECT ` + selectEntryColumns + `
		FROM bank_entries b
		WHERE b.date >= $1 AND b.date <= $2
		ORDER BY b.date ASC`

	rows, err := itx.tx.QueryContext(ctx, query, minDate, maxDate)
	if err != nil {
		return nil, fmt.Errorf("finding duplicates: %w", err)
	}
	defer rows.Close()

	var existing []*bankimport.Entry

	for rows.Next() {
		e, err := scanEntry(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning bank entry: %w", err)
		}

		existing = append(existing, e)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating duplicate rows: %w", err)
	}

	return existing, nil
}

func (itx *importTx) CreateEntries(ctx context.Context, entries []*bankimport.Entry) error {
	query := `
		INSERT INTO bank_entries (date, amount, direction, reference, bank, posted, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, FALSE, NOW(), NOW())
		RETURNING id, created_at, updated_at
	`

	for _, e := range entries {
		err := itx.tx.QueryRowContext(ctx, query,
			e.Date, e.Amount, e.Direction, e.Reference, e.Bank,
		).Scan(&e.ID, &e.CreatedAt, &e.UpdatedAt)
		if err != nil {
			return fmt.Errorf("creating bank entry: %w", err)
		}
	}

	return nil
}
