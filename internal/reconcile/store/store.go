package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"hash/fnv"
	"time"

	"github.com/google/uuid"

	"github.com/rjcosta/brickerp/internal/audit"
	"github.com/rjcosta/brickerp/internal/bankimport"
	"github.com/rjcosta/brickerp/internal/client"
	"github.com/rjcosta/brickerp/internal/contract"
	"github.com/rjcosta/brickerp/internal/reconcile"
)

type Store struct {
	db *sql.DB
}

func New(db *sql.DB) *Store {
	return &Store{db: db}
}

// reconcileLockKey serializes reconciliation passes across processes.
// Without it two concurrent runs could settle the same installment against
// different credits.
func reconcileLockKey() int64 {
	h := fnv.New64a()
	h.Write([]byte("brickerp:reconcile"))

	return int64(h.Sum64())
}

type reconcileTx struct {
	tx *sql.Tx
}

func (s *Store) Begin(ctx context.Context) (reconcile.Tx, error) {
	dbTx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("beginning reconcile tx: %w", err)
	}

	if _, err := dbTx.ExecContext(ctx, "SELECT pg_advisory_xact_lock($1)", reconcileLockKey()); err != nil {
		dbTx.Rollback()
		return nil, fmt.Errorf("acquiring reconcile lock: %w", err)
	}

	return &reconcileTx{tx: dbTx}, nil
}

func (t *reconcileTx) Commit() error   { return t.tx.Commit() }
func (t *reconcileTx) Rollback() error { return t.tx.Rollback() }

func (t *reconcileTx) UnpostedCredits(ctx context.Context) ([]*bankimport.Entry, error) {
	query := `
		SELECT b.id, b.date, b.amount, b.direction, b.reference, b.bank, b.posted,
			b.matched_installment_id, b.created_at, b.updated_at
		FROM bank_entries b
		WHERE b.posted = FALSE AND b.direction = 'credit' AND b.matched_installment_id IS NULL
		ORDER BY b.date ASC
	`

	rows, err := t.tx.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("listing unposted credits: %w", err)
	}
	defer rows.Close()

	var entries []*bankimport.Entry

	for rows.Next() {
		var e bankimport.Entry

		var direction string

		var reference, bank sql.NullString

		if err := rows.Scan(
			&e.ID, &e.Date, &e.Amount, &direction, &reference, &bank, &e.Posted,
			&e.MatchedInstallmentID, &e.CreatedAt, &e.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("scanning bank entry: %w", err)
		}

		e.Direction = bankimport.Direction(direction)
		e.Reference = reference.String
		e.Bank = bank.String

		entries = append(entries, &e)
	}

	return entries, nil
}

func (t *reconcileTx) PendingInstallments(ctx context.Context) ([]*contract.Installment, error) {
	query := `
		SELECT i.id, i.contract_id, i.sequence, i.due_date, i.amount, i.paid_amount, i.status,
			i.paid_at, i.created_at, i.updated_at,
			c.number, c.client_id, cl.name
		FROM installments i
		JOIN contracts c ON i.contract_id = c.id
		LEFT JOIN clients cl ON c.client_id = cl.id
		WHERE i.status = 'pending' AND c.deleted_at IS NULL
		ORDER BY i.due_date ASC
	`

	rows, err := t.tx.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("listing pending installments: %w", err)
	}
	defer rows.Close()

	var installments []*contract.Installment

	for rows.Next() {
		var in contract.Installment

		var status, contractNumber string

		var clientID uuid.UUID

		var clientName sql.NullString

		if err := rows.Scan(
			&in.ID, &in.ContractID, &in.Sequence, &in.DueDate, &in.Amount, &in.PaidAmount, &status,
			&in.PaidAt, &in.CreatedAt, &in.UpdatedAt,
			&contractNumber, &clientID, &clientName,
		); err != nil {
			return nil, fmt.Errorf("scanning installment: %w", err)
		}

		in.Status = contract.InstallmentStatus(status)
		in.Contract = &contract.Contract{
			ID:       in.ContractID,
			Number:   contractNumber,
			ClientID: clientID,
		}

		if clientName.Valid {
			in.Contract.Client = &client.Client{ID: clientID, Name: clientName.String}
		}

		installments = append(installments, &in)
	}

	return installments, nil
}

func (t *reconcileTx) SettleInstallment(ctx context.Context, installmentID uuid.UUID, paidAt time.Time) error {
	query := `
		UPDATE installments
		SET status = 'paid', paid_amount = amount, paid_at = $1, updated_at = NOW()
		WHERE id = $2
	`

	_, err := t.tx.ExecContext(ctx, query, paidAt, installmentID)
	if err != nil {
		return fmt.Errorf("settling installment: %w", err)
	}

	return nil
}

func (t *reconcileTx) PostEntry(ctx context.Context, entryID, installmentID uuid.UUID) error {
	query := `
		UPDATE bank_entries
		SET posted = TRUE, matched_installment_id = $1, updated_at = NOW()
		WHERE id = $2 AND posted = FALSE
	`

	_, err := t.tx.ExecContext(ctx, query, installmentID, entryID)
	if err != nil {
		return fmt.Errorf("posting bank entry: %w", err)
	}

	return nil
}

func (t *reconcileTx) RecordAudit(ctx context.Context, e *audit.Entry) error {
	metadata, err := json.Marshal(e.Metadata)
	if err != nil {
		return fmt.Errorf("marshaling audit metadata: %w", err)
	}

	query := `
		INSERT INTO audit_logs (entity, entity_id, action, metadata, at)
		VALUES ($1, $2, $3, $4, NOW())
		RETURNING id, at
	`

	err = t.tx.QueryRowContext(ctx, query, e.Entity, e.EntityID, e.Action, metadata).
		Scan(&e.ID, &e.At)
	if err != nil {
		return fmt.Errorf("appending audit entry: %w", err)
	}

	return nil
}
