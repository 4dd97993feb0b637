package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"

	"github.com/rjcosta/brickerp/internal/audit"
	"github.com/rjcosta/brickerp/internal/client"
	"github.com/rjcosta/brickerp/internal/contract"
	"github.com/rjcosta/brickerp/internal/ledger"
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

const selectContractColumns = `
	c.id, c.number, c.client_id, c.unit_id, c.total_amount, c.down_payment, c.discount,
	c.month_count, c.plan, c.start_date, cl.name as client_name,
	c.created_at, c.updated_at, c.deleted_at
`

func scanContract(s scanner) (*contract.Contract, error) {
	var c contract.Contract

	var plan string

	var clientName sql.NullString

	if err := s.Scan(
		&c.ID, &c.Number, &c.ClientID, &c.UnitID, &c.TotalAmount, &c.DownPayment, &c.Discount,
		&c.MonthCount, &plan, &c.StartDate, &clientName,
		&c.CreatedAt, &c.UpdatedAt, &c.DeletedAt,
	); err != nil {
		return nil, err
	}

	c.Plan = contract.PlanType(plan)

	if clientName.Valid {
		c.Client = &client.Client{ID: c.ClientID, Name: clientName.String}
	}

	return &c, nil
}

func (s *Store) CreateContract(ctx context.Context, c *contract.Contract) error {
	query := `
		INSERT INTO contracts (number, client_id, unit_id, total_amount, down_payment, discount,
			month_count, plan, start_date, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, NOW(), NOW())
		RETURNING id, created_at, updated_at
	`

	err := s.db.QueryRowContext(ctx, query,
		c.Number, c.ClientID, c.UnitID, c.TotalAmount, c.DownPayment, c.Discount,
		c.MonthCount, c.Plan, c.StartDate,
	).Scan(&c.ID, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		return fmt.Errorf("creating contract: %w", err)
	}

	return nil
}

func (s *Store) GetContract(ctx context.Context, id uuid.UUID) (*contract.Contract, error) {
	query := `SELECT ` + selectContractColumns + `
		FROM contracts c
		LEFT JOIN clients cl ON c.client_id = cl.id
		WHERE c.id = $1 AND c.deleted_at IS NULL`

	c, err := scanContract(s.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, contract.ErrNotFound
		}

		return nil, fmt.Errorf("getting contract: %w", err)
	}

	return c, nil
}

func (s *Store) ListContracts(ctx context.Context, filter contract.ListFilter) ([]*contract.Contract, error) {
	query := `SELECT ` + selectContractColumns + `
		FROM contracts c
		LEFT JOIN clients cl ON c.client_id = cl.id
		WHERE c.deleted_at IS NULL`

	var args []any

	argIdx := 1

	if filter.ClientID != nil {
		query += fmt.Sprintf(" AND c.client_id = $%d", argIdx)

		args = append(args, *filter.ClientID)
		argIdx++
	}

	if filter.UnitID != nil {
		query += fmt.Sprintf(" AND c.unit_id = $%d", argIdx)

		args = append(args, *filter.UnitID)
		argIdx++
	}

	query += " ORDER BY c.start_date ASC"

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing contracts: %w", err)
	}
	defer rows.Close()

	var contracts []*contract.Contract

	for rows.Next() {
		c, err := scanContract(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning contract: %w", err)
		}

		contracts = append(contracts, c)
	}

	return contracts, nil
}

func (s *Store) UpdateContract(ctx context.Context, c *contract.Contract) error {
	query := `
		UPDATE contracts
		SET number = $1, total_amount = $2, down_payment = $3, discount = $4,
			month_count = $5, plan = $6, start_date = $7, updated_at = NOW()
		WHERE id = $8 AND deleted_at IS NULL
	`

	_, err := s.db.ExecContext(ctx, query,
		c.Number, c.TotalAmount, c.DownPayment, c.Discount,
		c.MonthCount, c.Plan, c.StartDate, c.ID,
	)
	if err != nil {
		return fmt.Errorf("updating contract: %w", err)
	}

	return nil
}

func (s *Store) DeleteContract(ctx context.Context, id uuid.UUID) error {
	query := `
		UPDATE contracts
		SET deleted_at = NOW()
		WHERE id = $1
	`

	_, err := s.db.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("deleting contract: %w", err)
	}

	return nil
}

const selectInstallmentColumns = `
	i.id, i.contract_id, i.sequence, i.due_date, i.amount, i.paid_amount, i.status,
	i.paid_at, i.created_at, i.updated_at
`

func scanInstallment(s scanner) (*contract.Installment, error) {
	var in contract.Installment

	var status string

	if err := s.Scan(
		&in.ID, &in.ContractID, &in.Sequence, &in.DueDate, &in.Amount, &in.PaidAmount, &status,
		&in.PaidAt, &in.CreatedAt, &in.UpdatedAt,
	); err != nil {
		return nil, err
	}

	in.Status = contract.InstallmentStatus(status)

	return &in, nil
}

func (s *Store) ListInstallments(ctx context.Context, contractID uuid.UUID) ([]*contract.Installment, error) {
	query := `SELECT ` + selectInstallmentColumns + `
		FROM installments i
		WHERE i.contract_id = $1
		ORDER BY i.sequence ASC`

	rows, err := s.db.QueryContext(ctx, query, contractID)
	if err != nil {
		return nil, fmt.Errorf("listing installments: %w", err)
	}
	defer rows.Close()

	var installments []*contract.Installment

	for rows.Next() {
		in, err := scanInstallment(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning installment: %w", err)
		}

		installments = append(installments, in)
	}

	return installments, nil
}

type scheduleTx struct {
	tx         *sql.Tx
	contractID uuid.UUID
}

func (s *Store) BeginSchedule(ctx context.Context, contractID uuid.UUID) (contract.ScheduleTx, error) {
	dbTx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("beginning schedule tx: %w", err)
	}

	return &scheduleTx{tx: dbTx, contractID: contractID}, nil
}

func (t *scheduleTx) Commit() error   { return t.tx.Commit() }
func (t *scheduleTx) Rollback() error { return t.tx.Rollback() }

// Contract locks the contract row for the duration of the transaction so
// two concurrent generation attempts serialize on it.
func (t *scheduleTx) Contract(ctx context.Context) (*contract.Contract, error) {
	query := `
		SELECT c.id, c.number, c.client_id, c.unit_id, c.total_amount, c.down_payment, c.discount,
			c.month_count, c.plan, c.start_date, c.created_at, c.updated_at, c.deleted_at
		FROM contracts c
		WHERE c.id = $1 AND c.deleted_at IS NULL
		FOR UPDATE
	`

	var c contract.Contract

	var plan string

	err := t.tx.QueryRowContext(ctx, query, t.contractID).Scan(
		&c.ID, &c.Number, &c.ClientID, &c.UnitID, &c.TotalAmount, &c.DownPayment, &c.Discount,
		&c.MonthCount, &plan, &c.StartDate, &c.CreatedAt, &c.UpdatedAt, &c.DeletedAt,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, contract.ErrNotFound
		}

		return nil, fmt.Errorf("getting contract: %w", err)
	}

	c.Plan = contract.PlanType(plan)

	return &c, nil
}

func (t *scheduleTx) InstallmentCount(ctx context.Context) (int, error) {
	var count int

	err := t.tx.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM installments WHERE contract_id = $1`, t.contractID,
	).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("counting installments: %w", err)
	}

	return count, nil
}

func (t *scheduleTx) CreateInstallments(ctx context.Context, installments []*contract.Installment) error {
	query := `
		INSERT INTO installments (contract_id, sequence, due_date, amount, paid_amount, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, NOW(), NOW())
		RETURNING id, created_at, updated_at
	`

	for _, in := range installments {
		err := t.tx.QueryRowContext(ctx, query,
			in.ContractID, in.Sequence, in.DueDate, in.Amount, in.PaidAmount, in.Status,
		).Scan(&in.ID, &in.CreatedAt, &in.UpdatedAt)
		if err != nil {
			return fmt.Errorf("creating installment %d: %w", in.Sequence, err)
		}
	}

	return nil
}

func (t *scheduleTx) RecordAudit(ctx context.Context, e *audit.Entry) error {
	return appendAudit(ctx, t.tx, e)
}

type paymentTx struct {
	tx            *sql.Tx
	installmentID uuid.UUID
}

func (s *Store) BeginPayment(ctx context.Context, installmentID uuid.UUID) (contract.PaymentTx, error) {
	dbTx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("beginning payment tx: %w", err)
	}

	return &paymentTx{tx: dbTx, installmentID: installmentID}, nil
}

func (t *paymentTx) Commit() error   { return t.tx.Commit() }
func (t *paymentTx) Rollback() error { return t.tx.Rollback() }

func (t *paymentTx) Installment(ctx context.Context) (*contract.Installment, error) {
	query := `SELECT ` + selectInstallmentColumns + `
		FROM installments i
		WHERE i.id = $1
		FOR UPDATE`

	in, err := scanInstallment(t.tx.QueryRowContext(ctx, query, t.installmentID))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, contract.ErrInstallmentNotFound
		}

		return nil, fmt.Errorf("getting installment: %w", err)
	}

	return in, nil
}

func (t *paymentTx) UpdateInstallment(ctx context.Context, in *contract.Installment) error {
	query := `
		UPDATE installments
		SET paid_amount = $1, status = $2, paid_at = $3, updated_at = NOW()
		WHERE id = $4
	`

	_, err := t.tx.ExecContext(ctx, query, in.PaidAmount, in.Status, in.PaidAt, in.ID)
	if err != nil {
		return fmt.Errorf("updating installment: %w", err)
	}

	return nil
}

func (t *paymentTx) CreateLedgerEntry(ctx context.Context, e *ledger.Entry) error {
	query := `
		INSERT INTO ledger_entries (contract_id, installment_id, type, amount, description, created_at)
		VALUES ($1, $2, $3, $4, $5, NOW())
		RETURNING id, created_at
	`

	err := t.tx.QueryRowContext(ctx, query,
		e.ContractID, e.InstallmentID, e.Type, e.Amount, e.Description,
	).Scan(&e.ID, &e.CreatedAt)
	if err != nil {
		return fmt.Errorf("creating ledger entry: %w", err)
	}

	return nil
}

func (t *paymentTx) RecordAudit(ctx context.Context, e *audit.Entry) error {
	return appendAudit(ctx, t.tx, e)
}

// appendAudit writes an audit row inside an open transaction.
func appendAudit(ctx context.Context, tx *sql.Tx, e *audit.Entry) error {
	metadata, err := json.Marshal(e.Metadata)
	if err != nil {
		return fmt.Errorf("marshaling audit metadata: %w", err)
	}

	query := `
		INSERT INTO audit_logs (entity, entity_id, action, metadata, at)
		VALUES ($1, $2, $3, $4, NOW())
		RETURNING id, at
	`

	err = tx.QueryRowContext(ctx, query, e.Entity, e.EntityID, e.Action, metadata).
		Scan(&e.ID, &e.At)
	if err != nil {
		return fmt.Errorf("appending audit entry: %w", err)
	}

	return nil
}
