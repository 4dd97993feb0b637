package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/rjcosta/brickerp/internal/report"
)

type Store struct {
	db *sql.DB
}

func New(db *sql.DB) *Store {
	return &Store{db: db}
}

func (s *Store) OutstandingInstallments(ctx context.Context) ([]*report.OutstandingInstallment, error) {
	query := `
		SELECT i.contract_id, c.number, COALESCE(cl.name, ''), i.sequence, i.due_date, i.amount, i.paid_amount
		FROM installments i
		JOIN contracts c ON i.contract_id = c.id
		LEFT JOIN clients cl ON c.client_id = cl.id
		WHERE i.status IN ('pending', 'partial') AND c.deleted_at IS NULL
		ORDER BY i.due_date ASC
	`

	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("listing outstanding installments: %w", err)
	}
	defer rows.Close()

	var outstanding []*report.OutstandingInstallment

	for rows.Next() {
		var o report.OutstandingInstallment

		if err := rows.Scan(
			&o.ContractID, &o.ContractNumber, &o.ClientName, &o.Sequence, &o.DueDate, &o.Amount, &o.PaidAmount,
		); err != nil {
			return nil, fmt.Errorf("scanning outstanding installment: %w", err)
		}

		outstanding = append(outstanding, &o)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating outstanding rows: %w", err)
	}

	return outstanding, nil
}
