package store

import (
	"context"
	"database/sql"
	"fmt"
)

// tables lists the domain tables included in a backup, in restore order.
var tables = []string{
	"clients",
	"projects",
	"units",
	"contracts",
	"installments",
	"bank_entries",
	"ledger_entries",
	"audit_logs",
}

type Store struct {
	db *sql.DB
}

func New(db *sql.DB) *Store {
	return &Store{db: db}
}

func (s *Store) Dump(ctx context.Context) (map[string][]map[string]any, error) {
	out := make(map[string][]map[string]any, len(tables))

	for _, table := range tables {
		rows, err := s.dumpTable(ctx, table)
		if err != nil {
			return nil, fmt.Errorf("dumping %s: %w", table, err)
		}

		out[table] = rows
	}

	return out, nil
}

func (s *Store) dumpTable(ctx context.Context, table string) ([]map[string]any, error) {
	// table comes from the fixed list above, never from input.
	rows, err := s.db.QueryContext(ctx, "SELECT * FROM "+table)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	cols, err := rows.Columns()
	if err != nil {
		return nil, err
	}

	var out []map[string]any

	for rows.Next() {
		values := make([]any, len(cols))
		ptrs := make([]any, len(cols))

		for i := range values {
			ptrs[i] = &values[i]
		}

		if err := rows.Scan(ptrs...); err != nil {
			return nil, err
		}

		record := make(map[string]any, len(cols))

		for i, col := range cols {
			v := values[i]
			if b, ok := v.([]byte); ok {
				v = string(b)
			}

			record[col] = v
		}

		out = append(out, record)
	}

	return out, rows.Err()
}
