package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/rjcosta/brickerp/internal/audit"
)

type Store struct {
	db *sql.DB
}

func New(db *sql.DB) *Store {
	return &Store{db: db}
}

func (s *Store) AppendEntry(ctx context.Context, e *audit.Entry) error {
	metadata, err := json.Marshal(e.Metadata)
	if err != nil {
		return fmt.Errorf("marshaling audit metadata: %w", err)
	}

	query := `
		INSERT INTO audit_logs (entity, entity_id, action, metadata, at)
		VALUES ($1, $2, $3, $4, NOW())
		RETURNING id, at
	`

	err = s.db.QueryRowContext(ctx, query, e.Entity, e.EntityID, e.Action, metadata).
		Scan(&e.ID, &e.At)
	if err != nil {
		return fmt.Errorf("appending audit entry: %w", err)
	}

	return nil
}

func (s *Store) ListEntries(ctx context.Context, filter audit.ListFilter) ([]*audit.Entry, error) {
	query := `
		SELECT id, entity, entity_id, action, metadata, at
		FROM audit_logs
		WHERE 1=1
	`

	var args []any

	argIdx := 1

	if filter.Entity != nil {
		query += fmt.Sprintf(" AND entity = $%d", argIdx)

		args = append(args, *filter.Entity)
		argIdx++
	}

	if filter.EntityID != nil {
		query += fmt.Sprintf(" AND entity_id = $%d", argIdx)

		args = append(args, *filter.EntityID)
		argIdx++
	}

	query += " ORDER BY at DESC"

	if filter.Limit > 0 {
		query += fmt.Sprintf(" LIMIT $%d", argIdx)
		args = append(args, filter.Limit)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing audit entries: %w", err)
	}
	defer rows.Close()

	var entries []*audit.Entry

	for rows.Next() {
		var e audit.Entry

		var action string

		var metadata []byte

		if err := rows.Scan(&e.ID, &e.Entity, &e.EntityID, &action, &metadata, &e.At); err != nil {
			return nil, fmt.Errorf("scanning audit entry: %w", err)
		}

		e.Action = audit.Action(action)

		if len(metadata) > 0 {
			if err := json.Unmarshal(metadata, &e.Metadata); err != nil {
				return nil, fmt.Errorf("unmarshaling audit metadata: %w", err)
			}
		}

		entries = append(entries, &e)
	}

	return entries, nil
}
