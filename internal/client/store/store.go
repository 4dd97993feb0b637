package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"

	"github.com/rjcosta/brickerp/internal/client"
)

type Store struct {
	db *sql.DB
}

func New(db *sql.DB) *Store {
	return &Store{db: db}
}

const selectClientColumns = `
	c.id, c.name, c.tax_id, c.phone, c.email, c.created_at, c.updated_at, c.deleted_at
`

// scanner is satisfied by both *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

func scanClient(s scanner) (*client.Client, error) {
	var c client.Client

	var taxID, phone, email sql.NullString

	if err := s.Scan(
		&c.ID, &c.Name, &taxID, &phone, &email,
		&c.CreatedAt, &c.UpdatedAt, &c.DeletedAt,
	); err != nil {
		return nil, err
	}

	c.TaxID = taxID.String
	c.Phone = phone.String
	c.Email = email.String

	return &c, nil
}

func (s *Store) CreateClient(ctx context.Context, c *client.Client) error {
	query := `
		INSERT INTO clients (name, tax_id, phone, email, created_at, updated_at)
		VALUES ($1, $2, $3, $4, NOW(), NOW())
		RETURNING id, created_at, updated_at
	`

	err := s.db.QueryRowContext(ctx, query,
		c.Name, c.TaxID, c.Phone, c.Email,
	).Scan(&c.ID, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		return fmt.Errorf("creating client: %w", err)
	}

	return nil
}

func (s *Store) GetClient(ctx context.Context, id uuid.UUID) (*client.Client, error) {
	query := `SELECT ` + selectClientColumns + `
		FROM clients c
		WHERE c.id = $1 AND c.deleted_at IS NULL`

	c, err := scanClient(s.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, client.ErrNotFound
		}

		return nil, fmt.Errorf("getting client: %w", err)
	}

	return c, nil
}

func (s *Store) ListClients(ctx context.Context, filter client.ListFilter) ([]*client.Client, error) {
	query := `SELECT ` + selectClientColumns + `
		FROM clients c
		WHERE c.deleted_at IS NULL`

	var args []any

	argIdx := 1

	if filter.Name != nil {
		query += fmt.Sprintf(" AND c.name ILIKE '%%' || $%d || '%%'", argIdx)

		args = append(args, *filter.Name)
		argIdx++
	}

	if filter.TaxID != nil {
		query += fmt.Sprintf(" AND c.tax_id = $%d", argIdx)

		args = append(args, *filter.TaxID)
		argIdx++
	}

	query += " ORDER BY c.name ASC"

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing clients: %w", err)
	}
	defer rows.Close()

	var clients []*client.Client

	for rows.Next() {
		c, err := scanClient(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning client: %w", err)
		}

		clients = append(clients, c)
	}

	return clients, nil
}

func (s *Store) UpdateClient(ctx context.Context, c *client.Client) error {
	query := `
		UPDATE clients
		SET name = $1, tax_id = $2, phone = $3, email = $4, updated_at = NOW()
		WHERE id = $5 AND deleted_at IS NULL
	`

	_, err := s.db.ExecContext(ctx, query, c.Name, c.TaxID, c.Phone, c.Email, c.ID)
	if err != nil {
		return fmt.Errorf("updating client: %w", err)
	}

	return nil
}

func (s *Store) DeleteClient(ctx context.Context, id uuid.UUID) error {
	query := `
		UPDATE clients
		SET deleted_at = NOW()
		WHERE id = $1
	`

	_, err := s.db.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("deleting client: %w", err)
	}

	return nil
}
