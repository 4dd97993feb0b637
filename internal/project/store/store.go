package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"

	"github.com/rjcosta/brickerp/internal/project"
)

type Store struct {
	db *sql.DB
}

func New(db *sql.DB) *Store {
	return &Store{db: db}
}

func (s *Store) CreateProject(ctx context.Context, p *project.Project) error {
	query := `
		INSERT INTO projects (name, location, created_at, updated_at)
		VALUES ($1, $2, NOW(), NOW())
		RETURNING id, created_at, updated_at
	`

	err := s.db.QueryRowContext(ctx, query, p.Name, p.Location).
		Scan(&p.ID, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return fmt.Errorf("creating project: %w", err)
	}

	return nil
}

func (s *Store) GetProject(ctx context.Context, id uuid.UUID) (*project.Project, error) {
	query := `
		SELECT id, name, location, created_at, updated_at, deleted_at
		FROM projects
		WHERE id = $1 AND deleted_at IS NULL
	`

	var p project.Project

	err := s.db.QueryRowContext(ctx, query, id).Scan(
		&p.ID, &p.Name, &p.Location, &p.CreatedAt, &p.UpdatedAt, &p.DeletedAt,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, project.ErrNotFound
		}

		return nil, fmt.Errorf("getting project: %w", err)
	}

	return &p, nil
}

func (s *Store) ListProjects(ctx context.Context) ([]*project.Project, error) {
	query := `
		SELECT id, name, location, created_at, updated_at, deleted_at
		FROM projects
		WHERE deleted_at IS NULL
		ORDER BY name ASC
	`

	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("listing projects: %w", err)
	}
	defer rows.Close()

	var projects []*project.Project

	for rows.Next() {
		var p project.Project

		if err := rows.Scan(&p.ID, &p.Name, &p.Location, &p.CreatedAt, &p.UpdatedAt, &p.DeletedAt); err != nil {
			return nil, fmt.Errorf("scanning project: %w", err)
		}

		projects = append(projects, &p)
	}

	return projects, nil
}

func (s *Store) UpdateProject(ctx context.Context, p *project.Project) error {
	query := `
		UPDATE projects
		SET name = $1, location = $2, updated_at = NOW()
		WHERE id = $3 AND deleted_at IS NULL
	`

	_, err := s.db.ExecContext(ctx, query, p.Name, p.Location, p.ID)
	if err != nil {
		return fmt.Errorf("updating project: %w", err)
	}

	return nil
}

func (s *Store) DeleteProject(ctx context.Context, id uuid.UUID) error {
	query := `
		UPDATE projects
		SET deleted_at = NOW()
		WHERE id = $1
	`

	_, err := s.db.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("deleting project: %w", err)
	}

	return nil
}

const selectUnitColumns = `
	u.id, u.project_id, u.block, u.floor, u.number, u.area_m2, u.price, u.status,
	u.created_at, u.updated_at
`

func (s *Store) CreateUnit(ctx context.Context, u *project.Unit) error {
	query := `
		INSERT INTO units (project_id, block, floor, number, area_m2, price, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, NOW(), NOW())
		RETURNING id, created_at, updated_at
	`

	err := s.db.QueryRowContext(ctx, query,
		u.ProjectID, u.Block, u.Floor, u.Number, u.AreaM2, u.Price, u.Status,
	).Scan(&u.ID, &u.CreatedAt, &u.UpdatedAt)
	if err != nil {
		return fmt.Errorf("creating unit: %w", err)
	}

	return nil
}

func (s *Store) GetUnit(ctx context.Context, id uuid.UUID) (*project.Unit, error) {
	query := `SELECT ` + selectUnitColumns + `
		FROM units u
		WHERE u.id = $1`

	var u project.Unit

	var status string

	err := s.db.QueryRowContext(ctx, query, id).Scan(
		&u.ID, &u.ProjectID, &u.Block, &u.Floor, &u.Number, &u.AreaM2, &u.Price, &status,
		&u.CreatedAt, &u.UpdatedAt,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, project.ErrUnitNotFound
		}

		return nil, fmt.Errorf("getting unit: %w", err)
	}

	u.Status = project.UnitStatus(status)

	return &u, nil
}

func (s *Store) ListUnits(ctx context.Context, projectID uuid.UUID) ([]*project.Unit, error) {
	query := `SELECT ` + selectUnitColumns + `
		FROM units u
		WHERE u.project_id = $1
		ORDER BY u.block ASC, u.floor ASC, u.number ASC`

	rows, err := s.db.QueryContext(ctx, query, projectID)
	if err != nil {
		return nil, fmt.Errorf("listing units: %w", err)
	}
	defer rows.Close()

	var units []*project.Unit

	for rows.Next() {
		var u project.Unit

		var status string

		if err := rows.Scan(
			&u.ID, &u.ProjectID, &u.Block, &u.Floor, &u.Number, &u.AreaM2, &u.Price, &status,
			&u.CreatedAt, &u.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("scanning unit: %w", err)
		}

		u.Status = project.UnitStatus(status)
		units = append(units, &u)
	}

	return units, nil
}

func (s *Store) UpdateUnit(ctx context.Context, u *project.Unit) error {
	query := `
		UPDATE units
		SET block = $1, floor = $2, number = $3, area_m2 = $4, price = $5, status = $6, updated_at = NOW()
		WHERE id = $7
	`

	_, err := s.db.ExecContext(ctx, query, u.Block, u.Floor, u.Number, u.AreaM2, u.Price, u.Status, u.ID)
	if err != nil {
		return fmt.Errorf("updating unit: %w", err)
	}

	return nil
}

func (s *Store) UpdateUnitStatus(ctx context.Context, id uuid.UUID, status project.UnitStatus) error {
	query := `
		UPDATE units
		SET status = $1, updated_at = NOW()
		WHERE id = $2
	`

	_, err := s.db.ExecContext(ctx, query, status, id)
	if err != nil {
		return fmt.Errorf("updating unit status: %w", err)
	}

	return nil
}
