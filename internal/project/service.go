package project

import (
	"context"

	"github.com/google/uuid"
)

//go:generate mockgen -source=service.go -destination=repository_mock.go -package=project
type Repository interface {
	CreateProject(ctx context.Context, p *Project) error
	GetProject(ctx context.Context, id uuid.UUID) (*Project, error)
	ListProjects(ctx context.Context) ([]*Project, error)
	UpdateProject(ctx context.Context, p *Project) error
	DeleteProject(ctx context.Context, id uuid.UUID) error

	CreateUnit(ctx context.Context, u *Unit) error
	GetUnit(ctx context.Context, id uuid.UUID) (*Unit, error)
	ListUnits(ctx context.Context, projectID uuid.UUID) ([]*Unit, error)
	UpdateUnit(ctx context.Context, u *Unit) error
	UpdateUnitStatus(ctx context.Context, id uuid.UUID, status UnitStatus) error
}

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

type CreateParams struct {
	Name     string
	Location string
}

type CreateUnitParams struct {
	ProjectID uuid.UUID
	Block     string
	Floor     int
	Number    string
	AreaM2    float64
	Price     int64
}

func (s *Service) Create(ctx context.Context, params CreateParams) (*Project, error) {
	p := &Project{
		Name:     params.Name,
		Location: params.Location,
	}
	if err := s.repo.CreateProject(ctx, p); err != nil {
		return nil, err
	}

	return p, nil
}

func (s *Service) Get(ctx context.Context, id uuid.UUID) (*Project, error) {
	return s.repo.GetProject(ctx, id)
}

func (s *Service) List(ctx context.Context) ([]*Project, error) {
	return s.repo.ListProjects(ctx)
}

func (s *Service) Update(ctx context.Context, p *Project) error {
	return s.repo.UpdateProject(ctx, p)
}

func (s *Service) Delete(ctx context.Context, id uuid.UUID) error {
	return s.repo.DeleteProject(ctx, id)
}

// AddUnit registers a new unit under a project. The project must exist.
func (s *Service) AddUnit(ctx context.Context, params CreateUnitParams) (*Unit, error) {
	if _, err := s.repo.GetProject(ctx, params.ProjectID); err != nil {
		return nil, err
	}

	u := &Unit{
		ProjectID: params.ProjectID,
		Block:     params.Block,
		Floor:     params.Floor,
		Number:    params.Number,
		AreaM2:    params.AreaM2,
		Price:     params.Price,
		Status:    UnitAvailable,
	}
	if err := s.repo.CreateUnit(ctx, u); err != nil {
		return nil, err
	}

	return u, nil
}

func (s *Service) GetUnit(ctx context.Context, id uuid.UUID) (*Unit, error) {
	return s.repo.GetUnit(ctx, id)
}

func (s *Service) ListUnits(ctx context.Context, projectID uuid.UUID) ([]*Unit, error) {
	return s.repo.ListUnits(ctx, projectID)
}

func (s *Service) UpdateUnit(ctx context.Context, u *Unit) error {
	return s.repo.UpdateUnit(ctx, u)
}

func (s *Service) MarkUnitReserved(ctx context.Context, id uuid.UUID) error {
	return s.repo.UpdateUnitStatus(ctx, id, UnitReserved)
}

func (s *Service) MarkUnitSold(ctx context.Context, id uuid.UUID) error {
	return s.repo.UpdateUnitStatus(ctx, id, UnitSold)
}
