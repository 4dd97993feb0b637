package audit

import (
	"context"

	"github.com/google/uuid"
)

type Repository interface {
	AppendEntry(ctx context.Context, e *Entry) error
	ListEntries(ctx context.Context, filter ListFilter) ([]*Entry, error)
}

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

type ListFilter struct {
	Entity   *string
	EntityID *uuid.UUID
	Limit    int
}

func (s *Service) Record(ctx context.Context, entity string, entityID uuid.UUID, action Action, metadata map[string]any) error {
	return s.repo.AppendEntry(ctx, &Entry{
		Entity:   entity,
		EntityID: entityID,
		Action:   action,
		Metadata: metadata,
	})
}

func (s *Service) List(ctx context.Context, filter ListFilter) ([]*Entry, error) {
	return s.repo.ListEntries(ctx, filter)
}
