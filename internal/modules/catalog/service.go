package catalog

import (
	"context"

	"productivity/internal/domain"
	"productivity/internal/modules/live"
)

type CategoryStore interface {
	ListCategories(ctx context.Context) ([]domain.Category, error)
	CreateCategory(ctx context.Context, name string) (*domain.Category, error)
}

type Service struct {
	store  CategoryStore
	events live.Publisher
}

func NewService(store CategoryStore, events live.Publisher) *Service {
	if events == nil {
		events = live.Nop{}
	}
	return &Service{store: store, events: events}
}

/* ---------- CATEGORIES ---------- */

// ListCategories orders by tip count, most used first.
func (s *Service) ListCategories(ctx context.Context) ([]domain.Category, error) {
	return s.store.ListCategories(ctx)
}

func (s *Service) CreateCategory(ctx context.Context, req CreateCategoryRequest) (*domain.Category, error) {
	c, err := s.store.CreateCategory(ctx, req.Name)
	if err != nil {
		return nil, err
	}
	s.events.Publish(ctx, live.NewEvent(live.EventCategoryCreated, c))
	return c, nil
}
