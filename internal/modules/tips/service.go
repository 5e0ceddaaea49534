package tips

import (
	"context"
	"errors"
	"math/rand/v2"

	"productivity/internal/domain"
	"productivity/internal/modules/live"
	"productivity/internal/repository"
)

type Service struct {
	store    TipStore
	events   live.Publisher
	randIntN func(n int) int
}

type Option func(*Service)

// WithRandom replaces the uniform index picker used by Random.
func WithRandom(intN func(n int) int) Option {
	return func(s *Service) { s.randIntN = intN }
}

func NewService(store TipStore, events live.Publisher, opts ...Option) *Service {
	if events == nil {
		events = live.Nop{}
	}
	s := &Service{store: store, events: events, randIntN: rand.IntN}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *Service) List(ctx context.Context) ([]domain.Tip, error) {
	return s.store.ListTips(ctx)
}

func (s *Service) ListByCategory(ctx context.Context, category string) ([]domain.Tip, error) {
	return s.store.ListTipsByCategory(ctx, category)
}

func (s *Service) Search(ctx context.Context, query string) ([]domain.Tip, error) {
	if query == "" {
		return nil, ErrEmptyQuery
	}
	return s.store.SearchTips(ctx, query)
}

// View returns the tip after counting one view of it.
func (s *Service) View(ctx context.Context, id string) (*domain.Tip, error) {
	tip, err := s.store.ViewTip(ctx, id)
	if err != nil {
		return nil, err
	}
	s.events.Publish(ctx, live.NewEvent(live.EventTipViewed, tip))
	return tip, nil
}

func (s *Service) Create(ctx context.Context, req CreateTipRequest) (*domain.Tip, error) {
	tip, err := s.store.CreateTip(ctx, req.Text, req.Category)
	if err != nil {
		return nil, err
	}
	s.events.Publish(ctx, live.NewEvent(live.EventTipCreated, tip))
	return tip, nil
}

// Random picks one tip uniformly and counts a view of it. With no tips it
// returns ErrNoTips and changes nothing.
func (s *Service) Random(ctx context.Context) (*domain.Tip, error) {
	all, err := s.store.ListTips(ctx)
	if err != nil {
		return nil, err
	}
	if len(all) == 0 {
		return nil, ErrNoTips
	}

	picked := all[s.randIntN(len(all))]
	tip, err := s.View(ctx, picked.ID)
	if errors.Is(err, repository.ErrTipNotFound) {
		return nil, ErrNoTips
	}
	return tip, err
}
