package stats

import (
	"context"
	"errors"

	"productivity/internal/domain"
	"productivity/internal/modules/live"
)

var ErrEmptyPatch = errors.New("at least one stats field is required")

type StatsStore interface {
	GetStats(ctx context.Context) (domain.UserStats, error)
	UpdateStats(ctx context.Context, patch domain.StatsPatch) (domain.UserStats, error)
}

type Service struct {
	store  StatsStore
	events live.Publisher
}

func NewService(store StatsStore, events live.Publisher) *Service {
	if events == nil {
		events = live.Nop{}
	}
	return &Service{store: store, events: events}
}

func (s *Service) Get(ctx context.Context) (domain.UserStats, error) {
	return s.store.GetStats(ctx)
}

func (s *Service) Update(ctx context.Context, patch domain.StatsPatch) (domain.UserStats, error) {
	if patch.IsEmpty() {
		return domain.UserStats{}, ErrEmptyPatch
	}
	st, err := s.store.UpdateStats(ctx, patch)
	if err != nil {
		return domain.UserStats{}, err
	}
	s.events.Publish(ctx, live.NewEvent(live.EventStatsUpdated, st))
	return st, nil
}

// ResetDaily zeroes the daily tip counter.
func (s *Service) ResetDaily(ctx context.Context) (domain.UserStats, error) {
	zero := 0
	return s.Update(ctx, domain.StatsPatch{DailyTips: &zero})
}
