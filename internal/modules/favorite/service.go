package favorite

import (
	"context"

	"productivity/internal/domain"
	"productivity/internal/modules/live"
)

type Service struct {
	store  FavoriteStore
	events live.Publisher
}

func NewService(store FavoriteStore, events live.Publisher) *Service {
	if events == nil {
		events = live.Nop{}
	}
	return &Service{store: store, events: events}
}

// List returns every favorite when tipIDs is nil, otherwise only those for
// tipIDs. A non-nil empty slice matches nothing.
func (s *Service) List(ctx context.Context, tipIDs []string) ([]domain.Favorite, error) {
	if tipIDs == nil {
		return s.store.ListFavorites(ctx)
	}
	return s.store.ListFavoritesByTipIDs(ctx, tipIDs)
}

// Add always records a new favorite, duplicates included.
func (s *Service) Add(ctx context.Context, tipID string) (*domain.Favorite, error) {
	fav, err := s.store.AddFavorite(ctx, tipID)
	if err != nil {
		return nil, err
	}
	s.events.Publish(ctx, live.NewEvent(live.EventFavoriteAdded, fav))
	return fav, nil
}

// Remove drops one favorite for tipID. Nothing to remove is not an error.
func (s *Service) Remove(ctx context.Context, tipID string) error {
	removed, err := s.store.RemoveFavorite(ctx, tipID)
	if err != nil {
		return err
	}
	if removed {
		s.events.Publish(ctx, live.NewEvent(live.EventFavoriteRemoved, removedEvent{TipID: tipID}))
	}
	return nil
}

// Toggle adds a favorite when tipID has none and removes it otherwise.
func (s *Service) Toggle(ctx context.Context, tipID string) (ToggleResponse, error) {
	fav, added, err := s.store.ToggleFavorite(ctx, tipID)
	if err != nil {
		return ToggleResponse{}, err
	}
	if added {
		s.events.Publish(ctx, live.NewEvent(live.EventFavoriteAdded, fav))
		return ToggleResponse{Action: ActionAdded, Favorite: fav}, nil
	}
	s.events.Publish(ctx, live.NewEvent(live.EventFavoriteRemoved, removedEvent{TipID: tipID}))
	return ToggleResponse{Action: ActionRemoved}, nil
}

type removedEvent struct {
	TipID string `json:"tipId"`
}
