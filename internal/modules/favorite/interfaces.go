package favorite

import (
	"context"

	"productivity/internal/domain"
)

type FavoriteStore interface {
	ListFavorites(ctx context.Context) ([]domain.Favorite, error)
	ListFavoritesByTipIDs(ctx context.Context, tipIDs []string) ([]domain.Favorite, error)
	AddFavorite(ctx context.Context, tipID string) (*domain.Favorite, error)
	RemoveFavorite(ctx context.Context, tipID string) (bool, error)
	ToggleFavorite(ctx context.Context, tipID string) (*domain.Favorite, bool, error)
}
