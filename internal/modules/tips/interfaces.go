package tips

import (
	"context"

	"productivity/internal/domain"
)

// TipStore is the slice of the repository the tips module needs.
type TipStore interface {
	ListTips(ctx context.Context) ([]domain.Tip, error)
	ListTipsByCategory(ctx context.Context, category string) ([]domain.Tip, error)
	SearchTips(ctx context.Context, query string) ([]domain.Tip, error)
	CreateTip(ctx context.Context, text, category string) (*domain.Tip, error)
	ViewTip(ctx context.Context, id string) (*domain.Tip, error)
}
