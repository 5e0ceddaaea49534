package repository

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"

	"productivity/internal/domain"
)

var (
	ErrTipNotFound     = errors.New("tip not found")
	ErrCategoryExists  = errors.New("category already exists")
	ErrInvalidCategory = errors.New("category name is required")
)

// InitialStreak is the placeholder streak every fresh stats record starts with.
const InitialStreak = 7

// Store owns every mutable collection of the application: tips, favorites,
// categories and the single UserStats record. Each method is atomic with
// respect to the others, including the ones that touch several counters.
//
// Counter operations on unknown ids are silent no-ops. Only GetTip and ViewTip
// report ErrTipNotFound.
type Store interface {
	// ListTips returns every tip, newest first.
	ListTips(ctx context.Context) ([]domain.Tip, error)
	GetTip(ctx context.Context, id string) (*domain.Tip, error)
	// ListTipsByCategory matches the category name exactly (case-sensitive).
	ListTipsByCategory(ctx context.Context, category string) ([]domain.Tip, error)
	// SearchTips matches query as a case-insensitive substring of text or category.
	SearchTips(ctx context.Context, query string) ([]domain.Tip, error)
	// CreateTip inserts a tip with zeroed counters, bumps the matching category
	// count (skipped when no category has that exact name) and totalTips.
	CreateTip(ctx context.Context, text, category string) (*domain.Tip, error)
	// ImportTip inserts a fully populated tip as-is (used for seeding) with the
	// same category and totalTips bookkeeping as CreateTip.
	ImportTip(ctx context.Context, tip domain.Tip) (*domain.Tip, error)
	RecordView(ctx context.Context, id string) error
	// ViewTip increments the tip's views and stats.dailyTips together and
	// returns the updated tip.
	ViewTip(ctx context.Context, id string) (*domain.Tip, error)
	AdjustTipFavoriteCount(ctx context.Context, id string, delta int) error

	ListFavorites(ctx context.Context) ([]domain.Favorite, error)
	ListFavoritesByTipIDs(ctx context.Context, tipIDs []string) ([]domain.Favorite, error)
	// AddFavorite always inserts a new row, even if one already exists.
	AddFavorite(ctx context.Context, tipID string) (*domain.Favorite, error)
	// RemoveFavorite deletes the oldest favorite for tipID and reports whether
	// anything was removed.
	RemoveFavorite(ctx context.Context, tipID string) (bool, error)
	// ToggleFavorite removes the favorite for tipID when one exists, otherwise
	// adds one. The returned favorite is nil when the call removed.
	ToggleFavorite(ctx context.Context, tipID string) (*domain.Favorite, bool, error)

	// ListCategories returns categories by count descending, ties by name.
	ListCategories(ctx context.Context) ([]domain.Category, error)
	CreateCategory(ctx context.Context, name string) (*domain.Category, error)
	AdjustCategoryCount(ctx context.Context, name string, delta int) error

	GetStats(ctx context.Context) (domain.UserStats, error)
	UpdateStats(ctx context.Context, patch domain.StatsPatch) (domain.UserStats, error)
}

// Option configures a store.
type Option func(*options)

type options struct {
	now   func() time.Time
	newID func() string
}

func defaultOptions() options {
	return options{
		now:   time.Now,
		newID: uuid.NewString,
	}
}

// WithClock overrides the time source used for createdAt and lastActive.
func WithClock(now func() time.Time) Option {
	return func(o *options) { o.now = now }
}

// WithIDGenerator overrides the id generator.
func WithIDGenerator(newID func() string) Option {
	return func(o *options) { o.newID = newID }
}

func matchesQuery(t domain.Tip, lowerQuery string) bool {
	return strings.Contains(strings.ToLower(t.Text), lowerQuery) ||
		strings.Contains(strings.ToLower(t.Category), lowerQuery)
}
