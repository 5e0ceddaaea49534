package repository

import (
	"context"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jinzhu/copier"
	"github.com/pkg/errors"
	"gorm.io/gorm"

	"productivity/internal/domain"
)

// GormStore implements Store on top of gorm. Compound operations run inside a
// single transaction and counters are bumped with SQL expressions.
type GormStore struct {
	db      *gorm.DB
	opts    options
	statsID string
}

var _ Store = (*GormStore)(nil)

// NewGormStore wraps db. Migrate must run before the store is used.
func NewGormStore(db *gorm.DB, opts ...Option) *GormStore {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	return &GormStore{db: db, opts: o}
}

// Migrate creates the tables and the single stats row if it is missing.
func (s *GormStore) Migrate(ctx context.Context) error {
	if err := s.db.WithContext(ctx).AutoMigrate(Models()...); err != nil {
		return errors.Wrap(err, "auto migrate")
	}

	var m userStatsModel
	err := s.db.WithContext(ctx).First(&m).Error
	switch {
	case err == nil:
		s.statsID = m.ID
		return nil
	case !errors.Is(err, gorm.ErrRecordNotFound):
		return errors.Wrap(err, "load stats")
	}

	m = userStatsModel{
		ID:         s.opts.newID(),
		Streak:     InitialStreak,
		LastActive: s.opts.now(),
	}
	if err := s.db.WithContext(ctx).Create(&m).Error; err != nil {
		return errors.Wrap(err, "create stats")
	}
	s.statsID = m.ID
	return nil
}

func (s *GormStore) stats(tx *gorm.DB) *gorm.DB {
	return tx.Model(&userStatsModel{}).Where("id = ?", s.statsID)
}

func (s *GormStore) listTips(ctx context.Context, scope func(*gorm.DB) *gorm.DB) ([]domain.Tip, error) {
	var ms []tipModel
	q := s.db.WithContext(ctx).Order("created_at DESC").Order("id ASC")
	if scope != nil {
		q = scope(q)
	}
	if err := q.Find(&ms).Error; err != nil {
		return nil, errors.Wrap(err, "list tips")
	}
	return toDomainTips(ms)
}

func (s *GormStore) ListTips(ctx context.Context) ([]domain.Tip, error) {
	return s.listTips(ctx, nil)
}

func (s *GormStore) GetTip(ctx context.Context, id string) (*domain.Tip, error) {
	return getTip(s.db.WithContext(ctx), id)
}

func getTip(tx *gorm.DB, id string) (*domain.Tip, error) {
	var m tipModel
	if err := tx.Where("id = ?", id).First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTipNotFound
		}
		return nil, errors.Wrapf(err, "get tip %s", id)
	}
	return toDomainTip(m)
}

func (s *GormStore) ListTipsByCategory(ctx context.Context, category string) ([]domain.Tip, error) {
	return s.listTips(ctx, func(q *gorm.DB) *gorm.DB {
		return q.Where("category = ?", category)
	})
}

// SearchTips filters in Go so case folding matches MemoryStore exactly;
// SQLite's LOWER only folds ASCII.
func (s *GormStore) SearchTips(ctx context.Context, query string) ([]domain.Tip, error) {
	all, err := s.listTips(ctx, nil)
	if err != nil {
		return nil, err
	}
	lower := strings.ToLower(query)
	out := make([]domain.Tip, 0, len(all))
	for _, t := range all {
		if matchesQuery(t, lower) {
			out = append(out, t)
		}
	}
	return out, nil
}

func (s *GormStore) CreateTip(ctx context.Context, text, category string) (*domain.Tip, error) {
	return s.ImportTip(ctx, domain.Tip{
		Text:     text,
		Category: category,
	})
}

func (s *GormStore) ImportTip(ctx context.Context, tip domain.Tip) (*domain.Tip, error) {
	if tip.ID == "" {
		tip.ID = s.opts.newID()
	}
	if tip.CreatedAt.IsZero() {
		tip.CreatedAt = s.opts.now()
	}
	m := tipModel{
		ID:        tip.ID,
		Text:      tip.Text,
		Category:  tip.Category,
		Views:     tip.Views,
		Favorites: tip.Favorites,
		Rating:    tip.Rating,
		CreatedAt: tip.CreatedAt,
	}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&m).Error; err != nil {
			return errors.Wrap(err, "insert tip")
		}
		if err := adjustCategoryCount(tx, tip.Category, 1); err != nil {
			return err
		}
		return s.stats(tx).Update("total_tips", gorm.Expr("total_tips + ?", 1)).Error
	})
	if err != nil {
		return nil, err
	}
	return &tip, nil
}

func (s *GormStore) RecordView(ctx context.Context, id string) error {
	err := s.db.WithContext(ctx).Model(&tipModel{}).
		Where("id = ?", id).
		Update("views", gorm.Expr("views + ?", 1)).Error
	return errors.Wrap(err, "record view")
}

func (s *GormStore) ViewTip(ctx context.Context, id string) (*domain.Tip, error) {
	var out *domain.Tip
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&tipModel{}).Where("id = ?", id).Update("views", gorm.Expr("views + ?", 1))
		if res.Error != nil {
			return errors.Wrap(res.Error, "increment views")
		}
		if res.RowsAffected == 0 {
			return ErrTipNotFound
		}
		err := s.stats(tx).Updates(map[string]interface{}{
			"daily_tips":  gorm.Expr("daily_tips + ?", 1),
			"last_active": s.opts.now(),
		}).Error
		if err != nil {
			return errors.Wrap(err, "increment daily tips")
		}
		out, err = getTip(tx, id)
		return err
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (s *GormStore) AdjustTipFavoriteCount(ctx context.Context, id string, delta int) error {
	return adjustTipFavorites(s.db.WithContext(ctx), id, delta)
}

func adjustTipFavorites(tx *gorm.DB, id string, delta int) error {
	err := tx.Model(&tipModel{}).
		Where("id = ?", id).
		Update("favorites", gorm.Expr("favorites + ?", delta)).Error
	return errors.Wrap(err, "adjust tip favorites")
}

func (s *GormStore) ListFavorites(ctx context.Context) ([]domain.Favorite, error) {
	return s.listFavorites(ctx, nil)
}

func (s *GormStore) ListFavoritesByTipIDs(ctx context.Context, tipIDs []string) ([]domain.Favorite, error) {
	if len(tipIDs) == 0 {
		return []domain.Favorite{}, nil
	}
	return s.listFavorites(ctx, func(q *gorm.DB) *gorm.DB {
		return q.Where("tip_id IN ?", tipIDs)
	})
}

func (s *GormStore) listFavorites(ctx context.Context, scope func(*gorm.DB) *gorm.DB) ([]domain.Favorite, error) {
	var ms []favoriteModel
	q := s.db.WithContext(ctx).Order("created_at ASC").Order("id ASC")
	if scope != nil {
		q = scope(q)
	}
	if err := q.Find(&ms).Error; err != nil {
		return nil, errors.Wrap(err, "list favorites")
	}

	out := make([]domain.Favorite, len(ms))
	for i, m := range ms {
		out[i] = domain.Favorite{ID: m.ID, TipID: m.TipID, CreatedAt: m.CreatedAt}
	}
	return out, nil
}

func (s *GormStore) AddFavorite(ctx context.Context, tipID string) (*domain.Favorite, error) {
	var out *domain.Favorite
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var err error
		out, err = s.addFavorite(tx, tipID)
		return err
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (s *GormStore) addFavorite(tx *gorm.DB, tipID string) (*domain.Favorite, error) {
	m := favoriteModel{
		ID:        s.opts.newID(),
		TipID:     tipID,
		CreatedAt: s.opts.now(),
	}
	if err := tx.Create(&m).Error; err != nil {
		return nil, errors.Wrap(err, "insert favorite")
	}
	if err := adjustTipFavorites(tx, tipID, 1); err != nil {
		return nil, err
	}
	err := s.stats(tx).Update("favorites_count", gorm.Expr("favorites_count + ?", 1)).Error
	if err != nil {
		return nil, errors.Wrap(err, "increment favorites count")
	}
	return &domain.Favorite{ID: m.ID, TipID: m.TipID, CreatedAt: m.CreatedAt}, nil
}

func (s *GormStore) RemoveFavorite(ctx context.Context, tipID string) (bool, error) {
	var removed bool
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var err error
		removed, err = s.removeFavorite(tx, tipID)
		return err
	})
	return removed, err
}

func (s *GormStore) removeFavorite(tx *gorm.DB, tipID string) (bool, error) {
	var m favoriteModel
	err := tx.Where("tip_id = ?", tipID).Order("created_at ASC").Order("id ASC").First(&m).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return false, nil
	}
	if err != nil {
		return false, errors.Wrap(err, "find favorite")
	}

	if err := tx.Delete(&favoriteModel{}, "id = ?", m.ID).Error; err != nil {
		return false, errors.Wrap(err, "delete favorite")
	}
	if err := adjustTipFavorites(tx, tipID, -1); err != nil {
		return false, err
	}
	err = s.stats(tx).Update("favorites_count", gorm.Expr("favorites_count - ?", 1)).Error
	if err != nil {
		return false, errors.Wrap(err, "decrement favorites count")
	}
	return true, nil
}

func (s *GormStore) ToggleFavorite(ctx context.Context, tipID string) (*domain.Favorite, bool, error) {
	var (
		fav   *domain.Favorite
		added bool
	)
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		removed, err := s.removeFavorite(tx, tipID)
		if err != nil || removed {
			return err
		}
		fav, err = s.addFavorite(tx, tipID)
		added = err == nil
		return err
	})
	if err != nil {
		return nil, false, err
	}
	return fav, added, nil
}

func (s *GormStore) ListCategories(ctx context.Context) ([]domain.Category, error) {
	var ms []categoryModel
	if err := s.db.WithContext(ctx).Find(&ms).Error; err != nil {
		return nil, errors.Wrap(err, "list categories")
	}

	out := make([]domain.Category, len(ms))
	for i, m := range ms {
		out[i] = domain.Category{ID: m.ID, Name: m.Name, Count: m.Count}
	}
	sortCategories(out)
	return out, nil
}

func (s *GormStore) CreateCategory(ctx context.Context, name string) (*domain.Category, error) {
	if strings.TrimSpace(name) == "" {
		return nil, ErrInvalidCategory
	}

	m := categoryModel{ID: s.opts.newID(), Name: name}
	if err := s.db.WithContext(ctx).Create(&m).Error; err != nil {
		if isUniqueViolation(err) {
			return nil, ErrCategoryExists
		}
		return nil, errors.Wrap(err, "insert category")
	}
	return &domain.Category{ID: m.ID, Name: m.Name, Count: m.Count}, nil
}

func (s *GormStore) AdjustCategoryCount(ctx context.Context, name string, delta int) error {
	return adjustCategoryCount(s.db.WithContext(ctx), name, delta)
}

func adjustCategoryCount(tx *gorm.DB, name string, delta int) error {
	err := tx.Model(&categoryModel{}).
		Where("name = ?", name).
		Update("count", gorm.Expr("count + ?", delta)).Error
	return errors.Wrap(err, "adjust category count")
}

func (s *GormStore) GetStats(ctx context.Context) (domain.UserStats, error) {
	return s.loadStats(s.db.WithContext(ctx))
}

func (s *GormStore) loadStats(tx *gorm.DB) (domain.UserStats, error) {
	var m userStatsModel
	if err := tx.Where("id = ?", s.statsID).First(&m).Error; err != nil {
		return domain.UserStats{}, errors.Wrap(err, "load stats")
	}
	var out domain.UserStats
	if err := copier.Copy(&out, &m); err != nil {
		return domain.UserStats{}, errors.Wrap(err, "copy stats")
	}
	return out, nil
}

func (s *GormStore) UpdateStats(ctx context.Context, patch domain.StatsPatch) (domain.UserStats, error) {
	var out domain.UserStats
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		current, err := s.loadStats(tx)
		if err != nil {
			return err
		}
		next := patch.Apply(current)
		next.LastActive = s.opts.now()

		err = s.stats(tx).Updates(map[string]interface{}{
			"daily_tips":      next.DailyTips,
			"streak":          next.Streak,
			"total_tips":      next.TotalTips,
			"favorites_count": next.FavoritesCount,
			"last_active":     next.LastActive,
		}).Error
		if err != nil {
			return errors.Wrap(err, "update stats")
		}
		out = next
		return nil
	})
	return out, err
}

func toDomainTip(m tipModel) (*domain.Tip, error) {
	var t domain.Tip
	if err := copier.Copy(&t, &m); err != nil {
		return nil, errors.Wrap(err, "copy tip")
	}
	return &t, nil
}

func toDomainTips(ms []tipModel) ([]domain.Tip, error) {
	out := make([]domain.Tip, 0, len(ms))
	for _, m := range ms {
		t, err := toDomainTip(m)
		if err != nil {
			return nil, err
		}
		out = append(out, *t)
	}
	return out, nil
}

func isUniqueViolation(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "23505"
	}
	return strings.Contains(err.Error(), "UNIQUE constraint failed")
}
