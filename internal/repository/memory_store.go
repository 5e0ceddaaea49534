package repository

import (
	"context"
	"sort"
	"strings"
	"sync"

	"productivity/internal/domain"
)

type tipRecord struct {
	tip domain.Tip
	seq int64
}

type favoriteRecord struct {
	fav domain.Favorite
	seq int64
}

// MemoryStore keeps everything in maps guarded by a single mutex, so each
// method runs as one critical section.
type MemoryStore struct {
	mu         sync.Mutex
	opts       options
	seq        int64
	tips       map[string]*tipRecord
	favorites  map[string]*favoriteRecord
	categories map[string]*domain.Category // by id
	byName     map[string]string           // category name -> id
	stats      domain.UserStats
}

var _ Store = (*MemoryStore)(nil)

func NewMemoryStore(opts ...Option) *MemoryStore {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	return &MemoryStore{
		opts:       o,
		tips:       make(map[string]*tipRecord),
		favorites:  make(map[string]*favoriteRecord),
		categories: make(map[string]*domain.Category),
		byName:     make(map[string]string),
		stats: domain.UserStats{
			ID:         o.newID(),
			Streak:     InitialStreak,
			LastActive: o.now(),
		},
	}
}

func (s *MemoryStore) nextSeq() int64 {
	s.seq++
	return s.seq
}

// sortedTips returns copies ordered newest first. Caller holds mu.
func (s *MemoryStore) sortedTips(keep func(domain.Tip) bool) []domain.Tip {
	records := make([]*tipRecord, 0, len(s.tips))
	for _, r := range s.tips {
		if keep == nil || keep(r.tip) {
			records = append(records, r)
		}
	}
	sort.Slice(records, func(i, j int) bool {
		a, b := records[i], records[j]
		if !a.tip.CreatedAt.Equal(b.tip.CreatedAt) {
			return a.tip.CreatedAt.After(b.tip.CreatedAt)
		}
		return a.seq > b.seq
	})

	out := make([]domain.Tip, len(records))
	for i, r := range records {
		out[i] = r.tip
	}
	return out
}

func (s *MemoryStore) ListTips(_ context.Context) ([]domain.Tip, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.sortedTips(nil), nil
}

func (s *MemoryStore) GetTip(_ context.Context, id string) (*domain.Tip, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	r, ok := s.tips[id]
	if !ok {
		return nil, ErrTipNotFound
	}
	t := r.tip
	return &t, nil
}

func (s *MemoryStore) ListTipsByCategory(_ context.Context, category string) ([]domain.Tip, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.sortedTips(func(t domain.Tip) bool { return t.Category == category }), nil
}

func (s *MemoryStore) SearchTips(_ context.Context, query string) ([]domain.Tip, error) {
	lower := strings.ToLower(query)

	s.mu.Lock()
	defer s.mu.Unlock()
	return s.sortedTips(func(t domain.Tip) bool { return matchesQuery(t, lower) }), nil
}

func (s *MemoryStore) CreateTip(ctx context.Context, text, category string) (*domain.Tip, error) {
	return s.ImportTip(ctx, domain.Tip{
		Text:     text,
		Category: category,
	})
}

func (s *MemoryStore) ImportTip(_ context.Context, tip domain.Tip) (*domain.Tip, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if tip.ID == "" {
		tip.ID = s.opts.newID()
	}
	if tip.CreatedAt.IsZero() {
		tip.CreatedAt = s.opts.now()
	}
	s.tips[tip.ID] = &tipRecord{tip: tip, seq: s.nextSeq()}
	s.adjustCategoryCountLocked(tip.Category, 1)
	s.stats.TotalTips++

	out := tip
	return &out, nil
}

func (s *MemoryStore) RecordView(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if r, ok := s.tips[id]; ok {
		r.tip.Views++
	}
	return nil
}

func (s *MemoryStore) ViewTip(_ context.Context, id string) (*domain.Tip, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	r, ok := s.tips[id]
	if !ok {
		return nil, ErrTipNotFound
	}
	r.tip.Views++
	s.stats.DailyTips++
	s.stats.LastActive = s.opts.now()

	t := r.tip
	return &t, nil
}

func (s *MemoryStore) AdjustTipFavoriteCount(_ context.Context, id string, delta int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.adjustTipFavoritesLocked(id, delta)
	return nil
}

func (s *MemoryStore) adjustTipFavoritesLocked(id string, delta int) {
	if r, ok := s.tips[id]; ok {
		r.tip.Favorites += delta
	}
}

func (s *MemoryStore) sortedFavorites(keep func(domain.Favorite) bool) []domain.Favorite {
	records := make([]*favoriteRecord, 0, len(s.favorites))
	for _, r := range s.favorites {
		if keep == nil || keep(r.fav) {
			records = append(records, r)
		}
	}
	sort.Slice(records, func(i, j int) bool { return records[i].seq < records[j].seq })

	out := make([]domain.Favorite, len(records))
	for i, r := range records {
		out[i] = r.fav
	}
	return out
}

func (s *MemoryStore) ListFavorites(_ context.Context) ([]domain.Favorite, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.sortedFavorites(nil), nil
}

func (s *MemoryStore) ListFavoritesByTipIDs(_ context.Context, tipIDs []string) ([]domain.Favorite, error) {
	wanted := make(map[string]struct{}, len(tipIDs))
	for _, id := range tipIDs {
		wanted[id] = struct{}{}
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	return s.sortedFavorites(func(f domain.Favorite) bool {
		_, ok := wanted[f.TipID]
		return ok
	}), nil
}

func (s *MemoryStore) AddFavorite(_ context.Context, tipID string) (*domain.Favorite, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	fav := s.addFavoriteLocked(tipID)
	return &fav, nil
}

func (s *MemoryStore) addFavoriteLocked(tipID string) domain.Favorite {
	fav := domain.Favorite{
		ID:        s.opts.newID(),
		TipID:     tipID,
		CreatedAt: s.opts.now(),
	}
	s.favorites[fav.ID] = &favoriteRecord{fav: fav, seq: s.nextSeq()}
	s.adjustTipFavoritesLocked(tipID, 1)
	s.stats.FavoritesCount++
	return fav
}

func (s *MemoryStore) RemoveFavorite(_ context.Context, tipID string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.removeFavoriteLocked(tipID), nil
}

func (s *MemoryStore) removeFavoriteLocked(tipID string) bool {
	var oldest *favoriteRecord
	for _, r := range s.favorites {
		if r.fav.TipID != tipID {
			continue
		}
		if oldest == nil || r.seq < oldest.seq {
			oldest = r
		}
	}
	if oldest == nil {
		return false
	}

	delete(s.favorites, oldest.fav.ID)
	s.adjustTipFavoritesLocked(tipID, -1)
	s.stats.FavoritesCount--
	return true
}

func (s *MemoryStore) ToggleFavorite(_ context.Context, tipID string) (*domain.Favorite, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.removeFavoriteLocked(tipID) {
		return nil, false, nil
	}
	fav := s.addFavoriteLocked(tipID)
	return &fav, true, nil
}

func (s *MemoryStore) ListCategories(_ context.Context) ([]domain.Category, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]domain.Category, 0, len(s.categories))
	for _, c := range s.categories {
		out = append(out, *c)
	}
	sortCategories(out)
	return out, nil
}

func (s *MemoryStore) CreateCategory(_ context.Context, name string) (*domain.Category, error) {
	if strings.TrimSpace(name) == "" {
		return nil, ErrInvalidCategory
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.byName[name]; exists {
		return nil, ErrCategoryExists
	}
	c := &domain.Category{ID: s.opts.newID(), Name: name}
	s.categories[c.ID] = c
	s.byName[name] = c.ID

	out := *c
	return &out, nil
}

func (s *MemoryStore) AdjustCategoryCount(_ context.Context, name string, delta int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.adjustCategoryCountLocked(name, delta)
	return nil
}

func (s *MemoryStore) adjustCategoryCountLocked(name string, delta int) {
	if id, ok := s.byName[name]; ok {
		s.categories[id].Count += delta
	}
}

func (s *MemoryStore) GetStats(_ context.Context) (domain.UserStats, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.stats, nil
}

func (s *MemoryStore) UpdateStats(_ context.Context, patch domain.StatsPatch) (domain.UserStats, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	next := patch.Apply(s.stats)
	next.LastActive = s.opts.now()
	s.stats = next
	return s.stats, nil
}

func sortCategories(cs []domain.Category) {
	sort.SliceStable(cs, func(i, j int) bool {
		if cs[i].Count != cs[j].Count {
			return cs[i].Count > cs[j].Count
		}
		return cs[i].Name < cs[j].Name
	})
}
