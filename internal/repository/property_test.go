package repository

import (
	"context"
	"sort"
	"strings"
	"testing"

	"pgregory.net/rapid"

	"productivity/internal/domain"
)

func categoryGenerator() *rapid.Generator[string] {
	return rapid.SampledFrom([]string{"Planning", "Focus & Concentration", "Wellness", "TIME management"})
}

func textGenerator() *rapid.Generator[string] {
	return rapid.StringMatching(`[A-Za-z ]{1,40}`)
}

func seedRapidStore(t *rapid.T) (*MemoryStore, []domain.Tip) {
	s := NewMemoryStore(WithClock(newStepClock().Now))
	ctx := context.Background()

	n := rapid.IntRange(0, 20).Draw(t, "tips")
	created := make([]domain.Tip, 0, n)
	for i := 0; i < n; i++ {
		tip, err := s.CreateTip(ctx, textGenerator().Draw(t, "text"), categoryGenerator().Draw(t, "category"))
		if err != nil {
			t.Fatalf("create tip: %v", err)
		}
		created = append(created, *tip)
	}
	return s, created
}

func testCreatedTipsStartAtZero_Properties(t *rapid.T) {
	_, created := seedRapidStore(t)
	for _, tip := range created {
		if tip.Views != 0 || tip.Favorites != 0 || tip.Rating != 0 {
			t.Fatalf("tip %s created with counters %d/%d/%d", tip.ID, tip.Views, tip.Favorites, tip.Rating)
		}
	}
}

func TestCreatedTipsStartAtZero_Properties(t *testing.T) {
	rapid.Check(t, testCreatedTipsStartAtZero_Properties)
}

func testListTipsNewestFirst_Properties(t *rapid.T) {
	s, created := seedRapidStore(t)

	tips, err := s.ListTips(context.Background())
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(tips) != len(created) {
		t.Fatalf("got %d tips, want %d", len(tips), len(created))
	}
	// Creation order reversed.
	for i := range tips {
		if tips[i].ID != created[len(created)-1-i].ID {
			t.Fatalf("position %d: got %s, want %s", i, tips[i].ID, created[len(created)-1-i].ID)
		}
	}
	if !sort.SliceIsSorted(tips, func(i, j int) bool { return tips[i].CreatedAt.After(tips[j].CreatedAt) }) {
		t.Fatalf("tips not ordered by createdAt descending")
	}
}

func TestListTipsNewestFirst_Properties(t *testing.T) {
	rapid.Check(t, testListTipsNewestFirst_Properties)
}

func testSearchMatchesFilter_Properties(t *rapid.T) {
	s, created := seedRapidStore(t)
	query := rapid.StringMatching(`[A-Za-z ]{1,4}`).Draw(t, "query")
	ctx := context.Background()

	want := map[string]bool{}
	lower := strings.ToLower(query)
	for _, tip := range created {
		if strings.Contains(strings.ToLower(tip.Text), lower) || strings.Contains(strings.ToLower(tip.Category), lower) {
			want[tip.ID] = true
		}
	}

	got, err := s.SearchTips(ctx, query)
	if err != nil {
		t.Fatalf("search: %v", err)
	}
	if len(got) != len(want) {
		t.Fatalf("query %q: got %d results, want %d", query, len(got), len(want))
	}
	for _, tip := range got {
		if !want[tip.ID] {
			t.Fatalf("query %q returned unexpected tip %q", query, tip.Text)
		}
	}

	again, err := s.SearchTips(ctx, query)
	if err != nil {
		t.Fatalf("search again: %v", err)
	}
	if strings.Join(ids(got), ",") != strings.Join(ids(again), ",") {
		t.Fatalf("search is not idempotent for %q", query)
	}
}

func TestSearchMatchesFilter_Properties(t *testing.T) {
	rapid.Check(t, testSearchMatchesFilter_Properties)
}

func testFavoriteRoundTrip_Properties(t *rapid.T) {
	s, created := seedRapidStore(t)
	if len(created) == 0 {
		t.Skip("no tips")
	}
	ctx := context.Background()
	target := rapid.SampledFrom(created).Draw(t, "tip")

	// Pre-existing favorites must not matter.
	for i := rapid.IntRange(0, 3).Draw(t, "existing"); i > 0; i-- {
		if _, err := s.AddFavorite(ctx, target.ID); err != nil {
			t.Fatalf("add: %v", err)
		}
	}

	beforeTip, _ := s.GetTip(ctx, target.ID)
	beforeStats, _ := s.GetStats(ctx)

	if _, err := s.AddFavorite(ctx, target.ID); err != nil {
		t.Fatalf("add: %v", err)
	}
	removed, err := s.RemoveFavorite(ctx, target.ID)
	if err != nil || !removed {
		t.Fatalf("remove: removed=%v err=%v", removed, err)
	}

	afterTip, _ := s.GetTip(ctx, target.ID)
	afterStats, _ := s.GetStats(ctx)
	if afterTip.Favorites != beforeTip.Favorites {
		t.Fatalf("tip favorites %d, want %d", afterTip.Favorites, beforeTip.Favorites)
	}
	if afterStats.FavoritesCount != beforeStats.FavoritesCount {
		t.Fatalf("favoritesCount %d, want %d", afterStats.FavoritesCount, beforeStats.FavoritesCount)
	}
}

func TestFavoriteRoundTrip_Properties(t *testing.T) {
	rapid.Check(t, testFavoriteRoundTrip_Properties)
}

func testToggleKeepsAtMostOneFavorite_Properties(t *rapid.T) {
	s := NewMemoryStore()
	ctx := context.Background()

	toggles := rapid.IntRange(1, 15).Draw(t, "toggles")
	for i := 0; i < toggles; i++ {
		if _, _, err := s.ToggleFavorite(ctx, "tip"); err != nil {
			t.Fatalf("toggle: %v", err)
		}
		favs, _ := s.ListFavoritesByTipIDs(ctx, []string{"tip"})
		if want := (i + 1) % 2; len(favs) != want {
			t.Fatalf("after %d toggles: %d favorites, want %d", i+1, len(favs), want)
		}
	}
}

func TestToggleKeepsAtMostOneFavorite_Properties(t *testing.T) {
	rapid.Check(t, testToggleKeepsAtMostOneFavorite_Properties)
}
