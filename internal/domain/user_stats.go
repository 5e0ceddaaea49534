package domain

import "time"

// UserStats is the single process-wide activity record.
type UserStats struct {
	ID             string    `json:"id"`
	DailyTips      int       `json:"dailyTips"`
	Streak         int       `json:"streak"`
	TotalTips      int       `json:"totalTips"`
	FavoritesCount int       `json:"favoritesCount"`
	LastActive     time.Time `json:"lastActive"`
}

// StatsPatch carries the fields to merge into UserStats. Nil fields are left
// untouched; LastActive is always refreshed by the store.
type StatsPatch struct {
	DailyTips      *int `json:"dailyTips,omitempty"`
	Streak         *int `json:"streak,omitempty"`
	TotalTips      *int `json:"totalTips,omitempty"`
	FavoritesCount *int `json:"favoritesCount,omitempty"`
}

// Apply merges p into s and returns the result.
func (p StatsPatch) Apply(s UserStats) UserStats {
	if p.DailyTips != nil {
		s.DailyTips = *p.DailyTips
	}
	if p.Streak != nil {
		s.Streak = *p.Streak
	}
	if p.TotalTips != nil {
		s.TotalTips = *p.TotalTips
	}
	if p.FavoritesCount != nil {
		s.FavoritesCount = *p.FavoritesCount
	}
	return s
}

// IsEmpty reports whether the patch changes no counter.
func (p StatsPatch) IsEmpty() bool {
	return p.DailyTips == nil && p.Streak == nil && p.TotalTips == nil && p.FavoritesCount == nil
}
