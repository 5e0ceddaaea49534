package stats

import "productivity/internal/domain"

// UpdateStatsRequest is the body of PATCH /api/stats. Omitted fields keep
// their current value.
type UpdateStatsRequest struct {
	DailyTips      *int `json:"dailyTips" validate:"omitempty,min=0"`
	Streak         *int `json:"streak" validate:"omitempty,min=0"`
	TotalTips      *int `json:"totalTips" validate:"omitempty,min=0"`
	FavoritesCount *int `json:"favoritesCount" validate:"omitempty,min=0"`
}

func (r UpdateStatsRequest) Patch() domain.StatsPatch {
	return domain.StatsPatch{
		DailyTips:      r.DailyTips,
		Streak:         r.Streak,
		TotalTips:      r.TotalTips,
		FavoritesCount: r.FavoritesCount,
	}
}
