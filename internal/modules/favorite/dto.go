package favorite

import "productivity/internal/domain"

// AddFavoriteRequest is the body of POST /api/favorites and /api/favorites/toggle.
type AddFavoriteRequest struct {
	TipID string `json:"tipId" validate:"required,notblank"`
}

const (
	ActionAdded   = "added"
	ActionRemoved = "removed"
)

// ToggleResponse reports which way a toggle went. Favorite is set only when
// the call added one.
type ToggleResponse struct {
	Action   string           `json:"action"`
	Favorite *domain.Favorite `json:"favorite,omitempty"`
}
