package domain

import (
	"time"
)

// Favorite marks a tip as liked. Nothing prevents two rows for the same tip;
// RemoveFavorite deletes one of them at a time.
type Favorite struct {
	ID        string    `json:"id"`
	TipID     string    `json:"tipId"`
	CreatedAt time.Time `json:"createdAt"`
}
