package domain

import "time"

// Tip is a single productivity suggestion shown to the user.
// Rating is stored as rating*10, so 0..50 maps to 0.0..5.0.
type Tip struct {
	ID        string    `json:"id"`
	Text      string    `json:"text"`
	Category  string    `json:"category"`
	Views     int       `json:"views"`
	Favorites int       `json:"favorites"`
	Rating    int       `json:"rating"`
	CreatedAt time.Time `json:"createdAt"`
}
