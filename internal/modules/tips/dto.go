package tips

// CreateTipRequest is the body of POST /api/tips.
type CreateTipRequest struct {
	Text     string `json:"text" validate:"required,notblank"`
	Category string `json:"category" validate:"required,notblank"`
}
