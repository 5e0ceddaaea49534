package tips

import "errors"

var (
	ErrNoTips     = errors.New("no tips available")
	ErrEmptyQuery = errors.New("search query is required")
)
