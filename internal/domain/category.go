package domain

// Category groups tips by name. Count is maintained incrementally when tips are
// created and is never recomputed from the tip collection.
type Category struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Count int    `json:"count"`
}
