package live

import (
	"context"
	"time"
)

const (
	EventTipCreated      = "tip.created"
	EventTipViewed       = "tip.viewed"
	EventFavoriteAdded   = "favorite.added"
	EventFavoriteRemoved = "favorite.removed"
	EventCategoryCreated = "category.created"
	EventStatsUpdated    = "stats.updated"

	eventPong = "pong"
)

// Event is pushed to every connected client after a state change.
type Event struct {
	Type string    `json:"type"`
	Data any       `json:"data,omitempty"`
	At   time.Time `json:"at"`
}

func NewEvent(eventType string, data any) Event {
	return Event{Type: eventType, Data: data, At: time.Now().UTC()}
}

// Publisher is what services depend on to announce changes.
type Publisher interface {
	Publish(ctx context.Context, ev Event)
}

// Nop drops every event.
type Nop struct{}

func (Nop) Publish(context.Context, Event) {}
