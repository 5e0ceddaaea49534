package live

import (
	"context"
	log "log/slog"
	"sync"

	"github.com/goccy/go-json"
	"github.com/google/uuid"
)

const sendBuffer = 32

type client struct {
	id   string
	send chan []byte
}

// Hub fans events out to every registered websocket client. A client whose
// buffer is full is dropped rather than blocking the publisher.
type Hub struct {
	mu      sync.RWMutex
	clients map[string]*client
	closed  bool
}

var _ Publisher = (*Hub)(nil)

func NewHub() *Hub {
	return &Hub{clients: make(map[string]*client)}
}

// Register adds a client and returns its id and outbound channel. The channel
// is closed when the client is unregistered or the hub shuts down.
func (h *Hub) Register() (string, <-chan []byte) {
	c := &client{id: uuid.NewString(), send: make(chan []byte, sendBuffer)}

	h.mu.Lock()
	defer h.mu.Unlock()
	if h.closed {
		close(c.send)
		return c.id, c.send
	}
	h.clients[c.id] = c
	return c.id, c.send
}

func (h *Hub) Unregister(id string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.removeLocked(id)
}

func (h *Hub) removeLocked(id string) {
	if c, ok := h.clients[id]; ok {
		close(c.send)
		delete(h.clients, id)
	}
}

func (h *Hub) Publish(ctx context.Context, ev Event) {
	payload, err := json.Marshal(ev)
	if err != nil {
		log.ErrorContext(ctx, "live: encode event", "type", ev.Type, "err", err)
		return
	}

	h.mu.Lock()
	defer h.mu.Unlock()
	for id, c := range h.clients {
		select {
		case c.send <- payload:
		default:
			log.WarnContext(ctx, "live: dropping slow client", "client", id)
			h.removeLocked(id)
		}
	}
}

func (h *Hub) ClientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

// Close disconnects every client; later registrations get a closed channel.
func (h *Hub) Close() {
	h.mu.Lock()
	defer h.mu.Unlock()
	for id := range h.clients {
		h.removeLocked(id)
	}
	h.closed = true
}
