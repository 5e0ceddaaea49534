package live

import (
	log "log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/goccy/go-json"
	"github.com/gorilla/websocket"

	"productivity/internal/pkg/response"
)

const (
	writeWait  = 10 * time.Second
	pongWait   = 60 * time.Second
	pingPeriod = 30 * time.Second
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

type clientMessage struct {
	Type string `json:"type"`
}

type Handler struct {
	hub *Hub
}

func NewHandler(hub *Hub) *Handler {
	return &Handler{hub: hub}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/live", h.Connect)
}

// Connect upgrades to a websocket and streams change events until either side
// closes.
//
// @Summary Live change feed
// @Tags Live
// @Success 101
// @Failure 400 {object} map[string]string
// @Router /live [get]
func (h *Handler) Connect(c *gin.Context) {
	if !websocket.IsWebSocketUpgrade(c.Request) {
		response.Error(c, http.StatusBadRequest, "Websocket upgrade required")
		return
	}

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		log.WarnContext(c.Request.Context(), "live: upgrade failed", "err", err)
		return
	}

	id, send := h.hub.Register()
	ctx := c.Request.Context()
	log.InfoContext(ctx, "live: client connected", "client", id, "clients", h.hub.ClientCount())

	pongs := make(chan []byte, 1)
	done := make(chan struct{})
	go func() {
		defer close(done)
		h.readLoop(conn, pongs)
	}()

	h.writeLoop(conn, send, pongs, done)

	h.hub.Unregister(id)
	_ = conn.Close()
	<-done
	log.InfoContext(ctx, "live: client disconnected", "client", id)
}

// writeLoop owns every write on conn.
func (h *Handler) writeLoop(conn *websocket.Conn, send <-chan []byte, pongs <-chan []byte, done <-chan struct{}) {
	ticker := time.NewTicker(pingPeriod)
	defer ticker.Stop()

	for {
		select {
		case msg, ok := <-send:
			_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				_ = conn.WriteMessage(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
				return
			}
			if err := conn.WriteMessage(websocket.TextMessage, msg); err != nil {
				return
			}
		case msg := <-pongs:
			_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := conn.WriteMessage(websocket.TextMessage, msg); err != nil {
				return
			}
		case <-ticker.C:
			_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		case <-done:
			return
		}
	}
}

// readLoop answers application-level pings and detects disconnects. Other
// client messages are ignored.
func (h *Handler) readLoop(conn *websocket.Conn, pongs chan<- []byte) {
	_ = conn.SetReadDeadline(time.Now().Add(pongWait))
	conn.SetPongHandler(func(string) error {
		return conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		_, raw, err := conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				log.Warn("live: read failed", "err", err)
			}
			return
		}

		var msg clientMessage
		if json.Unmarshal(raw, &msg) != nil || msg.Type != "ping" {
			continue
		}
		payload, _ := json.Marshal(NewEvent(eventPong, nil))
		select {
		case pongs <- payload:
		default:
		}
	}
}
