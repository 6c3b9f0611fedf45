package ws

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/gorilla/websocket"
	log "github.com/sirupsen/logrus"

	"github.com/barefootbuddy/backend/internal/realtime"
)

const (
	readDeadline = 90 * time.Second
	// pingInterval keeps idle listeners alive: protocol pings are
	// answered automatically by clients and the pong refreshes the
	// read deadline.
	pingInterval = 30 * time.Second
	readLimit    = int64(16 << 10)
)

// frame is the discriminated JSON envelope on the push channel.
type frame struct {
	Type      string          `json:"type"`
	UserID    string          `json:"user_id,omitempty"`
	Data      json.RawMessage `json:"data,omitempty"`
	GhostMode *bool           `json:"ghost_mode,omitempty"`
	Online    *bool           `json:"online,omitempty"`
}

// Handler owns the push-channel endpoint.
type Handler struct {
	hub          *realtime.Hub
	upgrader     websocket.Upgrader
	pingInterval time.Duration
}

// New creates the websocket handler around the shared hub.
func New(hub *realtime.Hub) *Handler {
	return &Handler{
		hub: hub,
		upgrader: websocket.Upgrader{
			// The festival frontend is served from another origin.
			CheckOrigin:     func(r *http.Request) bool { return true },
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
		},
		pingInterval: pingInterval,
	}
}

// RegisterRoutes mounts the websocket endpoint.
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Get("/ws", h.handleWebSocket)
}

func (h *Handler) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	ws, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.WithError(err).Warn("websocket upgrade failed")
		return
	}

	conn := h.hub.Add(ws)
	log.WithField("connections", h.hub.Count()).Info("websocket connected")

	done := make(chan struct{})
	go h.pingLoop(conn, done)

	h.readLoop(conn, ws)
	close(done)
}

// pingLoop keeps idle connections from hitting the read deadline.
// Teardown stays with the read loop; a failed ping just stops pinging
// and lets the next read or broadcast surface the dead peer.
func (h *Handler) pingLoop(conn *realtime.Conn, done <-chan struct{}) {
	ticker := time.NewTicker(h.pingInterval)
	defer ticker.Stop()

	for {
		select {
		case <-done:
			return
		case <-ticker.C:
			if err := conn.Ping(); err != nil {
				return
			}
		}
	}
}

// readLoop handles inbound control frames until the peer closes or a
// read fails; that is the only teardown path.
func (h *Handler) readLoop(conn *realtime.Conn, ws *websocket.Conn) {
	defer func() {
		h.hub.Remove(conn)
		log.WithField("connections", h.hub.Count()).Info("websocket disconnected")
	}()

	ws.SetReadLimit(readLimit)
	_ = ws.SetReadDeadline(time.Now().Add(readDeadline))
	ws.SetPongHandler(func(string) error {
		return ws.SetReadDeadline(time.Now().Add(readDeadline))
	})

	for {
		_, raw, err := ws.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure, websocket.CloseAbnormalClosure) {
				log.WithError(err).Debug("websocket read failed")
			}
			return
		}

		_ = ws.SetReadDeadline(time.Now().Add(readDeadline))

		var msg frame
		if err := json.Unmarshal(raw, &msg); err != nil {
			log.WithError(err).Debug("discarding malformed frame")
			continue
		}

		switch msg.Type {
		case "ping":
			if err := conn.Send(map[string]string{"type": "pong"}); err != nil {
				return
			}
		case "location_update":
			// Push-only signaling: the raw frame is relayed verbatim
			// to the other connections, never persisted.
			h.hub.BroadcastExcept(conn, json.RawMessage(raw))
		default:
			log.WithField("type", msg.Type).Debug("ignoring unknown frame type")
		}
	}
}
