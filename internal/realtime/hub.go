package realtime

import (
	"sync"
	"time"

	"github.com/gorilla/websocket"
	log "github.com/sirupsen/logrus"
)

const writeTimeout = 10 * time.Second

// Conn wraps a websocket connection with a write lock; gorilla
// connections do not allow concurrent writers.
type Conn struct {
	ws *websocket.Conn
	mu sync.Mutex
}

// Send writes one JSON frame with a bounded write deadline.
func (c *Conn) Send(payload interface{}) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	_ = c.ws.SetWriteDeadline(time.Now().Add(writeTimeout))
	return c.ws.WriteJSON(payload)
}

// Ping writes a protocol ping. Clients answer it automatically, which
// refreshes the server-side read deadline through the pong handler.
func (c *Conn) Ping() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.ws.WriteControl(websocket.PingMessage, nil, time.Now().Add(writeTimeout))
}

// Hub owns the set of live connections and fans events out to them.
// It is passed by reference to the handlers that need it; there is no
// package-level instance.
type Hub struct {
	mu    sync.RWMutex
	conns map[*Conn]struct{}
}

// NewHub creates an empty hub.
func NewHub() *Hub {
	return &Hub{conns: make(map[*Conn]struct{})}
}

// Add registers an upgraded connection and returns its handle.
func (h *Hub) Add(ws *websocket.Conn) *Conn {
	conn := &Conn{ws: ws}
	h.mu.Lock()
	h.conns[conn] = struct{}{}
	h.mu.Unlock()
	return conn
}

// Remove drops a connection and closes the socket.
func (h *Hub) Remove(conn *Conn) {
	h.mu.Lock()
	delete(h.conns, conn)
	h.mu.Unlock()
	_ = conn.ws.Close()
}

// Count reports the number of live connections.
func (h *Hub) Count() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.conns)
}

// Broadcast sends the event to every live connection. Connections
// whose send fails are collected during the pass and removed after it,
// which keeps iteration safe.
func (h *Hub) Broadcast(event interface{}) {
	h.broadcast(event, nil)
}

// BroadcastExcept sends the event to every live connection but the
// sender (peer-originated relay frames).
func (h *Hub) BroadcastExcept(sender *Conn, event interface{}) {
	h.broadcast(event, sender)
}

func (h *Hub) broadcast(event interface{}, skip *Conn) {
	h.mu.RLock()
	snapshot := make([]*Conn, 0, len(h.conns))
	for conn := range h.conns {
		if conn != skip {
			snapshot = append(snapshot, conn)
		}
	}
	h.mu.RUnlock()

	var failed []*Conn
	for _, conn := range snapshot {
		if err := conn.Send(event); err != nil {
			log.WithError(err).Debug("dropping connection after failed broadcast")
			failed = append(failed, conn)
		}
	}

	for _, conn := range failed {
		h.Remove(conn)
	}
}
