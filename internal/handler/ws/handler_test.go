package ws

import (
	"encoding/json"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/gorilla/websocket"

	"github.com/barefootbuddy/backend/internal/realtime"
)

func newTestServer(t *testing.T) (*httptest.Server, *realtime.Hub) {
	t.Helper()
	hub := realtime.NewHub()
	router := chi.NewRouter()
	New(hub).RegisterRoutes(router)
	server := httptest.NewServer(router)
	t.Cleanup(server.Close)
	return server, hub
}

func dial(t *testing.T, server *httptest.Server) *websocket.Conn {
	t.Helper()
	url := "ws" + strings.TrimPrefix(server.URL, "http") + "/ws"
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		t.Fatalf("dial failed: %v", err)
	}
	t.Cleanup(func() { conn.Close() })
	return conn
}

func readFrame(t *testing.T, conn *websocket.Conn) map[string]interface{} {
	t.Helper()
	_ = conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	_, raw, err := conn.ReadMessage()
	if err != nil {
		t.Fatalf("read failed: %v", err)
	}
	var frame map[string]interface{}
	if err := json.Unmarshal(raw, &frame); err != nil {
		t.Fatalf("bad frame %q: %v", raw, err)
	}
	return frame
}

func expectSilence(t *testing.T, conn *websocket.Conn) {
	t.Helper()
	_ = conn.SetReadDeadline(time.Now().Add(200 * time.Millisecond))
	if _, raw, err := conn.ReadMessage(); err == nil {
		t.Fatalf("expected no frame, got %q", raw)
	}
}

func TestPingAnsweredToSenderOnly(t *testing.T) {
	server, _ := newTestServer(t)
	alice := dial(t, server)
	bob := dial(t, server)

	if err := alice.WriteJSON(map[string]string{"type": "ping"}); err != nil {
		t.Fatalf("write failed: %v", err)
	}

	frame := readFrame(t, alice)
	if frame["type"] != "pong" {
		t.Fatalf("expected pong, got %v", frame)
	}
	expectSilence(t, bob)
}

func TestLocationUpdateRelayedVerbatim(t *testing.T) {
	server, _ := newTestServer(t)
	alice := dial(t, server)
	bob := dial(t, server)

	// Ping first so ordering of hub registration is settled before the
	// relay frame goes out.
	_ = bob.WriteJSON(map[string]string{"type": "ping"})
	readFrame(t, bob)

	payload := `{"type":"location_update","user_id":"alice","data":{"latitude":39.0,"longitude":-74.8},"extra":"kept"}`
	if err := alice.WriteMessage(websocket.TextMessage, []byte(payload)); err != nil {
		t.Fatalf("write failed: %v", err)
	}

	frame := readFrame(t, bob)
	if frame["type"] != "location_update" || frame["user_id"] != "alice" {
		t.Fatalf("unexpected relay frame: %v", frame)
	}
	// Verbatim relay keeps fields the server does not model.
	if frame["extra"] != "kept" {
		t.Fatalf("unknown field dropped in relay: %v", frame)
	}

	// The sender never hears its own frame back.
	expectSilence(t, alice)
}

func TestUnknownFrameIgnored(t *testing.T) {
	server, _ := newTestServer(t)
	alice := dial(t, server)
	bob := dial(t, server)

	if err := alice.WriteJSON(map[string]string{"type": "mystery"}); err != nil {
		t.Fatalf("write failed: %v", err)
	}
	expectSilence(t, bob)

	// Connection survives the unknown frame.
	_ = alice.WriteJSON(map[string]string{"type": "ping"})
	if frame := readFrame(t, alice); frame["type"] != "pong" {
		t.Fatalf("expected pong after unknown frame, got %v", frame)
	}
}

func TestDisconnectRemovesConnection(t *testing.T) {
	server, hub := newTestServer(t)
	alice := dial(t, server)
	dial(t, server)

	waitForCount(t, hub, 2)
	alice.Close()
	waitForCount(t, hub, 1)
}

func TestHubBroadcastReachesEveryClient(t *testing.T) {
	server, hub := newTestServer(t)
	alice := dial(t, server)
	bob := dial(t, server)
	waitForCount(t, hub, 2)

	hub.Broadcast(map[string]interface{}{
		"type":       "ghost_mode_update",
		"user_id":    "carol",
		"ghost_mode": true,
	})

	for _, conn := range []*websocket.Conn{alice, bob} {
		frame := readFrame(t, conn)
		if frame["type"] != "ghost_mode_update" || frame["user_id"] != "carol" {
			t.Fatalf("unexpected frame: %v", frame)
		}
	}
}

func TestServerPingsIdleConnections(t *testing.T) {
	hub := realtime.NewHub()
	handler := New(hub)
	handler.pingInterval = 20 * time.Millisecond
	router := chi.NewRouter()
	handler.RegisterRoutes(router)
	server := httptest.NewServer(router)
	t.Cleanup(server.Close)

	conn := dial(t, server)

	pings := make(chan struct{}, 1)
	conn.SetPingHandler(func(string) error {
		select {
		case pings <- struct{}{}:
		default:
		}
		return nil
	})

	// Control frames are delivered inside ReadMessage; an idle listener
	// still runs a read loop.
	go func() {
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()

	select {
	case <-pings:
	case <-time.After(2 * time.Second):
		t.Fatal("idle connection never received a server ping")
	}

	waitForCount(t, hub, 1)
}

func waitForCount(t *testing.T, hub *realtime.Hub, want int) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if hub.Count() == want {
			return
		}
		time.Sleep(10 * time.Millisecond)
	}
	t.Fatalf("connection count never reached %d (have %d)", want, hub.Count())
}
