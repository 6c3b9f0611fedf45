package location_test

import (
	"context"
	"errors"
	"sync"
	"testing"

	locmodel "github.com/barefootbuddy/backend/internal/model/location"
	location "github.com/barefootbuddy/backend/internal/service/location"
)

// memDurable is an in-memory locmodel.Store.
type memDurable struct {
	mu        sync.Mutex
	locations map[string]locmodel.Location
	presence  map[string]locmodel.Presence
}

func newMemDurable() *memDurable {
	return &memDurable{
		locations: make(map[string]locmodel.Location),
		presence:  make(map[string]locmodel.Presence),
	}
}

func (m *memDurable) UpsertLocation(_ context.Context, loc locmodel.Location) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.locations[loc.UserID] = loc
	return nil
}

func (m *memDurable) GetLocation(_ context.Context, userID string) (locmodel.Location, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	loc, ok := m.locations[userID]
	if !ok {
		return locmodel.Location{}, errors.New("not found")
	}
	return loc, nil
}

func (m *memDurable) VisibleLocations(_ context.Context) ([]locmodel.Location, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []locmodel.Location
	for _, loc := range m.locations {
		if !loc.GhostMode {
			out = append(out, loc)
		}
	}
	return out, nil
}

func (m *memDurable) SetGhostMode(_ context.Context, userID string, ghost bool, lastSeen int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	loc := m.locations[userID]
	loc.UserID = userID
	loc.GhostMode = ghost
	loc.Timestamp = lastSeen
	m.locations[userID] = loc
	return nil
}

func (m *memDurable) UpsertPresence(_ context.Context, presence locmodel.Presence) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.presence[presence.UserID] = presence
	return nil
}

func (m *memDurable) GetPresence(_ context.Context, userID string) (locmodel.Presence, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	presence, ok := m.presence[userID]
	if !ok {
		return locmodel.Presence{}, errors.New("not found")
	}
	return presence, nil
}

func (m *memDurable) AllPresence(_ context.Context) ([]locmodel.Presence, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []locmodel.Presence
	for _, p := range m.presence {
		out = append(out, p)
	}
	return out, nil
}

// memLive is an in-memory locmodel.LiveStore with switchable failure.
type memLive struct {
	mu        sync.Mutex
	locations map[string]locmodel.Location
	presence  map[string]locmodel.Presence
	broken    bool
}

func newMemLive() *memLive {
	return &memLive{
		locations: make(map[string]locmodel.Location),
		presence:  make(map[string]locmodel.Presence),
	}
}

func (m *memLive) SetLocation(loc locmodel.Location) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.broken {
		return errors.New("live store down")
	}
	m.locations[loc.UserID] = loc
	return nil
}

func (m *memLive) RemoveLocation(userID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.broken {
		return errors.New("live store down")
	}
	delete(m.locations, userID)
	return nil
}

func (m *memLive) Locations() ([]locmodel.Location, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.broken {
		return nil, errors.New("live store down")
	}
	var out []locmodel.Location
	for _, loc := range m.locations {
		out = append(out, loc)
	}
	return out, nil
}

func (m *memLive) SetPresence(presence locmodel.Presence) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.broken {
		return errors.New("live store down")
	}
	m.presence[presence.UserID] = presence
	return nil
}

func (m *memLive) Presences() ([]locmodel.Presence, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.broken {
		return nil, errors.New("live store down")
	}
	var out []locmodel.Presence
	for _, p := range m.presence {
		out = append(out, p)
	}
	return out, nil
}

func (m *memLive) setBroken(broken bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.broken = broken
}

// recordingBroadcaster captures every pushed event.
type recordingBroadcaster struct {
	mu     sync.Mutex
	events []map[string]interface{}
}

func (b *recordingBroadcaster) Broadcast(event interface{}) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if m, ok := event.(map[string]interface{}); ok {
		b.events = append(b.events, m)
	}
}

func (b *recordingBroadcaster) last(t *testing.T) map[string]interface{} {
	t.Helper()
	b.mu.Lock()
	defer b.mu.Unlock()
	if len(b.events) == 0 {
		t.Fatal("no events broadcast")
	}
	return b.events[len(b.events)-1]
}

func TestUpdateLocationBroadcastsAndMirrors(t *testing.T) {
	durable := newMemDurable()
	live := newMemLive()
	broadcaster := &recordingBroadcaster{}
	svc := location.NewService(durable, live, broadcaster)
	ctx := context.Background()

	if err := svc.UpdateLocation(ctx, "alice", 39.0, -74.8, 5.0, false); err != nil {
		t.Fatalf("UpdateLocation err: %v", err)
	}

	event := broadcaster.last(t)
	if event["type"] != "location_update" || event["user_id"] != "alice" {
		t.Fatalf("unexpected event: %v", event)
	}

	if _, ok := live.locations["alice"]; !ok {
		t.Fatal("live mirror missing the location")
	}
	loc, err := durable.GetLocation(ctx, "alice")
	if err != nil || loc.Latitude != 39.0 {
		t.Fatalf("durable row wrong: %+v err=%v", loc, err)
	}
	if p := durable.presence["alice"]; !p.Online {
		t.Fatalf("presence not marked online: %+v", p)
	}
}

func TestUpdateLocationGhostKeepsCoordinatesOffTheWire(t *testing.T) {
	durable := newMemDurable()
	live := newMemLive()
	broadcaster := &recordingBroadcaster{}
	svc := location.NewService(durable, live, broadcaster)
	ctx := context.Background()

	if err := svc.UpdateLocation(ctx, "bob", 39.1, -74.9, 10.0, true); err != nil {
		t.Fatalf("UpdateLocation err: %v", err)
	}

	event := broadcaster.last(t)
	if event["type"] != "ghost_mode_update" {
		t.Fatalf("expected ghost_mode_update, got %v", event)
	}
	if _, ok := event["data"]; ok {
		t.Fatal("ghost event must not carry coordinates")
	}

	if _, ok := live.locations["bob"]; ok {
		t.Fatal("ghost location leaked into live store")
	}
	// Durable row survives, hidden from group reads.
	if _, err := durable.GetLocation(ctx, "bob"); err != nil {
		t.Fatal("durable row should be kept for ghost users")
	}
	visible, err := svc.GroupLocations(ctx, "")
	if err != nil {
		t.Fatalf("GroupLocations err: %v", err)
	}
	if _, ok := visible["bob"]; ok {
		t.Fatal("ghost user visible in group read")
	}
}

func TestGhostModeToggleHidesAndReappears(t *testing.T) {
	durable := newMemDurable()
	live := newMemLive()
	svc := location.NewService(durable, live, nil)
	ctx := context.Background()

	if err := svc.UpdateLocation(ctx, "carol", 39.2, -74.7, 3.0, false); err != nil {
		t.Fatalf("UpdateLocation err: %v", err)
	}

	if err := svc.SetGhostMode(ctx, "carol", true); err != nil {
		t.Fatalf("SetGhostMode(true) err: %v", err)
	}
	visible, _ := svc.GroupLocations(ctx, "")
	if _, ok := visible["carol"]; ok {
		t.Fatal("ghost user still visible")
	}

	if err := svc.SetGhostMode(ctx, "carol", false); err != nil {
		t.Fatalf("SetGhostMode(false) err: %v", err)
	}
	visible, _ = svc.GroupLocations(ctx, "")
	loc, ok := visible["carol"]
	if !ok {
		t.Fatal("user did not reappear after leaving ghost mode")
	}
	if loc.Latitude != 39.2 || loc.Longitude != -74.7 {
		t.Fatalf("reappeared with wrong coordinates: %+v", loc)
	}
}

func TestGroupLocationsExcludesRequester(t *testing.T) {
	durable := newMemDurable()
	svc := location.NewService(durable, newMemLive(), nil)
	ctx := context.Background()

	svc.UpdateLocation(ctx, "alice", 1, 2, 0, false)
	svc.UpdateLocation(ctx, "bob", 3, 4, 0, false)

	visible, err := svc.GroupLocations(ctx, "alice")
	if err != nil {
		t.Fatalf("GroupLocations err: %v", err)
	}
	if _, ok := visible["alice"]; ok {
		t.Fatal("requester should be excluded")
	}
	if _, ok := visible["bob"]; !ok {
		t.Fatal("other user missing")
	}
}

func TestGroupLocationsFallsBackToDurable(t *testing.T) {
	durable := newMemDurable()
	live := newMemLive()
	svc := location.NewService(durable, live, nil)
	ctx := context.Background()

	svc.UpdateLocation(ctx, "dora", 5, 6, 0, false)

	live.setBroken(true)
	visible, err := svc.GroupLocations(ctx, "")
	if err != nil {
		t.Fatalf("GroupLocations err: %v", err)
	}
	if loc, ok := visible["dora"]; !ok || loc.Latitude != 5 {
		t.Fatalf("durable fallback missing row: %v", visible)
	}
}

func TestUpdatePresenceIdempotent(t *testing.T) {
	durable := newMemDurable()
	svc := location.NewService(durable, nil, nil)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		if err := svc.UpdatePresence(ctx, "erin", true); err != nil {
			t.Fatalf("UpdatePresence err: %v", err)
		}
	}

	status, err := svc.PresenceStatus(ctx)
	if err != nil {
		t.Fatalf("PresenceStatus err: %v", err)
	}
	if len(status) != 1 {
		t.Fatalf("expected a single presence row, got %d", len(status))
	}
	if p := status["erin"]; !p.Online || p.LastSeen == 0 {
		t.Fatalf("unexpected presence: %+v", p)
	}

	if err := svc.UpdatePresence(ctx, "erin", false); err != nil {
		t.Fatalf("UpdatePresence err: %v", err)
	}
	status, _ = svc.PresenceStatus(ctx)
	if status["erin"].Online {
		t.Fatal("offline update not applied")
	}
}

func TestUpdatePresencePreservesGhostMode(t *testing.T) {
	durable := newMemDurable()
	live := newMemLive()
	svc := location.NewService(durable, live, nil)
	ctx := context.Background()

	if err := svc.UpdateLocation(ctx, "gwen", 39.0, -74.8, 0, true); err != nil {
		t.Fatalf("UpdateLocation err: %v", err)
	}

	// A presence-only heartbeat must not flip the ghost flag back.
	if err := svc.UpdatePresence(ctx, "gwen", true); err != nil {
		t.Fatalf("UpdatePresence err: %v", err)
	}

	status, err := svc.PresenceStatus(ctx)
	if err != nil {
		t.Fatalf("PresenceStatus err: %v", err)
	}
	p, ok := status["gwen"]
	if !ok {
		t.Fatal("user missing from presence")
	}
	if !p.GhostMode {
		t.Fatal("presence heartbeat cleared the ghost flag")
	}
	if !p.Online {
		t.Fatalf("unexpected presence: %+v", p)
	}

	// The live mirror carries the same intact flag.
	rows, err := live.Presences()
	if err != nil {
		t.Fatalf("Presences err: %v", err)
	}
	for _, row := range rows {
		if row.UserID == "gwen" && !row.GhostMode {
			t.Fatal("live mirror lost the ghost flag")
		}
	}
}

func TestPresenceIncludesGhostUsers(t *testing.T) {
	durable := newMemDurable()
	svc := location.NewService(durable, nil, nil)
	ctx := context.Background()

	svc.UpdateLocation(ctx, "frank", 1, 1, 0, false)
	svc.SetGhostMode(ctx, "frank", true)

	status, err := svc.PresenceStatus(ctx)
	if err != nil {
		t.Fatalf("PresenceStatus err: %v", err)
	}
	p, ok := status["frank"]
	if !ok {
		t.Fatal("ghost user missing from presence")
	}
	if !p.GhostMode || !p.Online {
		t.Fatalf("unexpected presence: %+v", p)
	}
}
