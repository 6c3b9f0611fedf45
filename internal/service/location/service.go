package location

import (
	"context"
	"time"

	log "github.com/sirupsen/logrus"

	"github.com/barefootbuddy/backend/internal/model/location"
)

// Broadcaster fans an event out to every live push-channel connection.
type Broadcaster interface {
	Broadcast(event interface{})
}

// noopBroadcaster keeps the service usable without a hub (tests, CLI).
type noopBroadcaster struct{}

func (noopBroadcaster) Broadcast(interface{}) {}

// Service owns location and presence state. The live store is the
// primary read path for group queries; the durable store is the
// fallback and the system of record.
type Service struct {
	durable     location.Store
	live        location.LiveStore
	broadcaster Broadcaster
}

// NewService wires the location service. live and broadcaster may be
// nil.
func NewService(durable location.Store, live location.LiveStore, broadcaster Broadcaster) *Service {
	if broadcaster == nil {
		broadcaster = noopBroadcaster{}
	}
	return &Service{durable: durable, live: live, broadcaster: broadcaster}
}

func nowMillis() int64 {
	return time.Now().UnixNano() / int64(time.Millisecond)
}

// UpdateLocation upserts the user's position everywhere and announces
// it on the push channel. Ghost users keep their durable row (hidden,
// not deleted) and their coordinates stay off the wire: only a
// ghost_mode_update event goes out for them.
func (s *Service) UpdateLocation(ctx context.Context, userID string, latitude, longitude, accuracy float64, ghost bool) error {
	timestamp := nowMillis()
	loc := location.Location{
		UserID:    userID,
		Latitude:  latitude,
		Longitude: longitude,
		Accuracy:  accuracy,
		Timestamp: timestamp,
		GhostMode: ghost,
	}

	if err := s.durable.UpsertLocation(ctx, loc); err != nil {
		return err
	}

	s.mirrorLocation(loc)

	presence := location.Presence{
		UserID:    userID,
		Online:    true,
		LastSeen:  timestamp,
		GhostMode: ghost,
	}
	if err := s.durable.UpsertPresence(ctx, presence); err != nil {
		log.WithError(err).WithField("user", userID).Warn("presence upsert failed")
	}
	s.mirrorPresence(presence)

	if ghost {
		s.broadcaster.Broadcast(map[string]interface{}{
			"type":       "ghost_mode_update",
			"user_id":    userID,
			"ghost_mode": true,
		})
		return nil
	}

	s.broadcaster.Broadcast(map[string]interface{}{
		"type":    "location_update",
		"user_id": userID,
		"data": map[string]interface{}{
			"latitude":   latitude,
			"longitude":  longitude,
			"timestamp":  timestamp,
			"ghost_mode": false,
		},
	})
	return nil
}

// SetGhostMode flips visibility without touching coordinates. Leaving
// ghost mode re-seeds the live mirror from the durable row so the user
// reappears with their last-written position. Callers broadcast the
// change themselves.
func (s *Service) SetGhostMode(ctx context.Context, userID string, ghost bool) error {
	lastSeen := nowMillis()
	if err := s.durable.SetGhostMode(ctx, userID, ghost, lastSeen); err != nil {
		return err
	}

	presence := location.Presence{
		UserID:    userID,
		Online:    true,
		LastSeen:  lastSeen,
		GhostMode: ghost,
	}
	if err := s.durable.UpsertPresence(ctx, presence); err != nil {
		log.WithError(err).WithField("user", userID).Warn("presence upsert failed")
	}
	s.mirrorPresence(presence)

	if s.live == nil {
		return nil
	}

	if ghost {
		if err := s.live.RemoveLocation(userID); err != nil {
			log.WithError(err).WithField("user", userID).Warn("live location removal failed")
		}
		return nil
	}

	loc, err := s.durable.GetLocation(ctx, userID)
	if err != nil {
		// No stored position yet; nothing to re-seed.
		return nil
	}
	loc.GhostMode = false
	if err := s.live.SetLocation(loc); err != nil {
		log.WithError(err).WithField("user", userID).Warn("live location re-seed failed")
	}
	return nil
}

// GroupLocations returns every visible user's position keyed by user
// id. The live store is consulted first; on failure the durable store
// answers with identical filtering, so callers only ever see possible
// staleness, never a different shape.
func (s *Service) GroupLocations(ctx context.Context, excludeUser string) (map[string]location.Location, error) {
	if s.live != nil {
		locs, err := s.live.Locations()
		if err == nil {
			return filterLocations(locs, excludeUser), nil
		}
		log.WithError(err).Warn("live store read failed, falling back to durable store")
	}

	locs, err := s.durable.VisibleLocations(ctx)
	if err != nil {
		return nil, err
	}
	return filterLocations(locs, excludeUser), nil
}

func filterLocations(locs []location.Location, excludeUser string) map[string]location.Location {
	visible := make(map[string]location.Location, len(locs))
	for _, loc := range locs {
		if loc.GhostMode || loc.UserID == excludeUser {
			continue
		}
		visible[loc.UserID] = loc
	}
	return visible
}

// UpdatePresence upserts the online flag. Repeated calls leave a
// single row per user with the freshest last_seen. The presence-only
// path touches online and last_seen; the ghost flag belongs to the
// ghost-mode mutations and must survive here.
func (s *Service) UpdatePresence(ctx context.Context, userID string, online bool) error {
	presence, err := s.durable.GetPresence(ctx, userID)
	if err != nil {
		// First sighting of this user on the presence path.
		presence = location.Presence{UserID: userID}
	}
	presence.Online = online
	presence.LastSeen = nowMillis()

	if err := s.durable.UpsertPresence(ctx, presence); err != nil {
		return err
	}
	s.mirrorPresence(presence)
	return nil
}

// PresenceStatus returns presence for every known user, ghost users
// included. Live mirror first, durable fallback.
func (s *Service) PresenceStatus(ctx context.Context) (map[string]location.Presence, error) {
	if s.live != nil {
		rows, err := s.live.Presences()
		if err == nil {
			return keyPresence(rows), nil
		}
		log.WithError(err).Warn("live presence read failed, falling back to durable store")
	}

	rows, err := s.durable.AllPresence(ctx)
	if err != nil {
		return nil, err
	}
	return keyPresence(rows), nil
}

func keyPresence(rows []location.Presence) map[string]location.Presence {
	byUser := make(map[string]location.Presence, len(rows))
	for _, row := range rows {
		byUser[row.UserID] = row
	}
	return byUser
}

func (s *Service) mirrorLocation(loc location.Location) {
	if s.live == nil {
		return
	}

	var err error
	if loc.GhostMode {
		err = s.live.RemoveLocation(loc.UserID)
	} else {
		err = s.live.SetLocation(loc)
	}
	if err != nil {
		log.WithError(err).WithField("user", loc.UserID).Warn("live location mirror failed")
	}
}

func (s *Service) mirrorPresence(presence location.Presence) {
	if s.live == nil {
		return
	}
	if err := s.live.SetPresence(presence); err != nil {
		log.WithError(err).WithField("user", presence.UserID).Warn("live presence mirror failed")
	}
}
