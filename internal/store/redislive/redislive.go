package redislive

import (
	"encoding/json"
	"strings"

	redis "gopkg.in/redis.v5"

	"github.com/barefootbuddy/backend/internal/model/location"
)

const (
	locationPrefix = "buddy:location:"
	presencePrefix = "buddy:presence:"
)

// Store keeps the freshest location/presence state in Redis so group
// reads stay off Postgres. Entries never expire; stale users are simply
// overwritten on their next update.
type Store struct {
	client *redis.Client
}

// New connects to Redis using a redis:// URL.
func New(url string) (*Store, error) {
	opts, err := redis.ParseURL(url)
	if err != nil {
		return nil, err
	}

	client := redis.NewClient(opts)
	if err := client.Ping().Err(); err != nil {
		return nil, err
	}

	return &Store{client: client}, nil
}

func (s *Store) SetLocation(loc location.Location) error {
	payload, err := json.Marshal(loc)
	if err != nil {
		return err
	}
	return s.client.Set(locationPrefix+loc.UserID, payload, 0).Err()
}

func (s *Store) RemoveLocation(userID string) error {
	return s.client.Del(locationPrefix + userID).Err()
}

func (s *Store) Locations() ([]location.Location, error) {
	keys, err := s.client.Keys(locationPrefix + "*").Result()
	if err != nil {
		return nil, err
	}

	locs := make([]location.Location, 0, len(keys))
	for _, key := range keys {
		raw, err := s.client.Get(key).Bytes()
		if err == redis.Nil {
			// Deleted between Keys and Get; skip.
			continue
		}
		if err != nil {
			return nil, err
		}

		var loc location.Location
		if err := json.Unmarshal(raw, &loc); err != nil {
			return nil, err
		}
		if loc.UserID == "" {
			loc.UserID = strings.TrimPrefix(key, locationPrefix)
		}
		locs = append(locs, loc)
	}
	return locs, nil
}

func (s *Store) SetPresence(presence location.Presence) error {
	payload, err := json.Marshal(presence)
	if err != nil {
		return err
	}
	return s.client.Set(presencePrefix+presence.UserID, payload, 0).Err()
}

func (s *Store) Presences() ([]location.Presence, error) {
	keys, err := s.client.Keys(presencePrefix + "*").Result()
	if err != nil {
		return nil, err
	}

	rows := make([]location.Presence, 0, len(keys))
	for _, key := range keys {
		raw, err := s.client.Get(key).Bytes()
		if err == redis.Nil {
			continue
		}
		if err != nil {
			return nil, err
		}

		var presence location.Presence
		if err := json.Unmarshal(raw, &presence); err != nil {
			return nil, err
		}
		rows = append(rows, presence)
	}
	return rows, nil
}
