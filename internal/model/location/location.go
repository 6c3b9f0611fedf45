package location

import "context"

// Location is the last-writer-wins position record for one user.
// Timestamps are unix milliseconds to match the frontend map layer.
// Ghost rows stay in durable storage; they are filtered at read time.
type Location struct {
	UserID    string  `gorm:"primaryKey;size:64" json:"user_id"`
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
	Accuracy  float64 `json:"accuracy"`
	Timestamp int64   `json:"timestamp"`
	GhostMode bool    `json:"ghost_mode"`
}

// Presence mirrors online state independently of coordinates. Ghost
// users remain visible here, just without a position.
type Presence struct {
	UserID    string `gorm:"primaryKey;size:64" json:"user_id"`
	Online    bool   `json:"online"`
	LastSeen  int64  `json:"last_seen"`
	GhostMode bool   `json:"ghost_mode"`
}

// Store is the durable backing for locations and presence.
type Store interface {
	UpsertLocation(ctx context.Context, loc Location) error
	GetLocation(ctx context.Context, userID string) (Location, error)
	// VisibleLocations returns every row with ghost_mode=false.
	VisibleLocations(ctx context.Context) ([]Location, error)
	SetGhostMode(ctx context.Context, userID string, ghost bool, lastSeen int64) error
	UpsertPresence(ctx context.Context, presence Presence) error
	GetPresence(ctx context.Context, userID string) (Presence, error)
	AllPresence(ctx context.Context) ([]Presence, error)
}

// LiveStore is the low-latency mirror (Redis) consulted before the
// durable store for group reads. Implementations hold only visible
// locations: entering ghost mode removes the key.
type LiveStore interface {
	SetLocation(loc Location) error
	RemoveLocation(userID string) error
	Locations() ([]Location, error)
	SetPresence(presence Presence) error
	Presences() ([]Presence, error)
}
