package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/barefootbuddy/backend/internal/model/chat"
	"github.com/barefootbuddy/backend/internal/model/festival"
	"github.com/barefootbuddy/backend/internal/model/location"
	"github.com/barefootbuddy/backend/internal/model/status"
)

// ErrNotFound is returned when a looked-up row does not exist.
var ErrNotFound = errors.New("record not found")

// Store is the Postgres-backed durable store. It satisfies chat.Store
// and location.Store and carries the festival CRUD surface.
type Store struct {
	db *gorm.DB
}

// Open connects to Postgres and migrates the schema.
func Open(dsn string) (*Store, error) {
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to postgres: %w", err)
	}

	if err := db.AutoMigrate(
		&chat.Session{},
		&chat.Message{},
		&location.Location{},
		&location.Presence{},
		&festival.Artist{},
		&festival.DrinkRound{},
		&status.Check{},
	); err != nil {
		return nil, fmt.Errorf("failed to migrate schema: %w", err)
	}

	return &Store{db: db}, nil
}

// NewStore wraps an existing gorm handle (tests).
func NewStore(db *gorm.DB) *Store {
	return &Store{db: db}
}

// --- chat.Store ---

func (s *Store) CreateSession(ctx context.Context, session chat.Session) error {
	return s.db.WithContext(ctx).Create(&session).Error
}

func (s *Store) TouchSession(ctx context.Context, sessionID string, delta int) error {
	return s.db.WithContext(ctx).
		Model(&chat.Session{}).
		Where("session_id = ?", sessionID).
		Updates(map[string]interface{}{
			"message_count": gorm.Expr("message_count + ?", delta),
			"last_activity": time.Now().UTC(),
		}).Error
}

func (s *Store) AppendMessage(ctx context.Context, message chat.Message) error {
	return s.db.WithContext(ctx).Create(&message).Error
}

func (s *Store) Messages(ctx context.Context, sessionID string, limit int) ([]chat.Message, error) {
	var messages []chat.Message
	err := s.db.WithContext(ctx).
		Where("session_id = ?", sessionID).
		Order("timestamp asc").
		Limit(limit).
		Find(&messages).Error
	return messages, err
}

func (s *Store) RecentMessages(ctx context.Context, sessionID string, limit int) ([]chat.Message, error) {
	var messages []chat.Message
	err := s.db.WithContext(ctx).
		Where("session_id = ?", sessionID).
		Order("timestamp desc").
		Limit(limit).
		Find(&messages).Error
	if err != nil {
		return nil, err
	}

	// Flip back to chronological order.
	for i, j := 0, len(messages)-1; i < j; i, j = i+1, j-1 {
		messages[i], messages[j] = messages[j], messages[i]
	}
	return messages, nil
}

// --- location.Store ---

func (s *Store) UpsertLocation(ctx context.Context, loc location.Location) error {
	return s.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "user_id"}},
			UpdateAll: true,
		}).
		Create(&loc).Error
}

func (s *Store) GetLocation(ctx context.Context, userID string) (location.Location, error) {
	var loc location.Location
	err := s.db.WithContext(ctx).First(&loc, "user_id = ?", userID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return location.Location{}, ErrNotFound
	}
	return loc, err
}

func (s *Store) VisibleLocations(ctx context.Context) ([]location.Location, error) {
	var locs []location.Location
	err := s.db.WithContext(ctx).
		Where("ghost_mode = ?", false).
		Find(&locs).Error
	return locs, err
}

func (s *Store) SetGhostMode(ctx context.Context, userID string, ghost bool, lastSeen int64) error {
	return s.db.WithContext(ctx).
		Model(&location.Location{}).
		Where("user_id = ?", userID).
		Updates(map[string]interface{}{
			"ghost_mode": ghost,
			"timestamp":  lastSeen,
		}).Error
}

func (s *Store) UpsertPresence(ctx context.Context, presence location.Presence) error {
	return s.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "user_id"}},
			UpdateAll: true,
		}).
		Create(&presence).Error
}

func (s *Store) GetPresence(ctx context.Context, userID string) (location.Presence, error) {
	var presence location.Presence
	err := s.db.WithContext(ctx).First(&presence, "user_id = ?", userID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return location.Presence{}, ErrNotFound
	}
	return presence, err
}

func (s *Store) AllPresence(ctx context.Context) ([]location.Presence, error) {
	var rows []location.Presence
	err := s.db.WithContext(ctx).Find(&rows).Error
	return rows, err
}

// --- festival data ---

// ReplaceArtists clears the lineup and reseeds it (startup path).
func (s *Store) ReplaceArtists(ctx context.Context, artists []festival.Artist) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("1 = 1").Delete(&festival.Artist{}).Error; err != nil {
			return err
		}
		if len(artists) == 0 {
			return nil
		}
		return tx.Create(&artists).Error
	})
}

func (s *Store) ListArtists(ctx context.Context) ([]festival.Artist, error) {
	var artists []festival.Artist
	err := s.db.WithContext(ctx).Order("id").Find(&artists).Error
	return artists, err
}

// ToggleArtistStar flips the star flag and returns the new value.
func (s *Store) ToggleArtistStar(ctx context.Context, artistID string) (bool, error) {
	var artist festival.Artist
	err := s.db.WithContext(ctx).First(&artist, "id = ?", artistID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return false, ErrNotFound
	}
	if err != nil {
		return false, err
	}

	starred := !artist.IsStarred
	err = s.db.WithContext(ctx).
		Model(&festival.Artist{}).
		Where("id = ?", artistID).
		Update("is_starred", starred).Error
	return starred, err
}

// ActiveDrinkRound returns the active round, creating the default one
// when none exists yet.
func (s *Store) ActiveDrinkRound(ctx context.Context) (festival.DrinkRound, error) {
	var round festival.DrinkRound
	err := s.db.WithContext(ctx).First(&round, "active = ?", true).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		round = festival.DefaultDrinkRound()
		if err := s.db.WithContext(ctx).Create(&round).Error; err != nil {
			return festival.DrinkRound{}, err
		}
		return round, nil
	}
	return round, err
}

// CompleteDrinkRound advances the active round and logs the buyer.
func (s *Store) CompleteDrinkRound(ctx context.Context, userID string) error {
	round, err := s.ActiveDrinkRound(ctx)
	if err != nil {
		return err
	}

	round.CurrentRound++
	round.LastCompleted = userID
	round.History = append(round.History, festival.RoundEntry{
		Round:     round.CurrentRound,
		Buyer:     userID,
		Timestamp: time.Now().UTC(),
	})
	if round.Points != nil {
		round.Points[userID] += 3
	}
	round.NextUp = nextParticipant(round.Participants, userID)

	return s.db.WithContext(ctx).Save(&round).Error
}

// ResetDrinkRounds drops every round and recreates the clean default.
func (s *Store) ResetDrinkRounds(ctx context.Context) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("1 = 1").Delete(&festival.DrinkRound{}).Error; err != nil {
			return err
		}
		round := festival.ResetDrinkRound()
		return tx.Create(&round).Error
	})
}

func nextParticipant(participants []string, current string) string {
	if len(participants) == 0 {
		return ""
	}
	for i, p := range participants {
		if p == current {
			return participants[(i+1)%len(participants)]
		}
	}
	return participants[0]
}

// --- status checks ---

func (s *Store) InsertStatusCheck(ctx context.Context, check status.Check) error {
	return s.db.WithContext(ctx).Create(&check).Error
}

func (s *Store) ListStatusChecks(ctx context.Context) ([]status.Check, error) {
	var checks []status.Check
	err := s.db.WithContext(ctx).Order("timestamp desc").Limit(1000).Find(&checks).Error
	return checks, err
}
