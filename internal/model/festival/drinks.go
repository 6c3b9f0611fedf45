package festival

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"
)

// RoundEntry records one completed drink round.
type RoundEntry struct {
	Round     int       `json:"round"`
	Buyer     string    `json:"buyer"`
	Timestamp time.Time `json:"timestamp"`
}

// StringList stores a JSON array in a single column.
type StringList []string

func (l StringList) Value() (driver.Value, error) {
	return json.Marshal(l)
}

func (l *StringList) Scan(src interface{}) error {
	return scanJSON(src, l)
}

// PointsMap stores per-participant Barefoot Points as JSON.
type PointsMap map[string]int

func (m PointsMap) Value() (driver.Value, error) {
	return json.Marshal(m)
}

func (m *PointsMap) Scan(src interface{}) error {
	return scanJSON(src, m)
}

// RoundHistory stores the completed-round log as JSON.
type RoundHistory []RoundEntry

func (h RoundHistory) Value() (driver.Value, error) {
	return json.Marshal(h)
}

func (h *RoundHistory) Scan(src interface{}) error {
	return scanJSON(src, h)
}

func scanJSON(src, dst interface{}) error {
	switch v := src.(type) {
	case []byte:
		return json.Unmarshal(v, dst)
	case string:
		return json.Unmarshal([]byte(v), dst)
	case nil:
		return nil
	default:
		return fmt.Errorf("unsupported column type %T", src)
	}
}

// DrinkRound is the shared "whose turn is it" tracker. A single active
// row exists at a time.
type DrinkRound struct {
	ID            uint         `gorm:"primaryKey" json:"-"`
	Participants  StringList   `gorm:"type:jsonb" json:"participants"`
	CurrentRound  int          `json:"currentRound"`
	NextUp        string       `json:"nextUp"`
	LastCompleted string       `json:"lastCompleted"`
	Points        PointsMap    `gorm:"type:jsonb" json:"barefootPoints"`
	History       RoundHistory `gorm:"type:jsonb" json:"roundHistory"`
	Active        bool         `gorm:"index" json:"active"`
}

// DefaultDrinkRound seeds the tracker the first time it is requested.
func DefaultDrinkRound() DrinkRound {
	now := time.Now().UTC()
	return DrinkRound{
		Participants:  StringList{"Sarah", "Jake", "Emma", "Mike", "Ashley"},
		CurrentRound:  2,
		NextUp:        "Jake",
		LastCompleted: "Emma",
		Points: PointsMap{
			"Sarah":  15,
			"Jake":   12,
			"Emma":   18,
			"Mike":   9,
			"Ashley": 6,
		},
		History: RoundHistory{
			{Round: 1, Buyer: "Sarah", Timestamp: now},
			{Round: 2, Buyer: "Emma", Timestamp: now},
		},
		Active: true,
	}
}

// ResetDrinkRound is the clean slate used by the reset endpoint.
func ResetDrinkRound() DrinkRound {
	return DrinkRound{
		Participants: StringList{"Sarah", "Jake", "Emma", "Mike", "Ashley"},
		CurrentRound: 1,
		NextUp:       "Sarah",
		Points: PointsMap{
			"Sarah":  0,
			"Jake":   0,
			"Emma":   0,
			"Mike":   0,
			"Ashley": 0,
		},
		History: RoundHistory{},
		Active:  true,
	}
}
