package status

import "time"

// Check is a lightweight client liveness ping kept for debugging.
type Check struct {
	ID         string    `gorm:"primaryKey;size:64" json:"id"`
	ClientName string    `json:"client_name"`
	Timestamp  time.Time `json:"timestamp"`
}
