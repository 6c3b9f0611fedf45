package chat

import "time"

// Session tracks one user's conversation with Daisy DukeBot.
// MessageCount moves in pairs: every completed turn stores one user
// message and one bot message, fallback turns included.
type Session struct {
	SessionID    string    `gorm:"primaryKey;size:64" json:"session_id"`
	UserID       string    `gorm:"index;size:64" json:"user_id"`
	CreatedAt    time.Time `json:"created_at"`
	LastActivity time.Time `json:"last_activity"`
	MessageCount int       `json:"message_count"`
}
