package chat

import (
	"context"
	"time"
)

// Message is one append-only turn half. Error marks bot messages that
// carry the fallback text instead of a real completion.
type Message struct {
	ID        string    `gorm:"primaryKey;size:64" json:"id"`
	SessionID string    `gorm:"index;size:64" json:"session_id"`
	UserID    string    `gorm:"size:64" json:"user_id"`
	Content   string    `json:"content"`
	IsBot     bool      `json:"is_bot"`
	Timestamp time.Time `json:"timestamp"`
	Error     bool      `json:"error,omitempty"`
}

// Store is the durable backing for sessions and messages.
type Store interface {
	CreateSession(ctx context.Context, session Session) error
	// TouchSession bumps last_activity and adds delta to message_count.
	TouchSession(ctx context.Context, sessionID string, delta int) error
	AppendMessage(ctx context.Context, message Message) error
	// Messages returns up to limit messages for the session ordered by
	// timestamp ascending. An unknown session yields an empty slice.
	Messages(ctx context.Context, sessionID string, limit int) ([]Message, error)
	// RecentMessages returns the last limit messages for the session,
	// still in chronological order.
	RecentMessages(ctx context.Context, sessionID string, limit int) ([]Message, error)
}
