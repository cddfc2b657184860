package session

import (
	"context"
	"time"

	"perform-assistant/internal/auth"
)

// Session is an authenticated chat session. It carries the normalized user
// for the lifetime of the session only; users are not stored elsewhere.
type Session struct {
	SessionID string    `json:"session_id"`
	User      auth.User `json:"user"`
	CreatedAt time.Time `json:"created_at"`
	ExpiresAt time.Time `json:"expires_at"`
}

// Store defines how sessions are stored and retrieved.
type Store interface {
	Create(ctx context.Context, s Session) error
	// Get returns nil, nil when the session does not exist.
	Get(ctx context.Context, sessionID string) (*Session, error)
	Delete(ctx context.Context, sessionID string) error
}
