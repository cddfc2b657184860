// Package interaction records the questions users ask the assistant.
package interaction

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Entry is one recorded chat message.
type Entry struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user_id,omitempty"`
	IPAddress string    `json:"ip_address"`
	Question  string    `json:"question"`
	Timestamp time.Time `json:"timestamp"`
}

// NewEntry stamps a message with a fresh id and the current time. An empty
// ip is recorded as "unknown".
func NewEntry(userID, ip, question string) Entry {
	if ip == "" {
		ip = "unknown"
	}
	return Entry{
		ID:        uuid.NewString(),
		UserID:    userID,
		IPAddress: ip,
		Question:  question,
		Timestamp: time.Now().UTC(),
	}
}

// Recorder persists interaction entries.
type Recorder interface {
	Record(ctx context.Context, e Entry) error
}
