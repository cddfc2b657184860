package interaction

import (
	"context"
	"fmt"

	"perform-assistant/internal/db"
)

// PostgresRecorder writes entries to the interactions table.
type PostgresRecorder struct {
	db *db.DB
}

func NewPostgresRecorder(db *db.DB) *PostgresRecorder {
	return &PostgresRecorder{db: db}
}

func (p *PostgresRecorder) Record(ctx context.Context, e Entry) error {
	_, err := p.db.ExecContext(ctx, `
		INSERT INTO interactions (id, user_id, ip_address, question, created_at)
		VALUES ($1, $2, $3, $4, $5)
	`,
		e.ID,
		e.UserID,
		e.IPAddress,
		e.Question,
		e.Timestamp,
	)
	if err != nil {
		return fmt.Errorf("interaction: insert: %w", err)
	}
	return nil
}
