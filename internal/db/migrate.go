package db

import (
	"context"
)

const interactionsMigration = `
CREATE TABLE IF NOT EXISTS interactions (
    id uuid PRIMARY KEY,
    user_id text NOT NULL DEFAULT '',
    ip_address text NOT NULL,
    question text NOT NULL,
    created_at timestamptz NOT NULL
);

CREATE INDEX IF NOT EXISTS interactions_created_at_idx
ON interactions (created_at);
`

// Migrate creates the tables the assistant writes to.
func (d *DB) Migrate(ctx context.Context) error {
	_, err := d.ExecContext(ctx, interactionsMigration)
	return err
}
