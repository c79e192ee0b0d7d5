package pg

import (
	"context"
)

const createSessionsTable = `
CREATE TABLE IF NOT EXISTS keypad_sessions (
	id         TEXT PRIMARY KEY,
	state      JSONB NOT NULL,
	updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
);
CREATE INDEX IF NOT EXISTS keypad_sessions_updated_at_idx ON keypad_sessions (updated_at);
`

// Migrate создаёт таблицу keypad_sessions, если её ещё нет.
func Migrate(ctx context.Context, db *DB) error {
	_, err := db.ExecContext(ctx, createSessionsTable)
	return err
}
