// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package archive

import (
	"database/sql"
	"fmt"
)

// CreateSchema creates all tables needed for the archive.
// Safe to call multiple times - uses IF NOT EXISTS.
func CreateSchema(db *sql.DB) error {
	_, err := db.Exec(schema)
	if err != nil {
		return fmt.Errorf("failed to create schema: %w", err)
	}

	return nil
}

const schema = `
-- One row per dispatched intent
CREATE TABLE IF NOT EXISTS poll_event (
    id TEXT PRIMARY KEY,
    session_hash TEXT NOT NULL,
    kind TEXT NOT NULL CHECK (kind IN ('add_poll', 'select_option')),
    poll_id TEXT,
    question TEXT NOT NULL,
    option_text TEXT,
    options_json TEXT,
    state_version BIGINT NOT NULL,
    recorded_at TIMESTAMP NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_poll_event_session ON poll_event(session_hash);
CREATE INDEX IF NOT EXISTS idx_poll_event_question ON poll_event(question);
`
