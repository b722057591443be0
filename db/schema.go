// ABOUTME: Database schema definitions and migrations
// ABOUTME: Handles SQLite table creation for the sync log cache
package db

import (
	"database/sql"
)

const schema = `
CREATE TABLE IF NOT EXISTS sync_logs (
	id TEXT PRIMARY KEY,
	sync_config_id TEXT NOT NULL,
	events_created INTEGER NOT NULL DEFAULT 0,
	events_updated INTEGER NOT NULL DEFAULT 0,
	events_deleted INTEGER NOT NULL DEFAULT 0,
	status TEXT NOT NULL,
	sync_direction TEXT,
	error_message TEXT,
	sync_window_start DATETIME,
	sync_window_end DATETIME,
	started_at DATETIME NOT NULL,
	completed_at DATETIME,
	fetched_at DATETIME NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_sync_logs_config ON sync_logs(sync_config_id, started_at);
`

// InitSchema creates the cache tables if they don't exist.
func InitSchema(db *sql.DB) error {
	_, err := db.Exec(schema)
	return err
}
