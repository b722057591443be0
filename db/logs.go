// ABOUTME: Local cache of sync logs fetched from the backend
// ABOUTME: Replace-on-fetch writes, most-recent-first reads for offline history
package db

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/livelyapps/calsync/models"
)

// ReplaceSyncLogs swaps the cached history for a config with a freshly
// fetched one. The backend's list is authoritative; stale cache rows for
// the config are dropped in the same transaction.
func ReplaceSyncLogs(database *sql.DB, configID string, logs []models.SyncLog) error {
	tx, err := database.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.Exec("DELETE FROM sync_logs WHERE sync_config_id = ?", configID); err != nil {
		return fmt.Errorf("failed to clear cached logs: %w", err)
	}

	now := time.Now().UTC()
	for _, entry := range logs {
		var completedAt *time.Time
		if entry.CompletedAt != nil {
			completedAt = entry.CompletedAt
		}

		_, err := tx.Exec(`
			INSERT INTO sync_logs (
				id, sync_config_id, events_created, events_updated, events_deleted,
				status, sync_direction, error_message,
				sync_window_start, sync_window_end, started_at, completed_at, fetched_at
			) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			entry.ID, configID, entry.EventsCreated, entry.EventsUpdated, entry.EventsDeleted,
			string(entry.Status), string(entry.SyncDirection), entry.ErrorMessage,
			entry.SyncWindowStart, entry.SyncWindowEnd, entry.StartedAt, completedAt, now,
		)
		if err != nil {
			return fmt.Errorf("failed to cache log %s: %w", entry.ID, err)
		}
	}

	return tx.Commit()
}

// GetSyncLogs reads cached history for a config, most recent first.
func GetSyncLogs(database *sql.DB, configID string, limit int) ([]models.SyncLog, error) {
	if limit <= 0 {
		limit = 50
	}

	rows, err := database.Query(`
		SELECT id, sync_config_id, events_created, events_updated, events_deleted,
		       status, sync_direction, error_message,
		       sync_window_start, sync_window_end, started_at, completed_at
		FROM sync_logs
		WHERE sync_config_id = ?
		ORDER BY started_at DESC
		LIMIT ?`, configID, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query cached logs: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var logs []models.SyncLog
	for rows.Next() {
		var entry models.SyncLog
		var status, direction string
		var errorMessage sql.NullString
		var windowStart, windowEnd sql.NullTime
		var completedAt sql.NullTime

		err := rows.Scan(
			&entry.ID, &entry.SyncConfigID,
			&entry.EventsCreated, &entry.EventsUpdated, &entry.EventsDeleted,
			&status, &direction, &errorMessage,
			&windowStart, &windowEnd, &entry.StartedAt, &completedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan cached log: %w", err)
		}

		entry.Status = models.SyncStatus(status)
		entry.SyncDirection = models.SyncDirection(direction)
		if errorMessage.Valid {
			entry.ErrorMessage = errorMessage.String
		}
		if windowStart.Valid {
			entry.SyncWindowStart = windowStart.Time
		}
		if windowEnd.Valid {
			entry.SyncWindowEnd = windowEnd.Time
		}
		if completedAt.Valid {
			t := completedAt.Time
			entry.CompletedAt = &t
		}

		logs = append(logs, entry)
	}

	return logs, rows.Err()
}
