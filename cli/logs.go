// ABOUTME: Sync history command with an offline cache
// ABOUTME: Fetches logs from the backend, caching them locally in SQLite
package cli

import (
	"context"
	"database/sql"
	"flag"
	"fmt"

	"github.com/livelyapps/calsync/db"
	"github.com/livelyapps/calsync/models"
	"github.com/livelyapps/calsync/sync"
)

// LogsCommand prints a config's sync history. Fetched logs refresh the
// local cache; when the backend is unreachable the cache is shown instead.
func LogsCommand(svc *sync.Service, database *sql.DB, args []string) error {
	fs := flag.NewFlagSet("logs", flag.ExitOnError)
	id := fs.String("id", "", "Config id whose history to show (required)")
	limit := fs.Int("limit", 10, "Maximum number of entries")
	cached := fs.Bool("cached", false, "Read the local cache without contacting the backend")
	_ = fs.Parse(args)

	if *id == "" {
		return fmt.Errorf("-id is required")
	}

	var logs []models.SyncLog
	var err error
	fromCache := *cached

	if !*cached {
		logs, err = svc.Logs(context.Background(), *id)
		if err == nil {
			if cacheErr := db.ReplaceSyncLogs(database, *id, logs); cacheErr != nil {
				fmt.Printf("Warning: failed to update log cache: %v\n", cacheErr)
			}
		} else {
			fmt.Printf("Backend unavailable (%v), falling back to cache.\n", err)
			fromCache = true
		}
	}

	if fromCache {
		logs, err = db.GetSyncLogs(database, *id, *limit)
		if err != nil {
			return fmt.Errorf("failed to read log cache: %w", err)
		}
	}

	if len(logs) == 0 {
		fmt.Println("No sync history.")
		return nil
	}

	if fromCache {
		fmt.Println("(from local cache)")
	}
	for i, entry := range logs {
		if i >= *limit {
			break
		}
		printLog(entry)
	}
	return nil
}

func printLog(entry models.SyncLog) {
	marker := "✓"
	switch entry.Status {
	case models.SyncStatusFailed:
		marker = "✗"
	case models.SyncStatusRunning:
		marker = "⟳"
	case models.SyncStatusPartial:
		marker = "!"
	}

	fmt.Printf("%s %s  %-8s created=%d updated=%d deleted=%d",
		marker, entry.StartedAt.Format("2006-01-02 15:04"), entry.Status,
		entry.EventsCreated, entry.EventsUpdated, entry.EventsDeleted)
	if entry.ErrorMessage != "" {
		fmt.Printf("  (%s)", entry.ErrorMessage)
	}
	fmt.Println()
}
