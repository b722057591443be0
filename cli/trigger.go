// ABOUTME: Manual sync trigger command
// ABOUTME: Starts a sync run and reports its counts from the sync log
package cli

import (
	"context"
	"flag"
	"fmt"

	"github.com/livelyapps/calsync/models"
	"github.com/livelyapps/calsync/sync"
)

// TriggerCommand starts a manual sync and reports the run's outcome.
func TriggerCommand(svc *sync.Service, args []string) error {
	fs := flag.NewFlagSet("trigger", flag.ExitOnError)
	id := fs.String("id", "", "Config id to sync (required)")
	both := fs.Bool("both", false, "Run both legs of a bidirectional pair")
	_ = fs.Parse(args)

	if *id == "" {
		return fmt.Errorf("-id is required")
	}

	fmt.Println("Triggering sync...")
	report, err := svc.TriggerSync(context.Background(), *id, *both)
	if err != nil {
		return err
	}

	if !report.LogAvailable {
		// The trigger went through; the log just wasn't readable yet.
		fmt.Printf("✓ %s\n", report.Message)
		fmt.Println("  Run 'calsync logs' in a moment for the results.")
		return nil
	}

	switch report.Status {
	case models.SyncStatusFailed:
		fmt.Printf("✗ Sync failed: %s\n", report.ErrorMessage)
	case models.SyncStatusRunning:
		fmt.Printf("⟳ Sync still running. Created so far: %d, updated: %d, deleted: %d\n",
			report.Created, report.Updated, report.Deleted)
	default:
		fmt.Printf("✓ Sync complete. Created: %d, updated: %d, deleted: %d\n",
			report.Created, report.Updated, report.Deleted)
	}
	return nil
}
