// ABOUTME: Sync topology visualization command
// ABOUTME: Emits DOT to stdout or renders a PNG of the calendar graph
package cli

import (
	"context"
	"flag"
	"fmt"

	"github.com/livelyapps/calsync/models"
	"github.com/livelyapps/calsync/sync"
	"github.com/livelyapps/calsync/viz"
)

// VizCommand renders the sync topology graph.
func VizCommand(svc *sync.Service, args []string) error {
	fs := flag.NewFlagSet("viz", flag.ExitOnError)
	out := fs.String("out", "", "Write a PNG to this path instead of printing DOT")
	_ = fs.Parse(args)

	ctx := context.Background()
	_, grouped, err := svc.Refresh(ctx)
	if err != nil {
		return err
	}

	// Calendar names are decoration; the graph still renders without them.
	var lists [][]models.CalendarSummary
	for _, slot := range []models.AccountSlot{models.AccountSource, models.AccountDestination} {
		if cals, err := svc.Calendars(ctx, slot); err == nil {
			lists = append(lists, cals)
		}
	}
	names := viz.NamesFromCalendars(lists...)

	if *out != "" {
		if err := viz.RenderTopologyPNG(grouped, names, *out); err != nil {
			return err
		}
		fmt.Printf("✓ Topology written to %s\n", *out)
		return nil
	}

	dot, err := viz.GenerateTopologyDOT(grouped, names)
	if err != nil {
		return err
	}
	fmt.Println(dot)
	return nil
}
