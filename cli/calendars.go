// ABOUTME: Calendar listing command
// ABOUTME: Shows a linked account's calendars with suggested sync colors
package cli

import (
	"context"
	"fmt"

	"github.com/livelyapps/calsync/colors"
	"github.com/livelyapps/calsync/sync"
)

// CalendarsCommand lists the calendars of one linked account.
func CalendarsCommand(svc *sync.Service, args []string) error {
	slot, err := requireAccountSlot(args)
	if err != nil {
		return err
	}

	cals, err := svc.Calendars(context.Background(), slot)
	if err != nil {
		return err
	}

	if len(cals) == 0 {
		fmt.Printf("No calendars found for the %s account.\n", slot)
		return nil
	}

	for _, cal := range cals {
		primary := ""
		if cal.IsPrimary {
			primary = " (primary)"
		}
		fmt.Printf("%s%s\n", cal.DisplayName(), primary)
		fmt.Printf("    id: %s\n", cal.ID)

		if suggested := colors.SuggestDestination(cal); suggested != "" {
			fmt.Printf("    suggested sync color: %s\n", colors.ResolveName(suggested))
		}
	}
	return nil
}
