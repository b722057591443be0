// ABOUTME: Sync config CLI commands
// ABOUTME: Lists, creates, and deletes configs through the lifecycle service
package cli

import (
	"context"
	"flag"
	"fmt"
	"strings"

	"github.com/livelyapps/calsync/colors"
	"github.com/livelyapps/calsync/models"
	"github.com/livelyapps/calsync/sync"
)

// ListConfigsCommand prints the grouped config dashboard.
func ListConfigsCommand(svc *sync.Service, args []string) error {
	fs := flag.NewFlagSet("list", flag.ExitOnError)
	_ = fs.Parse(args)

	ctx := context.Background()
	_, grouped, err := svc.Refresh(ctx)
	if err != nil {
		return err
	}

	if len(grouped.OneWay) == 0 && len(grouped.AnchoredPairs()) == 0 {
		fmt.Println("No sync configurations yet. Run 'calsync configs create' to add one.")
		return nil
	}

	if pairs := grouped.AnchoredPairs(); len(pairs) > 0 {
		fmt.Println("Bidirectional:")
		for _, pair := range pairs {
			printPair(pair)
		}
		fmt.Println()
	}

	if len(grouped.OneWay) > 0 {
		fmt.Println("One-way:")
		for _, config := range grouped.OneWay {
			printConfig("  →", config)
		}
	}

	return nil
}

func printPair(pair *sync.Pair) {
	forward := pair.Forward
	arrow := "⇄"
	if pair.IsOrphan() {
		arrow = "→ (reverse leg missing)"
	}
	fmt.Printf("  %s  %s %s %s\n", forward.ID, forward.SourceCalendarID, arrow, forward.DestCalendarID)
	fmt.Printf("      color: %s", colors.ResolveName(forward.DestinationColorID))
	if pair.Reverse != nil {
		fmt.Printf(", reverse color: %s", colors.ResolveName(pair.Reverse.DestinationColorID))
	}
	fmt.Printf(", window: %dd\n", forward.SyncLookaheadDays)
}

func printConfig(prefix string, config models.SyncConfig) {
	fmt.Printf("%s %s  %s → %s\n", prefix, config.ID, config.SourceCalendarID, config.DestCalendarID)
	fmt.Printf("      color: %s, window: %dd", colors.ResolveName(config.DestinationColorID), config.SyncLookaheadDays)
	if config.PrivacyModeEnabled {
		fmt.Printf(", privacy: %q", config.PrivacyPlaceholderText)
	}
	if config.LastSyncedAt != nil {
		fmt.Printf(", last synced: %s", config.LastSyncedAt.Format("2006-01-02 15:04"))
	}
	fmt.Println()
}

// CreateConfigCommand creates a one-way or bidirectional config.
func CreateConfigCommand(svc *sync.Service, args []string) error {
	fs := flag.NewFlagSet("create", flag.ExitOnError)
	source := fs.String("source", "", "Source calendar id (required)")
	dest := fs.String("dest", "", "Destination calendar id (required)")
	lookahead := fs.Int("lookahead", models.DefaultLookaheadDays, "Sync window in days")
	color := fs.String("color", "", "Destination event color id 1-11 ('auto' suggests from the source calendar)")
	bidirectional := fs.Bool("bidirectional", false, "Create both legs of a bidirectional pair")
	reverseColor := fs.String("reverse-color", "", "Destination color for the reverse leg")
	privacy := fs.Bool("privacy", false, "Redact event details on the forward leg")
	privacyText := fs.String("privacy-text", "", "Placeholder title for redacted events")
	reversePrivacy := fs.Bool("reverse-privacy", false, "Redact event details on the reverse leg")
	reversePrivacyText := fs.String("reverse-privacy-text", "", "Placeholder title for the reverse leg")
	_ = fs.Parse(args)

	ctx := context.Background()

	colorID := *color
	if strings.EqualFold(colorID, "auto") {
		suggested, err := suggestColor(ctx, svc, *source)
		if err != nil {
			return err
		}
		colorID = suggested
		fmt.Printf("Suggested destination color: %s\n", colors.ResolveName(colorID))
	}

	var config *models.SyncConfig
	var err error
	if *bidirectional {
		config, err = svc.CreateBidirectional(ctx, *source, *dest, *lookahead, sync.BidirectionalOptions{
			ForwardColorID: colorID,
			ReverseColorID: *reverseColor,
			ForwardPrivacy: sync.PrivacySettings{Enabled: *privacy, PlaceholderText: *privacyText},
			ReversePrivacy: sync.PrivacySettings{Enabled: *reversePrivacy, PlaceholderText: *reversePrivacyText},
		})
	} else {
		config, err = svc.CreateOneWay(ctx, *source, *dest, *lookahead, colorID)
	}
	if err != nil {
		return err
	}

	kind := "one-way"
	if *bidirectional {
		kind = "bidirectional"
	}
	fmt.Printf("✓ Created %s sync config %s\n", kind, config.ID)
	return nil
}

// suggestColor finds the source calendar in either account's list and runs
// the color suggestion on its metadata.
func suggestColor(ctx context.Context, svc *sync.Service, sourceID string) (string, error) {
	if sourceID == "" {
		return "", fmt.Errorf("-color auto requires -source")
	}
	for _, slot := range []models.AccountSlot{models.AccountSource, models.AccountDestination} {
		cals, err := svc.Calendars(ctx, slot)
		if err != nil {
			return "", fmt.Errorf("failed to fetch %s calendars: %w", slot, err)
		}
		for _, cal := range cals {
			if cal.ID == sourceID {
				return colors.SuggestDestination(cal), nil
			}
		}
	}
	return "", fmt.Errorf("calendar %q not found in either account", sourceID)
}

// DeleteConfigCommand deletes a config after confirmation. When the id
// anchors a bidirectional pair both legs are deleted, forward first.
func DeleteConfigCommand(svc *sync.Service, args []string) error {
	fs := flag.NewFlagSet("delete", flag.ExitOnError)
	id := fs.String("id", "", "Config id to delete (required)")
	yes := fs.Bool("yes", false, "Skip the confirmation prompt")
	_ = fs.Parse(args)

	if *id == "" {
		return fmt.Errorf("-id is required")
	}

	ctx := context.Background()
	_, grouped, err := svc.Refresh(ctx)
	if err != nil {
		return err
	}

	if pair, ok := grouped.PairFor(*id); ok && pair.Forward != nil {
		reverseID := pair.ReverseID()
		what := "bidirectional pair (both legs)"
		if reverseID == "" {
			what = "orphaned pair leg"
		}
		if !*yes && !confirm(fmt.Sprintf("Delete %s %s?", what, *id)) {
			fmt.Println("Aborted.")
			return nil
		}

		err := svc.DeletePair(ctx, pair.Forward.ID, reverseID)
		if partial, ok := err.(*sync.PartialDeleteError); ok {
			fmt.Printf("✓ Deleted forward config %s\n", partial.ForwardID)
			return fmt.Errorf("reverse leg was not deleted and is now orphaned: %w", partial.Err)
		}
		if err != nil {
			return err
		}

		fmt.Printf("✓ Deleted config %s\n", pair.Forward.ID)
		if reverseID != "" {
			fmt.Printf("✓ Deleted config %s\n", reverseID)
		}
		return nil
	}

	if !*yes && !confirm(fmt.Sprintf("Delete sync config %s?", *id)) {
		fmt.Println("Aborted.")
		return nil
	}

	if err := svc.DeleteOneWay(ctx, *id); err != nil {
		return err
	}
	fmt.Printf("✓ Deleted config %s\n", *id)
	return nil
}
