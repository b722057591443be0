// ABOUTME: Fixed 11-entry event color palette and resolution helpers
// ABOUTME: Maps calendar color metadata to syncable destination colors
package colors

import (
	"strings"

	"github.com/livelyapps/calsync/models"
)

// PaletteEntry is one of the destination colors a synced event can be
// assigned. IDs are passed through to the calendar provider unmodified, so
// the table must match the provider's own event palette exactly.
type PaletteEntry struct {
	ID   string
	Name string
	Hex  string
}

// Palette is the fixed set of event colors, in provider order.
var Palette = []PaletteEntry{
	{ID: "1", Name: "Lavender", Hex: "#7986cb"},
	{ID: "2", Name: "Sage", Hex: "#33b679"},
	{ID: "3", Name: "Grape", Hex: "#8e24aa"},
	{ID: "4", Name: "Flamingo", Hex: "#e67c73"},
	{ID: "5", Name: "Banana", Hex: "#f6bf26"},
	{ID: "6", Name: "Tangerine", Hex: "#f4511e"},
	{ID: "7", Name: "Peacock", Hex: "#039be5"},
	{ID: "8", Name: "Graphite", Hex: "#616161"},
	{ID: "9", Name: "Blueberry", Hex: "#3f51b5"},
	{ID: "10", Name: "Basil", Hex: "#0b8043"},
	{ID: "11", Name: "Tomato", Hex: "#d50000"},
}

// InheritLabel is shown when no destination color is set and synced events
// keep the source calendar's color.
const InheritLabel = "Same as source calendar"

// unknownLabel is shown for color ids outside the palette.
const unknownLabel = "Select a color"

// Lookup finds a palette entry by id.
func Lookup(id string) (PaletteEntry, bool) {
	for _, entry := range Palette {
		if entry.ID == id {
			return entry, true
		}
	}
	return PaletteEntry{}, false
}

// ResolveName returns the human-readable name for a destination color id.
// An empty id is the inherit sentinel; an unknown id gets a safe fallback
// label rather than an error.
func ResolveName(colorID string) string {
	if colorID == "" {
		return InheritLabel
	}
	if entry, ok := Lookup(colorID); ok {
		return entry.Name
	}
	return unknownLabel
}

// SuggestDestination picks a destination color id for a newly selected
// source calendar:
//
//  1. the calendar's own color id, when it is already a palette id
//  2. the first palette entry, when the calendar declares a color id the
//     palette doesn't know
//  3. a palette entry with the same background hex (case-insensitive),
//     or again the first entry when the hex matches nothing
//  4. empty (inherit) only when the calendar declares no color at all
//
// A calendar with any native color always yields a concrete suggestion,
// because destination events are written with an explicit color once one
// is suggested.
func SuggestDestination(cal models.CalendarSummary) string {
	colorID := strings.TrimSpace(cal.ColorID)
	if colorID != "" {
		if _, ok := Lookup(colorID); ok {
			return colorID
		}
		return Palette[0].ID
	}

	hex := strings.TrimSpace(cal.BackgroundColor)
	if hex != "" {
		for _, entry := range Palette {
			if strings.EqualFold(entry.Hex, hex) {
				return entry.ID
			}
		}
		return Palette[0].ID
	}

	return ""
}
