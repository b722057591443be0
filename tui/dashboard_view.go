// ABOUTME: Dashboard view listing grouped sync configurations
// ABOUTME: Renders bidirectional pairs and one-way entries in a table
package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/livelyapps/calsync/colors"
	"github.com/livelyapps/calsync/models"
	"github.com/livelyapps/calsync/sync"
)

type rowKind int

const (
	rowPair rowKind = iota
	rowOneWay
)

// dashboardRow is one selectable line of the dashboard: a whole pair or a
// single one-way config.
type dashboardRow struct {
	kind      rowKind
	forwardID string
	reverseID string

	source    string
	dest      string
	direction string
	color     string
	lastSync  string
	pending   bool
}

// buildRows flattens the grouped view-model into display rows: anchored
// pairs first, then one-way entries, both in grouping (= input) order.
func buildRows(state sync.Dashboard) []dashboardRow {
	grouped := state.Grouped()
	rows := make([]dashboardRow, 0, len(grouped.Pairs)+len(grouped.OneWay))

	for _, pair := range grouped.AnchoredPairs() {
		forward := pair.Forward
		direction := "⇄ both ways"
		if pair.IsOrphan() {
			direction = "⇄ (reverse missing)"
		}

		_, pending := state.PendingDeletion[forward.ID]
		rows = append(rows, dashboardRow{
			kind:      rowPair,
			forwardID: forward.ID,
			reverseID: pair.ReverseID(),
			source:    forward.SourceCalendarID,
			dest:      forward.DestCalendarID,
			direction: direction,
			color:     colors.ResolveName(forward.DestinationColorID),
			lastSync:  lastSyncLabel(forward),
			pending:   pending,
		})
	}

	for _, config := range grouped.OneWay {
		_, pending := state.PendingDeletion[config.ID]
		rows = append(rows, dashboardRow{
			kind:      rowOneWay,
			forwardID: config.ID,
			source:    config.SourceCalendarID,
			dest:      config.DestCalendarID,
			direction: "→ one way",
			color:     colors.ResolveName(config.DestinationColorID),
			lastSync:  lastSyncLabel(&config),
			pending:   pending,
		})
	}

	return rows
}

func lastSyncLabel(config *models.SyncConfig) string {
	if config.LastSyncedAt == nil {
		return "never"
	}
	return config.LastSyncedAt.Format("Jan 02 15:04")
}

func triggerSummary(report *sync.TriggerReport) string {
	if report == nil {
		return "Sync started"
	}
	if !report.LogAvailable {
		return report.Message
	}
	if report.Status == models.SyncStatusFailed {
		return "Sync failed: " + report.ErrorMessage
	}
	return fmt.Sprintf("Sync complete. Created: %d, updated: %d, deleted: %d",
		report.Created, report.Updated, report.Deleted)
}

func (m Model) renderDashboard() string {
	var s strings.Builder

	s.WriteString(titleStyle.Render("CALSYNC"))
	s.WriteString("\n\n")

	if m.err != nil {
		s.WriteString(statusErrorStyle.Render("Error: " + m.err.Error()))
		s.WriteString("\n\n")
		s.WriteString(helpStyle.Render("r: retry  q: quit"))
		return s.String()
	}

	if len(m.rows) == 0 {
		s.WriteString("No sync configurations yet.\n")
	} else {
		s.WriteString(m.renderConfigTable())
	}
	s.WriteString("\n")

	if m.status != "" {
		s.WriteString(m.status)
		s.WriteString("\n")
	}

	s.WriteString(helpStyle.Render("↑/↓: select  n: new  d: delete  s: sync  S: sync both  l: logs  r: refresh  q: quit"))
	return s.String()
}

func (m Model) renderConfigTable() string {
	columns := []table.Column{
		{Title: "Source", Width: 28},
		{Title: "Destination", Width: 28},
		{Title: "Direction", Width: 20},
		{Title: "Color", Width: 22},
		{Title: "Last Sync", Width: 14},
	}

	var rows []table.Row
	for _, row := range m.rows {
		source := row.source
		if row.pending {
			source = "(deleting) " + source
		}
		rows = append(rows, table.Row{
			source,
			row.dest,
			row.direction,
			row.color,
			row.lastSync,
		})
	}

	height := len(rows) + 1
	if maxHeight := m.height - 8; height > maxHeight {
		height = maxHeight
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithRows(rows),
		table.WithFocused(true),
		table.WithHeight(height),
	)

	if m.selectedRow < len(rows) {
		t.SetCursor(m.selectedRow)
	}

	return t.View()
}

func (m Model) handleDashboardKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q":
		return m, tea.Quit

	case "up", "k":
		if m.selectedRow > 0 {
			m.selectedRow--
		}
		return m, nil

	case "down", "j":
		if m.selectedRow < len(m.rows)-1 {
			m.selectedRow++
		}
		return m, nil

	case "r":
		m.status = ""
		return m, fetchConfigsCmd(m.svc)

	case "n":
		m = m.enterCreateView()
		return m, fetchCalendarsCmd(m.svc)

	case "d":
		if row, ok := m.currentRow(); ok && !row.pending {
			m.state = sync.Reduce(m.state, sync.DeleteRequested{ConfigID: row.forwardID})
			m.rows = buildRows(m.state)
			m.viewMode = ViewConfirmDelete
		}
		return m, nil

	case "s":
		if row, ok := m.currentRow(); ok {
			m.status = "Syncing..."
			return m, triggerCmd(m.svc, row.forwardID, false)
		}
		return m, nil

	case "S":
		if row, ok := m.currentRow(); ok && row.kind == rowPair && row.reverseID != "" {
			m.status = "Syncing both directions..."
			return m, triggerCmd(m.svc, row.forwardID, true)
		}
		return m, nil

	case "l":
		if row, ok := m.currentRow(); ok {
			return m, fetchLogsCmd(m.svc, row.forwardID)
		}
		return m, nil
	}

	return m, nil
}

func (m Model) currentRow() (dashboardRow, bool) {
	if m.selectedRow < 0 || m.selectedRow >= len(m.rows) {
		return dashboardRow{}, false
	}
	return m.rows[m.selectedRow], true
}
