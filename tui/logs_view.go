// ABOUTME: Sync history view for a single configuration
// ABOUTME: Lists runs most recent first with status and event counts
package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/livelyapps/calsync/models"
)

func (m Model) renderLogsView() string {
	var s strings.Builder

	s.WriteString(titleStyle.Render("SYNC HISTORY"))
	s.WriteString("\n")
	s.WriteString(helpStyle.Render("config " + m.logsConfig))
	s.WriteString("\n\n")

	if len(m.logs) == 0 {
		s.WriteString("No sync runs recorded yet.\n")
	}

	shown := m.logs
	if limit := m.height - 8; limit > 0 && len(shown) > limit {
		shown = shown[:limit]
	}

	for _, entry := range shown {
		s.WriteString(renderLogLine(entry))
		s.WriteString("\n")
	}

	s.WriteString("\n")
	s.WriteString(helpStyle.Render("Esc: Back"))
	return s.String()
}

func renderLogLine(entry models.SyncLog) string {
	marker := "⟳"
	switch entry.Status {
	case models.SyncStatusSuccess:
		marker = "✓"
	case models.SyncStatusFailed:
		marker = "✗"
	case models.SyncStatusPartial:
		marker = "!"
	}

	line := fmt.Sprintf("%s %s  +%d ~%d -%d",
		marker,
		entry.StartedAt.Format("Jan 02 15:04"),
		entry.EventsCreated,
		entry.EventsUpdated,
		entry.EventsDeleted,
	)
	if entry.ErrorMessage != "" {
		line += "  " + statusErrorStyle.Render(entry.ErrorMessage)
	}
	return line
}

func (m Model) handleLogsKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc", "q":
		m.viewMode = ViewDashboard
		m.logs = nil
		m.logsConfig = ""
		return m, nil
	}
	return m, nil
}
