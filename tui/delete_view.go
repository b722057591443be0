// ABOUTME: Delete confirmation view for sync configurations
// ABOUTME: Pair deletes warn that both legs go; orphans note the missing leg
package tui

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/livelyapps/calsync/sync"
)

var (
	confirmBoxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("9")).
			Padding(1, 2).
			Width(60).
			Align(lipgloss.Center)

	warningStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("9")).
			Bold(true)

	confirmButtonStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("15")).
				Background(lipgloss.Color("9")).
				Padding(0, 2).
				MarginRight(2)

	cancelButtonStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("15")).
				Background(lipgloss.Color("8")).
				Padding(0, 2)
)

func (m Model) renderConfirmDeleteView() string {
	row, ok := m.currentRow()
	if !ok {
		return "No sync configuration selected."
	}

	title := warningStyle.Render("⚠  DELETE CONFIRMATION  ⚠")

	var message string
	switch {
	case row.kind == rowPair && row.reverseID != "":
		message = "Delete this bidirectional sync? Both directions will be removed."
	case row.kind == rowPair:
		message = "Delete this sync? Its reverse direction is already gone."
	default:
		message = "Delete this sync configuration?"
	}

	detail := fmt.Sprintf("\n%s %s %s\n", row.source, row.direction, row.dest)
	warning := "\nThis action cannot be undone!"

	buttons := lipgloss.JoinHorizontal(
		lipgloss.Left,
		confirmButtonStyle.Render("Yes, Delete (y)"),
		cancelButtonStyle.Render("Cancel (n/esc)"),
	)

	content := lipgloss.JoinVertical(
		lipgloss.Center,
		title,
		"",
		message,
		detail,
		warning,
		"",
		buttons,
	)

	box := confirmBoxStyle.Render(content)

	return lipgloss.Place(
		m.width,
		m.height,
		lipgloss.Center,
		lipgloss.Center,
		box,
	)
}

func (m Model) handleConfirmDeleteKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	row, ok := m.currentRow()
	if !ok {
		m.viewMode = ViewDashboard
		return m, nil
	}

	switch msg.String() {
	case "y", "Y":
		m.state = sync.Reduce(m.state, sync.DeleteConfirmed{ConfigID: row.forwardID})
		m.rows = buildRows(m.state)
		m.status = "Deleting..."
		return m, deleteCmd(m.svc, row.forwardID, row.reverseID, row.kind == rowPair)

	case "n", "N", "esc":
		m.state = sync.Reduce(m.state, sync.DeleteCancelled{ConfigID: row.forwardID})
		m.rows = buildRows(m.state)
		m.viewMode = ViewDashboard
		return m, nil
	}

	return m, nil
}
