// ABOUTME: Terminal User Interface using bubbletea framework
// ABOUTME: Interactive dashboard for sync configurations
package tui

import (
	"context"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/livelyapps/calsync/models"
	"github.com/livelyapps/calsync/sync"
)

// ViewMode represents the current TUI view
type ViewMode int

const (
	ViewDashboard ViewMode = iota
	ViewCreate
	ViewConfirmDelete
	ViewLogs
)

// Model is the main bubbletea model
type Model struct {
	svc      *sync.Service
	viewMode ViewMode

	// Dashboard state: the reducer-owned config list plus derived rows.
	state       sync.Dashboard
	rows        []dashboardRow
	selectedRow int
	status      string

	// Create form state
	formInputs      []textinput.Model
	focusIndex      int
	bidirectional   bool
	sourceCalendars []models.CalendarSummary

	// Logs view state
	logs       []models.SyncLog
	logsConfig string

	// UI state
	width  int
	height int
	err    error
}

// NewModel creates a new TUI model
func NewModel(svc *sync.Service) Model {
	return Model{
		svc:      svc,
		viewMode: ViewDashboard,
		state:    sync.NewDashboard(),
		width:    80,
		height:   24,
	}
}

func (m Model) Init() tea.Cmd {
	return fetchConfigsCmd(m.svc)
}

// Messages for async backend operations.

type configsMsg struct {
	configs []models.SyncConfig
	err     error
}

type deleteDoneMsg struct {
	forwardID string
	reverseID string
	err       error
}

type triggerDoneMsg struct {
	report *sync.TriggerReport
	err    error
}

type createDoneMsg struct {
	config *models.SyncConfig
	err    error
}

type calendarsMsg struct {
	calendars []models.CalendarSummary
}

type logsMsg struct {
	configID string
	logs     []models.SyncLog
	err      error
}

func fetchConfigsCmd(svc *sync.Service) tea.Cmd {
	return func() tea.Msg {
		configs, _, err := svc.Refresh(context.Background())
		return configsMsg{configs: configs, err: err}
	}
}

func deleteCmd(svc *sync.Service, forwardID, reverseID string, isPair bool) tea.Cmd {
	return func() tea.Msg {
		var err error
		if isPair {
			err = svc.DeletePair(context.Background(), forwardID, reverseID)
		} else {
			err = svc.DeleteOneWay(context.Background(), forwardID)
		}
		return deleteDoneMsg{forwardID: forwardID, reverseID: reverseID, err: err}
	}
}

func triggerCmd(svc *sync.Service, configID string, both bool) tea.Cmd {
	return func() tea.Msg {
		report, err := svc.TriggerSync(context.Background(), configID, both)
		return triggerDoneMsg{report: report, err: err}
	}
}

func fetchCalendarsCmd(svc *sync.Service) tea.Cmd {
	return func() tea.Msg {
		// Suggestion metadata only; a fetch failure just disables "auto".
		cals, err := svc.Calendars(context.Background(), models.AccountSource)
		if err != nil {
			return calendarsMsg{}
		}
		return calendarsMsg{calendars: cals}
	}
}

func fetchLogsCmd(svc *sync.Service, configID string) tea.Cmd {
	return func() tea.Msg {
		logs, err := svc.Logs(context.Background(), configID)
		return logsMsg{configID: configID, logs: logs, err: err}
	}
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKeyPress(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case configsMsg:
		if msg.err != nil {
			m.err = msg.err
			return m, nil
		}
		m.err = nil
		m.state = sync.Reduce(m.state, sync.ConfigsFetched{Configs: msg.configs})
		m.rows = buildRows(m.state)
		if m.selectedRow >= len(m.rows) {
			m.selectedRow = max(0, len(m.rows)-1)
		}
		return m, nil

	case deleteDoneMsg:
		m.state = sync.Reduce(m.state, sync.DeleteOutcome(msg.forwardID, msg.reverseID, msg.err))
		m.rows = buildRows(m.state)
		if m.selectedRow >= len(m.rows) {
			m.selectedRow = max(0, len(m.rows)-1)
		}
		m.viewMode = ViewDashboard
		if msg.err != nil {
			m.status = statusErrorStyle.Render(msg.err.Error())
		} else {
			m.status = statusOKStyle.Render("Deleted.")
		}
		return m, nil

	case triggerDoneMsg:
		if msg.err != nil {
			m.status = statusErrorStyle.Render(msg.err.Error())
			return m, nil
		}
		m.status = statusOKStyle.Render(triggerSummary(msg.report))
		return m, fetchConfigsCmd(m.svc)

	case createDoneMsg:
		if msg.err != nil {
			m.status = statusErrorStyle.Render(msg.err.Error())
			// Validation errors keep the form open for correction.
			return m, nil
		}
		m.viewMode = ViewDashboard
		m.status = statusOKStyle.Render("Created sync config " + msg.config.ID)
		return m, fetchConfigsCmd(m.svc)

	case calendarsMsg:
		m.sourceCalendars = msg.calendars
		return m, nil

	case logsMsg:
		if msg.err != nil {
			m.status = statusErrorStyle.Render(msg.err.Error())
			m.viewMode = ViewDashboard
			return m, nil
		}
		m.logs = msg.logs
		m.logsConfig = msg.configID
		m.viewMode = ViewLogs
		return m, nil
	}

	return m, nil
}

func (m Model) View() string {
	switch m.viewMode {
	case ViewDashboard:
		return m.renderDashboard()
	case ViewCreate:
		return m.renderCreateView()
	case ViewConfirmDelete:
		return m.renderConfirmDeleteView()
	case ViewLogs:
		return m.renderLogsView()
	}
	return ""
}

func (m Model) handleKeyPress(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+c" {
		return m, tea.Quit
	}

	switch m.viewMode {
	case ViewDashboard:
		return m.handleDashboardKeys(msg)
	case ViewCreate:
		return m.handleCreateKeys(msg)
	case ViewConfirmDelete:
		return m.handleConfirmDeleteKeys(msg)
	case ViewLogs:
		return m.handleLogsKeys(msg)
	}

	return m, nil
}

// Styles
var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("170")).
			MarginBottom(1)

	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240")).
			MarginTop(1)

	statusOKStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("10"))

	statusErrorStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("9"))
)
