// ABOUTME: Create form for new sync configurations
// ABOUTME: Supports one-way and bidirectional creation with color suggestion
package tui

import (
	"context"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/livelyapps/calsync/colors"
	"github.com/livelyapps/calsync/models"
	"github.com/livelyapps/calsync/sync"
)

const (
	fieldSource = iota
	fieldDest
	fieldLookahead
	fieldColor
	fieldCount
)

func (m Model) enterCreateView() Model {
	inputs := make([]textinput.Model, fieldCount)

	inputs[fieldSource] = textinput.New()
	inputs[fieldSource].Placeholder = "Source calendar ID"
	inputs[fieldSource].CharLimit = 200

	inputs[fieldDest] = textinput.New()
	inputs[fieldDest].Placeholder = "Destination calendar ID"
	inputs[fieldDest].CharLimit = 200

	inputs[fieldLookahead] = textinput.New()
	inputs[fieldLookahead].Placeholder = "Lookahead days"
	inputs[fieldLookahead].SetValue(strconv.Itoa(models.DefaultLookaheadDays))
	inputs[fieldLookahead].CharLimit = 3

	inputs[fieldColor] = textinput.New()
	inputs[fieldColor].Placeholder = "Color ID 1-11, auto, or blank to inherit"
	inputs[fieldColor].CharLimit = 4

	m.formInputs = inputs
	m.focusIndex = 0
	m.bidirectional = false
	m.updateFormFocus()
	m.viewMode = ViewCreate
	return m
}

func (m *Model) updateFormFocus() {
	for i := range m.formInputs {
		if i == m.focusIndex {
			m.formInputs[i].Focus()
		} else {
			m.formInputs[i].Blur()
		}
	}
}

func (m Model) renderCreateView() string {
	var s strings.Builder

	if m.bidirectional {
		s.WriteString(titleStyle.Render("NEW BIDIRECTIONAL SYNC"))
	} else {
		s.WriteString(titleStyle.Render("NEW SYNC CONFIG"))
	}
	s.WriteString("\n\n")

	for i, input := range m.formInputs {
		if i == m.focusIndex {
			s.WriteString("> ")
		} else {
			s.WriteString("  ")
		}
		s.WriteString(input.View())
		s.WriteString("\n")
	}

	s.WriteString("\n")
	if name := m.colorPreview(); name != "" {
		s.WriteString("Destination color: " + name + "\n\n")
	}

	if m.status != "" {
		s.WriteString(m.status)
		s.WriteString("\n")
	}

	help := []string{
		"Tab: Next field",
		"Ctrl+B: Toggle bidirectional",
		"Enter: Create",
		"Esc: Cancel",
	}
	s.WriteString(helpStyle.Render(strings.Join(help, " • ")))

	return s.String()
}

func (m Model) colorPreview() string {
	value := strings.TrimSpace(m.formInputs[fieldColor].Value())
	if value == "auto" {
		if suggested := m.suggestColor(); suggested != "" {
			return colors.ResolveName(suggested) + " (suggested)"
		}
		return "no suggestion available"
	}
	return colors.ResolveName(value)
}

// suggestColor picks a destination color from the source calendar whose id
// matches the form's source field, falling back to the first calendar.
func (m Model) suggestColor() string {
	if len(m.sourceCalendars) == 0 {
		return ""
	}
	sourceID := strings.TrimSpace(m.formInputs[fieldSource].Value())
	for _, cal := range m.sourceCalendars {
		if cal.ID == sourceID {
			return colors.SuggestDestination(cal)
		}
	}
	return colors.SuggestDestination(m.sourceCalendars[0])
}

func (m Model) handleCreateKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.viewMode = ViewDashboard
		m.status = ""
		return m, nil

	case "tab":
		m.focusIndex = (m.focusIndex + 1) % len(m.formInputs)
		m.updateFormFocus()
		return m, nil

	case "shift+tab":
		m.focusIndex = (m.focusIndex - 1 + len(m.formInputs)) % len(m.formInputs)
		m.updateFormFocus()
		return m, nil

	case "ctrl+b":
		m.bidirectional = !m.bidirectional
		return m, nil

	case "enter":
		return m.submitCreate()
	}

	var cmd tea.Cmd
	m.formInputs[m.focusIndex], cmd = m.formInputs[m.focusIndex].Update(msg)
	return m, cmd
}

func (m Model) submitCreate() (tea.Model, tea.Cmd) {
	sourceID := strings.TrimSpace(m.formInputs[fieldSource].Value())
	destID := strings.TrimSpace(m.formInputs[fieldDest].Value())

	lookahead := models.DefaultLookaheadDays
	if raw := strings.TrimSpace(m.formInputs[fieldLookahead].Value()); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil {
			m.status = statusErrorStyle.Render("lookahead days must be a number")
			return m, nil
		}
		lookahead = parsed
	}

	colorID := strings.TrimSpace(m.formInputs[fieldColor].Value())
	if colorID == "auto" {
		colorID = m.suggestColor()
	}

	bidirectional := m.bidirectional
	svc := m.svc
	m.status = "Creating..."

	return m, func() tea.Msg {
		var config *models.SyncConfig
		var err error
		if bidirectional {
			config, err = svc.CreateBidirectional(context.Background(), sourceID, destID, lookahead, sync.BidirectionalOptions{
				ForwardColorID: colorID,
			})
		} else {
			config, err = svc.CreateOneWay(context.Background(), sourceID, destID, lookahead, colorID)
		}
		return createDoneMsg{config: config, err: err}
	}
}
