// ABOUTME: Tests for the TUI dashboard model
// ABOUTME: Verifies row building, rendering, and key-driven state transitions
package tui

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/livelyapps/calsync/models"
	"github.com/livelyapps/calsync/sync"
)

func contains(s, substr string) bool {
	return strings.Contains(s, substr)
}

func testConfigs() []models.SyncConfig {
	return []models.SyncConfig{
		{ID: "fwd", SourceCalendarID: "work@example.com", DestCalendarID: "home@example.com", SyncDirection: models.DirectionAToB, PairedConfigID: "rev", DestinationColorID: "7"},
		{ID: "rev", SourceCalendarID: "home@example.com", DestCalendarID: "work@example.com", SyncDirection: models.DirectionBToA, PairedConfigID: "rev"},
		{ID: "solo", SourceCalendarID: "team@example.com", DestCalendarID: "work@example.com", SyncDirection: models.DirectionOneWay},
	}
}

func modelWithConfigs(t *testing.T) Model {
	t.Helper()
	m := NewModel(sync.NewService(nil))
	updated, _ := m.Update(configsMsg{configs: testConfigs()})
	return updated.(Model)
}

func TestBuildRowsPairsBeforeOneWay(t *testing.T) {
	m := modelWithConfigs(t)

	if len(m.rows) != 2 {
		t.Fatalf("Expected 2 rows, got %d", len(m.rows))
	}
	if m.rows[0].kind != rowPair {
		t.Error("First row should be the pair")
	}
	if m.rows[0].forwardID != "fwd" || m.rows[0].reverseID != "rev" {
		t.Errorf("Pair row ids wrong: %q / %q", m.rows[0].forwardID, m.rows[0].reverseID)
	}
	if m.rows[1].kind != rowOneWay || m.rows[1].forwardID != "solo" {
		t.Errorf("Second row should be the one-way config, got %+v", m.rows[1])
	}
}

func TestBuildRowsOrphanPair(t *testing.T) {
	m := NewModel(sync.NewService(nil))
	configs := []models.SyncConfig{
		{ID: "half", SourceCalendarID: "a@example.com", DestCalendarID: "b@example.com", SyncDirection: models.DirectionAToB, PairedConfigID: "gone"},
	}
	updated, _ := m.Update(configsMsg{configs: configs})
	m = updated.(Model)

	if len(m.rows) != 1 {
		t.Fatalf("Expected 1 row, got %d", len(m.rows))
	}
	if m.rows[0].reverseID != "" {
		t.Errorf("Orphan row should have no reverse id, got %q", m.rows[0].reverseID)
	}
	if !contains(m.rows[0].direction, "reverse missing") {
		t.Errorf("Orphan direction should note the missing leg, got %q", m.rows[0].direction)
	}
}

func TestDashboardRendering(t *testing.T) {
	m := modelWithConfigs(t)

	output := m.renderDashboard()
	if output == "" {
		t.Fatal("Dashboard view should not be empty")
	}
	if !contains(output, "CALSYNC") {
		t.Error("Dashboard should contain title")
	}
	if !contains(output, "work@example.com") {
		t.Error("Dashboard should list calendar ids")
	}
	if !contains(output, "Peacock") {
		t.Error("Dashboard should resolve the pair's color name")
	}
}

func TestDashboardKeyNavigation(t *testing.T) {
	m := modelWithConfigs(t)

	updated, _ := m.handleDashboardKeys(tea.KeyMsg{Type: tea.KeyDown})
	m = updated.(Model)
	if m.selectedRow != 1 {
		t.Errorf("Expected selectedRow=1, got %d", m.selectedRow)
	}

	// Does not run past the end.
	updated, _ = m.handleDashboardKeys(tea.KeyMsg{Type: tea.KeyDown})
	m = updated.(Model)
	if m.selectedRow != 1 {
		t.Errorf("Expected selectedRow to stay at 1, got %d", m.selectedRow)
	}

	updated, _ = m.handleDashboardKeys(tea.KeyMsg{Type: tea.KeyUp})
	m = updated.(Model)
	if m.selectedRow != 0 {
		t.Errorf("Expected selectedRow=0, got %d", m.selectedRow)
	}
}

func TestDeleteRequestOpensConfirmation(t *testing.T) {
	m := modelWithConfigs(t)

	updated, _ := m.handleDashboardKeys(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'d'}})
	m = updated.(Model)

	if m.viewMode != ViewConfirmDelete {
		t.Fatalf("Expected ViewConfirmDelete, got %v", m.viewMode)
	}
	if phase, ok := m.state.PendingDeletion["fwd"]; !ok || phase != sync.PhaseConfirming {
		t.Error("Forward config should be pending in the confirming phase")
	}

	output := m.renderConfirmDeleteView()
	if !contains(output, "Both directions") {
		t.Error("Pair confirmation should warn both legs are removed")
	}
}

func TestDeleteCancelReturnsToDashboard(t *testing.T) {
	m := modelWithConfigs(t)

	updated, _ := m.handleDashboardKeys(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'d'}})
	m = updated.(Model)
	updated, _ = m.handleConfirmDeleteKeys(tea.KeyMsg{Type: tea.KeyEsc})
	m = updated.(Model)

	if m.viewMode != ViewDashboard {
		t.Errorf("Expected ViewDashboard after cancel, got %v", m.viewMode)
	}
	if len(m.state.PendingDeletion) != 0 {
		t.Error("Cancel should clear the pending marker")
	}
}

func TestDeleteConfirmIssuesCommand(t *testing.T) {
	m := modelWithConfigs(t)

	updated, _ := m.handleDashboardKeys(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'d'}})
	m = updated.(Model)
	updated, cmd := m.handleConfirmDeleteKeys(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'y'}})
	m = updated.(Model)

	if cmd == nil {
		t.Fatal("Confirm should issue a delete command")
	}
	if phase := m.state.PendingDeletion["fwd"]; phase != sync.PhaseInFlight {
		t.Errorf("Confirmed config should be in flight, got %v", phase)
	}
}

func TestDeleteDoneRemovesPair(t *testing.T) {
	m := modelWithConfigs(t)

	updated, _ := m.Update(deleteDoneMsg{forwardID: "fwd", reverseID: "rev"})
	m = updated.(Model)

	if len(m.rows) != 1 {
		t.Fatalf("Expected 1 row after pair delete, got %d", len(m.rows))
	}
	if m.rows[0].forwardID != "solo" {
		t.Errorf("Remaining row should be the one-way config, got %q", m.rows[0].forwardID)
	}
	if m.viewMode != ViewDashboard {
		t.Errorf("Expected ViewDashboard after delete, got %v", m.viewMode)
	}
}

func TestPartialDeleteKeepsReverseLeg(t *testing.T) {
	m := modelWithConfigs(t)

	err := &sync.PartialDeleteError{ForwardID: "fwd", ReverseID: "rev", Err: errBoom}
	updated, _ := m.Update(deleteDoneMsg{forwardID: "fwd", reverseID: "rev", err: err})
	m = updated.(Model)

	ids := make(map[string]bool)
	for _, c := range m.state.Configs {
		ids[c.ID] = true
	}
	if ids["fwd"] {
		t.Error("Forward config should be removed after partial delete")
	}
	if !ids["rev"] {
		t.Error("Reverse config should survive a partial delete")
	}
}

var errBoom = &sync.ValidationError{Message: "boom"}

func TestCreateFormToggleAndSubmitValidation(t *testing.T) {
	m := modelWithConfigs(t)

	updated, _ := m.handleDashboardKeys(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'n'}})
	m = updated.(Model)
	if m.viewMode != ViewCreate {
		t.Fatalf("Expected ViewCreate, got %v", m.viewMode)
	}

	updated, _ = m.handleCreateKeys(tea.KeyMsg{Type: tea.KeyCtrlB})
	m = updated.(Model)
	if !m.bidirectional {
		t.Error("Ctrl+B should toggle bidirectional mode")
	}

	output := m.renderCreateView()
	if !contains(output, "BIDIRECTIONAL") {
		t.Error("Bidirectional form should say so in its title")
	}

	updated, _ = m.handleCreateKeys(tea.KeyMsg{Type: tea.KeyEsc})
	m = updated.(Model)
	if m.viewMode != ViewDashboard {
		t.Errorf("Esc should return to the dashboard, got %v", m.viewMode)
	}
}

func TestLogsViewRendering(t *testing.T) {
	m := modelWithConfigs(t)
	updated, _ := m.Update(logsMsg{
		configID: "solo",
		logs: []models.SyncLog{
			{ID: "log-1", Status: models.SyncStatusSuccess, EventsCreated: 3, EventsUpdated: 1},
			{ID: "log-2", Status: models.SyncStatusFailed, ErrorMessage: "rate limited"},
		},
	})
	m = updated.(Model)

	if m.viewMode != ViewLogs {
		t.Fatalf("Expected ViewLogs, got %v", m.viewMode)
	}

	output := m.renderLogsView()
	if !contains(output, "✓") || !contains(output, "✗") {
		t.Error("Logs view should mark success and failure")
	}
	if !contains(output, "rate limited") {
		t.Error("Logs view should surface the error message")
	}

	updated, _ = m.handleLogsKeys(tea.KeyMsg{Type: tea.KeyEsc})
	m = updated.(Model)
	if m.viewMode != ViewDashboard {
		t.Errorf("Esc should leave the logs view, got %v", m.viewMode)
	}
}
