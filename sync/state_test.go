// ABOUTME: Tests for the dashboard state reducer
// ABOUTME: Verifies the delete state machine and optimistic removal rules
package sync

import (
	"testing"

	"github.com/livelyapps/calsync/api"
	"github.com/livelyapps/calsync/models"
)

func fetchedState(ids ...string) Dashboard {
	configs := make([]models.SyncConfig, 0, len(ids))
	for _, id := range ids {
		configs = append(configs, models.SyncConfig{ID: id, SyncDirection: models.DirectionOneWay})
	}
	return Reduce(NewDashboard(), ConfigsFetched{Configs: configs})
}

func hasConfig(d Dashboard, id string) bool {
	for _, c := range d.Configs {
		if c.ID == id {
			return true
		}
	}
	return false
}

func TestDeleteConfirmationStateMachine(t *testing.T) {
	state := fetchedState("c1")

	state = Reduce(state, DeleteRequested{ConfigID: "c1"})
	if state.PendingDeletion["c1"] != PhaseConfirming {
		t.Fatal("request should open confirmation")
	}
	if !hasConfig(state, "c1") {
		t.Fatal("nothing is removed before the backend confirms")
	}

	// Cancelling returns the config to its idle state.
	cancelled := Reduce(state, DeleteCancelled{ConfigID: "c1"})
	if _, pending := cancelled.PendingDeletion["c1"]; pending {
		t.Error("cancel should clear the pending marker")
	}
	if !hasConfig(cancelled, "c1") {
		t.Error("cancel must not remove the config")
	}

	// Confirming moves it in flight; cancel no longer applies.
	state = Reduce(state, DeleteConfirmed{ConfigID: "c1"})
	if state.PendingDeletion["c1"] != PhaseInFlight {
		t.Error("confirm should mark the delete in flight")
	}
	state = Reduce(state, DeleteCancelled{ConfigID: "c1"})
	if state.PendingDeletion["c1"] != PhaseInFlight {
		t.Error("an in-flight delete cannot be cancelled")
	}

	state = Reduce(state, DeleteSucceeded{ConfigIDs: []string{"c1"}})
	if hasConfig(state, "c1") {
		t.Error("confirmed success removes the config")
	}
	if len(state.PendingDeletion) != 0 {
		t.Error("pending marker should be cleared")
	}
}

func TestDeleteFailedKeepsConfigs(t *testing.T) {
	state := fetchedState("c1", "c2")
	state = Reduce(state, DeleteConfirmed{ConfigID: "c1"})

	state = Reduce(state, DeleteFailed{ConfigID: "c1", Message: "backend returned 500"})

	if !hasConfig(state, "c1") || !hasConfig(state, "c2") {
		t.Error("a failed delete must leave local state untouched")
	}
	if len(state.Errors) != 1 || state.Errors[0] != "backend returned 500" {
		t.Errorf("error should be recorded, got %v", state.Errors)
	}
}

func TestPartialDeleteRemovesOnlyForward(t *testing.T) {
	state := fetchedState("f1", "r1", "o1")

	partial := &PartialDeleteError{
		ForwardID: "f1",
		ReverseID: "r1",
		Err:       &api.Error{StatusCode: 500, Detail: "boom"},
	}
	state = Reduce(state, DeleteOutcome("f1", "r1", partial))

	if hasConfig(state, "f1") {
		t.Error("forward config is genuinely gone and must be removed")
	}
	if !hasConfig(state, "r1") {
		t.Error("reverse config survived and must stay")
	}
	if len(state.Errors) != 1 {
		t.Errorf("reverse failure should be surfaced, got %v", state.Errors)
	}

	// On the next grouping pass the surviving leg is a one-sided bucket.
	grouped := state.Grouped()
	if len(grouped.AnchoredPairs()) != 0 {
		t.Error("surviving reverse leg must not render as a pair")
	}
}

func TestDeleteOutcomeSuccessListsBothLegs(t *testing.T) {
	action := DeleteOutcome("f1", "r1", nil)
	succeeded, ok := action.(DeleteSucceeded)
	if !ok {
		t.Fatalf("expected DeleteSucceeded, got %T", action)
	}
	if len(succeeded.ConfigIDs) != 2 {
		t.Errorf("expected both legs removed, got %v", succeeded.ConfigIDs)
	}

	action = DeleteOutcome("f1", "", nil)
	succeeded = action.(DeleteSucceeded)
	if len(succeeded.ConfigIDs) != 1 || succeeded.ConfigIDs[0] != "f1" {
		t.Errorf("orphan success removes only the forward leg, got %v", succeeded.ConfigIDs)
	}
}

func TestLastFetchWins(t *testing.T) {
	state := fetchedState("c1", "c2")
	state = Reduce(state, DeleteRequested{ConfigID: "c1"})

	// A refetch racing the flow replaces the list wholesale and drops
	// pending markers for configs it no longer knows.
	state = Reduce(state, ConfigsFetched{Configs: []models.SyncConfig{
		{ID: "c2", SyncDirection: models.DirectionOneWay},
		{ID: "c3", SyncDirection: models.DirectionOneWay},
	}})

	if hasConfig(state, "c1") {
		t.Error("refetched list is authoritative")
	}
	if _, pending := state.PendingDeletion["c1"]; pending {
		t.Error("pending marker for a vanished config should be dropped")
	}
}

func TestReduceDoesNotMutateInput(t *testing.T) {
	original := fetchedState("c1")
	_ = Reduce(original, DeleteRequested{ConfigID: "c1"})

	if len(original.PendingDeletion) != 0 {
		t.Error("reduce must not mutate its input state")
	}
}
