// ABOUTME: Dashboard state reducer for optimistic config-list updates
// ABOUTME: Makes the delete confirmation state machine explicit and testable
package sync

import (
	"github.com/livelyapps/calsync/models"
)

// DeletePhase tracks where a config is in its deletion flow.
type DeletePhase int

const (
	// PhaseConfirming: the confirmation prompt is open, nothing sent yet.
	PhaseConfirming DeletePhase = iota
	// PhaseInFlight: the user confirmed and the delete call is pending.
	PhaseInFlight
)

// Dashboard is the locally held state behind the config listing. Configs is
// only written by a full refetch or by confirmed delete outcomes; every
// render derives the grouped view-model from it with Group.
type Dashboard struct {
	Configs         []models.SyncConfig
	PendingDeletion map[string]DeletePhase
	Errors          []string
}

// NewDashboard returns an empty dashboard state.
func NewDashboard() Dashboard {
	return Dashboard{PendingDeletion: make(map[string]DeletePhase)}
}

// Grouped derives the current view-model.
func (d Dashboard) Grouped() Grouped {
	return Group(d.Configs)
}

// Action is a discrete state transition. The set is closed; Reduce handles
// every variant.
type Action interface {
	isAction()
}

// ConfigsFetched replaces the config list after a successful refetch.
// Last fetch wins, including against an in-flight optimistic removal.
type ConfigsFetched struct {
	Configs []models.SyncConfig
}

// DeleteRequested opens the confirmation prompt for a config.
type DeleteRequested struct {
	ConfigID string
}

// DeleteCancelled abandons the prompt; the config returns to its idle state.
type DeleteCancelled struct {
	ConfigID string
}

// DeleteConfirmed marks the delete call as issued.
type DeleteConfirmed struct {
	ConfigID string
}

// DeleteSucceeded removes the named configs after the backend confirmed
// deletion. For a pair both ids are listed; never more than was deleted.
type DeleteSucceeded struct {
	ConfigIDs []string
}

// DeleteFailed records a failed deletion. Removed lists configs that were
// deleted before the failure (the forward leg of a partially deleted pair);
// they are taken out of the list, everything else stays.
type DeleteFailed struct {
	ConfigID string
	Removed  []string
	Message  string
}

func (ConfigsFetched) isAction()  {}
func (DeleteRequested) isAction() {}
func (DeleteCancelled) isAction() {}
func (DeleteConfirmed) isAction() {}
func (DeleteSucceeded) isAction() {}
func (DeleteFailed) isAction()    {}

// Reduce applies an action and returns the next state. It never mutates its
// input; callers can hold the old state for comparison.
func Reduce(state Dashboard, action Action) Dashboard {
	next := Dashboard{
		Configs:         state.Configs,
		PendingDeletion: copyPending(state.PendingDeletion),
		Errors:          state.Errors,
	}

	switch a := action.(type) {
	case ConfigsFetched:
		next.Configs = a.Configs
		// Drop pending markers for configs the fetch no longer knows.
		present := make(map[string]bool, len(a.Configs))
		for _, c := range a.Configs {
			present[c.ID] = true
		}
		for id := range next.PendingDeletion {
			if !present[id] {
				delete(next.PendingDeletion, id)
			}
		}

	case DeleteRequested:
		next.PendingDeletion[a.ConfigID] = PhaseConfirming

	case DeleteCancelled:
		if next.PendingDeletion[a.ConfigID] == PhaseConfirming {
			delete(next.PendingDeletion, a.ConfigID)
		}

	case DeleteConfirmed:
		next.PendingDeletion[a.ConfigID] = PhaseInFlight

	case DeleteSucceeded:
		next.Configs = removeConfigs(next.Configs, a.ConfigIDs)
		for _, id := range a.ConfigIDs {
			delete(next.PendingDeletion, id)
		}

	case DeleteFailed:
		next.Configs = removeConfigs(next.Configs, a.Removed)
		delete(next.PendingDeletion, a.ConfigID)
		for _, id := range a.Removed {
			delete(next.PendingDeletion, id)
		}
		if a.Message != "" {
			next.Errors = append(append([]string{}, state.Errors...), a.Message)
		}
	}

	return next
}

// DeleteOutcome translates a DeletePair / DeleteOneWay result into the
// matching action. A *PartialDeleteError removes only the forward leg and
// surfaces the reverse failure distinctly.
func DeleteOutcome(forwardID, reverseID string, err error) Action {
	if err == nil {
		ids := []string{forwardID}
		if reverseID != "" {
			ids = append(ids, reverseID)
		}
		return DeleteSucceeded{ConfigIDs: ids}
	}

	if partial, ok := err.(*PartialDeleteError); ok {
		return DeleteFailed{
			ConfigID: forwardID,
			Removed:  []string{partial.ForwardID},
			Message:  partial.Error(),
		}
	}

	return DeleteFailed{ConfigID: forwardID, Message: err.Error()}
}

func copyPending(pending map[string]DeletePhase) map[string]DeletePhase {
	copied := make(map[string]DeletePhase, len(pending))
	for id, phase := range pending {
		copied[id] = phase
	}
	return copied
}

func removeConfigs(configs []models.SyncConfig, ids []string) []models.SyncConfig {
	if len(ids) == 0 {
		return configs
	}
	drop := make(map[string]bool, len(ids))
	for _, id := range ids {
		drop[id] = true
	}

	kept := make([]models.SyncConfig, 0, len(configs))
	for _, c := range configs {
		if !drop[c.ID] {
			kept = append(kept, c)
		}
	}
	return kept
}
