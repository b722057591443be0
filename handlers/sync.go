// ABOUTME: Sync config MCP tool handlers
// ABOUTME: Implements list, create, delete, trigger, calendar, and log tools
package handlers

import (
	"context"
	"fmt"
	"time"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/livelyapps/calsync/colors"
	"github.com/livelyapps/calsync/models"
	"github.com/livelyapps/calsync/sync"
)

type SyncHandlers struct {
	svc *sync.Service
}

func NewSyncHandlers(svc *sync.Service) *SyncHandlers {
	return &SyncHandlers{svc: svc}
}

type ConfigOutput struct {
	ID                 string `json:"id"`
	SourceCalendarID   string `json:"source_calendar_id"`
	DestCalendarID     string `json:"dest_calendar_id"`
	SyncDirection      string `json:"sync_direction"`
	PairedConfigID     string `json:"paired_config_id,omitempty"`
	DestinationColor   string `json:"destination_color"`
	PrivacyModeEnabled bool   `json:"privacy_mode_enabled"`
	SyncLookaheadDays  int    `json:"sync_lookahead_days"`
	IsActive           bool   `json:"is_active"`
	LastSyncedAt       string `json:"last_synced_at,omitempty"`
}

func configToOutput(config models.SyncConfig) ConfigOutput {
	out := ConfigOutput{
		ID:                 config.ID,
		SourceCalendarID:   config.SourceCalendarID,
		DestCalendarID:     config.DestCalendarID,
		SyncDirection:      string(config.SyncDirection),
		PairedConfigID:     config.PairedConfigID,
		DestinationColor:   colors.ResolveName(config.DestinationColorID),
		PrivacyModeEnabled: config.PrivacyModeEnabled,
		SyncLookaheadDays:  config.SyncLookaheadDays,
		IsActive:           config.IsActive,
	}
	if config.LastSyncedAt != nil {
		out.LastSyncedAt = config.LastSyncedAt.Format(time.RFC3339)
	}
	return out
}

type PairOutput struct {
	PairKey string        `json:"pair_key"`
	Forward ConfigOutput  `json:"forward"`
	Reverse *ConfigOutput `json:"reverse,omitempty"`
	Orphan  bool          `json:"orphan"`
}

type ListConfigsInput struct{}

type ListConfigsOutput struct {
	OneWay        []ConfigOutput `json:"one_way"`
	Bidirectional []PairOutput   `json:"bidirectional"`
}

func (h *SyncHandlers) ListConfigs(ctx context.Context, request *mcp.CallToolRequest, input ListConfigsInput) (*mcp.CallToolResult, ListConfigsOutput, error) {
	_, grouped, err := h.svc.Refresh(ctx)
	if err != nil {
		return nil, ListConfigsOutput{}, err
	}

	out := ListConfigsOutput{
		OneWay:        []ConfigOutput{},
		Bidirectional: []PairOutput{},
	}
	for _, config := range grouped.OneWay {
		out.OneWay = append(out.OneWay, configToOutput(config))
	}
	for _, pair := range grouped.AnchoredPairs() {
		p := PairOutput{
			PairKey: pair.Key,
			Forward: configToOutput(*pair.Forward),
			Orphan:  pair.IsOrphan(),
		}
		if pair.Reverse != nil {
			reverse := configToOutput(*pair.Reverse)
			p.Reverse = &reverse
		}
		out.Bidirectional = append(out.Bidirectional, p)
	}
	return nil, out, nil
}

type CreateConfigInput struct {
	SourceCalendarID  string `json:"source_calendar_id" jsonschema:"Source calendar id (required)"`
	DestCalendarID    string `json:"dest_calendar_id" jsonschema:"Destination calendar id (required)"`
	SyncLookaheadDays int    `json:"sync_lookahead_days,omitempty" jsonschema:"Sync window in days (default 90)"`
	ColorID           string `json:"color_id,omitempty" jsonschema:"Destination event color id 1-11, empty inherits the source color"`
	Bidirectional     bool   `json:"bidirectional,omitempty" jsonschema:"Create both legs of a bidirectional pair"`
	ReverseColorID    string `json:"reverse_color_id,omitempty" jsonschema:"Destination color for the reverse leg"`
}

func (h *SyncHandlers) CreateConfig(ctx context.Context, request *mcp.CallToolRequest, input CreateConfigInput) (*mcp.CallToolResult, ConfigOutput, error) {
	lookahead := input.SyncLookaheadDays
	if lookahead == 0 {
		lookahead = models.DefaultLookaheadDays
	}

	var config *models.SyncConfig
	var err error
	if input.Bidirectional {
		config, err = h.svc.CreateBidirectional(ctx, input.SourceCalendarID, input.DestCalendarID, lookahead, sync.BidirectionalOptions{
			ForwardColorID: input.ColorID,
			ReverseColorID: input.ReverseColorID,
		})
	} else {
		config, err = h.svc.CreateOneWay(ctx, input.SourceCalendarID, input.DestCalendarID, lookahead, input.ColorID)
	}
	if err != nil {
		return nil, ConfigOutput{}, err
	}
	return nil, configToOutput(*config), nil
}

type DeleteConfigInput struct {
	ConfigID string `json:"config_id" jsonschema:"Config id to delete; for a bidirectional pair, the forward leg's id"`
}

type DeleteConfigOutput struct {
	Deleted []string `json:"deleted"`
	Warning string   `json:"warning,omitempty"`
}

// DeleteConfig deletes a config, or both legs when the id anchors a pair.
// The tool call itself is the confirmation step.
func (h *SyncHandlers) DeleteConfig(ctx context.Context, request *mcp.CallToolRequest, input DeleteConfigInput) (*mcp.CallToolResult, DeleteConfigOutput, error) {
	if input.ConfigID == "" {
		return nil, DeleteConfigOutput{}, fmt.Errorf("config_id is required")
	}

	_, grouped, err := h.svc.Refresh(ctx)
	if err != nil {
		return nil, DeleteConfigOutput{}, err
	}

	if pair, ok := grouped.PairFor(input.ConfigID); ok && pair.Forward != nil {
		reverseID := pair.ReverseID()
		err := h.svc.DeletePair(ctx, pair.Forward.ID, reverseID)
		if err == nil {
			deleted := []string{pair.Forward.ID}
			if reverseID != "" {
				deleted = append(deleted, reverseID)
			}
			return nil, DeleteConfigOutput{Deleted: deleted}, nil
		}
		if partial, ok := err.(*sync.PartialDeleteError); ok {
			return nil, DeleteConfigOutput{
				Deleted: []string{partial.ForwardID},
				Warning: partial.Error(),
			}, nil
		}
		return nil, DeleteConfigOutput{}, err
	}

	if err := h.svc.DeleteOneWay(ctx, input.ConfigID); err != nil {
		return nil, DeleteConfigOutput{}, err
	}
	return nil, DeleteConfigOutput{Deleted: []string{input.ConfigID}}, nil
}

type TriggerSyncInput struct {
	ConfigID       string `json:"config_id" jsonschema:"Config id to sync"`
	BothDirections bool   `json:"both_directions,omitempty" jsonschema:"Run both legs of a bidirectional pair"`
}

type TriggerSyncOutput struct {
	Message string `json:"message"`
	Status  string `json:"status,omitempty"`
	Created int    `json:"events_created"`
	Updated int    `json:"events_updated"`
	Deleted int    `json:"events_deleted"`
}

func (h *SyncHandlers) TriggerSync(ctx context.Context, request *mcp.CallToolRequest, input TriggerSyncInput) (*mcp.CallToolResult, TriggerSyncOutput, error) {
	if input.ConfigID == "" {
		return nil, TriggerSyncOutput{}, fmt.Errorf("config_id is required")
	}

	report, err := h.svc.TriggerSync(ctx, input.ConfigID, input.BothDirections)
	if err != nil {
		return nil, TriggerSyncOutput{}, err
	}

	out := TriggerSyncOutput{Message: report.Message}
	if report.LogAvailable {
		out.Status = string(report.Status)
		out.Created = report.Created
		out.Updated = report.Updated
		out.Deleted = report.Deleted
	}
	return nil, out, nil
}

type ListCalendarsInput struct {
	Account string `json:"account" jsonschema:"Which account to list: source or destination"`
}

type CalendarOutput struct {
	ID             string `json:"id"`
	Summary        string `json:"summary"`
	IsPrimary      bool   `json:"is_primary"`
	SuggestedColor string `json:"suggested_color_id,omitempty"`
}

type ListCalendarsOutput struct {
	Calendars []CalendarOutput `json:"calendars"`
}

func (h *SyncHandlers) ListCalendars(ctx context.Context, request *mcp.CallToolRequest, input ListCalendarsInput) (*mcp.CallToolResult, ListCalendarsOutput, error) {
	slot := models.AccountSlot(input.Account)
	if !slot.IsValid() {
		return nil, ListCalendarsOutput{}, fmt.Errorf("account must be %q or %q", models.AccountSource, models.AccountDestination)
	}

	cals, err := h.svc.Calendars(ctx, slot)
	if err != nil {
		return nil, ListCalendarsOutput{}, err
	}

	out := ListCalendarsOutput{Calendars: []CalendarOutput{}}
	for _, cal := range cals {
		out.Calendars = append(out.Calendars, CalendarOutput{
			ID:             cal.ID,
			Summary:        cal.DisplayName(),
			IsPrimary:      cal.IsPrimary,
			SuggestedColor: colors.SuggestDestination(cal),
		})
	}
	return nil, out, nil
}

type GetSyncLogsInput struct {
	ConfigID string `json:"config_id" jsonschema:"Config id whose history to fetch"`
	Limit    int    `json:"limit,omitempty" jsonschema:"Maximum number of entries (default 10)"`
}

type SyncLogOutput struct {
	ID        string `json:"id"`
	Status    string `json:"status"`
	Created   int    `json:"events_created"`
	Updated   int    `json:"events_updated"`
	Deleted   int    `json:"events_deleted"`
	Error     string `json:"error_message,omitempty"`
	StartedAt string `json:"started_at"`
}

type GetSyncLogsOutput struct {
	Logs []SyncLogOutput `json:"logs"`
}

func (h *SyncHandlers) GetSyncLogs(ctx context.Context, request *mcp.CallToolRequest, input GetSyncLogsInput) (*mcp.CallToolResult, GetSyncLogsOutput, error) {
	if input.ConfigID == "" {
		return nil, GetSyncLogsOutput{}, fmt.Errorf("config_id is required")
	}
	limit := input.Limit
	if limit == 0 {
		limit = 10
	}

	logs, err := h.svc.Logs(ctx, input.ConfigID)
	if err != nil {
		return nil, GetSyncLogsOutput{}, err
	}

	out := GetSyncLogsOutput{Logs: []SyncLogOutput{}}
	for i, entry := range logs {
		if i >= limit {
			break
		}
		out.Logs = append(out.Logs, SyncLogOutput{
			ID:        entry.ID,
			Status:    string(entry.Status),
			Created:   entry.EventsCreated,
			Updated:   entry.EventsUpdated,
			Deleted:   entry.EventsDeleted,
			Error:     entry.ErrorMessage,
			StartedAt: entry.StartedAt.Format(time.RFC3339),
		})
	}
	return nil, out, nil
}
