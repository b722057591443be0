// ABOUTME: Data models for sync configurations, calendars, and sync logs
// ABOUTME: Mirrors the CalSync backend's JSON contract
package models

import (
	"time"
)

// SyncDirection is the direction of a sync configuration as stored by the
// backend. A bidirectional setup is persisted as two configs, one per leg.
type SyncDirection string

const (
	DirectionOneWay SyncDirection = "one_way"
	DirectionAToB   SyncDirection = "bidirectional_a_to_b"
	DirectionBToA   SyncDirection = "bidirectional_b_to_a"
)

// IsValid returns true if the direction is a known value.
func (d SyncDirection) IsValid() bool {
	switch d {
	case DirectionOneWay, DirectionAToB, DirectionBToA:
		return true
	}
	return false
}

// IsBidirectional reports whether the config is one leg of a pair.
func (d SyncDirection) IsBidirectional() bool {
	return d == DirectionAToB || d == DirectionBToA
}

// Sync config defaults and bounds, matching the backend.
const (
	DefaultLookaheadDays      = 90
	MinLookaheadDays          = 1
	MaxLookaheadDays          = 365
	DefaultPrivacyPlaceholder = "Personal appointment"
)

type SyncConfig struct {
	ID               string        `json:"id"`
	SourceCalendarID string        `json:"source_calendar_id"`
	DestCalendarID   string        `json:"dest_calendar_id"`
	SyncDirection    SyncDirection `json:"sync_direction"`

	// PairedConfigID links the two legs of a bidirectional pair. Both legs
	// carry the forward leg's id. Empty for one-way configs and for orphaned
	// legs whose counterpart was never created or partially deleted.
	PairedConfigID string `json:"paired_config_id,omitempty"`

	// DestinationColorID is a palette id ("1".."11"); empty means destination
	// events inherit the source calendar's color.
	DestinationColorID string `json:"destination_color_id,omitempty"`

	PrivacyModeEnabled     bool   `json:"privacy_mode_enabled"`
	PrivacyPlaceholderText string `json:"privacy_placeholder_text,omitempty"`

	SyncLookaheadDays int  `json:"sync_lookahead_days"`
	IsActive          bool `json:"is_active"`

	AutoSyncEnabled  bool   `json:"auto_sync_enabled"`
	AutoSyncCron     string `json:"auto_sync_cron,omitempty"`
	AutoSyncTimezone string `json:"auto_sync_timezone,omitempty"`

	LastSyncedAt *time.Time `json:"last_synced_at,omitempty"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at"`
}

// PairKey is the grouping key for bidirectional configs: the recorded pair
// link when present, otherwise the config's own id so an orphaned leg forms
// a singleton group.
func (c SyncConfig) PairKey() string {
	if c.PairedConfigID != "" {
		return c.PairedConfigID
	}
	return c.ID
}

// AccountSlot identifies which of the two linked accounts a request targets.
type AccountSlot string

const (
	AccountSource      AccountSlot = "source"
	AccountDestination AccountSlot = "destination"
)

// IsValid returns true if the slot is a known value.
func (s AccountSlot) IsValid() bool {
	return s == AccountSource || s == AccountDestination
}

// CalendarSummary is one entry of a connected account's calendar list.
type CalendarSummary struct {
	ID          string `json:"id"`
	Summary     string `json:"summary"`
	Description string `json:"description,omitempty"`
	TimeZone    string `json:"time_zone,omitempty"`
	AccessRole  string `json:"access_role,omitempty"`
	IsPrimary   bool   `json:"is_primary"`

	// ColorID is the calendar's declared event color when it maps onto the
	// sync palette; BackgroundColor is the raw hex the provider reports.
	// Either or both may be absent.
	ColorID         string `json:"color_id,omitempty"`
	BackgroundColor string `json:"background_color,omitempty"`
}

// DisplayName returns the calendar's summary, falling back to its id.
func (c CalendarSummary) DisplayName() string {
	if c.Summary != "" {
		return c.Summary
	}
	return c.ID
}

// SyncStatus is the lifecycle status of a sync run.
type SyncStatus string

const (
	SyncStatusRunning SyncStatus = "running"
	SyncStatusSuccess SyncStatus = "success"
	SyncStatusFailed  SyncStatus = "failed"
	SyncStatusPartial SyncStatus = "partial"
)

// Done reports whether the run has finished, successfully or not.
func (s SyncStatus) Done() bool {
	return s == SyncStatusSuccess || s == SyncStatusFailed || s == SyncStatusPartial
}

type SyncLog struct {
	ID           string `json:"id"`
	SyncConfigID string `json:"sync_config_id"`

	EventsCreated int `json:"events_created"`
	EventsUpdated int `json:"events_updated"`
	EventsDeleted int `json:"events_deleted"`

	Status        SyncStatus    `json:"status"`
	SyncDirection SyncDirection `json:"sync_direction,omitempty"`
	ErrorMessage  string        `json:"error_message,omitempty"`

	SyncWindowStart time.Time  `json:"sync_window_start"`
	SyncWindowEnd   time.Time  `json:"sync_window_end"`
	StartedAt       time.Time  `json:"started_at"`
	CompletedAt     *time.Time `json:"completed_at,omitempty"`
}
