// ABOUTME: Lifecycle operations for sync configs: create, trigger, delete
// ABOUTME: Enforces local validation and two-step paired deletion semantics
package sync

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/livelyapps/calsync/api"
	"github.com/livelyapps/calsync/models"
)

// Backend is the slice of the CalSync API the lifecycle operations need.
// *api.Client satisfies it; tests substitute a fake.
type Backend interface {
	ListConfigs(ctx context.Context) ([]models.SyncConfig, error)
	CreateConfig(ctx context.Context, req api.CreateConfigRequest) (*models.SyncConfig, error)
	DeleteConfig(ctx context.Context, id string) error
	TriggerSync(ctx context.Context, id string, bothDirections bool) (*api.TriggerResult, error)
	GetSyncLogs(ctx context.Context, id string) ([]models.SyncLog, error)
	ListCalendars(ctx context.Context, slot models.AccountSlot) ([]models.CalendarSummary, error)
}

// ValidationError is a local form error, raised before any network call.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// IsValidationError reports whether err is a local validation failure.
func IsValidationError(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}

// PartialDeleteError reports a pair deletion whose forward leg succeeded but
// whose reverse leg failed. The forward config is genuinely gone; the
// reverse leg survives as an orphan the grouping engine renders one-sided.
type PartialDeleteError struct {
	ForwardID string
	ReverseID string
	Err       error
}

func (e *PartialDeleteError) Error() string {
	return fmt.Sprintf("forward config %s deleted, but deleting reverse config %s failed: %v",
		e.ForwardID, e.ReverseID, e.Err)
}

func (e *PartialDeleteError) Unwrap() error {
	return e.Err
}

// PrivacySettings configures redaction for one sync direction.
type PrivacySettings struct {
	Enabled         bool
	PlaceholderText string
}

// BidirectionalOptions carries the per-direction settings of a pair create.
type BidirectionalOptions struct {
	ForwardColorID string
	ReverseColorID string
	ForwardPrivacy PrivacySettings
	ReversePrivacy PrivacySettings
}

// TriggerReport is the user-facing outcome of a manual sync trigger. When
// LogAvailable is false the trigger itself succeeded but the follow-up log
// fetch did not; that is still a success.
type TriggerReport struct {
	Message string
	LogID   string

	LogAvailable bool
	Status       models.SyncStatus
	Created      int
	Updated      int
	Deleted      int
	ErrorMessage string
}

// Service implements the config lifecycle against an injected backend.
type Service struct {
	backend Backend

	// LogPollDelay is how long to wait after a trigger acknowledgement
	// before fetching sync logs for the run's counts.
	LogPollDelay time.Duration
}

// NewService creates a lifecycle service with the default log poll delay.
func NewService(backend Backend) *Service {
	return &Service{
		backend:      backend,
		LogPollDelay: 2 * time.Second,
	}
}

// Refresh fetches the latest config list and derives the grouped view-model.
func (s *Service) Refresh(ctx context.Context) ([]models.SyncConfig, Grouped, error) {
	configs, err := s.backend.ListConfigs(ctx)
	if err != nil {
		return nil, Grouped{}, fmt.Errorf("failed to list sync configs: %w", err)
	}
	return configs, Group(configs), nil
}

// Calendars fetches the calendar list for an account slot.
func (s *Service) Calendars(ctx context.Context, slot models.AccountSlot) ([]models.CalendarSummary, error) {
	return s.backend.ListCalendars(ctx, slot)
}

// Logs fetches the config's sync history, most recent first.
func (s *Service) Logs(ctx context.Context, configID string) ([]models.SyncLog, error) {
	return s.backend.GetSyncLogs(ctx, configID)
}

func validateCreate(sourceID, destID string, lookaheadDays int) error {
	if strings.TrimSpace(sourceID) == "" {
		return &ValidationError{Message: "source calendar is required"}
	}
	if strings.TrimSpace(destID) == "" {
		return &ValidationError{Message: "destination calendar is required"}
	}
	if sourceID == destID {
		return &ValidationError{Message: "source and destination calendars must differ"}
	}
	if lookaheadDays < models.MinLookaheadDays || lookaheadDays > models.MaxLookaheadDays {
		return &ValidationError{
			Message: fmt.Sprintf("lookahead days must be between %d and %d",
				models.MinLookaheadDays, models.MaxLookaheadDays),
		}
	}
	return nil
}

// CreateOneWay creates a one-way sync config. colorID may be empty to let
// destination events inherit the source calendar's color. Validation runs
// before any network call.
func (s *Service) CreateOneWay(ctx context.Context, sourceID, destID string, lookaheadDays int, colorID string) (*models.SyncConfig, error) {
	if err := validateCreate(sourceID, destID, lookaheadDays); err != nil {
		return nil, err
	}

	config, err := s.backend.CreateConfig(ctx, api.CreateConfigRequest{
		SourceCalendarID:   sourceID,
		DestCalendarID:     destID,
		SyncLookaheadDays:  lookaheadDays,
		DestinationColorID: colorID,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create sync config: %w", err)
	}
	return config, nil
}

// CreateBidirectional creates both legs of a bidirectional pair in one
// backend call and returns the forward config.
func (s *Service) CreateBidirectional(ctx context.Context, sourceID, destID string, lookaheadDays int, opts BidirectionalOptions) (*models.SyncConfig, error) {
	if err := validateCreate(sourceID, destID, lookaheadDays); err != nil {
		return nil, err
	}

	req := api.CreateConfigRequest{
		SourceCalendarID:   sourceID,
		DestCalendarID:     destID,
		SyncLookaheadDays:  lookaheadDays,
		DestinationColorID: opts.ForwardColorID,
		Bidirectional:      true,
		ReverseColorID:     opts.ReverseColorID,
	}
	if opts.ForwardPrivacy.Enabled {
		req.PrivacyModeEnabled = true
		req.PrivacyPlaceholderText = placeholderOrDefault(opts.ForwardPrivacy.PlaceholderText)
	}
	if opts.ReversePrivacy.Enabled {
		req.ReversePrivacyModeEnabled = true
		req.ReversePrivacyPlaceholderText = placeholderOrDefault(opts.ReversePrivacy.PlaceholderText)
	}

	config, err := s.backend.CreateConfig(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("failed to create bidirectional sync config: %w", err)
	}
	return config, nil
}

func placeholderOrDefault(text string) string {
	if strings.TrimSpace(text) == "" {
		return models.DefaultPrivacyPlaceholder
	}
	return text
}

// TriggerSync starts a manual sync run, waits LogPollDelay, then fetches
// sync logs to fill in the run's counts. A failed log fetch is swallowed:
// the trigger succeeded, which is the outcome the user cares about.
func (s *Service) TriggerSync(ctx context.Context, configID string, bothDirections bool) (*TriggerReport, error) {
	result, err := s.backend.TriggerSync(ctx, configID, bothDirections)
	if err != nil {
		return nil, fmt.Errorf("failed to trigger sync: %w", err)
	}

	report := &TriggerReport{
		Message: result.Message,
		LogID:   result.SyncLogID,
	}

	select {
	case <-time.After(s.LogPollDelay):
	case <-ctx.Done():
		return report, nil
	}

	logs, err := s.backend.GetSyncLogs(ctx, configID)
	if err != nil {
		return report, nil
	}

	for i := range logs {
		entry := &logs[i]
		if result.SyncLogID != "" && entry.ID != result.SyncLogID {
			continue
		}
		report.LogAvailable = true
		report.Status = entry.Status
		report.Created = entry.EventsCreated
		report.Updated = entry.EventsUpdated
		report.Deleted = entry.EventsDeleted
		report.ErrorMessage = entry.ErrorMessage
		break
	}

	return report, nil
}

// DeleteOneWay deletes a single config. Confirmation is the caller's duty;
// this issues the delete unconditionally.
func (s *Service) DeleteOneWay(ctx context.Context, configID string) error {
	if strings.TrimSpace(configID) == "" {
		return &ValidationError{Message: "config id is required"}
	}
	if err := s.backend.DeleteConfig(ctx, configID); err != nil {
		return fmt.Errorf("failed to delete sync config %s: %w", configID, err)
	}
	return nil
}

// DeletePair deletes a bidirectional pair, forward leg first. With an empty
// reverseID (orphaned pair) exactly one delete is issued; a delete call with
// an empty id must never reach the backend. If the forward delete fails the
// reverse leg is left untouched. If the reverse delete fails after the
// forward succeeded, the error is a *PartialDeleteError so callers can
// remove only the forward config from their state.
func (s *Service) DeletePair(ctx context.Context, forwardID, reverseID string) error {
	if strings.TrimSpace(forwardID) == "" {
		return &ValidationError{Message: "forward config id is required"}
	}

	if err := s.backend.DeleteConfig(ctx, forwardID); err != nil {
		return fmt.Errorf("failed to delete forward config %s: %w", forwardID, err)
	}

	if strings.TrimSpace(reverseID) == "" {
		return nil
	}

	if err := s.backend.DeleteConfig(ctx, reverseID); err != nil {
		return &PartialDeleteError{ForwardID: forwardID, ReverseID: reverseID, Err: err}
	}
	return nil
}
