// ABOUTME: HTTP client for the CalSync backend REST API
// ABOUTME: Wraps config, calendar, trigger, and sync log endpoints with typed errors
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/oauth2"

	"github.com/livelyapps/calsync/models"
)

// DefaultServer is used when CALSYNC_SERVER is not set.
const DefaultServer = "http://localhost:8000"

// Error is a failed backend response. Detail carries the server's
// human-readable message verbatim when the body could be parsed.
type Error struct {
	StatusCode int
	Detail     string
}

func (e *Error) Error() string {
	if e.Detail != "" {
		return fmt.Sprintf("backend returned %d: %s", e.StatusCode, e.Detail)
	}
	return fmt.Sprintf("backend returned %d", e.StatusCode)
}

// IsNotFound reports whether err is a 404 from the backend.
func IsNotFound(err error) bool {
	var apiErr *Error
	return errors.As(err, &apiErr) && apiErr.StatusCode == http.StatusNotFound
}

// IsUnauthorized reports whether err is a 401 or 403 from the backend,
// meaning the stored session token is no longer usable.
func IsUnauthorized(err error) bool {
	var apiErr *Error
	return errors.As(err, &apiErr) &&
		(apiErr.StatusCode == http.StatusUnauthorized || apiErr.StatusCode == http.StatusForbidden)
}

// CreateConfigRequest is the payload for creating a sync config. Setting
// Bidirectional makes the backend persist both legs; the response is the
// forward (a_to_b) config.
type CreateConfigRequest struct {
	SourceCalendarID   string `json:"source_calendar_id"`
	DestCalendarID     string `json:"dest_calendar_id"`
	SyncLookaheadDays  int    `json:"sync_lookahead_days"`
	DestinationColorID string `json:"destination_color_id,omitempty"`

	Bidirectional  bool   `json:"bidirectional,omitempty"`
	ReverseColorID string `json:"reverse_color_id,omitempty"`

	PrivacyModeEnabled     bool   `json:"privacy_mode_enabled,omitempty"`
	PrivacyPlaceholderText string `json:"privacy_placeholder_text,omitempty"`

	ReversePrivacyModeEnabled     bool   `json:"reverse_privacy_mode_enabled,omitempty"`
	ReversePrivacyPlaceholderText string `json:"reverse_privacy_placeholder_text,omitempty"`
}

// TriggerResult is the backend's acknowledgement of a manual sync trigger.
// The sync itself runs as a backend background task.
type TriggerResult struct {
	Message   string `json:"message"`
	SyncLogID string `json:"sync_log_id"`
}

// Client talks to the CalSync backend. Credentials come from the injected
// token source; the client never reads ambient global state.
type Client struct {
	baseURL    string
	httpClient *http.Client
	tokens     oauth2.TokenSource
}

// NewClient creates a backend client for the given base URL.
func NewClient(baseURL string, tokens oauth2.TokenSource) *Client {
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: 30 * time.Second},
		tokens:     tokens,
	}
}

// ListConfigs fetches all sync configurations for the authenticated user.
func (c *Client) ListConfigs(ctx context.Context) ([]models.SyncConfig, error) {
	var configs []models.SyncConfig
	if err := c.do(ctx, http.MethodGet, "/sync/config", nil, &configs); err != nil {
		return nil, err
	}
	return configs, nil
}

// CreateConfig creates a sync configuration and returns the persisted record.
func (c *Client) CreateConfig(ctx context.Context, req CreateConfigRequest) (*models.SyncConfig, error) {
	var config models.SyncConfig
	if err := c.do(ctx, http.MethodPost, "/sync/config", req, &config); err != nil {
		return nil, err
	}
	return &config, nil
}

// DeleteConfig deletes a single sync configuration. It refuses an empty id
// locally: the backend treats DELETE with a blank path segment as a routing
// error distinct from not-found, which callers cannot handle sensibly.
func (c *Client) DeleteConfig(ctx context.Context, id string) error {
	if strings.TrimSpace(id) == "" {
		return fmt.Errorf("config id is required")
	}
	return c.do(ctx, http.MethodDelete, "/sync/config/"+url.PathEscape(id), nil, nil)
}

// TriggerSync starts a manual sync run for the config. With bothDirections
// set the backend runs the reverse leg of a bidirectional pair as well.
func (c *Client) TriggerSync(ctx context.Context, id string, bothDirections bool) (*TriggerResult, error) {
	if strings.TrimSpace(id) == "" {
		return nil, fmt.Errorf("config id is required")
	}

	path := "/sync/trigger/" + url.PathEscape(id)
	if bothDirections {
		path += "?both_directions=true"
	}

	var result TriggerResult
	if err := c.do(ctx, http.MethodPost, path, nil, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// GetSyncLogs fetches the config's sync history, most recent first.
func (c *Client) GetSyncLogs(ctx context.Context, id string) ([]models.SyncLog, error) {
	if strings.TrimSpace(id) == "" {
		return nil, fmt.Errorf("config id is required")
	}

	var logs []models.SyncLog
	if err := c.do(ctx, http.MethodGet, "/sync/logs/"+url.PathEscape(id), nil, &logs); err != nil {
		return nil, err
	}
	return logs, nil
}

// ListCalendars fetches the calendar list for one of the two linked accounts.
func (c *Client) ListCalendars(ctx context.Context, slot models.AccountSlot) ([]models.CalendarSummary, error) {
	if !slot.IsValid() {
		return nil, fmt.Errorf("unknown account slot %q", slot)
	}

	var resp struct {
		Calendars []models.CalendarSummary `json:"calendars"`
	}
	if err := c.do(ctx, http.MethodGet, "/calendars/"+string(slot)+"/list", nil, &resp); err != nil {
		return nil, err
	}
	return resp.Calendars, nil
}

func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	var reqBody *bytes.Buffer
	if body != nil {
		reqBody = new(bytes.Buffer)
		if err := json.NewEncoder(reqBody).Encode(body); err != nil {
			return fmt.Errorf("failed to encode request body: %w", err)
		}
	}

	var req *http.Request
	var err error
	if reqBody != nil {
		req, err = http.NewRequestWithContext(ctx, method, c.baseURL+path, reqBody)
	} else {
		req, err = http.NewRequestWithContext(ctx, method, c.baseURL+path, nil)
	}
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}

	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Request-ID", uuid.NewString())
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	if c.tokens != nil {
		token, err := c.tokens.Token()
		if err != nil {
			return fmt.Errorf("failed to load credentials: %w", err)
		}
		token.SetAuthHeader(req)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("request to %s failed: %w", path, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode >= 400 {
		apiErr := &Error{StatusCode: resp.StatusCode}
		var detail struct {
			Detail string `json:"detail"`
		}
		if err := json.NewDecoder(resp.Body).Decode(&detail); err == nil {
			apiErr.Detail = detail.Detail
		}
		return apiErr
	}

	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return fmt.Errorf("failed to decode response: %w", err)
		}
	}
	return nil
}
