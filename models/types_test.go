// ABOUTME: Tests for model helpers
// ABOUTME: Covers direction taxonomy, pair keys, and status helpers
package models

import "testing"

func TestSyncDirectionIsValid(t *testing.T) {
	valid := []SyncDirection{DirectionOneWay, DirectionAToB, DirectionBToA}
	for _, d := range valid {
		if !d.IsValid() {
			t.Errorf("expected %q to be valid", d)
		}
	}

	invalid := []SyncDirection{"", "two_way", "bidirectional"}
	for _, d := range invalid {
		if d.IsValid() {
			t.Errorf("expected %q to be invalid", d)
		}
	}
}

func TestSyncDirectionIsBidirectional(t *testing.T) {
	if DirectionOneWay.IsBidirectional() {
		t.Error("one_way should not be bidirectional")
	}
	if !DirectionAToB.IsBidirectional() || !DirectionBToA.IsBidirectional() {
		t.Error("both pair legs should be bidirectional")
	}
}

func TestPairKey(t *testing.T) {
	tests := []struct {
		name     string
		config   SyncConfig
		expected string
	}{
		{
			name:     "paired config uses recorded link",
			config:   SyncConfig{ID: "r1", PairedConfigID: "f1"},
			expected: "f1",
		},
		{
			name:     "orphan falls back to own id",
			config:   SyncConfig{ID: "f1"},
			expected: "f1",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.config.PairKey(); got != tt.expected {
				t.Errorf("PairKey() = %q, want %q", got, tt.expected)
			}
		})
	}
}

func TestAccountSlotIsValid(t *testing.T) {
	if !AccountSource.IsValid() || !AccountDestination.IsValid() {
		t.Error("source and destination slots should be valid")
	}
	if AccountSlot("both").IsValid() {
		t.Error("unknown slot should be invalid")
	}
}

func TestSyncStatusDone(t *testing.T) {
	if SyncStatusRunning.Done() {
		t.Error("running should not be done")
	}
	for _, s := range []SyncStatus{SyncStatusSuccess, SyncStatusFailed, SyncStatusPartial} {
		if !s.Done() {
			t.Errorf("%q should be done", s)
		}
	}
}

func TestCalendarDisplayName(t *testing.T) {
	cal := CalendarSummary{ID: "abc@group.calendar.google.com", Summary: "Family"}
	if cal.DisplayName() != "Family" {
		t.Errorf("expected summary, got %q", cal.DisplayName())
	}

	cal.Summary = ""
	if cal.DisplayName() != "abc@group.calendar.google.com" {
		t.Errorf("expected id fallback, got %q", cal.DisplayName())
	}
}
