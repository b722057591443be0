// ABOUTME: Tests for the sync log cache
// ABOUTME: Verifies replace-on-fetch semantics and ordering
package db

import (
	"database/sql"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/livelyapps/calsync/models"
)

func setupTestDB(t *testing.T) *sql.DB {
	t.Helper()
	database, err := sql.Open("sqlite3", ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = database.Close() })

	require.NoError(t, InitSchema(database))
	return database
}

func TestReplaceAndReadLogs(t *testing.T) {
	database := setupTestDB(t)

	now := time.Now().UTC().Truncate(time.Second)
	older := now.Add(-time.Hour)
	completed := now.Add(time.Minute)

	logs := []models.SyncLog{
		{
			ID:            "log-2",
			Status:        models.SyncStatusSuccess,
			SyncDirection: models.DirectionAToB,
			EventsCreated: 3,
			EventsUpdated: 1,
			StartedAt:     now,
			CompletedAt:   &completed,
		},
		{
			ID:           "log-1",
			Status:       models.SyncStatusFailed,
			ErrorMessage: "rate limited",
			StartedAt:    older,
		},
	}

	require.NoError(t, ReplaceSyncLogs(database, "c1", logs))

	cached, err := GetSyncLogs(database, "c1", 50)
	require.NoError(t, err)
	require.Len(t, cached, 2)

	// Most recent first regardless of insert order.
	assert.Equal(t, "log-2", cached[0].ID)
	assert.Equal(t, "log-1", cached[1].ID)

	assert.Equal(t, models.SyncStatusSuccess, cached[0].Status)
	assert.Equal(t, 3, cached[0].EventsCreated)
	require.NotNil(t, cached[0].CompletedAt)
	assert.Equal(t, "rate limited", cached[1].ErrorMessage)
	assert.Nil(t, cached[1].CompletedAt)
}

func TestReplaceDropsStaleRows(t *testing.T) {
	database := setupTestDB(t)

	first := []models.SyncLog{{ID: "old", Status: models.SyncStatusSuccess, StartedAt: time.Now()}}
	require.NoError(t, ReplaceSyncLogs(database, "c1", first))

	second := []models.SyncLog{{ID: "new", Status: models.SyncStatusSuccess, StartedAt: time.Now()}}
	require.NoError(t, ReplaceSyncLogs(database, "c1", second))

	cached, err := GetSyncLogs(database, "c1", 50)
	require.NoError(t, err)
	require.Len(t, cached, 1)
	assert.Equal(t, "new", cached[0].ID)
}

func TestReplaceLeavesOtherConfigsAlone(t *testing.T) {
	database := setupTestDB(t)

	require.NoError(t, ReplaceSyncLogs(database, "c1", []models.SyncLog{
		{ID: "c1-log", Status: models.SyncStatusSuccess, StartedAt: time.Now()},
	}))
	require.NoError(t, ReplaceSyncLogs(database, "c2", []models.SyncLog{
		{ID: "c2-log", Status: models.SyncStatusSuccess, StartedAt: time.Now()},
	}))

	cached, err := GetSyncLogs(database, "c1", 50)
	require.NoError(t, err)
	require.Len(t, cached, 1)
	assert.Equal(t, "c1-log", cached[0].ID)
}

func TestGetSyncLogsEmpty(t *testing.T) {
	database := setupTestDB(t)

	cached, err := GetSyncLogs(database, "missing", 10)
	require.NoError(t, err)
	assert.Empty(t, cached)
}
