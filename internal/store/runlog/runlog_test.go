package runlog

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecordAndRecent(t *testing.T) {
	store, err := NewStore(filepath.Join(t.TempDir(), "runs.db"))
	require.NoError(t, err)
	defer store.Close()

	ctx := context.Background()
	base := time.Date(2024, 8, 1, 12, 0, 0, 0, time.UTC)
	require.NoError(t, store.Record(ctx, Run{
		StartedAt:    base,
		FinishedAt:   base.Add(3 * time.Second),
		Action:       ActionBackfill,
		Status:       StatusOK,
		RowsAdded:    198,
		LatestDate:   "2024-07-01",
		SeriesCounts: map[string]int{"CPI": 198},
	}))
	require.NoError(t, store.Record(ctx, Run{
		StartedAt:  base.Add(time.Hour),
		FinishedAt: base.Add(time.Hour + time.Second),
		Action:     ActionNoop,
		Status:     StatusOK,
		Message:    "already current",
	}))

	runs, err := store.Recent(ctx, 10)
	require.NoError(t, err)
	require.Len(t, runs, 2)

	assert.Equal(t, ActionNoop, runs[0].Action, "most recent first")
	assert.Equal(t, ActionBackfill, runs[1].Action)
	assert.NotEmpty(t, runs[1].ID)
	assert.Equal(t, 198, runs[1].RowsAdded)
	assert.Equal(t, map[string]int{"CPI": 198}, runs[1].SeriesCounts)
}

func TestNewStoreEmptyPath(t *testing.T) {
	_, err := NewStore("  ")
	assert.Error(t, err)
}
