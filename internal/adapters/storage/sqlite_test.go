package storage

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lcalzada-xor/ghostfield/internal/core/domain"
)

func newTestAdapter(t *testing.T) *SQLiteAdapter {
	t.Helper()
	s, err := NewSQLiteAdapter(filepath.Join(t.TempDir(), "journal.db"))
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func TestRecordAndFetchBursts(t *testing.T) {
	s := newTestAdapter(t)
	ctx := context.Background()

	require.NoError(t, s.StartRun(ctx, "run-1", "wlan0", 6))

	base := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	for i := 1; i <= 3; i++ {
		err := s.RecordBurst(ctx, "run-1", domain.BurstSummary{
			Sequence: i,
			Channel:  6,
			Frames:   6,
			At:       base.Add(time.Duration(i) * 103 * time.Millisecond),
		})
		require.NoError(t, err)
	}

	records, err := s.RecentBursts(ctx, 2)
	require.NoError(t, err)
	require.Len(t, records, 2)

	// Newest first.
	assert.Equal(t, 3, records[0].Sequence)
	assert.Equal(t, 2, records[1].Sequence)
	assert.Equal(t, "run-1", records[0].RunID)
	assert.Equal(t, 6, records[0].Frames)
}

func TestRecentBurstsDefaultLimit(t *testing.T) {
	s := newTestAdapter(t)
	records, err := s.RecentBursts(context.Background(), 0)
	require.NoError(t, err)
	assert.Empty(t, records)
}
