package display

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lcalzada-xor/ghostfield/internal/core/domain"
)

type recordingDisplay struct {
	got []domain.BurstSummary
}

func (d *recordingDisplay) BurstComplete(s domain.BurstSummary) {
	d.got = append(d.got, s)
}

type recordingSink struct {
	mu      sync.Mutex
	records []domain.BurstRecord
	done    chan struct{}
}

func (s *recordingSink) RecordBurst(ctx context.Context, runID string, b domain.BurstSummary) error {
	s.mu.Lock()
	s.records = append(s.records, domain.BurstRecord{
		RunID:    runID,
		Sequence: b.Sequence,
		Channel:  b.Channel,
		Frames:   b.Frames,
		At:       b.At,
	})
	s.mu.Unlock()
	s.done <- struct{}{}
	return nil
}

func (s *recordingSink) RecentBursts(ctx context.Context, limit int) ([]domain.BurstRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.records, nil
}

func TestFanOutDeliversInOrder(t *testing.T) {
	a := &recordingDisplay{}
	b := &recordingDisplay{}
	f := NewFanOut(a, b)

	f.BurstComplete(domain.BurstSummary{Sequence: 1})
	f.BurstComplete(domain.BurstSummary{Sequence: 2})

	require.Len(t, a.got, 2)
	require.Len(t, b.got, 2)
	assert.Equal(t, 1, a.got[0].Sequence)
	assert.Equal(t, 2, b.got[1].Sequence)
}

func TestJournalDisplayRecordsOffLoop(t *testing.T) {
	sink := &recordingSink{done: make(chan struct{}, 1)}
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	d := NewJournalDisplay(ctx, "run-1", sink)
	d.BurstComplete(domain.BurstSummary{Sequence: 7, Channel: 6, Frames: 6})

	select {
	case <-sink.done:
	case <-time.After(time.Second):
		t.Fatal("burst was not journaled")
	}

	records, err := sink.RecentBursts(context.Background(), 10)
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, "run-1", records[0].RunID)
	assert.Equal(t, 7, records[0].Sequence)
}
