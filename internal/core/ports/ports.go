package ports

import (
	"context"
	"time"

	"github.com/lcalzada-xor/ghostfield/internal/core/domain"
)

// Radio is the hardware boundary: push raw management frames out and move the
// radio between channels. Both calls are best-effort from the scheduler's
// point of view; errors are surfaced for adapters that want to count them but
// are never retried.
type Radio interface {
	// Transmit sends exactly len(frame) bytes as a raw 802.11 management
	// frame on the currently configured channel.
	Transmit(frame []byte) error
	// SetChannel switches the radio for subsequent transmissions. Frames
	// already handed to the driver are unaffected.
	SetChannel(channel int) error
	// Close releases the underlying handle or socket.
	Close()
}

// Display receives burst-completion notifications. Implementations must not
// block the transmission loop.
type Display interface {
	BurstComplete(summary domain.BurstSummary)
}

// Clock abstracts the free-running monotonic clock so the scheduler can be
// polled with synthetic time in tests.
type Clock interface {
	Now() time.Time
}

// BurstSink journals completed bursts. Separate from Display so persistence
// can be toggled without touching the notification fan-out.
type BurstSink interface {
	RecordBurst(ctx context.Context, runID string, summary domain.BurstSummary) error
	RecentBursts(ctx context.Context, limit int) ([]domain.BurstRecord, error)
}
