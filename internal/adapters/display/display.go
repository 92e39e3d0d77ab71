// Package display fans burst notifications out to whatever is watching the
// installation: the log, the websocket stream, the burst journal.
package display

import (
	"context"
	"log"
	"time"

	"github.com/lcalzada-xor/ghostfield/internal/core/domain"
	"github.com/lcalzada-xor/ghostfield/internal/core/ports"
)

// LogDisplay prints burst completions to the process log.
type LogDisplay struct{}

func NewLogDisplay() *LogDisplay { return &LogDisplay{} }

func (d *LogDisplay) BurstComplete(s domain.BurstSummary) {
	log.Printf("[BURST] #%d: %d frames on channel %d", s.Sequence, s.Frames, s.Channel)
}

// FanOut multiplexes one notification to several displays, in order.
type FanOut struct {
	displays []ports.Display
}

func NewFanOut(displays ...ports.Display) *FanOut {
	return &FanOut{displays: displays}
}

func (f *FanOut) BurstComplete(s domain.BurstSummary) {
	for _, d := range f.displays {
		d.BurstComplete(s)
	}
}

// JournalDisplay records bursts into a BurstSink off the transmission loop.
// Writes happen on a separate goroutine with a bounded queue; when the queue
// is full the record is dropped rather than stalling a burst.
type JournalDisplay struct {
	runID string
	sink  ports.BurstSink
	queue chan domain.BurstSummary
}

func NewJournalDisplay(ctx context.Context, runID string, sink ports.BurstSink) *JournalDisplay {
	d := &JournalDisplay{
		runID: runID,
		sink:  sink,
		queue: make(chan domain.BurstSummary, 64),
	}
	go d.drain(ctx)
	return d
}

func (d *JournalDisplay) BurstComplete(s domain.BurstSummary) {
	select {
	case d.queue <- s:
	default:
		log.Printf("journal: queue full, dropping burst #%d", s.Sequence)
	}
}

func (d *JournalDisplay) drain(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		case s := <-d.queue:
			writeCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
			if err := d.sink.RecordBurst(writeCtx, d.runID, s); err != nil {
				log.Printf("journal: record burst #%d: %v", s.Sequence, err)
			}
			cancel()
		}
	}
}
