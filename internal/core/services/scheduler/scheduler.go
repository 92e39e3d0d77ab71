// Package scheduler drives the transmission loop: it paces beacon bursts
// against real elapsed time and rotates the radio channel, without ever
// blocking when no work is due.
package scheduler

import (
	"context"
	"fmt"
	"log"
	"strconv"
	"sync"
	"sync/atomic"
	"time"

	"github.com/lcalzada-xor/ghostfield/internal/core/domain"
	"github.com/lcalzada-xor/ghostfield/internal/core/ports"
	"github.com/lcalzada-xor/ghostfield/internal/core/services/beacon"
	"github.com/lcalzada-xor/ghostfield/internal/telemetry"
)

// Cadence constants. These are configuration, not derived values.
const (
	// DefaultBeaconInterval matches the 100 time-unit interval advertised
	// in the frame itself (0x64 TU = 102 400 us).
	DefaultBeaconInterval = 102400 * time.Microsecond

	// DefaultChannelHoldBursts is how many bursts are sent on a channel
	// before rotating to the next plan entry.
	DefaultChannelHoldBursts = 11

	// DefaultFramePacing is the delay between consecutive transmissions
	// within a burst. It respects the driver's inter-frame spacing; it is
	// not a retry or a backoff.
	DefaultFramePacing = time.Millisecond

	// DefaultPollEvery is the cadence of the Run loop's polls. Polls that
	// find no work due return immediately.
	DefaultPollEvery = 5 * time.Millisecond
)

// Options tune the loop. Zero values select the defaults above.
type Options struct {
	BeaconInterval    time.Duration
	ChannelHoldBursts int
	FramePacing       time.Duration

	// LiveTimestamps switches the timestamp field from the template's
	// static constant to a per-burst encoding of each AP's shifted uptime.
	// Off by default: the reference hardware never refreshes the field.
	LiveTimestamps bool

	// Sleep is the pacing delay implementation. Tests inject a recorder;
	// nil means time.Sleep.
	Sleep func(time.Duration)
}

// Scheduler owns the mutable transmission state. State is mutated only by
// Poll; Status takes read-only snapshots for the API surface.
type Scheduler struct {
	roster  domain.Roster
	plan    domain.ChannelPlan
	radio   ports.Radio
	display ports.Display
	clock   ports.Clock
	opts    Options

	paused atomic.Bool

	mu                 sync.Mutex
	started            time.Time
	lastBurst          time.Time
	channelIndex       int
	ticksSinceRotation int
	burstsSent         int
	framesSent         int
}

// New validates the collaborators and seeds the state. The first burst fires
// one beacon interval after construction, never immediately.
func New(roster domain.Roster, plan domain.ChannelPlan, radio ports.Radio, display ports.Display, clock ports.Clock, opts Options) (*Scheduler, error) {
	if radio == nil {
		return nil, fmt.Errorf("scheduler: radio is required")
	}
	if clock == nil {
		return nil, fmt.Errorf("scheduler: clock is required")
	}
	if plan.Len() == 0 {
		return nil, fmt.Errorf("scheduler: channel plan is empty")
	}
	if opts.BeaconInterval <= 0 {
		opts.BeaconInterval = DefaultBeaconInterval
	}
	if opts.ChannelHoldBursts <= 0 {
		opts.ChannelHoldBursts = DefaultChannelHoldBursts
	}
	if opts.FramePacing <= 0 {
		opts.FramePacing = DefaultFramePacing
	}
	if opts.Sleep == nil {
		opts.Sleep = time.Sleep
	}

	now := clock.Now()
	return &Scheduler{
		roster:    roster,
		plan:      plan,
		radio:     radio,
		display:   display,
		clock:     clock,
		opts:      opts,
		started:   now,
		lastBurst: now,
	}, nil
}

// Poll evaluates the transition rule once against the current clock reading.
// It returns true when a burst was transmitted. When no burst is due it
// changes nothing and returns without side effects.
func (s *Scheduler) Poll() bool {
	if s.paused.Load() {
		return false
	}

	now := s.clock.Now()

	s.mu.Lock()
	if now.Sub(s.lastBurst) < s.opts.BeaconInterval {
		s.mu.Unlock()
		return false
	}

	// Rotation runs before the burst so the frames of the rotation burst
	// already go out on the new channel.
	s.ticksSinceRotation++
	if s.ticksSinceRotation >= s.opts.ChannelHoldBursts {
		s.channelIndex = (s.channelIndex + 1) % s.plan.Len()
		s.ticksSinceRotation = 0
		ch := s.plan.At(s.channelIndex)
		// Best effort, like every radio call in this loop.
		if err := s.radio.SetChannel(ch); err != nil {
			log.Printf("scheduler: set channel %d: %v", ch, err)
		}
		telemetry.ChannelSwitches.Inc()
	}

	channel := s.plan.At(s.channelIndex)
	elapsed := now.Sub(s.started)

	frames := 0
	for i := 0; i < s.roster.Len(); i++ {
		if i > 0 {
			s.opts.Sleep(s.opts.FramePacing)
		}
		ap := s.roster.At(i)
		ts := beacon.StaticTimestamp
		if s.opts.LiveTimestamps {
			ts = beacon.UptimeTimestamp(ap, elapsed)
		}
		frame := beacon.Build(ap, channel, ts)
		if err := s.radio.Transmit(frame); err != nil {
			telemetry.TransmitErrors.Inc()
		} else {
			telemetry.FramesTransmitted.WithLabelValues(strconv.Itoa(channel)).Inc()
		}
		frames++
	}

	// An empty roster still refreshes the burst window; the cadence must
	// not degenerate into a busy loop.
	s.lastBurst = now
	s.burstsSent++
	s.framesSent += frames

	summary := domain.BurstSummary{
		Sequence: s.burstsSent,
		Channel:  channel,
		Frames:   frames,
		At:       now,
	}
	s.mu.Unlock()

	telemetry.BurstsCompleted.Inc()
	if s.display != nil {
		s.display.BurstComplete(summary)
	}
	return true
}

// Run sets the radio to the plan's first channel and polls until the context
// is cancelled. The poll cadence only bounds how late a burst can start; the
// burst interval itself is measured inside Poll.
func (s *Scheduler) Run(ctx context.Context, pollEvery time.Duration) error {
	if pollEvery <= 0 {
		pollEvery = DefaultPollEvery
	}
	if err := s.radio.SetChannel(s.plan.At(0)); err != nil {
		log.Printf("scheduler: initial channel %d: %v", s.plan.At(0), err)
	}

	ticker := time.NewTicker(pollEvery)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			s.Poll()
		}
	}
}

// Pause suspends bursting. The poll loop keeps running; polls return
// immediately until Resume.
func (s *Scheduler) Pause() { s.paused.Store(true) }

// Resume re-enables bursting. The burst window is not reset: a burst may fire
// on the next poll if the interval already elapsed while paused.
func (s *Scheduler) Resume() { s.paused.Store(false) }

// Paused reports whether bursting is suspended.
func (s *Scheduler) Paused() bool { return s.paused.Load() }

// Status returns a snapshot for the API surface.
func (s *Scheduler) Status() domain.SchedulerStatus {
	s.mu.Lock()
	defer s.mu.Unlock()
	return domain.SchedulerStatus{
		Paused:             s.paused.Load(),
		BeaconInterval:     s.opts.BeaconInterval,
		Channel:            s.plan.At(s.channelIndex),
		ChannelIndex:       s.channelIndex,
		BurstsSent:         s.burstsSent,
		FramesSent:         s.framesSent,
		TicksSinceRotation: s.ticksSinceRotation,
		LastBurstAt:        s.lastBurst,
		RosterSize:         s.roster.Len(),
		LiveTimestamps:     s.opts.LiveTimestamps,
	}
}
