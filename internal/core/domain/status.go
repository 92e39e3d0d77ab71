package domain

import "time"

// BurstSummary describes one completed transmission round: a beacon frame for
// every roster entry on a single channel.
type BurstSummary struct {
	Sequence int       `json:"sequence"`
	Channel  int       `json:"channel"`
	Frames   int       `json:"frames"`
	At       time.Time `json:"at"`
}

// SchedulerStatus is a point-in-time snapshot of the transmission loop,
// exposed over the status API. It is a copy; the live state is owned by the
// scheduler alone.
type SchedulerStatus struct {
	Paused             bool          `json:"paused"`
	BeaconInterval     time.Duration `json:"beacon_interval"`
	Channel            int           `json:"channel"`
	ChannelIndex       int           `json:"channel_index"`
	BurstsSent         int           `json:"bursts_sent"`
	FramesSent         int           `json:"frames_sent"`
	TicksSinceRotation int           `json:"ticks_since_rotation"`
	LastBurstAt        time.Time     `json:"last_burst_at"`
	RosterSize         int           `json:"roster_size"`
	LiveTimestamps     bool          `json:"live_timestamps"`
}

// BurstRecord is a journaled burst, as persisted and returned by the API.
type BurstRecord struct {
	ID       uint      `json:"id"`
	RunID    string    `json:"run_id"`
	Sequence int       `json:"sequence"`
	Channel  int       `json:"channel"`
	Frames   int       `json:"frames"`
	At       time.Time `json:"at"`
}
