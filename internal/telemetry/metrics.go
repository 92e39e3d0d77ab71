package telemetry

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	// FramesTransmitted counts beacon frames handed to the radio, by channel.
	FramesTransmitted = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "ghostfield",
			Name:      "frames_transmitted_total",
			Help:      "Total number of beacon frames handed to the radio",
		},
		[]string{"channel"},
	)

	// BurstsCompleted counts completed bursts (one frame per roster entry).
	BurstsCompleted = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "ghostfield",
			Name:      "bursts_total",
			Help:      "Total number of completed beacon bursts",
		},
	)

	// ChannelSwitches counts radio channel rotations.
	ChannelSwitches = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "ghostfield",
			Name:      "channel_switches_total",
			Help:      "Total number of radio channel rotations",
		},
	)

	// TransmitErrors counts radio transmit failures. Failures are counted
	// but never retried; the hardware contract is best effort.
	TransmitErrors = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "ghostfield",
			Name:      "transmit_errors_total",
			Help:      "Total number of failed frame transmissions",
		},
	)

	once sync.Once
)

// InitMetrics registers all metrics with the global Prometheus registry.
// Idempotent; safe to call from multiple entry points.
func InitMetrics() {
	once.Do(func() {
		prometheus.DefaultRegisterer.Register(FramesTransmitted)
		prometheus.DefaultRegisterer.Register(BurstsCompleted)
		prometheus.DefaultRegisterer.Register(ChannelSwitches)
		prometheus.DefaultRegisterer.Register(TransmitErrors)
	})
}
