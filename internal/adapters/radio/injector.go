// Package radio adapts the raw injection hardware to the ports.Radio
// capability: transmit bytes now, switch channel for what follows.
package radio

// PacketInjector is the mechanism that pushes a link-layer packet out of a
// monitor-mode interface.
type PacketInjector interface {
	Inject(packet []byte) error
	Close()
}
