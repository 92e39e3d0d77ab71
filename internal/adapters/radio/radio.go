package radio

import (
	"fmt"
	"log"
	"sync"

	"github.com/google/gopacket"
	"github.com/google/gopacket/layers"
)

// Transmitter implements ports.Radio over a monitor-mode interface: frames go
// out through the injection mechanism with a minimal radiotap header
// prepended, channel changes go through `iw`.
type Transmitter struct {
	Interface string
	mechanism PacketInjector
	mu        sync.Mutex
}

// NewTransmitter opens the injection mechanism for iface, preferring the raw
// socket and falling back to pcap.
func NewTransmitter(iface string) (*Transmitter, error) {
	mech, err := NewRawInjector(iface)
	if err != nil {
		log.Printf("Raw injection unavailable (%v), falling back to PCAP", err)
		mech, err = NewPcapInjector(iface)
		if err != nil {
			return nil, fmt.Errorf("injection init failed: %w", err)
		}
	} else {
		log.Printf("Using Raw Socket Injection on %s", iface)
	}

	return &Transmitter{
		Interface: iface,
		mechanism: mech,
	}, nil
}

// Transmit sends one 802.11 management frame. The radiotap header exists only
// for the driver; the frame bytes themselves go out unmodified.
func (t *Transmitter) Transmit(frame []byte) error {
	pkt, err := wrapRadiotap(frame)
	if err != nil {
		return err
	}

	t.mu.Lock()
	defer t.mu.Unlock()
	if err := t.mechanism.Inject(pkt); err != nil {
		return fmt.Errorf("inject failed: %w", err)
	}
	return nil
}

// SetChannel moves the radio. Frames already handed to the driver are not
// affected.
func (t *Transmitter) SetChannel(channel int) error {
	return SetInterfaceChannel(t.Interface, channel)
}

// Close releases the injection mechanism.
func (t *Transmitter) Close() {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.mechanism != nil {
		t.mechanism.Close()
		t.mechanism = nil
	}
}

// SetMechanismForTest overrides the injection mechanism.
func (t *Transmitter) SetMechanismForTest(mech PacketInjector) {
	t.mechanism = mech
}

// wrapRadiotap prepends a minimal radiotap header. Drivers typically
// overwrite the rate.
func wrapRadiotap(frame []byte) ([]byte, error) {
	radiotap := &layers.RadioTap{
		Present: layers.RadioTapPresentRate,
		Rate:    5,
	}

	buf := gopacket.NewSerializeBuffer()
	opts := gopacket.SerializeOptions{
		FixLengths: true,
	}
	if err := gopacket.SerializeLayers(buf, opts, radiotap, gopacket.Payload(frame)); err != nil {
		return nil, fmt.Errorf("radiotap serialize failed: %w", err)
	}
	return buf.Bytes(), nil
}
