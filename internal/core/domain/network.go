package domain

import (
	"fmt"
	"net"
	"time"
)

// MaxSSIDLen is the longest SSID the beacon frame format can carry.
// The SSID information element has a single length byte and the frame
// template reserves no room beyond 32 bytes.
const MaxSSIDLen = 32

// Channel bounds for the 2.4 GHz deployment.
const (
	MinChannel = 1
	MaxChannel = 13
)

// AccessPoint is one synthetic network identity. Instances are validated at
// construction and treated as immutable afterwards.
type AccessPoint struct {
	// BSSID is advertised as both source address and BSSID (the frame
	// impersonates the AP, so the two coincide).
	BSSID net.HardwareAddr

	// SSID is the advertised name, 0-32 bytes. Empty means hidden network.
	SSID []byte

	// SSIDLen caches len(SSID). Redundant, but it is part of the identity
	// record (the roster files carry it) and must agree with SSID.
	SSIDLen uint8

	// EpochOffset shifts this AP's reported uptime so the roster does not
	// announce identical boot times. Only used when live timestamps are on.
	EpochOffset time.Duration
}

// NewAccessPoint builds a validated AccessPoint.
func NewAccessPoint(bssid net.HardwareAddr, ssid string, epochOffset time.Duration) (AccessPoint, error) {
	ap := AccessPoint{
		BSSID:       bssid,
		SSID:        []byte(ssid),
		SSIDLen:     uint8(min(len(ssid), 255)),
		EpochOffset: epochOffset,
	}
	if err := ap.Validate(); err != nil {
		return AccessPoint{}, err
	}
	return ap, nil
}

// MustAccessPoint is for compiled-in roster tables where the inputs are known
// good. It panics on invalid data so a bad table fails at startup, not on air.
func MustAccessPoint(bssid, ssid string, epochOffset time.Duration) AccessPoint {
	hw, err := net.ParseMAC(bssid)
	if err != nil {
		panic(fmt.Sprintf("roster: bad BSSID %q: %v", bssid, err))
	}
	ap, err := NewAccessPoint(hw, ssid, epochOffset)
	if err != nil {
		panic(fmt.Sprintf("roster: %v", err))
	}
	return ap
}

// Validate enforces the construction invariants: 6-byte BSSID, SSID within
// the frame format's limit, cached length in agreement.
func (ap AccessPoint) Validate() error {
	if len(ap.BSSID) != 6 {
		return fmt.Errorf("access point %q: BSSID must be 6 bytes, got %d", ap.Name(), len(ap.BSSID))
	}
	if len(ap.SSID) > MaxSSIDLen {
		return fmt.Errorf("access point %s: SSID is %d bytes, max %d", ap.BSSID, len(ap.SSID), MaxSSIDLen)
	}
	if int(ap.SSIDLen) != len(ap.SSID) {
		return fmt.Errorf("access point %s: cached SSID length %d disagrees with %d actual bytes",
			ap.BSSID, ap.SSIDLen, len(ap.SSID))
	}
	return nil
}

// Hidden reports whether this AP beacons with a zero-length SSID.
func (ap AccessPoint) Hidden() bool {
	return len(ap.SSID) == 0
}

// Name returns the SSID as a string, or a placeholder for hidden networks.
func (ap AccessPoint) Name() string {
	if ap.Hidden() {
		return "<hidden>"
	}
	return string(ap.SSID)
}

// Roster is the immutable table of access points a device advertises.
type Roster struct {
	aps []AccessPoint
}

// NewRoster validates every entry and returns the roster. An empty roster is
// legal: bursts then transmit nothing but the scheduler keeps its cadence.
func NewRoster(aps []AccessPoint) (Roster, error) {
	for i, ap := range aps {
		if err := ap.Validate(); err != nil {
			return Roster{}, fmt.Errorf("roster entry %d: %w", i, err)
		}
	}
	cp := make([]AccessPoint, len(aps))
	copy(cp, aps)
	return Roster{aps: cp}, nil
}

// Len returns the number of access points.
func (r Roster) Len() int { return len(r.aps) }

// At returns the access point at index i in table order.
func (r Roster) At(i int) AccessPoint { return r.aps[i] }

// All returns a copy of the table in order.
func (r Roster) All() []AccessPoint {
	cp := make([]AccessPoint, len(r.aps))
	copy(cp, r.aps)
	return cp
}

// ChannelPlan is the ordered, non-empty channel sequence the radio rotates
// through. Rotation is circular.
type ChannelPlan struct {
	channels []int
}

// NewChannelPlan validates the sequence. Emptiness is rejected here so the
// scheduler's modulo arithmetic is always defined.
func NewChannelPlan(channels []int) (ChannelPlan, error) {
	if len(channels) == 0 {
		return ChannelPlan{}, fmt.Errorf("channel plan must not be empty")
	}
	for i, ch := range channels {
		if ch < MinChannel || ch > MaxChannel {
			return ChannelPlan{}, fmt.Errorf("channel plan entry %d: channel %d outside %d-%d", i, ch, MinChannel, MaxChannel)
		}
	}
	cp := make([]int, len(channels))
	copy(cp, channels)
	return ChannelPlan{channels: cp}, nil
}

// Len returns the number of entries in the plan.
func (p ChannelPlan) Len() int { return len(p.channels) }

// At returns the channel at index i.
func (p ChannelPlan) At(i int) int { return p.channels[i] }

// All returns a copy of the plan in order.
func (p ChannelPlan) All() []int {
	cp := make([]int, len(p.channels))
	copy(cp, p.channels)
	return cp
}
