// Package beacon constructs 802.11 beacon frames for synthetic access points.
//
// The layout is bit-exact: every consumer (the radio adapter, the tests, the
// frame-length arithmetic) relies on the fixed offsets below, so the frame is
// assembled byte by byte rather than through a serializer that recomputes
// header fields.
package beacon

import (
	"github.com/lcalzada-xor/ghostfield/internal/core/domain"
)

// Frame layout offsets. Everything before the SSID element is fixed-size;
// everything after it is the fixed 13-byte tail.
const (
	offFrameControl = 0  // 2 bytes: 0x80 0x00, beacon subtype
	offDuration     = 2  // 2 bytes: zero
	offDestination  = 4  // 6 bytes: broadcast
	offSource       = 10 // 6 bytes: AP BSSID
	offBSSID        = 16 // 6 bytes: AP BSSID (same value as source)
	offSeqControl   = 22 // 2 bytes: fixed sequence control
	offTimestamp    = 24 // 8 bytes: little-endian timestamp
	offInterval     = 32 // 2 bytes: 0x64 0x00 = 100 TU
	offCapability   = 34 // 2 bytes: 0x31 0x14
	offSSIDTag      = 36 // 1 byte: element ID 0 (SSID)
	offSSIDLen      = 37 // 1 byte: ssid length
	offSSID         = 38 // ssid bytes follow
)

// FixedFrameLen is the frame length for a hidden (zero-length SSID) beacon.
// Total length is always FixedFrameLen + len(ssid).
const FixedFrameLen = 51

// TailLen is the length of the fixed tail (supported rates + DS parameter).
const TailLen = 13

// tail is the fixed frame tail: supported-rates element followed by the
// DSSS/current-channel element. The last byte is overwritten with the channel.
var tail = [TailLen]byte{
	0x01, 0x08, 0x82, 0x84, 0x8B, 0x96, 0x24, 0x30, 0x48, 0x6C, // rates
	0x03, 0x01, 0x00, // DS parameter set, channel patched in
}

// FrameLen returns the on-air length of a beacon for the given access point.
func FrameLen(ap domain.AccessPoint) int {
	return FixedFrameLen + len(ap.SSID)
}

// Build constructs a beacon frame for one access point on the given channel,
// with the supplied timestamp written verbatim into the timestamp field.
//
// Inputs are trusted: SSID length is validated when the AccessPoint is
// constructed, never here. The returned buffer is freshly allocated and owned
// by the caller.
func Build(ap domain.AccessPoint, channel int, ts Timestamp) []byte {
	n := len(ap.SSID)
	frame := make([]byte, FixedFrameLen+n)

	frame[offFrameControl] = 0x80 // management, beacon subtype
	// duration already zero

	for i := 0; i < 6; i++ {
		frame[offDestination+i] = 0xFF
	}
	copy(frame[offSource:], ap.BSSID)
	copy(frame[offBSSID:], ap.BSSID)

	frame[offSeqControl] = 0xC0
	frame[offSeqControl+1] = 0x6C

	copy(frame[offTimestamp:], ts[:])

	frame[offInterval] = 0x64 // 100 time units, ~102.4 ms
	frame[offCapability] = 0x31
	frame[offCapability+1] = 0x14

	// SSID element: tag 0, length, then the name. A hidden network writes
	// the tag and a zero length with no body.
	frame[offSSIDTag] = 0x00
	frame[offSSIDLen] = byte(n)
	copy(frame[offSSID:], ap.SSID)

	copy(frame[offSSID+n:], tail[:])
	frame[offSSID+n+TailLen-1] = byte(channel)

	return frame
}
