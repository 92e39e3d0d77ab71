package beacon

import (
	"encoding/binary"
	"time"

	"github.com/lcalzada-xor/ghostfield/internal/core/domain"
)

// Timestamp is the 8-byte little-endian beacon timestamp field: microseconds
// since the AP's radio came up.
type Timestamp [8]byte

// StaticTimestamp is the template constant used when live timestamps are
// disabled. The reference hardware bakes a never-refreshed value into its
// frame template; the exact bytes carry no meaning over the air.
var StaticTimestamp = Timestamp{}

// EncodeTimestamp encodes a microsecond count as the on-air timestamp field.
// Overflow past 64 bits is not reachable at these timescales.
func EncodeTimestamp(micros uint64) Timestamp {
	var ts Timestamp
	binary.LittleEndian.PutUint64(ts[:], micros)
	return ts
}

// UptimeTimestamp encodes the uptime an access point should report: the
// device's elapsed running time shifted by the AP's epoch offset, so each
// roster entry advertises a distinct boot time that still advances
// monotonically burst over burst.
func UptimeTimestamp(ap domain.AccessPoint, elapsed time.Duration) Timestamp {
	shifted := elapsed + ap.EpochOffset
	if shifted < 0 {
		shifted = 0
	}
	return EncodeTimestamp(uint64(shifted.Microseconds()))
}
