package beacon

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lcalzada-xor/ghostfield/internal/core/domain"
)

func TestEncodeTimestampLittleEndian(t *testing.T) {
	ts := EncodeTimestamp(0x0102030405060708)
	assert.Equal(t, Timestamp{0x08, 0x07, 0x06, 0x05, 0x04, 0x03, 0x02, 0x01}, ts)

	assert.Equal(t, Timestamp{}, EncodeTimestamp(0))
	assert.Equal(t, Timestamp{0x01}, EncodeTimestamp(1))
}

func TestUptimeTimestampAppliesEpochOffset(t *testing.T) {
	ap, err := domain.NewAccessPoint([]byte{2, 0, 0, 0, 0, 1}, "x", 2*time.Second)
	require.NoError(t, err)

	got := UptimeTimestamp(ap, 3*time.Second)
	assert.Equal(t, EncodeTimestamp(5_000_000), got)
}

func TestUptimeTimestampMonotonicPerAP(t *testing.T) {
	ap, err := domain.NewAccessPoint([]byte{2, 0, 0, 0, 0, 1}, "x", -time.Second)
	require.NoError(t, err)

	// A negative offset larger than the elapsed time clamps to zero rather
	// than wrapping the unsigned field.
	assert.Equal(t, EncodeTimestamp(0), UptimeTimestamp(ap, 500*time.Millisecond))

	prev := UptimeTimestamp(ap, 2*time.Second)
	next := UptimeTimestamp(ap, 3*time.Second)
	assert.NotEqual(t, prev, next)
	assert.Equal(t, EncodeTimestamp(1_000_000), prev)
	assert.Equal(t, EncodeTimestamp(2_000_000), next)
}
