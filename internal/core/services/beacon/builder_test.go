package beacon

import (
	"bytes"
	"net"
	"testing"
	"time"

	"github.com/google/gopacket"
	"github.com/google/gopacket/layers"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lcalzada-xor/ghostfield/internal/core/domain"
)

func mustAP(t *testing.T, bssid, ssid string) domain.AccessPoint {
	t.Helper()
	hw, err := net.ParseMAC(bssid)
	require.NoError(t, err)
	ap, err := domain.NewAccessPoint(hw, ssid, 0)
	require.NoError(t, err)
	return ap
}

func TestBuildFrameLength(t *testing.T) {
	// Length must be 51 + ssid_len for every legal SSID length.
	for n := 0; n <= domain.MaxSSIDLen; n++ {
		ssid := string(bytes.Repeat([]byte{'x'}, n))
		ap := mustAP(t, "02:00:00:00:00:01", ssid)
		frame := Build(ap, 6, StaticTimestamp)
		assert.Equal(t, FixedFrameLen+n, len(frame), "ssid_len=%d", n)
		assert.Equal(t, FrameLen(ap), len(frame))
	}
}

func TestBuildAddresses(t *testing.T) {
	ap := mustAP(t, "de:ad:be:ef:00:42", "somenet")
	frame := Build(ap, 3, StaticTimestamp)

	// Destination is broadcast; source and BSSID both carry the AP address.
	assert.Equal(t, bytes.Repeat([]byte{0xFF}, 6), frame[4:10])
	assert.Equal(t, []byte(ap.BSSID), frame[10:16])
	assert.Equal(t, []byte(ap.BSSID), frame[16:22])
	assert.Equal(t, frame[10:16], frame[16:22])
}

func TestBuildFixedFields(t *testing.T) {
	ap := mustAP(t, "02:00:00:00:00:01", "net")
	frame := Build(ap, 9, StaticTimestamp)

	assert.Equal(t, []byte{0x80, 0x00}, frame[0:2], "frame control")
	assert.Equal(t, []byte{0x00, 0x00}, frame[2:4], "duration")
	assert.Equal(t, []byte{0xC0, 0x6C}, frame[22:24], "sequence control")
	assert.Equal(t, []byte{0x64, 0x00}, frame[32:34], "beacon interval")
	assert.Equal(t, []byte{0x31, 0x14}, frame[34:36], "capability info")
}

func TestBuildSSIDElement(t *testing.T) {
	ap := mustAP(t, "02:00:00:00:00:01", "cafe wifi")
	frame := Build(ap, 1, StaticTimestamp)

	assert.Equal(t, byte(0x00), frame[36], "SSID element tag")
	assert.Equal(t, byte(9), frame[37])
	assert.Equal(t, []byte("cafe wifi"), frame[38:47])
}

func TestBuildTail(t *testing.T) {
	ap := mustAP(t, "02:00:00:00:00:01", "abc")
	frame := Build(ap, 13, StaticTimestamp)

	n := len(ap.SSID)
	wantRates := []byte{0x01, 0x08, 0x82, 0x84, 0x8B, 0x96, 0x24, 0x30, 0x48, 0x6C}
	assert.Equal(t, wantRates, frame[38+n:48+n], "supported rates element")
	assert.Equal(t, []byte{0x03, 0x01}, frame[48+n:50+n], "DS parameter header")
	assert.Equal(t, byte(13), frame[50+n], "channel byte")
}

func TestBuildTimestampWrittenVerbatim(t *testing.T) {
	ap := mustAP(t, "02:00:00:00:00:01", "ts")
	ts := Timestamp{0x01, 0x02, 0x03, 0x04, 0x05, 0x06, 0x07, 0x08}
	frame := Build(ap, 1, ts)
	assert.Equal(t, ts[:], frame[24:32])
}

// Survey scenario: a known roster entry must serialize to the exact shape the
// radio expects.
func TestBuildRijksScenario(t *testing.T) {
	ap := mustAP(t, "10:bd:18:5e:29:86", "RIJKS SA")
	frame := Build(ap, 1, StaticTimestamp)

	require.Len(t, frame, 59)
	assert.Equal(t, byte(8), frame[37])
	assert.Equal(t, []byte("RIJKS SA"), frame[38:46])
	assert.Equal(t, byte(1), frame[58])
}

func TestBuildHiddenNetwork(t *testing.T) {
	ap := mustAP(t, "50:c7:bf:91:0d:5e", "")
	frame := Build(ap, 6, StaticTimestamp)

	require.Len(t, frame, 51)
	assert.Equal(t, byte(0), frame[37])
	// Tail begins immediately after the empty SSID element.
	assert.Equal(t, byte(0x01), frame[38], "rates tag right after SSID element")
	assert.Equal(t, byte(6), frame[50])
}

// Parse the built frame back through gopacket as a cross-check that the raw
// layout is a well-formed management frame.
func TestBuildParsesAsBeacon(t *testing.T) {
	ap := mustAP(t, "10:bd:18:5e:29:86", "RIJKS SA")
	frame := Build(ap, 1, StaticTimestamp)

	// gopacket expects a trailing FCS on Dot11.
	data := append(append([]byte{}, frame...), 0xDE, 0xAD, 0xBE, 0xEF)
	pkt := gopacket.NewPacket(data, layers.LayerTypeDot11, gopacket.Default)

	dot11Layer := pkt.Layer(layers.LayerTypeDot11)
	require.NotNil(t, dot11Layer)
	dot11 := dot11Layer.(*layers.Dot11)

	assert.Equal(t, layers.Dot11TypeMgmtBeacon, dot11.Type)
	assert.Equal(t, []byte(ap.BSSID), []byte(dot11.Address2))
	assert.Equal(t, []byte(ap.BSSID), []byte(dot11.Address3))
}

func TestAccessPointValidation(t *testing.T) {
	hw, _ := net.ParseMAC("02:00:00:00:00:01")

	_, err := domain.NewAccessPoint(hw, string(bytes.Repeat([]byte{'a'}, 33)), 0)
	assert.Error(t, err, "SSID over 32 bytes must be rejected before reaching the builder")

	ap, err := domain.NewAccessPoint(hw, string(bytes.Repeat([]byte{'a'}, 32)), time.Minute)
	require.NoError(t, err)
	assert.Equal(t, uint8(32), ap.SSIDLen)

	// A tampered cached length must fail validation.
	ap.SSIDLen = 31
	assert.Error(t, ap.Validate())
}
