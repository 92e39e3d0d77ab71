package roster

import (
	"context"
	"math"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lcalzada-xor/ghostfield/internal/geo"
)

func sampleWigle() *WigleResponse {
	return &WigleResponse{Results: []WigleNetwork{
		{NetID: "10:bd:18:5e:29:86", SSID: "RIJKS SA", Channel: 1, TriLat: 52.3600, TriLong: 4.8852, QoS: 7},
		{NetID: "c4:01:7c:4a:b2:11", SSID: "RijksmuseumGasten", Channel: 6, TriLat: 52.3790, TriLong: 4.9000, QoS: 2},
		{NetID: "50:c7:bf:91:0d:5e", SSID: "", Channel: 11, TriLat: 52.3584, TriLong: 4.8811, QoS: 0},
	}}
}

func TestConvertWigleOrdersByDistance(t *testing.T) {
	target := geo.Location{Latitude: 52.3584, Longitude: 4.8811}
	files := ConvertWigle(sampleWigle(), target, 20)

	require.Len(t, files, 1)
	nets := files[0].Networks
	require.Len(t, nets, 3)

	// Closest first: the network at the target itself leads.
	assert.Equal(t, "50:c7:bf:91:0d:5e", nets[0].BSSID)
	assert.Equal(t, "10:bd:18:5e:29:86", nets[1].BSSID)
	assert.Equal(t, "c4:01:7c:4a:b2:11", nets[2].BSSID)

	for _, n := range nets {
		require.NotNil(t, n.DistanceXY)
		require.NotNil(t, n.QoS)
	}
	assert.Zero(t, math.Abs(*nets[0].DistanceXY))

	// RSSI estimated from distance: at the target it is the strongest step.
	assert.Equal(t, -50, nets[0].RSSI)
	assert.Equal(t, -90, nets[2].RSSI)

	require.NotNil(t, files[0].Meta)
	assert.Equal(t, "wigle", files[0].Meta.Type)
	assert.Equal(t, target.Latitude, files[0].Meta.Lat)
}

func TestConvertWigleChunks(t *testing.T) {
	target := geo.Location{Latitude: 52.3584, Longitude: 4.8811}
	files := ConvertWigle(sampleWigle(), target, 2)

	require.Len(t, files, 2)
	assert.Len(t, files[0].Networks, 2)
	assert.Len(t, files[1].Networks, 1)
}

func TestWriteAndReloadRosterFile(t *testing.T) {
	target := geo.Location{Latitude: 52.3584, Longitude: 4.8811}
	files := ConvertWigle(sampleWigle(), target, 20)
	require.Len(t, files, 1)

	path := filepath.Join(t.TempDir(), "roster_1.json")
	require.NoError(t, WriteFile(path, files[0]))

	loaded, err := LoadFile(path)
	require.NoError(t, err)
	assert.Equal(t, files[0].Networks, loaded.Networks)

	// The round-tripped file converts into a usable roster.
	r, err := loaded.Roster(Filter{})
	require.NoError(t, err)
	assert.Equal(t, 3, r.Len())
}

func TestCatalogRoundTrip(t *testing.T) {
	c, err := OpenCatalog(filepath.Join(t.TempDir(), "catalog.db"))
	require.NoError(t, err)
	defer c.Close()

	ctx := context.Background()
	nets := []Network{
		{BSSID: "02:00:00:00:00:01", SSID: "one", Channel: 1, RSSI: -70},
		{BSSID: "02:00:00:00:00:02", SSID: "two", Channel: 6, RSSI: -50},
	}
	require.NoError(t, c.Upsert(ctx, nets))

	// Re-import updates in place instead of duplicating.
	nets[0].RSSI = -40
	require.NoError(t, c.Upsert(ctx, nets[:1]))

	got, err := c.Strongest(ctx, 10)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "02:00:00:00:00:01", got[0].BSSID)
	assert.Equal(t, -40, got[0].RSSI)
}
