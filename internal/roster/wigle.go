package roster

import (
	"encoding/json"
	"fmt"
	"math"
	"os"
	"sort"
	"strconv"
	"time"

	"github.com/lcalzada-xor/ghostfield/internal/geo"
)

// WigleNetwork is one result row of a WiGLE API response.
type WigleNetwork struct {
	NetID   string  `json:"netid"`
	SSID    string  `json:"ssid"`
	Channel int     `json:"channel"`
	TriLat  float64 `json:"trilat"`
	TriLong float64 `json:"trilong"`
	QoS     int     `json:"qos"`
}

// WigleResponse is the envelope of a WiGLE network search response.
type WigleResponse struct {
	Results []WigleNetwork `json:"results"`
}

// LoadWigle reads and decodes a saved WiGLE response.
func LoadWigle(path string) (*WigleResponse, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("wigle file: %w", err)
	}
	var resp WigleResponse
	if err := json.Unmarshal(data, &resp); err != nil {
		return nil, fmt.Errorf("wigle file %s: %w", path, err)
	}
	return &resp, nil
}

// ConvertWigle turns a WiGLE response into roster files of at most perFile
// networks each, centered on the target location. Networks are ordered by
// absolute distance from the target, so the first file holds the closest
// ones. One file per radio device.
func ConvertWigle(resp *WigleResponse, target geo.Location, perFile int) []*File {
	if perFile <= 0 {
		perFile = 20
	}

	since, _ := strconv.Atoi(time.Now().Format("20060102"))
	meta := &Meta{
		Lat:    target.Latitude,
		Lon:    target.Longitude,
		Radius: 1,
		Run:    1,
		Since:  since,
		Type:   "wigle",
	}

	nets := make([]Network, 0, len(resp.Results))
	for _, w := range resp.Results {
		p := geo.Location{Latitude: w.TriLat, Longitude: w.TriLong}
		dx := geo.SignedDistance(target, geo.Location{Latitude: target.Latitude, Longitude: w.TriLong})
		dxy := geo.SignedDistance(target, p)
		dy := geo.SignedDistance(target, geo.Location{Latitude: w.TriLat, Longitude: target.Longitude})
		qos := w.QoS

		nets = append(nets, Network{
			BSSID:      w.NetID,
			Channel:    w.Channel,
			RSSI:       geo.EstimateRSSI(p, target),
			SSID:       w.SSID,
			Lat:        w.TriLat,
			Lon:        w.TriLong,
			DistanceX:  &dx,
			DistanceXY: &dxy,
			DistanceY:  &dy,
			QoS:        &qos,
		})
	}

	sort.SliceStable(nets, func(i, j int) bool {
		return math.Abs(*nets[i].DistanceXY) < math.Abs(*nets[j].DistanceXY)
	})

	var files []*File
	for start := 0; start < len(nets); start += perFile {
		end := start + perFile
		if end > len(nets) {
			end = len(nets)
		}
		chunk := make([]Network, end-start)
		copy(chunk, nets[start:end])
		files = append(files, &File{Meta: meta, Networks: chunk})
	}
	return files
}

// WriteFile encodes a roster file with the indentation the rest of the
// tooling expects.
func WriteFile(path string, f *File) error {
	data, err := json.MarshalIndent(f, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}
