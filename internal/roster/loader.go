// Package roster loads access point rosters from survey files and converts
// external survey data into them.
package roster

import (
	"encoding/json"
	"fmt"
	"hash/fnv"
	"net"
	"os"
	"sort"
	"time"

	"github.com/lcalzada-xor/ghostfield/internal/core/domain"
)

// Network is one surveyed network as stored in a roster file.
type Network struct {
	BSSID      string   `json:"bssid"`
	Channel    int      `json:"channel"`
	RSSI       int      `json:"rssi"`
	SSID       string   `json:"ssid"`
	Lat        float64  `json:"lat"`
	Lon        float64  `json:"lon"`
	DistanceX  *float64 `json:"distance_x,omitempty"`
	DistanceXY *float64 `json:"distance_xy,omitempty"`
	DistanceY  *float64 `json:"distance_y,omitempty"`
	QoS        *int     `json:"qos,omitempty"`
}

// Channel2pt4 clamps the surveyed channel into the usable 2.4 GHz range.
// Survey data occasionally carries 5 GHz channels the radio cannot beacon on.
func (n Network) Channel2pt4() int {
	ch := n.Channel
	if ch < domain.MinChannel {
		return domain.MinChannel
	}
	if ch > 11 {
		return 11
	}
	return ch
}

// Meta describes the survey a roster file came from.
type Meta struct {
	Comment  string  `json:"comment,omitempty"`
	Filepath string  `json:"filepath,omitempty"`
	Lat      float64 `json:"lat"`
	Lon      float64 `json:"lon"`
	Radius   float64 `json:"radius,omitempty"`
	Run      int     `json:"run,omitempty"`
	Since    int     `json:"since,omitempty"`
	Type     string  `json:"type,omitempty"`
}

// File is one roster file: survey metadata plus its networks.
type File struct {
	Meta     *Meta     `json:"meta,omitempty"`
	Networks []Network `json:"networks"`
}

// LoadFile reads and decodes a roster file.
func LoadFile(path string) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("roster file: %w", err)
	}
	var f File
	if err := json.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("roster file %s: %w", path, err)
	}
	return &f, nil
}

// Filter narrows the network list the way the survey tooling does.
type Filter struct {
	MinRSSI     *int // keep networks at or above this strength
	MaxRSSI     *int // keep networks at or below this strength
	MaxNetworks int  // 0 = no cap
}

// Select returns the file's networks sorted by RSSI descending, filtered and
// capped per f.
func (rf *File) Select(f Filter) []Network {
	nets := make([]Network, len(rf.Networks))
	copy(nets, rf.Networks)
	sort.SliceStable(nets, func(i, j int) bool { return nets[i].RSSI > nets[j].RSSI })

	out := nets[:0]
	for _, n := range nets {
		if f.MinRSSI != nil && n.RSSI < *f.MinRSSI {
			continue
		}
		if f.MaxRSSI != nil && n.RSSI > *f.MaxRSSI {
			continue
		}
		out = append(out, n)
	}
	if f.MaxNetworks > 0 && len(out) > f.MaxNetworks {
		out = out[:f.MaxNetworks]
	}
	return out
}

// Roster converts the selected networks into a validated roster. SSIDs longer
// than the frame format allows are rejected, not truncated.
func (rf *File) Roster(f Filter) (domain.Roster, error) {
	nets := rf.Select(f)
	aps := make([]domain.AccessPoint, 0, len(nets))
	for _, n := range nets {
		hw, err := net.ParseMAC(n.BSSID)
		if err != nil {
			return domain.Roster{}, fmt.Errorf("network %q: bad BSSID: %w", n.SSID, err)
		}
		ap, err := domain.NewAccessPoint(hw, n.SSID, epochOffsetFor(hw))
		if err != nil {
			return domain.Roster{}, err
		}
		aps = append(aps, ap)
	}
	return domain.NewRoster(aps)
}

// ChannelPlan derives the rotation plan from the selected networks: the
// distinct clamped channels in first-seen order. Files with no usable
// channels fall back to the default plan.
func (rf *File) ChannelPlan(f Filter) (domain.ChannelPlan, error) {
	seen := make(map[int]bool)
	var channels []int
	for _, n := range rf.Select(f) {
		ch := n.Channel2pt4()
		if !seen[ch] {
			seen[ch] = true
			channels = append(channels, ch)
		}
	}
	if len(channels) == 0 {
		return domain.DefaultChannelPlan(), nil
	}
	return domain.NewChannelPlan(channels)
}

// epochOffsetFor derives a stable per-AP uptime shift from the hardware
// address, so the same roster always reports the same boot times without
// storing offsets in the survey files.
func epochOffsetFor(bssid net.HardwareAddr) time.Duration {
	h := fnv.New32a()
	h.Write(bssid)
	// Spread boot times across ~10 days in 1-second steps.
	seconds := h.Sum32() % (10 * 24 * 3600)
	return time.Duration(seconds) * time.Second
}
