// Package geo provides the coordinate math behind the roster import tooling.
package geo

import "math"

// Location represents a geographic coordinate.
type Location struct {
	Latitude  float64
	Longitude float64
}

const earthRadiusMeters = 6371008.8

// Distance returns the great-circle distance between two points in meters.
func Distance(p1, p2 Location) float64 {
	lat1 := p1.Latitude * math.Pi / 180
	lat2 := p2.Latitude * math.Pi / 180
	dLat := (p2.Latitude - p1.Latitude) * math.Pi / 180
	dLon := (p2.Longitude - p1.Longitude) * math.Pi / 180

	a := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(lat1)*math.Cos(lat2)*math.Sin(dLon/2)*math.Sin(dLon/2)
	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))
	return earthRadiusMeters * c
}

// SignedDistance returns the distance from p1 to p2, negated when p2 lies
// south or east of p1. The roster files use the sign to lay networks out
// around a target point.
func SignedDistance(p1, p2 Location) float64 {
	d := Distance(p1, p2)
	if p2.Latitude < p1.Latitude || p2.Longitude > p1.Longitude {
		return -d
	}
	return d
}

// EstimateRSSI maps the distance between a network and the target location to
// a plausible received signal strength. The steps mirror field observations;
// they are deliberately coarse.
func EstimateRSSI(p1, p2 Location) int {
	m := Distance(p1, p2)
	switch {
	case m > 1000:
		return -90
	case m > 500:
		return -80
	case m > 250:
		return -75
	case m > 125:
		return -65
	case m > 50:
		return -55
	default:
		return -50
	}
}
