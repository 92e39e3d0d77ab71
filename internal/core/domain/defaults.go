package domain

import "time"

// DefaultRoster is the compiled-in access point table used when no roster
// file is supplied. Identities mirror a real museum-district survey so the
// spoofed presence geolocates somewhere plausible.
func DefaultRoster() Roster {
	roster, err := NewRoster([]AccessPoint{
		MustAccessPoint("10:bd:18:5e:29:86", "RIJKS SA", 97*time.Hour+13*time.Minute),
		MustAccessPoint("c4:01:7c:4a:b2:11", "RijksmuseumGasten", 41*time.Hour+2*time.Minute),
		MustAccessPoint("00:25:45:9c:77:03", "MuseumpleinFree", 12*time.Hour+48*time.Minute),
		MustAccessPoint("64:d1:54:0f:e1:aa", "KPN-E1AA9F", 230*time.Hour+5*time.Minute),
		MustAccessPoint("a0:21:b7:38:44:c0", "Ziggo4482217", 8*time.Hour+21*time.Minute),
		MustAccessPoint("50:c7:bf:91:0d:5e", "", 63*time.Hour+36*time.Minute),
	})
	if err != nil {
		panic(err)
	}
	return roster
}

// DefaultChannelPlan spreads the roster across the non-overlapping 2.4 GHz
// channels, matching the survey data the default roster came from.
func DefaultChannelPlan() ChannelPlan {
	plan, err := NewChannelPlan([]int{1, 6, 11})
	if err != nil {
		panic(err)
	}
	return plan
}
