package stats

import (
	"fmt"
	"strings"

	"github.com/jengzang/media-geotag-mapper/internal/spatial"
)

// Unit is a distance unit for travel reports
type Unit string

const (
	Miles      Unit = "miles"
	Kilometers Unit = "kilometers"
)

// ParseUnit resolves a caller-supplied unit. Anything other than miles or
// kilometers falls back to kilometers and returns a notice describing the fallback.
func ParseUnit(s string) (Unit, string) {
	switch Unit(strings.ToLower(strings.TrimSpace(s))) {
	case Miles:
		return Miles, ""
	case Kilometers:
		return Kilometers, ""
	default:
		return Kilometers, fmt.Sprintf("unsupported distance unit %q, using kilometers", s)
	}
}

// FromMeters converts a distance in meters into the unit
func (u Unit) FromMeters(m float64) float64 {
	km := m / spatial.MetersPerKilometer
	if u == Miles {
		return km * spatial.MilesPerKilometer
	}
	return km
}

// Distance is the haversine distance between two positions in the unit
func (u Unit) Distance(lat1, lon1, lat2, lon2 float64) float64 {
	return u.FromMeters(spatial.HaversineDistance(lat1, lon1, lat2, lon2))
}
