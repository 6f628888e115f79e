package spatial

import (
	"github.com/golang/geo/s2"

	"github.com/jengzang/media-geotag-mapper/internal/models"
)

// HaversineDistance calculates the great-circle distance between two points in meters
// using the Haversine formula
func HaversineDistance(lat1, lon1, lat2, lon2 float64) float64 {
	p1 := s2.LatLngFromDegrees(lat1, lon1)
	p2 := s2.LatLngFromDegrees(lat2, lon2)
	return p1.Distance(p2).Radians() * EarthRadiusMeters
}

// DistanceBetween is HaversineDistance over two GeoPoints
func DistanceBetween(a, b models.GeoPoint) float64 {
	return HaversineDistance(a.Lat, a.Lon, b.Lat, b.Lon)
}

// sphericalInterpolate returns n points along the spherical great circle from a to b.
// Used when the ellipsoidal solution does not converge.
func sphericalInterpolate(lat1, lon1, lat2, lon2 float64, n int) []models.GeoPoint {
	a := s2.PointFromLatLng(s2.LatLngFromDegrees(lat1, lon1))
	b := s2.PointFromLatLng(s2.LatLngFromDegrees(lat2, lon2))

	points := make([]models.GeoPoint, n)
	for i := 0; i < n; i++ {
		ll := s2.LatLngFromPoint(s2.Interpolate(fraction(i, n), a, b))
		points[i] = models.GeoPoint{Lat: ll.Lat.Degrees(), Lon: ll.Lng.Degrees()}
	}
	return points
}

func fraction(i, n int) float64 {
	if n <= 1 {
		return 0
	}
	return float64(i) / float64(n-1)
}

// Constants
const (
	EarthRadiusMeters = 6371000.0 // Earth's mean radius in meters
	EarthRadiusKm     = 6371.0    // Earth's mean radius in kilometers

	MetersPerKilometer = 1000.0
	MilesPerKilometer  = 0.621371
)
