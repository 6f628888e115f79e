package spatial

import "github.com/jengzang/media-geotag-mapper/internal/models"

// Bounds is a latitude/longitude bounding box
type Bounds struct {
	South float64 `json:"south"`
	West  float64 `json:"west"`
	North float64 `json:"north"`
	East  float64 `json:"east"`
}

// Centroid calculates the arithmetic centroid of a set of points
func Centroid(points []models.GeoPoint) models.GeoPoint {
	if len(points) == 0 {
		return models.GeoPoint{}
	}

	var sumLat, sumLon float64
	for _, p := range points {
		sumLat += p.Lat
		sumLon += p.Lon
	}

	return models.GeoPoint{
		Lat: sumLat / float64(len(points)),
		Lon: sumLon / float64(len(points)),
	}
}

// BoundingBox calculates the bounding box of a set of points
func BoundingBox(points []models.GeoPoint) Bounds {
	if len(points) == 0 {
		return Bounds{}
	}

	b := Bounds{South: points[0].Lat, North: points[0].Lat, West: points[0].Lon, East: points[0].Lon}
	for _, p := range points[1:] {
		if p.Lat < b.South {
			b.South = p.Lat
		}
		if p.Lat > b.North {
			b.North = p.Lat
		}
		if p.Lon < b.West {
			b.West = p.Lon
		}
		if p.Lon > b.East {
			b.East = p.Lon
		}
	}

	return b
}

// PathLength calculates the total length of a path (sequence of points) in meters
func PathLength(points []models.GeoPoint) float64 {
	if len(points) < 2 {
		return 0
	}

	var totalDist float64
	for i := 1; i < len(points); i++ {
		totalDist += DistanceBetween(points[i-1], points[i])
	}

	return totalDist
}
