package spatial

import (
	"github.com/rs/zerolog/log"

	"github.com/jengzang/media-geotag-mapper/internal/models"
)

// Path defaults
const (
	DefaultLongitudeCutoff     = 80.0
	DefaultInterpolationPoints = 20
)

// PathOptions controls path construction
type PathOptions struct {
	LongitudeCutoff float64 // longitudes above this meridian are shifted by -360
	Points          int     // interpolated points per segment, endpoints included
}

// DefaultPathOptions returns the default cutoff and point count
func DefaultPathOptions() PathOptions {
	return PathOptions{
		LongitudeCutoff: DefaultLongitudeCutoff,
		Points:          DefaultInterpolationPoints,
	}
}

// MapLongitude shifts a longitude east of the cutoff by -360 so antimeridian
// crossings render as a single westward arc
func MapLongitude(lon, cutoff float64) float64 {
	if lon > cutoff {
		return lon - 360
	}
	return lon
}

// BuildPaths interpolates a geodesic segment between each pair of consecutive records.
// The sequence must already exclude sentinel coordinates. Identical consecutive
// coordinates produce no segment.
func BuildPaths(seq models.OrderedRecords, opts PathOptions) []models.PathSegment {
	if opts.Points < 2 {
		opts.Points = 2
	}
	if v := seq.CheckOrder(); len(v) > 0 {
		log.Warn().
			Str("sortKey", string(seq.Key)).
			Int("violations", len(v)).
			Str("firstPath", v[0].Path).
			Msg("Path input is out of order")
	}

	records := seq.Records
	segments := make([]models.PathSegment, 0, len(records))
	for i := 1; i < len(records); i++ {
		prev, cur := records[i-1], records[i]
		if prev.Latitude == cur.Latitude && prev.Longitude == cur.Longitude {
			continue
		}

		points := BuildSegment(
			models.GeoPoint{Lat: prev.Latitude, Lon: prev.Longitude},
			models.GeoPoint{Lat: cur.Latitude, Lon: cur.Longitude},
			opts,
		)
		segments = append(segments, models.PathSegment{
			FromPath:     prev.Path,
			ToPath:       cur.Path,
			Points:       points,
			LengthMeters: PathLength(points),
		})
	}

	return segments
}

// BuildSegment maps both endpoints by the cutoff, interpolates between them and
// maps every emitted point again
func BuildSegment(from, to models.GeoPoint, opts PathOptions) []models.GeoPoint {
	fromLon := MapLongitude(from.Lon, opts.LongitudeCutoff)
	toLon := MapLongitude(to.Lon, opts.LongitudeCutoff)

	points := GeodesicPoints(from.Lat, fromLon, to.Lat, toLon, opts.Points)
	for i := range points {
		points[i].Lon = MapLongitude(points[i].Lon, opts.LongitudeCutoff)
	}
	return points
}
