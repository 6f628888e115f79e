package render

import (
	"encoding/json"

	"github.com/jengzang/media-geotag-mapper/internal/models"
)

// FeatureCollection is a GeoJSON feature collection
type FeatureCollection struct {
	Type     string    `json:"type"`
	Features []Feature `json:"features"`
}

// Feature is a GeoJSON feature
type Feature struct {
	Type       string         `json:"type"`
	Geometry   Geometry       `json:"geometry"`
	Properties map[string]any `json:"properties"`
}

// Geometry is a GeoJSON Point or LineString
type Geometry struct {
	Type        string `json:"type"`
	Coordinates any    `json:"coordinates"`
}

// GeoJSON builds a feature collection with a LineString per path segment followed
// by a Point per marker. Coordinates are [lon, lat] with mapped longitudes.
func GeoJSON(markers []models.Marker, segments []models.PathSegment) FeatureCollection {
	fc := FeatureCollection{Type: "FeatureCollection", Features: make([]Feature, 0, len(markers)+len(segments))}

	for _, seg := range segments {
		coords := make([][2]float64, len(seg.Points))
		for i, p := range seg.Points {
			coords[i] = [2]float64{p.Lon, p.Lat}
		}
		fc.Features = append(fc.Features, Feature{
			Type:     "Feature",
			Geometry: Geometry{Type: "LineString", Coordinates: coords},
			Properties: map[string]any{
				"kind":         "path",
				"from":         Popup(seg.FromPath),
				"to":           Popup(seg.ToPath),
				"lengthMeters": seg.LengthMeters,
			},
		})
	}

	for _, m := range markers {
		fc.Features = append(fc.Features, Feature{
			Type:     "Feature",
			Geometry: Geometry{Type: "Point", Coordinates: [2]float64{m.MappedLon, m.Lat}},
			Properties: map[string]any{
				"kind":      "media",
				"tooltip":   m.Tooltip,
				"popup":     m.Popup,
				"latitude":  m.Lat,
				"longitude": m.Lon,
			},
		})
	}

	return fc
}

// MarshalGeoJSON encodes a feature collection
func MarshalGeoJSON(fc FeatureCollection) ([]byte, error) {
	return json.Marshal(fc)
}
