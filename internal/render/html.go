package render

import (
	"embed"
	"fmt"
	"html/template"
	"io"

	"github.com/jengzang/media-geotag-mapper/internal/models"
	"github.com/jengzang/media-geotag-mapper/internal/spatial"
)

//go:embed templates/*.html
var templateFS embed.FS

var mapTemplate = template.Must(template.ParseFS(templateFS, "templates/map.html"))

// Marker kinds
const (
	MarkerCircle = "CircleMarker"
	MarkerPin    = "Marker"
)

// MapStyle holds the Leaflet page options
type MapStyle struct {
	StartLat    float64 `yaml:"start_lat"`
	StartLon    float64 `yaml:"start_lon"`
	Zoom        int     `yaml:"zoom"`
	Tiles       string  `yaml:"tiles"`
	Attribution string  `yaml:"attribution"`
	Marker      string  `yaml:"marker"`
	MarkerColor string  `yaml:"marker_color"`
	Radius      float64 `yaml:"radius"`
	PathColor   string  `yaml:"path_color"`
	PathWeight  float64 `yaml:"path_weight"`
}

// DefaultMapStyle returns the default page options
func DefaultMapStyle() MapStyle {
	return MapStyle{
		StartLat:    39,
		StartLon:    -95,
		Zoom:        4,
		Tiles:       "https://{s}.tile.openstreetmap.org/{z}/{x}/{y}.png",
		Attribution: "&copy; OpenStreetMap contributors",
		Marker:      MarkerCircle,
		MarkerColor: "#ff0000",
		Radius:      5,
		PathColor:   "#3388ff",
		PathWeight:  3,
	}
}

// StrokeOpacity scales the circle outline with the radius
func (s MapStyle) StrokeOpacity() float64 {
	return s.Radius / 5
}

type pageData struct {
	Title         string
	Style         MapStyle
	StrokeOpacity float64
	Circle        bool
	Center        [2]float64
	Bounds        *[2][2]float64
	Markers       []models.Marker
	Paths         [][][2]float64
}

// Viewport returns the initial map center and, for two or more distinct marker
// positions, the bounds to fit. Without markers the configured start location is used.
func Viewport(style MapStyle, markers []models.Marker) (models.GeoPoint, *spatial.Bounds) {
	if len(markers) == 0 {
		return models.GeoPoint{Lat: style.StartLat, Lon: style.StartLon}, nil
	}

	points := make([]models.GeoPoint, len(markers))
	for i, m := range markers {
		points[i] = models.GeoPoint{Lat: m.Lat, Lon: m.MappedLon}
	}
	center := spatial.Centroid(points)
	b := spatial.BoundingBox(points)
	if b.South == b.North && b.West == b.East {
		return center, nil
	}
	return center, &b
}

// WriteHTML renders a self-contained Leaflet page. Paths are drawn before markers.
func WriteHTML(w io.Writer, title string, style MapStyle, markers []models.Marker, segments []models.PathSegment) error {
	paths := make([][][2]float64, len(segments))
	for i, seg := range segments {
		line := make([][2]float64, len(seg.Points))
		for j, p := range seg.Points {
			line[j] = [2]float64{p.Lat, p.Lon}
		}
		paths[i] = line
	}
	if markers == nil {
		markers = []models.Marker{}
	}

	center, bounds := Viewport(style, markers)
	data := pageData{
		Title:         title,
		Style:         style,
		StrokeOpacity: style.StrokeOpacity(),
		Circle:        style.Marker != MarkerPin,
		Center:        [2]float64{center.Lat, center.Lon},
		Markers:       markers,
		Paths:         paths,
	}
	if bounds != nil {
		data.Bounds = &[2][2]float64{{bounds.South, bounds.West}, {bounds.North, bounds.East}}
	}
	if err := mapTemplate.Execute(w, data); err != nil {
		return fmt.Errorf("failed to render map: %w", err)
	}
	return nil
}
