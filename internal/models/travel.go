package models

// GeoPoint is a latitude/longitude pair in decimal degrees
type GeoPoint struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}

// PathSegment is the interpolated great-circle path between two consecutive records.
// Longitudes are already remapped by the longitude cutoff.
type PathSegment struct {
	FromPath     string     `json:"fromPath"`
	ToPath       string     `json:"toPath"`
	Points       []GeoPoint `json:"points"`
	LengthMeters float64    `json:"lengthMeters"` // along the interpolated points
}

// YearlyTravelStat is one row of the per-year travel report
type YearlyTravelStat struct {
	Year          int     `json:"year"`
	GeotagCount   int     `json:"geotagCount"`
	TotalDistance float64 `json:"totalDistance"`
	Unit          string  `json:"unit"`
}

// YearlyTravelReport groups the yearly rows with the diagnostics produced while computing them
type YearlyTravelReport struct {
	Unit        string             `json:"unit"`
	SortKey     SortKey            `json:"sortKey"`
	Stats       []YearlyTravelStat `json:"stats"`
	Summary     TravelSummary      `json:"summary"`
	Notices     []string           `json:"notices,omitempty"`
	OutOfOrder  []OrderViolation   `json:"outOfOrder,omitempty"`
	GeneratedAt string             `json:"generatedAt"`
}

// TravelSummary holds the figures across the reported years.
// TotalDistance only includes steps whose later record has a known instant.
type TravelSummary struct {
	TotalDistance  float64 `json:"totalDistance"`
	MeanPerYear    float64 `json:"meanPerYear"`
	MedianStep     float64 `json:"medianStep"`
	LongestStep    float64 `json:"longestStep"`
	LocatedRecords int     `json:"locatedRecords"` // records counted in the rows
}

// Marker is a single map marker with its hover and click texts
type Marker struct {
	Lat       float64 `json:"lat"`
	Lon       float64 `json:"lon"`       // raw longitude
	MappedLon float64 `json:"mappedLon"` // longitude after cutoff remap
	Tooltip   string  `json:"tooltip"`
	Popup     string  `json:"popup"`
}

// Rect is a latitude/longitude rectangle used by the longitude-flip correction
type Rect struct {
	South float64 `json:"south" yaml:"south"`
	North float64 `json:"north" yaml:"north"`
	West  float64 `json:"west" yaml:"west"`
	East  float64 `json:"east" yaml:"east"`
}

// FlipRequest is the input of a longitude-flip correction
type FlipRequest struct {
	Rect   Rect   `json:"rect"`
	Folder string `json:"folder"` // path prefix, empty = all records
}

// Valid reports whether the bounds describe a non-empty rectangle
func (r Rect) Valid() bool {
	return r.South < r.North && r.West < r.East
}

// StrictlyContains reports whether the point lies inside the rectangle, bounds excluded
func (r Rect) StrictlyContains(lat, lon float64) bool {
	return lat > r.South && lat < r.North && lon > r.West && lon < r.East
}
