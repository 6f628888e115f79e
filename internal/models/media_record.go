package models

import (
	"strings"
	"time"
)

// MediaType classifies a file by its extension
type MediaType string

const (
	MediaTypePicture MediaType = "picture"
	MediaTypeClip    MediaType = "clip"
	MediaTypeOther   MediaType = "other"
)

// ParseMediaType converts a stored string back into a MediaType
func ParseMediaType(s string) MediaType {
	switch MediaType(strings.ToLower(s)) {
	case MediaTypePicture:
		return MediaTypePicture
	case MediaTypeClip:
		return MediaTypeClip
	default:
		return MediaTypeOther
	}
}

// MediaRecord is one located-media record per file.
// A (0,0) coordinate is the "no geotag" sentinel and never a real location.
// CaptureInstant is nil when unknown; RawLocation is only set for clips.
type MediaRecord struct {
	Path             string     `json:"path" db:"path"`
	Name             string     `json:"name" db:"name"`
	Extension        string     `json:"extension" db:"extension"`
	MediaType        MediaType  `json:"mediaType" db:"media_type"`
	SizeBytes        int64      `json:"sizeBytes" db:"size_bytes"`
	ModifiedAt       time.Time  `json:"modifiedAt" db:"modified_at"`
	Latitude         float64    `json:"latitude" db:"latitude"`
	Longitude        float64    `json:"longitude" db:"longitude"`
	CaptureInstant   *time.Time `json:"captureInstant" db:"capture_instant"`
	RawLocation      string     `json:"rawLocation,omitempty" db:"raw_location"`
	LongitudeFlipped bool       `json:"longitudeFlipped" db:"longitude_flipped"`
	ScanID           string     `json:"scanId,omitempty" db:"scan_id"`
}

// HasGeotag reports whether the record carries a non-sentinel coordinate
func (r MediaRecord) HasGeotag() bool {
	return !(r.Latitude == 0 && r.Longitude == 0)
}

// WithLongitude returns a copy of the record with the longitude replaced and marked flipped
func (r MediaRecord) WithLongitude(lon float64) MediaRecord {
	r.Longitude = lon
	r.LongitudeFlipped = true
	return r
}

// Located filters out records with the sentinel coordinate
func Located(records []MediaRecord) []MediaRecord {
	located := make([]MediaRecord, 0, len(records))
	for _, r := range records {
		if r.HasGeotag() {
			located = append(located, r)
		}
	}
	return located
}

// MediaRecordsResponse represents a paginated response of media records
type MediaRecordsResponse struct {
	Data       []MediaRecord `json:"data"`
	Total      int64         `json:"total"`
	Page       int           `json:"page"`
	PageSize   int           `json:"pageSize"`
	TotalPages int           `json:"totalPages"`
}

// MediaSummary reports how many stored records carry a usable location
type MediaSummary struct {
	Total   int64  `json:"total"`
	Located int64  `json:"located"`
	Message string `json:"message"`
}
