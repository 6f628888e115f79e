// Package render turns ordered media records and their paths into map
// markers, GeoJSON, a Leaflet page, GPX tracks and CSV tables.
package render

import (
	"strconv"
	"strings"
	"time"

	"github.com/jengzang/media-geotag-mapper/internal/models"
	"github.com/jengzang/media-geotag-mapper/internal/spatial"
)

// InstantLayout formats marker timestamps
const InstantLayout = "2006-01-02 15:04:05-07:00"

// Markers builds one marker per located record. Positions use the cutoff-mapped
// longitude while the tooltip shows the raw coordinates.
func Markers(seq models.OrderedRecords, cutoff float64) []models.Marker {
	records := models.Located(seq.Records)
	markers := make([]models.Marker, 0, len(records))
	for _, r := range records {
		markers = append(markers, models.Marker{
			Lat:       r.Latitude,
			Lon:       r.Longitude,
			MappedLon: spatial.MapLongitude(r.Longitude, cutoff),
			Tooltip:   Tooltip(seq.Key, r),
			Popup:     Popup(r.Path),
		})
	}
	return markers
}

// Tooltip renders "<instant>: <lat>, <lon>" using the sequence's sort key
func Tooltip(key models.SortKey, r models.MediaRecord) string {
	instant := "unknown"
	if t, ok := key.Instant(r); ok {
		instant = t.UTC().Format(InstantLayout)
	}
	return instant + ": " + formatCoord(r.Latitude) + ", " + formatCoord(r.Longitude)
}

// Popup renders the file path with backslashes replaced so it is safe inside the page
func Popup(path string) string {
	return strings.ReplaceAll(path, `\`, "/")
}

func formatCoord(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func formatInstant(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.UTC().Format(time.RFC3339)
}
