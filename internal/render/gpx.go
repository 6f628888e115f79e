package render

import (
	"fmt"

	"github.com/tkrajina/gpxgo/gpx"

	"github.com/jengzang/media-geotag-mapper/internal/models"
)

// GPX builds a GPX 1.1 document with one track through the ordered located
// records and a waypoint per record. Coordinates are raw, not cutoff-mapped.
func GPX(name string, seq models.OrderedRecords) *gpx.GPX {
	doc := &gpx.GPX{Name: name, Creator: "media-geotag-mapper"}
	segment := gpx.GPXTrackSegment{}

	for _, r := range models.Located(seq.Records) {
		var p gpx.GPXPoint
		p.Latitude = r.Latitude
		p.Longitude = r.Longitude
		if t, ok := seq.Key.Instant(r); ok {
			p.Timestamp = t.UTC()
		}

		segment.Points = append(segment.Points, p)

		wpt := p
		wpt.Name = r.Name
		wpt.Description = Popup(r.Path)
		doc.Waypoints = append(doc.Waypoints, wpt)
	}

	doc.Tracks = []gpx.GPXTrack{{Name: name, Segments: []gpx.GPXTrackSegment{segment}}}
	return doc
}

// MarshalGPX encodes a GPX document as indented XML
func MarshalGPX(doc *gpx.GPX) ([]byte, error) {
	data, err := doc.ToXml(gpx.ToXmlParams{Version: "1.1", Indent: true})
	if err != nil {
		return nil, fmt.Errorf("failed to encode gpx: %w", err)
	}
	return data, nil
}
