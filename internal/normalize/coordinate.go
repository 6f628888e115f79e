package normalize

import (
	"math"
	"strconv"
	"strings"
)

// Tag keys read by the coordinate normalizer
const (
	KeyGPSLatitude     = "GPS GPSLatitude"
	KeyGPSLatitudeRef  = "GPS GPSLatitudeRef"
	KeyGPSLongitude    = "GPS GPSLongitude"
	KeyGPSLongitudeRef = "GPS GPSLongitudeRef"

	KeyClipLocation      = "location"
	KeyQuickTimeLocation = "com.apple.quicktime.location.ISO6709"
)

// LocationPlaceholder stands for a clip without any location tag
var LocationPlaceholder = strings.Repeat("x", 17)

// Coordinate is a signed decimal-degree position
type Coordinate struct {
	Lat float64
	Lon float64
}

// Sentinel is the "no geotag" coordinate
var Sentinel = Coordinate{}

// IsSentinel reports whether c is the no-geotag coordinate
func (c Coordinate) IsSentinel() bool {
	return c.Lat == 0 && c.Lon == 0
}

// valid returns c if it is in range, otherwise the sentinel
func (c Coordinate) valid() Coordinate {
	if math.IsNaN(c.Lat) || math.IsNaN(c.Lon) {
		return Sentinel
	}
	if c.Lat < -90 || c.Lat > 90 || c.Lon < -180 || c.Lon > 180 {
		return Sentinel
	}
	return c
}

// DMSToDecimal converts a degrees/minutes/seconds triple with a hemisphere reference.
// S and W references negate the result. Any other reference, empty included, keeps it positive.
func DMSToDecimal(dms []float64, ref string) (float64, bool) {
	if len(dms) != 3 {
		return 0, false
	}
	for _, v := range dms {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return 0, false
		}
	}

	decimal := dms[0] + dms[1]/60 + dms[2]/3600
	switch strings.ToUpper(strings.TrimSpace(ref)) {
	case "S", "W":
		decimal = -decimal
	}
	return decimal, true
}

// PictureCoordinate resolves a picture's position from its EXIF GPS tags.
// Missing or malformed tags yield the sentinel.
func PictureCoordinate(tags Tags) Coordinate {
	if !tags.Has(KeyGPSLatitude, KeyGPSLatitudeRef, KeyGPSLongitude, KeyGPSLongitudeRef) {
		return Sentinel
	}

	latDMS, ok1 := tags.Floats(KeyGPSLatitude)
	latRef, ok2 := tags.String(KeyGPSLatitudeRef)
	lonDMS, ok3 := tags.Floats(KeyGPSLongitude)
	lonRef, ok4 := tags.String(KeyGPSLongitudeRef)
	if !ok1 || !ok2 || !ok3 || !ok4 {
		return Sentinel
	}

	lat, ok := DMSToDecimal(latDMS, latRef)
	if !ok {
		return Sentinel
	}
	lon, ok := DMSToDecimal(lonDMS, lonRef)
	if !ok {
		return Sentinel
	}

	return Coordinate{Lat: lat, Lon: lon}.valid()
}

// ClipLocation returns the raw location string of a clip, preferring the
// Samsung-style "location" tag over the QuickTime ISO6709 tag
func ClipLocation(tags Tags) string {
	for _, key := range []string{KeyClipLocation, KeyQuickTimeLocation} {
		if s, ok := tags.String(key); ok && s != "" {
			return s
		}
	}
	return LocationPlaceholder
}

// ParsePackedLocation parses a fixed-width ISO-6709-like string: characters
// [0:8] hold the signed latitude and [8:17] the signed longitude
func ParsePackedLocation(raw string) Coordinate {
	if strings.HasPrefix(raw, LocationPlaceholder) || len(raw) < 17 {
		return Sentinel
	}

	lat, err := strconv.ParseFloat(raw[0:8], 64)
	if err != nil {
		return Sentinel
	}
	lon, err := strconv.ParseFloat(raw[8:17], 64)
	if err != nil {
		return Sentinel
	}

	return Coordinate{Lat: lat, Lon: lon}.valid()
}

// ClipCoordinate resolves a clip's position and returns it with the raw location string
func ClipCoordinate(tags Tags) (Coordinate, string) {
	raw := ClipLocation(tags)
	return ParsePackedLocation(raw), raw
}
