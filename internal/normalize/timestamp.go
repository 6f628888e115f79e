package normalize

import (
	"fmt"
	"math"
	"strings"
	"time"
)

// Tag keys read by the timestamp normalizer
const (
	KeyDateTimeOriginal   = "EXIF DateTimeOriginal"
	KeyOffsetTimeOriginal = "EXIF OffsetTimeOriginal"
	KeyGPSDate            = "GPS GPSDate"
	KeyGPSTimeStamp       = "GPS GPSTimeStamp"

	KeyCreationTime      = "creation_time"
	KeyQuickTimeCreation = "com.apple.quicktime.creationdate"
)

var offsetLayouts = []string{
	"2006-01-02 15:04:05Z07:00",
	"2006-01-02 15:04:05Z0700",
	"2006-01-02T15:04:05Z07:00",
	"2006-01-02T15:04:05Z0700",
}

var utcLayouts = []string{
	"2006-01-02 15:04:05",
	"2006-01-02T15:04:05",
}

// PictureTimeRules are tried in order for pictures
var PictureTimeRules = []Rule[time.Time]{
	{Name: "exif-offset", Keys: []string{KeyDateTimeOriginal, KeyOffsetTimeOriginal}, Extract: exifWithOffset},
	{Name: "gps", Keys: []string{KeyGPSDate, KeyGPSTimeStamp}, Extract: gpsDateTime},
}

// ClipTimeRules are tried in order for clips
var ClipTimeRules = []Rule[time.Time]{
	{Name: "creation_time", Keys: []string{KeyCreationTime}, Extract: creationTime},
	{Name: "quicktime-creationdate", Keys: []string{KeyQuickTimeCreation}, Extract: quickTimeCreationDate},
}

// PictureInstant resolves the capture instant of a picture in UTC
func PictureInstant(tags Tags) (time.Time, bool) {
	t, _, ok := Resolve(tags, PictureTimeRules)
	return t, ok
}

// ClipInstant resolves the capture instant of a clip in UTC
func ClipInstant(tags Tags) (time.Time, bool) {
	t, _, ok := Resolve(tags, ClipTimeRules)
	return t, ok
}

// HyphenateExifDate replaces the first two colons of an EXIF date with hyphens,
// leaving the time portion untouched ("2023:05:10 14:22:01" -> "2023-05-10 14:22:01")
func HyphenateExifDate(s string) string {
	return strings.Replace(strings.TrimSpace(s), ":", "-", 2)
}

func exifWithOffset(tags Tags) (time.Time, bool) {
	dt, ok := tags.String(KeyDateTimeOriginal)
	if !ok {
		return time.Time{}, false
	}
	offset, ok := tags.String(KeyOffsetTimeOriginal)
	if !ok || offset == "" {
		return time.Time{}, false
	}
	return parseAny(HyphenateExifDate(dt)+offset, offsetLayouts, nil)
}

func gpsDateTime(tags Tags) (time.Time, bool) {
	date, ok := tags.String(KeyGPSDate)
	if !ok || date == "" {
		return time.Time{}, false
	}
	hms, ok := tags.Floats(KeyGPSTimeStamp)
	if !ok || len(hms) != 3 {
		return time.Time{}, false
	}
	for _, v := range hms {
		if math.IsNaN(v) || v < 0 || v >= 100 {
			return time.Time{}, false
		}
	}

	composed := fmt.Sprintf("%s %02d:%02d:%02d", HyphenateExifDate(date), int(hms[0]), int(hms[1]), int(hms[2]))
	return parseAny(composed, utcLayouts, time.UTC)
}

func creationTime(tags Tags) (time.Time, bool) {
	s, ok := tags.String(KeyCreationTime)
	if !ok {
		return time.Time{}, false
	}
	if t, ok := parseAny(s, []string{time.RFC3339Nano}, nil); ok {
		return t, true
	}
	return parseAny(s, utcLayouts, time.UTC)
}

func quickTimeCreationDate(tags Tags) (time.Time, bool) {
	s, ok := tags.String(KeyQuickTimeCreation)
	if !ok {
		return time.Time{}, false
	}
	return parseAny(s, offsetLayouts, nil)
}

// parseAny tries each layout and returns the first match in UTC.
// A nil location means the layout carries its own offset.
func parseAny(s string, layouts []string, loc *time.Location) (time.Time, bool) {
	for _, layout := range layouts {
		var (
			t   time.Time
			err error
		)
		if loc != nil {
			t, err = time.ParseInLocation(layout, s, loc)
		} else {
			t, err = time.Parse(layout, s)
		}
		if err == nil {
			return t.UTC(), true
		}
	}
	return time.Time{}, false
}
