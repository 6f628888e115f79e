// Package media classifies media files, walks folders for them and builds
// located-media records from their metadata.
package media

import (
	"strings"
	"time"

	"github.com/jengzang/media-geotag-mapper/internal/models"
)

var clipExtensions = map[string]bool{"mp4": true, "mov": true, "mts": true}

var pictureExtensions = map[string]bool{"jpg": true, "jpeg": true, "tiff": true, "png": true, "heic": true}

// Extension returns the lowercased segment after the last dot of a file name.
// A name without a dot is returned whole.
func Extension(name string) string {
	if i := strings.LastIndex(name, "."); i >= 0 {
		return strings.ToLower(name[i+1:])
	}
	return strings.ToLower(name)
}

// Classify maps a file name to its media type
func Classify(name string) models.MediaType {
	ext := Extension(name)
	switch {
	case clipExtensions[ext]:
		return models.MediaTypeClip
	case pictureExtensions[ext]:
		return models.MediaTypePicture
	default:
		return models.MediaTypeOther
	}
}

// Item is one classified file found by a folder walk
type Item struct {
	Path       string
	Name       string
	Extension  string
	Type       models.MediaType
	SizeBytes  int64
	ModifiedAt time.Time
}
