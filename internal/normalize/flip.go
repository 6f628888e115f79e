package normalize

import "github.com/jengzang/media-geotag-mapper/internal/models"

// FlipLongitude inverts the longitude sign of every record strictly inside rect.
// It works around devices that mis-flag the hemisphere and must be invoked explicitly.
// Records already flipped are left alone. The input slice is not modified.
func FlipLongitude(records []models.MediaRecord, rect models.Rect) ([]models.MediaRecord, int) {
	out := make([]models.MediaRecord, len(records))
	flipped := 0

	for i, r := range records {
		if !r.LongitudeFlipped && r.HasGeotag() && rect.StrictlyContains(r.Latitude, r.Longitude) {
			out[i] = r.WithLongitude(-r.Longitude)
			flipped++
			continue
		}
		out[i] = r
	}

	return out, flipped
}
