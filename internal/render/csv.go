package render

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/jengzang/media-geotag-mapper/internal/models"
)

// CSVHeader is the column order of the record table export
var CSVHeader = []string{
	"path", "name", "extension", "mediaType", "sizeBytes", "modifiedAt",
	"latitude", "longitude", "captureInstant", "rawLocation",
}

// WriteCSV writes the record table
func WriteCSV(w io.Writer, records []models.MediaRecord) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(CSVHeader); err != nil {
		return fmt.Errorf("failed to write csv header: %w", err)
	}

	for _, r := range records {
		row := []string{
			r.Path,
			r.Name,
			r.Extension,
			string(r.MediaType),
			strconv.FormatInt(r.SizeBytes, 10),
			r.ModifiedAt.UTC().Format(time.RFC3339),
			formatCoord(r.Latitude),
			formatCoord(r.Longitude),
			formatInstant(r.CaptureInstant),
			r.RawLocation,
		}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("failed to write csv row: %w", err)
		}
	}

	cw.Flush()
	return cw.Error()
}
