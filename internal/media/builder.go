package media

import (
	"context"

	"github.com/rs/zerolog/log"

	"github.com/jengzang/media-geotag-mapper/internal/models"
	"github.com/jengzang/media-geotag-mapper/internal/normalize"
	"github.com/jengzang/media-geotag-mapper/internal/probe"
)

// Builder turns classified items into located-media records
type Builder struct {
	pictures probe.Reader
	clips    probe.Reader

	// Progress, when set, is called after each item is processed
	Progress func(item Item)
}

// NewBuilder creates a builder using the given picture and clip metadata readers
func NewBuilder(pictures, clips probe.Reader) *Builder {
	return &Builder{pictures: pictures, clips: clips}
}

// BuildResult holds the records of a batch and its outcome counts
type BuildResult struct {
	Records  []models.MediaRecord
	Pictures int
	Clips    int
	Located  int
	Skipped  int
}

// Total is the number of items the batch was given
func (r BuildResult) Total() int {
	return r.Pictures + r.Clips + r.Skipped
}

// Build processes pictures then clips, each in input order, and concatenates the
// records. Items of other types produce no record. On cancellation the records
// built so far are returned together with the context error.
func (b *Builder) Build(ctx context.Context, items []Item) (BuildResult, error) {
	var pictures, clips []Item
	result := BuildResult{}

	for _, item := range items {
		switch item.Type {
		case models.MediaTypePicture:
			pictures = append(pictures, item)
		case models.MediaTypeClip:
			clips = append(clips, item)
		default:
			result.Skipped++
		}
	}

	result.Records = make([]models.MediaRecord, 0, len(pictures)+len(clips))
	for _, batch := range [][]Item{pictures, clips} {
		for _, item := range batch {
			if err := ctx.Err(); err != nil {
				return result, err
			}

			record, _ := b.BuildOne(ctx, item)
			result.Records = append(result.Records, record)
			if item.Type == models.MediaTypePicture {
				result.Pictures++
			} else {
				result.Clips++
			}
			if record.HasGeotag() {
				result.Located++
			}
			if b.Progress != nil {
				b.Progress(item)
			}
		}
	}

	return result, nil
}

// BuildOne builds the record of a single item. It reports false for items that
// are neither pictures nor clips.
func (b *Builder) BuildOne(ctx context.Context, item Item) (models.MediaRecord, bool) {
	record := models.MediaRecord{
		Path:       item.Path,
		Name:       item.Name,
		Extension:  item.Extension,
		MediaType:  item.Type,
		SizeBytes:  item.SizeBytes,
		ModifiedAt: item.ModifiedAt,
	}

	switch item.Type {
	case models.MediaTypePicture:
		tags := b.readTags(ctx, b.pictures, item)
		coord := normalize.PictureCoordinate(tags)
		record.Latitude, record.Longitude = coord.Lat, coord.Lon
		if t, ok := normalize.PictureInstant(tags); ok {
			record.CaptureInstant = &t
		}
	case models.MediaTypeClip:
		tags := b.readTags(ctx, b.clips, item)
		coord, raw := normalize.ClipCoordinate(tags)
		record.Latitude, record.Longitude = coord.Lat, coord.Lon
		record.RawLocation = raw
		if t, ok := normalize.ClipInstant(tags); ok {
			record.CaptureInstant = &t
		}
	default:
		return record, false
	}

	return record, true
}

// readTags absorbs provider failures into an empty tag set
func (b *Builder) readTags(ctx context.Context, r probe.Reader, item Item) normalize.Tags {
	if r == nil {
		return normalize.Tags{}
	}
	tags, err := r.ReadTags(ctx, item.Path)
	if err != nil {
		log.Debug().Err(err).Str("path", item.Path).Str("type", string(item.Type)).Msg("Metadata unavailable")
		return normalize.Tags{}
	}
	return tags
}
