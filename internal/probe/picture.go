package probe

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"

	"github.com/rwcarlsen/goexif/exif"
	"github.com/rwcarlsen/goexif/mknote"
	"github.com/rwcarlsen/goexif/tiff"

	"github.com/jengzang/media-geotag-mapper/internal/normalize"
)

// tagOffsetTimeOriginal is the EXIF 2.31 offset of DateTimeOriginal; goexif has no field name for it
const tagOffsetTimeOriginal = 0x9011

func init() {
	exif.RegisterParsers(mknote.All...)
}

// PictureReader reads EXIF tags from still images
type PictureReader struct{}

// NewPictureReader creates a new EXIF reader
func NewPictureReader() *PictureReader {
	return &PictureReader{}
}

// ReadTags decodes the EXIF block of path and returns the GPS and capture-time tags
func (r *PictureReader) ReadTags(ctx context.Context, path string) (normalize.Tags, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open picture: %w", err)
	}
	defer f.Close()

	x, err := exif.Decode(f)
	if err != nil && (x == nil || exif.IsCriticalError(err)) {
		return nil, fmt.Errorf("%w: %v", ErrNoMetadata, err)
	}

	return ExifTags(x), nil
}

// ExifTags maps a decoded EXIF block onto normalizer keys
func ExifTags(x *exif.Exif) normalize.Tags {
	tags := normalize.Tags{}

	rationals := map[exif.FieldName]string{
		exif.GPSLatitude:  normalize.KeyGPSLatitude,
		exif.GPSLongitude: normalize.KeyGPSLongitude,
		exif.GPSTimeStamp: normalize.KeyGPSTimeStamp,
	}
	for field, key := range rationals {
		if vals, ok := rationalTriple(x, field); ok {
			tags[key] = vals
		}
	}

	strs := map[exif.FieldName]string{
		exif.GPSLatitudeRef:   normalize.KeyGPSLatitudeRef,
		exif.GPSLongitudeRef:  normalize.KeyGPSLongitudeRef,
		exif.GPSDateStamp:     normalize.KeyGPSDate,
		exif.DateTimeOriginal: normalize.KeyDateTimeOriginal,
	}
	for field, key := range strs {
		if s, ok := stringTag(x, field); ok {
			tags[key] = s
		}
	}

	if offset, ok := offsetTimeOriginal(x); ok {
		tags[normalize.KeyOffsetTimeOriginal] = offset
	}

	return tags
}

func rationalTriple(x *exif.Exif, field exif.FieldName) ([]float64, bool) {
	tag, err := x.Get(field)
	if err != nil || tag.Count < 3 {
		return nil, false
	}

	vals := make([]float64, 3)
	for i := range vals {
		num, den, err := tag.Rat2(i)
		if err != nil || den == 0 {
			return nil, false
		}
		vals[i] = float64(num) / float64(den)
	}
	return vals, true
}

func stringTag(x *exif.Exif, field exif.FieldName) (string, bool) {
	tag, err := x.Get(field)
	if err != nil {
		return "", false
	}
	s, err := tag.StringVal()
	if err != nil || s == "" {
		return "", false
	}
	return s, true
}

// offsetTimeOriginal reads tag 0x9011 directly from the EXIF sub-IFD
func offsetTimeOriginal(x *exif.Exif) (string, bool) {
	ptr, err := x.Get(exif.ExifIFDPointer)
	if err != nil || x.Tiff == nil || len(x.Raw) == 0 {
		return "", false
	}
	offset, err := ptr.Int64(0)
	if err != nil || offset <= 0 || offset >= int64(len(x.Raw)) {
		return "", false
	}

	r := bytes.NewReader(x.Raw)
	if _, err := r.Seek(offset, io.SeekStart); err != nil {
		return "", false
	}
	dir, _, err := tiff.DecodeDir(r, x.Tiff.Order)
	if err != nil {
		return "", false
	}

	for _, tag := range dir.Tags {
		if tag.Id != tagOffsetTimeOriginal {
			continue
		}
		s, err := tag.StringVal()
		if err != nil || s == "" {
			return "", false
		}
		return s, true
	}
	return "", false
}
