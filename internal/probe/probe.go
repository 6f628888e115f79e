// Package probe reads embedded metadata from media files and exposes it as
// loosely typed tag mappings for the normalizers.
package probe

import (
	"context"
	"errors"

	"github.com/jengzang/media-geotag-mapper/internal/normalize"
)

// ErrNoMetadata is returned when a file carries no readable metadata block
var ErrNoMetadata = errors.New("no metadata found")

// Reader extracts the available metadata tags of one file
type Reader interface {
	ReadTags(ctx context.Context, path string) (normalize.Tags, error)
}

// ReaderFunc adapts a function to the Reader interface
type ReaderFunc func(ctx context.Context, path string) (normalize.Tags, error)

// ReadTags calls f(ctx, path)
func (f ReaderFunc) ReadTags(ctx context.Context, path string) (normalize.Tags, error) {
	return f(ctx, path)
}
