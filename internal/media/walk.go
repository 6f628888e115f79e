package media

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/maruel/natural"
	"github.com/rs/zerolog/log"
)

// Walk collects every file below the given folders. Files in each directory are
// taken in natural name order; filesPerFolder > 0 keeps only the first N files
// of each directory.
func Walk(ctx context.Context, folders []string, filesPerFolder int) ([]Item, error) {
	var items []Item
	for _, folder := range folders {
		found, err := walkDir(ctx, folder, filesPerFolder)
		items = append(items, found...)
		if err != nil {
			return items, err
		}
	}
	return items, nil
}

func walkDir(ctx context.Context, dir string, filesPerFolder int) ([]Item, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read folder %s: %w", dir, err)
	}

	var files, subdirs []os.DirEntry
	for _, e := range entries {
		if e.IsDir() {
			subdirs = append(subdirs, e)
		} else if e.Type().IsRegular() {
			files = append(files, e)
		}
	}
	sort.Slice(files, func(i, j int) bool { return natural.Less(files[i].Name(), files[j].Name()) })
	sort.Slice(subdirs, func(i, j int) bool { return natural.Less(subdirs[i].Name(), subdirs[j].Name()) })

	if filesPerFolder > 0 && len(files) > filesPerFolder {
		files = files[:filesPerFolder]
	}

	items := make([]Item, 0, len(files))
	for _, f := range files {
		info, err := f.Info()
		if err != nil {
			log.Debug().Err(err).Str("file", f.Name()).Msg("Skipping unreadable file")
			continue
		}
		items = append(items, NewItem(filepath.Join(dir, f.Name()), info))
	}

	for _, sub := range subdirs {
		found, err := walkDir(ctx, filepath.Join(dir, sub.Name()), filesPerFolder)
		items = append(items, found...)
		if err != nil {
			return items, err
		}
	}

	return items, nil
}

// NewItem classifies a single file from its path and stat result
func NewItem(path string, info os.FileInfo) Item {
	name := filepath.Base(path)
	return Item{
		Path:       path,
		Name:       name,
		Extension:  Extension(name),
		Type:       Classify(name),
		SizeBytes:  info.Size(),
		ModifiedAt: info.ModTime().UTC(),
	}
}

// Stat builds an Item for one path
func Stat(path string) (Item, error) {
	info, err := os.Stat(path)
	if err != nil {
		return Item{}, fmt.Errorf("failed to stat %s: %w", path, err)
	}
	if info.IsDir() {
		return Item{}, fmt.Errorf("%s is a directory", path)
	}
	return NewItem(path, info), nil
}
