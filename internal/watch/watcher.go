// Package watch imports media files as they appear in the watched folders.
package watch

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/fsnotify/fsnotify"
	"github.com/rs/zerolog/log"

	"github.com/jengzang/media-geotag-mapper/internal/media"
	"github.com/jengzang/media-geotag-mapper/internal/models"
)

// Store persists one record
type Store interface {
	Upsert(ctx context.Context, rec models.MediaRecord) error
}

// Watcher monitors folders and upserts a record for every new picture or clip
type Watcher struct {
	folders []string
	builder *media.Builder
	store   Store

	// Imported, when set, is called after each stored record
	Imported func(rec models.MediaRecord)
}

// New creates a watcher over folders and their subfolders
func New(folders []string, builder *media.Builder, store Store) *Watcher {
	return &Watcher{folders: folders, builder: builder, store: store}
}

// Run watches until ctx is done
func (w *Watcher) Run(ctx context.Context) error {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create watcher: %w", err)
	}
	defer fw.Close()

	for _, folder := range w.folders {
		if err := addTree(fw, folder); err != nil {
			return err
		}
	}
	log.Info().Strs("folders", w.folders).Msg("Watching for new media")

	for {
		select {
		case <-ctx.Done():
			return nil
		case evt, ok := <-fw.Events:
			if !ok {
				return nil
			}
			if evt.Op&(fsnotify.Create|fsnotify.Rename) == 0 {
				continue
			}
			if info, err := os.Stat(evt.Name); err == nil && info.IsDir() {
				if err := addTree(fw, evt.Name); err != nil {
					log.Warn().Err(err).Str("folder", evt.Name).Msg("Failed to watch new folder")
				}
				continue
			}
			if err := w.Handle(ctx, evt.Name); err != nil {
				log.Warn().Err(err).Str("path", evt.Name).Msg("Failed to import file")
			}
		case err, ok := <-fw.Errors:
			if !ok {
				return nil
			}
			log.Warn().Err(err).Msg("Watcher error")
		}
	}
}

// Handle imports a single file. Non-media and vanished files are ignored.
func (w *Watcher) Handle(ctx context.Context, path string) error {
	item, err := media.Stat(path)
	if err != nil {
		log.Debug().Err(err).Str("path", path).Msg("Skipping vanished file")
		return nil
	}

	rec, ok := w.builder.BuildOne(ctx, item)
	if !ok {
		return nil
	}
	if err := w.store.Upsert(ctx, rec); err != nil {
		return fmt.Errorf("failed to store %s: %w", path, err)
	}

	log.Info().Str("path", path).Bool("located", rec.HasGeotag()).Msg("Imported media file")
	if w.Imported != nil {
		w.Imported(rec)
	}
	return nil
}

func addTree(fw *fsnotify.Watcher, root string) error {
	return filepath.WalkDir(root, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			if err := fw.Add(path); err != nil {
				return fmt.Errorf("failed to watch %s: %w", path, err)
			}
		}
		return nil
	})
}
