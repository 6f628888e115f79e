package watch

import (
	"context"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/jengzang/media-geotag-mapper/internal/media"
	"github.com/jengzang/media-geotag-mapper/internal/models"
	"github.com/jengzang/media-geotag-mapper/internal/normalize"
	"github.com/jengzang/media-geotag-mapper/internal/probe"
)

type memStore struct {
	mu      sync.Mutex
	records map[string]models.MediaRecord
}

func (s *memStore) Upsert(_ context.Context, rec models.MediaRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.records[rec.Path] = rec
	return nil
}

func (s *memStore) get(path string) (models.MediaRecord, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	rec, ok := s.records[path]
	return rec, ok
}

func newWatcher(dir string) (*Watcher, *memStore) {
	clips := probe.ReaderFunc(func(context.Context, string) (normalize.Tags, error) {
		return normalize.Tags{normalize.KeyClipLocation: "+40.7128-074.0060/"}, nil
	})
	store := &memStore{records: make(map[string]models.MediaRecord)}
	return New([]string{dir}, media.NewBuilder(nil, clips), store), store
}

func TestHandle(t *testing.T) {
	dir := t.TempDir()
	w, store := newWatcher(dir)

	clip := filepath.Join(dir, "trip.mp4")
	notes := filepath.Join(dir, "notes.txt")
	for _, p := range []string{clip, notes} {
		if err := os.WriteFile(p, []byte("x"), 0o644); err != nil {
			t.Fatalf("failed to write %s: %v", p, err)
		}
	}

	for _, p := range []string{clip, notes, filepath.Join(dir, "gone.jpg")} {
		if err := w.Handle(context.Background(), p); err != nil {
			t.Fatalf("unexpected error for %s: %v", p, err)
		}
	}

	rec, ok := store.get(clip)
	if !ok || rec.Latitude != 40.7128 || rec.Longitude != -74.006 {
		t.Fatalf("expected located clip record, got %+v", rec)
	}
	if _, ok := store.get(notes); ok {
		t.Fatalf("expected non-media file to be ignored")
	}
}

func TestRunImportsNewFiles(t *testing.T) {
	dir := t.TempDir()
	w, store := newWatcher(dir)

	imported := make(chan string, 1)
	w.Imported = func(rec models.MediaRecord) {
		select {
		case imported <- rec.Path:
		default:
		}
	}

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- w.Run(ctx) }()
	defer func() {
		cancel()
		<-done
	}()

	path := filepath.Join(dir, "new.mov")
	deadline := time.After(5 * time.Second)
	tick := time.NewTicker(100 * time.Millisecond)
	defer tick.Stop()

	// The watch is registered asynchronously, so the file is rewritten until an event lands.
	for {
		select {
		case got := <-imported:
			if got != path {
				t.Fatalf("expected %s, got %s", path, got)
			}
			if _, ok := store.get(path); !ok {
				t.Fatalf("expected stored record")
			}
			return
		case <-tick.C:
			_ = os.Remove(path)
			if err := os.WriteFile(path, []byte("x"), 0o644); err != nil {
				t.Fatalf("failed to write file: %v", err)
			}
		case <-deadline:
			t.Fatalf("timed out waiting for import")
		}
	}
}
