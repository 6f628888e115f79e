package media

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/jengzang/media-geotag-mapper/internal/models"
	"github.com/jengzang/media-geotag-mapper/internal/normalize"
	"github.com/jengzang/media-geotag-mapper/internal/probe"
)

func TestClassify(t *testing.T) {
	cases := map[string]models.MediaType{
		"IMG_0001.JPG":   models.MediaTypePicture,
		"scan.tiff":      models.MediaTypePicture,
		"photo.HEIC":     models.MediaTypePicture,
		"clip.mov":       models.MediaTypeClip,
		"a.b.MTS":        models.MediaTypeClip,
		"notes.txt":      models.MediaTypeOther,
		"README":         models.MediaTypeOther,
		"archive.mp4.7z": models.MediaTypeOther,
	}
	for name, want := range cases {
		if got := Classify(name); got != want {
			t.Fatalf("expected %q for %s, got %q", want, name, got)
		}
	}
}

func writeFiles(t *testing.T, dir string, names ...string) {
	t.Helper()
	for _, name := range names {
		path := filepath.Join(dir, name)
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			t.Fatalf("failed to create dir: %v", err)
		}
		if err := os.WriteFile(path, []byte("x"), 0o644); err != nil {
			t.Fatalf("failed to write %s: %v", name, err)
		}
	}
}

func TestWalkNaturalOrderAndLimit(t *testing.T) {
	dir := t.TempDir()
	writeFiles(t, dir, "img10.jpg", "img2.jpg", "img1.jpg", "sub/clip1.mp4", "sub/clip2.mp4")

	items, err := Walk(context.Background(), []string{dir}, 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	var names []string
	for _, it := range items {
		names = append(names, it.Name)
	}
	want := []string{"img1.jpg", "img2.jpg", "img10.jpg", "clip1.mp4", "clip2.mp4"}
	if len(names) != len(want) {
		t.Fatalf("expected %v, got %v", want, names)
	}
	for i := range want {
		if names[i] != want[i] {
			t.Fatalf("expected %v, got %v", want, names)
		}
	}

	limited, err := Walk(context.Background(), []string{dir}, 1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(limited) != 2 || limited[0].Name != "img1.jpg" || limited[1].Name != "clip1.mp4" {
		t.Fatalf("expected one file per folder, got %+v", limited)
	}
}

func TestWalkMissingFolder(t *testing.T) {
	if _, err := Walk(context.Background(), []string{filepath.Join(t.TempDir(), "missing")}, 0); err == nil {
		t.Fatalf("expected error for missing folder")
	}
}

func fakeReader(tags map[string]normalize.Tags) probe.Reader {
	return probe.ReaderFunc(func(_ context.Context, path string) (normalize.Tags, error) {
		if t, ok := tags[path]; ok {
			return t, nil
		}
		return nil, errors.New("unreadable")
	})
}

func TestBuildOrdersPicturesBeforeClips(t *testing.T) {
	pictures := fakeReader(map[string]normalize.Tags{
		"p1.jpg": {
			normalize.KeyGPSLatitude:        []float64{40, 30, 0},
			normalize.KeyGPSLatitudeRef:     "N",
			normalize.KeyGPSLongitude:       []float64{74, 0, 0},
			normalize.KeyGPSLongitudeRef:    "W",
			normalize.KeyDateTimeOriginal:   "2023:05:10 14:22:01",
			normalize.KeyOffsetTimeOriginal: "+00:00",
		},
	})
	clips := fakeReader(map[string]normalize.Tags{
		"c1.mp4": {normalize.KeyClipLocation: "+40.7128-074.0060/", normalize.KeyCreationTime: "2019-06-01T14:15:30Z"},
	})

	items := []Item{
		{Path: "c1.mp4", Type: models.MediaTypeClip},
		{Path: "notes.txt", Type: models.MediaTypeOther},
		{Path: "p1.jpg", Type: models.MediaTypePicture},
		{Path: "c2.mov", Type: models.MediaTypeClip},
		{Path: "p2.jpg", Type: models.MediaTypePicture},
	}

	var progressed int
	b := NewBuilder(pictures, clips)
	b.Progress = func(Item) { progressed++ }

	result, err := b.Build(context.Background(), items)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	order := []string{"p1.jpg", "p2.jpg", "c1.mp4", "c2.mov"}
	if len(result.Records) != len(order) {
		t.Fatalf("expected %d records, got %d", len(order), len(result.Records))
	}
	for i, p := range order {
		if result.Records[i].Path != p {
			t.Fatalf("expected record %d to be %s, got %s", i, p, result.Records[i].Path)
		}
	}
	if result.Skipped != 1 || result.Located != 2 || result.Pictures != 2 || result.Clips != 2 {
		t.Fatalf("unexpected counts %+v", result)
	}
	if result.Total() != 5 || progressed != 4 {
		t.Fatalf("expected total 5 and 4 progress calls, got %d and %d", result.Total(), progressed)
	}

	p1 := result.Records[0]
	if p1.Latitude != 40.5 || p1.Longitude != -74 || p1.CaptureInstant == nil {
		t.Fatalf("unexpected picture record %+v", p1)
	}
	if p1.RawLocation != "" {
		t.Fatalf("expected no raw location for pictures, got %q", p1.RawLocation)
	}

	c2 := result.Records[3]
	if c2.HasGeotag() || c2.CaptureInstant != nil || c2.RawLocation != normalize.LocationPlaceholder {
		t.Fatalf("expected unreadable clip to get sentinel and placeholder, got %+v", c2)
	}
}

func TestBuildStopsOnCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	b := NewBuilder(fakeReader(nil), fakeReader(nil))
	b.Progress = func(Item) { cancel() }

	result, err := b.Build(ctx, []Item{
		{Path: "a.jpg", Type: models.MediaTypePicture},
		{Path: "b.jpg", Type: models.MediaTypePicture},
	})
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
	if len(result.Records) != 1 {
		t.Fatalf("expected the first record to survive, got %d", len(result.Records))
	}
}

func TestBuildOneOther(t *testing.T) {
	if _, ok := NewBuilder(nil, nil).BuildOne(context.Background(), Item{Path: "x.txt", Type: models.MediaTypeOther}); ok {
		t.Fatalf("expected other items to produce no record")
	}
}
