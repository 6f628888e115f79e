package imaging

import (
	"image"
	"image/color"
	"image/jpeg"
	"image/png"
	"os"
	"path/filepath"
	"testing"
)

func writePNG(t *testing.T, path string, w, h int) {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for x := 0; x < w; x++ {
		for y := 0; y < h; y++ {
			img.Set(x, y, color.RGBA{R: uint8(x), G: uint8(y), B: 128, A: 255})
		}
	}
	f, err := os.Create(path)
	if err != nil {
		t.Fatalf("failed to create png: %v", err)
	}
	defer f.Close()
	if err := png.Encode(f, img); err != nil {
		t.Fatalf("failed to encode png: %v", err)
	}
}

func TestShrinkPNG(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "map.png")
	writePNG(t, src, 200, 100)

	dst, err := ShrinkPNG(src, filepath.Join(dir, "out"), Options{Factor: 2, Caption: "2023"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if filepath.Base(dst) != "map.jpg" {
		t.Fatalf("expected map.jpg, got %s", dst)
	}

	f, err := os.Open(dst)
	if err != nil {
		t.Fatalf("failed to open output: %v", err)
	}
	defer f.Close()
	cfg, err := jpeg.DecodeConfig(f)
	if err != nil {
		t.Fatalf("expected a jpeg: %v", err)
	}
	if cfg.Width != 100 || cfg.Height != 50 {
		t.Fatalf("expected 100x50, got %dx%d", cfg.Width, cfg.Height)
	}
}

func TestShrinkAll(t *testing.T) {
	dir := t.TempDir()
	writePNG(t, filepath.Join(dir, "a.png"), 10, 10)
	writePNG(t, filepath.Join(dir, "b.PNG"), 10, 10)
	if err := os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("x"), 0o644); err != nil {
		t.Fatalf("failed to write: %v", err)
	}

	written, err := ShrinkAll(dir, filepath.Join(dir, "out"), Options{Factor: 1})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(written) != 2 {
		t.Fatalf("expected 2 files, got %v", written)
	}
}

func TestJPEGName(t *testing.T) {
	if got := JPEGName("/x/pngmap.png"); got != "pngmap.jpg" {
		t.Fatalf("expected pngmap.jpg, got %s", got)
	}
}

func TestOptionsNormalized(t *testing.T) {
	o := Options{Factor: 0, Quality: 0}.normalized()
	if o.Factor != 1 || o.Quality != DefaultQuality {
		t.Fatalf("unexpected defaults %+v", o)
	}
}
