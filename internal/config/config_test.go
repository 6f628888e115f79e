package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("GEOTAG_CONFIG", "")
	t.Setenv("PORT", "")
	t.Setenv("DISTANCE_UNIT", "")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Port != ":8080" {
		t.Fatalf("expected default port, got %q", cfg.Port)
	}
	if cfg.LongitudeCutoff != 80 || cfg.InterpolationPoints != 20 {
		t.Fatalf("unexpected path defaults %v %v", cfg.LongitudeCutoff, cfg.InterpolationPoints)
	}
	if cfg.DistanceUnit != "miles" || cfg.SortBy != "capture" {
		t.Fatalf("unexpected defaults %q %q", cfg.DistanceUnit, cfg.SortBy)
	}
	if cfg.Map.StartLat != 39 || cfg.Map.StartLon != -95 || cfg.Map.Zoom != 4 {
		t.Fatalf("unexpected map defaults %+v", cfg.Map)
	}
	if cfg.FlipRect != nil {
		t.Fatalf("expected no default flip rectangle")
	}
}

func TestEnvOverridesYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "geotag.yaml")
	content := `port: ":9000"
distance_unit: kilometers
longitude_cutoff: 100
media_folders:
  - /photos
map:
  zoom: 6
flip_rect:
  south: 20
  north: 40
  west: 100
  east: 130
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}

	t.Setenv("GEOTAG_CONFIG", path)
	t.Setenv("PORT", ":7000")
	t.Setenv("MEDIA_FOLDERS", "/a, /b")
	t.Setenv("DISTANCE_UNIT", "")
	t.Setenv("INTERPOLATION_POINTS", "1")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Port != ":7000" {
		t.Fatalf("expected env port, got %q", cfg.Port)
	}
	if cfg.DistanceUnit != "kilometers" || cfg.LongitudeCutoff != 100 || cfg.Map.Zoom != 6 {
		t.Fatalf("expected yaml values, got %+v", cfg)
	}
	if cfg.Map.StartLat != 39 {
		t.Fatalf("expected unset yaml map keys to keep defaults, got %v", cfg.Map.StartLat)
	}
	if len(cfg.MediaFolders) != 2 || cfg.MediaFolders[1] != "/b" {
		t.Fatalf("expected env folders, got %v", cfg.MediaFolders)
	}
	if cfg.InterpolationPoints != 2 {
		t.Fatalf("expected interpolation points clamped to 2, got %d", cfg.InterpolationPoints)
	}
	if cfg.FlipRect == nil || cfg.FlipRect.East != 130 {
		t.Fatalf("expected flip rectangle from yaml, got %+v", cfg.FlipRect)
	}
}

func TestLoadMissingFile(t *testing.T) {
	t.Setenv("GEOTAG_CONFIG", filepath.Join(t.TempDir(), "missing.yaml"))
	if _, err := Load(); err == nil {
		t.Fatalf("expected error for a missing config file")
	}
}
