package spatial

import (
	"math"
	"testing"

	"github.com/jengzang/media-geotag-mapper/internal/models"
)

func sequence(points ...[2]float64) models.OrderedRecords {
	records := make([]models.MediaRecord, len(points))
	for i, p := range points {
		records[i] = models.MediaRecord{Path: string(rune('a' + i)), Latitude: p[0], Longitude: p[1]}
	}
	return models.OrderedRecords{Key: models.SortByCapture, Records: records}
}

func TestMapLongitude(t *testing.T) {
	if got := MapLongitude(170, 80); got != -190 {
		t.Fatalf("expected -190, got %v", got)
	}
	if got := MapLongitude(80, 80); got != 80 {
		t.Fatalf("expected cutoff itself to stay, got %v", got)
	}
	if got := MapLongitude(-170, 80); got != -170 {
		t.Fatalf("expected -170, got %v", got)
	}
}

func TestBuildPathsWraparound(t *testing.T) {
	segments := BuildPaths(sequence([2]float64{60, 170}, [2]float64{60, -170}), DefaultPathOptions())
	if len(segments) != 1 {
		t.Fatalf("expected 1 segment, got %d", len(segments))
	}
	points := segments[0].Points
	if len(points) != DefaultInterpolationPoints {
		t.Fatalf("expected %d points, got %d", DefaultInterpolationPoints, len(points))
	}
	for _, p := range points {
		if p.Lon < -190-1e-6 || p.Lon > -170+1e-6 {
			t.Fatalf("expected short arc near the antimeridian, got lon %f", p.Lon)
		}
	}
	if segments[0].LengthMeters != PathLength(points) || segments[0].LengthMeters <= 0 {
		t.Fatalf("expected segment length to follow its points, got %f", segments[0].LengthMeters)
	}
	if points[0].Lon != -190 || points[len(points)-1].Lon != -170 {
		t.Fatalf("unexpected endpoints %+v %+v", points[0], points[len(points)-1])
	}
}

func TestBuildPathsSkipsIdenticalPairs(t *testing.T) {
	segments := BuildPaths(sequence(
		[2]float64{40, -75},
		[2]float64{40, -75},
		[2]float64{41, -73},
	), DefaultPathOptions())
	if len(segments) != 1 {
		t.Fatalf("expected 1 segment, got %d", len(segments))
	}
	if segments[0].FromPath != "b" || segments[0].ToPath != "c" {
		t.Fatalf("expected segment b->c, got %s->%s", segments[0].FromPath, segments[0].ToPath)
	}
}

func TestBuildPathsPointCountClamp(t *testing.T) {
	segments := BuildPaths(sequence([2]float64{0, 1}, [2]float64{0, 2}), PathOptions{LongitudeCutoff: 80, Points: 0})
	if len(segments[0].Points) != 2 {
		t.Fatalf("expected clamp to 2 points, got %d", len(segments[0].Points))
	}
}

func TestHaversineDistanceZero(t *testing.T) {
	if d := HaversineDistance(40, -75, 40, -75); d != 0 {
		t.Fatalf("expected 0, got %f", d)
	}
}

func TestPathLength(t *testing.T) {
	points := []models.GeoPoint{{Lat: 0, Lon: 0}, {Lat: 0, Lon: 1}, {Lat: 0, Lon: 2}}
	want := 2 * HaversineDistance(0, 0, 0, 1)
	if got := PathLength(points); math.Abs(got-want) > 1e-6 {
		t.Fatalf("expected %f, got %f", want, got)
	}
}

func TestBoundingBox(t *testing.T) {
	b := BoundingBox([]models.GeoPoint{{Lat: 1, Lon: 5}, {Lat: -2, Lon: 7}, {Lat: 3, Lon: -1}})
	if b.South != -2 || b.North != 3 || b.West != -1 || b.East != 7 {
		t.Fatalf("unexpected bounds %+v", b)
	}
}
