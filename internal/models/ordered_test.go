package models

import (
	"testing"
	"time"
)

func instant(s string) *time.Time {
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		panic(err)
	}
	return &t
}

func TestSortRecordsCaptureUnknownLast(t *testing.T) {
	records := []MediaRecord{
		{Path: "unknown"},
		{Path: "late", CaptureInstant: instant("2024-01-01T00:00:00Z")},
		{Path: "early", CaptureInstant: instant("2023-01-01T00:00:00Z")},
	}

	seq := SortRecords(records, SortByCapture)
	want := []string{"early", "late", "unknown"}
	for i, p := range want {
		if seq.Records[i].Path != p {
			t.Fatalf("expected %s at %d, got %s", p, i, seq.Records[i].Path)
		}
	}
	if records[0].Path != "unknown" {
		t.Fatalf("expected input order to be preserved")
	}
	if v := seq.CheckOrder(); len(v) != 0 {
		t.Fatalf("expected sorted sequence to pass, got %+v", v)
	}
}

func TestSortRecordsModified(t *testing.T) {
	records := []MediaRecord{
		{Path: "b", ModifiedAt: time.Date(2022, 2, 1, 0, 0, 0, 0, time.UTC), CaptureInstant: instant("2020-01-01T00:00:00Z")},
		{Path: "a", ModifiedAt: time.Date(2022, 1, 1, 0, 0, 0, 0, time.UTC), CaptureInstant: instant("2021-01-01T00:00:00Z")},
	}
	seq := SortRecords(records, ParseSortKey("modified"))
	if seq.Key != SortByModified || seq.Records[0].Path != "a" {
		t.Fatalf("expected modified ordering, got %+v", seq)
	}
}

func TestCheckOrder(t *testing.T) {
	seq := OrderedRecords{Key: SortByCapture, Records: []MediaRecord{
		{Path: "a", CaptureInstant: instant("2023-06-01T00:00:00Z")},
		{Path: "b"},
		{Path: "c", CaptureInstant: instant("2023-01-01T00:00:00Z")},
	}}
	v := seq.CheckOrder()
	if len(v) != 1 || v[0].Index != 2 || v[0].Path != "c" {
		t.Fatalf("expected one violation at index 2, got %+v", v)
	}
}

func TestParseSortKeyDefault(t *testing.T) {
	if ParseSortKey("bogus") != SortByCapture {
		t.Fatalf("expected capture as the default sort key")
	}
}

func TestLocated(t *testing.T) {
	got := Located([]MediaRecord{{Path: "a"}, {Path: "b", Latitude: 1}, {Path: "c", Longitude: -2}})
	if len(got) != 2 || got[0].Path != "b" || got[1].Path != "c" {
		t.Fatalf("expected sentinel to be dropped, got %+v", got)
	}
}

func TestRect(t *testing.T) {
	r := Rect{South: 0, North: 10, West: 0, East: 10}
	if !r.Valid() || (Rect{South: 5, North: 1, West: 0, East: 1}).Valid() {
		t.Fatalf("unexpected validity")
	}
	if r.StrictlyContains(0, 5) || !r.StrictlyContains(5, 5) {
		t.Fatalf("expected strict containment")
	}
}
