package models

import (
	"sort"
	"time"
)

// SortKey names the timestamp field an OrderedRecords sequence is ordered by
type SortKey string

const (
	SortByCapture  SortKey = "capture"  // capture instant, unknown instants last
	SortByModified SortKey = "modified" // file modification time
)

// ParseSortKey maps a user-supplied key to a SortKey, defaulting to capture
func ParseSortKey(s string) SortKey {
	if SortKey(s) == SortByModified {
		return SortByModified
	}
	return SortByCapture
}

// Instant returns the record's timestamp for the given key and whether it is known
func (k SortKey) Instant(r MediaRecord) (time.Time, bool) {
	if k == SortByModified {
		return r.ModifiedAt, !r.ModifiedAt.IsZero()
	}
	if r.CaptureInstant == nil {
		return time.Time{}, false
	}
	return *r.CaptureInstant, true
}

// OrderedRecords is a record sequence together with the key it is ordered by.
// Consumers assume non-decreasing order; CheckOrder reports violations.
type OrderedRecords struct {
	Key     SortKey
	Records []MediaRecord
}

// SortRecords returns a stably sorted copy of records ordered by key
func SortRecords(records []MediaRecord, key SortKey) OrderedRecords {
	sorted := make([]MediaRecord, len(records))
	copy(sorted, records)

	sort.SliceStable(sorted, func(i, j int) bool {
		ti, okI := key.Instant(sorted[i])
		tj, okJ := key.Instant(sorted[j])
		if okI != okJ {
			return okI
		}
		return okI && ti.Before(tj)
	})

	return OrderedRecords{Key: key, Records: sorted}
}

// OrderViolation marks an index whose timestamp precedes its predecessor's
type OrderViolation struct {
	Index    int       `json:"index"`
	Path     string    `json:"path"`
	Previous time.Time `json:"previous"`
	Current  time.Time `json:"current"`
}

// CheckOrder returns every position where the sequence decreases under its key.
// Records with unknown timestamps are skipped.
func (o OrderedRecords) CheckOrder() []OrderViolation {
	var violations []OrderViolation
	var prev time.Time
	havePrev := false

	for i, r := range o.Records {
		t, ok := o.Key.Instant(r)
		if !ok {
			continue
		}
		if havePrev && t.Before(prev) {
			violations = append(violations, OrderViolation{
				Index:    i,
				Path:     r.Path,
				Previous: prev,
				Current:  t,
			})
		}
		prev = t
		havePrev = true
	}

	return violations
}

// Located returns the same sequence with sentinel-coordinate records removed
func (o OrderedRecords) Located() OrderedRecords {
	return OrderedRecords{Key: o.Key, Records: Located(o.Records)}
}
