package normalize

import (
	"fmt"
	"strconv"
	"strings"
)

// Tags is the loosely typed key/value mapping returned by a metadata provider.
// Keys follow the provider's naming ("GPS GPSLatitude", "creation_time", ...).
type Tags map[string]any

// Has reports whether every key is present
func (t Tags) Has(keys ...string) bool {
	for _, k := range keys {
		if _, ok := t[k]; !ok {
			return false
		}
	}
	return true
}

// String returns the value for key as a trimmed string
func (t Tags) String(key string) (string, bool) {
	v, ok := t[key]
	if !ok || v == nil {
		return "", false
	}
	switch s := v.(type) {
	case string:
		return strings.TrimSpace(strings.Trim(s, "\x00")), true
	case []byte:
		return strings.TrimSpace(strings.Trim(string(s), "\x00")), true
	case fmt.Stringer:
		return strings.TrimSpace(s.String()), true
	default:
		return "", false
	}
}

// Floats returns the value for key as a slice of numbers
func (t Tags) Floats(key string) ([]float64, bool) {
	v, ok := t[key]
	if !ok || v == nil {
		return nil, false
	}
	switch vals := v.(type) {
	case []float64:
		return vals, true
	case []int:
		out := make([]float64, len(vals))
		for i, n := range vals {
			out[i] = float64(n)
		}
		return out, true
	case []any:
		out := make([]float64, len(vals))
		for i, n := range vals {
			f, ok := toFloat(n)
			if !ok {
				return nil, false
			}
			out[i] = f
		}
		return out, true
	default:
		return nil, false
	}
}

func toFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(n), 64)
		return f, err == nil
	default:
		return 0, false
	}
}

// Rule is one candidate source for a resolved value: the keys it needs and how to extract it
type Rule[T any] struct {
	Name    string
	Keys    []string
	Extract func(Tags) (T, bool)
}

// Resolve evaluates rules in order and returns the first value whose keys are present
// and whose extractor succeeds. A rule that fails to extract falls through to the next.
func Resolve[T any](tags Tags, rules []Rule[T]) (T, string, bool) {
	for _, r := range rules {
		if !tags.Has(r.Keys...) {
			continue
		}
		if v, ok := r.Extract(tags); ok {
			return v, r.Name, true
		}
	}
	var zero T
	return zero, "", false
}
