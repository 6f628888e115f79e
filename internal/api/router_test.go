package api

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/jengzang/media-geotag-mapper/internal/config"
	"github.com/jengzang/media-geotag-mapper/internal/database"
	"github.com/jengzang/media-geotag-mapper/internal/media"
	"github.com/jengzang/media-geotag-mapper/internal/middleware"
	"github.com/jengzang/media-geotag-mapper/internal/normalize"
	"github.com/jengzang/media-geotag-mapper/internal/probe"
	"github.com/jengzang/media-geotag-mapper/pkg/response"
)

func newTestRouter(t *testing.T, secret string) (*gin.Engine, string) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	conn, err := database.Open(database.Config{Path: filepath.Join(t.TempDir(), "media.db")})
	if err != nil {
		t.Fatalf("failed to open database: %v", err)
	}
	t.Cleanup(func() { conn.Close() })

	dir := t.TempDir()
	for _, name := range []string{"1.jpg", "2.jpg", "3.jpg"} {
		if err := os.WriteFile(filepath.Join(dir, name), []byte("x"), 0o644); err != nil {
			t.Fatalf("failed to write %s: %v", name, err)
		}
	}

	tags := map[string]normalize.Tags{
		"1.jpg": picture([]float64{40, 0, 0}, "N", []float64{74, 0, 0}, "W", "2023:05:01 10:00:00"),
		"2.jpg": picture([]float64{34, 0, 0}, "N", []float64{118, 0, 0}, "W", "2023:06:01 10:00:00"),
		"3.jpg": picture([]float64{51, 30, 0}, "N", []float64{0, 6, 0}, "W", "2024:01:01 10:00:00"),
	}
	pictures := probe.ReaderFunc(func(_ context.Context, path string) (normalize.Tags, error) {
		return tags[filepath.Base(path)], nil
	})

	cfg := config.Default()
	cfg.JWTSecret = secret
	return NewRouter(cfg, conn, media.NewBuilder(pictures, nil)), dir
}

func picture(lat []float64, latRef string, lon []float64, lonRef, taken string) normalize.Tags {
	return normalize.Tags{
		normalize.KeyGPSLatitude:        lat,
		normalize.KeyGPSLatitudeRef:     latRef,
		normalize.KeyGPSLongitude:       lon,
		normalize.KeyGPSLongitudeRef:    lonRef,
		normalize.KeyDateTimeOriginal:   taken,
		normalize.KeyOffsetTimeOriginal: "+00:00",
	}
}

func do(r http.Handler, method, target, body, token string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decode(t *testing.T, w *httptest.ResponseRecorder, data any) response.Response {
	t.Helper()
	var env response.Response
	env.Data = data
	if err := json.Unmarshal(w.Body.Bytes(), &env); err != nil {
		t.Fatalf("failed to decode %s: %v", w.Body.String(), err)
	}
	return env
}

func TestHealth(t *testing.T) {
	r, _ := newTestRouter(t, "")
	if w := do(r, http.MethodGet, "/health", "", ""); w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
}

func TestScanAndQuery(t *testing.T) {
	r, dir := newTestRouter(t, "")

	body, _ := json.Marshal(map[string]any{"folders": []string{dir}})
	w := do(r, http.MethodPost, "/api/v1/scans", string(body), "")
	if w.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", w.Code, w.Body.String())
	}
	var job struct {
		ID      string `json:"id"`
		Located int    `json:"located"`
	}
	decode(t, w, &job)
	if job.ID == "" || job.Located != 3 {
		t.Fatalf("unexpected job %+v", job)
	}

	if w := do(r, http.MethodGet, "/api/v1/scans/"+job.ID, "", ""); w.Code != http.StatusOK {
		t.Fatalf("expected 200 for stored scan, got %d", w.Code)
	}
	if w := do(r, http.MethodGet, "/api/v1/scans/unknown", "", ""); w.Code != http.StatusNotFound {
		t.Fatalf("expected 404 for unknown scan, got %d", w.Code)
	}

	var page struct {
		Total int64 `json:"total"`
	}
	w = do(r, http.MethodGet, "/api/v1/media?mediaType=picture&locatedOnly=true", "", "")
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	decode(t, w, &page)
	if page.Total != 3 {
		t.Fatalf("expected 3 records, got %d", page.Total)
	}

	var report struct {
		Unit  string `json:"unit"`
		Stats []struct {
			Year        int `json:"year"`
			GeotagCount int `json:"geotagCount"`
		} `json:"stats"`
	}
	w = do(r, http.MethodGet, "/api/v1/stats/yearly?unit=kilometers", "", "")
	decode(t, w, &report)
	if report.Unit != "kilometers" || len(report.Stats) != 2 || report.Stats[0].GeotagCount != 2 {
		t.Fatalf("unexpected report %+v", report)
	}

	w = do(r, http.MethodGet, "/api/v1/map/geojson?paths=false", "", "")
	var fc struct {
		Features []json.RawMessage `json:"features"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &fc); err != nil || len(fc.Features) != 3 {
		t.Fatalf("expected 3 point features, got %d (err=%v)", len(fc.Features), err)
	}

	w = do(r, http.MethodGet, "/api/v1/map/html?title=Holidays", "", "")
	if w.Code != http.StatusOK || !strings.Contains(w.Body.String(), "Holidays") {
		t.Fatalf("expected map page, got %d", w.Code)
	}

	w = do(r, http.MethodGet, "/api/v1/map/gpx", "", "")
	if !bytes.Contains(w.Body.Bytes(), []byte("<gpx")) {
		t.Fatalf("expected gpx body")
	}

	w = do(r, http.MethodGet, "/api/v1/media/export.csv", "", "")
	if lines := strings.Count(strings.TrimSpace(w.Body.String()), "\n"); lines != 3 {
		t.Fatalf("expected header plus 3 rows, got %d line breaks", lines)
	}
}

func TestMediaRecordAndSummary(t *testing.T) {
	r, dir := newTestRouter(t, "")
	body, _ := json.Marshal(map[string]any{"folders": []string{dir}})
	do(r, http.MethodPost, "/api/v1/scans", string(body), "")

	var summary struct {
		Total   int64  `json:"total"`
		Located int64  `json:"located"`
		Message string `json:"message"`
	}
	w := do(r, http.MethodGet, "/api/v1/media/summary", "", "")
	decode(t, w, &summary)
	if w.Code != http.StatusOK || summary.Total != 3 || summary.Located != 3 || summary.Message != "3 of 3 records located" {
		t.Fatalf("unexpected summary %d %+v", w.Code, summary)
	}

	var rec struct {
		Name     string  `json:"name"`
		Latitude float64 `json:"latitude"`
	}
	w = do(r, http.MethodGet, "/api/v1/media/record?path="+url.QueryEscape(filepath.Join(dir, "1.jpg")), "", "")
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}
	decode(t, w, &rec)
	if rec.Name != "1.jpg" || rec.Latitude != 40 {
		t.Fatalf("unexpected record %+v", rec)
	}

	if w := do(r, http.MethodGet, "/api/v1/media/record?path="+url.QueryEscape(filepath.Join(dir, "4.jpg")), "", ""); w.Code != http.StatusNotFound {
		t.Fatalf("expected 404 for an unknown path, got %d", w.Code)
	}
	if w := do(r, http.MethodGet, "/api/v1/media/record", "", ""); w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 without a path, got %d", w.Code)
	}
}

func TestFlipLongitudeEndpoint(t *testing.T) {
	r, dir := newTestRouter(t, "")
	body, _ := json.Marshal(map[string]any{"folders": []string{dir}})
	do(r, http.MethodPost, "/api/v1/scans", string(body), "")

	w := do(r, http.MethodPost, "/api/v1/media/flip-longitude", `{"rect":{"south":45,"north":30,"west":0,"east":1}}`, "")
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for an empty rectangle, got %d", w.Code)
	}

	w = do(r, http.MethodPost, "/api/v1/media/flip-longitude", `{"rect":{"south":30,"north":45,"west":-80,"east":-70}}`, "")
	var result struct {
		Flipped int `json:"flipped"`
	}
	decode(t, w, &result)
	if result.Flipped != 1 {
		t.Fatalf("expected 1 flipped record, got %d", result.Flipped)
	}
}

func TestAuthRequired(t *testing.T) {
	r, _ := newTestRouter(t, "secret")

	if w := do(r, http.MethodGet, "/health", "", ""); w.Code != http.StatusOK {
		t.Fatalf("expected health to stay open, got %d", w.Code)
	}
	if w := do(r, http.MethodGet, "/api/v1/scans", "", ""); w.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", w.Code)
	}

	token, err := middleware.IssueToken("secret", "tester", time.Hour)
	if err != nil {
		t.Fatalf("failed to issue token: %v", err)
	}
	if w := do(r, http.MethodGet, "/api/v1/scans", "", token); w.Code != http.StatusOK {
		t.Fatalf("expected 200 with token, got %d", w.Code)
	}
}

func TestCORSPreflight(t *testing.T) {
	r, _ := newTestRouter(t, "")
	w := do(r, http.MethodOptions, "/api/v1/media", "", "")
	if w.Code != http.StatusNoContent || w.Header().Get("Access-Control-Allow-Origin") != "*" {
		t.Fatalf("unexpected preflight response %d", w.Code)
	}
}
