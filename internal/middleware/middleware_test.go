package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
)

func newEngine(handlers ...gin.HandlerFunc) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(handlers...)
	r.GET("/ping", func(c *gin.Context) { c.String(http.StatusOK, "pong") })
	return r
}

func get(r http.Handler, header string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/ping", nil)
	if header != "" {
		req.Header.Set("Authorization", header)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestRateLimiterWindow(t *testing.T) {
	rl := NewRateLimiter(2, time.Minute)
	now := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	rl.now = func() time.Time { return now }

	if !rl.Allow("1.2.3.4") || !rl.Allow("1.2.3.4") {
		t.Fatalf("expected first two requests to pass")
	}
	if rl.Allow("1.2.3.4") {
		t.Fatalf("expected third request to be limited")
	}
	if !rl.Allow("5.6.7.8") {
		t.Fatalf("expected other client to pass")
	}

	now = now.Add(time.Minute)
	if !rl.Allow("1.2.3.4") {
		t.Fatalf("expected request after the window to pass")
	}
}

func TestRateLimitMiddleware(t *testing.T) {
	r := newEngine(RateLimit(1, time.Minute))

	if w := get(r, ""); w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	if w := get(r, ""); w.Code != http.StatusTooManyRequests {
		t.Fatalf("expected 429, got %d", w.Code)
	}
}

func TestAuthDisabled(t *testing.T) {
	r := newEngine(Auth(""))
	if w := get(r, ""); w.Code != http.StatusOK {
		t.Fatalf("expected 200 without secret, got %d", w.Code)
	}
}

func TestAuthToken(t *testing.T) {
	r := newEngine(Auth("s3cret"))

	if w := get(r, ""); w.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 without token, got %d", w.Code)
	}

	token, err := IssueToken("s3cret", "tester", time.Hour)
	if err != nil {
		t.Fatalf("failed to issue token: %v", err)
	}
	if w := get(r, "Bearer "+token); w.Code != http.StatusOK {
		t.Fatalf("expected 200 with valid token, got %d", w.Code)
	}

	other, _ := IssueToken("different", "tester", time.Hour)
	if w := get(r, "Bearer "+other); w.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 with foreign token, got %d", w.Code)
	}

	expired, _ := IssueToken("s3cret", "tester", -time.Minute)
	if w := get(r, "Bearer "+expired); w.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 with expired token, got %d", w.Code)
	}
}

func TestLoggerPassesThrough(t *testing.T) {
	r := newEngine(Logger())
	if w := get(r, ""); w.Code != http.StatusOK || w.Body.String() != "pong" {
		t.Fatalf("expected pong, got %d %q", w.Code, w.Body.String())
	}
}
