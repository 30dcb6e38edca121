package middleware

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/iyunix/campus-market/internal/ratelimit"
)

type captureLogger struct {
	mu      sync.Mutex
	entries []string
}

func (c *captureLogger) record(level, msg string, kv ...interface{}) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries = append(c.entries, fmt.Sprintf("%s %s %v", level, msg, kv))
}

func (c *captureLogger) Info(msg string, kv ...interface{})  { c.record("INFO", msg, kv...) }
func (c *captureLogger) Error(msg string, kv ...interface{}) { c.record("ERROR", msg, kv...) }
func (c *captureLogger) Debug(msg string, kv ...interface{}) { c.record("DEBUG", msg, kv...) }
func (c *captureLogger) Warn(msg string, kv ...interface{})  { c.record("WARN", msg, kv...) }

func (c *captureLogger) joined() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return strings.Join(c.entries, "\n")
}

func TestLoggingMiddlewareRecordsStatus(t *testing.T) {
	logger := &captureLogger{}
	handler := LoggingMiddleware(logger)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	}))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/sell/listings", nil))

	out := logger.joined()
	if !strings.Contains(out, "INFO request") || !strings.Contains(out, "418") || !strings.Contains(out, "/api/sell/listings") {
		t.Fatalf("unexpected log output: %s", out)
	}
}

func TestRecoverPanic(t *testing.T) {
	logger := &captureLogger{}
	handler := RecoverPanic(logger)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		panic("boom")
	}))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", rec.Code)
	}
	if !strings.Contains(logger.joined(), "panic recovered") {
		t.Fatal("expected the panic to be logged")
	}
}

func TestRateLimitMiddleware(t *testing.T) {
	limiter := ratelimit.NewMemoryRateLimiter(&ratelimit.Config{
		WindowSize:    time.Minute,
		MaxAttempts:   2,
		CleanupPeriod: time.Hour,
		BanDuration:   time.Minute,
	})
	defer limiter.Close()

	logger := &captureLogger{}
	handler := RateLimitMiddleware(limiter, "submit", logger)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	send := func() *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodPost, "/preowned/sell", nil)
		req.RemoteAddr = "192.0.2.1:1234"
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)
		return rec
	}

	for i := 0; i < 2; i++ {
		if rec := send(); rec.Code != http.StatusOK {
			t.Fatalf("request %d: expected 200, got %d", i+1, rec.Code)
		}
	}
	rec := send()
	if rec.Code != http.StatusTooManyRequests {
		t.Fatalf("expected 429, got %d", rec.Code)
	}
	if rec.Header().Get("Retry-After") == "" || rec.Header().Get("X-RateLimit-Limit") != "2" {
		t.Fatalf("missing rate limit headers: %v", rec.Header())
	}
	if !strings.Contains(rec.Body.String(), `"banned":true`) {
		t.Fatalf("unexpected body %s", rec.Body.String())
	}
	if !strings.Contains(logger.joined(), "request blocked") {
		t.Fatal("expected the block to be logged")
	}
}
