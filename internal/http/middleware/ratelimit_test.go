package middleware

import (
	"encoding/json"
	"net"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"golang.org/x/time/rate"
)

func TestKeyBySessionOrIP(t *testing.T) {
	gin.SetMode(gin.TestMode)
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.RemoteAddr = net.JoinHostPort("203.0.113.9", "12345")
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	c.Request = req

	if got := KeyBySessionOrIP()(c); got != "ip:203.0.113.9" {
		t.Fatalf("expected ip key, got %q", got)
	}
	req.Header.Set(HeaderSessionID, "tab-1")
	if got := KeyBySessionOrIP()(c); got != "session:tab-1" {
		t.Fatalf("expected session key, got %q", got)
	}
}

func TestNewRateLimiter_BurstCoercion_AndReuse(t *testing.T) {
	rl := NewRateLimiter(2.0, 0, KeyBySessionOrIP())
	if rl.burst != 1 {
		t.Fatalf("burst coercion failed, got %d", rl.burst)
	}
	lim := rl.getVisitor("k1")
	if got := rl.getVisitor("k1"); got != lim {
		t.Fatalf("expected the same limiter to be reused")
	}
	if rl.Len() != 1 {
		t.Fatalf("Len = %d", rl.Len())
	}
}

func TestRateLimiter_SweepsIdleBuckets(t *testing.T) {
	rl := NewRateLimiter(1.0, 1, KeyBySessionOrIP())
	now := time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)
	rl.now = func() time.Time { return now }
	rl.sweepEvery = 2

	rl.visitors["old"] = &visitor{limiter: rate.NewLimiter(1, 1), lastSeen: now.Add(-time.Hour)}
	rl.visitors["fresh"] = &visitor{limiter: rate.NewLimiter(1, 1), lastSeen: now.Add(-time.Minute)}

	_ = rl.getVisitor("a") // lookup 1: no sweep
	if _, ok := rl.visitors["old"]; !ok {
		t.Fatalf("swept too early")
	}
	_ = rl.getVisitor("b") // lookup 2: sweep

	if _, ok := rl.visitors["old"]; ok {
		t.Fatalf("idle bucket should be evicted")
	}
	for _, k := range []string{"fresh", "a", "b"} {
		if _, ok := rl.visitors[k]; !ok {
			t.Fatalf("bucket %q should survive", k)
		}
	}
}

func TestRateLimiter_Handler(t *testing.T) {
	gin.SetMode(gin.TestMode)
	rl := NewRateLimiter(1.0, 1, KeyBySessionOrIP())

	r := gin.New()
	r.Use(RequestID())
	r.Use(rl.Handler())
	r.GET("/ok", func(c *gin.Context) { c.String(http.StatusOK, "ok") })

	get := func(session string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodGet, "/ok", nil)
		req.Header.Set(HeaderSessionID, session)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		return w
	}

	base := testutil.ToFloat64(rateLimited)
	if w := get("a"); w.Code != http.StatusOK {
		t.Fatalf("first request: %d", w.Code)
	}
	w := get("a")
	if w.Code != http.StatusTooManyRequests || w.Header().Get("Retry-After") != "1" {
		t.Fatalf("second request: %d %q", w.Code, w.Header().Get("Retry-After"))
	}
	var body map[string]any
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}
	if body["code"] != "too_many_requests" || body["request_id"] == "" {
		t.Fatalf("unexpected body: %v", body)
	}
	if got := testutil.ToFloat64(rateLimited); got != base+1 {
		t.Fatalf("rate_limited counter = %v, want %v", got, base+1)
	}

	// another session has its own bucket
	if w := get("b"); w.Code != http.StatusOK {
		t.Fatalf("other session: %d", w.Code)
	}
}

func TestRateLimiter_BypassOnReplay(t *testing.T) {
	gin.SetMode(gin.TestMode)
	rl := NewRateLimiter(1.0, 1, KeyBySessionOrIP())
	r := gin.New()
	r.Use(func(c *gin.Context) { c.Set(ctxKeyRateBypass, true); c.Next() })
	r.Use(rl.Handler())
	r.GET("/ok", func(c *gin.Context) { c.Status(http.StatusOK) })

	for i := 0; i < 3; i++ {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/ok", nil))
		if w.Code != http.StatusOK {
			t.Fatalf("replay %d limited: %d", i, w.Code)
		}
	}
	if rl.Len() != 0 {
		t.Fatalf("bypass must not create buckets")
	}
}
