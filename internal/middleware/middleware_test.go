package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

var okHandler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
})

func TestSecurityHeaders(t *testing.T) {
	rr := httptest.NewRecorder()
	SecurityHeaders(okHandler).ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/", nil))

	want := map[string]string{
		"X-Content-Type-Options":  "nosniff",
		"Content-Security-Policy": "default-src 'none'; frame-ancestors 'none'",
		"Referrer-Policy":         "no-referrer",
		"Cache-Control":           "no-store",
	}
	for h, v := range want {
		if got := rr.Header().Get(h); got != v {
			t.Errorf("%s = %q, want %q", h, got, v)
		}
	}
}

func TestRateLimit_BlocksAfterBurst(t *testing.T) {
	h := RateLimit(PerMinute(1), 2)(okHandler)

	codes := make([]int, 0, 3)
	for range 3 {
		req := httptest.NewRequest(http.MethodPost, "/api/send-voucher", nil)
		req.RemoteAddr = "203.0.113.7:5000"
		rr := httptest.NewRecorder()
		h.ServeHTTP(rr, req)
		codes = append(codes, rr.Code)
	}

	if codes[0] != http.StatusOK || codes[1] != http.StatusOK {
		t.Fatalf("expected first two requests to pass, got %v", codes)
	}
	if codes[2] != http.StatusTooManyRequests {
		t.Fatalf("expected third request to be limited, got %d", codes[2])
	}
}

func TestRateLimit_KeysByClientIP(t *testing.T) {
	h := RateLimit(PerMinute(1), 1)(okHandler)

	for _, addr := range []string{"203.0.113.7:5000", "203.0.113.7:5001", "198.51.100.2:5000"} {
		req := httptest.NewRequest(http.MethodPost, "/", nil)
		req.RemoteAddr = addr
		rr := httptest.NewRecorder()
		h.ServeHTTP(rr, req)

		want := http.StatusOK
		if addr == "203.0.113.7:5001" {
			want = http.StatusTooManyRequests
		}
		if rr.Code != want {
			t.Errorf("%s: expected %d, got %d", addr, want, rr.Code)
		}
	}
}

func TestIPLimiter_SweepsIdleClients(t *testing.T) {
	il := newIPLimiter(PerMinute(1), 1)
	now := time.Now()

	il.get("a", now)
	il.get("b", now.Add(il.ttl+time.Second))

	if _, ok := il.limiters["a"]; ok {
		t.Error("expected idle client to be swept")
	}
	if _, ok := il.limiters["b"]; !ok {
		t.Error("expected active client to remain")
	}
}
