package middleware

import (
	"net"
	"net/http"
	"sync"
	"time"

	"golang.org/x/time/rate"
)

type ipLimiter struct {
	mu       sync.Mutex
	limiters map[string]*limiterEntry
	rate     rate.Limit
	burst    int
	ttl      time.Duration
}

type limiterEntry struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

func newIPLimiter(r rate.Limit, burst int) *ipLimiter {
	return &ipLimiter{
		limiters: make(map[string]*limiterEntry),
		rate:     r,
		burst:    burst,
		ttl:      10 * time.Minute,
	}
}

func (ipl *ipLimiter) get(ip string, now time.Time) *rate.Limiter {
	ipl.mu.Lock()
	defer ipl.mu.Unlock()

	e, ok := ipl.limiters[ip]
	if !ok {
		ipl.sweep(now)
		e = &limiterEntry{limiter: rate.NewLimiter(ipl.rate, ipl.burst)}
		ipl.limiters[ip] = e
	}
	e.lastSeen = now
	return e.limiter
}

// sweep drops idle clients. Caller holds mu.
func (ipl *ipLimiter) sweep(now time.Time) {
	for ip, e := range ipl.limiters {
		if now.Sub(e.lastSeen) > ipl.ttl {
			delete(ipl.limiters, ip)
		}
	}
}

// RateLimit limits requests per client IP. Place it after chi's RealIP so
// proxied clients are keyed by their own address.
func RateLimit(r rate.Limit, burst int) func(http.Handler) http.Handler {
	il := newIPLimiter(r, burst)
	return func(h http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !il.get(clientIP(r), time.Now()).Allow() {
				w.Header().Set("Content-Type", "application/json")
				w.Header().Set("Retry-After", "60")
				w.WriteHeader(http.StatusTooManyRequests)
				_, _ = w.Write([]byte(`{"error":"too many requests","statusCode":429,"statusMessage":"too many requests"}`))
				return
			}
			h.ServeHTTP(w, r)
		})
	}
}

// PerMinute converts a per-minute count to a rate.Limit.
func PerMinute(n int) rate.Limit {
	return rate.Every(time.Minute / time.Duration(n))
}

func clientIP(r *http.Request) string {
	if host, _, err := net.SplitHostPort(r.RemoteAddr); err == nil {
		return host
	}
	return r.RemoteAddr
}
