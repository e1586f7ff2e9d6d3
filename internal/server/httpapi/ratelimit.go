package httpapi

import (
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/dmitrijs2005/cloudshelf/internal/logging"
)

// rateLimiter is a token-bucket limiter keyed by client IP, used to slow
// credential-guessing against the /auth endpoints.
type rateLimiter struct {
	mu      sync.Mutex
	buckets map[string]*bucket
	rate    int
	window  time.Duration
}

type bucket struct {
	tokens     int
	lastRefill time.Time
}

func newRateLimiter(rate int, window time.Duration) *rateLimiter {
	return &rateLimiter{
		buckets: make(map[string]*bucket),
		rate:    rate,
		window:  window,
	}
}

func (rl *rateLimiter) allow(key string) bool {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	now := time.Now()

	b, ok := rl.buckets[key]
	if !ok {
		b = &bucket{tokens: rl.rate, lastRefill: now}
		rl.buckets[key] = b
	}
	if now.Sub(b.lastRefill) >= rl.window {
		b.tokens = rl.rate
		b.lastRefill = now
	}
	// Drop buckets that went a full window unused to bound memory.
	for k, old := range rl.buckets {
		if now.Sub(old.lastRefill) > 2*rl.window {
			delete(rl.buckets, k)
		}
	}

	if b.tokens > 0 {
		b.tokens--
		return true
	}
	return false
}

// RateLimit returns a middleware limiting each client IP to rate requests per
// window.
func RateLimit(rate int, window time.Duration, logger logging.Logger) func(http.Handler) http.Handler {
	limiter := newRateLimiter(rate, window)

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			key := clientIP(r)
			if !limiter.allow(key) {
				logger.Warn(r.Context(), "rate limit exceeded", "ip", key, "path", r.URL.Path)
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(http.StatusTooManyRequests)
				_, _ = w.Write([]byte(`{"error":{"code":429,"message":"too many attempts, please try again later"}}`))
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// clientIP resolves the caller's address, honoring proxy headers.
func clientIP(r *http.Request) string {
	if xff := r.Header.Get("X-Forwarded-For"); xff != "" {
		if idx := strings.IndexByte(xff, ','); idx >= 0 {
			return xff[:idx]
		}
		return xff
	}
	if xri := r.Header.Get("X-Real-IP"); xri != "" {
		return xri
	}
	return r.RemoteAddr
}
