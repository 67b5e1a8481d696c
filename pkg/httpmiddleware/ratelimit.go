package httpmiddleware

import (
	"context"
	"math"
	"net"
	"net/http"
	"strconv"
	"strings"
	"sync"
	"time"
)

// RateLimitConfig configures the per-key sliding window limiter.
type RateLimitConfig struct {
	// Max is the number of requests allowed per window.
	Max int
	// Window is the sliding window length.
	Window time.Duration
	// KeyFunc picks the limit key for a request. Defaults to the
	// client IP.
	KeyFunc func(*http.Request) string
}

// bucket counts requests in the current window and remembers the
// previous window's count for the sliding estimate.
type bucket struct {
	windowStart time.Time
	count       int
	prevCount   int
}

type limiter struct {
	max    int
	window time.Duration
	keyFor func(*http.Request) string

	mu      sync.Mutex
	buckets map[string]*bucket
}

func newLimiter(cfg RateLimitConfig) *limiter {
	keyFor := cfg.KeyFunc
	if keyFor == nil {
		keyFor = clientIP
	}
	return &limiter{
		max:     cfg.Max,
		window:  cfg.Window,
		keyFor:  keyFor,
		buckets: make(map[string]*bucket),
	}
}

// take records one request for key and reports whether it fits under the
// limit. The effective count weights the previous window by how much of
// it still overlaps the sliding window ending at now, so a burst right
// before a window boundary cannot double the allowed rate.
func (l *limiter) take(key string, now time.Time) (remaining int, reset time.Time, ok bool) {
	l.mu.Lock()
	defer l.mu.Unlock()

	b, found := l.buckets[key]
	if !found {
		b = &bucket{windowStart: now}
		l.buckets[key] = b
	}

	if age := now.Sub(b.windowStart); age >= l.window {
		b.prevCount = b.count
		if age >= 2*l.window {
			b.prevCount = 0
		}
		b.count = 0
		b.windowStart = now.Truncate(l.window)
	}

	reset = b.windowStart.Add(l.window)

	weight := 1 - now.Sub(b.windowStart).Seconds()/l.window.Seconds()
	if weight < 0 {
		weight = 0
	}
	estimate := float64(b.prevCount)*weight + float64(b.count)
	if estimate >= float64(l.max) {
		return 0, reset, false
	}

	b.count++
	remaining = l.max - int(estimate) - 1
	if remaining < 0 {
		remaining = 0
	}
	return remaining, reset, true
}

// evict drops buckets idle for two full windows.
func (l *limiter) evict(now time.Time) {
	l.mu.Lock()
	defer l.mu.Unlock()

	for key, b := range l.buckets {
		if now.Sub(b.windowStart) >= 2*l.window {
			delete(l.buckets, key)
		}
	}
}

func (l *limiter) evictLoop(ctx context.Context) {
	ticker := time.NewTicker(2 * l.window)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case now := <-ticker.C:
			l.evict(now)
		}
	}
}

const rateLimitBody = `{"code": 429, "message": "rate limit exceeded"}` + "\n"

// RateLimit enforces a per-key sliding window limit. Every response gets
// X-RateLimit-Limit, X-RateLimit-Remaining, and X-RateLimit-Reset
// headers; rejected requests get 429 with a JSON body and Retry-After.
//
// Stale keys are never evicted; use RateLimitWithCleanup on long-running
// servers.
func RateLimit(cfg RateLimitConfig) Middleware {
	return newLimiter(cfg).middleware()
}

// RateLimitWithCleanup is RateLimit plus a background goroutine that
// evicts idle keys until ctx is cancelled.
func RateLimitWithCleanup(ctx context.Context, cfg RateLimitConfig) Middleware {
	l := newLimiter(cfg)
	go l.evictLoop(ctx)
	return l.middleware()
}

func (l *limiter) middleware() Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			now := time.Now()
			remaining, reset, ok := l.take(l.keyFor(r), now)

			h := w.Header()
			h.Set("X-RateLimit-Limit", strconv.Itoa(l.max))
			h.Set("X-RateLimit-Remaining", strconv.Itoa(remaining))
			h.Set("X-RateLimit-Reset", strconv.FormatInt(reset.Unix(), 10))

			if !ok {
				retryAfter := math.Ceil(reset.Sub(now).Seconds())
				if retryAfter < 0 {
					retryAfter = 0
				}
				h.Set("Retry-After", strconv.Itoa(int(retryAfter)))
				h.Set("Content-Type", "application/json")
				w.WriteHeader(http.StatusTooManyRequests)
				_, _ = w.Write([]byte(rateLimitBody))
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

// clientIP resolves the limit key from proxy headers, preferring
// X-Forwarded-For, then X-Real-IP, then the connection address.
func clientIP(r *http.Request) string {
	if xff := r.Header.Get("X-Forwarded-For"); xff != "" {
		first, _, _ := strings.Cut(xff, ",")
		return strings.TrimSpace(first)
	}
	if xri := r.Header.Get("X-Real-IP"); xri != "" {
		return xri
	}
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
