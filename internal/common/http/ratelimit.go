package http

import (
	"net/http"
	"sync"
	"time"

	"golang.org/x/time/rate"

	"postboard/internal/common/constants"
	"postboard/internal/observability/metrics"
)

// RateLimiter keeps a token bucket per client IP. Entries whose bucket
// has refilled are dropped on the cleanup tick.
type RateLimiter struct {
	limiters map[string]*rate.Limiter
	mu       sync.Mutex
	rate     rate.Limit
	burst    int
	cleanup  *time.Ticker
}

func NewRateLimiter(requestsPerSecond float64, burst int) *RateLimiter {
	rl := &RateLimiter{
		limiters: make(map[string]*rate.Limiter),
		rate:     rate.Limit(requestsPerSecond),
		burst:    burst,
		cleanup:  time.NewTicker(constants.RateLimitCleanupInterval),
	}

	go rl.cleanupLimiters()

	return rl
}

// NewStrictRateLimiter suits credential endpoints: a handful of
// attempts per second with a small burst.
func NewStrictRateLimiter() *RateLimiter {
	return NewRateLimiter(2, 5)
}

func (rl *RateLimiter) cleanupLimiters() {
	for range rl.cleanup.C {
		rl.mu.Lock()
		for key, limiter := range rl.limiters {
			if limiter.Tokens() >= float64(rl.burst) {
				delete(rl.limiters, key)
			}
		}
		rl.mu.Unlock()
	}
}

func (rl *RateLimiter) getLimiter(key string) *rate.Limiter {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	limiter, exists := rl.limiters[key]
	if !exists {
		limiter = rate.NewLimiter(rl.rate, rl.burst)
		rl.limiters[key] = limiter
	}
	return limiter
}

func (rl *RateLimiter) Allow(key string) bool {
	return rl.getLimiter(key).Allow()
}

// MiddlewareForPaths limits requests to the given paths by client IP
// and passes everything else through.
func (rl *RateLimiter) MiddlewareForPaths(paths ...string) func(http.Handler) http.Handler {
	limited := make(map[string]bool, len(paths))
	for _, p := range paths {
		limited[p] = true
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !limited[r.URL.Path] {
				next.ServeHTTP(w, r)
				return
			}

			if !rl.Allow(GetClientIP(r)) {
				metrics.RateLimitedRequestsTotal.WithLabelValues(r.URL.Path).Inc()
				WriteErrorEnvelope(w, http.StatusTooManyRequests, CodeTooManyRequests, "too many requests", nil, "")
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
