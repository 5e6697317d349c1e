package middleware

import (
	"log/slog"
	"net"
	"net/http"
	"sync"

	"golang.org/x/time/rate"
)

// maxTrackedClients bounds the limiter map; past it the map starts over.
const maxTrackedClients = 10000

type limiterCache[K comparable] struct {
	limiters map[K]*rate.Limiter
	mu       sync.RWMutex
	rate     rate.Limit
	burst    int
}

func newLimiterCache[K comparable](rps float64, burst int) *limiterCache[K] {
	return &limiterCache[K]{
		limiters: make(map[K]*rate.Limiter),
		rate:     rate.Limit(rps),
		burst:    burst,
	}
}

func (lc *limiterCache[K]) get(key K) *rate.Limiter {
	lc.mu.RLock()
	limiter, exists := lc.limiters[key]
	lc.mu.RUnlock()
	if exists {
		return limiter
	}

	lc.mu.Lock()
	defer lc.mu.Unlock()
	if limiter, exists = lc.limiters[key]; exists {
		return limiter
	}
	if len(lc.limiters) >= maxTrackedClients {
		lc.limiters = make(map[K]*rate.Limiter)
	}
	limiter = rate.NewLimiter(lc.rate, lc.burst)
	lc.limiters[key] = limiter
	return limiter
}

// RateLimiter throttles form posts (login, signup, contact) per client IP.
type RateLimiter struct {
	cache    *limiterCache[string]
	logger   *slog.Logger
	rejected http.Handler
}

// NewRateLimiter allows rps requests per second with the given burst. rejected renders the
// 429 page; nil means a plain-text response.
func NewRateLimiter(rps float64, burst int, rejected http.Handler, logger *slog.Logger) *RateLimiter {
	if rejected == nil {
		rejected = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			http.Error(w, "Too many requests. Please wait a moment and try again.", http.StatusTooManyRequests)
		})
	}
	return &RateLimiter{cache: newLimiterCache[string](rps, burst), logger: logger, rejected: rejected}
}

func (rl *RateLimiter) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ip := ClientIP(r)
		if !rl.cache.get(ip).Allow() {
			rl.logger.Warn("rate limit exceeded", "ip", ip, "path", r.URL.Path)
			rl.rejected.ServeHTTP(w, r)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// ClientIP is the caller's address without its port. It expects chi's RealIP to have
// rewritten RemoteAddr already.
func ClientIP(r *http.Request) string {
	if host, _, err := net.SplitHostPort(r.RemoteAddr); err == nil {
		return host
	}
	return r.RemoteAddr
}
