package middleware

import (
	"net"
	"net/http"
	"strconv"
	"sync"
	"time"
)

// RateLimiter implements a simple token bucket rate limiter.
type RateLimiter struct {
	mu         sync.Mutex
	tokens     float64
	maxTokens  float64
	refillRate float64 // tokens per second
	lastRefill time.Time
}

// NewRateLimiter creates a rate limiter that refills rps tokens per second up
// to burst.
func NewRateLimiter(rps float64, burst int) *RateLimiter {
	return &RateLimiter{
		tokens:     float64(burst),
		maxTokens:  float64(burst),
		refillRate: rps,
		lastRefill: time.Now(),
	}
}

// Allow reports whether a single request is permitted.
// It consumes one token if available.
func (rl *RateLimiter) Allow() bool {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	now := time.Now()
	elapsed := now.Sub(rl.lastRefill).Seconds()
	rl.tokens += elapsed * rl.refillRate
	if rl.tokens > rl.maxTokens {
		rl.tokens = rl.maxTokens
	}
	rl.lastRefill = now

	if rl.tokens >= 1 {
		rl.tokens--
		return true
	}
	return false
}

// full reports whether the bucket has refilled completely.
func (rl *RateLimiter) full(now time.Time) bool {
	rl.mu.Lock()
	defer rl.mu.Unlock()
	return rl.tokens+now.Sub(rl.lastRefill).Seconds()*rl.refillRate >= rl.maxTokens
}

const sweepThreshold = 1024

// PerClientRateLimiter keeps one bucket per client address.
type PerClientRateLimiter struct {
	mu      sync.Mutex
	clients map[string]*RateLimiter
	rps     float64
	burst   int
}

func NewPerClientRateLimiter(rps float64, burst int) *PerClientRateLimiter {
	return &PerClientRateLimiter{
		clients: make(map[string]*RateLimiter),
		rps:     rps,
		burst:   burst,
	}
}

// Allow consumes a token from the client's bucket.
func (p *PerClientRateLimiter) Allow(client string) bool {
	p.mu.Lock()
	rl, ok := p.clients[client]
	if !ok {
		if len(p.clients) >= sweepThreshold {
			p.sweep(time.Now())
		}
		rl = NewRateLimiter(p.rps, p.burst)
		p.clients[client] = rl
	}
	p.mu.Unlock()

	return rl.Allow()
}

// sweep drops buckets that have refilled; a fresh bucket is equivalent.
// Callers hold p.mu.
func (p *PerClientRateLimiter) sweep(now time.Time) {
	for k, rl := range p.clients {
		if rl.full(now) {
			delete(p.clients, k)
		}
	}
}

// PerClientRateLimitMiddleware applies per-client rate limiting keyed by remote IP.
func PerClientRateLimitMiddleware(limiter *PerClientRateLimiter) func(http.Handler) http.Handler {
	retryAfter := "1"
	if limiter.rps > 0 && limiter.rps < 1 {
		retryAfter = strconv.Itoa(int(1/limiter.rps) + 1)
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !limiter.Allow(clientIP(r)) {
				w.Header().Set("Retry-After", retryAfter)
				writeError(w, http.StatusTooManyRequests, "rate limit exceeded")
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

func clientIP(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
