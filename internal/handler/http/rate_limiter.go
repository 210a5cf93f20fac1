package http

import (
	"sync"

	"golang.org/x/time/rate"
)

// maxTrackedClients bounds the limiter map. When reached, the map is reset
// and every client starts with a full bucket again.
const maxTrackedClients = 10_000

// ipRateLimiter keeps one token bucket per client address. A nil
// *ipRateLimiter allows everything.
type ipRateLimiter struct {
	mu       sync.Mutex
	limiters map[string]*rate.Limiter

	limit rate.Limit
	burst int
}

// newIPRateLimiter returns nil when perSecond is not positive.
func newIPRateLimiter(perSecond float64, burst int) *ipRateLimiter {
	if perSecond <= 0 {
		return nil
	}
	if burst < 1 {
		burst = 1
	}

	return &ipRateLimiter{
		limiters: make(map[string]*rate.Limiter),
		limit:    rate.Limit(perSecond),
		burst:    burst,
	}
}

func (l *ipRateLimiter) Allow(client string) bool {
	if l == nil {
		return true
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	limiter, ok := l.limiters[client]
	if !ok {
		if len(l.limiters) >= maxTrackedClients {
			l.limiters = make(map[string]*rate.Limiter)
		}
		limiter = rate.NewLimiter(l.limit, l.burst)
		l.limiters[client] = limiter
	}

	return limiter.Allow()
}
