package web

import (
	"net"
	"net/http"
	"sync"
	"time"

	"golang.org/x/time/rate"
)

// clientIdleTimeout is how long an unused client limiter is kept.
const clientIdleTimeout = 10 * time.Minute

type clientLimiter struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// RateLimiter hands out one token bucket per client address.
type RateLimiter struct {
	mu        sync.Mutex
	limit     rate.Limit
	burst     int
	clients   map[string]*clientLimiter
	lastEvict time.Time
	now       func() time.Time
}

// NewRateLimiter creates a limiter allowing requestsPerSecond sustained and
// burst requests at once per client. A zero rate disables limiting.
func NewRateLimiter(requestsPerSecond float64, burst int) *RateLimiter {
	if burst < 1 {
		burst = 1
	}
	return &RateLimiter{
		limit:   rate.Limit(requestsPerSecond),
		burst:   burst,
		clients: make(map[string]*clientLimiter),
		now:     time.Now,
	}
}

// Allow reports whether client may make a request now.
func (r *RateLimiter) Allow(client string) bool {
	if r.limit <= 0 {
		return true
	}

	r.mu.Lock()
	now := r.now()
	c, ok := r.clients[client]
	if !ok {
		c = &clientLimiter{limiter: rate.NewLimiter(r.limit, r.burst)}
		r.clients[client] = c
	}
	c.lastSeen = now
	r.evict(now)
	r.mu.Unlock()

	return c.limiter.AllowN(now, 1)
}

// evict drops limiters of clients idle for longer than clientIdleTimeout,
// at most once a minute. Must be called with mu held.
func (r *RateLimiter) evict(now time.Time) {
	if now.Sub(r.lastEvict) < time.Minute {
		return
	}
	r.lastEvict = now
	for addr, c := range r.clients {
		if now.Sub(c.lastSeen) > clientIdleTimeout {
			delete(r.clients, addr)
		}
	}
}

// Clients returns the number of tracked clients.
func (r *RateLimiter) Clients() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.clients)
}

// clientAddr returns the host part of the request's remote address.
func clientAddr(req *http.Request) string {
	host, _, err := net.SplitHostPort(req.RemoteAddr)
	if err != nil {
		return req.RemoteAddr
	}
	return host
}
