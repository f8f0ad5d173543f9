package server

import (
	"sync"
	"time"

	"golang.org/x/time/rate"
)

// clientLimits keeps one token bucket per client address. Buckets idle
// for longer than idleAfter are dropped on the next sweep.
type clientLimits struct {
	mu        sync.Mutex
	limit     rate.Limit
	burst     int
	clients   map[string]*clientLimit
	lastSweep time.Time
}

type clientLimit struct {
	limiter *rate.Limiter
	seen    time.Time
}

const idleAfter = 10 * time.Minute

func newClientLimits(perSecond float64, burst int) *clientLimits {
	return &clientLimits{
		limit:   rate.Limit(perSecond),
		burst:   burst,
		clients: make(map[string]*clientLimit),
	}
}

func (c *clientLimits) allow(ip string, now time.Time) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	if now.Sub(c.lastSweep) > idleAfter {
		for k, cl := range c.clients {
			if now.Sub(cl.seen) > idleAfter {
				delete(c.clients, k)
			}
		}
		c.lastSweep = now
	}

	cl, ok := c.clients[ip]
	if !ok {
		cl = &clientLimit{limiter: rate.NewLimiter(c.limit, c.burst)}
		c.clients[ip] = cl
	}
	cl.seen = now
	return cl.limiter.AllowN(now, 1)
}
