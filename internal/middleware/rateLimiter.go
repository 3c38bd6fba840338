package middleware

import (
	"sync"
	"time"

	"github.com/akolanti/DocRouter/internal/config"
	"golang.org/x/time/rate"
)

var limiterInstance = NewIPRateLimiter(rate.Limit(config.RATE_LIMIT_PER_SECOND), config.BURST_RATE_LIMIT_PER_SECOND, config.RATE_LIMITER_IDLE_TTL)

type clientLimiter struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// IPRateLimiter hands out one token bucket per client address and forgets
// addresses that stay quiet for longer than idleTTL.
type IPRateLimiter struct {
	clients   map[string]*clientLimiter
	mu        sync.Mutex
	rateLimit rate.Limit
	burstRate int
	idleTTL   time.Duration
	lastSweep time.Time
	now       func() time.Time
}

func NewIPRateLimiter(r rate.Limit, b int, idleTTL time.Duration) *IPRateLimiter {
	return &IPRateLimiter{
		clients:   make(map[string]*clientLimiter),
		rateLimit: r,
		burstRate: b,
		idleTTL:   idleTTL,
		now:       time.Now,
	}
}

func (i *IPRateLimiter) GetLimiter(ip string) *rate.Limiter {
	i.mu.Lock()
	defer i.mu.Unlock()

	now := i.now()
	i.sweep(now)

	client, exists := i.clients[ip]
	if !exists {
		client = &clientLimiter{limiter: rate.NewLimiter(i.rateLimit, i.burstRate)}
		i.clients[ip] = client
	}
	client.lastSeen = now
	return client.limiter
}

// Len reports how many client addresses are currently tracked.
func (i *IPRateLimiter) Len() int {
	i.mu.Lock()
	defer i.mu.Unlock()
	return len(i.clients)
}

// sweep runs at most once per idleTTL so lookups stay O(1) between sweeps.
// Caller holds mu.
func (i *IPRateLimiter) sweep(now time.Time) {
	if i.idleTTL <= 0 || now.Sub(i.lastSweep) < i.idleTTL {
		return
	}
	i.lastSweep = now
	for ip, client := range i.clients {
		if now.Sub(client.lastSeen) >= i.idleTTL {
			delete(i.clients, ip)
		}
	}
}
