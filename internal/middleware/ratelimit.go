package middleware

import (
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"github.com/BruksfildServices01/fieldservice-availability/internal/httperr"
)

const (
	limiterSweepEvery = time.Minute
	limiterIdleAfter  = 3 * time.Minute
)

type ipClient struct {
	lim  *rate.Limiter
	seen time.Time
}

// ipLimiters holds one token bucket per client IP.
type ipLimiters struct {
	mu      sync.Mutex
	clients map[string]*ipClient
	rps     rate.Limit
	burst   int
	now     func() time.Time
}

func newIPLimiters(rps float64, burst int) *ipLimiters {
	return &ipLimiters{
		clients: make(map[string]*ipClient),
		rps:     rate.Limit(rps),
		burst:   burst,
		now:     time.Now,
	}
}

func (s *ipLimiters) get(ip string) *rate.Limiter {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	if c, ok := s.clients[ip]; ok {
		c.seen = now
		return c.lim
	}

	l := rate.NewLimiter(s.rps, s.burst)
	s.clients[ip] = &ipClient{lim: l, seen: now}
	return l
}

// evictIdle drops clients not seen for longer than idle.
func (s *ipLimiters) evictIdle(idle time.Duration) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	for ip, c := range s.clients {
		if now.Sub(c.seen) > idle {
			delete(s.clients, ip)
		}
	}
}

func (s *ipLimiters) size() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.clients)
}

// RateLimitMiddleware limits requests per client IP. A non-positive rps
// disables limiting. Clients idle for a few minutes are forgotten.
func RateLimitMiddleware(rps float64, burst int, log *zap.Logger) gin.HandlerFunc {
	if rps <= 0 {
		return func(c *gin.Context) { c.Next() }
	}
	if burst <= 0 {
		burst = 1
	}

	store := newIPLimiters(rps, burst)

	// cleanup stale entries every minute
	go func() {
		ticker := time.NewTicker(limiterSweepEvery)
		defer ticker.Stop()
		for range ticker.C {
			store.evictIdle(limiterIdleAfter)
		}
	}()

	return rateLimit(store, log)
}

func rateLimit(store *ipLimiters, log *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		ip := c.ClientIP()
		if !store.get(ip).Allow() {
			log.Warn("rate limit exceeded", zap.String("ip", ip))
			httperr.TooManyRequests(c, "rate_limited", "Too many requests. Try again later.")
			c.Abort()
			return
		}
		c.Next()
	}
}
