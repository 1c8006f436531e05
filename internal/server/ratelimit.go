package server

import (
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
)

// Limiter caps how many times a single client may hit an endpoint within a
// fixed window. Counters reset when the window elapses.
type Limiter struct {
	mu     sync.Mutex
	limit  int
	window time.Duration
	counts map[string]*windowCount
	now    func() time.Time
}

type windowCount struct {
	count     int
	lastReset time.Time
}

// NewLimiter builds a Limiter allowing limit calls per window per client key.
func NewLimiter(limit int, window time.Duration) *Limiter {
	return &Limiter{
		limit:  limit,
		window: window,
		counts: make(map[string]*windowCount),
		now:    time.Now,
	}
}

// Allow reports whether the given key may proceed, counting the attempt.
func (l *Limiter) Allow(key string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	wc, ok := l.counts[key]
	if !ok {
		wc = &windowCount{lastReset: now}
		l.counts[key] = wc
	}
	if now.Sub(wc.lastReset) >= l.window {
		wc.count = 0
		wc.lastReset = now
	}
	wc.count++
	return wc.count <= l.limit
}

// RateLimit rejects requests over the per-IP budget with 429.
func RateLimit(l *Limiter) gin.HandlerFunc {
	return func(c *gin.Context) {
		if !l.Allow(c.ClientIP()) {
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{"error": "too many requests"})
			return
		}
		c.Next()
	}
}
