package ginserver

import (
	"log/slog"
	"net/http"
	"sync"
	"time"

	gin "github.com/gin-gonic/gin"
	"golang.org/x/time/rate"
)

type clientLimiter struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// RateLimiter throttles requests per client IP with a token bucket. Buckets
// idle long enough to refill completely are dropped on a later access.
type RateLimiter struct {
	perMinute int
	burst     int
	logger    *slog.Logger
	now       func() time.Time

	mu        sync.Mutex
	limiters  map[string]*clientLimiter
	idleAfter time.Duration
	lastSweep time.Time
}

func NewRateLimiter(perMinute, burst int, logger *slog.Logger) *RateLimiter {
	if burst < 1 {
		burst = 1
	}
	l := &RateLimiter{
		perMinute: perMinute,
		burst:     burst,
		logger:    logger,
		now:       time.Now,
		limiters:  make(map[string]*clientLimiter),
		idleAfter: time.Minute,
	}
	if perMinute > 0 {
		if refill := time.Duration(burst) * (time.Minute / time.Duration(perMinute)); refill > l.idleAfter {
			l.idleAfter = refill
		}
	}
	return l
}

func (l *RateLimiter) allow(ip string) bool {
	now := l.now()
	l.mu.Lock()
	defer l.mu.Unlock()
	l.sweepLocked(now)
	entry, ok := l.limiters[ip]
	if !ok {
		entry = &clientLimiter{limiter: rate.NewLimiter(rate.Every(time.Minute/time.Duration(l.perMinute)), l.burst)}
		l.limiters[ip] = entry
	}
	entry.lastSeen = now
	return entry.limiter.AllowN(now, 1)
}

func (l *RateLimiter) sweepLocked(now time.Time) {
	if now.Sub(l.lastSweep) < l.idleAfter {
		return
	}
	l.lastSweep = now
	for ip, entry := range l.limiters {
		if now.Sub(entry.lastSeen) >= l.idleAfter {
			delete(l.limiters, ip)
		}
	}
}

// Handle is a no-op when the limiter is disabled (perMinute <= 0).
func (l *RateLimiter) Handle(c *gin.Context) {
	if l == nil || l.perMinute <= 0 {
		c.Next()
		return
	}
	ip := c.ClientIP()
	if !l.allow(ip) {
		if l.logger != nil {
			l.logger.Warn("rate limit exceeded", "ip", ip, "path", c.FullPath())
		}
		c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{"error": "too many requests, please try again later."})
		return
	}
	c.Next()
}
