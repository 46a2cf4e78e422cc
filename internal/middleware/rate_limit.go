package middleware

import (
	"math"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	apperrors "github.com/guindo/fireplan-api/pkg/errors"
	"github.com/guindo/fireplan-api/pkg/logger"
	"github.com/guindo/fireplan-api/pkg/metrics"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

const defaultCleanupInterval = time.Minute

// RateLimiter implements an in-memory token bucket per client IP
type RateLimiter struct {
	name     string
	visitors map[string]*rate.Limiter
	mu       sync.Mutex
	r        rate.Limit
	b        int

	stop     chan struct{}
	stopOnce sync.Once
	done     chan struct{}
}

// NewRateLimiter creates a new rate limiter and starts its cleanup loop.
// name labels metrics and logs; r is the refill rate and b the burst size.
// Call Stop to end the cleanup loop.
func NewRateLimiter(name string, r rate.Limit, b int) *RateLimiter {
	return newRateLimiter(name, r, b, defaultCleanupInterval)
}

func newRateLimiter(name string, r rate.Limit, b int, cleanupInterval time.Duration) *RateLimiter {
	rl := &RateLimiter{
		name:     name,
		visitors: make(map[string]*rate.Limiter),
		r:        r,
		b:        b,
		stop:     make(chan struct{}),
		done:     make(chan struct{}),
	}

	go rl.cleanupVisitors(cleanupInterval)

	return rl
}

// PerMinute returns a limit of n requests per minute
func PerMinute(n int) rate.Limit {
	return rate.Every(time.Minute / time.Duration(n))
}

// PerHour returns a limit of n requests per hour
func PerHour(n int) rate.Limit {
	return rate.Every(time.Hour / time.Duration(n))
}

// getVisitor returns the rate limiter for a given IP address
func (rl *RateLimiter) getVisitor(ip string) *rate.Limiter {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	limiter, exists := rl.visitors[ip]
	if !exists {
		limiter = rate.NewLimiter(rl.r, rl.b)
		rl.visitors[ip] = limiter
	}

	return limiter
}

// cleanupVisitors drops visitors whose bucket has refilled
func (rl *RateLimiter) cleanupVisitors(interval time.Duration) {
	defer close(rl.done)

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-rl.stop:
			return
		case <-ticker.C:
			rl.evictIdle()
		}
	}
}

func (rl *RateLimiter) evictIdle() {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	for ip, limiter := range rl.visitors {
		if limiter.Tokens() >= float64(rl.b) {
			delete(rl.visitors, ip)
		}
	}
}

// Stop ends the cleanup loop and waits for it to exit. It is safe to call
// more than once.
func (rl *RateLimiter) Stop() {
	rl.stopOnce.Do(func() {
		close(rl.stop)
	})
	<-rl.done
}

// Middleware returns a Gin middleware function for rate limiting
func (rl *RateLimiter) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		ip := c.ClientIP()
		limiter := rl.getVisitor(ip)

		res := limiter.Reserve()
		if !res.OK() || res.Delay() > 0 {
			retryAfter := 1
			if res.OK() {
				retryAfter = max(1, int(math.Ceil(res.Delay().Seconds())))
				res.Cancel()
			}

			metrics.RateLimitRejections.WithLabelValues(rl.name).Inc()
			logger.Debug("Rate limit exceeded",
				zap.String("limiter", rl.name),
				zap.String("client_ip", ip),
				zap.Int("retry_after", retryAfter),
			)

			_ = c.Error(apperrors.ErrRateLimited)
			c.Header("Retry-After", strconv.Itoa(retryAfter))
			c.JSON(http.StatusTooManyRequests, gin.H{
				"error": "Rate limit exceeded. Please try again later.",
			})
			c.Abort()
			return
		}

		c.Next()
	}
}
