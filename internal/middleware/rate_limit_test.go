package middleware

import (
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newLimitedRouter(rl *RateLimiter) *gin.Engine {
	router := gin.New()
	router.Use(rl.Middleware())
	router.POST("/api/analyze", func(c *gin.Context) {
		c.Status(http.StatusOK)
	})
	return router
}

func doFrom(router *gin.Engine, remoteAddr string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req := httptest.NewRequest("POST", "/api/analyze", nil)
	req.RemoteAddr = remoteAddr
	router.ServeHTTP(w, req)
	return w
}

func TestRateLimiter_SingleEndpointQuota(t *testing.T) {
	rl := NewRateLimiter("analyze", PerMinute(10), 10)
	defer rl.Stop()
	router := newLimitedRouter(rl)

	for i := 0; i < 10; i++ {
		w := doFrom(router, "10.0.0.1:5000")
		require.Equal(t, http.StatusOK, w.Code, "request %d", i+1)
	}

	w := doFrom(router, "10.0.0.1:5000")
	assert.Equal(t, http.StatusTooManyRequests, w.Code)
	assert.Contains(t, w.Body.String(), "Rate limit exceeded")

	retryAfter, err := strconv.Atoi(w.Header().Get("Retry-After"))
	require.NoError(t, err)
	assert.GreaterOrEqual(t, retryAfter, 1)
	assert.LessOrEqual(t, retryAfter, 6)
}

func TestRateLimiter_PerClient(t *testing.T) {
	rl := NewRateLimiter("analyze-all", PerHour(3), 3)
	defer rl.Stop()
	router := newLimitedRouter(rl)

	for i := 0; i < 3; i++ {
		assert.Equal(t, http.StatusOK, doFrom(router, "10.0.0.1:5000").Code)
	}
	assert.Equal(t, http.StatusTooManyRequests, doFrom(router, "10.0.0.1:5000").Code)

	// Another client has its own bucket
	assert.Equal(t, http.StatusOK, doFrom(router, "10.0.0.2:5000").Code)
}

func TestRateLimiter_RejectionDoesNotConsume(t *testing.T) {
	rl := NewRateLimiter("analyze-all", PerHour(3), 3)
	defer rl.Stop()
	router := newLimitedRouter(rl)

	for i := 0; i < 3; i++ {
		doFrom(router, "10.0.0.1:5000")
	}
	first := doFrom(router, "10.0.0.1:5000")
	second := doFrom(router, "10.0.0.1:5000")

	assert.Equal(t, first.Header().Get("Retry-After"), second.Header().Get("Retry-After"))
}

func TestRateLimiter_EvictsIdleVisitors(t *testing.T) {
	rl := newRateLimiter("test", PerMinute(60), 1, 10*time.Millisecond)
	defer rl.Stop()

	rl.getVisitor("10.0.0.1")
	assert.Eventually(t, func() bool {
		rl.mu.Lock()
		defer rl.mu.Unlock()
		return len(rl.visitors) == 0
	}, time.Second, 5*time.Millisecond)
}

func TestRateLimiter_StopIsIdempotent(t *testing.T) {
	rl := NewRateLimiter("test", PerMinute(10), 10)
	rl.Stop()
	rl.Stop()
}

func TestPerMinutePerHour(t *testing.T) {
	assert.InDelta(t, 10.0/60.0, float64(PerMinute(10)), 1e-9)
	assert.InDelta(t, 3.0/3600.0, float64(PerHour(3)), 1e-9)
}
