package middleware

import (
	"net/http"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"golang.org/x/time/rate"
)

func TestRateLimitMiddleware(t *testing.T) {
	r := gin.New()
	r.GET("/limited", RateLimitMiddleware(2), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})

	assert.Equal(t, http.StatusOK, doGet(r, "/limited", "").Code)
	assert.Equal(t, http.StatusTooManyRequests, doGet(r, "/limited", "").Code)
}

func TestLimiterSet_ExpiresIdleKeys(t *testing.T) {
	s := &limiterSet{limit: rate.Every(time.Hour), burst: 1, limiters: map[string]*rateLimiter{}}
	now := time.Now()

	assert.True(t, s.allow("a", now))
	assert.False(t, s.allow("a", now))
	assert.True(t, s.allow("b", now), "keys are independent")

	later := now.Add(limiterIdleTTL + time.Second)
	assert.True(t, s.allow("c", later))
	_, kept := s.limiters["a"]
	assert.False(t, kept)
}
