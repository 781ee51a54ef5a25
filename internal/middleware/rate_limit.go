package middleware

import (
	"net/http"
	"strconv"
	"time"

	"postman-backend/internal/logger"
	"postman-backend/internal/metrics"
	"postman-backend/internal/ratelimit"

	"github.com/gin-gonic/gin"
)

// RateLimit allows limit requests per client IP per window under key. A nil
// limiter or a non-positive limit disables the check. Limiter outages let
// requests through.
func RateLimit(rl ratelimit.Limiter, key string, limit int, window time.Duration) gin.HandlerFunc {
	if rl == nil || limit <= 0 {
		return func(c *gin.Context) {
			c.Next()
		}
	}

	return func(c *gin.Context) {
		allowed, count, err := rl.Allow(c.Request.Context(), key+":"+c.ClientIP(), limit, window)
		if err != nil {
			logger.AppLogger.Warn().Err(err).Str("key", key).Msg("Rate limit check failed, allowing request")
			c.Next()
			return
		}

		remaining := limit - count
		if remaining < 0 {
			remaining = 0
		}
		c.Header("X-RateLimit-Limit", strconv.Itoa(limit))
		c.Header("X-RateLimit-Remaining", strconv.Itoa(remaining))
		c.Header("X-RateLimit-Reset", strconv.FormatInt(time.Now().Add(window).Unix(), 10))

		if !allowed {
			metrics.ObserveRateLimited()
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{
				"message":     "Rate limit exceeded",
				"retry_after": window.Seconds(),
			})
			return
		}

		c.Next()
	}
}

// RelayRateLimit guards the endpoints that call out to target servers.
func RelayRateLimit(rl ratelimit.Limiter, perMinute int) gin.HandlerFunc {
	return RateLimit(rl, "relay", perMinute, time.Minute)
}
