package middleware

import (
	"math"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"

	"contacts-api/internal/application/ports"
	"contacts-api/internal/infrastructure/metrics"
)

// RateLimitMiddleware gives every client one budget per endpoint. It must be
// mounted on a group so that FullPath is the route template.
func RateLimitMiddleware(limiter ports.RateLimiter, logger *zap.Logger, mCounter *prometheus.CounterVec) gin.HandlerFunc {
	return func(c *gin.Context) {
		if limiter == nil {
			c.Next()
			return
		}

		key := RateLimitKey(c)

		decision, err := limiter.Allow(c.Request.Context(), key)
		if err != nil {
			logger.Error("rate limiter unavailable", zap.String("key", key), zap.Error(err))
			c.AbortWithStatusJSON(
				http.StatusServiceUnavailable,
				gin.H{"error": "rate limiter unavailable"},
			)
			return
		}

		if !decision.Allowed {
			if mCounter != nil {
				mCounter.WithLabelValues(metrics.RateLimited).Inc()
			}
			logger.Warn("rate limit exceeded",
				zap.String("key", key),
				zap.Duration("retry_after", decision.RetryAfter),
			)

			c.Header("Retry-After", strconv.Itoa(retryAfterSeconds(decision)))
			c.AbortWithStatusJSON(
				http.StatusTooManyRequests,
				gin.H{"error": "too many requests"},
			)
			return
		}

		c.Next()
	}
}

func RateLimitKey(c *gin.Context) string {
	return "rl:" + c.ClientIP() + ":" + c.Request.Method + ":" + c.FullPath()
}

func retryAfterSeconds(d ports.RateDecision) int {
	s := int(math.Ceil(d.RetryAfter.Seconds()))
	if s < 1 {
		return 1
	}
	return s
}
