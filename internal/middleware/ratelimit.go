package middleware

import (
	"math"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	appErrors "github.com/noah-isme/univ-api/pkg/errors"
	"github.com/noah-isme/univ-api/pkg/ratelimit"
	"github.com/noah-isme/univ-api/pkg/response"
)

// RateLimitObserver counts rejected requests.
type RateLimitObserver interface {
	ObserveRateLimited(path string)
}

// RateLimit rejects clients that exceed limiter's budget, keyed by client IP and route.
// Limiter failures let the request through.
func RateLimit(limiter ratelimit.Limiter, observer RateLimitObserver, logger *zap.Logger) gin.HandlerFunc {
	if logger == nil {
		logger = zap.NewNop()
	}
	return func(c *gin.Context) {
		if limiter == nil {
			c.Next()
			return
		}

		key := c.ClientIP() + ":" + c.FullPath()
		decision, err := limiter.Allow(c.Request.Context(), key)
		if err != nil {
			logger.Warn("rate limiter unavailable", zap.Error(err))
			c.Next()
			return
		}

		c.Header("X-RateLimit-Limit", strconv.Itoa(decision.Limit))
		c.Header("X-RateLimit-Remaining", strconv.Itoa(decision.Remaining))
		if !decision.Allowed {
			c.Header("Retry-After", strconv.Itoa(int(math.Ceil(decision.RetryAfter.Seconds()))))
			if observer != nil {
				observer.ObserveRateLimited(c.FullPath())
			}
			response.Abort(c, appErrors.ErrTooManyRequests)
			return
		}
		c.Next()
	}
}
