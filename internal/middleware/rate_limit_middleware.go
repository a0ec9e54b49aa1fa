// internal/middleware/rate_limit_middleware.go
package middleware

import (
	"context"
	"net/http"
	"strconv"

	"bizcare-service/internal/pkg/response"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type Limiter interface {
	Allow(ctx context.Context, scope, clientID string) (bool, int64, error)
}

// RateLimit limits requests per client IP within scope. When the limiter
// backend fails the request is let through and the failure logged.
func RateLimit(limiter Limiter, scope string, limit int64, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		allowed, remaining, err := limiter.Allow(c.Request.Context(), scope, c.ClientIP())
		if err != nil {
			logger.Warn("rate limiter unavailable",
				zap.String("scope", scope),
				zap.String("request_id", GetRequestID(c)),
				zap.Error(err),
			)
			c.Next()
			return
		}

		c.Header("X-RateLimit-Limit", strconv.FormatInt(limit, 10))
		c.Header("X-RateLimit-Remaining", strconv.FormatInt(remaining, 10))

		if !allowed {
			response.Error(c, http.StatusTooManyRequests, "too many requests, please try again later", nil)
			return
		}
		c.Next()
	}
}
