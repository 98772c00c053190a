package ratelimit

import (
	"fmt"
	"net/http"

	"crm-automation/internal/observability"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// Middleware limits requests per organization. orgKey is the gin context key the
// organization middleware stores the tenant under; requests without one pass through.
func (s *Service) Middleware(orgKey string) gin.HandlerFunc {
	if s == nil {
		return func(c *gin.Context) { c.Next() }
	}
	return func(c *gin.Context) {
		value, exists := c.Get(orgKey)
		orgID, ok := value.(uuid.UUID)
		if !exists || !ok {
			c.Next()
			return
		}

		result := s.CheckRateLimit(c.Request.Context(), orgID)

		c.Header("X-RateLimit-Limit", fmt.Sprintf("%d", result.Limit))
		c.Header("X-RateLimit-Remaining", fmt.Sprintf("%d", result.Remaining))
		c.Header("X-RateLimit-Reset", fmt.Sprintf("%d", result.ResetAt.Unix()))

		if !result.Allowed {
			c.Header("Retry-After", fmt.Sprintf("%d", (result.RetryAfterMs+999)/1000))
			s.logger.Warn(observability.WithFields(c.Request.Context(),
				observability.Field{Key: "organization_id", Value: orgID},
				observability.Field{Key: "limit", Value: result.Limit},
				observability.Field{Key: "retry_after_ms", Value: result.RetryAfterMs},
			), "event ingest rate limit exceeded")

			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{
				"error":       "Rate limit exceeded",
				"code":        "RATE_LIMIT_EXCEEDED",
				"limit":       result.Limit,
				"retry_after": (result.RetryAfterMs + 999) / 1000,
				"reset_at":    result.ResetAt.Unix(),
			})
			return
		}

		c.Next()
	}
}
