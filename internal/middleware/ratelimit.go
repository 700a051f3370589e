package middleware

import (
	"fmt"
	"math"

	"github.com/gin-gonic/gin"

	"voicenote/internal/apperr"
	"voicenote/internal/ratelimit"
)

// RateLimit returns a gin middleware enforcing the given budgets for the
// request identity. A denied request is answered with 429 and a
// human-readable reason before the handler runs, so the external provider
// is never invoked for it.
func RateLimit(limiter *ratelimit.Limiter, budgets ...ratelimit.Budget) gin.HandlerFunc {
	return func(c *gin.Context) {
		decision := limiter.Allow(Identity(c), budgets...)
		if !decision.Allowed {
			c.Header("Retry-After", fmt.Sprintf("%d", int(math.Ceil(decision.RetryAfter.Seconds()))))
			appErr := apperr.RateLimited(decision.Budget.String())
			c.AbortWithStatusJSON(appErr.HTTPStatus, appErr.ToResponse())
			return
		}
		c.Next()
	}
}
