package middleware

import (
	"fmt"
	"net/http"
	"runtime/debug"

	"github.com/gin-gonic/gin"

	"voicenote/internal/apperr"
	"voicenote/internal/logger"
)

// Recovery returns a gin middleware that recovers from panics, logs the
// stack, and responds with the generic internal error. No internal detail
// reaches the caller.
func Recovery(log *logger.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if err := recover(); err != nil {
				log.Error("Panic recovered", map[string]interface{}{
					"error":               fmt.Sprintf("%v", err),
					"stack":               string(debug.Stack()),
					"path":                c.Request.URL.Path,
					"method":              c.Request.Method,
					logger.FieldRequestID: GetRequestID(c),
				})
				c.AbortWithStatusJSON(http.StatusInternalServerError,
					apperr.Internal(nil).ToResponse())
			}
		}()
		c.Next()
	}
}
