package middleware

import (
	"github.com/gin-gonic/gin"

	"voicenote/internal/apperr"
	"voicenote/internal/auth"
)

// BasicAuth returns a gin middleware that verifies HTTP Basic credentials.
// On success the username becomes the request identity; on failure the
// request is rejected with 401 before any handler or rate-limit logic runs.
func BasicAuth(verifier *auth.Verifier) gin.HandlerFunc {
	return func(c *gin.Context) {
		username, password, ok := c.Request.BasicAuth()
		if !ok || !verifier.Verify(username, password) {
			c.Header("WWW-Authenticate", `Basic realm="voicenote"`)
			appErr := apperr.Unauthorized("")
			c.AbortWithStatusJSON(appErr.HTTPStatus, appErr.ToResponse())
			return
		}
		c.Set(ContextIdentity, username)
		c.Next()
	}
}
