// Package middleware provides the gin middleware chain for the voicenote
// service: recovery, request-id, request logging, Basic authentication, and
// rate limiting. Auth runs before rate limiting so budgets are keyed by the
// authenticated identity.
package middleware

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// Context keys set by this package.
const (
	// ContextRequestID holds the opaque request id.
	ContextRequestID = "request_id"
	// ContextIdentity holds the rate-limit identity (username or client IP).
	ContextIdentity = "identity"
)

// RequestID injects a unique X-Request-Id header into every request and
// response. A client-supplied id is adopted only when it is a well-formed
// UUID: the id ends up in file names downstream, so anything else is
// replaced with a fresh one.
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader("X-Request-Id")
		if _, err := uuid.Parse(id); err != nil {
			id = uuid.New().String()
		}
		c.Set(ContextRequestID, id)
		c.Header("X-Request-Id", id)
		c.Next()
	}
}

// GetRequestID returns the request id set by RequestID, or "" if absent.
func GetRequestID(c *gin.Context) string {
	if id, ok := c.Get(ContextRequestID); ok {
		if s, ok := id.(string); ok {
			return s
		}
	}
	return ""
}

// Identity returns the rate-limit identity for the request: the
// authenticated username when present, else the client address. Omitting
// credentials therefore never bypasses rate limiting.
func Identity(c *gin.Context) string {
	if v, ok := c.Get(ContextIdentity); ok {
		if s, ok := v.(string); ok && s != "" {
			return s
		}
	}
	return c.ClientIP()
}
