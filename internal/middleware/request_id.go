// Package middleware provides the gin middleware of the package form service.
package middleware

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/guttosm/package-form/internal/upstream"
)

// RequestIDHeader is echoed on every response and forwarded to the package API.
const RequestIDHeader = upstream.RequestIDHeader

// ContextKey names values stored on the gin context.
type ContextKey string

const RequestIDKey ContextKey = "request_id"

const maxRequestIDLength = 128

// RequestID assigns each request an id. A well-formed client X-Request-ID is
// kept, anything else is replaced by a UUID v4. The id is also stored on the
// request context so package API calls made for the request carry it.
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(RequestIDHeader)
		if !validRequestID(id) {
			id = uuid.NewString()
		}

		c.Set(string(RequestIDKey), id)
		c.Header(RequestIDHeader, id)
		c.Request = c.Request.WithContext(upstream.WithRequestID(c.Request.Context(), id))
		c.Next()
	}
}

// GetRequestID returns the id assigned by RequestID, or "".
func GetRequestID(c *gin.Context) string {
	return c.GetString(string(RequestIDKey))
}

// validRequestID accepts short ids of printable ASCII without spaces, which
// keeps them safe to echo in headers and log lines.
func validRequestID(id string) bool {
	if id == "" || len(id) > maxRequestIDLength {
		return false
	}
	for i := 0; i < len(id); i++ {
		if id[i] <= ' ' || id[i] > '~' {
			return false
		}
	}
	return true
}
