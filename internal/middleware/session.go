package middleware

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const (
	// SessionCookie carries the form session id for browsers.
	SessionCookie = "pf_session"
	// SessionHeader carries the form session id for API clients. It takes
	// precedence over the cookie.
	SessionHeader = "X-Form-Session"

	// SessionIDKey is the context key for the session id.
	SessionIDKey ContextKey = "session_id"
)

// SessionConfig configures the session middleware.
type SessionConfig struct {
	// MaxAge is the cookie lifetime.
	MaxAge time.Duration
	// Secure marks the cookie HTTPS only.
	Secure bool
}

// Session resolves the form session id from the X-Form-Session header or
// the pf_session cookie. Missing or malformed ids are replaced by a new
// UUID, which means a fresh form. The id is echoed in both places.
func Session(cfg SessionConfig) gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(SessionHeader)
		if id == "" {
			id, _ = c.Cookie(SessionCookie)
		}
		if _, err := uuid.Parse(id); err != nil {
			id = uuid.NewString()
		}

		c.Set(string(SessionIDKey), id)
		c.Header(SessionHeader, id)
		c.SetSameSite(http.SameSiteLaxMode)
		c.SetCookie(SessionCookie, id, int(cfg.MaxAge.Seconds()), "/", "", cfg.Secure, true)
		c.Next()
	}
}

// GetSessionID retrieves the session id from the gin context.
func GetSessionID(c *gin.Context) string {
	return c.GetString(string(SessionIDKey))
}
