package middleware

import (
	"github.com/gin-gonic/gin"

	"github.com/guttosm/package-form/internal/logger"
)

// ErrorHandler logs the errors handlers attached with c.Error. When the
// handler wrote nothing it answers 500 like Recovery does.
func ErrorHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) == 0 {
			return
		}

		log := logger.Logger()
		log.Error().
			Str("request_id", GetRequestID(c)).
			Str("session_id", GetSessionID(c)).
			Strs("errors", c.Errors.Errors()).
			Str("method", c.Request.Method).
			Str("path", c.Request.URL.Path).
			Msg("Request failed")

		abortInternal(c)
	}
}
