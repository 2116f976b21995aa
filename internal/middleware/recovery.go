package middleware

import (
	"net/http"
	"runtime/debug"

	"github.com/gin-gonic/gin"

	"github.com/guttosm/package-form/internal/domain/dto"
	"github.com/guttosm/package-form/internal/i18n"
	"github.com/guttosm/package-form/internal/logger"
)

// Recovery turns a panic into a 500, see abortInternal.
func Recovery() gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			p := recover()
			if p == nil {
				return
			}

			requestID := GetRequestID(c)
			log := logger.Logger()
			log.Error().
				Str("request_id", requestID).
				Str("session_id", GetSessionID(c)).
				Str("path", c.Request.URL.Path).
				Interface("panic", p).
				Bytes("stack", debug.Stack()).
				Msg("PANIC recovered")

			abortInternal(c)
		}()
		c.Next()
	}
}

// abortInternal answers 500 in the format the client asked for. JSON is the
// default; browsers get the translated message as plain text. A response
// that was already started is only aborted.
func abortInternal(c *gin.Context) {
	c.Abort()
	if c.Writer.Written() {
		return
	}

	message := i18n.GetTranslator().Translate(i18n.ErrKeyInternalError, i18n.GetLocale(c))
	if c.NegotiateFormat(gin.MIMEJSON, gin.MIMEHTML, gin.MIMEPlain) == gin.MIMEJSON {
		c.JSON(http.StatusInternalServerError,
			dto.NewError(dto.ErrCodeInternal, message).WithRequestID(GetRequestID(c)))
		return
	}
	c.String(http.StatusInternalServerError, message)
}
