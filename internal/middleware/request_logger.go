package middleware

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/guttosm/package-form/internal/domain/model"
	"github.com/guttosm/package-form/internal/logger"
)

// probePaths are polled by orchestrators and scrapers. Successful probes are
// logged at debug level and never audited.
var probePaths = map[string]bool{
	"/healthz": true,
	"/readyz":  true,
	"/metrics": true,
}

// RequestLogger logs every request with its request and session ids, and
// records it in the audit log when audit is non-nil.
func RequestLogger(audit *AsyncLogger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		c.Next()

		entry := newLogEntry(c, model.ActionHTTPRequest, "HTTP request")
		entry.Timestamp = start
		entry.StatusCode = c.Writer.Status()
		entry.Duration = time.Since(start).Milliseconds()
		entry.Level = levelForStatus(entry.StatusCode)
		if last := c.Errors.Last(); last != nil {
			entry.Error = last.Error()
		}

		probe := probePaths[entry.Path]
		level := logger.ParseLevel(entry.Level)
		if probe && entry.StatusCode < 400 {
			level = zerolog.DebugLevel
		}

		log := logger.Logger()
		log.WithLevel(level).
			Str("request_id", entry.RequestID).
			Str("session_id", entry.SessionID).
			Str("method", entry.Method).
			Str("path", entry.Path).
			Int("status_code", entry.StatusCode).
			Int64("duration_ms", entry.Duration).
			Str("ip", entry.IP).
			Str("user_agent", entry.UserAgent).
			Msg("HTTP request")

		if !probe {
			audit.Log(entry)
		}
	}
}

// levelForStatus maps a response status to a log level name.
func levelForStatus(statusCode int) string {
	switch {
	case statusCode >= 500:
		return "error"
	case statusCode >= 400:
		return "warn"
	default:
		return "info"
	}
}
