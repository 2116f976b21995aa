package middleware

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/guttosm/package-form/internal/domain/model"
)

// newLogEntry starts an audit entry describing the current request.
func newLogEntry(c *gin.Context, actionType, message string) *model.LogEntry {
	return &model.LogEntry{
		Timestamp:  time.Now(),
		Level:      "info",
		Message:    message,
		RequestID:  GetRequestID(c),
		SessionID:  GetSessionID(c),
		Method:     c.Request.Method,
		Path:       c.Request.URL.Path,
		IP:         c.ClientIP(),
		UserAgent:  c.Request.UserAgent(),
		ActionType: actionType,
	}
}

// AuditLog records a form action in the audit log. A non-nil err marks the
// entry as a failure.
func AuditLog(audit *AsyncLogger, c *gin.Context, actionType, message string, err error, fields map[string]interface{}) {
	if audit == nil {
		return
	}

	entry := newLogEntry(c, actionType, message)
	for k, v := range fields {
		entry.WithField(k, v)
	}
	if err != nil {
		entry.Level = "warn"
		entry.Error = err.Error()
	}

	audit.Log(entry)
}

// AuditSubmission records the outcome of a package submission.
func AuditSubmission(audit *AsyncLogger, c *gin.Context, result string, payload model.PackagePayload, err error) {
	AuditLog(audit, c, model.ActionSubmitPackage, "Package submission", err, map[string]interface{}{
		"result":          result,
		"customer_id":     payload.CustomerID.String(),
		"warehouse_id":    payload.WarehouseID.String(),
		"package_type_id": payload.PackageTypeID.String(),
	})
}
