package model

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Audit action types.
const (
	ActionHTTPRequest   = "http_request"
	ActionSubmitPackage = "submit_package"
)

// LogEntry is an audit record of an HTTP request or a form action.
// Fields carries action-specific context such as the submitted payload.
type LogEntry struct {
	ID         primitive.ObjectID     `bson:"_id,omitempty" json:"id"`
	Timestamp  time.Time              `bson:"timestamp" json:"timestamp"`
	Level      string                 `bson:"level" json:"level"`
	Message    string                 `bson:"message" json:"message"`
	RequestID  string                 `bson:"request_id,omitempty" json:"request_id,omitempty"`
	SessionID  string                 `bson:"session_id,omitempty" json:"session_id,omitempty"`
	Method     string                 `bson:"method,omitempty" json:"method,omitempty"`
	Path       string                 `bson:"path,omitempty" json:"path,omitempty"`
	StatusCode int                    `bson:"status_code,omitempty" json:"status_code,omitempty"`
	Duration   int64                  `bson:"duration_ms,omitempty" json:"duration_ms,omitempty"`
	IP         string                 `bson:"ip,omitempty" json:"ip,omitempty"`
	UserAgent  string                 `bson:"user_agent,omitempty" json:"user_agent,omitempty"`
	Error      string                 `bson:"error,omitempty" json:"error,omitempty"`
	ActionType string                 `bson:"action_type,omitempty" json:"action_type,omitempty"`
	Fields     map[string]interface{} `bson:"fields,omitempty" json:"fields,omitempty"`
}

// WithField adds a field to the entry's Fields map.
func (e *LogEntry) WithField(key string, value interface{}) *LogEntry {
	if e.Fields == nil {
		e.Fields = make(map[string]interface{})
	}
	e.Fields[key] = value
	return e
}

// LogQueryOptions filters audit log queries.
type LogQueryOptions struct {
	RequestID  string
	SessionID  string
	ActionType string
	Level      string
	StartTime  *time.Time
	EndTime    *time.Time
	Limit      int
	Skip       int
}
