package dto

import (
	"net/http"
	"time"

	"github.com/guttosm/package-form/internal/form"
)

const (
	// ErrCodeInvalidRequest indicates an invalid request.
	ErrCodeInvalidRequest = "invalid_request"
	// ErrCodeInternal indicates an internal server error.
	ErrCodeInternal = "internal_error"
	// ErrCodeNotFound indicates a resource was not found.
	ErrCodeNotFound = "not_found"
	// ErrCodeRateLimit indicates rate limit exceeded.
	ErrCodeRateLimit = "rate_limit_exceeded"
	// ErrCodeConflict indicates a conflict with current state.
	ErrCodeConflict = "conflict"
	// ErrCodeTimeout indicates a request timeout.
	ErrCodeTimeout = "timeout"
	// ErrCodeIncompleteSelection indicates a submit without all three selections.
	ErrCodeIncompleteSelection = "incomplete_selection"
	// ErrCodeRejected indicates the package API refused the package.
	ErrCodeRejected = "rejected"
	// ErrCodeUpstream indicates the package API could not be reached or answered garbage.
	ErrCodeUpstream = "upstream_error"
	// ErrCodeUnavailable indicates the package API is shed by the circuit breaker.
	ErrCodeUnavailable = "upstream_unavailable"
)

// SuccessResponse wraps successful API responses with metadata.
// @Description Successful API response wrapper
type SuccessResponse struct {
	// Data contains the actual response data
	Data interface{} `json:"data" swaggertype:"object"`
	// RequestID is the unique request identifier
	RequestID string `json:"request_id,omitempty" example:"550e8400-e29b-41d4-a716-446655440000"`
	// Timestamp is when the response was generated
	Timestamp time.Time `json:"timestamp" example:"2025-01-28T10:00:00Z"`
} // @name SuccessResponse

// ErrorResponse represents a standardized error response for the API.
// @Description Standardized error response
type ErrorResponse struct {
	Error   string `json:"error" example:"incomplete_selection"`
	Message string `json:"message,omitempty" example:"Select a customer, a warehouse and a package type"`
	// Details contains additional error details (optional)
	Details   map[string]string `json:"details,omitempty"`
	RequestID string            `json:"request_id,omitempty" example:"550e8400-e29b-41d4-a716-446655440000"`
	Timestamp time.Time         `json:"timestamp" example:"2025-01-28T10:00:00Z"`
} // @name ErrorResponse

// NewError creates a new ErrorResponse with the given code and message.
func NewError(code, message string) ErrorResponse {
	return ErrorResponse{
		Error:     code,
		Message:   message,
		Timestamp: time.Now(),
	}
}

// WithRequestID adds a request ID to the error response.
func (e ErrorResponse) WithRequestID(requestID string) ErrorResponse {
	e.RequestID = requestID
	return e
}

// WithDetail adds one entry to Details.
func (e ErrorResponse) WithDetail(key, value string) ErrorResponse {
	details := make(map[string]string, len(e.Details)+1)
	for k, v := range e.Details {
		details[k] = v
	}
	details[key] = value
	e.Details = details
	return e
}

// ErrCodeFromStatus returns the appropriate error code for an HTTP status.
func ErrCodeFromStatus(status int) string {
	switch status {
	case http.StatusBadRequest:
		return ErrCodeInvalidRequest
	case http.StatusNotFound:
		return ErrCodeNotFound
	case http.StatusConflict:
		return ErrCodeConflict
	case http.StatusUnprocessableEntity:
		return ErrCodeIncompleteSelection
	case http.StatusTooManyRequests:
		return ErrCodeRateLimit
	case http.StatusBadGateway:
		return ErrCodeUpstream
	case http.StatusServiceUnavailable:
		return ErrCodeUnavailable
	case http.StatusGatewayTimeout, http.StatusRequestTimeout:
		return ErrCodeTimeout
	default:
		return ErrCodeInternal
	}
}

// FormStateResponse is the JSON view of a form session.
// @Description Package form state with pending notifications
type FormStateResponse struct {
	SessionID     string              `json:"session_id" example:"0b7c3f9e-6a55-4c0e-9a59-3a4f3f0f9d11"`
	Form          form.Snapshot       `json:"form"`
	Notifications []form.Notification `json:"notifications"`
} // @name FormStateResponse

// SubmitResponse reports a successful package submission.
// @Description Result of a package submission
type SubmitResponse struct {
	Result  string        `json:"result" example:"created"`
	Message string        `json:"message" example:"Package created"`
	Form    form.Snapshot `json:"form"`
} // @name SubmitResponse

// Health probe statuses.
const (
	HealthStatusOK       = "ok"
	HealthStatusDegraded = "degraded"
)

// HealthResponse is the body of the liveness and readiness probes.
// @Description Health probe result
type HealthResponse struct {
	Status string `json:"status" example:"ok"`
	// Checks maps each dependency to "ok", its error, or a breaker state.
	Checks         map[string]string `json:"checks,omitempty"`
	ActiveSessions *int              `json:"active_sessions,omitempty" example:"3"`
} // @name HealthResponse
