package upstream

import (
	"errors"
	"fmt"
	"net/http"
)

// StatusError is a non-2xx response to a list request.
type StatusError struct {
	Endpoint string
	Code     int
	Body     string
}

func (e *StatusError) Error() string {
	if e.Body == "" {
		return fmt.Sprintf("%s: unexpected status %d", e.Endpoint, e.Code)
	}
	return fmt.Sprintf("%s: unexpected status %d: %s", e.Endpoint, e.Code, e.Body)
}

// RejectedError is a non-2xx response to a create request whose body
// carried an explanation. Message is shown to the user as is.
type RejectedError struct {
	Code    int
	Message string
}

func (e *RejectedError) Error() string {
	return e.Message
}

// IsOutage reports whether err says the upstream itself is unhealthy.
// It is the circuit breaker classifier for this client: rejections of a
// bad request are an answer, not an outage.
func IsOutage(err error) bool {
	var rejected *RejectedError
	if errors.As(err, &rejected) {
		return rejected.Code >= http.StatusInternalServerError
	}
	var status *StatusError
	if errors.As(err, &status) {
		return status.Code >= http.StatusInternalServerError || status.Code == http.StatusTooManyRequests
	}
	return true
}
