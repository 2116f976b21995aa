package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func TestDefaultTimeoutConfig(t *testing.T) {
	assert.Equal(t, 30*time.Second, DefaultTimeoutConfig().Timeout)
}

func TestTimeout(t *testing.T) {
	tests := []struct {
		name           string
		timeout        time.Duration
		handler        gin.HandlerFunc
		expectedStatus int
		expectedBody   string
	}{
		{
			name:    "completes in time",
			timeout: time.Second,
			handler: func(c *gin.Context) {
				c.String(http.StatusOK, "ok")
			},
			expectedStatus: http.StatusOK,
			expectedBody:   "ok",
		},
		{
			name:    "deadline passed without response",
			timeout: 10 * time.Millisecond,
			handler: func(c *gin.Context) {
				<-c.Request.Context().Done()
			},
			expectedStatus: http.StatusGatewayTimeout,
			expectedBody:   "timeout",
		},
		{
			name:    "late response is kept",
			timeout: 10 * time.Millisecond,
			handler: func(c *gin.Context) {
				<-c.Request.Context().Done()
				c.String(http.StatusBadGateway, "upstream timed out")
			},
			expectedStatus: http.StatusBadGateway,
			expectedBody:   "upstream timed out",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router := gin.New()
			router.Use(RequestID(), TimeoutWithDuration(tt.timeout))
			router.GET("/test", tt.handler)

			w := httptest.NewRecorder()
			router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/test", nil))

			assert.Equal(t, tt.expectedStatus, w.Code)
			assert.Contains(t, w.Body.String(), tt.expectedBody)
		})
	}
}

func TestTimeout_ContextHasDeadline(t *testing.T) {
	router := gin.New()
	router.Use(Timeout(TimeoutConfig{Timeout: time.Minute}))

	var hasDeadline bool
	router.GET("/test", func(c *gin.Context) {
		_, hasDeadline = c.Request.Context().Deadline()
		c.Status(http.StatusNoContent)
	})

	router.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/test", nil))
	assert.True(t, hasDeadline)
}
