package middleware

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/guttosm/package-form/internal/domain/dto"
)

func recoveryRouter() *gin.Engine {
	router := gin.New()
	router.Use(RequestID(), Recovery())
	router.POST("/api/package-form/submit", func(c *gin.Context) {
		panic("nil controller")
	})
	router.POST("/package-form/submit", func(c *gin.Context) {
		panic("nil controller")
	})
	router.GET("/partial", func(c *gin.Context) {
		c.String(http.StatusOK, "half")
		c.Writer.Flush()
		panic("after write")
	})
	router.GET("/ok", func(c *gin.Context) {
		c.String(http.StatusOK, "ok")
	})
	return router
}

func TestRecovery(t *testing.T) {
	tests := []struct {
		name     string
		method   string
		path     string
		headers  map[string]string
		wantCode int
		check    func(*testing.T, *httptest.ResponseRecorder)
	}{
		{
			name:     "API panic answers the JSON envelope",
			method:   http.MethodPost,
			path:     "/api/package-form/submit",
			headers:  map[string]string{"Accept": "application/json"},
			wantCode: http.StatusInternalServerError,
			check: func(t *testing.T, w *httptest.ResponseRecorder) {
				var resp dto.ErrorResponse
				require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
				assert.Equal(t, dto.ErrCodeInternal, resp.Error)
				assert.Equal(t, "An unexpected error occurred", resp.Message)
				assert.Equal(t, w.Header().Get(RequestIDHeader), resp.RequestID)
			},
		},
		{
			name:     "missing Accept defaults to JSON",
			method:   http.MethodPost,
			path:     "/api/package-form/submit",
			wantCode: http.StatusInternalServerError,
			check: func(t *testing.T, w *httptest.ResponseRecorder) {
				assert.Contains(t, w.Header().Get("Content-Type"), "application/json")
			},
		},
		{
			name:   "form page panic answers translated text",
			method: http.MethodPost,
			path:   "/package-form/submit",
			headers: map[string]string{
				"Accept":          "text/html,application/xhtml+xml",
				"Accept-Language": "pt-BR",
			},
			wantCode: http.StatusInternalServerError,
			check: func(t *testing.T, w *httptest.ResponseRecorder) {
				assert.Contains(t, w.Header().Get("Content-Type"), "text/plain")
				assert.Equal(t, "Ocorreu um erro inesperado", w.Body.String())
			},
		},
		{
			name:     "started response is left alone",
			method:   http.MethodGet,
			path:     "/partial",
			wantCode: http.StatusOK,
			check: func(t *testing.T, w *httptest.ResponseRecorder) {
				assert.Equal(t, "half", w.Body.String())
			},
		},
		{
			name:     "passes through when nothing panics",
			method:   http.MethodGet,
			path:     "/ok",
			wantCode: http.StatusOK,
			check: func(t *testing.T, w *httptest.ResponseRecorder) {
				assert.Equal(t, "ok", w.Body.String())
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(tt.method, tt.path, nil)
			for k, v := range tt.headers {
				req.Header.Set(k, v)
			}
			w := httptest.NewRecorder()
			recoveryRouter().ServeHTTP(w, req)

			assert.Equal(t, tt.wantCode, w.Code)
			tt.check(t, w)
		})
	}
}
