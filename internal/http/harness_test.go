package http

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/guttosm/package-form/internal/domain/dto"
	"github.com/guttosm/package-form/internal/middleware"
	"github.com/guttosm/package-form/internal/service"
	"github.com/guttosm/package-form/internal/testutil"
	"github.com/guttosm/package-form/internal/upstream"
)

// formHarness is a router wired to a real form service and a fake package API.
type formHarness struct {
	fake    *testutil.FakeUpstream
	forms   *service.FormServiceImpl
	router  *gin.Engine
	session string
}

func newFormHarness(t *testing.T, cfg RouterConfig) *formHarness {
	t.Helper()
	fake := testutil.NewFakeUpstream(t)
	client := upstream.New(upstream.Config{BaseURL: fake.URL, Timeout: time.Second})
	forms := service.NewFormService(client, service.FormServiceConfig{Capacity: 16, TTL: time.Minute})
	t.Cleanup(forms.Close)

	return &formHarness{
		fake:    fake,
		forms:   forms,
		router:  NewRouter(NewFormHandler(forms, nil), NewHealthHandler(), cfg),
		session: uuid.NewString(),
	}
}

// api sends a JSON request on the harness session.
func (h *formHarness) api(method, path, body string, headers ...string) *httptest.ResponseRecorder {
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set(middleware.SessionHeader, h.session)
	for i := 0; i+1 < len(headers); i += 2 {
		req.Header.Set(headers[i], headers[i+1])
	}

	w := httptest.NewRecorder()
	h.router.ServeHTTP(w, req)
	return w
}

// post sends a form-encoded request on the harness session, as a browser would.
func (h *formHarness) post(path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.AddCookie(&http.Cookie{Name: middleware.SessionCookie, Value: h.session})

	w := httptest.NewRecorder()
	h.router.ServeHTTP(w, req)
	return w
}

// page renders the form page on the harness session.
func (h *formHarness) page(locale string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, PagePath, nil)
	req.AddCookie(&http.Cookie{Name: middleware.SessionCookie, Value: h.session})
	if locale != "" {
		req.Header.Set("Accept-Language", locale)
	}

	w := httptest.NewRecorder()
	h.router.ServeHTTP(w, req)
	return w
}

func decodeData[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var resp struct {
		Data T `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp), w.Body.String())
	return resp.Data
}

func decodeError(t *testing.T, w *httptest.ResponseRecorder) dto.ErrorResponse {
	t.Helper()
	var resp dto.ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp), w.Body.String())
	return resp
}
