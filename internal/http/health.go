package http

import (
	"context"
	"net/http"
	"sort"
	"sync"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/guttosm/package-form/internal/circuitbreaker"
	"github.com/guttosm/package-form/internal/domain/dto"
)

// readinessTimeout bounds all dependency checks of one readiness probe.
const readinessTimeout = 3 * time.Second

// HealthChecker reports whether a dependency answers.
type HealthChecker interface {
	Check(ctx context.Context) error
}

// HealthCheckFunc adapts a function to HealthChecker.
type HealthCheckFunc func(ctx context.Context) error

// Check calls f.
func (f HealthCheckFunc) Check(ctx context.Context) error {
	return f(ctx)
}

// SessionCounter reports how many package forms are mounted.
type SessionCounter interface {
	Active() int
}

// HealthHandler serves the liveness and readiness probes. Readiness fails
// while a registered dependency check fails or a registered breaker is open.
type HealthHandler struct {
	checkers map[string]HealthChecker
	breakers map[string]*circuitbreaker.CircuitBreaker
	sessions SessionCounter
}

// NewHealthHandler creates a HealthHandler with no dependencies.
func NewHealthHandler() *HealthHandler {
	return &HealthHandler{
		checkers: make(map[string]HealthChecker),
		breakers: make(map[string]*circuitbreaker.CircuitBreaker),
	}
}

// RegisterChecker adds a dependency to the readiness probe.
func (h *HealthHandler) RegisterChecker(name string, checker HealthChecker) {
	h.checkers[name] = checker
}

// RegisterCircuitBreaker reports cb as name_circuit. An open breaker makes
// the service not ready.
func (h *HealthHandler) RegisterCircuitBreaker(name string, cb *circuitbreaker.CircuitBreaker) {
	h.breakers[name] = cb
}

// WatchSessions adds the number of mounted forms to the readiness body.
func (h *HealthHandler) WatchSessions(counter SessionCounter) {
	h.sessions = counter
}

// Register mounts /healthz and /readyz.
func (h *HealthHandler) Register(router *gin.Engine) {
	router.GET("/healthz", h.Liveness)
	router.GET("/readyz", h.Readiness)
}

// Liveness answers as long as the process serves requests.
//
// @Summary     Liveness probe
// @Description Returns OK while the service is running. Metrics are served at /metrics.
// @Tags        Health
// @Produce     json
// @Success     200 {object} dto.HealthResponse "Service is alive"
// @Router      /healthz [get]
func (h *HealthHandler) Liveness(c *gin.Context) {
	c.JSON(http.StatusOK, dto.HealthResponse{Status: dto.HealthStatusOK})
}

// Readiness runs the dependency checks concurrently and reports breaker states.
//
// @Summary     Readiness probe
// @Description Returns OK if the audit log store answers and neither the package API nor the audit log breaker is open.
// @Tags        Health
// @Produce     json
// @Success     200 {object} dto.HealthResponse "Service is ready"
// @Failure     503 {object} dto.HealthResponse "Service is not ready"
// @Router      /readyz [get]
func (h *HealthHandler) Readiness(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), readinessTimeout)
	defer cancel()

	checks, ready := h.runChecks(ctx)
	for name, cb := range h.breakers {
		stats := cb.GetStats()
		checks[name+"_circuit"] = stats.State
		ready = ready && stats.IsHealthy
	}
	if len(checks) == 0 {
		checks["service"] = dto.HealthStatusOK
	}

	resp := dto.HealthResponse{Status: dto.HealthStatusOK, Checks: checks}
	if h.sessions != nil {
		active := h.sessions.Active()
		resp.ActiveSessions = &active
	}

	status := http.StatusOK
	if !ready {
		status = http.StatusServiceUnavailable
		resp.Status = dto.HealthStatusDegraded
	}
	c.JSON(status, resp)
}

// runChecks calls every checker in parallel and returns "ok" or the error
// text per name.
func (h *HealthHandler) runChecks(ctx context.Context) (map[string]string, bool) {
	names := make([]string, 0, len(h.checkers))
	for name := range h.checkers {
		names = append(names, name)
	}
	sort.Strings(names)

	results := make([]error, len(names))
	var wg sync.WaitGroup
	for i, name := range names {
		wg.Add(1)
		go func(i int, checker HealthChecker) {
			defer wg.Done()
			results[i] = checker.Check(ctx)
		}(i, h.checkers[name])
	}
	wg.Wait()

	checks := make(map[string]string, len(names)+len(h.breakers))
	ready := true
	for i, name := range names {
		if results[i] != nil {
			checks[name] = results[i].Error()
			ready = false
			continue
		}
		checks[name] = dto.HealthStatusOK
	}
	return checks, ready
}
