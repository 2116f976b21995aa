// Package app provides router configuration.
package app

import (
	"github.com/guttosm/package-form/config"
	"github.com/guttosm/package-form/internal/http"
	"github.com/guttosm/package-form/internal/middleware"
	"github.com/guttosm/package-form/internal/service"
)

// RouterComponents holds router-related components.
type RouterComponents struct {
	Handler       *http.FormHandler
	HealthHandler *http.HealthHandler
	Config        http.RouterConfig
}

// InitializeRouter initializes HTTP handlers and router configuration.
func InitializeRouter(
	services *ServiceComponents,
	dbComponents *DatabaseComponents,
	cfg config.Config,
) *RouterComponents {
	var loggingService service.LoggingService
	if dbComponents != nil {
		loggingService = dbComponents.LoggingService
	}
	audit := middleware.NewAsyncLogger(loggingService, middleware.DefaultAsyncLoggerConfig())

	healthHandler := http.NewHealthHandler()
	healthHandler.WatchSessions(services.Forms)
	if services.UpstreamBreaker != nil {
		healthHandler.RegisterCircuitBreaker("package_api", services.UpstreamBreaker)
	}
	if dbComponents != nil {
		healthHandler.RegisterChecker("mongodb", http.HealthCheckFunc(dbComponents.DB.HealthCheck))
		healthHandler.RegisterCircuitBreaker("mongodb_logs", dbComponents.LogsCircuitBreaker)
	}

	routerCfg := http.RouterConfig{
		RateLimiter:    middleware.NewRateLimiter(cfg.Server.RateLimit, cfg.Server.RateWindow),
		Idempotency:    middleware.DefaultIdempotencyConfig(),
		RequestTimeout: cfg.Server.RequestTimeout,
		Session: middleware.SessionConfig{
			MaxAge: cfg.Session.TTL,
			Secure: cfg.Session.CookieSecure,
		},
		CORSOrigins: cfg.Server.CORSOrigins,
		SwaggerUser: cfg.Server.SwaggerUser,
		SwaggerPass: cfg.Server.SwaggerPass,
		AuditLogger: audit,
	}
	if cfg.Server.SubmitRateLimit > 0 {
		routerCfg.SubmitLimiter = middleware.NewRateLimiter(cfg.Server.SubmitRateLimit, cfg.Server.RateWindow)
	}

	return &RouterComponents{
		Handler:       http.NewFormHandler(services.Forms, audit),
		HealthHandler: healthHandler,
		Config:        routerCfg,
	}
}

// Stop releases the background workers of the router middleware.
func (r *RouterComponents) Stop() {
	r.Config.AuditLogger.Stop()
	if r.Config.RateLimiter != nil {
		r.Config.RateLimiter.Stop()
	}
	if r.Config.SubmitLimiter != nil {
		r.Config.SubmitLimiter.Stop()
	}
	if r.Config.Idempotency.Cache != nil {
		r.Config.Idempotency.Cache.Stop()
	}
}
