package http

import (
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"github.com/guttosm/package-form/internal/metrics"
	"github.com/guttosm/package-form/internal/middleware"
)

// RouterConfig holds router configuration options.
type RouterConfig struct {
	// RateLimiter limits every route per client IP. Nil disables it.
	RateLimiter *middleware.RateLimiter
	// SubmitLimiter limits submits per form session. Nil disables it.
	SubmitLimiter *middleware.RateLimiter
	// Idempotency guards the API submit route when Enabled.
	Idempotency    middleware.IdempotencyConfig
	RequestTimeout time.Duration
	Session        middleware.SessionConfig
	CORSOrigins    []string
	SwaggerUser    string
	SwaggerPass    string
	// AuditLogger receives request and submission entries. Nil disables auditing.
	AuditLogger *middleware.AsyncLogger
}

// DefaultRouterConfig returns the default router configuration.
func DefaultRouterConfig() RouterConfig {
	return RouterConfig{
		RequestTimeout: middleware.DefaultTimeoutConfig().Timeout,
		Session:        middleware.SessionConfig{MaxAge: 30 * time.Minute},
	}
}

// NewRouter creates and configures the Gin router for the package form.
func NewRouter(handler *FormHandler, healthHandler *HealthHandler, cfg RouterConfig) *gin.Engine {
	router := gin.New()

	configureGlobalMiddleware(router, &cfg)
	registerInfrastructureRoutes(router, healthHandler, &cfg)

	if handler == nil {
		return router
	}

	// Health, metrics and docs run without a form session.
	forms := router.Group("/", middleware.Session(cfg.Session))
	if cfg.RequestTimeout > 0 {
		forms.Use(middleware.TimeoutWithDuration(cfg.RequestTimeout))
	}

	groups := []struct {
		prefix string
		routes RouteGroup
	}{
		{"", NewPageRoutes(handler)},
		{"/api", NewAPIRoutes(handler)},
	}
	for _, g := range groups {
		g.routes.RegisterRoutes(forms.Group(g.prefix), &cfg)
	}

	return router
}

// configureGlobalMiddleware sets up middleware applied to all routes.
func configureGlobalMiddleware(router *gin.Engine, cfg *RouterConfig) {
	allowedOrigins := cfg.CORSOrigins
	if len(allowedOrigins) == 0 {
		allowedOrigins = []string{"http://localhost:3000", "http://127.0.0.1:3000"}
	}
	corsConfig := cors.Config{
		AllowOrigins:     allowedOrigins,
		AllowMethods:     []string{"GET", "POST", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Content-Length", "Accept-Encoding", "Accept-Language", "accept", "Cache-Control", "X-Requested-With", "Idempotency-Key", "X-Request-ID", middleware.SessionHeader},
		ExposeHeaders:    []string{"X-Request-ID", middleware.SessionHeader, middleware.IdempotencyReplayedHeader},
		AllowCredentials: true,
		MaxAge:           86400,
	}
	router.Use(cors.New(corsConfig))

	router.Use(
		middleware.RequestID(),
		middleware.Recovery(),
		metrics.PrometheusMiddleware(),
		middleware.Compression(),
		middleware.RequestLogger(cfg.AuditLogger),
		middleware.ErrorHandler(),
	)

	if cfg.RateLimiter != nil {
		router.Use(cfg.RateLimiter.RateLimit())
	}
}

// registerInfrastructureRoutes registers health, metrics, and documentation routes.
func registerInfrastructureRoutes(router *gin.Engine, healthHandler *HealthHandler, cfg *RouterConfig) {
	if healthHandler != nil {
		healthHandler.Register(router)
	}
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	if cfg.SwaggerUser != "" && cfg.SwaggerPass != "" {
		authorized := router.Group("/swagger", gin.BasicAuth(gin.Accounts{
			cfg.SwaggerUser: cfg.SwaggerPass,
		}))
		authorized.GET("/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	} else {
		router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}
}
