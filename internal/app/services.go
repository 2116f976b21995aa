// Package app provides service initialization.
package app

import (
	"github.com/rs/zerolog/log"

	"github.com/guttosm/package-form/config"
	"github.com/guttosm/package-form/internal/circuitbreaker"
	"github.com/guttosm/package-form/internal/metrics"
	"github.com/guttosm/package-form/internal/service"
	"github.com/guttosm/package-form/internal/upstream"
)

// ServiceComponents holds service-related components.
type ServiceComponents struct {
	Upstream        *upstream.Client
	UpstreamBreaker *circuitbreaker.CircuitBreaker
	Forms           *service.FormServiceImpl
}

// InitializeServices creates the package API client and the form sessions
// built on it.
func InitializeServices(cfg config.Config) *ServiceComponents {
	var opts []upstream.Option
	var breaker *circuitbreaker.CircuitBreaker
	if cfg.Upstream.BreakerEnabled {
		breakerCfg := breakerConfig("package-api", cfg.Database)
		breakerCfg.IsFailure = upstream.IsOutage
		breaker = circuitbreaker.New(breakerCfg)
		opts = append(opts, upstream.WithCircuitBreaker(breaker))
	}

	client := upstream.New(upstream.Config{
		BaseURL: cfg.Upstream.BaseURL,
		Timeout: cfg.Upstream.Timeout,
	}, opts...)

	forms := service.NewFormService(client, service.FormServiceConfig{
		Capacity:         cfg.Session.Size,
		TTL:              cfg.Session.TTL,
		SkipUnscopedLoad: cfg.Upstream.SkipUnscopedLoad,
	})

	log.Info().
		Str("base_url", cfg.Upstream.BaseURL).
		Bool("circuit_breaker", breaker != nil).
		Int("session_capacity", cfg.Session.Size).
		Msg("Package API client ready")

	return &ServiceComponents{
		Upstream:        client,
		UpstreamBreaker: breaker,
		Forms:           forms,
	}
}

// breakerConfig returns the shared breaker tuning under name, publishing
// every state change as a metric.
func breakerConfig(name string, cfg config.DatabaseConfig) circuitbreaker.Config {
	return circuitbreaker.Config{
		FailureThreshold: cfg.CircuitBreakerFailureThreshold,
		SuccessThreshold: cfg.CircuitBreakerSuccessThreshold,
		Timeout:          cfg.CircuitBreakerTimeout,
		Name:             name,
		OnStateChange: func(name string, _, to circuitbreaker.State) {
			metrics.SetCircuitBreakerState(name, int(to))
		},
	}
}
