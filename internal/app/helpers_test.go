package app

import (
	"time"

	"github.com/guttosm/package-form/config"
)

// testConfig returns a config pointing at baseURL with MongoDB disabled.
func testConfig(baseURL string) config.Config {
	return config.Config{
		Server: config.ServerConfig{
			Port:            "0",
			RateLimit:       100,
			RateWindow:      time.Minute,
			SubmitRateLimit: 5,
			RequestTimeout:  5 * time.Second,
		},
		Upstream: config.UpstreamConfig{
			BaseURL:        baseURL,
			Timeout:        time.Second,
			BreakerEnabled: true,
		},
		Session: config.SessionConfig{
			Size: 64,
			TTL:  time.Minute,
		},
		Database: config.DatabaseConfig{
			CircuitBreakerFailureThreshold: 3,
			CircuitBreakerSuccessThreshold: 1,
			CircuitBreakerTimeout:          time.Second,
		},
		Log: config.LogConfig{Level: "disabled"},
	}
}
