// Package config provides configuration management for the package form service.
package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"
)

// Config holds the complete application configuration.
type Config struct {
	Server   ServerConfig
	Upstream UpstreamConfig
	Session  SessionConfig
	Database DatabaseConfig
	Log      LogConfig
}

// ServerConfig holds HTTP server configuration.
type ServerConfig struct {
	Port       string
	RateLimit  int
	RateWindow time.Duration
	// SubmitRateLimit is the number of submits per session and window. Zero disables it.
	SubmitRateLimit int
	CORSOrigins     []string
	RequestTimeout  time.Duration
	SwaggerUser     string
	SwaggerPass     string
}

// UpstreamConfig points at the package API.
type UpstreamConfig struct {
	BaseURL        string
	Timeout        time.Duration
	BreakerEnabled bool
	// SkipUnscopedLoad mounts forms with only the warehouse-scoped package
	// type request.
	SkipUnscopedLoad bool
}

// SessionConfig sizes the form session store.
type SessionConfig struct {
	Size         int
	TTL          time.Duration
	CookieSecure bool
}

// DatabaseConfig holds MongoDB configuration for the audit log.
type DatabaseConfig struct {
	URI          string
	DatabaseName string
	LogsTTL      time.Duration
	Enabled      bool
	// CircuitBreaker configuration, shared with the upstream breaker.
	CircuitBreakerFailureThreshold int
	CircuitBreakerSuccessThreshold int
	CircuitBreakerTimeout          time.Duration
}

// LogConfig controls the global logger.
type LogConfig struct {
	Level  string
	Pretty bool
}

// Load creates a Config from environment variables.
func Load() Config {
	return Config{
		Server: ServerConfig{
			Port:            getEnv("PORT", "8080"),
			RateLimit:       getEnvInt("RATE_LIMIT", 100),
			RateWindow:      getEnvDuration("RATE_WINDOW", time.Minute),
			SubmitRateLimit: getEnvInt("SUBMIT_RATE_LIMIT", 10),
			CORSOrigins:     parseCORSOrigins(os.Getenv("CORS_ORIGINS")),
			RequestTimeout:  getEnvDuration("REQUEST_TIMEOUT", 30*time.Second),
			SwaggerUser:     getEnv("SWAGGER_USER", ""),
			SwaggerPass:     getEnv("SWAGGER_PASS", ""),
		},
		Upstream: UpstreamConfig{
			BaseURL:          getEnv("UPSTREAM_BASE_URL", "http://localhost:3000"),
			Timeout:          getEnvDuration("UPSTREAM_TIMEOUT", 10*time.Second),
			BreakerEnabled:   getEnvBool("UPSTREAM_BREAKER_ENABLED", true),
			SkipUnscopedLoad: getEnvBool("UPSTREAM_SKIP_UNSCOPED_LOAD", false),
		},
		Session: SessionConfig{
			Size:         getEnvInt("SESSION_SIZE", 10000),
			TTL:          getEnvDuration("SESSION_TTL", 30*time.Minute),
			CookieSecure: getEnvBool("SESSION_COOKIE_SECURE", false),
		},
		Database: DatabaseConfig{
			URI:                            getEnv("MONGODB_URI", "mongodb://localhost:27017"),
			DatabaseName:                   getEnv("MONGODB_DATABASE", "package_form"),
			LogsTTL:                        getEnvDuration("MONGODB_LOGS_TTL", 30*24*time.Hour),
			Enabled:                        getEnvBool("MONGODB_ENABLED", false),
			CircuitBreakerFailureThreshold: getEnvInt("CIRCUIT_BREAKER_FAILURE_THRESHOLD", 5),
			CircuitBreakerSuccessThreshold: getEnvInt("CIRCUIT_BREAKER_SUCCESS_THRESHOLD", 2),
			CircuitBreakerTimeout:          getEnvDuration("CIRCUIT_BREAKER_TIMEOUT", 30*time.Second),
		},
		Log: LogConfig{
			Level:  getEnv("LOG_LEVEL", "info"),
			Pretty: getEnvBool("LOG_PRETTY", false),
		},
	}
}

// ValidateBaseURL checks that raw is an absolute http or https URL.
func ValidateBaseURL(raw string) error {
	u, err := url.Parse(raw)
	switch {
	case err != nil:
		return err
	case u.Scheme != "http" && u.Scheme != "https":
		return fmt.Errorf("scheme must be http or https, got %q", u.Scheme)
	case u.Host == "":
		return errors.New("missing host")
	}
	return nil
}

// Validate reports settings the service cannot start with.
func (c Config) Validate() error {
	var errs []error
	if err := ValidateBaseURL(c.Upstream.BaseURL); err != nil {
		errs = append(errs, fmt.Errorf("UPSTREAM_BASE_URL: %w", err))
	}
	if c.Session.Size <= 0 {
		errs = append(errs, fmt.Errorf("SESSION_SIZE: must be positive, got %d", c.Session.Size))
	}
	if c.Server.RateLimit <= 0 {
		errs = append(errs, fmt.Errorf("RATE_LIMIT: must be positive, got %d", c.Server.RateLimit))
	}
	if c.Server.SubmitRateLimit < 0 {
		errs = append(errs, fmt.Errorf("SUBMIT_RATE_LIMIT: must not be negative, got %d", c.Server.SubmitRateLimit))
	}
	return errors.Join(errs...)
}

func getEnv(key, defaultValue string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if v := os.Getenv(key); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) bool {
	if v := os.Getenv(key); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
	}
	return defaultValue
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return defaultValue
}

func parseCORSOrigins(s string) []string {
	// Local development origins are always allowed.
	defaults := []string{
		"http://localhost:3000",
		"http://127.0.0.1:3000",
	}
	if s == "" {
		return defaults
	}
	parts := strings.Split(s, ",")
	result := make([]string, 0, len(parts)+len(defaults))
	result = append(result, defaults...)
	for _, p := range parts {
		if origin := strings.TrimSpace(p); origin != "" {
			result = append(result, origin)
		}
	}
	return result
}
