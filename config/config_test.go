package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad(t *testing.T) {
	t.Run("loads default values", func(t *testing.T) {
		cfg := Load()

		assert.Equal(t, "8080", cfg.Server.Port)
		assert.Equal(t, 100, cfg.Server.RateLimit)
		assert.Equal(t, time.Minute, cfg.Server.RateWindow)
		assert.Equal(t, 10, cfg.Server.SubmitRateLimit)
		assert.Equal(t, 30*time.Second, cfg.Server.RequestTimeout)
		assert.Equal(t, "http://localhost:3000", cfg.Upstream.BaseURL)
		assert.Equal(t, 10*time.Second, cfg.Upstream.Timeout)
		assert.True(t, cfg.Upstream.BreakerEnabled)
		assert.False(t, cfg.Upstream.SkipUnscopedLoad)
		assert.Equal(t, 10000, cfg.Session.Size)
		assert.Equal(t, 30*time.Minute, cfg.Session.TTL)
		assert.False(t, cfg.Database.Enabled)
		assert.Equal(t, "info", cfg.Log.Level)
	})

	t.Run("loads values from environment", func(t *testing.T) {
		t.Setenv("PORT", "9090")
		t.Setenv("RATE_LIMIT", "50")
		t.Setenv("RATE_WINDOW", "30s")
		t.Setenv("SUBMIT_RATE_LIMIT", "0")
		t.Setenv("UPSTREAM_BASE_URL", "https://packages.internal")
		t.Setenv("UPSTREAM_TIMEOUT", "2s")
		t.Setenv("UPSTREAM_BREAKER_ENABLED", "false")
		t.Setenv("UPSTREAM_SKIP_UNSCOPED_LOAD", "true")
		t.Setenv("SESSION_SIZE", "500")
		t.Setenv("SESSION_TTL", "10m")
		t.Setenv("SESSION_COOKIE_SECURE", "true")
		t.Setenv("MONGODB_ENABLED", "true")
		t.Setenv("LOG_LEVEL", "debug")
		t.Setenv("LOG_PRETTY", "true")

		cfg := Load()

		assert.Equal(t, "9090", cfg.Server.Port)
		assert.Equal(t, 50, cfg.Server.RateLimit)
		assert.Equal(t, 30*time.Second, cfg.Server.RateWindow)
		assert.Zero(t, cfg.Server.SubmitRateLimit)
		assert.Equal(t, "https://packages.internal", cfg.Upstream.BaseURL)
		assert.Equal(t, 2*time.Second, cfg.Upstream.Timeout)
		assert.False(t, cfg.Upstream.BreakerEnabled)
		assert.True(t, cfg.Upstream.SkipUnscopedLoad)
		assert.Equal(t, 500, cfg.Session.Size)
		assert.Equal(t, 10*time.Minute, cfg.Session.TTL)
		assert.True(t, cfg.Session.CookieSecure)
		assert.True(t, cfg.Database.Enabled)
		assert.Equal(t, "debug", cfg.Log.Level)
		assert.True(t, cfg.Log.Pretty)
	})

	t.Run("handles invalid values gracefully", func(t *testing.T) {
		t.Setenv("RATE_LIMIT", "invalid")
		t.Setenv("UPSTREAM_BREAKER_ENABLED", "invalid")
		t.Setenv("RATE_WINDOW", "invalid")

		cfg := Load()

		assert.Equal(t, 100, cfg.Server.RateLimit)
		assert.True(t, cfg.Upstream.BreakerEnabled)
		assert.Equal(t, time.Minute, cfg.Server.RateWindow)
	})
}

func TestParseCORSOrigins(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  []string
	}{
		{
			name:  "defaults only",
			input: "",
			want:  []string{"http://localhost:3000", "http://127.0.0.1:3000"},
		},
		{
			name:  "appends trimmed origins",
			input: " https://a.example , ,https://b.example",
			want:  []string{"http://localhost:3000", "http://127.0.0.1:3000", "https://a.example", "https://b.example"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, parseCORSOrigins(tt.input))
		})
	}
}

func TestConfig_Validate(t *testing.T) {
	valid := func() Config {
		return Config{
			Server:   ServerConfig{RateLimit: 10},
			Upstream: UpstreamConfig{BaseURL: "http://localhost:3000"},
			Session:  SessionConfig{Size: 10},
		}
	}

	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{name: "valid", mutate: func(*Config) {}},
		{name: "bad scheme", mutate: func(c *Config) { c.Upstream.BaseURL = "ftp://x" }, wantErr: "scheme"},
		{name: "missing host", mutate: func(c *Config) { c.Upstream.BaseURL = "http://" }, wantErr: "missing host"},
		{name: "zero sessions", mutate: func(c *Config) { c.Session.Size = 0 }, wantErr: "SESSION_SIZE"},
		{name: "zero rate limit", mutate: func(c *Config) { c.Server.RateLimit = 0 }, wantErr: "RATE_LIMIT"},
		{name: "negative submit limit", mutate: func(c *Config) { c.Server.SubmitRateLimit = -1 }, wantErr: "SUBMIT_RATE_LIMIT"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid()
			tt.mutate(&cfg)
			err := cfg.Validate()
			if tt.wantErr == "" {
				require.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestValidateBaseURL(t *testing.T) {
	tests := []struct {
		raw     string
		wantErr string
	}{
		{raw: "http://localhost:3000"},
		{raw: "https://packages.example/base"},
		{raw: "localhost:3000", wantErr: "scheme"},
		{raw: "https://", wantErr: "missing host"},
		{raw: "http://%zz", wantErr: "invalid URL escape"},
	}
	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			err := ValidateBaseURL(tt.raw)
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}
