package main

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/guttosm/package-form/config"
)

const (
	envPrefix      = "PACKAGECTL"
	configFileName = ".packagectl"
	configFileType = "yaml"

	// Configuration keys. Each is also a persistent flag and a
	// PACKAGECTL_ environment variable with dashes as underscores.
	cfgKeyBaseURL  = "base-url"
	cfgKeyTimeout  = "timeout"
	cfgKeyJSON     = "json"
	cfgKeySkip     = "skip-unscoped-load"
	cfgKeyLogLevel = "log-level"

	defaultBaseURL  = "http://localhost:3000"
	defaultTimeout  = 10 * time.Second
	defaultLogLevel = "error"
)

// settings is the resolved configuration of one invocation.
type settings struct {
	BaseURL          string
	Timeout          time.Duration
	JSON             bool
	SkipUnscopedLoad bool
	LogLevel         string
}

// loadSettings resolves flags, PACKAGECTL_* variables and the config file,
// in that order of precedence. Without --config, ~/.packagectl.yaml is read
// if it exists.
func loadSettings(cmd *cobra.Command, configFile string) (settings, error) {
	v := viper.New()
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	if err := v.BindPFlags(cmd.Flags()); err != nil {
		return settings{}, fmt.Errorf("bind flags: %w", err)
	}

	if configFile != "" {
		v.SetConfigFile(configFile)
	} else {
		v.SetConfigName(configFileName)
		v.SetConfigType(configFileType)
		if home, err := os.UserHomeDir(); err == nil {
			v.AddConfigPath(home)
		}
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if configFile != "" || !errors.As(err, &notFound) {
			return settings{}, fmt.Errorf("read config: %w", err)
		}
	}

	s := settings{
		BaseURL:          strings.TrimSpace(v.GetString(cfgKeyBaseURL)),
		Timeout:          v.GetDuration(cfgKeyTimeout),
		JSON:             v.GetBool(cfgKeyJSON),
		SkipUnscopedLoad: v.GetBool(cfgKeySkip),
		LogLevel:         v.GetString(cfgKeyLogLevel),
	}
	if err := config.ValidateBaseURL(s.BaseURL); err != nil {
		return settings{}, usageErrorf("%s: %v", cfgKeyBaseURL, err)
	}
	if s.Timeout <= 0 {
		return settings{}, usageErrorf("%s: must be positive, got %s", cfgKeyTimeout, s.Timeout)
	}
	return s, nil
}
