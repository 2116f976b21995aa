package main

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/guttosm/package-form/internal/form"
	"github.com/guttosm/package-form/internal/logger"
	"github.com/guttosm/package-form/internal/upstream"
)

// version is overridden at build time with -ldflags "-X main.version=...".
var version = "dev"

// cli carries the settings resolved for the running command.
type cli struct {
	settings settings
}

func newRootCmd() *cobra.Command {
	c := &cli{}
	var configFile string

	root := &cobra.Command{
		Use:   "packagectl",
		Short: "Create packages through the package API",
		Long: `packagectl lists the customers, warehouses and package types known to the
package API and creates packages from one of each.`,
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if cmd.Name() == "version" {
				return nil
			}
			s, err := loadSettings(cmd, configFile)
			if err != nil {
				return err
			}
			c.settings = s
			logger.InitWithWriter(cmd.ErrOrStderr(), s.LogLevel, true)

			// One id per invocation ties its package API calls together.
			requestID := uuid.NewString()
			cmd.SetContext(upstream.WithRequestID(cmd.Context(), requestID))
			log := logger.Logger()
			log.Debug().Str("request_id", requestID).Str("base_url", s.BaseURL).Msg("Settings loaded")
			return nil
		},
	}

	flags := root.PersistentFlags()
	flags.StringVar(&configFile, "config", "", "config file (default ~/.packagectl.yaml)")
	flags.String(cfgKeyBaseURL, defaultBaseURL, "package API base URL")
	flags.Duration(cfgKeyTimeout, defaultTimeout, "timeout for each package API request")
	flags.Bool(cfgKeyJSON, false, "print JSON instead of text")
	flags.Bool(cfgKeySkip, false, "load package types only through the warehouse-scoped endpoint")
	flags.String(cfgKeyLogLevel, defaultLogLevel, "log level written to stderr")

	root.AddCommand(newOptionsCmd(c))
	root.AddCommand(newCreateCmd(c))
	root.AddCommand(newVersionCmd())
	return root
}

// newController builds an unmounted form controller against the configured API.
func (c *cli) newController(opts ...form.Option) *form.Controller {
	client := upstream.New(upstream.Config{
		BaseURL: c.settings.BaseURL,
		Timeout: c.settings.Timeout,
	})
	opts = append([]form.Option{form.WithSkipUnscopedLoad(c.settings.SkipUnscopedLoad)}, opts...)
	return form.New(client, opts...)
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version number",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintln(cmd.OutOrStdout(), "packagectl", version)
		},
	}
}

// usageError is a mistake in the command line or configuration.
type usageError struct {
	msg string
}

func (e *usageError) Error() string {
	return e.msg
}

func usageErrorf(format string, args ...any) error {
	return &usageError{msg: fmt.Sprintf(format, args...)}
}

// exitCode returns exitSysError when the package API could not be used and
// exitUserError for everything the caller can fix.
func exitCode(err error) int {
	var listErr *listError
	if errors.As(err, &listErr) {
		return exitSysError
	}
	var submitErr *submitError
	if errors.As(err, &submitErr) && upstream.IsOutage(submitErr.err) {
		return exitSysError
	}
	return exitUserError
}
