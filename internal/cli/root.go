// Package cli implements the sip-planner command tree.
package cli

import (
	"fmt"
	"io"

	"github.com/iwvelando/sip-planner/internal/config"
	"github.com/iwvelando/sip-planner/internal/logging"
	"github.com/iwvelando/sip-planner/pkg/constants"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// stdinConfig is the --config value that reads configuration from stdin.
const stdinConfig = "-"

type rootOptions struct {
	configPath string
	logLevel   string
	version    string
	in         io.Reader
}

// NewRootCommand builds the root command with every subcommand attached.
func NewRootCommand(version string) *cobra.Command {
	opts := &rootOptions{version: version}

	cmd := &cobra.Command{
		Use:           "sip-planner",
		Short:         "Plan and track systematic investment plans",
		Long:          `sip-planner quotes recurring token investment plans and manages their lifecycle from creation through execution to finalization.`,
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			opts.in = cmd.InOrStdin()
		},
	}

	cmd.PersistentFlags().StringVar(&opts.configPath, "config", constants.DefaultConfigFile, "path to configuration file, or - for stdin")
	cmd.PersistentFlags().StringVar(&opts.logLevel, "log-level", "", "log level override (debug, info, warn, error)")

	cmd.AddCommand(newQuoteCommand(opts))
	cmd.AddCommand(newPlansCommand(opts))
	cmd.AddCommand(newServeCommand(opts))

	return cmd
}

// Execute runs the root command.
func Execute(version string) error {
	cmd := NewRootCommand(version)
	if err := cmd.Execute(); err != nil {
		fmt.Fprintf(cmd.ErrOrStderr(), "Error: %v\n", err)
		return err
	}
	return nil
}

// loadConfiguration loads the application config and builds the logger from
// it, reporting configuration warnings through that logger.
func (o *rootOptions) loadConfiguration() (*config.Configuration, *zap.Logger, error) {
	var (
		conf *config.Configuration
		err  error
	)
	if o.configPath == stdinConfig && o.in != nil {
		conf, err = config.LoadConfigurationFromReader(o.in)
	} else {
		conf, err = config.LoadConfiguration(o.configPath)
	}
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load configuration at %s: %w", o.configPath, err)
	}

	logger, err := logging.New(conf.Logging, o.logLevel)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to initialize logger: %w", err)
	}

	for _, warning := range conf.ValidateConfiguration() {
		logger.Warn("Configuration warning: "+warning,
			zap.String("op", "cli.loadConfiguration"),
		)
	}

	return conf, logger, nil
}
