package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/iwvelando/sip-planner/internal/config"
	"github.com/iwvelando/sip-planner/internal/logging"
	"github.com/iwvelando/sip-planner/internal/metrics"
	"github.com/iwvelando/sip-planner/internal/plan"
	"github.com/iwvelando/sip-planner/internal/server"
	"github.com/iwvelando/sip-planner/pkg/constants"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func newServeCommand(root *rootOptions) *cobra.Command {
	var serverConfigPath string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the plan API over HTTP",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return runServe(ctx, root, serverConfigPath)
		},
	}

	cmd.Flags().StringVar(&serverConfigPath, "server-config", constants.DefaultServerConfigFile, "path to server configuration file")

	return cmd
}

func runServe(ctx context.Context, root *rootOptions, serverConfigPath string) error {
	serverCfg, err := server.LoadConfig(serverConfigPath)
	if err != nil {
		return err
	}

	conf, logger, err := root.loadConfiguration()
	if err != nil {
		return err
	}
	if serverCfg.Logging != (config.LoggingConfig{}) {
		_ = logger.Sync()
		if logger, err = logging.New(serverCfg.Logging, root.logLevel); err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}
	}
	defer func() {
		_ = logger.Sync()
	}()

	metrics.Init()

	store := plan.NewStore(logger)
	seeded, err := conf.SeedStore(logger, store)
	if err != nil {
		return fmt.Errorf("failed to seed plans: %w", err)
	}
	logger.Info(fmt.Sprintf("seeded %d plans", len(seeded)),
		zap.String("op", "cli.runServe"),
	)

	handler, err := server.NewHandler(logger, store, serverCfg.BodySizeBytes(), root.version)
	if err != nil {
		return err
	}
	return server.Serve(ctx, logger, serverCfg, handler)
}
