package cli

import (
	"fmt"
	"io"

	"github.com/iwvelando/sip-planner/internal/config"
	"github.com/iwvelando/sip-planner/internal/plan"
	"github.com/iwvelando/sip-planner/pkg/constants"
	"github.com/iwvelando/sip-planner/pkg/output"
	"github.com/iwvelando/sip-planner/pkg/validation"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func newPlansCommand(root *rootOptions) *cobra.Command {
	var outputFormat string

	cmd := &cobra.Command{
		Use:   "plans",
		Short: "Simulate the configured plans and print them",
		Long: `Create every plan listed in the configuration, apply the configured number
of executions to each, finalize plans that reach full progress and print the
result followed by a portfolio summary.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			conf, logger, err := root.loadConfiguration()
			if err != nil {
				return err
			}
			defer func() {
				_ = logger.Sync()
			}()

			format := conf.Output.Format
			if outputFormat != "" {
				format = outputFormat
			}
			if format == "" {
				format = constants.OutputFormatPretty
			}
			if err := validation.ValidateOutputFormat(format); err != nil {
				return err
			}

			store := plan.NewStore(logger)
			if err := simulate(logger, conf, store); err != nil {
				return err
			}
			return render(cmd.OutOrStdout(), format, store)
		},
	}

	cmd.Flags().StringVar(&outputFormat, "output-format", "", "type of output override: pretty, csv")

	return cmd
}

// simulate seeds store from conf and runs the configured executions against
// every seeded plan.
func simulate(logger *zap.Logger, conf *config.Configuration, store *plan.Store) error {
	seeded, err := conf.SeedStore(logger, store)
	if err != nil {
		return fmt.Errorf("failed to seed plans: %w", err)
	}

	for _, p := range seeded {
		current := p
		for i := 0; i < conf.Simulation.Executions && current.Progress < constants.MaxProgress; i++ {
			current, err = store.Execute(p.ID)
			if err != nil {
				return fmt.Errorf("failed to execute plan %s: %w", p.ID, err)
			}
		}
		if current.ReadyToFinalize() {
			if _, err := store.Finalize(p.ID); err != nil {
				return fmt.Errorf("failed to finalize plan %s: %w", p.ID, err)
			}
		}
	}

	logger.Debug(fmt.Sprintf("simulated %d plans", len(seeded)),
		zap.String("op", "cli.simulate"),
		zap.Int("executions", conf.Simulation.Executions),
	)
	return nil
}

func render(w io.Writer, format string, store *plan.Store) error {
	switch format {
	case constants.OutputFormatCSV:
		return output.CsvFormat(w, store.List())
	default:
		output.PrettyFormat(w, store.List(), store.Summary())
		return nil
	}
}
