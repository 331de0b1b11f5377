package cli

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/iwvelando/sip-planner/internal/config"
	"github.com/iwvelando/sip-planner/internal/logging"
	"github.com/iwvelando/sip-planner/pkg/calculator"
	"github.com/iwvelando/sip-planner/pkg/format"
	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// ErrInvalidPlan is returned by the quote command when the plan fails
// validation.
var ErrInvalidPlan = errors.New("invalid plan")

type quoteOptions struct {
	token      string
	amount     string
	frequency  string
	months     int
	customDays int
}

func newQuoteCommand(root *rootOptions) *cobra.Command {
	opts := &quoteOptions{}

	cmd := &cobra.Command{
		Use:   "quote",
		Short: "Quote the per-interval amount and gas fee for a plan",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			logger, err := logging.New(config.LoggingConfig{}, root.logLevel)
			if err != nil {
				return fmt.Errorf("failed to initialize logger: %w", err)
			}
			defer func() {
				_ = logger.Sync()
			}()
			return runQuote(cmd.OutOrStdout(), logger, opts)
		},
	}

	cmd.Flags().StringVar(&opts.token, "token", "USDT", "token to invest")
	cmd.Flags().StringVar(&opts.amount, "amount", "", "total investment amount")
	cmd.Flags().StringVar(&opts.frequency, "frequency", string(calculator.FrequencyMonthly),
		"contribution frequency: "+strings.Join(frequencyNames(), ", "))
	cmd.Flags().IntVar(&opts.months, "months", 12, "maturity term in months")
	cmd.Flags().IntVar(&opts.customDays, "custom-days", 0, "interval length in days for custom frequency")
	_ = cmd.MarkFlagRequired("amount")

	return cmd
}

func frequencyNames() []string {
	names := make([]string, 0, len(calculator.Frequencies()))
	for _, f := range calculator.Frequencies() {
		names = append(names, string(f))
	}
	return names
}

func runQuote(w io.Writer, logger *zap.Logger, opts *quoteOptions) error {
	amount, err := decimal.NewFromString(opts.amount)
	if err != nil {
		return fmt.Errorf("invalid amount %q: %w", opts.amount, err)
	}

	input := calculator.PlanInput{
		Token:              strings.ToUpper(opts.token),
		TotalAmount:        amount,
		Frequency:          calculator.ParseFrequency(opts.frequency),
		MaturityMonths:     opts.months,
		CustomIntervalDays: opts.customDays,
	}

	quote, err := calculator.NewQuote(logger, input)
	if err != nil {
		return err
	}

	if !quote.Validation.IsValid {
		for _, msg := range quote.Validation.Errors {
			_, _ = fmt.Fprintf(w, "- %s\n", msg)
		}
		return fmt.Errorf("%w: %d validation error(s)", ErrInvalidPlan, len(quote.Validation.Errors))
	}

	_, _ = fmt.Fprintf(w, "Token:        %s\n", input.Token)
	_, _ = fmt.Fprintf(w, "Total:        %s\n", format.Token(input.TotalAmount))
	_, _ = fmt.Fprintf(w, "Frequency:    %s (every %d days)\n", input.Frequency, quote.IntervalDays)
	_, _ = fmt.Fprintf(w, "Intervals:    %d\n", quote.IntervalCount)
	_, _ = fmt.Fprintf(w, "Per interval: %s\n", format.Token(quote.IntervalAmount))
	_, _ = fmt.Fprintf(w, "Gas fee:      %s\n", quote.GasFee.String())
	return nil
}
