// Package calculator derives plan economics and validates plan input against
// the business rules. Every function is free of side effects other than
// logging and is safe for concurrent use.
package calculator

import (
	"errors"
	"fmt"

	"github.com/iwvelando/sip-planner/pkg/constants"
	"github.com/iwvelando/sip-planner/pkg/mathutil"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// ErrComputation is returned when plan economics cannot be derived, for
// example when the term is shorter than a single interval.
var ErrComputation = errors.New("plan computation error")

// ErrAmountOutOfRange is returned by CheckAmount for amounts too large or
// too precise to hold in a plan.
var ErrAmountOutOfRange = errors.New("amount out of range")

// Validation messages
const (
	MsgMinTotalInvestment = "Minimum total investment is $100"
	MsgInvalidFrequency   = "Invalid frequency selected"
	MsgCustomIntervalDays = "Custom frequency requires an interval length in days"
)

// MsgAmountRange describes the largest and most precise amount accepted.
var MsgAmountRange = fmt.Sprintf("Total investment must not exceed %d with at most %d decimal places",
	constants.MaxTotalInvestment, constants.MaxAmountDecimalPlaces)

// MsgMaturityTerm describes the allowed plan term.
var MsgMaturityTerm = fmt.Sprintf("Maturity term must be between %d and %d months",
	constants.MinMaturityMonths, constants.MaxMaturityMonths)

var (
	minTotalInvestment = decimal.NewFromInt(constants.MinTotalInvestment)
	maxTotalInvestment = decimal.NewFromInt(constants.MaxTotalInvestment)
)

// CheckAmount rejects amounts above constants.MaxTotalInvestment or with more
// than constants.MaxAmountDecimalPlaces decimal places. Only the exponent and
// coefficient length are inspected before comparing, so the check stays cheap
// for values such as 1e1000000.
func CheckAmount(amount decimal.Decimal) error {
	exp := int64(amount.Exponent())
	if exp < -constants.MaxAmountDecimalPlaces {
		return fmt.Errorf("amount has more than %d decimal places: %w",
			constants.MaxAmountDecimalPlaces, ErrAmountOutOfRange)
	}
	if int64(amount.NumDigits())+exp > constants.MaxAmountDigits || amount.Abs().GreaterThan(maxTotalInvestment) {
		return fmt.Errorf("amount exceeds %d: %w", constants.MaxTotalInvestment, ErrAmountOutOfRange)
	}
	return nil
}

// PlanInput is the caller-supplied description of a plan to create.
type PlanInput struct {
	Token              string          `json:"token"`
	TotalAmount        decimal.Decimal `json:"totalAmount"`
	Frequency          Frequency       `json:"frequency"`
	MaturityMonths     int             `json:"maturityMonths"`
	CustomIntervalDays int             `json:"customIntervalDays,omitempty"`
}

// ValidationResult carries every rule violation found in a PlanInput.
type ValidationResult struct {
	IsValid bool     `json:"isValid"`
	Errors  []string `json:"errors"`
}

// Validate checks input against the plan rules. All violations are
// collected in order; none of them is reported as an error value.
func Validate(input PlanInput) ValidationResult {
	errs := make([]string, 0)

	if err := CheckAmount(input.TotalAmount); err != nil {
		errs = append(errs, MsgAmountRange)
	} else if input.TotalAmount.LessThan(minTotalInvestment) {
		errs = append(errs, MsgMinTotalInvestment)
	}

	if input.MaturityMonths < constants.MinMaturityMonths || input.MaturityMonths > constants.MaxMaturityMonths {
		errs = append(errs, MsgMaturityTerm)
	}

	if !input.Frequency.Valid() {
		errs = append(errs, MsgInvalidFrequency)
	} else if input.Frequency == FrequencyCustom && input.CustomIntervalDays < 1 {
		errs = append(errs, MsgCustomIntervalDays)
	}

	return ValidationResult{
		IsValid: len(errs) == 0,
		Errors:  errs,
	}
}

// IntervalCount is the number of contributions that fit in the term, with
// every month counted as 30 days.
func IntervalCount(frequencyDays, maturityMonths int) int {
	if frequencyDays <= 0 {
		return 0
	}
	return (maturityMonths * constants.DaysPerMonth) / frequencyDays
}

// ComputeIntervalAmount returns the per-interval contribution for a plan.
// Custom frequency requires customDays. An unrecognized frequency falls back
// to constants.DefaultFrequencyDays and logs a warning.
func ComputeIntervalAmount(logger *zap.Logger, totalAmount decimal.Decimal, frequency Frequency, maturityMonths, customDays int) (decimal.Decimal, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	if frequency == FrequencyCustom && customDays < 1 {
		return decimal.Zero, fmt.Errorf("custom frequency without interval length: %w", ErrComputation)
	}

	days, fallback := FrequencyDays(frequency, customDays)
	if fallback {
		logger.Warn(fmt.Sprintf("unrecognized frequency %q, using %d-day interval", frequency, days),
			zap.String("op", "calculator.ComputeIntervalAmount"),
		)
	}

	count := IntervalCount(days, maturityMonths)
	if count <= 0 {
		return decimal.Zero, fmt.Errorf("%d-day interval does not fit in a %d-month term: %w",
			days, maturityMonths, ErrComputation)
	}

	return totalAmount.Div(decimal.NewFromInt(int64(count))), nil
}

// Quote bundles everything shown to a user before a plan is confirmed.
type Quote struct {
	Validation     ValidationResult `json:"validation"`
	IntervalDays   int              `json:"intervalDays"`
	IntervalCount  int              `json:"intervalCount"`
	IntervalAmount decimal.Decimal  `json:"intervalAmount"`
	GasFee         decimal.Decimal  `json:"gasFee"`
}

// NewQuote validates input and, when it is valid, derives the interval
// schedule and the gas fee for creating the plan. An invalid input is not an
// error; inspect Quote.Validation.
func NewQuote(logger *zap.Logger, input PlanInput) (Quote, error) {
	quote := Quote{
		Validation: Validate(input),
		GasFee:     EstimateGasFee(logger, OperationCreatePlan),
	}
	if !quote.Validation.IsValid {
		return quote, nil
	}

	amount, err := ComputeIntervalAmount(logger, input.TotalAmount, input.Frequency, input.MaturityMonths, input.CustomIntervalDays)
	if err != nil {
		return quote, err
	}

	quote.IntervalDays, _ = FrequencyDays(input.Frequency, input.CustomIntervalDays)
	quote.IntervalCount = IntervalCount(quote.IntervalDays, input.MaturityMonths)
	quote.IntervalAmount = mathutil.Round(amount)
	return quote, nil
}
