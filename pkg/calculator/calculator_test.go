package calculator

import (
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

func amount(v string) decimal.Decimal {
	return decimal.RequireFromString(v)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name       string
		input      PlanInput
		wantValid  bool
		wantErrors []string
	}{
		{
			name:      "Valid monthly plan",
			input:     PlanInput{Token: "BTC", TotalAmount: amount("1200"), Frequency: FrequencyMonthly, MaturityMonths: 12},
			wantValid: true,
		},
		{
			name:      "Minimum bounds are inclusive",
			input:     PlanInput{TotalAmount: amount("100"), Frequency: FrequencyDaily, MaturityMonths: 6},
			wantValid: true,
		},
		{
			name:      "Maximum term is inclusive",
			input:     PlanInput{TotalAmount: amount("100000"), Frequency: FrequencyWeekly, MaturityMonths: 60},
			wantValid: true,
		},
		{
			name:      "Custom with interval length",
			input:     PlanInput{TotalAmount: amount("500"), Frequency: FrequencyCustom, MaturityMonths: 12, CustomIntervalDays: 14},
			wantValid: true,
		},
		{
			name:       "Amount below minimum",
			input:      PlanInput{TotalAmount: amount("50"), Frequency: FrequencyMonthly, MaturityMonths: 12},
			wantErrors: []string{MsgMinTotalInvestment},
		},
		{
			name:       "Amount just below minimum",
			input:      PlanInput{TotalAmount: amount("99.99"), Frequency: FrequencyMonthly, MaturityMonths: 12},
			wantErrors: []string{MsgMinTotalInvestment},
		},
		{
			name:       "Term too short",
			input:      PlanInput{TotalAmount: amount("1000"), Frequency: FrequencyMonthly, MaturityMonths: 5},
			wantErrors: []string{MsgMaturityTerm},
		},
		{
			name:       "Term too long",
			input:      PlanInput{TotalAmount: amount("1000"), Frequency: FrequencyMonthly, MaturityMonths: 61},
			wantErrors: []string{MsgMaturityTerm},
		},
		{
			name:       "Unknown frequency",
			input:      PlanInput{TotalAmount: amount("1000"), Frequency: "yearly", MaturityMonths: 12},
			wantErrors: []string{MsgInvalidFrequency},
		},
		{
			name:       "Custom without interval length",
			input:      PlanInput{TotalAmount: amount("1000"), Frequency: FrequencyCustom, MaturityMonths: 12},
			wantErrors: []string{MsgCustomIntervalDays},
		},
		{
			name:      "Maximum amount is inclusive",
			input:     PlanInput{TotalAmount: amount("1000000000000"), Frequency: FrequencyMonthly, MaturityMonths: 12},
			wantValid: true,
		},
		{
			name:       "Amount above maximum",
			input:      PlanInput{TotalAmount: amount("1000000000000.01"), Frequency: FrequencyMonthly, MaturityMonths: 12},
			wantErrors: []string{MsgAmountRange},
		},
		{
			name:       "Huge exponent rejected without rescaling",
			input:      PlanInput{TotalAmount: amount("1e1000000"), Frequency: FrequencyMonthly, MaturityMonths: 3},
			wantErrors: []string{MsgAmountRange, MsgMaturityTerm},
		},
		{
			name:       "All violations collected in order",
			input:      PlanInput{TotalAmount: amount("10"), Frequency: "", MaturityMonths: 0},
			wantErrors: []string{MsgMinTotalInvestment, MsgMaturityTerm, MsgInvalidFrequency},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := Validate(tt.input)
			if result.IsValid != tt.wantValid {
				t.Errorf("Validate() IsValid = %t, expected %t (errors %v)", result.IsValid, tt.wantValid, result.Errors)
			}
			if result.IsValid != (len(result.Errors) == 0) {
				t.Errorf("Validate() IsValid = %t inconsistent with %d errors", result.IsValid, len(result.Errors))
			}
			if len(result.Errors) != len(tt.wantErrors) {
				t.Fatalf("Validate() errors = %v, expected %v", result.Errors, tt.wantErrors)
			}
			for i := range tt.wantErrors {
				if result.Errors[i] != tt.wantErrors[i] {
					t.Errorf("Validate() errors[%d] = %q, expected %q", i, result.Errors[i], tt.wantErrors[i])
				}
			}
		})
	}
}

func TestCheckAmount(t *testing.T) {
	tests := []struct {
		name    string
		amount  string
		wantErr bool
	}{
		{"Typical amount", "1200", false},
		{"Zero", "0", false},
		{"Negative within range", "-50", false},
		{"Maximum", "1000000000000", false},
		{"Maximum with trailing zeros", "1000000000000.000000", false},
		{"Eighteen decimal places", "100.000000000000000001", false},
		{"Just above maximum", "1000000000000.000000000000000001", true},
		{"Fourteen integer digits", "10000000000000", true},
		{"Nineteen decimal places", "100.0000000000000000001", true},
		{"Huge positive exponent", "1e1000000", true},
		{"Huge negative exponent", "1e-1000000", true},
		{"Zero with huge exponent", "0e1000000", true},
		{"Large negative amount", "-1e20", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := CheckAmount(amount(tt.amount))
			if (err != nil) != tt.wantErr {
				t.Fatalf("CheckAmount(%s) error = %v, wantErr %v", tt.name, err, tt.wantErr)
			}
			if err != nil && !errors.Is(err, ErrAmountOutOfRange) {
				t.Errorf("CheckAmount(%s) error = %v, expected ErrAmountOutOfRange", tt.name, err)
			}
		})
	}
}

func TestMaturityTermMessage(t *testing.T) {
	if MsgMaturityTerm != "Maturity term must be between 6 and 60 months" {
		t.Errorf("MsgMaturityTerm = %q", MsgMaturityTerm)
	}
}

func TestComputeIntervalAmount(t *testing.T) {
	tests := []struct {
		name       string
		total      string
		frequency  Frequency
		months     int
		customDays int
		expected   string
	}{
		{"Monthly for a year", "1200", FrequencyMonthly, 12, 0, "100"},
		{"Weekly for six months", "1000", FrequencyWeekly, 6, 0, "40"},
		{"Daily for six months", "1800", FrequencyDaily, 6, 0, "10"},
		{"Custom fortnightly", "1200", FrequencyCustom, 12, 15, "50"},
		{"Unknown frequency falls back to thirty days", "1200", "yearly", 12, 0, "100"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ComputeIntervalAmount(zap.NewNop(), amount(tt.total), tt.frequency, tt.months, tt.customDays)
			if err != nil {
				t.Fatalf("ComputeIntervalAmount() unexpected error = %v", err)
			}
			if !got.Equal(amount(tt.expected)) {
				t.Errorf("ComputeIntervalAmount() = %s, expected %s", got, tt.expected)
			}
		})
	}
}

func TestComputeIntervalAmountErrors(t *testing.T) {
	tests := []struct {
		name       string
		frequency  Frequency
		months     int
		customDays int
	}{
		{"Custom without days", FrequencyCustom, 12, 0},
		{"Interval longer than term", FrequencyWeekly, 0, 0},
		{"Custom interval longer than term", FrequencyCustom, 6, 181},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ComputeIntervalAmount(nil, amount("1000"), tt.frequency, tt.months, tt.customDays)
			if !errors.Is(err, ErrComputation) {
				t.Errorf("ComputeIntervalAmount() error = %v, expected ErrComputation", err)
			}
		})
	}
}

func TestIntervalCount(t *testing.T) {
	tests := []struct {
		days, months, expected int
	}{
		{30, 12, 12},
		{7, 6, 25},
		{1, 6, 180},
		{181, 6, 0},
		{0, 6, 0},
	}
	for _, tt := range tests {
		if got := IntervalCount(tt.days, tt.months); got != tt.expected {
			t.Errorf("IntervalCount(%d, %d) = %d, expected %d", tt.days, tt.months, got, tt.expected)
		}
	}
}

func TestFrequencyDays(t *testing.T) {
	tests := []struct {
		name         string
		frequency    Frequency
		customDays   int
		wantDays     int
		wantFallback bool
	}{
		{"Daily", FrequencyDaily, 0, 1, false},
		{"Weekly", FrequencyWeekly, 0, 7, false},
		{"Monthly", FrequencyMonthly, 0, 30, false},
		{"Custom", FrequencyCustom, 10, 10, false},
		{"Custom without days", FrequencyCustom, 0, 30, true},
		{"Unknown", "fortnightly", 0, 30, true},
		{"Custom days ignored for fixed frequency", FrequencyWeekly, 3, 7, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			days, fallback := FrequencyDays(tt.frequency, tt.customDays)
			if days != tt.wantDays || fallback != tt.wantFallback {
				t.Errorf("FrequencyDays() = (%d, %t), expected (%d, %t)", days, fallback, tt.wantDays, tt.wantFallback)
			}
		})
	}
}

func TestParseFrequency(t *testing.T) {
	if got := ParseFrequency("  Monthly "); got != FrequencyMonthly {
		t.Errorf("ParseFrequency() = %q, expected %q", got, FrequencyMonthly)
	}
	if ParseFrequency("yearly").Valid() {
		t.Error("yearly should not be a valid frequency")
	}
	for _, f := range Frequencies() {
		if !f.Valid() {
			t.Errorf("Frequencies() returned invalid %q", f)
		}
	}
}

func TestNewQuote(t *testing.T) {
	quote, err := NewQuote(zap.NewNop(), PlanInput{Token: "ETH", TotalAmount: amount("1000"), Frequency: FrequencyWeekly, MaturityMonths: 6})
	if err != nil {
		t.Fatalf("NewQuote() error = %v", err)
	}
	if !quote.Validation.IsValid {
		t.Fatalf("NewQuote() validation = %v", quote.Validation.Errors)
	}
	if quote.IntervalDays != 7 || quote.IntervalCount != 25 {
		t.Errorf("NewQuote() schedule = %d days x %d, expected 7 x 25", quote.IntervalDays, quote.IntervalCount)
	}
	if !quote.IntervalAmount.Equal(amount("40")) {
		t.Errorf("NewQuote() IntervalAmount = %s, expected 40", quote.IntervalAmount)
	}
	if !quote.GasFee.Equal(amount("0.002")) {
		t.Errorf("NewQuote() GasFee = %s, expected 0.002", quote.GasFee)
	}

	invalid, err := NewQuote(nil, PlanInput{TotalAmount: amount("50"), Frequency: FrequencyMonthly, MaturityMonths: 12})
	if err != nil {
		t.Fatalf("NewQuote() invalid input returned error = %v", err)
	}
	if invalid.Validation.IsValid || invalid.IntervalCount != 0 {
		t.Errorf("NewQuote() invalid input = %+v", invalid)
	}
}
