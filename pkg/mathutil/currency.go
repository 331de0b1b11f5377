// Package mathutil provides common mathematical utility functions.
package mathutil

import (
	"github.com/iwvelando/sip-planner/pkg/constants"
	"github.com/shopspring/decimal"
)

// Round rounds a value to two decimals, i.e. to represent real currency.
func Round(val decimal.Decimal) decimal.Decimal {
	return val.Round(constants.CurrencyPrecision)
}

// MustDecimal parses a constant decimal string and panics on error.
// This is intended for package-level tables whose values are known to be valid.
func MustDecimal(value string) decimal.Decimal {
	return decimal.RequireFromString(value)
}

// ApplyPercentage applies an integer percentage to a value.
func ApplyPercentage(value decimal.Decimal, percentage int) decimal.Decimal {
	return value.Mul(decimal.NewFromInt(int64(percentage))).Div(decimal.NewFromInt(constants.PercentageMultiplier))
}

// CalculatePercentage calculates what percentage value is of total
func CalculatePercentage(value, total decimal.Decimal) decimal.Decimal {
	if total.IsZero() {
		return decimal.Zero
	}
	return value.Div(total).Mul(decimal.NewFromInt(constants.PercentageMultiplier))
}

// ClampInt limits val to the closed range [lo, hi].
func ClampInt(val, lo, hi int) int {
	if val < lo {
		return lo
	}
	if val > hi {
		return hi
	}
	return val
}
