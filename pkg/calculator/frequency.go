package calculator

import (
	"strings"

	"github.com/iwvelando/sip-planner/pkg/constants"
)

// Frequency is how often a plan contributes.
type Frequency string

const (
	FrequencyDaily   Frequency = "daily"
	FrequencyWeekly  Frequency = "weekly"
	FrequencyMonthly Frequency = "monthly"
	FrequencyCustom  Frequency = "custom"
)

// frequencyDays holds the fixed interval length of every frequency except
// custom, whose length is supplied by the caller.
var frequencyDays = map[Frequency]int{
	FrequencyDaily:   constants.DailyDays,
	FrequencyWeekly:  constants.WeeklyDays,
	FrequencyMonthly: constants.MonthlyDays,
}

// Frequencies lists the recognized frequencies in display order.
func Frequencies() []Frequency {
	return []Frequency{FrequencyDaily, FrequencyWeekly, FrequencyMonthly, FrequencyCustom}
}

// ParseFrequency normalizes user input such as " Monthly " into a Frequency.
// The result is not guaranteed to be valid; check it with Valid.
func ParseFrequency(value string) Frequency {
	return Frequency(strings.ToLower(strings.TrimSpace(value)))
}

// Valid reports whether f is one of the recognized frequencies.
func (f Frequency) Valid() bool {
	switch f {
	case FrequencyDaily, FrequencyWeekly, FrequencyMonthly, FrequencyCustom:
		return true
	}
	return false
}

// FrequencyDays resolves the interval length in days. Custom uses customDays
// when it is positive. Unrecognized frequencies, and custom without a day
// count, resolve to constants.DefaultFrequencyDays with fallback set.
func FrequencyDays(f Frequency, customDays int) (days int, fallback bool) {
	if f == FrequencyCustom {
		if customDays >= 1 {
			return customDays, false
		}
		return constants.DefaultFrequencyDays, true
	}
	if d, ok := frequencyDays[f]; ok {
		return d, false
	}
	return constants.DefaultFrequencyDays, true
}
