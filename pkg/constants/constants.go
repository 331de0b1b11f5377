// Package constants provides shared constants for the sip-planner application.
package constants

// DateLayout is the calendar date format used for plan schedules and output.
const DateLayout = "2006-01-02"

// Plan rules
const (
	// MinTotalInvestment is the smallest total amount (USDT) a plan may target.
	MinTotalInvestment = 100

	// MaxTotalInvestment is the largest total amount (USDT) a plan may target.
	MaxTotalInvestment = 1000000000000

	// MaxAmountDigits is the number of integer digits in MaxTotalInvestment.
	MaxAmountDigits = 13

	// MaxAmountDecimalPlaces is the finest precision accepted for an amount.
	MaxAmountDecimalPlaces = 18

	// MinMaturityMonths is the shortest allowed plan term.
	MinMaturityMonths = 6

	// MaxMaturityMonths is the longest allowed plan term.
	MaxMaturityMonths = 60

	// DaysPerMonth approximates every calendar month as 30 days.
	DaysPerMonth = 30

	// DefaultFrequencyDays is used when a frequency has no known interval length.
	DefaultFrequencyDays = 30

	// ExecutionStep is the progress percentage added by one execution.
	ExecutionStep = 10

	// MaxProgress is a fully executed plan.
	MaxProgress = 100
)

// Frequency interval lengths in days
const (
	DailyDays   = 1
	WeeklyDays  = 7
	MonthlyDays = 30
)

// Gas fee estimates in native token units. Stored as strings so they parse
// exactly into decimals.
const (
	GasFeeCreatePlan  = "0.002"
	GasFeeExecuteSIP  = "0.001"
	GasFeeFinalizeSIP = "0.0015"
	DefaultGasFee     = "0.001"
)

// Currency constants
const (
	// CurrencySymbol is the unit of every plan amount.
	CurrencySymbol = "USDT"

	// CurrencyPrecision is the number of decimal places shown for amounts.
	CurrencyPrecision = 2

	// PercentageMultiplier is used for percentage conversions
	PercentageMultiplier = 100
)

// Output format constants
const (
	// OutputFormatPretty is the human-readable output format
	OutputFormatPretty = "pretty"

	// OutputFormatCSV is the CSV output format
	OutputFormatCSV = "csv"
)

// Configuration file constants
const (
	// DefaultConfigFile is the default configuration file name
	DefaultConfigFile = "config.yaml"

	// DefaultServerConfigFile is the default server configuration file name
	DefaultServerConfigFile = "server-config.yaml"
)

// Server configuration defaults
const (
	// DefaultServerAddress is the default HTTP listen address for the API
	DefaultServerAddress = ":8080"

	// DefaultMaxBodySizeBytes is the default maximum request body size (64 KB)
	DefaultMaxBodySizeBytes int64 = 64 * 1024

	// DefaultReadTimeoutSeconds bounds reading a full request.
	DefaultReadTimeoutSeconds = 10

	// DefaultWriteTimeoutSeconds bounds writing a response.
	DefaultWriteTimeoutSeconds = 15

	// DefaultShutdownTimeoutSeconds bounds graceful shutdown.
	DefaultShutdownTimeoutSeconds = 10

	// EnvPrefix prefixes every environment override for the server.
	EnvPrefix = "SIP_SERVER_"
)
