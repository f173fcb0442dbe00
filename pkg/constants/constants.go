// Package constants provides shared constants for the mortgage-plan application.
package constants

// Financial constants
const (
	// DecimalPrecision is the precision for currency rounding (2 decimal places)
	DecimalPrecision = 100

	// CurrencyTolerance is the tolerance for currency comparisons (1 cent)
	CurrencyTolerance = 0.01

	// PercentageMultiplier is used for percentage conversions
	PercentageMultiplier = 100.0

	// SemiAnnualCompounding is the number of compounding periods per year
	// baked into a quoted fixed mortgage rate.
	SemiAnnualCompounding = 2
)

// Payments per year for each base payment frequency.
const (
	MonthlyPeriods     = 12
	SemiMonthlyPeriods = 24
	BiWeeklyPeriods    = 26
	WeeklyPeriods      = 52
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

	// DefaultWorkbookFile is the default workbook export target
	DefaultWorkbookFile = "amortization-schedules.xlsx"
)

// Server configuration defaults
const (
	// DefaultServerAddress is the default HTTP listen address for the quote API
	DefaultServerAddress = ":8080"

	// DefaultMaxUploadSizeBytes is the default maximum upload size for YAML terms (256 KB)
	DefaultMaxUploadSizeBytes int64 = 256 * 1024
)

// Presentation defaults
const (
	// DefaultChartWidth is the column width for terminal balance charts
	DefaultChartWidth = 60
)
