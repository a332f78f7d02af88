// Package constants provides shared constants for the loss-mitigation engine.
package constants

// DateLayout is the calendar date format accepted in borrower records and
// request payloads.
const DateLayout = "2006-01-02"

// Rounding precision
const (
	// CurrencyPlaces is the number of decimal places kept on monetary output
	CurrencyPlaces = 2

	// RatioPlaces is the number of decimal places kept on ratios (0.4000)
	RatioPlaces = 4

	// PercentPlaces is the number of decimal places kept on percentages (40.00)
	PercentPlaces = 2

	// MonthsPerYear is the number of months in a year
	MonthsPerYear = 12
)

// Ratio thresholds, expressed as fractions.
const (
	// HousingRatioContributionThreshold is the housing expense-to-income ratio at
	// or below which a cash contribution may be required.
	HousingRatioContributionThreshold = "0.40"

	// DefaultGrossUpPercentage is applied to non-taxable income when none is given.
	DefaultGrossUpPercentage = "0.25"

	// DefaultTargetHousingDTI is the default modification housing ratio target.
	DefaultTargetHousingDTI = "0.31"

	// DefaultTargetTotalDTI is the default modification total debt ratio target.
	DefaultTargetTotalDTI = "0.43"
)

// Cash reserve and contribution thresholds, in dollars.
const (
	ReserveContributionThreshold    = 10000
	ReserveImminentDefaultThreshold = 25000

	// ContributionReservePercentage is the share of reserves considered for a contribution.
	ContributionReservePercentage = "0.20"

	// ContributionPITIMultiple is the number of months of PITI considered for a contribution.
	ContributionPITIMultiple = 4

	// DeMinimisContribution is the amount below which a contribution is waived.
	DeMinimisContribution = 500
)

// Servicing plan limits.
const (
	// DefaultEscrowRepaymentMonths is the escrow shortage spread when no term is given.
	DefaultEscrowRepaymentMonths = 60

	// TrialPeriodMonths is the number of trial payments before a modification is final.
	TrialPeriodMonths = 3

	// RepaymentPaymentMultiple caps a repayment plan payment relative to full PITI.
	RepaymentPaymentMultiple = "1.5"

	// MaxRepaymentPlanMonths is the longest permitted repayment plan.
	MaxRepaymentPlanMonths = 36

	// RepaymentPlanReviewMonths is the term above which a plan is flagged for review.
	RepaymentPlanReviewMonths = 12

	// DefaultRepaymentTermMonths is the repayment plan term evaluated when none is given.
	DefaultRepaymentTermMonths = 12
)

// Payment deferral criteria.
const (
	DeferralMinimumLoanAgeMonths = 12
	DeferralMinDelinquencyMonths = 2
	DeferralMaxDelinquencyMonths = 6
	DisasterMinDelinquencyMonths = 1
	DisasterMaxDelinquencyMonths = 12
	DeferralCumulativeCapMonths  = 12
	DeferralRecentWindowMonths   = 12
	DeferralMaturityBufferMonths = 36
)

// RelocationAssistanceAward is the fixed relocation assistance amount in dollars.
const RelocationAssistanceAward = 7500

// Output format constants
const (
	// OutputFormatPretty is the human-readable output format
	OutputFormatPretty = "pretty"

	// OutputFormatCSV is the CSV output format
	OutputFormatCSV = "csv"

	// OutputFormatJSON is the JSON output format
	OutputFormatJSON = "json"
)

// Configuration file constants
const (
	// DefaultConfigFile is the default configuration file name
	DefaultConfigFile = "config.yaml"

	// EnvPrefix is the prefix for environment variable overrides
	EnvPrefix = "LOSSMIT"
)

// Server configuration defaults
const (
	// DefaultServerAddress is the default HTTP listen address
	DefaultServerAddress = ":8080"

	// DefaultMaxBodySizeBytes is the default maximum request body size (256 KB)
	DefaultMaxBodySizeBytes int64 = 256 * 1024
)

// Fact source backends
const (
	FactBackendNone  = "none"
	FactBackendFile  = "file"
	FactBackendRedis = "redis"

	// DefaultRedisKeyPrefix prefixes borrower fact documents stored in Redis
	DefaultRedisKeyPrefix = "lossmit:facts:"
)
