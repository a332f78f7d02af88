package calculator

import (
	"fmt"
	"time"

	"github.com/iwvelando/loss-mitigation/pkg/constants"
	"github.com/iwvelando/loss-mitigation/pkg/datetime"
	"github.com/iwvelando/loss-mitigation/pkg/validation"
)

// Payment deferral warnings, one per unmet criterion.
const (
	WarnDeferralLoanAge        = "Loan must be at least 12 months old at evaluation"
	WarnDeferralRecentDeferral = "A payment deferral was granted within the 12 months preceding evaluation"
	WarnDeferralMaturity       = "Evaluation date must be more than 36 months before the loan maturity date"
)

// DeferralHistoryEntry is one previously granted payment deferral.
type DeferralHistoryEntry struct {
	EffectiveDate     time.Time `json:"effectiveDate"`
	MonthsDeferred    int       `json:"monthsDeferred"`
	IsDisasterRelated bool      `json:"isDisasterRelated"`
}

// ModificationHistoryEntry is one previously granted loan modification.
type ModificationHistoryEntry struct {
	EffectiveDate     time.Time `json:"effectiveDate"`
	TermMonths        int       `json:"termMonths"`
	TrialPeriodFailed bool      `json:"trialPeriodFailed"`
}

// PaymentDeferralInput holds the loan facts and deferral history evaluated
// for a payment deferral.
type PaymentDeferralInput struct {
	LoanOriginationDate time.Time              `json:"loanOriginationDate"`
	EvaluationDate      time.Time              `json:"evaluationDate"`
	MaturityDate        time.Time              `json:"maturityDate"`
	MonthsDelinquent    int                    `json:"monthsDelinquent"`
	IsDisasterRelated   bool                   `json:"isDisasterRelated"`
	DeferralHistory     []DeferralHistoryEntry `json:"deferralHistory,omitempty"`
}

// PaymentDeferralResult reports each criterion and their conjunction.
type PaymentDeferralResult struct {
	MeetsLoanAge             bool `json:"meetsLoanAge"`
	MeetsDelinquency         bool `json:"meetsDelinquency"`
	WithinCumulativeCap      bool `json:"withinCumulativeCap"`
	NoRecentDeferral         bool `json:"noRecentDeferral"`
	MeetsMaturityRequirement bool `json:"meetsMaturityRequirement"`
	OverallEligible          bool `json:"overallEligible"`
}

// PaymentDeferralEligibility evaluates the five payment deferral criteria.
// Every criterion is evaluated so that all unmet criteria are reported
// together.
func PaymentDeferralEligibility(in PaymentDeferralInput) (Result[PaymentDeferralResult], error) {
	if err := validatePaymentDeferral(in); err != nil {
		return Result[PaymentDeferralResult]{}, err
	}

	var (
		result   PaymentDeferralResult
		warnings []string
	)

	loanAge := datetime.MonthsBetween(in.LoanOriginationDate, in.EvaluationDate)
	result.MeetsLoanAge = loanAge >= constants.DeferralMinimumLoanAgeMonths
	if !result.MeetsLoanAge {
		warnings = append(warnings, WarnDeferralLoanAge)
	}

	minDelinquent, maxDelinquent := delinquencyRange(in.IsDisasterRelated)
	result.MeetsDelinquency = in.MonthsDelinquent >= minDelinquent && in.MonthsDelinquent <= maxDelinquent
	if !result.MeetsDelinquency {
		warnings = append(warnings, delinquencyWarning(in.IsDisasterRelated, in.MonthsDelinquent))
	}

	cumulative := cumulativeDeferredMonths(in.DeferralHistory)
	result.WithinCumulativeCap = cumulative <= constants.DeferralCumulativeCapMonths
	if !result.WithinCumulativeCap {
		warnings = append(warnings, fmt.Sprintf(
			"Cumulative non-disaster deferred months (%d) exceed the %d-month lifetime cap",
			cumulative, constants.DeferralCumulativeCapMonths))
	}

	recent := recentDeferral(in.DeferralHistory, in.EvaluationDate)
	result.NoRecentDeferral = recent == nil
	if !result.NoRecentDeferral {
		warnings = append(warnings, WarnDeferralRecentDeferral)
	}

	monthsToMaturity := datetime.MonthsBetween(in.EvaluationDate, in.MaturityDate)
	result.MeetsMaturityRequirement = monthsToMaturity > constants.DeferralMaturityBufferMonths
	if !result.MeetsMaturityRequirement {
		warnings = append(warnings, WarnDeferralMaturity)
	}

	result.OverallEligible = result.MeetsLoanAge &&
		result.MeetsDelinquency &&
		result.WithinCumulativeCap &&
		result.NoRecentDeferral &&
		result.MeetsMaturityRequirement

	details := map[string]any{
		"loanAgeMonths":            loanAge,
		"monthsDelinquent":         in.MonthsDelinquent,
		"delinquencyRange":         fmt.Sprintf("%d-%d", minDelinquent, maxDelinquent),
		"cumulativeDeferredMonths": cumulative,
		"monthsToMaturity":         monthsToMaturity,
		"priorDeferrals":           len(in.DeferralHistory),
	}
	if recent != nil {
		details["mostRecentDeferralDate"] = datetime.Format(recent.EffectiveDate)
	}
	return Format(NamePaymentDeferralEligibility, result, details, warnings), nil
}

func validatePaymentDeferral(in PaymentDeferralInput) error {
	if err := validation.First(
		validation.RequiredDate(fieldLoanOriginationDate, in.LoanOriginationDate),
		validation.RequiredDate(fieldEvaluationDate, in.EvaluationDate),
		validation.RequiredDate(fieldMaturityDate, in.MaturityDate),
		validation.NotBefore(fieldEvaluationDate, in.EvaluationDate, fieldLoanOriginationDate, in.LoanOriginationDate),
		validation.NotBefore(fieldMaturityDate, in.MaturityDate, fieldLoanOriginationDate, in.LoanOriginationDate),
		validation.NonNegativeInt(fieldMonthsDelinquent, in.MonthsDelinquent),
	); err != nil {
		return err
	}
	for _, entry := range in.DeferralHistory {
		if err := validation.First(
			validation.RequiredDate(fieldHistoryEffectiveDate, entry.EffectiveDate),
			validation.NonNegativeInt(fieldMonthsDeferred, entry.MonthsDeferred),
		); err != nil {
			return err
		}
	}
	return nil
}

func delinquencyRange(disaster bool) (int, int) {
	if disaster {
		return constants.DisasterMinDelinquencyMonths, constants.DisasterMaxDelinquencyMonths
	}
	return constants.DeferralMinDelinquencyMonths, constants.DeferralMaxDelinquencyMonths
}

func delinquencyWarning(disaster bool, months int) string {
	if disaster {
		return fmt.Sprintf("Disaster-related deferral requires 1 to 12 months of delinquency; loan is %d months delinquent", months)
	}
	return fmt.Sprintf("Payment deferral requires 2 to 6 months of delinquency; loan is %d months delinquent", months)
}

// cumulativeDeferredMonths totals deferred months across history, excluding
// disaster-related deferrals.
func cumulativeDeferredMonths(history []DeferralHistoryEntry) int {
	total := 0
	for _, entry := range history {
		if entry.IsDisasterRelated {
			continue
		}
		total += entry.MonthsDeferred
	}
	return total
}

// recentDeferral returns the latest history entry effective within the
// lookback window before evaluation, or nil. Entries dated after the
// evaluation are not prior deferrals.
func recentDeferral(history []DeferralHistoryEntry, evaluation time.Time) *DeferralHistoryEntry {
	var recent *DeferralHistoryEntry
	for i := range history {
		entry := &history[i]
		if entry.EffectiveDate.After(evaluation) {
			continue
		}
		if datetime.MonthsBetween(entry.EffectiveDate, evaluation) >= constants.DeferralRecentWindowMonths {
			continue
		}
		if recent == nil || entry.EffectiveDate.After(recent.EffectiveDate) {
			recent = entry
		}
	}
	return recent
}
