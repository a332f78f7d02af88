package calculator

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/iwvelando/loss-mitigation/pkg/constants"
	"github.com/iwvelando/loss-mitigation/pkg/format"
	"github.com/iwvelando/loss-mitigation/pkg/money"
	"github.com/iwvelando/loss-mitigation/pkg/validation"
)

// Repayment plan warnings.
const (
	WarnRepaymentTermReview = "Repayment plan term exceeds 12 months; additional servicer review is required"
	WarnRepaymentTermLimit  = "Repayment plan term exceeds the 36-month maximum"
)

// EscrowRepaymentInput holds an escrow shortage and the number of months to
// spread it over. A zero TermMonths means the default of 60.
type EscrowRepaymentInput struct {
	EscrowShortage decimal.Decimal `json:"escrowShortage"`
	TermMonths     int             `json:"termMonths,omitempty"`
}

// EscrowRepayment computes the monthly escrow shortage repayment, rounded
// half-up to cents.
func EscrowRepayment(in EscrowRepaymentInput) (Result[decimal.Decimal], error) {
	term := in.TermMonths
	if term == 0 {
		term = constants.DefaultEscrowRepaymentMonths
	}
	if err := validation.First(
		validation.NonNegative(fieldEscrowShortage, in.EscrowShortage),
		validation.PositiveInt(fieldTermMonths, term),
	); err != nil {
		return Result[decimal.Decimal]{}, err
	}

	months := decimal.NewFromInt(int64(term))
	monthly := money.Cents(in.EscrowShortage.Div(months))
	totalRepaid := monthly.Mul(months)

	details := map[string]any{
		"escrowShortage":     money.Cents(in.EscrowShortage),
		"termMonths":         term,
		"totalRepaid":        totalRepaid,
		"roundingDifference": totalRepaid.Sub(money.Cents(in.EscrowShortage)),
	}
	return Format(NameEscrowRepayment, monthly, details, nil), nil
}

// TrialPeriodPaymentInput holds the components of a trial period payment.
// EscrowAddOns defaults to zero.
type TrialPeriodPaymentInput struct {
	PrincipalAndInterest decimal.Decimal `json:"principalAndInterest"`
	MonthlyTaxes         decimal.Decimal `json:"monthlyTaxes"`
	MonthlyInsurance     decimal.Decimal `json:"monthlyInsurance"`
	EscrowAddOns         decimal.Decimal `json:"escrowAddOns"`
}

// TrialPeriodPayment sums principal and interest, taxes, insurance and escrow
// add-ons into the monthly trial payment.
func TrialPeriodPayment(in TrialPeriodPaymentInput) (Result[decimal.Decimal], error) {
	if err := validation.First(
		validation.NonNegative(fieldPrincipalAndInterest, in.PrincipalAndInterest),
		validation.NonNegative(fieldMonthlyTaxes, in.MonthlyTaxes),
		validation.NonNegative(fieldMonthlyInsurance, in.MonthlyInsurance),
		validation.NonNegative(fieldEscrowAddOns, in.EscrowAddOns),
	); err != nil {
		return Result[decimal.Decimal]{}, err
	}

	payment := money.Cents(money.Sum(in.PrincipalAndInterest, in.MonthlyTaxes, in.MonthlyInsurance, in.EscrowAddOns))
	months := constants.TrialPeriodMonths

	details := map[string]any{
		"principalAndInterest": money.Cents(in.PrincipalAndInterest),
		"escrowPayment":        money.Cents(money.Sum(in.MonthlyTaxes, in.MonthlyInsurance, in.EscrowAddOns)),
		"trialPeriodMonths":    months,
		"totalTrialPayments":   payment.Mul(decimal.NewFromInt(int64(months))),
	}
	return Format(NameTrialPeriodPayment, payment, details, nil), nil
}

// RepaymentPlanInput holds the inputs of a repayment plan.
type RepaymentPlanInput struct {
	FullMonthlyPITI  decimal.Decimal `json:"fullMonthlyPITI"`
	TotalDelinquency decimal.Decimal `json:"totalDelinquency"`
	TermMonths       int             `json:"termMonths"`
}

// RepaymentPlanResult reports the plan payment and which limits it breaks.
type RepaymentPlanResult struct {
	ProposedPayment     decimal.Decimal `json:"proposedPayment"`
	MaxAllowablePayment decimal.Decimal `json:"maxAllowablePayment"`
	IsValidPlan         bool            `json:"isValidPlan"`
	ExceedsPaymentLimit bool            `json:"exceedsPaymentLimit"`
	ExceedsTermLimit    bool            `json:"exceedsTermLimit"`
}

// RepaymentPlan computes fullPITI + totalDelinquency/termMonths and checks it
// against the 150% payment cap and the 36-month term limit.
func RepaymentPlan(in RepaymentPlanInput) (Result[RepaymentPlanResult], error) {
	if err := validation.First(
		validation.Positive(fieldFullMonthlyPITI, in.FullMonthlyPITI),
		validation.NonNegative(fieldTotalDelinquency, in.TotalDelinquency),
		validation.PositiveInt(fieldTermMonths, in.TermMonths),
	); err != nil {
		return Result[RepaymentPlanResult]{}, err
	}

	delinquencyPortion := money.Cents(in.TotalDelinquency.Div(decimal.NewFromInt(int64(in.TermMonths))))
	proposed := money.Cents(in.FullMonthlyPITI.Add(delinquencyPortion))
	maxPayment := money.Cents(in.FullMonthlyPITI.Mul(repaymentPaymentMultiple))

	result := RepaymentPlanResult{
		ProposedPayment:     proposed,
		MaxAllowablePayment: maxPayment,
		ExceedsPaymentLimit: proposed.GreaterThan(maxPayment),
		ExceedsTermLimit:    in.TermMonths > constants.MaxRepaymentPlanMonths,
	}
	result.IsValidPlan = !result.ExceedsPaymentLimit && !result.ExceedsTermLimit

	var warnings []string
	if in.TermMonths > constants.RepaymentPlanReviewMonths {
		warnings = append(warnings, WarnRepaymentTermReview)
	}
	if result.ExceedsPaymentLimit {
		warnings = append(warnings, fmt.Sprintf("Proposed payment %s exceeds the maximum allowable payment of %s (150%% of PITI)",
			format.Currency(proposed), format.Currency(maxPayment)))
	}
	if result.ExceedsTermLimit {
		warnings = append(warnings, WarnRepaymentTermLimit)
	}

	details := map[string]any{
		"monthlyDelinquencyPortion": delinquencyPortion,
		"termMonths":                in.TermMonths,
		"paymentIncreasePercent":    money.Percent(money.Divide(delinquencyPortion, in.FullMonthlyPITI)),
	}
	return Format(NameRepaymentPlan, result, details, warnings), nil
}
