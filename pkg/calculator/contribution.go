package calculator

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/iwvelando/loss-mitigation/pkg/constants"
	"github.com/iwvelando/loss-mitigation/pkg/format"
	"github.com/iwvelando/loss-mitigation/pkg/money"
	"github.com/iwvelando/loss-mitigation/pkg/validation"
)

// Contribution trigger names reported in CashContributionResult.TriggeredBy.
const (
	TriggerReserves     = "reserves"
	TriggerPITI         = "piti"
	TriggerHousingRatio = "housingRatio"
)

// Waiver reasons, evaluated in this order.
const (
	WaiverDeMinimis        = "deMinimis"
	WaiverPCSServicemember = "pcsServicemember"
)

// CashContributionInput holds the inputs of the short sale / deed-in-lieu cash
// contribution rule. HousingRatio is optional; when present and at or below
// 40% it independently requires a contribution.
type CashContributionInput struct {
	TotalCashReserves      decimal.Decimal  `json:"totalCashReserves"`
	ContractualMonthlyPITI decimal.Decimal  `json:"contractualMonthlyPITI"`
	EstimatedDeficiency    decimal.Decimal  `json:"estimatedDeficiency"`
	HousingRatio           *decimal.Decimal `json:"housingRatio,omitempty"`
	IsServicememberWithPCS bool             `json:"isServicememberWithPCS"`
}

// CashContributionResult is the outcome of the contribution rule. A waiver
// zeroes ContributionAmount but never clears ContributionRequired.
type CashContributionResult struct {
	ContributionRequired bool            `json:"contributionRequired"`
	ContributionAmount   decimal.Decimal `json:"contributionAmount"`
	ContributionWaived   bool            `json:"contributionWaived"`
	WaiverReason         string          `json:"waiverReason,omitempty"`
	TriggeredBy          []string        `json:"triggeredBy,omitempty"`
}

type contributionFacts struct {
	in           CashContributionInput
	reserveBased decimal.Decimal
	pitiBased    decimal.Decimal
}

// contributionRule pairs a predicate with its effect on the result.
type contributionRule struct {
	name   string
	when   func(f contributionFacts, r *CashContributionResult) bool
	effect func(r *CashContributionResult, name string)
}

func requireContribution(r *CashContributionResult, name string) {
	r.ContributionRequired = true
	r.TriggeredBy = append(r.TriggeredBy, name)
}

func waiveContribution(r *CashContributionResult, name string) {
	r.ContributionWaived = true
	r.WaiverReason = name
	r.ContributionAmount = decimal.Zero
}

// contributionTriggers are all evaluated; any match requires a contribution.
var contributionTriggers = []contributionRule{
	{
		name: TriggerReserves,
		when: func(f contributionFacts, _ *CashContributionResult) bool {
			return f.in.TotalCashReserves.GreaterThanOrEqual(reserveContributionLevel)
		},
		effect: requireContribution,
	},
	{
		name: TriggerPITI,
		when: func(f contributionFacts, _ *CashContributionResult) bool {
			return f.in.ContractualMonthlyPITI.IsPositive() && f.in.TotalCashReserves.GreaterThanOrEqual(f.pitiBased)
		},
		effect: requireContribution,
	},
	{
		name: TriggerHousingRatio,
		when: func(f contributionFacts, _ *CashContributionResult) bool {
			return f.in.HousingRatio != nil && f.in.HousingRatio.LessThanOrEqual(housingRatioThreshold)
		},
		effect: requireContribution,
	},
}

// contributionWaivers are evaluated in priority order; the first match wins.
var contributionWaivers = []contributionRule{
	{
		name: WaiverDeMinimis,
		when: func(_ contributionFacts, r *CashContributionResult) bool {
			return r.ContributionAmount.LessThan(deMinimisContribution)
		},
		effect: waiveContribution,
	},
	{
		name: WaiverPCSServicemember,
		when: func(f contributionFacts, _ *CashContributionResult) bool {
			return f.in.IsServicememberWithPCS
		},
		effect: waiveContribution,
	},
}

// CashContribution computes the cash contribution candidate,
// max(20% of reserves, 4 × contractual PITI) capped at the estimated
// deficiency, determines whether a contribution is required, and applies the
// waiver rules to the amount.
func CashContribution(in CashContributionInput) (Result[CashContributionResult], error) {
	if err := validation.First(
		validation.NonNegative(fieldTotalCashReserves, in.TotalCashReserves),
		validation.NonNegative(fieldContractualMonthlyPITI, in.ContractualMonthlyPITI),
		validation.NonNegative(fieldEstimatedDeficiency, in.EstimatedDeficiency),
		housingRatioCheck(in.HousingRatio),
	); err != nil {
		return Result[CashContributionResult]{}, err
	}

	facts := contributionFacts{
		in:           in,
		reserveBased: money.Cents(in.TotalCashReserves.Mul(contributionReserveShare)),
		pitiBased:    money.Cents(in.ContractualMonthlyPITI.Mul(contributionPITIMultiple)),
	}
	candidate := money.Max(facts.reserveBased, facts.pitiBased)
	// floor so a sub-cent deficiency is never exceeded
	amount := money.Min(candidate, in.EstimatedDeficiency.RoundFloor(constants.CurrencyPlaces))

	result := CashContributionResult{ContributionAmount: amount}
	for _, rule := range contributionTriggers {
		if rule.when(facts, &result) {
			rule.effect(&result, rule.name)
		}
	}
	for _, rule := range contributionWaivers {
		if rule.when(facts, &result) {
			rule.effect(&result, rule.name)
			break
		}
	}

	var warnings []string
	if candidate.GreaterThan(amount) {
		warnings = append(warnings, fmt.Sprintf("Contribution capped at the estimated deficiency of %s",
			format.Currency(amount)))
	}
	switch result.WaiverReason {
	case WaiverDeMinimis:
		warnings = append(warnings, fmt.Sprintf("Contribution waived: computed amount %s is below the %s de minimis threshold",
			format.Currency(amount), format.Currency(deMinimisContribution)))
	case WaiverPCSServicemember:
		warnings = append(warnings, "Contribution waived: borrower is a servicemember with Permanent Change of Station orders")
	}

	details := map[string]any{
		"reserveBasedAmount":  facts.reserveBased,
		"pitiBasedAmount":     facts.pitiBased,
		"candidateAmount":     candidate,
		"computedAmount":      amount,
		"estimatedDeficiency": money.Cents(in.EstimatedDeficiency),
	}
	if in.HousingRatio != nil {
		details["housingRatioPercent"] = money.Percent(*in.HousingRatio)
	}
	return Format(NameCashContribution, result, details, warnings), nil
}

func housingRatioCheck(ratio *decimal.Decimal) error {
	if ratio == nil {
		return nil
	}
	return validation.NonNegative(fieldHousingRatio, *ratio)
}
