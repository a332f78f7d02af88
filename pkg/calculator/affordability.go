package calculator

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/iwvelando/loss-mitigation/pkg/format"
	"github.com/iwvelando/loss-mitigation/pkg/money"
	"github.com/iwvelando/loss-mitigation/pkg/validation"
)

// ModificationAffordabilityInput holds a proposed modified payment and the
// targets it is measured against. Nil targets default to 31% and 43%.
type ModificationAffordabilityInput struct {
	GrossMonthlyIncome decimal.Decimal  `json:"grossMonthlyIncome"`
	ProposedPITI       decimal.Decimal  `json:"proposedPITI"`
	OtherMonthlyDebts  decimal.Decimal  `json:"otherMonthlyDebts"`
	TargetHousingDTI   *decimal.Decimal `json:"targetHousingDTI,omitempty"`
	TargetTotalDTI     *decimal.Decimal `json:"targetTotalDTI,omitempty"`
}

// ModificationAffordabilityResult reports the ratios against their targets.
type ModificationAffordabilityResult struct {
	HousingDTI                  decimal.Decimal `json:"housingDTI"`
	TotalDTI                    decimal.Decimal `json:"totalDTI"`
	MeetsHousingTarget          bool            `json:"meetsHousingTarget"`
	MeetsTotalTarget            bool            `json:"meetsTotalTarget"`
	IsAffordable                bool            `json:"isAffordable"`
	RecommendedMaxPITI          decimal.Decimal `json:"recommendedMaxPITI"`
	RecommendedMaxTotalPayments decimal.Decimal `json:"recommendedMaxTotalPayments"`
}

// ModificationAffordability measures the proposed payment's housing and total
// debt-to-income ratios against the targets.
func ModificationAffordability(in ModificationAffordabilityInput) (Result[ModificationAffordabilityResult], error) {
	housingTarget := money.OrDefault(in.TargetHousingDTI, defaultTargetHousingDTI)
	totalTarget := money.OrDefault(in.TargetTotalDTI, defaultTargetTotalDTI)
	if err := validation.First(
		validation.Positive(fieldGrossMonthlyIncome, in.GrossMonthlyIncome),
		validation.NonNegative(fieldProposedPITI, in.ProposedPITI),
		validation.NonNegative(fieldOtherMonthlyDebts, in.OtherMonthlyDebts),
		validation.PositiveFraction(fieldTargetHousingDTI, housingTarget),
		validation.PositiveFraction(fieldTargetTotalDTI, totalTarget),
	); err != nil {
		return Result[ModificationAffordabilityResult]{}, err
	}

	result := ModificationAffordabilityResult{
		HousingDTI:                  money.Divide(in.ProposedPITI, in.GrossMonthlyIncome),
		TotalDTI:                    money.Divide(in.ProposedPITI.Add(in.OtherMonthlyDebts), in.GrossMonthlyIncome),
		RecommendedMaxPITI:          money.Cents(in.GrossMonthlyIncome.Mul(housingTarget)),
		RecommendedMaxTotalPayments: money.Cents(in.GrossMonthlyIncome.Mul(totalTarget)),
	}
	result.MeetsHousingTarget = result.HousingDTI.LessThanOrEqual(housingTarget)
	result.MeetsTotalTarget = result.TotalDTI.LessThanOrEqual(totalTarget)
	result.IsAffordable = result.MeetsHousingTarget && result.MeetsTotalTarget

	var warnings []string
	if !result.MeetsHousingTarget {
		warnings = append(warnings, fmt.Sprintf("Housing DTI of %s exceeds the %s target",
			format.Percent(result.HousingDTI), format.Percent(housingTarget)))
	}
	if !result.MeetsTotalTarget {
		warnings = append(warnings, fmt.Sprintf("Total DTI of %s exceeds the %s target",
			format.Percent(result.TotalDTI), format.Percent(totalTarget)))
	}

	details := map[string]any{
		"housingDTIPercent":       money.Percent(result.HousingDTI),
		"totalDTIPercent":         money.Percent(result.TotalDTI),
		"targetHousingDTIPercent": money.Percent(housingTarget),
		"targetTotalDTIPercent":   money.Percent(totalTarget),
		"paymentReductionNeeded":  money.Max(decimal.Zero, money.Cents(in.ProposedPITI).Sub(result.RecommendedMaxPITI)),
	}
	return Format(NameModificationAffordability, result, details, warnings), nil
}
