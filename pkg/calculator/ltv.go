package calculator

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/iwvelando/loss-mitigation/pkg/constants"
	"github.com/iwvelando/loss-mitigation/pkg/format"
	"github.com/iwvelando/loss-mitigation/pkg/money"
	"github.com/iwvelando/loss-mitigation/pkg/validation"
)

// LTVPaydownInput holds the balance, property values and target LTV.
type LTVPaydownInput struct {
	UnpaidPrincipalBalance decimal.Decimal `json:"unpaidPrincipalBalance"`
	PropertyValueBefore    decimal.Decimal `json:"propertyValueBefore"`
	PropertyValueAfter     decimal.Decimal `json:"propertyValueAfter"`
	TargetLTV              decimal.Decimal `json:"targetLTV"`
}

// LTVPaydownResult reports the LTVs and the paydown to reach the target.
type LTVPaydownResult struct {
	LTVBefore       decimal.Decimal `json:"ltvBefore"`
	LTVAfter        decimal.Decimal `json:"ltvAfter"`
	RequiredPaydown decimal.Decimal `json:"requiredPaydown"`
	RequiresPaydown bool            `json:"requiresPaydown"`
	MeetsTargetLTV  bool            `json:"meetsTargetLTV"`
}

// LTVPaydown computes the loan-to-value ratio before and after a change in
// property value and the principal paydown needed to bring the LTV down to
// the target.
func LTVPaydown(in LTVPaydownInput) (Result[LTVPaydownResult], error) {
	if err := validation.First(
		validation.NonNegative(fieldUnpaidBalance, in.UnpaidPrincipalBalance),
		validation.Positive(fieldPropertyValueBefore, in.PropertyValueBefore),
		validation.Positive(fieldPropertyValueAfter, in.PropertyValueAfter),
		validation.PositiveFraction(fieldTargetLTV, in.TargetLTV),
	); err != nil {
		return Result[LTVPaydownResult]{}, err
	}

	// Both flags come from the unrounded excess so they never disagree.
	// The paydown rounds up to the cent and the maximum balance down, so
	// paying the reported amount always reaches the target.
	targetBalance := in.PropertyValueAfter.Mul(in.TargetLTV)
	excess := in.UnpaidPrincipalBalance.Sub(targetBalance)
	maxBalance := targetBalance.RoundFloor(constants.CurrencyPlaces)
	paydown := money.Max(decimal.Zero, excess).RoundCeil(constants.CurrencyPlaces)

	result := LTVPaydownResult{
		LTVBefore:       money.Divide(in.UnpaidPrincipalBalance, in.PropertyValueBefore),
		LTVAfter:        money.Divide(in.UnpaidPrincipalBalance, in.PropertyValueAfter),
		RequiredPaydown: paydown,
		RequiresPaydown: excess.IsPositive(),
		MeetsTargetLTV:  !excess.IsPositive(),
	}

	var warnings []string
	if result.RequiresPaydown {
		warnings = append(warnings, fmt.Sprintf("A principal paydown of %s is required to reach the %s target LTV",
			format.Currency(paydown), format.Percent(in.TargetLTV)))
	}

	details := map[string]any{
		"ltvBeforePercent":    money.Percent(result.LTVBefore),
		"ltvAfterPercent":     money.Percent(result.LTVAfter),
		"targetLTVPercent":    money.Percent(in.TargetLTV),
		"maximumBalance":      maxBalance,
		"propertyValueChange": money.Cents(in.PropertyValueAfter.Sub(in.PropertyValueBefore)),
	}
	return Format(NameLTVPaydown, result, details, warnings), nil
}
