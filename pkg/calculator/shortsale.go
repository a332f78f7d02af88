package calculator

import (
	"github.com/shopspring/decimal"

	"github.com/iwvelando/loss-mitigation/pkg/money"
	"github.com/iwvelando/loss-mitigation/pkg/validation"
)

// WarnNoNetProceeds is emitted when selling costs consume the sale price.
const WarnNoNetProceeds = "Selling costs equal or exceed the sale price; the sale produces no net proceeds"

// ShortSaleProceedsInput holds the sale price, the selling costs by category
// and the amounts owed on the loan.
type ShortSaleProceedsInput struct {
	SalePrice              decimal.Decimal `json:"salePrice"`
	RealEstateCommission   decimal.Decimal `json:"realEstateCommission"`
	ClosingCosts           decimal.Decimal `json:"closingCosts"`
	SubordinateLienPayoff  decimal.Decimal `json:"subordinateLienPayoff"`
	RepairCosts            decimal.Decimal `json:"repairCosts"`
	OtherCosts             decimal.Decimal `json:"otherCosts"`
	UnpaidPrincipalBalance decimal.Decimal `json:"unpaidPrincipalBalance"`
	AccruedInterest        decimal.Decimal `json:"accruedInterest"`
	OtherAdvances          decimal.Decimal `json:"otherAdvances"`
}

// ShortSaleProceedsResult reports net proceeds, the amount owed and the
// resulting deficiency.
type ShortSaleProceedsResult struct {
	NetProceeds        decimal.Decimal `json:"netProceeds"`
	TotalSellingCosts  decimal.Decimal `json:"totalSellingCosts"`
	TotalAmountOwed    decimal.Decimal `json:"totalAmountOwed"`
	DeficiencyAmount   decimal.Decimal `json:"deficiencyAmount"`
	RecoveryPercentage decimal.Decimal `json:"recoveryPercentage"`
}

// ShortSaleProceeds computes net proceeds (sale price less selling costs),
// the total owed, the deficiency max(0, owed − net) and the recovery
// percentage, which may exceed 100.
func ShortSaleProceeds(in ShortSaleProceedsInput) (Result[ShortSaleProceedsResult], error) {
	if err := validation.First(
		validation.NonNegative(fieldSalePrice, in.SalePrice),
		validation.NonNegative(fieldRealEstateCommission, in.RealEstateCommission),
		validation.NonNegative(fieldClosingCosts, in.ClosingCosts),
		validation.NonNegative(fieldSubordinateLienPayoff, in.SubordinateLienPayoff),
		validation.NonNegative(fieldRepairCosts, in.RepairCosts),
		validation.NonNegative(fieldOtherCosts, in.OtherCosts),
		validation.NonNegative(fieldUnpaidBalance, in.UnpaidPrincipalBalance),
		validation.NonNegative(fieldAccruedInterest, in.AccruedInterest),
		validation.NonNegative(fieldOtherAdvances, in.OtherAdvances),
	); err != nil {
		return Result[ShortSaleProceedsResult]{}, err
	}

	owed := money.Cents(money.Sum(in.UnpaidPrincipalBalance, in.AccruedInterest, in.OtherAdvances))
	if err := validation.Positive(fieldTotalAmountOwed, owed); err != nil {
		return Result[ShortSaleProceedsResult]{}, err
	}

	costs := money.Cents(money.Sum(
		in.RealEstateCommission,
		in.ClosingCosts,
		in.SubordinateLienPayoff,
		in.RepairCosts,
		in.OtherCosts,
	))
	net := money.Cents(in.SalePrice).Sub(costs)

	result := ShortSaleProceedsResult{
		NetProceeds:        net,
		TotalSellingCosts:  costs,
		TotalAmountOwed:    owed,
		DeficiencyAmount:   money.Max(decimal.Zero, owed.Sub(net)),
		RecoveryPercentage: money.Percent(net.Div(owed)),
	}

	var warnings []string
	if !net.IsPositive() {
		warnings = append(warnings, WarnNoNetProceeds)
	}

	details := map[string]any{
		"salePrice":             money.Cents(in.SalePrice),
		"realEstateCommission":  money.Cents(in.RealEstateCommission),
		"closingCosts":          money.Cents(in.ClosingCosts),
		"subordinateLienPayoff": money.Cents(in.SubordinateLienPayoff),
		"repairCosts":           money.Cents(in.RepairCosts),
		"otherCosts":            money.Cents(in.OtherCosts),
	}
	return Format(NameShortSaleProceeds, result, details, warnings), nil
}
