package calculator

import (
	"github.com/shopspring/decimal"

	"github.com/iwvelando/loss-mitigation/pkg/money"
	"github.com/iwvelando/loss-mitigation/pkg/validation"
)

// WarnHousingRatioContribution is emitted when the housing ratio is at or
// below the contribution threshold.
const WarnHousingRatioContribution = "Housing expense-to-income ratio is at or below 40%; a cash contribution may be required"

// HousingDTIInput holds the inputs of the housing ratio.
type HousingDTIInput struct {
	MonthlyPITI        decimal.Decimal `json:"monthlyPITI"`
	GrossMonthlyIncome decimal.Decimal `json:"grossMonthlyIncome"`
}

// HousingDTI computes monthly PITI / gross monthly income as a four-decimal
// ratio.
func HousingDTI(in HousingDTIInput) (Result[decimal.Decimal], error) {
	if err := validation.First(
		validation.Positive(fieldGrossMonthlyIncome, in.GrossMonthlyIncome),
		validation.NonNegative(fieldMonthlyPITI, in.MonthlyPITI),
	); err != nil {
		return Result[decimal.Decimal]{}, err
	}

	ratio := money.Divide(in.MonthlyPITI, in.GrossMonthlyIncome)

	var warnings []string
	if ratio.LessThanOrEqual(housingRatioThreshold) {
		warnings = append(warnings, WarnHousingRatioContribution)
	}

	details := map[string]any{
		"housingRatioPercent":   money.Percent(ratio),
		"monthlyPITI":           money.Cents(in.MonthlyPITI),
		"grossMonthlyIncome":    money.Cents(in.GrossMonthlyIncome),
		"contributionThreshold": money.Percent(housingRatioThreshold),
	}
	return Format(NameHousingDTI, ratio, details, warnings), nil
}

// TotalDTIInput holds the inputs of the total debt-to-income ratio.
// OtherMonthlyDebts defaults to zero.
type TotalDTIInput struct {
	MonthlyPITI        decimal.Decimal `json:"monthlyPITI"`
	OtherMonthlyDebts  decimal.Decimal `json:"otherMonthlyDebts"`
	GrossMonthlyIncome decimal.Decimal `json:"grossMonthlyIncome"`
}

// TotalDTI computes (monthly PITI + other monthly debts) / gross monthly income.
func TotalDTI(in TotalDTIInput) (Result[decimal.Decimal], error) {
	if err := validation.First(
		validation.Positive(fieldGrossMonthlyIncome, in.GrossMonthlyIncome),
		validation.NonNegative(fieldMonthlyPITI, in.MonthlyPITI),
		validation.NonNegative(fieldOtherMonthlyDebts, in.OtherMonthlyDebts),
	); err != nil {
		return Result[decimal.Decimal]{}, err
	}

	obligations := in.MonthlyPITI.Add(in.OtherMonthlyDebts)
	ratio := money.Divide(obligations, in.GrossMonthlyIncome)

	details := map[string]any{
		"totalDTIPercent":         money.Percent(ratio),
		"totalMonthlyObligations": money.Cents(obligations),
		"otherMonthlyDebts":       money.Cents(in.OtherMonthlyDebts),
		"grossMonthlyIncome":      money.Cents(in.GrossMonthlyIncome),
	}
	return Format(NameTotalDTI, ratio, details, nil), nil
}

// IncomeGrossUpInput holds the inputs of the non-taxable income gross-up. A nil
// GrossUpPercentage means the default of 25%.
type IncomeGrossUpInput struct {
	NonTaxableIncome  decimal.Decimal  `json:"nonTaxableIncome"`
	GrossUpPercentage *decimal.Decimal `json:"grossUpPercentage,omitempty"`
}

// IncomeGrossUp computes nonTaxableIncome × (1 + grossUpPercentage).
func IncomeGrossUp(in IncomeGrossUpInput) (Result[decimal.Decimal], error) {
	pct := money.OrDefault(in.GrossUpPercentage, defaultGrossUpPercentage)
	if err := validation.First(
		validation.NonNegative(fieldNonTaxableIncome, in.NonTaxableIncome),
		validation.Fraction(fieldGrossUpPercentage, pct),
	); err != nil {
		return Result[decimal.Decimal]{}, err
	}

	grossedUp := money.Cents(in.NonTaxableIncome.Mul(decimal.NewFromInt(1).Add(pct)))

	details := map[string]any{
		"nonTaxableIncome":  money.Cents(in.NonTaxableIncome),
		"grossUpPercentage": pct,
		"grossUpAmount":     grossedUp.Sub(money.Cents(in.NonTaxableIncome)),
	}
	return Format(NameIncomeGrossUp, grossedUp, details, nil), nil
}
