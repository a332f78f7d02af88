package calculator

import (
	"github.com/shopspring/decimal"

	"github.com/iwvelando/loss-mitigation/pkg/money"
	"github.com/iwvelando/loss-mitigation/pkg/validation"
)

// Cash reserve warnings. They are not mutually exclusive.
const (
	WarnReservesContribution    = "Cash reserves of $10,000 or more may trigger a cash contribution requirement"
	WarnReservesImminentDefault = "Cash reserves of $25,000 or more may affect the imminent default determination"
	NoteReservesBelowImminent   = "Cash reserves below $25,000 support an imminent default evaluation"
)

// CashReservesInput holds the borrower's liquid assets by category.
type CashReservesInput struct {
	CheckingAccounts      decimal.Decimal `json:"checkingAccounts"`
	SavingsAccounts       decimal.Decimal `json:"savingsAccounts"`
	MoneyMarketAccounts   decimal.Decimal `json:"moneyMarketAccounts"`
	CertificatesOfDeposit decimal.Decimal `json:"certificatesOfDeposit"`
	StocksAndBonds        decimal.Decimal `json:"stocksAndBonds"`
}

// CashReserves totals the liquid asset categories.
func CashReserves(in CashReservesInput) (Result[decimal.Decimal], error) {
	if err := validation.First(
		validation.NonNegative(fieldCheckingAccounts, in.CheckingAccounts),
		validation.NonNegative(fieldSavingsAccounts, in.SavingsAccounts),
		validation.NonNegative(fieldMoneyMarketAccounts, in.MoneyMarketAccounts),
		validation.NonNegative(fieldCertificatesOfDeposit, in.CertificatesOfDeposit),
		validation.NonNegative(fieldStocksAndBonds, in.StocksAndBonds),
	); err != nil {
		return Result[decimal.Decimal]{}, err
	}

	total := money.Cents(money.Sum(
		in.CheckingAccounts,
		in.SavingsAccounts,
		in.MoneyMarketAccounts,
		in.CertificatesOfDeposit,
		in.StocksAndBonds,
	))

	var warnings []string
	if total.GreaterThanOrEqual(reserveContributionLevel) {
		warnings = append(warnings, WarnReservesContribution)
	}
	if total.GreaterThanOrEqual(reserveImminentLevel) {
		warnings = append(warnings, WarnReservesImminentDefault)
	} else {
		warnings = append(warnings, NoteReservesBelowImminent)
	}

	details := map[string]any{
		"checkingAccounts":      money.Cents(in.CheckingAccounts),
		"savingsAccounts":       money.Cents(in.SavingsAccounts),
		"moneyMarketAccounts":   money.Cents(in.MoneyMarketAccounts),
		"certificatesOfDeposit": money.Cents(in.CertificatesOfDeposit),
		"stocksAndBonds":        money.Cents(in.StocksAndBonds),
	}
	return Format(NameCashReserves, total, details, warnings), nil
}
