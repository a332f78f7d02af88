package composite

import (
	"github.com/iwvelando/loss-mitigation/pkg/calcerr"
	"github.com/iwvelando/loss-mitigation/pkg/calculator"
)

// calculatorFunc decodes a generic payload into a calculator's input and runs
// the calculator.
type calculatorFunc func(payload map[string]any) (calculator.Result[any], error)

func bind[I, T any](calc func(I) (calculator.Result[T], error)) calculatorFunc {
	return func(payload map[string]any) (calculator.Result[any], error) {
		var in I
		if err := DecodeInput(payload, &in); err != nil {
			return calculator.Result[any]{}, err
		}
		res, err := calc(in)
		if err != nil {
			return calculator.Result[any]{}, err
		}
		return res.Erase(), nil
	}
}

var calculators = map[string]calculatorFunc{
	calculator.NameHousingDTI:                 bind(calculator.HousingDTI),
	calculator.NameTotalDTI:                   bind(calculator.TotalDTI),
	calculator.NameIncomeGrossUp:              bind(calculator.IncomeGrossUp),
	calculator.NameCashReserves:               bind(calculator.CashReserves),
	calculator.NameCashContribution:           bind(calculator.CashContribution),
	calculator.NameEscrowRepayment:            bind(calculator.EscrowRepayment),
	calculator.NameTrialPeriodPayment:         bind(calculator.TrialPeriodPayment),
	calculator.NameRepaymentPlan:              bind(calculator.RepaymentPlan),
	calculator.NamePaymentDeferralEligibility: bind(calculator.PaymentDeferralEligibility),
	calculator.NameLTVPaydown:                 bind(calculator.LTVPaydown),
	calculator.NameRelocationAssistance:       bind(calculator.RelocationAssistance),
	calculator.NameShortSaleProceeds:          bind(calculator.ShortSaleProceeds),
	calculator.NameModificationAffordability:  bind(calculator.ModificationAffordability),
}

// Calculate runs the named calculator on a generic payload such as a decoded
// JSON body or YAML document. Unknown payload keys are rejected.
func Calculate(name string, payload map[string]any) (calculator.Result[any], error) {
	calc, ok := calculators[name]
	if !ok {
		return calculator.Result[any]{}, calcerr.Newf(calcerr.CodeUnknownCalculator, "", "unknown calculator %q", name)
	}
	if payload == nil {
		payload = map[string]any{}
	}
	return calc(payload)
}
