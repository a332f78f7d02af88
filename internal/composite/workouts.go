package composite

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/iwvelando/loss-mitigation/pkg/calcerr"
	"github.com/iwvelando/loss-mitigation/pkg/calculator"
	"github.com/iwvelando/loss-mitigation/pkg/constants"
	"github.com/iwvelando/loss-mitigation/pkg/money"
)

// workout is the combined output of one workout option's calculators, in
// the order they are reported.
type workout struct {
	results  []calculator.Result[any]
	eligible *bool
}

func (w *workout) add(r calculator.Result[any]) {
	w.results = append(w.results, r)
}

// step runs a calculator and stores its result in dst.
func step[I, T any](dst *calculator.Result[T], calc func(I) (calculator.Result[T], error), in I) func() error {
	return func() error {
		r, err := calc(in)
		if err != nil {
			return err
		}
		*dst = r
		return nil
	}
}

// shortSale evaluates a short sale, or a deed-in-lieu when deedInLieu is set.
// Housing ratio, reserves and sale proceeds are independent; together they
// decide the cash contribution, which in turn decides relocation assistance.
func (e *Evaluator) shortSale(ctx context.Context, rec BorrowerRecord, deedInLieu bool) (workout, error) {
	sale := calculator.ShortSaleProceedsInput{
		SalePrice:              rec.SalePrice,
		RealEstateCommission:   rec.RealEstateCommission,
		ClosingCosts:           rec.ClosingCosts,
		SubordinateLienPayoff:  rec.SubordinateLienPayoff,
		RepairCosts:            rec.RepairCosts,
		OtherCosts:             rec.OtherCosts,
		UnpaidPrincipalBalance: rec.UnpaidPrincipalBalance,
		AccruedInterest:        rec.AccruedInterest,
		OtherAdvances:          rec.OtherAdvances,
	}
	if deedInLieu {
		if !rec.MarketValue.IsPositive() {
			return workout{}, calcerr.New(calcerr.CodeMissingField, "marketValue", "Market value is required for a deed-in-lieu")
		}
		sale.SalePrice = rec.MarketValue
		sale.RealEstateCommission = decimal.Zero
	}

	var (
		housing  calculator.Result[decimal.Decimal]
		reserves calculator.Result[decimal.Decimal]
		proceeds calculator.Result[calculator.ShortSaleProceedsResult]
	)
	hasIncome := rec.GrossMonthlyIncome.IsPositive()
	steps := []func() error{
		step(&reserves, calculator.CashReserves, rec.AssetsInput()),
		step(&proceeds, calculator.ShortSaleProceeds, sale),
	}
	if hasIncome {
		steps = append(steps, step(&housing, calculator.HousingDTI, calculator.HousingDTIInput{
			MonthlyPITI:        rec.MonthlyPITI,
			GrossMonthlyIncome: rec.GrossMonthlyIncome,
		}))
	}
	if err := e.run(ctx, steps...); err != nil {
		return workout{}, err
	}

	contributionIn := calculator.CashContributionInput{
		TotalCashReserves:      reserves.Result,
		ContractualMonthlyPITI: rec.MonthlyPITI,
		EstimatedDeficiency:    proceeds.Result.DeficiencyAmount,
		IsServicememberWithPCS: rec.IsServicememberWithPCS,
	}
	if hasIncome {
		ratio := housing.Result
		contributionIn.HousingRatio = &ratio
	}
	contribution, err := calculator.CashContribution(contributionIn)
	if err != nil {
		return workout{}, err
	}

	relocation, err := calculator.RelocationAssistance(calculator.RelocationAssistanceInput{
		IsPrincipalResidence:          rec.IsPrincipalResidence,
		CashContributionRequired:      contribution.Result.ContributionRequired,
		IsServicememberWithPCS:        rec.IsServicememberWithPCS,
		ReceivingGovernmentAssistance: rec.ReceivingGovernmentAssistance,
	})
	if err != nil {
		return workout{}, err
	}

	var w workout
	if hasIncome {
		w.add(housing.Erase())
	}
	w.add(reserves.Erase())
	w.add(proceeds.Erase())
	w.add(contribution.Erase())
	w.add(relocation.Erase())
	return w, nil
}

// modification evaluates a loan modification. Non-taxable income is grossed
// up into the qualifying income, and a monthly escrow shortage repayment is
// added to the trial payment's escrow add-ons. The trial payment is the
// proposed PITI measured for affordability.
func (e *Evaluator) modification(ctx context.Context, rec BorrowerRecord) (workout, error) {
	var (
		grossUp calculator.Result[decimal.Decimal]
		escrow  calculator.Result[decimal.Decimal]
	)
	hasEscrowShortage := rec.EscrowShortage != nil
	steps := []func() error{
		step(&grossUp, calculator.IncomeGrossUp, calculator.IncomeGrossUpInput{
			NonTaxableIncome:  rec.NonTaxableIncome,
			GrossUpPercentage: rec.GrossUpPercentage,
		}),
	}
	if hasEscrowShortage {
		steps = append(steps, step(&escrow, calculator.EscrowRepayment, calculator.EscrowRepaymentInput{
			EscrowShortage: *rec.EscrowShortage,
			TermMonths:     rec.EscrowRepaymentMonths,
		}))
	}
	if err := e.run(ctx, steps...); err != nil {
		return workout{}, err
	}

	qualifyingIncome := money.Cents(rec.GrossMonthlyIncome.Add(grossUp.Result))
	escrowAddOns := rec.EscrowAddOns
	if hasEscrowShortage {
		escrowAddOns = escrowAddOns.Add(escrow.Result)
	}

	var (
		housing calculator.Result[decimal.Decimal]
		total   calculator.Result[decimal.Decimal]
		trial   calculator.Result[decimal.Decimal]
		ltv     calculator.Result[calculator.LTVPaydownResult]
	)
	hasValues := rec.PropertyValueBefore != nil && rec.PropertyValueAfter != nil && rec.TargetLTV != nil
	steps = []func() error{
		step(&housing, calculator.HousingDTI, calculator.HousingDTIInput{
			MonthlyPITI:        rec.MonthlyPITI,
			GrossMonthlyIncome: qualifyingIncome,
		}),
		step(&total, calculator.TotalDTI, calculator.TotalDTIInput{
			MonthlyPITI:        rec.MonthlyPITI,
			OtherMonthlyDebts:  rec.OtherMonthlyDebts,
			GrossMonthlyIncome: qualifyingIncome,
		}),
		step(&trial, calculator.TrialPeriodPayment, calculator.TrialPeriodPaymentInput{
			PrincipalAndInterest: rec.PrincipalAndInterest,
			MonthlyTaxes:         rec.MonthlyTaxes,
			MonthlyInsurance:     rec.MonthlyInsurance,
			EscrowAddOns:         escrowAddOns,
		}),
	}
	if hasValues {
		steps = append(steps, step(&ltv, calculator.LTVPaydown, calculator.LTVPaydownInput{
			UnpaidPrincipalBalance: rec.UnpaidPrincipalBalance,
			PropertyValueBefore:    *rec.PropertyValueBefore,
			PropertyValueAfter:     *rec.PropertyValueAfter,
			TargetLTV:              *rec.TargetLTV,
		}))
	}
	if err := e.run(ctx, steps...); err != nil {
		return workout{}, err
	}

	affordability, err := calculator.ModificationAffordability(calculator.ModificationAffordabilityInput{
		GrossMonthlyIncome: qualifyingIncome,
		ProposedPITI:       trial.Result,
		OtherMonthlyDebts:  rec.OtherMonthlyDebts,
		TargetHousingDTI:   rec.TargetHousingDTI,
		TargetTotalDTI:     rec.TargetTotalDTI,
	})
	if err != nil {
		return workout{}, err
	}

	eligible := affordability.Result.IsAffordable
	w := workout{eligible: &eligible}
	w.add(grossUp.Erase())
	if hasEscrowShortage {
		w.add(escrow.Erase())
	}
	w.add(housing.Erase())
	w.add(total.Erase())
	w.add(trial.Erase())
	w.add(affordability.Erase())
	if hasValues {
		w.add(ltv.Erase())
	}
	return w, nil
}

// paymentDeferral evaluates a payment deferral. When the delinquent amount is
// known, a repayment plan is computed alongside as the alternative.
func (e *Evaluator) paymentDeferral(ctx context.Context, rec BorrowerRecord) (workout, error) {
	var (
		deferral  calculator.Result[calculator.PaymentDeferralResult]
		repayment calculator.Result[calculator.RepaymentPlanResult]
	)
	hasRepayment := rec.TotalDelinquency != nil && rec.MonthlyPITI.IsPositive()
	steps := []func() error{
		step(&deferral, calculator.PaymentDeferralEligibility, calculator.PaymentDeferralInput{
			LoanOriginationDate: rec.LoanOriginationDate,
			EvaluationDate:      rec.EvaluationDate,
			MaturityDate:        rec.MaturityDate,
			MonthsDelinquent:    rec.MonthsDelinquent,
			IsDisasterRelated:   rec.IsDisasterRelated,
			DeferralHistory:     rec.DeferralHistory,
		}),
	}
	if hasRepayment {
		term := rec.RepaymentTermMonths
		if term == 0 {
			term = constants.DefaultRepaymentTermMonths
		}
		steps = append(steps, step(&repayment, calculator.RepaymentPlan, calculator.RepaymentPlanInput{
			FullMonthlyPITI:  rec.MonthlyPITI,
			TotalDelinquency: *rec.TotalDelinquency,
			TermMonths:       term,
		}))
	}
	if err := e.run(ctx, steps...); err != nil {
		return workout{}, err
	}

	eligible := deferral.Result.OverallEligible
	w := workout{eligible: &eligible}
	w.add(deferral.Erase())
	if hasRepayment {
		w.add(repayment.Erase())
	}
	return w, nil
}
