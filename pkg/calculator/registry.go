package calculator

// Calculator names. These identifiers are bound by the HTTP routes, the
// composite evaluator and downstream report templates; do not rename them.
const (
	NameHousingDTI                 = "housingDTI"
	NameTotalDTI                   = "totalDTI"
	NameIncomeGrossUp              = "incomeGrossUp"
	NameCashReserves               = "cashReserves"
	NameCashContribution           = "cashContribution"
	NameEscrowRepayment            = "escrowRepayment"
	NameTrialPeriodPayment         = "trialPeriodPayment"
	NameRepaymentPlan              = "repaymentPlan"
	NamePaymentDeferralEligibility = "paymentDeferralEligibility"
	NameLTVPaydown                 = "ltvPaydown"
	NameRelocationAssistance       = "relocationAssistance"
	NameShortSaleProceeds          = "shortSaleProceeds"
	NameModificationAffordability  = "modificationAffordability"
)

// Descriptor describes a registered calculator.
type Descriptor struct {
	Name               string `json:"name"`
	Description        string `json:"description"`
	GuidelineReference string `json:"guidelineReference"`
}

var descriptors = [...]Descriptor{
	{
		Name:               NameHousingDTI,
		Description:        "Housing expense-to-income ratio: monthly PITI divided by gross monthly income",
		GuidelineReference: "Servicing Guide D2-2-05: Evaluating the Borrower's Housing Expense-to-Income Ratio",
	},
	{
		Name:               NameTotalDTI,
		Description:        "Total debt-to-income ratio: monthly PITI plus other monthly debts divided by gross monthly income",
		GuidelineReference: "Servicing Guide D2-2-05: Evaluating Borrower Income and Monthly Debt Obligations",
	},
	{
		Name:               NameIncomeGrossUp,
		Description:        "Grosses up non-taxable income by the allowed percentage (25% by default)",
		GuidelineReference: "Servicing Guide D2-2-05: Non-Taxable Income Gross-Up",
	},
	{
		Name:               NameCashReserves,
		Description:        "Totals liquid assets and flags the contribution and imminent-default reserve thresholds",
		GuidelineReference: "Servicing Guide D2-2-04: Determining Imminent Default, Cash Reserves",
	},
	{
		Name:               NameCashContribution,
		Description:        "Determines whether a cash contribution is required for a short sale or deed-in-lieu and its amount",
		GuidelineReference: "Servicing Guide D2-3.3-01: Cash Contribution and Promissory Note Requirements",
	},
	{
		Name:               NameEscrowRepayment,
		Description:        "Spreads an escrow shortage into equal monthly repayments (60 months by default)",
		GuidelineReference: "Servicing Guide D2-3.2-07: Escrow Shortage Repayment",
	},
	{
		Name:               NameTrialPeriodPayment,
		Description:        "Trial period plan payment: principal and interest plus taxes, insurance and escrow add-ons",
		GuidelineReference: "Servicing Guide D2-3.2-07: Trial Period Plan Payments",
	},
	{
		Name:               NameRepaymentPlan,
		Description:        "Repayment plan payment and its validity against the 150% payment cap and 36-month term limit",
		GuidelineReference: "Servicing Guide D2-3.1-01: Repayment Plans",
	},
	{
		Name:               NamePaymentDeferralEligibility,
		Description:        "Evaluates loan age, delinquency, cumulative deferral, recent deferral and maturity criteria for a payment deferral",
		GuidelineReference: "Servicing Guide D2-3.2-01: Payment Deferral Eligibility",
	},
	{
		Name:               NameLTVPaydown,
		Description:        "Loan-to-value before and after a value change and the principal paydown needed to reach a target LTV",
		GuidelineReference: "Servicing Guide D2-3.2-07: Mark-to-Market Loan-to-Value Ratio",
	},
	{
		Name:               NameRelocationAssistance,
		Description:        "Determines eligibility for the fixed relocation assistance award on a short sale or deed-in-lieu",
		GuidelineReference: "Servicing Guide D2-3.3-01: Relocation Assistance",
	},
	{
		Name:               NameShortSaleProceeds,
		Description:        "Short sale net proceeds, total amount owed, deficiency and recovery percentage",
		GuidelineReference: "Servicing Guide D2-3.3-01: Evaluating Short Sale Net Proceeds",
	},
	{
		Name:               NameModificationAffordability,
		Description:        "Checks a proposed modification payment against housing and total debt-to-income targets",
		GuidelineReference: "Servicing Guide D2-3.2-07: Modification Affordability Targets",
	},
}

// AvailableCalculators returns the descriptor of every registered calculator
// in a stable order.
func AvailableCalculators() []Descriptor {
	out := make([]Descriptor, len(descriptors))
	copy(out, descriptors[:])
	return out
}

// Lookup returns the descriptor registered under name.
func Lookup(name string) (Descriptor, bool) {
	for _, d := range descriptors {
		if d.Name == name {
			return d, true
		}
	}
	return Descriptor{}, false
}
