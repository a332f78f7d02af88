package calculator

import (
	"github.com/iwvelando/loss-mitigation/pkg/constants"
	"github.com/iwvelando/loss-mitigation/pkg/money"
	"github.com/iwvelando/loss-mitigation/pkg/validation"
)

type field = validation.Field

var (
	fieldMonthlyPITI            = field{Name: "monthlyPITI", Label: "Monthly PITI"}
	fieldGrossMonthlyIncome     = field{Name: "grossMonthlyIncome", Label: "Gross monthly income"}
	fieldOtherMonthlyDebts      = field{Name: "otherMonthlyDebts", Label: "Other monthly debts"}
	fieldNonTaxableIncome       = field{Name: "nonTaxableIncome", Label: "Non-taxable income"}
	fieldGrossUpPercentage      = field{Name: "grossUpPercentage", Label: "Gross-up percentage"}
	fieldCheckingAccounts       = field{Name: "checkingAccounts", Label: "Checking accounts"}
	fieldSavingsAccounts        = field{Name: "savingsAccounts", Label: "Savings accounts"}
	fieldMoneyMarketAccounts    = field{Name: "moneyMarketAccounts", Label: "Money market accounts"}
	fieldCertificatesOfDeposit  = field{Name: "certificatesOfDeposit", Label: "Certificates of deposit"}
	fieldStocksAndBonds         = field{Name: "stocksAndBonds", Label: "Stocks and bonds"}
	fieldTotalCashReserves      = field{Name: "totalCashReserves", Label: "Total cash reserves"}
	fieldContractualMonthlyPITI = field{Name: "contractualMonthlyPITI", Label: "Contractual monthly PITI"}
	fieldEstimatedDeficiency    = field{Name: "estimatedDeficiency", Label: "Estimated deficiency"}
	fieldHousingRatio           = field{Name: "housingRatio", Label: "Housing ratio"}
	fieldEscrowShortage         = field{Name: "escrowShortage", Label: "Escrow shortage"}
	fieldTermMonths             = field{Name: "termMonths", Label: "Term months"}
	fieldPrincipalAndInterest   = field{Name: "principalAndInterest", Label: "Principal and interest"}
	fieldMonthlyTaxes           = field{Name: "monthlyTaxes", Label: "Monthly taxes"}
	fieldMonthlyInsurance       = field{Name: "monthlyInsurance", Label: "Monthly insurance"}
	fieldEscrowAddOns           = field{Name: "escrowAddOns", Label: "Escrow add-ons"}
	fieldFullMonthlyPITI        = field{Name: "fullMonthlyPITI", Label: "Full monthly PITI"}
	fieldTotalDelinquency       = field{Name: "totalDelinquency", Label: "Total delinquency"}
	fieldLoanOriginationDate    = field{Name: "loanOriginationDate", Label: "Loan origination date"}
	fieldEvaluationDate         = field{Name: "evaluationDate", Label: "Evaluation date"}
	fieldMaturityDate           = field{Name: "maturityDate", Label: "Maturity date"}
	fieldMonthsDelinquent       = field{Name: "monthsDelinquent", Label: "Months delinquent"}
	fieldMonthsDeferred         = field{Name: "deferralHistory.monthsDeferred", Label: "Months deferred"}
	fieldHistoryEffectiveDate   = field{Name: "deferralHistory.effectiveDate", Label: "Deferral effective date"}
	fieldUnpaidBalance          = field{Name: "unpaidPrincipalBalance", Label: "Unpaid principal balance"}
	fieldPropertyValueBefore    = field{Name: "propertyValueBefore", Label: "Property value before"}
	fieldPropertyValueAfter     = field{Name: "propertyValueAfter", Label: "Property value after"}
	fieldTargetLTV              = field{Name: "targetLTV", Label: "Target LTV"}
	fieldSalePrice              = field{Name: "salePrice", Label: "Sale price"}
	fieldRealEstateCommission   = field{Name: "realEstateCommission", Label: "Real estate commission"}
	fieldClosingCosts           = field{Name: "closingCosts", Label: "Closing costs"}
	fieldSubordinateLienPayoff  = field{Name: "subordinateLienPayoff", Label: "Subordinate lien payoff"}
	fieldRepairCosts            = field{Name: "repairCosts", Label: "Repair costs"}
	fieldOtherCosts             = field{Name: "otherCosts", Label: "Other costs"}
	fieldAccruedInterest        = field{Name: "accruedInterest", Label: "Accrued interest"}
	fieldOtherAdvances          = field{Name: "otherAdvances", Label: "Other advances"}
	fieldTotalAmountOwed        = field{Name: "totalAmountOwed", Label: "Total amount owed"}
	fieldProposedPITI           = field{Name: "proposedPITI", Label: "Proposed PITI"}
	fieldTargetHousingDTI       = field{Name: "targetHousingDTI", Label: "Target housing DTI"}
	fieldTargetTotalDTI         = field{Name: "targetTotalDTI", Label: "Target total DTI"}
)

// Guideline thresholds as decimals.
var (
	housingRatioThreshold     = money.MustParse(constants.HousingRatioContributionThreshold)
	defaultGrossUpPercentage  = money.MustParse(constants.DefaultGrossUpPercentage)
	defaultTargetHousingDTI   = money.MustParse(constants.DefaultTargetHousingDTI)
	defaultTargetTotalDTI     = money.MustParse(constants.DefaultTargetTotalDTI)
	reserveContributionLevel  = money.Dollars(constants.ReserveContributionThreshold)
	reserveImminentLevel      = money.Dollars(constants.ReserveImminentDefaultThreshold)
	contributionReserveShare  = money.MustParse(constants.ContributionReservePercentage)
	contributionPITIMultiple  = money.Dollars(constants.ContributionPITIMultiple)
	deMinimisContribution     = money.Dollars(constants.DeMinimisContribution)
	repaymentPaymentMultiple  = money.MustParse(constants.RepaymentPaymentMultiple)
	relocationAssistanceAward = money.Dollars(constants.RelocationAssistanceAward)
)
