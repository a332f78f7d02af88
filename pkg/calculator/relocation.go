package calculator

import (
	"github.com/shopspring/decimal"
)

// Relocation assistance disqualification reasons, in evaluation order.
const (
	DisqualifiedNotPrincipalResidence = "Property is not the borrower's principal residence"
	DisqualifiedContributionRequired  = "Borrower is required to make a cash contribution"
	DisqualifiedPCSWithGovernmentAid  = "Servicemember with PCS orders is receiving Displacement Allowance or other government relocation assistance"
)

// RelocationAssistanceInput holds the relocation assistance facts.
type RelocationAssistanceInput struct {
	IsPrincipalResidence          bool `json:"isPrincipalResidence"`
	CashContributionRequired      bool `json:"cashContributionRequired"`
	IsServicememberWithPCS        bool `json:"isServicememberWithPCS"`
	ReceivingGovernmentAssistance bool `json:"receivingGovernmentAssistance"`
}

// RelocationAssistanceResult reports the award or the first failing condition.
type RelocationAssistanceResult struct {
	Eligible               bool            `json:"eligible"`
	AssistanceAmount       decimal.Decimal `json:"assistanceAmount"`
	DisqualificationReason string          `json:"disqualificationReason,omitempty"`
}

var relocationChecks = []struct {
	fails  func(RelocationAssistanceInput) bool
	reason string
}{
	{
		fails:  func(in RelocationAssistanceInput) bool { return !in.IsPrincipalResidence },
		reason: DisqualifiedNotPrincipalResidence,
	},
	{
		fails:  func(in RelocationAssistanceInput) bool { return in.CashContributionRequired },
		reason: DisqualifiedContributionRequired,
	},
	{
		fails: func(in RelocationAssistanceInput) bool {
			return in.IsServicememberWithPCS && in.ReceivingGovernmentAssistance
		},
		reason: DisqualifiedPCSWithGovernmentAid,
	},
}

// RelocationAssistance awards the fixed relocation assistance amount when
// every condition holds, and otherwise reports the first failing condition.
func RelocationAssistance(in RelocationAssistanceInput) (Result[RelocationAssistanceResult], error) {
	result := RelocationAssistanceResult{AssistanceAmount: decimal.Zero}
	for _, check := range relocationChecks {
		if check.fails(in) {
			result.DisqualificationReason = check.reason
			break
		}
	}
	if result.DisqualificationReason == "" {
		result.Eligible = true
		result.AssistanceAmount = relocationAssistanceAward
	}

	var warnings []string
	if !result.Eligible {
		warnings = append(warnings, "Not eligible for relocation assistance: "+result.DisqualificationReason)
	}

	details := map[string]any{
		"awardAmount": relocationAssistanceAward,
	}
	return Format(NameRelocationAssistance, result, details, warnings), nil
}
