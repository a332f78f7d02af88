package calculator

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iwvelando/loss-mitigation/pkg/calcerr"
	"github.com/iwvelando/loss-mitigation/pkg/testutil"
)

func TestCashContribution(t *testing.T) {
	tests := []struct {
		name        string
		input       CashContributionInput
		required    bool
		amount      string
		waived      bool
		reason      string
		triggeredBy []string
	}{
		{
			name: "Reserve based amount wins",
			input: CashContributionInput{
				TotalCashReserves:      testutil.Dec("50000"),
				ContractualMonthlyPITI: testutil.Dec("2000"),
				EstimatedDeficiency:    testutil.Dec("56000"),
			},
			required:    true,
			amount:      "10000",
			triggeredBy: []string{TriggerReserves, TriggerPITI},
		},
		{
			name: "PITI based amount wins",
			input: CashContributionInput{
				TotalCashReserves:      testutil.Dec("12000"),
				ContractualMonthlyPITI: testutil.Dec("1500"),
				EstimatedDeficiency:    testutil.Dec("40000"),
			},
			required:    true,
			amount:      "6000",
			triggeredBy: []string{TriggerReserves, TriggerPITI},
		},
		{
			name: "Capped at deficiency",
			input: CashContributionInput{
				TotalCashReserves:      testutil.Dec("50000"),
				ContractualMonthlyPITI: testutil.Dec("2000"),
				EstimatedDeficiency:    testutil.Dec("3000"),
			},
			required:    true,
			amount:      "3000",
			triggeredBy: []string{TriggerReserves, TriggerPITI},
		},
		{
			name: "De minimis waiver keeps the required flag",
			input: CashContributionInput{
				TotalCashReserves:      testutil.Dec("1000"),
				ContractualMonthlyPITI: testutil.Dec("100"),
				EstimatedDeficiency:    testutil.Dec("10000"),
			},
			required:    true,
			amount:      "0",
			waived:      true,
			reason:      WaiverDeMinimis,
			triggeredBy: []string{TriggerPITI},
		},
		{
			name: "PCS servicemember waiver",
			input: CashContributionInput{
				TotalCashReserves:      testutil.Dec("50000"),
				ContractualMonthlyPITI: testutil.Dec("2000"),
				EstimatedDeficiency:    testutil.Dec("56000"),
				IsServicememberWithPCS: true,
			},
			required:    true,
			amount:      "0",
			waived:      true,
			reason:      WaiverPCSServicemember,
			triggeredBy: []string{TriggerReserves, TriggerPITI},
		},
		{
			name: "Housing ratio alone requires a contribution",
			input: CashContributionInput{
				TotalCashReserves:      testutil.Dec("3000"),
				ContractualMonthlyPITI: testutil.Dec("1500"),
				EstimatedDeficiency:    testutil.Dec("20000"),
				HousingRatio:           testutil.DecPtr("0.35"),
			},
			required:    true,
			amount:      "6000",
			triggeredBy: []string{TriggerHousingRatio},
		},
		{
			name: "Housing ratio above threshold does not trigger",
			input: CashContributionInput{
				TotalCashReserves:      testutil.Dec("3000"),
				ContractualMonthlyPITI: testutil.Dec("1500"),
				EstimatedDeficiency:    testutil.Dec("20000"),
				HousingRatio:           testutil.DecPtr("0.41"),
			},
			required: false,
			amount:   "6000",
		},
		{
			name: "Nothing owed",
			input: CashContributionInput{
				TotalCashReserves:      testutil.Dec("50000"),
				ContractualMonthlyPITI: testutil.Dec("2000"),
				EstimatedDeficiency:    decimal.Zero,
			},
			required:    true,
			amount:      "0",
			waived:      true,
			reason:      WaiverDeMinimis,
			triggeredBy: []string{TriggerReserves, TriggerPITI},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res, err := CashContribution(tt.input)
			require.NoError(t, err)

			assert.Equal(t, tt.required, res.Result.ContributionRequired)
			testutil.AssertDecimal(t, tt.amount, res.Result.ContributionAmount)
			assert.Equal(t, tt.waived, res.Result.ContributionWaived)
			assert.Equal(t, tt.reason, res.Result.WaiverReason)
			assert.Equal(t, tt.triggeredBy, res.Result.TriggeredBy)
		})
	}
}

func TestCashContributionDetails(t *testing.T) {
	res, err := CashContribution(CashContributionInput{
		TotalCashReserves:      testutil.Dec("50000"),
		ContractualMonthlyPITI: testutil.Dec("2000"),
		EstimatedDeficiency:    testutil.Dec("3000"),
		HousingRatio:           testutil.DecPtr("0.3"),
	})
	require.NoError(t, err)

	testutil.AssertDecimal(t, "10000", res.Details["reserveBasedAmount"].(decimal.Decimal))
	testutil.AssertDecimal(t, "8000", res.Details["pitiBasedAmount"].(decimal.Decimal))
	testutil.AssertDecimal(t, "10000", res.Details["candidateAmount"].(decimal.Decimal))
	testutil.AssertDecimal(t, "30", res.Details["housingRatioPercent"].(decimal.Decimal))
	assert.True(t, res.HasWarning("Contribution capped at the estimated deficiency of $3,000.00"))
}

func TestCashContributionNeverExceedsDeficiency(t *testing.T) {
	for reserves := int64(0); reserves <= 100000; reserves += 12500 {
		for piti := int64(0); piti <= 5000; piti += 1250 {
			for deficiency := int64(0); deficiency <= 60000; deficiency += 7500 {
				res, err := CashContribution(CashContributionInput{
					TotalCashReserves:      decimal.NewFromInt(reserves),
					ContractualMonthlyPITI: decimal.NewFromInt(piti),
					EstimatedDeficiency:    decimal.NewFromInt(deficiency),
				})
				require.NoError(t, err)
				assert.True(t, res.Result.ContributionAmount.LessThanOrEqual(decimal.NewFromInt(deficiency)),
					"reserves=%d piti=%d deficiency=%d amount=%s", reserves, piti, deficiency, res.Result.ContributionAmount)
			}
		}
	}
}

func TestCashContributionFractionalDeficiencyCap(t *testing.T) {
	tests := []struct {
		deficiency string
		expected   string
	}{
		{"1000.005", "1000"},
		{"1000.009", "1000"},
		{"0.004", "0"},
		{"2500.5", "2500.5"},
	}

	for _, tt := range tests {
		t.Run(tt.deficiency, func(t *testing.T) {
			deficiency := testutil.Dec(tt.deficiency)
			res, err := CashContribution(CashContributionInput{
				TotalCashReserves:      testutil.Dec("50000"),
				ContractualMonthlyPITI: testutil.Dec("2000"),
				EstimatedDeficiency:    deficiency,
			})
			require.NoError(t, err)
			assert.True(t, res.Result.ContributionAmount.LessThanOrEqual(deficiency),
				"amount %s exceeds deficiency %s", res.Result.ContributionAmount, deficiency)
			if !res.Result.ContributionWaived {
				testutil.AssertDecimal(t, tt.expected, res.Result.ContributionAmount)
			}
		})
	}
}

func TestCashContributionPCSAlwaysWaived(t *testing.T) {
	for reserves := int64(0); reserves <= 100000; reserves += 25000 {
		for piti := int64(0); piti <= 5000; piti += 2500 {
			res, err := CashContribution(CashContributionInput{
				TotalCashReserves:      decimal.NewFromInt(reserves),
				ContractualMonthlyPITI: decimal.NewFromInt(piti),
				EstimatedDeficiency:    testutil.Dec("75000"),
				HousingRatio:           testutil.DecPtr("0.25"),
				IsServicememberWithPCS: true,
			})
			require.NoError(t, err)
			assert.True(t, res.Result.ContributionWaived)
			assert.True(t, res.Result.ContributionAmount.IsZero())
			assert.True(t, res.Result.ContributionRequired, "waiver must not clear the required flag")
		}
	}
}

func TestCashContributionValidation(t *testing.T) {
	_, err := CashContribution(CashContributionInput{TotalCashReserves: testutil.Dec("-1")})
	assert.True(t, calcerr.IsCode(err, calcerr.CodeNegativeAmount))

	_, err = CashContribution(CashContributionInput{HousingRatio: testutil.DecPtr("-0.1")})
	assert.Equal(t, "housingRatio", calcerr.GetField(err))
}
