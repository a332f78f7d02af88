package calculator

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iwvelando/loss-mitigation/pkg/calcerr"
	"github.com/iwvelando/loss-mitigation/pkg/testutil"
)

func TestHousingDTI(t *testing.T) {
	tests := []struct {
		name        string
		piti        string
		income      string
		ratio       string
		percent     string
		wantWarning bool
	}{
		{"Below threshold", "1500", "5000", "0.3", "30", true},
		{"Exactly at threshold", "4000", "10000", "0.4", "40", true},
		{"Above threshold", "4500", "10000", "0.45", "45", false},
		{"Repeating fraction", "1000", "3000", "0.3333", "33.33", true},
		{"Zero PITI", "0", "3000", "0", "0", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res, err := HousingDTI(HousingDTIInput{MonthlyPITI: testutil.Dec(tt.piti), GrossMonthlyIncome: testutil.Dec(tt.income)})
			require.NoError(t, err)

			testutil.AssertDecimal(t, tt.ratio, res.Result)
			testutil.AssertDecimal(t, tt.percent, res.Details["housingRatioPercent"].(decimal.Decimal))
			assert.Equal(t, tt.wantWarning, res.HasWarning(WarnHousingRatioContribution))
			assert.Equal(t, NameHousingDTI, res.CalculationType)
			assert.NotEmpty(t, res.GuidelineReference)
		})
	}
}

func TestHousingDTIMonotonic(t *testing.T) {
	income := testutil.Dec("6000")
	prev := decimal.Zero
	for piti := int64(0); piti <= 6000; piti += 250 {
		res, err := HousingDTI(HousingDTIInput{MonthlyPITI: decimal.NewFromInt(piti), GrossMonthlyIncome: income})
		require.NoError(t, err)
		assert.True(t, res.Result.GreaterThanOrEqual(prev), "ratio decreased at PITI %d", piti)
		prev = res.Result
	}

	piti := testutil.Dec("1800")
	prev = decimal.NewFromInt(1000)
	for inc := int64(2000); inc <= 20000; inc += 1000 {
		res, err := HousingDTI(HousingDTIInput{MonthlyPITI: piti, GrossMonthlyIncome: decimal.NewFromInt(inc)})
		require.NoError(t, err)
		assert.True(t, res.Result.LessThanOrEqual(prev), "ratio increased at income %d", inc)
		prev = res.Result
	}
}

func TestHousingDTIValidation(t *testing.T) {
	_, err := HousingDTI(HousingDTIInput{MonthlyPITI: testutil.Dec("1500"), GrossMonthlyIncome: decimal.Zero})
	require.Error(t, err)
	assert.Equal(t, "Gross monthly income must be greater than zero", err.Error())
	assert.Equal(t, calcerr.CodeNonPositive, calcerr.GetCode(err))

	_, err = HousingDTI(HousingDTIInput{MonthlyPITI: testutil.Dec("-1"), GrossMonthlyIncome: testutil.Dec("5000")})
	require.Error(t, err)
	assert.Equal(t, "monthlyPITI", calcerr.GetField(err))
}

func TestTotalDTI(t *testing.T) {
	res, err := TotalDTI(TotalDTIInput{MonthlyPITI: testutil.Dec("1500"), OtherMonthlyDebts: testutil.Dec("500"), GrossMonthlyIncome: testutil.Dec("5000")})
	require.NoError(t, err)
	testutil.AssertDecimal(t, "0.4", res.Result)
	testutil.AssertDecimal(t, "2000", res.Details["totalMonthlyObligations"].(decimal.Decimal))
	testutil.AssertDecimal(t, "40", res.Details["totalDTIPercent"].(decimal.Decimal))

	res, err = TotalDTI(TotalDTIInput{MonthlyPITI: testutil.Dec("1500"), GrossMonthlyIncome: testutil.Dec("5000")})
	require.NoError(t, err)
	testutil.AssertDecimal(t, "0.3", res.Result, "other debts default to zero")

	_, err = TotalDTI(TotalDTIInput{MonthlyPITI: testutil.Dec("1500"), OtherMonthlyDebts: testutil.Dec("-5"), GrossMonthlyIncome: testutil.Dec("5000")})
	assert.True(t, calcerr.IsCode(err, calcerr.CodeNegativeAmount))
}

func TestIncomeGrossUp(t *testing.T) {
	tests := []struct {
		name     string
		income   string
		pct      *decimal.Decimal
		expected string
		amount   string
	}{
		{"Default percentage", "2000", nil, "2500", "500"},
		{"Explicit percentage", "2000", testutil.DecPtr("0.15"), "2300", "300"},
		{"Zero percentage", "2000", testutil.DecPtr("0"), "2000", "0"},
		{"Zero income", "0", nil, "0", "0"},
		{"Cents rounding", "1234.57", nil, "1543.21", "308.64"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res, err := IncomeGrossUp(IncomeGrossUpInput{NonTaxableIncome: testutil.Dec(tt.income), GrossUpPercentage: tt.pct})
			require.NoError(t, err)
			testutil.AssertDecimal(t, tt.expected, res.Result)
			testutil.AssertDecimal(t, tt.amount, res.Details["grossUpAmount"].(decimal.Decimal))
		})
	}
}

func TestIncomeGrossUpValidation(t *testing.T) {
	_, err := IncomeGrossUp(IncomeGrossUpInput{NonTaxableIncome: testutil.Dec("-100")})
	assert.True(t, calcerr.IsCode(err, calcerr.CodeNegativeAmount))

	_, err = IncomeGrossUp(IncomeGrossUpInput{NonTaxableIncome: testutil.Dec("100"), GrossUpPercentage: testutil.DecPtr("1.25")})
	assert.True(t, calcerr.IsCode(err, calcerr.CodeOutOfRange))
	assert.Equal(t, "grossUpPercentage", calcerr.GetField(err))

	_, err = IncomeGrossUp(IncomeGrossUpInput{NonTaxableIncome: testutil.Dec("100"), GrossUpPercentage: testutil.DecPtr("-0.1")})
	assert.True(t, calcerr.IsCode(err, calcerr.CodeOutOfRange))
}
