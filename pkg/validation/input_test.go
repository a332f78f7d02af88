package validation

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iwvelando/loss-mitigation/pkg/calcerr"
)

var income = Field{Name: "grossMonthlyIncome", Label: "Gross monthly income"}

func TestPositive(t *testing.T) {
	assert.NoError(t, Positive(income, decimal.NewFromInt(1)))

	for _, v := range []int64{0, -1} {
		err := Positive(income, decimal.NewFromInt(v))
		require.Error(t, err)
		assert.Equal(t, "Gross monthly income must be greater than zero", err.Error())
		assert.Equal(t, calcerr.CodeNonPositive, calcerr.GetCode(err))
		assert.Equal(t, "grossMonthlyIncome", calcerr.GetField(err))
	}
}

func TestNonNegative(t *testing.T) {
	f := Field{Name: "savings", Label: "Savings"}
	assert.NoError(t, NonNegative(f, decimal.Zero))

	err := NonNegative(f, decimal.RequireFromString("-0.01"))
	require.Error(t, err)
	assert.Equal(t, "Savings cannot be negative", err.Error())
	assert.True(t, calcerr.IsCode(err, calcerr.CodeNegativeAmount))
}

func TestFraction(t *testing.T) {
	f := Field{Name: "grossUpPercentage", Label: "Gross-up percentage"}
	for _, ok := range []string{"0", "0.25", "1"} {
		assert.NoError(t, Fraction(f, decimal.RequireFromString(ok)), ok)
	}
	for _, bad := range []string{"-0.01", "1.01", "25"} {
		err := Fraction(f, decimal.RequireFromString(bad))
		assert.True(t, calcerr.IsCode(err, calcerr.CodeOutOfRange), bad)
	}
}

func TestPositiveFraction(t *testing.T) {
	f := Field{Name: "targetLTV", Label: "Target LTV"}
	assert.NoError(t, PositiveFraction(f, decimal.RequireFromString("0.8")))
	assert.Error(t, PositiveFraction(f, decimal.Zero))
	assert.Error(t, PositiveFraction(f, decimal.RequireFromString("1.2")))
}

func TestIntChecks(t *testing.T) {
	f := Field{Name: "termMonths", Label: "Term months"}
	assert.NoError(t, PositiveInt(f, 1))
	assert.Error(t, PositiveInt(f, 0))
	assert.NoError(t, NonNegativeInt(f, 0))
	assert.Error(t, NonNegativeInt(f, -1))
}

func TestDates(t *testing.T) {
	origination := Field{Name: "loanOriginationDate", Label: "Loan origination date"}
	evaluation := Field{Name: "evaluationDate", Label: "Evaluation date"}

	err := RequiredDate(origination, time.Time{})
	assert.True(t, calcerr.IsCode(err, calcerr.CodeMissingField))

	early := time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC)
	late := time.Date(2021, 1, 1, 0, 0, 0, 0, time.UTC)
	assert.NoError(t, NotBefore(evaluation, late, origination, early))

	err = NotBefore(evaluation, early, origination, late)
	require.Error(t, err)
	assert.Equal(t, "Evaluation date cannot be before loan origination date", err.Error())
}

func TestOneOf(t *testing.T) {
	f := Field{Name: "workoutOption", Label: "Workout option"}
	assert.NoError(t, OneOf(f, "short-sale", "short-sale", "modification"))

	err := OneOf(f, "refinance", "short-sale", "modification")
	assert.True(t, calcerr.IsCode(err, calcerr.CodeInvalidEnum))
	assert.Contains(t, err.Error(), "short-sale, modification")
}

func TestFirst(t *testing.T) {
	first := calcerr.New(calcerr.CodeNonPositive, "a", "a")
	second := calcerr.New(calcerr.CodeNonPositive, "b", "b")
	assert.Nil(t, First(nil, nil))
	assert.Equal(t, first, First(nil, first, second))
}
