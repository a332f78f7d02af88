package calculator

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iwvelando/loss-mitigation/pkg/calcerr"
	"github.com/iwvelando/loss-mitigation/pkg/testutil"
)

func TestCashReserves(t *testing.T) {
	tests := []struct {
		name         string
		input        CashReservesInput
		total        string
		contribution bool
		imminent     bool
		note         bool
	}{
		{
			name:         "Checking and savings over contribution threshold",
			input:        CashReservesInput{CheckingAccounts: testutil.Dec("8000"), SavingsAccounts: testutil.Dec("3000")},
			total:        "11000",
			contribution: true,
			note:         true,
		},
		{
			name:  "Below every threshold",
			input: CashReservesInput{CheckingAccounts: testutil.Dec("2500.55"), StocksAndBonds: testutil.Dec("1000.10")},
			total: "3500.65",
			note:  true,
		},
		{
			name:         "Exactly at contribution threshold",
			input:        CashReservesInput{MoneyMarketAccounts: testutil.Dec("10000")},
			total:        "10000",
			contribution: true,
			note:         true,
		},
		{
			name: "Exactly at imminent default threshold",
			input: CashReservesInput{
				CheckingAccounts:      testutil.Dec("5000"),
				SavingsAccounts:       testutil.Dec("5000"),
				MoneyMarketAccounts:   testutil.Dec("5000"),
				CertificatesOfDeposit: testutil.Dec("5000"),
				StocksAndBonds:        testutil.Dec("5000"),
			},
			total:        "25000",
			contribution: true,
			imminent:     true,
		},
		{
			name:  "No assets",
			input: CashReservesInput{},
			total: "0",
			note:  true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res, err := CashReserves(tt.input)
			require.NoError(t, err)
			testutil.AssertDecimal(t, tt.total, res.Result)
			assert.Equal(t, tt.contribution, res.HasWarning(WarnReservesContribution))
			assert.Equal(t, tt.imminent, res.HasWarning(WarnReservesImminentDefault))
			assert.Equal(t, tt.note, res.HasWarning(NoteReservesBelowImminent))
		})
	}
}

func TestCashReservesWarningOrder(t *testing.T) {
	res, err := CashReserves(CashReservesInput{SavingsAccounts: testutil.Dec("40000")})
	require.NoError(t, err)
	assert.Equal(t, []string{WarnReservesContribution, WarnReservesImminentDefault}, res.Warnings)
}

func TestCashReservesNegative(t *testing.T) {
	_, err := CashReserves(CashReservesInput{CheckingAccounts: testutil.Dec("100"), CertificatesOfDeposit: testutil.Dec("-1")})
	require.Error(t, err)
	assert.Equal(t, "Certificates of deposit cannot be negative", err.Error())
	assert.Equal(t, "certificatesOfDeposit", calcerr.GetField(err))
}
