package composite

import (
	"encoding/json"
	"fmt"
	"reflect"
	"strings"
	"time"

	"github.com/mitchellh/mapstructure"
	"github.com/shopspring/decimal"

	"github.com/iwvelando/loss-mitigation/pkg/calcerr"
	"github.com/iwvelando/loss-mitigation/pkg/calculator"
	"github.com/iwvelando/loss-mitigation/pkg/datetime"
)

// BorrowerRecord is the merged set of borrower facts a workout evaluation
// reads. Keys match the JSON field names of the calculator inputs they feed.
// Optional facts are pointers so that an absent value can be told apart from
// zero.
type BorrowerRecord struct {
	// Income and obligations
	GrossMonthlyIncome decimal.Decimal  `json:"grossMonthlyIncome"`
	NonTaxableIncome   decimal.Decimal  `json:"nonTaxableIncome"`
	GrossUpPercentage  *decimal.Decimal `json:"grossUpPercentage,omitempty"`
	MonthlyPITI        decimal.Decimal  `json:"monthlyPITI"`
	OtherMonthlyDebts  decimal.Decimal  `json:"otherMonthlyDebts"`

	// Liquid assets
	CheckingAccounts      decimal.Decimal `json:"checkingAccounts"`
	SavingsAccounts       decimal.Decimal `json:"savingsAccounts"`
	MoneyMarketAccounts   decimal.Decimal `json:"moneyMarketAccounts"`
	CertificatesOfDeposit decimal.Decimal `json:"certificatesOfDeposit"`
	StocksAndBonds        decimal.Decimal `json:"stocksAndBonds"`

	// Property disposition
	SalePrice             decimal.Decimal `json:"salePrice"`
	MarketValue           decimal.Decimal `json:"marketValue"`
	RealEstateCommission  decimal.Decimal `json:"realEstateCommission"`
	ClosingCosts          decimal.Decimal `json:"closingCosts"`
	SubordinateLienPayoff decimal.Decimal `json:"subordinateLienPayoff"`
	RepairCosts           decimal.Decimal `json:"repairCosts"`
	OtherCosts            decimal.Decimal `json:"otherCosts"`

	// Amounts owed
	UnpaidPrincipalBalance decimal.Decimal `json:"unpaidPrincipalBalance"`
	AccruedInterest        decimal.Decimal `json:"accruedInterest"`
	OtherAdvances          decimal.Decimal `json:"otherAdvances"`

	// Occupancy and military status
	IsPrincipalResidence          bool `json:"isPrincipalResidence"`
	IsServicememberWithPCS        bool `json:"isServicememberWithPCS"`
	ReceivingGovernmentAssistance bool `json:"receivingGovernmentAssistance"`

	// Modification terms
	PrincipalAndInterest  decimal.Decimal  `json:"principalAndInterest"`
	MonthlyTaxes          decimal.Decimal  `json:"monthlyTaxes"`
	MonthlyInsurance      decimal.Decimal  `json:"monthlyInsurance"`
	EscrowAddOns          decimal.Decimal  `json:"escrowAddOns"`
	TargetHousingDTI      *decimal.Decimal `json:"targetHousingDTI,omitempty"`
	TargetTotalDTI        *decimal.Decimal `json:"targetTotalDTI,omitempty"`
	PropertyValueBefore   *decimal.Decimal `json:"propertyValueBefore,omitempty"`
	PropertyValueAfter    *decimal.Decimal `json:"propertyValueAfter,omitempty"`
	TargetLTV             *decimal.Decimal `json:"targetLTV,omitempty"`
	EscrowShortage        *decimal.Decimal `json:"escrowShortage,omitempty"`
	EscrowRepaymentMonths int              `json:"escrowRepaymentMonths,omitempty"`

	// Delinquency and deferral
	LoanOriginationDate time.Time        `json:"loanOriginationDate"`
	EvaluationDate      time.Time        `json:"evaluationDate"`
	MaturityDate        time.Time        `json:"maturityDate"`
	MonthsDelinquent    int              `json:"monthsDelinquent"`
	IsDisasterRelated   bool             `json:"isDisasterRelated"`
	TotalDelinquency    *decimal.Decimal `json:"totalDelinquency,omitempty"`
	RepaymentTermMonths int              `json:"repaymentTermMonths,omitempty"`

	// Servicing history
	DeferralHistory     []calculator.DeferralHistoryEntry     `json:"deferralHistory,omitempty"`
	ModificationHistory []calculator.ModificationHistoryEntry `json:"modificationHistory,omitempty"`
}

// AssetsInput returns the liquid asset categories.
func (b BorrowerRecord) AssetsInput() calculator.CashReservesInput {
	return calculator.CashReservesInput{
		CheckingAccounts:      b.CheckingAccounts,
		SavingsAccounts:       b.SavingsAccounts,
		MoneyMarketAccounts:   b.MoneyMarketAccounts,
		CertificatesOfDeposit: b.CertificatesOfDeposit,
		StocksAndBonds:        b.StocksAndBonds,
	}
}

// FailedTrialPeriods counts prior modifications whose trial period failed.
func (b BorrowerRecord) FailedTrialPeriods() int {
	failed := 0
	for _, m := range b.ModificationHistory {
		if m.TrialPeriodFailed {
			failed++
		}
	}
	return failed
}

var (
	decimalType = reflect.TypeOf(decimal.Decimal{})
	timeType    = reflect.TypeOf(time.Time{})
)

// DecodeRecord decodes merged borrower facts into a BorrowerRecord. Unknown
// keys are ignored so that documents may carry facts no workout reads.
func DecodeRecord(facts map[string]any) (BorrowerRecord, error) {
	var record BorrowerRecord
	if err := decode(facts, &record, false); err != nil {
		return record, calcerr.Wrap(calcerr.CodeInvalidInput, "", "invalid borrower facts", err)
	}
	return record, nil
}

// DecodeInput decodes a request payload into a calculator input struct,
// accepting decimal amounts as strings or numbers and dates as YYYY-MM-DD.
// Unknown keys are rejected.
func DecodeInput(data map[string]any, out any) error {
	if err := decode(data, out, true); err != nil {
		return calcerr.Wrap(calcerr.CodeInvalidInput, "", "invalid calculator input", err)
	}
	return nil
}

func decode(data map[string]any, out any, strict bool) error {
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		DecodeHook: mapstructure.ComposeDecodeHookFunc(
			decimalHook,
			dateHook,
		),
		ErrorUnused: strict,
		TagName:     "json",
		Result:      out,
	})
	if err != nil {
		return fmt.Errorf("failed to build decoder: %w", err)
	}
	return decoder.Decode(data)
}

// decimalHook converts the numeric shapes produced by JSON, YAML and Redis
// documents into decimal.Decimal.
func decimalHook(_ reflect.Type, to reflect.Type, data any) (any, error) {
	if to != decimalType {
		return data, nil
	}
	switch v := data.(type) {
	case string:
		return decimal.NewFromString(strings.TrimSpace(v))
	case json.Number:
		return decimal.NewFromString(v.String())
	case float64:
		return decimal.NewFromFloat(v), nil
	case float32:
		return decimal.NewFromFloat32(v), nil
	case int:
		return decimal.NewFromInt(int64(v)), nil
	case int64:
		return decimal.NewFromInt(v), nil
	case int32:
		return decimal.NewFromInt32(v), nil
	case uint64:
		return decimal.NewFromString(fmt.Sprint(v))
	}
	return data, nil
}

// dateHook parses calendar date strings into time.Time.
func dateHook(_ reflect.Type, to reflect.Type, data any) (any, error) {
	if to != timeType {
		return data, nil
	}
	switch v := data.(type) {
	case string:
		return datetime.ParseDate(v)
	case time.Time:
		return datetime.CalendarDate(v), nil
	}
	return data, nil
}
