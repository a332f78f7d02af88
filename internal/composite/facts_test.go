package composite

import (
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iwvelando/loss-mitigation/internal/config"
	"github.com/iwvelando/loss-mitigation/pkg/calcerr"
	"github.com/iwvelando/loss-mitigation/pkg/constants"
	"github.com/iwvelando/loss-mitigation/pkg/testutil"
)

func TestStaticFacts(t *testing.T) {
	source := StaticFacts{"B-1": {"monthlyPITI": "1500"}}

	facts, err := source.Facts(context.Background(), "B-1")
	require.NoError(t, err)
	assert.Equal(t, "1500", facts["monthlyPITI"])

	facts["monthlyPITI"] = "0"
	again, _ := source.Facts(context.Background(), "B-1")
	assert.Equal(t, "1500", again["monthlyPITI"], "callers receive a copy")

	missing, err := source.Facts(context.Background(), "B-2")
	require.NoError(t, err)
	assert.Empty(t, missing)
}

func TestFileFacts(t *testing.T) {
	dir := t.TempDir()
	document := []byte(`grossMonthlyIncome: 5000
monthlyPITI: 1750.50
loanOriginationDate: 2020-01-15
isPrincipalResidence: true
deferralHistory:
  - effectiveDate: 2021-05-01
    monthsDeferred: 4
`)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "B-1.yaml"), document, 0600))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "B-bad.yaml"), []byte("monthlyPITI: [unclosed"), 0600))

	source := FileFacts{Dir: dir}

	facts, err := source.Facts(context.Background(), "B-1")
	require.NoError(t, err)
	assert.Equal(t, 5000, facts["grossMonthlyIncome"])
	assert.Equal(t, true, facts["isPrincipalResidence"])

	record, err := DecodeRecord(facts)
	require.NoError(t, err)
	testutil.AssertDecimal(t, "1750.5", record.MonthlyPITI)
	assert.Equal(t, testutil.Date("2020-01-15"), record.LoanOriginationDate)
	require.Len(t, record.DeferralHistory, 1)
	assert.Equal(t, 4, record.DeferralHistory[0].MonthsDeferred)

	missing, err := source.Facts(context.Background(), "B-2")
	require.NoError(t, err)
	assert.Empty(t, missing)

	_, err = source.Facts(context.Background(), "B-bad")
	assert.True(t, calcerr.IsCode(err, calcerr.CodeFactSource))

	_, err = source.Facts(context.Background(), "../etc/passwd")
	assert.True(t, calcerr.IsCode(err, calcerr.CodeInvalidInput))
}

type fakeRedis map[string]string

func (f fakeRedis) Get(_ context.Context, key string) *redis.StringCmd {
	if val, ok := f[key]; ok {
		return redis.NewStringResult(val, nil)
	}
	return redis.NewStringResult("", redis.Nil)
}

type brokenRedis struct{}

func (brokenRedis) Get(context.Context, string) *redis.StringCmd {
	return redis.NewStringResult("", errors.New("dial tcp: connection refused"))
}

func TestRedisFacts(t *testing.T) {
	client := fakeRedis{
		"borrowers:B-1":   `{"unpaidPrincipalBalance": 320000.10, "monthsDelinquent": 3}`,
		"borrowers:B-bad": `{"unpaidPrincipalBalance":`,
	}
	source := NewRedisFacts(client, "borrowers:")

	facts, err := source.Facts(context.Background(), "B-1")
	require.NoError(t, err)
	assert.Equal(t, json.Number("320000.10"), facts["unpaidPrincipalBalance"])

	record, err := DecodeRecord(facts)
	require.NoError(t, err)
	testutil.AssertDecimal(t, "320000.1", record.UnpaidPrincipalBalance)
	assert.Equal(t, 3, record.MonthsDelinquent)

	missing, err := source.Facts(context.Background(), "B-2")
	require.NoError(t, err)
	assert.Empty(t, missing)

	_, err = source.Facts(context.Background(), "B-bad")
	assert.True(t, calcerr.IsCode(err, calcerr.CodeFactSource))

	_, err = NewRedisFacts(brokenRedis{}, "").Facts(context.Background(), "B-1")
	assert.True(t, calcerr.IsCode(err, calcerr.CodeFactSource))
}

func TestNewRedisFactsDefaultPrefix(t *testing.T) {
	source := NewRedisFacts(fakeRedis{constants.DefaultRedisKeyPrefix + "B-1": `{"salePrice": "1"}`}, "")
	facts, err := source.Facts(context.Background(), "B-1")
	require.NoError(t, err)
	assert.Equal(t, "1", facts["salePrice"])
}

func TestNewFactSource(t *testing.T) {
	tests := []struct {
		name      string
		conf      config.FactsConfig
		expectErr bool
		check     func(t *testing.T, source FactSource)
	}{
		{
			name: "None",
			conf: config.FactsConfig{Backend: constants.FactBackendNone},
			check: func(t *testing.T, source FactSource) {
				assert.IsType(t, NoFacts{}, source)
			},
		},
		{
			name: "File",
			conf: config.FactsConfig{Backend: constants.FactBackendFile, Directory: "/srv/facts"},
			check: func(t *testing.T, source FactSource) {
				assert.Equal(t, FileFacts{Dir: "/srv/facts"}, source)
			},
		},
		{
			name: "File without directory",
			conf: config.FactsConfig{Backend: constants.FactBackendFile},
			check: func(t *testing.T, source FactSource) {
				assert.IsType(t, NoFacts{}, source)
			},
		},
		{
			name: "Redis",
			conf: config.FactsConfig{Backend: constants.FactBackendRedis, RedisAddress: "localhost:6379"},
			check: func(t *testing.T, source FactSource) {
				assert.IsType(t, &RedisFacts{}, source)
			},
		},
		{
			name:      "Unknown",
			conf:      config.FactsConfig{Backend: "s3"},
			expectErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			source, closeFn, err := NewFactSource(nil, tt.conf)
			if tt.expectErr {
				assert.Error(t, err)
				assert.Nil(t, source)
				warnings := (&config.Configuration{Facts: tt.conf}).ValidateConfiguration()
				require.Len(t, warnings, 1)
				assert.Contains(t, warnings[0], "cannot be created", "config warning must match the construction failure")
				return
			}
			require.NoError(t, err)
			defer func() { _ = closeFn() }()
			tt.check(t, source)
		})
	}
}
