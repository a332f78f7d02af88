package calculator

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormatAttachesReference(t *testing.T) {
	res := Format(NameEscrowRepayment, "value", map[string]any{}, []string{})

	d, _ := Lookup(NameEscrowRepayment)
	assert.Equal(t, d.GuidelineReference, res.GuidelineReference)
	assert.Nil(t, res.Details)
	assert.Nil(t, res.Warnings)

	unknown := Format("custom", 1, nil, nil)
	assert.Empty(t, unknown.GuidelineReference)
	assert.Equal(t, "custom", unknown.WithReference("Custom guide").CalculationType)
	assert.Equal(t, "Custom guide", unknown.WithReference("Custom guide").GuidelineReference)
}

func TestResultJSON(t *testing.T) {
	res := Format(NameRelocationAssistance, "ok", nil, nil)
	data, err := json.Marshal(res)
	require.NoError(t, err)

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, "relocationAssistance", decoded["calculationType"])
	assert.Equal(t, "ok", decoded["result"])
	assert.NotContains(t, decoded, "details")
	assert.NotContains(t, decoded, "warnings")
	assert.Contains(t, decoded, "guidelineReference")
}

func TestErase(t *testing.T) {
	res := Format(NameTrialPeriodPayment, 42, map[string]any{"k": "v"}, []string{"w"})
	erased := res.Erase()

	assert.Equal(t, res.CalculationType, erased.CalculationType)
	assert.Equal(t, 42, erased.Result)
	assert.Equal(t, res.Details, erased.Details)
	assert.True(t, erased.HasWarning("w"))
	assert.False(t, erased.HasWarning("x"))
}
