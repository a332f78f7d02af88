package calcerr

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGetCodeThroughWrapping(t *testing.T) {
	base := New(CodeNonPositive, "grossMonthlyIncome", "Gross monthly income must be greater than zero")
	wrapped := fmt.Errorf("housing ratio: %w", base)

	assert.Equal(t, CodeNonPositive, GetCode(wrapped))
	assert.True(t, IsCode(wrapped, CodeNonPositive))
	assert.Equal(t, "grossMonthlyIncome", GetField(wrapped))
	assert.Equal(t, "Gross monthly income must be greater than zero", base.Error())
}

func TestGetCodeUnknown(t *testing.T) {
	err := errors.New("boom")
	assert.Equal(t, CodeUnknown, GetCode(err))
	assert.Equal(t, "", GetField(err))
	assert.Equal(t, http.StatusInternalServerError, HTTPStatus(err))
}

func TestWrapUnwraps(t *testing.T) {
	cause := errors.New("connection refused")
	err := Wrap(CodeFactSource, "", "failed to load borrower facts", cause)

	assert.ErrorIs(t, err, cause)
	assert.Equal(t, "failed to load borrower facts: connection refused", err.Error())
}

func TestHTTPStatus(t *testing.T) {
	tests := map[Code]int{
		CodeInvalidInput:      http.StatusBadRequest,
		CodeNonPositive:       http.StatusBadRequest,
		CodeNegativeAmount:    http.StatusBadRequest,
		CodeOutOfRange:        http.StatusBadRequest,
		CodeInvalidEnum:       http.StatusBadRequest,
		CodeMissingField:      http.StatusBadRequest,
		CodeInvalidDate:       http.StatusBadRequest,
		CodeUnknownCalculator: http.StatusNotFound,
		CodeFactSource:        http.StatusBadGateway,
	}

	for code, want := range tests {
		t.Run(string(code), func(t *testing.T) {
			assert.Equal(t, want, HTTPStatus(New(code, "f", "msg")))
		})
	}
}
