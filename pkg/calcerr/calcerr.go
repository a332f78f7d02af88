// Package calcerr provides the error taxonomy shared by the calculators and
// the transports built on top of them.
package calcerr

import (
	"errors"
	"fmt"
	"net/http"
)

// Code is a machine-readable error code.
type Code string

const (
	// CodeUnknown represents an error that did not originate in the engine.
	CodeUnknown Code = "UNKNOWN"

	// Input precondition errors
	CodeInvalidInput   Code = "INVALID_INPUT"
	CodeNonPositive    Code = "NON_POSITIVE"
	CodeNegativeAmount Code = "NEGATIVE_AMOUNT"
	CodeOutOfRange     Code = "OUT_OF_RANGE"
	CodeInvalidEnum    Code = "INVALID_ENUM"
	CodeMissingField   Code = "MISSING_FIELD"
	CodeInvalidDate    Code = "INVALID_DATE"

	// Lookup errors
	CodeUnknownCalculator Code = "UNKNOWN_CALCULATOR"

	// Collaborator errors
	CodeFactSource Code = "FACT_SOURCE"
)

// Error is a field-specific domain error. A calculator returning an Error
// produced no partial result.
type Error struct {
	Code    Code
	Field   string
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Err
}

// New creates an Error for the given field.
func New(code Code, field, message string) *Error {
	return &Error{Code: code, Field: field, Message: message}
}

// Newf creates an Error with a formatted message.
func Newf(code Code, field, format string, args ...any) *Error {
	return &Error{Code: code, Field: field, Message: fmt.Sprintf(format, args...)}
}

// Wrap attaches a code and message to an underlying error.
func Wrap(code Code, field, message string, err error) *Error {
	return &Error{Code: code, Field: field, Message: message, Err: err}
}

// GetCode extracts the error code from any error.
// Returns CodeUnknown if the error is not a domain error.
func GetCode(err error) Code {
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	return CodeUnknown
}

// IsCode checks if the error has the specified code.
func IsCode(err error, code Code) bool {
	return GetCode(err) == code
}

// GetField returns the offending input field, or "" for non-domain errors.
func GetField(err error) string {
	var e *Error
	if errors.As(err, &e) {
		return e.Field
	}
	return ""
}

// HTTPStatus maps an error to the status code the HTTP layer responds with.
func HTTPStatus(err error) int {
	switch GetCode(err) {
	case CodeInvalidInput, CodeNonPositive, CodeNegativeAmount, CodeOutOfRange,
		CodeInvalidEnum, CodeMissingField, CodeInvalidDate:
		return http.StatusBadRequest
	case CodeUnknownCalculator:
		return http.StatusNotFound
	case CodeFactSource:
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}
