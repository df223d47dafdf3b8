package model

import (
	"errors"
	"fmt"
)

// Validation error kinds. A *ValidationError unwraps to exactly one of them.
var (
	ErrMissingRequiredField = errors.New("missing required field")
	ErrUnsupportedCountry   = errors.New("unsupported country")
	ErrLengthMismatch       = errors.New("length mismatch")
)

// Field names reported by ValidationError.
const (
	FieldCountry       = "country"
	FieldBIC           = "bic"
	FieldBankID        = "bank_id"
	FieldAccountNumber = "account_number"
)

// ValidationError describes the first restriction an account failed.
type ValidationError struct {
	Kind     error
	Country  string
	Field    string
	Expected int
	// Actual is the offending value; nil when the field was never set.
	Actual *string

	msg string
}

func (e *ValidationError) Error() string { return e.msg }

func (e *ValidationError) Unwrap() error { return e.Kind }

func errCountryRequired() *ValidationError {
	return &ValidationError{
		Kind:  ErrMissingRequiredField,
		Field: FieldCountry,
		msg:   "Country is required",
	}
}

func errUnsupportedCountry(country string) *ValidationError {
	return &ValidationError{
		Kind:    ErrUnsupportedCountry,
		Country: country,
		Field:   FieldCountry,
		msg:     fmt.Sprintf("Unsupported country %s", country),
	}
}

func errBICRequired(country string) *ValidationError {
	return &ValidationError{
		Kind:    ErrMissingRequiredField,
		Country: country,
		Field:   FieldBIC,
		msg:     fmt.Sprintf("%s requires Bic", country),
	}
}

func errAccountNumberLength(country string, expected int, actual *string) *ValidationError {
	return &ValidationError{
		Kind:     ErrLengthMismatch,
		Country:  country,
		Field:    FieldAccountNumber,
		Expected: expected,
		Actual:   actual,
		msg:      fmt.Sprintf("%s requires %d-character long Account Number", country, expected),
	}
}

// errBankID covers both a missing and a wrongly sized bank id with one message format;
// only the kind tells the two apart.
func errBankID(country string, expected int, actual *string) *ValidationError {
	kind := ErrLengthMismatch
	if actual == nil {
		kind = ErrMissingRequiredField
	}
	return &ValidationError{
		Kind:     kind,
		Country:  country,
		Field:    FieldBankID,
		Expected: expected,
		Actual:   actual,
		msg:      fmt.Sprintf("%s requires %d-character BankId, got %s", country, expected, describe(actual)),
	}
}

func describe(value *string) string {
	if value == nil {
		return "absent"
	}
	return "'" + *value + "'"
}
