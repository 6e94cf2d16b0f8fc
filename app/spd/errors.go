package spd

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidAccount = errors.New("invalid account number")
	ErrInvalidField   = errors.New("invalid field value")
)

// FormatError reports a local account number or IBAN that cannot be parsed.
type FormatError struct {
	Input  string
	Reason string
}

func (e *FormatError) Error() string {
	return fmt.Sprintf("invalid account number %q: %s", e.Input, e.Reason)
}

func (e *FormatError) Unwrap() error {
	return ErrInvalidAccount
}

// ValidationError reports a field value rejected by a setter. The field
// keeps whatever value it held before the call.
type ValidationError struct {
	Key    Key
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Key, e.Reason)
}

func (e *ValidationError) Unwrap() error {
	return ErrInvalidField
}

func formatError(input, reason string) error {
	return &FormatError{Input: input, Reason: reason}
}

func validationError(key Key, format string, args ...interface{}) error {
	return &ValidationError{Key: key, Reason: fmt.Sprintf(format, args...)}
}
