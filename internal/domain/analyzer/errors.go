package analyzer

import (
	"errors"
	"fmt"
)

// Sentinel kinds for analyzer errors. These allow errors.Is/As from callers.
var (
	ErrInvalidInput      = errors.New("invalid input")
	ErrUnknownNormalizer = errors.New("unknown density normalizer")
	ErrScript            = errors.New("density script failed")
)

// InvalidInputError reports input that is not a sequence of records.
// It matches ErrInvalidInput with errors.Is.
type InvalidInputError struct {
	Reason string
}

// NewInvalidInput builds an InvalidInputError with a formatted reason.
func NewInvalidInput(format string, args ...any) *InvalidInputError {
	return &InvalidInputError{Reason: fmt.Sprintf(format, args...)}
}

func (e *InvalidInputError) Error() string {
	if e.Reason == "" {
		return ErrInvalidInput.Error()
	}
	return ErrInvalidInput.Error() + ": " + e.Reason
}

// Unwrap exposes the sentinel kind.
func (e *InvalidInputError) Unwrap() error { return ErrInvalidInput }
