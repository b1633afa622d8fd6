package core

import (
	"errors"
	"fmt"
)

// Domain errors - centralized error definitions
var (
	// Not found errors
	ErrNotFound      = errors.New("resource not found")
	ErrSuiteNotFound = fmt.Errorf("%w: suite", ErrNotFound)

	// Validation errors
	ErrInsufficientFactors = errors.New("at least 2 factors are required")
	ErrInsufficientValues  = errors.New("factor needs at least 2 values")
	ErrEmptyName           = errors.New("name must not be empty")

	// Editing errors
	ErrRemovalRefused = errors.New("removal would leave too few entries")
	ErrOutOfRange     = fmt.Errorf("%w: index out of range", ErrNotFound)

	// Output errors
	ErrReportWriteFailed = errors.New("report write failed")
)

// Error constructors with context
func NewNotFoundError(resource string, id string) error {
	return fmt.Errorf("%w: %s with id %s", ErrNotFound, resource, id)
}

func NewInsufficientFactorsError(got int) error {
	return fmt.Errorf("%w: got %d", ErrInsufficientFactors, got)
}

func NewInsufficientValuesError(factor string, got int) error {
	return fmt.Errorf("%w: factor %q has %d", ErrInsufficientValues, factor, got)
}

// NewEmptyNameError reports a blank label. valueIndex is -1 when the factor name itself is blank.
func NewEmptyNameError(factorIndex, valueIndex int) error {
	if valueIndex < 0 {
		return fmt.Errorf("%w: factor #%d", ErrEmptyName, factorIndex+1)
	}
	return fmt.Errorf("%w: value #%d of factor #%d", ErrEmptyName, valueIndex+1, factorIndex+1)
}

func NewRemovalRefusedError(what string, remaining int) error {
	return fmt.Errorf("%w: %s must keep at least %d", ErrRemovalRefused, what, remaining)
}

func NewOutOfRangeError(what string, index int) error {
	return fmt.Errorf("%w: %s #%d", ErrOutOfRange, what, index+1)
}

func NewReportWriteError(op string, err error) error {
	return fmt.Errorf("%w: %s: %w", ErrReportWriteFailed, op, err)
}

// Error checking helpers
func IsNotFoundError(err error) bool {
	return errors.Is(err, ErrNotFound)
}

func IsValidationError(err error) bool {
	return errors.Is(err, ErrInsufficientFactors) ||
		errors.Is(err, ErrInsufficientValues) ||
		errors.Is(err, ErrEmptyName)
}

func IsRemovalRefused(err error) bool {
	return errors.Is(err, ErrRemovalRefused)
}

func IsReportWriteError(err error) bool {
	return errors.Is(err, ErrReportWriteFailed)
}
