package domain

import (
	"errors"
	"fmt"
)

// Sentinel errors for the item domain. Use errors.Is() to check these.
var (
	// ErrItemNotFound indicates the requested item does not exist.
	ErrItemNotFound = errors.New("item not found")

	// ErrItemAlreadyExists indicates an item with the same item number already exists.
	ErrItemAlreadyExists = errors.New("item already exists")

	// ErrValidation is matched by every *ValidationError.
	ErrValidation = errors.New("validation failed")

	// ErrMissingID indicates an operation that needs a persisted item got an unsaved one.
	ErrMissingID = errors.New("item has no id")
)

// Validation rule names carried by ValidationError.Rule.
const (
	RuleEmpty        = "empty"
	RuleTooLong      = "too_long"
	RuleOutOfRange   = "out_of_range"
	RuleNotInteger   = "not_integer"
	RuleInvalidOrder = "invalid_order"
	RuleUnknownField = "unknown_field"
	RuleInvalidDate  = "invalid_date"
	RuleImmutable    = "immutable"
)

// ValidationError names the field and the rule an input violated.
type ValidationError struct {
	Field   string
	Rule    string
	Message string
}

// NewValidationError builds a ValidationError with a formatted message.
func NewValidationError(field, rule, format string, args ...any) *ValidationError {
	return &ValidationError{Field: field, Rule: rule, Message: fmt.Sprintf(format, args...)}
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// Unwrap lets errors.Is(err, ErrValidation) match.
func (e *ValidationError) Unwrap() error {
	return ErrValidation
}
