package domain

import (
	"errors"
	"fmt"
	"testing"
)

func TestSentinelErrors_Messages(t *testing.T) {
	tests := []struct {
		err  error
		want string
	}{
		{ErrItemNotFound, "item not found"},
		{ErrItemAlreadyExists, "item already exists"},
		{ErrValidation, "validation failed"},
		{ErrMissingID, "item has no id"},
	}
	for _, tt := range tests {
		if tt.err.Error() != tt.want {
			t.Fatalf("unexpected message: %q, want %q", tt.err.Error(), tt.want)
		}
	}
}

func TestSentinelErrors_WrappedIdentity(t *testing.T) {
	wrapped := fmt.Errorf("context: %w", ErrItemNotFound)
	if !errors.Is(wrapped, ErrItemNotFound) {
		t.Fatal("errors.Is must match wrapped ErrItemNotFound")
	}

	wrapped2 := fmt.Errorf("%w: %w", ErrItemAlreadyExists, errors.New("ITEM-0001"))
	if !errors.Is(wrapped2, ErrItemAlreadyExists) {
		t.Fatal("errors.Is must match double-wrapped ErrItemAlreadyExists")
	}
}

func TestValidationError(t *testing.T) {
	err := NewValidationError("quantity", RuleOutOfRange, "must be at most %d", 1000000)

	if err.Error() != "quantity: must be at most 1000000" {
		t.Fatalf("unexpected message: %q", err.Error())
	}
	if !errors.Is(err, ErrValidation) {
		t.Fatal("ValidationError must match ErrValidation")
	}

	wrapped := fmt.Errorf("create item: %w", err)
	var ve *ValidationError
	if !errors.As(wrapped, &ve) {
		t.Fatal("errors.As must find the ValidationError through wrapping")
	}
	if ve.Field != "quantity" || ve.Rule != RuleOutOfRange {
		t.Fatalf("unexpected field/rule: %s/%s", ve.Field, ve.Rule)
	}
}
