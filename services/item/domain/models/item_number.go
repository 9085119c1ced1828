package models

import (
	"unicode/utf8"

	itemdomain "github.com/ghuser/itemtracker/services/item/domain"
)

// MaxItemNumberLength is the longest item number accepted, in characters.
const MaxItemNumberLength = 50

// ItemNumber is the external, globally unique identifier of an item.
type ItemNumber struct {
	value string
}

// NewItemNumber trims s and validates it: 1 <= len <= MaxItemNumberLength.
func NewItemNumber(s string) (ItemNumber, error) {
	v, err := requiredText("itemNumber", s)
	if err != nil {
		return ItemNumber{}, err
	}
	if n := utf8.RuneCountInString(v); n > MaxItemNumberLength {
		return ItemNumber{}, itemdomain.NewValidationError("itemNumber", itemdomain.RuleTooLong,
			"must not exceed %d characters (got %d)", MaxItemNumberLength, n)
	}
	return ItemNumber{value: v}, nil
}

func (n ItemNumber) String() string {
	return n.value
}

func (n ItemNumber) Equal(other ItemNumber) bool {
	return n.value == other.value
}
