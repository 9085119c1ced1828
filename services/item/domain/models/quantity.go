package models

import (
	"math"

	itemdomain "github.com/ghuser/itemtracker/services/item/domain"
)

// MaxQuantity is the largest quantity a single item line may carry.
const MaxQuantity = 1_000_000

// Quantity is a whole number of units in [0, MaxQuantity].
type Quantity struct {
	value int64
}

// NewQuantity floors v to an integer and validates the range.
func NewQuantity(v float64) (Quantity, error) {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return Quantity{}, itemdomain.NewValidationError("qty", itemdomain.RuleNotInteger, "must be a finite number")
	}
	if v < 0 {
		return Quantity{}, itemdomain.NewValidationError("qty", itemdomain.RuleOutOfRange, "must not be negative")
	}
	floored := math.Floor(v)
	if floored > MaxQuantity {
		return Quantity{}, itemdomain.NewValidationError("qty", itemdomain.RuleOutOfRange,
			"must be at most %d", MaxQuantity)
	}
	return Quantity{value: int64(floored)}, nil
}

func (q Quantity) Value() int64 {
	return q.value
}

// Add returns q + other, failing when the sum leaves the valid range.
func (q Quantity) Add(other Quantity) (Quantity, error) {
	return NewQuantity(float64(q.value + other.value))
}

// Subtract returns q - other. The result must not be negative.
func (q Quantity) Subtract(other Quantity) (Quantity, error) {
	return NewQuantity(float64(q.value - other.value))
}
