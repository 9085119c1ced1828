package models

import (
	"math"

	"github.com/shopspring/decimal"

	itemdomain "github.com/ghuser/itemtracker/services/item/domain"
)

const priceScale = 2

var (
	maxPrice       = decimal.RequireFromString("999999999.99")
	priceTolerance = decimal.New(1, -priceScale)
)

// Price is a non-negative amount rounded to cents.
type Price struct {
	amount decimal.Decimal
}

// NewPrice rounds amount half away from zero to two places and validates the range.
func NewPrice(amount decimal.Decimal) (Price, error) {
	if amount.IsNegative() {
		return Price{}, itemdomain.NewValidationError("price", itemdomain.RuleOutOfRange, "must not be negative")
	}
	rounded := amount.Round(priceScale)
	if rounded.GreaterThan(maxPrice) {
		return Price{}, itemdomain.NewValidationError("price", itemdomain.RuleOutOfRange,
			"must be at most %s", maxPrice.StringFixed(priceScale))
	}
	return Price{amount: rounded}, nil
}

// NewPriceFromFloat is NewPrice for float input; NaN and infinities are rejected.
func NewPriceFromFloat(v float64) (Price, error) {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return Price{}, itemdomain.NewValidationError("price", itemdomain.RuleOutOfRange, "must be a finite number")
	}
	return NewPrice(decimal.NewFromFloat(v))
}

func (p Price) Amount() decimal.Decimal {
	return p.amount
}

func (p Price) Float64() float64 {
	return p.amount.InexactFloat64()
}

// String renders the amount with exactly two decimals.
func (p Price) String() string {
	return p.amount.StringFixed(priceScale)
}

// Equal treats prices less than one cent apart as equal.
func (p Price) Equal(other Price) bool {
	return p.amount.Sub(other.amount).Abs().LessThan(priceTolerance)
}

func (p Price) Add(other Price) (Price, error) {
	return NewPrice(p.amount.Add(other.amount))
}

func (p Price) Multiply(factor decimal.Decimal) (Price, error) {
	return NewPrice(p.amount.Mul(factor))
}
