package models

import (
	"errors"
	"math"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	itemdomain "github.com/ghuser/itemtracker/services/item/domain"
)

func assertRule(t *testing.T, err error, rule string) {
	t.Helper()
	if err == nil {
		t.Fatalf("expected %s validation error, got nil", rule)
	}
	var ve *itemdomain.ValidationError
	if !errors.As(err, &ve) {
		t.Fatalf("expected *ValidationError, got %T: %v", err, err)
	}
	if ve.Rule != rule {
		t.Fatalf("expected rule %q, got %q (%v)", rule, ve.Rule, err)
	}
}

func TestNewItemNumber(t *testing.T) {
	t.Run("trims surrounding whitespace", func(t *testing.T) {
		n, err := NewItemNumber("  ITEM-0001 ")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if n.String() != "ITEM-0001" {
			t.Fatalf("expected %q, got %q", "ITEM-0001", n.String())
		}
	})

	t.Run("accepts 50 characters", func(t *testing.T) {
		s := strings.Repeat("x", MaxItemNumberLength)
		if _, err := NewItemNumber(s); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	})

	t.Run("rejects 51 characters", func(t *testing.T) {
		_, err := NewItemNumber(strings.Repeat("x", MaxItemNumberLength+1))
		assertRule(t, err, itemdomain.RuleTooLong)
	})

	t.Run("rejects blank", func(t *testing.T) {
		_, err := NewItemNumber("   ")
		assertRule(t, err, itemdomain.RuleEmpty)
	})

	t.Run("equality by value", func(t *testing.T) {
		a, _ := NewItemNumber("ITEM-0001")
		b, _ := NewItemNumber(" ITEM-0001")
		if !a.Equal(b) {
			t.Fatal("expected equal item numbers")
		}
	})
}

func TestNewQuantity(t *testing.T) {
	tests := []struct {
		name     string
		input    float64
		want     int64
		wantRule string
	}{
		{"zero", 0, 0, ""},
		{"floors fractional input", 3.7, 3, ""},
		{"upper bound", MaxQuantity, MaxQuantity, ""},
		{"fraction above bound floors into range", MaxQuantity + 0.5, MaxQuantity, ""},
		{"negative", -5, 0, itemdomain.RuleOutOfRange},
		{"above bound", MaxQuantity + 1, 0, itemdomain.RuleOutOfRange},
		{"NaN", math.NaN(), 0, itemdomain.RuleNotInteger},
		{"infinity", math.Inf(1), 0, itemdomain.RuleNotInteger},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			q, err := NewQuantity(tt.input)
			if tt.wantRule != "" {
				assertRule(t, err, tt.wantRule)
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if q.Value() != tt.want {
				t.Fatalf("expected %d, got %d", tt.want, q.Value())
			}
		})
	}
}

func TestQuantity_Arithmetic(t *testing.T) {
	five, _ := NewQuantity(5)
	three, _ := NewQuantity(3)

	sum, err := five.Add(three)
	if err != nil || sum.Value() != 8 {
		t.Fatalf("Add: got %d, %v", sum.Value(), err)
	}

	diff, err := five.Subtract(three)
	if err != nil || diff.Value() != 2 {
		t.Fatalf("Subtract: got %d, %v", diff.Value(), err)
	}

	_, err = three.Subtract(five)
	assertRule(t, err, itemdomain.RuleOutOfRange)
}

func TestNewPrice(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		want     string
		wantRule string
	}{
		{"rounds half up", "4800.005", "4800.01", ""},
		{"rounds down", "19.994", "19.99", ""},
		{"rounds up to next unit", "19.999", "20.00", ""},
		{"zero", "0", "0.00", ""},
		{"upper bound", "999999999.99", "999999999.99", ""},
		{"negative", "-1", "", itemdomain.RuleOutOfRange},
		{"above bound", "1000000000", "", itemdomain.RuleOutOfRange},
		{"rounds above bound", "999999999.995", "", itemdomain.RuleOutOfRange},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, err := NewPrice(decimal.RequireFromString(tt.input))
			if tt.wantRule != "" {
				assertRule(t, err, tt.wantRule)
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if p.String() != tt.want {
				t.Fatalf("expected %s, got %s", tt.want, p.String())
			}
		})
	}
}

func TestNewPriceFromFloat(t *testing.T) {
	p, err := NewPriceFromFloat(4800.005)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if p.String() != "4800.01" {
		t.Fatalf("expected 4800.01, got %s", p.String())
	}

	_, err = NewPriceFromFloat(math.NaN())
	assertRule(t, err, itemdomain.RuleOutOfRange)
}

func TestPrice_EqualAndArithmetic(t *testing.T) {
	a, _ := NewPrice(decimal.RequireFromString("10.00"))
	b, _ := NewPrice(decimal.RequireFromString("10.004"))
	c, _ := NewPrice(decimal.RequireFromString("10.01"))

	if !a.Equal(b) {
		t.Error("expected 10.00 == 10.004 after rounding")
	}
	if a.Equal(c) {
		t.Error("expected 10.00 != 10.01")
	}

	sum, err := a.Add(c)
	if err != nil || sum.String() != "20.01" {
		t.Fatalf("Add: got %s, %v", sum.String(), err)
	}

	product, err := c.Multiply(decimal.NewFromInt(3))
	if err != nil || product.String() != "30.03" {
		t.Fatalf("Multiply: got %s, %v", product.String(), err)
	}
}

func TestNewShippingAddress(t *testing.T) {
	t.Run("trims every part", func(t *testing.T) {
		a, err := NewShippingAddress(" Grand Hotel ", " 1 Main St ", " Acme Warehouse ")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if a.ShipTo() != "Grand Hotel" || a.ShipToAddress() != "1 Main St" || a.ShipFrom() != "Acme Warehouse" {
			t.Fatalf("unexpected address: %+v", a)
		}
		if a.FullAddress() != "Grand Hotel, 1 Main St" {
			t.Fatalf("unexpected full address: %q", a.FullAddress())
		}
	})

	t.Run("optional parts may be empty", func(t *testing.T) {
		a, err := NewShippingAddress("Grand Hotel", "", "")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if a.FullAddress() != "Grand Hotel" {
			t.Fatalf("unexpected full address: %q", a.FullAddress())
		}
	})

	t.Run("shipTo is required", func(t *testing.T) {
		_, err := NewShippingAddress("  ", "1 Main St", "")
		assertRule(t, err, itemdomain.RuleEmpty)
	})
}

func day(d int) time.Time {
	return time.Date(2025, time.March, d, 0, 0, 0, 0, time.UTC)
}

func TestNewTrackingDates(t *testing.T) {
	tests := []struct {
		name    string
		dates   map[TrackingDateField]time.Time
		wantErr bool
	}{
		{"empty", nil, false},
		{"ordered before shipped", map[TrackingDateField]time.Time{OrderedDate: day(1), ShippedDate: day(2)}, false},
		{"same day", map[TrackingDateField]time.Time{OrderedDate: day(1), ShippedDate: day(1), DeliveredDate: day(1)}, false},
		{"shipped before ordered", map[TrackingDateField]time.Time{OrderedDate: day(5), ShippedDate: day(2)}, true},
		{"delivered before shipped", map[TrackingDateField]time.Time{ShippedDate: day(5), DeliveredDate: day(4)}, true},
		{"ordered missing", map[TrackingDateField]time.Time{ShippedDate: day(5), DeliveredDate: day(6)}, false},
		{"shipped missing skips both checks", map[TrackingDateField]time.Time{OrderedDate: day(9), DeliveredDate: day(1)}, false},
		{"planning dates are unconstrained", map[TrackingDateField]time.Time{PoApprovalDate: day(9), HotelNeedByDate: day(1)}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewTrackingDates(tt.dates)
			if tt.wantErr {
				assertRule(t, err, itemdomain.RuleInvalidOrder)
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
		})
	}
}

func TestTrackingDates_Merge(t *testing.T) {
	base, err := NewTrackingDates(map[TrackingDateField]time.Time{OrderedDate: day(1), ShippedDate: day(3)})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	t.Run("keeps untouched fields", func(t *testing.T) {
		merged, err := base.Merge(map[TrackingDateField]time.Time{DeliveredDate: day(4)})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if d, ok := merged.Get(OrderedDate); !ok || !d.Equal(day(1)) {
			t.Fatalf("ordered date lost: %v %v", d, ok)
		}
		if d, ok := merged.Get(DeliveredDate); !ok || !d.Equal(day(4)) {
			t.Fatalf("delivered date not merged: %v %v", d, ok)
		}
	})

	t.Run("revalidates the merged result", func(t *testing.T) {
		_, err := base.Merge(map[TrackingDateField]time.Time{DeliveredDate: day(2)})
		assertRule(t, err, itemdomain.RuleInvalidOrder)
	})

	t.Run("zero time clears", func(t *testing.T) {
		merged, err := base.Merge(map[TrackingDateField]time.Time{ShippedDate: {}})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if merged.Ptr(ShippedDate) != nil {
			t.Fatal("expected shipped date to be cleared")
		}
	})

	t.Run("does not mutate the receiver", func(t *testing.T) {
		_, _ = base.Merge(map[TrackingDateField]time.Time{OrderedDate: day(2)})
		if d, _ := base.Get(OrderedDate); !d.Equal(day(1)) {
			t.Fatal("receiver was mutated")
		}
	})
}

func TestRestoreTrackingDates_SkipsValidation(t *testing.T) {
	td := RestoreTrackingDates(map[TrackingDateField]time.Time{OrderedDate: day(9), ShippedDate: day(1)})
	if _, ok := td.Get(ShippedDate); !ok {
		t.Fatal("expected out-of-order legacy date to be preserved")
	}
	if err := ValidateTrackingDates(td.Map()); err == nil {
		t.Fatal("expected ValidateTrackingDates to flag the legacy order")
	}
}
