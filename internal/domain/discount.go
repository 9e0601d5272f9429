package domain

import (
	"fmt"

	"github.com/shopspring/decimal"
)

type DiscountType string

const (
	DiscountTypeFlat    DiscountType = "flat"
	DiscountTypePercent DiscountType = "percent"
)

var hundred = decimal.NewFromInt(100)

func ParseDiscountType(s string) (DiscountType, error) {
	switch dt := DiscountType(s); dt {
	case DiscountTypeFlat, DiscountTypePercent:
		return dt, nil
	}

	return "", fmt.Errorf("discount type[%s]: %w", s, ErrInvalidDiscountType)
}

// Discount is attached either to a single line or to the whole order.
type Discount struct {
	Type  DiscountType
	Value decimal.Decimal
}

// Clamp bounds the value to what can legally be applied against base:
// percent to [0, 100], flat to [0, base]. Out of range input is never rejected.
func (d Discount) Clamp(base decimal.Decimal) Discount {
	if d.Value.IsNegative() {
		d.Value = decimal.Zero
	}

	switch d.Type {
	case DiscountTypePercent:
		if d.Value.GreaterThan(hundred) {
			d.Value = hundred
		}
	case DiscountTypeFlat:
		if base.IsNegative() {
			base = decimal.Zero
		}
		if d.Value.GreaterThan(base) {
			d.Value = base
		}
	}

	return d
}

// Amount is the money taken off base. It never exceeds base.
func (d Discount) Amount(base decimal.Decimal) decimal.Decimal {
	d = d.Clamp(base)

	switch d.Type {
	case DiscountTypePercent:
		return base.Mul(d.Value).Div(hundred)
	case DiscountTypeFlat:
		return d.Value
	}

	return decimal.Zero
}

func (d Discount) IsZero() bool {
	return d.Value.IsZero()
}

func (d Discount) Equal(other Discount) bool {
	return d.Type == other.Type && d.Value.Equal(other.Value)
}

// DiscountsEqual treats nil and a zero discount as the same thing.
func DiscountsEqual(a, b *Discount) bool {
	za := a == nil || a.IsZero()
	zb := b == nil || b.IsZero()
	if za || zb {
		return za == zb
	}

	return a.Equal(*b)
}
