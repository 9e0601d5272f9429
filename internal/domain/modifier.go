package domain

import (
	"bytes"
	"slices"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// SelectedModifier is one chosen option of a modifier, as stored on a cart
// line and on a persisted order item.
type SelectedModifier struct {
	ModifierID   uuid.UUID       `json:"modifier_id"`
	ModifierName string          `json:"modifier_name"`
	OptionID     uuid.UUID       `json:"modifier_option_id"`
	OptionName   string          `json:"modifier_option_name"`
	OptionPrice  decimal.Decimal `json:"modifier_option_price"`
}

// ModifiersEqual compares two selections as sets. Prices are compared
// numerically, so "2" and "2.00" are the same option price.
func ModifiersEqual(a, b []SelectedModifier) bool {
	if len(a) != len(b) {
		return false
	}

	sa, sb := sortedModifiers(a), sortedModifiers(b)
	for i := range sa {
		x, y := sa[i], sb[i]
		if x.ModifierID != y.ModifierID ||
			x.ModifierName != y.ModifierName ||
			x.OptionID != y.OptionID ||
			x.OptionName != y.OptionName ||
			!x.OptionPrice.Equal(y.OptionPrice) {
			return false
		}
	}

	return true
}

func ModifiersTotal(mods []SelectedModifier) decimal.Decimal {
	total := decimal.Zero
	for _, m := range mods {
		total = total.Add(m.OptionPrice)
	}

	return total
}

func CloneModifiers(mods []SelectedModifier) []SelectedModifier {
	if len(mods) == 0 {
		return nil
	}

	return slices.Clone(mods)
}

func sortedModifiers(mods []SelectedModifier) []SelectedModifier {
	sorted := slices.Clone(mods)
	slices.SortFunc(sorted, func(x, y SelectedModifier) int {
		if c := bytes.Compare(x.ModifierID[:], y.ModifierID[:]); c != 0 {
			return c
		}
		return bytes.Compare(x.OptionID[:], y.OptionID[:])
	})

	return sorted
}
