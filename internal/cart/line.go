package cart

import (
	"github.com/google/uuid"
	"github.com/nikolayk812/poscart/internal/domain"
	"github.com/shopspring/decimal"
)

// Line is one distinct entry of the cart, identified by item and modifier selection.
type Line struct {
	ItemID    uuid.UUID
	ItemName  string
	Quantity  int
	Modifiers []domain.SelectedModifier
	UnitPrice domain.Money

	// OrderItemID is set only when the line mirrors an already persisted order item.
	OrderItemID *uuid.UUID
	Discount    *domain.Discount

	source domain.CatalogItem
}

func (l Line) Persisted() bool {
	return l.OrderItemID != nil
}

// Matches reports whether the line has the identity (itemID, modifiers).
func (l Line) Matches(itemID uuid.UUID, modifiers []domain.SelectedModifier) bool {
	return l.ItemID == itemID && domain.ModifiersEqual(l.Modifiers, modifiers)
}

// EachPrice is the price of a single unit including selected options.
func (l Line) EachPrice() decimal.Decimal {
	return l.UnitPrice.Amount.Add(domain.ModifiersTotal(l.Modifiers))
}

func (l Line) Subtotal() decimal.Decimal {
	return l.EachPrice().Mul(decimal.NewFromInt(int64(l.Quantity)))
}

func (l Line) DiscountAmount() decimal.Decimal {
	if l.Discount == nil {
		return decimal.Zero
	}

	return l.Discount.Amount(l.Subtotal())
}

func (l Line) Total() decimal.Decimal {
	return l.Subtotal().Sub(l.DiscountAmount())
}

func (l Line) clone() Line {
	c := l
	c.Modifiers = domain.CloneModifiers(l.Modifiers)
	if l.OrderItemID != nil {
		id := *l.OrderItemID
		c.OrderItemID = &id
	}
	if l.Discount != nil {
		d := *l.Discount
		c.Discount = &d
	}

	return c
}
