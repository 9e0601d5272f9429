// Package cart keeps the lines of an order being composed or edited and
// drives the remote order mutations that follow local changes.
package cart

import (
	"github.com/google/uuid"
	"github.com/nikolayk812/poscart/internal/domain"
	"github.com/shopspring/decimal"
	"golang.org/x/text/currency"
)

// Engine owns the lines of one composition session. It does no I/O and is
// not safe for concurrent use; each session owns its own instance.
type Engine struct {
	currency      currency.Unit
	lines         []*Line
	orderDiscount *domain.Discount
}

func NewEngine(cur currency.Unit) *Engine {
	return &Engine{currency: cur}
}

type addOptions struct {
	orderItemID *uuid.UUID
	quantity    int
}

type AddOption func(*addOptions)

// WithOrderItemID marks the added quantity as belonging to a persisted order item.
func WithOrderItemID(id uuid.UUID) AddOption {
	return func(o *addOptions) {
		o.orderItemID = &id
	}
}

func WithQuantity(n int) AddOption {
	return func(o *addOptions) {
		o.quantity = n
	}
}

// AddItem merges into the line with the same item and modifier set, or
// appends a new one priced for the given service type.
func (e *Engine) AddItem(item domain.CatalogItem, st domain.ServiceType, modifiers []domain.SelectedModifier, opts ...AddOption) Line {
	o := addOptions{quantity: 1}
	for _, opt := range opts {
		opt(&o)
	}
	if o.quantity < 1 {
		o.quantity = 1
	}

	if l := e.find(item.ItemID, modifiers); l != nil {
		l.Quantity += o.quantity
		if l.OrderItemID == nil && o.orderItemID != nil {
			l.OrderItemID = o.orderItemID
		}
		return l.clone()
	}

	l := &Line{
		ItemID:      item.ItemID,
		ItemName:    item.ItemName,
		Quantity:    o.quantity,
		Modifiers:   domain.CloneModifiers(modifiers),
		UnitPrice:   item.PriceFor(st),
		OrderItemID: o.orderItemID,
		source:      item,
	}
	e.lines = append(e.lines, l)

	return l.clone()
}

// IncreaseQuantity only operates on an existing line.
func (e *Engine) IncreaseQuantity(itemID uuid.UUID, modifiers []domain.SelectedModifier) (Line, bool) {
	l := e.find(itemID, modifiers)
	if l == nil {
		return Line{}, false
	}

	l.Quantity++

	return l.clone(), true
}

// DecreaseQuantity removes the line when its quantity reaches zero. The
// returned copy then carries quantity 0.
func (e *Engine) DecreaseQuantity(itemID uuid.UUID, modifiers []domain.SelectedModifier) (Line, bool) {
	i := e.index(itemID, modifiers)
	if i < 0 {
		return Line{}, false
	}

	l := e.lines[i]
	l.Quantity--
	if l.Quantity <= 0 {
		l.Quantity = 0
		e.removeAt(i)
	}

	return l.clone(), true
}

func (e *Engine) RemoveLine(itemID uuid.UUID, modifiers []domain.SelectedModifier) (Line, bool) {
	i := e.index(itemID, modifiers)
	if i < 0 {
		return Line{}, false
	}

	l := e.lines[i]
	e.removeAt(i)
	l.Quantity = 0

	return l.clone(), true
}

// CountItemInCart sums quantities over every modifier variant of the item.
func (e *Engine) CountItemInCart(itemID uuid.UUID) int {
	count := 0
	for _, l := range e.lines {
		if l.ItemID == itemID {
			count += l.Quantity
		}
	}

	return count
}

func (e *Engine) IsItemInCart(itemID uuid.UUID) bool {
	for _, l := range e.lines {
		if l.ItemID == itemID && l.Quantity > 0 {
			return true
		}
	}

	return false
}

// CalculateTotalPrice is the undiscounted sum of all lines. It is not
// rounded; use Money.Display for presentation.
func (e *Engine) CalculateTotalPrice() domain.Money {
	total := decimal.Zero
	for _, l := range e.lines {
		total = total.Add(l.Subtotal())
	}

	return domain.NewMoney(total, e.currency)
}

func (e *Engine) linesTotal() decimal.Decimal {
	total := decimal.Zero
	for _, l := range e.lines {
		total = total.Add(l.Total())
	}

	return total
}

// DiscountedTotal applies line discounts, then the order discount.
func (e *Engine) DiscountedTotal() domain.Money {
	total := e.linesTotal()
	if e.orderDiscount != nil {
		total = total.Sub(e.orderDiscount.Amount(total))
	}

	return domain.NewMoney(total, e.currency)
}

// SetLineDiscount stores d clamped against the line subtotal.
func (e *Engine) SetLineDiscount(itemID uuid.UUID, modifiers []domain.SelectedModifier, d domain.Discount) (Line, bool) {
	l := e.find(itemID, modifiers)
	if l == nil {
		return Line{}, false
	}

	clamped := d.Clamp(l.Subtotal())
	l.Discount = &clamped

	return l.clone(), true
}

// SetOrderDiscount stores d clamped against the line totals and returns the stored value.
func (e *Engine) SetOrderDiscount(d domain.Discount) domain.Discount {
	clamped := d.Clamp(e.linesTotal())
	e.orderDiscount = &clamped

	return clamped
}

func (e *Engine) OrderDiscount() *domain.Discount {
	if e.orderDiscount == nil {
		return nil
	}

	d := *e.orderDiscount
	return &d
}

// AttachOrderItemID records the id the server assigned to a newly created line.
func (e *Engine) AttachOrderItemID(itemID uuid.UUID, modifiers []domain.SelectedModifier, orderItemID uuid.UUID) bool {
	l := e.find(itemID, modifiers)
	if l == nil {
		return false
	}

	l.OrderItemID = &orderItemID

	return true
}

// Invalidates reports whether switching to st would reprice any line.
func (e *Engine) Invalidates(st domain.ServiceType) bool {
	for _, l := range e.lines {
		if !l.source.PriceFor(st).Amount.Equal(l.UnitPrice.Amount) {
			return true
		}
	}

	return false
}

func (e *Engine) Lines() []Line {
	result := make([]Line, 0, len(e.lines))
	for _, l := range e.lines {
		result = append(result, l.clone())
	}

	return result
}

func (e *Engine) Len() int {
	return len(e.lines)
}

func (e *Engine) IsEmpty() bool {
	return len(e.lines) == 0
}

func (e *Engine) Currency() currency.Unit {
	return e.currency
}

func (e *Engine) Clear() {
	e.lines = nil
	e.orderDiscount = nil
}

func (e *Engine) find(itemID uuid.UUID, modifiers []domain.SelectedModifier) *Line {
	if i := e.index(itemID, modifiers); i >= 0 {
		return e.lines[i]
	}

	return nil
}

func (e *Engine) index(itemID uuid.UUID, modifiers []domain.SelectedModifier) int {
	for i, l := range e.lines {
		if l.Matches(itemID, modifiers) {
			return i
		}
	}

	return -1
}

func (e *Engine) removeAt(i int) {
	e.lines = append(e.lines[:i], e.lines[i+1:]...)
}
