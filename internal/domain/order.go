package domain

import (
	"time"

	"github.com/google/uuid"
	"golang.org/x/text/currency"
)

type OrderStatus string

const (
	OrderStatusOpen      OrderStatus = "open"
	OrderStatusCompleted OrderStatus = "completed"
	OrderStatusCancelled OrderStatus = "cancelled"
)

type OrderItemStatus string

const (
	OrderItemStatusActive    OrderItemStatus = "active"
	OrderItemStatusCancelled OrderItemStatus = "cancelled"
)

// Order is the server's representation of a placed order.
type Order struct {
	OrderID     uuid.UUID
	ServiceType ServiceType
	Status      OrderStatus
	Currency    currency.Unit
	Discount    *Discount
	Items       []OrderItem

	CreatedAt time.Time
	UpdatedAt time.Time
}

type OrderItem struct {
	OrderItemID uuid.UUID
	ItemID      uuid.UUID
	ItemName    string
	Price       Money
	Quantity    int
	Discount    *Discount
	Modifiers   []SelectedModifier
	Status      OrderItemStatus

	CreatedAt time.Time
}

func (oi OrderItem) Active() bool {
	return oi.Status != OrderItemStatusCancelled && oi.Quantity > 0
}

// CatalogItem rebuilds a catalog view of a persisted item whose only price
// is the one it was sold at.
func (oi OrderItem) CatalogItem() CatalogItem {
	return CatalogItem{
		ItemID:    oi.ItemID,
		ItemName:  oi.ItemName,
		BasePrice: oi.Price.Amount,
		Currency:  oi.Price.Currency,
	}
}

// OrderItemMutation is the payload of the create and update order item calls.
// OrderItemID is set only for updates.
type OrderItemMutation struct {
	OrderID     uuid.UUID
	OrderItemID *uuid.UUID
	ItemID      uuid.UUID
	ItemName    string
	Price       Money
	Quantity    int
	Discount    *Discount
	Modifiers   []SelectedModifier
	Status      OrderItemStatus
}

type NewOrder struct {
	ServiceType ServiceType
	Currency    currency.Unit
	Discount    *Discount
	Items       []OrderItemMutation
}

type OrderUpdate struct {
	OrderID     uuid.UUID
	ServiceType ServiceType
	Status      OrderStatus
	Discount    *Discount
}
