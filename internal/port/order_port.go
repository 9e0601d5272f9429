package port

import (
	"context"

	"github.com/google/uuid"
	"github.com/nikolayk812/poscart/internal/domain"
)

type OrderReader interface {
	GetOrder(ctx context.Context, orderID uuid.UUID) (domain.Order, error)
}

// OrderMutator submits order changes. Every call either succeeds with the
// server's representation or fails with an error carrying a readable message.
type OrderMutator interface {
	CreateOrder(ctx context.Context, order domain.NewOrder) (domain.Order, error)
	CreateOrderItem(ctx context.Context, item domain.OrderItemMutation) (domain.OrderItem, error)
	UpdateOrderItem(ctx context.Context, item domain.OrderItemMutation) (domain.OrderItem, error)
	UpdateOrder(ctx context.Context, update domain.OrderUpdate) (domain.Order, error)
	DeleteOrder(ctx context.Context, orderID uuid.UUID) (bool, error)
}

type OrderRepository interface {
	OrderReader
	OrderMutator
}
