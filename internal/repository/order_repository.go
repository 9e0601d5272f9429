package repository

import (
	"context"
	"errors"
	"fmt"
	"math"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/nikolayk812/poscart/internal/db"
	"github.com/nikolayk812/poscart/internal/domain"
	"github.com/nikolayk812/poscart/internal/port"
)

type orderRepository struct {
	q    *db.Queries
	pool *pgxpool.Pool
}

func NewOrder(pool *pgxpool.Pool) port.OrderRepository {
	return &orderRepository{
		q:    db.New(pool),
		pool: pool,
	}
}

func NewOrderWithTx(tx pgx.Tx) port.OrderRepository {
	return &orderRepository{
		q:    db.New(tx),
		pool: nil, // use provided transaction instead
	}
}

func (r *orderRepository) GetOrder(ctx context.Context, orderID uuid.UUID) (domain.Order, error) {
	if orderID == uuid.Nil {
		return domain.Order{}, invalidInput("orderID is empty")
	}

	return withTx(ctx, r.pool, r.q, func(q *db.Queries) (domain.Order, error) {
		return loadOrder(ctx, q, orderID)
	})
}

func (r *orderRepository) CreateOrder(ctx context.Context, order domain.NewOrder) (domain.Order, error) {
	if _, err := domain.ParseServiceType(string(order.ServiceType)); err != nil {
		return domain.Order{}, err
	}
	if len(order.Items) == 0 {
		return domain.Order{}, invalidInput("order has no items")
	}
	for _, item := range order.Items {
		if err := validateNewItem(item); err != nil {
			return domain.Order{}, err
		}
	}

	discount, discountType := discountToDB(order.Discount)

	return withTx(ctx, r.pool, r.q, func(q *db.Queries) (domain.Order, error) {
		orderRow, err := q.InsertOrder(ctx, db.InsertOrderParams{
			OrderID:       uuid.New(),
			ServiceType:   string(order.ServiceType),
			Status:        string(domain.OrderStatusOpen),
			PriceCurrency: order.Currency.String(),
			Discount:      discount,
			DiscountType:  discountType,
		})
		if err != nil {
			return domain.Order{}, fmt.Errorf("q.InsertOrder: %w", err)
		}

		itemRows := make([]db.OrderItem, 0, len(order.Items))
		for _, item := range order.Items {
			item.OrderID = orderRow.OrderID

			itemRow, err := insertOrderItem(ctx, q, item)
			if err != nil {
				return domain.Order{}, err
			}
			itemRows = append(itemRows, itemRow)
		}

		return mapOrderRowToDomain(orderRow, itemRows)
	})
}

func (r *orderRepository) CreateOrderItem(ctx context.Context, item domain.OrderItemMutation) (domain.OrderItem, error) {
	if item.OrderID == uuid.Nil {
		return domain.OrderItem{}, invalidInput("orderID is empty")
	}
	if err := validateNewItem(item); err != nil {
		return domain.OrderItem{}, err
	}

	return withTx(ctx, r.pool, r.q, func(q *db.Queries) (domain.OrderItem, error) {
		if err := requireOpenOrder(ctx, q, item.OrderID); err != nil {
			return domain.OrderItem{}, err
		}

		itemRow, err := insertOrderItem(ctx, q, item)
		if err != nil {
			return domain.OrderItem{}, err
		}

		return mapOrderItemRowToDomain(itemRow)
	})
}

func (r *orderRepository) UpdateOrderItem(ctx context.Context, item domain.OrderItemMutation) (domain.OrderItem, error) {
	if item.OrderID == uuid.Nil {
		return domain.OrderItem{}, invalidInput("orderID is empty")
	}
	if item.OrderItemID == nil || *item.OrderItemID == uuid.Nil {
		return domain.OrderItem{}, invalidInput("orderItemID is empty")
	}
	if item.Quantity < 0 {
		return domain.OrderItem{}, invalidInput("quantity is negative")
	}
	if item.Quantity > math.MaxInt32 {
		return domain.OrderItem{}, invalidInput("quantity is too large")
	}

	status := item.Status
	if status == "" {
		status = domain.OrderItemStatusActive
	}
	if item.Quantity == 0 {
		status = domain.OrderItemStatusCancelled
	}

	mods, err := modifiersToDB(item.Modifiers)
	if err != nil {
		return domain.OrderItem{}, err
	}
	discount, discountType := discountToDB(item.Discount)

	return withTx(ctx, r.pool, r.q, func(q *db.Queries) (domain.OrderItem, error) {
		if err := requireOpenOrder(ctx, q, item.OrderID); err != nil {
			return domain.OrderItem{}, err
		}

		row, err := q.UpdateOrderItem(ctx, db.UpdateOrderItemParams{
			OrderItemID:  *item.OrderItemID,
			OrderID:      item.OrderID,
			PriceAmount:  item.Price.Amount,
			Quantity:     int32(item.Quantity),
			Discount:     discount,
			DiscountType: discountType,
			ModifierList: mods,
			Status:       string(status),
		})
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.OrderItem{}, fmt.Errorf("order item[%s]: %w", *item.OrderItemID, domain.ErrOrderItemNotFound)
		}
		if err != nil {
			return domain.OrderItem{}, fmt.Errorf("q.UpdateOrderItem: %w", err)
		}

		return mapOrderItemRowToDomain(row)
	})
}

func (r *orderRepository) UpdateOrder(ctx context.Context, update domain.OrderUpdate) (domain.Order, error) {
	if update.OrderID == uuid.Nil {
		return domain.Order{}, invalidInput("orderID is empty")
	}
	if _, err := domain.ParseServiceType(string(update.ServiceType)); err != nil {
		return domain.Order{}, err
	}

	status := update.Status
	if status == "" {
		status = domain.OrderStatusOpen
	}
	discount, discountType := discountToDB(update.Discount)

	return withTx(ctx, r.pool, r.q, func(q *db.Queries) (domain.Order, error) {
		_, err := q.UpdateOrder(ctx, db.UpdateOrderParams{
			OrderID:      update.OrderID,
			ServiceType:  string(update.ServiceType),
			Status:       string(status),
			Discount:     discount,
			DiscountType: discountType,
		})
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.Order{}, fmt.Errorf("order[%s]: %w", update.OrderID, domain.ErrOrderNotFound)
		}
		if err != nil {
			return domain.Order{}, fmt.Errorf("q.UpdateOrder: %w", err)
		}

		return loadOrder(ctx, q, update.OrderID)
	})
}

func (r *orderRepository) DeleteOrder(ctx context.Context, orderID uuid.UUID) (bool, error) {
	if orderID == uuid.Nil {
		return false, invalidInput("orderID is empty")
	}

	rowsAffected, err := r.q.DeleteOrder(ctx, orderID)
	if err != nil {
		return false, fmt.Errorf("q.DeleteOrder: %w", err)
	}

	return rowsAffected > 0, nil
}

func loadOrder(ctx context.Context, q *db.Queries, orderID uuid.UUID) (domain.Order, error) {
	orderRow, err := q.GetOrder(ctx, orderID)
	if errors.Is(err, pgx.ErrNoRows) {
		return domain.Order{}, fmt.Errorf("order[%s]: %w", orderID, domain.ErrOrderNotFound)
	}
	if err != nil {
		return domain.Order{}, fmt.Errorf("q.GetOrder: %w", err)
	}

	itemRows, err := q.ListOrderItems(ctx, orderID)
	if err != nil {
		return domain.Order{}, fmt.Errorf("q.ListOrderItems: %w", err)
	}

	order, err := mapOrderRowToDomain(orderRow, itemRows)
	if err != nil {
		return domain.Order{}, fmt.Errorf("mapOrderRowToDomain: %w", err)
	}

	return order, nil
}

// requireOpenOrder rejects item changes on completed or cancelled orders.
func requireOpenOrder(ctx context.Context, q *db.Queries, orderID uuid.UUID) error {
	orderRow, err := q.GetOrder(ctx, orderID)
	if errors.Is(err, pgx.ErrNoRows) {
		return fmt.Errorf("order[%s]: %w", orderID, domain.ErrOrderNotFound)
	}
	if err != nil {
		return fmt.Errorf("q.GetOrder: %w", err)
	}
	if orderRow.Status != string(domain.OrderStatusOpen) {
		return fmt.Errorf("order[%s] is %s: %w", orderID, orderRow.Status, domain.ErrOrderNotOpen)
	}

	return nil
}

func insertOrderItem(ctx context.Context, q *db.Queries, item domain.OrderItemMutation) (db.OrderItem, error) {
	mods, err := modifiersToDB(item.Modifiers)
	if err != nil {
		return db.OrderItem{}, err
	}
	discount, discountType := discountToDB(item.Discount)

	row, err := q.InsertOrderItem(ctx, db.InsertOrderItemParams{
		OrderItemID:   uuid.New(),
		OrderID:       item.OrderID,
		ItemID:        item.ItemID,
		ItemName:      item.ItemName,
		PriceAmount:   item.Price.Amount,
		PriceCurrency: item.Price.Currency.String(),
		Quantity:      int32(item.Quantity),
		Discount:      discount,
		DiscountType:  discountType,
		ModifierList:  mods,
		Status:        string(domain.OrderItemStatusActive),
	})
	if err != nil {
		return db.OrderItem{}, fmt.Errorf("q.InsertOrderItem: %w", err)
	}

	return row, nil
}

func validateNewItem(item domain.OrderItemMutation) error {
	if item.ItemID == uuid.Nil {
		return invalidInput("itemID is empty")
	}
	if item.Quantity < 1 {
		return invalidInput("quantity must be positive")
	}
	if item.Quantity > math.MaxInt32 {
		return invalidInput("quantity is too large")
	}
	if item.Price.Amount.IsNegative() {
		return invalidInput("price is negative")
	}

	return nil
}

func invalidInput(msg string) error {
	return fmt.Errorf("%s: %w", msg, domain.ErrValidation)
}
