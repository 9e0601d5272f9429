// Package breaker guards the remote order mutations with a circuit breaker,
// so a failing order API is not hammered by retried submits.
package breaker

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/nikolayk812/poscart/internal/domain"
	"github.com/nikolayk812/poscart/internal/port"
	"github.com/sony/gobreaker/v2"
	"go.uber.org/zap"
)

type Settings struct {
	Name string
	// ConsecutiveFailures opens the breaker.
	ConsecutiveFailures uint32
	// OpenTimeout is how long the breaker stays open before probing again.
	OpenTimeout time.Duration
	// HalfOpenRequests is the number of trial requests let through while half open.
	HalfOpenRequests uint32
}

func DefaultSettings() Settings {
	return Settings{
		Name:                "order-mutator",
		ConsecutiveFailures: 5,
		OpenTimeout:         30 * time.Second,
		HalfOpenRequests:    1,
	}
}

type OrderMutator struct {
	next port.OrderMutator
	cb   *gobreaker.CircuitBreaker[any]
}

var _ port.OrderMutator = (*OrderMutator)(nil)

func NewOrderMutator(next port.OrderMutator, s Settings, logger *zap.Logger) *OrderMutator {
	if logger == nil {
		logger = zap.NewNop()
	}

	cb := gobreaker.NewCircuitBreaker[any](gobreaker.Settings{
		Name:        s.Name,
		MaxRequests: s.HalfOpenRequests,
		Timeout:     s.OpenTimeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= s.ConsecutiveFailures
		},
		IsSuccessful: isSuccessful,
		OnStateChange: func(name string, from, to gobreaker.State) {
			logger.Warn("circuit breaker state changed",
				zap.String("name", name),
				zap.String("from", from.String()),
				zap.String("to", to.String()))
		},
	})

	return &OrderMutator{next: next, cb: cb}
}

// State is closed, half-open or open.
func (m *OrderMutator) State() gobreaker.State {
	return m.cb.State()
}

func (m *OrderMutator) CreateOrder(ctx context.Context, order domain.NewOrder) (domain.Order, error) {
	return execute(m, func() (domain.Order, error) {
		return m.next.CreateOrder(ctx, order)
	})
}

func (m *OrderMutator) CreateOrderItem(ctx context.Context, item domain.OrderItemMutation) (domain.OrderItem, error) {
	return execute(m, func() (domain.OrderItem, error) {
		return m.next.CreateOrderItem(ctx, item)
	})
}

func (m *OrderMutator) UpdateOrderItem(ctx context.Context, item domain.OrderItemMutation) (domain.OrderItem, error) {
	return execute(m, func() (domain.OrderItem, error) {
		return m.next.UpdateOrderItem(ctx, item)
	})
}

func (m *OrderMutator) UpdateOrder(ctx context.Context, update domain.OrderUpdate) (domain.Order, error) {
	return execute(m, func() (domain.Order, error) {
		return m.next.UpdateOrder(ctx, update)
	})
}

func (m *OrderMutator) DeleteOrder(ctx context.Context, orderID uuid.UUID) (bool, error) {
	return execute(m, func() (bool, error) {
		return m.next.DeleteOrder(ctx, orderID)
	})
}

func execute[T any](m *OrderMutator, fn func() (T, error)) (T, error) {
	var zero T

	v, err := m.cb.Execute(func() (any, error) {
		return fn()
	})
	if err != nil {
		return zero, err
	}

	return v.(T), nil
}

// isSuccessful keeps caller mistakes from counting as an outage.
func isSuccessful(err error) bool {
	return err == nil ||
		domain.IsValidation(err) ||
		errors.Is(err, domain.ErrOrderNotFound) ||
		errors.Is(err, domain.ErrOrderItemNotFound) ||
		errors.Is(err, context.Canceled)
}
