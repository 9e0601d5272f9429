package cart

import (
	"context"
	"errors"
	"fmt"
	"sync/atomic"

	"github.com/google/uuid"
	"github.com/nikolayk812/poscart/internal/domain"
	"github.com/nikolayk812/poscart/internal/port"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"golang.org/x/text/currency"
)

var (
	ErrSessionClosed    = errors.New("session is closed")
	ErrSubmitInProgress = errors.New("submit already in progress")
	ErrEmptyCart        = errors.New("cart is empty")
	ErrLineNotFound     = errors.New("line not found in cart")
	ErrNotEditing       = errors.New("session is not editing an order")
)

type State int

const (
	StateEmpty State = iota
	StateComposing
	StateSubmitted
	StateAbandoned
)

func (s State) String() string {
	switch s {
	case StateEmpty:
		return "empty"
	case StateComposing:
		return "composing"
	case StateSubmitted:
		return "submitted"
	case StateAbandoned:
		return "abandoned"
	}

	return "unknown"
}

type Mode int

const (
	ModeCreate Mode = iota
	ModeEdit
)

type SessionOption func(*Session)

func WithLogger(logger *zap.Logger) SessionOption {
	return func(s *Session) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// Session is one order creation or order edit dialog. Local cart changes and
// remote mutations are separate calls; a failed mutation never touches the cart.
type Session struct {
	engine      *Engine
	mutator     port.OrderMutator
	logger      *zap.Logger
	mode        Mode
	serviceType domain.ServiceType

	// order is the last known server state, edit mode only.
	order domain.Order

	closed     bool
	final      State
	submitting atomic.Bool
}

func NewSession(mutator port.OrderMutator, st domain.ServiceType, cur currency.Unit, opts ...SessionOption) *Session {
	s := &Session{
		engine:      NewEngine(cur),
		mutator:     mutator,
		logger:      zap.NewNop(),
		mode:        ModeCreate,
		serviceType: st,
	}
	for _, opt := range opts {
		opt(s)
	}

	return s
}

// OpenEditSession seeds the cart by replaying the active items of order.
func OpenEditSession(order domain.Order, mutator port.OrderMutator, opts ...SessionOption) *Session {
	s := NewSession(mutator, order.ServiceType, order.Currency, opts...)
	s.mode = ModeEdit
	s.order = cloneOrder(order)

	for _, oi := range order.Items {
		if !oi.Active() {
			continue
		}

		s.engine.AddItem(oi.CatalogItem(), order.ServiceType, oi.Modifiers,
			WithOrderItemID(oi.OrderItemID), WithQuantity(oi.Quantity))

		if oi.Discount != nil {
			s.engine.SetLineDiscount(oi.ItemID, oi.Modifiers, *oi.Discount)
		}
	}

	if order.Discount != nil {
		s.engine.SetOrderDiscount(*order.Discount)
	}

	s.logger.Debug("edit session opened",
		zap.String("order_id", order.OrderID.String()),
		zap.Int("lines", s.engine.Len()))

	return s
}

func (s *Session) Engine() *Engine {
	return s.engine
}

func (s *Session) Mode() Mode {
	return s.mode
}

func (s *Session) ServiceType() domain.ServiceType {
	return s.serviceType
}

// Order returns the server state known to an edit session.
func (s *Session) Order() domain.Order {
	return cloneOrder(s.order)
}

func (s *Session) State() State {
	if s.closed {
		return s.final
	}
	if s.engine.IsEmpty() {
		return StateEmpty
	}

	return StateComposing
}

// Add validates the modifier selection against the catalog before touching the cart.
func (s *Session) Add(item domain.CatalogItem, modifiers []domain.SelectedModifier, quantity int) (Line, error) {
	if s.closed {
		return Line{}, ErrSessionClosed
	}

	if item.Currency != s.engine.Currency() {
		return Line{}, fmt.Errorf("item[%s] currency[%s]: %w", item.ItemName, item.Currency, domain.ErrCurrencyMismatch)
	}

	if err := item.ValidateSelection(modifiers); err != nil {
		return Line{}, fmt.Errorf("item[%s]: %w", item.ItemName, err)
	}

	canonical := make([]domain.SelectedModifier, 0, len(modifiers))
	for _, m := range modifiers {
		sel, err := item.Select(m.ModifierID, m.OptionID)
		if err != nil {
			return Line{}, fmt.Errorf("item[%s]: %w", item.ItemName, err)
		}
		canonical = append(canonical, sel)
	}

	return s.engine.AddItem(item, s.serviceType, canonical, WithQuantity(quantity)), nil
}

func (s *Session) Increase(itemID uuid.UUID, modifiers []domain.SelectedModifier) (Line, error) {
	return s.lineOp(itemID, modifiers, s.engine.IncreaseQuantity)
}

func (s *Session) Decrease(itemID uuid.UUID, modifiers []domain.SelectedModifier) (Line, error) {
	return s.lineOp(itemID, modifiers, s.engine.DecreaseQuantity)
}

func (s *Session) Remove(itemID uuid.UUID, modifiers []domain.SelectedModifier) (Line, error) {
	return s.lineOp(itemID, modifiers, s.engine.RemoveLine)
}

func (s *Session) lineOp(itemID uuid.UUID, modifiers []domain.SelectedModifier, op func(uuid.UUID, []domain.SelectedModifier) (Line, bool)) (Line, error) {
	if s.closed {
		return Line{}, ErrSessionClosed
	}

	l, ok := op(itemID, modifiers)
	if !ok {
		return Line{}, ErrLineNotFound
	}

	return l, nil
}

func (s *Session) SetLineDiscount(itemID uuid.UUID, modifiers []domain.SelectedModifier, dt domain.DiscountType, value decimal.Decimal) (Line, error) {
	if s.closed {
		return Line{}, ErrSessionClosed
	}

	if _, err := domain.ParseDiscountType(string(dt)); err != nil {
		return Line{}, err
	}

	l, ok := s.engine.SetLineDiscount(itemID, modifiers, domain.Discount{Type: dt, Value: value})
	if !ok {
		return Line{}, ErrLineNotFound
	}

	return l, nil
}

func (s *Session) SetOrderDiscount(dt domain.DiscountType, value decimal.Decimal) (domain.Discount, error) {
	if s.closed {
		return domain.Discount{}, ErrSessionClosed
	}

	if _, err := domain.ParseDiscountType(string(dt)); err != nil {
		return domain.Discount{}, err
	}

	return s.engine.SetOrderDiscount(domain.Discount{Type: dt, Value: value}), nil
}

// ChangeServiceType switches the pricing tier. Lines that would be priced
// differently invalidate the whole cart, which is then cleared.
func (s *Session) ChangeServiceType(st domain.ServiceType) (bool, error) {
	if s.closed {
		return false, ErrSessionClosed
	}

	cleared := s.engine.Invalidates(st)
	if cleared {
		s.engine.Clear()
	}

	s.logger.Debug("service type changed",
		zap.String("from", string(s.serviceType)),
		zap.String("to", string(st)),
		zap.Bool("cleared", cleared))

	s.serviceType = st

	return cleared, nil
}

// SyncLine pushes one local line change of an edit session to the server.
// The cart's current state of the line decides the call, so a stale copy of
// a line that was synced meanwhile becomes an update instead of a second create.
func (s *Session) SyncLine(ctx context.Context, line Line) (domain.OrderItem, error) {
	if s.closed {
		return domain.OrderItem{}, ErrSessionClosed
	}
	if s.mode != ModeEdit {
		return domain.OrderItem{}, ErrNotEditing
	}

	current := s.currentLine(line)
	if !current.Persisted() && current.Quantity == 0 {
		// never reached the server
		return domain.OrderItem{}, nil
	}

	kind := ChangeCreate
	if current.Persisted() {
		kind = ChangeUpdate
	}

	oi, err := s.apply(ctx, Change{Kind: kind, Line: current})
	if err != nil {
		s.logger.Warn("sync line failed",
			zap.String("order_id", s.order.OrderID.String()),
			zap.String("item_id", line.ItemID.String()),
			zap.Error(err))
		return domain.OrderItem{}, fmt.Errorf("sync line[%s]: %w", line.ItemName, err)
	}

	return oi, nil
}

// currentLine resolves line against the cart. A line no longer in the cart
// syncs with quantity 0 against whichever active order item still mirrors it.
func (s *Session) currentLine(line Line) Line {
	if l := s.engine.find(line.ItemID, line.Modifiers); l != nil {
		return l.clone()
	}

	gone := line.clone()
	gone.Quantity = 0
	if gone.Persisted() {
		return gone
	}

	for _, oi := range s.order.Items {
		if oi.Active() && oi.ItemID == line.ItemID && domain.ModifiersEqual(oi.Modifiers, line.Modifiers) {
			id := oi.OrderItemID
			gone.OrderItemID = &id
			break
		}
	}

	return gone
}

// Submit places the composed order, or saves the edited one. The cart is
// cleared only on success so a failed submit can be retried as is.
func (s *Session) Submit(ctx context.Context) (domain.Order, error) {
	if s.closed {
		return domain.Order{}, ErrSessionClosed
	}
	if !s.submitting.CompareAndSwap(false, true) {
		return domain.Order{}, ErrSubmitInProgress
	}
	defer s.submitting.Store(false)

	var (
		order domain.Order
		err   error
	)
	switch s.mode {
	case ModeEdit:
		order, err = s.submitEdit(ctx)
	default:
		order, err = s.submitNew(ctx)
	}
	if err != nil {
		s.logger.Warn("submit failed", zap.Error(err), zap.Int("lines", s.engine.Len()))
		return domain.Order{}, err
	}

	s.logger.Info("order submitted",
		zap.String("order_id", order.OrderID.String()),
		zap.Int("lines", s.engine.Len()),
		zap.String("total", s.engine.DiscountedTotal().Display()))

	s.engine.Clear()
	s.close(StateSubmitted)

	return order, nil
}

// Cancel abandons the session and drops the cart.
func (s *Session) Cancel() {
	if s.closed {
		return
	}

	s.engine.Clear()
	s.close(StateAbandoned)
}

func (s *Session) close(final State) {
	s.closed = true
	s.final = final
}

func (s *Session) submitNew(ctx context.Context) (domain.Order, error) {
	if s.engine.IsEmpty() {
		return domain.Order{}, ErrEmptyCart
	}

	lines := s.engine.Lines()
	items := make([]domain.OrderItemMutation, 0, len(lines))
	for _, l := range lines {
		items = append(items, lineMutation(uuid.Nil, l))
	}

	order, err := s.mutator.CreateOrder(ctx, domain.NewOrder{
		ServiceType: s.serviceType,
		Currency:    s.engine.Currency(),
		Discount:    s.engine.OrderDiscount(),
		Items:       items,
	})
	if err != nil {
		return domain.Order{}, fmt.Errorf("mutator.CreateOrder: %w", err)
	}

	return order, nil
}

func (s *Session) submitEdit(ctx context.Context) (domain.Order, error) {
	for _, c := range Diff(s.order, s.engine.Lines()) {
		if _, err := s.apply(ctx, c); err != nil {
			return domain.Order{}, fmt.Errorf("apply %s: %w", c.Kind, err)
		}
	}

	status := s.order.Status
	if status == "" {
		status = domain.OrderStatusOpen
	}

	order, err := s.mutator.UpdateOrder(ctx, domain.OrderUpdate{
		OrderID:     s.order.OrderID,
		ServiceType: s.serviceType,
		Status:      status,
		Discount:    s.engine.OrderDiscount(),
	})
	if err != nil {
		return domain.Order{}, fmt.Errorf("mutator.UpdateOrder: %w", err)
	}

	return order, nil
}

// apply issues the mutation for c and records the result on the order snapshot,
// so that a retried submit skips what already went through.
func (s *Session) apply(ctx context.Context, c Change) (domain.OrderItem, error) {
	var (
		oi  domain.OrderItem
		err error
	)

	switch c.Kind {
	case ChangeCreate:
		oi, err = s.mutator.CreateOrderItem(ctx, lineMutation(s.order.OrderID, c.Line))
		if err != nil {
			return domain.OrderItem{}, fmt.Errorf("mutator.CreateOrderItem: %w", err)
		}
		s.engine.AttachOrderItemID(c.Line.ItemID, c.Line.Modifiers, oi.OrderItemID)

	case ChangeUpdate:
		m := lineMutation(s.order.OrderID, c.Line)
		m.OrderItemID = c.Line.OrderItemID
		if c.Line.Quantity == 0 {
			m.Status = domain.OrderItemStatusCancelled
		}
		oi, err = s.mutator.UpdateOrderItem(ctx, m)
		if err != nil {
			return domain.OrderItem{}, fmt.Errorf("mutator.UpdateOrderItem: %w", err)
		}

	case ChangeCancel:
		oi, err = s.mutator.UpdateOrderItem(ctx, cancelMutation(s.order.OrderID, c.OrderItem))
		if err != nil {
			return domain.OrderItem{}, fmt.Errorf("mutator.UpdateOrderItem: %w", err)
		}

	default:
		return domain.OrderItem{}, fmt.Errorf("unknown change kind[%d]", c.Kind)
	}

	s.recordItem(oi)

	return oi, nil
}

func (s *Session) recordItem(oi domain.OrderItem) {
	for i := range s.order.Items {
		if s.order.Items[i].OrderItemID == oi.OrderItemID {
			s.order.Items[i] = oi
			return
		}
	}

	s.order.Items = append(s.order.Items, oi)
}

func lineMutation(orderID uuid.UUID, l Line) domain.OrderItemMutation {
	return domain.OrderItemMutation{
		OrderID:   orderID,
		ItemID:    l.ItemID,
		ItemName:  l.ItemName,
		Price:     l.UnitPrice,
		Quantity:  l.Quantity,
		Discount:  l.Discount,
		Modifiers: domain.CloneModifiers(l.Modifiers),
		Status:    domain.OrderItemStatusActive,
	}
}

func cancelMutation(orderID uuid.UUID, oi domain.OrderItem) domain.OrderItemMutation {
	id := oi.OrderItemID

	return domain.OrderItemMutation{
		OrderID:     orderID,
		OrderItemID: &id,
		ItemID:      oi.ItemID,
		ItemName:    oi.ItemName,
		Price:       oi.Price,
		Quantity:    0,
		Discount:    oi.Discount,
		Modifiers:   domain.CloneModifiers(oi.Modifiers),
		Status:      domain.OrderItemStatusCancelled,
	}
}

func cloneOrder(o domain.Order) domain.Order {
	c := o
	c.Items = make([]domain.OrderItem, len(o.Items))
	copy(c.Items, o.Items)

	return c
}
