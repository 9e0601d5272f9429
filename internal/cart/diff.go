package cart

import (
	"github.com/google/uuid"
	"github.com/nikolayk812/poscart/internal/domain"
)

type ChangeKind int

const (
	ChangeCreate ChangeKind = iota + 1
	ChangeUpdate
	ChangeCancel
)

func (k ChangeKind) String() string {
	switch k {
	case ChangeCreate:
		return "create"
	case ChangeUpdate:
		return "update"
	case ChangeCancel:
		return "cancel"
	}

	return "unknown"
}

// Change is one order item mutation needed to bring the remote order in
// line with the cart. Line is empty for cancels, OrderItem is empty for creates.
type Change struct {
	Kind      ChangeKind
	Line      Line
	OrderItem domain.OrderItem
}

// Diff compares cart lines against the persisted items of order.
// Changes come out as creates, then updates, then cancels.
func Diff(order domain.Order, lines []Line) []Change {
	remote := make(map[uuid.UUID]domain.OrderItem, len(order.Items))
	for _, oi := range order.Items {
		if oi.Active() {
			remote[oi.OrderItemID] = oi
		}
	}

	var creates, updates, cancels []Change
	claimed := make(map[uuid.UUID]struct{}, len(lines))

	for _, l := range lines {
		if !l.Persisted() {
			creates = append(creates, Change{Kind: ChangeCreate, Line: l})
			continue
		}

		oi, ok := remote[*l.OrderItemID]
		if !ok {
			creates = append(creates, Change{Kind: ChangeCreate, Line: l})
			continue
		}
		claimed[oi.OrderItemID] = struct{}{}

		if oi.Quantity != l.Quantity || !domain.DiscountsEqual(oi.Discount, l.Discount) {
			updates = append(updates, Change{Kind: ChangeUpdate, Line: l, OrderItem: oi})
		}
	}

	for _, oi := range order.Items {
		if !oi.Active() {
			continue
		}
		if _, ok := claimed[oi.OrderItemID]; !ok {
			cancels = append(cancels, Change{Kind: ChangeCancel, OrderItem: oi})
		}
	}

	result := make([]Change, 0, len(creates)+len(updates)+len(cancels))
	result = append(result, creates...)
	result = append(result, updates...)
	result = append(result, cancels...)

	return result
}
