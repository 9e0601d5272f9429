package cart_test

import (
	"context"
	"errors"
	"testing"

	"github.com/brianvoe/gofakeit/v7"
	"github.com/google/uuid"
	"github.com/nikolayk812/poscart/internal/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/currency"
)

func burgerItem() domain.CatalogItem {
	return domain.CatalogItem{
		ItemID:    uuid.New(),
		ItemName:  "Burger",
		BasePrice: decimal.NewFromInt(10),
		Currency:  currency.USD,
		TierPrices: map[domain.ServiceType]decimal.Decimal{
			domain.ServiceTypeDelivery: decimal.RequireFromString("11.50"),
		},
	}
}

func pizzaItem() domain.CatalogItem {
	return domain.CatalogItem{
		ItemID:    uuid.New(),
		ItemName:  "Pizza",
		BasePrice: decimal.NewFromInt(12),
		Currency:  currency.USD,
		Modifiers: []domain.Modifier{
			{
				ModifierID:   uuid.New(),
				ModifierName: "Size",
				Options: []domain.ModifierOption{
					{OptionID: uuid.New(), OptionName: "Small", Price: decimal.Zero, IsDefault: true},
					{OptionID: uuid.New(), OptionName: "Large", Price: decimal.NewFromInt(2)},
				},
			},
		},
	}
}

// option selects the named option of the named modifier.
func option(t *testing.T, item domain.CatalogItem, modifierName, optionName string) domain.SelectedModifier {
	t.Helper()

	for _, m := range item.Modifiers {
		if m.ModifierName != modifierName {
			continue
		}
		for _, o := range m.Options {
			if o.OptionName == optionName {
				sel, err := item.Select(m.ModifierID, o.OptionID)
				require.NoError(t, err)
				return sel
			}
		}
	}

	t.Fatalf("no option %s/%s on %s", modifierName, optionName, item.ItemName)
	return domain.SelectedModifier{}
}

func mods(m ...domain.SelectedModifier) []domain.SelectedModifier {
	return m
}

func randomCatalogItem() domain.CatalogItem {
	item := domain.CatalogItem{
		ItemID:    uuid.New(),
		ItemName:  gofakeit.Dessert(),
		BasePrice: decimal.NewFromFloat(gofakeit.Price(1, 50)),
		Currency:  currency.USD,
	}

	for range gofakeit.IntRange(0, 3) {
		m := domain.Modifier{ModifierID: uuid.New(), ModifierName: gofakeit.Noun()}
		for range gofakeit.IntRange(1, 3) {
			m.Options = append(m.Options, domain.ModifierOption{
				OptionID:   uuid.New(),
				OptionName: gofakeit.Adjective(),
				Price:      decimal.NewFromFloat(gofakeit.Price(0, 5)),
			})
		}
		item.Modifiers = append(item.Modifiers, m)
	}

	return item
}

func randomSelection(item domain.CatalogItem) []domain.SelectedModifier {
	var result []domain.SelectedModifier
	for _, m := range item.Modifiers {
		o := m.Options[gofakeit.IntRange(0, len(m.Options)-1)]
		sel, _ := item.Select(m.ModifierID, o.OptionID)
		result = append(result, sel)
	}

	return result
}

func assertAmount(t *testing.T, want string, got decimal.Decimal) {
	t.Helper()

	require.True(t, decimal.RequireFromString(want).Equal(got), "want %s, got %s", want, got)
}

var errRemote = errors.New("order api unavailable")

// fakeMutator keeps orders in memory the way the order API would.
type fakeMutator struct {
	orders map[uuid.UUID]*domain.Order

	failOn map[string]error
	calls  []string

	createdOrders []domain.NewOrder
	itemCalls     []domain.OrderItemMutation
	updates       []domain.OrderUpdate
}

func newFakeMutator() *fakeMutator {
	return &fakeMutator{
		orders: make(map[uuid.UUID]*domain.Order),
		failOn: make(map[string]error),
	}
}

func (f *fakeMutator) fail(method string) error {
	f.calls = append(f.calls, method)
	return f.failOn[method]
}

func (f *fakeMutator) seed(order domain.Order) {
	o := order
	o.Items = append([]domain.OrderItem(nil), order.Items...)
	f.orders[o.OrderID] = &o
}

func (f *fakeMutator) CreateOrder(_ context.Context, order domain.NewOrder) (domain.Order, error) {
	if err := f.fail("CreateOrder"); err != nil {
		return domain.Order{}, err
	}
	f.createdOrders = append(f.createdOrders, order)

	created := domain.Order{
		OrderID:     uuid.New(),
		ServiceType: order.ServiceType,
		Status:      domain.OrderStatusOpen,
		Currency:    order.Currency,
		Discount:    order.Discount,
	}
	for _, m := range order.Items {
		created.Items = append(created.Items, toOrderItem(uuid.New(), m))
	}
	f.orders[created.OrderID] = &created

	return created, nil
}

func (f *fakeMutator) CreateOrderItem(_ context.Context, item domain.OrderItemMutation) (domain.OrderItem, error) {
	if err := f.fail("CreateOrderItem"); err != nil {
		return domain.OrderItem{}, err
	}
	f.itemCalls = append(f.itemCalls, item)

	order, ok := f.orders[item.OrderID]
	if !ok {
		return domain.OrderItem{}, domain.ErrOrderNotFound
	}

	oi := toOrderItem(uuid.New(), item)
	order.Items = append(order.Items, oi)

	return oi, nil
}

func (f *fakeMutator) UpdateOrderItem(_ context.Context, item domain.OrderItemMutation) (domain.OrderItem, error) {
	if err := f.fail("UpdateOrderItem"); err != nil {
		return domain.OrderItem{}, err
	}
	f.itemCalls = append(f.itemCalls, item)

	order, ok := f.orders[item.OrderID]
	if !ok {
		return domain.OrderItem{}, domain.ErrOrderNotFound
	}

	for i := range order.Items {
		if order.Items[i].OrderItemID == *item.OrderItemID {
			order.Items[i] = toOrderItem(*item.OrderItemID, item)
			return order.Items[i], nil
		}
	}

	return domain.OrderItem{}, domain.ErrOrderItemNotFound
}

func (f *fakeMutator) UpdateOrder(_ context.Context, update domain.OrderUpdate) (domain.Order, error) {
	if err := f.fail("UpdateOrder"); err != nil {
		return domain.Order{}, err
	}
	f.updates = append(f.updates, update)

	order, ok := f.orders[update.OrderID]
	if !ok {
		return domain.Order{}, domain.ErrOrderNotFound
	}

	order.ServiceType = update.ServiceType
	order.Status = update.Status
	order.Discount = update.Discount

	return *order, nil
}

func (f *fakeMutator) DeleteOrder(_ context.Context, orderID uuid.UUID) (bool, error) {
	if err := f.fail("DeleteOrder"); err != nil {
		return false, err
	}

	_, ok := f.orders[orderID]
	delete(f.orders, orderID)

	return ok, nil
}

func toOrderItem(id uuid.UUID, m domain.OrderItemMutation) domain.OrderItem {
	status := m.Status
	if status == "" {
		status = domain.OrderItemStatusActive
	}

	return domain.OrderItem{
		OrderItemID: id,
		ItemID:      m.ItemID,
		ItemName:    m.ItemName,
		Price:       m.Price,
		Quantity:    m.Quantity,
		Discount:    m.Discount,
		Modifiers:   m.Modifiers,
		Status:      status,
	}
}
