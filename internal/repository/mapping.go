package repository

import (
	"encoding/json"
	"fmt"

	"github.com/nikolayk812/poscart/internal/db"
	"github.com/nikolayk812/poscart/internal/domain"
	"github.com/shopspring/decimal"
	"golang.org/x/text/currency"
)

func parseCurrency(s string) (currency.Unit, error) {
	parsed, err := currency.ParseISO(s)
	if err != nil {
		return currency.Unit{}, fmt.Errorf("currency[%s] is not valid: %w", s, err)
	}

	return parsed, nil
}

func modifiersToDB(mods []domain.SelectedModifier) ([]byte, error) {
	if mods == nil {
		mods = []domain.SelectedModifier{}
	}

	data, err := json.Marshal(mods)
	if err != nil {
		return nil, fmt.Errorf("json.Marshal modifiers: %w", err)
	}

	return data, nil
}

func modifiersFromDB(data []byte) ([]domain.SelectedModifier, error) {
	var mods []domain.SelectedModifier
	if err := json.Unmarshal(data, &mods); err != nil {
		return nil, fmt.Errorf("json.Unmarshal modifiers: %w", err)
	}

	if len(mods) == 0 {
		return nil, nil
	}

	return mods, nil
}

func discountToDB(d *domain.Discount) (decimal.NullDecimal, *string) {
	if d == nil {
		return decimal.NullDecimal{}, nil
	}

	dt := string(d.Type)

	return decimal.NullDecimal{Decimal: d.Value, Valid: true}, &dt
}

func discountFromDB(value decimal.NullDecimal, dt *string) (*domain.Discount, error) {
	if !value.Valid || dt == nil {
		return nil, nil
	}

	parsed, err := domain.ParseDiscountType(*dt)
	if err != nil {
		return nil, err
	}

	return &domain.Discount{Type: parsed, Value: value.Decimal}, nil
}

func mapCatalogRowToDomain(row db.CatalogItem) (domain.CatalogItem, error) {
	cur, err := parseCurrency(row.PriceCurrency)
	if err != nil {
		return domain.CatalogItem{}, err
	}

	var tiers map[domain.ServiceType]decimal.Decimal
	if err := json.Unmarshal(row.TierPrices, &tiers); err != nil {
		return domain.CatalogItem{}, fmt.Errorf("json.Unmarshal tier prices: %w", err)
	}
	if len(tiers) == 0 {
		tiers = nil
	}

	var mods []domain.Modifier
	if err := json.Unmarshal(row.Modifiers, &mods); err != nil {
		return domain.CatalogItem{}, fmt.Errorf("json.Unmarshal modifiers: %w", err)
	}
	if len(mods) == 0 {
		mods = nil
	}

	return domain.CatalogItem{
		ItemID:     row.ItemID,
		ItemName:   row.ItemName,
		BasePrice:  row.BasePriceAmount,
		Currency:   cur,
		TierPrices: tiers,
		Modifiers:  mods,
	}, nil
}

func mapCatalogRowsToDomain(rows []db.CatalogItem) ([]domain.CatalogItem, error) {
	var items []domain.CatalogItem

	for _, row := range rows {
		item, err := mapCatalogRowToDomain(row)
		if err != nil {
			return nil, fmt.Errorf("mapCatalogRowToDomain: %w", err)
		}

		items = append(items, item)
	}

	return items, nil
}

func mapOrderItemRowToDomain(row db.OrderItem) (domain.OrderItem, error) {
	cur, err := parseCurrency(row.PriceCurrency)
	if err != nil {
		return domain.OrderItem{}, err
	}

	mods, err := modifiersFromDB(row.ModifierList)
	if err != nil {
		return domain.OrderItem{}, err
	}

	discount, err := discountFromDB(row.Discount, row.DiscountType)
	if err != nil {
		return domain.OrderItem{}, err
	}

	return domain.OrderItem{
		OrderItemID: row.OrderItemID,
		ItemID:      row.ItemID,
		ItemName:    row.ItemName,
		Price:       domain.NewMoney(row.PriceAmount, cur),
		Quantity:    int(row.Quantity),
		Discount:    discount,
		Modifiers:   mods,
		Status:      domain.OrderItemStatus(row.Status),
		CreatedAt:   row.CreatedAt,
	}, nil
}

func mapOrderRowToDomain(row db.Order, itemRows []db.OrderItem) (domain.Order, error) {
	cur, err := parseCurrency(row.PriceCurrency)
	if err != nil {
		return domain.Order{}, err
	}

	discount, err := discountFromDB(row.Discount, row.DiscountType)
	if err != nil {
		return domain.Order{}, err
	}

	var items []domain.OrderItem
	for _, itemRow := range itemRows {
		item, err := mapOrderItemRowToDomain(itemRow)
		if err != nil {
			return domain.Order{}, fmt.Errorf("mapOrderItemRowToDomain: %w", err)
		}
		items = append(items, item)
	}

	return domain.Order{
		OrderID:     row.OrderID,
		ServiceType: domain.ServiceType(row.ServiceType),
		Status:      domain.OrderStatus(row.Status),
		Currency:    cur,
		Discount:    discount,
		Items:       items,
		CreatedAt:   row.CreatedAt,
		UpdatedAt:   row.UpdatedAt,
	}, nil
}
