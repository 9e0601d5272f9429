package domain

import (
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"golang.org/x/text/currency"
)

type ServiceType string

const (
	ServiceTypeDineIn     ServiceType = "dine_in"
	ServiceTypePickup     ServiceType = "pickup"
	ServiceTypeDelivery   ServiceType = "delivery"
	ServiceTypeAggregator ServiceType = "aggregator"
)

func ParseServiceType(s string) (ServiceType, error) {
	switch st := ServiceType(s); st {
	case ServiceTypeDineIn, ServiceTypePickup, ServiceTypeDelivery, ServiceTypeAggregator:
		return st, nil
	case "dine-in":
		return ServiceTypeDineIn, nil
	}

	return "", fmt.Errorf("service type[%s]: %w", s, ErrInvalidServiceType)
}

// CatalogItem is a purchasable menu entry. TierPrices overrides BasePrice
// for the service types it lists.
type CatalogItem struct {
	ItemID     uuid.UUID
	ItemName   string
	BasePrice  decimal.Decimal
	Currency   currency.Unit
	TierPrices map[ServiceType]decimal.Decimal
	Modifiers  []Modifier
}

type Modifier struct {
	ModifierID   uuid.UUID        `json:"modifier_id"`
	ModifierName string           `json:"modifier_name"`
	Options      []ModifierOption `json:"modifier_detail"`
}

type ModifierOption struct {
	OptionID   uuid.UUID       `json:"option_id"`
	OptionName string          `json:"option_name"`
	Price      decimal.Decimal `json:"price"`
	IsDefault  bool            `json:"is_default"`
}

func (i CatalogItem) PriceFor(st ServiceType) Money {
	if price, ok := i.TierPrices[st]; ok {
		return NewMoney(price, i.Currency)
	}

	return NewMoney(i.BasePrice, i.Currency)
}

func (i CatalogItem) modifier(id uuid.UUID) (Modifier, bool) {
	for _, m := range i.Modifiers {
		if m.ModifierID == id {
			return m, true
		}
	}

	return Modifier{}, false
}

func (m Modifier) option(id uuid.UUID) (ModifierOption, bool) {
	for _, o := range m.Options {
		if o.OptionID == id {
			return o, true
		}
	}

	return ModifierOption{}, false
}

// Select builds a modifier selection from the catalog definition, so names
// and prices always come from the catalog rather than the caller.
func (i CatalogItem) Select(modifierID, optionID uuid.UUID) (SelectedModifier, error) {
	m, ok := i.modifier(modifierID)
	if !ok {
		return SelectedModifier{}, fmt.Errorf("modifier[%s]: %w", modifierID, ErrUnknownModifier)
	}

	o, ok := m.option(optionID)
	if !ok {
		return SelectedModifier{}, fmt.Errorf("option[%s]: %w", optionID, ErrUnknownModifierOption)
	}

	return selection(m, o), nil
}

// DefaultSelection picks the default option of every modifier that has one.
func (i CatalogItem) DefaultSelection() []SelectedModifier {
	var result []SelectedModifier

	for _, m := range i.Modifiers {
		for _, o := range m.Options {
			if o.IsDefault {
				result = append(result, selection(m, o))
				break
			}
		}
	}

	return result
}

// ValidateSelection requires exactly one known option for every modifier of the item.
func (i CatalogItem) ValidateSelection(selected []SelectedModifier) error {
	seen := make(map[uuid.UUID]struct{}, len(selected))

	for _, s := range selected {
		m, ok := i.modifier(s.ModifierID)
		if !ok {
			return fmt.Errorf("modifier[%s]: %w", s.ModifierID, ErrUnknownModifier)
		}

		if _, dup := seen[s.ModifierID]; dup {
			return fmt.Errorf("modifier[%s]: %w", m.ModifierName, ErrDuplicateModifier)
		}
		seen[s.ModifierID] = struct{}{}

		if _, ok := m.option(s.OptionID); !ok {
			return fmt.Errorf("modifier[%s] option[%s]: %w", m.ModifierName, s.OptionID, ErrUnknownModifierOption)
		}
	}

	for _, m := range i.Modifiers {
		if _, ok := seen[m.ModifierID]; !ok {
			return fmt.Errorf("modifier[%s]: %w", m.ModifierName, ErrModifierSelectionRequired)
		}
	}

	return nil
}

func (o *ModifierOption) UnmarshalJSON(data []byte) error {
	type plain ModifierOption
	var raw struct {
		plain
		Price amountJSON `json:"price"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	*o = ModifierOption(raw.plain)
	o.Price = decimal.Decimal(raw.Price)

	return nil
}

func selection(m Modifier, o ModifierOption) SelectedModifier {
	return SelectedModifier{
		ModifierID:   m.ModifierID,
		ModifierName: m.ModifierName,
		OptionID:     o.OptionID,
		OptionName:   o.OptionName,
		OptionPrice:  o.Price,
	}
}

type catalogItemJSON struct {
	ItemID     uuid.UUID                  `json:"item_id"`
	ItemName   string                     `json:"item_name"`
	BasePrice  amountJSON                 `json:"base_price"`
	Currency   string                     `json:"currency"`
	TierPrices map[ServiceType]amountJSON `json:"tier_prices,omitempty"`
	Modifiers  []Modifier                 `json:"modifiers,omitempty"`
}

func (i CatalogItem) MarshalJSON() ([]byte, error) {
	var tiers map[ServiceType]amountJSON
	if len(i.TierPrices) > 0 {
		tiers = make(map[ServiceType]amountJSON, len(i.TierPrices))
	}
	for st, price := range i.TierPrices {
		tiers[st] = amountJSON(price)
	}

	return json.Marshal(catalogItemJSON{
		ItemID:     i.ItemID,
		ItemName:   i.ItemName,
		BasePrice:  amountJSON(i.BasePrice),
		Currency:   i.Currency.String(),
		TierPrices: tiers,
		Modifiers:  i.Modifiers,
	})
}

func (i *CatalogItem) UnmarshalJSON(data []byte) error {
	var raw catalogItemJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	cur, err := currency.ParseISO(raw.Currency)
	if err != nil {
		return fmt.Errorf("currency[%s] is not valid: %w", raw.Currency, err)
	}

	var tiers map[ServiceType]decimal.Decimal
	if len(raw.TierPrices) > 0 {
		tiers = make(map[ServiceType]decimal.Decimal, len(raw.TierPrices))
	}
	for key, price := range raw.TierPrices {
		st, err := ParseServiceType(string(key))
		if err != nil {
			return err
		}
		tiers[st] = decimal.Decimal(price)
	}

	*i = CatalogItem{
		ItemID:     raw.ItemID,
		ItemName:   raw.ItemName,
		BasePrice:  decimal.Decimal(raw.BasePrice),
		Currency:   cur,
		TierPrices: tiers,
		Modifiers:  raw.Modifiers,
	}

	return nil
}

type Page struct {
	Limit  int
	Offset int
}

const (
	DefaultPageLimit = 20
	MaxPageLimit     = 100
)

// Normalize applies the default and maximum page sizes.
func (p Page) Normalize() Page {
	if p.Limit <= 0 {
		p.Limit = DefaultPageLimit
	}
	if p.Limit > MaxPageLimit {
		p.Limit = MaxPageLimit
	}
	if p.Offset < 0 {
		p.Offset = 0
	}

	return p
}

type ItemPage struct {
	Items []CatalogItem `json:"items"`
	Total int           `json:"total"`
}
