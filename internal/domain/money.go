package domain

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
	"golang.org/x/text/currency"
)

type Money struct {
	Amount   decimal.Decimal
	Currency currency.Unit
}

func NewMoney(amount decimal.Decimal, cur currency.Unit) Money {
	return Money{Amount: amount, Currency: cur}
}

// Display rounds to cents. Totals are kept unrounded until this point.
func (m Money) Display() string {
	return fmt.Sprintf("%s %s", m.Amount.StringFixed(2), m.Currency.String())
}

// ParseAmount parses a decimal price string as sent by the order API.
// An empty string is a free option and parses to zero.
func ParseAmount(s string) (decimal.Decimal, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return decimal.Zero, nil
	}

	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, fmt.Errorf("amount[%s] is not valid: %w", s, err)
	}

	return d, nil
}

// amountJSON accepts a price as a JSON number or a decimal string.
type amountJSON decimal.Decimal

func (a amountJSON) MarshalJSON() ([]byte, error) {
	return decimal.Decimal(a).MarshalJSON()
}

func (a *amountJSON) UnmarshalJSON(data []byte) error {
	s := string(data)
	if s == "null" {
		*a = amountJSON(decimal.Zero)
		return nil
	}
	if unquoted, err := strconv.Unquote(s); err == nil {
		s = unquoted
	}

	d, err := ParseAmount(s)
	if err != nil {
		return err
	}
	*a = amountJSON(d)

	return nil
}
