package repository_test

import (
	"context"
	"fmt"

	"github.com/brianvoe/gofakeit/v7"
	"github.com/google/go-cmp/cmp"
	"github.com/google/uuid"
	"github.com/nikolayk812/poscart/internal/domain"
	"github.com/nikolayk812/poscart/internal/repository"
	"github.com/shopspring/decimal"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"golang.org/x/text/currency"
)

func startPostgres(ctx context.Context) (*postgres.PostgresContainer, string, error) {
	postgresContainer, err := postgres.Run(ctx, "postgres:17.6-alpine3.22",
		postgres.BasicWaitStrategies(),
	)
	if err != nil {
		return nil, "", fmt.Errorf("postgres.Run: %w", err)
	}

	connStr, err := postgresContainer.ConnectionString(ctx, "sslmode=disable")
	if err != nil {
		return nil, "", fmt.Errorf("pc.ConnectionString: %w", err)
	}

	if err := repository.Migrate(connStr); err != nil {
		return nil, "", fmt.Errorf("repository.Migrate: %w", err)
	}

	return postgresContainer, connStr, nil
}

func randomCatalogItem() domain.CatalogItem {
	item := domain.CatalogItem{
		ItemID:    uuid.New(),
		ItemName:  gofakeit.Dinner(),
		BasePrice: randomAmount(1, 100),
		Currency:  randomCurrency(),
		TierPrices: map[domain.ServiceType]decimal.Decimal{
			domain.ServiceTypeDelivery: randomAmount(1, 100),
		},
	}

	for range gofakeit.IntRange(1, 3) {
		m := domain.Modifier{ModifierID: uuid.New(), ModifierName: gofakeit.Noun()}
		for i := range gofakeit.IntRange(1, 3) {
			m.Options = append(m.Options, domain.ModifierOption{
				OptionID:   uuid.New(),
				OptionName: gofakeit.Adjective(),
				Price:      randomAmount(0, 5),
				IsDefault:  i == 0,
			})
		}
		item.Modifiers = append(item.Modifiers, m)
	}

	return item
}

func randomMutation(orderID uuid.UUID, cur currency.Unit) domain.OrderItemMutation {
	item := randomCatalogItem()

	return domain.OrderItemMutation{
		OrderID:   orderID,
		ItemID:    item.ItemID,
		ItemName:  item.ItemName,
		Price:     domain.NewMoney(item.BasePrice, cur),
		Quantity:  gofakeit.IntRange(1, 5),
		Modifiers: item.DefaultSelection(),
		Status:    domain.OrderItemStatusActive,
	}
}

// randomAmount has two decimal places, like the numeric columns.
func randomAmount(lo, hi float64) decimal.Decimal {
	return decimal.NewFromFloat(gofakeit.Price(lo, hi)).Round(2)
}

func randomCurrency() currency.Unit {
	var (
		result currency.Unit
		err    error
	)

	for {
		// tag is not a recognized currency
		result, err = currency.ParseISO(gofakeit.CurrencyShort())
		if err == nil {
			break
		}
	}

	return result
}

func currencyComparer() cmp.Option {
	return cmp.Comparer(func(x, y currency.Unit) bool {
		return x.String() == y.String()
	})
}
