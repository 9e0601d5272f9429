package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/nikolayk812/poscart/internal/db"
	"github.com/nikolayk812/poscart/internal/domain"
	"github.com/nikolayk812/poscart/internal/port"
	"github.com/shopspring/decimal"
)

type catalogRepository struct {
	q    *db.Queries
	pool *pgxpool.Pool
}

func NewCatalog(pool *pgxpool.Pool) port.CatalogRepository {
	return &catalogRepository{
		q:    db.New(pool),
		pool: pool,
	}
}

func (r *catalogRepository) GetItem(ctx context.Context, itemID uuid.UUID) (domain.CatalogItem, error) {
	if itemID == uuid.Nil {
		return domain.CatalogItem{}, invalidInput("itemID is empty")
	}

	row, err := r.q.GetCatalogItem(ctx, itemID)
	if errors.Is(err, pgx.ErrNoRows) {
		return domain.CatalogItem{}, fmt.Errorf("item[%s]: %w", itemID, domain.ErrItemNotFound)
	}
	if err != nil {
		return domain.CatalogItem{}, fmt.Errorf("q.GetCatalogItem: %w", err)
	}

	item, err := mapCatalogRowToDomain(row)
	if err != nil {
		return domain.CatalogItem{}, fmt.Errorf("mapCatalogRowToDomain: %w", err)
	}

	return item, nil
}

func (r *catalogRepository) ListItems(ctx context.Context, page domain.Page) (domain.ItemPage, error) {
	page = page.Normalize()

	return withTx(ctx, r.pool, r.q, func(q *db.Queries) (domain.ItemPage, error) {
		total, err := q.CountCatalogItems(ctx)
		if err != nil {
			return domain.ItemPage{}, fmt.Errorf("q.CountCatalogItems: %w", err)
		}

		rows, err := q.ListCatalogItems(ctx, db.ListCatalogItemsParams{
			Limit:  int32(page.Limit),
			Offset: int32(page.Offset),
		})
		if err != nil {
			return domain.ItemPage{}, fmt.Errorf("q.ListCatalogItems: %w", err)
		}

		items, err := mapCatalogRowsToDomain(rows)
		if err != nil {
			return domain.ItemPage{}, fmt.Errorf("mapCatalogRowsToDomain: %w", err)
		}

		return domain.ItemPage{Items: items, Total: int(total)}, nil
	})
}

func (r *catalogRepository) UpsertItem(ctx context.Context, item domain.CatalogItem) error {
	if item.ItemID == uuid.Nil {
		return invalidInput("itemID is empty")
	}
	if item.ItemName == "" {
		return invalidInput("itemName is empty")
	}
	if item.BasePrice.IsNegative() {
		return invalidInput("basePrice is negative")
	}

	tiers := item.TierPrices
	if tiers == nil {
		tiers = map[domain.ServiceType]decimal.Decimal{}
	}
	tiersJSON, err := json.Marshal(tiers)
	if err != nil {
		return fmt.Errorf("json.Marshal tier prices: %w", err)
	}

	mods := item.Modifiers
	if mods == nil {
		mods = []domain.Modifier{}
	}
	modsJSON, err := json.Marshal(mods)
	if err != nil {
		return fmt.Errorf("json.Marshal modifiers: %w", err)
	}

	err = r.q.UpsertCatalogItem(ctx, db.UpsertCatalogItemParams{
		ItemID:          item.ItemID,
		ItemName:        item.ItemName,
		BasePriceAmount: item.BasePrice,
		PriceCurrency:   item.Currency.String(),
		TierPrices:      tiersJSON,
		Modifiers:       modsJSON,
	})
	if err != nil {
		return fmt.Errorf("q.UpsertCatalogItem: %w", err)
	}

	return nil
}
