package port

import (
	"context"

	"github.com/google/uuid"
	"github.com/nikolayk812/poscart/internal/domain"
)

// CatalogReader is the data-fetch capability the order screens page through.
type CatalogReader interface {
	ListItems(ctx context.Context, page domain.Page) (domain.ItemPage, error)
	GetItem(ctx context.Context, itemID uuid.UUID) (domain.CatalogItem, error)
}

type CatalogRepository interface {
	CatalogReader
	UpsertItem(ctx context.Context, item domain.CatalogItem) error
}
