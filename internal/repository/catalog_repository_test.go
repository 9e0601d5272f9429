package repository_test

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/nikolayk812/poscart/internal/domain"
	"github.com/nikolayk812/poscart/internal/port"
	"github.com/nikolayk812/poscart/internal/repository"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
)

type catalogRepositorySuite struct {
	suite.Suite

	container *postgres.PostgresContainer
	repo      port.CatalogRepository
	pool      *pgxpool.Pool
}

func TestCatalogRepositorySuite(t *testing.T) {
	suite.Run(t, new(catalogRepositorySuite))
}

func (suite *catalogRepositorySuite) SetupSuite() {
	ctx := suite.T().Context()

	var connStr string
	var err error
	suite.container, connStr, err = startPostgres(ctx)
	suite.Require().NoError(err)

	suite.pool, err = pgxpool.New(ctx, connStr)
	suite.Require().NoError(err)

	suite.repo = repository.NewCatalog(suite.pool)
}

func (suite *catalogRepositorySuite) TearDownSuite() {
	if suite.pool != nil {
		suite.pool.Close()
	}
	if suite.container != nil {
		suite.NoError(testcontainers.TerminateContainer(suite.container))
	}
}

func (suite *catalogRepositorySuite) TestUpsertItem() {
	defer suite.deleteAll()

	noModifiers := randomCatalogItem()
	noModifiers.Modifiers = nil
	noModifiers.TierPrices = nil

	freeItem := randomCatalogItem()
	freeItem.BasePrice = decimal.Zero

	emptyName := randomCatalogItem()
	emptyName.ItemName = ""

	negative := randomCatalogItem()
	negative.BasePrice = decimal.NewFromInt(-1)

	tests := []struct {
		name      string
		item      domain.CatalogItem
		wantError string
	}{
		{
			name: "upsert item with modifiers and tier prices: ok",
			item: randomCatalogItem(),
		},
		{
			name: "upsert plain item: ok",
			item: noModifiers,
		},
		{
			name: "upsert free item: ok",
			item: freeItem,
		},
		{
			name:      "upsert item with empty ID: error",
			item:      domain.CatalogItem{ItemName: "Soup"},
			wantError: "itemID is empty",
		},
		{
			name:      "upsert item with empty name: error",
			item:      emptyName,
			wantError: "itemName is empty",
		},
		{
			name:      "upsert item with negative price: error",
			item:      negative,
			wantError: "basePrice is negative",
		},
	}

	for _, tt := range tests {
		suite.Run(tt.name, func() {
			t := suite.T()
			ctx := t.Context()

			err := suite.repo.UpsertItem(ctx, tt.item)
			if tt.wantError != "" {
				require.ErrorContains(t, err, tt.wantError)
				assert.True(t, domain.IsValidation(err), "caller mistakes are validation errors")
				return
			}
			require.NoError(t, err)

			got, err := suite.repo.GetItem(ctx, tt.item.ItemID)
			require.NoError(t, err)

			assertCatalogItem(t, tt.item, got)
		})
	}
}

func (suite *catalogRepositorySuite) TestUpsertItem_Overwrites() {
	defer suite.deleteAll()

	t := suite.T()
	ctx := t.Context()

	item := randomCatalogItem()
	require.NoError(t, suite.repo.UpsertItem(ctx, item))

	item.ItemName = "Renamed"
	item.BasePrice = decimal.RequireFromString("7.25")
	item.Modifiers = item.Modifiers[:1]
	require.NoError(t, suite.repo.UpsertItem(ctx, item))

	got, err := suite.repo.GetItem(ctx, item.ItemID)
	require.NoError(t, err)
	assertCatalogItem(t, item, got)

	page, err := suite.repo.ListItems(ctx, domain.Page{})
	require.NoError(t, err)
	assert.Equal(t, 1, page.Total)
}

func (suite *catalogRepositorySuite) TestGetItem() {
	defer suite.deleteAll()

	t := suite.T()
	ctx := t.Context()

	_, err := suite.repo.GetItem(ctx, uuid.New())
	require.ErrorIs(t, err, domain.ErrItemNotFound)

	_, err = suite.repo.GetItem(ctx, uuid.Nil)
	require.ErrorContains(t, err, "itemID is empty")
	assert.ErrorIs(t, err, domain.ErrValidation)
}

func (suite *catalogRepositorySuite) TestListItems() {
	defer suite.deleteAll()

	t := suite.T()
	ctx := t.Context()

	want := make(map[uuid.UUID]domain.CatalogItem)
	for range 5 {
		item := randomCatalogItem()
		require.NoError(t, suite.repo.UpsertItem(ctx, item))
		want[item.ItemID] = item
	}

	tests := []struct {
		name      string
		page      domain.Page
		wantCount int
	}{
		{name: "default page holds everything", page: domain.Page{}, wantCount: 5},
		{name: "first page", page: domain.Page{Limit: 2}, wantCount: 2},
		{name: "last partial page", page: domain.Page{Limit: 2, Offset: 4}, wantCount: 1},
		{name: "past the end", page: domain.Page{Limit: 2, Offset: 10}, wantCount: 0},
		{name: "negative offset starts at zero", page: domain.Page{Limit: 3, Offset: -5}, wantCount: 3},
	}

	for _, tt := range tests {
		suite.Run(tt.name, func() {
			t := suite.T()

			page, err := suite.repo.ListItems(ctx, tt.page)
			require.NoError(t, err)

			assert.Equal(t, 5, page.Total)
			require.Len(t, page.Items, tt.wantCount)
			for _, got := range page.Items {
				expected, ok := want[got.ItemID]
				require.True(t, ok)
				assertCatalogItem(t, expected, got)
			}
		})
	}

	// pages do not overlap
	seen := make(map[uuid.UUID]struct{})
	for offset := 0; offset < 5; offset += 2 {
		page, err := suite.repo.ListItems(ctx, domain.Page{Limit: 2, Offset: offset})
		require.NoError(t, err)
		for _, item := range page.Items {
			seen[item.ItemID] = struct{}{}
		}
	}
	assert.Len(t, seen, 5)
}

func (suite *catalogRepositorySuite) deleteAll() {
	_, err := suite.pool.Exec(suite.T().Context(), "TRUNCATE TABLE catalog_items")
	suite.NoError(err)
}

func assertCatalogItem(t *testing.T, expected, actual domain.CatalogItem) {
	t.Helper()

	diff := cmp.Diff(expected, actual, currencyComparer())
	assert.Empty(t, diff)
}
