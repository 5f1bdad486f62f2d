package products

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/mariomendez/storefront-backend/pkg/db/models"
	"github.com/mariomendez/storefront-backend/pkg/pagination"
	"github.com/mariomendez/storefront-backend/pkg/types"
)

func setupProductsTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open("file::memory:?cache=shared"), &gorm.Config{})
	require.NoError(t, err)

	products := `
CREATE TABLE IF NOT EXISTS products (
  id TEXT PRIMARY KEY,
  name TEXT NOT NULL,
  description TEXT,
  price_cents INTEGER NOT NULL,
  sale_price_cents INTEGER,
  stock_quantity INTEGER NOT NULL DEFAULT 0,
  is_active INTEGER NOT NULL DEFAULT 1,
  featured_image TEXT,
  variant_attributes TEXT,
  legacy_variants TEXT,
  created_at DATETIME,
  updated_at DATETIME
);`
	combinations := `
CREATE TABLE IF NOT EXISTS variant_combinations (
  id TEXT PRIMARY KEY,
  product_id TEXT NOT NULL,
  sku TEXT NOT NULL,
  attributes TEXT NOT NULL,
  combination_key TEXT NOT NULL,
  price_cents INTEGER,
  sale_price_cents INTEGER,
  stock_quantity INTEGER NOT NULL DEFAULT 0,
  images TEXT,
  is_active INTEGER NOT NULL DEFAULT 1,
  position INTEGER NOT NULL DEFAULT 0,
  created_at DATETIME,
  updated_at DATETIME
);`
	require.NoError(t, db.Exec(products).Error)
	require.NoError(t, db.Exec(combinations).Error)
	return db
}

func createProduct(t *testing.T, db *gorm.DB, name string, created time.Time, active bool) *models.Product {
	t.Helper()

	product := &models.Product{
		ID:            uuid.New(),
		Name:          name,
		PriceCents:    1000,
		StockQuantity: 10,
		IsActive:      active,
		CreatedAt:     created,
		UpdatedAt:     created,
	}
	require.NoError(t, db.Create(product).Error)
	return product
}

func TestRepositoryGetByIDPreloadsCombinations(t *testing.T) {
	db := setupProductsTestDB(t)
	repo := NewRepository(db)

	product := createProduct(t, db, "Tee", time.Now().UTC(), true)
	second := models.VariantCombination{
		ID:             uuid.New(),
		ProductID:      product.ID,
		SKU:            "TEE-B",
		Attributes:     types.AttributePairs{{AttributeName: "color", AttributeValue: "blue"}},
		CombinationKey: "color=blue",
		Position:       2,
		IsActive:       true,
	}
	first := models.VariantCombination{
		ID:             uuid.New(),
		ProductID:      product.ID,
		SKU:            "TEE-A",
		Attributes:     types.AttributePairs{{AttributeName: "color", AttributeValue: "red"}},
		CombinationKey: "color=red",
		Position:       1,
		IsActive:       true,
	}
	require.NoError(t, db.Create(&second).Error)
	require.NoError(t, db.Create(&first).Error)

	loaded, err := repo.GetByID(context.Background(), product.ID)
	require.NoError(t, err)
	require.Len(t, loaded.VariantCombinations, 2)
	assert.Equal(t, "TEE-A", loaded.VariantCombinations[0].SKU, "combinations ordered by position")
	if value, ok := loaded.VariantCombinations[0].Attributes.Get("color"); assert.True(t, ok) {
		assert.Equal(t, "red", value)
	}
}

func TestRepositoryListActivePagination(t *testing.T) {
	db := setupProductsTestDB(t)
	repo := NewRepository(db)
	ctx := context.Background()

	base := time.Date(2025, 4, 1, 0, 0, 0, 0, time.UTC)
	var created []*models.Product
	for i := 0; i < 5; i++ {
		created = append(created, createProduct(t, db, "P", base.Add(time.Duration(i)*time.Hour), true))
	}
	createProduct(t, db, "inactive", base.Add(10*time.Hour), false)

	page, err := repo.ListActive(ctx, 3, nil)
	require.NoError(t, err)
	require.Len(t, page, 3)
	assert.Equal(t, created[4].ID, page[0].ID, "newest first")

	cursor := &pagination.Cursor{CreatedAt: page[2].CreatedAt, ID: page[2].ID}
	rest, err := repo.ListActive(ctx, 10, cursor)
	require.NoError(t, err)
	require.Len(t, rest, 2)
	for _, row := range rest {
		assert.True(t, row.CreatedAt.Before(page[2].CreatedAt))
	}
}
