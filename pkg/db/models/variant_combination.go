package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/mariomendez/storefront-backend/pkg/types"
)

// VariantCombination is one purchasable cross-product of attribute values
// with its own SKU, price and stock. CombinationKey is derived from the
// sorted attribute pairs and must be stable for a given attribute set.
type VariantCombination struct {
	ID             uuid.UUID            `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	ProductID      uuid.UUID            `gorm:"column:product_id;type:uuid;not null;index"`
	SKU            string               `gorm:"column:sku;not null"`
	Attributes     types.AttributePairs `gorm:"column:attributes;type:jsonb;serializer:json"`
	CombinationKey string               `gorm:"column:combination_key;not null"`
	PriceCents     *int                 `gorm:"column:price_cents"`
	SalePriceCents *int                 `gorm:"column:sale_price_cents"`
	StockQuantity  int                  `gorm:"column:stock_quantity;not null;default:0"`
	Images         types.ImageList      `gorm:"column:images;type:jsonb;serializer:json"`
	IsActive       bool                 `gorm:"column:is_active;not null;default:true"`
	Position       int                  `gorm:"column:position;not null;default:0"`
	CreatedAt      time.Time            `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt      time.Time            `gorm:"column:updated_at;autoUpdateTime"`
}
