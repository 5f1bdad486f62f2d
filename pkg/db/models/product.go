package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/mariomendez/storefront-backend/pkg/types"
)

// Product is the canonical catalog listing. The cart engine treats it as
// read-only input; pricing and stock snapshots are frozen onto cart items.
type Product struct {
	ID             uuid.UUID `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	Name           string    `gorm:"column:name;not null"`
	Description    *string   `gorm:"column:description"`
	PriceCents     int       `gorm:"column:price_cents;not null"`
	SalePriceCents *int      `gorm:"column:sale_price_cents"`
	StockQuantity  int       `gorm:"column:stock_quantity;not null;default:0"`
	IsActive       bool      `gorm:"column:is_active;not null;default:true"`
	FeaturedImage  *string   `gorm:"column:featured_image"`

	// Structured variant axes. Empty when the product uses the legacy list
	// or has no variants at all.
	VariantAttributes types.VariantAttributes `gorm:"column:variant_attributes;type:jsonb;serializer:json"`
	// Legacy flat variants, kept for products that predate combinations.
	LegacyVariants types.LegacyVariants `gorm:"column:legacy_variants;type:jsonb;serializer:json"`

	VariantCombinations []VariantCombination `gorm:"foreignKey:ProductID;constraint:OnDelete:CASCADE"`

	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt time.Time `gorm:"column:updated_at;autoUpdateTime"`
}
