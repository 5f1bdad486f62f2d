package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/mariomendez/storefront-backend/pkg/types"
)

// CartItem is one server cart line. Name, image and unit price are frozen
// snapshots taken when the line was added; later catalog edits do not
// rewrite them. Variant fields are set only for variant-bearing lines.
type CartItem struct {
	ID             uuid.UUID `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	CartID         uuid.UUID `gorm:"column:cart_id;type:uuid;not null;index"`
	ProductID      uuid.UUID `gorm:"column:product_id;type:uuid;not null"`
	Name           string    `gorm:"column:name;not null"`
	FeaturedImage  *string   `gorm:"column:featured_image"`
	Quantity       int       `gorm:"column:quantity;not null"`
	UnitPriceCents int       `gorm:"column:unit_price_cents;not null"`

	VariantID         *string              `gorm:"column:variant_id"`
	CombinationKey    *string              `gorm:"column:combination_key"`
	VariantAttributes types.AttributePairs `gorm:"column:variant_attributes;type:jsonb;serializer:json"`
	VariantPriceCents *int                 `gorm:"column:variant_price_cents"`

	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt time.Time `gorm:"column:updated_at;autoUpdateTime"`
}

// VariantKey returns the identity-relevant variant id, empty for plain lines.
func (c CartItem) VariantKey() string {
	if c.VariantID == nil {
		return ""
	}
	return *c.VariantID
}
