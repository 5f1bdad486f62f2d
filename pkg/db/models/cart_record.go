package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/mariomendez/storefront-backend/pkg/enums"
)

// CartRecord is the authenticated shopper's server-side cart. One active
// record per user; items merge by (product, variant) identity.
type CartRecord struct {
	ID         uuid.UUID        `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	UserID     uuid.UUID        `gorm:"column:user_id;type:uuid;not null;index"`
	Status     enums.CartStatus `gorm:"column:status;not null;default:'active'"`
	TotalCents int              `gorm:"column:total_cents;not null;default:0"`
	Items      []CartItem       `gorm:"foreignKey:CartID;constraint:OnDelete:CASCADE"`
	CreatedAt  time.Time        `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt  time.Time        `gorm:"column:updated_at;autoUpdateTime"`
}
