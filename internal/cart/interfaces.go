package cart

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/mariomendez/storefront-backend/pkg/db/models"
	"github.com/mariomendez/storefront-backend/pkg/enums"
)

// CartRepository defines the persistence surface required by the server
// cart store.
type CartRepository interface {
	WithTx(tx *gorm.DB) CartRepository
	FindActiveByUser(ctx context.Context, userID uuid.UUID) (*models.CartRecord, error)
	Create(ctx context.Context, record *models.CartRecord) (*models.CartRecord, error)
	Update(ctx context.Context, record *models.CartRecord) (*models.CartRecord, error)
	UpdateStatus(ctx context.Context, id, userID uuid.UUID, status enums.CartStatus) error
	ReplaceItems(ctx context.Context, cartID uuid.UUID, items []models.CartItem) error
	ListItems(ctx context.Context, cartID uuid.UUID) ([]models.CartItem, error)
}

type txRunner interface {
	WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error
}

// MigrationItem is one guest cart line handed to the server backend during
// sign-in migration. Snapshots travel with the line so the server cart
// keeps the prices the shopper accepted while browsing anonymously.
type MigrationItem struct {
	ProductID  uuid.UUID
	Name       string
	Image      *string
	Quantity   int
	PriceCents int
	Variant    *VariantRef
}

// RemoteCart is the authenticated cart collaborator. The production
// implementation persists through Postgres; tests substitute fakes.
type RemoteCart interface {
	Load(ctx context.Context, userID uuid.UUID) (*Cart, error)
	Add(ctx context.Context, userID uuid.UUID, input AddInput) (*Cart, error)
	Remove(ctx context.Context, userID, productID uuid.UUID, variantID string) (*Cart, error)
	UpdateQuantity(ctx context.Context, userID, productID uuid.UUID, quantity int, variantID string) (*Cart, error)
	Clear(ctx context.Context, userID uuid.UUID) (*Cart, error)
	Migrate(ctx context.Context, userID uuid.UUID, items []MigrationItem) error
}
