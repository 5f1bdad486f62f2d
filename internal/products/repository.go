package products

import (
	"context"

	"github.com/google/uuid"

	"github.com/mariomendez/storefront-backend/internal/repo"
	"github.com/mariomendez/storefront-backend/pkg/db/models"
	"github.com/mariomendez/storefront-backend/pkg/pagination"
	"gorm.io/gorm"
)

// Repository provides read access to the product catalog.
type Repository struct {
	base repo.Base
}

// NewRepository constructs a product repository bound to the provided DB.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{base: repo.NewBase(db)}
}

// GetByID loads a product with its variant combinations.
func (r *Repository) GetByID(ctx context.Context, id uuid.UUID) (*models.Product, error) {
	var product models.Product
	err := r.base.DB(ctx).
		Preload("VariantCombinations", func(db *gorm.DB) *gorm.DB {
			return db.Order("position ASC")
		}).
		Where("id = ?", id).
		First(&product).Error
	if err != nil {
		return nil, err
	}
	return &product, nil
}

// ListActive returns a keyset page of active products, newest first. The
// caller passes limit+1 to detect whether another page exists.
func (r *Repository) ListActive(ctx context.Context, limit int, cursor *pagination.Cursor) ([]models.Product, error) {
	query := r.base.DB(ctx).
		Where("is_active = ?", true).
		Order("created_at DESC").
		Order("id DESC").
		Limit(limit)
	if cursor != nil {
		query = query.Where(
			"(created_at < ?) OR (created_at = ? AND id < ?)",
			cursor.CreatedAt, cursor.CreatedAt, cursor.ID,
		)
	}
	var rows []models.Product
	if err := query.Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}
