package products

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/mariomendez/storefront-backend/internal/catalog"
	"github.com/mariomendez/storefront-backend/pkg/db/models"
	pkgerrors "github.com/mariomendez/storefront-backend/pkg/errors"
	"github.com/mariomendez/storefront-backend/pkg/logger"
	"github.com/mariomendez/storefront-backend/pkg/pagination"
)

type productRepository interface {
	GetByID(ctx context.Context, id uuid.UUID) (*models.Product, error)
	ListActive(ctx context.Context, limit int, cursor *pagination.Cursor) ([]models.Product, error)
}

// Service is the read surface over the product catalog: product lookups,
// listings, and variant resolution for storefront selections.
type Service interface {
	GetProductDetail(ctx context.Context, id uuid.UUID) (*models.Product, error)
	ListActive(ctx context.Context, params pagination.Params) ([]models.Product, string, error)
	AvailableOptions(ctx context.Context, productID uuid.UUID, sel catalog.Selection) (map[string][]string, error)
	ResolveSelection(ctx context.Context, productID uuid.UUID, sel catalog.Selection) (*models.VariantCombination, catalog.PriceStock, error)
}

type service struct {
	repo productRepository
	log  *logger.Logger
}

// NewService builds a product service backed by the provided repository.
func NewService(repo productRepository, log *logger.Logger) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("product repository required")
	}
	if log == nil {
		return nil, fmt.Errorf("logger required")
	}
	return &service{repo: repo, log: log}, nil
}

// GetProductDetail loads a product with combinations.
func (s *service) GetProductDetail(ctx context.Context, id uuid.UUID) (*models.Product, error) {
	product, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "product not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "loading product")
	}
	return product, nil
}

// ListActive returns one cursor page of active products plus the cursor for
// the next page, empty when this is the last one.
func (s *service) ListActive(ctx context.Context, params pagination.Params) ([]models.Product, string, error) {
	cursor, err := pagination.ParseCursor(params.Cursor)
	if err != nil {
		return nil, "", pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid cursor")
	}
	limit := pagination.NormalizeLimit(params.Limit)
	rows, err := s.repo.ListActive(ctx, pagination.LimitWithBuffer(params.Limit), cursor)
	if err != nil {
		return nil, "", pkgerrors.Wrap(pkgerrors.CodeDependency, err, "listing products")
	}

	next := ""
	if len(rows) > limit {
		rows = rows[:limit]
		last := rows[len(rows)-1]
		next = pagination.EncodeCursor(pagination.Cursor{CreatedAt: last.CreatedAt, ID: last.ID})
	}
	return rows, next, nil
}

// AvailableOptions reports, per attribute, which values still lead to at
// least one active combination given the shopper's current picks.
func (s *service) AvailableOptions(ctx context.Context, productID uuid.UUID, sel catalog.Selection) (map[string][]string, error) {
	product, err := s.GetProductDetail(ctx, productID)
	if err != nil {
		return nil, err
	}
	model := catalog.ModelFor(product)
	if model.Index() == nil || !model.Index().HasCombinations() {
		return map[string][]string{}, nil
	}
	return catalog.AvailableOptions(model.Index(), sel), nil
}

// ResolveSelection maps a complete selection to its combination and the
// effective price and stock.
func (s *service) ResolveSelection(ctx context.Context, productID uuid.UUID, sel catalog.Selection) (*models.VariantCombination, catalog.PriceStock, error) {
	product, err := s.GetProductDetail(ctx, productID)
	if err != nil {
		return nil, catalog.PriceStock{}, err
	}
	model := catalog.ModelFor(product)
	combo := catalog.Resolve(model.Index(), sel)
	if combo == nil {
		return nil, catalog.PriceStock{}, pkgerrors.New(pkgerrors.CodeValidation, "selection does not resolve to a sellable variant")
	}
	return combo, catalog.PriceAndStock(product, combo), nil
}
