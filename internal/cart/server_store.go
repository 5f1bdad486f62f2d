package cart

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/mariomendez/storefront-backend/pkg/db"
	"github.com/mariomendez/storefront-backend/pkg/db/models"
	pkgerrors "github.com/mariomendez/storefront-backend/pkg/errors"
	"github.com/mariomendez/storefront-backend/pkg/logger"
)

// ServerStore is the Postgres-backed RemoteCart. Each user owns at most one
// active cart record; every mutation runs in a transaction and rewrites the
// record's lines and total together.
type ServerStore struct {
	repo CartRepository
	tx   txRunner
	log  *logger.Logger
}

// NewServerStore builds the server cart store over the provided stack.
func NewServerStore(repo CartRepository, tx txRunner, log *logger.Logger) (*ServerStore, error) {
	if repo == nil {
		return nil, fmt.Errorf("cart repository required")
	}
	if tx == nil {
		return nil, fmt.Errorf("transaction runner required")
	}
	if log == nil {
		return nil, fmt.Errorf("logger required")
	}
	return &ServerStore{repo: repo, tx: tx, log: log}, nil
}

// Load returns the user's active cart, creating an empty record on first
// touch.
func (s *ServerStore) Load(ctx context.Context, userID uuid.UUID) (*Cart, error) {
	record, err := s.findOrCreate(ctx, s.repo, userID)
	if err != nil {
		return nil, err
	}
	return cartFromRecord(record), nil
}

// Add merges a new line into the user's cart inside one transaction.
func (s *ServerStore) Add(ctx context.Context, userID uuid.UUID, input AddInput) (*Cart, error) {
	item, err := NewItem(input)
	if err != nil {
		return nil, err
	}
	return s.mutate(ctx, userID, func(record *models.CartRecord) error {
		record.Items = mergeRows(record.Items, item)
		return nil
	})
}

// Remove drops the line matching (productID, variantID). Missing lines are
// a no-op.
func (s *ServerStore) Remove(ctx context.Context, userID, productID uuid.UUID, variantID string) (*Cart, error) {
	target := Identity{ProductID: productID, VariantKey: variantID}
	return s.mutate(ctx, userID, func(record *models.CartRecord) error {
		kept := record.Items[:0]
		for _, row := range record.Items {
			if rowIdentity(row) != target {
				kept = append(kept, row)
			}
		}
		record.Items = kept
		return nil
	})
}

// UpdateQuantity replaces the quantity on the matching line. Zero or
// negative quantities remove the line. Missing lines are a no-op.
func (s *ServerStore) UpdateQuantity(ctx context.Context, userID, productID uuid.UUID, quantity int, variantID string) (*Cart, error) {
	target := Identity{ProductID: productID, VariantKey: variantID}
	return s.mutate(ctx, userID, func(record *models.CartRecord) error {
		for i := range record.Items {
			if rowIdentity(record.Items[i]) != target {
				continue
			}
			if quantity <= 0 {
				record.Items = append(record.Items[:i], record.Items[i+1:]...)
			} else {
				record.Items[i].Quantity = quantity
			}
			return nil
		}
		return nil
	})
}

// Clear removes every line from the user's active cart.
func (s *ServerStore) Clear(ctx context.Context, userID uuid.UUID) (*Cart, error) {
	return s.mutate(ctx, userID, func(record *models.CartRecord) error {
		record.Items = nil
		return nil
	})
}

// Migrate folds guest cart lines into the user's cart in a single
// transaction, merging quantities on identity collisions and keeping the
// guest-side price snapshots for the lines it creates.
func (s *ServerStore) Migrate(ctx context.Context, userID uuid.UUID, items []MigrationItem) error {
	if len(items) == 0 {
		return nil
	}
	_, err := s.mutate(ctx, userID, func(record *models.CartRecord) error {
		for _, incoming := range items {
			if incoming.Quantity < 1 {
				continue
			}
			record.Items = mergeRows(record.Items, migrationLine(incoming))
		}
		return nil
	})
	return err
}

// mutate runs fn over the user's active cart record, then rewrites lines
// and total atomically.
func (s *ServerStore) mutate(ctx context.Context, userID uuid.UUID, fn func(record *models.CartRecord) error) (*Cart, error) {
	var result *Cart
	err := s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)
		record, err := s.findOrCreate(ctx, repo, userID)
		if err != nil {
			return err
		}
		if err := fn(record); err != nil {
			return err
		}
		if err := repo.ReplaceItems(ctx, record.ID, record.Items); err != nil {
			if db.IsUniqueViolation(err, "") {
				return pkgerrors.Wrap(pkgerrors.CodeConflict, err, "conflicting cart line")
			}
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "rewriting cart items")
		}
		record.TotalCents = rowsTotal(record.Items)
		if _, err := repo.Update(ctx, record); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "saving cart record")
		}
		result = cartFromRecord(record)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

func (s *ServerStore) findOrCreate(ctx context.Context, repo CartRepository, userID uuid.UUID) (*models.CartRecord, error) {
	record, err := repo.FindActiveByUser(ctx, userID)
	if err == nil {
		return record, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "loading cart record")
	}
	record = &models.CartRecord{ID: uuid.New(), UserID: userID}
	if _, err := repo.Create(ctx, record); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "creating cart record")
	}
	return record, nil
}

func rowIdentity(row models.CartItem) Identity {
	return Identity{ProductID: row.ProductID, VariantKey: row.VariantKey()}
}

func rowsTotal(rows []models.CartItem) int {
	total := 0
	for _, row := range rows {
		total += row.Quantity * row.UnitPriceCents
	}
	return total
}

// mergeRows folds one line into the row set, merging quantity on identity
// collision and appending otherwise.
func mergeRows(rows []models.CartItem, item Item) []models.CartItem {
	id := item.Identity()
	for i := range rows {
		if rowIdentity(rows[i]) == id {
			rows[i].Quantity += item.Quantity
			return rows
		}
	}
	return append(rows, rowFromItem(item))
}

func rowFromItem(item Item) models.CartItem {
	row := models.CartItem{
		ID:             uuid.New(),
		ProductID:      item.ProductID,
		Name:           item.Name,
		FeaturedImage:  item.FeaturedImage,
		Quantity:       item.Quantity,
		UnitPriceCents: item.UnitPriceCents,
	}
	if item.Variant != nil {
		variantID := item.Variant.VariantID
		row.VariantID = &variantID
		if item.Variant.CombinationKey != "" {
			key := item.Variant.CombinationKey
			row.CombinationKey = &key
		}
		row.VariantAttributes = item.Variant.Attributes
		price := item.Variant.PriceCents
		row.VariantPriceCents = &price
	}
	return row
}

func itemFromRow(row models.CartItem) Item {
	item := Item{
		ProductID:      row.ProductID,
		Name:           row.Name,
		FeaturedImage:  row.FeaturedImage,
		Quantity:       row.Quantity,
		UnitPriceCents: row.UnitPriceCents,
	}
	if row.VariantID != nil {
		ref := &VariantRef{
			VariantID:  *row.VariantID,
			Attributes: row.VariantAttributes,
		}
		if row.CombinationKey != nil {
			ref.CombinationKey = *row.CombinationKey
		}
		if row.VariantPriceCents != nil {
			ref.PriceCents = *row.VariantPriceCents
		} else {
			ref.PriceCents = row.UnitPriceCents
		}
		item.Variant = ref
	}
	return item
}

func migrationLine(incoming MigrationItem) Item {
	return Item{
		ProductID:      incoming.ProductID,
		Name:           incoming.Name,
		FeaturedImage:  incoming.Image,
		Quantity:       incoming.Quantity,
		UnitPriceCents: incoming.PriceCents,
		Variant:        incoming.Variant,
	}
}

func cartFromRecord(record *models.CartRecord) *Cart {
	cart := &Cart{
		Items:      make([]Item, 0, len(record.Items)),
		TotalCents: record.TotalCents,
		CreatedAt:  record.CreatedAt,
		UpdatedAt:  record.UpdatedAt,
	}
	for _, row := range record.Items {
		cart.Items = append(cart.Items, itemFromRow(row))
	}
	return cart
}
