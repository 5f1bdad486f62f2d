package cart

import (
	"time"

	"github.com/google/uuid"

	"github.com/mariomendez/storefront-backend/internal/catalog"
	"github.com/mariomendez/storefront-backend/pkg/db/models"
	"github.com/mariomendez/storefront-backend/pkg/enums"
	pkgerrors "github.com/mariomendez/storefront-backend/pkg/errors"
	"github.com/mariomendez/storefront-backend/pkg/types"
)

// VariantRef pins a cart line to one sellable variant. For structured
// products VariantID carries the combination SKU; for flat legacy variants
// it carries the variant id. PriceCents is the variant-level snapshot taken
// when the line was added.
type VariantRef struct {
	VariantID      string               `json:"variant_id"`
	CombinationKey string               `json:"combination_key,omitempty"`
	Attributes     types.AttributePairs `json:"attributes,omitempty"`
	PriceCents     int                  `json:"price_cents"`
}

// Item is one cart line. Name, image and unit price are snapshots frozen at
// add time; catalog edits after that point do not rewrite existing lines.
type Item struct {
	ProductID      uuid.UUID   `json:"product_id"`
	Name           string      `json:"name"`
	FeaturedImage  *string     `json:"featured_image,omitempty"`
	Quantity       int         `json:"quantity"`
	UnitPriceCents int         `json:"unit_price_cents"`
	Variant        *VariantRef `json:"variant,omitempty"`
}

// Identity is the merge key for cart lines: same product plus same variant
// id collapse into one line, everything else stays separate. A plain line
// (no variant) has an empty VariantKey and never merges with variant lines
// of the same product.
type Identity struct {
	ProductID  uuid.UUID
	VariantKey string
}

// Identity returns the line's merge key.
func (i Item) Identity() Identity {
	id := Identity{ProductID: i.ProductID}
	if i.Variant != nil {
		id.VariantKey = i.Variant.VariantID
	}
	return id
}

// Cart is the serialized cart payload shared by the guest store and the
// server backend. SessionID is set only on guest carts.
type Cart struct {
	SessionID  string    `json:"session_id,omitempty"`
	Items      []Item    `json:"items"`
	TotalCents int       `json:"total_cents"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// IsEmpty reports whether the cart holds no lines.
func (c *Cart) IsEmpty() bool {
	return c == nil || len(c.Items) == 0
}

// Find returns the line matching the identity, or nil.
func (c *Cart) Find(id Identity) *Item {
	for i := range c.Items {
		if c.Items[i].Identity() == id {
			return &c.Items[i]
		}
	}
	return nil
}

// upsert merges the incoming line into the cart. An existing line with the
// same identity absorbs the quantity and keeps its original snapshots.
func (c *Cart) upsert(item Item) {
	if existing := c.Find(item.Identity()); existing != nil {
		existing.Quantity += item.Quantity
		return
	}
	c.Items = append(c.Items, item)
}

// removeItem drops the line matching the identity. Absent identities are a
// no-op.
func (c *Cart) removeItem(id Identity) bool {
	for i := range c.Items {
		if c.Items[i].Identity() == id {
			c.Items = append(c.Items[:i], c.Items[i+1:]...)
			return true
		}
	}
	return false
}

// setQuantity replaces the quantity on the matching line. Zero or negative
// quantities remove the line instead.
func (c *Cart) setQuantity(id Identity, quantity int) bool {
	if quantity <= 0 {
		return c.removeItem(id)
	}
	item := c.Find(id)
	if item == nil {
		return false
	}
	item.Quantity = quantity
	return true
}

// recompute refreshes the cart total from its lines and stamps UpdatedAt.
func (c *Cart) recompute(now time.Time) {
	total := 0
	for _, item := range c.Items {
		total += item.Quantity * item.UnitPriceCents
	}
	c.TotalCents = total
	c.UpdatedAt = now
}

// AddInput carries everything needed to build one cart line. The product is
// loaded by the caller; Selection addresses structured variants, VariantID
// addresses flat legacy variants or a structured combination by SKU. At most
// one of the two should be set.
type AddInput struct {
	Product   *models.Product
	Quantity  int
	Selection catalog.Selection
	VariantID string
}

// NewItem validates the input and freezes a cart line with resolved price
// snapshots.
func NewItem(input AddInput) (Item, error) {
	product := input.Product
	if product == nil {
		return Item{}, pkgerrors.New(pkgerrors.CodeValidation, "product is required")
	}
	if input.Quantity < 1 {
		return Item{}, pkgerrors.New(pkgerrors.CodeValidation, "quantity must be at least 1")
	}
	if !product.IsActive {
		return Item{}, pkgerrors.New(pkgerrors.CodeValidation, "product is not available")
	}

	item := Item{
		ProductID:     product.ID,
		Name:          product.Name,
		FeaturedImage: product.FeaturedImage,
		Quantity:      input.Quantity,
	}

	model := catalog.ModelFor(product)
	switch {
	case len(input.Selection) > 0:
		if model.Kind() != enums.VariantKindStructured {
			return Item{}, pkgerrors.New(pkgerrors.CodeValidation, "product does not support attribute selections")
		}
		combo := catalog.Resolve(model.Index(), input.Selection)
		if combo == nil {
			return Item{}, pkgerrors.New(pkgerrors.CodeValidation, "selection does not resolve to a sellable variant")
		}
		ps := catalog.PriceAndStock(product, combo)
		item.UnitPriceCents = ps.PriceCents
		item.Variant = &VariantRef{
			VariantID:      combo.SKU,
			CombinationKey: combo.CombinationKey,
			Attributes:     combo.Attributes,
			PriceCents:     ps.PriceCents,
		}
	case input.VariantID != "":
		ref, err := resolveVariantID(product, model, input.VariantID)
		if err != nil {
			return Item{}, err
		}
		item.UnitPriceCents = ref.PriceCents
		item.Variant = ref
	default:
		if model.HasVariants() {
			return Item{}, pkgerrors.New(pkgerrors.CodeValidation, "variant selection is required for this product")
		}
		item.UnitPriceCents = effectivePrice(product)
	}
	return item, nil
}

func resolveVariantID(product *models.Product, model catalog.Model, variantID string) (*VariantRef, error) {
	switch model.Kind() {
	case enums.VariantKindStructured:
		combo := model.Index().CombinationByID(variantID)
		if combo == nil {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "variant does not resolve to a sellable combination")
		}
		ps := catalog.PriceAndStock(product, combo)
		return &VariantRef{
			VariantID:      combo.SKU,
			CombinationKey: combo.CombinationKey,
			Attributes:     combo.Attributes,
			PriceCents:     ps.PriceCents,
		}, nil
	case enums.VariantKindFlat:
		variant, ok := model.FlatVariantByID(variantID)
		if !ok {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "variant not found on product")
		}
		price := effectivePrice(product)
		if variant.PriceCents != nil {
			price = *variant.PriceCents
		}
		return &VariantRef{
			VariantID: variant.ID,
			Attributes: types.AttributePairs{
				{AttributeName: variant.Name, AttributeValue: variant.Value},
			},
			PriceCents: price,
		}, nil
	default:
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "product has no variants")
	}
}

func effectivePrice(product *models.Product) int {
	if product.SalePriceCents != nil {
		return *product.SalePriceCents
	}
	return product.PriceCents
}
