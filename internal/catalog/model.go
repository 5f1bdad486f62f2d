package catalog

import (
	"github.com/mariomendez/storefront-backend/pkg/db/models"
	"github.com/mariomendez/storefront-backend/pkg/enums"
	"github.com/mariomendez/storefront-backend/pkg/types"
)

// Model is the product's variant representation. Exactly one of the two
// shapes is populated: structured attribute/combination data feeding the
// index and resolver, or the legacy flat list where any value choice is
// immediately valid and no cross-filtering applies.
type Model struct {
	kind       enums.VariantKind
	index      *Index
	flatByName map[string][]types.LegacyVariant
	flatOrder  []string
	flatByID   map[string]types.LegacyVariant
}

// ModelFor inspects which variant fields the product actually populates and
// returns the matching model. Structured data wins when both are present.
func ModelFor(product *models.Product) Model {
	if product == nil {
		return Model{kind: enums.VariantKindNone}
	}
	if len(product.VariantAttributes) > 0 {
		return Model{
			kind:  enums.VariantKindStructured,
			index: NewIndex(product),
		}
	}
	if len(product.LegacyVariants) > 0 {
		byName := make(map[string][]types.LegacyVariant)
		byID := make(map[string]types.LegacyVariant)
		var order []string
		for _, variant := range product.LegacyVariants {
			if _, seen := byName[variant.Name]; !seen {
				order = append(order, variant.Name)
			}
			byName[variant.Name] = append(byName[variant.Name], variant)
			byID[variant.ID] = variant
		}
		return Model{
			kind:       enums.VariantKindFlat,
			flatByName: byName,
			flatOrder:  order,
			flatByID:   byID,
		}
	}
	return Model{kind: enums.VariantKindNone}
}

// Kind reports which representation the product uses.
func (m Model) Kind() enums.VariantKind {
	return m.kind
}

// HasVariants reports whether either representation declares variants.
func (m Model) HasVariants() bool {
	return m.kind != enums.VariantKindNone
}

// Index returns the structured index, or nil for flat/none models.
func (m Model) Index() *Index {
	return m.index
}

// FlatGroupNames lists legacy variant group names in first-seen order.
func (m Model) FlatGroupNames() []string {
	return m.flatOrder
}

// FlatGroup returns the legacy variants sharing the given group name.
func (m Model) FlatGroup(name string) []types.LegacyVariant {
	if m.flatByName == nil {
		return nil
	}
	return m.flatByName[name]
}

// FlatVariantByID looks up a legacy variant by its id.
func (m Model) FlatVariantByID(id string) (types.LegacyVariant, bool) {
	if m.flatByID == nil {
		return types.LegacyVariant{}, false
	}
	variant, ok := m.flatByID[id]
	return variant, ok
}
