package catalog

import (
	"github.com/mariomendez/storefront-backend/pkg/db/models"
	"github.com/mariomendez/storefront-backend/pkg/types"
)

// Selection maps attribute names to the value the shopper picked. Partial
// selections are the normal case while the shopper is still choosing.
type Selection map[string]string

// Index answers structural queries over a product's declared variant
// attributes and combinations. All queries are pure; absent or malformed
// product data yields empty results, never an error.
type Index struct {
	attributes   []types.VariantAttribute
	combinations []models.VariantCombination
}

// NewIndex builds an index over the product's structured variant data.
func NewIndex(product *models.Product) *Index {
	if product == nil {
		return &Index{}
	}
	return &Index{
		attributes:   product.VariantAttributes,
		combinations: product.VariantCombinations,
	}
}

// Attributes returns the declared attribute axes in declaration order.
func (ix *Index) Attributes() []types.VariantAttribute {
	if ix == nil {
		return nil
	}
	return ix.attributes
}

// HasCombinations reports whether any structured combinations exist.
func (ix *Index) HasCombinations() bool {
	return ix != nil && len(ix.combinations) > 0
}

// RequiredAttributes lists the names of attributes that must be assigned
// before a combination can resolve.
func (ix *Index) RequiredAttributes() []string {
	if ix == nil {
		return nil
	}
	var required []string
	for _, attr := range ix.attributes {
		if attr.IsRequired {
			required = append(required, attr.Name)
		}
	}
	return required
}

// ActiveValues returns the active values declared for the named attribute,
// in declaration order. Unknown attributes yield nil.
func (ix *Index) ActiveValues(name string) []types.VariantAttributeValue {
	if ix == nil {
		return nil
	}
	for _, attr := range ix.attributes {
		if attr.Name != name {
			continue
		}
		var active []types.VariantAttributeValue
		for _, value := range attr.Values {
			if value.IsActive {
				active = append(active, value)
			}
		}
		return active
	}
	return nil
}

// CombinationsMatching returns every active combination consistent with the
// partial selection: for each selected attribute the combination's value
// must equal the selection's; unselected attributes are unconstrained.
func (ix *Index) CombinationsMatching(sel Selection) []models.VariantCombination {
	if ix == nil {
		return nil
	}
	var matched []models.VariantCombination
	for _, combo := range ix.combinations {
		if !combo.IsActive {
			continue
		}
		if combinationAgrees(combo, sel) {
			matched = append(matched, combo)
		}
	}
	return matched
}

// CombinationByID looks up an active combination by SKU or id string.
// Inactive and unknown combinations yield nil.
func (ix *Index) CombinationByID(id string) *models.VariantCombination {
	if ix == nil {
		return nil
	}
	for i := range ix.combinations {
		combo := &ix.combinations[i]
		if !combo.IsActive {
			continue
		}
		if combo.SKU == id || combo.ID.String() == id {
			return combo
		}
	}
	return nil
}

func combinationAgrees(combo models.VariantCombination, sel Selection) bool {
	for name, want := range sel {
		got, ok := combo.Attributes.Get(name)
		if !ok || got != want {
			return false
		}
	}
	return true
}
