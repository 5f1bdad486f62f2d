package catalog

import (
	"github.com/mariomendez/storefront-backend/pkg/db/models"
)

// PriceStock is the derived sellable state for the current selection.
type PriceStock struct {
	PriceCents    int
	StockQuantity int
}

// AvailableOptions computes, per declared attribute, which values can still
// lead to an active combination given the rest of the selection. Each
// attribute is cross-filtered by the other attributes' current choices,
// never by its own: re-picking within one axis must stay possible. Values
// backed only by inactive combinations are excluded; zero-stock active
// combinations are still offered (the UI disables via stock, not here).
func AvailableOptions(ix *Index, sel Selection) map[string][]string {
	options := make(map[string][]string, len(ix.Attributes()))
	for _, attr := range ix.Attributes() {
		context := make(Selection, len(sel))
		for name, value := range sel {
			if name != attr.Name {
				context[name] = value
			}
		}

		var available []string
		for _, value := range ix.ActiveValues(attr.Name) {
			context[attr.Name] = value.Value
			if len(ix.CombinationsMatching(context)) > 0 {
				available = append(available, value.Value)
			}
			delete(context, attr.Name)
		}
		options[attr.Name] = available
	}
	return options
}

// Resolve returns the active combination whose attribute set equals the
// selection exactly, once every required attribute is assigned; otherwise
// nil. Duplicate keys are a data error upstream, so multiple matches take
// the first in declaration order.
func Resolve(ix *Index, sel Selection) *models.VariantCombination {
	for _, required := range ix.RequiredAttributes() {
		if _, ok := sel[required]; !ok {
			return nil
		}
	}
	for _, combo := range ix.CombinationsMatching(sel) {
		if len(combo.Attributes) == len(sel) {
			matched := combo
			return &matched
		}
	}
	return nil
}

// PriceAndStock applies the strict price precedence chain. With a resolved
// combination: sale price, then price, then the product's sale price, then
// the product's price, with the combination's stock. Without one, the
// product's own price and stock apply.
func PriceAndStock(product *models.Product, combo *models.VariantCombination) PriceStock {
	if product == nil {
		return PriceStock{}
	}
	if combo == nil {
		return PriceStock{
			PriceCents:    productPrice(product),
			StockQuantity: product.StockQuantity,
		}
	}

	price := productPrice(product)
	switch {
	case combo.SalePriceCents != nil:
		price = *combo.SalePriceCents
	case combo.PriceCents != nil:
		price = *combo.PriceCents
	}
	return PriceStock{
		PriceCents:    price,
		StockQuantity: combo.StockQuantity,
	}
}

func productPrice(product *models.Product) int {
	if product.SalePriceCents != nil {
		return *product.SalePriceCents
	}
	return product.PriceCents
}
