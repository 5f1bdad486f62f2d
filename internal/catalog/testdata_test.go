package catalog

import (
	"github.com/google/uuid"

	"github.com/mariomendez/storefront-backend/pkg/db/models"
	"github.com/mariomendez/storefront-backend/pkg/types"
)

func intPtr(v int) *int { return &v }

// colorSizeProduct mirrors the catalog shape used across the resolver tests:
// color in {red, blue(inactive via combination), green(value inactive)},
// size in {s, m}; combinations (red,s) stock 5, (red,m) stock 0,
// (blue,s) inactive.
func colorSizeProduct() *models.Product {
	return &models.Product{
		ID:             uuid.New(),
		Name:           "Crewneck Tee",
		PriceCents:     2500,
		SalePriceCents: nil,
		StockQuantity:  30,
		IsActive:       true,
		VariantAttributes: types.VariantAttributes{
			{
				Name:        "color",
				DisplayName: "Color",
				IsRequired:  true,
				Values: []types.VariantAttributeValue{
					{Value: "red", DisplayName: "Red", IsActive: true},
					{Value: "blue", DisplayName: "Blue", IsActive: true},
					{Value: "green", DisplayName: "Green", IsActive: false},
				},
			},
			{
				Name:        "size",
				DisplayName: "Size",
				IsRequired:  true,
				Values: []types.VariantAttributeValue{
					{Value: "s", DisplayName: "S", IsActive: true},
					{Value: "m", DisplayName: "M", IsActive: true},
				},
			},
		},
		VariantCombinations: []models.VariantCombination{
			{
				SKU: "TEE-RED-S",
				Attributes: types.AttributePairs{
					{AttributeName: "color", AttributeValue: "red"},
					{AttributeName: "size", AttributeValue: "s"},
				},
				CombinationKey: "color=red|size=s",
				PriceCents:     intPtr(2700),
				StockQuantity:  5,
				IsActive:       true,
			},
			{
				SKU: "TEE-RED-M",
				Attributes: types.AttributePairs{
					{AttributeName: "color", AttributeValue: "red"},
					{AttributeName: "size", AttributeValue: "m"},
				},
				CombinationKey: "color=red|size=m",
				StockQuantity:  0,
				IsActive:       true,
			},
			{
				SKU: "TEE-BLUE-S",
				Attributes: types.AttributePairs{
					{AttributeName: "color", AttributeValue: "blue"},
					{AttributeName: "size", AttributeValue: "s"},
				},
				CombinationKey: "color=blue|size=s",
				StockQuantity:  9,
				IsActive:       false,
			},
		},
	}
}

func legacyProduct() *models.Product {
	return &models.Product{
		ID:            uuid.New(),
		Name:          "Gift Card",
		PriceCents:    5000,
		StockQuantity: 100,
		IsActive:      true,
		LegacyVariants: types.LegacyVariants{
			{ID: "gc-25", Name: "amount", Value: "25", PriceCents: intPtr(2500)},
			{ID: "gc-50", Name: "amount", Value: "50", PriceCents: intPtr(5000)},
			{ID: "gc-red", Name: "wrap", Value: "red"},
		},
	}
}
