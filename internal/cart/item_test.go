package cart

import (
	"testing"

	"github.com/mariomendez/storefront-backend/internal/catalog"
	pkgerrors "github.com/mariomendez/storefront-backend/pkg/errors"
)

func TestNewItemResolvesStructuredSelection(t *testing.T) {
	t.Parallel()

	product := teeProduct()
	item, err := NewItem(AddInput{
		Product:   product,
		Quantity:  2,
		Selection: catalog.Selection{"size": "s", "color": "red"},
	})
	if err != nil {
		t.Fatalf("NewItem: %v", err)
	}
	if item.Variant == nil {
		t.Fatal("expected variant ref")
	}
	if item.Variant.VariantID != "TEE-RED-S" {
		t.Fatalf("variant id = %q", item.Variant.VariantID)
	}
	if item.Variant.CombinationKey != "color=red|size=s" {
		t.Fatalf("combination key = %q", item.Variant.CombinationKey)
	}
	if item.UnitPriceCents != 2700 {
		t.Fatalf("unit price = %d, want combination price 2700", item.UnitPriceCents)
	}
}

func TestNewItemCombinationWithoutPriceFallsBackToProduct(t *testing.T) {
	t.Parallel()

	item, err := NewItem(AddInput{
		Product:   teeProduct(),
		Quantity:  1,
		Selection: catalog.Selection{"color": "red", "size": "m"},
	})
	if err != nil {
		t.Fatalf("NewItem: %v", err)
	}
	if item.UnitPriceCents != 2500 {
		t.Fatalf("unit price = %d, want product price 2500", item.UnitPriceCents)
	}
}

func TestNewItemRejectsIncompleteSelection(t *testing.T) {
	t.Parallel()

	_, err := NewItem(AddInput{
		Product:   teeProduct(),
		Quantity:  1,
		Selection: catalog.Selection{"color": "red"},
	})
	if err == nil {
		t.Fatal("expected error for incomplete selection")
	}
	if pkgerrors.As(err).Code() != pkgerrors.CodeValidation {
		t.Fatalf("code = %v, want validation", pkgerrors.As(err).Code())
	}
}

func TestNewItemResolvesStructuredVariantBySKU(t *testing.T) {
	t.Parallel()

	item, err := NewItem(AddInput{Product: teeProduct(), Quantity: 1, VariantID: "TEE-RED-S"})
	if err != nil {
		t.Fatalf("NewItem: %v", err)
	}
	if item.Variant == nil || item.Variant.VariantID != "TEE-RED-S" {
		t.Fatalf("variant = %+v", item.Variant)
	}
	if item.UnitPriceCents != 2700 {
		t.Fatalf("unit price = %d", item.UnitPriceCents)
	}
}

func TestNewItemFlatVariantPrices(t *testing.T) {
	t.Parallel()

	withPrice, err := NewItem(AddInput{Product: giftCardProduct(), Quantity: 1, VariantID: "gc-25"})
	if err != nil {
		t.Fatalf("NewItem gc-25: %v", err)
	}
	if withPrice.UnitPriceCents != 2500 {
		t.Fatalf("gc-25 price = %d, want variant price 2500", withPrice.UnitPriceCents)
	}
	if name, _ := withPrice.Variant.Attributes.Get("amount"); name != "25" {
		t.Fatalf("attributes = %+v", withPrice.Variant.Attributes)
	}

	withoutPrice, err := NewItem(AddInput{Product: giftCardProduct(), Quantity: 1, VariantID: "gc-50"})
	if err != nil {
		t.Fatalf("NewItem gc-50: %v", err)
	}
	if withoutPrice.UnitPriceCents != 5000 {
		t.Fatalf("gc-50 price = %d, want product price 5000", withoutPrice.UnitPriceCents)
	}
}

func TestNewItemPlainProductUsesSalePrice(t *testing.T) {
	t.Parallel()

	item, err := NewItem(AddInput{Product: mugProduct(), Quantity: 3})
	if err != nil {
		t.Fatalf("NewItem: %v", err)
	}
	if item.Variant != nil {
		t.Fatal("plain product should carry no variant ref")
	}
	if item.UnitPriceCents != 1500 {
		t.Fatalf("unit price = %d, want sale price 1500", item.UnitPriceCents)
	}
}

func TestNewItemRequiresSelectionForVariantProducts(t *testing.T) {
	t.Parallel()

	if _, err := NewItem(AddInput{Product: teeProduct(), Quantity: 1}); err == nil {
		t.Fatal("expected error when variants exist and nothing is selected")
	}
	if _, err := NewItem(AddInput{Product: giftCardProduct(), Quantity: 1}); err == nil {
		t.Fatal("expected error for flat product without a variant id")
	}
}

func TestNewItemValidatesInput(t *testing.T) {
	t.Parallel()

	if _, err := NewItem(AddInput{Product: mugProduct(), Quantity: 0}); err == nil {
		t.Fatal("expected error for zero quantity")
	}
	inactive := mugProduct()
	inactive.IsActive = false
	if _, err := NewItem(AddInput{Product: inactive, Quantity: 1}); err == nil {
		t.Fatal("expected error for inactive product")
	}
	if _, err := NewItem(AddInput{Quantity: 1}); err == nil {
		t.Fatal("expected error for nil product")
	}
}

func TestItemIdentitySeparatesVariants(t *testing.T) {
	t.Parallel()

	plain := Item{ProductID: mugProduct().ID}
	variant := Item{ProductID: mugProduct().ID, Variant: &VariantRef{VariantID: "v1"}}

	if plain.Identity() == variant.Identity() {
		t.Fatal("plain and variant lines must not share identity")
	}
	other := Item{ProductID: mugProduct().ID, Variant: &VariantRef{VariantID: "v1"}}
	if variant.Identity() != other.Identity() {
		t.Fatal("same product and variant id must share identity")
	}
}
