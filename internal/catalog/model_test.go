package catalog

import (
	"testing"

	"github.com/mariomendez/storefront-backend/pkg/db/models"
	"github.com/mariomendez/storefront-backend/pkg/enums"
)

func TestModelForPicksRepresentation(t *testing.T) {
	t.Parallel()

	structured := ModelFor(colorSizeProduct())
	if structured.Kind() != enums.VariantKindStructured {
		t.Fatalf("expected structured model, got %s", structured.Kind())
	}
	if !structured.HasVariants() || structured.Index() == nil {
		t.Fatalf("structured model should expose an index")
	}

	flat := ModelFor(legacyProduct())
	if flat.Kind() != enums.VariantKindFlat {
		t.Fatalf("expected flat model, got %s", flat.Kind())
	}
	if !flat.HasVariants() || flat.Index() != nil {
		t.Fatalf("flat model should have variants but no index")
	}

	plain := ModelFor(&models.Product{Name: "Sticker", PriceCents: 300})
	if plain.Kind() != enums.VariantKindNone || plain.HasVariants() {
		t.Fatalf("plain product should have no variants")
	}

	if none := ModelFor(nil); none.HasVariants() {
		t.Fatalf("nil product should have no variants")
	}
}

func TestModelFlatGrouping(t *testing.T) {
	t.Parallel()

	flat := ModelFor(legacyProduct())

	names := flat.FlatGroupNames()
	if len(names) != 2 || names[0] != "amount" || names[1] != "wrap" {
		t.Fatalf("unexpected group names %v", names)
	}

	amounts := flat.FlatGroup("amount")
	if len(amounts) != 2 {
		t.Fatalf("expected 2 amount variants, got %d", len(amounts))
	}

	variant, ok := flat.FlatVariantByID("gc-50")
	if !ok || variant.Value != "50" {
		t.Fatalf("lookup by id failed: %v %v", variant, ok)
	}
	if _, ok := flat.FlatVariantByID("missing"); ok {
		t.Fatalf("unknown id should not resolve")
	}
}

func TestModelForPrefersStructuredWhenBothPresent(t *testing.T) {
	t.Parallel()

	product := colorSizeProduct()
	product.LegacyVariants = legacyProduct().LegacyVariants

	model := ModelFor(product)
	if model.Kind() != enums.VariantKindStructured {
		t.Fatalf("structured data should win, got %s", model.Kind())
	}
}
