package enums

// VariantKind distinguishes how a product declares its variants.
type VariantKind string

const (
	// VariantKindNone means the product sells as a single unit.
	VariantKindNone VariantKind = "none"
	// VariantKindStructured means attribute axes crossed into combinations.
	VariantKindStructured VariantKind = "structured"
	// VariantKindFlat means a legacy flat list of name/value variants.
	VariantKindFlat VariantKind = "flat"
)

// String implements fmt.Stringer.
func (v VariantKind) String() string {
	return string(v)
}
