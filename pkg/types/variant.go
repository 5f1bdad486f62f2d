package types

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
)

// VariantAttributeValue is one selectable value on a variant attribute axis.
type VariantAttributeValue struct {
	Value       string  `json:"value"`
	DisplayName string  `json:"display_name"`
	ColorCode   *string `json:"color_code,omitempty"`
	IsActive    bool    `json:"is_active"`
}

// VariantAttribute is a named axis of product variation, e.g. "color".
type VariantAttribute struct {
	Name        string                  `json:"name"`
	DisplayName string                  `json:"display_name"`
	IsRequired  bool                    `json:"is_required"`
	Values      []VariantAttributeValue `json:"values"`
}

// VariantAttributes is the attribute list marshaled as JSONB on the product.
type VariantAttributes []VariantAttribute

// Value serializes the attribute list to JSON.
func (v VariantAttributes) Value() (driver.Value, error) {
	if v == nil {
		return []byte("[]"), nil
	}
	return json.Marshal(v)
}

// Scan decodes JSONB into the attribute list.
func (v *VariantAttributes) Scan(value interface{}) error {
	if value == nil {
		*v = nil
		return nil
	}
	raw, err := asJSON(value)
	if err != nil {
		return err
	}
	var decoded VariantAttributes
	if err := json.Unmarshal(raw, &decoded); err != nil {
		return err
	}
	*v = decoded
	return nil
}

// AttributePair names one attribute value chosen by a combination.
type AttributePair struct {
	AttributeName  string `json:"attribute_name"`
	AttributeValue string `json:"attribute_value"`
}

// AttributePairs is a combination's attribute set marshaled as JSONB.
type AttributePairs []AttributePair

// Value serializes the pairs to JSON.
func (a AttributePairs) Value() (driver.Value, error) {
	if a == nil {
		return []byte("[]"), nil
	}
	return json.Marshal(a)
}

// Scan decodes JSONB into the pair list.
func (a *AttributePairs) Scan(value interface{}) error {
	if value == nil {
		*a = nil
		return nil
	}
	raw, err := asJSON(value)
	if err != nil {
		return err
	}
	var decoded AttributePairs
	if err := json.Unmarshal(raw, &decoded); err != nil {
		return err
	}
	*a = decoded
	return nil
}

// Get returns the value for the named attribute, if present.
func (a AttributePairs) Get(name string) (string, bool) {
	for _, pair := range a {
		if pair.AttributeName == name {
			return pair.AttributeValue, true
		}
	}
	return "", false
}

// LegacyVariant is the flat name/value variant representation kept for
// products that predate structured combinations. No cross-constraints.
type LegacyVariant struct {
	ID            string `json:"id"`
	Name          string `json:"name"`
	Value         string `json:"value"`
	PriceCents    *int   `json:"price_cents,omitempty"`
	StockQuantity *int   `json:"stock_quantity,omitempty"`
}

// LegacyVariants is the legacy list marshaled as JSONB on the product.
type LegacyVariants []LegacyVariant

// Value serializes the legacy variants to JSON.
func (l LegacyVariants) Value() (driver.Value, error) {
	if l == nil {
		return []byte("[]"), nil
	}
	return json.Marshal(l)
}

// Scan decodes JSONB into the legacy variant list.
func (l *LegacyVariants) Scan(value interface{}) error {
	if value == nil {
		*l = nil
		return nil
	}
	raw, err := asJSON(value)
	if err != nil {
		return err
	}
	var decoded LegacyVariants
	if err := json.Unmarshal(raw, &decoded); err != nil {
		return err
	}
	*l = decoded
	return nil
}

// ImageList stores image URLs as a JSON array column.
type ImageList []string

// Value serializes the list to JSON.
func (i ImageList) Value() (driver.Value, error) {
	if i == nil {
		return []byte("[]"), nil
	}
	return json.Marshal(i)
}

// Scan decodes a JSON array into the list.
func (i *ImageList) Scan(value interface{}) error {
	if value == nil {
		*i = nil
		return nil
	}
	raw, err := asJSON(value)
	if err != nil {
		return err
	}
	var decoded ImageList
	if err := json.Unmarshal(raw, &decoded); err != nil {
		return err
	}
	*i = decoded
	return nil
}

func asJSON(value interface{}) ([]byte, error) {
	switch v := value.(type) {
	case string:
		return []byte(v), nil
	case []byte:
		return v, nil
	default:
		return nil, fmt.Errorf("unsupported scan type %T", value)
	}
}
