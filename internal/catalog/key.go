package catalog

import (
	"sort"
	"strings"

	"github.com/mariomendez/storefront-backend/pkg/types"
)

// CombinationKey derives the canonical identity string for a combination's
// attribute set. The key is a pure function of the pairs: ordering of the
// input never changes the result.
func CombinationKey(pairs types.AttributePairs) string {
	if len(pairs) == 0 {
		return ""
	}
	parts := make([]string, 0, len(pairs))
	for _, pair := range pairs {
		parts = append(parts, pair.AttributeName+"="+pair.AttributeValue)
	}
	sort.Strings(parts)
	return strings.Join(parts, "|")
}

// SelectionKey derives the same canonical form from a selection, so a full
// selection can be compared against stored combination keys.
func SelectionKey(sel Selection) string {
	if len(sel) == 0 {
		return ""
	}
	parts := make([]string, 0, len(sel))
	for name, value := range sel {
		parts = append(parts, name+"="+value)
	}
	sort.Strings(parts)
	return strings.Join(parts, "|")
}
