// =============================================================================
// Pricing Data Generator - Price Key Builder
// =============================================================================
//
// A price key names one option combination, for example:
//
//   Size=4x6|Paper Weight=14pt|Parts=1|Sides=Double
//
// Fragments are emitted in category order, then field rank order, for the
// fields of the product's categories that are non-empty on the row. The column
// order of the source file never affects the key, so identical option
// combinations always produce byte-identical keys.
//
// =============================================================================

package pricing

import (
	"fmt"
	"strings"

	"github.com/ginjaninja78/pricing-data-generator/internal/types"
)

const (
	// KeySeparator joins the fragments of a price key.
	KeySeparator = "|"

	// fragmentSeparator separates field and value inside a fragment.
	fragmentSeparator = "="
)

// BuildKey returns the canonical price key of row.
//
// RETURNS:
//   - The key string.
//   - false when the row has no value for any field of categories; such a
//     row cannot be priced.
func BuildKey(row types.Row, categories Categories) (string, bool) {
	var b strings.Builder
	n := 0

	for _, category := range categories {
		for _, field := range category.Fields {
			value, ok := row.Get(field.Name)
			if !ok {
				continue
			}
			if n > 0 {
				b.WriteString(KeySeparator)
			}
			b.WriteString(field.Name)
			b.WriteString(fragmentSeparator)
			b.WriteString(value)
			n++
		}
	}

	if n == 0 {
		return "", false
	}
	return b.String(), true
}

// KeyFragment is one field=value pair of a price key.
type KeyFragment struct {
	Field string
	Value string
}

// SplitKey breaks a price key back into fragments.
//
// Values may themselves contain the separator characters, so a piece only
// starts a new fragment when it begins with "<known field>=". Anything else
// is folded into the previous fragment's value.
func SplitKey(key string) ([]KeyFragment, error) {
	if key == "" {
		return nil, fmt.Errorf("empty price key")
	}

	var fragments []KeyFragment
	for _, piece := range strings.Split(key, KeySeparator) {
		if field, value, ok := cutKnownField(piece); ok {
			fragments = append(fragments, KeyFragment{Field: field, Value: value})
			continue
		}
		if len(fragments) == 0 {
			return nil, fmt.Errorf("price key %q does not start with a known field", key)
		}
		last := &fragments[len(fragments)-1]
		last.Value += KeySeparator + piece
	}

	return fragments, nil
}

func cutKnownField(piece string) (field, value string, ok bool) {
	name, value, found := strings.Cut(piece, fragmentSeparator)
	if !found {
		return "", "", false
	}
	if _, known := LookupField(name); !known {
		return "", "", false
	}
	return name, value, true
}
