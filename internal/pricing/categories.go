// =============================================================================
// Pricing Data Generator - Category Builder
// =============================================================================
//
// BuildCategories discovers which known option fields a product actually uses
// and the distinct values each of them takes.
//
// RULES:
//   - Only fields in the field catalog are considered.
//   - Empty cells and missing columns contribute nothing.
//   - Values are sorted as plain strings ("1" < "10" < "2"), never numerically.
//   - Fields without values, and categories without fields, are left out.
//
// The result depends only on the set of values per field, never on row order.
//
// =============================================================================

package pricing

import (
	"encoding/json"
	"sort"

	"github.com/ginjaninja78/pricing-data-generator/internal/types"
)

// FieldValueSet is the observed value set of one field.
type FieldValueSet struct {
	// Name is the field (column) name.
	Name string

	// Values holds the distinct non-empty values, sorted ascending as strings.
	Values []string

	// Icon and Rank are copied from the field descriptor.
	Icon string
	Rank int
}

// HasValue reports whether v is one of the observed values.
func (f FieldValueSet) HasValue(v string) bool {
	i := sort.SearchStrings(f.Values, v)
	return i < len(f.Values) && f.Values[i] == v
}

// MarshalJSON writes {"values", "icon", "order"}.
func (f FieldValueSet) MarshalJSON() ([]byte, error) {
	return marshalObject([]member{
		{"values", f.Values},
		{"icon", f.Icon},
		{"order", f.Rank},
	})
}

// Category is a display group of fields with at least one observed value.
type Category struct {
	Key  CategoryKey
	Name string
	Icon string

	// Fields are kept in rank order.
	Fields []FieldValueSet
}

// Field returns the value set of a field in this category.
func (c Category) Field(name string) (FieldValueSet, bool) {
	for _, f := range c.Fields {
		if f.Name == name {
			return f, true
		}
	}
	return FieldValueSet{}, false
}

// MarshalJSON writes {"name", "icon", "fields": {<field>: ...}}.
func (c Category) MarshalJSON() ([]byte, error) {
	fields := make([]member, len(c.Fields))
	for i, f := range c.Fields {
		fields[i] = member{f.Name, f}
	}
	fieldsJSON, err := marshalObject(fields)
	if err != nil {
		return nil, err
	}
	return marshalObject([]member{
		{"name", c.Name},
		{"icon", c.Icon},
		{"fields", json.RawMessage(fieldsJSON)},
	})
}

// Categories is the ordered category set of one product.
type Categories []Category

// Get returns the category with the given key.
func (cs Categories) Get(key CategoryKey) (Category, bool) {
	for _, c := range cs {
		if c.Key == key {
			return c, true
		}
	}
	return Category{}, false
}

// Field looks a field up across all categories.
func (cs Categories) Field(name string) (FieldValueSet, bool) {
	for _, c := range cs {
		if f, ok := c.Field(name); ok {
			return f, true
		}
	}
	return FieldValueSet{}, false
}

// MarshalJSON writes the categories as an object keyed by category key.
func (cs Categories) MarshalJSON() ([]byte, error) {
	members := make([]member, len(cs))
	for i, c := range cs {
		members[i] = member{string(c.Key), c}
	}
	return marshalObject(members)
}

// BuildCategories computes the categories present in rows.
//
// PARAMETERS:
//   - rows: All data rows of one product, including rows that will later be
//     skipped for bad Quantity/Price values.
//
// RETURNS:
//   - The non-empty categories in registry order.
func BuildCategories(rows []types.Row) Categories {
	var out Categories

	for _, info := range categoryRegistry {
		category := Category{
			Key:  info.Key,
			Name: info.Name,
			Icon: info.Icon,
		}

		for _, fd := range fieldsIn(info.Key) {
			values := distinctValues(rows, fd.Name)
			if len(values) == 0 {
				continue
			}
			category.Fields = append(category.Fields, FieldValueSet{
				Name:   fd.Name,
				Values: values,
				Icon:   fd.Icon,
				Rank:   fd.Rank,
			})
		}

		if len(category.Fields) > 0 {
			out = append(out, category)
		}
	}

	return out
}

// distinctValues returns the sorted set of non-empty values of field.
func distinctValues(rows []types.Row, field string) []string {
	seen := make(map[string]bool)
	var values []string

	for _, row := range rows {
		value, ok := row.Get(field)
		if !ok || seen[value] {
			continue
		}
		seen[value] = true
		values = append(values, value)
	}

	sort.Strings(values)
	return values
}
