// =============================================================================
// Pricing Data Generator - Field Catalog
// =============================================================================
//
// The field catalog is the fixed registry of option columns that describe a
// product variant. Any CSV column that is not listed here (Quantity, Price,
// notes, SKUs...) is ignored when building categories and price keys.
//
// REGISTRY:
//   | Field        | Category | Rank | Icon                   |
//   |--------------|----------|------|------------------------|
//   | Size         | stock    | 1    | fas fa-ruler-combined  |
//   | Paper Weight | stock    | 2    | fas fa-balance-scale   |
//   | Paper Type   | stock    | 3    | fas fa-file-alt        |
//   | Paper Color  | stock    | 4    | fas fa-palette         |
//   | Parts        | print    | 1    | fas fa-layer-group     |
//   | Sides        | print    | 2    | fas fa-copy            |
//   | Ink Color    | print    | 3    | fas fa-fill-drip       |
//
// =============================================================================

package pricing

// CategoryKey identifies a display category in the output document.
type CategoryKey string

const (
	CategoryStock CategoryKey = "stock"
	CategoryPrint CategoryKey = "print"
)

// CategoryInfo is the display metadata of a category.
type CategoryInfo struct {
	Key  CategoryKey
	Name string
	Icon string
}

// FieldDescriptor describes one known option field.
type FieldDescriptor struct {
	// Name is the exact CSV column header.
	Name string

	// Category is the category this field is displayed under.
	Category CategoryKey

	// Icon is the icon class shown next to the field.
	Icon string

	// Rank orders the field within its category (1-based).
	Rank int
}

// Categories are listed in output order.
var categoryRegistry = []CategoryInfo{
	{Key: CategoryStock, Name: "Stock Options", Icon: "fas fa-box"},
	{Key: CategoryPrint, Name: "Print Options", Icon: "fas fa-print"},
}

// Fields are listed in category order, then rank order.
var fieldRegistry = []FieldDescriptor{
	{Name: "Size", Category: CategoryStock, Icon: "fas fa-ruler-combined", Rank: 1},
	{Name: "Paper Weight", Category: CategoryStock, Icon: "fas fa-balance-scale", Rank: 2},
	{Name: "Paper Type", Category: CategoryStock, Icon: "fas fa-file-alt", Rank: 3},
	{Name: "Paper Color", Category: CategoryStock, Icon: "fas fa-palette", Rank: 4},
	{Name: "Parts", Category: CategoryPrint, Icon: "fas fa-layer-group", Rank: 1},
	{Name: "Sides", Category: CategoryPrint, Icon: "fas fa-copy", Rank: 2},
	{Name: "Ink Color", Category: CategoryPrint, Icon: "fas fa-fill-drip", Rank: 3},
}

// LookupField returns the descriptor for a column header.
func LookupField(name string) (FieldDescriptor, bool) {
	for _, fd := range fieldRegistry {
		if fd.Name == name {
			return fd, true
		}
	}
	return FieldDescriptor{}, false
}

// LookupCategory returns the display metadata for a category key.
func LookupCategory(key CategoryKey) (CategoryInfo, bool) {
	for _, info := range categoryRegistry {
		if info.Key == key {
			return info, true
		}
	}
	return CategoryInfo{}, false
}

// KnownFields returns a copy of the registry in registry order.
func KnownFields() []FieldDescriptor {
	out := make([]FieldDescriptor, len(fieldRegistry))
	copy(out, fieldRegistry)
	return out
}

// KnownCategories returns a copy of the category list in output order.
func KnownCategories() []CategoryInfo {
	out := make([]CategoryInfo, len(categoryRegistry))
	copy(out, categoryRegistry)
	return out
}

// fieldsIn returns the registry fields of one category, in rank order.
func fieldsIn(key CategoryKey) []FieldDescriptor {
	var out []FieldDescriptor
	for _, fd := range fieldRegistry {
		if fd.Category == key {
			out = append(out, fd)
		}
	}
	return out
}
