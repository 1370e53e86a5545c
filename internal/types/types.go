// =============================================================================
// Pricing Data Generator - Shared Types
// =============================================================================
//
// This package contains the tabular types shared by the input readers and the
// pricing pipeline. Types defined here are used by:
//   - csvparser
//   - xlsxparser
//   - pricing
//
// =============================================================================

package types

// Row is a single data row keyed by column header.
// A header that is missing from the source row maps to "".
type Row map[string]string

// Get returns the value for a field and whether it is non-empty.
func (r Row) Get(field string) (string, bool) {
	value, ok := r[field]
	return value, ok && value != ""
}

// Table is a parsed price list: a header row followed by data rows.
type Table struct {
	// SourceFile is the path the table was read from.
	SourceFile string

	// Headers contains the column headers in file order.
	Headers []string

	// Rows contains the data rows as header -> value maps.
	Rows []Row
}

// HasColumn reports whether the table header contains name.
func (t *Table) HasColumn(name string) bool {
	for _, h := range t.Headers {
		if h == name {
			return true
		}
	}
	return false
}
