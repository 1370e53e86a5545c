// =============================================================================
// Pricing Data Generator - Product Aggregator
// =============================================================================
//
// Aggregate folds the rows of one price list into a Product:
//
//   1. Build the categories from every row.
//   2. For each row, build its price key; rows without a key are skipped.
//   3. Coerce Quantity and Price; rows where either is not numeric, or zero,
//      are skipped.
//   4. Record prices[key][quantity] = price. A later row with the same key
//      and quantity overwrites the earlier one.
//
// Row problems never produce errors. Dirty price lists are expected and the
// caller decides what to do with a product that ends up empty.
//
// KNOWN QUIRK:
//   A quantity or price of 0 is treated exactly like a missing value. A
//   genuinely free item cannot be expressed in a price list.
//
// =============================================================================

package pricing

import (
	"github.com/ginjaninja78/pricing-data-generator/internal/types"
)

const (
	// ColumnQuantity is the order quantity column.
	ColumnQuantity = "Quantity"

	// ColumnPrice is the unit price column.
	ColumnPrice = "Price"
)

// RequiredColumns lists the columns every price list header must contain.
var RequiredColumns = []string{ColumnQuantity, ColumnPrice}

// =============================================================================
// PRICE TABLE
// =============================================================================

// QuantityPrices maps quantity (canonical string) to price, in first-seen order.
type QuantityPrices struct {
	order  []string
	prices map[string]Number
}

func newQuantityPrices() *QuantityPrices {
	return &QuantityPrices{prices: make(map[string]Number)}
}

// Set records a price. Overwriting keeps the original position.
func (q *QuantityPrices) Set(quantity string, price Number) {
	if _, exists := q.prices[quantity]; !exists {
		q.order = append(q.order, quantity)
	}
	q.prices[quantity] = price
}

// Get returns the price for a quantity.
func (q *QuantityPrices) Get(quantity string) (Number, bool) {
	price, ok := q.prices[quantity]
	return price, ok
}

// Quantities returns the quantities in first-seen order.
func (q *QuantityPrices) Quantities() []string {
	return append([]string(nil), q.order...)
}

// Len returns the number of quantities.
func (q *QuantityPrices) Len() int {
	return len(q.order)
}

// MarshalJSON writes {"<quantity>": <price>, ...}.
func (q *QuantityPrices) MarshalJSON() ([]byte, error) {
	members := make([]member, len(q.order))
	for i, quantity := range q.order {
		members[i] = member{quantity, q.prices[quantity]}
	}
	return marshalObject(members)
}

// PriceTable maps price keys to their quantity/price breaks.
type PriceTable struct {
	order   []string
	entries map[string]*QuantityPrices
}

// NewPriceTable returns an empty table.
func NewPriceTable() *PriceTable {
	return &PriceTable{entries: make(map[string]*QuantityPrices)}
}

// Set records prices[key][quantity] = price.
func (t *PriceTable) Set(key, quantity string, price Number) {
	entry, exists := t.entries[key]
	if !exists {
		entry = newQuantityPrices()
		t.entries[key] = entry
		t.order = append(t.order, key)
	}
	entry.Set(quantity, price)
}

// Get returns the quantity breaks of a key.
func (t *PriceTable) Get(key string) (*QuantityPrices, bool) {
	entry, ok := t.entries[key]
	return entry, ok
}

// Keys returns the price keys in first-seen order.
func (t *PriceTable) Keys() []string {
	return append([]string(nil), t.order...)
}

// Len returns the number of price keys.
func (t *PriceTable) Len() int {
	return len(t.order)
}

// MarshalJSON writes {"<price key>": {...}, ...}.
func (t *PriceTable) MarshalJSON() ([]byte, error) {
	members := make([]member, len(t.order))
	for i, key := range t.order {
		members[i] = member{key, t.entries[key]}
	}
	return marshalObject(members)
}

// =============================================================================
// PRODUCT
// =============================================================================

// Product is the aggregated price list of one product.
type Product struct {
	Name       string
	Categories Categories
	Prices     *PriceTable
}

// HasData reports whether the product has both categories and prices.
// Products without either are left out of the catalog.
func (p *Product) HasData() bool {
	return len(p.Categories) > 0 && p.Prices.Len() > 0
}

// MarshalJSON writes {"name", "categories", "prices"}.
func (p *Product) MarshalJSON() ([]byte, error) {
	categories := p.Categories
	if categories == nil {
		categories = Categories{}
	}
	return marshalObject([]member{
		{"name", p.Name},
		{"categories", categories},
		{"prices", p.Prices},
	})
}

// AggregateStats counts what happened to the rows of one product.
type AggregateStats struct {
	RowsRead   int
	RowsPriced int

	// Skip reasons. A row is counted under the first reason that applies.
	SkippedNoKey    int
	SkippedQuantity int
	SkippedPrice    int
}

// RowsSkipped returns the total number of skipped rows.
func (s AggregateStats) RowsSkipped() int {
	return s.SkippedNoKey + s.SkippedQuantity + s.SkippedPrice
}

// Aggregate folds rows into a Product named productName.
//
// PARAMETERS:
//   - rows: The data rows of one price list.
//   - productName: The display name of the product.
//
// RETURNS:
//   - The product. Its categories and prices may be empty.
//   - Row statistics.
func Aggregate(rows []types.Row, productName string) (*Product, AggregateStats) {
	stats := AggregateStats{RowsRead: len(rows)}

	product := &Product{
		Name:       productName,
		Categories: BuildCategories(rows),
		Prices:     NewPriceTable(),
	}

	for _, row := range rows {
		key, ok := BuildKey(row, product.Categories)
		if !ok {
			stats.SkippedNoKey++
			continue
		}

		quantity, ok := Coerce(row[ColumnQuantity])
		if !ok || quantity.IsZero() {
			stats.SkippedQuantity++
			continue
		}

		price, ok := Coerce(row[ColumnPrice])
		if !ok || price.IsZero() {
			stats.SkippedPrice++
			continue
		}

		product.Prices.Set(key, quantity.String(), price)
		stats.RowsPriced++
	}

	return product, stats
}
