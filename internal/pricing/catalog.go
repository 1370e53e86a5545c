// =============================================================================
// Pricing Data Generator - Catalog Assembler
// =============================================================================
//
// Assemble drives the per-product pipeline over every input and merges the
// results into one versioned Catalog.
//
// ERROR POLICY:
//   - Row defects stay inside Aggregate (rows are skipped).
//   - File defects (unreadable table, missing Quantity/Price header, a panic
//     while aggregating) are recorded in the file's FileResult and logged;
//     the remaining inputs are still processed.
//   - A catalog with no products is the only fatal outcome: ErrNoValidData.
//
// CONCURRENCY:
//   Products share no state, so with MaxConcurrency > 1 inputs are aggregated
//   in parallel. Results are merged in input order either way, so the output
//   does not depend on scheduling.
//
// =============================================================================

package pricing

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/ginjaninja78/pricing-data-generator/internal/types"
)

// CatalogVersion is the document format version.
const CatalogVersion = "1.0"

var (
	// ErrNoValidData means no input produced a usable product.
	ErrNoValidData = errors.New("no valid pricing data was generated")

	// ErrMissingColumn means a price list header lacks a required column.
	ErrMissingColumn = errors.New("missing required column")

	// ErrInternalFault wraps a panic recovered while building a product.
	ErrInternalFault = errors.New("internal fault")
)

// =============================================================================
// CATALOG
// =============================================================================

// Catalog is the root of the output document.
type Catalog struct {
	Version string

	products []*Product
	index    map[string]int
}

// NewCatalog returns an empty catalog at CatalogVersion.
func NewCatalog() *Catalog {
	return &Catalog{
		Version: CatalogVersion,
		index:   make(map[string]int),
	}
}

// Put adds p, replacing a product of the same name in place.
// It reports whether a product was replaced.
func (c *Catalog) Put(p *Product) bool {
	if i, exists := c.index[p.Name]; exists {
		c.products[i] = p
		return true
	}
	c.index[p.Name] = len(c.products)
	c.products = append(c.products, p)
	return false
}

// Product returns the product with the given name.
func (c *Catalog) Product(name string) (*Product, bool) {
	i, ok := c.index[name]
	if !ok {
		return nil, false
	}
	return c.products[i], true
}

// Products returns the products in insertion order.
func (c *Catalog) Products() []*Product {
	return append([]*Product(nil), c.products...)
}

// Len returns the number of products.
func (c *Catalog) Len() int {
	return len(c.products)
}

// MarshalJSON writes {"version", "products": {<name>: ...}}.
func (c *Catalog) MarshalJSON() ([]byte, error) {
	products := make([]member, len(c.products))
	for i, p := range c.products {
		products[i] = member{p.Name, p}
	}
	productsJSON, err := marshalObject(products)
	if err != nil {
		return nil, err
	}
	return marshalObject([]member{
		{"version", c.Version},
		{"products", json.RawMessage(productsJSON)},
	})
}

// =============================================================================
// INPUTS AND RESULTS
// =============================================================================

// TableSource produces the parsed price list of one input.
type TableSource interface {
	ReadTable() (*types.Table, error)
}

// Input is one price list to assemble.
type Input struct {
	// Source identifies the input in diagnostics (usually the file name).
	Source string

	// Product is the product name the input contributes to.
	Product string

	// Table reads the input's rows.
	Table TableSource

	// Err is a defect found before reading (for example an unusable file
	// name). An input with Err set is reported as failed and never read.
	Err error
}

// FileStatus is the outcome of one input.
type FileStatus string

const (
	StatusIncluded FileStatus = "included"
	StatusDropped  FileStatus = "dropped"
	StatusFailed   FileStatus = "failed"
)

// FileResult is the outcome of processing a single input.
type FileResult struct {
	Source   string
	Product  string
	Status   FileStatus
	Err      error
	Stats    AggregateStats
	Duration time.Duration
}

// Report summarizes an Assemble run.
type Report struct {
	Files []FileResult

	Included int
	Dropped  int
	Failed   int

	RowsPriced  int
	RowsSkipped int
}

// AssembleOptions configures Assemble.
type AssembleOptions struct {
	// Logger receives progress and diagnostics. Nil discards them.
	Logger *slog.Logger

	// MaxConcurrency bounds parallel aggregation. Values below 2 run inputs
	// one at a time.
	MaxConcurrency int
}

// =============================================================================
// ASSEMBLY
// =============================================================================

// Assemble builds the catalog from inputs, in the order given.
//
// RETURNS:
//   - The catalog (nil when no product survived).
//   - A report covering every input, also on failure.
//   - ErrNoValidData if the catalog would be empty.
func Assemble(inputs []Input, opts AssembleOptions) (*Catalog, *Report, error) {
	logger := opts.Logger
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	results := make([]FileResult, len(inputs))
	products := make([]*Product, len(inputs))

	if opts.MaxConcurrency > 1 {
		var g errgroup.Group
		g.SetLimit(opts.MaxConcurrency)
		for i := range inputs {
			i := i
			g.Go(func() error {
				results[i], products[i] = runInput(inputs[i], logger)
				return nil
			})
		}
		_ = g.Wait()
	} else {
		for i := range inputs {
			results[i], products[i] = runInput(inputs[i], logger)
		}
	}

	catalog := NewCatalog()
	report := &Report{Files: results}

	for i, result := range results {
		report.RowsPriced += result.Stats.RowsPriced
		report.RowsSkipped += result.Stats.RowsSkipped()

		switch result.Status {
		case StatusIncluded:
			report.Included++
			if catalog.Put(products[i]) {
				logger.Warn("duplicate product name, later file wins",
					"file", result.Source, "product", result.Product)
			}
		case StatusDropped:
			report.Dropped++
			logger.Info("product dropped: no valid categories or prices",
				"file", result.Source, "product", result.Product,
				"rows", result.Stats.RowsRead)
		case StatusFailed:
			report.Failed++
			logger.Error("file failed", "file", result.Source, "error", result.Err)
		}
	}

	if catalog.Len() == 0 {
		return nil, report, fmt.Errorf("%w (%d input file(s))", ErrNoValidData, len(inputs))
	}

	return catalog, report, nil
}

// runInput reads and aggregates one input. A panic is turned into a failed
// result rather than taking the batch down.
func runInput(in Input, logger *slog.Logger) (result FileResult, product *Product) {
	start := time.Now()
	result = FileResult{Source: in.Source, Product: in.Product}

	defer func() {
		if r := recover(); r != nil {
			result.Status = StatusFailed
			result.Err = fmt.Errorf("%w: %v", ErrInternalFault, r)
			product = nil
		}
		result.Duration = time.Since(start)
	}()

	logger.Info("processing file", "file", in.Source, "product", in.Product)

	if in.Err != nil {
		result.Status = StatusFailed
		result.Err = in.Err
		return result, nil
	}

	table, err := in.Table.ReadTable()
	if err != nil {
		result.Status = StatusFailed
		result.Err = fmt.Errorf("read %s: %w", in.Source, err)
		return result, nil
	}

	for _, column := range RequiredColumns {
		if !table.HasColumn(column) {
			result.Status = StatusFailed
			result.Err = fmt.Errorf("%w %q in %s", ErrMissingColumn, column, in.Source)
			return result, nil
		}
	}

	product, result.Stats = Aggregate(table.Rows, in.Product)
	logger.Debug("aggregated rows",
		"file", in.Source,
		"rows", result.Stats.RowsRead,
		"priced", result.Stats.RowsPriced,
		"skipped", result.Stats.RowsSkipped())

	if !product.HasData() {
		result.Status = StatusDropped
		return result, nil
	}

	result.Status = StatusIncluded
	return result, product
}
