// =============================================================================
// Pricing Data Generator - Validation Engine
// =============================================================================
//
// This module checks a rendered pricing document before it is written, and
// any existing document on request (pricegen validate).
//
// VALIDATION STRATEGY:
//   Validation is performed at two levels:
//   1. Structure: the document is checked against a JSON schema
//      (schema.go). A structural failure stops validation.
//   2. Linkage: each product is checked against the field registry:
//      - the version matches the format version
//      - each product's name matches its key
//      - categories and fields are known and placed where the registry says
//      - every price key fragment names a field and value listed in the same
//        product's categories
//
// ERROR HANDLING:
//   - Errors are collected, not returned on first failure
//   - "error" findings make the document invalid
//   - "warning" findings (unsorted values, non-canonical key order, odd
//     quantity keys) are reported but do not fail the document
//
// =============================================================================

package validation

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/ginjaninja78/pricing-data-generator/internal/pricing"
)

// =============================================================================
// VALIDATION ERROR TYPES
// =============================================================================

const (
	SeverityError   = "error"
	SeverityWarning = "warning"
)

// ValidationError represents a single validation finding.
type ValidationError struct {
	// Severity is SeverityError or SeverityWarning.
	Severity string

	// Product is the product key the finding belongs to, if any.
	Product string

	// Path locates the offending member, e.g. "prices/Size=4x6".
	Path string

	// Value is the offending value.
	Value string

	// Rule is the check that failed.
	Rule string

	// Message is a human-readable error message.
	Message string
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	var b strings.Builder
	fmt.Fprintf(&b, "[%s] ", strings.ToUpper(e.Severity))
	if e.Product != "" {
		fmt.Fprintf(&b, "Product '%s', ", e.Product)
	}
	if e.Path != "" {
		fmt.Fprintf(&b, "%s: ", e.Path)
	}
	b.WriteString(e.Message)
	if e.Value != "" {
		fmt.Fprintf(&b, " (value: '%s')", e.Value)
	}
	return b.String()
}

// =============================================================================
// VALIDATION RESULT
// =============================================================================

// ValidationResult contains the results of validation.
type ValidationResult struct {
	// IsValid is true if there are no error findings.
	IsValid bool

	// Errors contains all findings (including warnings).
	Errors []*ValidationError

	// ErrorCount is the number of error findings.
	ErrorCount int

	// WarningCount is the number of warnings.
	WarningCount int

	// ProductsValidated is the number of products checked for linkage.
	ProductsValidated int

	// PriceKeysValidated is the number of price keys checked.
	PriceKeysValidated int
}

func (r *ValidationResult) add(e *ValidationError) {
	r.Errors = append(r.Errors, e)
	if e.Severity == SeverityError {
		r.ErrorCount++
	} else {
		r.WarningCount++
	}
}

// =============================================================================
// VALIDATOR
// =============================================================================

// ValidationOptions contains options for validation.
type ValidationOptions struct {
	// TreatWarningsAsErrors makes any warning invalidate the document.
	// Default: false
	TreatWarningsAsErrors bool

	// LinkageAsWarnings reports price keys that cannot be matched to the
	// product's categories as warnings. A value containing "|Field=" for a
	// known field splits ambiguously, so such keys are not always wrong.
	// Default: false
	LinkageAsWarnings bool
}

// Validator checks pricing documents.
type Validator struct {
	options ValidationOptions
}

// NewValidator creates a Validator with default options.
func NewValidator() *Validator {
	return NewValidatorWithOptions(ValidationOptions{})
}

// NewValidatorWithOptions creates a Validator with custom options.
func NewValidatorWithOptions(options ValidationOptions) *Validator {
	return &Validator{options: options}
}

// document mirrors the output structure for linkage checks. Maps lose member
// order, which only the warning checks would care about.
type document struct {
	Version  string                     `json:"version"`
	Products map[string]documentProduct `json:"products"`
}

type documentProduct struct {
	Name       string                            `json:"name"`
	Categories map[string]documentCategory       `json:"categories"`
	Prices     map[string]map[string]json.Number `json:"prices"`
}

type documentCategory struct {
	Name   string                   `json:"name"`
	Icon   string                   `json:"icon"`
	Fields map[string]documentField `json:"fields"`
}

type documentField struct {
	Values []string `json:"values"`
	Icon   string   `json:"icon"`
	Order  int      `json:"order"`
}

// =============================================================================
// MAIN VALIDATION FUNCTIONS
// =============================================================================

// Validate checks a pricing document with default options.
//
// PARAMETERS:
//   - data: The JSON document.
//
// RETURNS:
//   - A ValidationResult listing every finding.
func Validate(data []byte) *ValidationResult {
	return NewValidator().ValidateDocument(data)
}

// ValidateFile reads and checks the document at path with default options.
func ValidateFile(path string) (*ValidationResult, error) {
	return NewValidator().ValidateFile(path)
}

// ValidateFile reads and checks the document at path.
func (v *Validator) ValidateFile(path string) (*ValidationResult, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read document: %w", err)
	}
	return v.ValidateDocument(data), nil
}

// ValidateDocument runs the structural and linkage checks over data.
func (v *Validator) ValidateDocument(data []byte) *ValidationResult {
	result := &ValidationResult{}

	var generic any
	if err := json.Unmarshal(data, &generic); err != nil {
		result.add(&ValidationError{Severity: SeverityError, Rule: "json", Message: err.Error()})
		return v.finish(result)
	}

	if err := ValidateSchema(generic); err != nil {
		result.add(&ValidationError{Severity: SeverityError, Rule: "schema", Message: err.Error()})
		return v.finish(result)
	}

	var doc document
	decoder := json.NewDecoder(bytes.NewReader(data))
	decoder.UseNumber()
	if err := decoder.Decode(&doc); err != nil {
		result.add(&ValidationError{Severity: SeverityError, Rule: "json", Message: err.Error()})
		return v.finish(result)
	}

	if doc.Version != pricing.CatalogVersion {
		result.add(&ValidationError{
			Severity: SeverityError,
			Path:     "version",
			Value:    doc.Version,
			Rule:     "version",
			Message:  fmt.Sprintf("unsupported document version, want %q", pricing.CatalogVersion),
		})
	}

	for _, key := range sortedKeys(doc.Products) {
		v.validateProduct(key, doc.Products[key], result)
		result.ProductsValidated++
	}

	return v.finish(result)
}

func (v *Validator) finish(result *ValidationResult) *ValidationResult {
	result.IsValid = result.ErrorCount == 0
	if v.options.TreatWarningsAsErrors && result.WarningCount > 0 {
		result.IsValid = false
	}
	return result
}

// =============================================================================
// PRODUCT CHECKS
// =============================================================================

// validateProduct checks one product's categories and price keys.
func (v *Validator) validateProduct(key string, product documentProduct, result *ValidationResult) {
	finding := func(severity, path, value, rule, message string) {
		result.add(&ValidationError{
			Severity: severity,
			Product:  key,
			Path:     path,
			Value:    value,
			Rule:     rule,
			Message:  message,
		})
	}

	if product.Name != key {
		finding(SeverityError, "name", product.Name, "name", "product name does not match its key")
	}

	values := make(map[string]documentField)
	for _, categoryKey := range sortedKeys(product.Categories) {
		category := product.Categories[categoryKey]
		path := "categories/" + categoryKey

		info, _ := pricing.LookupCategory(pricing.CategoryKey(categoryKey))
		if category.Name != info.Name || category.Icon != info.Icon {
			finding(SeverityWarning, path, category.Name, "registry", "category display metadata differs from the registry")
		}

		for _, fieldName := range sortedKeys(category.Fields) {
			field := category.Fields[fieldName]
			fieldPath := path + "/fields/" + fieldName

			fd, known := pricing.LookupField(fieldName)
			if !known {
				finding(SeverityError, fieldPath, fieldName, "field", "unknown field")
				continue
			}
			if string(fd.Category) != categoryKey {
				finding(SeverityError, fieldPath, fieldName, "category",
					fmt.Sprintf("field belongs to category %q", fd.Category))
				continue
			}
			if field.Order != fd.Rank {
				finding(SeverityWarning, fieldPath, fmt.Sprint(field.Order), "order",
					fmt.Sprintf("field order should be %d", fd.Rank))
			}
			if !sort.StringsAreSorted(field.Values) {
				finding(SeverityWarning, fieldPath, "", "sorted", "values are not sorted")
			}

			values[fieldName] = field
		}
	}

	linkage := SeverityError
	if v.options.LinkageAsWarnings {
		linkage = SeverityWarning
	}

	for _, priceKey := range sortedKeys(product.Prices) {
		result.PriceKeysValidated++
		path := "prices/" + priceKey

		fragments, err := pricing.SplitKey(priceKey)
		if err != nil {
			finding(linkage, path, priceKey, "price_key", err.Error())
			continue
		}

		lastRank := -1
		for _, fragment := range fragments {
			field, ok := values[fragment.Field]
			if !ok {
				finding(linkage, path, fragment.Field, "price_key", "price key names a field missing from the categories")
				continue
			}
			if !containsSorted(field.Values, fragment.Value) {
				finding(linkage, path, fragment.Value, "price_key",
					fmt.Sprintf("price key value is not listed under %s", fragment.Field))
			}

			if rank := registryIndex(fragment.Field); rank < lastRank {
				finding(SeverityWarning, path, fragment.Field, "key_order", "price key fragments are not in canonical order")
			} else {
				lastRank = rank
			}
		}

		for _, quantity := range sortedKeys(product.Prices[priceKey]) {
			if n, ok := pricing.Coerce(quantity); !ok || n.IsZero() {
				finding(SeverityWarning, path, quantity, "quantity", "quantity key is not a non-zero number")
			}
		}
	}
}

// =============================================================================
// HELPER FUNCTIONS
// =============================================================================

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// containsSorted falls back to a linear scan when values are unsorted.
func containsSorted(values []string, v string) bool {
	if sort.StringsAreSorted(values) {
		i := sort.SearchStrings(values, v)
		return i < len(values) && values[i] == v
	}
	for _, candidate := range values {
		if candidate == v {
			return true
		}
	}
	return false
}

// registryIndex is the position of a field in canonical key order.
func registryIndex(name string) int {
	for i, fd := range pricing.KnownFields() {
		if fd.Name == name {
			return i
		}
	}
	return -1
}

// =============================================================================
// ERROR FORMATTING
// =============================================================================

// FormatErrors formats validation errors for display or logging.
//
// PARAMETERS:
//   - errors: The validation errors to format.
//
// RETURNS:
//   - A formatted string representation of the errors.
func FormatErrors(errors []*ValidationError) string {
	if len(errors) == 0 {
		return "No validation errors."
	}

	var builder strings.Builder

	builder.WriteString(fmt.Sprintf("Validation completed with %d finding(s):\n\n", len(errors)))

	for i, err := range errors {
		builder.WriteString(fmt.Sprintf("%d. %s\n", i+1, err.Error()))
	}

	return builder.String()
}
