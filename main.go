// =============================================================================
// Pricing Data Generator - Main Entry Point
// =============================================================================
//
// This is the main entry point for the pricegen CLI. It delegates command
// execution to the cmd package.
//
// USAGE:
//   pricegen generate       - Build pricing_data.json from the price lists
//   pricegen validate FILE  - Check an existing pricing document
//   pricegen version        - Display the application version
//
// ARCHITECTURE:
//   - cmd/           : CLI command definitions (Cobra)
//   - internal/      : Pricing model, readers, writer, validation, config
//   - pkg/           : Shared file utilities
//
// =============================================================================

package main

import (
	"github.com/ginjaninja78/pricing-data-generator/cmd"
)

func main() {
	cmd.Execute()
}
