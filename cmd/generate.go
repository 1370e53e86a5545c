// =============================================================================
// Pricing Data Generator - Generate Command
// =============================================================================
//
// This file defines the 'generate' command, the main command of the tool. It
// orchestrates the whole pipeline from price lists to the pricing document.
//
// COMMAND USAGE:
//   pricegen generate [flags]
//
// FLAGS:
//   --dry-run            : Build and validate the document without writing it
//   --input-dir          : Directory scanned for price lists
//   --output             : Path of the generated document
//   --workers            : Number of price lists aggregated in parallel
//   --include-workbooks  : Also read *.xlsx price lists
//
// PROCESSING PIPELINE:
//   1. Apply flag overrides to the loaded configuration
//   2. Discover price lists in the input directory (sorted by file name)
//   3. Derive each product name from its file name
//   4. Aggregate every price list into a product (file faults are isolated)
//   5. Render the catalog as JSON and validate it
//   6. Write the document atomically
//   7. Print the run summary
//
// =============================================================================

package cmd

import (
	"fmt"
	"io"
	"log/slog"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/ginjaninja78/pricing-data-generator/internal/config"
	"github.com/ginjaninja78/pricing-data-generator/internal/csvparser"
	"github.com/ginjaninja78/pricing-data-generator/internal/jsonwriter"
	"github.com/ginjaninja78/pricing-data-generator/internal/pricing"
	"github.com/ginjaninja78/pricing-data-generator/internal/validation"
	"github.com/ginjaninja78/pricing-data-generator/internal/xlsxparser"
	"github.com/ginjaninja78/pricing-data-generator/pkg/utils"
)

// =============================================================================
// COMMAND FLAGS
// =============================================================================

// generateFlags holds the flag values of the generate command.
type generateFlags struct {
	dryRun           bool
	inputDir         string
	output           string
	workers          int
	includeWorkbooks bool
}

var genFlags generateFlags

// =============================================================================
// GENERATE COMMAND DEFINITION
// =============================================================================

// generateCmd represents the 'generate' command.
var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Generate pricing_data.json from the price lists",
	Long: `The generate command scans the input directory for price lists, turns each
one into a product with its option categories and price table, and writes all
products to a single JSON document.

A price list that cannot be read, lacks a Quantity or Price column, or has a
file name without a "<prefix>-" segment is reported and skipped. A price list
that yields no options or no prices is dropped. The run fails only when no
product at all could be generated; in that case no file is written.`,

	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := *mainConfig
		applyGenerateFlags(cmd, &cfg, genFlags)
		if err := config.Validate(&cfg); err != nil {
			return fmt.Errorf("invalid flags: %w", err)
		}
		return runGenerate(&cfg, genFlags.dryRun, logger, cmd.OutOrStdout())
	},
}

func init() {
	rootCmd.AddCommand(generateCmd)

	generateCmd.Flags().BoolVar(
		&genFlags.dryRun,
		"dry-run",
		false,
		"Build and validate the document without writing it",
	)

	generateCmd.Flags().StringVar(
		&genFlags.inputDir,
		"input-dir",
		"",
		"Directory scanned for price lists (overrides input_dir)",
	)

	generateCmd.Flags().StringVarP(
		&genFlags.output,
		"output",
		"o",
		"",
		"Path of the generated document (overrides output_file)",
	)

	generateCmd.Flags().IntVar(
		&genFlags.workers,
		"workers",
		0,
		"Number of price lists aggregated in parallel (overrides max_concurrency)",
	)

	generateCmd.Flags().BoolVar(
		&genFlags.includeWorkbooks,
		"include-workbooks",
		false,
		"Also read *.xlsx price lists (overrides include_workbooks)",
	)
}

// applyGenerateFlags copies explicitly set flags over the configuration.
func applyGenerateFlags(cmd *cobra.Command, cfg *config.MainConfig, flags generateFlags) {
	if cmd.Flags().Changed("input-dir") {
		cfg.InputDir = flags.inputDir
	}
	if cmd.Flags().Changed("output") {
		cfg.OutputFile = flags.output
	}
	if cmd.Flags().Changed("workers") {
		cfg.MaxConcurrency = flags.workers
	}
	if cmd.Flags().Changed("include-workbooks") {
		cfg.IncludeWorkbooks = flags.includeWorkbooks
	}
}

// =============================================================================
// MAIN PROCESSING FUNCTION
// =============================================================================

// runGenerate runs the pipeline for one configuration.
//
// PARAMETERS:
//   - cfg: The effective configuration.
//   - dryRun: Skip writing the document.
//   - log: The run logger.
//   - out: Where the run summary is printed.
//
// RETURNS:
//   - An error wrapping pricing.ErrNoValidData if no product was generated,
//     or any discovery, validation or write failure.
func runGenerate(cfg *config.MainConfig, dryRun bool, log *slog.Logger, out io.Writer) error {
	startTime := time.Now()
	runID := uuid.New().String()
	log = log.With("run_id", runID)

	// =========================================================================
	// STEP 1: DISCOVER PRICE LISTS
	// =========================================================================

	fm := utils.NewFileManager(cfg.InputDir, cfg.FilePatterns, cfg.IncludeWorkbooks)
	files, err := fm.DiscoverInputFiles()
	if err != nil {
		return fmt.Errorf("failed to discover price lists: %w", err)
	}
	log.Info("discovered price lists", "dir", cfg.InputDir, "files", len(files))

	// =========================================================================
	// STEP 2: ASSEMBLE THE CATALOG
	// =========================================================================

	inputs := buildInputs(files, cfg.CSVSettings)
	catalog, report, assembleErr := pricing.Assemble(inputs, pricing.AssembleOptions{
		Logger:         log,
		MaxConcurrency: cfg.MaxConcurrency,
	})

	summary := newSummary(runID, startTime, cfg.OutputFile, dryRun, report, catalog)

	if assembleErr != nil {
		summary.EndTime = time.Now()
		utils.WriteSummary(out, summary)
		return fmt.Errorf("generate: %w", assembleErr)
	}

	// =========================================================================
	// STEP 3: RENDER AND VALIDATE
	// =========================================================================

	data, err := jsonwriter.Generate(catalog)
	if err != nil {
		return fmt.Errorf("failed to render pricing document: %w", err)
	}

	validator := validation.NewValidatorWithOptions(validation.ValidationOptions{LinkageAsWarnings: true})
	result := validator.ValidateDocument(data)
	for _, finding := range result.Errors {
		if finding.Severity == validation.SeverityWarning {
			log.Warn("document check", "product", finding.Product, "finding", finding.Error())
		}
	}
	if !result.IsValid {
		return fmt.Errorf("generated document failed validation:\n%s", validation.FormatErrors(result.Errors))
	}

	// =========================================================================
	// STEP 4: WRITE THE DOCUMENT
	// =========================================================================

	if dryRun {
		log.Info("dry run, document not written", "output", cfg.OutputFile, "bytes", len(data))
	} else {
		if err := utils.WriteFileAtomic(cfg.OutputFile, data); err != nil {
			return err
		}
		log.Info("pricing data has been generated successfully",
			"output", cfg.OutputFile, "products", catalog.Len())
	}

	summary.EndTime = time.Now()
	return utils.WriteSummary(out, summary)
}

// =============================================================================
// HELPER FUNCTIONS
// =============================================================================

// buildInputs turns discovered files into pipeline inputs. A file whose name
// yields no product is still passed on, so it is reported with the others.
func buildInputs(files []string, settings config.CSVSettings) []pricing.Input {
	inputs := make([]pricing.Input, 0, len(files))

	for _, file := range files {
		in := pricing.Input{Source: filepath.Base(file)}

		in.Product, in.Err = utils.ProductName(file)

		if utils.IsWorkbook(file) {
			in.Table = xlsxparser.WorkbookSource{Path: file}
		} else {
			in.Table = csvparser.FileSource{Path: file, Settings: settings}
		}

		inputs = append(inputs, in)
	}

	return inputs
}

// newSummary converts an assembly report into the printable run summary.
func newSummary(runID string, start time.Time, output string, dryRun bool, report *pricing.Report, catalog *pricing.Catalog) utils.ProcessingSummary {
	summary := utils.ProcessingSummary{
		RunID:      runID,
		StartTime:  start,
		EndTime:    time.Now(),
		OutputFile: output,
		DryRun:     dryRun,
	}
	if catalog != nil {
		summary.Products = catalog.Len()
	}
	if report == nil {
		return summary
	}

	summary.TotalFiles = len(report.Files)
	summary.Included = report.Included
	summary.Dropped = report.Dropped
	summary.Failed = report.Failed
	summary.RowsPriced = report.RowsPriced
	summary.RowsSkipped = report.RowsSkipped

	for _, f := range report.Files {
		line := utils.FileSummary{
			InputFile: f.Source,
			Product:   f.Product,
			Status:    string(f.Status),
			Rows:      f.Stats.RowsRead,
		}
		switch {
		case f.Err != nil:
			line.Message = f.Err.Error()
		case f.Status == pricing.StatusDropped:
			line.Message = "no valid categories or prices"
		}
		summary.Files = append(summary.Files, line)
	}

	return summary
}
