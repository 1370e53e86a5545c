// =============================================================================
// Pricing Data Generator - File Manager Utility
// =============================================================================
//
// This module provides file management utilities for the generator:
//   - Price list discovery
//   - Product naming from file names
//   - Atomic output writes
//   - Run summary formatting
//
// NAMING CONVENTION:
//   Price lists are named "<prefix>-<product-name>.<ext>". The prefix (often a
//   sort number) is dropped and the remaining hyphens become spaces:
//
//   | File                       | Product          |
//   |----------------------------|------------------|
//   | 01-business-cards.csv      | business cards   |
//   | 10-NCR-Forms.csv           | NCR Forms        |
//   | flyers.csv                 | (error)          |
//
// =============================================================================

package utils

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/google/uuid"
)

// ErrProductName is returned for a file name that does not follow the
// "<prefix>-<product-name>" convention.
var ErrProductName = errors.New("file name has no product name")

// WorkbookPattern selects XLSX price lists.
const WorkbookPattern = "*.xlsx"

// =============================================================================
// FILE MANAGER
// =============================================================================

// FileManager locates price lists.
type FileManager struct {
	// InputDir is the directory scanned for price lists.
	InputDir string

	// Patterns are glob patterns relative to InputDir.
	Patterns []string

	// IncludeWorkbooks adds WorkbookPattern to Patterns.
	IncludeWorkbooks bool
}

// NewFileManager creates a new FileManager.
func NewFileManager(inputDir string, patterns []string, includeWorkbooks bool) *FileManager {
	if len(patterns) == 0 {
		patterns = []string{"*.csv"}
	}
	return &FileManager{
		InputDir:         inputDir,
		Patterns:         patterns,
		IncludeWorkbooks: includeWorkbooks,
	}
}

// =============================================================================
// FILE DISCOVERY
// =============================================================================

// DiscoverInputFiles scans the input directory for price lists.
//
// RETURNS:
//   - The matching regular files, without duplicates, sorted by file name so
//     the product order is stable between runs.
//   - An error if the directory cannot be read or a pattern is malformed.
func (fm *FileManager) DiscoverInputFiles() ([]string, error) {
	if _, err := os.Stat(fm.InputDir); err != nil {
		return nil, fmt.Errorf("failed to scan input directory: %w", err)
	}

	patterns := fm.Patterns
	if fm.IncludeWorkbooks {
		patterns = append(append([]string{}, patterns...), WorkbookPattern)
	}

	seen := make(map[string]bool)
	var result []string

	for _, pattern := range patterns {
		files, err := filepath.Glob(filepath.Join(fm.InputDir, pattern))
		if err != nil {
			return nil, fmt.Errorf("bad file pattern %q: %w", pattern, err)
		}

		for _, file := range files {
			if seen[file] {
				continue
			}
			info, err := os.Stat(file)
			if err != nil || info.IsDir() {
				continue
			}
			seen[file] = true
			result = append(result, file)
		}
	}

	sort.Slice(result, func(i, j int) bool {
		bi, bj := filepath.Base(result[i]), filepath.Base(result[j])
		if bi != bj {
			return bi < bj
		}
		return result[i] < result[j]
	})

	return result, nil
}

// IsWorkbook reports whether path names an XLSX workbook.
func IsWorkbook(path string) bool {
	return strings.EqualFold(filepath.Ext(path), ".xlsx")
}

// =============================================================================
// PRODUCT NAMING
// =============================================================================

// ProductName derives the product name from a price list path.
//
// PARAMETERS:
//   - path: The price list path.
//
// RETURNS:
//   - The product name.
//   - ErrProductName (wrapped) if the name has no hyphen-delimited prefix or
//     nothing follows it.
func ProductName(path string) (string, error) {
	base := filepath.Base(path)
	stem := strings.TrimSuffix(base, filepath.Ext(base))

	_, rest, found := strings.Cut(stem, "-")
	if !found {
		return "", fmt.Errorf("%w: %q lacks a \"<prefix>-\" segment", ErrProductName, base)
	}

	name := strings.ReplaceAll(rest, "-", " ")
	if strings.TrimSpace(name) == "" {
		return "", fmt.Errorf("%w: %q", ErrProductName, base)
	}

	return name, nil
}

// =============================================================================
// OUTPUT WRITING
// =============================================================================

// WriteFileAtomic writes data to path through a temporary file in the same
// directory, so readers never see a partial document.
//
// PARAMETERS:
//   - path: The destination file.
//   - data: The file content.
//
// RETURNS:
//   - An error if the directory cannot be created or the write fails. The
//     destination is untouched on error.
func WriteFileAtomic(path string, data []byte) (err error) {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	tmpPath := filepath.Join(dir, fmt.Sprintf(".%s.%s.tmp", filepath.Base(path), uuid.New().String()))

	file, err := os.OpenFile(tmpPath, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0644)
	if err != nil {
		return fmt.Errorf("failed to create temporary file: %w", err)
	}
	defer func() {
		if err != nil {
			file.Close()
			os.Remove(tmpPath)
		}
	}()

	if _, err = file.Write(data); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	if err = file.Sync(); err != nil {
		return fmt.Errorf("failed to sync output: %w", err)
	}
	if err = file.Close(); err != nil {
		return fmt.Errorf("failed to close output: %w", err)
	}
	if err = os.Rename(tmpPath, path); err != nil {
		return fmt.Errorf("failed to replace %s: %w", path, err)
	}

	return nil
}

// =============================================================================
// PROCESSING SUMMARY
// =============================================================================

// ProcessingSummary contains summary information about a generate run.
type ProcessingSummary struct {
	RunID      string
	StartTime  time.Time
	EndTime    time.Time
	OutputFile string
	DryRun     bool

	TotalFiles  int
	Included    int
	Dropped     int
	Failed      int
	Products    int
	RowsPriced  int
	RowsSkipped int

	Files []FileSummary
}

// FileSummary is one price list line of the summary.
type FileSummary struct {
	InputFile string
	Product   string
	Status    string
	Rows      int
	Message   string
}

// WriteSummary writes a human-readable run summary.
//
// PARAMETERS:
//   - w: The destination (usually stdout).
//   - summary: The processing summary.
//
// RETURNS:
//   - An error if writing fails.
func WriteSummary(w io.Writer, summary ProcessingSummary) error {
	output := summary.OutputFile
	if summary.DryRun {
		output += " (dry run, not written)"
	}

	fmt.Fprintf(w, "Pricing Data Generator - Run Summary\n"+
		"================================================================================\n"+
		"  Run ID:       %s\n"+
		"  Duration:     %s\n"+
		"  Output:       %s\n\n"+
		"  Files:        %d (included %d, dropped %d, failed %d)\n"+
		"  Products:     %d\n"+
		"  Rows priced:  %d\n"+
		"  Rows skipped: %d\n\n",
		summary.RunID,
		summary.EndTime.Sub(summary.StartTime).Round(time.Millisecond),
		output,
		summary.TotalFiles, summary.Included, summary.Dropped, summary.Failed,
		summary.Products,
		summary.RowsPriced,
		summary.RowsSkipped)

	if len(summary.Files) > 0 {
		tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
		fmt.Fprintln(tw, "  FILE\tPRODUCT\tSTATUS\tROWS\tDETAIL")
		for _, f := range summary.Files {
			fmt.Fprintf(tw, "  %s\t%s\t%s\t%d\t%s\n", f.InputFile, f.Product, f.Status, f.Rows, f.Message)
		}
		if err := tw.Flush(); err != nil {
			return err
		}
	}

	_, err := fmt.Fprintln(w, "================================================================================")
	return err
}
