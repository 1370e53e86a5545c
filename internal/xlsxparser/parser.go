// =============================================================================
// Pricing Data Generator - XLSX Workbook Parser
// =============================================================================
//
// This module reads price lists kept as Excel workbooks. Only the first
// visible sheet is read, and it is laid out exactly like a CSV price list:
//
//   | Column A | Column B | Column C | Column D | Column E |
//   |----------|----------|----------|----------|----------|
//   | Size     | Sides    | Quantity | Price    | Notes    |
//   | 4x6      | Single   | 100      | 12.5     |          |
//   | 4x6      | Double   | 100      | 18       | rush     |
//
// Cell values are read as displayed (formatted text), so a price cell formatted
// with a currency symbol will not coerce and its row is skipped downstream.
//
// =============================================================================

package xlsxparser

import (
	"errors"
	"fmt"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/ginjaninja78/pricing-data-generator/internal/types"
)

// ErrNoSheets is returned for a workbook without a readable sheet.
var ErrNoSheets = errors.New("workbook has no sheets")

// =============================================================================
// WORKBOOK SOURCE
// =============================================================================

// WorkbookSource is an XLSX price list on disk.
type WorkbookSource struct {
	Path string
}

// ReadTable parses the first sheet of the workbook at s.Path.
func (s WorkbookSource) ReadTable() (*types.Table, error) {
	return Parse(s.Path)
}

// =============================================================================
// PARSER FUNCTIONS
// =============================================================================

// Parse reads the first sheet of an XLSX workbook.
//
// PARAMETERS:
//   - workbookPath: The path to the XLSX file.
//
// RETURNS:
//   - A pointer to the Table built from the sheet's header row and data rows.
//   - An error if the file cannot be opened or the sheet cannot be read.
func Parse(workbookPath string) (*types.Table, error) {
	f, err := excelize.OpenFile(workbookPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open workbook: %w", err)
	}
	defer f.Close()

	sheetName := firstVisibleSheet(f)
	if sheetName == "" {
		return nil, ErrNoSheets
	}

	// Raw values keep number formats ("$#,##0.00") out of Quantity and Price.
	rows, err := f.GetRows(sheetName, excelize.Options{RawCellValue: true})
	if err != nil {
		return nil, fmt.Errorf("failed to read rows from sheet '%s': %w", sheetName, err)
	}

	table, err := buildTable(rows)
	if err != nil {
		return nil, fmt.Errorf("sheet '%s': %w", sheetName, err)
	}
	table.SourceFile = workbookPath
	return table, nil
}

// firstVisibleSheet returns the name of the first sheet that is not hidden.
func firstVisibleSheet(f *excelize.File) string {
	for _, name := range f.GetSheetList() {
		visible, err := f.GetSheetVisible(name)
		if err == nil && visible {
			return name
		}
	}
	return f.GetSheetName(0)
}

// buildTable turns sheet rows into a table. Leading blank rows before the
// header are skipped, as are blank data rows.
func buildTable(rows [][]string) (*types.Table, error) {
	start := 0
	for start < len(rows) && isRowEmpty(rows[start]) {
		start++
	}
	if start == len(rows) {
		return nil, errors.New("sheet is empty")
	}

	table := &types.Table{Headers: cleanHeaders(rows[start])}

	for _, row := range rows[start+1:] {
		if isRowEmpty(row) {
			continue
		}

		record := make(types.Row, len(table.Headers))
		for i, header := range table.Headers {
			if i >= len(row) {
				break
			}
			record[header] = strings.TrimSpace(row[i])
		}
		table.Rows = append(table.Rows, record)
	}

	return table, nil
}

// =============================================================================
// HELPER FUNCTIONS
// =============================================================================

// cleanHeaders trims header cells and names blank ones by position.
func cleanHeaders(headers []string) []string {
	cleaned := make([]string, len(headers))
	for i, header := range headers {
		header = strings.TrimSpace(header)
		if header == "" {
			header = fmt.Sprintf("Column_%d", i+1)
		}
		cleaned[i] = header
	}
	return cleaned
}

// isRowEmpty checks if a row contains only empty cells.
func isRowEmpty(row []string) bool {
	for _, cell := range row {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}
