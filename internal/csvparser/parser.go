// =============================================================================
// Pricing Data Generator - CSV Parser Module
// =============================================================================
//
// This module reads CSV price lists into tables of rows keyed by header. It
// handles the formats print shops actually export:
//   - Different delimiters (comma, semicolon, tab, pipe)
//   - Different encodings (UTF-8 with or without BOM, UTF-16, Latin-1,
//     Windows-1252)
//   - Ragged rows and sloppy quoting
//
// The first record is the header row. Blank records are skipped. Cells past
// the last header are ignored; missing trailing cells are left absent.
//
// =============================================================================

package csvparser

import (
	"bufio"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"

	"github.com/ginjaninja78/pricing-data-generator/internal/config"
	"github.com/ginjaninja78/pricing-data-generator/internal/types"
)

// ErrEmptyFile is returned for a file without a header row.
var ErrEmptyFile = errors.New("CSV file is empty")

// =============================================================================
// FILE SOURCE
// =============================================================================

// FileSource is a CSV price list on disk.
type FileSource struct {
	Path     string
	Settings config.CSVSettings
}

// ReadTable parses the file at s.Path.
func (s FileSource) ReadTable() (*types.Table, error) {
	return Parse(s.Path, s.Settings)
}

// =============================================================================
// PARSER FUNCTIONS
// =============================================================================

// Parse reads a CSV file and returns the parsed table.
//
// PARAMETERS:
//   - filePath: The path to the CSV file.
//   - settings: The CSV parsing settings.
//
// RETURNS:
//   - A pointer to the Table containing the header row and data rows.
//   - An error if the file cannot be opened, decoded or parsed.
func Parse(filePath string, settings config.CSVSettings) (*types.Table, error) {
	file, err := os.Open(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open file: %w", err)
	}
	defer file.Close()

	table, err := ParseReader(file, settings)
	if err != nil {
		return nil, err
	}
	table.SourceFile = filePath
	return table, nil
}

// ParseReader parses CSV content from r.
func ParseReader(r io.Reader, settings config.CSVSettings) (*types.Table, error) {
	decoder, err := decoderFor(settings.Encoding)
	if err != nil {
		return nil, err
	}

	csvReader := csv.NewReader(transform.NewReader(bufio.NewReader(r), decoder))
	if err := configureReader(csvReader, settings); err != nil {
		return nil, err
	}

	header, err := csvReader.Read()
	if err == io.EOF {
		return nil, ErrEmptyFile
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read header row: %w", err)
	}

	trim := settings.ShouldTrim()
	table := &types.Table{Headers: cleanHeaders(header, trim)}

	for {
		record, err := csvReader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read CSV: %w", err)
		}

		if isRowEmpty(record) {
			continue
		}
		table.Rows = append(table.Rows, toRow(table.Headers, record, trim))
	}

	return table, nil
}

// configureReader configures the CSV reader based on the settings.
func configureReader(reader *csv.Reader, settings config.CSVSettings) error {
	comma, err := config.DelimiterRune(settings.Delimiter)
	if err != nil {
		return err
	}
	reader.Comma = comma

	// Price lists are hand edited; tolerate ragged rows and stray quotes.
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true
	reader.TrimLeadingSpace = settings.ShouldTrim()
	reader.ReuseRecord = true

	return nil
}

// decoderFor returns the transformer converting name to UTF-8. Byte order
// marks are consumed for the Unicode encodings.
func decoderFor(name string) (transform.Transformer, error) {
	var enc encoding.Encoding

	switch config.CanonicalEncoding(name) {
	case "UTF-8":
		return unicode.BOMOverride(unicode.UTF8.NewDecoder()), nil
	case "UTF-16":
		enc = unicode.UTF16(unicode.LittleEndian, unicode.UseBOM)
	case "ISO-8859-1":
		enc = charmap.ISO8859_1
	case "Windows-1252":
		enc = charmap.Windows1252
	default:
		return nil, fmt.Errorf("unsupported encoding %q", name)
	}

	return enc.NewDecoder(), nil
}

// cleanHeaders normalizes header values. Blank headers get a positional
// placeholder so their cells stay addressable.
func cleanHeaders(headers []string, trim bool) []string {
	cleaned := make([]string, len(headers))

	for i, header := range headers {
		if trim {
			header = strings.TrimSpace(header)
		}
		if header == "" {
			header = fmt.Sprintf("Column_%d", i+1)
		}
		cleaned[i] = header
	}

	return cleaned
}

// toRow converts a record to a row. When a header is repeated the rightmost
// cell wins.
func toRow(headers, record []string, trim bool) types.Row {
	row := make(types.Row, len(headers))

	for i, header := range headers {
		if i >= len(record) {
			break
		}
		value := record[i]
		if trim {
			value = strings.TrimSpace(value)
		}
		row[header] = value
	}

	return row
}

// isRowEmpty checks if a row contains only empty values.
func isRowEmpty(row []string) bool {
	for _, cell := range row {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}
