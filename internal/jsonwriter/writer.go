// =============================================================================
// Pricing Data Generator - JSON Writer Module
// =============================================================================
//
// This module renders an assembled catalog as the pricing JSON document read
// by the order form. The document follows this nesting pattern:
//
//   {
//     "version": "1.0",
//     "products": {
//       "business cards": {                      <- product name
//         "name": "business cards",
//         "categories": {
//           "stock": {                           <- category key
//             "name": "Stock Options",
//             "icon": "fas fa-box",
//             "fields": {
//               "Size": {"values": ["4x6"], "icon": "...", "order": 1}
//             }
//           }
//         },
//         "prices": {
//           "Size=4x6": {"100": 12.5, "500": 45} <- price key -> quantity -> price
//         }
//       }
//     }
//   }
//
// Key order is taken from the catalog model; this module only controls
// layout (indentation, escaping, trailing newline).
//
// =============================================================================

package jsonwriter

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"unicode/utf16"
	"unicode/utf8"

	"github.com/ginjaninja78/pricing-data-generator/internal/pricing"
)

// =============================================================================
// JSON GENERATION OPTIONS
// =============================================================================

// GenerateOptions contains options for JSON generation.
type GenerateOptions struct {
	// Indent is the string used for each indentation level.
	// Default: "  " (two spaces)
	Indent string

	// ASCIIOnly escapes every non-ASCII character as \uXXXX, so the file is
	// safe to serve without a charset.
	// Default: true
	ASCIIOnly bool

	// TrailingNewline appends "\n" after the closing brace.
	// Default: false
	TrailingNewline bool
}

// DefaultGenerateOptions returns the default generation options.
func DefaultGenerateOptions() GenerateOptions {
	return GenerateOptions{
		Indent:    "  ",
		ASCIIOnly: true,
	}
}

// =============================================================================
// JSON GENERATION FUNCTIONS
// =============================================================================

// Generate renders the catalog with the default options.
//
// PARAMETERS:
//   - catalog: The assembled catalog.
//
// RETURNS:
//   - The JSON document as a byte slice.
//   - An error if the catalog cannot be encoded.
func Generate(catalog *pricing.Catalog) ([]byte, error) {
	return GenerateWithOptions(catalog, DefaultGenerateOptions())
}

// GenerateWithOptions renders the catalog with custom options.
func GenerateWithOptions(catalog *pricing.Catalog, options GenerateOptions) ([]byte, error) {
	if catalog == nil {
		return nil, fmt.Errorf("no catalog to generate")
	}

	var buffer bytes.Buffer
	encoder := json.NewEncoder(&buffer)
	encoder.SetEscapeHTML(false)
	encoder.SetIndent("", options.Indent)

	if err := encoder.Encode(catalog); err != nil {
		return nil, fmt.Errorf("failed to marshal JSON: %w", err)
	}

	out := bytes.TrimSuffix(buffer.Bytes(), []byte("\n"))
	if options.ASCIIOnly {
		out = escapeNonASCII(out)
	}
	if options.TrailingNewline {
		out = append(out, '\n')
	}

	return out, nil
}

// escapeNonASCII replaces DEL and every non-ASCII rune with its \uXXXX escape,
// using a surrogate pair outside the Basic Multilingual Plane. Valid JSON
// only carries such runes inside strings, so the result stays valid.
func escapeNonASCII(data []byte) []byte {
	var buffer bytes.Buffer
	buffer.Grow(len(data))

	for len(data) > 0 {
		r, size := utf8.DecodeRune(data)
		data = data[size:]

		if r < utf8.RuneSelf && r != 0x7f {
			buffer.WriteByte(byte(r))
			continue
		}

		if r1, r2 := utf16.EncodeRune(r); r1 != utf8.RuneError {
			writeEscape(&buffer, r1)
			writeEscape(&buffer, r2)
			continue
		}
		writeEscape(&buffer, r)
	}

	return buffer.Bytes()
}

func writeEscape(buffer *bytes.Buffer, r rune) {
	hex := strconv.FormatInt(int64(r), 16)
	buffer.WriteString(`\u`)
	for i := len(hex); i < 4; i++ {
		buffer.WriteByte('0')
	}
	buffer.WriteString(hex)
}
