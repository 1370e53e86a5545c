// =============================================================================
// Pricing Data Generator - Numeric Coercion
// =============================================================================
//
// Quantity and Price cells arrive as free text. Coerce turns a cell into a
// Number, trying an integer parse before a decimal parse so that integral
// quantities stay integral in the output ("100", not "100.0").
//
// No locale-specific separators are recognized: "1,000" and "12,50" are not
// numeric. Underscores between digits are digit grouping ("1_000" is the
// integer 1000). Integers outside the int64 range are parsed as decimals
// ("99999999999999999999" becomes 1e+20).
//
// =============================================================================

package pricing

import (
	"math"
	"strconv"
	"strings"
)

// Number is a coerced numeric cell: either an integer or a decimal.
type Number struct {
	i     int64
	f     float64
	isInt bool
}

// Int returns an integer Number.
func Int(v int64) Number {
	return Number{i: v, isInt: true}
}

// Float returns a decimal Number.
func Float(v float64) Number {
	return Number{f: v}
}

// Coerce parses raw as an integer, then as a decimal.
//
// RETURNS:
//   - The parsed Number.
//   - false if raw is empty, not numeric, or not finite.
func Coerce(raw string) (Number, bool) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return Number{}, false
	}

	if strings.Contains(s, "_") {
		if !groupedDigits(s) {
			return Number{}, false
		}
		s = strings.ReplaceAll(s, "_", "")
	}

	if i, err := strconv.ParseInt(s, 10, 64); err == nil {
		return Int(i), true
	}

	// strconv accepts Go hex float syntax; price lists never use it.
	unsigned := strings.TrimLeft(s, "+-")
	if strings.HasPrefix(unsigned, "0x") || strings.HasPrefix(unsigned, "0X") {
		return Number{}, false
	}

	f, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return Number{}, false
	}
	return Float(f), true
}

// groupedDigits reports whether every underscore in s sits between two digits.
func groupedDigits(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] != '_' {
			continue
		}
		if i == 0 || i == len(s)-1 || !isDigit(s[i-1]) || !isDigit(s[i+1]) {
			return false
		}
	}
	return true
}

func isDigit(c byte) bool {
	return '0' <= c && c <= '9'
}

// IsInt reports whether n was parsed as an integer.
func (n Number) IsInt() bool {
	return n.isInt
}

// IsZero reports whether n is zero. Zero counts as absent when aggregating.
func (n Number) IsZero() bool {
	if n.isInt {
		return n.i == 0
	}
	return n.f == 0
}

// Float64 returns n as a float64.
func (n Number) Float64() float64 {
	if n.isInt {
		return float64(n.i)
	}
	return n.f
}

// String returns the canonical decimal form used for quantity keys.
//
// FORMAT:
//   - Integers: plain digits ("500").
//   - Decimals: shortest round-trip digits, keeping a ".0" on integral
//     values ("12.5", "45.0"); exponent form below 1e-4 or from 1e16
//     ("1e-05", "1e+16").
func (n Number) String() string {
	if n.isInt {
		return strconv.FormatInt(n.i, 10)
	}
	return formatDecimal(n.f)
}

// MarshalJSON writes n as a JSON number in its canonical form.
func (n Number) MarshalJSON() ([]byte, error) {
	return []byte(n.String()), nil
}

func formatDecimal(f float64) string {
	abs := math.Abs(f)
	if abs != 0 && (abs < 1e-4 || abs >= 1e16) {
		return strconv.FormatFloat(f, 'e', -1, 64)
	}

	s := strconv.FormatFloat(f, 'f', -1, 64)
	if !strings.Contains(s, ".") {
		s += ".0"
	}
	return s
}
