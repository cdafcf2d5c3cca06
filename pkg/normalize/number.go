package normalize

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/shopspring/decimal"
)

// numberPat is the shape a candidate must have after separator
// normalization: plain digits with at most one decimal point.
var numberPat = regexp.MustCompile(`^[0-9]+(\.[0-9]+)?$`)

// ParseNumber interprets a human-written number regardless of whether it
// uses EU or US separator conventions:
//
//	"1.234,56" -> 1234.56
//	"1,234.56" -> 1234.56
//	"1.234"    -> 1.234
//
// When both separators appear, the one closer to the end is the decimal
// point and the other is grouping. An isolated separator is always a
// decimal point, never grouping. Anything that does not reduce to
// digits[.digits] fails.
func ParseNumber(raw string) (decimal.Decimal, error) {
	s := strings.TrimSpace(raw)
	s = strings.ReplaceAll(s, " ", "")
	s = strings.ReplaceAll(s, "\u00a0", "")
	if s == "" {
		return decimal.Decimal{}, fmt.Errorf("empty numeric input")
	}

	sign := ""
	if s[0] == '+' || s[0] == '-' {
		if s[0] == '-' {
			sign = "-"
		}
		s = s[1:]
	}

	lastDot := strings.LastIndexByte(s, '.')
	lastComma := strings.LastIndexByte(s, ',')
	switch {
	case lastDot >= 0 && lastComma >= 0:
		if lastDot > lastComma {
			s = strings.ReplaceAll(s, ",", "")
		} else {
			s = strings.ReplaceAll(s, ".", "")
			s = strings.ReplaceAll(s, ",", ".")
		}
	case lastComma >= 0:
		s = strings.ReplaceAll(s, ",", ".")
	}

	if !numberPat.MatchString(s) {
		return decimal.Decimal{}, fmt.Errorf("not a number: %q", raw)
	}

	v, err := decimal.NewFromString(sign + s)
	if err != nil {
		return decimal.Decimal{}, err
	}
	return v, nil
}

// NumberFormat describes the target rendering of a numeric value.
type NumberFormat struct {
	// DecimalSep is "." or ",".
	DecimalSep string `yaml:"decimal_separator" json:"decimal_separator"`
	// ThousandsSep groups integer digits in runs of three. One of
	// ",", ".", " " or empty for no grouping.
	ThousandsSep string `yaml:"thousands_separator" json:"thousands_separator"`
	// Places fixes the number of fractional digits (round-half-up, padded
	// with zeros). Nil preserves the source precision.
	Places *int `yaml:"decimal_places" json:"decimal_places"`
}

// DefaultNumberFormat renders with a dot decimal point, no grouping, and
// source precision.
func DefaultNumberFormat() NumberFormat {
	return NumberFormat{DecimalSep: "."}
}

// Validate checks separator and precision constraints.
func (f NumberFormat) Validate() error {
	if f.DecimalSep != "." && f.DecimalSep != "," {
		return fmt.Errorf("decimal separator must be %q or %q, got %q", ".", ",", f.DecimalSep)
	}
	switch f.ThousandsSep {
	case "", ",", ".", " ":
	default:
		return fmt.Errorf("unsupported thousands separator %q", f.ThousandsSep)
	}
	if f.ThousandsSep == f.DecimalSep {
		return fmt.Errorf("decimal and thousands separator are both %q", f.DecimalSep)
	}
	if f.Places != nil && *f.Places < 0 {
		return fmt.Errorf("decimal places must be >= 0, got %d", *f.Places)
	}
	return nil
}

// FormatNumber renders an exact decimal according to f. With Places set the
// value is quantized round-half-up (ties away from zero) to that many
// fractional digits; otherwise the parsed precision is kept.
func FormatNumber(v decimal.Decimal, f NumberFormat) string {
	var s string
	switch {
	case f.Places != nil:
		s = v.StringFixed(int32(*f.Places))
	case v.Exponent() < 0:
		// Render at the parsed exponent so trailing zeros survive
		// ("1.50" stays "1.50", not "1.5").
		s = v.StringFixed(-v.Exponent())
	default:
		s = v.String()
	}

	sign := ""
	if strings.HasPrefix(s, "-") {
		sign, s = "-", s[1:]
	}
	intPart, fracPart, _ := strings.Cut(s, ".")

	if f.ThousandsSep != "" {
		intPart = groupThousands(intPart, f.ThousandsSep)
	}
	if fracPart == "" {
		return sign + intPart
	}
	return sign + intPart + f.DecimalSep + fracPart
}

// NormalizeNumber re-renders a numeric string in the target format, or
// returns the raw text unchanged when it cannot be parsed.
func NormalizeNumber(raw string, f NumberFormat) string {
	v, err := ParseNumber(raw)
	if err != nil {
		return raw
	}
	return FormatNumber(v, f)
}

// groupThousands splits a digit run into groups of three from the right.
func groupThousands(digits, sep string) string {
	if len(digits) <= 3 {
		return digits
	}
	var groups []string
	for len(digits) > 3 {
		groups = append([]string{digits[len(digits)-3:]}, groups...)
		digits = digits[:len(digits)-3]
	}
	return strings.Join(append([]string{digits}, groups...), sep)
}
