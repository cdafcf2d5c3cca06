// Package normalize contains the pure field normalizers at the heart of
// csvclean: numbers with ambiguous separator conventions, dates in mixed
// formats, and phone numbers.
//
// Every normalizer is a stateless function of a single cell's text plus a
// shared configuration. A value that cannot be parsed is never an error at
// the cell level: the original text passes through unchanged, so every cell
// survives the round trip whether or not it could be improved.
package normalize

import "fmt"

// Func transforms a single cell's text. Implementations must be pure: no
// I/O, no shared state, no dependency on other cells.
type Func func(string) string

// Rule kinds a column can be normalized as.
const (
	KindDate   = "date"
	KindNumber = "number"
	KindPhone  = "phone"
)

// For returns the configured cell transform for a rule kind.
func For(kind string, numFmt NumberFormat, defaultRegion string) (Func, error) {
	switch kind {
	case KindDate:
		return NormalizeDate, nil
	case KindNumber:
		if err := numFmt.Validate(); err != nil {
			return nil, fmt.Errorf("number format: %w", err)
		}
		return func(raw string) string { return NormalizeNumber(raw, numFmt) }, nil
	case KindPhone:
		return func(raw string) string { return NormalizePhone(raw, defaultRegion) }, nil
	default:
		return nil, fmt.Errorf("unknown rule kind %q", kind)
	}
}
