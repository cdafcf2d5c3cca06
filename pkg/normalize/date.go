package normalize

import (
	"fmt"
	"strings"
	"time"

	"github.com/araddon/dateparse"
)

// dateLayouts are tried in order; the first layout matching the whole
// string wins. Purely numeric dates are inherently ambiguous, so the order
// fixes a priority: ISO first, then day-first, then month-first.
// Non-padded layouts accept both "25.08.2003" and "1.2.2003".
var dateLayouts = []string{
	"2006-01-02", // 2003-08-25
	"2.1.2006",   // 25.08.2003
	"2/1/2006",   // 25/08/2003
	"1/2/2006",   // 08/25/2003
	"2-1-2006",   // 25-08-2003
	"1-2-2006",   // 08-25-2003
	"2.1.06",     // 25.08.03
	"2/1/06",     // 25/08/03
	"1/2/06",     // 08/25/03
	"2-1-06",     // 25-08-03
	"1-2-06",     // 08-25-03
}

// ParseDate converts date text to a calendar date. Strict layouts are tried
// first; free-form text (spelled-out months, mixed punctuation) falls back
// to a lenient parser that prefers day-first for residual ambiguity.
// Two-digit years follow the time package pivot: 69-99 -> 19xx, 00-68 -> 20xx.
func ParseDate(raw string) (time.Time, error) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return time.Time{}, fmt.Errorf("empty date input")
	}

	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}

	t, err := dateparse.ParseAny(s, dateparse.PreferMonthFirst(false))
	if err != nil {
		return time.Time{}, fmt.Errorf("unrecognized date: %q", raw)
	}
	return t, nil
}

// NormalizeDate renders any recognized date text as zero-padded YYYY-MM-DD,
// or returns the raw text unchanged when no format matches. Already-canonical
// input is returned as-is.
func NormalizeDate(raw string) string {
	t, err := ParseDate(raw)
	if err != nil {
		return raw
	}
	return t.Format("2006-01-02")
}
