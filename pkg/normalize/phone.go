package normalize

import (
	"strings"

	"github.com/nyaruka/phonenumbers"
)

// NormalizePhone canonicalizes phone number text to E.164 (+491701234567).
// Numbers starting with + are parsed as international; everything else is
// interpreted in defaultRegion (ISO 3166-1 alpha-2, e.g. "DE"). A number is
// accepted only when it is both possible and valid for its region; otherwise
// the raw text is returned unchanged.
//
// Blank input yields an empty string rather than passing through: downstream
// imports treat an empty phone cell as "no number", not "bad number".
func NormalizePhone(raw, defaultRegion string) string {
	s := strings.TrimSpace(raw)
	if s == "" {
		return ""
	}

	cleaned := stripPhone(s)

	var (
		num *phonenumbers.PhoneNumber
		err error
	)
	if strings.HasPrefix(cleaned, "+") {
		num, err = phonenumbers.Parse(cleaned, "")
	} else {
		num, err = phonenumbers.Parse(cleaned, defaultRegion)
	}
	if err != nil {
		return raw
	}
	if !phonenumbers.IsPossibleNumber(num) || !phonenumbers.IsValidNumber(num) {
		return raw
	}
	return phonenumbers.Format(num, phonenumbers.E164)
}

// stripPhone keeps digits and a single leading +.
func stripPhone(s string) string {
	var b strings.Builder
	for _, r := range s {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	if strings.HasPrefix(s, "+") {
		return "+" + b.String()
	}
	return b.String()
}
