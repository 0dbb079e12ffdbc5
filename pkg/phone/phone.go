// Package phone normalizes Greek phone numbers to E.164.
package phone

import "strings"

const greeceCode = "30"

// Normalize converts a raw phone number to "+30XXXXXXXXXX".
// Input that does not look like a Greek number is prefixed best-effort.
func Normalize(raw string) string {
	digits := Digits(raw)
	if digits == "" {
		return ""
	}

	switch {
	case strings.HasPrefix(digits, "00"+greeceCode) && len(digits) == 14:
		return "+" + digits[2:]
	case strings.HasPrefix(digits, greeceCode) && len(digits) == 12:
		return "+" + digits
	default:
		return "+" + greeceCode + digits
	}
}

// Digits strips everything except 0-9.
func Digits(raw string) string {
	var b strings.Builder
	b.Grow(len(raw))
	for _, r := range raw {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}
