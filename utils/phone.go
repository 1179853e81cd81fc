// utils/phone.go
package utils

import "strings"

// NormalizePhone converts a locally formatted Indonesian phone number into the
// canonical international form (leading 62, digits only). It never fails:
// input that does not look like a local number is passed through best-effort
// and left for validation to reject. Idempotent.
func NormalizePhone(raw string) string {
	var digits strings.Builder
	for _, r := range raw {
		if r >= '0' && r <= '9' {
			digits.WriteRune(r)
		}
	}
	cleaned := digits.String()

	switch {
	case cleaned == "":
		return cleaned
	case strings.HasPrefix(cleaned, "62"):
		return cleaned
	case strings.HasPrefix(cleaned, "0"):
		return "62" + cleaned[1:]
	default:
		return "62" + cleaned
	}
}
