package utils

import "strings"

// NormalizePhone strips every non-digit character and, when exactly 10 digits
// remain (a local MX number), prefixes the country code 52. Other lengths are
// passed through untouched; the caller is assumed to have typed a full
// international number.
func NormalizePhone(raw string) string {
	var b strings.Builder
	for _, r := range raw {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	digits := b.String()
	if len(digits) == 10 {
		return "52" + digits
	}
	return digits
}
