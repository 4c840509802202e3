package utils

import "strconv"

// FormatAmount formats an amount the way the WhatsApp ticket shows it:
// integers print bare ("450"), fractional values keep only the digits they
// need ("450.5"). This matches how the shop has always sent quotes.
func FormatAmount(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// FormatAmount2 formats an amount with exactly two decimals for the printable
// ticket ("450.00"). The two export paths deliberately format differently.
func FormatAmount2(v float64) string {
	return strconv.FormatFloat(v, 'f', 2, 64)
}
