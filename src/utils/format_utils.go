package utils

import (
	"strings"

	"github.com/shopspring/decimal"
)

// FormatMoney renders a monetary value as `"<CODE> " + amount` with thousands
// separators and exactly two decimal places, e.g. `MUR 12,345.67`. Output is
// bit-reproducible for a given input regardless of the input's precision.
func FormatMoney(currencyCode string, amount decimal.Decimal) string {
	fixed := amount.StringFixed(2)

	negative := strings.HasPrefix(fixed, "-")
	if negative {
		fixed = fixed[1:]
	}

	intPart := fixed[:len(fixed)-3]
	fracPart := fixed[len(fixed)-3:] // includes the dot

	var b strings.Builder
	for i := 0; i < len(intPart); i++ {
		if i > 0 && (len(intPart)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteByte(intPart[i])
	}

	grouped := b.String() + fracPart
	if negative {
		grouped = "-" + grouped
	}
	return currencyCode + " " + grouped
}

// SanitizeFilenamePart substitutes characters unsafe for filenames (spaces and
// path separators) with underscores.
func SanitizeFilenamePart(s string) string {
	replacer := strings.NewReplacer(" ", "_", "/", "_", "\\", "_")
	return replacer.Replace(s)
}
