// Package format renders costs and quantities for display.
package format

import (
	"strings"

	"github.com/shopspring/decimal"
)

// Currency returns a currency string with a dollar sign and thousands separators (e.g., "-$1,234.56").
// Amounts are rounded half away from zero to whole cents.
func Currency(amount float64) string {
	d := decimal.NewFromFloat(amount).Round(2)
	formatted := groupThousands(d.Abs().StringFixed(2))
	if d.IsNegative() {
		return "-$" + formatted
	}
	return "$" + formatted
}

// Quantity returns an amount with the given number of decimals and
// thousands separators (e.g., "1,234.57").
func Quantity(amount float64, places int32) string {
	d := decimal.NewFromFloat(amount).Round(places)
	formatted := groupThousands(d.Abs().StringFixed(places))
	if d.IsNegative() {
		return "-" + formatted
	}
	return formatted
}

func groupThousands(value string) string {
	intPart, decPart, hasDec := strings.Cut(value, ".")

	if len(intPart) > 3 {
		var builder strings.Builder
		for i, digit := range intPart {
			if i > 0 && (len(intPart)-i)%3 == 0 {
				builder.WriteByte(',')
			}
			builder.WriteRune(digit)
		}
		intPart = builder.String()
	}

	if !hasDec {
		return intPart
	}
	return intPart + "." + decPart
}
