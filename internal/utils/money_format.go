package utils

import (
	"strings"

	"github.com/shopspring/decimal"
)

// FormatMoney formats an amount to two decimal places for report output.
// Example: 12.3456 returns "12.35"
func FormatMoney(amount decimal.Decimal) string {
	return amount.StringFixed(2)
}

// FormatMoneyUSD formats an amount as a dollar figure with thousands
// separators, the way exported reports print it.
// Example: 1234567.891 returns "$1,234,567.89"; -50 returns "-$50.00"
func FormatMoneyUSD(amount decimal.Decimal) string {
	negative := amount.IsNegative()
	fixed := amount.Abs().StringFixed(2)

	intPart, fracPart, _ := strings.Cut(fixed, ".")
	var b strings.Builder
	for i, digit := range intPart {
		if i > 0 && (len(intPart)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteRune(digit)
	}

	out := "$" + b.String() + "." + fracPart
	if negative {
		out = "-" + out
	}
	return out
}
