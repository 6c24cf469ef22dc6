package utils

import (
	"github.com/shopspring/decimal"
)

// FormatNGN formats a naira amount for user-facing messages.
// Example: 12345.6 returns "₦12346"
func FormatNGN(amount decimal.Decimal) string {
	return "₦" + amount.Round(0).String()
}

// FormatUSD formats a dollar amount for user-facing messages.
// Example: 12.3456 returns "$12.35"
func FormatUSD(amount decimal.Decimal) string {
	return "$" + amount.StringFixed(2)
}
