package models

import (
	"strings"

	"github.com/shopspring/decimal"
)

// ParseAmount converts a statement numeric string to a decimal. Statement
// numbers use ',' as thousands separator and '.' as decimal separator; the
// separators are stripped before conversion. An empty or unparseable value
// becomes 0.00, never an error.
func ParseAmount(amountStr string) decimal.Decimal {
	amount := strings.TrimSpace(amountStr)
	amount = strings.ReplaceAll(amount, ",", "")
	amount = strings.ReplaceAll(amount, " ", "")
	if amount == "" || amount == "-" {
		return decimal.Zero
	}

	dec, err := decimal.NewFromString(amount)
	if err != nil {
		return decimal.Zero
	}
	return dec
}

// FormatAmount renders a decimal with exactly two decimal places, the form
// used in the exported table.
func FormatAmount(amount decimal.Decimal) string {
	return amount.StringFixed(2)
}
