// Package currencyutils provides currency-code handling for statement
// extraction: validating ISO-like codes and resolving a record's currency
// from a document's account-to-currency map.
package currencyutils

import (
	"regexp"
	"strings"

	"bankflow/stmt-csv/internal/models"
)

var codePattern = regexp.MustCompile(`^[A-Z]{3}$`)

// IsValidCode reports whether s looks like an ISO-4217 currency code
// (three uppercase letters).
func IsValidCode(s string) bool {
	return codePattern.MatchString(s)
}

// Normalize uppercases and trims a candidate currency code; anything that
// does not look like a code afterwards becomes the Unknown sentinel.
func Normalize(s string) string {
	s = strings.ToUpper(strings.TrimSpace(s))
	if !IsValidCode(s) {
		return models.CurrencyUnknown
	}
	return s
}

// AccountCurrencies maps account identifiers to currency codes, built from a
// document's summary section.
type AccountCurrencies map[string]string

// Resolve returns the currency for an account, falling back to the document
// default and then to the Unknown sentinel.
func (m AccountCurrencies) Resolve(account, defaultCurrency string) string {
	if account != "" {
		if ccy, ok := m[account]; ok {
			return ccy
		}
	}
	if defaultCurrency != "" {
		return defaultCurrency
	}
	return models.CurrencyUnknown
}
