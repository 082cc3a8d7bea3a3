package models

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestParseAmount(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"plain", "150.00", "150"},
		{"thousands separator", "1,234.56", "1234.56"},
		{"multiple groups", "1,234,567.89", "1234567.89"},
		{"negative", "-2,500.00", "-2500"},
		{"no decimals", "5,000", "5000"},
		{"empty string", "", "0"},
		{"bare minus", "-", "0"},
		{"whitespace", "  42.10  ", "42.1"},
		{"garbage", "abc", "0"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ParseAmount(tt.input)
			expected, err := decimal.NewFromString(tt.expected)
			assert.NoError(t, err)
			assert.True(t, got.Equal(expected), "got %s, want %s", got, expected)
		})
	}
}

func TestParseAmountRoundTrip(t *testing.T) {
	// "1,234.56" parses to 1234.56 and formats back with two decimals.
	got := ParseAmount("1,234.56")
	assert.Equal(t, "1234.56", FormatAmount(got))

	// Empty parses to 0.00.
	assert.Equal(t, "0.00", FormatAmount(ParseAmount("")))
}

func TestFormatAmount(t *testing.T) {
	assert.Equal(t, "150.00", FormatAmount(decimal.NewFromInt(150)))
	assert.Equal(t, "-0.50", FormatAmount(decimal.NewFromFloat(-0.5)))
}
