package stmtparser

import (
	"strings"
	"testing"

	"bankflow/stmt-csv/internal/logging"
	"bankflow/stmt-csv/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const wioFirstPage = `Wio Bank PJSC
Account Statement
AE070331234567890123456 Current Account AED
AE070339876543210987654 Savings Account USD

AE070331234567890123456
01/02/2024 P123456789 Grocery Store 150.00 5,000.00
02/02/2024 Salary Transfer 12,000.00 17,000.00
Some footer text without a date
03/02/2024 BROUGHT FORWARD
`

func TestExtractWioDocument(t *testing.T) {
	extractor := New(mustFormat(t, "wio"), &logging.MockLogger{})

	records := extractor.Extract(Document{
		Name:  "statement.pdf",
		Pages: []string{wioFirstPage},
	})

	require.Len(t, records, 2)

	first := records[0]
	assert.Equal(t, "01/02/2024", first.Date.Format(models.DateLayout))
	assert.Equal(t, "P123456789", first.Reference)
	assert.Equal(t, "Grocery Store", first.Description)
	assert.Equal(t, "150.00", models.FormatAmount(first.Amount))
	assert.Equal(t, "5000.00", models.FormatAmount(first.ExtractedBalance))
	assert.Equal(t, "AE070331234567890123456", first.Account)
	assert.Equal(t, "AED", first.Currency)
	assert.Equal(t, models.CategoryUncategorized, first.Category)

	second := records[1]
	assert.Equal(t, "Salary Transfer", second.Description)
	assert.Equal(t, "12000.00", models.FormatAmount(second.Amount))
}

func TestExtractPreservesLineOrder(t *testing.T) {
	extractor := New(mustFormat(t, "wio"), &logging.MockLogger{})

	page := `05/02/2024 Later entry 10.00 100.00
01/02/2024 Earlier date but later line 20.00 120.00`

	records := extractor.Extract(Document{Name: "s.pdf", Pages: []string{page}})
	require.Len(t, records, 2)
	// Document order, not date order; sorting happens in reconciliation.
	assert.Equal(t, "Later entry", records[0].Description)
	assert.Equal(t, "Earlier date but later line", records[1].Description)
}

func TestExtractSkipsDateLinesWithoutNumbers(t *testing.T) {
	extractor := New(mustFormat(t, "wio"), &logging.MockLogger{})

	records := extractor.Extract(Document{
		Name:  "s.pdf",
		Pages: []string{"03/02/2024 BROUGHT FORWARD\n04/02/2024 Coffee 12.00 88.00"},
	})

	require.Len(t, records, 1)
	assert.Equal(t, "Coffee", records[0].Description)
}

func TestExtractEmptyPages(t *testing.T) {
	extractor := New(mustFormat(t, "wio"), &logging.MockLogger{})

	assert.Empty(t, extractor.Extract(Document{Name: "s.pdf", Pages: nil}))
	assert.Empty(t, extractor.Extract(Document{Name: "s.pdf", Pages: []string{"", "  \n "}}))
}

func TestExtractAccountCarryForward(t *testing.T) {
	extractor := New(mustFormat(t, "wio"), &logging.MockLogger{})

	pageOne := strings.Join([]string{
		"AE070331234567890123456 Current AED",
		"AE070339876543210987654 Savings USD",
		"AE070331234567890123456",
		"01/02/2024 First 10.00 100.00",
	}, "\n")
	pageTwo := strings.Join([]string{
		"02/02/2024 Still first account 20.00 120.00",
		"AE070339876543210987654",
		"03/02/2024 Second account 30.00 200.00",
	}, "\n")

	records := extractor.Extract(Document{Name: "s.pdf", Pages: []string{pageOne, pageTwo}})
	require.Len(t, records, 3)

	// Account persists across the page boundary until overwritten.
	assert.Equal(t, "AE070331234567890123456", records[0].Account)
	assert.Equal(t, "AED", records[0].Currency)
	assert.Equal(t, "AE070331234567890123456", records[1].Account)
	assert.Equal(t, "AED", records[1].Currency)
	assert.Equal(t, "AE070339876543210987654", records[2].Account)
	assert.Equal(t, "USD", records[2].Currency)
}

func TestExtractCurrencyFallsBackToDefault(t *testing.T) {
	extractor := New(mustFormat(t, "wio"), &logging.MockLogger{})

	// The summary maps only one account; an account missing from the map
	// falls back to the page-level default currency.
	page := strings.Join([]string{
		"AE070331234567890123456 Current AED",
		"AE070339999999999999999",
		"01/02/2024 Unmapped account 10.00 100.00",
	}, "\n")

	records := extractor.Extract(Document{Name: "s.pdf", Pages: []string{page}})
	require.Len(t, records, 1)
	assert.Equal(t, "AE070339999999999999999", records[0].Account)
	assert.Equal(t, "AED", records[0].Currency)
}

func TestExtractCurrencyUnknownWithoutSummary(t *testing.T) {
	extractor := New(mustFormat(t, "rakbank"), &logging.MockLogger{})

	records := extractor.Extract(Document{
		Name:  "s.pdf",
		Pages: []string{"15 Jan 2024 POS PURCHASE 89.50"},
	})
	require.Len(t, records, 1)
	assert.Equal(t, models.CurrencyUnknown, records[0].Currency)
}

func TestExtractMultilineDescription(t *testing.T) {
	extractor := New(mustFormat(t, "emiratesnbd"), &logging.MockLogger{})

	page := strings.Join([]string{
		"01/02/2024 OUTWARD TT 1,000.00 0.00 9,000.00",
		"BENEFICIARY ACME TRADING LLC",
		"DUBAI BRANCH",
		"02/02/2024 SALARY 0.00 12,000.00 21,000.00",
	}, "\n")

	records := extractor.Extract(Document{Name: "s.pdf", Pages: []string{page}})
	require.Len(t, records, 2)
	assert.Equal(t, "OUTWARD TT BENEFICIARY ACME TRADING LLC DUBAI BRANCH", records[0].Description)
	assert.Equal(t, "SALARY", records[1].Description)
}

func TestExtractContinuationStopsAtAccountLine(t *testing.T) {
	extractor := New(mustFormat(t, "emiratesnbd"), &logging.MockLogger{})

	page := strings.Join([]string{
		"01/02/2024 OUTWARD TT 1,000.00 0.00 9,000.00",
		"1012345678901",
		"THIS LINE IS NOT A CONTINUATION",
	}, "\n")

	records := extractor.Extract(Document{Name: "s.pdf", Pages: []string{page}})
	require.Len(t, records, 1)
	assert.Equal(t, "OUTWARD TT", records[0].Description)
}

func TestExtractIdempotent(t *testing.T) {
	extractor := New(mustFormat(t, "wio"), &logging.MockLogger{})
	doc := Document{Name: "s.pdf", Pages: []string{wioFirstPage}}

	first := extractor.Extract(doc)
	second := extractor.Extract(doc)
	assert.Equal(t, first, second)
}
