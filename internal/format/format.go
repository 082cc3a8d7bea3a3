// Package format defines the statement layouts the extractor understands.
// Each supported bank is a Format value selected by name or auto-detected
// from page text; adding a bank means registering a new Format, not writing
// a new extraction path.
package format

import (
	"fmt"
	"regexp"
	"strings"

	"bankflow/stmt-csv/internal/dateutils"
)

// Name identifies a supported statement format.
type Name string

const (
	Wio         Name = "wio"
	EmiratesNBD Name = "emiratesnbd"
	RAKBank     Name = "rakbank"
)

// Arity is the expected count and order of numeric fields on a transaction
// line for a given format.
type Arity int

const (
	// AmountAndBalance expects the transaction amount followed by the running
	// balance as the two trailing numeric tokens.
	AmountAndBalance Arity = iota
	// AmountOnly expects the amount as the single trailing numeric token.
	AmountOnly
	// DebitCreditBalance expects three trailing tokens: debit, credit,
	// balance; missing leading fields default to zero.
	DebitCreditBalance
)

// Format describes how one bank lays out its statement lines.
type Format struct {
	Name Name

	// DatePattern is anchored at the start of a line; a line is a transaction
	// start if and only if it matches at position 0.
	DatePattern *regexp.Regexp
	// DateLayout is the time layout of the matched date substring.
	DateLayout string
	// ValueDateFollows marks layouts where a second date directly after the
	// transaction date is the value date.
	ValueDateFollows bool

	// ReferencePattern matches a reference code anywhere in the remainder;
	// nil for formats without reference codes.
	ReferencePattern *regexp.Regexp

	Arity Arity

	// MultilineDescription enables folding of subsequent non-date lines into
	// the current record's description.
	MultilineDescription bool

	// AccountPattern matches account identifiers; a match on any line updates
	// the carry-forward account for subsequent records.
	AccountPattern *regexp.Regexp
	// SummaryPattern matches first-page summary lines pairing an account
	// identifier with a trailing currency code.
	SummaryPattern *regexp.Regexp

	// markers are phrases that identify this format during auto-detection.
	markers []string
}

var registry = []Format{
	{
		Name:             Wio,
		DatePattern:      regexp.MustCompile(`^(\d{2}/\d{2}/\d{4})`),
		DateLayout:       dateutils.LayoutSlash,
		ReferencePattern: regexp.MustCompile(`(P\d{9})`),
		Arity:            AmountAndBalance,
		AccountPattern:   regexp.MustCompile(`\b(AE\d{21})\b`),
		SummaryPattern:   regexp.MustCompile(`\b(AE\d{21})\b.*?\b([A-Z]{3})\s*$`),
		markers:          []string{"wio bank", "wio personal", "wio.io"},
	},
	{
		Name:                 EmiratesNBD,
		DatePattern:          regexp.MustCompile(`^(\d{2}/\d{2}/\d{4})`),
		DateLayout:           dateutils.LayoutSlash,
		ValueDateFollows:     true,
		Arity:                DebitCreditBalance,
		MultilineDescription: true,
		AccountPattern:       regexp.MustCompile(`\b(\d{13})\b`),
		SummaryPattern:       regexp.MustCompile(`\b(\d{13})\b.*?\b([A-Z]{3})\s*$`),
		markers:              []string{"emirates nbd", "emiratesnbd"},
	},
	{
		Name:                 RAKBank,
		DatePattern:          regexp.MustCompile(`^(\d{1,2} (?:Jan|Feb|Mar|Apr|May|Jun|Jul|Aug|Sep|Oct|Nov|Dec) \d{4})`),
		DateLayout:           dateutils.LayoutMonthName,
		Arity:                AmountOnly,
		MultilineDescription: true,
		markers:              []string{"rakbank", "ras al khaimah"},
	},
}

// All returns the registered formats in detection order.
func All() []Format {
	out := make([]Format, len(registry))
	copy(out, registry)
	return out
}

// ForName resolves an explicitly requested format.
func ForName(name string) (Format, error) {
	n := Name(strings.ToLower(strings.TrimSpace(name)))
	for _, f := range registry {
		if f.Name == n {
			return f, nil
		}
	}
	return Format{}, fmt.Errorf("unsupported statement format: %q", name)
}

// Detect identifies the format from the document's page text. It returns an
// error when no registered format matches, so the caller can ask for an
// explicit format flag instead of guessing.
func Detect(pages []string) (Format, error) {
	combined := strings.ToLower(strings.Join(pages, "\n"))
	for _, f := range registry {
		for _, marker := range f.markers {
			if strings.Contains(combined, marker) {
				return f, nil
			}
		}
	}
	return Format{}, fmt.Errorf("could not detect statement format from content; specify --format")
}
