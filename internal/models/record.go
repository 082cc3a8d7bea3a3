// Package models provides the data structures shared by the extraction,
// reconciliation, categorization and export stages.
package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// TransactionRecord is one extracted statement transaction. It is created by
// the extractor, enriched in place by the reconciler and categorizer, and
// read-only afterwards.
type TransactionRecord struct {
	Date             Date            `csv:"Date"`
	ValueDate        Date            `csv:"Value Date"`
	Reference        string          `csv:"Reference"`
	Description      string          `csv:"Description"`
	Amount           decimal.Decimal `csv:"Amount"`
	ExtractedBalance decimal.Decimal `csv:"Running Balance"`
	ComputedBalance  decimal.Decimal `csv:"Calculated Balance"`
	Currency         string          `csv:"Currency"`
	Account          string          `csv:"Account"`
	Category         string          `csv:"Category"`
	SourceFile       string          `csv:"Source File"`
}

// Date wraps time.Time so records round-trip through CSV in the statement's
// own DD/MM/YYYY convention.
type Date struct {
	time.Time
}

// DateLayout is the canonical textual form used on export.
const DateLayout = "02/01/2006"

// dateLayouts are the forms accepted when reading dates back from a
// previously exported table.
var dateLayouts = []string{
	DateLayout,
	"02 Jan 2006",
	"2006-01-02",
	"02.01.2006",
}

// NewDate builds a Date from calendar components.
func NewDate(year int, month time.Month, day int) Date {
	return Date{time.Date(year, month, day, 0, 0, 0, 0, time.UTC)}
}

// MarshalCSV implements gocsv.TypeMarshaller.
func (d Date) MarshalCSV() (string, error) {
	if d.IsZero() {
		return "", nil
	}
	return d.Format(DateLayout), nil
}

// UnmarshalCSV implements gocsv.TypeUnmarshaller.
func (d *Date) UnmarshalCSV(value string) error {
	if value == "" {
		d.Time = time.Time{}
		return nil
	}
	var lastErr error
	for _, layout := range dateLayouts {
		t, err := time.Parse(layout, value)
		if err == nil {
			d.Time = t
			return nil
		}
		lastErr = err
	}
	return lastErr
}

// Before reports whether d falls strictly before other.
func (d Date) Before(other Date) bool {
	return d.Time.Before(other.Time)
}
