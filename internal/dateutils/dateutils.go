// Package dateutils provides the date parsing used throughout the application.
package dateutils

import (
	"fmt"
	"strings"
	"time"
)

// Layouts seen across supported statement formats.
const (
	LayoutSlash     = "02/01/2006" // DD/MM/YYYY
	LayoutMonthName = "02 Jan 2006" // DD MMM YYYY
	LayoutISO       = "2006-01-02"
	LayoutDotted    = "02.01.2006"
)

// CommonLayouts is the fallback list tried when a statement format does not
// pin a single layout.
var CommonLayouts = []string{
	LayoutSlash,
	LayoutMonthName,
	LayoutISO,
	LayoutDotted,
	"2 Jan 2006",
	"2/1/2006",
}

// ParseWithLayout parses a date string with one pinned layout. Single-digit
// days are padded so "1/02/2024" and "01/02/2024" both parse.
func ParseWithLayout(dateStr, layout string) (time.Time, error) {
	dateStr = strings.TrimSpace(dateStr)
	if t, err := time.Parse(layout, dateStr); err == nil {
		return t, nil
	}
	// Relax to single-digit day/month variants of the same layout.
	relaxed := strings.NewReplacer("02", "2", "01", "1").Replace(layout)
	return time.Parse(relaxed, dateStr)
}

// Parse tries each common layout in turn.
func Parse(dateStr string) (time.Time, error) {
	dateStr = strings.TrimSpace(dateStr)
	for _, layout := range CommonLayouts {
		if t, err := time.Parse(layout, dateStr); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unable to parse date: %s", dateStr)
}
