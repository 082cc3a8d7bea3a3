package models

// Sentinel values used across the pipeline.
const (
	// CategoryUncategorized is assigned when no rule matches or no rule
	// source is available.
	CategoryUncategorized = "Uncategorized"

	// CurrencyUnknown is assigned when a record's account cannot be resolved
	// to a currency and the document carries no default.
	CurrencyUnknown = "Unknown"
)

// Column header names of the exported table. The categorize command uses
// these to validate pre-built tables before re-categorizing them.
const (
	ColumnDate        = "Date"
	ColumnDescription = "Description"
	ColumnAmount      = "Amount"
	ColumnCategory    = "Category"
)
