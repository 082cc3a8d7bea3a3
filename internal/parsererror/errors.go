// Package parsererror defines the typed errors that cross the extraction
// boundary. Parsing-level failures inside the extractor are recovered locally;
// only structural failures are reported with these types.
package parsererror

import "fmt"

// ParseError represents an error during parsing
type ParseError struct {
	Parser string
	Field  string
	Value  string
	Err    error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("%s: failed to parse %s='%s': %v",
		e.Parser, e.Field, e.Value, e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// DocumentError represents a statement document that could not be read at all
// (missing file, no extractable text). Other documents in the same batch
// continue independently.
type DocumentError struct {
	Document string
	Reason   string
	Err      error
}

func (e *DocumentError) Error() string {
	return fmt.Sprintf("document '%s' unreadable: %s: %v", e.Document, e.Reason, e.Err)
}

func (e *DocumentError) Unwrap() error {
	return e.Err
}

// RuleSourceError represents an unreachable or malformed category rule source.
// When it occurs the categorizer must not run and records keep the
// Uncategorized sentinel.
type RuleSourceError struct {
	Source string
	Err    error
}

func (e *RuleSourceError) Error() string {
	return fmt.Sprintf("category rule source '%s' unavailable: %v", e.Source, e.Err)
}

func (e *RuleSourceError) Unwrap() error {
	return e.Err
}

// MissingColumnError reports a pre-built transaction table that lacks a
// required column (e.g. Description) during re-categorization.
type MissingColumnError struct {
	FilePath string
	Column   string
}

func (e *MissingColumnError) Error() string {
	return fmt.Sprintf("file '%s' has no '%s' column", e.FilePath, e.Column)
}

// InvalidFormatError represents an error where the input file does not conform
// to the expected format for a specific statement layout.
type InvalidFormatError struct {
	FilePath       string
	ExpectedFormat string
	Msg            string
}

func (e *InvalidFormatError) Error() string {
	return fmt.Sprintf("invalid format in file '%s': %s. Expected: %s",
		e.FilePath, e.Msg, e.ExpectedFormat)
}
