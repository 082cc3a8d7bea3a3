package logging

// Standardized field names for structured logging.
// These constants keep log output consistent across the extraction,
// reconciliation and categorization stages.
const (
	FieldFile       = "file_path"
	FieldFormat     = "format"
	FieldPage       = "page"
	FieldLine       = "line"
	FieldAccount    = "account"
	FieldCurrency   = "currency"
	FieldCategory   = "category"
	FieldKeyword    = "keyword"
	FieldStrategy   = "strategy"
	FieldReason     = "reason"
	FieldCount      = "count"
	FieldInputFile  = "input_file"
	FieldOutputFile = "output_file"
)
