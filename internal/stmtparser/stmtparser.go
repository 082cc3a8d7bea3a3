// Package stmtparser turns the plain page text of a bank statement into
// ordered transaction records. One line starting with a date is one
// candidate record; what the numeric tokens on that line mean is decided by
// the statement format's arity policy.
package stmtparser

import (
	"strings"

	"bankflow/stmt-csv/internal/currencyutils"
	"bankflow/stmt-csv/internal/format"
	"bankflow/stmt-csv/internal/logging"
	"bankflow/stmt-csv/internal/models"
	"bankflow/stmt-csv/internal/textutils"
)

// Document is one uploaded statement: its identifier and the plain text of
// each page, as handed over by the PDF text extraction collaborator. Pages
// may be empty when a page yields no text.
type Document struct {
	Name  string
	Pages []string
}

// Extractor extracts transaction records for a single statement format.
type Extractor struct {
	format format.Format
	logger logging.Logger
}

// New creates an Extractor for the given format.
func New(f format.Format, logger logging.Logger) *Extractor {
	if logger == nil {
		logger = logging.GetLogger()
	}
	return &Extractor{format: f, logger: logger}
}

// carryForward is the per-document accumulator threaded through line
// iteration. Account and currency persist across lines and pages until
// overwritten; nothing crosses document boundaries.
type carryForward struct {
	account         string
	currencies      currencyutils.AccountCurrencies
	defaultCurrency string
}

// Extract produces the ordered transaction records of one document.
// Unparseable lines are skipped, empty pages contribute nothing, and no
// parsing failure aborts the document.
func (e *Extractor) Extract(doc Document) []models.TransactionRecord {
	if len(doc.Pages) == 0 {
		return nil
	}

	// First pass over the first page only: build the account-to-currency map
	// before any line-by-line extraction of this document.
	state := carryForward{}
	state.currencies, state.defaultCurrency = e.scanSummary(doc.Pages[0])

	var records []models.TransactionRecord
	// current indexes the record still accepting description continuation
	// lines; -1 while scanning. An index survives slice growth where a
	// pointer into the slice would not.
	current := -1

	for pageNum, page := range doc.Pages {
		if strings.TrimSpace(page) == "" {
			continue
		}
		for _, rawLine := range strings.Split(page, "\n") {
			line := strings.TrimSpace(rawLine)
			if line == "" {
				continue
			}

			// Account identifiers update the carry-forward state wherever
			// they appear, and end any in-progress description.
			if e.format.AccountPattern != nil {
				if account := e.format.AccountPattern.FindString(line); account != "" {
					state.account = account
					current = -1
				}
			}

			tokens, ok := Tokenize(line, e.format)
			if !ok {
				if e.format.MultilineDescription && current >= 0 {
					records[current].Description = textutils.CollapseWhitespace(
						records[current].Description + " " + line)
				}
				continue
			}

			// A new date-anchored line always ends the previous record's
			// continuation, whether or not it yields a record itself.
			current = -1

			fields := Disambiguate(tokens.Remainder, tokens.Reference, e.format.Arity)
			if fields.TokenCount == 0 {
				// Nothing numeric to report; the line is not a transaction.
				e.logger.Debug("Skipping date line without numeric tokens",
					logging.Field{Key: logging.FieldPage, Value: pageNum + 1},
					logging.Field{Key: logging.FieldLine, Value: line})
				continue
			}

			record := models.TransactionRecord{
				Date:             models.Date{Time: tokens.Date},
				ValueDate:        models.Date{Time: tokens.ValueDate},
				Reference:        tokens.Reference,
				Description:      fields.Description,
				Amount:           fields.Amount,
				ExtractedBalance: fields.Balance,
				Currency:         state.currencies.Resolve(state.account, state.defaultCurrency),
				Account:          state.account,
				Category:         models.CategoryUncategorized,
			}
			records = append(records, record)
			if e.format.MultilineDescription {
				current = len(records) - 1
			}
		}
	}

	e.logger.Info("Extracted transactions from document",
		logging.Field{Key: logging.FieldFile, Value: doc.Name},
		logging.Field{Key: logging.FieldFormat, Value: string(e.format.Name)},
		logging.Field{Key: logging.FieldCount, Value: len(records)})

	return records
}

// scanSummary reads the first page for summary lines pairing an account
// identifier with a trailing currency code. The first currency seen becomes
// the page-level default.
func (e *Extractor) scanSummary(firstPage string) (currencyutils.AccountCurrencies, string) {
	currencies := currencyutils.AccountCurrencies{}
	defaultCurrency := ""

	if e.format.SummaryPattern == nil {
		return currencies, defaultCurrency
	}

	for _, rawLine := range strings.Split(firstPage, "\n") {
		line := strings.TrimSpace(rawLine)
		m := e.format.SummaryPattern.FindStringSubmatch(line)
		if m == nil {
			continue
		}
		account, code := m[1], m[2]
		if !currencyutils.IsValidCode(code) {
			continue
		}
		currencies[account] = code
		if defaultCurrency == "" {
			defaultCurrency = code
		}
		e.logger.Debug("Mapped account to currency",
			logging.Field{Key: logging.FieldAccount, Value: account},
			logging.Field{Key: logging.FieldCurrency, Value: code})
	}

	return currencies, defaultCurrency
}
