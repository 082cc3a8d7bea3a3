package stmtparser

import (
	"regexp"

	"bankflow/stmt-csv/internal/format"
	"bankflow/stmt-csv/internal/models"
	"bankflow/stmt-csv/internal/textutils"

	"github.com/shopspring/decimal"
)

// numberPattern matches a statement numeric token: optional leading minus,
// comma-grouped digits, optional 1-2 digit decimal part.
var numberPattern = regexp.MustCompile(`-?\d{1,3}(?:,\d{3})*(?:\.\d{1,2})?`)

// Fields is the disambiguated numeric content of a transaction line.
type Fields struct {
	Amount      decimal.Decimal
	Balance     decimal.Decimal
	HasBalance  bool
	Description string
	// TokenCount is the number of numeric tokens found in the remainder.
	// Zero means the line carries nothing to report and no record is emitted.
	TokenCount int
}

// Disambiguate decides which numeric tokens on a line are the amount and the
// running balance under the format's arity policy. Tokens are consumed from
// the end of the token list: statement lines place the running balance last
// and the amount immediately before it. Earlier numeric tokens are left in
// the description untouched; they are usually embedded reference numbers that
// happen to look numeric. No failure escapes: unparseable fields degrade to
// zero values.
func Disambiguate(remainder, reference string, arity format.Arity) Fields {
	tokens := numberPattern.FindAllString(remainder, -1)

	fields := Fields{TokenCount: len(tokens)}
	var consumed []string

	switch arity {
	case format.AmountOnly:
		if len(tokens) >= 1 {
			last := tokens[len(tokens)-1]
			fields.Amount = models.ParseAmount(last)
			consumed = append(consumed, last)
		}

	case format.DebitCreditBalance:
		// Three trailing tokens [debit, credit, balance]; missing leading
		// fields default to 0.00 and the signed amount is credit - debit.
		if len(tokens) >= 1 {
			trailing := tokens
			if len(trailing) > 3 {
				trailing = trailing[len(trailing)-3:]
			}
			balance := trailing[len(trailing)-1]
			debit, credit := decimal.Zero, decimal.Zero
			if len(trailing) >= 2 {
				credit = models.ParseAmount(trailing[len(trailing)-2])
			}
			if len(trailing) >= 3 {
				debit = models.ParseAmount(trailing[0])
			}
			fields.Amount = credit.Sub(debit)
			fields.Balance = models.ParseAmount(balance)
			fields.HasBalance = true
			consumed = append(consumed, trailing...)
		}

	default: // format.AmountAndBalance
		if len(tokens) >= 2 {
			amount := tokens[len(tokens)-2]
			fields.Amount = models.ParseAmount(amount)
			consumed = append(consumed, amount)
		}
		if len(tokens) >= 1 {
			balance := tokens[len(tokens)-1]
			fields.Balance = models.ParseAmount(balance)
			fields.HasBalance = true
			consumed = append(consumed, balance)
		}
	}

	fields.Description = stripConsumed(remainder, reference, consumed)
	return fields
}

// stripConsumed removes the reference code and the consumed numeric token
// substrings from the remainder, first occurrence of each, then normalizes
// whitespace. First-occurrence removal can clip a description when a numeric
// substring also appears in free text; see textutils.RemoveFirstOccurrence.
func stripConsumed(remainder, reference string, consumed []string) string {
	description := remainder
	description = textutils.RemoveFirstOccurrence(description, reference)
	for _, token := range consumed {
		description = textutils.RemoveFirstOccurrence(description, token)
	}
	return textutils.CollapseWhitespace(description)
}
