package stmtparser

import (
	"strings"
	"time"

	"bankflow/stmt-csv/internal/dateutils"
	"bankflow/stmt-csv/internal/format"
)

// LineTokens is the raw decomposition of a transaction-start line: the parsed
// date(s), the reference code if the format carries one, and the remainder
// still holding the numeric fields and description text.
type LineTokens struct {
	Date      time.Time
	ValueDate time.Time
	Reference string
	Remainder string
}

// Tokenize decides whether a line starts a transaction record. A line
// qualifies if and only if it begins with a date matching the format's
// pattern at position 0 and that date parses under the format's layout.
// Tokenize is a pure function of the line and the format configuration.
func Tokenize(line string, f format.Format) (LineTokens, bool) {
	line = strings.TrimSpace(line)
	dateText := f.DatePattern.FindString(line)
	if dateText == "" {
		return LineTokens{}, false
	}

	date, err := dateutils.ParseWithLayout(dateText, f.DateLayout)
	if err != nil {
		// Matched the shape but not a real calendar date; treat the line as
		// unparseable and let the caller skip it.
		return LineTokens{}, false
	}

	tokens := LineTokens{
		Date:      date,
		Remainder: strings.TrimSpace(line[len(dateText):]),
	}

	if f.ValueDateFollows {
		if vdText := f.DatePattern.FindString(tokens.Remainder); vdText != "" {
			if vd, err := dateutils.ParseWithLayout(vdText, f.DateLayout); err == nil {
				tokens.ValueDate = vd
				tokens.Remainder = strings.TrimSpace(tokens.Remainder[len(vdText):])
			}
		}
	}

	if f.ReferencePattern != nil {
		tokens.Reference = f.ReferencePattern.FindString(tokens.Remainder)
	}

	return tokens, true
}
