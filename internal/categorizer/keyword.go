package categorizer

import (
	"context"
	"strings"

	"bankflow/stmt-csv/internal/logging"
	"bankflow/stmt-csv/internal/models"
	"bankflow/stmt-csv/internal/textutils"
)

// KeywordStrategy categorizes by substring matching an ordered rule table
// against the normalized description. Order matters: the first rule whose
// keyword appears in the description wins.
type KeywordStrategy struct {
	rules  []models.CategoryRule
	logger logging.Logger
}

// NewKeywordStrategy creates a KeywordStrategy over an ordered rule table.
func NewKeywordStrategy(rules []models.CategoryRule, logger logging.Logger) *KeywordStrategy {
	if logger == nil {
		logger = logging.GetLogger()
	}
	return &KeywordStrategy{rules: rules, logger: logger}
}

// Name returns the name of this strategy for logging.
func (s *KeywordStrategy) Name() string {
	return "Keyword"
}

// Categorize scans the rule table in order and returns the category of the
// first rule whose keyword is a substring of the cleaned description. Both
// sides go through the shared CleanText transform so matching is insensitive
// to case, dashes and whitespace runs. Rules with an empty keyword never
// match.
func (s *KeywordStrategy) Categorize(_ context.Context, description string) (string, bool, error) {
	cleaned := textutils.CleanText(description)
	if cleaned == "" {
		return "", false, nil
	}

	for _, rule := range s.rules {
		keyword := textutils.CleanText(rule.Keyword)
		if keyword == "" {
			continue
		}
		if strings.Contains(cleaned, keyword) {
			s.logger.Debug("Matched keyword rule",
				logging.Field{Key: logging.FieldStrategy, Value: s.Name()},
				logging.Field{Key: logging.FieldKeyword, Value: rule.Keyword},
				logging.Field{Key: logging.FieldCategory, Value: rule.Category})
			return rule.Category, true, nil
		}
	}
	return "", false, nil
}
