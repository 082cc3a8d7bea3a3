package categorizer

import (
	"context"

	"bankflow/stmt-csv/internal/logging"
	"bankflow/stmt-csv/internal/models"
)

// Categorizer runs an ordered strategy chain over transaction records.
type Categorizer struct {
	strategies []Strategy
	logger     logging.Logger
}

// New builds a Categorizer from an ordered rule table and an optional AI
// client for descriptions the rules do not cover.
func New(rules []models.CategoryRule, aiClient AIClient, logger logging.Logger) *Categorizer {
	if logger == nil {
		logger = logging.GetLogger()
	}
	strategies := []Strategy{NewKeywordStrategy(rules, logger)}
	if aiClient != nil {
		strategies = append(strategies, NewAIStrategy(aiClient, logger))
	}
	return &Categorizer{strategies: strategies, logger: logger}
}

// Categorize resolves one description to exactly one category, the sentinel
// when no strategy matches.
func (c *Categorizer) Categorize(ctx context.Context, description string) string {
	for _, strategy := range c.strategies {
		category, found, err := strategy.Categorize(ctx, description)
		if err != nil {
			c.logger.WithError(err).Warn("Categorization strategy errored",
				logging.Field{Key: logging.FieldStrategy, Value: strategy.Name()})
			continue
		}
		if found {
			return category
		}
	}
	return models.CategoryUncategorized
}

// Apply annotates every record in place with its category.
func (c *Categorizer) Apply(ctx context.Context, records []models.TransactionRecord) {
	counts := map[string]int{}
	for i := range records {
		records[i].Category = c.Categorize(ctx, records[i].Description)
		counts[records[i].Category]++
	}
	c.logger.Info("Categorized records",
		logging.Field{Key: logging.FieldCount, Value: len(records)},
		logging.Field{Key: "categories", Value: len(counts)})
}
