package categorizer

import (
	"context"
	"strings"

	"bankflow/stmt-csv/internal/logging"
	"bankflow/stmt-csv/internal/models"
)

// AIStrategy asks an external model to categorize descriptions the keyword
// rules could not. It is optional: without a configured client the strategy
// reports not-found and the chain moves on.
type AIStrategy struct {
	client AIClient
	logger logging.Logger
}

// NewAIStrategy creates an AIStrategy. A nil client disables it.
func NewAIStrategy(client AIClient, logger logging.Logger) *AIStrategy {
	if logger == nil {
		logger = logging.GetLogger()
	}
	return &AIStrategy{client: client, logger: logger}
}

// Name returns the name of this strategy for logging.
func (s *AIStrategy) Name() string {
	return "AI"
}

// Categorize delegates to the AI client. Failures and empty answers degrade
// to not-found; they never propagate.
func (s *AIStrategy) Categorize(ctx context.Context, description string) (string, bool, error) {
	if s.client == nil || strings.TrimSpace(description) == "" {
		return "", false, nil
	}

	category, err := s.client.CategorizeDescription(ctx, description)
	if err != nil {
		s.logger.WithError(err).Warn("AI categorization failed",
			logging.Field{Key: logging.FieldStrategy, Value: s.Name()})
		return "", false, nil
	}

	category = strings.TrimSpace(category)
	if category == "" || category == models.CategoryUncategorized {
		return "", false, nil
	}

	s.logger.Debug("AI assigned category",
		logging.Field{Key: logging.FieldStrategy, Value: s.Name()},
		logging.Field{Key: logging.FieldCategory, Value: category})
	return category, true, nil
}
