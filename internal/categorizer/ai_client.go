package categorizer

import "context"

// AIClient abstracts the external model used for fallback categorization,
// so the strategy can be tested without network access.
type AIClient interface {
	// CategorizeDescription returns a category name for a transaction
	// description, or an error when the service is unavailable.
	CategorizeDescription(ctx context.Context, description string) (string, error)
}
