// Package categorizer assigns a category to each transaction record.
// Categorization runs as an ordered chain of strategies: keyword rules first,
// then an optional AI fallback. The first strategy that produces a category
// wins; when none does, the record keeps the Uncategorized sentinel.
package categorizer

import "context"

// Strategy is one method of categorizing a transaction description.
type Strategy interface {
	// Categorize attempts to categorize a description. It returns the
	// category, whether categorization succeeded, and any error encountered.
	// A failing strategy reports (._, false, err) and the chain continues;
	// strategies never abort the pipeline.
	Categorize(ctx context.Context, description string) (string, bool, error)

	// Name identifies this strategy in logs.
	Name() string
}
