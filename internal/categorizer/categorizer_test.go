package categorizer

import (
	"context"
	"errors"
	"testing"

	"bankflow/stmt-csv/internal/logging"
	"bankflow/stmt-csv/internal/models"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type mockAIClient struct {
	answers map[string]string
	err     error
	calls   int
}

func (m *mockAIClient) CategorizeDescription(_ context.Context, description string) (string, error) {
	m.calls++
	if m.err != nil {
		return "", m.err
	}
	return m.answers[description], nil
}

func TestCategorize_KeywordBeforeAI(t *testing.T) {
	ai := &mockAIClient{answers: map[string]string{"CARREFOUR MALL": "Entertainment"}}
	rules := []models.CategoryRule{{Keyword: "carrefour", Category: "Groceries"}}
	c := New(rules, ai, &logging.MockLogger{})

	category := c.Categorize(context.Background(), "CARREFOUR MALL")

	assert.Equal(t, "Groceries", category)
	assert.Zero(t, ai.calls, "AI should not run when a keyword rule matched")
}

func TestCategorize_AIFallback(t *testing.T) {
	ai := &mockAIClient{answers: map[string]string{"OBSCURE MERCHANT 42": "Dining"}}
	rules := []models.CategoryRule{{Keyword: "carrefour", Category: "Groceries"}}
	c := New(rules, ai, &logging.MockLogger{})

	category := c.Categorize(context.Background(), "OBSCURE MERCHANT 42")

	assert.Equal(t, "Dining", category)
	assert.Equal(t, 1, ai.calls)
}

func TestCategorize_AIFailureDegradesToSentinel(t *testing.T) {
	ai := &mockAIClient{err: errors.New("quota exceeded")}
	c := New(nil, ai, &logging.MockLogger{})

	category := c.Categorize(context.Background(), "SOMETHING")

	assert.Equal(t, models.CategoryUncategorized, category)
}

func TestCategorize_NoStrategyMatches(t *testing.T) {
	c := New([]models.CategoryRule{{Keyword: "netflix", Category: "Subscriptions"}}, nil, &logging.MockLogger{})

	category := c.Categorize(context.Background(), "UNKNOWN SHOP")

	assert.Equal(t, models.CategoryUncategorized, category)
}

func TestCategorize_AIEmptyAnswerDegrades(t *testing.T) {
	ai := &mockAIClient{answers: map[string]string{}}
	c := New(nil, ai, &logging.MockLogger{})

	category := c.Categorize(context.Background(), "ANYTHING")

	assert.Equal(t, models.CategoryUncategorized, category)
}

func TestApply_AnnotatesRecordsInPlace(t *testing.T) {
	rules := []models.CategoryRule{
		{Keyword: "salary", Category: "Income"},
		{Keyword: "dewa", Category: "Utilities"},
	}
	c := New(rules, nil, &logging.MockLogger{})

	records := []models.TransactionRecord{
		{Description: "SALARY TRANSFER", Amount: decimal.NewFromInt(5000)},
		{Description: "DEWA BILL PAYMENT", Amount: decimal.NewFromInt(-300)},
		{Description: "CASH WITHDRAWAL", Amount: decimal.NewFromInt(-100)},
	}

	c.Apply(context.Background(), records)

	require.Len(t, records, 3)
	assert.Equal(t, "Income", records[0].Category)
	assert.Equal(t, "Utilities", records[1].Category)
	assert.Equal(t, models.CategoryUncategorized, records[2].Category)
}
