package store

import (
	"bankflow/stmt-csv/internal/models"
)

// MockRuleStore is a mock implementation of RuleSource for testing.
type MockRuleStore struct {
	Rules []models.CategoryRule

	LoadRulesError error
}

// LoadRules returns the mock rule table.
func (m *MockRuleStore) LoadRules() ([]models.CategoryRule, error) {
	if m.LoadRulesError != nil {
		return nil, m.LoadRulesError
	}
	result := make([]models.CategoryRule, len(m.Rules))
	copy(result, m.Rules)
	return result, nil
}
