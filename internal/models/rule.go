package models

// CategoryRule maps a keyword to a category. Rules are ordered and immutable
// once loaded; the first matching rule wins.
type CategoryRule struct {
	Keyword  string `csv:"Keyword" yaml:"keyword"`
	Category string `csv:"Category" yaml:"category"`
}

// RulesConfig is the YAML representation of a rule table.
type RulesConfig struct {
	Rules []CategoryRule `yaml:"rules"`
}
