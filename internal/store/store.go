// Package store loads category rule tables from CSV and YAML files.
package store

import (
	"os"
	"path/filepath"
	"strings"

	"bankflow/stmt-csv/internal/logging"
	"bankflow/stmt-csv/internal/models"
	"bankflow/stmt-csv/internal/parsererror"

	"github.com/gocarina/gocsv"
	"gopkg.in/yaml.v3"
)

// RuleSource loads an ordered category rule table.
type RuleSource interface {
	LoadRules() ([]models.CategoryRule, error)
}

// RuleStore resolves and reads rule files from disk. Row order in the file is
// preserved: earlier rules take precedence during categorization.
type RuleStore struct {
	RulesFile string
	logger    logging.Logger
}

// NewRuleStore creates a store for the given rules file. An empty path falls
// back to the default location search for "rules.csv".
func NewRuleStore(rulesFile string, logger logging.Logger) *RuleStore {
	if logger == nil {
		logger = logging.GetLogger()
	}
	return &RuleStore{RulesFile: rulesFile, logger: logger}
}

// FindConfigFile looks for a configuration file in standard locations.
func (s *RuleStore) FindConfigFile(filename string) (string, error) {
	if filepath.IsAbs(filename) {
		if _, err := os.Stat(filename); err == nil {
			return filename, nil
		}
		return "", os.ErrNotExist
	}

	locations := []string{
		filename,
		filepath.Join("config", filename),
		filepath.Join("database", filename),
	}
	for _, location := range locations {
		if _, err := os.Stat(location); err == nil {
			return location, nil
		}
	}

	homeDir, err := os.UserHomeDir()
	if err == nil {
		configPath := filepath.Join(homeDir, ".config", "stmt-csv", filename)
		if _, err := os.Stat(configPath); err == nil {
			return configPath, nil
		}
	}

	return "", os.ErrNotExist
}

// LoadRules reads the rule table, dispatching on the file extension. A file
// that cannot be found or parsed yields a RuleSourceError; callers degrade to
// the uncategorized sentinel rather than abort the conversion.
func (s *RuleStore) LoadRules() ([]models.CategoryRule, error) {
	filename := s.RulesFile
	if filename == "" {
		filename = "rules.csv"
	}

	filePath, err := s.FindConfigFile(filename)
	if err != nil {
		return nil, &parsererror.RuleSourceError{Source: filename, Err: err}
	}

	switch strings.ToLower(filepath.Ext(filePath)) {
	case ".yaml", ".yml":
		return s.loadYAML(filePath)
	default:
		return s.loadCSV(filePath)
	}
}

func (s *RuleStore) loadCSV(filePath string) ([]models.CategoryRule, error) {
	f, err := os.Open(filePath)
	if err != nil {
		return nil, &parsererror.RuleSourceError{Source: filePath, Err: err}
	}
	defer func() {
		if err := f.Close(); err != nil {
			s.logger.WithError(err).Warn("Failed to close rules file",
				logging.Field{Key: logging.FieldFile, Value: filePath})
		}
	}()

	var rules []models.CategoryRule
	if err := gocsv.UnmarshalFile(f, &rules); err != nil {
		return nil, &parsererror.RuleSourceError{Source: filePath, Err: err}
	}

	s.logger.Debug("Loaded category rules",
		logging.Field{Key: logging.FieldFile, Value: filePath},
		logging.Field{Key: logging.FieldCount, Value: len(rules)})
	return rules, nil
}

func (s *RuleStore) loadYAML(filePath string) ([]models.CategoryRule, error) {
	data, err := os.ReadFile(filePath)
	if err != nil {
		return nil, &parsererror.RuleSourceError{Source: filePath, Err: err}
	}

	// Preferred structure: "rules: [...]". A bare list is accepted too.
	var config models.RulesConfig
	if err := yaml.Unmarshal(data, &config); err == nil && len(config.Rules) > 0 {
		s.logger.Debug("Loaded category rules",
			logging.Field{Key: logging.FieldFile, Value: filePath},
			logging.Field{Key: logging.FieldCount, Value: len(config.Rules)})
		return config.Rules, nil
	}

	var rules []models.CategoryRule
	if err := yaml.Unmarshal(data, &rules); err != nil {
		return nil, &parsererror.RuleSourceError{Source: filePath, Err: err}
	}

	s.logger.Debug("Loaded category rules",
		logging.Field{Key: logging.FieldFile, Value: filePath},
		logging.Field{Key: logging.FieldCount, Value: len(rules)})
	return rules, nil
}

// SaveRules writes the rule table back to a YAML file, creating parent
// directories as needed.
func (s *RuleStore) SaveRules(rules []models.CategoryRule) error {
	filename := s.RulesFile
	if filename == "" {
		filename = "rules.yaml"
	}

	filePath, err := s.FindConfigFile(filename)
	if err != nil {
		if !filepath.IsAbs(filename) {
			filePath = filepath.Join("database", filename)
		} else {
			filePath = filename
		}
	}

	if err := os.MkdirAll(filepath.Dir(filePath), 0o755); err != nil {
		return &parsererror.RuleSourceError{Source: filePath, Err: err}
	}

	data, err := yaml.Marshal(models.RulesConfig{Rules: rules})
	if err != nil {
		return &parsererror.RuleSourceError{Source: filePath, Err: err}
	}
	if err := os.WriteFile(filePath, data, 0o644); err != nil {
		return &parsererror.RuleSourceError{Source: filePath, Err: err}
	}

	s.logger.Debug("Saved category rules",
		logging.Field{Key: logging.FieldFile, Value: filePath},
		logging.Field{Key: logging.FieldCount, Value: len(rules)})
	return nil
}
