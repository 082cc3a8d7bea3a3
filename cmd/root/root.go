// Package root contains the root command for the application.
package root

import (
	"context"

	"bankflow/stmt-csv/internal/batch"
	"bankflow/stmt-csv/internal/categorizer"
	"bankflow/stmt-csv/internal/config"
	"bankflow/stmt-csv/internal/export"
	"bankflow/stmt-csv/internal/logging"
	"bankflow/stmt-csv/internal/pdftext"
	"bankflow/stmt-csv/internal/store"

	"github.com/spf13/cobra"
)

var (
	// Log is the shared logger instance for commands.
	Log = logging.GetLogger()

	// AppConfig holds the loaded application configuration.
	AppConfig *config.Config

	// Cmd is the root command.
	Cmd = &cobra.Command{
		Use:   "stmt-csv",
		Short: "Convert bank statement PDFs to CSV and categorize transactions.",
		Long: `stmt-csv converts bank statement PDFs (Wio, Emirates NBD, RAKBank) into a
normalized CSV transaction table with reconciled running balances and
keyword-based categorization.`,
		Run: func(cmd *cobra.Command, args []string) {
			Log.Info("Welcome to stmt-csv!")
			Log.Info("Use --help to see available commands")
		},
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			cfg, err := config.InitializeConfig()
			if err != nil {
				Log.WithError(err).Fatal("Invalid configuration")
			}
			AppConfig = cfg

			Log = logging.NewLogrusAdapter(cfg.Log.Level, cfg.Log.Format)
			logging.SetDefault(Log)

			export.SetDelimiter([]rune(cfg.CSV.Delimiter)[0])
			export.SetLogger(Log)
		},
	}

	// RulesFile overrides the configured category rules file.
	RulesFile string
)

// Init initializes the root command and all persistent flags.
func Init() {
	Cmd.PersistentFlags().StringVarP(&RulesFile, "rules", "r", "", "Category rules file (CSV or YAML)")
}

// NewPipeline wires the conversion pipeline from the loaded configuration.
// The returned closer releases the AI client when one was created.
func NewPipeline(ctx context.Context) (*batch.Pipeline, func(), error) {
	rulesFile := RulesFile
	if rulesFile == "" {
		rulesFile = AppConfig.Rules.File
	}

	var ai categorizer.AIClient
	closer := func() {}
	if AppConfig.AI.Enabled {
		client, err := categorizer.NewGeminiClient(ctx, AppConfig.AI.APIKey, AppConfig.AI.Model)
		if err != nil {
			return nil, nil, err
		}
		ai = client
		closer = func() {
			if err := client.Close(); err != nil {
				Log.WithError(err).Warn("Failed to close AI client")
			}
		}
	}

	pipeline := batch.New(
		pdftext.New(Log),
		store.NewRuleStore(rulesFile, Log),
		ai,
		Log,
	)
	return pipeline, closer, nil
}
