// Package categorize handles re-categorization of exported tables.
package categorize

import (
	"encoding/csv"
	"os"
	"strings"

	"bankflow/stmt-csv/cmd/root"
	"bankflow/stmt-csv/internal/batch"
	"bankflow/stmt-csv/internal/export"
	"bankflow/stmt-csv/internal/logging"
	"bankflow/stmt-csv/internal/models"
	"bankflow/stmt-csv/internal/parsererror"

	"github.com/spf13/cobra"
)

var inPlace bool

// Cmd represents the categorize command.
var Cmd = &cobra.Command{
	Use:   "categorize [transactions.csv ...]",
	Short: "Re-categorize previously exported transaction tables",
	Long: `Re-run categorization over CSV tables produced by the convert command,
for example after editing the rule file. Files are processed independently;
a failing file does not stop the rest.`,
	Args: cobra.MinimumNArgs(1),
	Run:  categorizeFunc,
}

func init() {
	Cmd.Flags().BoolVarP(&inPlace, "in-place", "w", false, "Overwrite the input files instead of writing .categorized.csv copies")
}

func categorizeFunc(cmd *cobra.Command, args []string) {
	pipeline, closer, err := root.NewPipeline(cmd.Context())
	if err != nil {
		root.Log.WithError(err).Fatal("Failed to initialize pipeline")
	}
	defer closer()

	failures := 0
	for _, file := range args {
		if err := recategorizeFile(cmd, pipeline, file); err != nil {
			root.Log.WithError(err).Error("Failed to re-categorize file",
				logging.Field{Key: logging.FieldInputFile, Value: file})
			failures++
		}
	}
	if failures > 0 {
		root.Log.Fatal("Re-categorization finished with failures",
			logging.Field{Key: logging.FieldCount, Value: failures})
	}
	root.Log.Info("Re-categorization completed",
		logging.Field{Key: logging.FieldCount, Value: len(args)})
}

func recategorizeFile(cmd *cobra.Command, pipeline *batch.Pipeline, file string) error {
	if err := requireColumn(file, models.ColumnDescription); err != nil {
		return err
	}

	records, err := export.ReadCSV(file)
	if err != nil {
		return err
	}

	if err := pipeline.Categorize(cmd.Context(), records); err != nil {
		return err
	}

	out := file
	if !inPlace {
		out = strings.TrimSuffix(file, ".csv") + ".categorized.csv"
	}
	return export.WriteCSV(records, out)
}

// requireColumn verifies the table header before the row decoder runs, so a
// table without the column fails loudly instead of silently categorizing
// empty descriptions.
func requireColumn(file, column string) error {
	f, err := os.Open(file)
	if err != nil {
		return err
	}
	defer func() {
		if err := f.Close(); err != nil {
			root.Log.WithError(err).Warn("Failed to close file")
		}
	}()

	reader := csv.NewReader(f)
	reader.Comma = export.Delimiter
	header, err := reader.Read()
	if err != nil {
		return err
	}
	for _, name := range header {
		if strings.TrimSpace(name) == column {
			return nil
		}
	}
	return &parsererror.MissingColumnError{FilePath: file, Column: column}
}
