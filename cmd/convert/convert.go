// Package convert handles statement conversion commands.
package convert

import (
	"strings"

	"bankflow/stmt-csv/cmd/root"
	"bankflow/stmt-csv/internal/batch"
	"bankflow/stmt-csv/internal/export"
	"bankflow/stmt-csv/internal/logging"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
)

var (
	formatName     string
	openingBalance string
	outputFile     string
	excelFile      string
	noCategories   bool
)

// Cmd represents the convert command.
var Cmd = &cobra.Command{
	Use:   "convert [statement.pdf ...]",
	Short: "Convert statement PDFs to a CSV transaction table",
	Long: `Convert one or more bank statement PDFs into a single CSV transaction
table. Multiple statements are combined, sorted by date, and reconciled
against the opening balance. Output columns are fixed regardless of the
source format.`,
	Args: cobra.MinimumNArgs(1),
	Run:  convertFunc,
}

func init() {
	Cmd.Flags().StringVarP(&formatName, "format", "f", "", "Statement format (wio, emiratesnbd, rakbank); detected when omitted")
	Cmd.Flags().StringVarP(&openingBalance, "opening-balance", "b", "0", "Opening balance for the running balance computation")
	Cmd.Flags().StringVarP(&outputFile, "output", "o", "transactions.csv", "Output CSV file")
	Cmd.Flags().StringVarP(&excelFile, "excel", "x", "", "Also write an XLSX workbook to this path")
	Cmd.Flags().BoolVar(&noCategories, "no-categories", false, "Skip categorization")
}

func convertFunc(cmd *cobra.Command, args []string) {
	opening, err := decimal.NewFromString(strings.ReplaceAll(openingBalance, ",", ""))
	if err != nil {
		root.Log.Fatal("Invalid opening balance",
			logging.Field{Key: "value", Value: openingBalance})
	}

	pipeline, closer, err := root.NewPipeline(cmd.Context())
	if err != nil {
		root.Log.WithError(err).Fatal("Failed to initialize pipeline")
	}
	defer closer()

	records, err := pipeline.Run(cmd.Context(), args, batch.Options{
		FormatName:         formatName,
		OpeningBalance:     opening,
		Workers:            root.AppConfig.Convert.Workers,
		SkipCategorization: noCategories,
	})
	if err != nil {
		root.Log.WithError(err).Fatal("Conversion failed")
	}

	if err := export.WriteCSV(records, outputFile); err != nil {
		root.Log.WithError(err).Fatal("Failed to write CSV",
			logging.Field{Key: logging.FieldOutputFile, Value: outputFile})
	}
	if excelFile != "" {
		if err := export.WriteXLSX(records, excelFile); err != nil {
			root.Log.WithError(err).Fatal("Failed to write XLSX",
				logging.Field{Key: logging.FieldOutputFile, Value: excelFile})
		}
	}

	root.Log.Info("Conversion completed",
		logging.Field{Key: logging.FieldCount, Value: len(records)},
		logging.Field{Key: logging.FieldOutputFile, Value: outputFile})
}
