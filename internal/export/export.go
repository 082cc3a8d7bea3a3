// Package export writes transaction tables to CSV and XLSX and reads
// previously exported CSV tables back in.
package export

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"

	"bankflow/stmt-csv/internal/logging"
	"bankflow/stmt-csv/internal/models"

	"github.com/gocarina/gocsv"
	"github.com/xuri/excelize/v2"
)

var log = logging.GetLogger()

// Delimiter is the CSV output delimiter. Configurable through config or the
// CSV_DELIMITER environment variable.
var Delimiter rune = ','

func init() {
	if val := os.Getenv("CSV_DELIMITER"); val != "" {
		SetDelimiter([]rune(val)[0])
	}
}

// SetDelimiter sets the delimiter for CSV output.
func SetDelimiter(delim rune) {
	Delimiter = delim
}

// SetLogger allows setting a configured logger.
func SetLogger(logger logging.Logger) {
	if logger != nil {
		log = logger
	}
}

// xlsxHeaders mirrors the csv tags on TransactionRecord so both export
// surfaces produce the same column set.
var xlsxHeaders = []string{
	"Date", "Value Date", "Reference", "Description", "Amount",
	"Running Balance", "Calculated Balance", "Currency", "Account",
	"Category", "Source File",
}

// WriteCSV writes records to a CSV file, creating parent directories as
// needed. The column set is fixed regardless of which fields the source
// format populates.
func WriteCSV(records []models.TransactionRecord, csvFile string) error {
	if records == nil {
		return fmt.Errorf("cannot write nil records to CSV")
	}

	log.Info("Writing records to CSV file",
		logging.Field{Key: logging.FieldOutputFile, Value: csvFile},
		logging.Field{Key: logging.FieldCount, Value: len(records)})

	if err := os.MkdirAll(filepath.Dir(csvFile), 0o750); err != nil {
		return fmt.Errorf("error creating directory: %w", err)
	}

	file, err := os.Create(csvFile)
	if err != nil {
		return fmt.Errorf("error creating CSV file: %w", err)
	}
	defer func() {
		if err := file.Close(); err != nil {
			log.WithError(err).Warn("Failed to close file")
		}
	}()

	csvWriter := csv.NewWriter(file)
	csvWriter.Comma = Delimiter
	if err := gocsv.MarshalCSV(records, gocsv.NewSafeCSVWriter(csvWriter)); err != nil {
		return fmt.Errorf("error writing CSV data: %w", err)
	}
	return nil
}

// ReadCSV reads a previously exported transaction table. Used by the
// re-categorization flow.
func ReadCSV(csvFile string) ([]models.TransactionRecord, error) {
	file, err := os.Open(csvFile)
	if err != nil {
		return nil, fmt.Errorf("error opening CSV file: %w", err)
	}
	defer func() {
		if err := file.Close(); err != nil {
			log.WithError(err).Warn("Failed to close file")
		}
	}()

	var records []models.TransactionRecord
	if err := gocsv.UnmarshalFile(file, &records); err != nil {
		return nil, fmt.Errorf("error parsing CSV file: %w", err)
	}

	log.Debug("Read records from CSV file",
		logging.Field{Key: logging.FieldInputFile, Value: csvFile},
		logging.Field{Key: logging.FieldCount, Value: len(records)})
	return records, nil
}

// WriteXLSX writes records to a single-sheet Excel workbook with the same
// columns as the CSV export.
func WriteXLSX(records []models.TransactionRecord, xlsxFile string) error {
	if records == nil {
		return fmt.Errorf("cannot write nil records to XLSX")
	}

	log.Info("Writing records to XLSX file",
		logging.Field{Key: logging.FieldOutputFile, Value: xlsxFile},
		logging.Field{Key: logging.FieldCount, Value: len(records)})

	if err := os.MkdirAll(filepath.Dir(xlsxFile), 0o750); err != nil {
		return fmt.Errorf("error creating directory: %w", err)
	}

	f := excelize.NewFile()
	defer func() {
		if err := f.Close(); err != nil {
			log.WithError(err).Warn("Failed to close workbook")
		}
	}()

	sheet := "Transactions"
	index, err := f.NewSheet(sheet)
	if err != nil {
		return fmt.Errorf("error creating sheet: %w", err)
	}
	f.SetActiveSheet(index)
	if err := f.DeleteSheet("Sheet1"); err != nil {
		return fmt.Errorf("error removing default sheet: %w", err)
	}

	headerRow := make([]interface{}, len(xlsxHeaders))
	for i, h := range xlsxHeaders {
		headerRow[i] = h
	}
	if err := f.SetSheetRow(sheet, "A1", &headerRow); err != nil {
		return fmt.Errorf("error writing header row: %w", err)
	}

	for i, record := range records {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return fmt.Errorf("error computing cell reference: %w", err)
		}
		row := []interface{}{
			formatDate(record.Date),
			formatDate(record.ValueDate),
			record.Reference,
			record.Description,
			record.Amount.StringFixed(2),
			record.ExtractedBalance.StringFixed(2),
			record.ComputedBalance.StringFixed(2),
			record.Currency,
			record.Account,
			record.Category,
			record.SourceFile,
		}
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			return fmt.Errorf("error writing row %d: %w", i+2, err)
		}
	}

	if err := f.SaveAs(xlsxFile); err != nil {
		return fmt.Errorf("error saving XLSX file: %w", err)
	}
	return nil
}

func formatDate(d models.Date) string {
	if d.IsZero() {
		return ""
	}
	return d.Format(models.DateLayout)
}
