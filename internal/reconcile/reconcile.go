// Package reconcile derives a running balance from an opening balance and
// the signed transaction amounts, independent of whatever balance figures
// were textually extracted from the statements.
package reconcile

import (
	"sort"

	"bankflow/stmt-csv/internal/models"

	"github.com/shopspring/decimal"
)

// Reconcile sorts the combined record slice by transaction date (stable, so
// ties keep their original relative order) and sets ComputedBalance to the
// inclusive prefix sum of amounts starting from the opening balance. The
// records are treated as one ledger across all source documents.
//
// Divergence between ComputedBalance and ExtractedBalance is expected and
// left for the consumer to inspect; it is not an error.
func Reconcile(records []models.TransactionRecord, openingBalance decimal.Decimal) []models.TransactionRecord {
	sort.SliceStable(records, func(i, j int) bool {
		return records[i].Date.Before(records[j].Date)
	})

	running := openingBalance
	for i := range records {
		running = running.Add(records[i].Amount)
		records[i].ComputedBalance = running
	}
	return records
}
