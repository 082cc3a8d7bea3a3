package batch

import (
	"context"
	"errors"
	"testing"

	"bankflow/stmt-csv/internal/logging"
	"bankflow/stmt-csv/internal/models"
	"bankflow/stmt-csv/internal/parsererror"
	"bankflow/stmt-csv/internal/pdftext"
	"bankflow/stmt-csv/internal/store"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const wioPage = `Wio Bank Statement
Account: AE070331234567890123456 AED
01/01/2024 P100000001 OPENING DEPOSIT 1,000.00 1,000.00
03/01/2024 P100000002 CARREFOUR HYPERMARKET -200.00 800.00`

const wioPageLater = `Wio Bank Statement
Account: AE070331234567890123456 AED
02/01/2024 P100000003 SALARY TRANSFER 50.00 1,050.00`

func newPipeline(pages map[string][]string, rules []models.CategoryRule) *Pipeline {
	return New(
		&pdftext.MockExtractor{Pages: pages},
		&store.MockRuleStore{Rules: rules},
		nil,
		&logging.MockLogger{},
	)
}

func TestRunSingleDocument(t *testing.T) {
	p := newPipeline(map[string][]string{
		"jan.pdf": {wioPage},
	}, []models.CategoryRule{{Keyword: "carrefour", Category: "Groceries"}})

	records, err := p.Run(context.Background(), []string{"jan.pdf"}, Options{
		OpeningBalance: decimal.Zero,
	})

	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, "jan.pdf", records[0].SourceFile)
	assert.Equal(t, "AED", records[0].Currency)
	assert.Equal(t, models.CategoryUncategorized, records[0].Category)
	assert.Equal(t, "Groceries", records[1].Category)
	assert.True(t, records[1].ComputedBalance.Equal(decimal.RequireFromString("800.00")),
		"got %s", records[1].ComputedBalance)
}

func TestRunCombinesDocumentsSortedByDate(t *testing.T) {
	p := newPipeline(map[string][]string{
		"jan-a.pdf": {wioPage},
		"jan-b.pdf": {wioPageLater},
	}, nil)

	records, err := p.Run(context.Background(), []string{"jan-a.pdf", "jan-b.pdf"}, Options{})

	require.NoError(t, err)
	require.Len(t, records, 3)
	assert.Equal(t, "jan-a.pdf", records[0].SourceFile)
	assert.Equal(t, "jan-b.pdf", records[1].SourceFile)
	assert.Equal(t, "jan-a.pdf", records[2].SourceFile)
	// Running balance spans both documents after the date sort.
	assert.True(t, records[1].ComputedBalance.Equal(decimal.RequireFromString("1050.00")))
	assert.True(t, records[2].ComputedBalance.Equal(decimal.RequireFromString("850.00")))
}

func TestRunExplicitFormatOverridesDetection(t *testing.T) {
	// No wio marker in the text; detection would fail.
	page := "01/01/2024 P100000001 DEPOSIT 1,000.00 1,000.00"
	p := newPipeline(map[string][]string{"x.pdf": {page}}, nil)

	records, err := p.Run(context.Background(), []string{"x.pdf"}, Options{FormatName: "wio"})

	require.NoError(t, err)
	require.Len(t, records, 1)
}

func TestRunUndetectableFormatSkipsDocument(t *testing.T) {
	p := newPipeline(map[string][]string{
		"good.pdf": {wioPage},
		"bad.pdf":  {"no recognizable bank markers here"},
	}, nil)

	records, err := p.Run(context.Background(), []string{"good.pdf", "bad.pdf"}, Options{})

	require.NoError(t, err)
	assert.Len(t, records, 2)
}

func TestRunAllDocumentsUnreadable(t *testing.T) {
	p := New(
		&pdftext.MockExtractor{Err: &parsererror.DocumentError{Document: "x.pdf", Reason: "scanned"}},
		nil, nil, &logging.MockLogger{},
	)

	_, err := p.Run(context.Background(), []string{"x.pdf"}, Options{})

	assert.Error(t, err)
}

func TestRunNoFiles(t *testing.T) {
	p := newPipeline(nil, nil)
	_, err := p.Run(context.Background(), nil, Options{})
	assert.Error(t, err)
}

func TestRunRuleSourceFailureDegrades(t *testing.T) {
	p := New(
		&pdftext.MockExtractor{Pages: map[string][]string{"jan.pdf": {wioPage}}},
		&store.MockRuleStore{LoadRulesError: errors.New("rules unreachable")},
		nil,
		&logging.MockLogger{},
	)

	records, err := p.Run(context.Background(), []string{"jan.pdf"}, Options{})

	require.NoError(t, err)
	require.Len(t, records, 2)
	for _, r := range records {
		assert.Equal(t, models.CategoryUncategorized, r.Category)
	}
}

func TestRunSkipCategorization(t *testing.T) {
	p := newPipeline(map[string][]string{"jan.pdf": {wioPage}},
		[]models.CategoryRule{{Keyword: "carrefour", Category: "Groceries"}})

	records, err := p.Run(context.Background(), []string{"jan.pdf"},
		Options{SkipCategorization: true})

	require.NoError(t, err)
	for _, r := range records {
		assert.Equal(t, models.CategoryUncategorized, r.Category)
	}
}

func TestRunWorkerPoolPreservesUploadOrder(t *testing.T) {
	pages := map[string][]string{}
	files := make([]string, 0, 8)
	for _, name := range []string{"a.pdf", "b.pdf", "c.pdf", "d.pdf", "e.pdf", "f.pdf", "g.pdf", "h.pdf"} {
		pages[name] = []string{wioPageLater}
		files = append(files, name)
	}
	p := newPipeline(pages, nil)

	records, err := p.Run(context.Background(), files, Options{Workers: 4, SkipCategorization: true})

	require.NoError(t, err)
	require.Len(t, records, len(files))
	// Same date everywhere, so the stable sort keeps upload order.
	for i, name := range []string{"a.pdf", "b.pdf", "c.pdf", "d.pdf", "e.pdf", "f.pdf", "g.pdf", "h.pdf"} {
		assert.Equal(t, name, records[i].SourceFile)
	}
}
