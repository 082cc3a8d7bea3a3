// Package batch drives the conversion pipeline over one or more statement
// files: text extraction, record extraction, reconciliation and
// categorization.
package batch

import (
	"context"
	"fmt"
	"path/filepath"
	"runtime"
	"sync"

	"bankflow/stmt-csv/internal/categorizer"
	"bankflow/stmt-csv/internal/format"
	"bankflow/stmt-csv/internal/logging"
	"bankflow/stmt-csv/internal/models"
	"bankflow/stmt-csv/internal/pdftext"
	"bankflow/stmt-csv/internal/reconcile"
	"bankflow/stmt-csv/internal/stmtparser"
	"bankflow/stmt-csv/internal/store"

	"github.com/shopspring/decimal"
)

// Options controls one pipeline run.
type Options struct {
	// FormatName selects the statement format. Empty means detect per
	// document from the page text.
	FormatName string
	// OpeningBalance seeds the running balance computation.
	OpeningBalance decimal.Decimal
	// Workers caps documents processed in parallel. Zero means NumCPU.
	Workers int
	// SkipCategorization leaves every record on the sentinel category.
	SkipCategorization bool
}

// Pipeline wires the collaborators of a conversion run.
type Pipeline struct {
	texts  pdftext.Extractor
	rules  store.RuleSource
	ai     categorizer.AIClient
	logger logging.Logger
}

// New creates a Pipeline. The AI client may be nil; rules may be nil to skip
// categorization entirely.
func New(texts pdftext.Extractor, rules store.RuleSource, ai categorizer.AIClient, logger logging.Logger) *Pipeline {
	if logger == nil {
		logger = logging.GetLogger()
	}
	return &Pipeline{texts: texts, rules: rules, ai: ai, logger: logger}
}

// Run converts the given statement files into one combined, reconciled and
// categorized transaction table. Records keep upload order before
// reconciliation sorts them by date. A document that cannot be read is
// logged and skipped; the rest of the batch continues. Run fails only when
// no document yields any text.
func (p *Pipeline) Run(ctx context.Context, files []string, opts Options) ([]models.TransactionRecord, error) {
	if len(files) == 0 {
		return nil, fmt.Errorf("no input files")
	}

	docs, err := p.loadDocuments(ctx, files, opts.Workers)
	if err != nil {
		return nil, err
	}

	var records []models.TransactionRecord
	for _, doc := range docs {
		f, err := p.resolveFormat(doc, opts.FormatName)
		if err != nil {
			p.logger.WithError(err).Warn("Skipping document",
				logging.Field{Key: logging.FieldFile, Value: doc.Name})
			continue
		}

		extracted := stmtparser.New(f, p.logger).Extract(doc)
		for i := range extracted {
			extracted[i].SourceFile = doc.Name
		}
		p.logger.Info("Extracted records",
			logging.Field{Key: logging.FieldFile, Value: doc.Name},
			logging.Field{Key: logging.FieldFormat, Value: string(f.Name)},
			logging.Field{Key: logging.FieldCount, Value: len(extracted)})
		records = append(records, extracted...)
	}

	records = reconcile.Reconcile(records, opts.OpeningBalance)

	if !opts.SkipCategorization {
		p.categorize(ctx, records)
	}
	return records, nil
}

// Categorize annotates existing records using the pipeline's rule source and
// optional AI client. A failing rule source degrades: every record keeps the
// sentinel and the error is reported to the caller after the records are
// left intact.
func (p *Pipeline) Categorize(ctx context.Context, records []models.TransactionRecord) error {
	if p.rules == nil {
		return nil
	}
	rules, err := p.rules.LoadRules()
	if err != nil {
		return err
	}
	categorizer.New(rules, p.ai, p.logger).Apply(ctx, records)
	return nil
}

func (p *Pipeline) categorize(ctx context.Context, records []models.TransactionRecord) {
	if err := p.Categorize(ctx, records); err != nil {
		p.logger.WithError(err).Warn("Categorization unavailable, records remain uncategorized")
	}
}

// indexedDocument preserves upload order across the worker pool.
type indexedDocument struct {
	index int
	doc   stmtparser.Document
	err   error
}

func (p *Pipeline) loadDocuments(ctx context.Context, files []string, workers int) ([]stmtparser.Document, error) {
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	if workers > len(files) {
		workers = len(files)
	}

	fileChan := make(chan int, workers)
	resultChan := make(chan indexedDocument, len(files))

	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range fileChan {
				pages, err := p.texts.ExtractPages(files[i])
				resultChan <- indexedDocument{
					index: i,
					doc:   stmtparser.Document{Name: filepath.Base(files[i]), Pages: pages},
					err:   err,
				}
			}
		}()
	}

	go func() {
		defer close(fileChan)
		for i := range files {
			select {
			case fileChan <- i:
			case <-ctx.Done():
				return
			}
		}
	}()

	go func() {
		wg.Wait()
		close(resultChan)
	}()

	ordered := make([]*stmtparser.Document, len(files))
	for result := range resultChan {
		if result.err != nil {
			p.logger.WithError(result.err).Warn("Skipping unreadable document",
				logging.Field{Key: logging.FieldFile, Value: files[result.index]})
			continue
		}
		doc := result.doc
		ordered[result.index] = &doc
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	docs := make([]stmtparser.Document, 0, len(files))
	for _, doc := range ordered {
		if doc != nil {
			docs = append(docs, *doc)
		}
	}
	if len(docs) == 0 {
		return nil, fmt.Errorf("none of the %d input files could be read", len(files))
	}
	return docs, nil
}

func (p *Pipeline) resolveFormat(doc stmtparser.Document, name string) (format.Format, error) {
	if name != "" {
		return format.ForName(name)
	}
	return format.Detect(doc.Pages)
}
