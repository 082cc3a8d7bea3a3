// Package pdftext turns statement PDFs into per-page text. Extraction tries
// the in-process PDF library first and shells out to pdftotext when the
// library output fails the readability gate.
package pdftext

import (
	"fmt"
	"io"
	"math"
	"os/exec"
	"sort"
	"strconv"
	"strings"
	"unicode"

	"bankflow/stmt-csv/internal/logging"
	"bankflow/stmt-csv/internal/parsererror"

	"github.com/ledongthuc/pdf"
)

// Extractor yields one text string per PDF page.
type Extractor interface {
	ExtractPages(filePath string) ([]string, error)
}

// PDFExtractor extracts text with ledongthuc/pdf, falling back to the
// external pdftotext binary (poppler-utils) for files the library cannot
// decode into readable text.
type PDFExtractor struct {
	logger logging.Logger
}

// New creates a PDFExtractor.
func New(logger logging.Logger) *PDFExtractor {
	if logger == nil {
		logger = logging.GetLogger()
	}
	return &PDFExtractor{logger: logger}
}

// ExtractPages returns the text of each page. Output that does not pass the
// readability gate is discarded rather than parsed, so scanned or
// custom-encoded PDFs surface as a DocumentError instead of garbage records.
func (e *PDFExtractor) ExtractPages(filePath string) ([]string, error) {
	pages, libErr := e.extractWithLibrary(filePath)
	if libErr == nil && IsReadable(pages) {
		return pages, nil
	}
	if libErr != nil {
		e.logger.WithError(libErr).Debug("PDF library extraction failed",
			logging.Field{Key: logging.FieldFile, Value: filePath})
	}

	pages, popplerErr := e.extractWithPdftotext(filePath)
	if popplerErr == nil && IsReadable(pages) {
		e.logger.Debug("Extracted text via pdftotext fallback",
			logging.Field{Key: logging.FieldFile, Value: filePath})
		return pages, nil
	}

	err := libErr
	if err == nil {
		err = popplerErr
	}
	return nil, &parsererror.DocumentError{
		Document: filePath,
		Reason:   "no readable text; the file may be scanned or use custom font encodings",
		Err:      err,
	}
}

func (e *PDFExtractor) extractWithLibrary(filePath string) (pages []string, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("pdf library panic: %v", r)
		}
	}()

	f, r, openErr := pdf.Open(filePath)
	if openErr != nil {
		return nil, openErr
	}
	defer func() {
		if closeErr := f.Close(); closeErr != nil {
			e.logger.WithError(closeErr).Warn("Failed to close PDF",
				logging.Field{Key: logging.FieldFile, Value: filePath})
		}
	}()

	numPages := r.NumPage()
	if numPages == 0 {
		return nil, fmt.Errorf("pdf has no pages")
	}

	pages = extractByRow(r, numPages)
	if IsReadable(pages) {
		return pages, nil
	}

	pages = extractByContent(r, numPages)
	if IsReadable(pages) {
		return pages, nil
	}

	whole := extractByPlainText(r)
	if IsReadable([]string{whole}) {
		return []string{whole}, nil
	}

	return pages, nil
}

// extractByRow keeps the library's row grouping, which preserves the
// line-per-transaction layout the tokenizer expects.
func extractByRow(r *pdf.Reader, numPages int) []string {
	var pages []string
	for i := 1; i <= numPages; i++ {
		page := r.Page(i)
		if page.V.IsNull() {
			continue
		}
		rows, err := page.GetTextByRow()
		if err != nil {
			continue
		}
		var lines []string
		for _, row := range rows {
			var parts []string
			for _, word := range row.Content {
				parts = append(parts, word.S)
			}
			line := strings.TrimSpace(strings.Join(parts, " "))
			if line != "" {
				lines = append(lines, line)
			}
		}
		pages = append(pages, strings.Join(lines, "\n"))
	}
	return pages
}

// extractByContent reconstructs rows from raw text coordinates: group by
// rounded Y, order top to bottom, then left to right within a row.
func extractByContent(r *pdf.Reader, numPages int) []string {
	type textItem struct {
		x float64
		s string
	}

	var pages []string
	for i := 1; i <= numPages; i++ {
		page := r.Page(i)
		if page.V.IsNull() {
			continue
		}
		content := page.Content()
		if len(content.Text) == 0 {
			continue
		}

		rowMap := make(map[int][]textItem)
		for _, t := range content.Text {
			if strings.TrimSpace(t.S) == "" {
				continue
			}
			yKey := int(math.Round(t.Y))
			rowMap[yKey] = append(rowMap[yKey], textItem{x: t.X, s: t.S})
		}

		yKeys := make([]int, 0, len(rowMap))
		for y := range rowMap {
			yKeys = append(yKeys, y)
		}
		// PDF Y runs bottom-to-top
		sort.Sort(sort.Reverse(sort.IntSlice(yKeys)))

		var lines []string
		for _, y := range yKeys {
			items := rowMap[y]
			sort.Slice(items, func(a, b int) bool {
				return items[a].x < items[b].x
			})

			var parts []string
			var prevX float64
			for j, item := range items {
				if j > 0 && item.x-prevX > 15 {
					parts = append(parts, "  ")
				} else if j > 0 {
					parts = append(parts, " ")
				}
				parts = append(parts, item.s)
				prevX = item.x
			}
			line := strings.TrimSpace(strings.Join(parts, ""))
			if line != "" {
				lines = append(lines, line)
			}
		}
		pages = append(pages, strings.Join(lines, "\n"))
	}
	return pages
}

func extractByPlainText(r *pdf.Reader) string {
	reader, err := r.GetPlainText()
	if err != nil {
		return ""
	}
	data, err := io.ReadAll(reader)
	if err != nil {
		return ""
	}
	return strings.TrimSpace(string(data))
}

func (e *PDFExtractor) extractWithPdftotext(filePath string) ([]string, error) {
	if _, err := exec.LookPath("pdftotext"); err != nil {
		return nil, fmt.Errorf("pdftotext not available: %w", err)
	}

	numPages := 1
	if out, err := exec.Command("pdfinfo", filePath).Output(); err == nil {
		for _, line := range strings.Split(string(out), "\n") {
			if strings.HasPrefix(line, "Pages:") {
				if n, err := strconv.Atoi(strings.TrimSpace(strings.TrimPrefix(line, "Pages:"))); err == nil && n > 0 {
					numPages = n
				}
			}
		}
	}

	var pages []string
	for i := 1; i <= numPages; i++ {
		pageStr := strconv.Itoa(i)
		out, err := exec.Command("pdftotext", "-layout", "-f", pageStr, "-l", pageStr, filePath, "-").Output()
		if err != nil {
			continue
		}
		if text := strings.TrimSpace(string(out)); text != "" {
			pages = append(pages, text)
		}
	}

	if len(pages) == 0 {
		out, err := exec.Command("pdftotext", "-layout", filePath, "-").Output()
		if err != nil {
			return nil, fmt.Errorf("pdftotext failed: %w", err)
		}
		if text := strings.TrimSpace(string(out)); text != "" {
			return []string{text}, nil
		}
		return nil, fmt.Errorf("pdftotext produced no output")
	}
	return pages, nil
}

// statementWords are terms present in virtually every bank statement; text
// containing none of them is treated as undecoded garbage.
var statementWords = []string{
	"bank", "account", "balance", "date", "statement", "transaction",
	"amount", "credit", "debit", "total", "opening", "closing",
	"transfer", "payment", "currency", "page", "period",
}

// IsReadable reports whether extracted pages look like decoded statement
// text: more than 50 characters, over 60% plain ASCII, and at least one
// recognizable statement word.
func IsReadable(pages []string) bool {
	total := 0
	readable := 0
	for _, page := range pages {
		for _, r := range page {
			total++
			if (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') ||
				(r >= '0' && r <= '9') || unicode.IsSpace(r) ||
				strings.ContainsRune(`.,-/:;()'"%&@#!?+=*`, r) ||
				r == '$' || r == '€' || r == '£' {
				readable++
			}
		}
	}
	textLen := 0
	for _, p := range pages {
		textLen += len(strings.TrimSpace(p))
	}
	if textLen <= 50 {
		return false
	}
	if total == 0 || float64(readable)/float64(total) <= 0.6 {
		return false
	}

	combined := strings.ToLower(strings.Join(pages, " "))
	for _, word := range statementWords {
		if strings.Contains(combined, word) {
			return true
		}
	}
	return false
}
