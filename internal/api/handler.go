// Package api exposes the conversion pipeline over HTTP.
package api

import (
	"fmt"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"

	"bankflow/stmt-csv/internal/batch"
	"bankflow/stmt-csv/internal/logging"
	"bankflow/stmt-csv/internal/models"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
)

// ConvertResponse is the JSON response from the /api/convert endpoint.
type ConvertResponse struct {
	Success      bool              `json:"success"`
	Error        string            `json:"error,omitempty"`
	Format       string            `json:"format,omitempty"`
	Transactions []TransactionJSON `json:"transactions"`
	Count        int               `json:"count"`
}

// TransactionJSON is the wire form of one record: dates in the statement
// convention, amounts as fixed two-decimal strings.
type TransactionJSON struct {
	Date              string `json:"date"`
	ValueDate         string `json:"valueDate,omitempty"`
	Reference         string `json:"reference,omitempty"`
	Description       string `json:"description"`
	Amount            string `json:"amount"`
	RunningBalance    string `json:"runningBalance"`
	CalculatedBalance string `json:"calculatedBalance"`
	Currency          string `json:"currency"`
	Account           string `json:"account,omitempty"`
	Category          string `json:"category"`
	SourceFile        string `json:"sourceFile"`
}

// Handler holds the HTTP handlers for the API.
type Handler struct {
	pipeline *batch.Pipeline
	logger   logging.Logger
}

// NewHandler creates a Handler around a conversion pipeline.
func NewHandler(pipeline *batch.Pipeline, logger logging.Logger) *Handler {
	if logger == nil {
		logger = logging.GetLogger()
	}
	return &Handler{pipeline: pipeline, logger: logger}
}

// Register sets up the API routes.
func (h *Handler) Register(app *fiber.App) {
	app.Get("/api/health", h.HandleHealth)
	app.Post("/api/convert", h.HandleConvert)
}

// HandleHealth reports service liveness.
func (h *Handler) HandleHealth(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"status": "ok",
		"engine": "fiber",
	})
}

// HandleConvert accepts one or more uploaded PDF statements and returns the
// combined transaction table as JSON. Optional form fields: "format" to
// bypass auto-detection and "openingBalance" to seed the running balance.
func (h *Handler) HandleConvert(c *fiber.Ctx) error {
	form, err := c.MultipartForm()
	if err != nil {
		return writeError(c, fiber.StatusBadRequest, fmt.Sprintf("failed to parse form: %v", err))
	}

	uploads := form.File["files"]
	if len(uploads) == 0 {
		uploads = form.File["file"]
	}
	if len(uploads) == 0 {
		return writeError(c, fiber.StatusBadRequest, "no file uploaded; use form field 'file' or 'files'")
	}
	for _, upload := range uploads {
		if !strings.HasSuffix(strings.ToLower(upload.Filename), ".pdf") {
			return writeError(c, fiber.StatusBadRequest,
				fmt.Sprintf("only PDF files are supported, got %q", upload.Filename))
		}
	}

	openingBalance := decimal.Zero
	if raw := c.FormValue("openingBalance"); raw != "" {
		openingBalance, err = decimal.NewFromString(strings.ReplaceAll(raw, ",", ""))
		if err != nil {
			return writeError(c, fiber.StatusBadRequest,
				fmt.Sprintf("invalid openingBalance %q", raw))
		}
	}

	files, cleanup, err := h.saveUploads(c, uploads)
	if err != nil {
		return writeError(c, fiber.StatusInternalServerError, err.Error())
	}
	defer cleanup()

	records, err := h.pipeline.Run(c.Context(), files, batch.Options{
		FormatName:     c.FormValue("format"),
		OpeningBalance: openingBalance,
	})
	if err != nil {
		return writeError(c, fiber.StatusUnprocessableEntity, err.Error())
	}

	// Upload names were replaced by temp names on disk; restore them.
	tmpToUpload := make(map[string]string, len(files))
	for i, tmp := range files {
		tmpToUpload[filepath.Base(tmp)] = uploads[i].Filename
	}

	resp := ConvertResponse{
		Success:      true,
		Format:       c.FormValue("format"),
		Transactions: make([]TransactionJSON, 0, len(records)),
		Count:        len(records),
	}
	for _, record := range records {
		if name, ok := tmpToUpload[record.SourceFile]; ok {
			record.SourceFile = name
		}
		resp.Transactions = append(resp.Transactions, toJSON(record))
	}
	return c.JSON(resp)
}

func (h *Handler) saveUploads(c *fiber.Ctx, uploads []*multipart.FileHeader) ([]string, func(), error) {
	dir, err := os.MkdirTemp("", "stmt-upload-")
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create temp dir: %w", err)
	}
	cleanup := func() {
		if err := os.RemoveAll(dir); err != nil {
			h.logger.WithError(err).Warn("Failed to remove upload dir")
		}
	}

	files := make([]string, 0, len(uploads))
	for i, upload := range uploads {
		path := filepath.Join(dir, fmt.Sprintf("upload-%d.pdf", i))
		if err := c.SaveFile(upload, path); err != nil {
			cleanup()
			return nil, nil, fmt.Errorf("failed to save upload %q: %w", upload.Filename, err)
		}
		files = append(files, path)
	}
	return files, cleanup, nil
}

func toJSON(record models.TransactionRecord) TransactionJSON {
	out := TransactionJSON{
		Reference:         record.Reference,
		Description:       record.Description,
		Amount:            record.Amount.StringFixed(2),
		RunningBalance:    record.ExtractedBalance.StringFixed(2),
		CalculatedBalance: record.ComputedBalance.StringFixed(2),
		Currency:          record.Currency,
		Account:           record.Account,
		Category:          record.Category,
		SourceFile:        record.SourceFile,
	}
	if !record.Date.IsZero() {
		out.Date = record.Date.Format(models.DateLayout)
	}
	if !record.ValueDate.IsZero() {
		out.ValueDate = record.ValueDate.Format(models.DateLayout)
	}
	return out
}

func writeError(c *fiber.Ctx, status int, msg string) error {
	return c.Status(status).JSON(ConvertResponse{
		Success:      false,
		Error:        msg,
		Transactions: []TransactionJSON{},
	})
}
