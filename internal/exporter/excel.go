package exporter

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/xuri/excelize/v2"

	"hargacli/pkg/contracts/domain"
)

// SheetName is the worksheet holding the consolidated table.
const SheetName = "Consolidated_Data"

// ExcelWriter writes consolidated records to xlsx workbooks.
type ExcelWriter struct {
	logger *slog.Logger
}

// NewExcelWriter creates an Excel writer.
func NewExcelWriter(logger *slog.Logger) *ExcelWriter {
	if logger == nil {
		logger = slog.Default()
	}
	return &ExcelWriter{logger: logger}
}

// Write writes the records to path as a single-sheet workbook, replacing
// any existing file. Dates and missing prices are rendered the same way as
// in the CSV output so the two formats stay interchangeable.
func (w *ExcelWriter) Write(path string, records []domain.PriceRecord) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName(f.GetSheetName(0), SheetName); err != nil {
		return fmt.Errorf("failed to name sheet: %w", err)
	}

	header := make([]interface{}, len(Headers))
	for i, h := range Headers {
		header[i] = h
	}
	if err := f.SetSheetRow(SheetName, "A1", &header); err != nil {
		return fmt.Errorf("failed to write headers: %w", err)
	}

	for i, record := range records {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return fmt.Errorf("failed to address row %d: %w", i+2, err)
		}

		row := []interface{}{
			record.Commodity,
			record.City,
			record.Date.Format(OutputDateLayout),
		}
		if record.Price != nil {
			row = append(row, *record.Price)
		} else {
			row = append(row, "")
		}

		if err := f.SetSheetRow(SheetName, cell, &row); err != nil {
			return fmt.Errorf("failed to write record %d: %w", i, err)
		}
	}

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("failed to save workbook: %w", err)
	}

	w.logger.Info("wrote Excel output",
		slog.String("path", path),
		slog.Int("records", len(records)))

	return nil
}
