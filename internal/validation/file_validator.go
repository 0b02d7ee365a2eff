// Package validation inspects the raw-data directory tree and reports which
// source files look well-formed, without loading full data or mutating
// anything.
package validation

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/xuri/excelize/v2"

	"hargacli/internal/config"
	"hargacli/internal/dataprocessing"
	"hargacli/internal/files"
)

// Report summarizes a validation pass over the data tree. Produced fresh
// per run, never persisted.
type Report struct {
	ValidFiles   []string
	InvalidFiles []string
	Issues       []string
}

// Valid reports whether every discovered file passed the structural check.
func (r *Report) Valid() bool {
	return len(r.InvalidFiles) == 0 && len(r.Issues) == 0
}

// Validator performs lightweight structural checks on source files.
type Validator struct {
	cfg       *config.Config
	logger    *slog.Logger
	discovery *files.Discovery
}

// NewValidator creates a validator bound to the run configuration.
func NewValidator(cfg *config.Config, logger *slog.Logger) *Validator {
	if logger == nil {
		logger = slog.Default()
	}
	return &Validator{
		cfg:       cfg,
		logger:    logger,
		discovery: files.NewDiscovery(logger),
	}
}

// ValidateTree walks the data root and probes every file matching the
// configured pattern: it must open as a spreadsheet, carry the expected
// commodity-name column, and have at least one date-labeled column. A
// malformed file is recorded as an issue and the walk continues; only a
// missing or unreadable data root is a hard failure.
func (v *Validator) ValidateTree(ctx context.Context) (*Report, error) {
	sources, err := v.discovery.Discover(v.cfg.DataRoot, files.Options{
		Pattern: v.cfg.FilePattern,
	})
	if err != nil {
		return nil, err
	}

	report := &Report{}
	for _, source := range sources {
		if issue := v.checkFile(source.Path); issue != "" {
			report.InvalidFiles = append(report.InvalidFiles, source.Path)
			report.Issues = append(report.Issues, issue)
			v.logger.WarnContext(ctx, "source file failed validation",
				slog.String("path", source.Path),
				slog.String("issue", issue))
			continue
		}
		report.ValidFiles = append(report.ValidFiles, source.Path)
	}

	v.logger.InfoContext(ctx, "data structure validated",
		slog.String("data_root", v.cfg.DataRoot),
		slog.Int("valid_files", len(report.ValidFiles)),
		slog.Int("invalid_files", len(report.InvalidFiles)))

	return report, nil
}

// checkFile runs the structural probe on one file and returns an issue
// description, or "" when the file looks well-formed.
func (v *Validator) checkFile(path string) string {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return fmt.Sprintf("%s: cannot open as spreadsheet: %v", path, err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return fmt.Sprintf("%s: workbook has no sheets", path)
	}

	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return fmt.Sprintf("%s: cannot read sheet %s: %v", path, sheets[0], err)
	}
	if len(rows) == 0 {
		return fmt.Sprintf("%s: sheet %s is empty", path, sheets[0])
	}

	headers := rows[0]
	if len(headers) < v.cfg.MinExpectedColumns {
		return fmt.Sprintf("%s: expected at least %d columns, got %d", path, v.cfg.MinExpectedColumns, len(headers))
	}

	hasCommodity := false
	dateColumns := 0
	for _, header := range headers {
		if header == v.cfg.CommodityColumn {
			hasCommodity = true
			continue
		}
		if _, err := dataprocessing.ParseDateHeader(header); err == nil {
			dateColumns++
		}
	}

	if !hasCommodity {
		return fmt.Sprintf("%s: missing %q column", path, v.cfg.CommodityColumn)
	}
	if dateColumns == 0 {
		return fmt.Sprintf("%s: no date-labeled columns found", path)
	}

	return ""
}
