// Package pipeline is the thin facade over the consolidation stages: it
// wires validation, consolidation and output writing behind a single entry
// point.
package pipeline

import (
	"context"
	"log/slog"
	"path/filepath"

	"github.com/google/uuid"

	"hargacli/internal/config"
	"hargacli/internal/dataprocessing"
	"hargacli/internal/exporter"
	"hargacli/internal/validation"
	"hargacli/pkg/contracts/domain"
)

// RunOptions adjusts a single pipeline invocation.
type RunOptions struct {
	// DryRun stops after validation; nothing is loaded or written.
	DryRun bool
	// NoSave runs the full consolidation but skips writing output files.
	NoSave bool
}

// Pipeline composes the consolidation stages. Data flows one way through
// it: validator, then consolidator, then the output writers. There are no
// retries anywhere; all recoverable failures are per-file and absorbed into
// the run result.
type Pipeline struct {
	cfg          *config.Config
	logger       *slog.Logger
	validator    *validation.Validator
	consolidator *dataprocessing.Consolidator
	csvWriter    *exporter.CSVWriter
	excelWriter  *exporter.ExcelWriter
}

// New creates a pipeline bound to the run configuration. Every run through
// this instance carries a fresh run ID in its log records.
func New(cfg *config.Config, logger *slog.Logger) *Pipeline {
	if logger == nil {
		logger = slog.Default()
	}
	return &Pipeline{
		cfg:          cfg,
		logger:       logger,
		validator:    validation.NewValidator(cfg, logger),
		consolidator: dataprocessing.NewConsolidator(cfg, logger),
		csvWriter:    exporter.NewCSVWriter(logger),
		excelWriter:  exporter.NewExcelWriter(logger),
	}
}

// RunConsolidation executes validate, consolidate and write in sequence and
// returns the run result. With DryRun set it stops after validation and
// returns an empty result. A run over zero loadable files succeeds with an
// empty result; only configuration and data-root problems are errors.
func (p *Pipeline) RunConsolidation(ctx context.Context, opts RunOptions) (*dataprocessing.RunResult, *validation.Report, error) {
	logger := p.logger.With(slog.String("run_id", uuid.NewString()))

	logger.InfoContext(ctx, "starting consolidation pipeline",
		slog.String("data_root", p.cfg.DataRoot),
		slog.Bool("dry_run", opts.DryRun),
		slog.Bool("no_save", opts.NoSave))

	report, err := p.validator.ValidateTree(ctx)
	if err != nil {
		return nil, nil, err
	}

	if opts.DryRun {
		logger.InfoContext(ctx, "dry run complete, skipping consolidation",
			slog.Int("valid_files", len(report.ValidFiles)),
			slog.Int("invalid_files", len(report.InvalidFiles)))
		return &dataprocessing.RunResult{}, report, nil
	}

	result, err := p.consolidator.Run(ctx)
	if err != nil {
		return nil, report, err
	}

	if !opts.NoSave {
		if err := p.writeOutputs(ctx, logger, result.Records); err != nil {
			return nil, report, err
		}
	}

	return result, report, nil
}

// ValidateDataStructure runs the structural pre-check alone.
func (p *Pipeline) ValidateDataStructure(ctx context.Context) (*validation.Report, error) {
	return p.validator.ValidateTree(ctx)
}

// GetDataSummary derives summary statistics for a consolidated record set.
func (p *Pipeline) GetDataSummary(records []domain.PriceRecord) *domain.Summary {
	return dataprocessing.Summarize(records)
}

// writeOutputs writes every requested output format into the output
// directory.
func (p *Pipeline) writeOutputs(ctx context.Context, logger *slog.Logger, records []domain.PriceRecord) error {
	if p.cfg.HasFormat("csv") {
		path := filepath.Join(p.cfg.OutputDir, p.cfg.CSVFilename)
		if err := p.csvWriter.Write(path, records); err != nil {
			return err
		}
	}
	if p.cfg.HasFormat("excel") {
		path := filepath.Join(p.cfg.OutputDir, p.cfg.ExcelFilename)
		if err := p.excelWriter.Write(path, records); err != nil {
			return err
		}
	}

	logger.InfoContext(ctx, "output files written",
		slog.String("output_dir", p.cfg.OutputDir),
		slog.Any("formats", p.cfg.OutputFormats))

	return nil
}
