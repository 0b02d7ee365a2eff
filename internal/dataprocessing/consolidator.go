package dataprocessing

import (
	"context"
	"log/slog"
	"sort"

	"hargacli/internal/config"
	"hargacli/internal/files"
	"hargacli/pkg/contracts/domain"
)

// SkippedFile records one source file excluded from a run and why.
type SkippedFile struct {
	Path   string
	Reason string
}

// RunResult is the outcome of a consolidation run. The run as a whole
// succeeds even when individual files were skipped; the skips are reported
// here rather than raised.
type RunResult struct {
	Records         []domain.PriceRecord
	SkippedFiles    []SkippedFile
	ValueIssues     int
	FilesDiscovered int
	FilesProcessed  int
}

// Consolidator orchestrates discovery, per-file loading and cleaning, and
// the final filter/concatenate step.
type Consolidator struct {
	cfg       *config.Config
	logger    *slog.Logger
	discovery *files.Discovery
	cleaner   *Cleaner
}

// NewConsolidator creates a consolidator bound to the run configuration.
func NewConsolidator(cfg *config.Config, logger *slog.Logger) *Consolidator {
	if logger == nil {
		logger = slog.Default()
	}
	return &Consolidator{
		cfg:       cfg,
		logger:    logger,
		discovery: files.NewDiscovery(logger),
		cleaner:   NewCleaner(cfg, logger),
	}
}

// Run processes every discovered file sequentially: load, clean, accumulate.
// A load or schema failure on one file is logged with the file identity,
// recorded as a skip, and does not abort the run. Records are then filtered
// by the configured commodity, year and city sets; an empty set on a
// dimension excludes nothing on it. Zero successfully loaded files yields an
// empty result, not an error. Only a bad data root fails the run.
func (c *Consolidator) Run(ctx context.Context) (*RunResult, error) {
	years := c.cfg.ResolvedYears()

	sources, err := c.discovery.Discover(c.cfg.DataRoot, files.Options{
		Pattern:      c.cfg.FilePattern,
		TargetCities: c.cfg.TargetCities,
		TargetYears:  years,
	})
	if err != nil {
		return nil, err
	}

	result := &RunResult{FilesDiscovered: len(sources)}

	for _, source := range sources {
		table, err := ParseFile(source.Path)
		if err != nil {
			c.logger.WarnContext(ctx, "skipping unreadable file",
				slog.String("path", source.Path),
				slog.String("error", err.Error()))
			result.SkippedFiles = append(result.SkippedFiles, SkippedFile{
				Path:   source.Path,
				Reason: err.Error(),
			})
			continue
		}

		records, stats, err := c.cleaner.Clean(table, source.City)
		if err != nil {
			c.logger.WarnContext(ctx, "skipping file with unexpected schema",
				slog.String("path", source.Path),
				slog.String("error", err.Error()))
			result.SkippedFiles = append(result.SkippedFiles, SkippedFile{
				Path:   source.Path,
				Reason: err.Error(),
			})
			continue
		}

		result.Records = append(result.Records, records...)
		result.ValueIssues += stats.ValueIssues
		result.FilesProcessed++

		c.logger.InfoContext(ctx, "processed source file",
			slog.String("path", source.Path),
			slog.String("city", source.City),
			slog.Int("records", stats.Records),
			slog.Int("date_columns", stats.DateColumns),
			slog.Int("value_issues", stats.ValueIssues))
	}

	result.Records = c.filterRecords(result.Records, years)

	if c.cfg.FillMissingPrices {
		filled := fillMissingPrices(result.Records)
		c.logger.InfoContext(ctx, "filled missing prices",
			slog.Int("filled", filled))
	}

	c.logger.InfoContext(ctx, "consolidation run complete",
		slog.Int("files_discovered", result.FilesDiscovered),
		slog.Int("files_processed", result.FilesProcessed),
		slog.Int("files_skipped", len(result.SkippedFiles)),
		slog.Int("records", len(result.Records)),
		slog.Int("value_issues", result.ValueIssues))

	return result, nil
}

// filterRecords keeps a record iff it is a member of every configured
// non-empty target set. Ordering is preserved, so duplicates contributed by
// overlapping source files stay in discovery order.
func (c *Consolidator) filterRecords(records []domain.PriceRecord, years []int) []domain.PriceRecord {
	commodities := make(map[string]bool, len(c.cfg.TargetCommodities))
	for _, name := range c.cfg.TargetCommodities {
		commodities[name] = true
	}
	cities := make(map[string]bool, len(c.cfg.TargetCities))
	for _, city := range c.cfg.TargetCities {
		cities[city] = true
	}
	yearSet := make(map[int]bool, len(years))
	for _, year := range years {
		yearSet[year] = true
	}

	kept := records[:0]
	for _, record := range records {
		if len(commodities) > 0 && !commodities[record.Commodity] {
			continue
		}
		if len(yearSet) > 0 && !yearSet[record.Date.Year()] {
			continue
		}
		if len(cities) > 0 && !cities[record.City] {
			continue
		}
		kept = append(kept, record)
	}
	return kept
}

// fillMissingPrices forward-fills then backward-fills nil prices within each
// (city, commodity) series ordered by date, leaving record order untouched.
// Returns the number of prices filled.
func fillMissingPrices(records []domain.PriceRecord) int {
	type seriesKey struct {
		city      string
		commodity string
	}

	series := make(map[seriesKey][]int)
	for i, record := range records {
		key := seriesKey{city: record.City, commodity: record.Commodity}
		series[key] = append(series[key], i)
	}

	filled := 0
	for _, indexes := range series {
		sort.SliceStable(indexes, func(a, b int) bool {
			return records[indexes[a]].Date.Before(records[indexes[b]].Date)
		})

		var last *float64
		for _, i := range indexes {
			if records[i].Price != nil {
				last = records[i].Price
			} else if last != nil {
				records[i].Price = domain.Float(*last)
				filled++
			}
		}

		var next *float64
		for k := len(indexes) - 1; k >= 0; k-- {
			i := indexes[k]
			if records[i].Price != nil {
				next = records[i].Price
			} else if next != nil {
				records[i].Price = domain.Float(*next)
				filled++
			}
		}
	}

	return filled
}
