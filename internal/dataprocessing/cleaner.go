package dataprocessing

import (
	"log/slog"
	"strconv"
	"strings"
	"time"

	"hargacli/internal/config"
	"hargacli/pkg/contracts/domain"
)

// DateHeaderLayout is the date convention used by the source spreadsheets
// for column headers, e.g. "15/ 03/ 2023".
const DateHeaderLayout = "02/ 01/ 2006"

// ParseDateHeader parses a column header in the "dd/ mm/ yyyy" source
// convention into a calendar date.
func ParseDateHeader(header string) (time.Time, error) {
	return time.Parse(DateHeaderLayout, strings.TrimSpace(header))
}

// FormatDateHeader renders a date back into the source header convention,
// reproducing the original string for any date parsed by ParseDateHeader.
func FormatDateHeader(date time.Time) string {
	return date.Format(DateHeaderLayout)
}

// CleanStats counts what happened while cleaning one table.
type CleanStats struct {
	Records     int
	DateColumns int
	ValueIssues int
}

// Cleaner turns one raw wide-format table into long-format price records:
// one record per (commodity row, date column) pair.
type Cleaner struct {
	cfg       *config.Config
	logger    *slog.Logger
	canonical map[string]string
	missing   map[string]bool
	drop      map[string]bool
}

// NewCleaner creates a cleaner bound to the run configuration.
func NewCleaner(cfg *config.Config, logger *slog.Logger) *Cleaner {
	if logger == nil {
		logger = slog.Default()
	}

	canonical := make(map[string]string, len(cfg.TargetCommodities))
	for _, name := range cfg.TargetCommodities {
		canonical[strings.ToLower(strings.TrimSpace(name))] = strings.TrimSpace(name)
	}
	missing := make(map[string]bool, len(cfg.MissingValueIndicators))
	for _, indicator := range cfg.MissingValueIndicators {
		missing[indicator] = true
	}
	drop := make(map[string]bool, len(cfg.ColumnsToDrop))
	for _, column := range cfg.ColumnsToDrop {
		drop[column] = true
	}

	return &Cleaner{
		cfg:       cfg,
		logger:    logger,
		canonical: canonical,
		missing:   missing,
		drop:      drop,
	}
}

// Clean reshapes table into price records for the given city. The commodity
// column must match the configured header exactly; its absence is a
// *SchemaError. Every other column whose header parses as a date becomes one
// record per row. Unparseable prices are emitted with a nil price and
// counted, never dropped and never fatal.
func (c *Cleaner) Clean(table *RawTable, city string) ([]domain.PriceRecord, CleanStats, error) {
	var stats CleanStats

	if len(table.Headers) < c.cfg.MinExpectedColumns {
		return nil, stats, &SchemaError{
			Path:   table.Path,
			Reason: "insufficient columns: got " + strconv.Itoa(len(table.Headers)),
		}
	}

	commodityCol := -1
	for i, header := range table.Headers {
		if header == c.cfg.CommodityColumn {
			commodityCol = i
			break
		}
	}
	if commodityCol == -1 {
		return nil, stats, &SchemaError{
			Path:   table.Path,
			Reason: "missing column " + strconv.Quote(c.cfg.CommodityColumn),
		}
	}

	type dateColumn struct {
		index int
		date  time.Time
	}
	var dateColumns []dateColumn
	for i, header := range table.Headers {
		if i == commodityCol || c.drop[strings.TrimSpace(header)] {
			continue
		}
		date, err := ParseDateHeader(header)
		if err != nil {
			c.logger.Debug("skipping non-date column",
				slog.String("path", table.Path),
				slog.String("header", header))
			continue
		}
		dateColumns = append(dateColumns, dateColumn{index: i, date: date})
	}
	stats.DateColumns = len(dateColumns)

	records := make([]domain.PriceRecord, 0, len(table.Rows)*len(dateColumns))
	for _, row := range table.Rows {
		if commodityCol >= len(row) {
			continue
		}
		commodity := c.normalizeCommodity(row[commodityCol])
		if commodity == "" {
			continue
		}

		for _, col := range dateColumns {
			cell := ""
			if col.index < len(row) {
				cell = row[col.index]
			}

			price, ok := c.parsePrice(cell)
			if !ok {
				stats.ValueIssues++
				c.logger.Warn("unparseable price value, recording as missing",
					slog.String("path", table.Path),
					slog.String("commodity", commodity),
					slog.String("date", col.date.Format("2006-01-02")),
					slog.String("value", cell))
			}

			records = append(records, domain.PriceRecord{
				Commodity: commodity,
				City:      city,
				Date:      col.date,
				Price:     price,
			})
		}
	}
	stats.Records = len(records)

	return records, stats, nil
}

// normalizeCommodity trims the raw name and, when it matches a configured
// commodity case-insensitively, snaps it to the canonical casing.
func (c *Cleaner) normalizeCommodity(raw string) string {
	name := strings.TrimSpace(raw)
	if canonical, ok := c.canonical[strings.ToLower(name)]; ok {
		return canonical
	}
	return name
}

// parsePrice converts one cell into a price. A configured missing-value
// indicator (exact, case-sensitive) yields (nil, true). A value that is
// neither numeric after separator cleaning nor a recognized indicator
// yields (nil, false) so the caller can count it. Negative prices are
// treated the same way: the output contract allows only non-negative or
// missing prices.
func (c *Cleaner) parsePrice(cell string) (*float64, bool) {
	if c.missing[cell] {
		return nil, true
	}

	value, err := strconv.ParseFloat(stripThousandsSeparators(cell), 64)
	if err != nil || value < 0 {
		return nil, false
	}
	return domain.Float(value), true
}

// stripThousandsSeparators removes comma separators and, when the value is
// dot-grouped in the Indonesian convention ("12.000", "1.250.000"), the dot
// separators as well. Genuine decimals like "12.5" are left alone.
func stripThousandsSeparators(cell string) string {
	cleaned := strings.ReplaceAll(strings.TrimSpace(cell), ",", "")
	if isDotGrouped(cleaned) {
		cleaned = strings.ReplaceAll(cleaned, ".", "")
	}
	return cleaned
}

// isDotGrouped reports whether s has the shape d{1,3}(.ddd)+, i.e. dots
// used as thousands separators.
func isDotGrouped(s string) bool {
	parts := strings.Split(s, ".")
	if len(parts) < 2 {
		return false
	}
	if len(parts[0]) == 0 || len(parts[0]) > 3 || !allDigits(parts[0]) {
		return false
	}
	for _, part := range parts[1:] {
		if len(part) != 3 || !allDigits(part) {
			return false
		}
	}
	return true
}

func allDigits(s string) bool {
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
