package config

import (
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v2"
)

// Config holds every setting of the consolidation run. It is built once by
// Load and treated as immutable afterwards; every stage reads from it.
type Config struct {
	// Filtering. Empty slices mean "no filter on that dimension".
	TargetCommodities []string `yaml:"target_commodities" envconfig:"TARGET_COMMODITIES"`
	TargetYears       []int    `yaml:"target_years" envconfig:"TARGET_YEARS"`
	YearRangeStart    int      `yaml:"year_range_start" envconfig:"YEAR_RANGE_START" validate:"omitempty,min=0"`
	YearRangeEnd      int      `yaml:"year_range_end" envconfig:"YEAR_RANGE_END" validate:"omitempty,min=0"`
	TargetCities      []string `yaml:"target_cities" envconfig:"TARGET_CITIES"`

	// Input layout.
	DataRoot    string `yaml:"data_root" envconfig:"DATA_ROOT" validate:"required"`
	FilePattern string `yaml:"file_pattern" envconfig:"FILE_PATTERN" validate:"required"`

	// Source schema.
	CommodityColumn    string   `yaml:"commodity_column" envconfig:"COMMODITY_COLUMN" validate:"required"`
	ColumnsToDrop      []string `yaml:"columns_to_drop" envconfig:"COLUMNS_TO_DROP"`
	MinExpectedColumns int      `yaml:"min_expected_columns" envconfig:"MIN_EXPECTED_COLUMNS" validate:"min=1"`

	// Cleaning.
	MissingValueIndicators []string `yaml:"missing_value_indicators" envconfig:"MISSING_VALUE_INDICATORS"`
	FillMissingPrices      bool     `yaml:"fill_missing_prices" envconfig:"FILL_MISSING_PRICES"`

	// Output.
	OutputDir     string   `yaml:"output_dir" envconfig:"OUTPUT_DIR"`
	OutputFormats []string `yaml:"output_formats" envconfig:"OUTPUT_FORMATS" validate:"min=1,dive,oneof=csv excel"`
	CSVFilename   string   `yaml:"csv_filename" envconfig:"CSV_FILENAME" validate:"required"`
	ExcelFilename string   `yaml:"excel_filename" envconfig:"EXCEL_FILENAME" validate:"required"`

	// Logging.
	EnableLogging bool   `yaml:"enable_logging" envconfig:"ENABLE_LOGGING"`
	LogLevel      string `yaml:"log_level" envconfig:"LOG_LEVEL" validate:"required"`
	LogFile       string `yaml:"log_file" envconfig:"LOG_FILE"`
}

// Default returns the built-in configuration, mirroring the standard
// Kalimantan food price dataset layout.
func Default() *Config {
	return &Config{
		TargetCommodities: []string{
			"Beras",
			"Telur Ayam",
			"Daging Ayam",
			"Bawang Merah",
			"Bawang Putih",
		},
		YearRangeStart: 2018,
		YearRangeEnd:   2024,
		TargetCities: []string{
			"kab-sintang", "kota-pontianak", "kota-singkawang", "kota-banjarmasin",
			"kota-tanjung", "kota-palangkaraya", "kota-sampit", "kota-balikpapan",
			"kota-samarinda", "kota-tarakan",
		},
		DataRoot:           "data/raw",
		FilePattern:        "*.xlsx",
		CommodityColumn:    "Komoditas (Rp)",
		ColumnsToDrop:      []string{"No"},
		MinExpectedColumns: 2,
		MissingValueIndicators: []string{
			"-", "", "nan", "NaN", "null", "NULL",
		},
		OutputDir:     "data/processed",
		OutputFormats: []string{"csv", "excel"},
		CSVFilename:   "master_data_consolidated.csv",
		ExcelFilename: "master_data_consolidated.xlsx",
		EnableLogging: true,
		LogLevel:      "INFO",
		LogFile:       "logs/consolidation.log",
	}
}

// Load builds the configuration: defaults, then the YAML file (when path is
// non-empty), then CONSOLIDATOR_* environment overrides, then validation.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		if err := loadFromFile(path, cfg); err != nil {
			return nil, err
		}
	}

	if err := envconfig.Process("CONSOLIDATOR", cfg); err != nil {
		return nil, fmt.Errorf("failed to load config from env: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// loadFromFile overlays YAML settings onto cfg. Keys absent from the file
// keep their current values.
func loadFromFile(path string, cfg *Config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("invalid YAML in %s: %w", path, err)
	}

	return nil
}

// Validate checks structural and cross-field constraints. A failure here is
// a configuration error: fatal, before any data I/O happens.
func (c *Config) Validate() error {
	c.LogLevel = strings.ToUpper(strings.TrimSpace(c.LogLevel))

	if err := validator.New().Struct(c); err != nil {
		return fmt.Errorf("config validation failed: %w", err)
	}

	switch c.LogLevel {
	case "DEBUG", "INFO", "WARNING", "ERROR":
	default:
		return fmt.Errorf("invalid log_level %q: must be one of DEBUG, INFO, WARNING, ERROR", c.LogLevel)
	}

	if c.YearRangeStart != 0 && c.YearRangeEnd != 0 && c.YearRangeStart > c.YearRangeEnd {
		return fmt.Errorf("year_range_start %d is after year_range_end %d", c.YearRangeStart, c.YearRangeEnd)
	}

	seen := make(map[string]bool, len(c.OutputFormats))
	for _, format := range c.OutputFormats {
		if seen[format] {
			return fmt.Errorf("duplicate output format %q", format)
		}
		seen[format] = true
	}

	return nil
}

// ResolvedYears returns the single set of target years used by every stage.
// An explicit target_years list takes precedence over the range; with
// neither configured the result is nil, meaning all years pass.
func (c *Config) ResolvedYears() []int {
	if len(c.TargetYears) > 0 {
		years := make([]int, len(c.TargetYears))
		copy(years, c.TargetYears)
		sort.Ints(years)
		return years
	}

	if c.YearRangeStart == 0 && c.YearRangeEnd == 0 {
		return nil
	}

	start := c.YearRangeStart
	end := c.YearRangeEnd
	if start == 0 {
		start = end
	}
	if end == 0 {
		end = start
	}

	years := make([]int, 0, end-start+1)
	for y := start; y <= end; y++ {
		years = append(years, y)
	}
	return years
}

// HasFormat reports whether the given output format was requested.
func (c *Config) HasFormat(format string) bool {
	for _, f := range c.OutputFormats {
		if f == format {
			return true
		}
	}
	return false
}
