package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	assert.Equal(t, "Komoditas (Rp)", cfg.CommodityColumn)
	assert.Equal(t, "*.xlsx", cfg.FilePattern)
	assert.Equal(t, []string{"csv", "excel"}, cfg.OutputFormats)
	assert.Equal(t, "master_data_consolidated.csv", cfg.CSVFilename)
	assert.Contains(t, cfg.MissingValueIndicators, "-")
	assert.Contains(t, cfg.MissingValueIndicators, "NULL")
	assert.True(t, cfg.EnableLogging)

	require.NoError(t, cfg.Validate())
}

func TestLoad(t *testing.T) {
	tests := []struct {
		name        string
		yaml        string
		expectError bool
		check       func(t *testing.T, cfg *Config)
	}{
		{
			name: "overrides defaults",
			yaml: `
data_root: /data/raw
target_commodities:
  - Beras
target_years: [2023]
output_formats: [csv]
log_level: debug
`,
			check: func(t *testing.T, cfg *Config) {
				assert.Equal(t, "/data/raw", cfg.DataRoot)
				assert.Equal(t, []string{"Beras"}, cfg.TargetCommodities)
				assert.Equal(t, []int{2023}, cfg.TargetYears)
				assert.Equal(t, []string{"csv"}, cfg.OutputFormats)
				assert.Equal(t, "DEBUG", cfg.LogLevel)
				// Untouched keys keep their defaults.
				assert.Equal(t, "Komoditas (Rp)", cfg.CommodityColumn)
			},
		},
		{
			name: "unknown output format rejected",
			yaml: `
output_formats: [csv, parquet]
`,
			expectError: true,
		},
		{
			name: "invalid log level rejected",
			yaml: `
log_level: verbose
`,
			expectError: true,
		},
		{
			name: "reversed year range rejected",
			yaml: `
year_range_start: 2024
year_range_end: 2018
`,
			expectError: true,
		},
		{
			name: "duplicate output format rejected",
			yaml: `
output_formats: [csv, csv]
`,
			expectError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "config.yaml")
			require.NoError(t, os.WriteFile(path, []byte(tt.yaml), 0644))

			cfg, err := Load(path)
			if tt.expectError {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			tt.check(t, cfg)
		})
	}
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

func TestLoad_EnvOverride(t *testing.T) {
	t.Setenv("CONSOLIDATOR_DATA_ROOT", "/env/data")
	t.Setenv("CONSOLIDATOR_LOG_LEVEL", "warning")

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, "/env/data", cfg.DataRoot)
	assert.Equal(t, "WARNING", cfg.LogLevel)
}

func TestResolvedYears(t *testing.T) {
	tests := []struct {
		name     string
		mutate   func(cfg *Config)
		expected []int
	}{
		{
			name: "explicit list takes precedence over range",
			mutate: func(cfg *Config) {
				cfg.TargetYears = []int{2023, 2021}
				cfg.YearRangeStart = 2018
				cfg.YearRangeEnd = 2024
			},
			expected: []int{2021, 2023},
		},
		{
			name: "range expands inclusively",
			mutate: func(cfg *Config) {
				cfg.TargetYears = nil
				cfg.YearRangeStart = 2020
				cfg.YearRangeEnd = 2022
			},
			expected: []int{2020, 2021, 2022},
		},
		{
			name: "open-ended start collapses to end",
			mutate: func(cfg *Config) {
				cfg.TargetYears = nil
				cfg.YearRangeStart = 0
				cfg.YearRangeEnd = 2022
			},
			expected: []int{2022},
		},
		{
			name: "no year configuration means all years",
			mutate: func(cfg *Config) {
				cfg.TargetYears = nil
				cfg.YearRangeStart = 0
				cfg.YearRangeEnd = 0
			},
			expected: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)
			assert.Equal(t, tt.expected, cfg.ResolvedYears())
		})
	}
}

func TestHasFormat(t *testing.T) {
	cfg := Default()
	cfg.OutputFormats = []string{"csv"}

	assert.True(t, cfg.HasFormat("csv"))
	assert.False(t, cfg.HasFormat("excel"))
}
