// Command consolidate merges per-city, per-year food price spreadsheets
// into a single consolidated CSV/Excel table.
//
// Usage:
//
//	consolidate [flags] [config.yaml]
//
// With no config path, built-in defaults are used. The run exits non-zero
// only on configuration errors or a missing data root; a run that
// consolidated zero records still exits zero.
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"

	"gopkg.in/yaml.v2"

	"hargacli/internal/config"
	"hargacli/internal/infrastructure"
	"hargacli/internal/pipeline"
)

func main() {
	dryRun := flag.Bool("dry-run", false, "validate the data structure only, write nothing")
	noSave := flag.Bool("no-save", false, "run consolidation but skip writing output files")
	listConfigs := flag.Bool("list-configs", false, "list available configuration files and exit")
	showDefaults := flag.Bool("show-defaults", false, "print the built-in default configuration and exit")
	flag.Parse()

	if *listConfigs {
		listAvailableConfigs()
		return
	}
	if *showDefaults {
		showDefaultConfig()
		return
	}

	cfg, err := config.Load(flag.Arg(0))
	if err != nil {
		slog.Error("configuration error", "error", err)
		os.Exit(1)
	}

	logger, err := infrastructure.InitializeLogger(cfg)
	if err != nil {
		slog.Error("failed to initialize logger", "error", err)
		os.Exit(1)
	}
	defer infrastructure.CloseLogFile()

	ctx := context.Background()
	p := pipeline.New(cfg, logger)

	result, report, err := p.RunConsolidation(ctx, pipeline.RunOptions{
		DryRun: *dryRun,
		NoSave: *noSave,
	})
	if err != nil {
		logger.Error("consolidation failed", slog.String("error", err.Error()))
		os.Exit(1)
	}

	if *dryRun {
		fmt.Printf("Dry run: %d valid files, %d invalid files\n",
			len(report.ValidFiles), len(report.InvalidFiles))
		for _, issue := range report.Issues {
			fmt.Printf("  issue: %s\n", issue)
		}
		return
	}

	summary := p.GetDataSummary(result.Records)

	logger.Info("consolidation summary",
		slog.Int("total_records", summary.TotalRecords),
		slog.Int("cities", len(summary.Cities)),
		slog.Int("commodities", len(summary.Commodities)),
		slog.Int("missing_prices", summary.MissingPrices),
		slog.Int("skipped_files", len(result.SkippedFiles)),
		slog.Int("value_issues", result.ValueIssues))

	fmt.Printf("Consolidated %d records from %d of %d files\n",
		summary.TotalRecords, result.FilesProcessed, result.FilesDiscovered)
	if summary.TotalRecords > 0 {
		fmt.Printf("Cities: %d  Commodities: %d  Dates: %s to %s\n",
			len(summary.Cities), len(summary.Commodities),
			summary.DateStart.Format("2006-01-02"), summary.DateEnd.Format("2006-01-02"))
		fmt.Printf("Prices: %.0f to %.0f (mean %.0f), %d missing\n",
			summary.MinPrice, summary.MaxPrice, summary.MeanPrice, summary.MissingPrices)
	}
	for _, skipped := range result.SkippedFiles {
		fmt.Printf("Skipped %s: %s\n", skipped.Path, skipped.Reason)
	}
	if !*noSave {
		fmt.Printf("Output written to %s\n", cfg.OutputDir)
	}
}

// listAvailableConfigs prints a one-line summary for each YAML file in the
// configs directory.
func listAvailableConfigs() {
	matches, err := filepath.Glob(filepath.Join("configs", "*.yaml"))
	if err != nil || len(matches) == 0 {
		fmt.Println("No configuration files found in configs/")
		return
	}
	sort.Strings(matches)

	fmt.Println("Available configuration files:")
	for _, path := range matches {
		fmt.Printf("  %s%s\n", filepath.Base(path), describeConfig(path))
	}
	fmt.Println("\nUsage: consolidate configs/<name>.yaml")
}

// describeConfig renders a short summary of one config file, or an error
// note when it cannot be read.
func describeConfig(path string) string {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Sprintf("  (unreadable: %v)", err)
	}

	var raw map[string]interface{}
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return fmt.Sprintf("  (invalid YAML: %v)", err)
	}

	desc := ""
	if commodities, ok := raw["target_commodities"].([]interface{}); ok {
		desc += fmt.Sprintf("  commodities=%d", len(commodities))
	}
	if years, ok := raw["target_years"].([]interface{}); ok {
		desc += fmt.Sprintf("  years=%d", len(years))
	}
	if cities, ok := raw["target_cities"].([]interface{}); ok {
		desc += fmt.Sprintf("  cities=%d", len(cities))
	}
	return desc
}

// showDefaultConfig prints the built-in defaults as YAML, ready to be
// copied into a config file.
func showDefaultConfig() {
	data, err := yaml.Marshal(config.Default())
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to render defaults: %v\n", err)
		os.Exit(1)
	}
	fmt.Println("# Built-in default configuration")
	os.Stdout.Write(data)
}
