package files

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
)

// SourceFile identifies one discovered spreadsheet: its location plus the
// province, city and year inferred from the directory naming convention
// data_root/<province>/<city>/<year>.xlsx. Year is zero when the filename
// stem is not numeric.
type SourceFile struct {
	Province string
	City     string
	Year     int
	Path     string
}

// Discovery finds source files under a data root.
type Discovery struct {
	logger *slog.Logger
}

// NewDiscovery creates a discovery instance.
func NewDiscovery(logger *slog.Logger) *Discovery {
	if logger == nil {
		logger = slog.Default()
	}
	return &Discovery{logger: logger}
}

// Options narrows a discovery walk. Empty TargetCities and nil TargetYears
// mean no filtering on that dimension.
type Options struct {
	Pattern      string
	TargetCities []string
	TargetYears  []int
}

// Discover walks dataRoot and returns every file matching the pattern and
// the city/year filters, in lexicographic path order so repeated runs over
// unchanged input yield identical ordering. A missing or unreadable
// dataRoot is the only hard failure.
func (d *Discovery) Discover(dataRoot string, opts Options) ([]SourceFile, error) {
	info, err := os.Stat(dataRoot)
	if err != nil {
		return nil, &DataRootError{Path: dataRoot, Err: err}
	}
	if !info.IsDir() {
		return nil, &DataRootError{Path: dataRoot, Err: fmt.Errorf("not a directory")}
	}

	pattern := opts.Pattern
	if pattern == "" {
		pattern = "*.xlsx"
	}

	cities := make(map[string]bool, len(opts.TargetCities))
	for _, city := range opts.TargetCities {
		cities[city] = true
	}
	years := make(map[int]bool, len(opts.TargetYears))
	for _, year := range opts.TargetYears {
		years[year] = true
	}

	var found []SourceFile
	walkErr := filepath.Walk(dataRoot, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			d.logger.Warn("skipping unreadable path",
				slog.String("path", path),
				slog.String("error", err.Error()))
			return nil
		}
		if info.IsDir() {
			return nil
		}

		name := info.Name()
		matched, err := filepath.Match(pattern, name)
		if err != nil {
			return fmt.Errorf("invalid file pattern %q: %w", pattern, err)
		}
		if !matched || strings.HasPrefix(name, "~$") {
			return nil
		}

		file := sourceFileFromPath(dataRoot, path)

		// A deliberate narrowing: files for cities outside the target set are
		// skipped silently, not reported as errors.
		if len(cities) > 0 && !cities[file.City] {
			return nil
		}
		if len(years) > 0 && file.Year != 0 && !years[file.Year] {
			return nil
		}

		found = append(found, file)
		return nil
	})
	if walkErr != nil {
		return nil, walkErr
	}

	sort.Slice(found, func(i, j int) bool {
		return found[i].Path < found[j].Path
	})

	d.logger.Info("source files discovered",
		slog.String("data_root", dataRoot),
		slog.String("pattern", pattern),
		slog.Int("count", len(found)))

	return found, nil
}

// sourceFileFromPath derives province, city and year from the path relative
// to the data root. Files shallower than the expected depth get empty
// province/city components rather than an error.
func sourceFileFromPath(dataRoot, path string) SourceFile {
	file := SourceFile{Path: path}

	rel, err := filepath.Rel(dataRoot, path)
	if err != nil {
		rel = path
	}
	parts := strings.Split(filepath.ToSlash(rel), "/")
	if len(parts) >= 3 {
		file.Province = parts[len(parts)-3]
	}
	if len(parts) >= 2 {
		file.City = parts[len(parts)-2]
	}

	stem := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	if year, err := strconv.Atoi(stem); err == nil {
		file.Year = year
	}

	return file
}
