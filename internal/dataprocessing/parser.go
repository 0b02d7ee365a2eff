package dataprocessing

import (
	"fmt"
	"log/slog"

	"github.com/xuri/excelize/v2"
)

// RawTable is the as-read contents of one source spreadsheet: a header row
// plus data rows, in source order. It lives only for the handoff between
// ParseFile and Cleaner.Clean.
type RawTable struct {
	Path    string
	Headers []string
	Rows    [][]string
}

// ParseFile reads the first sheet of a price spreadsheet into a RawTable.
// Any open or read failure comes back as a *LoadError; the file handle is
// released before returning on every path.
func ParseFile(path string) (*RawTable, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, &LoadError{Path: path, Err: err}
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, &LoadError{Path: path, Err: fmt.Errorf("workbook has no sheets")}
	}

	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, &LoadError{Path: path, Err: fmt.Errorf("failed to read sheet %s: %w", sheets[0], err)}
	}
	if len(rows) == 0 {
		return nil, &LoadError{Path: path, Err: fmt.Errorf("sheet %s is empty", sheets[0])}
	}

	table := &RawTable{
		Path:    path,
		Headers: rows[0],
		Rows:    rows[1:],
	}

	slog.Debug("parsed source file",
		slog.String("path", path),
		slog.String("sheet", sheets[0]),
		slog.Int("columns", len(table.Headers)),
		slog.Int("rows", len(table.Rows)))

	return table, nil
}
