// Package testutil provides fixture helpers shared by the consolidation
// test suites.
package testutil

import (
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

// WriteWorkbook writes an xlsx file at path whose first sheet holds the
// given header row and data rows. Parent directories are created as needed.
func WriteWorkbook(t *testing.T, path string, headers []string, rows [][]string) {
	t.Helper()

	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))

	f := excelize.NewFile()
	defer f.Close()

	sheet := f.GetSheetName(0)
	require.NoError(t, f.SetSheetRow(sheet, "A1", rowValues(headers)))
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		require.NoError(t, err)
		require.NoError(t, f.SetSheetRow(sheet, cell, rowValues(row)))
	}

	require.NoError(t, f.SaveAs(path))
}

// WriteCorruptWorkbook writes a file at path that is not a valid xlsx
// archive, for exercising load-failure paths.
func WriteCorruptWorkbook(t *testing.T, path string) {
	t.Helper()

	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
	require.NoError(t, os.WriteFile(path, []byte("this is not a spreadsheet"), 0644))
}

// WritePriceWorkbook writes a typical source file: a "No" index column, the
// commodity column, and one column per date header.
func WritePriceWorkbook(t *testing.T, path string, dateHeaders []string, prices map[string][]string) {
	t.Helper()

	commodities := make([]string, 0, len(prices))
	for commodity := range prices {
		commodities = append(commodities, commodity)
	}
	sort.Strings(commodities)

	headers := append([]string{"No", "Komoditas (Rp)"}, dateHeaders...)
	var rows [][]string
	for i, commodity := range commodities {
		row := append([]string{strconv.Itoa(i + 1), commodity}, prices[commodity]...)
		rows = append(rows, row)
	}
	WriteWorkbook(t, path, headers, rows)
}

func rowValues(row []string) *[]interface{} {
	values := make([]interface{}, len(row))
	for i, v := range row {
		values[i] = v
	}
	return &values
}
