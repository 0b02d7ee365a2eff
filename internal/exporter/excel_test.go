package exporter

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func TestExcelWrite(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out", "master_data_consolidated.xlsx")

	require.NoError(t, NewExcelWriter(nil).Write(path, sampleRecords(t)))

	f, err := excelize.OpenFile(path)
	require.NoError(t, err)
	defer f.Close()

	require.Equal(t, []string{SheetName}, f.GetSheetList())

	rows, err := f.GetRows(SheetName)
	require.NoError(t, err)
	require.Len(t, rows, 4)

	assert.Equal(t, Headers, rows[0])
	assert.Equal(t, []string{"Beras", "kota-pontianak", "2023-03-15", "12000"}, rows[1])
	// Missing price renders as an empty trailing cell, which GetRows trims.
	assert.Equal(t, []string{"Telur Ayam", "kota-banjarmasin", "2023-03-15"}, rows[2][:3])
	assert.Equal(t, "12500.5", rows[3][3])
}

func TestExcelWrite_EmptyRecordSet(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty.xlsx")

	require.NoError(t, NewExcelWriter(nil).Write(path, nil))

	f, err := excelize.OpenFile(path)
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows(SheetName)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, Headers, rows[0])
}

func TestExcelWrite_ReplacesExistingFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.xlsx")
	writer := NewExcelWriter(nil)

	require.NoError(t, writer.Write(path, sampleRecords(t)))
	require.NoError(t, writer.Write(path, sampleRecords(t)[:1]))

	f, err := excelize.OpenFile(path)
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows(SheetName)
	require.NoError(t, err)
	assert.Len(t, rows, 2)
}
