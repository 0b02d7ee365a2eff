package exporter

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hargacli/pkg/contracts/domain"
)

func sampleRecords(t *testing.T) []domain.PriceRecord {
	t.Helper()

	day := func(value string) time.Time {
		d, err := time.Parse("2006-01-02", value)
		require.NoError(t, err)
		return d
	}

	return []domain.PriceRecord{
		{Commodity: "Beras", City: "kota-pontianak", Date: day("2023-03-15"), Price: domain.Float(12000)},
		{Commodity: "Telur Ayam", City: "kota-banjarmasin", Date: day("2023-03-15"), Price: nil},
		{Commodity: "Beras", City: "kota-pontianak", Date: day("2023-03-16"), Price: domain.Float(12500.5)},
	}
}

func TestCSVWrite(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out", "master_data_consolidated.csv")

	require.NoError(t, NewCSVWriter(nil).Write(path, sampleRecords(t)))

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	expected := "\xEF\xBB\xBF" +
		"Commodity,City,Date,Price\n" +
		"Beras,kota-pontianak,2023-03-15,12000\n" +
		"Telur Ayam,kota-banjarmasin,2023-03-15,\n" +
		"Beras,kota-pontianak,2023-03-16,12500.5\n"
	assert.Equal(t, expected, string(data))
}

func TestCSVWrite_EmptyRecordSet(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty.csv")

	require.NoError(t, NewCSVWriter(nil).Write(path, nil))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "\xEF\xBB\xBFCommodity,City,Date,Price\n", string(data))
}

func TestCSVWrite_ReplacesExistingFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.csv")
	records := sampleRecords(t)

	writer := NewCSVWriter(nil)
	require.NoError(t, writer.Write(path, records))
	first, err := os.ReadFile(path)
	require.NoError(t, err)

	require.NoError(t, writer.Write(path, records))
	second, err := os.ReadFile(path)
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestFormatPrice(t *testing.T) {
	tests := []struct {
		name     string
		price    *float64
		expected string
	}{
		{name: "missing", price: nil, expected: ""},
		{name: "integer", price: domain.Float(12000), expected: "12000"},
		{name: "decimal", price: domain.Float(12500.5), expected: "12500.5"},
		{name: "zero", price: domain.Float(0), expected: "0"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, FormatPrice(tt.price))
		})
	}
}
