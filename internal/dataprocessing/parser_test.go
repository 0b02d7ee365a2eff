package dataprocessing

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hargacli/internal/shared/testutil"
)

func TestParseFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "2023.xlsx")
	testutil.WriteWorkbook(t, path,
		[]string{"No", "Komoditas (Rp)", "15/ 03/ 2023"},
		[][]string{
			{"1", "Beras", "12000"},
			{"2", "Telur Ayam", "-"},
		})

	table, err := ParseFile(path)
	require.NoError(t, err)

	assert.Equal(t, path, table.Path)
	assert.Equal(t, []string{"No", "Komoditas (Rp)", "15/ 03/ 2023"}, table.Headers)
	require.Len(t, table.Rows, 2)
	assert.Equal(t, []string{"1", "Beras", "12000"}, table.Rows[0])
}

func TestParseFile_Missing(t *testing.T) {
	_, err := ParseFile(filepath.Join(t.TempDir(), "nope.xlsx"))

	var loadErr *LoadError
	assert.ErrorAs(t, err, &loadErr)
}

func TestParseFile_Corrupt(t *testing.T) {
	path := filepath.Join(t.TempDir(), "2023.xlsx")
	testutil.WriteCorruptWorkbook(t, path)

	_, err := ParseFile(path)

	var loadErr *LoadError
	require.ErrorAs(t, err, &loadErr)
	assert.Equal(t, path, loadErr.Path)
}
