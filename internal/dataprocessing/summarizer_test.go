package dataprocessing

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hargacli/pkg/contracts/domain"
)

func TestSummarize(t *testing.T) {
	records := []domain.PriceRecord{
		{Commodity: "Beras", City: "kota-pontianak", Date: date(t, "2023-03-16"), Price: domain.Float(12500)},
		{Commodity: "Telur Ayam", City: "kota-banjarmasin", Date: date(t, "2023-03-15"), Price: domain.Float(28000)},
		{Commodity: "Beras", City: "kota-banjarmasin", Date: date(t, "2023-03-17"), Price: nil},
		{Commodity: "Beras", City: "kota-pontianak", Date: date(t, "2023-03-15"), Price: domain.Float(12000)},
	}

	summary := Summarize(records)

	assert.Equal(t, 4, summary.TotalRecords)
	assert.Equal(t, []string{"kota-banjarmasin", "kota-pontianak"}, summary.Cities)
	assert.Equal(t, []string{"Beras", "Telur Ayam"}, summary.Commodities)
	assert.Equal(t, date(t, "2023-03-15"), summary.DateStart)
	assert.Equal(t, date(t, "2023-03-17"), summary.DateEnd)
	assert.Equal(t, 1, summary.MissingPrices)
	assert.Equal(t, 12000.0, summary.MinPrice)
	assert.Equal(t, 28000.0, summary.MaxPrice)
	assert.InDelta(t, 17500.0, summary.MeanPrice, 0.001)
}

func TestSummarize_Empty(t *testing.T) {
	summary := Summarize(nil)

	assert.Equal(t, 0, summary.TotalRecords)
	assert.Empty(t, summary.Cities)
	assert.Empty(t, summary.Commodities)
	assert.True(t, summary.DateStart.IsZero())
	assert.True(t, summary.DateEnd.IsZero())
	assert.Zero(t, summary.MinPrice)
	assert.Zero(t, summary.MeanPrice)
}

func TestSummarize_AllMissing(t *testing.T) {
	records := []domain.PriceRecord{
		{Commodity: "Beras", City: "kota-pontianak", Date: date(t, "2023-03-15")},
		{Commodity: "Beras", City: "kota-pontianak", Date: date(t, "2023-03-16")},
	}

	summary := Summarize(records)

	assert.Equal(t, 2, summary.MissingPrices)
	assert.Zero(t, summary.MinPrice)
	assert.Zero(t, summary.MaxPrice)
	assert.Zero(t, summary.MeanPrice)
	assert.Equal(t, date(t, "2023-03-15"), summary.DateStart)
}

func TestSummarize_DoesNotMutateInput(t *testing.T) {
	records := []domain.PriceRecord{
		{Commodity: "Beras", City: "kota-pontianak", Date: date(t, "2023-03-15"), Price: domain.Float(12000)},
	}

	before := records[0]
	_ = Summarize(records)
	require.Equal(t, before, records[0])
}
