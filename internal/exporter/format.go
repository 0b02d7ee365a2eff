package exporter

import (
	"strconv"

	"hargacli/pkg/contracts/domain"
)

// OutputDateLayout is the date format used in output files.
const OutputDateLayout = "2006-01-02"

// Headers is the column set of every output file, one column per field of a
// price record.
var Headers = []string{"Commodity", "City", "Date", "Price"}

// FormatPrice renders a price for output: the shortest exact decimal form,
// or an empty field for a missing price.
func FormatPrice(price *float64) string {
	if price == nil {
		return ""
	}
	return strconv.FormatFloat(*price, 'f', -1, 64)
}

// recordRow converts one price record into an output row.
func recordRow(record domain.PriceRecord) []string {
	return []string{
		record.Commodity,
		record.City,
		record.Date.Format(OutputDateLayout),
		FormatPrice(record.Price),
	}
}
