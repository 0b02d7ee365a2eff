package dataprocessing

import (
	"sort"

	"hargacli/pkg/contracts/domain"
)

// Summarize derives summary statistics over a consolidated record set. It
// is a pure function of its input: no side effects, no mutation. A nil or
// empty input yields a zero-valued summary.
func Summarize(records []domain.PriceRecord) *domain.Summary {
	summary := &domain.Summary{TotalRecords: len(records)}
	if len(records) == 0 {
		return summary
	}

	cities := make(map[string]bool)
	commodities := make(map[string]bool)

	var priceSum float64
	priceCount := 0

	for i, record := range records {
		cities[record.City] = true
		commodities[record.Commodity] = true

		if i == 0 || record.Date.Before(summary.DateStart) {
			summary.DateStart = record.Date
		}
		if i == 0 || record.Date.After(summary.DateEnd) {
			summary.DateEnd = record.Date
		}

		if record.Price == nil {
			summary.MissingPrices++
			continue
		}

		price := *record.Price
		if priceCount == 0 || price < summary.MinPrice {
			summary.MinPrice = price
		}
		if priceCount == 0 || price > summary.MaxPrice {
			summary.MaxPrice = price
		}
		priceSum += price
		priceCount++
	}

	if priceCount > 0 {
		summary.MeanPrice = priceSum / float64(priceCount)
	}

	summary.Cities = sortedKeys(cities)
	summary.Commodities = sortedKeys(commodities)

	return summary
}

func sortedKeys(set map[string]bool) []string {
	keys := make([]string, 0, len(set))
	for key := range set {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}
