package domain

import (
	"time"
)

// PriceRecord is the canonical unit of consolidated output: one observed
// price for one commodity in one city on one date. A nil Price means the
// source held a recognized missing-value indicator (or an unparseable cell
// that was nulled rather than dropped).
type PriceRecord struct {
	Commodity string    `json:"commodity" csv:"Commodity"`
	City      string    `json:"city" csv:"City"`
	Date      time.Time `json:"date" csv:"Date"`
	Price     *float64  `json:"price" csv:"Price"`
}

// HasPrice reports whether the record carries an observed price.
func (r PriceRecord) HasPrice() bool {
	return r.Price != nil
}

// Float returns a pointer to v, for building records with observed prices.
func Float(v float64) *float64 {
	return &v
}

// Summary holds derived statistics over a consolidated record set.
type Summary struct {
	TotalRecords  int       `json:"total_records"`
	Cities        []string  `json:"cities"`
	Commodities   []string  `json:"commodities"`
	DateStart     time.Time `json:"date_start"`
	DateEnd       time.Time `json:"date_end"`
	MissingPrices int       `json:"missing_prices"`
	MinPrice      float64   `json:"min_price"`
	MaxPrice      float64   `json:"max_price"`
	MeanPrice     float64   `json:"mean_price"`
}
