package model

import "time"

// PricePoint is a single sample from the historical market chart.
type PricePoint struct {
	Time      time.Time
	Price     float64
	MarketCap float64
	Volume    float64
}

// PriceSeries holds raw historical price data for analysis.
type PriceSeries struct {
	Currency  string
	Points    []PricePoint
	FetchedAt time.Time
}

// Prices returns the bare price values in chronological order.
func (s *PriceSeries) Prices() []float64 {
	prices := make([]float64, len(s.Points))
	for i, p := range s.Points {
		prices[i] = p.Price
	}
	return prices
}

// PriceSnapshot is the current market state from a single fetch.
// Discarded after the analysis that consumed it.
type PriceSnapshot struct {
	Price     float64   `json:"price"`
	Change24h float64   `json:"change_24h"`
	Change7d  float64   `json:"change_7d"`
	Change30d float64   `json:"change_30d"`
	MarketCap float64   `json:"market_cap"`
	Volume24h float64   `json:"volume_24h"`
	High24h   float64   `json:"high_24h"`
	Low24h    float64   `json:"low_24h"`
	FetchedAt time.Time `json:"fetched_at"`
}
