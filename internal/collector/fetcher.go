package collector

import (
	"context"

	"EthAdvisor/internal/model"
)

// Fetcher defines the interface for fetching market data.
type Fetcher interface {
	FetchSnapshot(ctx context.Context) (*model.PriceSnapshot, error)
	FetchMarketChart(ctx context.Context, days int) (*model.PriceSeries, error)
	Name() string
}
