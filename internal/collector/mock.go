package collector

import (
	"context"
	"math"
	"time"

	"EthAdvisor/internal/model"
)

// MockFetcher returns synthetic data for local development and tests.
type MockFetcher struct {
	BasePrice float64
}

func NewMockFetcher(basePrice float64) *MockFetcher {
	if basePrice <= 0 {
		basePrice = 3000
	}
	return &MockFetcher{BasePrice: basePrice}
}

func (m *MockFetcher) Name() string { return "mock" }

func (m *MockFetcher) FetchSnapshot(ctx context.Context) (*model.PriceSnapshot, error) {
	return &model.PriceSnapshot{
		Price:     m.BasePrice,
		Change24h: 1.8,
		Change7d:  -2.4,
		Change30d: 6.1,
		MarketCap: m.BasePrice * 120_000_000,
		Volume24h: m.BasePrice * 5_000_000,
		High24h:   m.BasePrice * 1.02,
		Low24h:    m.BasePrice * 0.98,
		FetchedAt: time.Now(),
	}, nil
}

// FetchMarketChart generates a deterministic sine wave around the base price
// so indicator math has something non-trivial to chew on.
func (m *MockFetcher) FetchMarketChart(ctx context.Context, days int) (*model.PriceSeries, error) {
	now := time.Now()
	points := make([]model.PricePoint, days)
	for i := 0; i < days; i++ {
		wave := math.Sin(float64(i)/9.0) * 0.08
		drift := float64(i-days) * 0.0004
		price := m.BasePrice * (1 + wave + drift)
		points[i] = model.PricePoint{
			Time:      now.AddDate(0, 0, i-days+1),
			Price:     price,
			MarketCap: price * 120_000_000,
			Volume:    price * 5_000_000,
		}
	}
	return &model.PriceSeries{
		Currency:  "usd",
		Points:    points,
		FetchedAt: now,
	}, nil
}
