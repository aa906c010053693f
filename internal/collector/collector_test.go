package collector

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"EthAdvisor/internal/model"
)

func testParams() Params {
	return Params{
		HistoryDays: 250,
		RSIPeriod:   14,
		MACDFast:    12,
		MACDSlow:    26,
		MACDSignal:  9,
		MAShort:     50,
		MALong:      200,
		ATRPeriod:   14,
	}
}

func TestCoinGeckoFetcher_Snapshot(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/coins/ethereum" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		if got := r.Header.Get("x-cg-pro-api-key"); got != "test-key" {
			t.Errorf("expected api key header, got %q", got)
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{
			"market_data": {
				"current_price": {"usd": 3250.5},
				"market_cap": {"usd": 390000000000},
				"total_volume": {"usd": 18000000000},
				"high_24h": {"usd": 3300},
				"low_24h": {"usd": 3180},
				"price_change_percentage_24h": 2.1,
				"price_change_percentage_7d": -1.4,
				"price_change_percentage_30d": 8.9
			}
		}`))
	}))
	defer srv.Close()

	f := NewCoinGeckoFetcher(CoinGeckoOptions{
		BaseURL: srv.URL,
		APIKey:  "test-key",
		Timeout: 5 * time.Second,
	})

	snap, err := f.FetchSnapshot(context.Background())
	if err != nil {
		t.Fatalf("FetchSnapshot: %v", err)
	}
	if snap.Price != 3250.5 {
		t.Errorf("price = %v, want 3250.5", snap.Price)
	}
	if snap.Change24h != 2.1 {
		t.Errorf("change24h = %v, want 2.1", snap.Change24h)
	}
	if snap.High24h != 3300 || snap.Low24h != 3180 {
		t.Errorf("high/low = %v/%v", snap.High24h, snap.Low24h)
	}
}

func TestCoinGeckoFetcher_SnapshotMissingCurrency(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"market_data": {"current_price": {"eur": 3000}}}`))
	}))
	defer srv.Close()

	f := NewCoinGeckoFetcher(CoinGeckoOptions{BaseURL: srv.URL})
	if _, err := f.FetchSnapshot(context.Background()); err == nil {
		t.Fatal("expected error for missing usd price")
	}
}

func TestCoinGeckoFetcher_MarketChart(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/coins/ethereum/market_chart" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		if got := r.URL.Query().Get("days"); got != "3" {
			t.Errorf("days = %q, want 3", got)
		}
		w.Write([]byte(`{
			"prices": [[1700000000000, 3000], [1700086400000, 3100], [1700172800000, 3050]],
			"market_caps": [[1700000000000, 1], [1700086400000, 2], [1700172800000, 3]],
			"total_volumes": [[1700000000000, 4], [1700086400000, 5], [1700172800000, 6]]
		}`))
	}))
	defer srv.Close()

	f := NewCoinGeckoFetcher(CoinGeckoOptions{BaseURL: srv.URL})
	series, err := f.FetchMarketChart(context.Background(), 3)
	if err != nil {
		t.Fatalf("FetchMarketChart: %v", err)
	}
	if len(series.Points) != 3 {
		t.Fatalf("points = %d, want 3", len(series.Points))
	}
	want := []float64{3000, 3100, 3050}
	for i, p := range series.Points {
		if p.Price != want[i] {
			t.Errorf("point %d price = %v, want %v", i, p.Price, want[i])
		}
	}
	if !series.Points[0].Time.Before(series.Points[2].Time) {
		t.Error("points not in chronological order")
	}
}

func TestCollector_CollectWithMock(t *testing.T) {
	c := New(NewMockFetcher(3000), testParams(), zerolog.Nop())

	snap, ind, err := c.Collect(context.Background())
	if err != nil {
		t.Fatalf("Collect: %v", err)
	}
	if snap.Price != 3000 {
		t.Errorf("snapshot price = %v, want 3000", snap.Price)
	}
	if ind.RSI < 0 || ind.RSI > 100 {
		t.Errorf("rsi = %v out of range", ind.RSI)
	}
	if ind.MAShort == 0 || ind.MALong == 0 {
		t.Error("moving averages not computed from full history")
	}
	if ind.ATR <= 0 {
		t.Errorf("atr = %v, want positive", ind.ATR)
	}
	if len(ind.SupportLevels) == 0 && len(ind.ResistanceLevels) == 0 {
		t.Error("no support or resistance levels found")
	}
}

// chartlessFetcher serves a snapshot but always fails the history fetch.
type chartlessFetcher struct {
	*MockFetcher
}

func (f chartlessFetcher) FetchMarketChart(ctx context.Context, days int) (*model.PriceSeries, error) {
	return nil, errors.New("rate limited")
}

func TestCollector_DegradesToApproximation(t *testing.T) {
	c := New(chartlessFetcher{NewMockFetcher(3000)}, testParams(), zerolog.Nop())

	snap, ind, err := c.Collect(context.Background())
	if err != nil {
		t.Fatalf("Collect: %v", err)
	}
	// Mock snapshot has change24h = 1.8, so the approximation is 50 + 3.6.
	if ind.RSI != 53.6 {
		t.Errorf("approximate rsi = %v, want 53.6", ind.RSI)
	}
	if ind.MACDSignal == "" || ind.MAStatus == "" {
		t.Error("approximation should still label macd and ma state")
	}
	if snap.Price != 3000 {
		t.Errorf("snapshot price = %v", snap.Price)
	}
}
