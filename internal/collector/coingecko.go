package collector

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"sort"
	"time"

	"EthAdvisor/internal/model"
	"EthAdvisor/internal/platform/httpclient"
)

const coinID = "ethereum"

// CoinGeckoFetcher implements Fetcher against the CoinGecko public API.
type CoinGeckoFetcher struct {
	client   *httpclient.Client
	baseURL  string
	apiKey   string
	currency string
}

// CoinGeckoOptions configures the fetcher.
type CoinGeckoOptions struct {
	BaseURL        string
	APIKey         string
	Currency       string
	RequestsPerMin int
	Timeout        time.Duration
	Proxy          string
}

// NewCoinGeckoFetcher creates a CoinGecko market data fetcher.
func NewCoinGeckoFetcher(opts CoinGeckoOptions) *CoinGeckoFetcher {
	if opts.BaseURL == "" {
		opts.BaseURL = "https://api.coingecko.com/api/v3"
	}
	if opts.Currency == "" {
		opts.Currency = "usd"
	}
	return &CoinGeckoFetcher{
		client: httpclient.New(httpclient.Options{
			Timeout:        opts.Timeout,
			RequestsPerMin: opts.RequestsPerMin,
			Proxy:          opts.Proxy,
		}),
		baseURL:  opts.BaseURL,
		apiKey:   opts.APIKey,
		currency: opts.Currency,
	}
}

func (f *CoinGeckoFetcher) Name() string { return "coingecko" }

func (f *CoinGeckoFetcher) get(ctx context.Context, path string, query url.Values, out interface{}) error {
	u := fmt.Sprintf("%s%s?%s", f.baseURL, path, query.Encode())
	req, err := http.NewRequest(http.MethodGet, u, nil)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/json")
	if f.apiKey != "" {
		req.Header.Set("x-cg-pro-api-key", f.apiKey)
	}

	resp, err := f.client.Do(ctx, req)
	if err != nil {
		return fmt.Errorf("coingecko fetch %s: %w", path, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("coingecko read body: %w", err)
	}
	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("coingecko decode %s: %w", path, err)
	}
	return nil
}

// coinResponse is the subset of /coins/{id} we consume.
type coinResponse struct {
	MarketData struct {
		CurrentPrice             map[string]float64 `json:"current_price"`
		MarketCap                map[string]float64 `json:"market_cap"`
		TotalVolume              map[string]float64 `json:"total_volume"`
		High24h                  map[string]float64 `json:"high_24h"`
		Low24h                   map[string]float64 `json:"low_24h"`
		PriceChangePercentage24h float64            `json:"price_change_percentage_24h"`
		PriceChangePercentage7d  float64            `json:"price_change_percentage_7d"`
		PriceChangePercentage30d float64            `json:"price_change_percentage_30d"`
	} `json:"market_data"`
}

// FetchSnapshot returns the current ETH market state.
func (f *CoinGeckoFetcher) FetchSnapshot(ctx context.Context) (*model.PriceSnapshot, error) {
	q := url.Values{}
	q.Set("localization", "false")
	q.Set("tickers", "false")
	q.Set("market_data", "true")
	q.Set("community_data", "false")
	q.Set("developer_data", "false")

	var coin coinResponse
	if err := f.get(ctx, "/coins/"+coinID, q, &coin); err != nil {
		return nil, err
	}

	md := coin.MarketData
	price := md.CurrentPrice[f.currency]
	if price == 0 {
		return nil, fmt.Errorf("coingecko: no %s price in response", f.currency)
	}

	return &model.PriceSnapshot{
		Price:     price,
		Change24h: md.PriceChangePercentage24h,
		Change7d:  md.PriceChangePercentage7d,
		Change30d: md.PriceChangePercentage30d,
		MarketCap: md.MarketCap[f.currency],
		Volume24h: md.TotalVolume[f.currency],
		High24h:   md.High24h[f.currency],
		Low24h:    md.Low24h[f.currency],
		FetchedAt: time.Now(),
	}, nil
}

// chartResponse is the /coins/{id}/market_chart payload: arrays of
// [epoch-millis, value] pairs.
type chartResponse struct {
	Prices       [][2]float64 `json:"prices"`
	MarketCaps   [][2]float64 `json:"market_caps"`
	TotalVolumes [][2]float64 `json:"total_volumes"`
}

// FetchMarketChart returns daily historical points for the past `days` days.
func (f *CoinGeckoFetcher) FetchMarketChart(ctx context.Context, days int) (*model.PriceSeries, error) {
	q := url.Values{}
	q.Set("vs_currency", f.currency)
	q.Set("days", fmt.Sprintf("%d", days))
	q.Set("interval", "daily")

	var chart chartResponse
	if err := f.get(ctx, "/coins/"+coinID+"/market_chart", q, &chart); err != nil {
		return nil, err
	}
	if len(chart.Prices) == 0 {
		return nil, fmt.Errorf("coingecko: empty market chart")
	}

	points := make([]model.PricePoint, 0, len(chart.Prices))
	for i, pair := range chart.Prices {
		p := model.PricePoint{
			Time:  time.UnixMilli(int64(pair[0])),
			Price: pair[1],
		}
		if i < len(chart.MarketCaps) {
			p.MarketCap = chart.MarketCaps[i][1]
		}
		if i < len(chart.TotalVolumes) {
			p.Volume = chart.TotalVolumes[i][1]
		}
		points = append(points, p)
	}
	sort.Slice(points, func(i, j int) bool { return points[i].Time.Before(points[j].Time) })

	return &model.PriceSeries{
		Currency:  f.currency,
		Points:    points,
		FetchedAt: time.Now(),
	}, nil
}
