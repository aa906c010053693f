package collector

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"EthAdvisor/internal/calculator"
	"EthAdvisor/internal/model"
)

// trendWindow is the lookback used for trend and volatility analysis.
const trendWindow = 14

// Params controls the indicator computation over fetched history.
type Params struct {
	HistoryDays int
	RSIPeriod   int
	MACDFast    int
	MACDSlow    int
	MACDSignal  int
	MAShort     int
	MALong      int
	ATRPeriod   int
}

// Collector fetches market data and computes the full indicator set.
type Collector struct {
	fetcher Fetcher
	params  Params
	logger  zerolog.Logger
}

func New(fetcher Fetcher, params Params, logger zerolog.Logger) *Collector {
	return &Collector{
		fetcher: fetcher,
		params:  params,
		logger:  logger.With().Str("component", "collector").Logger(),
	}
}

// Snapshot fetches only the current market state.
func (c *Collector) Snapshot(ctx context.Context) (*model.PriceSnapshot, error) {
	snap, err := c.fetcher.FetchSnapshot(ctx)
	if err != nil {
		return nil, fmt.Errorf("fetch snapshot: %w", err)
	}
	return snap, nil
}

// Collect fetches the current snapshot plus historical prices and computes
// every indicator. Individual indicator failures degrade to defaults with a
// warning rather than failing the whole run; only fetch errors on the
// snapshot itself are fatal.
func (c *Collector) Collect(ctx context.Context) (*model.PriceSnapshot, *model.IndicatorSet, error) {
	snap, err := c.Snapshot(ctx)
	if err != nil {
		return nil, nil, err
	}

	series, err := c.fetcher.FetchMarketChart(ctx, c.params.HistoryDays)
	if err != nil {
		c.logger.Warn().Err(err).Msg("market chart unavailable, using snapshot approximation")
		return snap, c.approximate(snap), nil
	}

	ind := c.computeIndicators(snap, series.Prices())
	return snap, ind, nil
}

// approximate derives coarse indicators from the snapshot's percentage
// changes when no price history is available.
func (c *Collector) approximate(snap *model.PriceSnapshot) *model.IndicatorSet {
	return &model.IndicatorSet{
		CurrentPrice: snap.Price,
		RSI:          calculator.PseudoRSI(snap.Change24h),
		MACDSignal:   calculator.PseudoMACD(snap.Change24h, snap.Change7d),
		MAStatus:     calculator.PseudoMAStatus(snap.Change30d),
		Approximated: true,
	}
}

func (c *Collector) computeIndicators(snap *model.PriceSnapshot, prices []float64) *model.IndicatorSet {
	ind := &model.IndicatorSet{CurrentPrice: snap.Price}

	rsi, err := calculator.CalculateRSI(prices, c.params.RSIPeriod)
	if err != nil {
		c.logger.Warn().Err(err).Msg("rsi unavailable, falling back to approximation")
		rsi = calculator.PseudoRSI(snap.Change24h)
	}
	ind.RSI = rsi

	macd, err := calculator.CalculateMACD(prices, c.params.MACDFast, c.params.MACDSlow, c.params.MACDSignal)
	if err != nil {
		c.logger.Warn().Err(err).Msg("macd unavailable, falling back to approximation")
		ind.MACDSignal = calculator.PseudoMACD(snap.Change24h, snap.Change7d)
	} else {
		ind.MACDLine = macd.Line
		ind.SignalLine = macd.Signal
		ind.Histogram = macd.Histogram
		ind.MACDSignal = macd.Crossover
	}

	maShort, maLong, status := calculator.CheckMovingAverages(prices, c.params.MAShort, c.params.MALong)
	ind.MAShort = maShort
	ind.MALong = maLong
	ind.MAStatus = status

	atr, err := calculator.CalculateATR(prices, c.params.ATRPeriod)
	if err != nil {
		c.logger.Warn().Err(err).Msg("atr unavailable")
	}
	ind.ATR = atr

	support, resistance, err := calculator.FindSupportResistance(prices, 10)
	if err != nil {
		c.logger.Warn().Err(err).Msg("support/resistance unavailable")
	}
	ind.SupportLevels = support
	ind.ResistanceLevels = resistance

	slope, err := calculator.TrendSlope(prices, trendWindow)
	if err != nil {
		c.logger.Warn().Err(err).Msg("trend unavailable")
	}
	ind.TrendSlope = slope

	vol, ratio, err := calculator.Volatility(prices, trendWindow)
	if err != nil {
		c.logger.Warn().Err(err).Msg("volatility unavailable")
	}
	ind.Volatility = vol
	ind.VolatilityRatio = ratio

	return ind
}
