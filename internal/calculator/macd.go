package calculator

import (
	"errors"

	"EthAdvisor/internal/model"
)

// MACDResult holds the latest MACD values and the crossover label.
type MACDResult struct {
	Line      float64
	Signal    float64
	Histogram float64
	Crossover model.MACDSignal
}

// CalculateMACD computes the MACD line, signal line and histogram over the
// price series. The crossover label is bullish when the histogram crossed
// above zero on the latest bar and bearish when it crossed below.
func CalculateMACD(prices []float64, fastPeriod, slowPeriod, signalPeriod int) (*MACDResult, error) {
	if fastPeriod <= 0 || slowPeriod <= 0 || signalPeriod <= 0 {
		return nil, errors.New("periods must be positive")
	}
	if fastPeriod >= slowPeriod {
		return nil, errors.New("fast period must be less than slow period")
	}
	if len(prices) < slowPeriod+signalPeriod {
		return nil, errors.New("not enough data for MACD calculation")
	}

	fast := EMASeries(prices, fastPeriod)
	slow := EMASeries(prices, slowPeriod)

	macdLine := make([]float64, len(prices))
	for i := range prices {
		macdLine[i] = fast[i] - slow[i]
	}
	signalLine := EMASeries(macdLine, signalPeriod)

	n := len(prices)
	histCurr := macdLine[n-1] - signalLine[n-1]
	histPrev := macdLine[n-2] - signalLine[n-2]

	crossover := model.MACDNeutral
	switch {
	case histCurr > 0 && histPrev < 0:
		crossover = model.MACDBullish
	case histCurr < 0 && histPrev > 0:
		crossover = model.MACDBearish
	}

	return &MACDResult{
		Line:      macdLine[n-1],
		Signal:    signalLine[n-1],
		Histogram: histCurr,
		Crossover: crossover,
	}, nil
}
