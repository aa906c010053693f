package calculator

import (
	"errors"

	"EthAdvisor/internal/model"
)

// CalculateSMA computes the simple moving average of the last `period` prices.
func CalculateSMA(prices []float64, period int) (float64, error) {
	if period <= 0 {
		return 0, errors.New("period must be positive")
	}
	if len(prices) < period {
		return 0, errors.New("not enough data for SMA calculation")
	}
	sum := 0.0
	for i := len(prices) - period; i < len(prices); i++ {
		sum += prices[i]
	}
	return sum / float64(period), nil
}

// EMASeries computes the exponential moving average over the whole series,
// seeded with the first value.
func EMASeries(prices []float64, period int) []float64 {
	if len(prices) == 0 || period <= 0 {
		return nil
	}
	k := 2.0 / (float64(period) + 1.0)
	out := make([]float64, len(prices))
	out[0] = prices[0]
	for i := 1; i < len(prices); i++ {
		out[i] = prices[i]*k + out[i-1]*(1-k)
	}
	return out
}

// CalculateEMA returns the latest EMA value for the given period.
func CalculateEMA(prices []float64, period int) (float64, error) {
	if period <= 0 {
		return 0, errors.New("period must be positive")
	}
	if len(prices) < period {
		return 0, errors.New("not enough data for EMA calculation")
	}
	series := EMASeries(prices, period)
	return series[len(series)-1], nil
}

// CheckMovingAverages computes the short/long SMA pair and classifies the
// cross state: a fresh golden/death cross if the relation flipped on the
// latest bar, otherwise above/below.
func CheckMovingAverages(prices []float64, shortPeriod, longPeriod int) (maShort, maLong float64, status model.MAStatus) {
	if len(prices) < longPeriod {
		return 0, 0, model.MAInsufficient
	}

	maShort, _ = CalculateSMA(prices, shortPeriod)
	maLong, _ = CalculateSMA(prices, longPeriod)

	if len(prices) < longPeriod+1 {
		if maShort > maLong {
			return maShort, maLong, model.MAAbove
		}
		return maShort, maLong, model.MABelow
	}

	prev := prices[:len(prices)-1]
	prevShort, _ := CalculateSMA(prev, shortPeriod)
	prevLong, _ := CalculateSMA(prev, longPeriod)

	switch {
	case maShort > maLong && prevShort <= prevLong:
		status = model.MAGoldenCross
	case maShort < maLong && prevShort >= prevLong:
		status = model.MADeathCross
	case maShort > maLong:
		status = model.MAAbove
	default:
		status = model.MABelow
	}
	return maShort, maLong, status
}
