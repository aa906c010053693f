package calculator

import (
	"errors"
	"math"
)

// TrendSlope fits a least-squares line through the last window prices and
// returns the slope normalized as a percentage of the window's average
// price, i.e. percent change per period.
func TrendSlope(prices []float64, window int) (float64, error) {
	if window < 2 {
		return 0, errors.New("trend window must be at least 2")
	}
	if len(prices) < window {
		return 0, errors.New("not enough data for trend analysis")
	}

	recent := prices[len(prices)-window:]
	var sumX, sumY, sumXY, sumXX float64
	for i, p := range recent {
		x := float64(i)
		sumX += x
		sumY += p
		sumXY += x * p
		sumXX += x * x
	}
	n := float64(window)
	slope := (n*sumXY - sumX*sumY) / (n*sumXX - sumX*sumX)

	avg := sumY / n
	if avg == 0 {
		return 0, errors.New("average price is zero")
	}
	return slope / avg * 100, nil
}

// Volatility returns the standard deviation of simple returns over the last
// window prices, in percent. When at least three windows of history exist,
// ratio compares it against the volatility of the two preceding windows;
// otherwise ratio is 0.
func Volatility(prices []float64, window int) (vol, ratio float64, err error) {
	if window < 2 {
		return 0, 0, errors.New("volatility window must be at least 2")
	}
	if len(prices) < window {
		return 0, 0, errors.New("not enough data for volatility analysis")
	}

	vol = returnsStddev(prices[len(prices)-window:]) * 100

	if len(prices) >= window*3 {
		historical := returnsStddev(prices[len(prices)-3*window:len(prices)-window]) * 100
		if historical > 0 {
			ratio = vol / historical
		}
	}
	return vol, ratio, nil
}

// returnsStddev computes the population standard deviation of the simple
// returns between consecutive prices.
func returnsStddev(prices []float64) float64 {
	if len(prices) < 2 {
		return 0
	}
	returns := make([]float64, 0, len(prices)-1)
	for i := 1; i < len(prices); i++ {
		if prices[i-1] != 0 {
			returns = append(returns, prices[i]/prices[i-1]-1)
		}
	}
	if len(returns) == 0 {
		return 0
	}

	mean := 0.0
	for _, r := range returns {
		mean += r
	}
	mean /= float64(len(returns))

	variance := 0.0
	for _, r := range returns {
		variance += (r - mean) * (r - mean)
	}
	variance /= float64(len(returns))
	return math.Sqrt(variance)
}
