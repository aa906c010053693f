package calculator

import (
	"errors"
	"math"
)

// CalculateATR approximates the Average True Range from a price-only series
// by treating each adjacent pair of samples as a bar's high/low. True range
// against the previous close, simple average over the last `period` values.
func CalculateATR(prices []float64, period int) (float64, error) {
	if period <= 0 {
		return 0, errors.New("period must be positive")
	}
	if len(prices) < period+2 {
		return 0, errors.New("not enough data for ATR calculation")
	}

	trs := make([]float64, 0, len(prices)-2)
	for i := 2; i < len(prices); i++ {
		high := math.Max(prices[i], prices[i-1])
		low := math.Min(prices[i], prices[i-1])
		prevClose := prices[i-1]

		tr := high - low
		if v := math.Abs(high - prevClose); v > tr {
			tr = v
		}
		if v := math.Abs(low - prevClose); v > tr {
			tr = v
		}
		trs = append(trs, tr)
	}

	if len(trs) > period {
		trs = trs[len(trs)-period:]
	}
	sum := 0.0
	for _, tr := range trs {
		sum += tr
	}
	return sum / float64(len(trs)), nil
}
