package calculator

import (
	"errors"
	"sort"
)

// FindSupportResistance scans for local extrema with the given window and
// returns up to three support levels below the current price (highest first)
// and up to three resistance levels above it (lowest first).
func FindSupportResistance(prices []float64, window int) (support, resistance []float64, err error) {
	if window <= 0 {
		return nil, nil, errors.New("window must be positive")
	}
	if len(prices) < window*3 {
		return nil, nil, errors.New("not enough data for support/resistance analysis")
	}

	current := prices[len(prices)-1]

	for i := window; i < len(prices)-window; i++ {
		isMin, isMax := true, true
		for j := i - window; j <= i+window; j++ {
			if j == i {
				continue
			}
			if prices[j] < prices[i] {
				isMin = false
			}
			if prices[j] > prices[i] {
				isMax = false
			}
			if !isMin && !isMax {
				break
			}
		}
		if isMin && prices[i] < current {
			support = append(support, prices[i])
		}
		if isMax && prices[i] > current {
			resistance = append(resistance, prices[i])
		}
	}

	sort.Sort(sort.Reverse(sort.Float64Slice(support)))
	sort.Float64s(resistance)

	if len(support) > 3 {
		support = support[:3]
	}
	if len(resistance) > 3 {
		resistance = resistance[:3]
	}
	return support, resistance, nil
}

// HighLowRange returns the high and low over the last n samples.
func HighLowRange(prices []float64, n int) (high, low float64, err error) {
	if len(prices) == 0 {
		return 0, 0, errors.New("no prices provided")
	}
	start := len(prices) - n
	if start < 0 {
		start = 0
	}
	high, low = prices[start], prices[start]
	for _, p := range prices[start:] {
		if p > high {
			high = p
		}
		if p < low {
			low = p
		}
	}
	return high, low, nil
}
