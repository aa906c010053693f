package calculator

import "EthAdvisor/internal/model"

// The quick path derives indicator labels from the percentage changes of a
// single snapshot, for when no historical series is available. These are
// rough proxies, not the conventional formulas.

// PseudoRSI maps the 24h percentage change onto the RSI scale, centered at
// 50. The result is clamped to [0,100] for any input.
func PseudoRSI(change24h float64) float64 {
	rsi := 50.0 + change24h*2.0
	if rsi < 0 {
		return 0
	}
	if rsi > 100 {
		return 100
	}
	return rsi
}

// PseudoMACD labels short-term momentum by comparing the 24h change against
// the average daily pace of the 7d change.
func PseudoMACD(change24h, change7d float64) model.MACDSignal {
	pace := change7d / 7.0
	switch {
	case change24h > pace && change24h > 0:
		return model.MACDBullish
	case change24h < pace && change24h < 0:
		return model.MACDBearish
	default:
		return model.MACDNeutral
	}
}

// PseudoMAStatus labels the price's position relative to its 30-day trend.
func PseudoMAStatus(change30d float64) model.MAStatus {
	if change30d >= 0 {
		return model.MAAbove
	}
	return model.MABelow
}
