package advisor

import (
	"fmt"

	"EthAdvisor/internal/model"
)

// scoreRSI grades the RSI reading. Oversold readings push positive (buy),
// overbought negative (sell), graded by distance from the 30/70 bands and
// capped at ±2.
func scoreRSI(rsi, weight float64) model.FactorScore {
	var score float64
	var reason string

	switch {
	case rsi < 30:
		score = (30 - rsi) / 10
		if score > 2.0 {
			score = 2.0
		}
		if rsi < 20 {
			reason = fmt.Sprintf("RSI is extremely oversold (%.1f)", rsi)
		} else {
			reason = fmt.Sprintf("RSI is oversold (%.1f)", rsi)
		}
	case rsi > 70:
		score = -(rsi - 70) / 10
		if score < -2.0 {
			score = -2.0
		}
		if rsi > 80 {
			reason = fmt.Sprintf("RSI is extremely overbought (%.1f)", rsi)
		} else {
			reason = fmt.Sprintf("RSI is overbought (%.1f)", rsi)
		}
	case rsi < 45:
		score = 0.3
		reason = fmt.Sprintf("RSI is neutral-low (%.1f)", rsi)
	case rsi > 55:
		score = -0.3
		reason = fmt.Sprintf("RSI is neutral-high (%.1f)", rsi)
	default:
		reason = fmt.Sprintf("RSI is neutral (%.1f)", rsi)
	}

	return model.FactorScore{Name: "rsi", Score: score, Weight: weight, Weighted: score * weight, Reason: reason}
}

// scoreMACD grades the MACD crossover; without a fresh cross the histogram
// sign contributes a small bias.
func scoreMACD(macd model.MACDSignal, histogram, weight float64) model.FactorScore {
	var score float64
	var reason string

	switch macd {
	case model.MACDBullish:
		score = 1.0
		reason = "MACD histogram crossed above zero (bullish)"
	case model.MACDBearish:
		score = -1.0
		reason = "MACD histogram crossed below zero (bearish)"
	default:
		if histogram > 0 {
			score = 0.25
			reason = "MACD histogram positive, no fresh cross"
		} else if histogram < 0 {
			score = -0.25
			reason = "MACD histogram negative, no fresh cross"
		} else {
			reason = "MACD is flat"
		}
	}

	return model.FactorScore{Name: "macd", Score: score, Weight: weight, Weighted: score * weight, Reason: reason}
}

// scoreMovingAverages grades the 50/200 cross state. A fresh golden or
// death cross scores high enough to dominate the other factors.
func scoreMovingAverages(status model.MAStatus, maLong, weight float64) model.FactorScore {
	var score float64
	var reason string

	switch status {
	case model.MAGoldenCross:
		score = 2.0
		reason = "Golden cross detected (bullish)"
	case model.MADeathCross:
		score = -2.0
		reason = "Death cross detected (bearish)"
	case model.MAAbove:
		score = 0.5
		reason = fmt.Sprintf("Price is above the %.2f long MA (bullish)", maLong)
	case model.MABelow:
		score = -0.5
		reason = fmt.Sprintf("Price is below the %.2f long MA (bearish)", maLong)
	default:
		reason = "Not enough history for moving-average analysis"
	}

	return model.FactorScore{Name: "moving_averages", Score: score, Weight: weight, Weighted: score * weight, Reason: reason}
}

// scoreLevels grades proximity to support and resistance: within 5% of a
// support level is a mild buy, within 5% of resistance a mild sell.
func scoreLevels(price float64, support, resistance []float64, weight float64) model.FactorScore {
	var score float64
	var reason string

	if nearest, ok := nearestLevel(price, support); ok && withinPct(price, nearest, 0.05) {
		score += 0.5
		reason = fmt.Sprintf("Price is near support at %.2f", nearest)
	}
	if nearest, ok := nearestLevel(price, resistance); ok && withinPct(price, nearest, 0.05) {
		score -= 0.5
		if reason != "" {
			reason += "; "
		}
		reason += fmt.Sprintf("Price is near resistance at %.2f", nearest)
	}
	if reason == "" {
		reason = "Price is not near any tracked level"
	}

	return model.FactorScore{Name: "support_resistance", Score: score, Weight: weight, Weighted: score * weight, Reason: reason}
}

// scoreTrend grades the normalized least-squares slope of recent prices.
// Slopes beyond ±1% per period count as strong trends.
func scoreTrend(slope, weight float64) model.FactorScore {
	var score float64
	var reason string

	switch {
	case slope > 1.0:
		score = 1.5
		reason = fmt.Sprintf("Strong upward trend (%.2f%%/period)", slope)
	case slope > 0.3:
		score = 1.0
		reason = fmt.Sprintf("Upward trend (%.2f%%/period)", slope)
	case slope > 0.1:
		score = 0.5
		reason = fmt.Sprintf("Mild upward trend (%.2f%%/period)", slope)
	case slope < -1.0:
		score = -1.5
		reason = fmt.Sprintf("Strong downward trend (%.2f%%/period)", slope)
	case slope < -0.3:
		score = -1.0
		reason = fmt.Sprintf("Downward trend (%.2f%%/period)", slope)
	case slope < -0.1:
		score = -0.5
		reason = fmt.Sprintf("Mild downward trend (%.2f%%/period)", slope)
	default:
		reason = "No significant trend"
	}

	return model.FactorScore{Name: "trend", Score: score, Weight: weight, Weighted: score * weight, Reason: reason}
}

// scoreVolatility grades return volatility against its historical baseline
// when one exists, otherwise against absolute bands. Elevated volatility
// pushes toward caution (sell), unusually calm markets mildly toward buy.
// A zero reading means the series was too short to measure.
func scoreVolatility(vol, ratio, weight float64) model.FactorScore {
	var score float64
	var reason string

	switch {
	case vol == 0:
		reason = "Not enough history for volatility analysis"
	case ratio > 0:
		switch {
		case ratio > 2.0:
			score = -1.0
			reason = fmt.Sprintf("Volatility %.1fx above its recent baseline", ratio)
		case ratio > 1.5:
			score = -0.5
			reason = fmt.Sprintf("Volatility elevated at %.1fx its recent baseline", ratio)
		case ratio < 0.5:
			score = 0.5
			reason = fmt.Sprintf("Volatility well below its recent baseline (%.1fx)", ratio)
		default:
			reason = fmt.Sprintf("Volatility near its recent baseline (%.1fx)", ratio)
		}
	case vol > 5:
		score = -1.0
		reason = fmt.Sprintf("High volatility (%.1f%%)", vol)
	case vol < 1:
		score = 0.5
		reason = fmt.Sprintf("Low volatility (%.1f%%)", vol)
	default:
		reason = fmt.Sprintf("Moderate volatility (%.1f%%)", vol)
	}

	return model.FactorScore{Name: "volatility", Score: score, Weight: weight, Weighted: score * weight, Reason: reason}
}

func nearestLevel(price float64, levels []float64) (float64, bool) {
	if len(levels) == 0 {
		return 0, false
	}
	best := levels[0]
	for _, l := range levels[1:] {
		if abs(price-l) < abs(price-best) {
			best = l
		}
	}
	return best, true
}

func withinPct(price, level, pct float64) bool {
	if price == 0 {
		return false
	}
	return abs(price-level)/price < pct
}

func abs(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}
