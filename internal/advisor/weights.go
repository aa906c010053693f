package advisor

// Weights controls how much each indicator contributes to the final score.
type Weights struct {
	RSI               float64
	MACD              float64
	MovingAverages    float64
	SupportResistance float64
	Trend             float64
	Volatility        float64
}

// WeightsFor returns the indicator weight profile for a risk tolerance
// level. Unknown values fall back to the medium profile.
func WeightsFor(riskTolerance string) Weights {
	switch riskTolerance {
	case "low":
		// Conservative: lean on slow confirmation signals
		return Weights{RSI: 1.2, MACD: 0.8, MovingAverages: 1.3, SupportResistance: 1.0, Trend: 1.2, Volatility: 0.5}
	case "high":
		// Aggressive: favor momentum over structure
		return Weights{RSI: 0.8, MACD: 1.2, MovingAverages: 0.7, SupportResistance: 0.6, Trend: 0.8, Volatility: 1.0}
	default:
		return Weights{RSI: 1.0, MACD: 1.0, MovingAverages: 1.0, SupportResistance: 0.8, Trend: 1.0, Volatility: 0.7}
	}
}
