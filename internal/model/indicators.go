package model

// MACDSignal labels the MACD histogram crossover state.
type MACDSignal string

const (
	MACDBullish MACDSignal = "bullish"
	MACDBearish MACDSignal = "bearish"
	MACDNeutral MACDSignal = "neutral"
)

// MAStatus labels the moving-average cross state.
type MAStatus string

const (
	MAGoldenCross  MAStatus = "golden_cross"
	MADeathCross   MAStatus = "death_cross"
	MAAbove        MAStatus = "above"
	MABelow        MAStatus = "below"
	MAInsufficient MAStatus = "insufficient_data"
)

// IndicatorSet holds all computed technical indicators for one analysis run.
type IndicatorSet struct {
	CurrentPrice float64 `json:"current_price"`

	RSI float64 `json:"rsi"` // always within [0,100]

	MACDLine   float64    `json:"macd_line"`
	SignalLine float64    `json:"signal_line"`
	Histogram  float64    `json:"histogram"`
	MACDSignal MACDSignal `json:"macd_signal"`

	MAShort  float64  `json:"ma_short"`
	MALong   float64  `json:"ma_long"`
	MAStatus MAStatus `json:"ma_status"`

	ATR float64 `json:"atr"`

	// TrendSlope is the least-squares price slope over the trend window,
	// as percent change per period.
	TrendSlope float64 `json:"trend_slope"`

	// Volatility is the stddev of recent returns in percent.
	// VolatilityRatio compares it to the preceding two windows; 0 means
	// no historical baseline was available.
	Volatility      float64 `json:"volatility"`
	VolatilityRatio float64 `json:"volatility_ratio"`

	SupportLevels    []float64 `json:"support_levels"`
	ResistanceLevels []float64 `json:"resistance_levels"`

	// Approximated is set when the values were derived from snapshot
	// percentage changes instead of real price history.
	Approximated bool `json:"approximated,omitempty"`
}
