package advisor

import (
	"fmt"

	"EthAdvisor/internal/model"
)

// Engine turns an IndicatorSet into a Recommendation using the configured
// risk-tolerance weight profile.
type Engine struct {
	weights Weights
}

// NewEngine creates an Engine for the given risk tolerance (low/medium/high).
func NewEngine(riskTolerance string) *Engine {
	return &Engine{weights: WeightsFor(riskTolerance)}
}

// Evaluate scores every indicator and maps the aggregate buy/sell pressure
// to a signal. A side needs a weighted score of at least 2 and must beat
// the other side to produce BUY/SELL; 3 or more upgrades to the strong
// variant. Everything else is HOLD.
func (e *Engine) Evaluate(ind *model.IndicatorSet) *model.Recommendation {
	factors := []model.FactorScore{
		scoreRSI(ind.RSI, e.weights.RSI),
		scoreMACD(ind.MACDSignal, ind.Histogram, e.weights.MACD),
		scoreMovingAverages(ind.MAStatus, ind.MALong, e.weights.MovingAverages),
		scoreLevels(ind.CurrentPrice, ind.SupportLevels, ind.ResistanceLevels, e.weights.SupportResistance),
		scoreTrend(ind.TrendSlope, e.weights.Trend),
		scoreVolatility(ind.Volatility, ind.VolatilityRatio, e.weights.Volatility),
	}

	var buyScore, sellScore float64
	reasons := make([]string, 0, len(factors))
	for _, f := range factors {
		if f.Weighted > 0 {
			buyScore += f.Weighted
		} else {
			sellScore -= f.Weighted
		}
		reasons = append(reasons, f.Reason)
	}

	var signal model.Signal
	switch {
	case buyScore >= 2 && buyScore > sellScore:
		if buyScore >= 3 {
			signal = model.SignalStrongBuy
		} else {
			signal = model.SignalBuy
		}
	case sellScore >= 2 && sellScore > buyScore:
		if sellScore >= 3 {
			signal = model.SignalStrongSell
		} else {
			signal = model.SignalSell
		}
	default:
		signal = model.SignalHold
	}

	return &model.Recommendation{
		Signal:    signal,
		BuyScore:  buyScore,
		SellScore: sellScore,
		Factors:   factors,
		Reasons:   reasons,
	}
}

// QuickEvaluate produces a recommendation from a bare snapshot via the
// pseudo-indicator cascade. The MACD label always overrides the RSI label;
// RSI only decides when MACD is neutral, and only upgrades the strength of
// an agreeing MACD call.
func QuickEvaluate(ind *model.IndicatorSet) *model.Recommendation {
	var signal model.Signal
	var reason string

	switch ind.MACDSignal {
	case model.MACDBullish:
		if ind.RSI < 30 {
			signal = model.SignalStrongBuy
			reason = fmt.Sprintf("MACD is bullish and RSI is oversold (%.1f)", ind.RSI)
		} else {
			signal = model.SignalBuy
			reason = "MACD is bullish"
		}
	case model.MACDBearish:
		if ind.RSI > 70 {
			signal = model.SignalStrongSell
			reason = fmt.Sprintf("MACD is bearish and RSI is overbought (%.1f)", ind.RSI)
		} else {
			signal = model.SignalSell
			reason = "MACD is bearish"
		}
	default:
		switch {
		case ind.RSI < 30:
			signal = model.SignalBuy
			reason = fmt.Sprintf("RSI is oversold (%.1f)", ind.RSI)
		case ind.RSI > 70:
			signal = model.SignalSell
			reason = fmt.Sprintf("RSI is overbought (%.1f)", ind.RSI)
		default:
			signal = model.SignalHold
			reason = fmt.Sprintf("No clear momentum signal (RSI %.1f)", ind.RSI)
		}
	}

	reasons := []string{reason}
	if ind.MAStatus == model.MAAbove {
		reasons = append(reasons, "Price is above its 30-day trend")
	} else if ind.MAStatus == model.MABelow {
		reasons = append(reasons, "Price is below its 30-day trend")
	}

	return &model.Recommendation{Signal: signal, Reasons: reasons}
}
