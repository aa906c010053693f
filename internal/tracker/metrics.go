package tracker

import (
	"fmt"
	"math"
	"time"

	"EthAdvisor/internal/model"
)

const (
	benchmarkAnnualReturn = 0.08 // broad-market comparison
	riskFreeRate          = 0.02
	tradingDaysPerYear    = 252
)

// Metrics computes the extended performance report from the trade and
// decision logs.
func (t *Tracker) Metrics(currentPrice float64) (*model.PerformanceMetrics, error) {
	portfolio, err := t.PortfolioValue(currentPrice)
	if err != nil {
		return nil, err
	}
	trades, err := t.store.Trades()
	if err != nil {
		return nil, fmt.Errorf("load trades: %w", err)
	}

	m := &model.PerformanceMetrics{
		Portfolio:       *portfolio,
		TotalTrades:     len(trades),
		BenchmarkReturn: benchmarkAnnualReturn,
	}
	for _, tr := range trades {
		if tr.Type == model.TradeBuy {
			m.BuyTrades++
		} else {
			m.SellTrades++
		}
	}

	if len(trades) > 0 {
		m.FirstTradeDate = trades[0].Date
		m.LastTradeDate = trades[len(trades)-1].Date
		m.DaysInvested = int(time.Since(m.FirstTradeDate).Hours() / 24)

		if m.DaysInvested > 0 && portfolio.Invested > 0 {
			m.AnnualizedReturn = math.Pow(1+portfolio.ROI, 365/float64(m.DaysInvested)) - 1
			m.ExcessReturn = m.AnnualizedReturn - benchmarkAnnualReturn
		}
	}

	// Volatility, Sharpe and drawdown from the trade-price history. These
	// need a reasonable number of samples to mean anything.
	if len(trades) >= 30 {
		returns := make([]float64, 0, len(trades)-1)
		for i := 1; i < len(trades); i++ {
			if trades[i-1].Price > 0 {
				returns = append(returns, trades[i].Price/trades[i-1].Price-1)
			}
		}
		m.Volatility = stddev(returns)
		m.AnnualizedVolatility = m.Volatility * math.Sqrt(tradingDaysPerYear)
		if m.AnnualizedVolatility > 0 {
			m.SharpeRatio = (m.AnnualizedReturn - riskFreeRate) / m.AnnualizedVolatility
		}

		peak := trades[0].Price
		for _, tr := range trades {
			if tr.Price > peak {
				peak = tr.Price
			}
			if peak > 0 {
				dd := (tr.Price - peak) / peak
				if dd < m.MaxDrawdown {
					m.MaxDrawdown = dd
				}
			}
		}
	}

	if err := t.scoreDecisions(m, currentPrice); err != nil {
		return nil, err
	}
	return m, nil
}

// scoreDecisions evaluates each decision against the price at the next
// decision (the latest one against the current price). A BUY was right if
// price gained over 2%, a SELL if it lost over 2%, a HOLD if it stayed
// within 5% either way.
func (t *Tracker) scoreDecisions(m *model.PerformanceMetrics, currentPrice float64) error {
	decisions, err := t.store.Decisions()
	if err != nil {
		return fmt.Errorf("load decisions: %w", err)
	}
	if len(decisions) == 0 {
		return nil
	}

	m.SignalCounts = make(map[model.Signal]int)
	for _, d := range decisions {
		m.SignalCounts[d.Signal]++
	}

	correct := 0
	for i, d := range decisions {
		nextPrice := currentPrice
		if i < len(decisions)-1 {
			nextPrice = decisions[i+1].Price
		}
		if d.Price <= 0 {
			continue
		}
		change := (nextPrice - d.Price) / d.Price

		right := false
		switch d.Signal {
		case model.SignalBuy, model.SignalStrongBuy:
			right = change > 0.02
		case model.SignalSell, model.SignalStrongSell:
			right = change < -0.02
		case model.SignalHold:
			right = math.Abs(change) < 0.05
		}
		if right {
			correct++
		}
		m.DecisionsScored++
	}
	if m.DecisionsScored > 0 {
		m.DecisionAccuracy = float64(correct) / float64(m.DecisionsScored)
	}
	return nil
}

func stddev(values []float64) float64 {
	if len(values) < 2 {
		return 0
	}
	mean := 0.0
	for _, v := range values {
		mean += v
	}
	mean /= float64(len(values))

	variance := 0.0
	for _, v := range values {
		variance += (v - mean) * (v - mean)
	}
	variance /= float64(len(values) - 1)
	return math.Sqrt(variance)
}
