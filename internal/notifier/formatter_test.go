package notifier

import (
	"strings"
	"testing"
	"time"

	"EthAdvisor/internal/model"
	"EthAdvisor/internal/risk"
)

func TestFormatAnalysisReport(t *testing.T) {
	a := &model.Analysis{
		RunAt: time.Date(2025, 6, 1, 12, 30, 0, 0, time.UTC),
		Snapshot: model.PriceSnapshot{
			Price:     3150.25,
			Change24h: 2.4,
			Change7d:  -1.1,
		},
		Indicators: model.IndicatorSet{
			CurrentPrice:     3150.25,
			RSI:              28.3,
			MACDSignal:       model.MACDBullish,
			Histogram:        4.2,
			MAShort:          3100,
			MALong:           2900,
			MAStatus:         model.MAAbove,
			SupportLevels:    []float64{3000},
			ResistanceLevels: []float64{3300},
		},
		Recommendation: model.Recommendation{
			Signal:   model.SignalBuy,
			BuyScore: 2.5,
			Reasons:  []string{"RSI oversold", "MACD bullish crossover"},
		},
	}

	// Risk figures come from the real producer so the report is checked
	// against its units, not hand-picked ones.
	params, err := risk.NewManager(10000, 0.02, 0.25, 0.05, 0.5).Parameters(3000, 60, nil)
	if err != nil {
		t.Fatalf("risk parameters: %v", err)
	}
	a.Risk = params

	msg := FormatAnalysisReport(a)
	for _, want := range []string{
		"3150.25", "RSI(14): 28.3", "bullish", "Signal: BUY",
		"RSI oversold", "Stop-loss: $2880.00",
		// $2500 position on a $10000 portfolio is 25%, not 0.25%.
		"0.8333 ETH ($2500, 25.0% of portfolio)",
		// 1.5R on a $120 stop distance is +6% from a $3000 entry.
		"Target 1.5R: $3180.00 (+6.0%)",
	} {
		if !strings.Contains(msg, want) {
			t.Errorf("report missing %q:\n%s", want, msg)
		}
	}
}

func TestFormatSignalChange(t *testing.T) {
	msg := FormatSignalChange(model.SignalHold, model.SignalSell, 3200)
	if !strings.Contains(msg, "HOLD") || !strings.Contains(msg, "SELL") {
		t.Errorf("change message missing signals: %s", msg)
	}
}

func TestFormatPerformanceSummary(t *testing.T) {
	m := &model.PerformanceMetrics{
		Portfolio: model.Portfolio{
			Holdings:     1.5,
			CurrentValue: 4800,
			Invested:     4000,
			AvgCost:      2666.67,
			RealizedPL:   200,
			UnrealizedPL: 800,
			ROI:          0.25,
		},
		TotalTrades:      4,
		BuyTrades:        3,
		SellTrades:       1,
		DaysInvested:     90,
		AnnualizedReturn: 0.31,
		BenchmarkReturn:  0.08,
		DecisionAccuracy: 0.75,
		DecisionsScored:  4,
	}

	msg := FormatPerformanceSummary(m)
	for _, want := range []string{"1.5000 ETH", "ROI: +25.0%", "4 (3 buys, 1 sells)", "75%"} {
		if !strings.Contains(msg, want) {
			t.Errorf("summary missing %q:\n%s", want, msg)
		}
	}
}
