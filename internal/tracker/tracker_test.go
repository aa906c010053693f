package tracker

import (
	"math"
	"testing"
	"time"

	"EthAdvisor/internal/model"
	"EthAdvisor/internal/store"
)

func newTestTracker() *Tracker {
	return New(store.NewMemoryStore())
}

func TestRecordTrade_Validation(t *testing.T) {
	tr := newTestTracker()

	if _, err := tr.RecordTrade("short", 3000, 1, time.Time{}, ""); err == nil {
		t.Error("expected error for invalid trade type")
	}
	if _, err := tr.RecordTrade(model.TradeBuy, 0, 1, time.Time{}, ""); err == nil {
		t.Error("expected error for zero price")
	}
	if _, err := tr.RecordTrade(model.TradeBuy, 3000, -1, time.Time{}, ""); err == nil {
		t.Error("expected error for negative amount")
	}

	trade, err := tr.RecordTrade(model.TradeBuy, 3000, 0.5, time.Time{}, "first buy")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if trade.Value != 1500 {
		t.Errorf("expected value 1500, got %f", trade.Value)
	}
	if trade.Date.IsZero() {
		t.Error("expected date to default to now")
	}
}

func TestTradeLog_GrowsByOneAndClears(t *testing.T) {
	tr := newTestTracker()

	for i := 1; i <= 4; i++ {
		if _, err := tr.RecordTrade(model.TradeBuy, 3000, 0.1, time.Time{}, ""); err != nil {
			t.Fatalf("record trade: %v", err)
		}
		trades, err := tr.Trades()
		if err != nil {
			t.Fatalf("list trades: %v", err)
		}
		if len(trades) != i {
			t.Fatalf("expected %d trades, got %d", i, len(trades))
		}
	}

	if err := tr.ClearTrades(); err != nil {
		t.Fatalf("clear: %v", err)
	}
	trades, err := tr.Trades()
	if err != nil {
		t.Fatalf("list trades: %v", err)
	}
	if len(trades) != 0 {
		t.Errorf("expected empty log after clear, got %d", len(trades))
	}
}

func TestPortfolioValue_AverageCost(t *testing.T) {
	tr := newTestTracker()

	// Buy 1 @ 2000 and 1 @ 3000: avg cost 2500.
	mustTrade(t, tr, model.TradeBuy, 2000, 1)
	mustTrade(t, tr, model.TradeBuy, 3000, 1)
	// Sell 1 @ 3500: realizes 1000 against the 2500 avg cost.
	mustTrade(t, tr, model.TradeSell, 3500, 1)

	p, err := tr.PortfolioValue(4000)
	if err != nil {
		t.Fatalf("portfolio value: %v", err)
	}

	if !almostEq(p.Holdings, 1) {
		t.Errorf("expected 1 coin held, got %f", p.Holdings)
	}
	if !almostEq(p.RealizedPL, 1000) {
		t.Errorf("expected realized P/L 1000, got %f", p.RealizedPL)
	}
	// Remaining coin carried at 2500, marked at 4000.
	if !almostEq(p.UnrealizedPL, 1500) {
		t.Errorf("expected unrealized P/L 1500, got %f", p.UnrealizedPL)
	}
	if !almostEq(p.TotalPL, 2500) {
		t.Errorf("expected total P/L 2500, got %f", p.TotalPL)
	}
	if !almostEq(p.ROI, 2500.0/5000.0) {
		t.Errorf("expected ROI 0.5, got %f", p.ROI)
	}
}

func TestPortfolioValue_EmptyLog(t *testing.T) {
	tr := newTestTracker()
	p, err := tr.PortfolioValue(3000)
	if err != nil {
		t.Fatalf("portfolio value: %v", err)
	}
	if p.Holdings != 0 || p.TotalPL != 0 || p.ROI != 0 {
		t.Errorf("expected zeroed portfolio, got %+v", p)
	}
}

func TestMetrics_DecisionAccuracy(t *testing.T) {
	tr := newTestTracker()

	// BUY at 3000, next decision at 3200 (+6.7%): correct.
	if _, err := tr.RecordDecision(model.SignalBuy, 3000, 25, ""); err != nil {
		t.Fatalf("record decision: %v", err)
	}
	// SELL at 3200, next decision at 3100 (-3.1%): correct.
	if _, err := tr.RecordDecision(model.SignalSell, 3200, 75, ""); err != nil {
		t.Fatalf("record decision: %v", err)
	}
	// HOLD at 3100, scored against current price 3120 (+0.6%): correct.
	if _, err := tr.RecordDecision(model.SignalHold, 3100, 50, ""); err != nil {
		t.Fatalf("record decision: %v", err)
	}

	m, err := tr.Metrics(3120)
	if err != nil {
		t.Fatalf("metrics: %v", err)
	}
	if m.DecisionsScored != 3 {
		t.Fatalf("expected 3 decisions scored, got %d", m.DecisionsScored)
	}
	if !almostEq(m.DecisionAccuracy, 1.0) {
		t.Errorf("expected perfect accuracy, got %f", m.DecisionAccuracy)
	}
	if m.SignalCounts[model.SignalBuy] != 1 || m.SignalCounts[model.SignalHold] != 1 {
		t.Errorf("unexpected signal counts: %v", m.SignalCounts)
	}
}

func TestMetrics_TradeCounts(t *testing.T) {
	tr := newTestTracker()
	mustTrade(t, tr, model.TradeBuy, 3000, 1)
	mustTrade(t, tr, model.TradeBuy, 3100, 1)
	mustTrade(t, tr, model.TradeSell, 3200, 1)

	m, err := tr.Metrics(3200)
	if err != nil {
		t.Fatalf("metrics: %v", err)
	}
	if m.TotalTrades != 3 || m.BuyTrades != 2 || m.SellTrades != 1 {
		t.Errorf("unexpected trade counts: total=%d buy=%d sell=%d", m.TotalTrades, m.BuyTrades, m.SellTrades)
	}
}

func mustTrade(t *testing.T, tr *Tracker, typ model.TradeType, price, amount float64) {
	t.Helper()
	if _, err := tr.RecordTrade(typ, price, amount, time.Time{}, ""); err != nil {
		t.Fatalf("record trade: %v", err)
	}
}

func almostEq(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}
