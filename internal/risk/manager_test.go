package risk

import (
	"testing"

	"EthAdvisor/internal/model"
)

func newTestManager() *Manager {
	return NewManager(10000, 0.02, 0.25, 0.05, 0.5)
}

func TestPositionSize_RiskBased(t *testing.T) {
	m := newTestManager()
	// Entry 3000, stop 2850: risk $150/coin, $200 budget -> 1.333 coins ($4000),
	// which blows the $2500 exposure cap.
	pos, err := m.PositionSize(3000, 2850)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !pos.CappedByExposure {
		t.Error("expected position to be capped by exposure")
	}
	if pos.Dollars > 2500.01 {
		t.Errorf("position value %.2f exceeds exposure cap", pos.Dollars)
	}

	// A wide stop keeps the position under the cap.
	pos, err = m.PositionSize(3000, 1500)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if pos.CappedByExposure {
		t.Error("did not expect exposure cap with a wide stop")
	}
	if pos.RiskAmount != 200 {
		t.Errorf("expected $200 risk budget, got %.2f", pos.RiskAmount)
	}
}

func TestPositionSize_RejectsInvertedStop(t *testing.T) {
	m := newTestManager()
	if _, err := m.PositionSize(3000, 3100); err == nil {
		t.Error("expected error when stop is above entry")
	}
}

func TestStopLoss_MethodsAndRecommendation(t *testing.T) {
	m := newTestManager()
	entry := 3000.0

	params, err := m.Parameters(entry, 60, []float64{2900, 2700})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// All stops must sit below entry for a long.
	for _, s := range params.Stops {
		if s.Price >= entry {
			t.Errorf("stop %s at %.2f not below entry %.2f", s.Method, s.Price, entry)
		}
	}

	// ATR risk is 2*60/3000 = 4% <= 10%, so ATR should win.
	if params.Recommended != model.StopATR {
		t.Errorf("expected ATR-based stop recommended, got %s", params.Recommended)
	}
	if params.StopLoss != entry-120 {
		t.Errorf("expected stop at %.2f, got %.2f", entry-120, params.StopLoss)
	}

	// Targets must ascend above entry.
	if len(params.Targets) != len(DefaultRatios) {
		t.Fatalf("expected %d targets, got %d", len(DefaultRatios), len(params.Targets))
	}
	prev := entry
	for _, tgt := range params.Targets {
		if tgt.Price <= prev {
			t.Errorf("target at ratio %.1f (%.2f) not above %.2f", tgt.Ratio, tgt.Price, prev)
		}
		prev = tgt.Price
	}
}

func TestStopLoss_FallsBackToFixed(t *testing.T) {
	m := newTestManager()
	// No ATR, and the only support implies >10% risk.
	params, err := m.Parameters(3000, 0, []float64{2500})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if params.Recommended != model.StopFixed {
		t.Errorf("expected fixed stop fallback, got %s", params.Recommended)
	}
}

func TestExitParameters_StopsAboveEntry(t *testing.T) {
	m := newTestManager()
	entry := 3000.0

	params, err := m.ExitParameters(entry, 60, []float64{3100, 3400})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// All stops must sit above entry for a sell.
	for _, s := range params.Stops {
		if s.Price <= entry {
			t.Errorf("stop %s at %.2f not above entry %.2f", s.Method, s.Price, entry)
		}
	}

	// ATR risk is 2*60/3000 = 4% <= 10%, so ATR wins again.
	if params.Recommended != model.StopATR {
		t.Errorf("expected ATR-based stop recommended, got %s", params.Recommended)
	}
	if params.StopLoss != entry+120 {
		t.Errorf("expected stop at %.2f, got %.2f", entry+120, params.StopLoss)
	}

	// Targets must descend below entry.
	prev := entry
	for _, tgt := range params.Targets {
		if tgt.Price >= prev {
			t.Errorf("target at ratio %.1f (%.2f) not below %.2f", tgt.Ratio, tgt.Price, prev)
		}
		prev = tgt.Price
	}
}

func TestTrailingStop(t *testing.T) {
	m := newTestManager()

	// Underwater: initial stop untouched.
	stop, adjusted := m.TrailingStop(3000, 2900, 2850)
	if adjusted || stop != 2850 {
		t.Errorf("expected untouched stop underwater, got %.2f adjusted=%v", stop, adjusted)
	}

	// In profit: stop trails 0.5% behind price.
	stop, adjusted = m.TrailingStop(3000, 3300, 2850)
	if !adjusted {
		t.Error("expected trailing adjustment in profit")
	}
	want := 3300 * (1 - 0.5/100)
	if stop != want {
		t.Errorf("expected trailed stop %.2f, got %.2f", want, stop)
	}
	if stop < 2850 {
		t.Error("trailing stop fell below initial stop")
	}

	// Barely in profit: trailed level below initial stop keeps initial.
	stop, adjusted = m.TrailingStop(3000, 3001, 2999)
	if adjusted || stop != 2999 {
		t.Errorf("expected initial stop kept, got %.2f adjusted=%v", stop, adjusted)
	}
}

func TestExposure(t *testing.T) {
	m := newTestManager()

	fraction, excess := m.Exposure(0.5, 3000) // $1500 of $10000
	if fraction != 0.15 {
		t.Errorf("expected 15%% exposure, got %.2f", fraction)
	}
	if excess != 0 {
		t.Errorf("expected no excess under limit, got %f", excess)
	}

	fraction, excess = m.Exposure(2, 3000) // $6000 of $10000
	if fraction != 0.6 {
		t.Errorf("expected 60%% exposure, got %.2f", fraction)
	}
	// Need to shed $3500 at $3000/coin.
	if !almost(excess, 3500.0/3000.0) {
		t.Errorf("expected excess of %.4f coins, got %.4f", 3500.0/3000.0, excess)
	}
}

func almost(a, b float64) bool {
	d := a - b
	if d < 0 {
		d = -d
	}
	return d < 1e-9
}
