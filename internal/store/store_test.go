package store

import (
	"path/filepath"
	"testing"
	"time"

	"EthAdvisor/internal/model"
)

func testStores(t *testing.T) map[string]Store {
	t.Helper()
	sqlite, err := NewSQLiteStore(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("open sqlite store: %v", err)
	}
	t.Cleanup(func() { sqlite.Close() })
	return map[string]Store{
		"memory": NewMemoryStore(),
		"sqlite": sqlite,
	}
}

func TestAnalyses_BackdatedRunRanksByRunTime(t *testing.T) {
	for name, s := range testStores(t) {
		t.Run(name, func(t *testing.T) {
			now := time.Now().Truncate(time.Second)
			if _, err := s.InsertAnalysis(&model.Analysis{
				RunAt:    now,
				Snapshot: model.PriceSnapshot{Price: 3100},
			}); err != nil {
				t.Fatalf("insert analysis: %v", err)
			}
			// Inserted later but ran earlier; must not become the latest.
			if _, err := s.InsertAnalysis(&model.Analysis{
				RunAt:    now.Add(-time.Hour),
				Snapshot: model.PriceSnapshot{Price: 3000},
			}); err != nil {
				t.Fatalf("insert backdated analysis: %v", err)
			}

			latest, err := s.LatestAnalysis()
			if err != nil {
				t.Fatalf("latest analysis: %v", err)
			}
			if latest == nil || latest.Snapshot.Price != 3100 {
				t.Errorf("latest should be the most recent run, got %+v", latest)
			}

			analyses, err := s.Analyses(2)
			if err != nil {
				t.Fatalf("list analyses: %v", err)
			}
			if len(analyses) != 2 || analyses[0].Snapshot.Price != 3100 || analyses[1].Snapshot.Price != 3000 {
				t.Errorf("expected run-time descending order, got %+v", analyses)
			}
		})
	}
}

func TestTradeLog_AppendAndClear(t *testing.T) {
	for name, s := range testStores(t) {
		t.Run(name, func(t *testing.T) {
			trades, err := s.Trades()
			if err != nil {
				t.Fatalf("list trades: %v", err)
			}
			if len(trades) != 0 {
				t.Fatalf("expected empty log, got %d trades", len(trades))
			}

			for i := 1; i <= 3; i++ {
				_, err := s.InsertTrade(&model.Trade{
					Date:   time.Now().Add(time.Duration(i) * time.Minute),
					Type:   model.TradeBuy,
					Price:  3000,
					Amount: 0.5,
					Value:  1500,
					Notes:  "test",
				})
				if err != nil {
					t.Fatalf("insert trade: %v", err)
				}
				trades, err = s.Trades()
				if err != nil {
					t.Fatalf("list trades: %v", err)
				}
				if len(trades) != i {
					t.Fatalf("expected %d trades after %d inserts, got %d", i, i, len(trades))
				}
			}

			if err := s.ClearTrades(); err != nil {
				t.Fatalf("clear trades: %v", err)
			}
			trades, err = s.Trades()
			if err != nil {
				t.Fatalf("list trades: %v", err)
			}
			if len(trades) != 0 {
				t.Errorf("expected empty log after clear, got %d", len(trades))
			}
		})
	}
}

func TestDecisions_Ordering(t *testing.T) {
	for name, s := range testStores(t) {
		t.Run(name, func(t *testing.T) {
			base := time.Now().Truncate(time.Second)
			for i, sig := range []model.Signal{model.SignalBuy, model.SignalHold, model.SignalSell} {
				_, err := s.InsertDecision(&model.Decision{
					Date:   base.Add(time.Duration(i) * time.Hour),
					Signal: sig,
					Price:  3000 + float64(i)*10,
					RSI:    50,
				})
				if err != nil {
					t.Fatalf("insert decision: %v", err)
				}
			}
			decisions, err := s.Decisions()
			if err != nil {
				t.Fatalf("list decisions: %v", err)
			}
			if len(decisions) != 3 {
				t.Fatalf("expected 3 decisions, got %d", len(decisions))
			}
			if decisions[0].Signal != model.SignalBuy || decisions[2].Signal != model.SignalSell {
				t.Error("expected decisions in chronological order")
			}
		})
	}
}

func TestAnalyses_LatestAndLimit(t *testing.T) {
	for name, s := range testStores(t) {
		t.Run(name, func(t *testing.T) {
			latest, err := s.LatestAnalysis()
			if err != nil {
				t.Fatalf("latest analysis: %v", err)
			}
			if latest != nil {
				t.Fatal("expected nil latest analysis in empty store")
			}

			base := time.Now().Truncate(time.Second)
			for i := 0; i < 5; i++ {
				_, err := s.InsertAnalysis(&model.Analysis{
					RunAt:    base.Add(time.Duration(i) * time.Minute),
					Snapshot: model.PriceSnapshot{Price: 3000 + float64(i)},
					Recommendation: model.Recommendation{
						Signal: model.SignalHold,
					},
				})
				if err != nil {
					t.Fatalf("insert analysis: %v", err)
				}
			}

			latest, err = s.LatestAnalysis()
			if err != nil {
				t.Fatalf("latest analysis: %v", err)
			}
			if latest == nil || latest.Snapshot.Price != 3004 {
				t.Errorf("expected most recent analysis, got %+v", latest)
			}

			analyses, err := s.Analyses(3)
			if err != nil {
				t.Fatalf("list analyses: %v", err)
			}
			if len(analyses) != 3 {
				t.Fatalf("expected 3 analyses, got %d", len(analyses))
			}
			if analyses[0].Snapshot.Price != 3004 {
				t.Error("expected newest analysis first")
			}
		})
	}
}
