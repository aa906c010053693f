package store

import (
	"sort"
	"sync"

	"EthAdvisor/internal/model"
)

// MemoryStore keeps everything in process memory. Used when no SQLite path
// is configured and in tests; data is lost on restart.
type MemoryStore struct {
	mu        sync.Mutex
	trades    []model.Trade
	decisions []model.Decision
	analyses  []model.Analysis
	nextID    int64
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{nextID: 1}
}

func (s *MemoryStore) id() int64 {
	id := s.nextID
	s.nextID++
	return id
}

func (s *MemoryStore) InsertTrade(t *model.Trade) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	stored := *t
	stored.ID = s.id()
	s.trades = append(s.trades, stored)
	return stored.ID, nil
}

func (s *MemoryStore) Trades() ([]model.Trade, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]model.Trade, len(s.trades))
	copy(out, s.trades)
	return out, nil
}

func (s *MemoryStore) ClearTrades() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.trades = nil
	return nil
}

func (s *MemoryStore) InsertDecision(d *model.Decision) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	stored := *d
	stored.ID = s.id()
	s.decisions = append(s.decisions, stored)
	return stored.ID, nil
}

func (s *MemoryStore) Decisions() ([]model.Decision, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]model.Decision, len(s.decisions))
	copy(out, s.decisions)
	return out, nil
}

func (s *MemoryStore) InsertAnalysis(a *model.Analysis) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	stored := *a
	stored.ID = s.id()
	s.analyses = append(s.analyses, stored)
	// Keep run-time order so backdated runs rank the same as in SQLite.
	sort.SliceStable(s.analyses, func(i, j int) bool {
		if s.analyses[i].RunAt.Equal(s.analyses[j].RunAt) {
			return s.analyses[i].ID < s.analyses[j].ID
		}
		return s.analyses[i].RunAt.Before(s.analyses[j].RunAt)
	})
	return stored.ID, nil
}

func (s *MemoryStore) LatestAnalysis() (*model.Analysis, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if len(s.analyses) == 0 {
		return nil, nil
	}
	latest := s.analyses[len(s.analyses)-1]
	return &latest, nil
}

func (s *MemoryStore) Analyses(limit int) ([]model.Analysis, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if limit <= 0 {
		limit = 10
	}
	n := len(s.analyses)
	if limit > n {
		limit = n
	}
	out := make([]model.Analysis, 0, limit)
	// Most recent first, matching the SQLite ordering.
	for i := n - 1; i >= n-limit; i-- {
		out = append(out, s.analyses[i])
	}
	return out, nil
}

func (s *MemoryStore) Close() error { return nil }
