package store

import "EthAdvisor/internal/model"

// Store persists trades, decisions and analysis runs.
type Store interface {
	InsertTrade(t *model.Trade) (int64, error)
	Trades() ([]model.Trade, error)
	ClearTrades() error

	InsertDecision(d *model.Decision) (int64, error)
	Decisions() ([]model.Decision, error)

	InsertAnalysis(a *model.Analysis) (int64, error)
	LatestAnalysis() (*model.Analysis, error)
	Analyses(limit int) ([]model.Analysis, error)

	Close() error
}
