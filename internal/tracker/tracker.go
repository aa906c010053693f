package tracker

import (
	"fmt"
	"math"
	"sync"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"EthAdvisor/internal/model"
	"EthAdvisor/internal/store"
)

// Tracker maintains the trade and decision logs and derives portfolio
// figures from them.
type Tracker struct {
	mu     sync.Mutex
	store  store.Store
	logger zerolog.Logger
}

// New creates a Tracker backed by the given store.
func New(s store.Store) *Tracker {
	return &Tracker{
		store:  s,
		logger: log.With().Str("component", "tracker").Logger(),
	}
}

// RecordTrade validates and appends a trade to the log.
func (t *Tracker) RecordTrade(tradeType model.TradeType, price, amount float64, date time.Time, notes string) (*model.Trade, error) {
	if tradeType != model.TradeBuy && tradeType != model.TradeSell {
		return nil, fmt.Errorf("invalid trade type %q", tradeType)
	}
	if price <= 0 {
		return nil, fmt.Errorf("price must be positive")
	}
	if amount <= 0 {
		return nil, fmt.Errorf("amount must be positive")
	}
	if date.IsZero() {
		date = time.Now()
	}

	trade := &model.Trade{
		Date:   date,
		Type:   tradeType,
		Price:  price,
		Amount: amount,
		Value:  price * amount,
		Notes:  notes,
	}

	t.mu.Lock()
	defer t.mu.Unlock()

	id, err := t.store.InsertTrade(trade)
	if err != nil {
		return nil, fmt.Errorf("record trade: %w", err)
	}
	trade.ID = id

	t.logger.Info().
		Str("type", string(tradeType)).
		Float64("price", price).
		Float64("amount", amount).
		Msg("trade recorded")
	return trade, nil
}

// Trades returns the full trade log in chronological order.
func (t *Tracker) Trades() ([]model.Trade, error) {
	return t.store.Trades()
}

// ClearTrades empties the trade log.
func (t *Tracker) ClearTrades() error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if err := t.store.ClearTrades(); err != nil {
		return fmt.Errorf("clear trades: %w", err)
	}
	t.logger.Info().Msg("trade log cleared")
	return nil
}

// RecordDecision appends a recommendation decision for later accuracy scoring.
func (t *Tracker) RecordDecision(signal model.Signal, price, rsi float64, reason string) (*model.Decision, error) {
	d := &model.Decision{
		Date:   time.Now(),
		Signal: signal,
		Price:  price,
		RSI:    rsi,
		Reason: reason,
	}

	t.mu.Lock()
	defer t.mu.Unlock()

	id, err := t.store.InsertDecision(d)
	if err != nil {
		return nil, fmt.Errorf("record decision: %w", err)
	}
	d.ID = id
	return d, nil
}

// Decisions returns the decision log in chronological order.
func (t *Tracker) Decisions() ([]model.Decision, error) {
	return t.store.Decisions()
}

// PortfolioValue derives holdings and P/L from the trade log using an
// average-cost basis: sells realize (price - avg cost) per coin, the
// remainder is marked to the current price.
func (t *Tracker) PortfolioValue(currentPrice float64) (*model.Portfolio, error) {
	trades, err := t.store.Trades()
	if err != nil {
		return nil, fmt.Errorf("load trades: %w", err)
	}

	var holdings, invested, proceeds, costBasis, realized float64
	for _, tr := range trades {
		switch tr.Type {
		case model.TradeBuy:
			holdings += tr.Amount
			invested += tr.Value
			costBasis += tr.Value
		case model.TradeSell:
			avgCost := 0.0
			if holdings > 0 {
				avgCost = costBasis / holdings
			}
			sold := math.Min(tr.Amount, holdings)
			realized += (tr.Price - avgCost) * sold
			costBasis -= avgCost * sold
			holdings -= sold
			proceeds += tr.Value
		}
	}

	avgCost := 0.0
	if holdings > 0 {
		avgCost = costBasis / holdings
	}
	currentValue := holdings * currentPrice
	unrealized := currentValue - costBasis

	p := &model.Portfolio{
		Holdings:     holdings,
		Invested:     invested,
		Proceeds:     proceeds,
		AvgCost:      avgCost,
		CurrentValue: currentValue,
		RealizedPL:   realized,
		UnrealizedPL: unrealized,
		TotalPL:      realized + unrealized,
	}
	if invested > 0 {
		p.ROI = p.TotalPL / invested
	}
	return p, nil
}
