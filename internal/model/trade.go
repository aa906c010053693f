package model

import "time"

// TradeType is the side of a recorded trade.
type TradeType string

const (
	TradeBuy  TradeType = "buy"
	TradeSell TradeType = "sell"
)

// Trade is a user-recorded transaction. Create-only; the only bulk
// operation is clearing the whole log.
type Trade struct {
	ID     int64     `json:"id"`
	Date   time.Time `json:"date"`
	Type   TradeType `json:"type"`
	Price  float64   `json:"price"`
	Amount float64   `json:"amount"`
	Value  float64   `json:"value"`
	Notes  string    `json:"notes"`
}

// Decision records the recommendation issued at a point in time so its
// accuracy can be evaluated against later prices.
type Decision struct {
	ID     int64     `json:"id"`
	Date   time.Time `json:"date"`
	Signal Signal    `json:"signal"`
	Price  float64   `json:"price"`
	RSI    float64   `json:"rsi"`
	Reason string    `json:"reason"`
}

// Portfolio summarizes holdings derived from the trade log.
type Portfolio struct {
	Holdings     float64 `json:"holdings"`
	Invested     float64 `json:"invested"`
	Proceeds     float64 `json:"proceeds"`
	AvgCost      float64 `json:"avg_cost"`
	CurrentValue float64 `json:"current_value"`
	RealizedPL   float64 `json:"realized_pl"`
	UnrealizedPL float64 `json:"unrealized_pl"`
	TotalPL      float64 `json:"total_pl"`
	ROI          float64 `json:"roi"`
}

// PerformanceMetrics is the extended performance report.
type PerformanceMetrics struct {
	Portfolio Portfolio `json:"portfolio"`

	TotalTrades int `json:"total_trades"`
	BuyTrades   int `json:"buy_trades"`
	SellTrades  int `json:"sell_trades"`

	FirstTradeDate time.Time `json:"first_trade_date"`
	LastTradeDate  time.Time `json:"last_trade_date"`
	DaysInvested   int       `json:"days_invested"`

	AnnualizedReturn float64 `json:"annualized_return"`
	BenchmarkReturn  float64 `json:"benchmark_return"`
	ExcessReturn     float64 `json:"excess_return"`

	Volatility           float64 `json:"volatility"`
	AnnualizedVolatility float64 `json:"annualized_volatility"`
	SharpeRatio          float64 `json:"sharpe_ratio"`
	MaxDrawdown          float64 `json:"max_drawdown"`

	SignalCounts     map[Signal]int `json:"signal_counts,omitempty"`
	DecisionAccuracy float64        `json:"decision_accuracy"`
	DecisionsScored  int            `json:"decisions_scored"`
}
