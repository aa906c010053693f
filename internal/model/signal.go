package model

import "time"

// Signal is the final investment recommendation label.
type Signal string

const (
	SignalStrongBuy  Signal = "STRONG_BUY"
	SignalBuy        Signal = "BUY"
	SignalHold       Signal = "HOLD"
	SignalSell       Signal = "SELL"
	SignalStrongSell Signal = "STRONG_SELL"
)

// FactorScore represents a single indicator's contribution to the recommendation.
type FactorScore struct {
	Name     string  `json:"name"`
	Score    float64 `json:"score"` // positive = buy pressure, negative = sell pressure
	Weight   float64 `json:"weight"`
	Weighted float64 `json:"weighted"`
	Reason   string  `json:"reason"`
}

// Recommendation is the output of the advisor engine.
type Recommendation struct {
	Signal    Signal        `json:"signal"`
	BuyScore  float64       `json:"buy_score"`
	SellScore float64       `json:"sell_score"`
	Factors   []FactorScore `json:"factors"`
	Reasons   []string      `json:"reasons"`
}

// StopMethod identifies how a stop-loss level was derived.
type StopMethod string

const (
	StopFixed   StopMethod = "fixed_percentage"
	StopATR     StopMethod = "atr_based"
	StopSupport StopMethod = "support_based"
)

// StopLevel is one stop-loss candidate.
type StopLevel struct {
	Method         StopMethod `json:"method"`
	Price          float64    `json:"price"`
	RiskAmount     float64    `json:"risk_amount"`
	RiskPercentage float64    `json:"risk_percentage"`
	Explanation    string     `json:"explanation"`
}

// ProfitTarget is a take-profit level at a fixed risk-reward ratio.
type ProfitTarget struct {
	Ratio            float64 `json:"risk_reward_ratio"`
	Price            float64 `json:"price"`
	ProfitAmount     float64 `json:"profit_amount"`
	ProfitPercentage float64 `json:"profit_percentage"`
}

// PositionSize is the sizing result for a prospective entry.
type PositionSize struct {
	Coins               float64 `json:"coins"`
	Dollars             float64 `json:"dollars"`
	RiskAmount          float64 `json:"risk_amount"`
	RiskPerCoin         float64 `json:"risk_per_coin"`
	PortfolioPercentage float64 `json:"portfolio_percentage"`
	CappedByExposure    bool    `json:"capped_by_exposure"`
	Explanation         string  `json:"explanation"`
}

// RiskParameters bundles the risk outputs attached to a recommendation.
type RiskParameters struct {
	EntryPrice  float64        `json:"entry_price"`
	Stops       []StopLevel    `json:"stops"`
	Recommended StopMethod     `json:"recommended_stop"`
	StopLoss    float64        `json:"stop_loss"`
	Targets     []ProfitTarget `json:"take_profit_targets"`
	Position    PositionSize   `json:"position"`
}

// Analysis is the composite result of one analysis run, persisted per run.
type Analysis struct {
	ID             int64           `json:"id"`
	RunAt          time.Time       `json:"run_at"`
	Snapshot       PriceSnapshot   `json:"snapshot"`
	Indicators     IndicatorSet    `json:"indicators"`
	Recommendation Recommendation  `json:"recommendation"`
	Risk           *RiskParameters `json:"risk,omitempty"`
}
