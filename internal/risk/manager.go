package risk

import (
	"errors"
	"fmt"
	"math"

	"EthAdvisor/internal/model"
)

// Manager applies the portfolio-level risk limits to trade setups.
type Manager struct {
	PortfolioValue  float64
	MaxRiskPerTrade float64 // fraction of portfolio risked per trade
	MaxExposure     float64 // max fraction of portfolio held in ETH
	StopPercentage  float64 // fixed-percentage stop distance
	TrailPercentage float64 // trailing stop distance in percent
}

// NewManager creates a Manager with the given limits.
func NewManager(portfolioValue, maxRiskPerTrade, maxExposure, stopPct, trailPct float64) *Manager {
	return &Manager{
		PortfolioValue:  portfolioValue,
		MaxRiskPerTrade: maxRiskPerTrade,
		MaxExposure:     maxExposure,
		StopPercentage:  stopPct,
		TrailPercentage: trailPct,
	}
}

// PositionSize computes how many coins to buy for a long entry given its
// stop, risking at most MaxRiskPerTrade of the portfolio and never
// exceeding MaxExposure of it in position value.
func (m *Manager) PositionSize(entry, stop float64) (*model.PositionSize, error) {
	if entry <= stop {
		return nil, errors.New("entry price must be above stop price for long positions")
	}

	riskAmount := m.PortfolioValue * m.MaxRiskPerTrade
	riskPerCoin := entry - stop

	coins := riskAmount / riskPerCoin
	dollars := coins * entry

	maxDollars := m.PortfolioValue * m.MaxExposure
	capped := false
	explanation := fmt.Sprintf(
		"Position of $%.2f respects the %.1f%% risk per trade ($%.2f) and the %.1f%% exposure limit ($%.2f)",
		dollars, m.MaxRiskPerTrade*100, riskAmount, m.MaxExposure*100, maxDollars)

	if dollars > maxDollars {
		dollars = maxDollars
		coins = dollars / entry
		actualRisk := coins * riskPerCoin
		capped = true
		explanation = fmt.Sprintf(
			"Position reduced to $%.2f to respect the %.1f%% exposure limit; actual risk $%.2f (%.2f%% of portfolio)",
			dollars, m.MaxExposure*100, actualRisk, actualRisk/m.PortfolioValue*100)
	}

	return &model.PositionSize{
		Coins:               coins,
		Dollars:             dollars,
		RiskAmount:          riskAmount,
		RiskPerCoin:         riskPerCoin,
		PortfolioPercentage: dollars / m.PortfolioValue,
		CappedByExposure:    capped,
		Explanation:         explanation,
	}, nil
}

// StopLoss derives stop-loss candidates for a long entry: a fixed
// percentage below entry, an ATR-based distance when an ATR is available,
// and the nearest support level below entry when one exists. The
// recommended method prefers ATR, then support, as long as the implied
// risk stays at or under 10%; fixed percentage is the fallback.
func (m *Manager) StopLoss(entry, atr float64, supportLevels []float64) []model.StopLevel {
	stops := make([]model.StopLevel, 0, 3)

	fixedPrice := entry * (1 - m.StopPercentage)
	stops = append(stops, model.StopLevel{
		Method:         model.StopFixed,
		Price:          fixedPrice,
		RiskAmount:     entry - fixedPrice,
		RiskPercentage: m.StopPercentage,
		Explanation:    fmt.Sprintf("Fixed %.1f%% stop below entry", m.StopPercentage*100),
	})

	if atr > 0 {
		const atrMultiplier = 2.0
		price := entry - atr*atrMultiplier
		if price > 0 {
			stops = append(stops, model.StopLevel{
				Method:         model.StopATR,
				Price:          price,
				RiskAmount:     entry - price,
				RiskPercentage: (entry - price) / entry,
				Explanation:    fmt.Sprintf("%.1fx ATR ($%.2f) below entry", atrMultiplier, atr),
			})
		}
	}

	var nearest float64
	for _, s := range supportLevels {
		if s < entry && s > nearest {
			nearest = s
		}
	}
	if nearest > 0 {
		stops = append(stops, model.StopLevel{
			Method:         model.StopSupport,
			Price:          nearest,
			RiskAmount:     entry - nearest,
			RiskPercentage: (entry - nearest) / entry,
			Explanation:    fmt.Sprintf("Nearest support level at $%.2f", nearest),
		})
	}

	return stops
}

// recommendStop picks the preferred method from the candidate list.
func recommendStop(stops []model.StopLevel) model.StopMethod {
	const maxReasonableRisk = 0.10
	for _, preferred := range []model.StopMethod{model.StopATR, model.StopSupport} {
		for _, s := range stops {
			if s.Method == preferred && s.RiskPercentage <= maxReasonableRisk {
				return preferred
			}
		}
	}
	return model.StopFixed
}

// TakeProfitTargets computes targets at the given risk-reward ratios above
// a long entry.
func TakeProfitTargets(entry, stop float64, ratios []float64) []model.ProfitTarget {
	risk := entry - stop
	targets := make([]model.ProfitTarget, 0, len(ratios))
	for _, r := range ratios {
		price := entry + risk*r
		targets = append(targets, model.ProfitTarget{
			Ratio:            r,
			Price:            price,
			ProfitAmount:     price - entry,
			ProfitPercentage: (price - entry) / entry,
		})
	}
	return targets
}

// DefaultRatios are the standard R-multiple targets.
var DefaultRatios = []float64{1.5, 2.5, 3.5}

// Parameters assembles the full risk output for a prospective long entry.
func (m *Manager) Parameters(entry, atr float64, supportLevels []float64) (*model.RiskParameters, error) {
	stops := m.StopLoss(entry, atr, supportLevels)
	recommended := recommendStop(stops)

	var stopPrice float64
	for _, s := range stops {
		if s.Method == recommended {
			stopPrice = s.Price
			break
		}
	}

	position, err := m.PositionSize(entry, stopPrice)
	if err != nil {
		return nil, fmt.Errorf("position size: %w", err)
	}

	return &model.RiskParameters{
		EntryPrice:  entry,
		Stops:       stops,
		Recommended: recommended,
		StopLoss:    stopPrice,
		Targets:     TakeProfitTargets(entry, stopPrice, DefaultRatios),
		Position:    *position,
	}, nil
}

// exitStops derives stop candidates for a sell setup. Every candidate sits
// above entry: a fixed percentage, an ATR distance, and the nearest
// resistance level overhead.
func (m *Manager) exitStops(entry, atr float64, resistanceLevels []float64) []model.StopLevel {
	stops := make([]model.StopLevel, 0, 3)

	fixedPrice := entry * (1 + m.StopPercentage)
	stops = append(stops, model.StopLevel{
		Method:         model.StopFixed,
		Price:          fixedPrice,
		RiskAmount:     fixedPrice - entry,
		RiskPercentage: m.StopPercentage,
		Explanation:    fmt.Sprintf("Fixed %.1f%% stop above entry", m.StopPercentage*100),
	})

	if atr > 0 {
		const atrMultiplier = 2.0
		price := entry + atr*atrMultiplier
		stops = append(stops, model.StopLevel{
			Method:         model.StopATR,
			Price:          price,
			RiskAmount:     price - entry,
			RiskPercentage: (price - entry) / entry,
			Explanation:    fmt.Sprintf("%.1fx ATR ($%.2f) above entry", atrMultiplier, atr),
		})
	}

	nearest := math.Inf(1)
	for _, r := range resistanceLevels {
		if r > entry && r < nearest {
			nearest = r
		}
	}
	if !math.IsInf(nearest, 1) {
		stops = append(stops, model.StopLevel{
			Method:         model.StopSupport,
			Price:          nearest,
			RiskAmount:     nearest - entry,
			RiskPercentage: (nearest - entry) / entry,
			Explanation:    fmt.Sprintf("Nearest resistance level at $%.2f", nearest),
		})
	}

	return stops
}

// ExitParameters assembles the risk output for a sell signal. The stop sits
// above entry and the targets project downward.
func (m *Manager) ExitParameters(entry, atr float64, resistanceLevels []float64) (*model.RiskParameters, error) {
	if entry <= 0 {
		return nil, errors.New("entry price must be positive")
	}
	stops := m.exitStops(entry, atr, resistanceLevels)
	recommended := recommendStop(stops)

	var stopPrice float64
	for _, s := range stops {
		if s.Method == recommended {
			stopPrice = s.Price
			break
		}
	}

	riskAmount := m.PortfolioValue * m.MaxRiskPerTrade
	riskPerCoin := stopPrice - entry
	coins := riskAmount / riskPerCoin
	dollars := coins * entry

	maxDollars := m.PortfolioValue * m.MaxExposure
	capped := false
	if dollars > maxDollars {
		dollars = maxDollars
		coins = dollars / entry
		capped = true
	}
	position := model.PositionSize{
		Coins:               coins,
		Dollars:             dollars,
		RiskAmount:          riskAmount,
		RiskPerCoin:         riskPerCoin,
		PortfolioPercentage: dollars / m.PortfolioValue,
		CappedByExposure:    capped,
		Explanation: fmt.Sprintf(
			"Exit sizing for $%.2f with the stop $%.2f overhead", dollars, stopPrice),
	}

	risk := stopPrice - entry
	targets := make([]model.ProfitTarget, 0, len(DefaultRatios))
	for _, r := range DefaultRatios {
		price := entry - risk*r
		targets = append(targets, model.ProfitTarget{
			Ratio:            r,
			Price:            price,
			ProfitAmount:     entry - price,
			ProfitPercentage: (entry - price) / entry,
		})
	}

	return &model.RiskParameters{
		EntryPrice:  entry,
		Stops:       stops,
		Recommended: recommended,
		StopLoss:    stopPrice,
		Targets:     targets,
		Position:    position,
	}, nil
}

// TrailingStop raises the stop as price moves into profit. The stop never
// moves below the initial stop, and is left untouched while the position
// is underwater.
func (m *Manager) TrailingStop(entry, current, initialStop float64) (stop float64, adjusted bool) {
	if current <= entry {
		return initialStop, false
	}
	trailed := current * (1 - m.TrailPercentage/100)
	if trailed > initialStop {
		return trailed, true
	}
	return initialStop, false
}

// Exposure reports the current ETH exposure and, when over the limit, how
// many coins would need to be sold to get back under it.
func (m *Manager) Exposure(holdings, price float64) (fraction float64, excessCoins float64) {
	value := holdings * price
	fraction = value / m.PortfolioValue
	if fraction > m.MaxExposure {
		maxValue := m.PortfolioValue * m.MaxExposure
		excessCoins = (value - maxValue) / price
		excessCoins = math.Max(excessCoins, 0)
	}
	return fraction, excessCoins
}
