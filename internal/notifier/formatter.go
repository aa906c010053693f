package notifier

import (
	"fmt"
	"strings"

	"EthAdvisor/internal/model"
)

func signalEmoji(s model.Signal) string {
	switch s {
	case model.SignalStrongBuy:
		return "🟢🟢"
	case model.SignalBuy:
		return "🟢"
	case model.SignalSell:
		return "🔴"
	case model.SignalStrongSell:
		return "🔴🔴"
	default:
		return "⚪"
	}
}

// FormatAnalysisReport formats an analysis run into a Telegram message.
func FormatAnalysisReport(a *model.Analysis) string {
	var b strings.Builder

	ind := a.Indicators
	rec := a.Recommendation

	b.WriteString(fmt.Sprintf("📊 <b>ETH Analysis</b> | %s\n\n", a.RunAt.Format("2006-01-02 15:04")))

	b.WriteString(fmt.Sprintf("Price: $%.2f (%+.2f%% 24h, %+.2f%% 7d)\n\n",
		a.Snapshot.Price, a.Snapshot.Change24h, a.Snapshot.Change7d))

	b.WriteString("📈 <b>Indicators:</b>\n")
	b.WriteString(fmt.Sprintf("  RSI(14): %.1f\n", ind.RSI))
	b.WriteString(fmt.Sprintf("  MACD: %s (hist %+.2f)\n", ind.MACDSignal, ind.Histogram))
	if ind.MAStatus != model.MAInsufficient {
		b.WriteString(fmt.Sprintf("  MA50/MA200: %.2f / %.2f (%s)\n", ind.MAShort, ind.MALong, ind.MAStatus))
	}
	if len(ind.SupportLevels) > 0 {
		b.WriteString(fmt.Sprintf("  Support: $%.2f\n", ind.SupportLevels[0]))
	}
	if len(ind.ResistanceLevels) > 0 {
		b.WriteString(fmt.Sprintf("  Resistance: $%.2f\n", ind.ResistanceLevels[0]))
	}
	b.WriteString("\n")

	b.WriteString(fmt.Sprintf("%s <b>Signal: %s</b> (buy %.1f / sell %.1f)\n", signalEmoji(rec.Signal), rec.Signal, rec.BuyScore, rec.SellScore))
	for _, r := range rec.Reasons {
		b.WriteString(fmt.Sprintf("  • %s\n", r))
	}

	if a.Risk != nil {
		b.WriteString("\n🛡 <b>Risk:</b>\n")
		b.WriteString(fmt.Sprintf("  Stop-loss: $%.2f (%s)\n", a.Risk.StopLoss, a.Risk.Recommended))
		b.WriteString(fmt.Sprintf("  Position: %.4f ETH ($%.0f, %.1f%% of portfolio)\n",
			a.Risk.Position.Coins, a.Risk.Position.Dollars, a.Risk.Position.PortfolioPercentage*100))
		for _, t := range a.Risk.Targets {
			b.WriteString(fmt.Sprintf("  Target %.1fR: $%.2f (%+.1f%%)\n", t.Ratio, t.Price, t.ProfitPercentage*100))
		}
	}

	return b.String()
}

// FormatSignalChange formats an alert for a recommendation flip.
func FormatSignalChange(prev, curr model.Signal, price float64) string {
	return fmt.Sprintf("%s <b>Signal changed: %s → %s</b>\nETH at $%.2f",
		signalEmoji(curr), prev, curr, price)
}

// FormatOverboughtWarning formats the take-profit warning for extreme RSI.
func FormatOverboughtWarning(rsi, price float64) string {
	return fmt.Sprintf("⚠️ <b>RSI extreme: %.1f</b>\nETH at $%.2f. Consider taking partial profits.", rsi, price)
}

// FormatExposureWarning formats the over-exposure alert from the daily
// summary check.
func FormatExposureWarning(fraction, excessCoins, price float64) string {
	return fmt.Sprintf(
		"⚠️ <b>Exposure at %.0f%% of portfolio</b>\nSelling %.4f ETH (≈$%.0f) would bring it back under the limit.",
		fraction*100, excessCoins, excessCoins*price)
}

// FormatPerformanceSummary formats the daily performance digest.
func FormatPerformanceSummary(m *model.PerformanceMetrics) string {
	var b strings.Builder

	b.WriteString("📦 <b>Portfolio Summary</b>\n\n")

	p := m.Portfolio
	b.WriteString(fmt.Sprintf("Holdings: %.4f ETH ($%.2f)\n", p.Holdings, p.CurrentValue))
	b.WriteString(fmt.Sprintf("Invested: $%.2f | Avg cost: $%.2f\n", p.Invested, p.AvgCost))
	b.WriteString(fmt.Sprintf("Realized P/L: %+.2f | Unrealized: %+.2f\n", p.RealizedPL, p.UnrealizedPL))
	b.WriteString(fmt.Sprintf("ROI: %+.1f%%\n\n", p.ROI*100))

	b.WriteString(fmt.Sprintf("Trades: %d (%d buys, %d sells) over %d days\n",
		m.TotalTrades, m.BuyTrades, m.SellTrades, m.DaysInvested))
	if m.DaysInvested > 0 {
		b.WriteString(fmt.Sprintf("Annualized: %+.1f%% vs benchmark %+.1f%%\n",
			m.AnnualizedReturn*100, m.BenchmarkReturn*100))
	}
	if m.DecisionsScored > 0 {
		b.WriteString(fmt.Sprintf("Decision accuracy: %.0f%% (%d scored)\n",
			m.DecisionAccuracy*100, m.DecisionsScored))
	}

	return b.String()
}
