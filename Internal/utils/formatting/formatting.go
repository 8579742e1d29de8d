package formatting

import (
	"fmt"
	"strings"
	"time"

	"github.com/tealfox/abctrader/Internal/strategy/metrics"
	"github.com/tealfox/abctrader/Internal/strategy/signals"
)

// Separator returns a line separator of given width
func Separator(width int) string {
	return strings.Repeat("=", width)
}

// ParseDate parses a date string in multiple formats
func ParseDate(dateStr string) time.Time {
	formats := []string{
		"2006-01-02", // YYYY-MM-DD (standard)
		"02/01/2006", // DD/MM/YYYY
		"02.01.2006", // DD.MM.YYYY
		"01-02-2006", // MM-DD-YYYY (US format)
	}

	for _, format := range formats {
		if t, err := time.Parse(format, dateStr); err == nil {
			return t
		}
	}

	return time.Time{}
}

// FormatSignal renders a signal for console or Telegram output.
func FormatSignal(sig *signals.Signal) string {
	if sig == nil {
		return "❌ No signal"
	}

	emoji := "⏸️"
	if sig.Signal == signals.SignalBuy {
		emoji = "🟢"
	} else if sig.Signal == signals.SignalSell {
		emoji = "🔴"
	}

	if sig.Signal == signals.SignalHold {
		return fmt.Sprintf("%s %s HOLD — %s", emoji, sig.Symbol, sig.Reasoning)
	}

	return fmt.Sprintf(`%s %s %s (%s confidence, %.0f/10)
   Price: %.2f | R:R: %.2f
   Entries: %.2f / %.2f / %.2f / %.2f
   Stop: %.2f | Targets: %.2f / %.2f / %.2f
   Reason: %s`,
		emoji, sig.Symbol, sig.Signal, sig.Confidence, sig.Score,
		sig.Price, sig.RiskReward,
		sig.EntryLevels[0], sig.EntryLevels[1], sig.EntryLevels[2], sig.EntryLevels[3],
		sig.StopLoss, sig.TakeProfits[0], sig.TakeProfits[1], sig.TakeProfits[2],
		sig.Reasoning,
	)
}

// FormatBacktestResults renders a backtest summary report.
func FormatBacktestResults(symbol string, res metrics.BacktestResults) string {
	var b strings.Builder
	b.WriteString(Separator(50) + "\n")
	b.WriteString(fmt.Sprintf("Backtest: %s\n", symbol))
	b.WriteString(Separator(50) + "\n")
	b.WriteString(fmt.Sprintf("Capital:       %.2f -> %.2f\n", res.InitialCapital, res.FinalCapital))
	b.WriteString(fmt.Sprintf("Total return:  %.2f (%.2f%%)\n", res.TotalReturn, res.TotalReturnPct))
	b.WriteString(fmt.Sprintf("Trades:        %d (%d wins / %d losses)\n", res.NumTrades, res.WinningTrades, res.LosingTrades))
	b.WriteString(fmt.Sprintf("Win rate:      %.1f%%\n", res.WinRate))
	b.WriteString(fmt.Sprintf("Max drawdown:  %.2f%%\n", res.MaxDrawdownPct))
	b.WriteString(fmt.Sprintf("Sharpe:        %.2f\n", res.SharpeRatio))
	b.WriteString(fmt.Sprintf("Profit factor: %.2f\n", res.ProfitFactor))
	for _, t := range res.Trades {
		b.WriteString(fmt.Sprintf("  %s %s %d @ %.2f -> %s @ %.2f (PnL %.2f)\n",
			t.PositionType, t.EntryDate, t.Shares, t.EntryPrice, t.ExitDate, t.ExitPrice, t.PnL))
	}
	return b.String()
}
