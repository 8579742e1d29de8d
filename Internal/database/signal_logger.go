package datafeed

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/shopspring/decimal"

	"github.com/tealfox/abctrader/Internal/strategy/metrics"
	"github.com/tealfox/abctrader/Internal/strategy/signals"
)

// SignalRecord is a stored signal row.
type SignalRecord struct {
	ID          int64
	Symbol      string
	Signal      string
	Confidence  string
	Score       float64
	Price       string
	EntryLevel  string
	StopLoss    string
	TakeProfit  string
	RiskReward  float64
	Trend       string
	Retracement float64
	Reasoning   string
	CreatedAt   time.Time
}

// LogSignal persists a generated signal. Prices go through decimal so the
// stored NUMERIC values are exact.
func LogSignal(ctx context.Context, sig *signals.Signal) error {
	if DB == nil {
		return fmt.Errorf("database not initialized")
	}
	if sig == nil {
		return fmt.Errorf("nil signal")
	}

	price := decimal.NewFromFloat(sig.Price)
	entry := decimal.NewFromFloat(sig.EntryLevels[0])
	stop := decimal.NewFromFloat(sig.StopLoss)
	target := decimal.NewFromFloat(sig.TakeProfits[0])

	_, err := DB.ExecContext(ctx, `
		INSERT INTO signals (symbol, signal, confidence, score, price, entry_level,
			stop_loss, take_profit, risk_reward, trend, retracement, reasoning)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`,
		sig.Symbol, sig.Signal, sig.Confidence, sig.Score,
		price.String(), entry.String(), stop.String(), target.String(),
		sig.RiskReward, string(sig.Pattern.Trend), sig.Pattern.RetracementRatio, sig.Reasoning,
	)
	if err != nil {
		return fmt.Errorf("failed to log signal: %w", err)
	}

	log.Printf("✅ Signal logged: %s %s (%s) @ %s\n", sig.Signal, sig.Symbol, sig.Confidence, price.String())
	return nil
}

// GetRecentSignals returns the latest stored signals, newest first.
func GetRecentSignals(ctx context.Context, limit int) ([]SignalRecord, error) {
	if DB == nil {
		return nil, fmt.Errorf("database not initialized")
	}
	if limit <= 0 {
		limit = 50
	}

	rows, err := DB.QueryContext(ctx, `
		SELECT id, symbol, signal, confidence, score, price, entry_level,
			stop_loss, take_profit, risk_reward, trend, retracement, reasoning, created_at
		FROM signals ORDER BY created_at DESC LIMIT $1`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch signals: %w", err)
	}
	defer rows.Close()

	var records []SignalRecord
	for rows.Next() {
		var r SignalRecord
		if err := rows.Scan(&r.ID, &r.Symbol, &r.Signal, &r.Confidence, &r.Score,
			&r.Price, &r.EntryLevel, &r.StopLoss, &r.TakeProfit, &r.RiskReward,
			&r.Trend, &r.Retracement, &r.Reasoning, &r.CreatedAt); err != nil {
			return nil, err
		}
		records = append(records, r)
	}
	return records, rows.Err()
}

// LogBacktestRun persists the summary metrics of a completed backtest.
func LogBacktestRun(ctx context.Context, symbol string, res metrics.BacktestResults) error {
	if DB == nil {
		return fmt.Errorf("database not initialized")
	}

	initial := decimal.NewFromFloat(res.InitialCapital)
	final := decimal.NewFromFloat(res.FinalCapital)

	_, err := DB.ExecContext(ctx, `
		INSERT INTO backtest_runs (symbol, initial_capital, final_capital,
			total_return_pct, num_trades, win_rate, max_drawdown_pct,
			sharpe_ratio, profit_factor)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
		symbol, initial.String(), final.String(),
		res.TotalReturnPct, res.NumTrades, res.WinRate, res.MaxDrawdownPct,
		res.SharpeRatio, res.ProfitFactor,
	)
	if err != nil {
		return fmt.Errorf("failed to log backtest run: %w", err)
	}

	log.Printf("✅ Backtest logged: %s return %.2f%% over %d trades\n", symbol, res.TotalReturnPct, res.NumTrades)
	return nil
}
