package metrics

import (
	"math"

	"github.com/tealfox/abctrader/Internal/utils"
)

// BacktestResults is the immutable aggregate view of a completed run,
// recomputed from the full trade list plus the capital endpoints.
type BacktestResults struct {
	InitialCapital float64
	FinalCapital   float64
	TotalReturn    float64
	TotalReturnPct float64
	NumTrades      int
	WinningTrades  int
	LosingTrades   int
	WinRate        float64
	MaxDrawdownPct float64
	SharpeRatio    float64
	ProfitFactor   float64
	Trades         []Trade
}

// ComputeResults derives every aggregate metric. Zero-trade runs produce
// zeros rather than dividing by zero.
func ComputeResults(initialCapital, finalCapital float64, trades []Trade) BacktestResults {
	res := BacktestResults{
		InitialCapital: initialCapital,
		FinalCapital:   finalCapital,
		TotalReturn:    finalCapital - initialCapital,
		Trades:         trades,
		NumTrades:      len(trades),
	}
	if initialCapital != 0 {
		res.TotalReturnPct = (res.TotalReturn / initialCapital) * 100
	}

	for _, t := range trades {
		if t.PnL > 0 {
			res.WinningTrades++
		} else if t.PnL < 0 {
			res.LosingTrades++
		}
	}
	res.WinRate = CalculateWinRate(trades)
	res.MaxDrawdownPct = CalculateMaxDrawdown(initialCapital, trades)
	res.SharpeRatio = CalculateSharpeRatio(trades, 0.0)
	res.ProfitFactor = CalculateProfitFactor(trades)
	return res
}

func CalculateWinRate(trades []Trade) float64 {
	if len(trades) == 0 {
		return 0.0
	}
	wins := 0
	for _, trade := range trades {
		if trade.PnL > 0 {
			wins++
		}
	}
	return (float64(wins) / float64(len(trades))) * 100
}

// CalculateMaxDrawdown walks the closed-trade equity curve and returns the
// largest peak-to-trough decline as a percentage of the peak.
func CalculateMaxDrawdown(initialCapital float64, trades []Trade) float64 {
	equity := initialCapital
	peak := initialCapital
	maxDD := 0.0
	for _, t := range trades {
		equity += t.PnL
		if equity > peak {
			peak = equity
		}
		if peak > 0 {
			dd := (peak - equity) / peak * 100
			if dd > maxDD {
				maxDD = dd
			}
		}
	}
	return maxDD
}

// CalculateSharpeRatio is the per-trade return version: mean excess return
// over the standard deviation of returns.
func CalculateSharpeRatio(trades []Trade, riskFreeRate float64) float64 {
	if len(trades) == 0 {
		return 0.0
	}
	var returns []float64
	for _, trade := range trades {
		returns = append(returns, trade.ReturnPercent)
	}
	avgReturn := utils.Average(returns)
	stdDev := calculateStandardDeviation(returns)
	if stdDev == 0 {
		return 0.0
	}
	return (avgReturn - riskFreeRate) / stdDev
}

// CalculateProfitFactor is gross profit over gross loss. With no losing
// trades the factor is capped at 999 (0 when there are no winners either).
func CalculateProfitFactor(trades []Trade) float64 {
	var gain, loss float64
	for _, t := range trades {
		if t.PnL >= 0 {
			gain += t.PnL
		} else {
			loss += -t.PnL
		}
	}
	if loss == 0 {
		if gain > 0 {
			return 999
		}
		return 0
	}
	return gain / loss
}

func calculateStandardDeviation(values []float64) float64 {
	if len(values) == 0 {
		return 0.0
	}
	mean := utils.Average(values)
	varianceSum := 0.0
	for _, v := range values {
		varianceSum += (v - mean) * (v - mean)
	}
	variance := varianceSum / float64(len(values))
	return math.Sqrt(variance)
}
