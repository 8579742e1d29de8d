package signals

import (
	"github.com/tealfox/abctrader/Internal/strategy/metrics"
	"github.com/tealfox/abctrader/Internal/types"
)

// abcBacktestStrategy replays the signal generator over a growing window of
// a fixed series. The backtester calls Decide once per bar in order, so a
// simple cursor is enough to know where we are.
type abcBacktestStrategy struct {
	strategy *ABCStrategy
	symbol   string
	bars     []types.Bar
	cursor   int

	// trade plan captured at entry; drives the exit
	stopLoss   float64
	takeProfit float64
}

// NewBacktestStrategy adapts the ABC strategy to the backtest loop. While
// flat it enters on a BUY signal; while positioned it exits when the close
// reaches the entry plan's first target or stop.
func (s *ABCStrategy) NewBacktestStrategy(symbol string, bars []types.Bar) metrics.Strategy {
	return &abcBacktestStrategy{strategy: s, symbol: symbol, bars: bars}
}

func (a *abcBacktestStrategy) Decide(bar types.Bar, position *metrics.Position) string {
	i := a.cursor
	a.cursor++
	if i >= len(a.bars) {
		return metrics.ActionHold
	}

	if position != nil {
		if a.stopLoss != 0 && bar.Close <= a.stopLoss {
			return metrics.ActionSell
		}
		if a.takeProfit != 0 && bar.Close >= a.takeProfit {
			return metrics.ActionSell
		}
		return metrics.ActionHold
	}

	sig := a.strategy.GenerateSignal(a.symbol, a.bars[:i+1])
	if sig == nil || sig.Signal != SignalBuy {
		return metrics.ActionHold
	}

	a.stopLoss = sig.StopLoss
	a.takeProfit = sig.TakeProfits[0]
	return metrics.ActionBuy
}
