package metrics

import (
	"fmt"
	"math"
	"testing"

	"github.com/tealfox/abctrader/Internal/types"
)

func mkBars(closes ...float64) []types.Bar {
	bars := make([]types.Bar, len(closes))
	for i, c := range closes {
		bars[i] = types.Bar{
			Timestamp: fmt.Sprintf("2024-01-%02dT00:00:00Z", i+1),
			Open:      c, High: c, Low: c, Close: c, Volume: 1000,
		}
	}
	return bars
}

func TestRun_SingleRoundTrip(t *testing.T) {
	// buy at 100, sell at 110, no costs: shares = floor(0.95*10000/100) = 95
	bars := mkBars(100, 110)
	bt := NewBacktester(10000, 0, 0)

	step := 0
	strat := StrategyFunc(func(bar types.Bar, position *Position) string {
		step++
		if step == 1 {
			return ActionBuy
		}
		return ActionSell
	})

	res := bt.Run("TEST", bars, strat)

	if res.NumTrades != 1 {
		t.Fatalf("trades = %d, want 1", res.NumTrades)
	}
	trade := res.Trades[0]
	if trade.Shares != 95 {
		t.Errorf("shares = %d, want 95", trade.Shares)
	}
	if math.Abs(trade.PnL-950) > 1e-9 {
		t.Errorf("PnL = %.2f, want 950", trade.PnL)
	}
	if math.Abs(res.FinalCapital-10950) > 1e-9 {
		t.Errorf("final capital = %.2f, want 10950", res.FinalCapital)
	}
	if math.Abs(res.TotalReturnPct-9.5) > 1e-9 {
		t.Errorf("total return = %.2f%%, want 9.5%%", res.TotalReturnPct)
	}
	if res.TotalReturn != res.FinalCapital-res.InitialCapital {
		t.Error("total return must equal final minus initial capital exactly")
	}
}

func TestRun_ForceCloseAtEnd(t *testing.T) {
	bars := mkBars(100, 105, 110)
	bt := NewBacktester(10000, 0, 0)

	strat := StrategyFunc(func(bar types.Bar, position *Position) string {
		if position == nil {
			return ActionBuy
		}
		return ActionHold
	})

	res := bt.Run("TEST", bars, strat)

	if res.NumTrades != 1 {
		t.Fatalf("trades = %d, want 1 (forced close)", res.NumTrades)
	}
	if res.Trades[0].ExitPrice != 110 {
		t.Errorf("exit price = %.2f, want last close 110", res.Trades[0].ExitPrice)
	}
	if bt.OpenPositionCount() != 0 {
		t.Error("no position may remain open after the run")
	}
}

func TestRun_BuyWhileLongIgnored(t *testing.T) {
	bars := mkBars(100, 101, 102, 103)
	bt := NewBacktester(10000, 0, 0)

	// always BUY: only the first can open, the rest are ignored
	strat := StrategyFunc(func(bar types.Bar, position *Position) string {
		return ActionBuy
	})

	res := bt.Run("TEST", bars, strat)

	if res.NumTrades != 1 {
		t.Errorf("trades = %d, want 1", res.NumTrades)
	}
}

func TestRun_SellWhileFlatIgnored(t *testing.T) {
	bars := mkBars(100, 101, 102)
	bt := NewBacktester(10000, 0, 0)

	strat := StrategyFunc(func(bar types.Bar, position *Position) string {
		return ActionSell
	})

	res := bt.Run("TEST", bars, strat)

	if res.NumTrades != 0 {
		t.Errorf("trades = %d, want 0", res.NumTrades)
	}
	if res.FinalCapital != res.InitialCapital {
		t.Errorf("capital changed without trades: %.2f", res.FinalCapital)
	}
}

func TestRun_UnknownActionTreatedAsHold(t *testing.T) {
	bars := mkBars(100, 101, 102)
	bt := NewBacktester(10000, 0, 0)

	strat := StrategyFunc(func(bar types.Bar, position *Position) string {
		return "SHORT_SQUEEZE" // not a recognized action
	})

	res := bt.Run("TEST", bars, strat)

	if res.NumTrades != 0 {
		t.Errorf("trades = %d, want 0", res.NumTrades)
	}
}

func TestOpenPosition_SkipsWhenSharesRoundToZero(t *testing.T) {
	// price too high for the capital: floor(0.95*100/1000) = 0 shares
	bars := mkBars(1000, 1100)
	bt := NewBacktester(100, 0, 0)

	strat := StrategyFunc(func(bar types.Bar, position *Position) string {
		if position == nil {
			return ActionBuy
		}
		return ActionSell
	})

	res := bt.Run("TEST", bars, strat)

	if res.NumTrades != 0 {
		t.Errorf("trades = %d, want 0 (entry skipped silently)", res.NumTrades)
	}
	if res.FinalCapital != 100 {
		t.Errorf("final capital = %.2f, want unchanged 100", res.FinalCapital)
	}
}

func TestRun_CommissionAndSlippage(t *testing.T) {
	bars := mkBars(100, 110)
	bt := NewBacktester(10000, 1.0, 0.01)

	step := 0
	strat := StrategyFunc(func(bar types.Bar, position *Position) string {
		step++
		if step == 1 {
			return ActionBuy
		}
		return ActionSell
	})

	res := bt.Run("TEST", bars, strat)

	if res.NumTrades != 1 {
		t.Fatalf("trades = %d, want 1", res.NumTrades)
	}
	trade := res.Trades[0]

	entryAdj := 100 * 1.01
	wantShares := int64(math.Floor(0.95 * 10000 / entryAdj))
	if trade.Shares != wantShares {
		t.Errorf("shares = %d, want %d", trade.Shares, wantShares)
	}
	exitAdj := 110 * 0.99
	wantPnL := float64(wantShares)*(exitAdj-entryAdj) - 2.0
	if math.Abs(trade.PnL-wantPnL) > 1e-9 {
		t.Errorf("PnL = %.4f, want %.4f", trade.PnL, wantPnL)
	}

	wantFinal := 10000 - float64(wantShares)*entryAdj - 1.0 + float64(wantShares)*exitAdj - 1.0
	if math.Abs(res.FinalCapital-wantFinal) > 1e-9 {
		t.Errorf("final capital = %.4f, want %.4f", res.FinalCapital, wantFinal)
	}
}

func TestRun_EmptySeries(t *testing.T) {
	bt := NewBacktester(10000, 0, 0)

	res := bt.Run("TEST", nil, StrategyFunc(func(bar types.Bar, position *Position) string {
		return ActionBuy
	}))

	if res.NumTrades != 0 || res.FinalCapital != 10000 {
		t.Errorf("empty series changed results: %d trades, %.2f capital", res.NumTrades, res.FinalCapital)
	}
}
