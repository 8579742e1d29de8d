package metrics

import (
	"log"
	"math"

	"github.com/tealfox/abctrader/Internal/types"
)

// Actions a strategy can return for a bar
const (
	ActionBuy  = "BUY"
	ActionSell = "SELL"
	ActionHold = "HOLD"
)

// Strategy decides what to do on each bar. position is nil while flat.
// Anything other than BUY/SELL is treated as HOLD.
type Strategy interface {
	Decide(bar types.Bar, position *Position) string
}

// StrategyFunc adapts a plain function to the Strategy interface.
type StrategyFunc func(bar types.Bar, position *Position) string

func (f StrategyFunc) Decide(bar types.Bar, position *Position) string {
	return f(bar, position)
}

// Position is the single open position during a run.
type Position struct {
	Symbol     string
	EntryDate  string
	EntryPrice float64
	Shares     int64
}

// Trade is a completed round trip. Exit fields are set exactly once.
type Trade struct {
	Symbol        string
	PositionType  string // "LONG"
	EntryDate     string
	EntryPrice    float64
	ExitDate      string
	ExitPrice     float64
	Shares        int64
	PnL           float64
	ReturnPercent float64
}

// Backtester replays a bar series through a strategy with a single-position
// FLAT <-> LONG state machine. A BUY while positioned and a SELL while flat
// are both ignored.
type Backtester struct {
	InitialCapital float64
	Commission     float64
	Slippage       float64
	VerboseLogging bool

	capital  float64
	position *Position
	trades   []Trade
}

func NewBacktester(initialCapital, commission, slippage float64) *Backtester {
	if initialCapital <= 0 {
		initialCapital = 10000
	}
	return &Backtester{
		InitialCapital: initialCapital,
		Commission:     commission,
		Slippage:       slippage,
	}
}

// Run iterates bars in ascending chronological order, asking the strategy
// for a decision on each one. Any position still open at the final bar is
// force-closed, so the returned results never contain an open trade.
func (b *Backtester) Run(symbol string, bars []types.Bar, strat Strategy) BacktestResults {
	b.capital = b.InitialCapital
	b.position = nil
	b.trades = []Trade{}

	if len(bars) == 0 || strat == nil {
		return ComputeResults(b.InitialCapital, b.capital, b.trades)
	}

	for i := range bars {
		bar := bars[i]
		switch strat.Decide(bar, b.position) {
		case ActionBuy:
			if b.position == nil {
				b.openPosition(symbol, bar.Date(), bar.Close)
			}
		case ActionSell:
			if b.position != nil {
				b.closePosition(bar.Date(), bar.Close)
			}
		}
	}

	if b.position != nil {
		last := bars[len(bars)-1]
		b.closePosition(last.Date(), last.Close)
	}

	return ComputeResults(b.InitialCapital, b.capital, b.trades)
}

// openPosition sizes the entry at 95% of available capital after slippage.
// If that rounds down to zero shares the entry is skipped silently.
func (b *Backtester) openPosition(symbol, date string, price float64) {
	if price <= 0 {
		return
	}
	adjusted := price * (1 + b.Slippage)
	shares := int64(math.Floor(0.95 * b.capital / adjusted))
	if shares <= 0 {
		return
	}

	b.capital -= float64(shares)*adjusted + b.Commission
	b.position = &Position{
		Symbol:     symbol,
		EntryDate:  date,
		EntryPrice: adjusted,
		Shares:     shares,
	}

	if b.VerboseLogging {
		log.Printf("🟢 %s BUY %d @ %.2f on %s", symbol, shares, adjusted, date)
	}
}

func (b *Backtester) closePosition(date string, price float64) {
	pos := b.position
	adjusted := price * (1 - b.Slippage)
	b.capital += float64(pos.Shares)*adjusted - b.Commission

	pnl := float64(pos.Shares)*(adjusted-pos.EntryPrice) - 2*b.Commission
	returnPct := 0.0
	if pos.EntryPrice != 0 {
		returnPct = ((adjusted - pos.EntryPrice) / pos.EntryPrice) * 100
	}

	b.trades = append(b.trades, Trade{
		Symbol:        pos.Symbol,
		PositionType:  "LONG",
		EntryDate:     pos.EntryDate,
		EntryPrice:    pos.EntryPrice,
		ExitDate:      date,
		ExitPrice:     adjusted,
		Shares:        pos.Shares,
		PnL:           pnl,
		ReturnPercent: returnPct,
	})
	b.position = nil

	if b.VerboseLogging {
		log.Printf("🔴 %s SELL %d @ %.2f on %s (PnL %.2f)", pos.Symbol, pos.Shares, adjusted, date, pnl)
	}
}

// OpenPositionCount reports how many positions are currently open; it can
// only ever be 0 or 1.
func (b *Backtester) OpenPositionCount() int {
	if b.position != nil {
		return 1
	}
	return 0
}
