package scanner

import (
	"log"
	"sync"

	"github.com/tealfox/abctrader/Internal/strategy/signals"
	"github.com/tealfox/abctrader/Internal/types"
	"github.com/tealfox/abctrader/Internal/utils/config"
)

// FetchFunc loads a bar series for a symbol. Injected so tests and the
// backtest CLI can feed canned data.
type FetchFunc func(symbol string, limit int) ([]types.Bar, error)

type ScanResult struct {
	Symbol string
	Signal *signals.Signal
	Err    error
}

// NewStrategyFromConfig builds a fresh ABC strategy with the configured
// detector parameters. Each scan owns its own instance; pattern state is
// never shared across symbols.
func NewStrategyFromConfig(p config.PatternConfig) *signals.ABCStrategy {
	strat := signals.NewABCStrategy()
	strat.MinRiskReward = p.MinRiskReward
	strat.Detector.SwingLength = p.SwingLength
	strat.Detector.MinRetrace = p.MinRetrace
	strat.Detector.MaxRetrace = p.MaxRetrace
	strat.Detector.StopLossPips = p.StopLossPips
	strat.Detector.PipSize = p.PipSize
	return strat
}

// ScanSymbols fetches bars and generates a signal for every configured
// symbol. Symbols are scanned in parallel; bar-by-bar pattern state within
// a symbol stays strictly sequential.
func ScanSymbols(cfg *config.Config, fetch FetchFunc) []ScanResult {
	symbols := cfg.Scan.Symbols
	results := make([]ScanResult, len(symbols))

	workers := cfg.Scan.Workers
	if workers <= 0 {
		workers = 1
	}

	jobs := make(chan int)
	var wg sync.WaitGroup

	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range jobs {
				results[i] = scanOne(symbols[i], cfg, fetch)
			}
		}()
	}

	for i := range symbols {
		jobs <- i
	}
	close(jobs)
	wg.Wait()

	return results
}

func scanOne(symbol string, cfg *config.Config, fetch FetchFunc) ScanResult {
	bars, err := fetch(symbol, cfg.Scan.BarLimit)
	if err != nil {
		log.Printf("⚠️  %s: fetch failed: %v", symbol, err)
		return ScanResult{Symbol: symbol, Err: err}
	}

	strat := NewStrategyFromConfig(cfg.Pattern)
	sig := strat.GenerateSignal(symbol, bars)
	return ScanResult{Symbol: symbol, Signal: sig}
}
