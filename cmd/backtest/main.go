package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/joho/godotenv"

	datafeed "github.com/tealfox/abctrader/Internal/database"
	"github.com/tealfox/abctrader/Internal/strategy/metrics"
	"github.com/tealfox/abctrader/Internal/utils/config"
	"github.com/tealfox/abctrader/Internal/utils/formatting"
	"github.com/tealfox/abctrader/Internal/utils/scanner"
)

func main() {
	symbolsFlag := flag.String("symbols", "", "comma-separated symbols (default: config scan list)")
	barsFlag := flag.Int("bars", 0, "bars of history per symbol (default: config bar_limit)")
	startFlag := flag.String("start", "", "ignore bars before this date (e.g. 2024-01-02)")
	logDB := flag.Bool("log", false, "persist results to the database")
	verbose := flag.Bool("v", false, "log every simulated trade")
	flag.Parse()

	var startDate time.Time
	if *startFlag != "" {
		startDate = formatting.ParseDate(*startFlag)
		if startDate.IsZero() {
			log.Fatalf("Unrecognized -start date: %s", *startFlag)
		}
	}

	if err := godotenv.Load(); err != nil {
		log.Println("Warning: .env file not found, using environment variables")
	}

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	symbols := cfg.Scan.Symbols
	if *symbolsFlag != "" {
		symbols = strings.Split(*symbolsFlag, ",")
	}
	limit := cfg.Scan.BarLimit
	if *barsFlag > 0 {
		limit = *barsFlag
	}

	if *logDB {
		if err := datafeed.InitDatabase(); err != nil {
			log.Fatalf("Failed to connect to database: %v", err)
		}
		defer datafeed.CloseDatabase()
	}

	for _, symbol := range symbols {
		symbol = strings.TrimSpace(symbol)
		if symbol == "" {
			continue
		}

		bars, err := datafeed.GetAlpacaBars(symbol, cfg.Scan.Timeframe, limit)
		if err != nil {
			log.Printf("⚠️  %s: fetch failed: %v", symbol, err)
			continue
		}
		if !startDate.IsZero() {
			bars = barsSince(bars, startDate)
		}

		strat := scanner.NewStrategyFromConfig(cfg.Pattern)
		bt := metrics.NewBacktester(cfg.Backtest.InitialCapital, cfg.Backtest.Commission, cfg.Backtest.Slippage)
		bt.VerboseLogging = *verbose

		res := bt.Run(symbol, bars, strat.NewBacktestStrategy(symbol, bars))
		fmt.Println(formatting.FormatBacktestResults(symbol, res))

		if *logDB {
			if err := datafeed.LogBacktestRun(context.Background(), symbol, res); err != nil {
				log.Printf("⚠️  Failed to log backtest for %s: %v", symbol, err)
			}
		}
	}
}

// barsSince drops bars dated before start. Bars are chronological, so the
// first match starts the kept suffix.
func barsSince(bars []datafeed.Bar, start time.Time) []datafeed.Bar {
	for i, bar := range bars {
		if !bar.Time().Before(start) {
			return bars[i:]
		}
	}
	return nil
}
