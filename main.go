package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"

	datafeed "github.com/tealfox/abctrader/Internal/database"
	"github.com/tealfox/abctrader/Internal/strategy/signals"
	"github.com/tealfox/abctrader/Internal/telegram"
	"github.com/tealfox/abctrader/Internal/utils/config"
	"github.com/tealfox/abctrader/Internal/utils/formatting"
	"github.com/tealfox/abctrader/Internal/utils/scanner"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: .env file not found, using environment variables")
	}

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	if cfg.Notifications.Database {
		if err := datafeed.InitDatabase(); err != nil {
			log.Fatalf("Failed to connect to database: %v", err)
		}
		defer datafeed.CloseDatabase()
	}

	var bot *telegram.Bot
	if cfg.Notifications.Telegram {
		chatID, err := strconv.ParseInt(os.Getenv("TELEGRAM_CHAT_ID"), 10, 64)
		if err != nil {
			log.Fatal("Invalid TELEGRAM_CHAT_ID")
		}
		bot, err = telegram.NewBot(os.Getenv("TELEGRAM_BOT_TOKEN"), chatID)
		if err != nil {
			log.Fatalf("Failed to create Telegram bot: %v", err)
		}
		go bot.Start()
		defer bot.Stop()
	}

	log.Printf("🚀 Scanning %d symbols for ABC patterns...", len(cfg.Scan.Symbols))

	results := scanner.ScanSymbols(cfg, func(symbol string, limit int) ([]datafeed.Bar, error) {
		return datafeed.GetAlpacaBars(symbol, cfg.Scan.Timeframe, limit)
	})

	filter := signals.NewAlertFilter()
	alerted := 0

	for _, res := range results {
		if res.Err != nil {
			continue
		}
		if res.Signal == nil {
			if cfg.Notifications.Console {
				fmt.Printf("⏸️  %s: no pattern\n", res.Symbol)
			}
			continue
		}

		if cfg.Notifications.Console {
			fmt.Println(formatting.FormatSignal(res.Signal))
		}

		filtered := filter.Filter(res.Signal)
		if !filtered.Passed {
			continue
		}

		if cfg.Notifications.Database {
			if err := datafeed.LogSignal(context.Background(), res.Signal); err != nil {
				log.Printf("⚠️  Failed to log signal for %s: %v", res.Symbol, err)
			}
		}
		if bot != nil {
			if err := bot.SendSignalAlert(res.Signal); err != nil {
				log.Printf("⚠️  Failed to send alert for %s: %v", res.Symbol, err)
			}
		}
		alerted++
	}

	log.Printf("✅ Scan complete: %d symbols, %d alerts", len(results), alerted)
}
