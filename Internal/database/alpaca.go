package datafeed

import (
	"fmt"
	"os"
	"time"

	"github.com/alpacahq/alpaca-trade-api-go/v3/marketdata"

	"github.com/tealfox/abctrader/Internal/types"
	"github.com/tealfox/abctrader/Internal/utils"
)

type Bar = types.Bar

// GetAlpacaBars fetches up to limit bars for a symbol at the given
// timeframe ("1Day", "1Hour", ...), oldest first.
func GetAlpacaBars(symbol string, timeframe string, limit int) ([]Bar, error) {
	apiKey := os.Getenv("ALPACA_API_KEY")
	secretKey := os.Getenv("ALPACA_API_SECRET")

	client := marketdata.NewClient(marketdata.ClientOpts{
		APIKey:    apiKey,
		APISecret: secretKey,
	})

	tf, barDur := parseTimeframe(timeframe)
	start := time.Now().UTC().Add(-barDur * time.Duration(limit+2))

	var raw []marketdata.Bar
	retryConfig := utils.DefaultRetryConfig()

	err := utils.RetryWithBackoff(func() error {
		var err error
		raw, err = client.GetBars(symbol, marketdata.GetBarsRequest{
			TimeFrame:  tf,
			Start:      start,
			TotalLimit: limit,
		})
		return err
	}, retryConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch %s bars for %s: %w", timeframe, symbol, err)
	}

	bars := make([]Bar, 0, len(raw))
	for _, b := range raw {
		bars = append(bars, Bar{
			Timestamp: b.Timestamp.Format(time.RFC3339),
			Open:      b.Open,
			High:      b.High,
			Low:       b.Low,
			Close:     b.Close,
			Volume:    int64(b.Volume),
		})
	}

	return bars, nil
}

// GetDailyBars is the scanner's default feed: daily bars, oldest first.
func GetDailyBars(symbol string, limit int) ([]Bar, error) {
	return GetAlpacaBars(symbol, "1Day", limit)
}

func parseTimeframe(tf string) (marketdata.TimeFrame, time.Duration) {
	switch tf {
	case "1Min":
		return marketdata.OneMin, time.Minute
	case "5Min":
		return marketdata.NewTimeFrame(5, marketdata.Min), 5 * time.Minute
	case "15Min":
		return marketdata.NewTimeFrame(15, marketdata.Min), 15 * time.Minute
	case "1Hour":
		return marketdata.OneHour, time.Hour
	case "4Hour":
		return marketdata.NewTimeFrame(4, marketdata.Hour), 4 * time.Hour
	case "1Week":
		return marketdata.OneWeek, 7 * 24 * time.Hour
	case "1Day":
		fallthrough
	default:
		return marketdata.OneDay, 24 * time.Hour
	}
}
