package internal

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"os"
	"strconv"

	"github.com/go-chi/chi/v5"

	datafeed "github.com/tealfox/abctrader/Internal/database"
	"github.com/tealfox/abctrader/Internal/strategy/indicators"
	"github.com/tealfox/abctrader/Internal/strategy/metrics"
	"github.com/tealfox/abctrader/Internal/types"
	"github.com/tealfox/abctrader/Internal/utils/config"
	"github.com/tealfox/abctrader/Internal/utils/scanner"
)

type API struct {
	Cfg *config.Config
	JWT *JWTManager
}

func WriteJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("Error encoding response: %v", err)
	}
}

func WriteError(w http.ResponseWriter, status int, msg string) {
	WriteJSON(w, status, map[string]string{"error": msg})
}

func (api *API) HandleLogin(w http.ResponseWriter, r *http.Request) {
	var body struct {
		User     string `json:"user"`
		Password string `json:"password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		WriteError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if body.User != os.Getenv("API_USER") || body.Password != os.Getenv("API_PASSWORD") {
		WriteError(w, http.StatusUnauthorized, "Invalid credentials")
		return
	}

	token, err := api.JWT.GenerateToken(body.User)
	if err != nil {
		WriteError(w, http.StatusInternalServerError, "Failed to generate token")
		return
	}

	WriteJSON(w, http.StatusOK, map[string]string{"token": token})
}

// HandleGetSignals returns the latest stored signals.
func (api *API) HandleGetSignals(w http.ResponseWriter, r *http.Request) {
	limit := 50
	if v := r.URL.Query().Get("limit"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			limit = n
		}
	}

	records, err := datafeed.GetRecentSignals(context.Background(), limit)
	if err != nil {
		log.Printf("Error fetching signals: %v", err)
		WriteError(w, http.StatusInternalServerError, "Failed to fetch signals")
		return
	}

	WriteJSON(w, http.StatusOK, map[string]interface{}{"signals": records})
}

// HandleGetPatterns runs live pattern detection for one symbol.
func (api *API) HandleGetPatterns(w http.ResponseWriter, r *http.Request) {
	symbol := chi.URLParam(r, "symbol")

	bars, err := datafeed.GetAlpacaBars(symbol, api.Cfg.Scan.Timeframe, api.Cfg.Scan.BarLimit)
	if err != nil {
		WriteError(w, http.StatusBadGateway, "Failed to fetch bars")
		return
	}

	strat := scanner.NewStrategyFromConfig(api.Cfg.Pattern)
	patterns := strat.Detector.DetectPatterns(bars)
	for i := range patterns {
		patterns[i] = strat.Detector.TrackPattern(patterns[i], bars)
	}

	WriteJSON(w, http.StatusOK, map[string]interface{}{
		"symbol":   symbol,
		"patterns": patterns,
	})
}

// HandleGetSignal generates a live signal for one symbol.
func (api *API) HandleGetSignal(w http.ResponseWriter, r *http.Request) {
	symbol := chi.URLParam(r, "symbol")

	bars, err := datafeed.GetAlpacaBars(symbol, api.Cfg.Scan.Timeframe, api.Cfg.Scan.BarLimit)
	if err != nil {
		WriteError(w, http.StatusBadGateway, "Failed to fetch bars")
		return
	}

	strat := scanner.NewStrategyFromConfig(api.Cfg.Pattern)
	sig := strat.GenerateSignal(symbol, bars)
	if sig == nil {
		WriteJSON(w, http.StatusOK, map[string]interface{}{"symbol": symbol, "signal": nil})
		return
	}

	WriteJSON(w, http.StatusOK, map[string]interface{}{"symbol": symbol, "signal": sig})
}

// HandleGetSMA returns the SMA series for one symbol. Entries before the
// first full period are zero.
func (api *API) HandleGetSMA(w http.ResponseWriter, r *http.Request) {
	symbol := chi.URLParam(r, "symbol")

	period := 50
	if v := r.URL.Query().Get("period"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n <= 0 {
			WriteError(w, http.StatusBadRequest, "Invalid period")
			return
		}
		period = n
	}

	bars, err := datafeed.GetAlpacaBars(symbol, api.Cfg.Scan.Timeframe, api.Cfg.Scan.BarLimit)
	if err != nil {
		WriteError(w, http.StatusBadGateway, "Failed to fetch bars")
		return
	}

	WriteJSON(w, http.StatusOK, map[string]interface{}{
		"symbol": symbol,
		"period": period,
		"sma":    indicators.CalculateSMA(types.Closes(bars), period),
	})
}

// HandleBacktest runs a backtest for one symbol and returns the results.
func (api *API) HandleBacktest(w http.ResponseWriter, r *http.Request) {
	symbol := chi.URLParam(r, "symbol")
	if claims, ok := ClaimsFromContext(r.Context()); ok {
		log.Printf("🌐 Backtest for %s requested by %s", symbol, claims.UserID)
	}

	bars, err := datafeed.GetAlpacaBars(symbol, api.Cfg.Scan.Timeframe, api.Cfg.Scan.BarLimit)
	if err != nil {
		WriteError(w, http.StatusBadGateway, "Failed to fetch bars")
		return
	}

	strat := scanner.NewStrategyFromConfig(api.Cfg.Pattern)
	bt := metrics.NewBacktester(api.Cfg.Backtest.InitialCapital, api.Cfg.Backtest.Commission, api.Cfg.Backtest.Slippage)
	res := bt.Run(symbol, bars, strat.NewBacktestStrategy(symbol, bars))

	WriteJSON(w, http.StatusOK, res)
}
