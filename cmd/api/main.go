package main

import (
	"log"
	"net/http"
	"os"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/joho/godotenv"

	datafeed "github.com/tealfox/abctrader/Internal/database"
	"github.com/tealfox/abctrader/Internal/utils/config"
	"github.com/tealfox/abctrader/cmd/api/internal"
)

func main() {
	_ = godotenv.Load(".env")
	_ = godotenv.Load("../../.env")

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	if err := datafeed.InitDatabase(); err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer datafeed.CloseDatabase()

	api := &internal.API{
		Cfg: cfg,
		JWT: internal.NewJWTManager(),
	}

	r := chi.NewRouter()
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(internal.CorsMiddleware)

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		internal.WriteJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})
	r.Post("/auth/login", api.HandleLogin)

	r.Group(func(r chi.Router) {
		r.Use(internal.JWTAuthMiddleware(api.JWT))
		r.Get("/api/signals", api.HandleGetSignals)
		r.Get("/api/patterns/{symbol}", api.HandleGetPatterns)
		r.Get("/api/signal/{symbol}", api.HandleGetSignal)
		r.Get("/api/sma/{symbol}", api.HandleGetSMA)
		r.Get("/api/backtest/{symbol}", api.HandleBacktest)
	})

	port := os.Getenv("API_PORT")
	if port == "" {
		port = "8080"
	}

	log.Printf("🌐 API listening on :%s", port)
	if err := http.ListenAndServe(":"+port, r); err != nil {
		log.Fatal(err)
	}
}
