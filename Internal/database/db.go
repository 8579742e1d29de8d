package datafeed

import (
	"database/sql"
	"fmt"
	"os"

	_ "github.com/lib/pq"
)

var DB *sql.DB

type DatabaseConfig struct {
	Host     string
	Port     string
	User     string
	Password string
	DBName   string
	SSLMode  string
}

func InitDatabase() error {
	config := DatabaseConfig{
		Host:     getEnvOrDefault("DB_HOST", "localhost"),
		Port:     getEnvOrDefault("DB_PORT", "5432"),
		User:     getEnvOrDefault("DB_USER", "postgres"),
		Password: os.Getenv("DB_PASSWORD"), // Required - no default
		DBName:   getEnvOrDefault("DB_NAME", "abctrader"),
		SSLMode:  getEnvOrDefault("DB_SSLMODE", "disable"),
	}

	connStr := fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		config.Host, config.Port, config.User, config.Password, config.DBName, config.SSLMode)

	var err error
	DB, err = sql.Open("postgres", connStr)
	if err != nil {
		return fmt.Errorf("failed to open database connection: %w", err)
	}

	if err = DB.Ping(); err != nil {
		return fmt.Errorf("failed to ping database: %w", err)
	}

	if err = initializeSchema(); err != nil {
		return fmt.Errorf("failed to initialize schema: %w", err)
	}

	fmt.Println("Database connected successfully!")
	return nil
}

// initializeSchema creates the signal and backtest tables if they don't exist
func initializeSchema() error {
	schemaSQL := `
	CREATE TABLE IF NOT EXISTS signals (
		id SERIAL PRIMARY KEY,
		symbol TEXT NOT NULL,
		signal TEXT NOT NULL,
		confidence TEXT NOT NULL,
		score REAL NOT NULL,
		price NUMERIC NOT NULL,
		entry_level NUMERIC NOT NULL,
		stop_loss NUMERIC NOT NULL,
		take_profit NUMERIC NOT NULL,
		risk_reward REAL NOT NULL,
		trend TEXT NOT NULL,
		retracement REAL NOT NULL,
		reasoning TEXT,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	);

	CREATE TABLE IF NOT EXISTS backtest_runs (
		id SERIAL PRIMARY KEY,
		symbol TEXT NOT NULL,
		initial_capital NUMERIC NOT NULL,
		final_capital NUMERIC NOT NULL,
		total_return_pct REAL NOT NULL,
		num_trades INT NOT NULL,
		win_rate REAL NOT NULL,
		max_drawdown_pct REAL NOT NULL,
		sharpe_ratio REAL NOT NULL,
		profit_factor REAL NOT NULL,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	);
	`
	_, err := DB.Exec(schemaSQL)
	return err
}

func CloseDatabase() {
	if DB != nil {
		DB.Close()
	}
}

func getEnvOrDefault(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
