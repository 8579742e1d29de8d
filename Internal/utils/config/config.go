package config

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"

	"gopkg.in/yaml.v3"
)

type Config struct {
	Scan struct {
		Symbols   []string `yaml:"symbols"`
		Timeframe string   `yaml:"timeframe"`
		BarLimit  int      `yaml:"bar_limit"`
		Workers   int      `yaml:"workers"`
	} `yaml:"scan"`

	Pattern PatternConfig `yaml:"pattern"`

	Backtest BacktestConfig `yaml:"backtest"`

	Notifications struct {
		Console  bool `yaml:"console"`
		Telegram bool `yaml:"telegram"`
		Database bool `yaml:"database"`
	} `yaml:"notifications"`
}

type PatternConfig struct {
	SwingLength   int     `yaml:"swing_length"`
	MinRetrace    float64 `yaml:"min_retrace"`
	MaxRetrace    float64 `yaml:"max_retrace"`
	StopLossPips  float64 `yaml:"stop_loss_pips"`
	PipSize       float64 `yaml:"pip_size"`
	MinRiskReward float64 `yaml:"min_risk_reward"`
}

type BacktestConfig struct {
	InitialCapital float64 `yaml:"initial_capital"`
	Commission     float64 `yaml:"commission"`
	Slippage       float64 `yaml:"slippage"`
}

func DefaultConfig() *Config {
	cfg := &Config{}
	cfg.Scan.Timeframe = "1Day"
	cfg.Scan.BarLimit = 250
	cfg.Scan.Workers = 4
	cfg.Pattern = PatternConfig{
		SwingLength:   5,
		MinRetrace:    0.382,
		MaxRetrace:    0.786,
		StopLossPips:  20,
		PipSize:       0.01,
		MinRiskReward: 2.5,
	}
	cfg.Backtest = BacktestConfig{
		InitialCapital: 10000,
		Commission:     0,
		Slippage:       0,
	}
	cfg.Notifications.Console = true
	return cfg
}

// LoadConfig reads config.yaml, trying a few likely locations, and
// validates the result. Bad configuration fails here rather than silently
// producing nonsensical patterns later.
func LoadConfig() (*Config, error) {
	_, filePath, _, ok := runtime.Caller(0)
	var basePath string
	if ok {
		basePath = filepath.Dir(filePath)
	}

	cwd, err := os.Getwd()
	if err != nil {
		return nil, err
	}

	possiblePaths := []string{}
	if basePath != "" {
		possiblePaths = append(possiblePaths, filepath.Join(basePath, "config.yaml"))
	}
	possiblePaths = append(possiblePaths,
		filepath.Join(cwd, "Internal", "utils", "config", "config.yaml"),
		"Internal/utils/config/config.yaml",
		"config.yaml",
	)

	var data []byte
	for _, path := range possiblePaths {
		data, err = os.ReadFile(path)
		if err == nil {
			break
		}
	}
	if err != nil {
		// first run: write the defaults next to the binary so the user has
		// a file to edit
		cfg := DefaultConfig()
		if saveErr := SaveConfig(cfg, "config.yaml"); saveErr != nil {
			return nil, fmt.Errorf("no config file found and could not create one: %w", saveErr)
		}
		return cfg, nil
	}

	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate rejects configuration that would make the detector or
// backtester produce garbage.
func (c *Config) Validate() error {
	p := c.Pattern
	if p.SwingLength <= 0 {
		return fmt.Errorf("invalid config: swing_length must be positive, got %d", p.SwingLength)
	}
	if p.MinRetrace < 0 || p.MaxRetrace <= 0 {
		return fmt.Errorf("invalid config: retracement bounds must be positive")
	}
	if p.MinRetrace > p.MaxRetrace {
		return fmt.Errorf("invalid config: min_retrace %.3f greater than max_retrace %.3f", p.MinRetrace, p.MaxRetrace)
	}
	if p.StopLossPips < 0 {
		return fmt.Errorf("invalid config: stop_loss_pips cannot be negative, got %.1f", p.StopLossPips)
	}
	if p.PipSize <= 0 {
		return fmt.Errorf("invalid config: pip_size must be positive, got %f", p.PipSize)
	}
	if p.MinRiskReward < 0 {
		return fmt.Errorf("invalid config: min_risk_reward cannot be negative, got %.2f", p.MinRiskReward)
	}
	b := c.Backtest
	if b.InitialCapital <= 0 {
		return fmt.Errorf("invalid config: initial_capital must be positive, got %.2f", b.InitialCapital)
	}
	if b.Slippage < 0 || b.Slippage >= 1 {
		return fmt.Errorf("invalid config: slippage must be in [0,1), got %.4f", b.Slippage)
	}
	if b.Commission < 0 {
		return fmt.Errorf("invalid config: commission cannot be negative, got %.2f", b.Commission)
	}
	return nil
}

// SaveConfig writes the configuration as YAML to the given path.
func SaveConfig(cfg *Config, path string) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}
