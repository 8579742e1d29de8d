package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"gopkg.in/yaml.v3"
)

func TestDefaultConfig_Valid(t *testing.T) {
	cfg := DefaultConfig()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("default config failed validation: %v", err)
	}
	if cfg.Pattern.MinRetrace != 0.382 || cfg.Pattern.MaxRetrace != 0.786 {
		t.Errorf("retracement band = [%.3f, %.3f], want [0.382, 0.786]",
			cfg.Pattern.MinRetrace, cfg.Pattern.MaxRetrace)
	}
	if cfg.Backtest.InitialCapital != 10000 {
		t.Errorf("initial capital = %.2f, want 10000", cfg.Backtest.InitialCapital)
	}
}

func TestSaveConfig_RoundTrip(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Scan.Symbols = []string{"AAPL", "TSLA"}
	cfg.Pattern.SwingLength = 7

	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := SaveConfig(cfg, path); err != nil {
		t.Fatalf("SaveConfig failed: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("could not read saved config: %v", err)
	}
	loaded := DefaultConfig()
	if err := yaml.Unmarshal(data, loaded); err != nil {
		t.Fatalf("saved config does not parse: %v", err)
	}

	if len(loaded.Scan.Symbols) != 2 || loaded.Scan.Symbols[1] != "TSLA" {
		t.Errorf("symbols = %v, want [AAPL TSLA]", loaded.Scan.Symbols)
	}
	if loaded.Pattern.SwingLength != 7 {
		t.Errorf("swing_length = %d, want 7", loaded.Pattern.SwingLength)
	}
	if err := loaded.Validate(); err != nil {
		t.Errorf("round-tripped config failed validation: %v", err)
	}
}

func TestValidate_RejectsBadConfig(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{
			"zero swing length",
			func(c *Config) { c.Pattern.SwingLength = 0 },
			"swing_length",
		},
		{
			"inverted retracement band",
			func(c *Config) { c.Pattern.MinRetrace = 0.9; c.Pattern.MaxRetrace = 0.5 },
			"min_retrace",
		},
		{
			"negative stop loss pips",
			func(c *Config) { c.Pattern.StopLossPips = -1 },
			"stop_loss_pips",
		},
		{
			"zero pip size",
			func(c *Config) { c.Pattern.PipSize = 0 },
			"pip_size",
		},
		{
			"negative min risk reward",
			func(c *Config) { c.Pattern.MinRiskReward = -1 },
			"min_risk_reward",
		},
		{
			"zero initial capital",
			func(c *Config) { c.Backtest.InitialCapital = 0 },
			"initial_capital",
		},
		{
			"slippage of one",
			func(c *Config) { c.Backtest.Slippage = 1.0 },
			"slippage",
		},
		{
			"negative commission",
			func(c *Config) { c.Backtest.Commission = -0.5 },
			"commission",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(cfg)
			err := cfg.Validate()
			if err == nil {
				t.Fatal("expected validation error, got nil")
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("error %q does not mention %q", err, tt.wantErr)
			}
		})
	}
}
