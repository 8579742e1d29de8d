package formatting

import (
	"strings"
	"testing"
	"time"

	"github.com/tealfox/abctrader/Internal/strategy/signals"
)

func TestParseDate(t *testing.T) {
	want := time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name string
		in   string
		want time.Time
	}{
		{"ISO", "2024-03-15", want},
		{"slashed DD/MM", "15/03/2024", want},
		{"dotted DD.MM", "15.03.2024", want},
		{"US MM-DD", "03-15-2024", want},
		{"garbage", "not-a-date", time.Time{}},
		{"empty", "", time.Time{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ParseDate(tt.in); !got.Equal(tt.want) {
				t.Errorf("ParseDate(%q) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

func TestFormatSignal(t *testing.T) {
	t.Run("nil signal", func(t *testing.T) {
		if got := FormatSignal(nil); !strings.Contains(got, "No signal") {
			t.Errorf("got %q", got)
		}
	})

	t.Run("hold shows reasoning only", func(t *testing.T) {
		sig := &signals.Signal{Symbol: "AAPL", Signal: signals.SignalHold, Reasoning: "Price outside entry zone"}
		got := FormatSignal(sig)
		if !strings.Contains(got, "HOLD") || !strings.Contains(got, "Price outside entry zone") {
			t.Errorf("got %q", got)
		}
		if strings.Contains(got, "Entries:") {
			t.Error("HOLD output must not include the trade plan")
		}
	})

	t.Run("buy shows full trade plan", func(t *testing.T) {
		sig := &signals.Signal{
			Symbol:      "AAPL",
			Signal:      signals.SignalBuy,
			Confidence:  signals.ConfidenceMedium,
			Score:       7,
			Price:       146,
			RiskReward:  3.88,
			EntryLevels: [4]float64{142.5, 143.98, 145.45, 146.68},
			StopLoss:    128,
			TakeProfits: [3]float64{210.9, 220.45, 230},
			Reasoning:   "BULLISH ABC pattern",
		}
		got := FormatSignal(sig)
		for _, fragment := range []string{"🟢", "AAPL BUY", "142.50", "Stop: 128.00", "210.90"} {
			if !strings.Contains(got, fragment) {
				t.Errorf("output missing %q:\n%s", fragment, got)
			}
		}
	})
}
