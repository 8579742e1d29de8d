package detection

import (
	"testing"

	"github.com/tealfox/abctrader/Internal/types"
)

func barsFromPrices(prices []float64) []types.Bar {
	bars := make([]types.Bar, len(prices))
	for i, p := range prices {
		bars[i] = types.Bar{Open: p, High: p, Low: p, Close: p, Volume: 1000}
	}
	return bars
}

func TestFindSwingPoints_PivotDetection(t *testing.T) {
	// v-shape: low at index 5, high at index 10
	prices := []float64{110, 108, 106, 104, 102, 100, 104, 108, 112, 116, 120, 118, 116, 114, 112, 110}
	finder := NewSwingPointFinder(5)

	highs, lows := finder.FindSwingPoints(barsFromPrices(prices))

	if len(lows) != 1 {
		t.Fatalf("expected 1 swing low, got %d", len(lows))
	}
	if lows[0].BarIndex != 5 || lows[0].Price != 100 {
		t.Errorf("swing low = (%d, %.1f), want (5, 100.0)", lows[0].BarIndex, lows[0].Price)
	}
	if lows[0].Kind != SwingLow {
		t.Errorf("swing low kind = %s, want %s", lows[0].Kind, SwingLow)
	}

	if len(highs) != 1 {
		t.Fatalf("expected 1 swing high, got %d", len(highs))
	}
	if highs[0].BarIndex != 10 || highs[0].Price != 120 {
		t.Errorf("swing high = (%d, %.1f), want (10, 120.0)", highs[0].BarIndex, highs[0].Price)
	}
}

func TestFindSwingPoints_TiesAreNeverPivots(t *testing.T) {
	// plateau: flat region can't produce a strict extreme
	prices := []float64{100, 100, 100, 100, 100, 100, 100, 100, 100, 100, 100, 100}
	finder := NewSwingPointFinder(3)

	highs, lows := finder.FindSwingPoints(barsFromPrices(prices))

	if len(highs) != 0 || len(lows) != 0 {
		t.Errorf("flat series produced %d highs and %d lows, want none", len(highs), len(lows))
	}
}

func TestFindSwingPoints_DoublePeakTie(t *testing.T) {
	// two equal peaks within one window: neither is strictly greater
	prices := []float64{100, 102, 104, 110, 104, 110, 104, 102, 100, 98, 96}
	finder := NewSwingPointFinder(3)

	highs, _ := finder.FindSwingPoints(barsFromPrices(prices))

	if len(highs) != 0 {
		t.Errorf("tied peaks produced %d swing highs, want 0", len(highs))
	}
}

func TestFindSwingPoints_ShortSeries(t *testing.T) {
	tests := []struct {
		name   string
		nBars  int
		window int
	}{
		{"empty series", 0, 5},
		{"one bar", 1, 5},
		{"exactly too short", 10, 5}, // needs 2*5+1 = 11
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			prices := make([]float64, tt.nBars)
			for i := range prices {
				prices[i] = 100 + float64(i)
			}
			finder := NewSwingPointFinder(tt.window)

			highs, lows := finder.FindSwingPoints(barsFromPrices(prices))

			if highs == nil || lows == nil {
				t.Fatal("expected empty slices, got nil")
			}
			if len(highs) != 0 || len(lows) != 0 {
				t.Errorf("short series produced %d highs and %d lows, want none", len(highs), len(lows))
			}
		})
	}
}

func TestFindSwingPoints_ChronologicalOrder(t *testing.T) {
	// w-shape with two lows and a middle high
	prices := []float64{
		120, 116, 112, 108, 104, 100, 104, 108, 112, 116,
		120, 116, 112, 108, 104, 102, 106, 110, 114, 118,
		122, 124, 126,
	}
	finder := NewSwingPointFinder(4)

	_, lows := finder.FindSwingPoints(barsFromPrices(prices))

	if len(lows) < 2 {
		t.Fatalf("expected at least 2 swing lows, got %d", len(lows))
	}
	for i := 1; i < len(lows); i++ {
		if lows[i].BarIndex <= lows[i-1].BarIndex {
			t.Errorf("swing lows out of order: index %d before %d", lows[i].BarIndex, lows[i-1].BarIndex)
		}
	}
}
