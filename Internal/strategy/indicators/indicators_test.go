package indicators

import (
	"math"
	"testing"
)

func TestCalculateSMA(t *testing.T) {
	data := []float64{1, 2, 3, 4, 5}
	sma := CalculateSMA(data, 3)

	if len(sma) != len(data) {
		t.Fatalf("len = %d, want %d", len(sma), len(data))
	}
	// warmup entries stay zero
	if sma[0] != 0 || sma[1] != 0 {
		t.Errorf("warmup entries = %v, want zeros", sma[:2])
	}
	want := []float64{0, 0, 2, 3, 4}
	for i := 2; i < len(data); i++ {
		if math.Abs(sma[i]-want[i]) > 1e-9 {
			t.Errorf("sma[%d] = %.4f, want %.4f", i, sma[i], want[i])
		}
	}
}

func TestCalculateSMA_InsufficientData(t *testing.T) {
	sma := CalculateSMA([]float64{1, 2}, 5)
	for i, v := range sma {
		if v != 0 {
			t.Errorf("sma[%d] = %.4f, want 0", i, v)
		}
	}
	if got := CalculateSMA([]float64{1, 2, 3}, 0); got[0] != 0 {
		t.Error("zero period must produce zeros")
	}
}

func TestLatestSMA(t *testing.T) {
	tests := []struct {
		name   string
		data   []float64
		period int
		want   float64
	}{
		{"trailing window", []float64{10, 20, 30, 40}, 2, 35},
		{"full series", []float64{10, 20, 30}, 3, 20},
		{"too short", []float64{10}, 3, 0},
		{"zero period", []float64{10, 20}, 0, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := LatestSMA(tt.data, tt.period); math.Abs(got-tt.want) > 1e-9 {
				t.Errorf("LatestSMA = %.4f, want %.4f", got, tt.want)
			}
		})
	}
}

func TestAverageVolume(t *testing.T) {
	volumes := []float64{100, 200, 300, 400, 500}

	tests := []struct {
		name   string
		end    int
		period int
		want   float64
	}{
		{"window excludes end", 4, 2, 350}, // indexes 2,3
		{"full history", 5, 5, 300},
		{"not enough history", 1, 3, 0},
		{"end past series", 6, 2, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := AverageVolume(volumes, tt.end, tt.period); math.Abs(got-tt.want) > 1e-9 {
				t.Errorf("AverageVolume = %.4f, want %.4f", got, tt.want)
			}
		})
	}
}
