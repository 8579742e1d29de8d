package detection

import (
	"github.com/tealfox/abctrader/Internal/types"
)

// identifies whether a swing point is a pivot high or pivot low
type SwingKind string

const (
	SwingHigh SwingKind = "HIGH"
	SwingLow  SwingKind = "LOW"
)

// a local price pivot, strictly above/below all bars within the window
type SwingPoint struct {
	BarIndex int
	Price    float64
	Kind     SwingKind
}

// scans an OHLC series for pivot highs and lows over a symmetric window
type SwingPointFinder struct {
	Window int
}

func NewSwingPointFinder(window int) *SwingPointFinder {
	if window <= 0 {
		window = 5
	}
	return &SwingPointFinder{Window: window}
}

// FindSwingPoints returns chronologically ordered swing highs and lows.
// A bar is a swing high iff its High is strictly the maximum of
// [i-window, i+window]; swing lows mirror with Low. Ties are never pivots,
// so flat regions yield no swing points. A series shorter than 2*window+1
// bars yields two empty lists.
func (sf *SwingPointFinder) FindSwingPoints(bars []types.Bar) (highs []SwingPoint, lows []SwingPoint) {
	highs = []SwingPoint{}
	lows = []SwingPoint{}

	w := sf.Window
	if len(bars) < 2*w+1 {
		return highs, lows
	}

	for i := w; i < len(bars)-w; i++ {
		isHigh := true
		isLow := true
		for j := i - w; j <= i+w; j++ {
			if j == i {
				continue
			}
			if bars[j].High >= bars[i].High {
				isHigh = false
			}
			if bars[j].Low <= bars[i].Low {
				isLow = false
			}
			if !isHigh && !isLow {
				break
			}
		}
		if isHigh {
			highs = append(highs, SwingPoint{BarIndex: i, Price: bars[i].High, Kind: SwingHigh})
		}
		if isLow {
			lows = append(lows, SwingPoint{BarIndex: i, Price: bars[i].Low, Kind: SwingLow})
		}
	}

	return highs, lows
}
