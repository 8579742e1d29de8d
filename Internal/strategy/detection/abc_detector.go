package detection

import (
	"fmt"

	"github.com/tealfox/abctrader/Internal/types"
	"github.com/tealfox/abctrader/Internal/utils"
)

// direction of a detected ABC pattern
type Trend string

const (
	TrendBullish Trend = "BULLISH"
	TrendBearish Trend = "BEARISH"
)

// lifecycle state of a pattern; transitions only move forward
type PatternState string

const (
	StateForming   PatternState = "FORMING"
	StateActivated PatternState = "ACTIVATED"
	StateTargetHit PatternState = "TARGET_HIT"
)

// fib fractions for the BC entry zone, measured from B toward A2
var entryFractions = [4]float64{0.5, 0.559, 0.618, 0.667}

// extension fractions of the 0->A move, projected from B
var targetFractions = [3]float64{1.618, 1.809, 2.000}

// ABCPattern is a three-leg (0->A->B) swing pattern plus its tracked
// lifecycle. The anchor points never change after detection; lifecycle
// transitions return a new pattern value instead of mutating in place, so a
// TARGET_HIT pattern can never exist without having been ACTIVATED first.
type ABCPattern struct {
	Trend Trend
	State PatternState

	Point0 float64
	Bar0   int
	PointA float64
	BarA   int
	PointB float64
	BarB   int

	// running post-activation extreme, far end of the entry zone
	A2Price float64
	A2Bar   int

	// set once the first target is touched
	PointC float64
	BarC   int

	RetracementRatio float64

	EntryLevels [4]float64
	TakeProfits [3]float64
	StopLoss    float64
	RiskReward  float64
}

// Activated reports whether price has confirmed the pattern by closing
// beyond point A.
func (p ABCPattern) Activated() bool {
	return p.State == StateActivated || p.State == StateTargetHit
}

// CReached reports whether the first take-profit level has been touched.
func (p ABCPattern) CReached() bool {
	return p.State == StateTargetHit
}

// PatternSearcher turns swing points into candidate patterns. The default
// greedy first-match searcher under-detects overlapping patterns; callers
// that want an exhaustive or ranked search can swap in their own.
type PatternSearcher interface {
	Search(highs, lows []SwingPoint) []ABCPattern
}

// analyzes a price series for ABC swing patterns and tracks their lifecycle
type ABCPatternDetector struct {
	SwingLength    int
	MinRetrace     float64
	MaxRetrace     float64
	StopLossPips   float64
	PipSize        float64
	VerboseLogging bool

	searcher PatternSearcher
}

// creates a detector with default settings
func NewABCPatternDetector() *ABCPatternDetector {
	d := &ABCPatternDetector{
		SwingLength:  5,
		MinRetrace:   0.382,
		MaxRetrace:   0.786,
		StopLossPips: 20,
		PipSize:      0.01,
	}
	d.searcher = &greedySearcher{detector: d}
	return d
}

// SetSearcher swaps the pattern search policy. A nil searcher restores
// the greedy default.
func (d *ABCPatternDetector) SetSearcher(s PatternSearcher) {
	if s == nil {
		s = &greedySearcher{detector: d}
	}
	d.searcher = s
}

// DetectPatterns finds swing points and searches them for bullish
// (low -> high -> higher low) and bearish (high -> low -> lower high)
// three-leg patterns. Too-short series yield an empty list.
func (d *ABCPatternDetector) DetectPatterns(bars []types.Bar) []ABCPattern {
	finder := NewSwingPointFinder(d.SwingLength)
	highs, lows := finder.FindSwingPoints(bars)

	if d.searcher == nil {
		d.searcher = &greedySearcher{detector: d}
	}
	patterns := d.searcher.Search(highs, lows)

	if d.VerboseLogging {
		for _, p := range patterns {
			fmt.Printf("📐 %s ABC: 0=%.2f A=%.2f B=%.2f retrace=%.3f\n",
				p.Trend, p.Point0, p.PointA, p.PointB, p.RetracementRatio)
		}
	}

	return patterns
}

// greedySearcher emits at most one pattern per point-0 candidate: the first
// subsequent opposite-type swing is A, and B is the first later same-type
// swing that satisfies the higher-low/lower-high and retracement
// constraints. It never backtracks to try alternate A/B combinations.
type greedySearcher struct {
	detector *ABCPatternDetector
}

func (g *greedySearcher) Search(highs, lows []SwingPoint) []ABCPattern {
	patterns := []ABCPattern{}
	patterns = append(patterns, g.searchDirection(lows, highs, TrendBullish)...)
	patterns = append(patterns, g.searchDirection(highs, lows, TrendBearish)...)
	return patterns
}

// searchDirection scans same-kind swings (point 0 and B candidates) against
// opposite-kind swings (point A candidates) for one trend direction.
func (g *greedySearcher) searchDirection(same, opposite []SwingPoint, trend Trend) []ABCPattern {
	d := g.detector
	patterns := []ABCPattern{}

	for _, p0 := range same {
		// first opposite-type swing after point 0 is point A
		var pa *SwingPoint
		for k := range opposite {
			if opposite[k].BarIndex > p0.BarIndex {
				pa = &opposite[k]
				break
			}
		}
		if pa == nil {
			continue
		}

		move := utils.Abs(pa.Price - p0.Price)
		if move == 0 {
			continue
		}

		// first valid B after A: higher low (bullish) / lower high (bearish)
		// inside the retracement band
		for k := range same {
			pb := same[k]
			if pb.BarIndex <= pa.BarIndex {
				continue
			}
			if trend == TrendBullish && pb.Price <= p0.Price {
				continue
			}
			if trend == TrendBearish && pb.Price >= p0.Price {
				continue
			}
			retrace := utils.Abs(pa.Price-pb.Price) / move
			if retrace < d.MinRetrace || retrace > d.MaxRetrace {
				continue
			}

			pattern := ABCPattern{
				Trend:            trend,
				State:            StateForming,
				Point0:           p0.Price,
				Bar0:             p0.BarIndex,
				PointA:           pa.Price,
				BarA:             pa.BarIndex,
				PointB:           pb.Price,
				BarB:             pb.BarIndex,
				RetracementRatio: retrace,
			}
			pattern = d.ComputeTargets(pattern)
			pattern = d.ComputeStopLoss(pattern)
			patterns = append(patterns, pattern)
			break
		}
	}

	return patterns
}

// CheckActivation activates a forming pattern the first time a bar's close
// crosses beyond point A in the favorable direction, using a strict
// prev-close/current-close crossing test. On activation A2 is seeded from
// the activation bar's extreme. Already-activated patterns pass through
// unchanged.
func (d *ABCPatternDetector) CheckActivation(p ABCPattern, bars []types.Bar, barIndex int) ABCPattern {
	if p.State != StateForming {
		return p
	}
	if barIndex <= p.BarB || barIndex < 1 || barIndex >= len(bars) {
		return p
	}

	prevClose := bars[barIndex-1].Close
	curClose := bars[barIndex].Close

	crossed := false
	switch p.Trend {
	case TrendBullish:
		crossed = prevClose <= p.PointA && curClose > p.PointA
	case TrendBearish:
		crossed = prevClose >= p.PointA && curClose < p.PointA
	}
	if !crossed {
		return p
	}

	p.State = StateActivated
	if p.Trend == TrendBullish {
		p.A2Price = bars[barIndex].High
	} else {
		p.A2Price = bars[barIndex].Low
	}
	p.A2Bar = barIndex

	if d.VerboseLogging {
		fmt.Printf("✅ %s pattern activated at bar %d, A2 seeded to %.2f\n", p.Trend, barIndex, p.A2Price)
	}

	return d.refreshTradePlan(p)
}

// UpdateA2 ratchets the post-activation extreme further in the favorable
// direction. It never retreats, and is a no-op once the target is reached.
func (d *ABCPatternDetector) UpdateA2(p ABCPattern, bars []types.Bar, barIndex int) ABCPattern {
	if p.State != StateActivated {
		return p
	}
	if barIndex < 0 || barIndex >= len(bars) {
		return p
	}

	switch p.Trend {
	case TrendBullish:
		if bars[barIndex].High > p.A2Price {
			p.A2Price = bars[barIndex].High
			p.A2Bar = barIndex
			return d.refreshTradePlan(p)
		}
	case TrendBearish:
		if bars[barIndex].Low < p.A2Price {
			p.A2Price = bars[barIndex].Low
			p.A2Bar = barIndex
			return d.refreshTradePlan(p)
		}
	}
	return p
}

// CheckTargetReached freezes point C at the first touch of the 1.618
// target. Idempotent after the first touch.
func (d *ABCPatternDetector) CheckTargetReached(p ABCPattern, bars []types.Bar, barIndex int) ABCPattern {
	if p.State != StateActivated {
		return p
	}
	if barIndex < 0 || barIndex >= len(bars) {
		return p
	}
	target := p.TakeProfits[0]
	if target == 0 {
		return p
	}

	touched := false
	switch p.Trend {
	case TrendBullish:
		touched = bars[barIndex].High >= target
	case TrendBearish:
		touched = bars[barIndex].Low <= target
	}
	if !touched {
		return p
	}

	p.State = StateTargetHit
	p.PointC = target
	p.BarC = barIndex

	if d.VerboseLogging {
		fmt.Printf("🎯 %s pattern hit first target %.2f at bar %d\n", p.Trend, target, barIndex)
	}

	return p
}

// AdvancePattern applies one bar of lifecycle evaluation: activation, A2
// ratchet, then target check, in that order.
func (d *ABCPatternDetector) AdvancePattern(p ABCPattern, bars []types.Bar, barIndex int) ABCPattern {
	p = d.CheckActivation(p, bars, barIndex)
	p = d.UpdateA2(p, bars, barIndex)
	p = d.CheckTargetReached(p, bars, barIndex)
	return p
}

// TrackPattern replays every bar after point B through the lifecycle,
// strictly in chronological order.
func (d *ABCPatternDetector) TrackPattern(p ABCPattern, bars []types.Bar) ABCPattern {
	for i := p.BarB + 1; i < len(bars); i++ {
		p = d.AdvancePattern(p, bars, i)
	}
	return p
}

// ComputeEntryLevels fills the four fib entry levels between B and A2.
// Meaningless before activation seeds A2, so it returns the pattern
// unchanged until then. Idempotent for unchanged inputs.
func (d *ABCPatternDetector) ComputeEntryLevels(p ABCPattern) ABCPattern {
	if !p.Activated() || p.A2Price == 0 {
		return p
	}
	for i, f := range entryFractions {
		if p.Trend == TrendBullish {
			p.EntryLevels[i] = p.PointB + f*(p.A2Price-p.PointB)
		} else {
			p.EntryLevels[i] = p.PointB - f*(p.PointB-p.A2Price)
		}
	}
	return p
}

// ComputeTargets fills the three extension targets projected from B.
func (d *ABCPatternDetector) ComputeTargets(p ABCPattern) ABCPattern {
	if p.PointA == 0 && p.Point0 == 0 {
		return p
	}
	for i, f := range targetFractions {
		if p.Trend == TrendBullish {
			p.TakeProfits[i] = p.PointB + f*(p.PointA-p.Point0)
		} else {
			p.TakeProfits[i] = p.PointB - f*(p.Point0-p.PointA)
		}
	}
	return p
}

// ComputeStopLoss places the stop a fixed pip distance on the losing side
// of B.
func (d *ABCPatternDetector) ComputeStopLoss(p ABCPattern) ABCPattern {
	if p.PointB == 0 {
		return p
	}
	offset := d.StopLossPips * d.PipSize * 10
	if p.Trend == TrendBullish {
		p.StopLoss = p.PointB - offset
	} else {
		p.StopLoss = p.PointB + offset
	}
	return p
}

// ComputeRiskReward derives risk:reward from the first entry, first target
// and the stop. A zero risk distance leaves the ratio at 0 rather than
// dividing by zero.
func (d *ABCPatternDetector) ComputeRiskReward(p ABCPattern) ABCPattern {
	entry := p.EntryLevels[0]
	target := p.TakeProfits[0]
	if entry == 0 || target == 0 || p.StopLoss == 0 {
		return p
	}
	risk := utils.Abs(entry - p.StopLoss)
	if risk == 0 {
		p.RiskReward = 0
		return p
	}
	p.RiskReward = utils.Abs(target-entry) / risk
	return p
}

// refreshTradePlan recomputes every derived trade-plan field from the
// current anchors. Safe to call repeatedly.
func (d *ABCPatternDetector) refreshTradePlan(p ABCPattern) ABCPattern {
	p = d.ComputeEntryLevels(p)
	p = d.ComputeTargets(p)
	p = d.ComputeStopLoss(p)
	p = d.ComputeRiskReward(p)
	return p
}
