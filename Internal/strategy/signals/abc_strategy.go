package signals

import (
	"fmt"
	"math"
	"sort"

	"github.com/tealfox/abctrader/Internal/strategy/detection"
	"github.com/tealfox/abctrader/Internal/strategy/indicators"
	"github.com/tealfox/abctrader/Internal/types"
)

// Signal action constants - single source of truth
const (
	SignalBuy  = "BUY"
	SignalSell = "SELL"
	SignalHold = "HOLD"
)

// Confidence tiers mapped from the 0-10 point score
const (
	ConfidenceLow    = "LOW"
	ConfidenceMedium = "MEDIUM"
	ConfidenceHigh   = "HIGH"
)

// Signal is the trading recommendation derived from the most recent ABC
// pattern, with the full trade plan attached for formatting and execution.
type Signal struct {
	Symbol      string
	Signal      string
	Confidence  string
	Score       float64
	EntryLevels [4]float64
	StopLoss    float64
	TakeProfits [3]float64
	RiskReward  float64
	Price       float64
	Reasoning   string
	Pattern     detection.ABCPattern
}

// ABCStrategy wraps the pattern detector and turns its freshest pattern
// into a directional signal with a rule-based confidence score.
type ABCStrategy struct {
	Detector      *detection.ABCPatternDetector
	MinRiskReward float64
	ZoneTolerance float64 // fraction of price, entry-zone proximity test
	VolumePeriod  int
	SMAPeriod     int
}

func NewABCStrategy() *ABCStrategy {
	return &ABCStrategy{
		Detector:      detection.NewABCPatternDetector(),
		MinRiskReward: 2.5,
		ZoneTolerance: 0.01,
		VolumePeriod:  20,
		SMAPeriod:     50,
	}
}

// GenerateSignal evaluates the series and returns a signal, or nil when
// there is not enough data or no pattern at all. A pattern that fails the
// entry conditions still yields a HOLD signal so callers can report why.
func (s *ABCStrategy) GenerateSignal(symbol string, bars []types.Bar) *Signal {
	if len(bars) < s.Detector.SwingLength*3 {
		return nil
	}

	patterns := s.Detector.DetectPatterns(bars)
	if len(patterns) == 0 {
		return nil
	}

	// only the single most recently formed pattern matters; older
	// concurrent patterns are discarded, not ranked
	sort.Slice(patterns, func(i, j int) bool {
		return patterns[i].BarB > patterns[j].BarB
	})
	pattern := s.Detector.TrackPattern(patterns[0], bars)

	price := bars[len(bars)-1].Close
	sig := &Signal{
		Symbol:      symbol,
		Signal:      SignalHold,
		Confidence:  ConfidenceLow,
		EntryLevels: pattern.EntryLevels,
		StopLoss:    pattern.StopLoss,
		TakeProfits: pattern.TakeProfits,
		RiskReward:  pattern.RiskReward,
		Price:       price,
		Pattern:     pattern,
	}

	if !pattern.Activated() {
		sig.Reasoning = "Pattern not yet activated"
		return sig
	}
	if pattern.RiskReward < s.MinRiskReward {
		sig.Reasoning = fmt.Sprintf("Risk:reward %.2f below minimum %.2f", pattern.RiskReward, s.MinRiskReward)
		return sig
	}
	if pattern.CReached() {
		sig.Reasoning = "Target already reached - no new entries on a completed pattern"
		return sig
	}
	if !s.inEntryZone(price, pattern) {
		sig.Reasoning = "Price outside entry zone"
		return sig
	}

	if pattern.Trend == detection.TrendBullish {
		sig.Signal = SignalBuy
	} else {
		sig.Signal = SignalSell
	}

	score := s.scoreConfidence(pattern, bars, price)
	sig.Score = score
	sig.Confidence = confidenceTier(score)
	sig.Reasoning = fmt.Sprintf("%s ABC pattern, retrace %.3f, R:R %.2f, score %.0f/10",
		pattern.Trend, pattern.RetracementRatio, pattern.RiskReward, score)

	return sig
}

// inEntryZone reports whether price is within the zone tolerance of any
// computed entry level.
func (s *ABCStrategy) inEntryZone(price float64, p detection.ABCPattern) bool {
	if price == 0 {
		return false
	}
	for _, level := range p.EntryLevels {
		if level == 0 {
			continue
		}
		if math.Abs(price-level)/price <= s.ZoneTolerance {
			return true
		}
	}
	return false
}

// scoreConfidence applies the hand-tuned 0-10 point table. The point
// values are a policy choice kept stable for comparability across scans.
func (s *ABCStrategy) scoreConfidence(p detection.ABCPattern, bars []types.Bar, price float64) float64 {
	score := 0.0

	// risk:reward quality
	switch {
	case p.RiskReward >= 4.0:
		score += 3
	case p.RiskReward >= 3.0:
		score += 2
	case p.RiskReward >= 2.5:
		score += 1
	}

	// golden pocket retracement
	switch {
	case p.RetracementRatio >= 0.5 && p.RetracementRatio <= 0.618:
		score += 2
	case p.RetracementRatio >= 0.45 && p.RetracementRatio <= 0.7:
		score += 1
	}

	if s.inEntryZone(price, p) {
		score += 2
	}

	// volume versus its trailing average
	volumes := types.Volumes(bars)
	avgVol := indicators.AverageVolume(volumes, len(volumes)-1, s.VolumePeriod)
	if avgVol > 0 {
		curVol := volumes[len(volumes)-1]
		if curVol > 1.2*avgVol {
			score += 2
		} else if curVol > avgVol {
			score += 1
		}
	}

	// price on the correct side of the long SMA
	sma := indicators.LatestSMA(types.Closes(bars), s.SMAPeriod)
	if sma > 0 {
		if p.Trend == detection.TrendBullish && price > sma {
			score += 1
		}
		if p.Trend == detection.TrendBearish && price < sma {
			score += 1
		}
	}

	return score
}

func confidenceTier(score float64) string {
	switch {
	case score >= 8:
		return ConfidenceHigh
	case score >= 5:
		return ConfidenceMedium
	default:
		return ConfidenceLow
	}
}
