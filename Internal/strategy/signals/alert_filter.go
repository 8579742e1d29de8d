package signals

import (
	"fmt"
	"log"
)

// Reduce alert noise by filtering signals before they reach the bot
type AlertFilter struct {
	MinConfidence  string // lowest tier worth alerting on
	RequireRR      bool   // drop signals missing a risk:reward figure
	VerboseLogging bool
}

type FilteredSignal struct {
	Original      *Signal
	Passed        bool
	FailureReason string
}

func NewAlertFilter() *AlertFilter {
	return &AlertFilter{
		MinConfidence: ConfidenceMedium,
		RequireRR:     true,
	}
}

// Filter decides whether a signal is worth alerting on. HOLD signals and
// signals below the confidence floor are rejected, never dropped with an
// error.
func (f *AlertFilter) Filter(sig *Signal) *FilteredSignal {
	result := &FilteredSignal{Original: sig}

	if sig == nil {
		result.FailureReason = "no signal"
		return result
	}
	if sig.Signal != SignalBuy && sig.Signal != SignalSell {
		result.FailureReason = fmt.Sprintf("action %s is not alertable", sig.Signal)
		return result
	}
	if f.RequireRR && sig.RiskReward <= 0 {
		result.FailureReason = "no risk:reward available"
		return result
	}
	if confidenceRank(sig.Confidence) < confidenceRank(f.MinConfidence) {
		result.FailureReason = fmt.Sprintf("confidence %s below minimum %s", sig.Confidence, f.MinConfidence)
		return result
	}

	result.Passed = true
	if f.VerboseLogging {
		log.Printf("✅ Alert filter passed: %s %s (%s)", sig.Signal, sig.Symbol, sig.Confidence)
	}
	return result
}

func confidenceRank(tier string) int {
	switch tier {
	case ConfidenceHigh:
		return 2
	case ConfidenceMedium:
		return 1
	default:
		return 0
	}
}
