package utils

import (
	"log"
	"math"
	"time"
)

func Average(values []float64) float64 {
	if len(values) == 0 {
		return 0.0
	}
	sum := 0.0
	for _, v := range values {
		sum += v
	}
	return sum / float64(len(values))
}

func Abs(x float64) float64 {
	return math.Abs(x)
}

type RetryConfig struct {
	MaxAttempts int
	BaseDelay   time.Duration
	MaxDelay    time.Duration
}

func DefaultRetryConfig() RetryConfig {
	return RetryConfig{
		MaxAttempts: 3,
		BaseDelay:   500 * time.Millisecond,
		MaxDelay:    8 * time.Second,
	}
}

// RetryWithBackoff runs fn up to MaxAttempts times, doubling the delay
// between attempts until MaxDelay.
func RetryWithBackoff(fn func() error, cfg RetryConfig) error {
	delay := cfg.BaseDelay
	var err error
	for attempt := 1; attempt <= cfg.MaxAttempts; attempt++ {
		if err = fn(); err == nil {
			return nil
		}
		if attempt == cfg.MaxAttempts {
			break
		}
		log.Printf("⚠️  Attempt %d/%d failed: %v (retrying in %v)", attempt, cfg.MaxAttempts, err, delay)
		time.Sleep(delay)
		delay *= 2
		if delay > cfg.MaxDelay {
			delay = cfg.MaxDelay
		}
	}
	return err
}
