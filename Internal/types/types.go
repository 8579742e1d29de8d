package types

import "time"

type Bar struct {
	Timestamp string  `json:"t"`
	Open      float64 `json:"o"`
	High      float64 `json:"h"`
	Low       float64 `json:"l"`
	Close     float64 `json:"c"`
	Volume    int64   `json:"v"`
}

// Time parses the bar's RFC3339 timestamp; zero time if it doesn't parse.
func (b Bar) Time() time.Time {
	t, err := time.Parse(time.RFC3339, b.Timestamp)
	if err != nil {
		return time.Time{}
	}
	return t
}

// Date returns the bar date as YYYY-MM-DD for trade records.
func (b Bar) Date() string {
	t := b.Time()
	if t.IsZero() {
		return "1970-01-01"
	}
	return t.Format("2006-01-02")
}

// Closes extracts the close column from a bar series.
func Closes(bars []Bar) []float64 {
	out := make([]float64, len(bars))
	for i, bar := range bars {
		out[i] = bar.Close
	}
	return out
}

// Volumes extracts the volume column as floats.
func Volumes(bars []Bar) []float64 {
	out := make([]float64, len(bars))
	for i, bar := range bars {
		out[i] = float64(bar.Volume)
	}
	return out
}
