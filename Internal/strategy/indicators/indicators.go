package indicators

// CalculateSMA computes the Simple Moving Average. Entries before the
// first full period are left at zero.
func CalculateSMA(data []float64, period int) []float64 {
	sma := make([]float64, len(data))
	if period <= 0 || len(data) < period {
		return sma
	}

	sum := 0.0
	for i := 0; i < period; i++ {
		sum += data[i]
	}
	sma[period-1] = sum / float64(period)

	for i := period; i < len(data); i++ {
		sum += data[i] - data[i-period]
		sma[i] = sum / float64(period)
	}

	return sma
}

// LatestSMA returns the SMA of the trailing period ending at the last
// element, or 0 if there is not enough data.
func LatestSMA(data []float64, period int) float64 {
	if period <= 0 || len(data) < period {
		return 0.0
	}
	sum := 0.0
	for i := len(data) - period; i < len(data); i++ {
		sum += data[i]
	}
	return sum / float64(period)
}

// AverageVolume returns the mean volume of the trailing period ending at
// index end (exclusive of end itself), or 0 if not enough history.
func AverageVolume(volumes []float64, end, period int) float64 {
	if period <= 0 || end < period || end > len(volumes) {
		return 0.0
	}
	sum := 0.0
	for i := end - period; i < end; i++ {
		sum += volumes[i]
	}
	return sum / float64(period)
}
