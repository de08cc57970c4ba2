package indicator

import "gonum.org/v1/gonum/interp"

const (
	macdFastSpan   = 12
	macdSlowSpan   = 26
	macdSignalSpan = 9
)

type MACDSeries struct {
	MACD      []float64
	Signal    []float64
	Histogram []float64

	// Momentum is the histogram smoothed with a monotone cubic spline
	// fitted through its own sample points. It is a visual aid, not a
	// distinct signal.
	Momentum []float64
}

func MACD(values []float64) MACDSeries {
	if len(values) == 0 {
		return MACDSeries{}
	}

	fast := EMA(values, macdFastSpan)
	slow := EMA(values, macdSlowSpan)

	macd := make([]float64, len(values))
	for i := range macd {
		macd[i] = fast[i] - slow[i]
	}

	signal := EMA(macd, macdSignalSpan)
	hist := make([]float64, len(values))
	for i := range hist {
		hist[i] = macd[i] - signal[i]
	}

	return MACDSeries{
		MACD:      macd,
		Signal:    signal,
		Histogram: hist,
		Momentum:  smooth(hist),
	}
}

func smooth(hist []float64) []float64 {
	out := make([]float64, len(hist))
	copy(out, hist)
	if len(hist) < 2 {
		return out
	}

	xs := make([]float64, len(hist))
	for i := range xs {
		xs[i] = float64(i)
	}

	var spline interp.FritschButland
	if err := spline.Fit(xs, hist); err != nil {
		return out
	}

	for i := range out {
		out[i] = spline.Predict(xs[i])
	}

	return out
}
