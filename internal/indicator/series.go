package indicator

import (
	"math"
	"time"

	"github.com/gamma-omg/stockdash/internal/market"
)

const (
	FastEMASpan = 10
	SlowEMASpan = 30

	DefaultRSIWindow = 14
)

// Series carries every indicator derived from one fetched bar range. All
// slices are index-aligned with Times; positions with insufficient history
// hold NaN.
type Series struct {
	Times   []time.Time
	Close   []float64
	EMAFast []float64
	EMASlow []float64
	RSI     []float64
	MACD    MACDSeries

	LastClose  float64
	PeriodLow  float64
	PeriodHigh float64
}

// Compute derives the full indicator set from a time-ordered bar range.
// An empty input yields an empty Series.
func Compute(bars []market.Bar) Series {
	if len(bars) == 0 {
		return Series{}
	}

	s := Series{
		Times: make([]time.Time, len(bars)),
		Close: make([]float64, len(bars)),
	}

	low := math.Inf(1)
	high := math.Inf(-1)
	for i, b := range bars {
		s.Times[i] = b.Time
		s.Close[i], _ = b.Close.Float64()

		if l, _ := b.Low.Float64(); l < low {
			low = l
		}
		if h, _ := b.High.Float64(); h > high {
			high = h
		}
	}

	s.EMAFast = EMA(s.Close, FastEMASpan)
	s.EMASlow = EMA(s.Close, SlowEMASpan)
	s.RSI = RSI(s.Close, DefaultRSIWindow)
	s.MACD = MACD(s.Close)
	s.LastClose = s.Close[len(s.Close)-1]
	s.PeriodLow = low
	s.PeriodHigh = high

	return s
}

// EMA computes an exponential moving average with smoothing 2/(span+1),
// seeded with the first value.
func EMA(values []float64, span int) []float64 {
	if len(values) == 0 {
		return nil
	}

	ema := make([]float64, len(values))
	ema[0] = values[0]

	a := 2.0 / (float64(span) + 1)
	for i, v := range values[1:] {
		ema[i+1] = v*a + ema[i]*(1-a)
	}

	return ema
}

// RSI computes the relative strength index over a simple rolling mean of
// per-step gains and losses. The first window positions are NaN, matching
// the rolling-window warmup of the reference batch output; a flat window
// stays NaN as well (0/0 strength).
func RSI(values []float64, window int) []float64 {
	n := len(values)
	if n == 0 {
		return nil
	}

	rsi := make([]float64, n)
	for i := range rsi {
		rsi[i] = math.NaN()
	}

	if window <= 0 || n <= window {
		return rsi
	}

	gains := make([]float64, n)
	losses := make([]float64, n)
	for i := 1; i < n; i++ {
		d := values[i] - values[i-1]
		if d > 0 {
			gains[i] = d
		} else {
			losses[i] = -d
		}
	}

	var gainSum, lossSum float64
	for i := 1; i < n; i++ {
		gainSum += gains[i]
		lossSum += losses[i]
		if i < window {
			continue
		}
		if i > window {
			gainSum -= gains[i-window]
			lossSum -= losses[i-window]
		}

		rs := gainSum / lossSum
		rsi[i] = 100 - 100/(1+rs)
	}

	return rsi
}
