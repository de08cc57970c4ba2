package indicator

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMACD(t *testing.T) {
	data := []float64{10, 12, 11, 13, 15, 14, 16, 18, 17, 19, 21, 20, 22, 24, 23}

	m := MACD(data)
	require.Len(t, m.MACD, len(data))
	require.Len(t, m.Signal, len(data))
	require.Len(t, m.Histogram, len(data))
	require.Len(t, m.Momentum, len(data))

	fast := EMA(data, macdFastSpan)
	slow := EMA(data, macdSlowSpan)
	signal := EMA(m.MACD, macdSignalSpan)
	for i := range data {
		assert.InDelta(t, fast[i]-slow[i], m.MACD[i], 1e-12)
		assert.InDelta(t, signal[i], m.Signal[i], 1e-12)
		assert.InDelta(t, m.MACD[i]-m.Signal[i], m.Histogram[i], 1e-12)
	}
}

// The momentum curve is a smoothing aid fitted through the histogram's own
// sample points, so it must agree with the histogram there.
func TestMACD_MomentumInterpolatesHistogram(t *testing.T) {
	data := []float64{5, 9, 4, 11, 6, 13, 5, 12, 8, 14, 7, 15}

	m := MACD(data)
	require.Len(t, m.Momentum, len(m.Histogram))
	for i := range m.Histogram {
		assert.InDeltaf(t, m.Histogram[i], m.Momentum[i], 1e-9, "sample point %d", i)
	}
}

func TestMACD_Empty(t *testing.T) {
	m := MACD(nil)
	assert.Empty(t, m.MACD)
	assert.Empty(t, m.Signal)
	assert.Empty(t, m.Histogram)
	assert.Empty(t, m.Momentum)
}

func TestMACD_SingleValue(t *testing.T) {
	m := MACD([]float64{42})
	require.Len(t, m.MACD, 1)
	assert.Equal(t, 0.0, m.MACD[0])
	assert.Equal(t, 0.0, m.Histogram[0])
	assert.Equal(t, 0.0, m.Momentum[0])
}
