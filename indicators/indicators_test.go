package indicators

import (
	"math"
	"testing"

	"github.com/rustyeddy/backview/market"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// candlesFromCloses builds a minimal candle sequence with times
// 0, 60, 120, ... so tests can check time alignment.
func candlesFromCloses(closes ...float64) []market.Candle {
	out := make([]market.Candle, len(closes))
	for i, c := range closes {
		out[i] = market.Candle{Time: market.UnixTime(int64(i) * 60), Close: c}
	}
	return out
}

func TestSMAKnownSequence(t *testing.T) {
	candles := candlesFromCloses(10, 11, 12, 13, 14)

	// window 3 over [10,11,12,13,14]:
	//   (10+11+12)/3 = 11 at t=120
	//   (11+12+13)/3 = 12 at t=180
	//   (12+13+14)/3 = 13 at t=240
	line := SMA(candles, 3)
	require.Len(t, line, 3)
	assert.Equal(t, market.LinePoint{Time: 120, Value: 11}, line[0])
	assert.Equal(t, market.LinePoint{Time: 180, Value: 12}, line[1])
	assert.Equal(t, market.LinePoint{Time: 240, Value: 13}, line[2])
}

func TestSMAWindowOfOneEchoesCloses(t *testing.T) {
	candles := candlesFromCloses(10, 11, 12)

	line := SMA(candles, 1)
	require.Len(t, line, 3)
	for i, c := range candles {
		assert.Equal(t, c.Time, line[i].Time)
		assert.Equal(t, c.Close, line[i].Value)
	}
}

func TestSMAWindowEqualsLength(t *testing.T) {
	candles := candlesFromCloses(10, 11, 12, 13)

	line := SMA(candles, 4)
	require.Len(t, line, 1)
	assert.Equal(t, 11.5, line[0].Value) // (10+11+12+13)/4
	assert.Equal(t, candles[3].Time, line[0].Time)
}

func TestSMADegenerateInputs(t *testing.T) {
	candles := candlesFromCloses(10, 11, 12)

	cases := []struct {
		name    string
		candles []market.Candle
		window  int
	}{
		{"zero window", candles, 0},
		{"negative window", candles, -3},
		{"empty candles", nil, 3},
		{"window longer than input", candles, 4},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			line := SMA(tc.candles, tc.window)
			assert.NotNil(t, line)
			assert.Empty(t, line)
		})
	}
}

func TestSMAMatchesDirectMean(t *testing.T) {
	candles := candlesFromCloses(102, 105, 106, 108, 110, 111, 113, 114, 116, 118)
	window := 5

	line := SMA(candles, window)
	require.Len(t, line, len(candles)-window+1)
	for i, p := range line {
		sum := 0.0
		for j := i; j < i+window; j++ {
			sum += candles[j].Close
		}
		assert.InDelta(t, sum/float64(window), p.Value, 1e-9, "point %d", i)
		assert.Equal(t, candles[i+window-1].Time, p.Time, "point %d", i)
	}
}

func TestSMANaNCarriesThroughRunningSum(t *testing.T) {
	candles := candlesFromCloses(1, 2, math.NaN(), 4, 5)

	line := SMA(candles, 2)
	require.Len(t, line, 4)
	assert.Equal(t, 1.5, line[0].Value)
	assert.True(t, math.IsNaN(line[1].Value))
	assert.True(t, math.IsNaN(line[2].Value))
	// The running sum never recovers once a NaN has entered it.
	assert.True(t, math.IsNaN(line[3].Value))
}

func TestEMAKnownSequence(t *testing.T) {
	candles := candlesFromCloses(10, 11, 12, 13, 14)

	// window 3 => k = 2/(3+1) = 0.5
	//   seed        = 10
	//   0.5*11+0.5*10     = 10.5
	//   0.5*12+0.5*10.5   = 11.25
	//   0.5*13+0.5*11.25  = 12.125
	//   0.5*14+0.5*12.125 = 13.0625
	line := EMA(candles, 3)
	require.Len(t, line, 5)
	want := []float64{10, 10.5, 11.25, 12.125, 13.0625}
	for i, w := range want {
		assert.Equal(t, w, line[i].Value, "point %d", i)
		assert.Equal(t, candles[i].Time, line[i].Time, "point %d", i)
	}
}

func TestEMAFirstValueIsFirstClose(t *testing.T) {
	candles := candlesFromCloses(42.17, 40, 41)

	line := EMA(candles, 9)
	require.Len(t, line, len(candles))
	assert.Equal(t, 42.17, line[0].Value)
}

func TestEMADegenerateInputs(t *testing.T) {
	candles := candlesFromCloses(10, 11, 12)

	for _, window := range []int{0, -1} {
		line := EMA(candles, window)
		assert.NotNil(t, line)
		assert.Empty(t, line)
	}

	line := EMA(nil, 3)
	assert.NotNil(t, line)
	assert.Empty(t, line)
}

func TestEMALengthAlwaysMatchesInput(t *testing.T) {
	// Window longer than the input still yields one point per candle.
	candles := candlesFromCloses(10, 11)
	line := EMA(candles, 50)
	assert.Len(t, line, 2)
}

func TestSMAAndEMALengthContract(t *testing.T) {
	// SMA truncates the warm-up prefix, EMA does not. Consumers align
	// the two by time; this pins the length asymmetry they rely on.
	candles := candlesFromCloses(10, 11, 12, 13, 14, 15)

	sma := SMA(candles, 4)
	ema := EMA(candles, 4)
	assert.Len(t, sma, 3)
	assert.Len(t, ema, 6)
	assert.Equal(t, candles[3].Time, sma[0].Time)
	assert.Equal(t, candles[0].Time, ema[0].Time)
}
