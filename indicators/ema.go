package indicators

import "github.com/rustyeddy/backview/market"

// EMA computes an exponential moving average of candle closes with
// smoothing factor k = 2/(window+1). The series is seeded with the
// first close (simple, deterministic) and emits one point per candle,
// so unlike SMA the output length equals the input length; there is no
// truncated warm-up prefix.
//
// Degenerate inputs (window <= 0, empty candles) return an empty,
// non-nil slice.
func EMA(candles []market.Candle, window int) []market.LinePoint {
	if window <= 0 || len(candles) == 0 {
		return []market.LinePoint{}
	}
	k := 2.0 / float64(window+1)
	out := make([]market.LinePoint, len(candles))
	ema := candles[0].Close
	out[0] = market.LinePoint{Time: candles[0].Time, Value: ema}
	for i := 1; i < len(candles); i++ {
		ema = candles[i].Close*k + ema*(1.0-k)
		out[i] = market.LinePoint{Time: candles[i].Time, Value: ema}
	}
	return out
}
