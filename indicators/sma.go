package indicators

import "github.com/rustyeddy/backview/market"

// SMA computes a simple moving average of candle closes with a running
// sum. One point is emitted per index i in [window-1, n-1], carrying
// the mean of the window ending at i and that candle's time, so the
// output length is max(0, n-window+1): the warm-up prefix emits
// nothing, and consumers must align with other series by time, not by
// index.
//
// Degenerate inputs (window <= 0, empty candles, window > n) return an
// empty, non-nil slice. NaN closes flow through the arithmetic
// untouched; the running sum carries a NaN forward once one enters it.
func SMA(candles []market.Candle, window int) []market.LinePoint {
	if window <= 0 || len(candles) < window {
		return []market.LinePoint{}
	}
	out := make([]market.LinePoint, 0, len(candles)-window+1)
	sum := 0.0
	for i, c := range candles {
		sum += c.Close
		if i >= window {
			sum -= candles[i-window].Close
		}
		if i >= window-1 {
			out = append(out, market.LinePoint{
				Time:  c.Time,
				Value: sum / float64(window),
			})
		}
	}
	return out
}
