package market

import "sort"

// EquityPoint is one sample of a portfolio equity curve. The curve is a
// step function: between samples the value holds, it never interpolates.
type EquityPoint struct {
	Time   UnixTime `json:"time"`
	Equity float64  `json:"equity"`
}

// EquityAsOf returns the equity in effect at time t: the value of the
// last sample at or before t. Times before the first sample floor to
// the first sample's value. An empty curve is worth 0.
func EquityAsOf(points []EquityPoint, t UnixTime) float64 {
	if len(points) == 0 {
		return 0
	}
	// First index with Time > t; the answer sits just before it.
	idx := sort.Search(len(points), func(i int) bool {
		return points[i].Time > t
	})
	if idx == 0 {
		return points[0].Equity
	}
	return points[idx-1].Equity
}

// ResampleEquity projects the equity curve onto a candle timeline, one
// point per candle, carrying EquityAsOf semantics: each output holds the
// last equity sample at or before the candle's time. Both inputs must be
// ascending by time.
func ResampleEquity(points []EquityPoint, candles []Candle) []EquityPoint {
	out := make([]EquityPoint, len(candles))
	if len(points) == 0 {
		for i, c := range candles {
			out[i] = EquityPoint{Time: c.Time}
		}
		return out
	}
	j := 0
	val := points[0].Equity // floor for candles before the first sample
	for i, c := range candles {
		for j+1 < len(points) && points[j+1].Time <= c.Time {
			j++
		}
		if points[j].Time <= c.Time {
			val = points[j].Equity
		}
		out[i] = EquityPoint{Time: c.Time, Equity: val}
	}
	return out
}
