package market

// Candle is one OHLC (Open, High, Low, Close) bar on a fixed interval.
type Candle struct {
	Time   UnixTime `json:"time"`
	Open   float64  `json:"open"`
	High   float64  `json:"high"`
	Low    float64  `json:"low"`
	Close  float64  `json:"close"`
	Volume float64  `json:"volume,omitempty"`
}

// Closes extracts the close series, the input most indicators consume.
func Closes(candles []Candle) []float64 {
	out := make([]float64, len(candles))
	for i, c := range candles {
		out[i] = c.Close
	}
	return out
}

// LinePoint is one sample of a derived overlay series (moving average,
// resampled equity). Overlay series may be shorter than the candle
// series they derive from, so consumers align by Time, never by index.
type LinePoint struct {
	Time  UnixTime `json:"time"`
	Value float64  `json:"value"`
}
