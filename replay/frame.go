package replay

import (
	"fmt"

	"github.com/rustyeddy/backview/backtest"
	"github.com/rustyeddy/backview/market"
)

// Marker is one trade annotation positioned on the price chart, in the
// vocabulary the candlestick widget consumes: buys sit below the bar
// pointing up, sells above the bar pointing down.
type Marker struct {
	Time     market.UnixTime `json:"time"`
	Side     market.Side     `json:"side"`
	Price    float64         `json:"price"`
	Shares   float64         `json:"shares"`
	Position string          `json:"position"`
	Shape    string          `json:"shape"`
	Color    string          `json:"color"`
	Text     string          `json:"text"`
}

const (
	buyColor  = "#26a69a"
	sellColor = "#ef5350"
)

func newMarker(t market.Trade) Marker {
	m := Marker{
		Time:   t.Time,
		Side:   t.Side,
		Price:  t.Price,
		Shares: t.Shares,
	}
	if t.Side == market.Sell {
		m.Position = "aboveBar"
		m.Shape = "arrowDown"
		m.Color = sellColor
	} else {
		m.Position = "belowBar"
		m.Shape = "arrowUp"
		m.Color = buyColor
	}
	m.Text = fmt.Sprintf("%s @ %.2f", t.Side, t.Price)
	return m
}

// Frame is one render-ready snapshot: exactly the candle, overlay,
// marker, and equity datasets the chart widgets should display for the
// replay state it carries. Slices share backing arrays with the
// compositor's data and must not be mutated by consumers.
type Frame struct {
	Candles  []market.Candle                           `json:"candles"`
	Overlays map[backtest.OverlayID][]market.LinePoint `json:"overlays"`
	Markers  []Marker                                  `json:"markers"`
	Equity   []market.EquityPoint                      `json:"equity"`
	State    State                                     `json:"state"`
}
