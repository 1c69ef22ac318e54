package replay

import (
	"github.com/rustyeddy/backview/backtest"
	"github.com/rustyeddy/backview/market"
)

// Compositor recombines one run's full data with a replay state and
// visibility toggles into the frame the rendering layer consumes. It is
// immutable after construction: loading a new result means building a
// new Compositor, so a frame can never mix series from two results.
type Compositor struct {
	candles  []market.Candle
	trades   []market.Trade
	equity   []market.EquityPoint
	overlays map[backtest.OverlayID][]market.LinePoint
}

// NewCompositor derives the overlay lines from the result and captures
// its data for composition.
func NewCompositor(res *backtest.Result) *Compositor {
	return &Compositor{
		candles:  res.Candles,
		trades:   res.Trades,
		equity:   res.Equity,
		overlays: res.Overlays(),
	}
}

// Len returns the number of candles available for revealing.
func (c *Compositor) Len() int {
	return len(c.candles)
}

// Compose produces the frame for a replay state. hidden gates overlays
// out of the frame (an empty line keeps the shape stable for
// rendering); it never touches the computed data, so unhiding restores
// the exact previous bytes. Compose is pure: the same state and hidden
// set always produce the same frame.
//
// While playing, every series is truncated from the single cursor:
// candles by candles[:cursor], each overlay independently by
// line[:min(cursor, len(line))]. Overlay truncation is by index, not by
// timestamp, matching the chart's incremental reveal; an SMA line's
// visible end can therefore trail the candle cursor by its warm-up
// offset. Markers are the trades at or before the last revealed
// candle's time, and the equity curve is resampled onto the revealed
// candle timeline via the step-function lookup. When not playing,
// everything passes through in full.
func (c *Compositor) Compose(state State, hidden map[backtest.OverlayID]bool) *Frame {
	playing := state.Status == Playing
	cursor := state.Cursor
	if cursor < 0 {
		cursor = 0
	}

	candles := c.candles
	if playing {
		candles = c.candles[:min(cursor, len(c.candles))]
	}
	if candles == nil {
		candles = []market.Candle{}
	}

	overlays := make(map[backtest.OverlayID][]market.LinePoint, len(c.overlays))
	for id, line := range c.overlays {
		switch {
		case hidden[id]:
			overlays[id] = []market.LinePoint{}
		case playing:
			overlays[id] = line[:min(cursor, len(line))]
		default:
			overlays[id] = line
		}
	}

	markers := make([]Marker, 0, len(c.trades))
	if playing {
		if len(candles) > 0 {
			lastRevealed := candles[len(candles)-1].Time
			for _, t := range c.trades {
				if t.Time <= lastRevealed {
					markers = append(markers, newMarker(t))
				}
			}
		}
	} else {
		for _, t := range c.trades {
			markers = append(markers, newMarker(t))
		}
	}

	equity := c.equity
	if playing {
		equity = market.ResampleEquity(c.equity, candles)
	}
	if equity == nil {
		equity = []market.EquityPoint{}
	}

	return &Frame{
		Candles:  candles,
		Overlays: overlays,
		Markers:  markers,
		Equity:   equity,
		State:    state,
	}
}
