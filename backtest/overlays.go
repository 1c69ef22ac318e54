package backtest

import (
	"github.com/rustyeddy/backview/indicators"
	"github.com/rustyeddy/backview/market"
)

// OverlayID names one derived indicator line on the price chart.
type OverlayID string

const (
	OverlaySMAShort OverlayID = "sma_short"
	OverlaySMALong  OverlayID = "sma_long"
	OverlayEMAFast  OverlayID = "ema_fast"
	OverlayEMASlow  OverlayID = "ema_slow"
)

// AllOverlays lists every overlay in display order.
var AllOverlays = []OverlayID{
	OverlaySMAShort,
	OverlaySMALong,
	OverlayEMAFast,
	OverlayEMASlow,
}

// Valid reports whether id names a known overlay.
func (id OverlayID) Valid() bool {
	switch id {
	case OverlaySMAShort, OverlaySMALong, OverlayEMAFast, OverlayEMASlow:
		return true
	}
	return false
}

// Overlays computes the four indicator lines from the run's candles and
// windows. Recomputing is cheap and pure; callers may cache the map but
// never mutate the slices inside it. Degenerate windows produce empty
// (non-nil) lines.
func (r *Result) Overlays() map[OverlayID][]market.LinePoint {
	return map[OverlayID][]market.LinePoint{
		OverlaySMAShort: indicators.SMA(r.Candles, r.ShortWindow),
		OverlaySMALong:  indicators.SMA(r.Candles, r.LongWindow),
		OverlayEMAFast:  indicators.EMA(r.Candles, r.EMAFast),
		OverlayEMASlow:  indicators.EMA(r.Candles, r.EMASlow),
	}
}
