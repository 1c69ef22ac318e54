// Package backtest models finished backtest runs as produced by an
// external engine. Nothing here evaluates a strategy; a run arrives
// fully computed (candles, trades, equity curve, metrics) and this
// package decodes, validates, and derives overlay lines from it.
package backtest

import (
	"github.com/rustyeddy/backview/market"
)

// Result is one finished backtest run, decoded from the engine's JSON
// export.
type Result struct {
	Symbol   string `json:"symbol"`
	Strategy string `json:"strategy,omitempty"`
	Period   string `json:"period,omitempty"`
	Interval string `json:"interval,omitempty"`

	// Indicator windows chosen for the run; each drives one overlay
	// line. A window of 0 leaves that overlay empty.
	ShortWindow int `json:"short_window"`
	LongWindow  int `json:"long_window"`
	EMAFast     int `json:"ema_fast"`
	EMASlow     int `json:"ema_slow"`

	InitialCapital float64 `json:"initial_capital,omitempty"`
	FeeRate        float64 `json:"fee_rate,omitempty"`

	Candles []market.Candle      `json:"ohlc"`
	Trades  []market.Trade       `json:"trades"`
	Equity  []market.EquityPoint `json:"equity_curve"`
	Metrics Metrics              `json:"metrics"`
}

// Metrics are the summary statistics reported with a run. They are
// opaque to the replay core; the API and store surface them as-is.
type Metrics struct {
	Sharpe      float64 `json:"sharpe"`
	MaxDrawdown float64 `json:"max_drawdown"`
	TotalReturn float64 `json:"total_return"`
	WinRate     float64 `json:"win_rate"`
	NumTrades   int     `json:"num_trades"`
}

// Span returns the time range covered by the run's candles.
func (r *Result) Span() (start, end market.UnixTime) {
	if len(r.Candles) == 0 {
		return 0, 0
	}
	return r.Candles[0].Time, r.Candles[len(r.Candles)-1].Time
}
