package replay

import (
	"encoding/json"
	"testing"

	"github.com/rustyeddy/backview/backtest"
	"github.com/rustyeddy/backview/market"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// testResult builds a ten-candle run with closes 10..19 at times
// 0, 60, ..., 540, three trades, and a sparse equity curve.
func testResult() *backtest.Result {
	candles := make([]market.Candle, 10)
	for i := range candles {
		candles[i] = market.Candle{
			Time:  market.UnixTime(int64(i) * 60),
			Close: float64(10 + i),
		}
	}
	return &backtest.Result{
		Symbol:      "AAPL",
		ShortWindow: 3,
		LongWindow:  5,
		EMAFast:     3,
		EMASlow:     5,
		Candles:     candles,
		Trades: []market.Trade{
			{Time: 120, Side: market.Buy, Price: 12, Shares: 10},
			{Time: 300, Side: market.Sell, Price: 15, Shares: 10},
			{Time: 540, Side: market.Buy, Price: 19, Shares: 5},
		},
		Equity: []market.EquityPoint{
			{Time: 0, Equity: 10000},
			{Time: 180, Equity: 10200},
			{Time: 480, Equity: 10150},
		},
	}
}

func TestComposeNotPlayingPassesEverythingThrough(t *testing.T) {
	comp := NewCompositor(testResult())

	for _, status := range []Status{Idle, Stopped} {
		frame := comp.Compose(State{Status: status, Cursor: 10, SpeedMs: 100}, nil)

		assert.Len(t, frame.Candles, 10)
		assert.Len(t, frame.Overlays[backtest.OverlaySMAShort], 8)
		assert.Len(t, frame.Overlays[backtest.OverlaySMALong], 6)
		assert.Len(t, frame.Overlays[backtest.OverlayEMAFast], 10)
		assert.Len(t, frame.Overlays[backtest.OverlayEMASlow], 10)
		assert.Len(t, frame.Markers, 3)
		// The original sparse curve passes through unresampled.
		require.Len(t, frame.Equity, 3)
		assert.Equal(t, market.UnixTime(180), frame.Equity[1].Time)
	}
}

func TestComposePlayingRevealsPrefix(t *testing.T) {
	comp := NewCompositor(testResult())

	frame := comp.Compose(State{Status: Playing, Cursor: 4, SpeedMs: 100}, nil)

	require.Len(t, frame.Candles, 4)
	assert.Equal(t, market.UnixTime(180), frame.Candles[3].Time)

	// Overlay truncation is index-based per line: the short SMA keeps 4
	// of its 8 points, which reaches past the last revealed candle by
	// the warm-up offset. The EMA, being full length, stays aligned.
	smaShort := frame.Overlays[backtest.OverlaySMAShort]
	require.Len(t, smaShort, 4)
	assert.Equal(t, market.UnixTime(300), smaShort[3].Time)

	emaFast := frame.Overlays[backtest.OverlayEMAFast]
	require.Len(t, emaFast, 4)
	assert.Equal(t, market.UnixTime(180), emaFast[3].Time)

	// Only trades at or before the last revealed candle appear.
	require.Len(t, frame.Markers, 1)
	assert.Equal(t, market.Buy, frame.Markers[0].Side)

	// Equity is resampled onto the revealed candle timeline.
	require.Len(t, frame.Equity, 4)
	wantEquity := []float64{10000, 10000, 10000, 10200}
	for i, want := range wantEquity {
		assert.Equal(t, frame.Candles[i].Time, frame.Equity[i].Time)
		assert.Equal(t, want, frame.Equity[i].Equity)
	}
}

func TestComposePlayingCursorZero(t *testing.T) {
	comp := NewCompositor(testResult())

	frame := comp.Compose(State{Status: Playing, Cursor: 0}, nil)

	assert.Empty(t, frame.Candles)
	assert.Empty(t, frame.Markers)
	assert.Empty(t, frame.Equity)
	for _, id := range backtest.AllOverlays {
		assert.Empty(t, frame.Overlays[id], "overlay %s", id)
	}
}

func TestComposeCursorBeyondLengthClamps(t *testing.T) {
	comp := NewCompositor(testResult())

	frame := comp.Compose(State{Status: Playing, Cursor: 99}, nil)

	assert.Len(t, frame.Candles, 10)
	assert.Len(t, frame.Overlays[backtest.OverlaySMAShort], 8)
	assert.Len(t, frame.Markers, 3)
	assert.Len(t, frame.Equity, 10) // resampled, one per revealed candle

	frame = comp.Compose(State{Status: Playing, Cursor: -3}, nil)
	assert.Empty(t, frame.Candles)
}

func TestComposeHiddenOverlayGatesOutputOnly(t *testing.T) {
	comp := NewCompositor(testResult())
	state := State{Status: Playing, Cursor: 7, SpeedMs: 100}

	before, err := json.Marshal(comp.Compose(state, nil))
	require.NoError(t, err)

	hidden := map[backtest.OverlayID]bool{backtest.OverlaySMALong: true}
	during := comp.Compose(state, hidden)
	assert.NotNil(t, during.Overlays[backtest.OverlaySMALong])
	assert.Empty(t, during.Overlays[backtest.OverlaySMALong])
	assert.Len(t, during.Overlays[backtest.OverlaySMAShort], 7)

	// Toggling back on restores byte-identical output: the computed
	// data was never touched.
	after, err := json.Marshal(comp.Compose(state, nil))
	require.NoError(t, err)
	assert.Equal(t, before, after)

	// An explicit false entry is the same as no entry.
	explicit, err := json.Marshal(comp.Compose(state,
		map[backtest.OverlayID]bool{backtest.OverlaySMALong: false}))
	require.NoError(t, err)
	assert.Equal(t, before, explicit)
}

func TestComposeEmptyResult(t *testing.T) {
	comp := NewCompositor(&backtest.Result{Symbol: "VOID"})

	assert.Equal(t, 0, comp.Len())

	for _, state := range []State{
		{Status: Idle, Cursor: 0},
		{Status: Playing, Cursor: 3},
	} {
		frame := comp.Compose(state, nil)
		assert.NotNil(t, frame.Candles)
		assert.Empty(t, frame.Candles)
		assert.NotNil(t, frame.Equity)
		assert.Empty(t, frame.Markers)
		for _, id := range backtest.AllOverlays {
			assert.NotNil(t, frame.Overlays[id])
			assert.Empty(t, frame.Overlays[id])
		}
	}
}

func TestMarkerDerivation(t *testing.T) {
	buy := newMarker(market.Trade{Time: 60, Side: market.Buy, Price: 11, Shares: 3})
	assert.Equal(t, "belowBar", buy.Position)
	assert.Equal(t, "arrowUp", buy.Shape)
	assert.Equal(t, buyColor, buy.Color)
	assert.Equal(t, "BUY @ 11.00", buy.Text)

	sell := newMarker(market.Trade{Time: 120, Side: market.Sell, Price: 14.5, Shares: 3})
	assert.Equal(t, "aboveBar", sell.Position)
	assert.Equal(t, "arrowDown", sell.Shape)
	assert.Equal(t, sellColor, sell.Color)
	assert.Equal(t, "SELL @ 14.50", sell.Text)
}
