package backtest

import (
	"bytes"
	"testing"

	"github.com/rustyeddy/backview/indicators"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOverlays(t *testing.T) {
	res := decodeSample(t)

	overlays := res.Overlays()
	require.Len(t, overlays, 4)

	// Closes are 10..14; windows come from the fixture (SMA 3/4, EMA 3/5).
	sma := overlays[OverlaySMAShort]
	require.Len(t, sma, 3)
	assert.Equal(t, 11.0, sma[0].Value)
	assert.Equal(t, 13.0, sma[2].Value)

	assert.Len(t, overlays[OverlaySMALong], 2)
	assert.Len(t, overlays[OverlayEMAFast], 5)
	assert.Len(t, overlays[OverlayEMASlow], 5)

	// Derived lines agree with the indicator functions they came from.
	assert.Equal(t, indicators.EMA(res.Candles, res.EMAFast), overlays[OverlayEMAFast])
}

func TestOverlaysDegenerateWindows(t *testing.T) {
	res := decodeSample(t)
	res.ShortWindow = 0
	res.EMASlow = -2

	overlays := res.Overlays()
	assert.NotNil(t, overlays[OverlaySMAShort])
	assert.Empty(t, overlays[OverlaySMAShort])
	assert.NotNil(t, overlays[OverlayEMASlow])
	assert.Empty(t, overlays[OverlayEMASlow])
	assert.Len(t, overlays[OverlaySMALong], 2)
}

func TestOverlayIDValid(t *testing.T) {
	for _, id := range AllOverlays {
		assert.True(t, id.Valid(), "overlay %s", id)
	}
	assert.False(t, OverlayID("bollinger").Valid())
	assert.False(t, OverlayID("").Valid())
}

func TestPrintSummary(t *testing.T) {
	res := decodeSample(t)

	var buf bytes.Buffer
	PrintSummary(&buf, res)

	out := buf.String()
	assert.Contains(t, out, "Symbol:        AAPL")
	assert.Contains(t, out, "Candles:       5")
	assert.Contains(t, out, "Trades:        2")
	assert.Contains(t, out, "Win Rate:      100.00%")
}
