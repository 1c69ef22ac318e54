package replay

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Drives a controller and compositor together the way a live session
// does: every state change composes a frame, and the revealed candle
// counts must walk 1..n in lockstep with the cursor.
func TestReplayProducesFramesInLockstep(t *testing.T) {
	res := testResult()
	res.Candles = res.Candles[:5]
	res.Trades = res.Trades[:2]
	comp := NewCompositor(res)

	sched := &manualScheduler{}
	var frames []*Frame
	c := NewController(comp.Len(), 50, sched, func(s State) {
		frames = append(frames, comp.Compose(s, nil))
	})

	c.Start()
	for i := 0; i < 4; i++ {
		sched.fire()
	}

	require.Len(t, frames, 5)
	for i, frame := range frames[:4] {
		assert.Len(t, frame.Candles, i+1, "frame %d", i)
		assert.Equal(t, i+1, frame.State.Cursor, "frame %d", i)
		assert.Len(t, frame.Equity, i+1, "frame %d", i)
	}

	// Completion hands back the full view, sparse equity curve included.
	last := frames[len(frames)-1]
	assert.Equal(t, Stopped, last.State.Status)
	assert.Equal(t, 5, last.State.Cursor)
	assert.Len(t, last.Candles, 5)
	assert.Len(t, last.Markers, 2)
	assert.Len(t, last.Equity, 3)
	assert.Equal(t, 0, sched.live())
}

// Loading a new result swaps the compositor wholesale, so frames never
// mix one run's series with another run's cursor.
func TestReplayNewResultSwapsAtomically(t *testing.T) {
	first := NewCompositor(testResult())

	second := testResult()
	second.Candles = second.Candles[:4]
	second.Trades = nil
	swapped := NewCompositor(second)

	sched := &manualScheduler{}
	current := first
	var frames []*Frame
	c := NewController(first.Len(), 50, sched, func(s State) {
		frames = append(frames, current.Compose(s, nil))
	})

	c.Start()
	sched.fire()

	// New result arrives: swap the compositor, then reset the cursor.
	current = swapped
	c.Reset(swapped.Len())

	last := frames[len(frames)-1]
	assert.Equal(t, Stopped, last.State.Status)
	assert.Equal(t, 4, last.State.Cursor)
	assert.Len(t, last.Candles, 4)
	assert.Empty(t, last.Markers)
}
