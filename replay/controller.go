// Package replay drives the deterministic step-through animation of a
// finished backtest: a Controller owns the reveal cursor and the single
// live timer, and a Compositor turns the cursor plus the run's data
// into render-ready frames.
package replay

import (
	"sync"
	"time"
)

// Status is the controller's lifecycle state.
type Status string

const (
	// Idle means no replay has run since the controller was created.
	Idle Status = "idle"
	// Playing means the timer is live and the cursor advances on ticks.
	Playing Status = "playing"
	// Stopped means replay halted; the cursor stays where it froze.
	Stopped Status = "stopped"
)

// DefaultSpeedMs is the tick interval used when none is configured.
const DefaultSpeedMs = 100

// State is a snapshot of the controller. Cursor is the sole source of
// truth for how much of every derived series is revealed.
type State struct {
	Status  Status `json:"status"`
	Cursor  int    `json:"cursor"`
	SpeedMs int    `json:"speed_ms"`
}

// Controller is a small state machine over {Idle, Playing, Stopped}
// with one piece of mutable data, the reveal cursor. At most one timer
// is live per controller at any moment: every transition cancels the
// previous timer before scheduling a new one, and a generation counter
// turns late deliveries from a cancelled timer into no-ops.
//
// The OnChange callback fires after every state mutation while the
// controller's lock is held, so invocations are strictly serial and in
// state order. The callback must not call back into the controller.
type Controller struct {
	mu       sync.Mutex
	status   Status
	cursor   int
	speedMs  int
	length   int
	sched    Scheduler
	stop     func()
	gen      uint64
	onChange func(State)
}

// NewController creates a controller for a candle sequence of the given
// length, fully revealed and idle. A nil scheduler selects the ticker
// scheduler; speedMs <= 0 selects DefaultSpeedMs. onChange may be nil.
func NewController(length, speedMs int, sched Scheduler, onChange func(State)) *Controller {
	if sched == nil {
		sched = TickerScheduler{}
	}
	if speedMs <= 0 {
		speedMs = DefaultSpeedMs
	}
	if length < 0 {
		length = 0
	}
	return &Controller{
		status:   Idle,
		cursor:   length,
		speedMs:  speedMs,
		length:   length,
		sched:    sched,
		onChange: onChange,
	}
}

// State returns a snapshot of the current replay state.
func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.snapshotLocked()
}

// Start begins replay from the first candle: cursor moves to 1 and a
// repeating tick is scheduled every speedMs milliseconds. Any previous
// timer is cancelled first, so rapid repeated starts never leak timers.
// With no candles Start is a no-op.
func (c *Controller) Start() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.length == 0 {
		return
	}
	c.cancelLocked()
	c.status = Playing
	c.cursor = 1
	gen := c.gen
	interval := time.Duration(c.speedMs) * time.Millisecond
	c.stop = c.sched.Every(interval, func() { c.tick(gen) })
	c.notifyLocked()
}

// tick advances the cursor by one. Delivered by the scheduler; ignored
// unless the generation matches and the controller is still playing.
// Reaching the end clamps the cursor, cancels the timer, and stops:
// replay runs to completion, it does not loop.
func (c *Controller) tick(gen uint64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if gen != c.gen || c.status != Playing {
		return
	}
	c.cursor++
	if c.cursor >= c.length {
		c.cursor = c.length
		c.status = Stopped
		c.cancelLocked()
	}
	c.notifyLocked()
}

// Stop cancels the timer and freezes the reveal at the current cursor.
// Only meaningful while playing; otherwise a no-op.
func (c *Controller) Stop() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.status != Playing {
		return
	}
	c.cancelLocked()
	c.status = Stopped
	c.notifyLocked()
}

// Reset installs a new candle sequence length: the timer (if any) is
// cancelled unconditionally, the state becomes Stopped, and the cursor
// moves to length so a freshly loaded result shows fully revealed.
func (c *Controller) Reset(length int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if length < 0 {
		length = 0
	}
	c.cancelLocked()
	c.status = Stopped
	c.length = length
	c.cursor = length
	c.notifyLocked()
}

// SetSpeed updates the tick interval for the next Start. An in-flight
// timer keeps its current interval; non-positive values are ignored.
func (c *Controller) SetSpeed(ms int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if ms <= 0 {
		return
	}
	c.speedMs = ms
	c.notifyLocked()
}

// Close cancels any live timer without emitting a state change. Used at
// teardown when the consumer is already gone.
func (c *Controller) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.cancelLocked()
	if c.status == Playing {
		c.status = Stopped
	}
}

func (c *Controller) cancelLocked() {
	if c.stop != nil {
		c.stop()
		c.stop = nil
	}
	// Invalidate callbacks already in flight from the old timer.
	c.gen++
}

func (c *Controller) snapshotLocked() State {
	return State{Status: c.status, Cursor: c.cursor, SpeedMs: c.speedMs}
}

func (c *Controller) notifyLocked() {
	if c.onChange != nil {
		c.onChange(c.snapshotLocked())
	}
}
