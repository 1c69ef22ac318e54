package indicators

import (
	"fmt"

	"github.com/rustyeddy/backview/market"
)

// SimpleMA is a streaming simple moving average over candle closes.
// It keeps a ring buffer of the last window closes and a running sum,
// so each update is O(1).
type SimpleMA struct {
	window int
	buf    []float64
	next   int
	count  int
	sum    float64
}

// NewMA creates a streaming simple moving average with the given window.
func NewMA(window int) *SimpleMA {
	if window <= 0 {
		panic("moving average window must be > 0")
	}
	return &SimpleMA{
		window: window,
		buf:    make([]float64, window),
	}
}

func (m *SimpleMA) Name() string {
	return fmt.Sprintf("SMA(%d)", m.window)
}

func (m *SimpleMA) Warmup() int {
	return m.window
}

func (m *SimpleMA) Reset() {
	m.next = 0
	m.count = 0
	m.sum = 0
}

func (m *SimpleMA) Update(c market.Candle) {
	if m.count == m.window {
		m.sum -= m.buf[m.next]
	} else {
		m.count++
	}
	m.buf[m.next] = c.Close
	m.sum += c.Close
	m.next = (m.next + 1) % m.window
}

func (m *SimpleMA) Ready() bool {
	return m.count >= m.window
}

func (m *SimpleMA) Value() float64 {
	if !m.Ready() {
		return 0
	}
	return m.sum / float64(m.window)
}

// ExponentialMA is a streaming exponential moving average seeded with
// the first close, so it tracks the batch EMA exactly at every step.
type ExponentialMA struct {
	window     int
	multiplier float64
	ema        float64
	count      int
}

// NewEMA creates a streaming exponential moving average with the given
// window.
func NewEMA(window int) *ExponentialMA {
	if window <= 0 {
		panic("moving average window must be > 0")
	}
	return &ExponentialMA{
		window:     window,
		multiplier: 2.0 / float64(window+1),
	}
}

func (e *ExponentialMA) Name() string {
	return fmt.Sprintf("EMA(%d)", e.window)
}

func (e *ExponentialMA) Warmup() int {
	return e.window
}

func (e *ExponentialMA) Reset() {
	e.ema = 0
	e.count = 0
}

func (e *ExponentialMA) Update(c market.Candle) {
	e.count++
	if e.count == 1 {
		// Seed with the first close (simple, deterministic).
		e.ema = c.Close
		return
	}
	e.ema = c.Close*e.multiplier + e.ema*(1.0-e.multiplier)
}

// Ready reports whether the window's worth of smoothing has been seen.
// The value is defined from the first update onward regardless.
func (e *ExponentialMA) Ready() bool {
	return e.count >= e.window
}

func (e *ExponentialMA) Value() float64 {
	return e.ema
}
