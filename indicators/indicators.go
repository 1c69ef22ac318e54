// Package indicators derives moving-average overlay series from candle
// closes. The batch functions are pure: same candles and window in,
// same line out, no state carried between calls. Streaming counterparts
// exist for consumers that reveal candles one at a time.
package indicators

import "github.com/rustyeddy/backview/market"

// Indicator computes a single streaming value from candles.
// It is deterministic and produces the same sequence in replay and
// batch use.
type Indicator interface {
	// Name returns a stable identifier like "SMA(20)" or "EMA(12)".
	Name() string

	// Warmup returns how many updates are needed before Ready() can be true.
	Warmup() int

	// Reset clears all internal state.
	Reset()

	// Update consumes the next *closed* candle and updates internal state.
	Update(c market.Candle)

	// Ready reports whether Value() is meaningful (warmup completed).
	Ready() bool

	// Value returns the current indicator value. Callers should check
	// Ready() — before warmup it returns 0 or a partially seeded value.
	Value() float64
}
