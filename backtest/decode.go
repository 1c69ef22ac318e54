package backtest

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
)

// Decode reads one result export from r. Timestamps may arrive as
// ISO-8601 strings or epoch seconds; both land as epoch seconds in the
// decoded result. Decode does not validate — call Validate before
// trusting ordering or trade sides.
func Decode(r io.Reader) (*Result, error) {
	var res Result
	if err := json.NewDecoder(r).Decode(&res); err != nil {
		return nil, fmt.Errorf("decode backtest result: %w", err)
	}
	return &res, nil
}

// DecodeFile reads a result export from disk.
func DecodeFile(path string) (*Result, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open backtest result: %w", err)
	}
	defer f.Close()
	return Decode(f)
}

// Validate reports structural problems with the run: missing symbol,
// out-of-order candle or equity samples, unknown trade sides. It never
// repairs; the caller decides whether to reject.
func (r *Result) Validate() error {
	if r.Symbol == "" {
		return fmt.Errorf("backtest result: missing symbol")
	}
	for i := 1; i < len(r.Candles); i++ {
		if r.Candles[i].Time < r.Candles[i-1].Time {
			return fmt.Errorf("backtest result: candles out of order at index %d (%d < %d)",
				i, r.Candles[i].Time, r.Candles[i-1].Time)
		}
	}
	for i := 1; i < len(r.Equity); i++ {
		if r.Equity[i].Time < r.Equity[i-1].Time {
			return fmt.Errorf("backtest result: equity curve out of order at index %d (%d < %d)",
				i, r.Equity[i].Time, r.Equity[i-1].Time)
		}
	}
	for i, trade := range r.Trades {
		if !trade.Side.Valid() {
			return fmt.Errorf("backtest result: trade %d has unknown side %q", i, trade.Side)
		}
	}
	return nil
}
