package market

import (
	"encoding/json"
	"strings"
)

// Side is the direction of an executed trade.
type Side string

const (
	Buy  Side = "BUY"
	Sell Side = "SELL"
)

// Valid reports whether the side is one of the two known directions.
func (s Side) Valid() bool {
	return s == Buy || s == Sell
}

// UnmarshalJSON normalizes case so "buy" and "BUY" decode identically.
func (s *Side) UnmarshalJSON(data []byte) error {
	var raw string
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	*s = Side(strings.ToUpper(strings.TrimSpace(raw)))
	return nil
}

// Trade is one fill reported by an external backtest engine. Trades are
// ingested as-is; nothing in this module ever creates one.
type Trade struct {
	Time   UnixTime `json:"time"`
	Side   Side     `json:"side"`
	Price  float64  `json:"price"`
	Shares float64  `json:"shares"`
}
