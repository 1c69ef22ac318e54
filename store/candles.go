package store

import (
	"context"
	"fmt"

	"github.com/rustyeddy/backview/market"
)

// UpsertCandles writes raw market candles for a symbol/interval pair.
// Re-ingesting the same bar replaces it, so feeds can be refreshed
// without clearing the table first.
func (s *SQLite) UpsertCandles(ctx context.Context, symbol, interval string, candles []market.Candle) error {
	if _, err := market.IntervalSeconds(interval); err != nil {
		return err
	}
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("upsert candles %s/%s: %w", symbol, interval, err)
	}
	defer tx.Rollback()

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO candles (symbol, interval, time, open, high, low, close, volume)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(symbol, interval, time) DO UPDATE SET
			open = excluded.open, high = excluded.high,
			low = excluded.low, close = excluded.close,
			volume = excluded.volume`)
	if err != nil {
		return fmt.Errorf("upsert candles %s/%s: %w", symbol, interval, err)
	}
	defer stmt.Close()

	for _, c := range candles {
		if _, err := stmt.ExecContext(ctx, symbol, interval,
			c.Time, c.Open, c.High, c.Low, c.Close, c.Volume); err != nil {
			return fmt.Errorf("upsert candles %s/%s: %w", symbol, interval, err)
		}
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("upsert candles %s/%s: %w", symbol, interval, err)
	}
	s.log.Debug("candles upserted", "symbol", symbol, "interval", interval, "count", len(candles))
	return nil
}

// GetCandles returns stored candles for the symbol/interval in time
// order, bounded by [start, end]. end == 0 means no upper bound.
func (s *SQLite) GetCandles(ctx context.Context, symbol, interval string, start, end market.UnixTime) ([]market.Candle, error) {
	query := `SELECT time, open, high, low, close, volume FROM candles
		WHERE symbol = ? AND interval = ? AND time >= ?`
	args := []any{symbol, interval, start}
	if end != 0 {
		query += ` AND time <= ?`
		args = append(args, end)
	}
	query += ` ORDER BY time`

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("get candles %s/%s: %w", symbol, interval, err)
	}
	defer rows.Close()

	out := []market.Candle{}
	for rows.Next() {
		var c market.Candle
		if err := rows.Scan(&c.Time, &c.Open, &c.High, &c.Low, &c.Close, &c.Volume); err != nil {
			return nil, fmt.Errorf("get candles %s/%s: %w", symbol, interval, err)
		}
		out = append(out, c)
	}
	return out, rows.Err()
}
