package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/rustyeddy/backview/backtest"
	"github.com/rustyeddy/backview/market"
)

// RunSummary is one row of the run history listing: identity, the
// parameters the run was made with, and its summary metrics. The full
// payload stays in the child tables until GetRun asks for it.
type RunSummary struct {
	RunID          string           `json:"run_id"`
	CreatedAt      market.UnixTime  `json:"created_at"`
	Symbol         string           `json:"symbol"`
	Strategy       string           `json:"strategy,omitempty"`
	Period         string           `json:"period,omitempty"`
	Interval       string           `json:"interval,omitempty"`
	ShortWindow    int              `json:"short_window"`
	LongWindow     int              `json:"long_window"`
	EMAFast        int              `json:"ema_fast"`
	EMASlow        int              `json:"ema_slow"`
	InitialCapital float64          `json:"initial_capital"`
	FeeRate        float64          `json:"fee_rate"`
	Metrics        backtest.Metrics `json:"metrics"`
}

// RecordRun stores the run row and its full payload in one transaction.
func (s *SQLite) RecordRun(ctx context.Context, runID string, res *backtest.Result) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("record run %s: %w", runID, err)
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx, `
		INSERT INTO backtest_runs
		(run_id, created_at, symbol, strategy, period, interval,
		 short_window, long_window, ema_fast, ema_slow,
		 initial_capital, fee_rate,
		 sharpe, max_drawdown, total_return, win_rate, num_trades)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		runID, time.Now().UTC().Unix(), res.Symbol, res.Strategy, res.Period, res.Interval,
		res.ShortWindow, res.LongWindow, res.EMAFast, res.EMASlow,
		res.InitialCapital, res.FeeRate,
		res.Metrics.Sharpe, res.Metrics.MaxDrawdown, res.Metrics.TotalReturn,
		res.Metrics.WinRate, res.Metrics.NumTrades,
	)
	if err != nil {
		return fmt.Errorf("record run %s: %w", runID, err)
	}

	candleStmt, err := tx.PrepareContext(ctx, `
		INSERT INTO run_candles (run_id, seq, time, open, high, low, close, volume)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("record run %s: %w", runID, err)
	}
	defer candleStmt.Close()
	for i, c := range res.Candles {
		if _, err := candleStmt.ExecContext(ctx, runID, i, c.Time, c.Open, c.High, c.Low, c.Close, c.Volume); err != nil {
			return fmt.Errorf("record run %s candle %d: %w", runID, i, err)
		}
	}

	tradeStmt, err := tx.PrepareContext(ctx, `
		INSERT INTO run_trades (run_id, seq, time, side, price, shares)
		VALUES (?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("record run %s: %w", runID, err)
	}
	defer tradeStmt.Close()
	for i, t := range res.Trades {
		if _, err := tradeStmt.ExecContext(ctx, runID, i, t.Time, string(t.Side), t.Price, t.Shares); err != nil {
			return fmt.Errorf("record run %s trade %d: %w", runID, i, err)
		}
	}

	equityStmt, err := tx.PrepareContext(ctx, `
		INSERT INTO run_equity (run_id, seq, time, equity)
		VALUES (?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("record run %s: %w", runID, err)
	}
	defer equityStmt.Close()
	for i, e := range res.Equity {
		if _, err := equityStmt.ExecContext(ctx, runID, i, e.Time, e.Equity); err != nil {
			return fmt.Errorf("record run %s equity %d: %w", runID, i, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("record run %s: %w", runID, err)
	}
	s.log.Debug("run recorded", "run_id", runID,
		"candles", len(res.Candles), "trades", len(res.Trades))
	return nil
}

// GetRun reloads a run's full payload.
func (s *SQLite) GetRun(ctx context.Context, runID string) (*backtest.Result, error) {
	var res backtest.Result
	err := s.db.QueryRowContext(ctx, `
		SELECT symbol, strategy, period, interval,
		       short_window, long_window, ema_fast, ema_slow,
		       initial_capital, fee_rate,
		       sharpe, max_drawdown, total_return, win_rate, num_trades
		FROM backtest_runs WHERE run_id = ?`, runID).Scan(
		&res.Symbol, &res.Strategy, &res.Period, &res.Interval,
		&res.ShortWindow, &res.LongWindow, &res.EMAFast, &res.EMASlow,
		&res.InitialCapital, &res.FeeRate,
		&res.Metrics.Sharpe, &res.Metrics.MaxDrawdown, &res.Metrics.TotalReturn,
		&res.Metrics.WinRate, &res.Metrics.NumTrades,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("run %s: %w", runID, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("get run %s: %w", runID, err)
	}

	res.Candles, err = s.runCandles(ctx, runID)
	if err != nil {
		return nil, err
	}
	res.Trades, err = s.runTrades(ctx, runID)
	if err != nil {
		return nil, err
	}
	res.Equity, err = s.runEquity(ctx, runID)
	if err != nil {
		return nil, err
	}
	return &res, nil
}

func (s *SQLite) runCandles(ctx context.Context, runID string) ([]market.Candle, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT time, open, high, low, close, volume
		FROM run_candles WHERE run_id = ? ORDER BY seq`, runID)
	if err != nil {
		return nil, fmt.Errorf("get run %s candles: %w", runID, err)
	}
	defer rows.Close()

	out := []market.Candle{}
	for rows.Next() {
		var c market.Candle
		if err := rows.Scan(&c.Time, &c.Open, &c.High, &c.Low, &c.Close, &c.Volume); err != nil {
			return nil, fmt.Errorf("get run %s candles: %w", runID, err)
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

func (s *SQLite) runTrades(ctx context.Context, runID string) ([]market.Trade, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT time, side, price, shares
		FROM run_trades WHERE run_id = ? ORDER BY seq`, runID)
	if err != nil {
		return nil, fmt.Errorf("get run %s trades: %w", runID, err)
	}
	defer rows.Close()

	out := []market.Trade{}
	for rows.Next() {
		var t market.Trade
		var side string
		if err := rows.Scan(&t.Time, &side, &t.Price, &t.Shares); err != nil {
			return nil, fmt.Errorf("get run %s trades: %w", runID, err)
		}
		t.Side = market.Side(side)
		out = append(out, t)
	}
	return out, rows.Err()
}

func (s *SQLite) runEquity(ctx context.Context, runID string) ([]market.EquityPoint, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT time, equity
		FROM run_equity WHERE run_id = ? ORDER BY seq`, runID)
	if err != nil {
		return nil, fmt.Errorf("get run %s equity: %w", runID, err)
	}
	defer rows.Close()

	out := []market.EquityPoint{}
	for rows.Next() {
		var e market.EquityPoint
		if err := rows.Scan(&e.Time, &e.Equity); err != nil {
			return nil, fmt.Errorf("get run %s equity: %w", runID, err)
		}
		out = append(out, e)
	}
	return out, rows.Err()
}

// ListRuns returns the run history, newest first.
func (s *SQLite) ListRuns(ctx context.Context) ([]RunSummary, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT run_id, created_at, symbol, strategy, period, interval,
		       short_window, long_window, ema_fast, ema_slow,
		       initial_capital, fee_rate,
		       sharpe, max_drawdown, total_return, win_rate, num_trades
		FROM backtest_runs
		ORDER BY created_at DESC, run_id DESC`)
	if err != nil {
		return nil, fmt.Errorf("list runs: %w", err)
	}
	defer rows.Close()

	out := []RunSummary{}
	for rows.Next() {
		var r RunSummary
		if err := rows.Scan(
			&r.RunID, &r.CreatedAt, &r.Symbol, &r.Strategy, &r.Period, &r.Interval,
			&r.ShortWindow, &r.LongWindow, &r.EMAFast, &r.EMASlow,
			&r.InitialCapital, &r.FeeRate,
			&r.Metrics.Sharpe, &r.Metrics.MaxDrawdown, &r.Metrics.TotalReturn,
			&r.Metrics.WinRate, &r.Metrics.NumTrades,
		); err != nil {
			return nil, fmt.Errorf("list runs: %w", err)
		}
		out = append(out, r)
	}
	return out, rows.Err()
}

// DeleteRun removes the run row and its payload.
func (s *SQLite) DeleteRun(ctx context.Context, runID string) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("delete run %s: %w", runID, err)
	}
	defer tx.Rollback()

	for _, table := range []string{"run_candles", "run_trades", "run_equity"} {
		if _, err := tx.ExecContext(ctx, `DELETE FROM `+table+` WHERE run_id = ?`, runID); err != nil {
			return fmt.Errorf("delete run %s: %w", runID, err)
		}
	}
	result, err := tx.ExecContext(ctx, `DELETE FROM backtest_runs WHERE run_id = ?`, runID)
	if err != nil {
		return fmt.Errorf("delete run %s: %w", runID, err)
	}
	n, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete run %s: %w", runID, err)
	}
	if n == 0 {
		return fmt.Errorf("run %s: %w", runID, ErrNotFound)
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("delete run %s: %w", runID, err)
	}
	s.log.Debug("run deleted", "run_id", runID)
	return nil
}
