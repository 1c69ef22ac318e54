package store

import (
	"context"
	"database/sql"
	"path/filepath"
	"testing"

	_ "github.com/mattn/go-sqlite3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rustyeddy/backview/backtest"
	"github.com/rustyeddy/backview/market"
)

func newTestStore(t *testing.T) (*SQLite, string) {
	t.Helper()

	dir := t.TempDir()
	path := filepath.Join(dir, "test.db")

	s, err := NewSQLite(path, nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })

	return s, path
}

func sampleRunResult() *backtest.Result {
	return &backtest.Result{
		Symbol:         "AAPL",
		Strategy:       "sma_cross",
		Period:         "6mo",
		Interval:       "1d",
		ShortWindow:    3,
		LongWindow:     5,
		EMAFast:        3,
		EMASlow:        5,
		InitialCapital: 10000,
		FeeRate:        0.0005,
		Candles: []market.Candle{
			{Time: 100, Open: 10, High: 10.5, Low: 9.5, Close: 10, Volume: 1000},
			{Time: 200, Open: 10, High: 11.5, Low: 10, Close: 11, Volume: 1100},
			{Time: 300, Open: 11, High: 12.5, Low: 11, Close: 12, Volume: 900},
		},
		Trades: []market.Trade{
			{Time: 200, Side: market.Buy, Price: 11, Shares: 9},
			{Time: 300, Side: market.Sell, Price: 12, Shares: 9},
		},
		Equity: []market.EquityPoint{
			{Time: 100, Equity: 10000},
			{Time: 200, Equity: 10000},
			{Time: 300, Equity: 10089},
		},
		Metrics: backtest.Metrics{
			Sharpe:      1.2,
			MaxDrawdown: -0.05,
			TotalReturn: 0.0089,
			WinRate:     1,
			NumTrades:   2,
		},
	}
}

func TestStoreSchemaCreated(t *testing.T) {
	t.Parallel()

	s, path := newTestStore(t)
	require.NoError(t, s.Close())

	db, err := sql.Open("sqlite3", path)
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	rows, err := db.Query(`SELECT name FROM sqlite_master WHERE type='table'`)
	require.NoError(t, err)
	defer rows.Close()

	found := map[string]bool{}
	for rows.Next() {
		var name string
		require.NoError(t, rows.Scan(&name))
		found[name] = true
	}
	require.NoError(t, rows.Err())

	for _, table := range []string{
		"backtest_runs", "run_candles", "run_trades", "run_equity",
		"strategy_profiles", "candles",
	} {
		assert.True(t, found[table], "missing table %s", table)
	}
}

func TestRecordAndGetRun(t *testing.T) {
	t.Parallel()

	s, _ := newTestStore(t)
	ctx := context.Background()
	res := sampleRunResult()

	require.NoError(t, s.RecordRun(ctx, "01RUN", res))

	got, err := s.GetRun(ctx, "01RUN")
	require.NoError(t, err)

	assert.Equal(t, res.Symbol, got.Symbol)
	assert.Equal(t, res.Strategy, got.Strategy)
	assert.Equal(t, res.Period, got.Period)
	assert.Equal(t, res.Interval, got.Interval)
	assert.Equal(t, res.ShortWindow, got.ShortWindow)
	assert.Equal(t, res.LongWindow, got.LongWindow)
	assert.Equal(t, res.EMAFast, got.EMAFast)
	assert.Equal(t, res.EMASlow, got.EMASlow)
	assert.InDelta(t, res.InitialCapital, got.InitialCapital, 1e-9)
	assert.InDelta(t, res.FeeRate, got.FeeRate, 1e-12)
	assert.Equal(t, res.Metrics, got.Metrics)

	// Payload comes back in insertion order, element for element.
	assert.Equal(t, res.Candles, got.Candles)
	assert.Equal(t, res.Trades, got.Trades)
	assert.Equal(t, res.Equity, got.Equity)
}

func TestGetRunNotFound(t *testing.T) {
	t.Parallel()

	s, _ := newTestStore(t)

	_, err := s.GetRun(context.Background(), "nope")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestRecordRunEmptyPayload(t *testing.T) {
	t.Parallel()

	s, _ := newTestStore(t)
	ctx := context.Background()

	res := &backtest.Result{Symbol: "TSLA"}
	require.NoError(t, s.RecordRun(ctx, "01EMPTY", res))

	got, err := s.GetRun(ctx, "01EMPTY")
	require.NoError(t, err)

	// Empty payloads reload as empty, never nil.
	assert.NotNil(t, got.Candles)
	assert.NotNil(t, got.Trades)
	assert.NotNil(t, got.Equity)
	assert.Len(t, got.Candles, 0)
	assert.Len(t, got.Trades, 0)
	assert.Len(t, got.Equity, 0)
}

func TestListRunsNewestFirst(t *testing.T) {
	t.Parallel()

	s, _ := newTestStore(t)
	ctx := context.Background()

	first := sampleRunResult()
	second := sampleRunResult()
	second.Symbol = "MSFT"
	second.Metrics.NumTrades = 7

	require.NoError(t, s.RecordRun(ctx, "01A", first))
	require.NoError(t, s.RecordRun(ctx, "01B", second))

	runs, err := s.ListRuns(ctx)
	require.NoError(t, err)
	require.Len(t, runs, 2)

	// Both inserts can land in the same second; the run ID breaks the tie.
	assert.Equal(t, "01B", runs[0].RunID)
	assert.Equal(t, "MSFT", runs[0].Symbol)
	assert.Equal(t, 7, runs[0].Metrics.NumTrades)
	assert.Equal(t, "01A", runs[1].RunID)
	assert.NotZero(t, runs[0].CreatedAt)
}

func TestListRunsEmpty(t *testing.T) {
	t.Parallel()

	s, _ := newTestStore(t)

	runs, err := s.ListRuns(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, runs)
	assert.Len(t, runs, 0)
}

func TestDeleteRun(t *testing.T) {
	t.Parallel()

	s, path := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, s.RecordRun(ctx, "01DEL", sampleRunResult()))
	require.NoError(t, s.DeleteRun(ctx, "01DEL"))

	_, err := s.GetRun(ctx, "01DEL")
	assert.ErrorIs(t, err, ErrNotFound)

	// Deleting again reports not found rather than succeeding silently.
	assert.ErrorIs(t, s.DeleteRun(ctx, "01DEL"), ErrNotFound)

	require.NoError(t, s.Close())

	db, err := sql.Open("sqlite3", path)
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	// Child rows go with the run.
	for _, table := range []string{"run_candles", "run_trades", "run_equity"} {
		var n int
		require.NoError(t, db.QueryRow(`SELECT COUNT(*) FROM `+table).Scan(&n))
		assert.Zero(t, n, "leftover rows in %s", table)
	}
}
