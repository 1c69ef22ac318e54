package store

const Schema = `
CREATE TABLE IF NOT EXISTS backtest_runs (
	run_id TEXT PRIMARY KEY,
	created_at INTEGER NOT NULL,
	symbol TEXT NOT NULL,
	strategy TEXT NOT NULL DEFAULT '',
	period TEXT NOT NULL DEFAULT '',
	interval TEXT NOT NULL DEFAULT '',
	short_window INTEGER NOT NULL DEFAULT 0,
	long_window INTEGER NOT NULL DEFAULT 0,
	ema_fast INTEGER NOT NULL DEFAULT 0,
	ema_slow INTEGER NOT NULL DEFAULT 0,
	initial_capital REAL NOT NULL DEFAULT 0,
	fee_rate REAL NOT NULL DEFAULT 0,
	sharpe REAL NOT NULL DEFAULT 0,
	max_drawdown REAL NOT NULL DEFAULT 0,
	total_return REAL NOT NULL DEFAULT 0,
	win_rate REAL NOT NULL DEFAULT 0,
	num_trades INTEGER NOT NULL DEFAULT 0
);

CREATE INDEX IF NOT EXISTS idx_runs_created ON backtest_runs(created_at);

CREATE TABLE IF NOT EXISTS run_candles (
	run_id TEXT NOT NULL,
	seq INTEGER NOT NULL,
	time INTEGER NOT NULL,
	open REAL NOT NULL,
	high REAL NOT NULL,
	low REAL NOT NULL,
	close REAL NOT NULL,
	volume REAL NOT NULL DEFAULT 0,
	PRIMARY KEY (run_id, seq)
);

CREATE TABLE IF NOT EXISTS run_trades (
	run_id TEXT NOT NULL,
	seq INTEGER NOT NULL,
	time INTEGER NOT NULL,
	side TEXT NOT NULL,
	price REAL NOT NULL,
	shares REAL NOT NULL,
	PRIMARY KEY (run_id, seq)
);

CREATE TABLE IF NOT EXISTS run_equity (
	run_id TEXT NOT NULL,
	seq INTEGER NOT NULL,
	time INTEGER NOT NULL,
	equity REAL NOT NULL,
	PRIMARY KEY (run_id, seq)
);

CREATE TABLE IF NOT EXISTS strategy_profiles (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	created_at INTEGER NOT NULL,
	name TEXT NOT NULL UNIQUE,
	symbol TEXT NOT NULL,
	short_window INTEGER NOT NULL DEFAULT 20,
	long_window INTEGER NOT NULL DEFAULT 50,
	ema_fast INTEGER NOT NULL DEFAULT 12,
	ema_slow INTEGER NOT NULL DEFAULT 26,
	period TEXT NOT NULL DEFAULT '1y',
	interval TEXT NOT NULL DEFAULT '1d',
	initial_capital REAL NOT NULL DEFAULT 10000,
	fee_rate REAL NOT NULL DEFAULT 0.0005,
	order_index INTEGER NOT NULL DEFAULT 0
);

CREATE INDEX IF NOT EXISTS idx_profiles_order ON strategy_profiles(order_index);

CREATE TABLE IF NOT EXISTS candles (
	symbol TEXT NOT NULL,
	interval TEXT NOT NULL,
	time INTEGER NOT NULL,
	open REAL NOT NULL,
	high REAL NOT NULL,
	low REAL NOT NULL,
	close REAL NOT NULL,
	volume REAL NOT NULL DEFAULT 0,
	PRIMARY KEY (symbol, interval, time)
);
`
