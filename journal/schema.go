package journal

// Dates are stored as YYYY-MM-DD text and timestamps as RFC3339 text so the
// tables sort and read the same from the sqlite3 shell.
const Schema = `
CREATE TABLE IF NOT EXISTS backtest_runs (
	run_id TEXT PRIMARY KEY,
	created TEXT NOT NULL,
	symbol TEXT NOT NULL,
	period TEXT NOT NULL,
	strategy TEXT NOT NULL,
	strategy_name TEXT NOT NULL,
	params TEXT NOT NULL,
	bars INTEGER NOT NULL,
	start_date TEXT NOT NULL,
	end_date TEXT NOT NULL,
	initial_capital REAL NOT NULL,
	final_capital REAL NOT NULL,
	net_profit REAL NOT NULL,
	return_pct REAL NOT NULL,
	buy_hold_pct REAL NOT NULL,
	outperformance_pct REAL NOT NULL,
	trades INTEGER NOT NULL,
	wins INTEGER NOT NULL,
	losses INTEGER NOT NULL,
	win_rate REAL NOT NULL,
	avg_win REAL NOT NULL,
	avg_loss REAL NOT NULL,
	profit_factor REAL NOT NULL,
	max_dd_pct REAL NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_backtest_runs_symbol ON backtest_runs(symbol);

CREATE TABLE IF NOT EXISTS backtest_trades (
	run_id TEXT NOT NULL REFERENCES backtest_runs(run_id),
	seq INTEGER NOT NULL,
	kind TEXT NOT NULL,
	date TEXT NOT NULL,
	price REAL NOT NULL,
	shares INTEGER NOT NULL,
	profit REAL NOT NULL,
	profit_pct REAL NOT NULL,
	signal TEXT NOT NULL,
	PRIMARY KEY (run_id, seq)
);

CREATE TABLE IF NOT EXISTS backtest_equity (
	run_id TEXT NOT NULL REFERENCES backtest_runs(run_id),
	seq INTEGER NOT NULL,
	date TEXT NOT NULL,
	equity REAL NOT NULL,
	price REAL NOT NULL,
	PRIMARY KEY (run_id, seq)
);
`
