package journal

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/rustyeddy/screener/market"
)

type SQLite struct {
	db *sql.DB
}

func NewSQLite(path string) (*SQLite, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, err
	}

	if _, err := db.Exec(Schema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("journal: create schema: %w", err)
	}

	return &SQLite{db: db}, nil
}

// RecordRun stores the run, its trades and its equity curve in one
// transaction.
func (j *SQLite) RecordRun(ctx context.Context, r Run) error {
	if r.RunID == "" {
		return fmt.Errorf("journal: run id is required")
	}
	params, err := json.Marshal(r.Params)
	if err != nil {
		return err
	}

	tx, err := j.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	m := r.Summary
	_, err = tx.ExecContext(ctx, `
		INSERT INTO backtest_runs
		(run_id, created, symbol, period, strategy, strategy_name, params, bars,
		 start_date, end_date, initial_capital, final_capital, net_profit,
		 return_pct, buy_hold_pct, outperformance_pct, trades, wins, losses,
		 win_rate, avg_win, avg_loss, profit_factor, max_dd_pct)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		r.RunID, r.Created.UTC().Format(time.RFC3339Nano), r.Symbol, r.Period, r.Strategy, r.StrategyName, string(params), r.Bars,
		date(m.StartDate), date(m.EndDate), m.InitialCapital, m.FinalCapital, m.NetProfit,
		m.TotalReturnPct, m.BuyHoldReturnPct, m.OutperformancePct, m.TotalTrades, m.WinningTrades, m.LosingTrades,
		m.WinRate, m.AvgWin, m.AvgLoss, m.ProfitFactor, m.MaxDrawdownPct,
	)
	if err != nil {
		return fmt.Errorf("journal: insert run %s: %w", r.RunID, err)
	}

	for i, t := range r.Trades {
		_, err = tx.ExecContext(ctx, `
			INSERT INTO backtest_trades
			(run_id, seq, kind, date, price, shares, profit, profit_pct, signal)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			r.RunID, i, string(t.Kind), date(t.Date), t.Price, t.Shares, t.Profit, t.ProfitPct, t.Signal,
		)
		if err != nil {
			return fmt.Errorf("journal: insert trade %d: %w", i, err)
		}
	}

	for i, e := range r.Equity {
		_, err = tx.ExecContext(ctx, `
			INSERT INTO backtest_equity (run_id, seq, date, equity, price)
			VALUES (?, ?, ?, ?, ?)`,
			r.RunID, i, date(e.Date), e.Equity, e.Price,
		)
		if err != nil {
			return fmt.Errorf("journal: insert equity %d: %w", i, err)
		}
	}

	return tx.Commit()
}

func (j *SQLite) Close() error {
	return j.db.Close()
}

func date(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format(market.DateLayout)
}

func parseDate(s string) (time.Time, error) {
	if s == "" {
		return time.Time{}, nil
	}
	return time.Parse(market.DateLayout, s)
}
