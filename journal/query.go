package journal

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/rustyeddy/screener/backtest"
)

// ErrNotFound is returned by GetRun for an unknown run ID.
var ErrNotFound = errors.New("run not found")

const runColumns = `
	run_id, created, symbol, period, strategy, strategy_name, params, bars,
	start_date, end_date, initial_capital, final_capital, net_profit,
	return_pct, buy_hold_pct, outperformance_pct, trades, wins, losses,
	win_rate, avg_win, avg_loss, profit_factor, max_dd_pct`

type scanner interface {
	Scan(dest ...any) error
}

func scanRun(s scanner) (Run, error) {
	var (
		r                  Run
		created, params    string
		startDate, endDate string
	)
	m := &r.Summary
	err := s.Scan(
		&r.RunID, &created, &r.Symbol, &r.Period, &r.Strategy, &r.StrategyName, &params, &r.Bars,
		&startDate, &endDate, &m.InitialCapital, &m.FinalCapital, &m.NetProfit,
		&m.TotalReturnPct, &m.BuyHoldReturnPct, &m.OutperformancePct, &m.TotalTrades, &m.WinningTrades, &m.LosingTrades,
		&m.WinRate, &m.AvgWin, &m.AvgLoss, &m.ProfitFactor, &m.MaxDrawdownPct,
	)
	if err != nil {
		return Run{}, err
	}

	if r.Created, err = time.Parse(time.RFC3339Nano, created); err != nil {
		return Run{}, fmt.Errorf("run %s: bad created time: %w", r.RunID, err)
	}
	if m.StartDate, err = parseDate(startDate); err != nil {
		return Run{}, err
	}
	if m.EndDate, err = parseDate(endDate); err != nil {
		return Run{}, err
	}
	if err := json.Unmarshal([]byte(params), &r.Params); err != nil {
		return Run{}, fmt.Errorf("run %s: bad params: %w", r.RunID, err)
	}
	r.Capital = m.InitialCapital
	return r, nil
}

// GetRun loads a run with its trades and equity curve.
func (j *SQLite) GetRun(ctx context.Context, runID string) (Run, error) {
	row := j.db.QueryRowContext(ctx, `SELECT `+runColumns+` FROM backtest_runs WHERE run_id = ?`, runID)
	r, err := scanRun(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Run{}, fmt.Errorf("%w: %q", ErrNotFound, runID)
		}
		return Run{}, err
	}

	if r.Trades, err = j.ListTrades(ctx, runID); err != nil {
		return Run{}, err
	}
	if r.Equity, err = j.ListEquity(ctx, runID); err != nil {
		return Run{}, err
	}
	return r, nil
}

// ListRuns returns run summaries newest first, without trades or equity.
// An empty symbol matches every run; limit <= 0 means no limit.
func (j *SQLite) ListRuns(ctx context.Context, symbol string, limit int) ([]Run, error) {
	if limit <= 0 {
		limit = -1
	}
	rows, err := j.db.QueryContext(ctx, `
		SELECT `+runColumns+`
		FROM backtest_runs
		WHERE ? = '' OR symbol = ?
		ORDER BY run_id DESC
		LIMIT ?`, symbol, symbol, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Run
	for rows.Next() {
		r, err := scanRun(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// ListTrades returns the stored trades of a run in execution order.
func (j *SQLite) ListTrades(ctx context.Context, runID string) ([]backtest.Trade, error) {
	rows, err := j.db.QueryContext(ctx, `
		SELECT kind, date, price, shares, profit, profit_pct, signal
		FROM backtest_trades
		WHERE run_id = ?
		ORDER BY seq ASC`, runID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []backtest.Trade
	for rows.Next() {
		var (
			t        backtest.Trade
			kind, dt string
		)
		if err := rows.Scan(&kind, &dt, &t.Price, &t.Shares, &t.Profit, &t.ProfitPct, &t.Signal); err != nil {
			return nil, err
		}
		t.Kind = backtest.TradeKind(kind)
		if t.Date, err = parseDate(dt); err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// ListEquity returns the stored equity curve of a run.
func (j *SQLite) ListEquity(ctx context.Context, runID string) ([]backtest.EquityPoint, error) {
	rows, err := j.db.QueryContext(ctx, `
		SELECT date, equity, price
		FROM backtest_equity
		WHERE run_id = ?
		ORDER BY seq ASC`, runID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []backtest.EquityPoint
	for rows.Next() {
		var (
			e  backtest.EquityPoint
			dt string
		)
		if err := rows.Scan(&dt, &e.Equity, &e.Price); err != nil {
			return nil, err
		}
		if e.Date, err = parseDate(dt); err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}
