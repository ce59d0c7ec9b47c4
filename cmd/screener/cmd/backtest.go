package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/spf13/cobra"

	"github.com/rustyeddy/screener/backtest"
	"github.com/rustyeddy/screener/journal"
	"github.com/rustyeddy/screener/market"
	"github.com/rustyeddy/screener/strategies"
)

var backtestCmd = &cobra.Command{
	Use:   "backtest SYMBOL",
	Short: "Backtest a strategy against one symbol",
	Long: `Backtest simulates a strategy bar by bar over a symbol's daily prices
and reports return, drawdown, win rate and the buy-and-hold comparison.

Supported strategies:
  - rsi_sma: RSI oversold/overbought filtered by SMA50
  - macd: MACD histogram crossover
  - bollinger: Bollinger band touches
  - ma_crossover: golden/death cross of two SMAs

Examples:
  screener backtest RELIANCE -s macd -p 2y
  screener backtest TCS --csv data/TCS.csv -s ma_crossover --ma-fast 20 --ma-slow 100`,
	Args: cobra.ExactArgs(1),
	RunE: runBacktest,
}

var (
	btCSVPath  string
	btStrategy string
	btPeriod   string
	btCapital  float64
	btParams   strategies.Params
	btJSON     bool
	btRecord   bool
	btOrgPath  string
)

func init() {
	rootCmd.AddCommand(backtestCmd)

	f := backtestCmd.Flags()
	f.StringVar(&btCSVPath, "csv", "", "read bars from a CSV file (date,open,high,low,close,volume) instead of the provider")
	f.StringVarP(&btStrategy, "strategy", "s", "", "strategy id (default from config)")
	f.StringVarP(&btPeriod, "period", "p", "", "lookback: 1mo, 3mo, 6mo, 1y, 2y, 5y (default from config)")
	f.Float64VarP(&btCapital, "capital", "b", 0, "initial capital (default from config)")
	f.BoolVar(&btJSON, "json", false, "print the JSON report instead of text")
	f.BoolVar(&btRecord, "record", false, "record the run in the journal even if the journal is disabled in config")
	f.StringVar(&btOrgPath, "org", "", "also write an org-mode report to this path")
	addParamFlags(backtestCmd, &btParams)
}

// addParamFlags registers one flag per strategy parameter. Zero leaves the
// configured default in place.
func addParamFlags(c *cobra.Command, p *strategies.Params) {
	f := c.Flags()
	f.Float64Var(&p.RSIOversold, "rsi-oversold", 0, "rsi_sma: RSI buy threshold")
	f.Float64Var(&p.RSIOverbought, "rsi-overbought", 0, "rsi_sma: RSI sell threshold")
	f.IntVar(&p.MACDFast, "macd-fast", 0, "macd: fast EMA period")
	f.IntVar(&p.MACDSlow, "macd-slow", 0, "macd: slow EMA period")
	f.IntVar(&p.MACDSignal, "macd-signal", 0, "macd: signal EMA period")
	f.IntVar(&p.BBPeriod, "bb-period", 0, "bollinger: band period")
	f.Float64Var(&p.BBStd, "bb-std", 0, "bollinger: band width in standard deviations")
	f.IntVar(&p.MAFast, "ma-fast", 0, "ma_crossover: fast SMA period")
	f.IntVar(&p.MASlow, "ma-slow", 0, "ma_crossover: slow SMA period")
}

// baseRequest fills a request from flags over the configured defaults.
func baseRequest(strategy, period string, capital float64, p strategies.Params) backtest.Request {
	d := cfg.Backtest
	req := backtest.Request{
		Strategy: strategy,
		Period:   period,
		Capital:  capital,
		Params:   p.Merge(d.Params),
	}
	if req.Strategy == "" {
		req.Strategy = d.Strategy
	}
	if req.Period == "" {
		req.Period = d.Period
	}
	if req.Capital == 0 {
		req.Capital = d.Capital
	}
	return req
}

func runBacktest(cmd *cobra.Command, args []string) error {
	req := baseRequest(btStrategy, btPeriod, btCapital, btParams)
	req.Symbol = args[0]

	if _, err := backtest.ResolveStrategy(req.Strategy); err != nil {
		return err
	}

	bars, err := loadBars(cmd, req.Symbol, req.Period)
	if err != nil {
		return err
	}
	req.Bars = bars

	res, err := backtest.Run(req)
	if err != nil {
		return fmt.Errorf("backtest %s: %w", req.Symbol, err)
	}

	run := journal.NewRun(res, timeNow())
	if cfg.Journal.Enabled || btRecord {
		if err := recordRun(cmd, run); err != nil {
			return err
		}
	}
	if btOrgPath != "" {
		if err := journal.WriteOrg(btOrgPath, run); err != nil {
			return fmt.Errorf("write org: %w", err)
		}
	}

	out := cmd.OutOrStdout()
	if btJSON {
		rep := backtest.NewReport(res)
		if cfg.Journal.Enabled || btRecord {
			rep.RunID = run.RunID
		}
		return writeJSON(out, rep)
	}
	backtest.PrintResult(out, res)
	if cfg.Journal.Enabled || btRecord {
		fmt.Fprintf(out, "Run ID:        %s\n", run.RunID)
	}
	return nil
}

func loadBars(cmd *cobra.Command, symbol, period string) (market.Series, error) {
	if btCSVPath != "" {
		s, err := market.LoadCSV(btCSVPath)
		if err != nil {
			return nil, fmt.Errorf("load %s: %w", btCSVPath, err)
		}
		return s, nil
	}
	s, err := cfg.Provider().Bars(cmd.Context(), symbol, period)
	if err != nil {
		return nil, fmt.Errorf("fetch %s: %w", symbol, err)
	}
	return s, nil
}

func recordRun(cmd *cobra.Command, run journal.Run) error {
	j, err := journal.NewSQLite(cfg.Journal.DBPath)
	if err != nil {
		return fmt.Errorf("open journal: %w", err)
	}
	defer j.Close()

	if err := j.RecordRun(cmd.Context(), run); err != nil {
		return fmt.Errorf("record run: %w", err)
	}
	return nil
}

// timeNow stamps new runs.
var timeNow = time.Now

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
