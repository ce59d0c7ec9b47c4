package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/rustyeddy/screener/backtest"
	"github.com/rustyeddy/screener/journal"
	"github.com/rustyeddy/screener/strategies"
)

var batchCmd = &cobra.Command{
	Use:   "batch SYMBOL...",
	Short: "Backtest one strategy across many symbols",
	Long: `Batch fetches bars for each symbol concurrently and runs the same
backtest on each. A symbol that fails is reported and does not stop the rest.

Example:
  screener batch RELIANCE TCS INFY HDFCBANK -s bollinger -p 2y --limit 8`,
	Args: cobra.MinimumNArgs(1),
	RunE: runBatch,
}

var (
	batchStrategy string
	batchPeriod   string
	batchCapital  float64
	batchLimit    int
	batchParams   strategies.Params
	batchJSON     bool
)

func init() {
	rootCmd.AddCommand(batchCmd)

	f := batchCmd.Flags()
	f.StringVarP(&batchStrategy, "strategy", "s", "", "strategy id (default from config)")
	f.StringVarP(&batchPeriod, "period", "p", "", "lookback period (default from config)")
	f.Float64VarP(&batchCapital, "capital", "b", 0, "initial capital (default from config)")
	f.IntVar(&batchLimit, "limit", 0, "max concurrent fetches (default from config)")
	f.BoolVar(&batchJSON, "json", false, "print JSON reports instead of a table")
	addParamFlags(batchCmd, &batchParams)
}

func runBatch(cmd *cobra.Command, args []string) error {
	base := baseRequest(batchStrategy, batchPeriod, batchCapital, batchParams)
	if _, err := backtest.ResolveStrategy(base.Strategy); err != nil {
		return err
	}

	limit := batchLimit
	if limit == 0 {
		limit = cfg.Data.BatchLimit
	}

	items, err := backtest.RunBatch(cmd.Context(), cfg.Provider(), base, args, limit)
	if err != nil {
		return fmt.Errorf("batch: %w", err)
	}

	if cfg.Journal.Enabled {
		j, err := journal.NewSQLite(cfg.Journal.DBPath)
		if err != nil {
			return fmt.Errorf("open journal: %w", err)
		}
		defer j.Close()
		for _, it := range items {
			if it.Result == nil {
				continue
			}
			if err := j.RecordRun(cmd.Context(), journal.NewRun(it.Result, timeNow())); err != nil {
				return fmt.Errorf("record %s: %w", it.Symbol, err)
			}
		}
	}

	out := cmd.OutOrStdout()
	if batchJSON {
		reports := make([]backtest.Report, 0, len(items))
		for _, it := range items {
			if it.Err != nil {
				rep := backtest.FailureReport(it.Err)
				rep.Symbol = it.Symbol
				reports = append(reports, rep)
				continue
			}
			reports = append(reports, backtest.NewReport(it.Result))
		}
		return writeJSON(out, reports)
	}
	backtest.PrintBatch(out, items)
	return nil
}
