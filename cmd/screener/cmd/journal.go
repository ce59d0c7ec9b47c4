package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/rustyeddy/screener/backtest"
	"github.com/rustyeddy/screener/journal"
	"github.com/rustyeddy/screener/market"
)

var journalCmd = &cobra.Command{
	Use:   "journal",
	Short: "Inspect and export recorded backtest runs",
	Long: `Read the SQLite journal of past backtests.

Subcommands:
  list   - List recorded runs, newest first
  show   - Print one run
  export - Write a run's trades and equity as CSV, or the run as org-mode

Examples:
  screener journal list --symbol TCS.NS
  screener journal show 01J9Z3...
  screener journal export 01J9Z3... --trades trades.csv --equity equity.csv --org run.org`,
}

var journalListCmd = &cobra.Command{
	Use:   "list",
	Short: "List recorded runs",
	Args:  cobra.NoArgs,
	RunE:  runJournalList,
}

var journalShowCmd = &cobra.Command{
	Use:   "show RUN_ID",
	Short: "Print one recorded run",
	Args:  cobra.ExactArgs(1),
	RunE:  runJournalShow,
}

var journalExportCmd = &cobra.Command{
	Use:   "export RUN_ID",
	Short: "Export a run as CSV or org-mode",
	Args:  cobra.ExactArgs(1),
	RunE:  runJournalExport,
}

var (
	jlSymbol string
	jlLimit  int
	jsOrg    bool

	jeTrades string
	jeEquity string
	jeOrg    string
)

func init() {
	rootCmd.AddCommand(journalCmd)
	journalCmd.AddCommand(journalListCmd, journalShowCmd, journalExportCmd)

	journalListCmd.Flags().StringVar(&jlSymbol, "symbol", "", "only runs for this symbol")
	journalListCmd.Flags().IntVarP(&jlLimit, "limit", "n", 20, "max runs to list (0 = all)")

	journalShowCmd.Flags().BoolVar(&jsOrg, "org", false, "print as org-mode")

	journalExportCmd.Flags().StringVar(&jeTrades, "trades", "", "write trades CSV to this path")
	journalExportCmd.Flags().StringVar(&jeEquity, "equity", "", "write equity CSV to this path")
	journalExportCmd.Flags().StringVar(&jeOrg, "org", "", "write org-mode report to this path")
}

func openJournal() (*journal.SQLite, error) {
	if cfg.Journal.DBPath == "" {
		return nil, fmt.Errorf("journal.db_path is not configured")
	}
	if _, err := os.Stat(cfg.Journal.DBPath); err != nil {
		return nil, fmt.Errorf("open journal: %w", err)
	}
	return journal.NewSQLite(cfg.Journal.DBPath)
}

func runJournalList(cmd *cobra.Command, args []string) error {
	j, err := openJournal()
	if err != nil {
		return err
	}
	defer j.Close()

	runs, err := j.ListRuns(cmd.Context(), market.RemoveSuffix(jlSymbol, market.NSESuffix), jlLimit)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if len(runs) == 0 {
		fmt.Fprintln(out, "no runs recorded")
		return nil
	}
	fmt.Fprintf(out, "%-26s %-12s %-28s %-10s %-10s %8s %10s\n", "RUN ID", "SYMBOL", "STRATEGY", "START", "END", "TRADES", "RETURN%")
	for _, r := range runs {
		m := r.Summary
		fmt.Fprintf(out, "%-26s %-12s %-28s %-10s %-10s %8d %10.2f\n",
			r.RunID, r.Symbol, r.StrategyName,
			m.StartDate.Format(market.DateLayout), m.EndDate.Format(market.DateLayout),
			m.TotalTrades, m.TotalReturnPct)
	}
	return nil
}

func runJournalShow(cmd *cobra.Command, args []string) error {
	j, err := openJournal()
	if err != nil {
		return err
	}
	defer j.Close()

	r, err := j.GetRun(cmd.Context(), args[0])
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if jsOrg {
		return journal.RenderOrg(out, r)
	}
	fmt.Fprintf(out, "Run ID:        %s\n", r.RunID)
	backtest.PrintResult(out, &r.Result)
	return nil
}

func runJournalExport(cmd *cobra.Command, args []string) error {
	if jeTrades == "" && jeEquity == "" && jeOrg == "" {
		return fmt.Errorf("nothing to export: pass --trades, --equity or --org")
	}

	j, err := openJournal()
	if err != nil {
		return err
	}
	defer j.Close()

	r, err := j.GetRun(cmd.Context(), args[0])
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if jeTrades != "" {
		if err := writeFile(jeTrades, func(f *os.File) error { return journal.WriteTradesCSV(f, r.Trades) }); err != nil {
			return err
		}
		fmt.Fprintf(out, "✓ Trades: %s (%d rows)\n", jeTrades, len(r.Trades))
	}
	if jeEquity != "" {
		if err := writeFile(jeEquity, func(f *os.File) error { return journal.WriteEquityCSV(f, r.Equity) }); err != nil {
			return err
		}
		fmt.Fprintf(out, "✓ Equity: %s (%d rows)\n", jeEquity, len(r.Equity))
	}
	if jeOrg != "" {
		if err := journal.WriteOrg(jeOrg, r); err != nil {
			return err
		}
		fmt.Fprintf(out, "✓ Org: %s\n", jeOrg)
	}
	return nil
}

func writeFile(path string, fn func(f *os.File) error) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := fn(f); err != nil {
		_ = f.Close()
		return err
	}
	return f.Close()
}
