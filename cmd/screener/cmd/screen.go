package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/rustyeddy/screener/screen"
)

var screenJSON bool

var screenCmd = &cobra.Command{
	Use:   "screen SYMBOL...",
	Short: "Show the current RSI + SMA50 reading for symbols",
	Long: `Screen loads three months of bars per symbol and prints RSI, the SMA50
trend filter, the Buy/Sell/Hold signal and, on a Buy, stop-loss, target and
potential gain.

Example:
  screener screen RELIANCE TCS INFY`,
	Args: cobra.MinimumNArgs(1),
	RunE: runScreen,
}

func init() {
	rootCmd.AddCommand(screenCmd)
	screenCmd.Flags().BoolVar(&screenJSON, "json", false, "print as JSON")
}

func runScreen(cmd *cobra.Command, args []string) error {
	snaps, err := screen.Scan(cmd.Context(), cfg.Provider(), args, cfg.Backtest.Params, cfg.Data.BatchLimit)
	if err != nil {
		return fmt.Errorf("screen: %w", err)
	}

	out := cmd.OutOrStdout()
	if screenJSON {
		return writeJSON(out, snaps)
	}

	fmt.Fprintf(out, "%-12s %-10s %10s %6s %10s %6s %10s %10s %7s\n",
		"SYMBOL", "DATE", "PRICE", "RSI", "SMA50", "SIGNAL", "SL", "TP", "GAIN%")
	for _, s := range snaps {
		t := s.Technicals
		fmt.Fprintf(out, "%-12s %-10s %10.2f %6.1f %10.2f %6s %10s %10s %7s\n",
			s.Symbol, s.Date, s.Price, t.RSI, t.SMA50, t.Signal, opt(t.StopLoss), opt(t.TakeProfit), opt(t.Gain))
	}
	if len(snaps) < len(args) {
		fmt.Fprintf(out, "\n%d of %d symbols could not be screened\n", len(args)-len(snaps), len(args))
	}
	return nil
}

func opt(v *float64) string {
	if v == nil {
		return "-"
	}
	return fmt.Sprintf("%.2f", *v)
}
