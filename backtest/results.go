package backtest

import (
	"fmt"
	"io"

	"github.com/rustyeddy/screener/market"
)

// PrintResult writes a human-readable summary of res.
func PrintResult(w io.Writer, res *Result) {
	m := res.Summary

	fmt.Fprintln(w, "==================================================")
	fmt.Fprintln(w, " Backtest Result")
	fmt.Fprintln(w, "==================================================")

	fmt.Fprintf(w, "Symbol:        %s\n", res.Symbol)
	if res.Period != "" {
		fmt.Fprintf(w, "Period:        %s\n", res.Period)
	}
	fmt.Fprintf(w, "Strategy:      %s\n", res.StrategyName)
	fmt.Fprintf(w, "Bars:          %d\n", res.Bars)
	fmt.Fprintf(w, "Start:         %s\n", m.StartDate.Format(market.DateLayout))
	fmt.Fprintf(w, "End:           %s\n", m.EndDate.Format(market.DateLayout))

	fmt.Fprintln(w)
	fmt.Fprintln(w, "Trade Statistics")
	fmt.Fprintln(w, "--------------------------------------------------")
	fmt.Fprintf(w, "Trades:        %d\n", m.TotalTrades)
	fmt.Fprintf(w, "Wins:          %d\n", m.WinningTrades)
	fmt.Fprintf(w, "Losses:        %d\n", m.LosingTrades)
	fmt.Fprintf(w, "Win Rate:      %.1f%%\n", m.WinRate)
	if m.WinningTrades > 0 {
		fmt.Fprintf(w, "Avg Win:       %.2f\n", m.AvgWin)
	}
	if m.LosingTrades > 0 {
		fmt.Fprintf(w, "Avg Loss:      %.2f\n", m.AvgLoss)
	}

	fmt.Fprintln(w)
	fmt.Fprintln(w, "Account Performance")
	fmt.Fprintln(w, "--------------------------------------------------")
	fmt.Fprintf(w, "Start Balance: %.2f\n", m.InitialCapital)
	fmt.Fprintf(w, "End Balance:   %.2f\n", m.FinalCapital)
	fmt.Fprintf(w, "Net P/L:       %.2f\n", m.NetProfit)
	fmt.Fprintf(w, "Return:        %.2f%%\n", m.TotalReturnPct)
	fmt.Fprintf(w, "Buy & Hold:    %.2f%%\n", m.BuyHoldReturnPct)
	fmt.Fprintf(w, "Outperform:    %.2f%%\n", m.OutperformancePct)

	if m.ProfitFactor > 0 {
		fmt.Fprintf(w, "Profit Factor: %.2f\n", m.ProfitFactor)
	}
	if m.MaxDrawdownPct > 0 {
		fmt.Fprintf(w, "Max Drawdown:  %.2f%%\n", m.MaxDrawdownPct)
	}

	if len(res.Trades) > 0 {
		fmt.Fprintln(w)
		fmt.Fprintln(w, "Recent Trades")
		fmt.Fprintln(w, "--------------------------------------------------")
		for _, t := range res.Trades {
			fmt.Fprintf(w, "%s  %-11s %6d @ %10.2f", t.Date.Format(market.DateLayout), t.Kind, t.Shares, t.Price)
			if t.IsSell() {
				fmt.Fprintf(w, "  P/L %10.2f (%.2f%%)", t.Profit, t.ProfitPct)
			}
			fmt.Fprintf(w, "  %s\n", t.Signal)
		}
	}

	fmt.Fprintln(w)
}

// PrintBatch writes one line per symbol.
func PrintBatch(w io.Writer, items []BatchItem) {
	fmt.Fprintf(w, "%-14s %-28s %8s %10s %10s %8s\n", "SYMBOL", "STRATEGY", "TRADES", "RETURN%", "B&H%", "MAXDD%")
	for _, it := range items {
		if it.Err != nil {
			fmt.Fprintf(w, "%-14s error: %v\n", it.Symbol, it.Err)
			continue
		}
		if it.Result == nil {
			fmt.Fprintf(w, "%-14s skipped\n", it.Symbol)
			continue
		}
		m := it.Result.Summary
		fmt.Fprintf(w, "%-14s %-28s %8d %10.2f %10.2f %8.2f\n",
			it.Result.Symbol, it.Result.StrategyName, m.TotalTrades, m.TotalReturnPct, m.BuyHoldReturnPct, m.MaxDrawdownPct)
	}
}
