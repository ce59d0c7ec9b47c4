package journal

import (
	"encoding/csv"
	"io"
	"strconv"

	"github.com/rustyeddy/screener/backtest"
)

// WriteTradesCSV writes trades with a header row.
func WriteTradesCSV(w io.Writer, trades []backtest.Trade) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"type", "date", "price", "shares", "profit", "profit_pct", "signal"}); err != nil {
		return err
	}
	for _, t := range trades {
		profit, pct := "", ""
		if t.IsSell() {
			profit, pct = f(t.Profit), f(t.ProfitPct)
		}
		err := cw.Write([]string{
			string(t.Kind),
			date(t.Date),
			f(t.Price),
			strconv.FormatInt(t.Shares, 10),
			profit,
			pct,
			t.Signal,
		})
		if err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// WriteEquityCSV writes an equity curve with a header row.
func WriteEquityCSV(w io.Writer, equity []backtest.EquityPoint) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"date", "equity", "price"}); err != nil {
		return err
	}
	for _, e := range equity {
		if err := cw.Write([]string{date(e.Date), f(e.Equity), f(e.Price)}); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

func f(x float64) string {
	return strconv.FormatFloat(x, 'f', 2, 64)
}
