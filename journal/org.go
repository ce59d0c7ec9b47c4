package journal

import (
	"fmt"
	"io"
	"os"
	"strings"
	"text/template"
	"time"

	"github.com/rustyeddy/screener/backtest"
)

var orgFuncs = template.FuncMap{
	"day": date,
	"orTime": func(t time.Time) time.Time {
		if t.IsZero() {
			return time.Now()
		}
		return t
	},
	"trade": FormatTradeOrg,
}

var orgTemplate = template.Must(template.New("backtest").Funcs(orgFuncs).Parse(BacktestOrgTemplate))

// RenderOrg writes r as an org-mode entry.
func RenderOrg(w io.Writer, r Run) error {
	return orgTemplate.Execute(w, r)
}

// WriteOrg renders r into a new file at path.
func WriteOrg(path string, r Run) error {
	var b strings.Builder
	if err := RenderOrg(&b, r); err != nil {
		return err
	}
	return os.WriteFile(path, []byte(b.String()), 0644)
}

// FormatTradeOrg renders one trade as an org table row.
func FormatTradeOrg(t backtest.Trade) string {
	profit, pct := "", ""
	if t.IsSell() {
		profit = fmt.Sprintf("%.2f", t.Profit)
		pct = fmt.Sprintf("%.2f", t.ProfitPct)
	}
	return fmt.Sprintf("| %s | %s | %.2f | %d | %s | %s | %s |",
		date(t.Date), t.Kind, t.Price, t.Shares, profit, pct, t.Signal)
}

const BacktestOrgTemplate = `* BACKTEST: {{.StrategyName}} {{.Symbol}}{{if .Period}} {{.Period}}{{end}}
:PROPERTIES:
:RUN_ID:      {{.RunID}}
:STRATEGY:    {{.Strategy}}
:SYMBOL:      {{.Symbol}}
:PERIOD:      {{if .Period}}{{.Period}}{{else}}(period?){{end}}
:START_DATE:  {{day .Summary.StartDate}}
:END_DATE:    {{day .Summary.EndDate}}
:BARS:        {{.Bars}}
:START_BAL:   {{printf "%.2f" .Summary.InitialCapital}}
:END_BAL:     {{printf "%.2f" .Summary.FinalCapital}}
:NET_PL:      {{printf "%.2f" .Summary.NetProfit}}
:RETURN_PCT:  {{printf "%.2f" .Summary.TotalReturnPct}}
:BUYHOLD_PCT: {{printf "%.2f" .Summary.BuyHoldReturnPct}}
:MAX_DD_PCT:  {{printf "%.2f" .Summary.MaxDrawdownPct}}
:TRADES:      {{.Summary.TotalTrades}}
:WINS:        {{.Summary.WinningTrades}}
:LOSSES:      {{.Summary.LosingTrades}}
:WIN_RATE:    {{printf "%.1f" .Summary.WinRate}}
:PROFIT_FAC:  {{if ne .Summary.ProfitFactor 0.0}}{{printf "%.2f" .Summary.ProfitFactor}}{{else}}(profit-factor?){{end}}
:CREATED:     [{{(orTime .Created).Format "2006-01-02 Mon 15:04"}}]
:END:

** Strategy Parameters
| Parameter      | Value |
|----------------+-------|
| rsi_oversold   | {{printf "%.1f" .Params.RSIOversold}} |
| rsi_overbought | {{printf "%.1f" .Params.RSIOverbought}} |
| macd           | {{.Params.MACDFast}}/{{.Params.MACDSlow}}/{{.Params.MACDSignal}} |
| bollinger      | {{.Params.BBPeriod}} x {{printf "%.1f" .Params.BBStd}} |
| ma_crossover   | {{.Params.MAFast}}/{{.Params.MASlow}} |

** Performance Summary
- Net P/L:          *{{printf "%.2f" .Summary.NetProfit}}*
- Return:           *{{printf "%.2f" .Summary.TotalReturnPct}}%*
- Buy & Hold:       *{{printf "%.2f" .Summary.BuyHoldReturnPct}}%*
- Outperformance:   *{{printf "%.2f" .Summary.OutperformancePct}}%*
- Max Drawdown:     *{{printf "%.2f" .Summary.MaxDrawdownPct}}%*
- Win Rate:         *{{printf "%.1f" .Summary.WinRate}}%*

** Trades
| Date | Type | Price | Shares | Profit | Profit % | Signal |
|------+------+-------+--------+--------+----------+--------|
{{- range .Trades }}
{{ trade . }}
{{- end }}
`
