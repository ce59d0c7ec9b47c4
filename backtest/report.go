package backtest

import (
	"github.com/shopspring/decimal"

	"github.com/rustyeddy/screener/market"
)

// Report is the JSON payload returned to dashboard clients. Money and
// percent figures are rounded to 2 decimals, win rate to 1.
type Report struct {
	Success bool   `json:"success"`
	Error   string `json:"error,omitempty"`
	Code    string `json:"code,omitempty"`

	RunID        string         `json:"runId,omitempty"`
	Symbol       string         `json:"symbol,omitempty"`
	Period       string         `json:"period,omitempty"`
	Strategy     string         `json:"strategy,omitempty"`
	StrategyName string         `json:"strategyName,omitempty"`
	Summary      *SummaryReport `json:"summary,omitempty"`
	Trades       []TradeReport  `json:"trades,omitempty"`
	EquityCurve  []EquityReport `json:"equityCurve,omitempty"`
}

type SummaryReport struct {
	InitialCapital float64 `json:"initialCapital"`
	FinalCapital   float64 `json:"finalCapital"`
	NetProfit      float64 `json:"netProfit"`
	TotalReturn    float64 `json:"totalReturn"`
	BuyHoldReturn  float64 `json:"buyHoldReturn"`
	Outperformance float64 `json:"outperformance"`
	TotalTrades    int     `json:"totalTrades"`
	WinningTrades  int     `json:"winningTrades"`
	LosingTrades   int     `json:"losingTrades"`
	WinRate        float64 `json:"winRate"`
	AvgWin         float64 `json:"avgWin"`
	AvgLoss        float64 `json:"avgLoss"`
	ProfitFactor   float64 `json:"profitFactor"`
	MaxDrawdown    float64 `json:"maxDrawdown"`
	StartDate      string  `json:"startDate"`
	EndDate        string  `json:"endDate"`
}

// TradeReport omits profit fields on buys.
type TradeReport struct {
	Type      string   `json:"type"`
	Date      string   `json:"date"`
	Price     float64  `json:"price"`
	Shares    int64    `json:"shares"`
	Profit    *float64 `json:"profit,omitempty"`
	ProfitPct *float64 `json:"profitPct,omitempty"`
	Signal    string   `json:"signal"`
}

type EquityReport struct {
	Date   string  `json:"date"`
	Equity float64 `json:"equity"`
	Price  float64 `json:"price"`
}

// NewReport shapes a successful result for the wire.
func NewReport(res *Result) Report {
	m := res.Summary
	r := Report{
		Success:      true,
		Symbol:       res.Symbol,
		Period:       res.Period,
		Strategy:     res.Strategy,
		StrategyName: res.StrategyName,
		Summary: &SummaryReport{
			InitialCapital: round(m.InitialCapital, 2),
			FinalCapital:   round(m.FinalCapital, 2),
			NetProfit:      round(m.NetProfit, 2),
			TotalReturn:    round(m.TotalReturnPct, 2),
			BuyHoldReturn:  round(m.BuyHoldReturnPct, 2),
			Outperformance: round(m.OutperformancePct, 2),
			TotalTrades:    m.TotalTrades,
			WinningTrades:  m.WinningTrades,
			LosingTrades:   m.LosingTrades,
			WinRate:        round(m.WinRate, 1),
			AvgWin:         round(m.AvgWin, 2),
			AvgLoss:        round(m.AvgLoss, 2),
			ProfitFactor:   round(m.ProfitFactor, 2),
			MaxDrawdown:    round(m.MaxDrawdownPct, 2),
			StartDate:      m.StartDate.Format(market.DateLayout),
			EndDate:        m.EndDate.Format(market.DateLayout),
		},
		Trades:      make([]TradeReport, 0, len(res.Trades)),
		EquityCurve: make([]EquityReport, 0, len(res.Equity)),
	}

	for _, t := range res.Trades {
		tr := TradeReport{
			Type:   string(t.Kind),
			Date:   t.Date.Format(market.DateLayout),
			Price:  round(t.Price, 2),
			Shares: t.Shares,
			Signal: t.Signal,
		}
		if t.IsSell() {
			profit, pct := round(t.Profit, 2), round(t.ProfitPct, 2)
			tr.Profit, tr.ProfitPct = &profit, &pct
		}
		r.Trades = append(r.Trades, tr)
	}
	for _, e := range res.Equity {
		r.EquityCurve = append(r.EquityCurve, EquityReport{
			Date:   e.Date.Format(market.DateLayout),
			Equity: round(e.Equity, 2),
			Price:  round(e.Price, 2),
		})
	}
	return r
}

// FailureReport shapes err as an unsuccessful payload.
func FailureReport(err error) Report {
	return Report{
		Success: false,
		Error:   err.Error(),
		Code:    ErrorCode(err),
	}
}

func round(x float64, places int32) float64 {
	return decimal.NewFromFloat(x).Round(places).InexactFloat64()
}
