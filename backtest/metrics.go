package backtest

import (
	"math"
	"time"
)

// Metrics summarizes a finished simulation.
type Metrics struct {
	InitialCapital float64
	FinalCapital   float64
	NetProfit      float64

	TotalReturnPct    float64
	BuyHoldReturnPct  float64
	OutperformancePct float64

	// Trade statistics count closing trades only.
	TotalTrades   int
	WinningTrades int
	LosingTrades  int
	WinRate       float64
	AvgWin        float64
	AvgLoss       float64
	ProfitFactor  float64

	MaxDrawdownPct float64

	StartDate time.Time
	EndDate   time.Time
}

// ComputeMetrics derives the summary from the trade list and equity curve.
// Buy-and-hold is measured on the curve's first and last prices, which are
// the closes of the simulated bars.
func ComputeMetrics(trades []Trade, equity []EquityPoint, capital float64) Metrics {
	m := Metrics{
		InitialCapital: capital,
		FinalCapital:   capital,
	}

	if n := len(equity); n > 0 {
		first, last := equity[0], equity[n-1]
		m.FinalCapital = last.Equity
		m.StartDate = first.Date
		m.EndDate = last.Date
		m.BuyHoldReturnPct = pctChange(first.Price, last.Price)
	}

	m.NetProfit = m.FinalCapital - capital
	m.TotalReturnPct = pctChange(capital, m.FinalCapital)
	m.OutperformancePct = m.TotalReturnPct - m.BuyHoldReturnPct

	var grossWin, grossLoss float64
	for _, t := range trades {
		if !t.IsSell() {
			continue
		}
		m.TotalTrades++
		if t.Profit > 0 {
			m.WinningTrades++
			grossWin += t.Profit
		} else {
			m.LosingTrades++
			grossLoss += t.Profit
		}
	}
	if m.TotalTrades > 0 {
		m.WinRate = float64(m.WinningTrades) / float64(m.TotalTrades) * 100
	}
	if m.WinningTrades > 0 {
		m.AvgWin = grossWin / float64(m.WinningTrades)
	}
	if m.LosingTrades > 0 {
		m.AvgLoss = grossLoss / float64(m.LosingTrades)
	}
	if grossLoss < 0 {
		m.ProfitFactor = grossWin / math.Abs(grossLoss)
	}

	m.MaxDrawdownPct = MaxDrawdown(equity)
	return m
}

// MaxDrawdown is the largest percentage fall from a running equity peak,
// 0 for a curve that never declines.
func MaxDrawdown(equity []EquityPoint) float64 {
	if len(equity) == 0 {
		return 0
	}
	peak := equity[0].Equity
	maxDD := 0.0
	for _, e := range equity {
		if e.Equity > peak {
			peak = e.Equity
		}
		if peak <= 0 {
			continue
		}
		if dd := (peak - e.Equity) / peak * 100; dd > maxDD {
			maxDD = dd
		}
	}
	return math.Min(maxDD, 100)
}

// pctChange is the percent move from a to b, 0 when a is 0.
func pctChange(a, b float64) float64 {
	if a == 0 {
		return 0
	}
	return (b - a) / a * 100
}
