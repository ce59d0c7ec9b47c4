package backtest

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func curve(values ...float64) []EquityPoint {
	out := make([]EquityPoint, len(values))
	for i, v := range values {
		out[i] = EquityPoint{Date: t0.AddDate(0, 0, i), Equity: v, Price: v / 10}
	}
	return out
}

func TestComputeMetrics(t *testing.T) {
	t.Parallel()

	trades := []Trade{
		{Kind: Buy, Price: 10, Shares: 10},
		{Kind: Sell, Price: 20, Shares: 10, Profit: 100},
		{Kind: Buy, Price: 20, Shares: 10},
		{Kind: Sell, Price: 15, Shares: 10, Profit: -50},
		{Kind: Buy, Price: 15, Shares: 10},
		{Kind: SellForced, Price: 15, Shares: 10, Profit: 0},
	}
	eq := curve(1000, 1200, 900, 1100)

	m := ComputeMetrics(trades, eq, 1000)

	assert.Equal(t, 1000.0, m.InitialCapital)
	assert.Equal(t, 1100.0, m.FinalCapital)
	assert.InDelta(t, 100.0, m.NetProfit, 1e-9)
	assert.InDelta(t, 10.0, m.TotalReturnPct, 1e-9)
	assert.InDelta(t, 10.0, m.BuyHoldReturnPct, 1e-9)
	assert.InDelta(t, 0.0, m.OutperformancePct, 1e-9)

	assert.Equal(t, 3, m.TotalTrades)
	assert.Equal(t, 1, m.WinningTrades)
	// a flat exit counts as a loss
	assert.Equal(t, 2, m.LosingTrades)
	assert.InDelta(t, 100.0/3, m.WinRate, 1e-9)
	assert.InDelta(t, 100.0, m.AvgWin, 1e-9)
	assert.InDelta(t, -25.0, m.AvgLoss, 1e-9)
	assert.InDelta(t, 2.0, m.ProfitFactor, 1e-9)
	assert.InDelta(t, 25.0, m.MaxDrawdownPct, 1e-9)

	assert.Equal(t, eq[0].Date, m.StartDate)
	assert.Equal(t, eq[3].Date, m.EndDate)
}

func TestComputeMetrics_NoTrades(t *testing.T) {
	t.Parallel()

	m := ComputeMetrics(nil, curve(1000, 1000), 1000)
	assert.Equal(t, 0, m.TotalTrades)
	assert.Zero(t, m.WinRate)
	assert.Zero(t, m.AvgWin)
	assert.Zero(t, m.AvgLoss)
	assert.Zero(t, m.ProfitFactor)
	assert.Zero(t, m.TotalReturnPct)
	assert.Zero(t, m.MaxDrawdownPct)
}

func TestComputeMetrics_EmptyCurve(t *testing.T) {
	t.Parallel()

	m := ComputeMetrics(nil, nil, 5000)
	assert.Equal(t, 5000.0, m.FinalCapital)
	assert.Zero(t, m.TotalReturnPct)
	assert.Zero(t, m.BuyHoldReturnPct)
	assert.True(t, m.StartDate.IsZero())
}

func TestMaxDrawdown(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		eq   []EquityPoint
		want float64
	}{
		{"empty", nil, 0},
		{"monotone up", curve(1, 2, 3, 4), 0},
		{"single dip", curve(100, 80, 120), 20},
		{"deepest of two", curve(100, 90, 200, 150, 210), 25},
		{"zero peak skipped", curve(0, 0, 0), 0},
		{"wiped out", curve(100, 0), 100},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, MaxDrawdown(tt.eq), 1e-9)
		})
	}
}

func TestPctChange(t *testing.T) {
	t.Parallel()
	assert.Zero(t, pctChange(0, 10))
	assert.InDelta(t, 50.0, pctChange(100, 150), 1e-9)
	assert.InDelta(t, -20.0, pctChange(100, 80), 1e-9)
}
