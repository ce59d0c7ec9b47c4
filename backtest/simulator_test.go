package backtest

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rustyeddy/screener/strategies"
)

var (
	buy  = strategies.Signal{Buy: true, Label: "buy"}
	sell = strategies.Signal{Sell: true, Label: "sell"}
)

func TestSimulator_RoundTripsAndForcedExit(t *testing.T) {
	t.Parallel()

	frames := framesOf(100, 110, 90, 95)
	sim := NewSimulator(1000)
	sim.Run(frames, scripted(frames, map[int]strategies.Signal{0: buy, 1: sell, 2: buy}))

	require.Len(t, sim.Trades, 4)

	assert.Equal(t, Buy, sim.Trades[0].Kind)
	assert.Equal(t, int64(9), sim.Trades[0].Shares)
	assert.Equal(t, 100.0, sim.Trades[0].Price)
	assert.Equal(t, "buy", sim.Trades[0].Signal)

	assert.Equal(t, Sell, sim.Trades[1].Kind)
	assert.InDelta(t, 90.0, sim.Trades[1].Profit, 1e-9)
	assert.InDelta(t, 10.0, sim.Trades[1].ProfitPct, 1e-9)

	assert.Equal(t, Buy, sim.Trades[2].Kind)
	assert.Equal(t, int64(11), sim.Trades[2].Shares)

	forced := sim.Trades[3]
	assert.Equal(t, SellForced, forced.Kind)
	assert.Equal(t, ForcedExitLabel, forced.Signal)
	assert.Equal(t, frames[3].Date, forced.Date)
	assert.InDelta(t, 55.0, forced.Profit, 1e-9)

	require.Len(t, sim.Equity, 4)
	want := []float64{1000, 1090, 1090, 1145}
	for i, w := range want {
		assert.InDelta(t, w, sim.Equity[i].Equity, 1e-9, "equity %d", i)
		assert.Equal(t, frames[i].Close, sim.Equity[i].Price)
	}

	assert.InDelta(t, 1145.0, sim.Cash, 1e-9)
	assert.Equal(t, Flat, sim.Pos.State)
}

func TestSimulator_IgnoresSignalsThatDoNotFitState(t *testing.T) {
	t.Parallel()

	frames := framesOf(100, 101, 102, 103)
	sim := NewSimulator(1000)
	// sell while flat, buy twice, sell once
	sim.Run(frames, scripted(frames, map[int]strategies.Signal{0: sell, 1: buy, 2: buy, 3: sell}))

	require.Len(t, sim.Trades, 2)
	assert.Equal(t, Buy, sim.Trades[0].Kind)
	assert.Equal(t, frames[1].Date, sim.Trades[0].Date)
	assert.Equal(t, Sell, sim.Trades[1].Kind)
}

func TestSimulator_BuyAndSellOnSameBarPrefersState(t *testing.T) {
	t.Parallel()

	both := strategies.Signal{Buy: true, Sell: true}
	frames := framesOf(100, 100, 100)
	sim := NewSimulator(1000)
	sim.Run(frames, scripted(frames, map[int]strategies.Signal{0: both, 1: both}))

	// flat takes the buy, long takes the sell
	require.Len(t, sim.Trades, 2)
	assert.Equal(t, Buy, sim.Trades[0].Kind)
	assert.Equal(t, Sell, sim.Trades[1].Kind)
}

func TestSimulator_NotEnoughCashForOneShare(t *testing.T) {
	t.Parallel()

	frames := framesOf(100, 100)
	sim := NewSimulator(50)
	sim.Run(frames, scripted(frames, map[int]strategies.Signal{0: buy}))

	assert.Empty(t, sim.Trades)
	assert.Equal(t, Flat, sim.Pos.State)
	assert.Equal(t, 50.0, sim.Cash)
	assert.Len(t, sim.Equity, 2)
}

func TestSimulator_Empty(t *testing.T) {
	t.Parallel()

	sim := NewSimulator(1000)
	sim.Run(nil, func(*strategies.Frame, strategies.Frame) strategies.Signal { return buy })

	assert.Empty(t, sim.Trades)
	assert.Empty(t, sim.Equity)
	assert.Equal(t, 1000.0, sim.Cash)
}

func TestSimulator_PrevFrame(t *testing.T) {
	t.Parallel()

	frames := framesOf(1, 2, 3)
	var seen []float64
	sim := NewSimulator(1000)
	sim.Run(frames, func(prev *strategies.Frame, cur strategies.Frame) strategies.Signal {
		if prev == nil {
			seen = append(seen, -1)
		} else {
			seen = append(seen, prev.Close)
		}
		return strategies.Signal{}
	})
	assert.Equal(t, []float64{-1, 1, 2}, seen)
}

func TestStateString(t *testing.T) {
	t.Parallel()
	assert.Equal(t, "FLAT", Flat.String())
	assert.Equal(t, "LONG", Long.String())
}
