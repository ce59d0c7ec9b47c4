package backtest

import (
	"math"
	"strings"

	"github.com/rustyeddy/screener/internal/logger"
	"github.com/rustyeddy/screener/market"
	"github.com/rustyeddy/screener/strategies"
)

const (
	// MinRawBars is the shortest series Run accepts before indicators.
	MinRawBars = 60
	// MinTrimmedBars is the shortest series left to simulate after warm-up.
	MinTrimmedBars = 10

	DefaultCapital = 100000.0

	// MaxTrades caps the trade list returned with a result.
	MaxTrades = 20
	// EquitySamples is the approximate size of the returned equity curve.
	EquitySamples = 50
)

// Request is one backtest invocation.
type Request struct {
	Symbol   string
	Period   string
	Strategy string
	Capital  float64
	Params   strategies.Params
	Bars     market.Series
}

// Result is a finished backtest. Trades holds the most recent MaxTrades
// executions and Equity a sampled curve; Summary is computed from the full
// lists. Symbol is the display symbol, without the exchange suffix.
type Result struct {
	Symbol       string
	Period       string
	Strategy     string
	StrategyName string
	Params       strategies.Params
	Capital      float64

	Summary Metrics
	Trades  []Trade
	Equity  []EquityPoint

	// Bars is the number of bars simulated after warm-up trimming.
	Bars int
}

// Run executes one backtest. It is deterministic: the same request yields
// the same result.
func Run(req Request) (*Result, error) {
	kind, err := ResolveStrategy(req.Strategy)
	if err != nil {
		return nil, err
	}

	capital := req.Capital
	if capital == 0 {
		capital = DefaultCapital
	}
	if capital < 0 || math.IsNaN(capital) || math.IsInf(capital, 0) {
		return nil, failf(ErrInvalidInput, "initial capital must be a positive number, got %v", capital)
	}

	params := req.Params.WithDefaults()
	if err := params.Validate(kind); err != nil {
		return nil, failf(ErrInvalidInput, "invalid params for %s: %v", kind, err)
	}

	if err := req.Bars.Validate(); err != nil {
		return nil, failf(ErrInvalidInput, "invalid price series: %v", err)
	}
	if len(req.Bars) < MinRawBars {
		return nil, failf(ErrInsufficientData, "insufficient data for backtesting: %d bars, need %d",
			len(req.Bars), MinRawBars)
	}

	frames := Trim(kind.Attach(req.Bars, params), kind.Required())
	if len(frames) < MinTrimmedBars {
		return nil, failf(ErrInsufficientData, "insufficient data after indicator warm-up: %d bars, need %d",
			len(frames), MinTrimmedBars)
	}
	logger.Debugf("backtest %s %s: %d bars, %d after warm-up", req.Symbol, kind, len(req.Bars), len(frames))

	sim := NewSimulator(capital)
	sim.Run(frames, kind.Bind(params))
	summary := ComputeMetrics(sim.Trades, sim.Equity, capital)

	logger.Debugf("backtest %s %s: %d trades, return %.2f%%", req.Symbol, kind, summary.TotalTrades, summary.TotalReturnPct)

	return &Result{
		Symbol:       market.RemoveSuffix(req.Symbol, market.NSESuffix),
		Period:       req.Period,
		Strategy:     kind.ID(),
		StrategyName: kind.Title(params),
		Params:       params,
		Capital:      capital,
		Summary:      summary,
		Trades:       recentTrades(sim.Trades, MaxTrades),
		Equity:       SampleEquity(sim.Equity, EquitySamples),
		Bars:         len(frames),
	}, nil
}

// ResolveStrategy maps a strategy id to its kind, failing with
// ErrUnknownStrategy.
func ResolveStrategy(id string) (strategies.Kind, error) {
	kind, ok := strategies.ParseKind(id)
	if !ok {
		return 0, failf(ErrUnknownStrategy, "unknown strategy %q (supported: %s)",
			id, strings.Join(strategies.IDs(), ", "))
	}
	return kind, nil
}

// ListStrategies returns the metadata of every supported strategy.
func ListStrategies() []strategies.Info {
	return strategies.List()
}

func recentTrades(trades []Trade, n int) []Trade {
	if len(trades) > n {
		trades = trades[len(trades)-n:]
	}
	return append([]Trade(nil), trades...)
}

// SampleEquity keeps every stride-th point from the start, with stride
// max(1, len/n). The result holds at most about 2n points.
func SampleEquity(curve []EquityPoint, n int) []EquityPoint {
	stride := 1
	if n > 0 && len(curve)/n > 1 {
		stride = len(curve) / n
	}
	out := make([]EquityPoint, 0, len(curve)/stride+1)
	for i := 0; i < len(curve); i += stride {
		out = append(out, curve[i])
	}
	return out
}
