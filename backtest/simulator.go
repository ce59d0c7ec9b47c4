package backtest

import (
	"time"

	"github.com/rustyeddy/screener/risk"
	"github.com/rustyeddy/screener/strategies"
)

// TradeKind is the execution event type.
type TradeKind string

const (
	Buy        TradeKind = "BUY"
	Sell       TradeKind = "SELL"
	SellForced TradeKind = "SELL_FORCED"
)

// ForcedExitLabel annotates the liquidation at the end of the data.
const ForcedExitLabel = "end of data"

// Trade is one execution. Profit and ProfitPct are set on sells only.
type Trade struct {
	Kind      TradeKind
	Date      time.Time
	Price     float64
	Shares    int64
	Profit    float64
	ProfitPct float64
	Signal    string
}

// IsSell reports whether t closes a position.
func (t Trade) IsSell() bool { return t.Kind == Sell || t.Kind == SellForced }

// EquityPoint marks the account to market at one bar's close.
type EquityPoint struct {
	Date   time.Time
	Equity float64
	Price  float64
}

// State of the simulated account.
type State int8

const (
	Flat State = iota
	Long
)

func (s State) String() string {
	if s == Long {
		return "LONG"
	}
	return "FLAT"
}

// Position is the single open long, if any.
type Position struct {
	State      State
	EntryPrice float64
	Shares     int64
}

// Simulator walks frames once, acting on signals with one long position at
// a time and closing whatever is still open on the last bar.
//
// Fill model: market orders at the bar close, whole shares, no fees.
type Simulator struct {
	Cash   float64
	Pos    Position
	Trades []Trade
	Equity []EquityPoint
}

func NewSimulator(capital float64) *Simulator {
	return &Simulator{Cash: capital}
}

// Run processes frames in order. It must be called once per Simulator.
func (s *Simulator) Run(frames []strategies.Frame, signal strategies.SignalFunc) {
	s.Equity = make([]EquityPoint, 0, len(frames))

	for i, f := range frames {
		// 1) mark to market
		s.Equity = append(s.Equity, EquityPoint{
			Date:   f.Date,
			Equity: s.Cash + float64(s.Pos.Shares)*f.Close,
			Price:  f.Close,
		})

		// 2) signal
		var prev *strategies.Frame
		if i > 0 {
			prev = &frames[i-1]
		}
		sig := signal(prev, f)

		// 3) act; signals that do not fit the state are ignored
		switch {
		case s.Pos.State == Flat && sig.Buy:
			s.open(f, sig.Label)
		case s.Pos.State == Long && sig.Sell:
			s.close(Sell, f, sig.Label)
		}
	}

	if s.Pos.State == Long && len(frames) > 0 {
		s.close(SellForced, frames[len(frames)-1], ForcedExitLabel)
	}
}

func (s *Simulator) open(f strategies.Frame, label string) {
	shares := risk.SharesFor(s.Cash, f.Close, risk.DeployFraction)
	if shares <= 0 {
		return
	}

	s.Cash -= float64(shares) * f.Close
	s.Pos = Position{State: Long, EntryPrice: f.Close, Shares: shares}
	s.Trades = append(s.Trades, Trade{
		Kind:   Buy,
		Date:   f.Date,
		Price:  f.Close,
		Shares: shares,
		Signal: label,
	})
}

func (s *Simulator) close(kind TradeKind, f strategies.Frame, label string) {
	p := s.Pos
	exit := f.Close

	s.Cash += float64(p.Shares) * exit
	profit := (exit - p.EntryPrice) * float64(p.Shares)
	profitPct := 0.0
	if p.EntryPrice != 0 {
		profitPct = (exit - p.EntryPrice) / p.EntryPrice * 100
	}

	s.Trades = append(s.Trades, Trade{
		Kind:      kind,
		Date:      f.Date,
		Price:     exit,
		Shares:    p.Shares,
		Profit:    profit,
		ProfitPct: profitPct,
		Signal:    label,
	})
	s.Pos = Position{}
}
