// Package screen computes the latest technical reading for a symbol: RSI,
// trend filter, the RSI + SMA50 signal and, on a buy, a stop and a target.
package screen

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"

	"github.com/rustyeddy/screener/indicators"
	"github.com/rustyeddy/screener/internal/logger"
	"github.com/rustyeddy/screener/market"
	"github.com/rustyeddy/screener/risk"
	"github.com/rustyeddy/screener/strategies"
)

const (
	// Period is the lookback fetched for a snapshot.
	Period = "3mo"
	// MinBars is the shortest series Analyze accepts.
	MinBars = 20
	// HistoryLen is the number of closes kept for the sparkline.
	HistoryLen = 20
	// NeutralRSI stands in for RSI before it has warmed up.
	NeutralRSI = 50.0
)

const (
	Buy  = "Buy"
	Sell = "Sell"
	Hold = "Hold"
)

// Snapshot is the current technical picture of one symbol.
type Snapshot struct {
	Symbol       string       `json:"symbol"`
	Date         string       `json:"date"`
	Price        float64      `json:"price"`
	Technicals   Technicals   `json:"technicals"`
	PriceHistory []PricePoint `json:"priceHistory"`
}

// Technicals carries the indicator readings. Stop, target, gain and
// reward-to-risk are set only on a Buy.
type Technicals struct {
	RSI        float64  `json:"rsi"`
	SMA50      float64  `json:"sma50"`
	VolumeMA   *float64 `json:"volumeMA,omitempty"`
	Signal     string   `json:"signal"`
	StopLoss   *float64 `json:"sl"`
	TakeProfit *float64 `json:"tp"`
	Gain       *float64 `json:"gain"`
	RR         *float64 `json:"rr,omitempty"`
}

type PricePoint struct {
	Price float64 `json:"price"`
}

// Analyze builds the snapshot for the last bar of s. RSI falls back to
// NeutralRSI and SMA50 to the last close while they are still warming up.
func Analyze(symbol string, s market.Series, p strategies.Params) (Snapshot, error) {
	if len(s) < MinBars {
		return Snapshot{}, fmt.Errorf("screen %s: %d bars, need %d", symbol, len(s), MinBars)
	}
	if err := s.Validate(); err != nil {
		return Snapshot{}, fmt.Errorf("screen %s: %w", symbol, err)
	}
	p = p.WithDefaults()

	closes := s.Closes()
	last, _ := s.Last()

	rsi := indicators.Last(indicators.RSI(closes, indicators.RSIPeriod)).Or(NeutralRSI)
	sma := indicators.Last(indicators.SMA(closes, strategies.TrendPeriod)).Or(last.Close)

	f := strategies.Frame{Bar: last, RSI: indicators.Some(rsi), SMA50: indicators.Some(sma)}
	sig := strategies.RSISMA.Bind(p)(nil, f)

	snap := Snapshot{
		Symbol: market.RemoveSuffix(symbol, market.NSESuffix),
		Date:   last.Date.Format(market.DateLayout),
		Price:  round(last.Close, 2),
		Technicals: Technicals{
			RSI:    round(rsi, 1),
			SMA50:  round(sma, 2),
			Signal: label(sig),
		},
	}

	if vm := indicators.Last(indicators.VolumeMA(s.Volumes(), strategies.VolumePeriod)); vm.OK {
		v := round(vm.V, 0)
		snap.Technicals.VolumeMA = &v
	}

	if snap.Technicals.Signal == Buy {
		sl := risk.StopLoss(last.Close, rsi)
		tp := risk.TakeProfit(last.Close, rsi)
		gain := risk.PotentialGain(last.Close, tp)
		rr := round(risk.RR(last.Close, sl, tp), 2)
		snap.Technicals.StopLoss = &sl
		snap.Technicals.TakeProfit = &tp
		snap.Technicals.Gain = &gain
		snap.Technicals.RR = &rr
	}

	tail := closes
	if len(tail) > HistoryLen {
		tail = tail[len(tail)-HistoryLen:]
	}
	snap.PriceHistory = make([]PricePoint, len(tail))
	for i, c := range tail {
		snap.PriceHistory[i] = PricePoint{Price: round(c, 2)}
	}
	return snap, nil
}

func label(sig strategies.Signal) string {
	switch {
	case sig.Buy:
		return Buy
	case sig.Sell:
		return Sell
	}
	return Hold
}

// Scan snapshots every symbol through p, at most limit fetches at a time.
// Symbols that fail to load or analyze are logged and left out; the
// returned snapshots keep the input order.
func Scan(ctx context.Context, p market.Provider, symbols []string, params strategies.Params, limit int) ([]Snapshot, error) {
	if limit <= 0 {
		limit = 4
	}
	slots := make([]*Snapshot, len(symbols))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(limit)
	for i, sym := range symbols {
		g.Go(func() error {
			bars, err := p.Bars(gctx, sym, Period)
			if err != nil {
				if gctx.Err() != nil {
					return gctx.Err()
				}
				logger.Warnf("scan: fetch %s: %v", sym, err)
				return nil
			}
			snap, err := Analyze(sym, bars, params)
			if err != nil {
				logger.Warnf("scan: %v", err)
				return nil
			}
			slots[i] = &snap
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	out := make([]Snapshot, 0, len(symbols))
	for _, s := range slots {
		if s != nil {
			out = append(out, *s)
		}
	}
	return out, nil
}

func round(x float64, places int32) float64 {
	return decimal.NewFromFloat(x).Round(places).InexactFloat64()
}
