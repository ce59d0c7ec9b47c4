package backtest

import (
	"math"
	"time"

	"github.com/rustyeddy/screener/market"
	"github.com/rustyeddy/screener/strategies"
)

var t0 = time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

// seriesOf builds one bar per close on consecutive days.
func seriesOf(closes ...float64) market.Series {
	s := make(market.Series, len(closes))
	for i, c := range closes {
		s[i] = market.Bar{
			Date:   t0.AddDate(0, 0, i),
			Open:   c,
			High:   c + 1,
			Low:    math.Max(c-1, 0),
			Close:  c,
			Volume: 1000 + float64(i),
		}
	}
	return s
}

func flat(n int, price float64) market.Series {
	xs := make([]float64, n)
	for i := range xs {
		xs[i] = price
	}
	return seriesOf(xs...)
}

// flatThenRising holds at 100 for the first 10 bars, then climbs 1 per bar.
func flatThenRising(n int) market.Series {
	xs := make([]float64, n)
	for i := range xs {
		xs[i] = 100
		if i >= 10 {
			xs[i] = 100 + float64(i-9)
		}
	}
	return seriesOf(xs...)
}

func wave(n int) market.Series {
	xs := make([]float64, n)
	for i := range xs {
		xs[i] = 100 + 10*math.Sin(float64(i)/3) + float64(i)*0.05
	}
	return seriesOf(xs...)
}

func framesOf(closes ...float64) []strategies.Frame {
	s := seriesOf(closes...)
	out := make([]strategies.Frame, len(s))
	for i, b := range s {
		out[i] = strategies.Frame{Bar: b}
	}
	return out
}

// scripted replays a fixed signal per frame index.
func scripted(frames []strategies.Frame, sigs map[int]strategies.Signal) strategies.SignalFunc {
	idx := make(map[time.Time]int, len(frames))
	for i, f := range frames {
		idx[f.Date] = i
	}
	return func(_ *strategies.Frame, cur strategies.Frame) strategies.Signal {
		return sigs[idx[cur.Date]]
	}
}

func countKinds(trades []Trade) (buys, sells int) {
	for _, t := range trades {
		if t.IsSell() {
			sells++
		} else {
			buys++
		}
	}
	return buys, sells
}
