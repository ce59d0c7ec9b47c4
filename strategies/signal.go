package strategies

import (
	"fmt"

	"github.com/rustyeddy/screener/indicators"
)

func rsiSMASignal(_ *Frame, cur Frame, p Params) Signal {
	price, rsi, sma := cur.Close, cur.RSI.V, cur.SMA50.V
	return Signal{
		Buy:   price > sma && rsi < p.RSIOversold,
		Sell:  rsi > p.RSIOverbought || price < sma,
		Label: fmt.Sprintf("RSI: %.1f", rsi),
	}
}

// macdSignal fires on the histogram changing sign between two bars. A
// histogram touching exactly zero is not a cross.
func macdSignal(prev *Frame, cur Frame, _ Params) Signal {
	sig := Signal{Label: fmt.Sprintf("MACD: %.2f", cur.MACD.V)}
	if prev == nil {
		return sig
	}
	ph, h := prev.MACDHist.V, cur.MACDHist.V
	sig.Buy = ph < 0 && h > 0
	sig.Sell = ph > 0 && h < 0
	return sig
}

// bollingerSignal buys a touch of the lower band and sells at the upper band
// or on a fall below the middle. A zero-width band carries no information
// and yields no signal.
func bollingerSignal(_ *Frame, cur Frame, _ Params) Signal {
	price := cur.Close
	lower, upper, mid := cur.BBLower.V, cur.BBUpper.V, cur.BBMid.V
	sig := Signal{Label: fmt.Sprintf("BB%%: %.1f", indicators.BandPercent(price, upper, lower))}
	if upper == lower {
		return sig
	}
	sig.Buy = price <= lower
	sig.Sell = price >= upper || price < mid
	return sig
}

// maCrossSignal detects the golden cross (fast rises above slow) and the
// death cross (fast falls below slow).
func maCrossSignal(prev *Frame, cur Frame, _ Params) Signal {
	sig := Signal{Label: fmt.Sprintf("Fast: %.1f", cur.MAFast.V)}
	if prev == nil {
		return sig
	}
	pf, ps := prev.MAFast.V, prev.MASlow.V
	f, s := cur.MAFast.V, cur.MASlow.V
	sig.Buy = pf <= ps && f > s
	sig.Sell = pf >= ps && f < s
	return sig
}
