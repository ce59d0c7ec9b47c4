package strategies

import (
	"github.com/rustyeddy/screener/indicators"
	"github.com/rustyeddy/screener/market"
)

// TrendPeriod is the SMA lookback the RSI strategy filters trend with.
const TrendPeriod = 50

// VolumePeriod is the volume moving-average lookback.
const VolumePeriod = 20

// Field names one optional indicator column of a Frame.
type Field uint16

const (
	FieldRSI Field = 1 << iota
	FieldSMA50
	FieldMACD
	FieldMACDSignal
	FieldMACDHist
	FieldBBMid
	FieldBBUpper
	FieldBBLower
	FieldMAFast
	FieldMASlow
	FieldVolumeMA
)

// Frame is a price bar with the indicator readings attached to it.
type Frame struct {
	market.Bar

	RSI   indicators.Value
	SMA50 indicators.Value

	MACD       indicators.Value
	MACDSignal indicators.Value
	MACDHist   indicators.Value

	BBMid   indicators.Value
	BBUpper indicators.Value
	BBLower indicators.Value

	MAFast indicators.Value
	MASlow indicators.Value

	VolumeMA indicators.Value
}

// Has reports whether every field in fs is defined on f.
func (f Frame) Has(fs Field) bool {
	for _, c := range []struct {
		field Field
		v     indicators.Value
	}{
		{FieldRSI, f.RSI},
		{FieldSMA50, f.SMA50},
		{FieldMACD, f.MACD},
		{FieldMACDSignal, f.MACDSignal},
		{FieldMACDHist, f.MACDHist},
		{FieldBBMid, f.BBMid},
		{FieldBBUpper, f.BBUpper},
		{FieldBBLower, f.BBLower},
		{FieldMAFast, f.MAFast},
		{FieldMASlow, f.MASlow},
		{FieldVolumeMA, f.VolumeMA},
	} {
		if fs&c.field != 0 && !c.v.OK {
			return false
		}
	}
	return true
}

// NewFrames wraps each bar in an empty Frame. The volume moving average is
// attached for every strategy; it is informational and never required.
func NewFrames(s market.Series) []Frame {
	vm := indicators.VolumeMA(s.Volumes(), VolumePeriod)
	out := make([]Frame, len(s))
	for i, b := range s {
		out[i] = Frame{Bar: b, VolumeMA: vm[i]}
	}
	return out
}

func attachRSISMA(fs []Frame, closes []float64, _ Params) {
	rsi := indicators.RSI(closes, indicators.RSIPeriod)
	sma := indicators.SMA(closes, TrendPeriod)
	for i := range fs {
		fs[i].RSI = rsi[i]
		fs[i].SMA50 = sma[i]
	}
}

func attachMACD(fs []Frame, closes []float64, p Params) {
	m := indicators.MACD(closes, p.MACDFast, p.MACDSlow, p.MACDSignal)
	for i := range fs {
		fs[i].MACD = m.Line[i]
		fs[i].MACDSignal = m.Signal[i]
		fs[i].MACDHist = m.Hist[i]
	}
}

func attachBollinger(fs []Frame, closes []float64, p Params) {
	b := indicators.Bollinger(closes, p.BBPeriod, p.BBStd)
	for i := range fs {
		fs[i].BBMid = b.Mid[i]
		fs[i].BBUpper = b.Upper[i]
		fs[i].BBLower = b.Lower[i]
	}
}

func attachMACrossover(fs []Frame, closes []float64, p Params) {
	fast := indicators.SMA(closes, p.MAFast)
	slow := indicators.SMA(closes, p.MASlow)
	for i := range fs {
		fs[i].MAFast = fast[i]
		fs[i].MASlow = slow[i]
	}
}
