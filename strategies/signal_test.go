package strategies

import (
	"testing"

	"github.com/rustyeddy/screener/indicators"
	"github.com/rustyeddy/screener/market"
	"github.com/stretchr/testify/assert"
)

func v(x float64) indicators.Value { return indicators.Some(x) }

func frame(close float64) Frame {
	return Frame{Bar: market.Bar{Close: close}}
}

func TestRSISMASignal(t *testing.T) {
	sig := RSISMA.Bind(DefaultParams())

	tests := []struct {
		name       string
		close, rsi float64
		sma        float64
		buy, sell  bool
	}{
		{"oversold in uptrend", 105, 25, 100, true, false},
		{"oversold in downtrend", 95, 25, 100, false, true},
		{"overbought", 105, 75, 100, false, true},
		{"neutral", 105, 50, 100, false, false},
		{"at sma", 100, 25, 100, false, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := frame(tt.close)
			f.RSI, f.SMA50 = v(tt.rsi), v(tt.sma)
			got := sig(nil, f)
			assert.Equal(t, tt.buy, got.Buy)
			assert.Equal(t, tt.sell, got.Sell)
		})
	}

	f := frame(105)
	f.RSI, f.SMA50 = v(25.04), v(100)
	assert.Equal(t, "RSI: 25.0", sig(nil, f).Label)
}

func TestMACDSignal(t *testing.T) {
	sig := MACDCrossover.Bind(DefaultParams())

	hist := func(h float64) Frame {
		f := frame(100)
		f.MACD, f.MACDHist = v(1.234), v(h)
		return f
	}

	tests := []struct {
		name      string
		prev, cur float64
		buy, sell bool
	}{
		{"bullish cross", -0.5, 0.5, true, false},
		{"bearish cross", 0.5, -0.5, false, true},
		{"stays positive", 0.2, 0.5, false, false},
		{"touches zero", -0.5, 0, false, false},
		{"leaves zero", 0, 0.5, false, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			prev := hist(tt.prev)
			got := sig(&prev, hist(tt.cur))
			assert.Equal(t, tt.buy, got.Buy)
			assert.Equal(t, tt.sell, got.Sell)
			assert.Equal(t, "MACD: 1.23", got.Label)
		})
	}

	first := sig(nil, hist(0.5))
	assert.False(t, first.Buy)
	assert.False(t, first.Sell)
}

func TestBollingerSignal(t *testing.T) {
	sig := Bollinger.Bind(DefaultParams())

	band := func(close float64) Frame {
		f := frame(close)
		f.BBLower, f.BBMid, f.BBUpper = v(90), v(100), v(110)
		return f
	}

	tests := []struct {
		name      string
		close     float64
		buy, sell bool
		label     string
	}{
		{"touch lower", 90, true, true, "BB%: 0.0"},
		{"below lower", 85, true, true, "BB%: -25.0"},
		{"upper half", 105, false, false, "BB%: 75.0"},
		{"at upper", 110, false, true, "BB%: 100.0"},
		{"lower half", 95, false, true, "BB%: 25.0"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := sig(nil, band(tt.close))
			assert.Equal(t, tt.buy, got.Buy)
			assert.Equal(t, tt.sell, got.Sell)
			assert.Equal(t, tt.label, got.Label)
		})
	}

	t.Run("collapsed band", func(t *testing.T) {
		f := frame(100)
		f.BBLower, f.BBMid, f.BBUpper = v(100), v(100), v(100)
		got := sig(nil, f)
		assert.False(t, got.Buy)
		assert.False(t, got.Sell)
		assert.Equal(t, "BB%: 50.0", got.Label)
	})
}

func TestMACrossSignal(t *testing.T) {
	sig := MACrossover.Bind(DefaultParams())

	ma := func(fast, slow float64) Frame {
		f := frame(100)
		f.MAFast, f.MASlow = v(fast), v(slow)
		return f
	}

	tests := []struct {
		name      string
		prev, cur Frame
		buy, sell bool
	}{
		{"golden cross", ma(9, 10), ma(11, 10), true, false},
		{"golden cross from equal", ma(10, 10), ma(11, 10), true, false},
		{"death cross", ma(11, 10), ma(9, 10), false, true},
		{"death cross from equal", ma(10, 10), ma(9, 10), false, true},
		{"stays above", ma(11, 10), ma(12, 10), false, false},
		{"flat equal", ma(10, 10), ma(10, 10), false, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			prev := tt.prev
			got := sig(&prev, tt.cur)
			assert.Equal(t, tt.buy, got.Buy)
			assert.Equal(t, tt.sell, got.Sell)
		})
	}

	first := sig(nil, ma(11, 10))
	assert.False(t, first.Buy)
	assert.Equal(t, "Fast: 11.0", first.Label)
}

func TestBindUnknownKindHolds(t *testing.T) {
	got := Kind(77).Bind(DefaultParams())(nil, frame(1))
	assert.Equal(t, Signal{}, got)
}
