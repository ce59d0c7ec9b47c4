package indicators

// Conventional MACD periods.
const (
	MACDFast   = 12
	MACDSlow   = 26
	MACDSignal = 9
)

// MACDSeries holds the three MACD outputs, each the length of the input.
type MACDSeries struct {
	Line   []Value
	Signal []Value
	Hist   []Value
}

// MACD computes line = EMA(fast) - EMA(slow), signal = EMA(signal) of the
// line, and hist = line - signal. Since EMA is seeded with the first value,
// all three are defined from the first bar.
func MACD(xs []float64, fast, slow, signal int) MACDSeries {
	n := len(xs)
	res := MACDSeries{
		Line:   make([]Value, n),
		Signal: make([]Value, n),
		Hist:   make([]Value, n),
	}
	if fast <= 0 || slow <= 0 || signal <= 0 || n == 0 {
		return res
	}

	ef := EMA(xs, fast)
	es := EMA(xs, slow)
	line := make([]float64, n)
	for i := range xs {
		line[i] = ef[i].V - es[i].V
		res.Line[i] = Some(line[i])
	}

	sig := EMA(line, signal)
	for i := range xs {
		res.Signal[i] = sig[i]
		res.Hist[i] = Some(line[i] - sig[i].V)
	}
	return res
}
