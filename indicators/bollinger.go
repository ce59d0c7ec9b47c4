package indicators

// Conventional Bollinger parameters.
const (
	BollingerPeriod = 20
	BollingerStdDev = 2.0
)

// Bands holds Bollinger middle/upper/lower series.
type Bands struct {
	Mid   []Value
	Upper []Value
	Lower []Value
}

// Bollinger computes mid = SMA(period) and mid ± mult × population standard
// deviation over the same window.
func Bollinger(xs []float64, period int, mult float64) Bands {
	n := len(xs)
	b := Bands{
		Mid:   SMA(xs, period),
		Upper: make([]Value, n),
		Lower: make([]Value, n),
	}
	sd := StdDev(xs, period)
	for i := range xs {
		if !b.Mid[i].OK || !sd[i].OK {
			continue
		}
		b.Upper[i] = Some(b.Mid[i].V + mult*sd[i].V)
		b.Lower[i] = Some(b.Mid[i].V - mult*sd[i].V)
	}
	return b
}

// BandPercent places price within the band as 0 (lower) to 100 (upper).
// A zero-width band reads 50.
func BandPercent(price, upper, lower float64) float64 {
	if upper == lower {
		return 50
	}
	return (price - lower) / (upper - lower) * 100
}
