package indicators

import "math"

// SMA is the arithmetic mean of the trailing period values.
// The first period-1 entries are undefined.
func SMA(xs []float64, period int) []Value {
	out := make([]Value, len(xs))
	if period <= 0 || len(xs) < period {
		return out
	}

	for i := period - 1; i < len(xs); i++ {
		out[i] = Some(mean(xs[i-period+1 : i+1]))
	}
	return out
}

// mean sums the window afresh so a constant window yields exactly its value.
func mean(win []float64) float64 {
	sum := 0.0
	for _, x := range win {
		sum += x
	}
	return sum / float64(len(win))
}

// EMA is the exponential moving average with smoothing 2/(period+1), seeded
// with the first input value, so every entry is defined. A constant input
// keeps the average exactly constant.
func EMA(xs []float64, period int) []Value {
	out := make([]Value, len(xs))
	if period <= 0 || len(xs) == 0 {
		return out
	}

	alpha := 2.0 / float64(period+1)
	ema := xs[0]
	for i, x := range xs {
		if i > 0 {
			ema += alpha * (x - ema)
		}
		out[i] = Some(ema)
	}
	return out
}

// VolumeMA is the simple moving average of volume.
func VolumeMA(volumes []float64, period int) []Value {
	return SMA(volumes, period)
}

// StdDev is the rolling population standard deviation over period values.
// Each window is computed in two passes around its own mean.
func StdDev(xs []float64, period int) []Value {
	out := make([]Value, len(xs))
	if period <= 0 || len(xs) < period {
		return out
	}

	for i := period - 1; i < len(xs); i++ {
		win := xs[i-period+1 : i+1]
		m := mean(win)

		ss := 0.0
		for _, x := range win {
			d := x - m
			ss += d * d
		}
		out[i] = Some(math.Sqrt(ss / float64(period)))
	}
	return out
}
