package indicators

// RSIPeriod is the conventional RSI lookback.
const RSIPeriod = 14

// RSI is the relative strength index over the trailing period price changes,
// using simple means of gains and of loss magnitudes:
//
//	RSI = 100 - 100/(1 + avgGain/avgLoss)
//
// A value needs period changes, so the first period entries are undefined.
// When the average loss is zero the reading is 100.
//
// Each window is summed afresh; a running sum would leave residue from bars
// that already left the window and turn a flat stretch into RSI 0.
func RSI(xs []float64, period int) []Value {
	out := make([]Value, len(xs))
	if period <= 0 || len(xs) <= period {
		return out
	}

	for i := period; i < len(xs); i++ {
		var gain, loss float64
		for j := i - period + 1; j <= i; j++ {
			d := xs[j] - xs[j-1]
			if d > 0 {
				gain += d
			} else {
				loss -= d
			}
		}
		out[i] = Some(rsiValue(gain/float64(period), loss/float64(period)))
	}
	return out
}

func rsiValue(avgGain, avgLoss float64) float64 {
	if avgLoss == 0 {
		return 100
	}
	rs := avgGain / avgLoss
	return 100 - 100/(1+rs)
}
