package risk

import "github.com/shopspring/decimal"

func abs(x float64) float64 {
	if x < 0 {
		return -x
	}
	return x
}

// RR is the reward-to-risk multiple of a long entry with a stop and a target.
func RR(entry, stop, takeProfit float64) float64 {
	risk := abs(entry - stop)
	reward := abs(takeProfit - entry)
	if risk == 0 {
		return 0
	}
	return reward / risk
}

// StopLoss places the stop 3% below price when RSI is already depressed
// (below 35) and 5% below otherwise.
func StopLoss(price, rsi float64) float64 {
	pct := 5.0
	if rsi < 35 {
		pct = 3
	}
	return round2(price * (1 - pct/100))
}

// TakeProfit targets 10% above price from an oversold RSI (below 30) and
// 7% otherwise.
func TakeProfit(price, rsi float64) float64 {
	pct := 7.0
	if rsi < 30 {
		pct = 10
	}
	return round2(price * (1 + pct/100))
}

// PotentialGain is the percent move from price to target. A zero price
// reads 0.
func PotentialGain(price, target float64) float64 {
	if price == 0 {
		return 0
	}
	return round2((target - price) / price * 100)
}

func round2(x float64) float64 {
	return decimal.NewFromFloat(x).Round(2).InexactFloat64()
}
