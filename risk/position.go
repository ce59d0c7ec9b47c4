// Package risk sizes positions and derives protective price levels.
package risk

import "math"

// DeployFraction is the share of available cash a new position may use.
// The rest stays in reserve to absorb rounding and slippage.
const DeployFraction = 0.95

// SharesFor returns how many whole shares fit in cash×fraction at price.
// Non-positive inputs size to zero.
func SharesFor(cash, price, fraction float64) int64 {
	if cash <= 0 || price <= 0 || fraction <= 0 {
		return 0
	}
	n := math.Floor(cash * fraction / price)
	if n < 0 || math.IsNaN(n) {
		return 0
	}
	if n >= math.MaxInt64 {
		return math.MaxInt64
	}
	return int64(n)
}
