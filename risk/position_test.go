package risk

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSharesFor(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		cash     float64
		price    float64
		fraction float64
		want     int64
	}{
		{"default reserve", 100000, 100, DeployFraction, 950},
		{"floors partial share", 1000, 333, DeployFraction, 2},
		{"cannot afford one", 100, 101, DeployFraction, 0},
		{"reserve blocks the last share", 100, 96, DeployFraction, 0},
		{"zero price", 1000, 0, DeployFraction, 0},
		{"negative cash", -5, 10, DeployFraction, 0},
		{"zero fraction", 1000, 10, 0, 0},
		{"clamps huge counts", 1e6, 1e-300, DeployFraction, math.MaxInt64},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, SharesFor(tt.cash, tt.price, tt.fraction))
		})
	}
}

func TestSharesFor_NeverOverspends(t *testing.T) {
	for _, price := range []float64{0.37, 1, 9.99, 123.45, 2500} {
		cash := 10000.0
		n := SharesFor(cash, price, DeployFraction)
		assert.LessOrEqual(t, float64(n)*price, cash*DeployFraction, "price %v", price)
	}
}

func TestRR(t *testing.T) {
	assert.InDelta(t, 2.0, RR(100, 95, 110), 1e-12)
	assert.Equal(t, 0.0, RR(100, 100, 110))
}

func TestStopLossTakeProfit(t *testing.T) {
	t.Parallel()

	assert.Equal(t, 97.0, StopLoss(100, 34))
	assert.Equal(t, 95.0, StopLoss(100, 35))
	assert.Equal(t, 110.0, TakeProfit(100, 29.9))
	assert.Equal(t, 107.0, TakeProfit(100, 30))
	assert.Equal(t, 1213.32, StopLoss(1250.85, 20))
}

func TestPotentialGain(t *testing.T) {
	assert.Equal(t, 10.0, PotentialGain(100, 110))
	assert.Equal(t, -5.0, PotentialGain(100, 95))
	assert.Equal(t, 0.0, PotentialGain(0, 95))
}
