package market

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPeriodRange(t *testing.T) {
	now := time.Date(2024, 6, 15, 13, 45, 0, 0, time.UTC)

	tests := []struct {
		period string
		start  time.Time
	}{
		{"1mo", day(2024, 5, 15)},
		{"3mo", day(2024, 3, 15)},
		{"6mo", day(2023, 12, 15)},
		{"1y", day(2023, 6, 15)},
		{"2Y", day(2022, 6, 15)},
		{" 5y ", day(2019, 6, 15)},
		{"", day(2023, 6, 15)},
	}

	for _, tt := range tests {
		t.Run(tt.period, func(t *testing.T) {
			start, end, err := PeriodRange(tt.period, now)
			require.NoError(t, err)
			assert.Equal(t, tt.start, start)
			assert.Equal(t, day(2024, 6, 15), end)
		})
	}
}

func TestPeriodRange_Unknown(t *testing.T) {
	_, _, err := PeriodRange("10d", time.Now())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown period")
}

func TestValidPeriod(t *testing.T) {
	for _, p := range Periods() {
		assert.True(t, ValidPeriod(p), p)
	}
	assert.True(t, ValidPeriod(""))
	assert.True(t, ValidPeriod(" 6MO "))
	assert.False(t, ValidPeriod("10d"))
}

func TestSuffixHelpers(t *testing.T) {
	assert.Equal(t, "RELIANCE.NS", EnsureSuffix("RELIANCE", NSESuffix))
	assert.Equal(t, "TCS.NS", EnsureSuffix("TCS.NS", NSESuffix))
	assert.Equal(t, "INFY.NS", EnsureSuffix("INFY ", NSESuffix))
	assert.Equal(t, "", EnsureSuffix("", NSESuffix))
	assert.Equal(t, "AAPL", EnsureSuffix("AAPL", ""))

	assert.Equal(t, "RELIANCE", RemoveSuffix("RELIANCE.NS", NSESuffix))
	assert.Equal(t, "TCS", RemoveSuffix("TCS", NSESuffix))
	assert.Equal(t, "INFY", RemoveSuffix("INFY.NS ", NSESuffix))
	assert.Equal(t, "", RemoveSuffix("", NSESuffix))
}
