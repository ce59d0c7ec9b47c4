package market

import (
	"fmt"
	"strings"
	"time"
)

// DefaultPeriod is the lookback used when none is given.
const DefaultPeriod = "1y"

var periods = map[string]struct{ years, months int }{
	"1mo": {0, 1},
	"3mo": {0, 3},
	"6mo": {0, 6},
	"1y":  {1, 0},
	"2y":  {2, 0},
	"5y":  {5, 0},
}

// Periods lists the recognized lookback labels, shortest first.
func Periods() []string {
	return []string{"1mo", "3mo", "6mo", "1y", "2y", "5y"}
}

// PeriodRange converts a lookback label such as "6mo" into a [start, end]
// calendar range ending on the day of now.
func PeriodRange(period string, now time.Time) (time.Time, time.Time, error) {
	p := strings.ToLower(strings.TrimSpace(period))
	if p == "" {
		p = DefaultPeriod
	}
	span, ok := periods[p]
	if !ok {
		return time.Time{}, time.Time{}, fmt.Errorf("unknown period %q (supported: %s)", period, strings.Join(Periods(), ", "))
	}
	end := Day(now)
	start := end.AddDate(-span.years, -span.months, 0)
	return start, end, nil
}

// ValidPeriod reports whether period is a recognized lookback label. The
// empty string is valid and means DefaultPeriod.
func ValidPeriod(period string) bool {
	p := strings.ToLower(strings.TrimSpace(period))
	_, ok := periods[p]
	return ok || p == ""
}
