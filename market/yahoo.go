package market

import (
	"context"
	"fmt"
	"time"

	"github.com/piquette/finance-go/chart"
	"github.com/piquette/finance-go/datetime"
	"golang.org/x/time/rate"
)

// YahooProvider loads daily bars from the Yahoo Finance chart endpoint.
type YahooProvider struct {
	// Suffix is appended to bare symbols, e.g. ".NS" for NSE listings.
	Suffix string

	limiter *rate.Limiter
	now     func() time.Time
}

// yahooBurst is how many requests may go out back to back before the
// per-minute limit applies.
const yahooBurst = 5

// NewYahooProvider returns a provider that issues at most perMinute chart
// requests per minute. Zero or less means unlimited.
func NewYahooProvider(suffix string, perMinute int) *YahooProvider {
	y := &YahooProvider{Suffix: suffix, now: time.Now}
	if perMinute > 0 {
		y.limiter = rate.NewLimiter(rate.Limit(float64(perMinute)/60), yahooBurst)
	}
	return y
}

func (y *YahooProvider) Bars(ctx context.Context, symbol, period string) (Series, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if y.limiter != nil {
		if err := y.limiter.Wait(ctx); err != nil {
			return nil, err
		}
	}
	now := time.Now
	if y.now != nil {
		now = y.now
	}
	start, end, err := PeriodRange(period, now())
	if err != nil {
		return nil, err
	}
	// chart end is exclusive
	end = end.AddDate(0, 0, 1)

	ticker := EnsureSuffix(symbol, y.Suffix)
	iter := chart.Get(&chart.Params{
		Symbol:   ticker,
		Start:    datetime.New(&start),
		End:      datetime.New(&end),
		Interval: datetime.OneDay,
	})

	var out Series
	for iter.Next() {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		b := iter.Bar()
		bar := Bar{
			Date:   Day(time.Unix(int64(b.Timestamp), 0).UTC()),
			Open:   b.Open.InexactFloat64(),
			High:   b.High.InexactFloat64(),
			Low:    b.Low.InexactFloat64(),
			Close:  b.Close.InexactFloat64(),
			Volume: float64(b.Volume),
		}
		// The endpoint repeats the live session as an extra bar; keep the latest.
		if n := len(out); n > 0 && out[n-1].Date.Equal(bar.Date) {
			out[n-1] = bar
			continue
		}
		out = append(out, bar)
	}
	if err := iter.Err(); err != nil {
		return nil, fmt.Errorf("yahoo: history for %s: %w", ticker, err)
	}
	return out, nil
}
