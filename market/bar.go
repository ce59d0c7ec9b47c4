// Package market holds daily OHLCV price bars and the providers that load them.
package market

import (
	"fmt"
	"math"
	"time"
)

// DateLayout is the calendar-day layout used for bar dates everywhere.
const DateLayout = "2006-01-02"

// Bar is one daily OHLCV observation.
type Bar struct {
	Date   time.Time `json:"date"`
	Open   float64   `json:"open"`
	High   float64   `json:"high"`
	Low    float64   `json:"low"`
	Close  float64   `json:"close"`
	Volume float64   `json:"volume"`
}

// Day truncates t to midnight UTC of its calendar day.
func Day(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// Series is an ordered run of bars for a single symbol.
type Series []Bar

// Validate reports the first structural problem in the series: negative or
// non-finite prices, high below low, or dates that are not strictly ascending.
func (s Series) Validate() error {
	for i, b := range s {
		if b.Date.IsZero() {
			return fmt.Errorf("bar %d: missing date", i)
		}
		for _, f := range []struct {
			name string
			v    float64
		}{
			{"open", b.Open}, {"high", b.High}, {"low", b.Low},
			{"close", b.Close}, {"volume", b.Volume},
		} {
			if math.IsNaN(f.v) || math.IsInf(f.v, 0) {
				return fmt.Errorf("bar %d (%s): %s is not a finite number", i, b.Date.Format(DateLayout), f.name)
			}
			if f.v < 0 {
				return fmt.Errorf("bar %d (%s): %s is negative", i, b.Date.Format(DateLayout), f.name)
			}
		}
		if b.High < b.Low {
			return fmt.Errorf("bar %d (%s): high %.4f below low %.4f", i, b.Date.Format(DateLayout), b.High, b.Low)
		}
		if i > 0 && !Day(b.Date).After(Day(s[i-1].Date)) {
			return fmt.Errorf("bar %d (%s): date not after previous bar %s",
				i, b.Date.Format(DateLayout), s[i-1].Date.Format(DateLayout))
		}
	}
	return nil
}

// Closes returns the closing prices in order.
func (s Series) Closes() []float64 {
	out := make([]float64, len(s))
	for i, b := range s {
		out[i] = b.Close
	}
	return out
}

// Volumes returns the volumes in order.
func (s Series) Volumes() []float64 {
	out := make([]float64, len(s))
	for i, b := range s {
		out[i] = b.Volume
	}
	return out
}

// Last returns the final bar and false when the series is empty.
func (s Series) Last() (Bar, bool) {
	if len(s) == 0 {
		return Bar{}, false
	}
	return s[len(s)-1], true
}

// Since returns the tail of the series whose dates are on or after start.
func (s Series) Since(start time.Time) Series {
	start = Day(start)
	for i, b := range s {
		if !Day(b.Date).Before(start) {
			return s[i:]
		}
	}
	return nil
}
