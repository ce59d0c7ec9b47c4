package market

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Provider supplies a date-ascending bar series for a symbol over a lookback
// period. Implementations own rate limiting, batching and retries.
type Provider interface {
	Bars(ctx context.Context, symbol, period string) (Series, error)
}

// CSVProvider serves bars from <Dir>/<SYMBOL>.csv files. The period is
// measured back from the last bar in the file, so results do not depend on
// the wall clock.
type CSVProvider struct {
	Dir    string
	Suffix string
}

func (p *CSVProvider) Bars(ctx context.Context, symbol, period string) (Series, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	name := RemoveSuffix(strings.ToUpper(strings.TrimSpace(symbol)), p.Suffix)
	if name == "" {
		return nil, fmt.Errorf("csv provider: empty symbol")
	}

	path := filepath.Join(p.Dir, name+".csv")
	if _, err := os.Stat(path); err != nil {
		return nil, fmt.Errorf("csv provider: no data for %s: %w", name, err)
	}

	s, err := LoadCSV(path)
	if err != nil {
		return nil, err
	}
	last, ok := s.Last()
	if !ok {
		return s, nil
	}
	start, _, err := PeriodRange(period, last.Date)
	if err != nil {
		return nil, err
	}
	return s.Since(start), nil
}

// StaticProvider serves fixed in-memory series keyed by symbol.
type StaticProvider map[string]Series

func (p StaticProvider) Bars(ctx context.Context, symbol, period string) (Series, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s, ok := p[symbol]
	if !ok {
		return nil, fmt.Errorf("no data for %s", symbol)
	}
	return s, nil
}
