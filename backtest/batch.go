package backtest

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/rustyeddy/screener/internal/logger"
	"github.com/rustyeddy/screener/market"
)

// DefaultBatchLimit bounds concurrent fetches when the caller passes 0.
const DefaultBatchLimit = 4

// BatchItem is the outcome for one symbol. Exactly one of Result and Err
// is set.
type BatchItem struct {
	Symbol string
	Result *Result
	Err    error
}

// RunBatch backtests base against each symbol, fetching bars through p.
// Items come back in symbol order. A failing symbol is recorded on its item
// and does not stop the others; only context cancellation aborts the batch,
// leaving unfinished items with only their Symbol set.
func RunBatch(ctx context.Context, p market.Provider, base Request, symbols []string, limit int) ([]BatchItem, error) {
	if p == nil {
		return nil, fmt.Errorf("backtest: provider is required")
	}
	if limit <= 0 {
		limit = DefaultBatchLimit
	}

	items := make([]BatchItem, len(symbols))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(limit)

	for i, sym := range symbols {
		items[i].Symbol = sym
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			items[i] = runOne(gctx, p, base, sym)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return items, err
	}
	return items, nil
}

func runOne(ctx context.Context, p market.Provider, base Request, symbol string) BatchItem {
	item := BatchItem{Symbol: symbol}

	bars, err := p.Bars(ctx, symbol, base.Period)
	if err != nil {
		logger.Warnf("batch: fetch %s: %v", symbol, err)
		item.Err = fmt.Errorf("fetch %s: %w", symbol, err)
		return item
	}

	req := base
	req.Symbol = symbol
	req.Bars = bars
	item.Result, item.Err = Run(req)
	if item.Err != nil {
		logger.Warnf("batch: %s: %v", symbol, item.Err)
	}
	return item
}
