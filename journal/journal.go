// Package journal persists finished backtests to SQLite and renders them as
// CSV and org-mode reports.
package journal

import (
	"context"
	"time"

	"github.com/rustyeddy/screener/backtest"
	"github.com/rustyeddy/screener/pkg/id"
)

// Run is a recorded backtest: the result plus its identity.
type Run struct {
	RunID   string
	Created time.Time

	backtest.Result
}

// NewRun stamps res with a fresh run ID created at now.
func NewRun(res *backtest.Result, now time.Time) Run {
	return Run{
		RunID:   id.At(now),
		Created: now.UTC(),
		Result:  *res,
	}
}

type Journal interface {
	RecordRun(ctx context.Context, r Run) error
	Close() error
}
