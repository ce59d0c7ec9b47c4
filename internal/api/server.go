// Package api serves backtests, strategy metadata and symbol snapshots over
// HTTP for the dashboard.
package api

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/rustyeddy/screener/config"
	"github.com/rustyeddy/screener/internal/logger"
	"github.com/rustyeddy/screener/journal"
	"github.com/rustyeddy/screener/market"
)

// RunStore is the slice of the journal the API reads and writes.
type RunStore interface {
	RecordRun(ctx context.Context, r journal.Run) error
	GetRun(ctx context.Context, runID string) (journal.Run, error)
	ListRuns(ctx context.Context, symbol string, limit int) ([]journal.Run, error)
}

// Config describes the server's dependencies.
type Config struct {
	Addr     string
	Provider market.Provider
	Defaults config.BacktestConfig
	// Journal is optional; without it runs are not recorded and the /runs
	// endpoints are not registered.
	Journal    RunStore
	BatchLimit int
	// Now stamps recorded runs. Defaults to time.Now.
	Now func() time.Time
}

type Server struct {
	addr     string
	provider market.Provider
	defaults config.BacktestConfig
	journal  RunStore
	limit    int
	now      func() time.Time
	router   *gin.Engine
}

func NewServer(cfg Config) (*Server, error) {
	if cfg.Provider == nil {
		return nil, errors.New("api: provider is required")
	}
	if cfg.Addr == "" {
		cfg.Addr = ":8080"
	}
	if cfg.Now == nil {
		cfg.Now = time.Now
	}
	if cfg.Defaults.Strategy == "" {
		cfg.Defaults = config.Default().Backtest
	}

	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.Use(gin.Recovery(), requestLogger())

	s := &Server{
		addr:     cfg.Addr,
		provider: cfg.Provider,
		defaults: cfg.Defaults,
		journal:  cfg.Journal,
		limit:    cfg.BatchLimit,
		now:      cfg.Now,
		router:   router,
	}
	s.registerRoutes()
	return s, nil
}

func (s *Server) registerRoutes() {
	api := s.router.Group("/api")
	api.GET("/strategies", s.handleStrategies)
	api.POST("/backtest", s.handleBacktest)
	api.GET("/backtest/:symbol", s.handleQuickBacktest)
	api.GET("/stock/:symbol", s.handleStock)
	api.GET("/scan", s.handleScan)

	if s.journal != nil {
		api.GET("/runs", s.handleRunList)
		api.GET("/runs/:id", s.handleRunDetail)
	}
}

// Handler exposes the router, mainly for tests.
func (s *Server) Handler() http.Handler {
	return s.router
}

// Start serves until ctx is canceled, then shuts down gracefully.
func (s *Server) Start(ctx context.Context) error {
	srv := &http.Server{Addr: s.addr, Handler: s.router}
	errCh := make(chan error, 1)
	go func() {
		logger.Infof("api: listening on %s", s.addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case <-ctx.Done():
		shCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = srv.Shutdown(shCtx)
		return nil
	case err := <-errCh:
		return err
	}
}

func requestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		logger.Debugf("api: %s %s %d %s", c.Request.Method, c.Request.URL.Path, c.Writer.Status(), time.Since(start))
	}
}
