package api

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/rustyeddy/screener/backtest"
	"github.com/rustyeddy/screener/internal/logger"
	"github.com/rustyeddy/screener/journal"
	"github.com/rustyeddy/screener/market"
	"github.com/rustyeddy/screener/screen"
	"github.com/rustyeddy/screener/strategies"
)

// codeDataUnavailable marks a failure to load bars for the symbol.
const codeDataUnavailable = "data_unavailable"

// backtestRequest is the POST /api/backtest body. Strategy parameters are
// flat fields beside the symbol; missing ones take the configured defaults.
type backtestRequest struct {
	Symbol         string  `json:"symbol" binding:"required"`
	Period         string  `json:"period"`
	Strategy       string  `json:"strategy"`
	InitialCapital float64 `json:"initial_capital"`

	strategies.Params
}

func (s *Server) handleStrategies(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"strategies": backtest.ListStrategies()})
}

func (s *Server) handleBacktest(c *gin.Context) {
	var req backtestRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": err.Error(), "code": "bad_request"})
		return
	}

	s.runBacktest(c, backtest.Request{
		Symbol:   strings.TrimSpace(req.Symbol),
		Period:   or(req.Period, s.defaults.Period),
		Strategy: or(req.Strategy, s.defaults.Strategy),
		Capital:  orFloat(req.InitialCapital, s.defaults.Capital),
		Params:   req.Params.Merge(s.defaults.Params),
	})
}

func (s *Server) handleQuickBacktest(c *gin.Context) {
	s.runBacktest(c, backtest.Request{
		Symbol:   c.Param("symbol"),
		Period:   c.DefaultQuery("period", s.defaults.Period),
		Strategy: c.DefaultQuery("strategy", s.defaults.Strategy),
		Capital:  s.defaults.Capital,
		Params:   s.defaults.Params,
	})
}

// runBacktest answers domain failures with 200 and success=false so the
// dashboard can show the message inline.
func (s *Server) runBacktest(c *gin.Context, req backtest.Request) {
	ctx := c.Request.Context()

	// reject an unknown strategy before any network work
	if _, err := backtest.ResolveStrategy(req.Strategy); err != nil {
		c.JSON(http.StatusOK, backtest.FailureReport(err))
		return
	}

	bars, err := s.provider.Bars(ctx, req.Symbol, req.Period)
	if err != nil {
		logger.Warnf("api: fetch %s: %v", req.Symbol, err)
		c.JSON(http.StatusOK, backtest.Report{Error: "no data for " + req.Symbol + ": " + err.Error(), Code: codeDataUnavailable})
		return
	}
	req.Bars = bars

	res, err := backtest.Run(req)
	if err != nil {
		c.JSON(http.StatusOK, backtest.FailureReport(err))
		return
	}

	report := backtest.NewReport(res)
	if s.journal != nil {
		run := journal.NewRun(res, s.now())
		if err := s.journal.RecordRun(ctx, run); err != nil {
			logger.Errorf("api: record run %s: %v", run.RunID, err)
		} else {
			report.RunID = run.RunID
		}
	}
	c.JSON(http.StatusOK, report)
}

func (s *Server) handleStock(c *gin.Context) {
	symbol := c.Param("symbol")
	bars, err := s.provider.Bars(c.Request.Context(), symbol, screen.Period)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		return
	}
	snap, err := screen.Analyze(symbol, bars, s.defaults.Params)
	if err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, snap)
}

// handleScan snapshots the comma-separated symbols query parameter.
func (s *Server) handleScan(c *gin.Context) {
	var symbols []string
	for _, sym := range strings.Split(c.Query("symbols"), ",") {
		if sym = strings.TrimSpace(sym); sym != "" {
			symbols = append(symbols, sym)
		}
	}
	if len(symbols) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "symbols query parameter is required"})
		return
	}

	snaps, err := screen.Scan(c.Request.Context(), s.provider, symbols, s.defaults.Params, s.limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, snaps)
}

func (s *Server) handleRunList(c *gin.Context) {
	limit := 50
	if v := c.Query("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n <= 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "limit must be a positive integer"})
			return
		}
		limit = n
	}

	symbol := market.RemoveSuffix(c.Query("symbol"), market.NSESuffix)
	runs, err := s.journal.ListRuns(c.Request.Context(), symbol, limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	out := make([]backtest.Report, 0, len(runs))
	for _, r := range runs {
		out = append(out, runReport(r))
	}
	c.JSON(http.StatusOK, gin.H{"runs": out})
}

func (s *Server) handleRunDetail(c *gin.Context) {
	r, err := s.journal.GetRun(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, journal.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, runReport(r))
}

func runReport(r journal.Run) backtest.Report {
	rep := backtest.NewReport(&r.Result)
	rep.RunID = r.RunID
	return rep
}

func or(v, def string) string {
	if strings.TrimSpace(v) == "" {
		return def
	}
	return v
}

func orFloat(v, def float64) float64 {
	if v == 0 {
		return def
	}
	return v
}
