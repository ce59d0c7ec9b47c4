package cmd

import (
	"fmt"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/rustyeddy/screener/internal/api"
	"github.com/rustyeddy/screener/journal"
)

var serveAddr string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the JSON API",
	Long: `Serve exposes the backtester over HTTP:

  GET  /api/strategies
  POST /api/backtest
  GET  /api/backtest/:symbol?period=&strategy=
  GET  /api/stock/:symbol
  GET  /api/scan?symbols=A,B,C
  GET  /api/runs, /api/runs/:id   (journal enabled)`,
	Args: cobra.NoArgs,
	RunE: runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().StringVarP(&serveAddr, "addr", "a", "", "listen address (default from config)")
}

func runServe(cmd *cobra.Command, args []string) error {
	addr := serveAddr
	if addr == "" {
		addr = cfg.Server.Addr
	}

	sc := api.Config{
		Addr:       addr,
		Provider:   cfg.Provider(),
		Defaults:   cfg.Backtest,
		BatchLimit: cfg.Data.BatchLimit,
	}
	if cfg.Journal.Enabled {
		j, err := journal.NewSQLite(cfg.Journal.DBPath)
		if err != nil {
			return fmt.Errorf("open journal: %w", err)
		}
		defer j.Close()
		sc.Journal = j
	}

	srv, err := api.NewServer(sc)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	return srv.Start(ctx)
}
