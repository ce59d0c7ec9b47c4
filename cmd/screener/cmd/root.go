package cmd

import (
	"github.com/spf13/cobra"

	"github.com/rustyeddy/screener/config"
	"github.com/rustyeddy/screener/internal/logger"
)

var rootCmd = &cobra.Command{
	Use:   "screener",
	Short: "Stock screener and strategy backtesting engine",
	Long: `Screener computes technical indicators for daily stock prices and
backtests four rule-based strategies against them.

It provides tools for:
  - Backtesting rsi_sma, macd, bollinger and ma_crossover strategies
  - Batch backtests across many symbols
  - Technical snapshots with stop-loss and take-profit levels
  - A JSON HTTP API for the dashboard
  - A SQLite journal of past runs with CSV and org-mode export`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		c, err := config.Load(cfgFile)
		if err != nil {
			return err
		}
		if logLevel != "" {
			c.Log.Level = logLevel
		}
		logger.SetOutput(cmd.ErrOrStderr())
		logger.SetLevel(c.Log.Level)
		cfg = c
		return nil
	},
}

var (
	cfgFile  string
	logLevel string

	// cfg is the effective configuration, loaded before every command.
	cfg *config.Config
)

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "", "config file (YAML or JSON)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "log level: debug, info, warn, error")
}
