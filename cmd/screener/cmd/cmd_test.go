package cmd

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"regexp"
	"testing"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rustyeddy/screener/backtest"
	"github.com/rustyeddy/screener/market"
)

func wave(n int) market.Series {
	t0 := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	s := make(market.Series, n)
	for i := range s {
		c := 100 + 10*math.Sin(float64(i)/3) + float64(i)*0.05
		s[i] = market.Bar{Date: t0.AddDate(0, 0, i), Open: c, High: c + 1, Low: c - 1, Close: c, Volume: 1000}
	}
	return s
}

func writeBars(t *testing.T, path string, s market.Series) {
	t.Helper()
	f, err := os.Create(path)
	require.NoError(t, err)
	require.NoError(t, market.WriteCSV(f, s))
	require.NoError(t, f.Close())
}

// setup writes a CSV data dir and a config pointing at it, with the
// journal enabled.
func setup(t *testing.T) (cfgPath, dir string) {
	t.Helper()
	dir = t.TempDir()

	data := filepath.Join(dir, "bars")
	require.NoError(t, os.Mkdir(data, 0755))
	writeBars(t, filepath.Join(data, "TCS.csv"), wave(250))
	writeBars(t, filepath.Join(data, "INFY.csv"), wave(200))
	writeBars(t, filepath.Join(data, "TINY.csv"), wave(15))

	cfgPath = filepath.Join(dir, "screener.yaml")
	yaml := fmt.Sprintf(`backtest:
  strategy: macd
data:
  provider: csv
  csv_dir: %s
  suffix: .NS
journal:
  enabled: true
  db_path: %s
log:
  level: error
`, data, filepath.Join(dir, "runs.db"))
	require.NoError(t, os.WriteFile(cfgPath, []byte(yaml), 0644))
	return cfgPath, dir
}

func resetFlags(c *cobra.Command) {
	reset := func(f *pflag.Flag) {
		_ = f.Value.Set(f.DefValue)
		f.Changed = false
	}
	c.Flags().VisitAll(reset)
	c.PersistentFlags().VisitAll(reset)
	for _, sub := range c.Commands() {
		resetFlags(sub)
	}
}

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	resetFlags(rootCmd)

	var out, errOut bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&errOut)
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	return out.String(), err
}

func TestVersion(t *testing.T) {
	out, err := execute(t, "version")
	require.NoError(t, err)
	assert.Contains(t, out, "screener version "+version)
}

func TestStrategiesCommand(t *testing.T) {
	out, err := execute(t, "strategies")
	require.NoError(t, err)
	for _, id := range []string{"rsi_sma", "macd", "bollinger", "ma_crossover"} {
		assert.Contains(t, out, id)
	}
	assert.Contains(t, out, "params: bb_period, bb_std")

	out, err = execute(t, "strategies", "--json")
	require.NoError(t, err)
	var body map[string][]map[string]any
	require.NoError(t, json.Unmarshal([]byte(out), &body))
	assert.Len(t, body["strategies"], 4)
}

func TestConfigInitAndValidate(t *testing.T) {
	path := filepath.Join(t.TempDir(), "new.yaml")

	out, err := execute(t, "config", "init", "-o", path)
	require.NoError(t, err)
	assert.Contains(t, out, "✓ Created default configuration: "+path)
	assert.FileExists(t, path)

	out, err = execute(t, "config", "validate", "-f", path)
	require.NoError(t, err)
	assert.Contains(t, out, "✓ Configuration valid")
	assert.Contains(t, out, "Strategy: rsi_sma (1y, capital 100000.00)")
	assert.Contains(t, out, "Journal: disabled")

	bad := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(bad, []byte("data:\n  provider: nowhere\n"), 0644))
	_, err = execute(t, "config", "validate", "-f", bad)
	assert.ErrorContains(t, err, "validation failed")
}

func TestBacktestFromCSVFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "X.csv")
	writeBars(t, path, wave(120))

	out, err := execute(t, "backtest", "X", "--csv", path, "-s", "ma_crossover", "--ma-fast", "3", "--ma-slow", "8", "--json")
	require.NoError(t, err)

	var rep backtest.Report
	require.NoError(t, json.Unmarshal([]byte(out), &rep))
	assert.True(t, rep.Success)
	assert.Equal(t, "MA Crossover (3/8)", rep.StrategyName)
	assert.Empty(t, rep.RunID)
	require.NotNil(t, rep.Summary)
	assert.Equal(t, 100000.0, rep.Summary.InitialCapital)
}

func TestBacktestErrors(t *testing.T) {
	cfgPath, _ := setup(t)

	_, err := execute(t, "--config", cfgPath, "backtest", "TCS", "-s", "foo")
	require.Error(t, err)
	assert.ErrorIs(t, err, backtest.ErrUnknownStrategy)

	_, err = execute(t, "--config", cfgPath, "backtest", "TINY")
	assert.ErrorIs(t, err, backtest.ErrInsufficientData)

	_, err = execute(t, "--config", cfgPath, "backtest", "MISSING")
	assert.ErrorContains(t, err, "fetch MISSING")

	for _, c := range []string{"NaN", "Inf"} {
		_, err = execute(t, "--config", cfgPath, "backtest", "TCS", "--capital", c, "--json")
		assert.ErrorIs(t, err, backtest.ErrInvalidInput, c)
	}
}

var runIDPattern = regexp.MustCompile(`Run ID:\s+([0-9A-Z]{26})`)

func TestBacktestRecordsAndJournal(t *testing.T) {
	cfgPath, dir := setup(t)

	out, err := execute(t, "--config", cfgPath, "backtest", "TCS.NS", "--org", filepath.Join(dir, "run.org"))
	require.NoError(t, err)
	assert.Contains(t, out, "Strategy:      MACD (12,26,9)")
	m := runIDPattern.FindStringSubmatch(out)
	require.Len(t, m, 2, out)
	runID := m[1]
	assert.FileExists(t, filepath.Join(dir, "run.org"))

	out, err = execute(t, "--config", cfgPath, "journal", "list")
	require.NoError(t, err)
	assert.Regexp(t, runID+`\s+TCS\s`, out)

	out, err = execute(t, "--config", cfgPath, "journal", "list", "--symbol", "TCS.NS")
	require.NoError(t, err)
	assert.Contains(t, out, runID)

	out, err = execute(t, "--config", cfgPath, "journal", "list", "--symbol", "OTHER")
	require.NoError(t, err)
	assert.Contains(t, out, "no runs recorded")

	out, err = execute(t, "--config", cfgPath, "journal", "show", runID)
	require.NoError(t, err)
	assert.Contains(t, out, "Run ID:        "+runID)
	assert.Contains(t, out, " Backtest Result")

	out, err = execute(t, "--config", cfgPath, "journal", "show", runID, "--org")
	require.NoError(t, err)
	assert.Contains(t, out, ":RUN_ID:      "+runID)

	trades := filepath.Join(dir, "trades.csv")
	equity := filepath.Join(dir, "equity.csv")
	out, err = execute(t, "--config", cfgPath, "journal", "export", runID, "--trades", trades, "--equity", equity)
	require.NoError(t, err)
	assert.Contains(t, out, "✓ Trades: "+trades)
	raw, err := os.ReadFile(equity)
	require.NoError(t, err)
	assert.Contains(t, string(raw), "date,equity,price")

	_, err = execute(t, "--config", cfgPath, "journal", "export", runID)
	assert.ErrorContains(t, err, "nothing to export")

	_, err = execute(t, "--config", cfgPath, "journal", "show", "01ARZ3NDEKTSV4RRFFQ69G5FAV")
	assert.Error(t, err)
}

func TestBatchCommand(t *testing.T) {
	cfgPath, _ := setup(t)

	out, err := execute(t, "--config", cfgPath, "batch", "TCS", "INFY", "TINY", "GONE", "-s", "bollinger", "--limit", "2")
	require.NoError(t, err)
	assert.Contains(t, out, "SYMBOL")
	assert.Contains(t, out, "Bollinger Bands (20, 2.0σ)")
	assert.Regexp(t, `TINY\s+error: insufficient data`, out)
	assert.Contains(t, out, "GONE")

	out, err = execute(t, "--config", cfgPath, "batch", "TCS", "GONE", "--json")
	require.NoError(t, err)
	var reps []backtest.Report
	require.NoError(t, json.Unmarshal([]byte(out), &reps))
	require.Len(t, reps, 2)
	assert.True(t, reps[0].Success)
	assert.False(t, reps[1].Success)
	assert.Equal(t, "GONE", reps[1].Symbol)

	out, err = execute(t, "--config", cfgPath, "journal", "list", "-n", "0")
	require.NoError(t, err)
	assert.Contains(t, out, "INFY")
}

func TestScreenCommand(t *testing.T) {
	cfgPath, _ := setup(t)

	out, err := execute(t, "--config", cfgPath, "screen", "TCS.NS", "NOPE")
	require.NoError(t, err)
	assert.Contains(t, out, "SIGNAL")
	assert.Regexp(t, `(?m)^TCS\s+2024-`, out)
	assert.Contains(t, out, "1 of 2 symbols could not be screened")

	out, err = execute(t, "--config", cfgPath, "screen", "INFY", "--json")
	require.NoError(t, err)
	var snaps []map[string]any
	require.NoError(t, json.Unmarshal([]byte(out), &snaps))
	require.Len(t, snaps, 1)
	assert.Equal(t, "INFY", snaps[0]["symbol"])
}
