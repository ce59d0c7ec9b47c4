package config

import (
	"encoding/json"
	"fmt"
	"math"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/rustyeddy/screener/market"
	"github.com/rustyeddy/screener/strategies"
)

// EnvPrefix prefixes every environment override, e.g. SCREENER_DATA_PROVIDER.
const EnvPrefix = "SCREENER_"

// Config is the complete screener configuration.
type Config struct {
	Backtest BacktestConfig `json:"backtest" yaml:"backtest"`
	Data     DataConfig     `json:"data" yaml:"data"`
	Journal  JournalConfig  `json:"journal" yaml:"journal"`
	Server   ServerConfig   `json:"server" yaml:"server"`
	Log      LogConfig      `json:"log" yaml:"log"`
}

// BacktestConfig holds request defaults used when a caller leaves a field out.
type BacktestConfig struct {
	Strategy string            `json:"strategy" yaml:"strategy"`
	Period   string            `json:"period" yaml:"period"`
	Capital  float64           `json:"capital" yaml:"capital"`
	Params   strategies.Params `json:"params" yaml:"params"`
}

// DataConfig selects where bars come from.
type DataConfig struct {
	Provider   string `json:"provider" yaml:"provider"` // "yahoo" or "csv"
	CSVDir     string `json:"csv_dir,omitempty" yaml:"csv_dir,omitempty"`
	Suffix     string `json:"suffix" yaml:"suffix"`
	BatchLimit int    `json:"batch_limit" yaml:"batch_limit"`
	RateLimit  int    `json:"rate_limit" yaml:"rate_limit"` // yahoo requests per minute, 0 = unlimited
}

type JournalConfig struct {
	Enabled bool   `json:"enabled" yaml:"enabled"`
	DBPath  string `json:"db_path,omitempty" yaml:"db_path,omitempty"`
}

type ServerConfig struct {
	Addr string `json:"addr" yaml:"addr"`
}

type LogConfig struct {
	Level string `json:"level" yaml:"level"`
}

// Default returns a configuration with sensible defaults.
func Default() *Config {
	return &Config{
		Backtest: BacktestConfig{
			Strategy: "rsi_sma",
			Period:   market.DefaultPeriod,
			Capital:  100000,
			Params:   strategies.DefaultParams(),
		},
		Data: DataConfig{
			Provider:   "yahoo",
			Suffix:     market.NSESuffix,
			BatchLimit: 4,
			RateLimit:  60,
		},
		Journal: JournalConfig{
			Enabled: false,
			DBPath:  "./screener.db",
		},
		Server: ServerConfig{
			Addr: ":8080",
		},
		Log: LogConfig{
			Level: "info",
		},
	}
}

// Load builds the effective configuration: defaults, then the file at path
// when given, then .env and SCREENER_* environment overrides.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path != "" {
		if err := cfg.readFile(path); err != nil {
			return nil, err
		}
	}

	_ = godotenv.Load()
	if err := cfg.ApplyEnv(os.LookupEnv); err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

// LoadFromFile loads configuration from a file over the defaults. YAML is
// tried first, then JSON.
func LoadFromFile(path string) (*Config, error) {
	cfg := Default()
	if err := cfg.readFile(path); err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

func (c *Config) readFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config file: %w", err)
	}

	if err := yaml.Unmarshal(data, c); err != nil {
		if jerr := json.Unmarshal(data, c); jerr != nil {
			return fmt.Errorf("parse config (tried YAML and JSON): %w", jerr)
		}
	}
	return nil
}

// SaveToFile saves configuration as YAML for .yaml/.yml paths and JSON
// otherwise.
func (c *Config) SaveToFile(path string) error {
	var data []byte
	var err error

	if strings.HasSuffix(path, ".yaml") || strings.HasSuffix(path, ".yml") {
		data, err = yaml.Marshal(c)
	} else {
		data, err = json.MarshalIndent(c, "", "  ")
	}
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("write config file: %w", err)
	}
	return nil
}

// ApplyEnv overrides fields from SCREENER_* variables found by lookup.
func (c *Config) ApplyEnv(lookup func(string) (string, bool)) error {
	str := func(name string, dst *string) {
		if v, ok := lookup(EnvPrefix + name); ok && v != "" {
			*dst = v
		}
	}

	str("STRATEGY", &c.Backtest.Strategy)
	str("PERIOD", &c.Backtest.Period)
	str("DATA_PROVIDER", &c.Data.Provider)
	str("CSV_DIR", &c.Data.CSVDir)
	str("SYMBOL_SUFFIX", &c.Data.Suffix)
	str("DB_PATH", &c.Journal.DBPath)
	str("ADDR", &c.Server.Addr)
	str("LOG_LEVEL", &c.Log.Level)

	if v, ok := lookup(EnvPrefix + "CAPITAL"); ok && v != "" {
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return fmt.Errorf("%sCAPITAL: %w", EnvPrefix, err)
		}
		c.Backtest.Capital = f
	}
	if v, ok := lookup(EnvPrefix + "BATCH_LIMIT"); ok && v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("%sBATCH_LIMIT: %w", EnvPrefix, err)
		}
		c.Data.BatchLimit = n
	}
	if v, ok := lookup(EnvPrefix + "RATE_LIMIT"); ok && v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("%sRATE_LIMIT: %w", EnvPrefix, err)
		}
		c.Data.RateLimit = n
	}
	if v, ok := lookup(EnvPrefix + "JOURNAL"); ok && v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("%sJOURNAL: %w", EnvPrefix, err)
		}
		c.Journal.Enabled = b
	}
	return nil
}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	if _, ok := strategies.ParseKind(c.Backtest.Strategy); !ok {
		return fmt.Errorf("backtest.strategy %q is not one of %s", c.Backtest.Strategy, strings.Join(strategies.IDs(), ", "))
	}
	// params are defaults for every strategy, not just the configured one
	params := c.Backtest.Params.WithDefaults()
	for _, k := range strategies.Kinds() {
		if err := params.Validate(k); err != nil {
			return fmt.Errorf("backtest.params (%s): %w", k, err)
		}
	}
	if c.Backtest.Capital <= 0 || math.IsNaN(c.Backtest.Capital) || math.IsInf(c.Backtest.Capital, 0) {
		return fmt.Errorf("backtest.capital must be a positive number")
	}
	if !market.ValidPeriod(c.Backtest.Period) {
		return fmt.Errorf("backtest.period %q is not one of %s", c.Backtest.Period, strings.Join(market.Periods(), ", "))
	}

	switch c.Data.Provider {
	case "yahoo":
	case "csv":
		if c.Data.CSVDir == "" {
			return fmt.Errorf("data.csv_dir required for csv provider")
		}
	default:
		return fmt.Errorf("data.provider must be 'yahoo' or 'csv'")
	}
	if c.Data.BatchLimit < 0 {
		return fmt.Errorf("data.batch_limit must not be negative")
	}
	if c.Data.RateLimit < 0 {
		return fmt.Errorf("data.rate_limit must not be negative")
	}

	if c.Journal.Enabled && c.Journal.DBPath == "" {
		return fmt.Errorf("journal.db_path required when journal is enabled")
	}
	if c.Server.Addr == "" {
		return fmt.Errorf("server.addr is required")
	}

	switch strings.ToLower(c.Log.Level) {
	case "debug", "info", "warn", "warning", "error":
	default:
		return fmt.Errorf("log.level must be debug, info, warn or error")
	}
	return nil
}

// Provider builds the market data provider the configuration selects.
func (c *Config) Provider() market.Provider {
	if c.Data.Provider == "csv" {
		return &market.CSVProvider{Dir: c.Data.CSVDir, Suffix: c.Data.Suffix}
	}
	return market.NewYahooProvider(c.Data.Suffix, c.Data.RateLimit)
}
