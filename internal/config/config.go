package config

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// ---------------------------------------------------------------------------
// Configuration structs
// ---------------------------------------------------------------------------

// Config is the top-level configuration for quantbt.
type Config struct {
	Storage    Storage          `yaml:"storage"`
	Alpaca     Alpaca           `yaml:"alpaca"`
	Logging    Logging          `yaml:"logging"`
	Data       DataConfig       `yaml:"data"`
	Backtest   BacktestConfig   `yaml:"backtest"`
	Strategies StrategiesConfig `yaml:"strategies"`
}

// Storage holds paths for data persistence.
type Storage struct {
	DataDir    string `yaml:"data_dir"`
	SQLitePath string `yaml:"sqlite_path"`
}

// Alpaca holds credentials and endpoints for the Alpaca market-data API.
type Alpaca struct {
	APIKey    string `yaml:"api_key"`
	APISecret string `yaml:"api_secret"`
	DataURL   string `yaml:"data_url"`
}

// Logging configures the application logger.
type Logging struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

// DataConfig selects the ticker universe and date range to collect and
// backtest over.
type DataConfig struct {
	Tickers   []string `yaml:"tickers"`
	StartDate string   `yaml:"start_date"`
	EndDate   string   `yaml:"end_date"`
}

// BacktestConfig holds execution parameters for the backtest pipeline.
type BacktestConfig struct {
	CostRate float64 `yaml:"cost_rate"`
}

// StrategiesConfig holds parameters for each built-in strategy.
type StrategiesConfig struct {
	Crossover     CrossoverConfig     `yaml:"crossover"`
	MeanReversion MeanReversionConfig `yaml:"mean_reversion"`
	Momentum      MomentumConfig      `yaml:"momentum"`
}

// CrossoverConfig parameterises the moving-average crossover strategy.
type CrossoverConfig struct {
	Fast int `yaml:"fast"`
	Slow int `yaml:"slow"`
}

// MeanReversionConfig parameterises the z-score mean-reversion strategy.
type MeanReversionConfig struct {
	Window    int     `yaml:"window"`
	Threshold float64 `yaml:"threshold"`
}

// MomentumConfig parameterises the momentum strategy.
type MomentumConfig struct {
	Lookback int `yaml:"lookback"`
}

// ---------------------------------------------------------------------------
// Loading
// ---------------------------------------------------------------------------

// Default returns the configuration used when no file overrides a value:
// the classic 20/50 crossover, a 20-day z-score window at threshold 2, a
// 20-day momentum lookback, and 10 basis points of cost per trade.
func Default() *Config {
	return &Config{
		Storage: Storage{
			DataDir:    "data",
			SQLitePath: "data/quantbt.db",
		},
		Logging: Logging{
			Level:  "info",
			Format: "text",
		},
		Data: DataConfig{
			Tickers:   []string{"SPY", "QQQ", "IWM", "GLD", "TLT"},
			StartDate: "2020-01-01",
			EndDate:   "2024-12-31",
		},
		Backtest: BacktestConfig{
			CostRate: 0.001,
		},
		Strategies: StrategiesConfig{
			Crossover:     CrossoverConfig{Fast: 20, Slow: 50},
			MeanReversion: MeanReversionConfig{Window: 20, Threshold: 2.0},
			Momentum:      MomentumConfig{Lookback: 20},
		},
	}
}

// Load reads the YAML configuration file at the given path over the
// defaults and then applies environment variable overrides.
func Load(path string) (*Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}

	applyEnvOverrides(cfg)

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// applyEnvOverrides checks well-known environment variables and overrides the
// corresponding configuration fields when they are set.
func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv("DATA_DIR"); v != "" {
		cfg.Storage.DataDir = v
	}
	if v := os.Getenv("SQLITE_PATH"); v != "" {
		cfg.Storage.SQLitePath = v
	}
	if v := os.Getenv("LOG_LEVEL"); v != "" {
		cfg.Logging.Level = v
	}
	if v := os.Getenv("ALPACA_API_KEY"); v != "" {
		cfg.Alpaca.APIKey = v
	}
	if v := os.Getenv("ALPACA_API_SECRET"); v != "" {
		cfg.Alpaca.APISecret = v
	}

	// Standard Alpaca env vars (canonical names used by the SDK) win over
	// everything else.
	if v := os.Getenv("APCA_API_KEY_ID"); v != "" {
		cfg.Alpaca.APIKey = v
	}
	if v := os.Getenv("APCA_API_SECRET_KEY"); v != "" {
		cfg.Alpaca.APISecret = v
	}
}

// validate rejects configurations the pipeline cannot run with.
func (c *Config) validate() error {
	if c.Strategies.Crossover.Fast <= 0 || c.Strategies.Crossover.Slow <= 0 {
		return fmt.Errorf("config: crossover windows must be positive, got %d/%d",
			c.Strategies.Crossover.Fast, c.Strategies.Crossover.Slow)
	}
	if c.Strategies.Crossover.Fast >= c.Strategies.Crossover.Slow {
		return fmt.Errorf("config: crossover fast window %d must be below slow window %d",
			c.Strategies.Crossover.Fast, c.Strategies.Crossover.Slow)
	}
	if c.Strategies.MeanReversion.Window < 2 {
		return fmt.Errorf("config: mean reversion window must be at least 2, got %d",
			c.Strategies.MeanReversion.Window)
	}
	if c.Strategies.Momentum.Lookback <= 0 {
		return fmt.Errorf("config: momentum lookback must be positive, got %d",
			c.Strategies.Momentum.Lookback)
	}
	if c.Backtest.CostRate < 0 {
		return fmt.Errorf("config: cost rate must not be negative, got %g", c.Backtest.CostRate)
	}
	if len(c.Data.Tickers) == 0 {
		return fmt.Errorf("config: data.tickers must not be empty")
	}
	for _, tk := range c.Data.Tickers {
		if strings.TrimSpace(tk) == "" {
			return fmt.Errorf("config: empty ticker in data.tickers")
		}
	}
	return nil
}
