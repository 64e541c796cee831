package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"MarketPulse/internal/model"
)

// Config holds all application configuration.
type Config struct {
	DataSource struct {
		BaseURL string `yaml:"base_url"` // empty: use Yahoo Finance
		APIKey  string `yaml:"api_key"`
	} `yaml:"data_source"`
	Watchlist struct {
		Symbols   []string `yaml:"symbols"`
		Timeframe string   `yaml:"timeframe"`
	} `yaml:"watchlist"`
	Cache struct {
		TTLMinutes int `yaml:"ttl_minutes"`
	} `yaml:"cache"`
	Schedule struct {
		RefreshCron string `yaml:"refresh_cron"`
		QuoteCron   string `yaml:"quote_cron"`
	} `yaml:"schedule"`
	Database struct {
		SQLitePath string `yaml:"sqlite_path"`
	} `yaml:"database"`
	Proxy string `yaml:"proxy"`
}

// Load reads config from a YAML file, then applies environment variable overrides.
func Load(path string) (*Config, error) {
	cfg := &Config{}

	data, err := os.ReadFile(path)
	if err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("read config: %w", err)
	}
	if len(data) > 0 {
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config: %w", err)
		}
	}

	// Environment variable overrides
	if v := os.Getenv("DATA_BASE_URL"); v != "" {
		cfg.DataSource.BaseURL = v
	}
	if v := os.Getenv("DATA_API_KEY"); v != "" {
		cfg.DataSource.APIKey = v
	}
	if v := os.Getenv("WATCHLIST_SYMBOLS"); v != "" {
		cfg.Watchlist.Symbols = splitSymbols(v)
	}
	if v := os.Getenv("WATCHLIST_TIMEFRAME"); v != "" {
		cfg.Watchlist.Timeframe = v
	}
	if v := os.Getenv("CACHE_TTL_MINUTES"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.Cache.TTLMinutes = n
		}
	}
	if v := os.Getenv("CRON_REFRESH"); v != "" {
		cfg.Schedule.RefreshCron = v
	}
	if v := os.Getenv("CRON_QUOTE"); v != "" {
		cfg.Schedule.QuoteCron = v
	}
	if v := os.Getenv("SQLITE_PATH"); v != "" {
		cfg.Database.SQLitePath = v
	}
	if v := os.Getenv("HTTPS_PROXY"); v != "" {
		cfg.Proxy = v
	}

	// Defaults
	if len(cfg.Watchlist.Symbols) == 0 {
		cfg.Watchlist.Symbols = []string{"AAPL"}
	}
	if cfg.Watchlist.Timeframe == "" {
		cfg.Watchlist.Timeframe = "1m"
	}
	if cfg.Cache.TTLMinutes == 0 {
		cfg.Cache.TTLMinutes = 5
	}
	if cfg.Schedule.RefreshCron == "" {
		cfg.Schedule.RefreshCron = "0 * * * * *" // every minute
	}
	if cfg.Schedule.QuoteCron == "" {
		cfg.Schedule.QuoteCron = "30 * * * * *"
	}

	return cfg, nil
}

// Validate checks that all required fields are consistent.
func (c *Config) Validate() error {
	if len(c.Watchlist.Symbols) == 0 {
		return fmt.Errorf("watchlist.symbols must not be empty")
	}
	for _, s := range c.Watchlist.Symbols {
		if strings.TrimSpace(s) == "" {
			return fmt.Errorf("watchlist.symbols contains an empty symbol")
		}
	}
	if _, err := model.ParseTimeframe(c.Watchlist.Timeframe); err != nil {
		return fmt.Errorf("watchlist.timeframe: %w", err)
	}
	if c.Cache.TTLMinutes <= 0 {
		return fmt.Errorf("cache.ttl_minutes must be positive")
	}
	return nil
}

// Requests expands the watchlist into one request per symbol.
func (c *Config) Requests() ([]model.Request, error) {
	tf, err := model.ParseTimeframe(c.Watchlist.Timeframe)
	if err != nil {
		return nil, err
	}
	reqs := make([]model.Request, len(c.Watchlist.Symbols))
	for i, s := range c.Watchlist.Symbols {
		reqs[i] = model.Request{Symbol: s, Timeframe: tf}
	}
	return reqs, nil
}

func splitSymbols(v string) []string {
	var out []string
	for _, s := range strings.Split(v, ",") {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	return out
}
