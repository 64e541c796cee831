package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadDefaultsWhenFileMissing(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(cfg.Watchlist.Symbols) != 1 || cfg.Watchlist.Symbols[0] != "AAPL" {
		t.Errorf("unexpected default watchlist: %v", cfg.Watchlist.Symbols)
	}
	if cfg.Watchlist.Timeframe != "1m" {
		t.Errorf("unexpected default timeframe: %s", cfg.Watchlist.Timeframe)
	}
	if cfg.Cache.TTLMinutes != 5 {
		t.Errorf("unexpected default TTL: %d", cfg.Cache.TTLMinutes)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("defaults should validate: %v", err)
	}
}

func TestLoadYAMLAndEnvOverride(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	data := []byte(`
watchlist:
  symbols: [MSFT, GOOG]
  timeframe: 1h
cache:
  ttl_minutes: 10
`)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatal(err)
	}
	t.Setenv("WATCHLIST_SYMBOLS", "TSLA, NVDA")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	// Environment wins over the file.
	if len(cfg.Watchlist.Symbols) != 2 || cfg.Watchlist.Symbols[0] != "TSLA" || cfg.Watchlist.Symbols[1] != "NVDA" {
		t.Errorf("expected env override, got %v", cfg.Watchlist.Symbols)
	}
	if cfg.Watchlist.Timeframe != "1h" {
		t.Errorf("expected 1h from file, got %s", cfg.Watchlist.Timeframe)
	}
	if cfg.Cache.TTLMinutes != 10 {
		t.Errorf("expected 10 from file, got %d", cfg.Cache.TTLMinutes)
	}
}

func TestValidateRejectsBadTimeframe(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	if err != nil {
		t.Fatal(err)
	}
	cfg.Watchlist.Timeframe = "42s"
	if err := cfg.Validate(); err == nil {
		t.Error("expected validation error for unsupported timeframe")
	}
}

func TestRequestsExpandsWatchlist(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	if err != nil {
		t.Fatal(err)
	}
	cfg.Watchlist.Symbols = []string{"AAPL", "TSLA"}
	cfg.Watchlist.Timeframe = "5m"

	reqs, err := cfg.Requests()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(reqs) != 2 {
		t.Fatalf("expected 2 requests, got %d", len(reqs))
	}
	if reqs[1].Symbol != "TSLA" || reqs[1].Timeframe.Interval() != "5m" {
		t.Errorf("unexpected request: %+v", reqs[1])
	}
}
