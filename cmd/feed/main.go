package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"MarketPulse/internal/config"
	"MarketPulse/internal/provider"
	"MarketPulse/internal/recorder"
	"MarketPulse/internal/scheduler"
)

func main() {
	logger := log.New(os.Stderr, "", log.LstdFlags|log.Lshortfile)
	logger.Println("[INFO] MarketPulse starting...")

	// Load config
	cfgPath := "configs/config.yaml"
	if v := os.Getenv("CONFIG_PATH"); v != "" {
		cfgPath = v
	}
	cfg, err := config.Load(cfgPath)
	if err != nil {
		logger.Fatalf("[FATAL] load config: %v", err)
	}
	if err := cfg.Validate(); err != nil {
		logger.Fatalf("[FATAL] config validation: %v", err)
	}

	// Init fetcher
	var fetcher provider.Fetcher
	if cfg.DataSource.BaseURL != "" {
		fetcher = provider.NewRESTFetcher(cfg.DataSource.BaseURL, cfg.DataSource.APIKey, cfg.Proxy)
	} else {
		fetcher = provider.NewYahooFetcher(cfg.Proxy)
	}
	logger.Printf("[INFO] data source: %s", fetcher.Name())

	// Init provider
	ttl := time.Duration(cfg.Cache.TTLMinutes) * time.Minute
	prov := provider.NewProvider(fetcher, ttl, logger)

	requests, err := cfg.Requests()
	if err != nil {
		logger.Fatalf("[FATAL] build watchlist: %v", err)
	}

	// Init recorder
	var rec recorder.Recorder
	if cfg.Database.SQLitePath != "" {
		sr, err := recorder.NewSQLiteRecorder(cfg.Database.SQLitePath)
		if err != nil {
			logger.Printf("[WARN] init sqlite recorder failed, using noop: %v", err)
			rec = recorder.NewNoopRecorder()
		} else {
			rec = sr
			defer sr.Close()
		}
	} else {
		rec = recorder.NewNoopRecorder()
	}

	// Context for graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Init scheduler
	sched := scheduler.NewScheduler(ctx, prov, rec, requests, logger)
	if err := sched.RegisterAll(cfg.Schedule.RefreshCron, cfg.Schedule.QuoteCron); err != nil {
		logger.Fatalf("[FATAL] register cron tasks: %v", err)
	}
	sched.Start()
	defer sched.Stop()

	// Optional: run immediately on start
	if os.Getenv("RUN_ON_START") == "true" {
		logger.Println("[INFO] RUN_ON_START enabled, refreshing watchlist now")
		go sched.RunRefreshNow()
	}

	logger.Println("[INFO] MarketPulse is running. Press Ctrl+C to stop.")

	// Wait for shutdown signal
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	<-sigCh

	logger.Println("[INFO] shutdown signal received, stopping...")
	cancel()
	logger.Println("[INFO] MarketPulse stopped")
}
