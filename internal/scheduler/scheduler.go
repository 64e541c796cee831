package scheduler

import (
	"context"
	"fmt"
	"log"

	"github.com/robfig/cron/v3"

	"MarketPulse/internal/model"
	"MarketPulse/internal/provider"
	"MarketPulse/internal/recorder"
)

// Scheduler drives the periodic watchlist refresh and quote snapshots.
type Scheduler struct {
	Cron     *cron.Cron
	Provider *provider.Provider
	Recorder recorder.Recorder
	Requests []model.Request
	Symbols  []string
	Ctx      context.Context
	Logger   *log.Logger
}

// NewScheduler creates a new Scheduler over the given watchlist.
func NewScheduler(ctx context.Context, p *provider.Provider, rec recorder.Recorder, requests []model.Request, logger *log.Logger) *Scheduler {
	if logger == nil {
		logger = log.Default()
	}
	symbols := make([]string, len(requests))
	for i, req := range requests {
		symbols[i] = req.Symbol
	}
	return &Scheduler{
		Cron:     cron.New(cron.WithSeconds()),
		Provider: p,
		Recorder: rec,
		Requests: requests,
		Symbols:  symbols,
		Ctx:      ctx,
		Logger:   logger,
	}
}

// RegisterAll registers the refresh and quote tasks.
func (s *Scheduler) RegisterAll(refreshCron, quoteCron string) error {
	if _, err := s.Cron.AddFunc(refreshCron, s.refreshTask); err != nil {
		return fmt.Errorf("register refresh task: %w", err)
	}
	if _, err := s.Cron.AddFunc(quoteCron, s.quoteTask); err != nil {
		return fmt.Errorf("register quote task: %w", err)
	}
	return nil
}

// Start starts the cron scheduler.
func (s *Scheduler) Start() {
	s.Cron.Start()
	s.Logger.Println("[INFO] scheduler started")
}

// Stop stops the cron scheduler gracefully.
func (s *Scheduler) Stop() {
	s.Cron.Stop()
	s.Logger.Println("[INFO] scheduler stopped")
}

// RunRefreshNow executes the refresh task immediately (for manual trigger / RUN_ON_START).
func (s *Scheduler) RunRefreshNow() {
	s.refreshTask()
}

func (s *Scheduler) refreshTask() {
	s.Logger.Println("[INFO] running watchlist refresh")
	data := s.Provider.GetHistoricalData(s.Ctx, s.Requests)
	if len(data) < len(s.Requests) {
		s.Logger.Printf("[WARN] refresh returned %d of %d symbols", len(data), len(s.Requests))
	}

	for _, req := range s.Requests {
		series, ok := data[req.Symbol]
		if !ok {
			continue
		}
		first := series[0]
		last, _ := series.Last()
		if err := s.Recorder.RecordRefresh(&recorder.RefreshEvent{
			Symbol:     req.Symbol,
			Timeframe:  string(req.Timeframe),
			Bars:       len(series),
			RangeStart: first.Time,
			RangeEnd:   last.Time,
		}); err != nil {
			s.Logger.Printf("[ERROR] record refresh for %s: %v", req.Symbol, err)
		}
	}
}

func (s *Scheduler) quoteTask() {
	s.Logger.Println("[INFO] running quote snapshot")
	quotes := s.Provider.GetLatestData(s.Ctx, s.Symbols)

	for symbol, bar := range quotes {
		if err := s.Recorder.RecordQuote(&recorder.QuoteEvent{
			Symbol:  symbol,
			BarTime: bar.Time,
			Open:    bar.Open,
			High:    bar.High,
			Low:     bar.Low,
			Close:   bar.Close,
			Volume:  bar.Volume,
		}); err != nil {
			s.Logger.Printf("[ERROR] record quote for %s: %v", symbol, err)
		}
	}
}
