package provider

import (
	"context"
	"log"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/singleflight"

	"MarketPulse/internal/cache"
	"MarketPulse/internal/model"
)

// Provider serves market data through a TTL cache with incremental
// refresh: a cache hit triggers a delta fetch from the last cached bar
// instead of re-downloading the full window. The cache is owned by the
// Provider; all access goes through it.
type Provider struct {
	fetcher   Fetcher
	cache     *cache.Cache[model.Series]
	group     singleflight.Group
	logger    *log.Logger
	retention time.Duration
	now       func() time.Time // overridable in tests
}

// NewProvider creates a Provider over the given fetcher. Cached series
// are considered fresh for ttl and trimmed to the trailing 5-day window
// on every refresh.
func NewProvider(fetcher Fetcher, ttl time.Duration, logger *log.Logger) *Provider {
	if logger == nil {
		logger = log.Default()
	}
	return &Provider{
		fetcher:   fetcher,
		cache:     cache.New[model.Series](ttl),
		logger:    logger,
		retention: HistoryWindow,
		now:       time.Now,
	}
}

// GetHistoricalData resolves each request concurrently and returns a
// symbol-to-series map. Symbols for which no data could be obtained are
// left out of the map; one symbol's failure never affects another.
func (p *Provider) GetHistoricalData(ctx context.Context, requests []model.Request) map[string]model.Series {
	var mu sync.Mutex
	results := make(map[string]model.Series, len(requests))

	g, ctx := errgroup.WithContext(ctx)
	for _, req := range requests {
		req := req
		g.Go(func() error {
			if series := p.symbolHistoricalData(ctx, req); len(series) > 0 {
				mu.Lock()
				results[req.Symbol] = series
				mu.Unlock()
			}
			// Per-symbol failures are already handled; never abort the batch.
			return nil
		})
	}
	g.Wait()
	return results
}

// GetLatestData fetches the most recent bar for each symbol
// concurrently. Symbols with no data are left out of the map.
func (p *Provider) GetLatestData(ctx context.Context, symbols []string) map[string]model.Bar {
	var mu sync.Mutex
	results := make(map[string]model.Bar, len(symbols))

	g, ctx := errgroup.WithContext(ctx)
	for _, symbol := range symbols {
		symbol := symbol
		g.Go(func() error {
			series, err := p.fetcher.FetchLatest(ctx, symbol)
			if err != nil {
				p.logger.Printf("[ERROR] latest fetch for %s: %v", symbol, err)
				return nil
			}
			last, ok := series.Last()
			if !ok {
				p.logger.Printf("[WARN] no latest data available for %s", symbol)
				return nil
			}
			mu.Lock()
			results[symbol] = last
			mu.Unlock()
			return nil
		})
	}
	g.Wait()
	return results
}

// Invalidate drops the cached series for the given requests, or the
// whole cache when called with none.
func (p *Provider) Invalidate(requests ...model.Request) {
	if len(requests) == 0 {
		p.cache.Clear()
		return
	}
	keys := make([]string, len(requests))
	for i, req := range requests {
		keys[i] = req.CacheKey()
	}
	p.cache.Clear(keys...)
}

// symbolHistoricalData funnels concurrent refreshes for one key through
// singleflight, so two in-flight calls for the same key cannot race on
// the read-merge-write sequence; both receive the same series.
func (p *Provider) symbolHistoricalData(ctx context.Context, req model.Request) model.Series {
	v, _, _ := p.group.Do(req.CacheKey(), func() (interface{}, error) {
		return p.refresh(ctx, req), nil
	})
	series, _ := v.(model.Series)
	return series
}

// refresh is the per-key state machine: hit → delta fetch and merge,
// miss → full history fetch. Any fetch failure leaves the cache in its
// prior state and yields nil for this cycle.
func (p *Provider) refresh(ctx context.Context, req model.Request) model.Series {
	key := req.CacheKey()

	if cached, ok := p.cache.Get(key); ok && len(cached) > 0 {
		last, _ := cached.Last()
		p.logger.Printf("[INFO] cache hit for %s, cached range %s to %s",
			key, cached[0].Time.Format(time.RFC3339), last.Time.Format(time.RFC3339))

		delta, err := p.fetcher.FetchSince(ctx, req.Symbol, req.Timeframe, last.Time)
		if err != nil {
			p.logger.Printf("[ERROR] delta fetch for %s: %v", key, err)
			return nil
		}
		if len(delta) == 0 {
			// Nothing new upstream; cached series stays as is, no write.
			return cached
		}

		updated := cached.Merge(delta).TrimBefore(p.now().UTC().Add(-p.retention))
		p.cache.Set(key, updated)
		return updated
	}

	p.logger.Printf("[INFO] cache miss for %s, fetching full history", key)
	series, err := p.fetcher.FetchHistory(ctx, req.Symbol, req.Timeframe)
	if err != nil {
		p.logger.Printf("[ERROR] history fetch for %s: %v", key, err)
		return nil
	}
	if len(series) == 0 {
		p.logger.Printf("[WARN] no data available for %s", req.Symbol)
		return nil
	}
	p.cache.Set(key, series)
	return series
}
