package provider

import (
	"context"
	"time"

	"MarketPulse/internal/model"
)

// Fetcher defines the interface for an upstream bar source. All three
// calls return a nil series with a nil error when the source genuinely
// has nothing for the query; errors are reserved for transport and
// decode failures.
type Fetcher interface {
	// FetchHistory fetches a trailing window of bars at the given interval.
	FetchHistory(ctx context.Context, symbol string, tf model.Timeframe) (model.Series, error)
	// FetchLatest fetches the most recent session's minute bars.
	FetchLatest(ctx context.Context, symbol string) (model.Series, error)
	// FetchSince fetches bars strictly after since, up to now.
	FetchSince(ctx context.Context, symbol string, tf model.Timeframe, since time.Time) (model.Series, error)
	Name() string
}

// HistoryWindow is the trailing window covered by FetchHistory and the
// rolling retention applied when refreshing a cached series.
const HistoryWindow = 5 * 24 * time.Hour
