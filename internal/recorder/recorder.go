package recorder

import "time"

// RefreshEvent holds data for one symbol's scheduled refresh outcome.
type RefreshEvent struct {
	Symbol     string
	Timeframe  string
	Bars       int
	RangeStart time.Time
	RangeEnd   time.Time
}

// QuoteEvent records a latest-bar snapshot for a symbol.
type QuoteEvent struct {
	Symbol  string
	BarTime time.Time
	Open    float64
	High    float64
	Low     float64
	Close   float64
	Volume  int64
}

// Recorder persists refresh activity for later analysis. The in-memory
// cache itself is never persisted; this is write-only telemetry.
type Recorder interface {
	RecordRefresh(evt *RefreshEvent) error
	RecordQuote(evt *QuoteEvent) error
	Close() error
}
