package provider

import (
	"context"
	"sync"
	"time"

	"MarketPulse/internal/model"
)

// MockFetcher returns controllable fixed data for development and testing.
type MockFetcher struct {
	mu sync.Mutex

	Price   float64
	History model.Series
	Delta   model.Series
	Latest  model.Series
	Errs    map[string]error // per-symbol injected failures

	HistoryCalls int
	SinceCalls   int
	LatestCalls  int
}

func (m *MockFetcher) Name() string { return "mock" }

func (m *MockFetcher) FetchHistory(_ context.Context, symbol string, tf model.Timeframe) (model.Series, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.HistoryCalls++
	if err := m.Errs[symbol]; err != nil {
		return nil, err
	}
	if m.History != nil {
		return m.History, nil
	}
	return generateMockBars(m.Price, 100, tf.Duration()), nil
}

func (m *MockFetcher) FetchLatest(_ context.Context, symbol string) (model.Series, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.LatestCalls++
	if err := m.Errs[symbol]; err != nil {
		return nil, err
	}
	if m.Latest != nil {
		return m.Latest, nil
	}
	return generateMockBars(m.Price, 60, time.Minute), nil
}

func (m *MockFetcher) FetchSince(_ context.Context, symbol string, _ model.Timeframe, _ time.Time) (model.Series, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.SinceCalls++
	if err := m.Errs[symbol]; err != nil {
		return nil, err
	}
	return m.Delta, nil
}

// SetDelta swaps the series returned by subsequent FetchSince calls.
func (m *MockFetcher) SetDelta(s model.Series) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Delta = s
}

func generateMockBars(basePrice float64, count int, step time.Duration) model.Series {
	bars := make(model.Series, count)
	start := time.Now().UTC().Add(-time.Duration(count) * step)
	for i := 0; i < count; i++ {
		p := basePrice * (1 + float64(i-count/2)*0.001)
		bars[i] = model.Bar{
			Time:   start.Add(time.Duration(i) * step),
			Open:   p * 0.999,
			High:   p * 1.005,
			Low:    p * 0.995,
			Close:  p,
			Volume: 1000000,
		}
	}
	return bars
}
