package provider

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"MarketPulse/internal/model"
)

// RESTFetcher implements Fetcher against a generic bar-serving REST API
// (self-hosted gateways exposing /api/v1/bars).
type RESTFetcher struct {
	BaseURL string
	APIKey  string
	Client  *http.Client
}

// NewRESTFetcher creates a new fetcher with optional proxy support.
func NewRESTFetcher(baseURL, apiKey, proxyURL string) *RESTFetcher {
	transport := &http.Transport{}
	if proxyURL != "" {
		if u, err := url.Parse(proxyURL); err == nil {
			transport.Proxy = http.ProxyURL(u)
		}
	}
	return &RESTFetcher{
		BaseURL: baseURL,
		APIKey:  apiKey,
		Client: &http.Client{
			Timeout:   30 * time.Second,
			Transport: transport,
		},
	}
}

func (f *RESTFetcher) Name() string { return "rest" }

// restBar is the expected JSON shape from the bars endpoint.
type restBar struct {
	Timestamp int64   `json:"timestamp"`
	Open      float64 `json:"open"`
	High      float64 `json:"high"`
	Low       float64 `json:"low"`
	Close     float64 `json:"close"`
	Volume    int64   `json:"volume"`
}

// FetchHistory fetches the trailing 5-day window at the given interval.
func (f *RESTFetcher) FetchHistory(ctx context.Context, symbol string, tf model.Timeframe) (model.Series, error) {
	end := time.Now().UTC()
	return f.fetchBars(ctx, symbol, tf.Interval(), end.Add(-HistoryWindow), end)
}

// FetchLatest fetches the last trading day's minute bars.
func (f *RESTFetcher) FetchLatest(ctx context.Context, symbol string) (model.Series, error) {
	end := time.Now().UTC()
	return f.fetchBars(ctx, symbol, "1m", end.Add(-24*time.Hour), end)
}

// FetchSince fetches bars after since. One minute is added to the start
// so the already-cached boundary bar is not fetched again.
func (f *RESTFetcher) FetchSince(ctx context.Context, symbol string, tf model.Timeframe, since time.Time) (model.Series, error) {
	start := since.Add(time.Minute)
	end := time.Now().UTC()
	if !start.Before(end) {
		return nil, nil
	}
	return f.fetchBars(ctx, symbol, tf.Interval(), start, end)
}

func (f *RESTFetcher) fetchBars(ctx context.Context, symbol, interval string, start, end time.Time) (model.Series, error) {
	endpoint := fmt.Sprintf("%s/api/v1/bars?symbol=%s&interval=%s&start=%d&end=%d",
		f.BaseURL, url.QueryEscape(symbol), interval, start.Unix(), end.Unix())
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, err
	}
	if f.APIKey != "" {
		req.Header.Set("Authorization", "Bearer "+f.APIKey)
	}
	resp, err := f.Client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch bars: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("fetch bars: status %d, body: %s", resp.StatusCode, string(body))
	}
	var rows []restBar
	if err := json.NewDecoder(resp.Body).Decode(&rows); err != nil {
		return nil, fmt.Errorf("decode bars: %w", err)
	}
	if len(rows) == 0 {
		return nil, nil
	}
	bars := make(model.Series, len(rows))
	for i, rb := range rows {
		bars[i] = model.Bar{
			Time:   time.Unix(rb.Timestamp, 0).UTC(),
			Open:   rb.Open,
			High:   rb.High,
			Low:    rb.Low,
			Close:  rb.Close,
			Volume: rb.Volume,
		}
	}
	// Ensure chronological order
	bars.Sort()
	return bars, nil
}
