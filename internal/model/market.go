package model

import (
	"fmt"
	"strings"
	"time"
)

// Bar represents a single OHLCV candlestick.
type Bar struct {
	Time   time.Time
	Open   float64
	High   float64
	Low    float64
	Close  float64
	Volume int64
}

// Timeframe identifies a bar interval supported by the data sources.
type Timeframe string

const (
	TimeframeMinute      Timeframe = "1m"
	TimeframeFiveMinutes Timeframe = "5m"
	TimeframeHourly      Timeframe = "1h"
	TimeframeDaily       Timeframe = "1d"
)

var timeframeDurations = map[Timeframe]time.Duration{
	TimeframeMinute:      time.Minute,
	TimeframeFiveMinutes: 5 * time.Minute,
	TimeframeHourly:      time.Hour,
	TimeframeDaily:       24 * time.Hour,
}

// ParseTimeframe normalizes and validates a timeframe string.
func ParseTimeframe(s string) (Timeframe, error) {
	tf := Timeframe(strings.ToLower(strings.TrimSpace(s)))
	if _, ok := timeframeDurations[tf]; !ok {
		return "", fmt.Errorf("unsupported timeframe: %q", s)
	}
	return tf, nil
}

// Interval returns the source-API interval string.
func (tf Timeframe) Interval() string { return string(tf) }

// Duration returns the bar width.
func (tf Timeframe) Duration() time.Duration { return timeframeDurations[tf] }

// Request identifies one logical data stream: a symbol at a timeframe.
type Request struct {
	Symbol    string
	Timeframe Timeframe
}

// CacheKey returns the cache key for this request. Exactly one key per
// (symbol, timeframe) pair.
func (r Request) CacheKey() string {
	return r.Symbol + "_" + string(r.Timeframe)
}
