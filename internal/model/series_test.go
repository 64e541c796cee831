package model

import (
	"testing"
	"time"
)

var t0 = time.Date(2025, 6, 2, 14, 0, 0, 0, time.UTC)

func makeBars(start time.Time, step time.Duration, closes ...float64) Series {
	s := make(Series, len(closes))
	for i, c := range closes {
		s[i] = Bar{
			Time:   start.Add(time.Duration(i) * step),
			Open:   c - 1,
			High:   c + 1,
			Low:    c - 2,
			Close:  c,
			Volume: 1000,
		}
	}
	return s
}

func TestMergeAppendsAndSorts(t *testing.T) {
	cached := makeBars(t0, time.Minute, 10, 11, 12)
	delta := makeBars(t0.Add(3*time.Minute), time.Minute, 13, 14)

	merged := cached.Merge(delta)
	if len(merged) != 5 {
		t.Fatalf("expected 5 bars, got %d", len(merged))
	}
	for i := 1; i < len(merged); i++ {
		if !merged[i-1].Time.Before(merged[i].Time) {
			t.Fatalf("bars not strictly ascending at index %d", i)
		}
	}
}

func TestMergeDuplicateTimestampLastWins(t *testing.T) {
	cached := makeBars(t0, time.Minute, 10, 11, 12)
	// Overlaps the last cached bar with a revised close.
	delta := makeBars(t0.Add(2*time.Minute), time.Minute, 99, 13)

	merged := cached.Merge(delta)
	if len(merged) != 4 {
		t.Fatalf("expected 4 distinct timestamps, got %d", len(merged))
	}
	if merged[2].Close != 99 {
		t.Errorf("expected revised bar to win the collision, got close %.0f", merged[2].Close)
	}
}

func TestMergeDoesNotModifyInputs(t *testing.T) {
	cached := makeBars(t0, time.Minute, 10, 11)
	delta := makeBars(t0.Add(time.Minute), time.Minute, 99)

	cached.Merge(delta)
	if cached[1].Close != 11 {
		t.Error("merge modified the cached series")
	}
	if len(cached) != 2 || len(delta) != 1 {
		t.Error("merge resized an input series")
	}
}

func TestTrimBefore(t *testing.T) {
	s := makeBars(t0, time.Hour, 1, 2, 3, 4, 5)
	cutoff := t0.Add(2 * time.Hour)

	trimmed := s.TrimBefore(cutoff)
	if len(trimmed) != 3 {
		t.Fatalf("expected 3 bars after trim, got %d", len(trimmed))
	}
	// The bar exactly at the cutoff stays.
	if !trimmed[0].Time.Equal(cutoff) {
		t.Errorf("expected first bar at cutoff, got %v", trimmed[0].Time)
	}
}

func TestLastOnEmptySeries(t *testing.T) {
	var s Series
	if _, ok := s.Last(); ok {
		t.Error("expected no last bar for empty series")
	}
}

func TestParseTimeframe(t *testing.T) {
	tf, err := ParseTimeframe(" 1H ")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if tf != TimeframeHourly {
		t.Errorf("expected 1h, got %s", tf)
	}
	if _, err := ParseTimeframe("7m"); err == nil {
		t.Error("expected error for unsupported timeframe")
	}
}

func TestRequestCacheKey(t *testing.T) {
	r := Request{Symbol: "AAPL", Timeframe: TimeframeMinute}
	if r.CacheKey() != "AAPL_1m" {
		t.Errorf("unexpected cache key %q", r.CacheKey())
	}
}
