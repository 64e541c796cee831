package model

import (
	"sort"
	"time"
)

// Series is an ordered sequence of bars. All operations maintain the
// invariant that timestamps are strictly unique and sorted ascending.
type Series []Bar

// Last returns the most recent bar. ok is false for an empty series.
func (s Series) Last() (Bar, bool) {
	if len(s) == 0 {
		return Bar{}, false
	}
	return s[len(s)-1], true
}

// Sort orders the series by timestamp ascending, in place.
func (s Series) Sort() {
	sort.SliceStable(s, func(i, j int) bool { return s[i].Time.Before(s[j].Time) })
}

// Merge combines s with newer and returns a fresh series: duplicate
// timestamps keep the bar from newer (last-write-wins), the result is
// sorted ascending. Neither input is modified.
func (s Series) Merge(newer Series) Series {
	merged := make(Series, 0, len(s)+len(newer))
	merged = append(merged, s...)
	merged = append(merged, newer...)
	merged.Sort()

	// Walk backwards so the later-appended bar wins a timestamp collision.
	seen := make(map[int64]struct{}, len(merged))
	keep := make([]bool, len(merged))
	for i := len(merged) - 1; i >= 0; i-- {
		ts := merged[i].Time.UnixNano()
		if _, dup := seen[ts]; dup {
			continue
		}
		seen[ts] = struct{}{}
		keep[i] = true
	}

	out := make(Series, 0, len(seen))
	for i, b := range merged {
		if keep[i] {
			out = append(out, b)
		}
	}
	return out
}

// TrimBefore returns the suffix of s whose bars are at or after cutoff.
// The series must already be sorted.
func (s Series) TrimBefore(cutoff time.Time) Series {
	i := sort.Search(len(s), func(i int) bool { return !s[i].Time.Before(cutoff) })
	return s[i:]
}
