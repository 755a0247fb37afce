// Package jsonfeed extracts region-aligned values from parallel-array
// JSON feeds: one headers array naming regions, several metric arrays of
// the same length holding per-region values.
package jsonfeed

import (
	"fmt"

	"github.com/antzucaro/matchr"
)

// RegionNotFoundError reports a target region absent from the feed's
// headers. Closest is the most similar header, included to flag probable
// region-code typos in caller configuration.
type RegionNotFoundError struct {
	Target  string
	Closest string
}

func (e *RegionNotFoundError) Error() string {
	if e.Closest == "" {
		return fmt.Sprintf("region %q not present in feed headers", e.Target)
	}
	return fmt.Sprintf("region %q not present in feed headers, closest match %q", e.Target, e.Closest)
}

// MisalignedFeedError reports a metric array too short to cover the
// resolved column, meaning the feed itself is internally inconsistent.
type MisalignedFeedError struct {
	Metric string
	Length int
	Column int
}

func (e *MisalignedFeedError) Error() string {
	return fmt.Sprintf("metric %q has %d values, cannot cover column %d", e.Metric, e.Length, e.Column)
}

// Column resolves the index of target within the feed's headers.
func Column(headers []string, target string) (int, error) {
	for i, h := range headers {
		if h == target {
			return i, nil
		}
	}
	return 0, &RegionNotFoundError{Target: target, Closest: closest(headers, target)}
}

func closest(headers []string, target string) string {
	best := ""
	bestScore := 0.0
	for _, h := range headers {
		score := matchr.JaroWinkler(h, target, false)
		if score > bestScore {
			best = h
			bestScore = score
		}
	}
	return best
}

// Aligned picks the column-th element out of every metric array. All
// arrays in a well-formed feed share the headers array's length.
func Aligned(metrics map[string][]string, column int) (map[string]string, error) {
	out := make(map[string]string, len(metrics))
	for name, values := range metrics {
		if column < 0 || column >= len(values) {
			return nil, &MisalignedFeedError{Metric: name, Length: len(values), Column: column}
		}
		out[name] = values[column]
	}
	return out, nil
}
