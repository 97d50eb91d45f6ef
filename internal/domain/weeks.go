package domain

import (
	"fmt"
	"sort"
	"time"

	"github.com/montanaflynn/stats"
)

// WeekBuckets maps an ISO week key ("2024-W07") to a commit count.
type WeekBuckets map[string]int

// WeekKey returns the ISO-8601 week key of t after converting it to UTC.
// Dates early in January may belong to the last week of the previous year.
func WeekKey(t time.Time) string {
	year, week := t.UTC().ISOWeek()
	return fmt.Sprintf("%d-W%02d", year, week)
}

// Add counts one commit authored at t.
func (w WeekBuckets) Add(t time.Time) {
	w[WeekKey(t)]++
}

// SortedKeys returns the week keys in ascending order.
// Keys are fixed-width, so a lexicographic sort is chronological.
func (w WeekBuckets) SortedKeys() []string {
	keys := make([]string, 0, len(w))
	for k := range w {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Total returns the number of commits across all weeks.
func (w WeekBuckets) Total() int {
	total := 0
	for _, n := range w {
		total += n
	}
	return total
}

// WeekSummary describes the distribution of commits over active weeks.
type WeekSummary struct {
	ActiveWeeks  int
	Mean         float64
	Median       float64
	BusiestWeek  string
	BusiestCount int
}

// SummarizeWeeks computes statistics over the weeks that have at least one commit.
// It returns an error for an empty map.
func SummarizeWeeks(w WeekBuckets) (WeekSummary, error) {
	if len(w) == 0 {
		return WeekSummary{}, stats.EmptyInputErr
	}

	data := make(stats.Float64Data, 0, len(w))
	summary := WeekSummary{ActiveWeeks: len(w)}
	for _, key := range w.SortedKeys() {
		n := w[key]
		data = append(data, float64(n))
		// First week wins on ties.
		if n > summary.BusiestCount {
			summary.BusiestWeek, summary.BusiestCount = key, n
		}
	}

	var err error
	if summary.Mean, err = stats.Mean(data); err != nil {
		return WeekSummary{}, fmt.Errorf("failed to compute mean: %w", err)
	}
	if summary.Median, err = stats.Median(data); err != nil {
		return WeekSummary{}, fmt.Errorf("failed to compute median: %w", err)
	}
	return summary, nil
}

// CommitActivity is everything the commit section of a report shows.
type CommitActivity struct {
	Weeks WeekBuckets
	// Summary is nil when no commit was seen.
	Summary *WeekSummary
	// TotalCommits is the size of the default branch history, when known.
	TotalCommits      int
	TotalCommitsKnown bool
	// Truncated is set when the history could not be read to the end.
	Truncated error
}
