// Package stats normalizes the user statistics summary and feeds the
// dashboard charts.
package stats

import (
	"context"
	"fmt"

	"github.com/dojoterm-dev/dojoterm/internal/api"
	"github.com/dojoterm-dev/dojoterm/internal/catalog"
	"github.com/dojoterm-dev/dojoterm/internal/chart"
)

// Summary is the normalized statistics summary: counts are clamped to be
// non-negative and missing difficulty keys read as zero.
type Summary struct {
	Passed     int
	Failed     int
	Difficulty map[catalog.Difficulty]int
}

// Normalize converts the wire summary into a Summary.
func Normalize(raw *api.StatsSummary) Summary {
	s := Summary{
		Passed:     clamp(raw.Passed),
		Failed:     clamp(raw.Failed),
		Difficulty: make(map[catalog.Difficulty]int, len(catalog.Difficulties)),
	}
	for label, count := range raw.DifficultyStats {
		d, err := catalog.ParseDifficulty(label)
		if err != nil {
			continue // labels outside the closed enumeration are dropped
		}
		s.Difficulty[d] = clamp(count)
	}
	return s
}

func clamp(n int) int {
	if n < 0 {
		return 0
	}
	return n
}

// AggregateSeries returns [passed, failed].
func (s Summary) AggregateSeries() [2]int {
	return [2]int{s.Passed, s.Failed}
}

// DifficultySeries returns [Easy, Medium, Hard], zero-defaulted.
func (s Summary) DifficultySeries() [3]int {
	var series [3]int
	for i, d := range catalog.Difficulties {
		series[i] = s.Difficulty[d]
	}
	return series
}

// Fetcher fetches the raw statistics summary.
type Fetcher interface {
	UserStats(ctx context.Context) (*api.StatsSummary, error)
}

// Chart colors, matching the web dashboard palette.
const (
	colorPassed = "#10B981"
	colorFailed = "#EF4444"
	colorMedium = "#F59E0B"
)

// Aggregator owns the statistics summary and exactly one chart handle per
// dashboard panel. Refresh recreates both handles from scratch, closing
// the prior ones first.
type Aggregator struct {
	summary    *Summary
	aggregate  *chart.Chart
	difficulty *chart.Chart
}

// NewAggregator creates an Aggregator with no data loaded.
func NewAggregator() *Aggregator {
	return &Aggregator{}
}

// Refresh fetches the summary and rebuilds both charts. On failure the
// previous summary and charts are left untouched and the error is
// returned for the caller to log.
func (a *Aggregator) Refresh(ctx context.Context, fetcher Fetcher) error {
	raw, err := fetcher.UserStats(ctx)
	if err != nil {
		return fmt.Errorf("refreshing stats: %w", err)
	}

	summary := Normalize(raw)
	a.summary = &summary

	// Prior handles must be released before binding new ones to the
	// same panels.
	if a.aggregate != nil {
		a.aggregate.Close()
	}
	if a.difficulty != nil {
		a.difficulty.Close()
	}

	agg := summary.AggregateSeries()
	a.aggregate = chart.New("Problems Solved", []chart.Category{
		{Label: "Passed", Value: agg[0], Color: colorPassed},
		{Label: "Failed", Value: agg[1], Color: colorFailed},
	})

	diff := summary.DifficultySeries()
	a.difficulty = chart.New("Problems by Difficulty", []chart.Category{
		{Label: string(catalog.Easy), Value: diff[0], Color: colorPassed},
		{Label: string(catalog.Medium), Value: diff[1], Color: colorMedium},
		{Label: string(catalog.Hard), Value: diff[2], Color: colorFailed},
	})

	return nil
}

// Summary returns the last successfully loaded summary, if any.
func (a *Aggregator) Summary() (Summary, bool) {
	if a.summary == nil {
		return Summary{}, false
	}
	return *a.summary, true
}

// AggregateChart returns the pass/fail chart handle, nil before the
// first successful refresh.
func (a *Aggregator) AggregateChart() *chart.Chart {
	return a.aggregate
}

// DifficultyChart returns the per-difficulty chart handle, nil before
// the first successful refresh.
func (a *Aggregator) DifficultyChart() *chart.Chart {
	return a.difficulty
}
