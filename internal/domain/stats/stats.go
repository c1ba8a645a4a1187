// Package stats reports fall/hang ratios across the climber population.
package stats

import (
	"github.com/pitchsix/cragrank/internal/domain/filter"
	"github.com/pitchsix/cragrank/internal/domain/score"
)

// Buckets is the number of histogram buckets over the [0,1] ratio
// range; a ratio of exactly 1.0 lands in the last bucket.
const Buckets = 10

// Summary describes how often the population falls or hangs.
type Summary struct {
	Climbers  int
	MeanRatio float64
	Histogram [Buckets]int
}

// Ratio returns a climber's fall ratio: Fell/Hung ticks over all ticks
// carrying a lead-style label. The second return is false when the
// climber has no such ticks.
func Ratio(ix *filter.Index, id int64) (float64, bool) {
	var falls, styled int
	for _, t := range ix.Ticks(id) {
		if t.LeadStyle == "" {
			continue
		}
		styled++
		if t.LeadStyle == score.FellHung {
			falls++
		}
	}
	if styled == 0 {
		return 0, false
	}
	return float64(falls) / float64(styled), true
}

// Summarize computes fall ratios for every climber in the index and
// buckets them into a fixed histogram. Climbers with no styled ticks
// are excluded.
func Summarize(ix *filter.Index) Summary {
	var s Summary
	var total float64
	for _, id := range ix.IDs() {
		r, ok := Ratio(ix, id)
		if !ok {
			continue
		}
		s.Climbers++
		total += r
		bucket := int(r * Buckets)
		if bucket == Buckets {
			bucket = Buckets - 1
		}
		s.Histogram[bucket]++
	}
	if s.Climbers > 0 {
		s.MeanRatio = total / float64(s.Climbers)
	}
	return s
}
