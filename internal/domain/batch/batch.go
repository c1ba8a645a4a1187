// Package batch orders eligible ticks chronologically and groups them
// into same-day rating periods.
package batch

import (
	"slices"
	"strings"

	"github.com/pitchsix/cragrank/internal/domain/model"
)

// A Batch holds the ticks of one calendar date. Ticks keep their
// within-day log order; true sub-day ordering is not tracked.
type Batch struct {
	Date  string
	Ticks []model.Tick
}

// Partition stable-sorts ticks by full timestamp string ascending and
// groups consecutive runs sharing a calendar-date token. Batches come
// out in ascending date order. Callers must remove unratable ticks
// first so a skipped tick can never force a spurious batch boundary.
func Partition(ticks []model.Tick) []Batch {
	if len(ticks) == 0 {
		return nil
	}

	sorted := make([]model.Tick, len(ticks))
	copy(sorted, ticks)
	slices.SortStableFunc(sorted, func(a, b model.Tick) int {
		return strings.Compare(a.Date, b.Date)
	})

	var out []Batch
	current := Batch{Date: sorted[0].DateToken()}
	for _, t := range sorted {
		if tok := t.DateToken(); tok != current.Date {
			out = append(out, current)
			current = Batch{Date: tok}
		}
		current.Ticks = append(current.Ticks, t)
	}
	return append(out, current)
}
