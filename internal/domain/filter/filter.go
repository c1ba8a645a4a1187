// Package filter selects rating-eligible ticks from the raw log.
//
// Filtering is two-pass: NewIndex first builds the complete per-climber
// view of the log, then Eligible makes every decision against that
// finished index. Population predicates (such as fallers-only) never
// see a partially built index.
package filter

import (
	"slices"

	"github.com/pitchsix/cragrank/internal/domain/model"
	"github.com/pitchsix/cragrank/internal/domain/score"
)

// leadStyle is the ascent mode required by the strict eligibility rule.
const leadStyle = "Lead"

// Index is the per-climber view of the full tick log.
type Index struct {
	byClimber map[int64][]model.Tick
	names     map[int64]string
}

// NewIndex scans the full log once and groups ticks by climber id.
// Ticks without a user are ignored. A climber's display name is taken
// from the first tick that mentions the id; later names for the same
// id are data-entry noise and are dropped.
func NewIndex(ticks []model.Tick) *Index {
	ix := &Index{
		byClimber: make(map[int64][]model.Tick),
		names:     make(map[int64]string),
	}
	for _, t := range ticks {
		if t.User == nil {
			continue
		}
		id := t.User.ID
		ix.byClimber[id] = append(ix.byClimber[id], t)
		if _, ok := ix.names[id]; !ok {
			ix.names[id] = t.User.Name
		}
	}
	return ix
}

// Name returns the display name recorded for a climber id.
func (ix *Index) Name(id int64) string { return ix.names[id] }

// Ticks returns every tick logged by a climber, in log order.
func (ix *Index) Ticks(id int64) []model.Tick { return ix.byClimber[id] }

// Climbers returns the number of distinct climbers in the log.
func (ix *Index) Climbers() int { return len(ix.byClimber) }

// IDs returns all climber ids in ascending order.
func (ix *Index) IDs() []int64 {
	ids := make([]int64, 0, len(ix.byClimber))
	for id := range ix.byClimber {
		ids = append(ids, id)
	}
	slices.Sort(ids)
	return ids
}

// hasFall reports whether a climber has at least one Fell/Hung tick
// anywhere in the full log.
func (ix *Index) hasFall(id int64) bool {
	for _, t := range ix.byClimber[id] {
		if t.LeadStyle == score.FellHung {
			return true
		}
	}
	return false
}

// Drops counts ticks excluded by each eligibility rule. These are
// routine data-cleaning exclusions, not errors.
type Drops struct {
	NoClimber int
	NoStyle   int
	NotLead   int
	NotFaller int
}

// Total returns the number of dropped ticks.
func (d Drops) Total() int {
	return d.NoClimber + d.NoStyle + d.NotLead + d.NotFaller
}

// Eligible returns the rating-eligible subset of ticks in original log
// order, plus a count of drops by reason. A tick is eligible when it
// names a climber and carries a non-empty lead-style label.
// WithLeadOnly additionally requires the ascent mode to be exactly
// "Lead"; WithFallersOnly retains only climbers whose full log
// contains at least one Fell/Hung tick.
func (ix *Index) Eligible(ticks []model.Tick, opts ...Option) ([]model.Tick, Drops) {
	var r rules
	for _, opt := range opts {
		opt(&r)
	}

	var out []model.Tick
	var drops Drops
	for _, t := range ticks {
		switch {
		case t.User == nil:
			drops.NoClimber++
		case t.LeadStyle == "":
			drops.NoStyle++
		case r.leadOnly && t.Style != leadStyle:
			drops.NotLead++
		case r.fallersOnly && !ix.hasFall(t.User.ID):
			drops.NotFaller++
		default:
			out = append(out, t)
		}
	}
	return out, drops
}
