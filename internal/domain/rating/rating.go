// Package rating tracks two independent populations of Glicko-2 state,
// climbers and routes, and applies same-day comparison batches to them.
//
// Every comparison is climber-versus-route; entities within one
// population never compete directly. Batches must arrive in ascending
// calendar-date order, and the engine is deliberately not safe for
// concurrent use: correctness of the deviation and volatility decay
// depends on strictly sequential application.
package rating

import "github.com/pitchsix/cragrank/internal/domain/glicko"

// Comparison is one climber-versus-route outcome. Score is the
// climber's result in [0,1]; the route receives the complement.
type Comparison[K comparable] struct {
	Climber K
	Route   K
	Score   float64
}

// Engine holds the mutable rating state for both populations.
type Engine[K comparable] struct {
	tau      float64
	climbers map[K]*glicko.Evaluation
	routes   map[K]*glicko.Evaluation
}

// NewEngine creates an engine with empty populations.
func NewEngine[K comparable](opts ...Option[K]) *Engine[K] {
	e := &Engine[K]{
		tau:      glicko.DefaultTau,
		climbers: make(map[K]*glicko.Evaluation),
		routes:   make(map[K]*glicko.Evaluation),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Climber returns the state for a climber id, creating it at the
// standard defaults on first reference.
func (e *Engine[K]) Climber(id K) *glicko.Evaluation {
	return getOrCreate(e.climbers, id)
}

// Route returns the state for a route id, creating it at the standard
// defaults on first reference.
func (e *Engine[K]) Route(id K) *glicko.Evaluation {
	return getOrCreate(e.routes, id)
}

func getOrCreate[K comparable](m map[K]*glicko.Evaluation, id K) *glicko.Evaluation {
	if ev, ok := m[id]; ok {
		return ev
	}
	ev := glicko.NewEvaluation()
	m[id] = &ev
	return &ev
}

// Climbers returns a copy of the climber population.
func (e *Engine[K]) Climbers() map[K]glicko.Evaluation { return snapshot(e.climbers) }

// Routes returns a copy of the route population.
func (e *Engine[K]) Routes() map[K]glicko.Evaluation { return snapshot(e.routes) }

func snapshot[K comparable](m map[K]*glicko.Evaluation) map[K]glicko.Evaluation {
	out := make(map[K]glicko.Evaluation, len(m))
	for id, ev := range m {
		out[id] = *ev
	}
	return out
}

// ApplyBatch treats all comparisons as one simultaneous rating period.
// Opponent values are snapshotted before any update, so ordering
// within a batch does not matter and every touched state updates
// exactly once from the full set of its comparisons in the batch.
func (e *Engine[K]) ApplyBatch(comparisons []Comparison[K]) {
	if len(comparisons) == 0 {
		return
	}

	climberStart := make(map[K]glicko.Evaluation)
	routeStart := make(map[K]glicko.Evaluation)
	for _, c := range comparisons {
		if _, ok := climberStart[c.Climber]; !ok {
			climberStart[c.Climber] = *e.Climber(c.Climber)
		}
		if _, ok := routeStart[c.Route]; !ok {
			routeStart[c.Route] = *e.Route(c.Route)
		}
	}

	climberOutcomes := make(map[K][]glicko.Outcome)
	routeOutcomes := make(map[K][]glicko.Outcome)
	for _, c := range comparisons {
		cs := climberStart[c.Climber]
		rs := routeStart[c.Route]
		climberOutcomes[c.Climber] = append(climberOutcomes[c.Climber],
			glicko.NewOutcome(cs.Rating, rs, c.Score))
		routeOutcomes[c.Route] = append(routeOutcomes[c.Route],
			glicko.NewOutcome(rs.Rating, cs, 1-c.Score))
	}

	for id, outcomes := range climberOutcomes {
		*e.climbers[id] = glicko.Update(climberStart[id], outcomes, e.tau)
	}
	for id, outcomes := range routeOutcomes {
		*e.routes[id] = glicko.Update(routeStart[id], outcomes, e.tau)
	}
}
