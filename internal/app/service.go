// Package app wires the rating pipeline end to end: ingestion,
// filtering, batching, rating, and reporting.
package app

import (
	"cmp"
	"context"
	"fmt"
	"math"
	"slices"

	"github.com/pitchsix/cragrank/internal/adapters/ingest"
	"github.com/pitchsix/cragrank/internal/domain/batch"
	"github.com/pitchsix/cragrank/internal/domain/filter"
	"github.com/pitchsix/cragrank/internal/domain/glicko"
	"github.com/pitchsix/cragrank/internal/domain/model"
	"github.com/pitchsix/cragrank/internal/domain/rating"
	"github.com/pitchsix/cragrank/internal/domain/score"
	"github.com/pitchsix/cragrank/internal/domain/stats"
	"github.com/pitchsix/cragrank/pkg/logger"
	"github.com/pitchsix/cragrank/pkg/metrics"
)

// Service runs one full rating pass over the input files. Each run
// recomputes from scratch; no state survives between runs.
type Service struct {
	routesPath string
	ticksPath  string
	climberOut string
	routeOut   string

	table       score.Table
	tau         float64
	leadOnly    bool
	fallersOnly bool
	dedupe      bool

	logger logger.Logger
}

// New constructs a Service with default configuration: standard score
// table, lead-only eligibility, default tau.
func New(opts ...Option) *Service {
	s := &Service{
		table:    score.NewTable(),
		tau:      glicko.DefaultTau,
		leadOnly: true,
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.logger == nil {
		s.logger = logger.Get().Named("pipeline")
	}
	return s
}

// Run executes the pipeline: read inputs, filter, batch, rate, report.
func (s *Service) Run(ctx context.Context) error {
	routes, err := ingest.ReadRoutes(ctx, s.routesPath)
	if err != nil {
		return fmt.Errorf("load routes: %w", err)
	}
	routeByID := make(map[int64]model.Route, len(routes))
	for _, r := range routes {
		routeByID[r.ID] = r
	}

	var tickOpts []ingest.TickOption
	if s.dedupe {
		tickOpts = append(tickOpts, ingest.WithDedupe())
	}
	ticks, err := ingest.ReadTicks(ctx, s.ticksPath, tickOpts...)
	if err != nil {
		return fmt.Errorf("load ticks: %w", err)
	}
	s.logger.Info(ctx, "inputs loaded",
		logger.Int("routes", len(routes)),
		logger.Int("ticks", len(ticks)),
	)

	// Pass 1 builds the complete per-climber index; pass 2 filters
	// against it.
	ix := filter.NewIndex(ticks)
	var fopts []filter.Option
	if s.leadOnly {
		fopts = append(fopts, filter.WithLeadOnly())
	}
	if s.fallersOnly {
		fopts = append(fopts, filter.WithFallersOnly())
	}
	eligible, drops := ix.Eligible(ticks, fopts...)
	metrics.RecordTicksDropped("no_climber", drops.NoClimber)
	metrics.RecordTicksDropped("no_style", drops.NoStyle)
	metrics.RecordTicksDropped("not_lead", drops.NotLead)
	metrics.RecordTicksDropped("not_faller", drops.NotFaller)

	// Unratable styles are removed before date grouping so they can
	// never force a batch boundary.
	ratable := make([]model.Tick, 0, len(eligible))
	for _, t := range eligible {
		if _, ok := s.table.Score(t.LeadStyle); ok {
			ratable = append(ratable, t)
		}
	}
	metrics.RecordTicksDropped("unratable", len(eligible)-len(ratable))
	s.logger.Info(ctx, "eligibility filtering done",
		logger.Int("eligible", len(eligible)),
		logger.Int("ratable", len(ratable)),
		logger.Int("dropped", drops.Total()),
	)

	batches := batch.Partition(ratable)

	engine := rating.NewEngine[int64](rating.WithTau[int64](s.tau))
	for _, b := range batches {
		comparisons := make([]rating.Comparison[int64], 0, len(b.Ticks))
		for _, t := range b.Ticks {
			outcome, _ := s.table.Score(t.LeadStyle)
			comparisons = append(comparisons, rating.Comparison[int64]{
				Climber: t.User.ID,
				Route:   t.RouteID,
				Score:   outcome,
			})
		}
		engine.ApplyBatch(comparisons)
		metrics.RecordBatchApplied(len(comparisons))
		metrics.RecordComparisons(len(comparisons))
	}

	climberStates := engine.Climbers()
	routeStates := engine.Routes()
	metrics.UpdatePopulations(len(climberStates), len(routeStates))
	s.logger.Info(ctx, "rating engine done",
		logger.Int("batches", len(batches)),
		logger.Int("climbers", len(climberStates)),
		logger.Int("routes", len(routeStates)),
	)

	if err := ingest.WriteRatings(s.climberOut, climberReport(climberStates, ix)); err != nil {
		return fmt.Errorf("write climber ratings: %w", err)
	}
	if err := ingest.WriteRatings(s.routeOut, routeReport(routeStates, routeByID)); err != nil {
		return fmt.Errorf("write route ratings: %w", err)
	}

	summary := stats.Summarize(ix)
	s.logger.Info(ctx, "fall ratio summary",
		logger.Int("climbers", summary.Climbers),
		logger.Float64("meanRatio", summary.MeanRatio),
		logger.Any("histogram", summary.Histogram),
	)
	return nil
}

// climberReport joins display names onto the final climber states and
// sorts by descending rating, ties by ascending id.
func climberReport(states map[int64]glicko.Evaluation, ix *filter.Index) []model.ClimberRating {
	out := make([]model.ClimberRating, 0, len(states))
	for id, ev := range states {
		out = append(out, model.ClimberRating{
			ID:       id,
			UserName: ix.Name(id),
			Rating:   round(ev.Rating),
			RD:       round(ev.Deviation),
			Vol:      ev.Volatility,
		})
	}
	slices.SortFunc(out, func(a, b model.ClimberRating) int {
		if a.Rating != b.Rating {
			return cmp.Compare(b.Rating, a.Rating)
		}
		return cmp.Compare(a.ID, b.ID)
	})
	return out
}

// routeReport joins route metadata onto the final route states. An
// unknown route id simply omits the metadata.
func routeReport(states map[int64]glicko.Evaluation, routeByID map[int64]model.Route) []model.RouteRating {
	out := make([]model.RouteRating, 0, len(states))
	for id, ev := range states {
		rec := model.RouteRating{
			ID:     id,
			Rating: round(ev.Rating),
			RD:     round(ev.Deviation),
			Vol:    ev.Volatility,
		}
		if r, ok := routeByID[id]; ok {
			rec.RouteInfo = &r
		}
		out = append(out, rec)
	}
	slices.SortFunc(out, func(a, b model.RouteRating) int {
		if a.Rating != b.Rating {
			return cmp.Compare(b.Rating, a.Rating)
		}
		return cmp.Compare(a.ID, b.ID)
	})
	return out
}

func round(v float64) int { return int(math.Round(v)) }
