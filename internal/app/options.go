package app

import (
	"github.com/pitchsix/cragrank/internal/domain/score"
	"github.com/pitchsix/cragrank/pkg/logger"
)

// Option applies a configuration option to the Service.
type Option func(*Service)

// WithInputs sets the routes and ticks input paths.
func WithInputs(routesPath, ticksPath string) Option {
	return func(s *Service) {
		s.routesPath = routesPath
		s.ticksPath = ticksPath
	}
}

// WithOutputs sets the climber and route rating output paths.
func WithOutputs(climberPath, routePath string) Option {
	return func(s *Service) {
		s.climberOut = climberPath
		s.routeOut = routePath
	}
}

// WithScoreTable sets the lead-style score table.
func WithScoreTable(t score.Table) Option {
	return func(s *Service) { s.table = t }
}

// WithTau sets the Glicko-2 volatility change constraint.
func WithTau(tau float64) Option {
	return func(s *Service) {
		if tau > 0 {
			s.tau = tau
		}
	}
}

// WithLeadOnly toggles the Lead-mode eligibility requirement.
func WithLeadOnly(v bool) Option {
	return func(s *Service) { s.leadOnly = v }
}

// WithFallersOnly restricts the population to climbers with at least
// one Fell/Hung tick.
func WithFallersOnly(v bool) Option {
	return func(s *Service) { s.fallersOnly = v }
}

// WithDedupe suppresses exact duplicate tick rows at ingest.
func WithDedupe(v bool) Option {
	return func(s *Service) { s.dedupe = v }
}

// WithLogger sets a custom logger for the service.
func WithLogger(l logger.Logger) Option {
	return func(s *Service) {
		if l != nil {
			s.logger = l
		}
	}
}
