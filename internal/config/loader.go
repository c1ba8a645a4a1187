package config

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// Load builds a Config by layering defaults, optional file, and env
// vars. Order of precedence (low -> high):
//  1. defaults (New)
//  2. file (YAML) if CRAGRANK_CONFIG is set
//  3. env (prefix CRAGRANK_)
func Load(_ context.Context) (*Config, error) {
	base := New()

	k := koanf.New(".")

	if path := os.Getenv("CRAGRANK_CONFIG"); path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, err
		}
	}

	// Env keys map CRAGRANK_TICKS_PATH -> ticks_path; underscores are
	// preserved to match the koanf tags on the struct.
	envProvider := env.Provider("CRAGRANK_", ".", func(s string) string {
		s = strings.ToLower(s)
		return strings.TrimPrefix(s, "cragrank_")
	})
	if err := k.Load(envProvider, nil); err != nil {
		return nil, err
	}

	cfg := *base
	if err := k.UnmarshalWithConf("", &cfg, koanf.UnmarshalConf{Tag: "koanf"}); err != nil {
		return nil, err
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) validate() error {
	switch c.ScoreVariant {
	case VariantStandard, VariantStrict:
	default:
		return fmt.Errorf("score_variant must be %q or %q, got %q",
			VariantStandard, VariantStrict, c.ScoreVariant)
	}
	if c.Tau <= 0 {
		return fmt.Errorf("tau must be positive, got %v", c.Tau)
	}
	if c.TicksPath == "" || c.RoutesPath == "" {
		return fmt.Errorf("routes_path and ticks_path must not be empty")
	}
	if c.ClimberRatingsPath == "" || c.RouteRatingsPath == "" {
		return fmt.Errorf("climber_ratings_path and route_ratings_path must not be empty")
	}
	return nil
}
