// Package config defines process configuration and loading.
//
// Conventions follow the rest of the repo: defaults come from New,
// Load layers an optional YAML file and CRAGRANK_-prefixed environment
// variables on top, and validation happens once at load time.
package config

// Score variant names accepted by score_variant.
const (
	VariantStandard = "standard"
	VariantStrict   = "strict"
)

// Config contains process configuration.
type Config struct {
	// LogLevel controls verbosity: debug, info, warn, error.
	LogLevel string `koanf:"log_level"`

	// LogFile, when set, sends logs to a size-rotated file.
	LogFile string `koanf:"log_file"`

	// RoutesPath and TicksPath locate the NDJSON inputs.
	RoutesPath string `koanf:"routes_path"`
	TicksPath  string `koanf:"ticks_path"`

	// ClimberRatingsPath and RouteRatingsPath locate the outputs.
	ClimberRatingsPath string `koanf:"climber_ratings_path"`
	RouteRatingsPath   string `koanf:"route_ratings_path"`

	// ScoreVariant selects the lead-style score table: standard
	// (Flash 0.8 / Redpoint 0.6) or strict (0.9 / 0.7). The two are
	// not comparable rating systems.
	ScoreVariant string `koanf:"score_variant"`

	// LeadOnly restricts eligibility to ticks with ascent mode "Lead".
	LeadOnly bool `koanf:"lead_only"`

	// FallersOnly restricts the population to climbers with at least
	// one Fell/Hung tick anywhere in the log.
	FallersOnly bool `koanf:"fallers_only"`

	// DedupeTicks suppresses exact duplicate tick rows at ingest.
	DedupeTicks bool `koanf:"dedupe_ticks"`

	// Tau is the Glicko-2 volatility change constraint.
	Tau float64 `koanf:"tau"`

	// MetricsAddr, when set, serves /metrics on that address.
	MetricsAddr string `koanf:"metrics_addr"`

	// Fetcher settings, used only in fetch mode.
	FetchBaseURL  string  `koanf:"fetch_base_url"`
	FetchPageSize int     `koanf:"fetch_page_size"`
	FetchRateRPS  float64 `koanf:"fetch_rate_rps"`
	FetchWorkers  int     `koanf:"fetch_workers"`
	FetchUserIDs  []int64 `koanf:"fetch_user_ids"`
}

// New returns the default configuration.
func New() *Config {
	return &Config{
		LogLevel:           "info",
		RoutesPath:         "data/routes.jsonl",
		TicksPath:          "data/ticks.jsonl",
		ClimberRatingsPath: "out/climber-ratings.json",
		RouteRatingsPath:   "out/route-ratings.json",
		ScoreVariant:       VariantStandard,
		LeadOnly:           true,
		FallersOnly:        false,
		DedupeTicks:        false,
		Tau:                0.5,
		FetchPageSize:      200,
		FetchRateRPS:       2,
		FetchWorkers:       4,
	}
}
