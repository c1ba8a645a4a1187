// Package gen produces synthetic route and tick data for exercising
// the pipeline at scale. Output is deterministic for a given seed.
package gen

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/google/uuid"

	"github.com/pitchsix/cragrank/internal/domain/model"
)

// Config controls the shape of the generated log.
type Config struct {
	Climbers    int
	Routes      int
	Days        int
	TicksPerDay int
	Seed        int64
	Start       time.Time
}

// Defaults for zero-valued Config fields.
const (
	defaultClimbers    = 50
	defaultRoutes      = 200
	defaultDays        = 30
	defaultTicksPerDay = 40
)

var grades = []string{
	"5.8", "5.9", "5.10a", "5.10b", "5.10c", "5.10d",
	"5.11a", "5.11b", "5.11c", "5.11d", "5.12a", "5.12b",
}

// Route id offset keeps generated route ids disjoint from climber ids.
const routeIDBase = 100000

func (c Config) withDefaults() Config {
	if c.Climbers <= 0 {
		c.Climbers = defaultClimbers
	}
	if c.Routes <= 0 {
		c.Routes = defaultRoutes
	}
	if c.Days <= 0 {
		c.Days = defaultDays
	}
	if c.TicksPerDay <= 0 {
		c.TicksPerDay = defaultTicksPerDay
	}
	if c.Start.IsZero() {
		c.Start = time.Date(2023, 3, 1, 0, 0, 0, 0, time.UTC)
	}
	return c
}

// Routes generates the route reference set.
func Routes(cfg Config) []model.Route {
	cfg = cfg.withDefaults()
	rng := rand.New(rand.NewSource(cfg.Seed)) //nolint:gosec // deterministic synthetic data
	out := make([]model.Route, 0, cfg.Routes)
	for i := 0; i < cfg.Routes; i++ {
		out = append(out, model.Route{
			ID:      routeIDBase + int64(i),
			Name:    fmt.Sprintf("Test Route %d", i+1),
			Grade:   grades[rng.Intn(len(grades))],
			Pitches: 1 + rng.Intn(3),
			Types:   []string{"Sport"},
			Area:    "Synthetic Crag",
			Stars:   1 + 3*rng.Float64(),
		})
	}
	return out
}

// Ticks generates a shuffled tick log spanning cfg.Days calendar days.
// Roughly one tick in twenty carries no user and a few carry styles
// the rating pipeline must ignore.
func Ticks(cfg Config) []model.Tick {
	cfg = cfg.withDefaults()
	rng := rand.New(rand.NewSource(cfg.Seed + 1)) //nolint:gosec // deterministic synthetic data

	leadStyles := []string{"Onsight", "Flash", "Redpoint", "Fell/Hung", "Fell/Hung", "Redpoint", "Pinkpoint", ""}
	modes := []string{"Lead", "Lead", "Lead", "Lead", "TR"}

	var out []model.Tick
	for day := 0; day < cfg.Days; day++ {
		date := cfg.Start.AddDate(0, 0, day).Format("2006-01-02")
		for i := 0; i < cfg.TicksPerDay; i++ {
			t := model.Tick{
				RouteID:   routeIDBase + int64(rng.Intn(cfg.Routes)),
				Style:     modes[rng.Intn(len(modes))],
				LeadStyle: leadStyles[rng.Intn(len(leadStyles))],
				Grade:     grades[rng.Intn(len(grades))],
				Date:      fmt.Sprintf("%s,%02d:%02d", date, rng.Intn(24), rng.Intn(60)),
				Pitches:   1,
				Notes:     uuid.NewSHA1(uuid.NameSpaceOID, []byte(fmt.Sprintf("%d-%d", day, i))).String(),
			}
			if rng.Intn(20) != 0 {
				id := 1 + int64(rng.Intn(cfg.Climbers))
				t.User = &model.User{ID: id, Name: fmt.Sprintf("Climber %d", id)}
			}
			out = append(out, t)
		}
	}

	// The real log arrives unordered; shuffle so the pipeline's sort
	// actually does something.
	rng.Shuffle(len(out), func(i, j int) { out[i], out[j] = out[j], out[i] })
	return out
}
