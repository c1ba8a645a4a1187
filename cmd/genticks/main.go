// Command genticks writes a synthetic route file and tick log in the
// NDJSON format the pipeline ingests.
package main

import (
	"context"
	"flag"
	"os"

	"github.com/pitchsix/cragrank/internal/adapters/ingest"
	"github.com/pitchsix/cragrank/internal/gen"
	"github.com/pitchsix/cragrank/pkg/logger"
)

func main() {
	climbers := flag.Int("climbers", 0, "number of climbers (0 = default)")
	routes := flag.Int("routes", 0, "number of routes (0 = default)")
	days := flag.Int("days", 0, "number of calendar days (0 = default)")
	perDay := flag.Int("ticks-per-day", 0, "ticks per day (0 = default)")
	seed := flag.Int64("seed", 42, "random seed")
	routesOut := flag.String("routes-out", "data/routes.jsonl", "routes output path")
	ticksOut := flag.String("ticks-out", "data/ticks.jsonl", "ticks output path")
	flag.Parse()

	if err := logger.Init(); err != nil {
		os.Stderr.WriteString("failed to initialize logging: " + err.Error() + "\n")
		os.Exit(1)
	}
	ctx := context.Background()
	log := logger.Get().Named("genticks")

	cfg := gen.Config{
		Climbers:    *climbers,
		Routes:      *routes,
		Days:        *days,
		TicksPerDay: *perDay,
		Seed:        *seed,
	}

	routeRecords := gen.Routes(cfg)
	tickRecords := gen.Ticks(cfg)

	if err := ingest.WriteNDJSON(*routesOut, routeRecords); err != nil {
		log.Fatal(ctx, "write routes", logger.Error(err))
	}
	if err := ingest.WriteNDJSON(*ticksOut, tickRecords); err != nil {
		log.Fatal(ctx, "write ticks", logger.Error(err))
	}

	log.Info(ctx, "synthetic data written",
		logger.Int("routes", len(routeRecords)),
		logger.Int("ticks", len(tickRecords)),
		logger.String("routesOut", *routesOut),
		logger.String("ticksOut", *ticksOut),
	)
}
