package main

import (
	"context"
	"flag"
	"net/http"
	"os"
	"os/signal"
	"slices"
	"syscall"
	"time"

	"github.com/google/uuid"

	"github.com/pitchsix/cragrank/internal/adapters/fetch"
	"github.com/pitchsix/cragrank/internal/adapters/ingest"
	app "github.com/pitchsix/cragrank/internal/app"
	"github.com/pitchsix/cragrank/internal/config"
	"github.com/pitchsix/cragrank/internal/domain/score"
	"github.com/pitchsix/cragrank/pkg/logger"
	"github.com/pitchsix/cragrank/pkg/metrics"
)

const metricsReadHeaderTimeout = 5 * time.Second

func main() {
	fetchMode := flag.Bool("fetch", false, "fetch source data instead of computing ratings")
	flag.Parse()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Config first; logging errors go to stderr until the logger is up.
	cfg, err := config.Load(ctx)
	if err != nil {
		os.Stderr.WriteString("failed to load config: " + err.Error() + "\n")
		os.Exit(1)
	}

	logOpts := []logger.Option{logger.WithLevelString(cfg.LogLevel)}
	if cfg.LogFile != "" {
		logOpts = append(logOpts, logger.WithRotatingFile(cfg.LogFile))
	}
	if err := logger.Init(logOpts...); err != nil {
		os.Stderr.WriteString("failed to initialize logging: " + err.Error() + "\n")
		os.Exit(1)
	}

	log := logger.Get().Named("cragrank")
	runID := uuid.NewString()
	log.Info(ctx, "starting run",
		logger.String("runID", runID),
		logger.String("scoreVariant", cfg.ScoreVariant),
	)

	if cfg.MetricsAddr != "" {
		srv := &http.Server{
			Addr:              cfg.MetricsAddr,
			Handler:           metrics.Handler(),
			ReadHeaderTimeout: metricsReadHeaderTimeout,
		}
		go func() {
			if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
				log.Warn(ctx, "metrics server failed", logger.Error(err))
			}
		}()
		defer srv.Close() //nolint:errcheck // best-effort shutdown
	}

	if *fetchMode {
		if err := runFetch(ctx, cfg, log); err != nil {
			log.Error(ctx, "fetch run failed", logger.Error(err))
			os.Exit(1)
		}
		return
	}

	table := score.NewTable()
	if cfg.ScoreVariant == config.VariantStrict {
		table = score.NewTable(score.WithStrictVariant())
	}

	svc := app.New(
		app.WithInputs(cfg.RoutesPath, cfg.TicksPath),
		app.WithOutputs(cfg.ClimberRatingsPath, cfg.RouteRatingsPath),
		app.WithScoreTable(table),
		app.WithTau(cfg.Tau),
		app.WithLeadOnly(cfg.LeadOnly),
		app.WithFallersOnly(cfg.FallersOnly),
		app.WithDedupe(cfg.DedupeTicks),
		app.WithLogger(log.Named("pipeline")),
	)
	if err := svc.Run(ctx); err != nil {
		log.Error(ctx, "rating run failed", logger.Error(err))
		os.Exit(1)
	}
	log.Info(ctx, "run complete", logger.String("runID", runID))
}

// runFetch pulls ticks for the configured users plus metadata for
// every route they touched, writing both as the pipeline's NDJSON
// inputs.
func runFetch(ctx context.Context, cfg *config.Config, log logger.Logger) error {
	client := fetch.NewClient(
		fetch.WithBaseURL(cfg.FetchBaseURL),
		fetch.WithPageSize(cfg.FetchPageSize),
		fetch.WithRateLimit(cfg.FetchRateRPS),
		fetch.WithWorkerCount(cfg.FetchWorkers),
		fetch.WithLogger(log.Named("fetch")),
	)

	ticks := client.AllTicks(ctx, cfg.FetchUserIDs)
	log.Info(ctx, "ticks fetched",
		logger.Int("users", len(cfg.FetchUserIDs)),
		logger.Int("ticks", len(ticks)),
	)

	seen := make(map[int64]struct{})
	var routeIDs []int64
	for _, t := range ticks {
		if _, ok := seen[t.RouteID]; !ok {
			seen[t.RouteID] = struct{}{}
			routeIDs = append(routeIDs, t.RouteID)
		}
	}
	slices.Sort(routeIDs)

	routes, err := client.Routes(ctx, routeIDs)
	if err != nil {
		return err
	}
	log.Info(ctx, "routes fetched", logger.Int("routes", len(routes)))

	if err := ingest.WriteNDJSON(cfg.TicksPath, ticks); err != nil {
		return err
	}
	if err := ingest.WriteNDJSON(cfg.RoutesPath, routes); err != nil {
		return err
	}
	return nil
}
