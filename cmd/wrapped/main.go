package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/jgilmore97/FantasyFootballWrapped/internal/adapters/report"
	"github.com/jgilmore97/FantasyFootballWrapped/internal/adapters/snapshot"
	app "github.com/jgilmore97/FantasyFootballWrapped/internal/app"
	"github.com/jgilmore97/FantasyFootballWrapped/internal/config"
	"github.com/jgilmore97/FantasyFootballWrapped/internal/domain/diag"
	"github.com/jgilmore97/FantasyFootballWrapped/internal/domain/model"
	"github.com/jgilmore97/FantasyFootballWrapped/pkg/logger"
	"github.com/jgilmore97/FantasyFootballWrapped/pkg/metrics"
)

// HTTP server timeout constants for the optional metrics endpoint.
const (
	readTimeout       = 10 * time.Second
	writeTimeout      = 10 * time.Second
	readHeaderTimeout = 5 * time.Second
)

func main() {
	os.Exit(run())
}

func run() int {
	if err := logger.Init(); err != nil {
		os.Stderr.WriteString("failed to initialize logging: " + err.Error() + "\n")
		return 1
	}
	log := logger.Get()

	// Root context with cancel on SIGINT/SIGTERM.
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Load configuration (defaults -> optional file -> env).
	cfg, err := config.Load(ctx)
	if err != nil {
		os.Stderr.WriteString("failed to load config: " + err.Error() + "\n")
		return 1
	}

	// Apply configured log level (fallback to info on invalid input).
	if err := logger.SetLevelString(cfg.LogLevel); err != nil {
		log.Warn(ctx, "invalid log_level; falling back to info",
			logger.String("log_level", cfg.LogLevel), logger.Error(err))
		_ = logger.SetLevelString("info")
	}

	// Optional Prometheus endpoint for long or repeated runs.
	if cfg.MetricsAddr != "" {
		srv := &http.Server{
			Addr:              cfg.MetricsAddr,
			Handler:           metricsMux(),
			ReadTimeout:       readTimeout,
			WriteTimeout:      writeTimeout,
			ReadHeaderTimeout: readHeaderTimeout,
		}
		go func() {
			log.Info(ctx, "metrics endpoint up", logger.String("addr", cfg.MetricsAddr))
			if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
				log.Error(ctx, "metrics endpoint failed", logger.Error(err))
			}
		}()
		defer srv.Close()
	}

	diags := diag.New()

	loader := snapshot.NewLoader(cfg.SnapshotDir,
		snapshot.WithYears(cfg.Years),
		snapshot.WithLogger(log),
	)
	snap, err := loader.Load(ctx, diags)
	if err != nil {
		log.Error(ctx, "snapshot load failed", logger.Error(err))
		return 1
	}

	svc := app.New(
		app.WithLogger(log),
		app.WithWorkerCount(cfg.WorkerCount),
		app.WithQueueSize(cfg.TaskQueueSize),
		app.WithThresholds(positionThresholds(cfg.Thresholds)),
		app.WithInjuryStatuses(injuryStatuses(cfg.InjuryStatuses)),
		app.WithCloseGameMargin(cfg.CloseGameMargin),
		app.WithLateRoundCutoff(cfg.LateRoundCutoff),
		app.WithTopN(cfg.TopN),
	)

	results, err := svc.Run(ctx, snap)
	if err != nil {
		log.Error(ctx, "run failed", logger.Error(err))
		return 1
	}
	// Loader warnings (unreadable seasons) merge into the artifact.
	results.Warnings = append(diags.Warnings(), results.Warnings...)

	writer := report.NewWriter(cfg.OutputPath, report.WithLogger(log))
	if err := writer.Write(ctx, results); err != nil {
		log.Error(ctx, "report write failed", logger.Error(err))
		return 1
	}

	log.Info(ctx, "done",
		logger.String("output", cfg.OutputPath),
		logger.Int("warnings", len(results.Warnings)),
	)
	return 0
}

func metricsMux() *http.ServeMux {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(metrics.GetRegistry(), promhttp.HandlerOpts{}))
	return mux
}

// positionThresholds converts config keys to model positions. Unknown
// position names pass through as-is and simply never match a player.
func positionThresholds(in map[string]int) map[model.Position]int {
	if len(in) == 0 {
		return nil
	}
	out := make(map[model.Position]int, len(in))
	for pos, rank := range in {
		out[model.Position(strings.ToUpper(pos))] = rank
	}
	return out
}

func injuryStatuses(in []string) map[model.Status]bool {
	if len(in) == 0 {
		return nil
	}
	out := make(map[model.Status]bool, len(in))
	for _, s := range in {
		out[model.Status(strings.ToUpper(s))] = true
	}
	return out
}
