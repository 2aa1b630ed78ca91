// Package service orchestrates a full analytics run: it fans the
// per-season computations out over the compute pool, joins them at a
// barrier, then runs the cross-season engines and composes the awards.
package service

import (
	"context"
	"fmt"
	"runtime"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/jgilmore97/FantasyFootballWrapped/internal/adapters/compute"
	"github.com/jgilmore97/FantasyFootballWrapped/internal/domain/awards"
	"github.com/jgilmore97/FantasyFootballWrapped/internal/domain/diag"
	"github.com/jgilmore97/FantasyFootballWrapped/internal/domain/draftvalue"
	"github.com/jgilmore97/FantasyFootballWrapped/internal/domain/injury"
	"github.com/jgilmore97/FantasyFootballWrapped/internal/domain/model"
	"github.com/jgilmore97/FantasyFootballWrapped/internal/domain/ownership"
	"github.com/jgilmore97/FantasyFootballWrapped/internal/domain/replacement"
	"github.com/jgilmore97/FantasyFootballWrapped/internal/domain/rivalry"
	"github.com/jgilmore97/FantasyFootballWrapped/internal/domain/standings"
	"github.com/jgilmore97/FantasyFootballWrapped/internal/domain/vor"
	"github.com/jgilmore97/FantasyFootballWrapped/pkg/logger"
	"github.com/jgilmore97/FantasyFootballWrapped/pkg/metrics"
)

// Results is the complete artifact of one run.
type Results struct {
	RunID        string                  `json:"run_id"`
	GeneratedAt  time.Time               `json:"generated_at"`
	Years        []int                   `json:"years"`
	Standings    []standings.Tally       `json:"standings"`
	Awards       []awards.Ranking        `json:"awards"`
	Rivalries    []rivalry.PairRecord    `json:"rivalries"`
	TopRivalries []rivalry.TopRivalry    `json:"top_rivalries"`
	Profiles     []rivalry.Profile       `json:"rivalry_profiles"`
	Injuries     []injury.Summary        `json:"injuries"`
	InjuryImpact []injury.Impact         `json:"injury_impact"`
	DraftPicks   []draftvalue.RankedPick `json:"draft_picks"`
	VORLeaders   []vor.PlayerAggregate   `json:"vor_leaders"`
	TopSeasons   []vor.SeasonEntry       `json:"top_seasons"`
	Warnings     []diag.Warning          `json:"warnings"`
}

// Service runs the analytics pipeline over one snapshot.
type Service struct {
	workerCount     int
	queueSize       int
	thresholds      map[model.Position]int
	injuryStatuses  map[model.Status]bool
	closeGameMargin float64
	lateRoundCutoff int
	topN            int

	logger logger.Logger
}

// Option applies a configuration option to the Service.
type Option func(*Service)

// WithWorkerCount sets the number of compute workers.
func WithWorkerCount(count int) Option {
	return func(s *Service) {
		if count > 0 {
			s.workerCount = count
		}
	}
}

// WithQueueSize sets the compute queue capacity.
func WithQueueSize(size int) Option {
	return func(s *Service) {
		if size > 0 {
			s.queueSize = size
		}
	}
}

// WithThresholds overrides the replacement-level rank thresholds.
func WithThresholds(thresholds map[model.Position]int) Option {
	return func(s *Service) {
		if len(thresholds) > 0 {
			s.thresholds = thresholds
		}
	}
}

// WithInjuryStatuses overrides the statuses counted as injury-weeks.
func WithInjuryStatuses(statuses map[model.Status]bool) Option {
	return func(s *Service) {
		if len(statuses) > 0 {
			s.injuryStatuses = statuses
		}
	}
}

// WithCloseGameMargin sets the losing margin under which a loss counts
// as close.
func WithCloseGameMargin(margin float64) Option {
	return func(s *Service) {
		if margin >= 0 {
			s.closeGameMargin = margin
		}
	}
}

// WithLateRoundCutoff sets the first draft round considered late.
func WithLateRoundCutoff(round int) Option {
	return func(s *Service) {
		if round > 0 {
			s.lateRoundCutoff = round
		}
	}
}

// WithTopN caps ranked lists in the results.
func WithTopN(n int) Option {
	return func(s *Service) {
		if n > 0 {
			s.topN = n
		}
	}
}

// WithLogger sets a custom logger for the service.
func WithLogger(log logger.Logger) Option {
	return func(s *Service) {
		if log != nil {
			s.logger = log
		}
	}
}

// New constructs a Service with default configuration.
func New(opts ...Option) *Service {
	s := &Service{
		workerCount:     runtime.NumCPU(),
		queueSize:       256,
		closeGameMargin: 5.0,
		lateRoundCutoff: 12,
		topN:            10,
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.logger == nil {
		s.logger = logger.Get().Named("service")
	}
	return s
}

// Run executes the full pipeline against snap. Per-entity problems
// become warnings in the results; only a broken input contract returns
// an error.
func (s *Service) Run(ctx context.Context, snap *model.Snapshot) (*Results, error) {
	if snap == nil || len(snap.Seasons) == 0 {
		return nil, ErrEmptySnapshot
	}
	for i := range snap.Seasons {
		if len(snap.Seasons[i].Managers) == 0 {
			return nil, fmt.Errorf("%w: year %d", ErrSeasonNoManagers, snap.Seasons[i].Year)
		}
	}

	metrics.RecordRunStarted()
	diags := diag.New()
	runID := uuid.NewString()

	s.logger.Info(ctx, "run started",
		logger.String("run_id", runID),
		logger.Int("seasons", len(snap.Seasons)),
		logger.Int("workers", s.workerCount),
	)

	vorByYear, err := s.computeSeasons(ctx, snap, diags)
	if err != nil {
		return nil, err
	}

	start := time.Now()
	tracker := ownership.NewTracker(snap)
	draftRanking := draftvalue.Rank(snap, vorByYear, tracker, diags)
	metrics.ObserveStageDuration("draft_value", time.Since(start).Seconds())

	// Rivalry, injuries, and standings read the snapshot independently
	// and write disjoint results, so they run side by side.
	start = time.Now()
	var (
		table        *rivalry.Table
		topRivalries []rivalry.TopRivalry
		profiles     []rivalry.Profile
		tallies      []standings.Tally
		injuries     []injury.Summary
		impacts      []injury.Impact
		wg           sync.WaitGroup
	)
	wg.Add(3)
	go func() {
		defer wg.Done()
		var matchups []model.Matchup
		for i := range snap.Seasons {
			matchups = append(matchups, snap.Seasons[i].Matchups...)
		}
		table = rivalry.Build(matchups)
		topRivalries = table.Top(s.topN)
		profiles = table.Profiles(diags)
	}()
	go func() {
		defer wg.Done()
		tallies = standings.Build(snap)
	}()
	go func() {
		defer wg.Done()
		injuries = injury.Tally(snap, injury.WithStatuses(s.injuryStatuses))
		impacts = injury.WeightedImpact(snap, injury.WithStatuses(s.injuryStatuses))
	}()
	wg.Wait()
	metrics.ObserveStageDuration("cross_season", time.Since(start).Seconds())

	start = time.Now()
	aggregates := vor.Aggregate(vorByYear, snap.PlayerName)
	topSeasons := vor.TopSeasons(vorByYear, snap.PlayerName, s.topN)

	rankings := awards.Build(awards.Inputs{
		Tallies:       tallies,
		PuntTotals:    standings.PuntTotals(snap),
		CloseLosses:   standings.CloseLosses(snap, s.closeGameMargin),
		LossPoints:    standings.PointsInLosses(snap),
		BadBeat:       standings.WorstBadBeat(snap),
		Streaks:       standings.Streaks(snap),
		TopSeasons:    topSeasons,
		Aggregates:    aggregates,
		DraftRanking:  draftRanking,
		Injuries:      injuries,
		LateRoundFrom: s.lateRoundCutoff,
		TopN:          s.topN,
		ManagerName:   snap.ManagerName,
	})
	metrics.ObserveStageDuration("awards", time.Since(start).Seconds())

	warnings := diags.Warnings()
	for _, w := range warnings {
		metrics.RecordWarning(string(w.Code))
	}

	s.logger.Info(ctx, "run finished",
		logger.String("run_id", runID),
		logger.Int("awards", len(rankings)),
		logger.Int("warnings", len(warnings)),
	)

	return &Results{
		RunID:        runID,
		GeneratedAt:  time.Now().UTC(),
		Years:        snap.Years(),
		Standings:    tallies,
		Awards:       rankings,
		Rivalries:    table.Pairs(),
		TopRivalries: topRivalries,
		Profiles:     profiles,
		Injuries:     injuries,
		InjuryImpact: impacts,
		DraftPicks:   capPicks(draftRanking, s.topN),
		VORLeaders:   capAggregates(aggregates, s.topN),
		TopSeasons:   topSeasons,
		Warnings:     warnings,
	}, nil
}

// computeSeasons fans the per-season replacement and VOR work out over
// the pool. Each task writes only its own slot, so the fan-in barrier
// (queue close + pool wait) is the only synchronization needed.
func (s *Service) computeSeasons(ctx context.Context, snap *model.Snapshot, diags *diag.Diagnostics) (map[int]map[string]model.VORRecord, error) {
	start := time.Now()
	calc := replacement.New(replacement.WithThresholds(s.thresholds))

	slots := make([]map[string]model.VORRecord, len(snap.Seasons))

	queue := compute.NewQueue(compute.WithCapacity(max(s.queueSize, len(snap.Seasons))))
	pool := compute.NewPool(queue,
		compute.WithWorkers(s.workerCount),
		compute.WithLogger(s.logger),
	)
	pool.Start(ctx)

	for i := range snap.Seasons {
		i := i // per-iteration copy: the task closure runs after the loop advances
		season := &snap.Seasons[i]
		task := compute.Task{
			Name: fmt.Sprintf("season_%d", season.Year),
			Run: func(ctx context.Context) error {
				reportMissingWeeks(season, diags)
				totals := vor.SeasonTotals(season, snap.Players)
				levels := calc.Levels(season.Year, totals, diags)
				slots[i] = vor.Compute(totals, levels)
				metrics.RecordSeasonProcessed()
				metrics.RecordPlayersScored(len(slots[i]))
				return nil
			},
		}
		if !queue.Enqueue(ctx, task) {
			// Queue full or closing: run inline rather than drop a season.
			if err := task.Run(ctx); err != nil {
				return nil, err
			}
		}
	}

	queue.Close()
	pool.Wait()
	metrics.ObserveStageDuration("seasons", time.Since(start).Seconds())

	// Cancellation lets workers exit with tasks still queued. A partial
	// fan-in must not reach the cross-season stages.
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("season computation interrupted: %w", err)
	}

	vorByYear := make(map[int]map[string]model.VORRecord, len(snap.Seasons))
	for i := range snap.Seasons {
		if slots[i] == nil {
			return nil, fmt.Errorf("%w: year %d", ErrIncompleteCompute, snap.Seasons[i].Year)
		}
		vorByYear[snap.Seasons[i].Year] = slots[i]
	}
	return vorByYear, nil
}

// reportMissingWeeks flags scheduled weeks with no roster data at all.
// Absent weeks are treated as zero points with no ownership change, so
// the run continues; the warning keeps the gap visible in the artifact.
func reportMissingWeeks(season *model.Season, diags *diag.Diagnostics) {
	seen := make(map[int]bool, season.Weeks)
	for _, ws := range season.WeekStats {
		seen[ws.Week] = true
	}
	for w := 1; w <= season.Weeks; w++ {
		if !seen[w] {
			diags.Addf(diag.IncompleteWeekData, season.Year, w, "",
				"no roster data for week %d of %d", w, season.Year)
		}
	}
}

func capPicks(picks []draftvalue.RankedPick, n int) []draftvalue.RankedPick {
	if len(picks) > n {
		return picks[:n]
	}
	return picks
}

func capAggregates(aggs []vor.PlayerAggregate, n int) []vor.PlayerAggregate {
	if len(aggs) > n {
		return aggs[:n]
	}
	return aggs
}
