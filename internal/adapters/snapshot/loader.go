// Package snapshot loads the league history from per-season JSON files
// into the immutable model.Snapshot the engines run against.
//
// The directory layout is one file per season, season_<year>.json, each
// carrying that year's managers, matchups, weekly lines, draft picks,
// and the player metadata referenced by them. Player metadata from later
// seasons wins on conflict so display names track the most recent data.
package snapshot

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"github.com/jgilmore97/FantasyFootballWrapped/internal/domain/diag"
	"github.com/jgilmore97/FantasyFootballWrapped/internal/domain/model"
	"github.com/jgilmore97/FantasyFootballWrapped/pkg/logger"
)

const (
	filePrefix = "season_"
	fileSuffix = ".json"
)

// seasonFile is the on-disk shape of one season. It is the season itself
// plus the player metadata its ids reference.
type seasonFile struct {
	model.Season
	Players []model.Player `json:"players"`
}

// Loader reads season files from a directory.
type Loader struct {
	dir    string
	years  map[int]bool
	logger logger.Logger
}

// Option applies a configuration option to the Loader.
type Option func(*Loader)

// WithYears restricts loading to the given seasons. Empty means all.
func WithYears(years []int) Option {
	return func(l *Loader) {
		if len(years) == 0 {
			return
		}
		l.years = make(map[int]bool, len(years))
		for _, y := range years {
			l.years[y] = true
		}
	}
}

// WithLogger sets a custom logger for the loader.
func WithLogger(log logger.Logger) Option {
	return func(l *Loader) {
		if log != nil {
			l.logger = log
		}
	}
}

// NewLoader creates a loader reading from dir.
func NewLoader(dir string, opts ...Option) *Loader {
	l := &Loader{
		dir:    dir,
		logger: logger.Get().Named("snapshot"),
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Load reads every season file in the directory and assembles the
// snapshot. Files that cannot be read or parsed are reported as
// unreadable_season warnings and left out; a run with zero loadable
// seasons fails with ErrNoSeasons.
func (l *Loader) Load(ctx context.Context, diags *diag.Diagnostics) (*model.Snapshot, error) {
	entries, err := os.ReadDir(l.dir)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrSnapshotDir, err)
	}

	snap := &model.Snapshot{
		Players: make(map[string]model.Player),
	}

	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		year, ok := seasonYear(entry.Name())
		if !ok {
			continue
		}
		if l.years != nil && !l.years[year] {
			continue
		}

		sf, err := l.readSeason(filepath.Join(l.dir, entry.Name()))
		if err != nil {
			diags.Addf(diag.UnreadableSeason, year, 0, entry.Name(),
				"season file skipped: %v", err)
			l.logger.Warn(ctx, "season file skipped",
				logger.Year(year),
				logger.String("file", entry.Name()),
				logger.Error(err),
			)
			continue
		}
		if sf.Year == 0 {
			sf.Year = year
		} else if sf.Year != year {
			diags.Addf(diag.SeasonFileMismatch, year, 0, entry.Name(),
				"file body says year %d; using %d from the filename", sf.Year, year)
			l.logger.Warn(ctx, "season year mismatch",
				logger.Year(year),
				logger.String("file", entry.Name()),
				logger.Int("body_year", sf.Year),
			)
			sf.Year = year
		}

		snap.Seasons = append(snap.Seasons, sf.Season)
		for _, p := range sf.Players {
			if p.ID == "" {
				continue
			}
			snap.Players[p.ID] = p
		}
	}

	if len(snap.Seasons) == 0 {
		return nil, fmt.Errorf("%w: dir %s", ErrNoSeasons, l.dir)
	}

	sort.Slice(snap.Seasons, func(i, j int) bool {
		return snap.Seasons[i].Year < snap.Seasons[j].Year
	})

	l.logger.Info(ctx, "snapshot loaded",
		logger.Int("seasons", len(snap.Seasons)),
		logger.Int("players", len(snap.Players)),
	)
	return snap, nil
}

func (l *Loader) readSeason(path string) (*seasonFile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var sf seasonFile
	if err := json.Unmarshal(data, &sf); err != nil {
		return nil, err
	}
	return &sf, nil
}

// seasonYear extracts the year from a season_<year>.json filename.
func seasonYear(name string) (int, bool) {
	if !strings.HasPrefix(name, filePrefix) || !strings.HasSuffix(name, fileSuffix) {
		return 0, false
	}
	digits := strings.TrimSuffix(strings.TrimPrefix(name, filePrefix), fileSuffix)
	year, err := strconv.Atoi(digits)
	if err != nil || year <= 0 {
		return 0, false
	}
	return year, true
}
