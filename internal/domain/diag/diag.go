// Package diag collects per-run warnings so the engines stay pure: every
// computation reports non-fatal issues into an explicit Diagnostics value
// that is returned alongside results, never into global state.
package diag

import (
	"fmt"
	"sort"
	"sync"
)

// Code classifies a warning.
type Code string

// Warning codes. Per-entity issues are warnings; only structural input
// contract violations abort a run.
const (
	// MissingSeasonData: a (season, position) had zero eligible players,
	// so its replacement level and dependent VOR are unavailable.
	MissingSeasonData Code = "missing_season_data"

	// IncompleteWeekData: a week's roster or status entry was absent and
	// was treated as zero points with no ownership change.
	IncompleteWeekData Code = "incomplete_week_data"

	// InconsistentOwnership: two managers held the same player in the
	// same week. The player's draft valuation is skipped.
	InconsistentOwnership Code = "inconsistent_ownership"

	// UnreadableSeason: a season file could not be read or parsed and
	// was left out of the snapshot.
	UnreadableSeason Code = "unreadable_season"

	// SeasonFileMismatch: a season file's body declared a different year
	// than its filename. The filename wins so a misnamed file cannot
	// shadow another season.
	SeasonFileMismatch Code = "season_file_mismatch"

	// SparseRivalrySample: a nemesis or victim call rests on a single
	// shared game.
	SparseRivalrySample Code = "sparse_rivalry_sample"
)

// Warning is one non-fatal issue surfaced by a run.
type Warning struct {
	Code    Code   `json:"code"`
	Year    int    `json:"year,omitempty"`
	Week    int    `json:"week,omitempty"`
	Subject string `json:"subject,omitempty"`
	Message string `json:"message"`
}

func (w Warning) String() string {
	return fmt.Sprintf("%s: %s", w.Code, w.Message)
}

// Diagnostics is a concurrency-safe warning collector for one run.
// The zero value is not usable; call New.
type Diagnostics struct {
	mu       sync.Mutex
	warnings []Warning
}

// New returns an empty diagnostics collector.
func New() *Diagnostics {
	return &Diagnostics{}
}

// Add records a warning.
func (d *Diagnostics) Add(w Warning) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.warnings = append(d.warnings, w)
}

// Addf records a warning with a formatted message.
func (d *Diagnostics) Addf(code Code, year, week int, subject, format string, args ...any) {
	d.Add(Warning{
		Code:    code,
		Year:    year,
		Week:    week,
		Subject: subject,
		Message: fmt.Sprintf(format, args...),
	})
}

// Warnings returns a copy of all collected warnings in a deterministic
// order (code, year, week, subject) regardless of collection order.
func (d *Diagnostics) Warnings() []Warning {
	d.mu.Lock()
	defer d.mu.Unlock()

	out := make([]Warning, len(d.warnings))
	copy(out, d.warnings)
	sort.Slice(out, func(i, j int) bool {
		if out[i].Code != out[j].Code {
			return out[i].Code < out[j].Code
		}
		if out[i].Year != out[j].Year {
			return out[i].Year < out[j].Year
		}
		if out[i].Week != out[j].Week {
			return out[i].Week < out[j].Week
		}
		if out[i].Subject != out[j].Subject {
			return out[i].Subject < out[j].Subject
		}
		return out[i].Message < out[j].Message
	})
	return out
}

// Len returns the number of collected warnings.
func (d *Diagnostics) Len() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return len(d.warnings)
}
