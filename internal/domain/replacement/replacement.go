// Package replacement computes the per-season, per-position replacement
// level: the season point total of the player at a fixed rank threshold
// within the position's pool.
package replacement

import (
	"sort"

	"github.com/jgilmore97/FantasyFootballWrapped/internal/domain/diag"
	"github.com/jgilmore97/FantasyFootballWrapped/internal/domain/model"
)

// DefaultThresholds mirror common startable-player cutoffs per position.
var DefaultThresholds = map[model.Position]int{
	model.QB:  25,
	model.RB:  40,
	model.WR:  50,
	model.TE:  15,
	model.DST: 15,
	model.K:   15,
}

// Option applies a configuration option to the Calculator.
type Option func(*Calculator)

// WithThresholds overrides the per-position rank thresholds. Positions
// absent from the map are not baselined and their players get no VOR.
func WithThresholds(thresholds map[model.Position]int) Option {
	return func(c *Calculator) {
		if len(thresholds) == 0 {
			return
		}
		c.thresholds = make(map[model.Position]int, len(thresholds))
		for pos, n := range thresholds {
			if n > 0 {
				c.thresholds[pos] = n
			}
		}
	}
}

// Calculator derives replacement levels from season totals.
type Calculator struct {
	thresholds map[model.Position]int
}

// New creates a Calculator with the default thresholds.
func New(opts ...Option) *Calculator {
	c := &Calculator{thresholds: DefaultThresholds}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Thresholds returns the configured rank thresholds.
func (c *Calculator) Thresholds() map[model.Position]int {
	return c.thresholds
}

// Levels computes one replacement level per thresholded position from a
// single season's totals. Positions with fewer players than the
// threshold fail open to the lowest-ranked player's total. Positions
// with zero players are left out of the result and reported as
// MissingSeasonData; VOR computations referencing them must skip.
func (c *Calculator) Levels(year int, totals []model.SeasonTotal, diags *diag.Diagnostics) map[model.Position]model.ReplacementLevel {
	byPosition := make(map[model.Position][]float64)
	for _, t := range totals {
		if _, ok := c.thresholds[t.Position]; !ok {
			continue
		}
		byPosition[t.Position] = append(byPosition[t.Position], t.Points)
	}

	levels := make(map[model.Position]model.ReplacementLevel, len(c.thresholds))
	for pos, threshold := range c.thresholds {
		points, ok := byPosition[pos]
		if !ok || len(points) == 0 {
			if diags != nil {
				diags.Addf(diag.MissingSeasonData, year, 0, string(pos),
					"no %s players in %d; replacement level undefined", pos, year)
			}
			continue
		}
		sort.Sort(sort.Reverse(sort.Float64Slice(points)))

		rank := threshold
		if len(points) < threshold {
			rank = len(points)
		}
		levels[pos] = model.ReplacementLevel{
			Year:     year,
			Position: pos,
			Value:    points[rank-1],
		}
	}
	return levels
}
