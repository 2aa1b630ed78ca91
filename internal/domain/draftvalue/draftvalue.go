// Package draftvalue scores draft picks by tenure-adjusted surplus: how
// much value over the round's expectation a pick returned across every
// season the drafting manager actually held the player.
package draftvalue

import (
	"sort"

	"github.com/jgilmore97/FantasyFootballWrapped/internal/domain/diag"
	"github.com/jgilmore97/FantasyFootballWrapped/internal/domain/model"
	"github.com/jgilmore97/FantasyFootballWrapped/internal/domain/ownership"
)

// RankedPick is a draft pick with its computed surplus figures. The
// draft-year surplus is retained separately from the full tenure total
// for display.
type RankedPick struct {
	Pick             model.DraftPick `json:"pick"`
	PlayerName       string          `json:"player_name"`
	ManagerName      string          `json:"manager_name"`
	DraftYearSurplus float64         `json:"draft_year_surplus"`
	TotalSurplus     float64         `json:"total_surplus"`
	OnTeamVOR        float64         `json:"on_team_vor"`
	SeasonSurplus    map[int]float64 `json:"season_surplus"`
	SeasonsCredited  int             `json:"seasons_credited"`
}

// RoundBaselines holds the mean season VOR of players drafted in each
// (season, round). Keeper picks count the same as fresh picks.
type RoundBaselines map[int]map[int]float64

// Baselines computes round averages from the picks and per-season VOR.
// Picks whose player has no VOR record that season contribute nothing to
// the mean. A (season, round) with no contributing picks has no entry
// and reads as zero.
func Baselines(picks []model.DraftPick, vorByYear map[int]map[string]model.VORRecord) RoundBaselines {
	sums := make(map[int]map[int]float64)
	counts := make(map[int]map[int]int)
	for _, p := range picks {
		yearVOR, ok := vorByYear[p.Year]
		if !ok {
			continue
		}
		rec, ok := yearVOR[p.PlayerID]
		if !ok {
			continue
		}
		if sums[p.Year] == nil {
			sums[p.Year] = make(map[int]float64)
			counts[p.Year] = make(map[int]int)
		}
		sums[p.Year][p.Round] += rec.Value
		counts[p.Year][p.Round]++
	}

	baselines := make(RoundBaselines, len(sums))
	for year, rounds := range sums {
		baselines[year] = make(map[int]float64, len(rounds))
		for round, sum := range rounds {
			baselines[year][round] = sum / float64(counts[year][round])
		}
	}
	return baselines
}

// Value returns the baseline for (year, round), zero when undefined.
func (b RoundBaselines) Value(year, round int) float64 {
	return b[year][round]
}

// Tracker is the ownership query surface the engine needs.
type Tracker = ownership.Tracker

// Rank computes tenure-adjusted surplus for every pick and returns them
// ranked: surplus descending, ties by higher on-team VOR, then earlier
// draft year, then player name. Picks whose ownership data is
// inconsistent are skipped and reported.
func Rank(
	snap *model.Snapshot,
	vorByYear map[int]map[string]model.VORRecord,
	tracker *Tracker,
	diags *diag.Diagnostics,
) []RankedPick {
	var picks []model.DraftPick
	for i := range snap.Seasons {
		picks = append(picks, snap.Seasons[i].Picks...)
	}
	baselines := Baselines(picks, vorByYear)
	years := snap.Years()

	ranked := make([]RankedPick, 0, len(picks))
	for _, pick := range picks {
		rp, err := valuePick(pick, years, vorByYear, baselines, tracker)
		if err != nil {
			if diags != nil {
				diags.Addf(diag.InconsistentOwnership, pick.Year, 0, pick.PlayerID,
					"draft valuation skipped: %v", err)
			}
			continue
		}
		rp.PlayerName = snap.PlayerName(pick.PlayerID)
		rp.ManagerName = snap.ManagerName(pick.ManagerID)
		ranked = append(ranked, rp)
	}

	sort.Slice(ranked, func(i, j int) bool {
		a, b := ranked[i], ranked[j]
		if a.TotalSurplus != b.TotalSurplus {
			return a.TotalSurplus > b.TotalSurplus
		}
		if a.OnTeamVOR != b.OnTeamVOR {
			return a.OnTeamVOR > b.OnTeamVOR
		}
		if a.Pick.Year != b.Pick.Year {
			return a.Pick.Year < b.Pick.Year
		}
		return a.PlayerName < b.PlayerName
	})
	return ranked
}

// valuePick folds one pick over every tenure season. A season counts
// only when the drafting manager held the player for at least one data
// week. A season whose VOR is unavailable contributes exactly zero,
// never an estimate.
func valuePick(
	pick model.DraftPick,
	years []int,
	vorByYear map[int]map[string]model.VORRecord,
	baselines RoundBaselines,
	tracker *Tracker,
) (RankedPick, error) {
	rp := RankedPick{Pick: pick, SeasonSurplus: make(map[int]float64)}

	for _, year := range years {
		if year < pick.Year {
			continue
		}
		spans, err := tracker.Spans(pick.PlayerID, year, pick.ManagerID)
		if err != nil {
			return RankedPick{}, err
		}
		if !hasCreditable(spans) {
			continue
		}
		owned, withData := tracker.CreditableWeeks(pick.PlayerID, year, pick.ManagerID)
		if owned == 0 || withData == 0 {
			continue
		}

		rp.SeasonsCredited++
		rec, ok := vorByYear[year][pick.PlayerID]
		if !ok {
			// Season VOR unavailable: surplus is exactly zero.
			rp.SeasonSurplus[year] = 0
			if year == pick.Year {
				rp.DraftYearSurplus = 0
			}
			continue
		}

		prorated := rec.Value * float64(owned) / float64(withData)
		surplus := prorated - baselines.Value(year, pick.Round)
		rp.OnTeamVOR += prorated
		rp.SeasonSurplus[year] = surplus
		rp.TotalSurplus += surplus
		if year == pick.Year {
			rp.DraftYearSurplus = surplus
		}
	}
	return rp, nil
}

func hasCreditable(spans []model.OwnershipSpan) bool {
	for _, s := range spans {
		if s.Creditable {
			return true
		}
	}
	return false
}
