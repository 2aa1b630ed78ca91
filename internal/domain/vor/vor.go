// Package vor turns weekly stat lines into per-season value-over-
// replacement records and the cross-season rollups the awards layer
// ranks. All functions are pure over their inputs; season computations
// never couple across years.
package vor

import (
	"sort"

	"github.com/jgilmore97/FantasyFootballWrapped/internal/domain/model"
)

// SeasonTotals aggregates a season's weekly stat lines into one total
// per player. Positions come from the snapshot player metadata; players
// without metadata are carried with position UNKNOWN so their points
// still count for standings-style tallies even though they get no VOR.
func SeasonTotals(season *model.Season, players map[string]model.Player) []model.SeasonTotal {
	type acc struct {
		points    float64
		weeks     int
		lastWeek  int
		lastOwner string
	}
	byPlayer := make(map[string]*acc)
	for _, ws := range season.WeekStats {
		a, ok := byPlayer[ws.PlayerID]
		if !ok {
			a = &acc{}
			byPlayer[ws.PlayerID] = a
		}
		a.points += ws.Points
		a.weeks++
		if ws.Week >= a.lastWeek {
			a.lastWeek = ws.Week
			a.lastOwner = ws.ManagerID
		}
	}

	totals := make([]model.SeasonTotal, 0, len(byPlayer))
	for id, a := range byPlayer {
		pos := model.Unknown
		if p, ok := players[id]; ok && p.Position != "" {
			pos = p.Position
		}
		totals = append(totals, model.SeasonTotal{
			PlayerID:      id,
			Year:          season.Year,
			Position:      pos,
			Points:        a.points,
			WeeksWithData: a.weeks,
			LastManagerID: a.lastOwner,
		})
	}
	sort.Slice(totals, func(i, j int) bool { return totals[i].PlayerID < totals[j].PlayerID })
	return totals
}

// Compute derives VOR for every player whose position has a replacement
// level. Value is season total minus the level and may be negative.
// Players at positions without a level are skipped; the replacement
// calculator has already reported those seasons.
func Compute(totals []model.SeasonTotal, levels map[model.Position]model.ReplacementLevel) map[string]model.VORRecord {
	records := make(map[string]model.VORRecord, len(totals))
	for _, t := range totals {
		level, ok := levels[t.Position]
		if !ok {
			continue
		}
		records[t.PlayerID] = model.VORRecord{
			PlayerID:  t.PlayerID,
			Year:      t.Year,
			Position:  t.Position,
			Points:    t.Points,
			Value:     t.Points - level.Value,
			ManagerID: t.LastManagerID,
		}
	}
	return records
}
