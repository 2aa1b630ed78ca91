package standings

import (
	"sort"

	"github.com/jgilmore97/FantasyFootballWrapped/internal/domain/model"
)

// CloseLossCount tallies a manager's losses inside the margin.
type CloseLossCount struct {
	ManagerID string      `json:"manager_id"`
	Count     int         `json:"count"`
	Losses    []WeekScore `json:"losses"`
}

// CloseLosses counts, per manager, losses decided by less than margin
// points. Zero-margin games are ties, not close losses. Results are
// sorted by count descending, then manager id.
func CloseLosses(snap *model.Snapshot, margin float64) []CloseLossCount {
	byID := make(map[string]*CloseLossCount)
	for i := range snap.Seasons {
		for _, m := range snap.Seasons[i].Matchups {
			diff := m.HomeScore - m.AwayScore
			var loser WeekScore
			switch {
			case diff < 0 && -diff < margin:
				loser = WeekScore{m.HomeID, m.Year, m.Week, m.HomeScore, m.AwayID, m.AwayScore}
			case diff > 0 && diff < margin:
				loser = WeekScore{m.AwayID, m.Year, m.Week, m.AwayScore, m.HomeID, m.HomeScore}
			default:
				continue
			}
			c, ok := byID[loser.ManagerID]
			if !ok {
				c = &CloseLossCount{ManagerID: loser.ManagerID}
				byID[loser.ManagerID] = c
			}
			c.Count++
			c.Losses = append(c.Losses, loser)
		}
	}

	out := make([]CloseLossCount, 0, len(byID))
	for _, c := range byID {
		out = append(out, *c)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		return out[i].ManagerID < out[j].ManagerID
	})
	return out
}

// LossPoints tallies points a manager scored in games they lost.
type LossPoints struct {
	ManagerID string  `json:"manager_id"`
	Total     float64 `json:"total"`
	Losses    int     `json:"losses"`
	Average   float64 `json:"average"`
}

// PointsInLosses ranks managers by total points scored in losses.
func PointsInLosses(snap *model.Snapshot) []LossPoints {
	byID := make(map[string]*LossPoints)
	add := func(id string, score float64) {
		lp, ok := byID[id]
		if !ok {
			lp = &LossPoints{ManagerID: id}
			byID[id] = lp
		}
		lp.Total += score
		lp.Losses++
	}
	for i := range snap.Seasons {
		for _, m := range snap.Seasons[i].Matchups {
			if m.HomeScore < m.AwayScore {
				add(m.HomeID, m.HomeScore)
			} else if m.AwayScore < m.HomeScore {
				add(m.AwayID, m.AwayScore)
			}
		}
	}

	out := make([]LossPoints, 0, len(byID))
	for _, lp := range byID {
		if lp.Losses > 0 {
			lp.Average = lp.Total / float64(lp.Losses)
		}
		out = append(out, *lp)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Total != out[j].Total {
			return out[i].Total > out[j].Total
		}
		return out[i].ManagerID < out[j].ManagerID
	})
	return out
}

// BadBeat is a week where a manager posted the league's second-best
// score and still lost.
type BadBeat struct {
	Loser     WeekScore `json:"loser"`
	TopScorer string    `json:"top_scorer"`
	TopScore  float64   `json:"top_score"`
}

// WorstBadBeat finds the highest such losing score across history.
func WorstBadBeat(snap *model.Snapshot) *BadBeat {
	type weekKey struct{ year, week int }
	weekly := make(map[weekKey][]WeekScore)
	for i := range snap.Seasons {
		for _, m := range snap.Seasons[i].Matchups {
			key := weekKey{m.Year, m.Week}
			weekly[key] = append(weekly[key],
				WeekScore{m.HomeID, m.Year, m.Week, m.HomeScore, m.AwayID, m.AwayScore},
				WeekScore{m.AwayID, m.Year, m.Week, m.AwayScore, m.HomeID, m.HomeScore},
			)
		}
	}

	keys := make([]weekKey, 0, len(weekly))
	for k := range weekly {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		if keys[i].year != keys[j].year {
			return keys[i].year < keys[j].year
		}
		return keys[i].week < keys[j].week
	})

	var worst *BadBeat
	for _, k := range keys {
		scores := weekly[k]
		if len(scores) < 2 {
			continue
		}
		sort.Slice(scores, func(i, j int) bool {
			if scores[i].Score != scores[j].Score {
				return scores[i].Score > scores[j].Score
			}
			return scores[i].ManagerID < scores[j].ManagerID
		})
		second := scores[1]
		if second.Score >= second.OpponentScore {
			continue
		}
		if worst == nil || second.Score > worst.Loser.Score {
			worst = &BadBeat{Loser: second, TopScorer: scores[0].ManagerID, TopScore: scores[0].Score}
		}
	}
	return worst
}

// Streak is a run of consecutive wins or losses, possibly spanning
// seasons. Ties break streaks.
type Streak struct {
	ManagerID string `json:"manager_id"`
	Count     int    `json:"count"`
	StartYear int    `json:"start_year"`
	StartWeek int    `json:"start_week"`
	EndYear   int    `json:"end_year"`
	EndWeek   int    `json:"end_week"`
}

// StreakSummary holds the league-wide longest runs.
type StreakSummary struct {
	LongestWin  *Streak `json:"longest_win,omitempty"`
	LongestLoss *Streak `json:"longest_loss,omitempty"`
}

// Streaks walks matchups in (year, week) order and finds the longest
// win and loss streaks anywhere in league history. Equal-length streaks
// resolve to the one that completed first.
func Streaks(snap *model.Snapshot) StreakSummary {
	var all []model.Matchup
	for i := range snap.Seasons {
		all = append(all, snap.Seasons[i].Matchups...)
	}
	sort.Slice(all, func(i, j int) bool {
		if all[i].Year != all[j].Year {
			return all[i].Year < all[j].Year
		}
		if all[i].Week != all[j].Week {
			return all[i].Week < all[j].Week
		}
		return all[i].HomeID < all[j].HomeID
	})

	current := make(map[string]*Streak)
	kind := make(map[string]string)
	var summary StreakSummary

	record := func(id, result string, year, week int) {
		if result == "tie" {
			delete(current, id)
			delete(kind, id)
			return
		}
		if kind[id] != result {
			current[id] = &Streak{ManagerID: id, Count: 0, StartYear: year, StartWeek: week}
			kind[id] = result
		}
		s := current[id]
		s.Count++
		s.EndYear, s.EndWeek = year, week

		best := &summary.LongestWin
		if result == "loss" {
			best = &summary.LongestLoss
		}
		if *best == nil || s.Count > (*best).Count {
			copied := *s
			*best = &copied
		}
	}

	for _, m := range all {
		switch {
		case m.HomeScore > m.AwayScore:
			record(m.HomeID, "win", m.Year, m.Week)
			record(m.AwayID, "loss", m.Year, m.Week)
		case m.AwayScore > m.HomeScore:
			record(m.AwayID, "win", m.Year, m.Week)
			record(m.HomeID, "loss", m.Year, m.Week)
		default:
			record(m.HomeID, "tie", m.Year, m.Week)
			record(m.AwayID, "tie", m.Year, m.Week)
		}
	}
	return summary
}

// PuntTotal is a manager's all-time points from punt positions (D/ST,
// K, P) while those players were on their roster.
type PuntTotal struct {
	ManagerID  string             `json:"manager_id"`
	Total      float64            `json:"total"`
	ByPosition map[string]float64 `json:"by_position"`
}

// PuntTotals sums weekly punt-position points per owning manager,
// sorted by total descending then manager id.
func PuntTotals(snap *model.Snapshot) []PuntTotal {
	puntPositions := map[model.Position]bool{model.DST: true, model.K: true, model.P: true}
	byID := make(map[string]*PuntTotal)
	for i := range snap.Seasons {
		for _, ws := range snap.Seasons[i].WeekStats {
			if ws.ManagerID == "" {
				continue
			}
			player, ok := snap.Players[ws.PlayerID]
			if !ok || !puntPositions[player.Position] {
				continue
			}
			pt, ok := byID[ws.ManagerID]
			if !ok {
				pt = &PuntTotal{ManagerID: ws.ManagerID, ByPosition: make(map[string]float64)}
				byID[ws.ManagerID] = pt
			}
			pt.Total += ws.Points
			pt.ByPosition[string(player.Position)] += ws.Points
		}
	}

	out := make([]PuntTotal, 0, len(byID))
	for _, pt := range byID {
		out = append(out, *pt)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Total != out[j].Total {
			return out[i].Total > out[j].Total
		}
		return out[i].ManagerID < out[j].ManagerID
	})
	return out
}
