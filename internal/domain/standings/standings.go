// Package standings derives per-manager cumulative tallies and
// matchup-level records from the full matchup history. The awards layer
// only sorts what this package computes.
package standings

import (
	"sort"

	"github.com/jgilmore97/FantasyFootballWrapped/internal/domain/model"
)

// WeekScore is one manager-week with its matchup context.
type WeekScore struct {
	ManagerID     string  `json:"manager_id"`
	Year          int     `json:"year"`
	Week          int     `json:"week"`
	Score         float64 `json:"score"`
	Opponent      string  `json:"opponent"`
	OpponentScore float64 `json:"opponent_score"`
}

// Tally is one manager's all-time cumulative line.
type Tally struct {
	ManagerID     string     `json:"manager_id"`
	Name          string     `json:"name"`
	Seasons       int        `json:"seasons"`
	Wins          int        `json:"wins"`
	Losses        int        `json:"losses"`
	Ties          int        `json:"ties"`
	PointsFor     float64    `json:"points_for"`
	PointsAgainst float64    `json:"points_against"`
	HighWeek      *WeekScore `json:"high_week,omitempty"`
	LowWeek       *WeekScore `json:"low_week,omitempty"`
}

// Games returns the number of completed games.
func (t *Tally) Games() int {
	return t.Wins + t.Losses + t.Ties
}

// WinPct returns the all-time win percentage with ties worth half a win.
func (t *Tally) WinPct() float64 {
	games := t.Games()
	if games == 0 {
		return 0
	}
	return (float64(t.Wins) + 0.5*float64(t.Ties)) / float64(games)
}

// Build folds every season's matchups into one Tally per manager,
// sorted by manager id.
func Build(snap *model.Snapshot) []Tally {
	byID := make(map[string]*Tally)
	get := func(id string) *Tally {
		t, ok := byID[id]
		if !ok {
			t = &Tally{ManagerID: id, Name: snap.ManagerName(id)}
			byID[id] = t
		}
		return t
	}

	for i := range snap.Seasons {
		season := &snap.Seasons[i]
		seen := make(map[string]bool)
		for _, m := range season.Managers {
			get(m.ID)
			if !seen[m.ID] {
				seen[m.ID] = true
				get(m.ID).Seasons++
			}
		}
		for _, m := range season.Matchups {
			home, away := get(m.HomeID), get(m.AwayID)
			home.PointsFor += m.HomeScore
			home.PointsAgainst += m.AwayScore
			away.PointsFor += m.AwayScore
			away.PointsAgainst += m.HomeScore
			switch {
			case m.HomeScore > m.AwayScore:
				home.Wins++
				away.Losses++
			case m.AwayScore > m.HomeScore:
				away.Wins++
				home.Losses++
			default:
				home.Ties++
				away.Ties++
			}
			trackExtremes(home, WeekScore{m.HomeID, m.Year, m.Week, m.HomeScore, m.AwayID, m.AwayScore})
			trackExtremes(away, WeekScore{m.AwayID, m.Year, m.Week, m.AwayScore, m.HomeID, m.HomeScore})
		}
	}

	out := make([]Tally, 0, len(byID))
	ids := make([]string, 0, len(byID))
	for id := range byID {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	for _, id := range ids {
		out = append(out, *byID[id])
	}
	return out
}

func trackExtremes(t *Tally, ws WeekScore) {
	if t.HighWeek == nil || ws.Score > t.HighWeek.Score {
		high := ws
		t.HighWeek = &high
	}
	if t.LowWeek == nil || ws.Score < t.LowWeek.Score {
		low := ws
		t.LowWeek = &low
	}
}

// HighestWeek returns the single highest manager-week in history, nil
// when there are no matchups. Earlier (year, week) then manager id
// breaks exact score ties.
func HighestWeek(tallies []Tally) *WeekScore {
	var best *WeekScore
	for i := range tallies {
		ws := tallies[i].HighWeek
		if ws == nil {
			continue
		}
		if best == nil || ws.Score > best.Score || (ws.Score == best.Score && earlier(ws, best)) {
			best = ws
		}
	}
	return best
}

// LowestWeek returns the single lowest manager-week in history.
func LowestWeek(tallies []Tally) *WeekScore {
	var worst *WeekScore
	for i := range tallies {
		ws := tallies[i].LowWeek
		if ws == nil {
			continue
		}
		if worst == nil || ws.Score < worst.Score || (ws.Score == worst.Score && earlier(ws, worst)) {
			worst = ws
		}
	}
	return worst
}

func earlier(a, b *WeekScore) bool {
	if a.Year != b.Year {
		return a.Year < b.Year
	}
	if a.Week != b.Week {
		return a.Week < b.Week
	}
	return a.ManagerID < b.ManagerID
}
