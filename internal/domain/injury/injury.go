// Package injury tallies injury-weeks: one (player, week) on a
// manager's roster with a status in the injury set.
package injury

import (
	"sort"

	"github.com/jgilmore97/FantasyFootballWrapped/internal/domain/model"
)

// DefaultStatuses are the weekly statuses that count as an injury-week.
var DefaultStatuses = map[model.Status]bool{
	model.StatusOut:       true,
	model.StatusIR:        true,
	model.StatusDoubtful:  true,
	model.StatusSuspended: true,
}

// WeekCount locates a manager's worst single week.
type WeekCount struct {
	Year  int `json:"year"`
	Week  int `json:"week"`
	Count int `json:"count"`
}

// PlayerCount is a player's injury-week tally on one manager's roster.
type PlayerCount struct {
	PlayerID string `json:"player_id"`
	Name     string `json:"name"`
	Weeks    int    `json:"weeks"`
	LastYear int    `json:"last_year"`
}

// Summary is one manager's full injury history.
type Summary struct {
	ManagerID string `json:"manager_id"`
	Name      string `json:"name"`
	// TotalWeeks is the all-time injury-week count across seasons.
	TotalWeeks int `json:"total_weeks"`
	// WorstWeek is the single week with the most simultaneous
	// injury-weeks. Zero Count means the manager never had one.
	WorstWeek WeekCount `json:"worst_week"`
	// FrequentFlyer is the player with the most injury-weeks while on
	// this roster. Ties go to the most recent season, then player name.
	FrequentFlyer *PlayerCount `json:"frequent_flyer,omitempty"`
}

// Option configures a Tally run.
type Option func(*tally)

// WithStatuses overrides the statuses that count as injuries.
func WithStatuses(statuses map[model.Status]bool) Option {
	return func(t *tally) {
		if len(statuses) > 0 {
			t.statuses = statuses
		}
	}
}

type tally struct {
	statuses map[model.Status]bool
}

// Tally scans every season's weekly roster status and produces one
// Summary per manager that appears in the snapshot, sorted by manager
// id. Managers with zero injury-weeks still get a Summary so rankings
// cover the whole league.
func Tally(snap *model.Snapshot, opts ...Option) []Summary {
	t := &tally{statuses: DefaultStatuses}
	for _, opt := range opts {
		opt(t)
	}

	totals := make(map[string]int)
	perWeek := make(map[string]map[[2]int]int)            // manager -> (year, week) -> count
	perPlayer := make(map[string]map[string]*PlayerCount) // manager -> player -> tally

	for i := range snap.Seasons {
		season := &snap.Seasons[i]
		for _, m := range season.Managers {
			if _, ok := totals[m.ID]; !ok {
				totals[m.ID] = 0
			}
		}
		for _, ws := range season.WeekStats {
			if ws.ManagerID == "" || !t.statuses[ws.Status] {
				continue
			}
			totals[ws.ManagerID]++

			if perWeek[ws.ManagerID] == nil {
				perWeek[ws.ManagerID] = make(map[[2]int]int)
			}
			perWeek[ws.ManagerID][[2]int{season.Year, ws.Week}]++

			if perPlayer[ws.ManagerID] == nil {
				perPlayer[ws.ManagerID] = make(map[string]*PlayerCount)
			}
			pc, ok := perPlayer[ws.ManagerID][ws.PlayerID]
			if !ok {
				pc = &PlayerCount{PlayerID: ws.PlayerID, Name: snap.PlayerName(ws.PlayerID)}
				perPlayer[ws.ManagerID][ws.PlayerID] = pc
			}
			pc.Weeks++
			if season.Year > pc.LastYear {
				pc.LastYear = season.Year
			}
		}
	}

	ids := make([]string, 0, len(totals))
	for id := range totals {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	summaries := make([]Summary, 0, len(ids))
	for _, id := range ids {
		summaries = append(summaries, Summary{
			ManagerID:     id,
			Name:          snap.ManagerName(id),
			TotalWeeks:    totals[id],
			WorstWeek:     worstWeek(perWeek[id]),
			FrequentFlyer: frequentFlyer(perPlayer[id]),
		})
	}
	return summaries
}

// worstWeek picks the week with the highest simultaneous count, earliest
// (year, week) on ties.
func worstWeek(weeks map[[2]int]int) WeekCount {
	var worst WeekCount
	for yw, count := range weeks {
		switch {
		case count > worst.Count:
			worst = WeekCount{Year: yw[0], Week: yw[1], Count: count}
		case count == worst.Count && count > 0:
			if yw[0] < worst.Year || (yw[0] == worst.Year && yw[1] < worst.Week) {
				worst = WeekCount{Year: yw[0], Week: yw[1], Count: count}
			}
		}
	}
	return worst
}

// frequentFlyer picks the player with the most injury-weeks; ties break
// by most recent season, then alphabetical name, then id.
func frequentFlyer(players map[string]*PlayerCount) *PlayerCount {
	var best *PlayerCount
	ids := make([]string, 0, len(players))
	for id := range players {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	for _, id := range ids {
		pc := players[id]
		if best == nil {
			best = pc
			continue
		}
		switch {
		case pc.Weeks > best.Weeks:
			best = pc
		case pc.Weeks == best.Weeks && pc.LastYear > best.LastYear:
			best = pc
		case pc.Weeks == best.Weeks && pc.LastYear == best.LastYear && pc.Name < best.Name:
			best = pc
		}
	}
	if best == nil {
		return nil
	}
	out := *best
	return &out
}
