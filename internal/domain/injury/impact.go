package injury

import (
	"sort"

	"github.com/jgilmore97/FantasyFootballWrapped/internal/domain/model"
)

// maxCapital anchors the draft-capital scale: round 1 is worth
// maxCapital-1, each later round one less, floored at 1 so every
// drafted player still counts. Undrafted players carry no capital.
const maxCapital = 16

// CostlyInjury is the single (player, season) that cost a manager the
// most weighted injury-weeks.
type CostlyInjury struct {
	PlayerID string  `json:"player_id"`
	Name     string  `json:"name"`
	Year     int     `json:"year"`
	Weeks    int     `json:"weeks"`
	Capital  int     `json:"capital"`
	Impact   float64 `json:"impact"`
}

// SeasonEnding records a drafted player who was dropped while injured
// and never scored again that season.
type SeasonEnding struct {
	PlayerID       string  `json:"player_id"`
	Name           string  `json:"name"`
	Year           int     `json:"year"`
	LastWeek       int     `json:"last_week"`
	RemainingWeeks int     `json:"remaining_weeks"`
	AddedImpact    float64 `json:"added_impact"`
}

// Impact is one manager's draft-capital-weighted injury burden.
type Impact struct {
	ManagerID string  `json:"manager_id"`
	Name      string  `json:"name"`
	Score     float64 `json:"score"`
	// MostCostly is the worst single (player, season) by weighted
	// weeks. Nil when no drafted player was ever injured on the roster.
	MostCostly   *CostlyInjury  `json:"most_costly,omitempty"`
	SeasonEnding []SeasonEnding `json:"season_ending,omitempty"`
}

func draftCapital(round int) int {
	if c := maxCapital - round; c > 1 {
		return c
	}
	return 1
}

type playerYear struct {
	year     int
	playerID string
}

// WeightedImpact weighs each injury-week by the player's draft capital
// that season, so losing an early pick hurts more than losing a waiver
// pickup. For seasons with data through the final scheduled week it
// also detects season-ending injuries: a drafted player dropped while
// injured who never scored again that year is charged for the remaining
// weeks. Returns one Impact per manager in the snapshot, sorted by
// score descending, ties by manager id.
func WeightedImpact(snap *model.Snapshot, opts ...Option) []Impact {
	t := &tally{statuses: DefaultStatuses}
	for _, opt := range opts {
		opt(t)
	}

	scores := make(map[string]float64)
	perPlayer := make(map[string]map[playerYear]*CostlyInjury)
	ending := make(map[string][]SeasonEnding)

	for i := range snap.Seasons {
		season := &snap.Seasons[i]
		for _, m := range season.Managers {
			if _, ok := scores[m.ID]; !ok {
				scores[m.ID] = 0
			}
		}

		capital := make(map[string]int, len(season.Picks))
		for _, p := range season.Picks {
			if p.PlayerID != "" {
				capital[p.PlayerID] = draftCapital(p.Round)
			}
		}

		lastWeek := 0
		lastInjured := make(map[string]map[string]int) // manager -> player -> week
		for _, ws := range season.WeekStats {
			if ws.Week > lastWeek {
				lastWeek = ws.Week
			}
			if ws.ManagerID == "" || !t.statuses[ws.Status] {
				continue
			}
			weight := capital[ws.PlayerID]
			if weight == 0 {
				continue
			}
			scores[ws.ManagerID] += float64(weight)

			if perPlayer[ws.ManagerID] == nil {
				perPlayer[ws.ManagerID] = make(map[playerYear]*CostlyInjury)
			}
			key := playerYear{year: season.Year, playerID: ws.PlayerID}
			ci, ok := perPlayer[ws.ManagerID][key]
			if !ok {
				ci = &CostlyInjury{
					PlayerID: ws.PlayerID,
					Name:     snap.PlayerName(ws.PlayerID),
					Year:     season.Year,
					Capital:  weight,
				}
				perPlayer[ws.ManagerID][key] = ci
			}
			ci.Weeks++

			if lastInjured[ws.ManagerID] == nil {
				lastInjured[ws.ManagerID] = make(map[string]int)
			}
			if ws.Week > lastInjured[ws.ManagerID][ws.PlayerID] {
				lastInjured[ws.ManagerID][ws.PlayerID] = ws.Week
			}
		}

		// Season-ending detection needs the season fully played out;
		// an in-progress year would flag every current injury.
		if lastWeek < season.Weeks {
			continue
		}
		for _, owner := range sortedKeys(lastInjured) {
			for _, playerID := range sortedKeys(lastInjured[owner]) {
				last := lastInjured[owner][playerID]
				if last >= season.Weeks {
					continue
				}
				kept, playedAgain := false, false
				for _, ws := range season.WeekStats {
					if ws.PlayerID != playerID || ws.Week <= last {
						continue
					}
					if ws.ManagerID == owner {
						kept = true
						break
					}
					if ws.Points > 0 {
						playedAgain = true
					}
				}
				if kept || playedAgain {
					continue
				}

				remaining := season.Weeks - last
				added := float64(remaining * capital[playerID])
				scores[owner] += added
				key := playerYear{year: season.Year, playerID: playerID}
				perPlayer[owner][key].Weeks += remaining
				ending[owner] = append(ending[owner], SeasonEnding{
					PlayerID:       playerID,
					Name:           snap.PlayerName(playerID),
					Year:           season.Year,
					LastWeek:       last,
					RemainingWeeks: remaining,
					AddedImpact:    added,
				})
			}
		}
	}

	ids := make([]string, 0, len(scores))
	for id := range scores {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	impacts := make([]Impact, 0, len(ids))
	for _, id := range ids {
		impacts = append(impacts, Impact{
			ManagerID:    id,
			Name:         snap.ManagerName(id),
			Score:        scores[id],
			MostCostly:   mostCostly(perPlayer[id]),
			SeasonEnding: ending[id],
		})
	}
	sort.SliceStable(impacts, func(i, j int) bool {
		return impacts[i].Score > impacts[j].Score
	})
	return impacts
}

// mostCostly picks the worst (player, season) by weeks * capital; ties
// break by earlier year, then player name, then id.
func mostCostly(players map[playerYear]*CostlyInjury) *CostlyInjury {
	var best *CostlyInjury
	for _, ci := range players {
		ci.Impact = float64(ci.Weeks * ci.Capital)
		switch {
		case best == nil || ci.Impact > best.Impact:
			best = ci
		case ci.Impact == best.Impact && ci.Year < best.Year:
			best = ci
		case ci.Impact == best.Impact && ci.Year == best.Year &&
			(ci.Name < best.Name || (ci.Name == best.Name && ci.PlayerID < best.PlayerID)):
			best = ci
		}
	}
	if best == nil {
		return nil
	}
	out := *best
	return &out
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
