package vor

import (
	"sort"

	"github.com/jgilmore97/FantasyFootballWrapped/internal/domain/model"
)

// PlayerAggregate is a player's VOR rolled up across every season in
// the snapshot window.
type PlayerAggregate struct {
	PlayerID string  `json:"player_id"`
	Name     string  `json:"name"`
	Position string  `json:"position"`
	TotalVOR float64 `json:"total_vor"`
	AvgVOR   float64 `json:"avg_vor"`
	Seasons  int     `json:"seasons"`
	Years    []int   `json:"years"`
}

// SeasonEntry is one (player, season) VOR line used for top-season
// rankings.
type SeasonEntry struct {
	PlayerID  string  `json:"player_id"`
	Name      string  `json:"name"`
	Position  string  `json:"position"`
	Year      int     `json:"year"`
	Points    float64 `json:"points"`
	VOR       float64 `json:"vor"`
	ManagerID string  `json:"manager_id"`
}

// Aggregate rolls per-season VOR records up to one line per player.
// Results are sorted by total VOR descending, ties by name then id so
// the order is a total order independent of map iteration.
func Aggregate(byYear map[int]map[string]model.VORRecord, names func(string) string) []PlayerAggregate {
	agg := make(map[string]*PlayerAggregate)
	years := sortedYears(byYear)
	for _, year := range years {
		for id, rec := range byYear[year] {
			a, ok := agg[id]
			if !ok {
				a = &PlayerAggregate{PlayerID: id, Name: names(id)}
				agg[id] = a
			}
			a.TotalVOR += rec.Value
			a.Seasons++
			a.Years = append(a.Years, year)
			a.Position = string(rec.Position)
		}
	}

	out := make([]PlayerAggregate, 0, len(agg))
	for _, a := range agg {
		if a.Seasons > 0 {
			a.AvgVOR = a.TotalVOR / float64(a.Seasons)
		}
		sort.Ints(a.Years)
		out = append(out, *a)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].TotalVOR != out[j].TotalVOR {
			return out[i].TotalVOR > out[j].TotalVOR
		}
		if out[i].Name != out[j].Name {
			return out[i].Name < out[j].Name
		}
		return out[i].PlayerID < out[j].PlayerID
	})
	return out
}

// TopSeasons returns the n best individual player seasons by VOR.
func TopSeasons(byYear map[int]map[string]model.VORRecord, names func(string) string, n int) []SeasonEntry {
	entries := make([]SeasonEntry, 0)
	for _, year := range sortedYears(byYear) {
		for id, rec := range byYear[year] {
			entries = append(entries, SeasonEntry{
				PlayerID:  id,
				Name:      names(id),
				Position:  string(rec.Position),
				Year:      year,
				Points:    rec.Points,
				VOR:       rec.Value,
				ManagerID: rec.ManagerID,
			})
		}
	}
	sort.Slice(entries, func(i, j int) bool {
		if entries[i].VOR != entries[j].VOR {
			return entries[i].VOR > entries[j].VOR
		}
		if entries[i].Name != entries[j].Name {
			return entries[i].Name < entries[j].Name
		}
		return entries[i].Year < entries[j].Year
	})
	if n > 0 && len(entries) > n {
		entries = entries[:n]
	}
	return entries
}

func sortedYears(byYear map[int]map[string]model.VORRecord) []int {
	years := make([]int, 0, len(byYear))
	for y := range byYear {
		years = append(years, y)
	}
	sort.Ints(years)
	return years
}
