// Package rivalry aggregates head-to-head matchup history into
// nemesis/victim statistics. Each unordered manager pair is stored once
// and queried in both directions.
package rivalry

import (
	"fmt"
	"math"
	"sort"

	"github.com/jgilmore97/FantasyFootballWrapped/internal/domain/diag"
	"github.com/jgilmore97/FantasyFootballWrapped/internal/domain/model"
)

// PairRecord accumulates a pair's shared history. ManagerA sorts before
// ManagerB so every pair has one canonical record.
type PairRecord struct {
	ManagerA string  `json:"manager_a"`
	ManagerB string  `json:"manager_b"`
	Games    int     `json:"games"`
	PointsA  float64 `json:"points_a"`
	PointsB  float64 `json:"points_b"`
	WinsA    int     `json:"wins_a"`
	WinsB    int     `json:"wins_b"`
	Ties     int     `json:"ties"`
}

// DirectionalRecord is one pair viewed from one manager's side.
type DirectionalRecord struct {
	Opponent      string  `json:"opponent"`
	Games         int     `json:"games"`
	PointsFor     float64 `json:"points_for"`
	PointsAgainst float64 `json:"points_against"`
	AvgFor        float64 `json:"avg_for"`
	AvgAgainst    float64 `json:"avg_against"`
	Wins          int     `json:"wins"`
	Losses        int     `json:"losses"`
	Ties          int     `json:"ties"`
	// Sparse marks a single-game sample; no minimum sample size is
	// enforced, so callers should surface this caveat.
	Sparse bool `json:"sparse"`
}

// Profile is a manager's nemesis and victim. Either may be nil when the
// manager has no shared games at all.
type Profile struct {
	ManagerID string             `json:"manager_id"`
	Nemesis   *DirectionalRecord `json:"nemesis,omitempty"`
	Victim    *DirectionalRecord `json:"victim,omitempty"`
}

// Table holds every pair with at least one shared game. Pairs with zero
// games are simply absent.
type Table struct {
	pairs map[[2]string]*PairRecord
}

// Build folds all matchups across all seasons into a Table.
func Build(matchups []model.Matchup) *Table {
	t := &Table{pairs: make(map[[2]string]*PairRecord)}
	for _, m := range matchups {
		rec, flipped := t.pair(m.HomeID, m.AwayID)
		homePts, awayPts := m.HomeScore, m.AwayScore
		if flipped {
			homePts, awayPts = awayPts, homePts
		}
		rec.Games++
		rec.PointsA += homePts
		rec.PointsB += awayPts
		switch {
		case homePts > awayPts:
			rec.WinsA++
		case awayPts > homePts:
			rec.WinsB++
		default:
			rec.Ties++
		}
	}
	return t
}

// pair returns the canonical record for two managers, creating it on
// first use. flipped reports whether a's stats land in the B slot.
func (t *Table) pair(a, b string) (rec *PairRecord, flipped bool) {
	if a > b {
		a, b = b, a
		flipped = true
	}
	key := [2]string{a, b}
	rec, ok := t.pairs[key]
	if !ok {
		rec = &PairRecord{ManagerA: a, ManagerB: b}
		t.pairs[key] = rec
	}
	return rec, flipped
}

// Pairs returns all pair records sorted by (ManagerA, ManagerB).
func (t *Table) Pairs() []PairRecord {
	out := make([]PairRecord, 0, len(t.pairs))
	for _, rec := range t.pairs {
		out = append(out, *rec)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].ManagerA != out[j].ManagerA {
			return out[i].ManagerA < out[j].ManagerA
		}
		return out[i].ManagerB < out[j].ManagerB
	})
	return out
}

// TopRivalry is one pair scored for competitiveness: an even win split
// and tight scoring margins push the score toward 1, a lopsided history
// toward 0.
type TopRivalry struct {
	ManagerA        string  `json:"manager_a"`
	ManagerB        string  `json:"manager_b"`
	Games           int     `json:"games"`
	Record          string  `json:"record"`
	PointsA         float64 `json:"points_a"`
	PointsB         float64 `json:"points_b"`
	Competitiveness float64 `json:"competitiveness"`
}

// marginCap bounds the average-margin term so one blowout cannot sink
// an otherwise tight rivalry.
const marginCap = 50.0

// Top returns the n most competitive pairs. Record imbalance weighs 0.6
// and capped average margin 0.4; ties break by more shared games, then
// pair ids. n <= 0 returns every pair.
func (t *Table) Top(n int) []TopRivalry {
	out := make([]TopRivalry, 0, len(t.pairs))
	for _, rec := range t.pairs {
		if rec.Games == 0 {
			continue
		}
		games := float64(rec.Games)
		imbalance := math.Abs(float64(rec.WinsA-rec.WinsB)) / games
		margin := math.Abs(rec.PointsA-rec.PointsB) / games
		score := 1 - (imbalance*0.6 + math.Min(margin, marginCap)/marginCap*0.4)
		out = append(out, TopRivalry{
			ManagerA:        rec.ManagerA,
			ManagerB:        rec.ManagerB,
			Games:           rec.Games,
			Record:          fmt.Sprintf("%d-%d-%d", rec.WinsA, rec.WinsB, rec.Ties),
			PointsA:         rec.PointsA,
			PointsB:         rec.PointsB,
			Competitiveness: math.Max(0, score),
		})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Competitiveness != out[j].Competitiveness {
			return out[i].Competitiveness > out[j].Competitiveness
		}
		if out[i].Games != out[j].Games {
			return out[i].Games > out[j].Games
		}
		if out[i].ManagerA != out[j].ManagerA {
			return out[i].ManagerA < out[j].ManagerA
		}
		return out[i].ManagerB < out[j].ManagerB
	})
	if n > 0 && len(out) > n {
		out = out[:n]
	}
	return out
}

// View returns the pair from manager's perspective, false if the pair
// has no shared games.
func (t *Table) View(manager, opponent string) (DirectionalRecord, bool) {
	a, b := manager, opponent
	flipped := false
	if a > b {
		a, b = b, a
		flipped = true
	}
	rec, ok := t.pairs[[2]string{a, b}]
	if !ok || rec.Games == 0 {
		return DirectionalRecord{}, false
	}
	return view(rec, opponent, flipped), true
}

func view(rec *PairRecord, opponent string, flipped bool) DirectionalRecord {
	d := DirectionalRecord{
		Opponent:      opponent,
		Games:         rec.Games,
		PointsFor:     rec.PointsA,
		PointsAgainst: rec.PointsB,
		Wins:          rec.WinsA,
		Losses:        rec.WinsB,
		Ties:          rec.Ties,
	}
	if flipped {
		d.PointsFor, d.PointsAgainst = d.PointsAgainst, d.PointsFor
		d.Wins, d.Losses = d.Losses, d.Wins
	}
	d.AvgFor = d.PointsFor / float64(d.Games)
	d.AvgAgainst = d.PointsAgainst / float64(d.Games)
	d.Sparse = d.Games == 1
	return d
}

// Profiles selects each manager's nemesis (highest average allowed) and
// victim (highest average scored). A single game is enough to decide;
// sparse selections are reported as data-sparsity caveats. Opponent
// order breaks exact average ties so results are deterministic.
func (t *Table) Profiles(diags *diag.Diagnostics) []Profile {
	managers := make(map[string][]string)
	for key := range t.pairs {
		managers[key[0]] = append(managers[key[0]], key[1])
		managers[key[1]] = append(managers[key[1]], key[0])
	}

	ids := make([]string, 0, len(managers))
	for id := range managers {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	profiles := make([]Profile, 0, len(ids))
	for _, id := range ids {
		opponents := managers[id]
		sort.Strings(opponents)

		p := Profile{ManagerID: id}
		for _, opp := range opponents {
			d, ok := t.View(id, opp)
			if !ok {
				continue
			}
			if p.Victim == nil || d.AvgFor > p.Victim.AvgFor {
				v := d
				p.Victim = &v
			}
			if p.Nemesis == nil || d.AvgAgainst > p.Nemesis.AvgAgainst {
				n := d
				p.Nemesis = &n
			}
		}
		if diags != nil {
			if p.Nemesis != nil && p.Nemesis.Sparse {
				diags.Addf(diag.SparseRivalrySample, 0, 0, id,
					"nemesis %s decided on a single game", p.Nemesis.Opponent)
			}
			if p.Victim != nil && p.Victim.Sparse {
				diags.Addf(diag.SparseRivalrySample, 0, 0, id,
					"victim %s decided on a single game", p.Victim.Opponent)
			}
		}
		profiles = append(profiles, p)
	}
	return profiles
}
