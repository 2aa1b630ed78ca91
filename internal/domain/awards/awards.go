// Package awards is the composition layer: it takes the records the
// engines already derived and produces ranked award categories. Nothing
// is recomputed here; every category only sorts, tie-breaks, and labels.
package awards

import (
	"fmt"
	"sort"

	"github.com/jgilmore97/FantasyFootballWrapped/internal/domain/draftvalue"
	"github.com/jgilmore97/FantasyFootballWrapped/internal/domain/injury"
	"github.com/jgilmore97/FantasyFootballWrapped/internal/domain/standings"
	"github.com/jgilmore97/FantasyFootballWrapped/internal/domain/vor"
)

// Category tags one award. The set is closed; the aggregator processes
// every member uniformly.
type Category string

// Award categories.
const (
	AllTimePoints     Category = "all_time_points"
	WinPercentage     Category = "win_percentage"
	Luckiest          Category = "luckiest"
	Unluckiest        Category = "unluckiest"
	SingleWeekHigh    Category = "single_week_high"
	SingleWeekLow     Category = "single_week_low"
	PuntPosition      Category = "punt_position"
	MVPSingleSeason   Category = "mvp_single_season"
	MVPTenureTotal    Category = "mvp_tenure_total"
	MVPTenureAverage  Category = "mvp_tenure_average"
	TopPlayerSeasons  Category = "top_player_seasons"
	TopDraftPicks     Category = "top_draft_picks"
	Heartbreaker      Category = "heartbreaker"
	UnluckyLoser      Category = "unlucky_loser"
	BadBeat           Category = "bad_beat"
	LongestWinStreak  Category = "longest_win_streak"
	LongestLossStreak Category = "longest_loss_streak"
	LateRoundLegend   Category = "late_round_legend"
	MostInjured       Category = "most_injured"
)

// Entry is one ranked row in an award category.
type Entry struct {
	Rank    int     `json:"rank"`
	Subject string  `json:"subject"`
	Value   float64 `json:"value"`
	Detail  string  `json:"detail,omitempty"`
}

// Ranking is one award category's full ordered list; the first entry is
// the winner.
type Ranking struct {
	Category Category `json:"category"`
	Entries  []Entry  `json:"entries"`
	Note     string   `json:"note,omitempty"`
}

// Winner returns the top entry, nil for an empty category.
func (r *Ranking) Winner() *Entry {
	if len(r.Entries) == 0 {
		return nil
	}
	return &r.Entries[0]
}

// Inputs carries everything the engines derived. Names maps ids to
// display names for both managers and players.
type Inputs struct {
	Tallies       []standings.Tally
	PuntTotals    []standings.PuntTotal
	CloseLosses   []standings.CloseLossCount
	LossPoints    []standings.LossPoints
	BadBeat       *standings.BadBeat
	Streaks       standings.StreakSummary
	TopSeasons    []vor.SeasonEntry
	Aggregates    []vor.PlayerAggregate
	DraftRanking  []draftvalue.RankedPick
	Injuries      []injury.Summary
	LateRoundFrom int
	TopN          int
	ManagerName   func(id string) string
}

// Build produces every award category in a fixed, deterministic order.
func Build(in Inputs) []Ranking {
	if in.ManagerName == nil {
		in.ManagerName = func(id string) string { return id }
	}
	topN := in.TopN
	if topN <= 0 {
		topN = 10
	}

	rankings := []Ranking{
		managerRanking(AllTimePoints, in,
			func(t *standings.Tally) float64 { return t.PointsFor }, true,
			func(t *standings.Tally) string { return fmt.Sprintf("%d seasons", t.Seasons) }),
		managerRanking(WinPercentage, in,
			func(t *standings.Tally) float64 { return t.WinPct() }, true,
			func(t *standings.Tally) string { return fmt.Sprintf("%d-%d-%d", t.Wins, t.Losses, t.Ties) }),
		managerRanking(Luckiest, in,
			func(t *standings.Tally) float64 { return t.PointsAgainst }, false,
			func(t *standings.Tally) string { return "points against" }),
		managerRanking(Unluckiest, in,
			func(t *standings.Tally) float64 { return t.PointsAgainst }, true,
			func(t *standings.Tally) string { return "points against" }),
		singleWeekRanking(SingleWeekHigh, standings.HighestWeek(in.Tallies), in),
		singleWeekRanking(SingleWeekLow, standings.LowestWeek(in.Tallies), in),
		puntRanking(in),
		mvpSingleSeason(in),
		aggregateRanking(MVPTenureTotal, in.Aggregates, topN,
			func(a vor.PlayerAggregate) float64 { return a.TotalVOR }),
		aggregateRanking(MVPTenureAverage, in.Aggregates, topN,
			func(a vor.PlayerAggregate) float64 { return a.AvgVOR }),
		topSeasonsRanking(in, topN),
		draftPicksRanking(in, topN),
		heartbreaker(in),
		unluckyLoser(in),
		badBeat(in),
		streakRanking(LongestWinStreak, in.Streaks.LongestWin, in),
		streakRanking(LongestLossStreak, in.Streaks.LongestLoss, in),
		lateRoundLegend(in),
		mostInjured(in),
	}
	return rankings
}

// managerRanking sorts tallies by a metric, breaking ties with total
// points then name so the order is stable regardless of input order.
func managerRanking(cat Category, in Inputs, metric func(*standings.Tally) float64, desc bool, detail func(*standings.Tally) string) Ranking {
	tallies := make([]standings.Tally, len(in.Tallies))
	copy(tallies, in.Tallies)
	sort.Slice(tallies, func(i, j int) bool {
		a, b := &tallies[i], &tallies[j]
		va, vb := metric(a), metric(b)
		if va != vb {
			if desc {
				return va > vb
			}
			return va < vb
		}
		if a.PointsFor != b.PointsFor {
			return a.PointsFor > b.PointsFor
		}
		return a.Name < b.Name
	})

	entries := make([]Entry, 0, len(tallies))
	for i := range tallies {
		t := &tallies[i]
		entries = append(entries, Entry{
			Rank:    i + 1,
			Subject: t.Name,
			Value:   metric(t),
			Detail:  detail(t),
		})
	}
	return Ranking{Category: cat, Entries: entries}
}

func singleWeekRanking(cat Category, ws *standings.WeekScore, in Inputs) Ranking {
	r := Ranking{Category: cat}
	if ws == nil {
		return r
	}
	r.Entries = []Entry{{
		Rank:    1,
		Subject: in.ManagerName(ws.ManagerID),
		Value:   ws.Score,
		Detail: fmt.Sprintf("%d week %d vs %s (%.2f)",
			ws.Year, ws.Week, in.ManagerName(ws.Opponent), ws.OpponentScore),
	}}
	return r
}

func puntRanking(in Inputs) Ranking {
	entries := make([]Entry, 0, len(in.PuntTotals))
	for i, pt := range in.PuntTotals {
		entries = append(entries, Entry{
			Rank:    i + 1,
			Subject: in.ManagerName(pt.ManagerID),
			Value:   pt.Total,
			Detail: fmt.Sprintf("D/ST %.2f, K %.2f, P %.2f",
				pt.ByPosition["D/ST"], pt.ByPosition["K"], pt.ByPosition["P"]),
		})
	}
	return Ranking{Category: PuntPosition, Entries: entries}
}

func mvpSingleSeason(in Inputs) Ranking {
	n := 1
	if len(in.TopSeasons) < n {
		n = len(in.TopSeasons)
	}
	entries := make([]Entry, 0, n)
	for i := 0; i < n; i++ {
		s := in.TopSeasons[i]
		entries = append(entries, Entry{
			Rank:    i + 1,
			Subject: s.Name,
			Value:   s.VOR,
			Detail:  fmt.Sprintf("%s, %d, %.2f pts", s.Position, s.Year, s.Points),
		})
	}
	return Ranking{Category: MVPSingleSeason, Entries: entries}
}

func aggregateRanking(cat Category, aggregates []vor.PlayerAggregate, topN int, metric func(vor.PlayerAggregate) float64) Ranking {
	sorted := make([]vor.PlayerAggregate, len(aggregates))
	copy(sorted, aggregates)
	sort.Slice(sorted, func(i, j int) bool {
		va, vb := metric(sorted[i]), metric(sorted[j])
		if va != vb {
			return va > vb
		}
		if sorted[i].TotalVOR != sorted[j].TotalVOR {
			return sorted[i].TotalVOR > sorted[j].TotalVOR
		}
		return sorted[i].Name < sorted[j].Name
	})
	if len(sorted) > topN {
		sorted = sorted[:topN]
	}
	entries := make([]Entry, 0, len(sorted))
	for i, a := range sorted {
		entries = append(entries, Entry{
			Rank:    i + 1,
			Subject: a.Name,
			Value:   metric(a),
			Detail:  fmt.Sprintf("%s, %d seasons", a.Position, a.Seasons),
		})
	}
	return Ranking{Category: cat, Entries: entries}
}

func topSeasonsRanking(in Inputs, topN int) Ranking {
	seasons := in.TopSeasons
	if len(seasons) > topN {
		seasons = seasons[:topN]
	}
	entries := make([]Entry, 0, len(seasons))
	for i, s := range seasons {
		entries = append(entries, Entry{
			Rank:    i + 1,
			Subject: s.Name,
			Value:   s.VOR,
			Detail:  fmt.Sprintf("%s, %d", s.Position, s.Year),
		})
	}
	return Ranking{Category: TopPlayerSeasons, Entries: entries}
}

func draftPicksRanking(in Inputs, topN int) Ranking {
	picks := in.DraftRanking
	if len(picks) > topN {
		picks = picks[:topN]
	}
	entries := make([]Entry, 0, len(picks))
	for i, p := range picks {
		entries = append(entries, Entry{
			Rank:    i + 1,
			Subject: p.PlayerName,
			Value:   p.TotalSurplus,
			Detail: fmt.Sprintf("%d round %d by %s, draft-year %.2f",
				p.Pick.Year, p.Pick.Round, p.ManagerName, p.DraftYearSurplus),
		})
	}
	return Ranking{Category: TopDraftPicks, Entries: entries}
}

func heartbreaker(in Inputs) Ranking {
	entries := make([]Entry, 0, len(in.CloseLosses))
	for i, c := range in.CloseLosses {
		entries = append(entries, Entry{
			Rank:    i + 1,
			Subject: in.ManagerName(c.ManagerID),
			Value:   float64(c.Count),
			Detail:  "close losses",
		})
	}
	return Ranking{Category: Heartbreaker, Entries: entries}
}

func unluckyLoser(in Inputs) Ranking {
	entries := make([]Entry, 0, len(in.LossPoints))
	for i, lp := range in.LossPoints {
		entries = append(entries, Entry{
			Rank:    i + 1,
			Subject: in.ManagerName(lp.ManagerID),
			Value:   lp.Total,
			Detail:  fmt.Sprintf("%d losses, %.2f avg", lp.Losses, lp.Average),
		})
	}
	return Ranking{Category: UnluckyLoser, Entries: entries}
}

func badBeat(in Inputs) Ranking {
	r := Ranking{Category: BadBeat}
	if in.BadBeat == nil {
		return r
	}
	bb := in.BadBeat
	r.Entries = []Entry{{
		Rank:    1,
		Subject: in.ManagerName(bb.Loser.ManagerID),
		Value:   bb.Loser.Score,
		Detail: fmt.Sprintf("%d week %d, lost to %s (%.2f); week's best %s (%.2f)",
			bb.Loser.Year, bb.Loser.Week, in.ManagerName(bb.Loser.Opponent),
			bb.Loser.OpponentScore, in.ManagerName(bb.TopScorer), bb.TopScore),
	}}
	return r
}

func streakRanking(cat Category, s *standings.Streak, in Inputs) Ranking {
	r := Ranking{Category: cat}
	if s == nil {
		return r
	}
	r.Entries = []Entry{{
		Rank:    1,
		Subject: in.ManagerName(s.ManagerID),
		Value:   float64(s.Count),
		Detail: fmt.Sprintf("%d week %d through %d week %d",
			s.StartYear, s.StartWeek, s.EndYear, s.EndWeek),
	}}
	return r
}

// lateRoundLegend finds the best late-round pick by total surplus. The
// draft ranking is already in surplus order, so the first qualifying
// pick wins.
func lateRoundLegend(in Inputs) Ranking {
	cutoff := in.LateRoundFrom
	if cutoff <= 0 {
		cutoff = 12
	}
	r := Ranking{Category: LateRoundLegend, Note: fmt.Sprintf("round %d or later", cutoff)}
	for _, p := range in.DraftRanking {
		if p.Pick.Round < cutoff {
			continue
		}
		r.Entries = []Entry{{
			Rank:    1,
			Subject: p.PlayerName,
			Value:   p.TotalSurplus,
			Detail:  fmt.Sprintf("%d round %d by %s", p.Pick.Year, p.Pick.Round, p.ManagerName),
		}}
		break
	}
	return r
}

func mostInjured(in Inputs) Ranking {
	summaries := make([]injury.Summary, len(in.Injuries))
	copy(summaries, in.Injuries)
	sort.Slice(summaries, func(i, j int) bool {
		if summaries[i].TotalWeeks != summaries[j].TotalWeeks {
			return summaries[i].TotalWeeks > summaries[j].TotalWeeks
		}
		return summaries[i].Name < summaries[j].Name
	})
	entries := make([]Entry, 0, len(summaries))
	for i, s := range summaries {
		detail := fmt.Sprintf("worst week %d in %d (%d out)", s.WorstWeek.Week, s.WorstWeek.Year, s.WorstWeek.Count)
		if s.FrequentFlyer != nil {
			detail += fmt.Sprintf("; frequent flyer %s (%d)", s.FrequentFlyer.Name, s.FrequentFlyer.Weeks)
		}
		entries = append(entries, Entry{
			Rank:    i + 1,
			Subject: s.Name,
			Value:   float64(s.TotalWeeks),
			Detail:  detail,
		})
	}
	return Ranking{Category: MostInjured, Entries: entries}
}
