// Package ownership reconstructs, per player and season, the contiguous
// spans of weeks each manager held that player. Spans are the basis for
// crediting draft picks: value accrues to the drafting manager only
// during weeks covered by one of their spans.
package ownership

import (
	"errors"
	"fmt"
	"sort"

	"github.com/jgilmore97/FantasyFootballWrapped/internal/domain/model"
)

// ErrInconsistentOwnership marks a player whose weekly data shows two
// managers holding them in the same week. That is a loader contract
// violation, fatal for the player's draft valuation only.
var ErrInconsistentOwnership = errors.New("inconsistent ownership")

type playerSeasonKey struct {
	playerID string
	year     int
}

// Tracker indexes a snapshot's weekly stat lines by (player, season) and
// answers span and proration queries. Build it once per run; it is
// read-only afterwards and safe for concurrent use.
type Tracker struct {
	weeks map[playerSeasonKey][]model.PlayerWeekStat
}

// NewTracker indexes the snapshot.
func NewTracker(snap *model.Snapshot) *Tracker {
	t := &Tracker{weeks: make(map[playerSeasonKey][]model.PlayerWeekStat)}
	for i := range snap.Seasons {
		season := &snap.Seasons[i]
		for _, ws := range season.WeekStats {
			key := playerSeasonKey{playerID: ws.PlayerID, year: season.Year}
			t.weeks[key] = append(t.weeks[key], ws)
		}
	}
	for key := range t.weeks {
		stats := t.weeks[key]
		sort.Slice(stats, func(i, j int) bool { return stats[i].Week < stats[j].Week })
	}
	return t
}

// Spans returns the ordered ownership spans for a player in a season.
// Weeks with no data keep the current span alive: missing data is not an
// ownership change. An unowned week (empty manager id) closes the
// current span. Spans under draftingManager are marked creditable.
//
// Returns ErrInconsistentOwnership if two different managers appear for
// the same week.
func (t *Tracker) Spans(playerID string, year int, draftingManager string) ([]model.OwnershipSpan, error) {
	stats := t.weeks[playerSeasonKey{playerID: playerID, year: year}]
	if len(stats) == 0 {
		return nil, nil
	}

	if err := checkWeekConsistency(stats); err != nil {
		return nil, fmt.Errorf("player %s year %d: %w", playerID, year, err)
	}

	var spans []model.OwnershipSpan
	var current *model.OwnershipSpan
	for _, ws := range stats {
		if ws.Week == currentEnd(current) {
			continue // duplicate of an already-consumed week
		}
		switch {
		case ws.ManagerID == "":
			current = flush(&spans, current)
		case current != nil && current.ManagerID == ws.ManagerID:
			current.EndWeek = ws.Week
		default:
			current = flush(&spans, current)
			current = &model.OwnershipSpan{
				PlayerID:   playerID,
				ManagerID:  ws.ManagerID,
				Year:       year,
				StartWeek:  ws.Week,
				EndWeek:    ws.Week,
				Creditable: ws.ManagerID == draftingManager,
			}
		}
	}
	flush(&spans, current)
	return spans, nil
}

// CreditableWeeks returns how many data weeks the manager held the
// player in a season, alongside the player's total data weeks in that
// season. The ratio is the proration factor for season VOR.
func (t *Tracker) CreditableWeeks(playerID string, year int, managerID string) (owned, withData int) {
	seen := make(map[int]bool)
	for _, ws := range t.weeks[playerSeasonKey{playerID: playerID, year: year}] {
		if seen[ws.Week] {
			continue
		}
		seen[ws.Week] = true
		withData++
		if ws.ManagerID == managerID {
			owned++
		}
	}
	return owned, withData
}

// checkWeekConsistency rejects two different owners in the same week.
// Exact duplicate rows are tolerated; they carry no new information.
func checkWeekConsistency(stats []model.PlayerWeekStat) error {
	ownerByWeek := make(map[int]string, len(stats))
	for _, ws := range stats {
		prev, ok := ownerByWeek[ws.Week]
		if ok && prev != ws.ManagerID {
			return fmt.Errorf("week %d held by %q and %q: %w", ws.Week, prev, ws.ManagerID, ErrInconsistentOwnership)
		}
		ownerByWeek[ws.Week] = ws.ManagerID
	}
	return nil
}

func flush(spans *[]model.OwnershipSpan, current *model.OwnershipSpan) *model.OwnershipSpan {
	if current != nil {
		*spans = append(*spans, *current)
	}
	return nil
}

func currentEnd(current *model.OwnershipSpan) int {
	if current == nil {
		return 0
	}
	return current.EndWeek
}
