// Package model contains the immutable league snapshot types shared
// between the analytics engines. Everything here is loaded once per run
// and never mutated afterwards.
package model

import "sort"

// Position identifies a fantasy roster position.
type Position string

// Roster positions recognized by the engines.
const (
	QB      Position = "QB"
	RB      Position = "RB"
	WR      Position = "WR"
	TE      Position = "TE"
	DST     Position = "D/ST"
	K       Position = "K"
	P       Position = "P"
	Unknown Position = "UNKNOWN"
)

// Status is a player's weekly roster status as reported by the league.
type Status string

// Weekly statuses. The injury engine decides which of these count as an
// injury-week.
const (
	StatusActive    Status = "ACTIVE"
	StatusOut       Status = "OUT"
	StatusIR        Status = "IR"
	StatusDoubtful  Status = "DOUBTFUL"
	StatusSuspended Status = "SUSPENDED"
	StatusNone      Status = ""
)

// Manager is a franchise with a stable identity across seasons.
type Manager struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// Player is league-wide player metadata.
type Player struct {
	ID       string   `json:"id"`
	Name     string   `json:"name"`
	Position Position `json:"position"`
}

// Matchup is one completed head-to-head week between two managers.
type Matchup struct {
	Year      int     `json:"year"`
	Week      int     `json:"week"`
	HomeID    string  `json:"home_id"`
	AwayID    string  `json:"away_id"`
	HomeScore float64 `json:"home_score"`
	AwayScore float64 `json:"away_score"`
}

// PlayerWeekStat is one player's line for one week. ManagerID is the
// manager who held the player that week, or empty if unowned. It is the
// ground truth for ownership reconstruction.
type PlayerWeekStat struct {
	PlayerID  string  `json:"player_id"`
	Year      int     `json:"year"`
	Week      int     `json:"week"`
	Points    float64 `json:"points"`
	Status    Status  `json:"status"`
	ManagerID string  `json:"manager_id"`
}

// DraftPick is one drafted or kept player for a season.
type DraftPick struct {
	Year      int    `json:"year"`
	Round     int    `json:"round"`
	Overall   int    `json:"overall"`
	PlayerID  string `json:"player_id"`
	ManagerID string `json:"manager_id"`
	Keeper    bool   `json:"keeper"`
}

// Season owns everything the league produced in one year.
type Season struct {
	Year      int              `json:"year"`
	Weeks     int              `json:"weeks"`
	Managers  []Manager        `json:"managers"`
	Matchups  []Matchup        `json:"matchups"`
	WeekStats []PlayerWeekStat `json:"week_stats"`
	Picks     []DraftPick      `json:"picks"`
}

// Snapshot is the fully-loaded input to a run: all seasons plus the
// league-wide player metadata, keyed by player id.
type Snapshot struct {
	Seasons []Season          `json:"seasons"`
	Players map[string]Player `json:"players"`
}

// Years returns the season years in ascending order.
func (s *Snapshot) Years() []int {
	years := make([]int, 0, len(s.Seasons))
	for i := range s.Seasons {
		years = append(years, s.Seasons[i].Year)
	}
	sort.Ints(years)
	return years
}

// Season returns the season for a year, or nil if the snapshot does not
// cover it.
func (s *Snapshot) Season(year int) *Season {
	for i := range s.Seasons {
		if s.Seasons[i].Year == year {
			return &s.Seasons[i]
		}
	}
	return nil
}

// PlayerName resolves a player id to a display name, falling back to the
// id itself so output never loses the subject.
func (s *Snapshot) PlayerName(id string) string {
	if p, ok := s.Players[id]; ok && p.Name != "" {
		return p.Name
	}
	return id
}

// ManagerName resolves a manager id to the most recent display name seen
// across seasons, falling back to the id.
func (s *Snapshot) ManagerName(id string) string {
	name := id
	year := 0
	for i := range s.Seasons {
		if s.Seasons[i].Year < year {
			continue
		}
		for _, m := range s.Seasons[i].Managers {
			if m.ID == id && m.Name != "" {
				name = m.Name
				year = s.Seasons[i].Year
			}
		}
	}
	return name
}
