package model

// Derived record types produced by the engines. They are plain values so
// downstream consumers (draft valuation, awards) stay pure folds.

// SeasonTotal is a player's aggregated line for one season.
type SeasonTotal struct {
	PlayerID      string   `json:"player_id"`
	Year          int      `json:"year"`
	Position      Position `json:"position"`
	Points        float64  `json:"points"`
	WeeksWithData int      `json:"weeks_with_data"`
	LastManagerID string   `json:"last_manager_id"`
}

// ReplacementLevel is the scoring baseline for one (season, position).
type ReplacementLevel struct {
	Year     int      `json:"year"`
	Position Position `json:"position"`
	Value    float64  `json:"value"`
}

// VORRecord is a player's value over replacement for one season. Value
// may be negative; there is no clamping.
type VORRecord struct {
	PlayerID  string   `json:"player_id"`
	Year      int      `json:"year"`
	Position  Position `json:"position"`
	Points    float64  `json:"points"`
	Value     float64  `json:"value"`
	ManagerID string   `json:"manager_id"`
}

// OwnershipSpan is a contiguous stretch of weeks in one season during
// which a single manager held a player. A manager may have several
// disjoint spans for the same player if the player was re-acquired.
type OwnershipSpan struct {
	PlayerID   string `json:"player_id"`
	ManagerID  string `json:"manager_id"`
	Year       int    `json:"year"`
	StartWeek  int    `json:"start_week"`
	EndWeek    int    `json:"end_week"`
	Creditable bool   `json:"creditable"`
}

// Weeks returns the number of data weeks the span covers.
func (s OwnershipSpan) Weeks() int {
	return s.EndWeek - s.StartWeek + 1
}
