package standings_test

import (
	"testing"

	"github.com/jgilmore97/FantasyFootballWrapped/internal/domain/model"
	"github.com/jgilmore97/FantasyFootballWrapped/internal/domain/standings"
	. "github.com/smartystreets/goconvey/convey"
)

func TestCloseLosses(t *testing.T) {
	Convey("Given losses inside and outside the margin", t, func() {
		snap := leagueSnap(
			model.Matchup{Year: 2023, Week: 1, HomeID: "m1", AwayID: "m2", HomeScore: 98, AwayScore: 100},
			model.Matchup{Year: 2023, Week: 2, HomeID: "m1", AwayID: "m2", HomeScore: 80, AwayScore: 110},
			model.Matchup{Year: 2023, Week: 3, HomeID: "m2", AwayID: "m1", HomeScore: 99.5, AwayScore: 100},
			model.Matchup{Year: 2023, Week: 4, HomeID: "m1", AwayID: "m2", HomeScore: 95, AwayScore: 95},
		)

		Convey("When counting with a 5-point margin", func() {
			counts := standings.CloseLosses(snap, 5)

			Convey("Then only sub-margin losses count, and ties never do", func() {
				So(counts, ShouldHaveLength, 2)
				So(counts[0].ManagerID, ShouldEqual, "m1")
				So(counts[0].Count, ShouldEqual, 1)
				So(counts[0].Losses[0].Week, ShouldEqual, 1)
				So(counts[1].ManagerID, ShouldEqual, "m2")
				So(counts[1].Count, ShouldEqual, 1)
				So(counts[1].Losses[0].Week, ShouldEqual, 3)
			})
		})
	})
}

func TestPointsInLosses(t *testing.T) {
	Convey("Given a manager with two losses", t, func() {
		snap := leagueSnap(
			model.Matchup{Year: 2023, Week: 1, HomeID: "m1", AwayID: "m2", HomeScore: 120, AwayScore: 125},
			model.Matchup{Year: 2023, Week: 2, HomeID: "m2", AwayID: "m1", HomeScore: 131, AwayScore: 130},
			model.Matchup{Year: 2023, Week: 3, HomeID: "m1", AwayID: "m2", HomeScore: 140, AwayScore: 90},
		)

		Convey("When summing points in losses", func() {
			points := standings.PointsInLosses(snap)

			Convey("Then the total and average cover losing games only", func() {
				So(points[0].ManagerID, ShouldEqual, "m1")
				So(points[0].Total, ShouldEqual, 250)
				So(points[0].Losses, ShouldEqual, 2)
				So(points[0].Average, ShouldEqual, 125)
			})
		})
	})
}

func TestWorstBadBeat(t *testing.T) {
	Convey("Given a week where the second-best score loses", t, func() {
		snap := leagueSnap(
			// Week 1: m2 posts 140, m1's 150 beats it. m3's 60 is irrelevant.
			model.Matchup{Year: 2023, Week: 1, HomeID: "m1", AwayID: "m2", HomeScore: 150, AwayScore: 140},
			model.Matchup{Year: 2023, Week: 1, HomeID: "m3", AwayID: "m1", HomeScore: 60, AwayScore: 0},
		)

		Convey("When finding the worst bad beat", func() {
			bb := standings.WorstBadBeat(snap)

			Convey("Then the second-best losing score is the beat", func() {
				So(bb, ShouldNotBeNil)
				So(bb.Loser.ManagerID, ShouldEqual, "m2")
				So(bb.Loser.Score, ShouldEqual, 140)
				So(bb.TopScorer, ShouldEqual, "m1")
				So(bb.TopScore, ShouldEqual, 150)
			})
		})
	})

	Convey("Given weeks where the second-best score wins its game", t, func() {
		snap := leagueSnap(
			model.Matchup{Year: 2023, Week: 1, HomeID: "m1", AwayID: "m2", HomeScore: 150, AwayScore: 80},
			model.Matchup{Year: 2023, Week: 1, HomeID: "m3", AwayID: "m1", HomeScore: 140, AwayScore: 70},
		)

		Convey("When finding the worst bad beat", func() {
			bb := standings.WorstBadBeat(snap)

			Convey("Then there is none", func() {
				So(bb, ShouldBeNil)
			})
		})
	})
}

func TestStreaks(t *testing.T) {
	Convey("Given a three-week winning run broken by a tie", t, func() {
		snap := leagueSnap(
			model.Matchup{Year: 2023, Week: 1, HomeID: "m1", AwayID: "m2", HomeScore: 100, AwayScore: 90},
			model.Matchup{Year: 2023, Week: 2, HomeID: "m1", AwayID: "m2", HomeScore: 100, AwayScore: 90},
			model.Matchup{Year: 2023, Week: 3, HomeID: "m1", AwayID: "m2", HomeScore: 100, AwayScore: 90},
			model.Matchup{Year: 2023, Week: 4, HomeID: "m1", AwayID: "m2", HomeScore: 95, AwayScore: 95},
			model.Matchup{Year: 2023, Week: 5, HomeID: "m1", AwayID: "m2", HomeScore: 100, AwayScore: 90},
		)

		Convey("When computing streaks", func() {
			summary := standings.Streaks(snap)

			Convey("Then the longest win streak stops at the tie", func() {
				So(summary.LongestWin, ShouldNotBeNil)
				So(summary.LongestWin.ManagerID, ShouldEqual, "m1")
				So(summary.LongestWin.Count, ShouldEqual, 3)
				So(summary.LongestWin.StartWeek, ShouldEqual, 1)
				So(summary.LongestWin.EndWeek, ShouldEqual, 3)
			})

			Convey("And the loss streak mirrors it", func() {
				So(summary.LongestLoss, ShouldNotBeNil)
				So(summary.LongestLoss.ManagerID, ShouldEqual, "m2")
				So(summary.LongestLoss.Count, ShouldEqual, 3)
			})
		})
	})

	Convey("Given a streak spanning two seasons", t, func() {
		snap := leagueSnap(
			model.Matchup{Year: 2022, Week: 13, HomeID: "m1", AwayID: "m2", HomeScore: 100, AwayScore: 90},
			model.Matchup{Year: 2023, Week: 1, HomeID: "m1", AwayID: "m2", HomeScore: 100, AwayScore: 90},
		)

		Convey("When computing streaks", func() {
			summary := standings.Streaks(snap)

			Convey("Then the run carries across the season boundary", func() {
				So(summary.LongestWin.Count, ShouldEqual, 2)
				So(summary.LongestWin.StartYear, ShouldEqual, 2022)
				So(summary.LongestWin.EndYear, ShouldEqual, 2023)
			})
		})
	})
}

func TestPuntTotals(t *testing.T) {
	Convey("Given punt-position scoring weeks", t, func() {
		snap := leagueSnap()
		snap.Players = map[string]model.Player{
			"d1": {ID: "d1", Name: "Defense", Position: model.DST},
			"k1": {ID: "k1", Name: "Kicker", Position: model.K},
			"r1": {ID: "r1", Name: "Runner", Position: model.RB},
		}
		snap.Seasons = []model.Season{{
			Year: 2023, Weeks: 13,
			Managers: []model.Manager{{ID: "m1"}, {ID: "m2"}},
			WeekStats: []model.PlayerWeekStat{
				{PlayerID: "d1", Year: 2023, Week: 1, Points: 12, ManagerID: "m1"},
				{PlayerID: "k1", Year: 2023, Week: 1, Points: 9, ManagerID: "m1"},
				{PlayerID: "r1", Year: 2023, Week: 1, Points: 22, ManagerID: "m1"},
				{PlayerID: "k1", Year: 2023, Week: 2, Points: 7, ManagerID: "m2"},
				{PlayerID: "d1", Year: 2023, Week: 3, Points: 5, ManagerID: ""},
			},
		}}

		Convey("When summing punt totals", func() {
			totals := standings.PuntTotals(snap)

			Convey("Then only rostered punt-position weeks count", func() {
				So(totals, ShouldHaveLength, 2)
				So(totals[0].ManagerID, ShouldEqual, "m1")
				So(totals[0].Total, ShouldEqual, 21)
				So(totals[0].ByPosition["D/ST"], ShouldEqual, 12)
				So(totals[0].ByPosition["K"], ShouldEqual, 9)
				So(totals[1].ManagerID, ShouldEqual, "m2")
				So(totals[1].Total, ShouldEqual, 7)
			})
		})
	})
}
