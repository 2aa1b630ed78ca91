package rivalry_test

import (
	"testing"

	"github.com/jgilmore97/FantasyFootballWrapped/internal/domain/diag"
	"github.com/jgilmore97/FantasyFootballWrapped/internal/domain/model"
	"github.com/jgilmore97/FantasyFootballWrapped/internal/domain/rivalry"
	. "github.com/smartystreets/goconvey/convey"
)

func TestTable(t *testing.T) {
	Convey("Given three games between A and B", t, func() {
		table := rivalry.Build([]model.Matchup{
			{Year: 2023, Week: 1, HomeID: "A", AwayID: "B", HomeScore: 20, AwayScore: 15},
			{Year: 2023, Week: 5, HomeID: "B", AwayID: "A", HomeScore: 10, AwayScore: 30},
			{Year: 2023, Week: 9, HomeID: "A", AwayID: "B", HomeScore: 25, AwayScore: 20},
		})

		Convey("When viewing the pair from A's side", func() {
			d, ok := table.View("A", "B")

			Convey("Then the averages follow the shared games", func() {
				So(ok, ShouldBeTrue)
				So(d.Games, ShouldEqual, 3)
				So(d.AvgFor, ShouldEqual, 25)
				So(d.AvgAgainst, ShouldEqual, 15)
				So(d.Wins, ShouldEqual, 3)
				So(d.Losses, ShouldEqual, 0)
				So(d.Sparse, ShouldBeFalse)
			})
		})

		Convey("When viewing the pair from B's side", func() {
			d, ok := table.View("B", "A")

			Convey("Then the same record reads mirrored", func() {
				So(ok, ShouldBeTrue)
				So(d.AvgFor, ShouldEqual, 15)
				So(d.AvgAgainst, ShouldEqual, 25)
				So(d.Losses, ShouldEqual, 3)
			})
		})

		Convey("When viewing a pair with no shared games", func() {
			_, ok := table.View("A", "C")

			Convey("Then there is no record", func() {
				So(ok, ShouldBeFalse)
			})
		})
	})
}

func TestProfiles(t *testing.T) {
	Convey("Given a three-manager history", t, func() {
		table := rivalry.Build([]model.Matchup{
			// A crushes B, twice.
			{Year: 2022, Week: 1, HomeID: "A", AwayID: "B", HomeScore: 40, AwayScore: 10},
			{Year: 2022, Week: 6, HomeID: "A", AwayID: "B", HomeScore: 35, AwayScore: 12},
			// C edges A in their single meeting.
			{Year: 2023, Week: 3, HomeID: "C", AwayID: "A", HomeScore: 50, AwayScore: 45},
		})

		Convey("When building profiles", func() {
			diags := diag.New()
			profiles := table.Profiles(diags)

			Convey("Then managers come back sorted by id", func() {
				So(profiles, ShouldHaveLength, 3)
				So(profiles[0].ManagerID, ShouldEqual, "A")
				So(profiles[1].ManagerID, ShouldEqual, "B")
				So(profiles[2].ManagerID, ShouldEqual, "C")
			})

			Convey("And A's nemesis is the opponent with the highest average against", func() {
				So(profiles[0].Nemesis, ShouldNotBeNil)
				So(profiles[0].Nemesis.Opponent, ShouldEqual, "C")
				So(profiles[0].Nemesis.AvgAgainst, ShouldEqual, 50)
			})

			Convey("And A's victim is the opponent it scores the most on", func() {
				So(profiles[0].Victim, ShouldNotBeNil)
				So(profiles[0].Victim.Opponent, ShouldEqual, "C")
				So(profiles[0].Victim.AvgFor, ShouldEqual, 45)
			})

			Convey("And single-game calls are reported as sparse", func() {
				codes := make(map[diag.Code]int)
				for _, w := range diags.Warnings() {
					codes[w.Code]++
				}
				So(codes[diag.SparseRivalrySample], ShouldBeGreaterThan, 0)
			})
		})
	})

	Convey("Given no matchups at all", t, func() {
		table := rivalry.Build(nil)

		Convey("When building profiles", func() {
			profiles := table.Profiles(nil)

			Convey("Then there are none", func() {
				So(profiles, ShouldBeEmpty)
			})
		})
	})
}

func TestTop(t *testing.T) {
	Convey("Given one tight rivalry and one lopsided one", t, func() {
		table := rivalry.Build([]model.Matchup{
			// A and B split four games decided by a point or two.
			{Year: 2023, Week: 1, HomeID: "A", AwayID: "B", HomeScore: 100, AwayScore: 98},
			{Year: 2023, Week: 3, HomeID: "B", AwayID: "A", HomeScore: 105, AwayScore: 104},
			{Year: 2023, Week: 5, HomeID: "A", AwayID: "B", HomeScore: 99, AwayScore: 97},
			{Year: 2023, Week: 7, HomeID: "B", AwayID: "A", HomeScore: 101, AwayScore: 100},
			// A blows C out twice.
			{Year: 2023, Week: 2, HomeID: "A", AwayID: "C", HomeScore: 150, AwayScore: 80},
			{Year: 2023, Week: 4, HomeID: "A", AwayID: "C", HomeScore: 150, AwayScore: 80},
		})

		Convey("When ranking rivalries", func() {
			top := table.Top(5)

			Convey("Then the even, tight pair scores highest", func() {
				So(top, ShouldHaveLength, 2)
				So(top[0].ManagerA, ShouldEqual, "A")
				So(top[0].ManagerB, ShouldEqual, "B")
				So(top[0].Games, ShouldEqual, 4)
				So(top[0].Record, ShouldEqual, "2-2-0")
				// Even record, average margin 0.5: 1 - 0.5/50*0.4.
				So(top[0].Competitiveness, ShouldAlmostEqual, 0.996, 1e-9)
			})

			Convey("And a winless blowout pair bottoms out at zero", func() {
				So(top[1].ManagerA, ShouldEqual, "A")
				So(top[1].ManagerB, ShouldEqual, "C")
				So(top[1].Competitiveness, ShouldEqual, 0)
			})
		})

		Convey("When capping the list", func() {
			top := table.Top(1)

			Convey("Then only the best rivalry remains", func() {
				So(top, ShouldHaveLength, 1)
				So(top[0].ManagerB, ShouldEqual, "B")
			})
		})
	})
}
