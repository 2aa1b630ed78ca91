package replacement_test

import (
	"testing"

	"github.com/jgilmore97/FantasyFootballWrapped/internal/domain/diag"
	"github.com/jgilmore97/FantasyFootballWrapped/internal/domain/model"
	"github.com/jgilmore97/FantasyFootballWrapped/internal/domain/replacement"
	. "github.com/smartystreets/goconvey/convey"
)

func totalsForPosition(pos model.Position, points ...float64) []model.SeasonTotal {
	totals := make([]model.SeasonTotal, 0, len(points))
	for i, p := range points {
		totals = append(totals, model.SeasonTotal{
			PlayerID: string(pos) + string(rune('a'+i)),
			Year:     2023,
			Position: pos,
			Points:   p,
		})
	}
	return totals
}

func TestReplacementLevels(t *testing.T) {
	Convey("Given a calculator with a QB threshold of 3", t, func() {
		calc := replacement.New(replacement.WithThresholds(map[model.Position]int{model.QB: 3}))

		Convey("When the pool is deeper than the threshold", func() {
			totals := totalsForPosition(model.QB, 300, 280, 250, 220, 190)
			levels := calc.Levels(2023, totals, nil)

			Convey("Then the level is the 3rd-ranked player's total", func() {
				So(levels, ShouldContainKey, model.QB)
				So(levels[model.QB].Value, ShouldEqual, 250)
				So(levels[model.QB].Year, ShouldEqual, 2023)
			})
		})

		Convey("When the pool is shallower than the threshold", func() {
			totals := totalsForPosition(model.QB, 300, 280)
			levels := calc.Levels(2023, totals, nil)

			Convey("Then it fails open to the lowest-ranked player's total", func() {
				So(levels[model.QB].Value, ShouldEqual, 280)
			})
		})

		Convey("When a thresholded position has zero players", func() {
			diags := diag.New()
			levels := calc.Levels(2023, nil, diags)

			Convey("Then the position is omitted and reported", func() {
				So(levels, ShouldNotContainKey, model.QB)
				warnings := diags.Warnings()
				So(warnings, ShouldHaveLength, 1)
				So(warnings[0].Code, ShouldEqual, diag.MissingSeasonData)
				So(warnings[0].Year, ShouldEqual, 2023)
				So(warnings[0].Subject, ShouldEqual, "QB")
			})
		})

		Convey("When totals include positions outside the thresholds", func() {
			totals := append(totalsForPosition(model.QB, 300, 280, 250),
				totalsForPosition(model.P, 120, 110)...)
			levels := calc.Levels(2023, totals, nil)

			Convey("Then unthresholded positions get no level", func() {
				So(levels, ShouldContainKey, model.QB)
				So(levels, ShouldNotContainKey, model.P)
			})
		})
	})

	Convey("Given the default thresholds", t, func() {
		calc := replacement.New()

		Convey("Then they match the startable-player cutoffs", func() {
			So(calc.Thresholds()[model.QB], ShouldEqual, 25)
			So(calc.Thresholds()[model.RB], ShouldEqual, 40)
			So(calc.Thresholds()[model.WR], ShouldEqual, 50)
			So(calc.Thresholds()[model.TE], ShouldEqual, 15)
			So(calc.Thresholds()[model.DST], ShouldEqual, 15)
			So(calc.Thresholds()[model.K], ShouldEqual, 15)
		})

		Convey("And non-positive overrides are ignored", func() {
			custom := replacement.New(replacement.WithThresholds(map[model.Position]int{
				model.QB: 10,
				model.RB: 0,
			}))
			So(custom.Thresholds()[model.QB], ShouldEqual, 10)
			So(custom.Thresholds(), ShouldNotContainKey, model.RB)
		})
	})
}
