package diag_test

import (
	"sync"
	"testing"

	"github.com/jgilmore97/FantasyFootballWrapped/internal/domain/diag"
	. "github.com/smartystreets/goconvey/convey"
)

func TestDiagnostics(t *testing.T) {
	Convey("Given an empty collector", t, func() {
		d := diag.New()

		Convey("Then it has no warnings", func() {
			So(d.Len(), ShouldEqual, 0)
			So(d.Warnings(), ShouldBeEmpty)
		})

		Convey("When warnings arrive out of order", func() {
			d.Addf(diag.SparseRivalrySample, 0, 0, "m2", "single game")
			d.Addf(diag.MissingSeasonData, 2023, 0, "QB", "no players")
			d.Addf(diag.MissingSeasonData, 2021, 0, "K", "no players")

			Convey("Then Warnings returns them sorted by code, year, week, subject", func() {
				warnings := d.Warnings()
				So(warnings, ShouldHaveLength, 3)
				So(warnings[0].Code, ShouldEqual, diag.MissingSeasonData)
				So(warnings[0].Year, ShouldEqual, 2021)
				So(warnings[1].Year, ShouldEqual, 2023)
				So(warnings[2].Code, ShouldEqual, diag.SparseRivalrySample)
			})

			Convey("And the formatted message carries the code", func() {
				So(d.Warnings()[0].String(), ShouldEqual, "missing_season_data: no players")
			})
		})

		Convey("When many goroutines add concurrently", func() {
			var wg sync.WaitGroup
			for i := 0; i < 50; i++ {
				wg.Add(1)
				go func() {
					defer wg.Done()
					d.Addf(diag.IncompleteWeekData, 2023, 1, "p", "missing line")
				}()
			}
			wg.Wait()

			Convey("Then every warning is collected", func() {
				So(d.Len(), ShouldEqual, 50)
			})
		})
	})
}
