package snapshot_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/jgilmore97/FantasyFootballWrapped/internal/adapters/snapshot"
	"github.com/jgilmore97/FantasyFootballWrapped/internal/domain/diag"
	"github.com/jgilmore97/FantasyFootballWrapped/pkg/logger"
	. "github.com/smartystreets/goconvey/convey"
)

func TestMain(m *testing.M) {
	_ = logger.Init()
	m.Run()
}

const season2023 = `{
  "year": 2023,
  "weeks": 13,
  "managers": [{"id": "m1", "name": "One"}, {"id": "m2", "name": "Two"}],
  "matchups": [
    {"year": 2023, "week": 1, "home_id": "m1", "away_id": "m2", "home_score": 110, "away_score": 95}
  ],
  "week_stats": [
    {"player_id": "p1", "year": 2023, "week": 1, "points": 22.5, "status": "ACTIVE", "manager_id": "m1"}
  ],
  "picks": [
    {"year": 2023, "round": 1, "overall": 1, "player_id": "p1", "manager_id": "m1"}
  ],
  "players": [{"id": "p1", "name": "Alpha", "position": "RB"}]
}`

const season2022 = `{
  "year": 2022,
  "weeks": 13,
  "managers": [{"id": "m1", "name": "One"}],
  "players": [{"id": "p1", "name": "Old Alpha", "position": "RB"}]
}`

func writeSeason(t *testing.T, dir, name, body string) {
	t.Helper()
	if err := os.WriteFile(filepath.Join(dir, name), []byte(body), 0o600); err != nil {
		t.Fatal(err)
	}
}

func TestLoader(t *testing.T) {
	ctx := context.Background()

	Convey("Given a directory with two season files", t, func() {
		dir := t.TempDir()
		writeSeason(t, dir, "season_2022.json", season2022)
		writeSeason(t, dir, "season_2023.json", season2023)
		writeSeason(t, dir, "notes.txt", "ignore me")

		Convey("When loading everything", func() {
			diags := diag.New()
			snap, err := snapshot.NewLoader(dir).Load(ctx, diags)

			Convey("Then both seasons load in year order", func() {
				So(err, ShouldBeNil)
				So(snap.Seasons, ShouldHaveLength, 2)
				So(snap.Seasons[0].Year, ShouldEqual, 2022)
				So(snap.Seasons[1].Year, ShouldEqual, 2023)
				So(diags.Len(), ShouldEqual, 0)
			})

			Convey("And later player metadata wins on conflict", func() {
				So(snap.Players["p1"].Name, ShouldEqual, "Alpha")
			})

			Convey("And season contents survive the round trip", func() {
				season := snap.Season(2023)
				So(season.Matchups, ShouldHaveLength, 1)
				So(season.WeekStats[0].Points, ShouldEqual, 22.5)
				So(season.Picks[0].Round, ShouldEqual, 1)
			})
		})

		Convey("When restricted to one year", func() {
			snap, err := snapshot.NewLoader(dir, snapshot.WithYears([]int{2023})).Load(ctx, diag.New())

			Convey("Then only that season loads", func() {
				So(err, ShouldBeNil)
				So(snap.Seasons, ShouldHaveLength, 1)
				So(snap.Seasons[0].Year, ShouldEqual, 2023)
			})
		})
	})

	Convey("Given a directory with one good and one corrupt file", t, func() {
		dir := t.TempDir()
		writeSeason(t, dir, "season_2022.json", "{not json")
		writeSeason(t, dir, "season_2023.json", season2023)

		Convey("When loading", func() {
			diags := diag.New()
			snap, err := snapshot.NewLoader(dir).Load(ctx, diags)

			Convey("Then the corrupt season is skipped and reported", func() {
				So(err, ShouldBeNil)
				So(snap.Seasons, ShouldHaveLength, 1)
				warnings := diags.Warnings()
				So(warnings, ShouldHaveLength, 1)
				So(warnings[0].Code, ShouldEqual, diag.UnreadableSeason)
				So(warnings[0].Year, ShouldEqual, 2022)
			})
		})
	})

	Convey("Given a file whose body disagrees with its name", t, func() {
		dir := t.TempDir()
		writeSeason(t, dir, "season_2023.json", season2022)

		Convey("When loading", func() {
			diags := diag.New()
			snap, err := snapshot.NewLoader(dir).Load(ctx, diags)

			Convey("Then the filename year wins and the mismatch is reported", func() {
				So(err, ShouldBeNil)
				So(snap.Seasons, ShouldHaveLength, 1)
				So(snap.Seasons[0].Year, ShouldEqual, 2023)
				warnings := diags.Warnings()
				So(warnings, ShouldHaveLength, 1)
				So(warnings[0].Code, ShouldEqual, diag.SeasonFileMismatch)
				So(warnings[0].Year, ShouldEqual, 2023)
				So(warnings[0].Subject, ShouldEqual, "season_2023.json")
			})
		})
	})

	Convey("Given a directory with no season files", t, func() {
		dir := t.TempDir()

		Convey("When loading", func() {
			_, err := snapshot.NewLoader(dir).Load(ctx, diag.New())

			Convey("Then it fails with ErrNoSeasons", func() {
				So(errors.Is(err, snapshot.ErrNoSeasons), ShouldBeTrue)
			})
		})
	})

	Convey("Given a missing directory", t, func() {
		_, err := snapshot.NewLoader("/nonexistent/league").Load(ctx, diag.New())

		Convey("Then it fails with ErrSnapshotDir", func() {
			So(errors.Is(err, snapshot.ErrSnapshotDir), ShouldBeTrue)
		})
	})
}
