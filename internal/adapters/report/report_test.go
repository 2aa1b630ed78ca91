package report_test

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/jgilmore97/FantasyFootballWrapped/internal/adapters/report"
	"github.com/jgilmore97/FantasyFootballWrapped/pkg/logger"
	. "github.com/smartystreets/goconvey/convey"
)

func TestMain(m *testing.M) {
	_ = logger.Init()
	m.Run()
}

func TestWriter(t *testing.T) {
	ctx := context.Background()

	Convey("Given a writer targeting a fresh path", t, func() {
		dir := t.TempDir()
		path := filepath.Join(dir, "wrapped.json")
		w := report.NewWriter(path)

		Convey("When writing a payload", func() {
			payload := map[string]any{"run_id": "abc", "years": []int{2022, 2023}}
			err := w.Write(ctx, payload)

			Convey("Then the artifact parses back to the same data", func() {
				So(err, ShouldBeNil)
				data, readErr := os.ReadFile(path)
				So(readErr, ShouldBeNil)

				var got map[string]any
				So(json.Unmarshal(data, &got), ShouldBeNil)
				So(got["run_id"], ShouldEqual, "abc")
			})

			Convey("And no temp files are left behind", func() {
				entries, readErr := os.ReadDir(dir)
				So(readErr, ShouldBeNil)
				So(entries, ShouldHaveLength, 1)
			})
		})

		Convey("When overwriting an existing artifact", func() {
			So(w.Write(ctx, map[string]int{"v": 1}), ShouldBeNil)
			So(w.Write(ctx, map[string]int{"v": 2}), ShouldBeNil)

			Convey("Then the newest content wins", func() {
				data, readErr := os.ReadFile(path)
				So(readErr, ShouldBeNil)

				var got map[string]int
				So(json.Unmarshal(data, &got), ShouldBeNil)
				So(got["v"], ShouldEqual, 2)
			})
		})

		Convey("When the payload cannot be marshaled", func() {
			err := w.Write(ctx, map[string]any{"bad": func() {}})

			Convey("Then it fails without touching the path", func() {
				So(err, ShouldNotBeNil)
				_, statErr := os.Stat(path)
				So(os.IsNotExist(statErr), ShouldBeTrue)
			})
		})
	})
}
