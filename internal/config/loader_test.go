package config_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/jgilmore97/FantasyFootballWrapped/internal/config"
	. "github.com/smartystreets/goconvey/convey"
)

func clearConfigEnvVars() {
	for _, key := range []string{
		"WRAPPED_CONFIG",
		"WRAPPED_LOG_LEVEL",
		"WRAPPED_SNAPSHOT_DIR",
		"WRAPPED_OUTPUT_PATH",
		"WRAPPED_METRICS_ADDR",
		"WRAPPED_WORKER_COUNT",
		"WRAPPED_TASK_QUEUE_SIZE",
		"WRAPPED_CLOSE_GAME_MARGIN",
		"WRAPPED_LATE_ROUND_CUTOFF",
		"WRAPPED_TOP_N",
	} {
		_ = os.Unsetenv(key)
	}
}

func TestConfigLoader(t *testing.T) {
	Convey("Given a config loader", t, func() {
		ctx := context.Background()
		clearConfigEnvVars()

		Convey("When loading with defaults only", func() {
			cfg, err := config.Load(ctx)

			Convey("Then the defaults come through", func() {
				So(err, ShouldBeNil)
				So(cfg.LogLevel, ShouldEqual, "info")
				So(cfg.SnapshotDir, ShouldEqual, "data")
				So(cfg.OutputPath, ShouldEqual, "wrapped.json")
				So(cfg.WorkerCount, ShouldEqual, runtime.NumCPU())
				So(cfg.TaskQueueSize, ShouldEqual, 256)
				So(cfg.CloseGameMargin, ShouldEqual, 5.0)
				So(cfg.LateRoundCutoff, ShouldEqual, 12)
				So(cfg.TopN, ShouldEqual, 10)
			})
		})

		Convey("When environment variables are set", func() {
			_ = os.Setenv("WRAPPED_SNAPSHOT_DIR", "/tmp/league")
			_ = os.Setenv("WRAPPED_WORKER_COUNT", "3")
			_ = os.Setenv("WRAPPED_CLOSE_GAME_MARGIN", "7.5")
			defer clearConfigEnvVars()

			cfg, err := config.Load(ctx)

			Convey("Then env values override the defaults", func() {
				So(err, ShouldBeNil)
				So(cfg.SnapshotDir, ShouldEqual, "/tmp/league")
				So(cfg.WorkerCount, ShouldEqual, 3)
				So(cfg.CloseGameMargin, ShouldEqual, 7.5)
			})
		})

		Convey("When a YAML file is provided", func() {
			dir := t.TempDir()
			path := filepath.Join(dir, "config.yaml")
			yaml := "snapshot_dir: /data/league\ntop_n: 5\nthresholds:\n  QB: 20\n  RB: 35\n"
			So(os.WriteFile(path, []byte(yaml), 0o600), ShouldBeNil)
			_ = os.Setenv("WRAPPED_CONFIG", path)
			defer clearConfigEnvVars()

			cfg, err := config.Load(ctx)

			Convey("Then the file layers over defaults", func() {
				So(err, ShouldBeNil)
				So(cfg.SnapshotDir, ShouldEqual, "/data/league")
				So(cfg.TopN, ShouldEqual, 5)
				So(cfg.Thresholds["QB"], ShouldEqual, 20)
				So(cfg.Thresholds["RB"], ShouldEqual, 35)
			})

			Convey("And env still beats the file", func() {
				_ = os.Setenv("WRAPPED_TOP_N", "3")
				cfg, err := config.Load(ctx)
				So(err, ShouldBeNil)
				So(cfg.TopN, ShouldEqual, 3)
			})
		})

		Convey("When the config is invalid", func() {
			_ = os.Setenv("WRAPPED_WORKER_COUNT", "0")
			defer clearConfigEnvVars()

			_, err := config.Load(ctx)

			Convey("Then it fails with ErrInvalidConfig", func() {
				So(errors.Is(err, config.ErrInvalidConfig), ShouldBeTrue)
			})
		})

		Convey("When the config file is missing", func() {
			_ = os.Setenv("WRAPPED_CONFIG", "/nonexistent/config.yaml")
			defer clearConfigEnvVars()

			_, err := config.Load(ctx)

			Convey("Then it fails with ErrLoadConfig", func() {
				So(errors.Is(err, config.ErrLoadConfig), ShouldBeTrue)
			})
		})
	})
}
