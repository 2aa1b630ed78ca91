// Package config defines engine configuration structures and loading hooks.
//
// Conventions:
// - Provide New() to build a Config with defaults, Load(ctx) to layer
//   file and environment sources on top.
// - External errors must be wrapped via this package's error helpers.
package config

import (
	"runtime"
)

// Config contains process configuration. Extend as needed.
type Config struct {
	// LogLevel controls verbosity: debug, info, warn, error.
	LogLevel string `koanf:"log_level"`

	// SnapshotDir holds the per-season snapshot files (season_<year>.json).
	SnapshotDir string `koanf:"snapshot_dir"`

	// Years restricts the run to these seasons. Empty means every season
	// found in SnapshotDir.
	Years []int `koanf:"years"`

	// OutputPath is where the results artifact is written.
	OutputPath string `koanf:"output_path"`

	// MetricsAddr exposes /metrics when non-empty, e.g. ":9090".
	MetricsAddr string `koanf:"metrics_addr"`

	// WorkerCount sets the number of compute workers.
	WorkerCount int `koanf:"worker_count"`

	// TaskQueueSize bounds the in-memory compute queue.
	TaskQueueSize int `koanf:"task_queue_size"`

	// CloseGameMargin is the losing margin, in points, under which a loss
	// counts as a close one.
	CloseGameMargin float64 `koanf:"close_game_margin"`

	// LateRoundCutoff is the first draft round considered "late".
	LateRoundCutoff int `koanf:"late_round_cutoff"`

	// TopN caps ranked lists in the results artifact.
	TopN int `koanf:"top_n"`

	// Thresholds maps position names to replacement-level ranks.
	// Positions absent here fall back to the built-in defaults.
	Thresholds map[string]int `koanf:"thresholds"`

	// InjuryStatuses lists the statuses counted as injured weeks.
	InjuryStatuses []string `koanf:"injury_statuses"`
}

// New creates a Config with defaults.
func New() *Config {
	return &Config{
		LogLevel:        "info",
		SnapshotDir:     "data",
		OutputPath:      "wrapped.json",
		WorkerCount:     runtime.NumCPU(),
		TaskQueueSize:   256,
		CloseGameMargin: 5.0,
		LateRoundCutoff: 12,
		TopN:            10,
	}
}
