package service

import (
	"errors"
)

// Sentinel error kinds for this package. These allow errors.Is/As from callers.
var (
	// ErrEmptySnapshot means the run was given no seasons at all.
	ErrEmptySnapshot = errors.New("empty snapshot")

	// ErrSeasonNoManagers means a season carries matchups or rosters but
	// identifies no managers. The input contract is broken, so the run
	// aborts instead of guessing.
	ErrSeasonNoManagers = errors.New("season has no managers")

	// ErrIncompleteCompute means a season task never produced its VOR
	// slot. Cross-season stages must not run on a partial fan-in, so the
	// run aborts rather than write an artifact with seasons missing.
	ErrIncompleteCompute = errors.New("incomplete season computation")
)
