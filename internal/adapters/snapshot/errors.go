package snapshot

import (
	"errors"
)

// Sentinel error kinds for this package. These allow errors.Is/As from callers.
var (
	// ErrSnapshotDir means the snapshot directory could not be read at all.
	ErrSnapshotDir = errors.New("snapshot directory unreadable")

	// ErrNoSeasons means no season file could be loaded. A run with no
	// seasons has nothing to compute, so this is fatal.
	ErrNoSeasons = errors.New("no readable seasons")
)
