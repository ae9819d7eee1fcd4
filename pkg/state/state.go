package state

import (
	"context"

	gametypes "github.com/cbodonnell/snake/pkg/game/types"
)

// StateManager provides shared access to the latest published snapshot.
// Implementations must be thread-safe.
type StateManager interface {
	// Get returns a copy of the current snapshot.
	Get(ctx context.Context) (gametypes.Snapshot, error)
	// Set replaces the current snapshot.
	Set(ctx context.Context, snapshot gametypes.Snapshot) error
}
