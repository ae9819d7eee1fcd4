package objects

import (
	"github.com/cbodonnell/snake/pkg/game/types"
	"github.com/hajimehoshi/ebiten/v2"
)

// GameObject is the highest level interface for game related types.
type GameObject interface {
	Update() error
	Draw(screen *ebiten.Image)
}

// SnapshotObject is a GameObject that renders a game snapshot.
type SnapshotObject interface {
	GameObject
	SetSnapshot(snapshot types.Snapshot)
}
