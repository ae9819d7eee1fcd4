package state

import (
	"context"
	"fmt"
	"sync"

	gametypes "github.com/cbodonnell/snake/pkg/game/types"
)

type InMemoryStateManager struct {
	lock     sync.RWMutex
	snapshot gametypes.Snapshot
	set      bool
}

func NewInMemoryStateManager() *InMemoryStateManager {
	return &InMemoryStateManager{}
}

func (m *InMemoryStateManager) Get(ctx context.Context) (gametypes.Snapshot, error) {
	m.lock.RLock()
	defer m.lock.RUnlock()

	if !m.set {
		return gametypes.Snapshot{}, fmt.Errorf("snapshot has not been set")
	}
	return m.snapshot.Copy(), nil
}

func (m *InMemoryStateManager) Set(ctx context.Context, snapshot gametypes.Snapshot) error {
	m.lock.Lock()
	defer m.lock.Unlock()

	if len(snapshot.Snake) == 0 {
		return fmt.Errorf("snapshot has no snake")
	}

	m.snapshot = snapshot.Copy()
	m.set = true
	return nil
}
