package repositories

import (
	"context"
	"sync"
)

// MemoryRepository keeps the high score for the lifetime of the process.
type MemoryRepository struct {
	lock      sync.RWMutex
	highScore int
	saved     bool
}

func NewMemoryRepository() Repository {
	return &MemoryRepository{}
}

func (r *MemoryRepository) Close(ctx context.Context) error {
	return nil
}

func (r *MemoryRepository) LoadHighScore(ctx context.Context) (int, error) {
	r.lock.RLock()
	defer r.lock.RUnlock()
	if !r.saved {
		return 0, &ErrNotFound{}
	}
	return r.highScore, nil
}

func (r *MemoryRepository) SaveHighScore(ctx context.Context, score int) error {
	if err := validateScore(score); err != nil {
		return err
	}

	r.lock.Lock()
	defer r.lock.Unlock()
	if !r.saved || score > r.highScore {
		r.highScore = score
	}
	r.saved = true
	return nil
}
