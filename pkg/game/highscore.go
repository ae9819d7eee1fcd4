package game

import (
	"context"

	"github.com/cbodonnell/snake/pkg/log"
)

// HighScoreLoader reads the persisted high score.
type HighScoreLoader interface {
	LoadHighScore(ctx context.Context) (int, error)
}

// LoadHighScore reads the persisted high score once at startup. Any failure,
// including a missing or negative value, yields zero.
func LoadHighScore(ctx context.Context, loader HighScoreLoader) int {
	if loader == nil {
		return 0
	}
	highScore, err := loader.LoadHighScore(ctx)
	if err != nil {
		log.Warn("Failed to load high score, defaulting to zero: %v", err)
		return 0
	}
	if highScore < 0 {
		log.Warn("Ignoring negative high score %d", highScore)
		return 0
	}
	return highScore
}
