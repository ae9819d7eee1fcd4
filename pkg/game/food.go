package game

import (
	"errors"

	"github.com/cbodonnell/snake/pkg/game/types"
)

// ErrBoardFull is returned when no free cell is left for food.
var ErrBoardFull = errors.New("no free cell left for food")

// RandSource is the subset of *rand.Rand used for food placement.
type RandSource interface {
	Intn(n int) int
}

// PlaceFood picks a uniformly random cell of a size x size board that is not
// occupied by the snake, resampling until it finds one.
func PlaceFood(snake []types.Coordinate, size int, rng RandSource) (types.Coordinate, error) {
	occupied := make(map[types.Coordinate]struct{}, len(snake))
	for _, segment := range snake {
		if segment.InBounds(size) {
			occupied[segment] = struct{}{}
		}
	}
	if len(occupied) >= size*size {
		return types.Coordinate{}, ErrBoardFull
	}

	for {
		candidate := types.Coordinate{
			X: rng.Intn(size),
			Y: rng.Intn(size),
		}
		if _, ok := occupied[candidate]; !ok {
			return candidate, nil
		}
	}
}
